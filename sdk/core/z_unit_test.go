// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"slices"
	"testing"
)

func TestCoreDeterminism(t *testing.T) {
	c1 := NewSeeded(7)
	c2 := NewSeeded(7)
	for i := 0; i < 64; i++ {
		if c1.Uint32() != c2.Uint32() {
			t.Fatalf("Uint32 mismatch at %d", i)
		}
	}
	if c1.IntN(81) != c2.IntN(81) {
		t.Fatalf("IntN mismatch")
	}
	if c1.Float64() != c2.Float64() {
		t.Fatalf("Float64 mismatch")
	}
}

func TestCoreSeedsDiverge(t *testing.T) {
	c1 := NewSeeded(1)
	c2 := NewSeeded(2)
	same := true
	for i := 0; i < 8; i++ {
		if c1.Uint32() != c2.Uint32() {
			same = false
		}
	}
	if same {
		t.Fatalf("different seeds produced identical streams")
	}
}

func TestFloat64Range(t *testing.T) {
	c := NewSeeded(42)
	for i := 0; i < 10000; i++ {
		v := c.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64 out of [0,1): %v", v)
		}
	}
}

func TestRangeAndBetween(t *testing.T) {
	c := NewSeeded(5)
	for i := 0; i < 1000; i++ {
		v := c.Range(0.5, 0.8)
		if v < 0.5 || v >= 0.8 {
			t.Fatalf("Range out of bounds: %v", v)
		}
		n := c.Between(200, 600)
		if n < 200 || n > 600 {
			t.Fatalf("Between out of bounds: %d", n)
		}
	}
	if got := c.Range(2, 1); got != 2 {
		t.Fatalf("degenerate Range should return lo, got %v", got)
	}
	if got := c.Between(5, 3); got != 5 {
		t.Fatalf("degenerate Between should return lo, got %d", got)
	}
}

func TestChanceExtremes(t *testing.T) {
	c := NewSeeded(9)
	if c.Chance(0) {
		t.Fatalf("Chance(0) must be false")
	}
	if !c.Chance(1) {
		t.Fatalf("Chance(1) must be true")
	}
}

func TestPickAndShuffle(t *testing.T) {
	c := NewSeeded(11)
	if got := c.Pick(nil); got != -1 {
		t.Fatalf("expected -1 for empty pick, got %d", got)
	}

	src := []int{1, 2, 3, 4, 5}
	c.ShuffleInts(src)
	got := slices.Clone(src)
	slices.Sort(got)
	if !slices.Equal(got, []int{1, 2, 3, 4, 5}) {
		t.Fatalf("shuffle changed elements: %v", src)
	}

	bs := []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9}
	c.ShuffleBytes(bs)
	gb := slices.Clone(bs)
	slices.Sort(gb)
	if !slices.Equal(gb, []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9}) {
		t.Fatalf("byte shuffle changed elements: %v", bs)
	}
}

func TestRandomSeedRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		if s := RandomSeed(); s < 0 {
			t.Fatalf("RandomSeed returned negative value: %d", s)
		}
	}
}
