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

package grid

import "testing"

func TestAllowed(t *testing.T) {
	var g Cells
	g[0][0] = 5
	if g.Allowed(0, 8, 5) {
		t.Fatalf("row conflict not detected")
	}
	if g.Allowed(8, 0, 5) {
		t.Fatalf("col conflict not detected")
	}
	if g.Allowed(1, 1, 5) {
		t.Fatalf("box conflict not detected")
	}
	if !g.Allowed(1, 4, 5) {
		t.Fatalf("legal placement rejected")
	}
}

func TestValid(t *testing.T) {
	var g Cells
	if !g.Valid() {
		t.Fatalf("empty grid must be valid")
	}
	g[3][3] = 7
	g[3][7] = 7
	if g.Valid() {
		t.Fatalf("row duplicate not detected")
	}
	g[3][7] = 0
	g[5][4] = 7
	g[3][4] = 0
	g[4][4] = 7
	if g.Valid() {
		t.Fatalf("box duplicate not detected")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var g Cells
	g[0][0] = 1
	g[4][4] = 9
	g[8][8] = 3
	s := g.Encode()
	if len(s) != Total {
		t.Fatalf("encoded length = %d", len(s))
	}
	back, err := Decode(s)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back != g {
		t.Fatalf("round trip mismatch")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode("123"); err == nil {
		t.Fatalf("short input accepted")
	}
	bad := make([]byte, Total)
	for i := range bad {
		bad[i] = 'x'
	}
	if _, err := Decode(string(bad)); err == nil {
		t.Fatalf("non-digit input accepted")
	}
}

func TestCountCluesAndFull(t *testing.T) {
	var g Cells
	if g.CountClues() != 0 || g.Full() {
		t.Fatalf("empty grid bookkeeping wrong")
	}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			g[r][c] = uint8((r*3+r/3+c)%9 + 1)
		}
	}
	if g.CountClues() != Total || !g.Full() {
		t.Fatalf("full grid bookkeeping wrong")
	}
	if !g.Valid() {
		t.Fatalf("canonical latin construction should be a valid sudoku")
	}
}
