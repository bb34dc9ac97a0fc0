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

package timeline

import (
	"testing"
	"time"
)

func TestVirtualOrdering(t *testing.T) {
	vt := NewVirtual()
	var order []int
	vt.AfterFunc(3*time.Second, func() { order = append(order, 3) })
	vt.AfterFunc(1*time.Second, func() { order = append(order, 1) })
	vt.AfterFunc(2*time.Second, func() { order = append(order, 2) })
	vt.Advance(5 * time.Second)
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("wrong firing order: %v", order)
	}
	if vt.Now() != 5*time.Second {
		t.Fatalf("Now = %v", vt.Now())
	}
}

func TestVirtualSameInstantFIFO(t *testing.T) {
	vt := NewVirtual()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		vt.AfterFunc(time.Second, func() { order = append(order, i) })
	}
	vt.Advance(time.Second)
	for i, got := range order {
		if got != i {
			t.Fatalf("same-instant events out of order: %v", order)
		}
	}
}

func TestVirtualStop(t *testing.T) {
	vt := NewVirtual()
	fired := false
	h := vt.AfterFunc(time.Second, func() { fired = true })
	if !h.Stop() {
		t.Fatalf("first Stop must report true")
	}
	if h.Stop() {
		t.Fatalf("second Stop must report false")
	}
	vt.Advance(2 * time.Second)
	if fired {
		t.Fatalf("stopped event fired")
	}
}

func TestVirtualRescheduleFromCallback(t *testing.T) {
	vt := NewVirtual()
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 4 {
			vt.AfterFunc(time.Second, tick)
		}
	}
	vt.AfterFunc(time.Second, tick)
	vt.Advance(10 * time.Second)
	if count != 4 {
		t.Fatalf("chained ticks = %d, want 4", count)
	}
}

func TestVirtualDrain(t *testing.T) {
	vt := NewVirtual()
	fired := 0
	vt.AfterFunc(time.Second, func() { fired++ })
	vt.AfterFunc(time.Minute, func() { fired++ })
	vt.Drain(10*time.Second, 1000)
	if fired != 2 {
		t.Fatalf("drain fired %d events, want 2", fired)
	}
	if vt.Pending() != 0 {
		t.Fatalf("pending after drain: %d", vt.Pending())
	}
}

func TestRealtimeAfterFunc(t *testing.T) {
	rt := NewRealtime()
	done := make(chan struct{})
	rt.AfterFunc(5*time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("realtime callback never fired")
	}
	if rt.Now() <= 0 {
		t.Fatalf("realtime Now must be positive")
	}
}
