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

package recorder

import (
	"bytes"
	"testing"
	"time"

	"github.com/zintix-labs/sudoduel"
	"github.com/zintix-labs/sudoduel/dto"
	"github.com/zintix-labs/sudoduel/sdk/timeline"
)

func TestTapeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	evs := []Event{
		{AtMs: 0, Kind: KindStart, Puzzle: &dto.PuzzleDTO{Band: "medium", Seed: 7}},
		{AtMs: 1200, Kind: KindHumanPlace, Row: 3, Col: 4, Value: 9},
		{AtMs: 4100, Kind: KindOppAction, Filled: 1, Total: 49},
		{AtMs: 9000, Kind: KindEnd, Report: &dto.BattleReport{Result: dto.ResultWin}},
	}
	for _, ev := range evs {
		if err := w.Append(ev); err != nil {
			t.Fatalf("append %s: %v", ev.Kind, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("double close: %v", err)
	}

	got, err := ReadAll(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(evs) {
		t.Fatalf("events = %d, want %d", len(got), len(evs))
	}
	if got[0].Puzzle == nil || got[0].Puzzle.Seed != 7 {
		t.Fatalf("start event lost puzzle: %+v", got[0])
	}
	if got[1].Row != 3 || got[1].Col != 4 || got[1].Value != 9 {
		t.Fatalf("place event mangled: %+v", got[1])
	}
	if got[3].Report == nil || got[3].Report.Result != dto.ResultWin {
		t.Fatalf("end event lost report: %+v", got[3])
	}
}

func TestTapeRejectsDisorder(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf)
	if err := w.Append(Event{AtMs: 500, Kind: KindClockTick}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := w.Append(Event{AtMs: 400, Kind: KindClockTick}); err == nil {
		t.Fatalf("backwards timestamp accepted")
	}
	if err := w.Append(Event{AtMs: 600}); err == nil {
		t.Fatalf("missing kind accepted")
	}
	_ = w.Close()
	if err := w.Append(Event{AtMs: 700, Kind: KindClockTick}); err == nil {
		t.Fatalf("append after close accepted")
	}
}

// 整場對局掛上 Session 錄製，讀回驗證磁帶結構。
func TestSessionRecordsWholeBattle(t *testing.T) {
	a, err := sudoduel.NewDefault()
	if err != nil {
		t.Fatalf("arena: %v", err)
	}

	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	vt := timeline.NewVirtual()
	ses := NewSession(w, vt)

	seed := int32(4242)
	b, err := a.NewBattle(sudoduel.BattleConfig{
		Band: "easy", Seed: &seed, Timeline: vt, Hooks: ses.Hooks(sudoduel.Hooks{}),
	})
	if err != nil {
		t.Fatalf("battle: %v", err)
	}
	if err := ses.Start(a.PuzzleDTO(b.Puzzle(), false)); err != nil {
		t.Fatalf("record start: %v", err)
	}
	if err := b.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	vt.Drain(time.Minute, 100000)
	if !b.Ended() {
		t.Fatalf("battle never ended")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	evs, err := ReadAll(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if evs[0].Kind != KindStart {
		t.Fatalf("first event = %s", evs[0].Kind)
	}
	last := evs[len(evs)-1]
	if last.Kind != KindEnd || last.Report == nil {
		t.Fatalf("tape does not end with a report: %+v", last)
	}
	var oppActions int
	for _, ev := range evs {
		if ev.Kind == KindOppAction {
			oppActions++
		}
	}
	if oppActions == 0 {
		t.Fatalf("no opponent actions on tape")
	}
}
