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

package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zintix-labs/sudoduel/dto"
)

func sampleReport(result dto.Result, reason dto.Reason, delta, used int) *dto.BattleReport {
	return &dto.BattleReport{
		Result: result, Reason: reason, RatingDelta: delta,
		Band: "medium", HumanPct: 70, OpponentPct: 60,
		HumanMistakes: 2, OppMistakes: 3, TimeUsedSeconds: used,
	}
}

func TestCollectorCounts(t *testing.T) {
	c := NewCollector("medium")
	_ = c.Add(sampleReport(dto.ResultWin, dto.ReasonHumanFinished, 25, 300))
	_ = c.Add(sampleReport(dto.ResultWin, dto.ReasonClockExpired, 15, 600))
	_ = c.Add(sampleReport(dto.ResultLose, dto.ReasonOpponentFinished, -25, 450))
	_ = c.Add(sampleReport(dto.ResultDraw, dto.ReasonClockExpired, 0, 600))

	r, err := c.Done()
	if err != nil {
		t.Fatalf("done: %v", err)
	}
	if r.Rounds != 4 || r.Wins != 2 || r.Losses != 1 || r.Draws != 1 {
		t.Fatalf("counts wrong: %+v", r)
	}
	if r.NetRating != 15 {
		t.Fatalf("net rating = %d", r.NetRating)
	}
	if r.ByReason[dto.ReasonClockExpired] != 2 {
		t.Fatalf("reason tally wrong: %v", r.ByReason)
	}
	if r.WinRate.Hat != 0.5 {
		t.Fatalf("win rate = %v", r.WinRate.Hat)
	}
	if r.WinRate.CI.Lo < 0 || r.WinRate.CI.Hi > 1 || r.WinRate.CI.Lo > r.WinRate.Hat || r.WinRate.CI.Hi < r.WinRate.Hat {
		t.Fatalf("CI malformed: %+v", r.WinRate)
	}
	if r.DurationP50 < 300 || r.DurationP50 > 600 {
		t.Fatalf("median duration out of sample range: %v", r.DurationP50)
	}
}

func TestCollectorRejectsBadInput(t *testing.T) {
	c := NewCollector("medium")
	if err := c.Add(nil); err == nil {
		t.Fatalf("nil report accepted")
	}
	bad := sampleReport("weird", dto.ReasonForfeit, 0, 1)
	if err := c.Add(bad); err == nil {
		t.Fatalf("unknown result accepted")
	}
	if _, err := c.Done(); err == nil {
		t.Fatalf("empty collector produced a report")
	}
}

func TestRenderers(t *testing.T) {
	c := NewCollector("evil")
	_ = c.Add(sampleReport(dto.ResultWin, dto.ReasonHumanFinished, 25, 123))
	r, err := c.Done()
	if err != nil {
		t.Fatalf("done: %v", err)
	}

	var jb bytes.Buffer
	if err := (&JsonStatReportRender{}).Write(&jb, r); err != nil {
		t.Fatalf("json render: %v", err)
	}
	if !strings.Contains(jb.String(), `"Band":"evil"`) {
		t.Fatalf("json missing band: %s", jb.String())
	}

	var tb bytes.Buffer
	if err := (&TableStatReportRender{}).Write(&tb, r); err != nil {
		t.Fatalf("table render: %v", err)
	}
	out := tb.String()
	for _, want := range []string{"Band", "evil", "WinRate", "NetRating"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}
