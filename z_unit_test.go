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

package sudoduel

import (
	"reflect"
	"testing"
	"time"

	"github.com/zintix-labs/sudoduel/dto"
	"github.com/zintix-labs/sudoduel/sdk/core"
	"github.com/zintix-labs/sudoduel/sdk/grid"
	"github.com/zintix-labs/sudoduel/sdk/timeline"
)

func testArena(t *testing.T) *Arena {
	t.Helper()
	a, err := NewDefault()
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	return a
}

func testBattle(t *testing.T, seed int32, hooks Hooks) (*Battle, *timeline.Virtual) {
	t.Helper()
	a := testArena(t)
	vt := timeline.NewVirtual()
	b, err := a.NewBattle(BattleConfig{Band: "medium", Seed: &seed, Timeline: vt, Hooks: hooks})
	if err != nil {
		t.Fatalf("NewBattle: %v", err)
	}
	return b, vt
}

// firstHole 回傳第一個非題目空格與其正確值。
func firstHole(b *Battle) (r, c int, sol uint8) {
	p := b.Puzzle()
	for r := 0; r < grid.Size; r++ {
		for c := 0; c < grid.Size; c++ {
			if !p.IsClue(r, c) {
				return r, c, p.Solution[r][c]
			}
		}
	}
	panic("puzzle has no holes")
}

func wrongValue(sol uint8) uint8 {
	return sol%9 + 1
}

func TestArenaShareCodeRoundTrip(t *testing.T) {
	a := testArena(t)
	seed := int32(777)
	p := a.Generate("hard", &seed)
	again, err := a.GenerateFromShareCode(a.PuzzleDTO(p, false).ShareCode)
	if err != nil {
		t.Fatalf("share code: %v", err)
	}
	if again.Holes != p.Holes || again.Solution != p.Solution {
		t.Fatalf("share code did not reproduce the puzzle")
	}
}

func TestBattleTerminatesExactlyOnce(t *testing.T) {
	ends := 0
	var last *dto.BattleReport
	b, _ := testBattle(t, 42, Hooks{OnEnd: func(rep *dto.BattleReport) { ends++; last = rep }})

	if err := b.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := b.Start(); err == nil {
		t.Fatalf("double start accepted")
	}

	b.Finish()
	b.Forfeit() // 已結束，必須是 no-op
	b.Finish()

	if ends != 1 {
		t.Fatalf("OnEnd fired %d times", ends)
	}
	if last.Reason != dto.ReasonHumanFinished {
		t.Fatalf("reason overwritten after termination: %s", last.Reason)
	}
	if r, c, sol := firstHole(b); b.PlaceValue(r, c, sol) {
		t.Fatalf("move accepted after termination")
	}
	if b.Report() != last {
		t.Fatalf("report changed after termination")
	}
}

func TestMistakePenaltyAndHintGrant(t *testing.T) {
	b, _ := testBattle(t, 7, Hooks{})
	if err := b.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	startClock := b.TimeRemaining()
	oppHints := b.OpponentState().Hints

	r, c, sol := firstHole(b)
	for i := 0; i < 2; i++ {
		if !b.PlaceValue(r, c, wrongValue(sol)) {
			t.Fatalf("wrong placement %d rejected", i)
		}
	}
	if got := b.OpponentState().Hints; got != oppHints {
		t.Fatalf("hint granted after only two mistakes: %d", got)
	}
	if !b.PlaceValue(r, c, wrongValue(sol)) {
		t.Fatalf("third wrong placement rejected")
	}

	if got := b.HumanState().Mistakes; got != 3 {
		t.Fatalf("mistakes = %d", got)
	}
	if got := b.OpponentState().Hints; got != oppHints+1 {
		t.Fatalf("third mistake should grant exactly one opponent hint: %d -> %d", oppHints, got)
	}
	if got := b.TimeRemaining(); got != startClock-3*mistakePenaltySeconds {
		t.Fatalf("clock penalty wrong: %d -> %d", startClock, got)
	}

	// 填對不觸發任何提示授予
	if !b.PlaceValue(r, c, sol) {
		t.Fatalf("correct placement rejected")
	}
	if got := b.OpponentState().Hints; got != oppHints+1 {
		t.Fatalf("correct placement granted a hint: %d", got)
	}
	if got := b.HumanState().Filled; got != 1 {
		t.Fatalf("filled = %d", got)
	}

	// 已持有正確值的格鎖定
	if b.PlaceValue(r, c, wrongValue(sol)) {
		t.Fatalf("locked correct cell accepted a write")
	}
	if !b.EraseCell(r, c) || b.HumanState().Filled != 0 {
		t.Fatalf("erase did not decrement filled")
	}
}

func TestOutcomeResolution(t *testing.T) {
	b, _ := testBattle(t, 99, Hooks{})
	total := b.Puzzle().HoleCount()

	cases := []struct {
		reason     dto.Reason
		human, opp int
		result     dto.Result
		delta      int
	}{
		{dto.ReasonHumanFinished, total, total - 5, dto.ResultWin, +25},
		{dto.ReasonOpponentFinished, total - 5, total, dto.ResultLose, -25},
		{dto.ReasonClockExpired, total - 3, total - 9, dto.ResultWin, +15},
		{dto.ReasonClockExpired, total - 9, total - 3, dto.ResultLose, -15},
		{dto.ReasonClockExpired, total - 6, total - 6, dto.ResultDraw, 0},
		{dto.ReasonForfeit, total - 6, total - 3, dto.ResultLose, -25},
	}
	for _, tc := range cases {
		b.human.Filled, b.opp.Filled = tc.human, tc.opp
		rep := b.resolveLocked(tc.reason)
		if rep.Result != tc.result || rep.RatingDelta != tc.delta {
			t.Fatalf("%s h=%d o=%d: got (%s, %+d), want (%s, %+d)",
				tc.reason, tc.human, tc.opp, rep.Result, rep.RatingDelta, tc.result, tc.delta)
		}
	}
}

func TestUnknownReasonPanics(t *testing.T) {
	b, _ := testBattle(t, 99, Hooks{})
	defer func() {
		if recover() == nil {
			t.Fatalf("unknown reason did not panic")
		}
	}()
	b.resolveLocked(dto.Reason("rage_quit"))
}

func TestHumanFinishCancelsOpponent(t *testing.T) {
	oppActions, ticks := 0, 0
	b, vt := testBattle(t, 1234, Hooks{
		OnOpponentAction: func(int, int) { oppActions++ },
		OnClockTick:      func(int) { ticks++ },
	})
	if err := b.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	// 虛擬時間不推進，瞬間填完整盤：對手與時鐘的在途排程必須被取消。
	p := b.Puzzle()
	for r := 0; r < grid.Size; r++ {
		for c := 0; c < grid.Size; c++ {
			if !p.IsClue(r, c) {
				b.PlaceValue(r, c, p.Solution[r][c])
			}
		}
	}

	rep := b.Report()
	if rep == nil || rep.Result != dto.ResultWin || rep.RatingDelta != 25 || rep.Reason != dto.ReasonHumanFinished {
		t.Fatalf("finish report wrong: %+v", rep)
	}
	if rep.HumanPct != 100 {
		t.Fatalf("human pct = %v", rep.HumanPct)
	}

	vt.Drain(time.Minute, 1000)
	if oppActions != 0 || ticks != 0 {
		t.Fatalf("callbacks fired after termination: opp=%d ticks=%d", oppActions, ticks)
	}
}

func TestForfeit(t *testing.T) {
	b, _ := testBattle(t, 5, Hooks{})
	if err := b.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	r, c, sol := firstHole(b)
	b.PlaceValue(r, c, sol)
	b.Forfeit()

	rep := b.Report()
	if rep.Result != dto.ResultLose || rep.RatingDelta != -25 || rep.Reason != dto.ReasonForfeit {
		t.Fatalf("forfeit report wrong: %+v", rep)
	}
}

func TestUnattendedBattleEndsDeterministically(t *testing.T) {
	run := func() *dto.BattleReport {
		b, vt := testBattle(t, 2026, Hooks{})
		if err := b.Start(); err != nil {
			t.Fatalf("start: %v", err)
		}
		vt.Drain(time.Minute, 100000)
		return b.Report()
	}
	rep := run()
	if rep == nil {
		t.Fatalf("battle never terminated")
	}
	// 玩家掛機：只可能輸給完成的對手，或拖到時間歸零。
	if rep.Reason != dto.ReasonOpponentFinished && rep.Reason != dto.ReasonClockExpired {
		t.Fatalf("unexpected reason: %s", rep.Reason)
	}
	if rep.Result == dto.ResultWin {
		t.Fatalf("idle human won: %+v", rep)
	}
	if !reflect.DeepEqual(rep, run()) {
		t.Fatalf("same seed produced different battles")
	}
}

func TestOpponentDelayBounds(t *testing.T) {
	b, _ := testBattle(t, 31415, Hooks{})
	total := b.Puzzle().HoleCount()
	rng := core.NewSeeded(161803)

	const samples = 10000
	for i := 0; i < samples; i++ {
		// 掃過所有階段與狀態組合
		b.opp.Filled = rng.IntN(total + 1)
		b.human.Filled = rng.IntN(total + 1)
		b.opp.Hints = rng.IntN(3)
		if rng.Chance(0.1) {
			b.pace.hasMistake = true
			b.pace.lastMistakeAt = b.tl.Now()
		}

		d, useHint := b.nextOpponentDelayLocked()
		lo, hi := time.Duration(minDelayMs)*time.Millisecond, time.Duration(maxDelayMs)*time.Millisecond
		if useHint {
			lo, hi = time.Duration(hintDelayMinMs)*time.Millisecond, time.Duration(hintDelayMaxMs)*time.Millisecond
		}
		if d < lo || d > hi {
			t.Fatalf("sample %d: delay %v outside [%v,%v] (hint=%v)", i, d, lo, hi, useHint)
		}
	}
}

func TestSimulateBatch(t *testing.T) {
	a := testArena(t)
	seed := int32(555)
	rounds := 12
	if testing.Short() {
		rounds = 3
	}

	rep, err := a.Simulate(SimOptions{Band: "easy", Rounds: rounds, Seed: &seed, HumanMistakeProb: -1})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if rep.Rounds != rounds {
		t.Fatalf("rounds = %d", rep.Rounds)
	}
	if rep.Wins+rep.Losses+rep.Draws != rounds {
		t.Fatalf("result counts do not add up: %+v", rep)
	}

	// 同一 (band, seed, rounds) 的整批模擬可重現
	r1, err := a.Simulate(SimOptions{Band: "easy", Rounds: rounds, Seed: &seed})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	r2, err := a.Simulate(SimOptions{Band: "easy", Rounds: rounds, Seed: &seed})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if r1.NetRating != r2.NetRating || r1.Wins != r2.Wins || r1.DurationP50 != r2.DurationP50 {
		t.Fatalf("batch not reproducible: %+v vs %+v", r1, r2)
	}
}

func TestSimulateRejectsBadOptions(t *testing.T) {
	a := testArena(t)
	if _, err := a.Simulate(SimOptions{Band: "easy", Rounds: 0}); err == nil {
		t.Fatalf("zero rounds accepted")
	}
	if _, err := a.Simulate(SimOptions{Band: "easy", Rounds: 1, HumanSpeed: -1}); err == nil {
		t.Fatalf("negative speed accepted")
	}
	if _, err := a.Simulate(SimOptions{Band: "easy", Rounds: 1, HumanMistakeProb: 2}); err == nil {
		t.Fatalf("mistake prob > 1 accepted")
	}
}
