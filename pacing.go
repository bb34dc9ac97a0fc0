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
	"time"

	"github.com/zintix-labs/sudoduel/dto"
	"github.com/zintix-labs/sudoduel/sdk/grid"
)

// phase 是對手的行為階段，決定思考時間的分布形狀。
type phase uint8

const (
	phaseWarmup phase = iota
	phaseNormal
	phaseFocused
	phaseFatigue
)

// 節奏模型參數。單位一律毫秒（延遲）或比例（機率、倍率）。
const (
	// 終局延遲夾取範圍。任何路徑算出的延遲最後都壓回這個區間。
	minDelayMs = 400
	maxDelayMs = 25000

	// 用提示幾乎是即時的
	hintDelayMinMs = 200
	hintDelayMaxMs = 600
	hintUseChance  = 0.5

	// 階段判定
	warmupBelowPct  = 0.12
	focusedAbovePct = 0.85
	fatigueStreak   = 8

	// 動能：進度逼近 1 時最多提速 25%
	momentumMaxSpeedup = 0.25

	// 失誤後 8 秒內慢 1.3–1.7 倍（被打亂後的恢復期）
	rattledWindow = 8 * time.Second

	// 玩家領先超過 0.15 時有 40% 機率趕工
	pressureGapPct = 0.15
	rushChance     = 0.40

	// 爆發：normal 階段 12% 機率開始 2–4 手快攻
	burstChance   = 0.12
	burstMinMoves = 2
	burstMaxMoves = 4

	// 長考：normal 階段無爆發時 8% 機率改成 5–15 秒停頓
	pauseChance = 0.08
	pauseMinMs  = 5000
	pauseMaxMs  = 15000

	// 對稱抖動 ±400ms
	jitterMs = 400
)

// pacingState 是對手節奏模型的內部狀態，每次對手動作後更新。
type pacingState struct {
	phase          phase
	burstRemaining int
	streak         int // consecutive successes
	lastMistakeAt  time.Duration
	hasMistake     bool
}

func newPacingState() pacingState {
	return pacingState{phase: phaseWarmup}
}

// scheduleOpponentLocked 計算下一手延遲並排程。呼叫端持鎖且保證未 ended。
func (b *Battle) scheduleOpponentLocked() {
	d, useHint := b.nextOpponentDelayLocked()
	b.oppH = b.tl.AfterFunc(d, func() { b.onOpponentMove(useHint) })
}

// nextOpponentDelayLocked 依序套用節奏模型：提示捷徑、階段分類、基準±變異、
// 階段倍率、動能、恢復期、競爭壓力、爆發、長考、抖動，最後夾取。
// 回傳延遲與「這一手要不要用提示」。
func (b *Battle) nextOpponentDelayLocked() (time.Duration, bool) {
	c := b.rng

	// 1) 有提示點數時丟硬幣：用提示幾乎即時，跳過整段階段邏輯。
	if b.opp.Hints > 0 && c.Chance(hintUseChance) {
		return msToDur(float64(c.Between(hintDelayMinMs, hintDelayMaxMs))), true
	}

	total := float64(b.puzzle.HoleCount())
	p := 0.0
	if total > 0 {
		p = float64(b.opp.Filled) / total
	}

	// 2) 階段分類。進入 fatigue 時重置連勝計數。
	switch {
	case p < warmupBelowPct:
		b.pace.phase = phaseWarmup
	case p > focusedAbovePct:
		b.pace.phase = phaseFocused
	case b.pace.streak > fatigueStreak:
		b.pace.phase = phaseFatigue
		b.pace.streak = 0
	default:
		b.pace.phase = phaseNormal
	}

	// 3) 基準 ± 變異
	v := float64(b.band.PaceVarMs)
	d := float64(b.band.PaceBaseMs) + c.Range(-v, v)

	// 4) 階段倍率
	switch b.pace.phase {
	case phaseWarmup:
		d *= c.Range(1.4, 2.0)
	case phaseFocused:
		d *= c.Range(0.5, 0.8)
	case phaseFatigue:
		d *= c.Range(1.2, 1.7)
	}

	// 5) 動能：線性提速，p→1 時最多 -25%
	d *= 1 - momentumMaxSpeedup*p

	// 6) 恢復期：最近 8 秒內有失誤就慢下來
	if b.pace.hasMistake && b.tl.Now()-b.pace.lastMistakeAt < rattledWindow {
		d *= c.Range(1.3, 1.7)
	}

	// 7) 競爭壓力：玩家領先太多時 40% 機率趕工
	hp := 0.0
	if total > 0 {
		hp = float64(b.human.Filled) / total
	}
	if hp-p > pressureGapPct && c.Chance(rushChance) {
		d *= c.Range(0.6, 0.8)
	}

	// 8) 爆發
	if b.pace.burstRemaining > 0 {
		d *= c.Range(0.25, 0.4)
		b.pace.burstRemaining--
	} else if b.pace.phase == phaseNormal {
		if c.Chance(burstChance) {
			b.pace.burstRemaining = c.Between(burstMinMoves, burstMaxMoves)
		} else if c.Chance(pauseChance) {
			// 9) 長考：整段延遲直接改寫
			d = float64(c.Between(pauseMinMs, pauseMaxMs))
		}
	}

	// 10) 抖動
	d += c.Range(-jitterMs, jitterMs)

	// 11) 夾取
	if d < minDelayMs {
		d = minDelayMs
	}
	if d > maxDelayMs {
		d = maxDelayMs
	}
	return msToDur(d), false
}

// onOpponentMove 在延遲到期後解算對手這一手。
func (b *Battle) onOpponentMove(useHint bool) {
	b.mu.Lock()
	if b.ended {
		b.mu.Unlock()
		return
	}

	var after []func()
	switch {
	case useHint && b.opp.Hints > 0:
		b.opp.Hints--
		b.opponentFillLocked()
	case b.rng.Chance(b.band.MistakeProb):
		b.opp.Mistakes++
		b.pace.streak = 0
		b.pace.burstRemaining = 0
		b.pace.lastMistakeAt = b.tl.Now()
		b.pace.hasMistake = true
		if b.opp.Mistakes%mistakesPerHintGrant == 0 {
			b.human.Hints++
			if h := b.hooks.OnHintGranted; h != nil {
				hints := b.human.Hints
				after = append(after, func() { h(hints) })
			}
		}
	default:
		b.opponentFillLocked()
		b.pace.streak++
	}

	if h := b.hooks.OnOpponentAction; h != nil {
		filled, total := b.opp.Filled, b.puzzle.HoleCount()
		after = append(after, func() { h(filled, total) })
	}

	// 完成檢查永遠先於下一手排程，每側至多一次 finished 轉移。
	if !b.opp.Finished && b.opp.Filled >= b.puzzle.HoleCount() {
		b.opp.Finished = true
		if !b.human.Finished {
			after = append(after, b.terminateLocked(dto.ReasonOpponentFinished)...)
		}
	}
	if !b.ended {
		b.scheduleOpponentLocked()
	}
	b.mu.Unlock()
	runAll(after)
}

// opponentFillLocked 把對手盤面中隨機一個未正確格填成正確值。
// 對手的失誤不落盤（不寫錯值），所以空格就是未完成格。
func (b *Battle) opponentFillLocked() {
	empty := make([]int, 0, grid.Total)
	for r := 0; r < grid.Size; r++ {
		for c := 0; c < grid.Size; c++ {
			if b.opp.Working[r][c] == 0 {
				empty = append(empty, r*grid.Size+c)
			}
		}
	}
	pos := b.rng.Pick(empty)
	if pos < 0 {
		return
	}
	r, c := pos/grid.Size, pos%grid.Size
	b.opp.Working[r][c] = b.puzzle.Solution[r][c]
	b.opp.Filled++
}

func msToDur(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
