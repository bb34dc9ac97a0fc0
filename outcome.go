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
	"fmt"

	"github.com/zintix-labs/sudoduel/dto"
)

// 評分增減的固定值。
const (
	deltaFinish  = 25 // 任一方完成整盤
	deltaTimeout = 15 // 時間到比進度
)

// resolveLocked 在終止時恰好被呼叫一次，由終局狀態決出結果與評分增減，
// 並組出交給外部進度系統的 hand-off 報告。呼叫端持鎖。
//
// 結果表：
//   - 玩家完成  → win  +25
//   - 對手完成  → lose -25
//   - 時鐘歸零  → 比完成比例，高者勝 ±15；完全相同 → draw 0
//   - 棄局      → lose -25
//
// 沒有其他合法原因；不認得的 Reason 是程式錯誤，直接 panic。
func (b *Battle) resolveLocked(reason dto.Reason) *dto.BattleReport {
	total := b.puzzle.HoleCount()
	hp, op := 0.0, 0.0
	if total > 0 {
		hp = float64(b.human.Filled) / float64(total)
		op = float64(b.opp.Filled) / float64(total)
	}

	var result dto.Result
	var delta int
	switch reason {
	case dto.ReasonHumanFinished:
		result, delta = dto.ResultWin, +deltaFinish
	case dto.ReasonOpponentFinished:
		result, delta = dto.ResultLose, -deltaFinish
	case dto.ReasonClockExpired:
		switch {
		case hp > op:
			result, delta = dto.ResultWin, +deltaTimeout
		case hp < op:
			result, delta = dto.ResultLose, -deltaTimeout
		default:
			result, delta = dto.ResultDraw, 0
		}
	case dto.ReasonForfeit:
		result, delta = dto.ResultLose, -deltaFinish
	default:
		panic(fmt.Sprintf("sudoduel: unknown termination reason %q", reason))
	}

	return &dto.BattleReport{
		Result:          result,
		Reason:          reason,
		RatingDelta:     delta,
		OpponentLabel:   b.opponentLabel,
		Band:            b.band.Name,
		Seed:            b.puzzle.Seed,
		HumanPct:        hp * 100,
		OpponentPct:     op * 100,
		HumanMistakes:   b.human.Mistakes,
		OppMistakes:     b.opp.Mistakes,
		TimeUsedSeconds: b.band.BattleSeconds - b.timeLeft,
	}
}
