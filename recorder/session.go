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
	"github.com/zintix-labs/sudoduel"
	"github.com/zintix-labs/sudoduel/dto"
	"github.com/zintix-labs/sudoduel/sdk/timeline"
)

// Session 把一場對局綁上磁帶：對手側走 Hooks 自動入帶，
// 玩家側由 UI 層在操作生效後呼叫 HumanPlace / HumanHint / HumanErase。
//
// 用法：
//
//	rec, _ := recorder.NewWriter(f)
//	ses := recorder.NewSession(rec, vt)
//	b, _ := arena.NewBattle(sudoduel.BattleConfig{
//		Band: "medium", Timeline: vt, Hooks: ses.Hooks(uiHooks),
//	})
//	ses.Start(arena.PuzzleDTO(b.Puzzle(), false))
type Session struct {
	w  *Writer
	tl timeline.Timeline
}

func NewSession(w *Writer, tl timeline.Timeline) *Session {
	return &Session{w: w, tl: tl}
}

func (s *Session) nowMs() int64 {
	return s.tl.Now().Milliseconds()
}

// Start 記錄開局事件（帶題面，不帶解盤）。
func (s *Session) Start(p dto.PuzzleDTO) error {
	return s.w.Append(Event{AtMs: s.nowMs(), Kind: KindStart, Puzzle: &p})
}

// Hooks 包裝對局回呼：先入帶，再轉交 chain。chain 的欄位允許為 nil。
func (s *Session) Hooks(chain sudoduel.Hooks) sudoduel.Hooks {
	return sudoduel.Hooks{
		OnOpponentAction: func(filled, total int) {
			_ = s.w.Append(Event{AtMs: s.nowMs(), Kind: KindOppAction, Filled: filled, Total: total})
			if h := chain.OnOpponentAction; h != nil {
				h(filled, total)
			}
		},
		OnHintGranted: func(hints int) {
			_ = s.w.Append(Event{AtMs: s.nowMs(), Kind: KindHintGranted, Hints: hints})
			if h := chain.OnHintGranted; h != nil {
				h(hints)
			}
		},
		OnClockTick: func(sec int) {
			_ = s.w.Append(Event{AtMs: s.nowMs(), Kind: KindClockTick, SecondsLeft: sec})
			if h := chain.OnClockTick; h != nil {
				h(sec)
			}
		},
		OnEnd: func(rep *dto.BattleReport) {
			_ = s.w.Append(Event{AtMs: s.nowMs(), Kind: KindEnd, Report: rep})
			if h := chain.OnEnd; h != nil {
				h(rep)
			}
		},
	}
}

// HumanPlace 記錄一次生效的玩家落子。
func (s *Session) HumanPlace(r, c int, v uint8) error {
	return s.w.Append(Event{AtMs: s.nowMs(), Kind: KindHumanPlace, Row: r, Col: c, Value: v})
}

// HumanHint 記錄一次生效的提示使用。
func (s *Session) HumanHint(r, c int) error {
	return s.w.Append(Event{AtMs: s.nowMs(), Kind: KindHumanHint, Row: r, Col: c})
}

// HumanErase 記錄一次生效的清格。
func (s *Session) HumanErase(r, c int) error {
	return s.w.Append(Event{AtMs: s.nowMs(), Kind: KindHumanErase, Row: r, Col: c})
}
