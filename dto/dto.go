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

// Package dto 定義跨邊界（HTTP / 紀錄檔 / 進度系統）的資料形狀。
//
// 核心型別（gen.Puzzle、Battle）不直接出現在線上格式；要出邊界一律先轉 DTO，
// 讓內部重構不會破壞對外相容性。
package dto

// Result 是一場對局的終局結果。
type Result string

const (
	ResultWin  Result = "win"
	ResultLose Result = "lose"
	ResultDraw Result = "draw"
)

// Reason 是對局的終止原因。沒有其他合法值；不認得的 Reason 是程式錯誤。
type Reason string

const (
	ReasonHumanFinished    Reason = "human_finished"
	ReasonOpponentFinished Reason = "opponent_finished"
	ReasonClockExpired     Reason = "clock_expired"
	ReasonForfeit          Reason = "forfeit"
)

// PuzzleDTO 是一題數獨的線上表示。Grid/Solution 為 81 字元字串（0 = 空格）。
type PuzzleDTO struct {
	Band      string `json:"band"`
	Seed      int32  `json:"seed"`
	ShareCode string `json:"share_code"`
	ClueCount int    `json:"clue_count"`
	Grid      string `json:"grid"`
	Solution  string `json:"solution,omitempty"`
}

// BattleReport 是對局終止時交給外部評分/進度系統的 hand-off 資料。
// 核心不持久化也不套用這份資料，只負責產生它。
type BattleReport struct {
	Result          Result  `json:"result"`
	Reason          Reason  `json:"reason"`
	RatingDelta     int     `json:"rating_delta"`
	OpponentLabel   string  `json:"opponent_label"`
	Band            string  `json:"band"`
	Seed            int32   `json:"seed"`
	HumanPct        float64 `json:"human_pct"`
	OpponentPct     float64 `json:"opponent_pct"`
	HumanMistakes   int     `json:"human_mistakes"`
	OppMistakes     int     `json:"opponent_mistakes"`
	TimeUsedSeconds int     `json:"time_used_seconds"`
}
