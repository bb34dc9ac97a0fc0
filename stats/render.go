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
	"encoding/json"
	"fmt"
	"io"

	"github.com/zintix-labs/sudoduel/corefmt"
	"github.com/zintix-labs/sudoduel/dto"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// StatReportRender 定義輸出行為。
type StatReportRender interface {
	Write(w io.Writer, r *BattleStatReport) error
}

// Json渲染
type JsonStatReportRender struct{}

func (jr *JsonStatReportRender) Write(w io.Writer, r *BattleStatReport) error {
	return json.NewEncoder(w).Encode(r)
}

// 對齊的純文字表格渲染（CLI 報表用）。
type TableStatReportRender struct{}

const labelWidth = 22

func (tr *TableStatReportRender) Write(w io.Writer, r *BattleStatReport) error {
	p := message.NewPrinter(language.English)

	row := func(label, value string) error {
		_, err := fmt.Fprintf(w, "%s %s\n", corefmt.PadCell(label, labelWidth), value)
		return err
	}
	rate := func(ps PointStat) string {
		return p.Sprintf("%.2f%% (95%% CI %.2f%%–%.2f%%)", ps.Hat*100, ps.CI.Lo*100, ps.CI.Hi*100)
	}

	if err := row("Band", r.Band); err != nil {
		return err
	}
	_ = row("Rounds", p.Sprintf("%d", r.Rounds))
	_ = row("Win / Lose / Draw", p.Sprintf("%d / %d / %d", r.Wins, r.Losses, r.Draws))
	_ = row("WinRate", rate(r.WinRate))
	_ = row("LoseRate", rate(r.LoseRate))
	_ = row("DrawRate", rate(r.DrawRate))
	for _, reason := range []dto.Reason{
		dto.ReasonHumanFinished, dto.ReasonOpponentFinished,
		dto.ReasonClockExpired, dto.ReasonForfeit,
	} {
		if n, ok := r.ByReason[reason]; ok {
			_ = row("  "+string(reason), p.Sprintf("%d", n))
		}
	}
	_ = row("AvgProgress H/O", p.Sprintf("%.1f%% / %.1f%%", r.AvgHumanPct, r.AvgOppPct))
	_ = row("AvgMistakes H/O", p.Sprintf("%.2f / %.2f", r.AvgHumanMistakes, r.AvgOppMistakes))
	_ = row("NetRating", p.Sprintf("%+d", r.NetRating))
	return row("Duration P10/P50/P90", p.Sprintf("%.0fs / %.0fs / %.0fs", r.DurationP10, r.DurationP50, r.DurationP90))
}
