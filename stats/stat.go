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

// Package stats 彙整批次對局模擬的統計報告。
//
// Collector 在模擬迴圈中逐場累積（熱路徑只做加法），Done() 一次算出
// 比率、信賴區間與分位數並凍結成 BattleStatReport。
package stats

import (
	"sort"

	"github.com/zintix-labs/sudoduel/dto"
	"github.com/zintix-labs/sudoduel/errs"
)

// CI 信賴區間。
type CI struct {
	Lo float64 `json:"Lo"`
	Hi float64 `json:"Hi"`
}

// PointStat 點估計：估計值與 95% 信賴區間。
type PointStat struct {
	Hat float64 `json:"Hat"`
	CI  CI      `json:"CI"`
}

// BattleStatReport 是一批對局的統計結果（以玩家視角計勝負）。
type BattleStatReport struct {
	Band   string `json:"Band"`
	Rounds int    `json:"Rounds"`

	Wins   int `json:"Wins"`
	Losses int `json:"Losses"`
	Draws  int `json:"Draws"`

	WinRate  PointStat `json:"WinRate"`
	LoseRate PointStat `json:"LoseRate"`
	DrawRate PointStat `json:"DrawRate"`

	ByReason map[dto.Reason]int `json:"ByReason"`

	AvgHumanPct      float64 `json:"AvgHumanPct"`
	AvgOppPct        float64 `json:"AvgOppPct"`
	AvgHumanMistakes float64 `json:"AvgHumanMistakes"`
	AvgOppMistakes   float64 `json:"AvgOppMistakes"`
	NetRating        int     `json:"NetRating"`

	// 對局長度（秒）的經驗分位數
	DurationP10 float64 `json:"DurationP10"`
	DurationP50 float64 `json:"DurationP50"`
	DurationP90 float64 `json:"DurationP90"`

	isDone bool
}

// Collector 逐場累積對局報告。非併發安全；一個 worker 一個 Collector。
type Collector struct {
	band      string
	rounds    int
	wins      int
	losses    int
	draws     int
	byReason  map[dto.Reason]int
	humanPct  float64
	oppPct    float64
	humanMist int
	oppMist   int
	rating    int
	durations []float64
}

func NewCollector(band string) *Collector {
	return &Collector{
		band:     band,
		byReason: make(map[dto.Reason]int, 4),
	}
}

// Add 累積一場終局報告。
func (c *Collector) Add(rep *dto.BattleReport) error {
	if rep == nil {
		return errs.NewWarn("nil battle report")
	}
	c.rounds++
	switch rep.Result {
	case dto.ResultWin:
		c.wins++
	case dto.ResultLose:
		c.losses++
	case dto.ResultDraw:
		c.draws++
	default:
		return errs.Warnf("unknown result %q", rep.Result)
	}
	c.byReason[rep.Reason]++
	c.humanPct += rep.HumanPct
	c.oppPct += rep.OpponentPct
	c.humanMist += rep.HumanMistakes
	c.oppMist += rep.OppMistakes
	c.rating += rep.RatingDelta
	c.durations = append(c.durations, float64(rep.TimeUsedSeconds))
	return nil
}

// Done 結算並凍結報告。空集合回錯誤。
func (c *Collector) Done() (*BattleStatReport, error) {
	if c.rounds == 0 {
		return nil, errs.NewWarn("no rounds collected")
	}
	n := float64(c.rounds)
	sort.Float64s(c.durations)

	r := &BattleStatReport{
		Band:             c.band,
		Rounds:           c.rounds,
		Wins:             c.wins,
		Losses:           c.losses,
		Draws:            c.draws,
		WinRate:          proportion(c.wins, c.rounds),
		LoseRate:         proportion(c.losses, c.rounds),
		DrawRate:         proportion(c.draws, c.rounds),
		ByReason:         c.byReason,
		AvgHumanPct:      c.humanPct / n,
		AvgOppPct:        c.oppPct / n,
		AvgHumanMistakes: float64(c.humanMist) / n,
		AvgOppMistakes:   float64(c.oppMist) / n,
		NetRating:        c.rating,
		DurationP10:      quantileSorted(0.10, c.durations),
		DurationP50:      quantileSorted(0.50, c.durations),
		DurationP90:      quantileSorted(0.90, c.durations),
		isDone:           true,
	}
	return r, nil
}
