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
	"github.com/zintix-labs/sudoduel/errs"
	"github.com/zintix-labs/sudoduel/sdk/core"
	"github.com/zintix-labs/sudoduel/sdk/grid"
	"github.com/zintix-labs/sudoduel/sdk/timeline"
	"github.com/zintix-labs/sudoduel/stats"
)

// SimOptions 描述一次批次模擬。
type SimOptions struct {
	Band   string
	Rounds int
	// Seed 為 nil 時由平台亂數源決定基底 seed；每一場再由基底派生，
	// 因此同一 (Band, Seed, Rounds) 的整批模擬完全可重現。
	Seed *int32
	// HumanSpeed 縮放腳本玩家的思考時間（1.0 = 與對手同級，<1 更快）。
	// 0 視為 1.0。
	HumanSpeed float64
	// HumanMistakeProb 腳本玩家的失誤率；負值表示沿用難度設定，0 表示不失誤。
	HumanMistakeProb float64
	// OnRound 每完成一場觸發（進度條用），可為 nil。
	OnRound func(done int)
}

const simMaxEvents = 200000

// Simulate 在虛擬時間軸上跑一批對局並彙整統計。
//
// 腳本玩家走「對外」的 PlaceValue / UseHint API——和真人走同一條路，
// 所以批次模擬同時是對玩家操作面的整合測試。虛擬時間讓一千場在毫秒級跑完，
// 事件順序與真實時鐘下完全一致。
func (a *Arena) Simulate(opt SimOptions) (*stats.BattleStatReport, error) {
	if opt.Rounds < 1 || opt.Rounds > 1000000 {
		return nil, errs.NewWarn("rounds must be between 1 and 1,000,000")
	}
	bs := a.cat.Resolve(opt.Band)
	if opt.HumanSpeed == 0 {
		opt.HumanSpeed = 1.0
	}
	if opt.HumanSpeed < 0 {
		return nil, errs.NewWarn("human speed must be positive")
	}
	if opt.HumanMistakeProb < 0 {
		opt.HumanMistakeProb = bs.MistakeProb
	}
	if opt.HumanMistakeProb > 1 {
		return nil, errs.NewWarn("human mistake prob must be <= 1")
	}

	var baseSeed int32
	if opt.Seed != nil {
		baseSeed = *opt.Seed
	} else {
		baseSeed = core.RandomSeed()
	}

	col := stats.NewCollector(bs.Name)
	for i := 0; i < opt.Rounds; i++ {
		roundSeed := deriveSeed(baseSeed, uint32(i)+2)
		rep, err := a.simulateOne(bs.Name, roundSeed, opt)
		if err != nil {
			return nil, err
		}
		if err := col.Add(rep); err != nil {
			return nil, err
		}
		if opt.OnRound != nil {
			opt.OnRound(i + 1)
		}
	}
	return col.Done()
}

// simulateOne 跑一場：虛擬時間軸 + 腳本玩家 vs 內建對手。
func (a *Arena) simulateOne(band string, seed int32, opt SimOptions) (*dto.BattleReport, error) {
	vt := timeline.NewVirtual()
	b, err := a.NewBattle(BattleConfig{Band: band, Seed: &seed, Timeline: vt})
	if err != nil {
		return nil, err
	}

	script := &scriptedHuman{
		b:           b,
		vt:          vt,
		rng:         core.NewSeeded(deriveSeed(seed, 9)),
		speed:       opt.HumanSpeed,
		mistakeProb: opt.HumanMistakeProb,
	}

	if err := b.Start(); err != nil {
		return nil, err
	}
	script.schedule()
	vt.Drain(time.Minute, simMaxEvents)

	rep := b.Report()
	if rep == nil {
		return nil, errs.NewFatal("simulated battle never terminated")
	}
	return rep, nil
}

// scriptedHuman 以難度的節奏參數近似一個真人：
// 基準±變異的思考時間、固定失誤率、有提示點數時偶爾花掉。
type scriptedHuman struct {
	b           *Battle
	vt          *timeline.Virtual
	rng         *core.Core
	speed       float64
	mistakeProb float64
}

func (s *scriptedHuman) schedule() {
	bs := s.b.band
	v := float64(bs.PaceVarMs)
	d := (float64(bs.PaceBaseMs) + s.rng.Range(-v, v)) * s.speed
	if d < minDelayMs {
		d = minDelayMs
	}
	if d > maxDelayMs {
		d = maxDelayMs
	}
	s.vt.AfterFunc(msToDur(d), s.move)
}

func (s *scriptedHuman) move() {
	if s.b.Ended() {
		return
	}
	st := s.b.HumanState()
	sol := s.b.Puzzle().Solution

	// 找一個還未持有正確值的非題目格
	open := make([]int, 0, grid.Total)
	for r := 0; r < grid.Size; r++ {
		for c := 0; c < grid.Size; c++ {
			if !s.b.Puzzle().IsClue(r, c) && st.Working[r][c] != sol[r][c] {
				open = append(open, r*grid.Size+c)
			}
		}
	}
	pos := s.rng.Pick(open)
	if pos >= 0 {
		r, c := pos/grid.Size, pos%grid.Size
		switch {
		case st.Hints > 0 && s.rng.Chance(0.25):
			s.b.UseHint(r, c)
		case s.rng.Chance(s.mistakeProb):
			wrong := uint8(s.rng.Between(1, 9))
			if wrong == sol[r][c] {
				wrong = sol[r][c]%9 + 1
			}
			s.b.PlaceValue(r, c, wrong)
		default:
			s.b.PlaceValue(r, c, sol[r][c])
		}
	}
	if !s.b.Ended() {
		s.schedule()
	}
}
