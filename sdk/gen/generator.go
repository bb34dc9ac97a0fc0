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

package gen

import (
	"github.com/zintix-labs/sudoduel/sdk/core"
	"github.com/zintix-labs/sudoduel/sdk/grid"
	"github.com/zintix-labs/sudoduel/spec"
)

// Puzzle 是一題保證唯一解的數獨。
//
// 不變量：
//   - Holes 恰好有一個完成盤，且該完成盤等於 Solution。
//   - Holes 的每個非零格等於 Solution 的對應格。
//   - ClueCount == Holes.CountClues()，且 >= band 的 MinClues。
//
// Seed 永遠被記錄（未指定時由平台亂數源產生），因此任何一題都可以用
// (band, seed) 重現，這是分享碼功能的基礎。
type Puzzle struct {
	Holes     grid.Cells
	Solution  grid.Cells
	Band      spec.Band
	Seed      int32
	ClueCount int
}

// Generate 依難度設定出題。seed 為 nil 時以平台亂數源取 seed。
//
// 流程：
//  1. 以 seed 建立本次出題專用的 RNG（每次呼叫獨立實例，
//     seeded 模式不可能洩漏到後續不相關的呼叫）。
//  2. Fill 空盤成完整解。
//  3. 在 [MinClues, MaxClues] 均勻抽一個目標提示數。
//  4. 以洗牌順序走訪全部 81 格：試著清掉，解數不再恰好為 1 就還原。
//  5. 挖到目標或走完為止。提示數高於目標不是錯誤——代表唯一性撐不到
//     目標，這是可接受的結果。
func Generate(bs *spec.BandSetting, seed *int32) *Puzzle {
	var c *core.Core
	var s int32
	if seed != nil {
		s = *seed
		c = core.NewSeeded(s)
	} else {
		c, s = core.NewRandom()
	}

	var solution grid.Cells
	// 空盤永遠可補滿，Fill 在這裡不會失敗。
	Fill(&solution, c)

	targetClues := c.Between(bs.MinClues, bs.MaxClues)
	removeTarget := grid.Total - targetClues

	positions := make([]int, grid.Total)
	for i := range positions {
		positions[i] = i
	}
	c.ShuffleInts(positions)

	holes := solution
	removed := 0
	for _, pos := range positions {
		if removed >= removeTarget {
			break
		}
		r, col := pos/grid.Size, pos%grid.Size
		old := holes[r][col]
		holes[r][col] = 0
		if CountSolutions(holes) != 1 {
			holes[r][col] = old
			continue
		}
		removed++
	}

	return &Puzzle{
		Holes:     holes,
		Solution:  solution,
		Band:      bs.Band(),
		Seed:      s,
		ClueCount: grid.Total - removed,
	}
}

// IsClue 回報 (r,c) 是否為題目格（不可被對局操作改寫）。
func (p *Puzzle) IsClue(r, c int) bool {
	return p.Holes[r][c] != 0
}

// HoleCount 回傳雙方各自需要填滿的格數。
func (p *Puzzle) HoleCount() int {
	return grid.Total - p.ClueCount
}
