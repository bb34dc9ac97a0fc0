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

// Package gen 實作數獨的回溯求解、解數計數與出題。
//
// 三個入口共用同一套回溯骨架，但目的不同：
//   - Fill：把（可能部分填寫的）盤面補成完整合法解，候選順序由 RNG 洗牌，
//     讓同一個 seed 永遠長出同一個盤，不同 seed 長出不同盤。
//   - Solve：決定性求解（候選固定 1..9），給邊界 API 用。
//   - CountSolutions：計數完成盤數量、上限封頂，只用來回答「唯一 / 不唯一」。
package gen

import (
	"github.com/zintix-labs/sudoduel/sdk/core"
	"github.com/zintix-labs/sudoduel/sdk/grid"
)

// Fill 以 RNG 洗牌的候選順序把 g 補成完整合法解，就地修改並回報成功與否。
// 失敗只會發生在輸入本身已無解（呼叫端不應傳入非法盤面）。
func Fill(g *grid.Cells, c *core.Core) bool {
	var nums [9]uint8
	for i := range nums {
		nums[i] = uint8(i + 1)
	}
	var dfs func() bool
	dfs = func() bool {
		r, col, ok := g.FindEmpty()
		if !ok {
			return true
		}
		c.ShuffleBytes(nums[:])
		for _, v := range nums {
			if g.Allowed(r, col, v) {
				g[r][col] = v
				if dfs() {
					return true
				}
				g[r][col] = 0
			}
		}
		return false
	}
	return dfs()
}

// Solve 回傳 g 的一個完成盤；無解時 ok 為 false。輸入不被修改。
// 候選順序固定 1..9，因此結果是決定性的。
func Solve(g grid.Cells) (grid.Cells, bool) {
	var dfs func() bool
	dfs = func() bool {
		r, c, ok := g.FindEmpty()
		if !ok {
			return true
		}
		for v := uint8(1); v <= 9; v++ {
			if g.Allowed(r, c, v) {
				g[r][c] = v
				if dfs() {
					return true
				}
				g[r][c] = 0
			}
		}
		return false
	}
	ok := dfs()
	return g, ok
}

// solutionCap 是解數計數的硬上限。沒有這個封頂，精確計數在最壞情況是指數級；
// 出題器只需要分辨「恰好一個」與「多於一個」，2 就夠了。這不是可調參數。
const solutionCap = 2

// CountSolutions 回傳 g 的完成盤數量，最多數到 solutionCap 即停。
// 以值傳遞操作私有副本，呼叫端盤面不會被動到。
func CountSolutions(g grid.Cells) int {
	count := 0
	var dfs func() bool
	dfs = func() bool {
		if count >= solutionCap {
			return true // stop early
		}
		r, c, ok := g.FindEmpty()
		if !ok {
			count++
			return count >= solutionCap
		}
		for v := uint8(1); v <= 9; v++ {
			if g.Allowed(r, c, v) {
				g[r][c] = v
				if dfs() {
					return true
				}
				g[r][c] = 0
			}
		}
		return false
	}
	_ = dfs()
	return count
}
