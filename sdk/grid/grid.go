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

// Package grid 定義 9×9 數獨盤面的基本型別與約束檢查。
//
// Cells 是值型別（[9][9]uint8），0 代表空格。直接以陣列傳遞/複製是刻意的：
// 出題器與對局核心大量做「試填、遞迴、還原」，值語意讓複製就是快照，
// 不需要任何深拷貝工具。
package grid

import (
	"github.com/zintix-labs/sudoduel/errs"
)

// Size 為盤面邊長；Total 為總格數。
const (
	Size  = 9
	Total = Size * Size
)

// Cells 是 9×9 盤面，值域 [0,9]，0 表示空格。
type Cells [Size][Size]uint8

// Allowed 檢查在 (r,c) 放入 v 是否違反列／行／宮約束。
// 呼叫端保證 (r,c) 目前為空（或自行承擔既有值的干擾）。
func (g *Cells) Allowed(r, c int, v uint8) bool {
	for i := 0; i < Size; i++ {
		if g[r][i] == v || g[i][c] == v {
			return false
		}
	}
	br, bc := (r/3)*3, (c/3)*3
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			if g[br+dr][bc+dc] == v {
				return false
			}
		}
	}
	return true
}

// FindEmpty 以 row-major 順序回傳第一個空格；沒有空格時 ok 為 false。
func (g *Cells) FindEmpty() (r, c int, ok bool) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] == 0 {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// CountClues 回傳非零格數。
func (g *Cells) CountClues() int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] != 0 {
				n++
			}
		}
	}
	return n
}

// Full 回報盤面是否已無空格。
func (g *Cells) Full() bool {
	_, _, ok := g.FindEmpty()
	return !ok
}

// Valid 以 bitmask 掃描整個盤面，回報是否不存在任何列／行／宮重複。
// 空格不參與檢查。
func (g *Cells) Valid() bool {
	// rows + cols
	for i := 0; i < Size; i++ {
		rm, cm := 0, 0
		for j := 0; j < Size; j++ {
			if v := g[i][j]; v != 0 {
				bit := 1 << v
				if rm&bit != 0 {
					return false
				}
				rm |= bit
			}
			if v := g[j][i]; v != 0 {
				bit := 1 << v
				if cm&bit != 0 {
					return false
				}
				cm |= bit
			}
		}
	}
	// boxes
	for br := 0; br < 3; br++ {
		for bc := 0; bc < 3; bc++ {
			m := 0
			for dr := 0; dr < 3; dr++ {
				for dc := 0; dc < 3; dc++ {
					if v := g[br*3+dr][bc*3+dc]; v != 0 {
						bit := 1 << v
						if m&bit != 0 {
							return false
						}
						m |= bit
					}
				}
			}
		}
	}
	return true
}

// Encode 將盤面序列化為 81 字元的十進位字串（0 表示空格）。
// 這是題目/盤面在 HTTP 與紀錄檔中的可攜格式。
func (g *Cells) Encode() string {
	b := make([]byte, 0, Total)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			b = append(b, '0'+g[r][c])
		}
	}
	return string(b)
}

// Decode 解析 Encode 產生的 81 字元字串。
func Decode(s string) (Cells, error) {
	var g Cells
	if len(s) != Total {
		return g, errs.Warnf("grid text must be %d chars, got %d", Total, len(s))
	}
	for i := 0; i < Total; i++ {
		ch := s[i]
		if ch < '0' || ch > '9' {
			return g, errs.Warnf("grid text has invalid char %q at %d", ch, i)
		}
		g[i/Size][i%Size] = ch - '0'
	}
	return g, nil
}
