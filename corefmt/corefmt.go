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

// Package corefmt 提供邊界層的純文字編解碼工具。
package corefmt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/zintix-labs/sudoduel/errs"
)

// ShareCode 把 (band, seed) 組成可分享的純文字挑戰碼，例如 "medium:12345"。
//
// 同一個挑戰碼在任何安裝上重新生成的題目逐位元相同（seed 合約），
// 這是「把同一題丟給朋友打」的基礎。
func ShareCode(band string, seed int32) string {
	return fmt.Sprintf("%s:%d", strings.ToLower(strings.TrimSpace(band)), seed)
}

// ParseShareCode 解析 ShareCode 產生的挑戰碼。
// band 名稱是否存在由呼叫端的 catalog 決定（不認得的名稱會回落預設難度）。
func ParseShareCode(code string) (band string, seed int32, err error) {
	i := strings.LastIndexByte(code, ':')
	if i <= 0 || i == len(code)-1 {
		return "", 0, errs.Warnf("share code must look like band:seed, got %q", code)
	}
	band = strings.ToLower(strings.TrimSpace(code[:i]))
	n, perr := strconv.ParseInt(code[i+1:], 10, 32)
	if perr != nil {
		return "", 0, errs.Warnf("share code seed is not a 32-bit integer: %q", code[i+1:])
	}
	if n < 0 {
		return "", 0, errs.Warnf("share code seed must be non-negative: %d", n)
	}
	return band, int32(n), nil
}

// PadCell 把 s 以顯示寬度（非 byte 長度）右補空白到 w，給報表對欄用。
// CJK 字元寬度為 2，純 len() 對不齊。
func PadCell(s string, w int) string {
	d := w - runewidth.StringWidth(s)
	if d <= 0 {
		return s
	}
	return s + strings.Repeat(" ", d)
}

// PadLeft 與 PadCell 相同但左補空白（數字欄右對齊用）。
func PadLeft(s string, w int) string {
	d := w - runewidth.StringWidth(s)
	if d <= 0 {
		return s
	}
	return strings.Repeat(" ", d) + s
}
