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

// Package sudoduel 提供數獨對戰引擎的「組裝入口（assembler）」與「運行入口（runtime entry）」。
//
// Arena 把兩個必需的地基組裝在一起：
//  1. Catalog：難度目錄（Single Source of Truth），定義有哪些難度分級與其參數。
//  2. PRNGFactory：亂數核心工廠，保證可重現（reproducible）與可審計（auditable）。
//
// 在此之上提供兩個入口：
//   - Generate：出一題保證唯一解的數獨（可用 seed 重現）。
//   - NewBattle：建立一場「玩家 vs 模擬對手」的即時對戰（caller-owned，
//     沒有任何全域單例，多場對局可以並存）。
//
// 典型使用情境：
//   - 後端服務（HTTP）：由 Arena 出題並跑批次模擬。
//   - 客戶端：由 Arena 建立 Battle，掛上 UI hooks，呼叫 Start。
package sudoduel

import (
	"io/fs"

	"github.com/zintix-labs/sudoduel/catalog"
	"github.com/zintix-labs/sudoduel/configs"
	"github.com/zintix-labs/sudoduel/corefmt"
	"github.com/zintix-labs/sudoduel/dto"
	"github.com/zintix-labs/sudoduel/errs"
	"github.com/zintix-labs/sudoduel/sdk/core"
	"github.com/zintix-labs/sudoduel/sdk/gen"
	"github.com/zintix-labs/sudoduel/spec"
)

// Arena 是組裝完成、可出題可開局的引擎入口。建立後唯讀，可安全共用。
type Arena struct {
	cat *catalog.Catalog
	cf  core.PRNGFactory
}

// New 以指定的 PRNG 工廠與設定來源建立 Arena。
//
// 參數要求（是合約的一部分）：
//   - cf 不能為 nil：沒有 RNG 工廠就無法建立可重現的核心。
//   - cfgs 必須含有 file 指名的難度設定檔。
func New(cf core.PRNGFactory, cfgs fs.FS, file string) (*Arena, error) {
	if cf == nil {
		return nil, errs.NewFatal("prng factory is required")
	}
	cat, err := catalog.Load(cfgs, file)
	if err != nil {
		return nil, errs.Wrap(err, "load band catalog failed")
	}
	return &Arena{cat: cat, cf: cf}, nil
}

// NewDefault 以內嵌設定檔與預設 PRNG（PCG32）建立 Arena。最短路徑。
func NewDefault() (*Arena, error) {
	return New(core.Default(), configs.FS, configs.BandsFile)
}

// Band 解析難度名稱；不認得的名稱回落到預設難度（不是錯誤，見錯誤策略）。
func (a *Arena) Band(name string) *spec.BandSetting {
	return a.cat.Resolve(name)
}

// Bands 以穩定順序列出所有難度設定。
func (a *Arena) Bands() []spec.BandSetting {
	return a.cat.Bands()
}

// Generate 依難度出題。seed 為 nil 時由平台亂數源決定（出生 seed 仍會記錄）。
func (a *Arena) Generate(band string, seed *int32) *gen.Puzzle {
	return gen.Generate(a.cat.Resolve(band), seed)
}

// GenerateFromShareCode 解析 "band:seed" 挑戰碼並重現該題。
func (a *Arena) GenerateFromShareCode(code string) (*gen.Puzzle, error) {
	band, seed, err := corefmt.ParseShareCode(code)
	if err != nil {
		return nil, err
	}
	return gen.Generate(a.cat.Resolve(band), &seed), nil
}

// Solve 回傳盤面的一個完成盤；無解時 ok 為 false。邊界 API 用。
func (a *Arena) Solve(g [9][9]uint8) ([9][9]uint8, bool) {
	out, ok := gen.Solve(g)
	return out, ok
}

// PuzzleDTO 把題目轉成線上表示。withSolution 控制是否帶出完成盤
// （對外出題 API 通常不帶，批次模擬與除錯才帶）。
func (a *Arena) PuzzleDTO(p *gen.Puzzle, withSolution bool) dto.PuzzleDTO {
	d := dto.PuzzleDTO{
		Band:      string(p.Band),
		Seed:      p.Seed,
		ShareCode: corefmt.ShareCode(string(p.Band), p.Seed),
		ClueCount: p.ClueCount,
		Grid:      p.Holes.Encode(),
	}
	if withSolution {
		d.Solution = p.Solution.Encode()
	}
	return d
}

// deriveSeed 由基底 seed 派生子 seed（splitmix 風格混淆）。
//
// 出題與對局節奏共用一個使用者提供的 seed，但必須各自擁有獨立的 RNG 流：
// 否則對局取樣會消耗出題流，破壞「同一分享碼重現同一題」的合約。
func deriveSeed(base int32, stream uint32) int32 {
	z := uint32(base) + 0x9e3779b9*(stream+1)
	z = (z ^ (z >> 16)) * 0x85ebca6b
	z = (z ^ (z >> 13)) * 0xc2b2ae35
	z ^= z >> 16
	return int32(z & 0x7fffffff)
}
