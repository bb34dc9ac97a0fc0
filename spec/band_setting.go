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

// Package spec 定義難度分級（band）的設定結構。
//
// 一個 band 同時參數化兩件事：
//  1. 出題器：允許的提示數（clue）區間 [MinClues, MaxClues]，越少越難。
//  2. 對手節奏模型：基準思考時間、變異量、失誤機率。
//
// 設定由 YAML 檔提供（見 catalog 套件），結構在 Init() 時檢查並補齊衍生值。
package spec

import (
	"strings"

	"github.com/zintix-labs/sudoduel/errs"
)

// Band 是難度名稱（小寫正規化後的 key）。
type Band string

// BandSetting 是單一難度分級的完整設定。
//
// YAML 對應（configs/bands.yaml）：
//
//   - name: medium
//     min_clues: 32
//     max_clues: 37
//     pace_base_ms: 5500
//     pace_var_ms: 2000
//     mistake_prob: 0.12
//     start_hints: 1
//     battle_seconds: 600
type BandSetting struct {
	Name          string  `yaml:"name"           json:"name"`
	MinClues      int     `yaml:"min_clues"      json:"min_clues"`
	MaxClues      int     `yaml:"max_clues"      json:"max_clues"`
	PaceBaseMs    int     `yaml:"pace_base_ms"   json:"pace_base_ms"`
	PaceVarMs     int     `yaml:"pace_var_ms"    json:"pace_var_ms"`
	MistakeProb   float64 `yaml:"mistake_prob"   json:"mistake_prob"`
	StartHints    int     `yaml:"start_hints"    json:"start_hints"`
	BattleSeconds int     `yaml:"battle_seconds" json:"battle_seconds"`
	initFlag      bool
}

// Init 檢查設定並補齊預設值。重複呼叫是 no-op。
func (bs *BandSetting) Init() error {
	if bs.initFlag {
		return nil
	}
	bs.Name = strings.ToLower(strings.TrimSpace(bs.Name))
	if bs.Name == "" {
		return errs.NewFatal("band name required")
	}
	if bs.MinClues < 17 || bs.MaxClues > 81 || bs.MinClues > bs.MaxClues {
		// 17 是數獨唯一解的已知下界，低於它的設定一定是寫錯了。
		return errs.Fatalf("band %s has invalid clue range [%d,%d]", bs.Name, bs.MinClues, bs.MaxClues)
	}
	if bs.PaceBaseMs <= 0 || bs.PaceVarMs < 0 || bs.PaceVarMs >= bs.PaceBaseMs {
		return errs.Fatalf("band %s has invalid pacing pair base=%d var=%d", bs.Name, bs.PaceBaseMs, bs.PaceVarMs)
	}
	if bs.MistakeProb < 0 || bs.MistakeProb > 1 {
		return errs.Fatalf("band %s has invalid mistake_prob %v", bs.Name, bs.MistakeProb)
	}
	if bs.StartHints < 0 {
		return errs.Fatalf("band %s has negative start_hints", bs.Name)
	}
	if bs.StartHints == 0 {
		bs.StartHints = 1
	}
	if bs.BattleSeconds == 0 {
		bs.BattleSeconds = 600
	}
	if bs.BattleSeconds < 60 {
		return errs.Fatalf("band %s battle_seconds too small: %d", bs.Name, bs.BattleSeconds)
	}
	bs.initFlag = true
	return nil
}

// Band 回傳正規化後的難度 key。
func (bs *BandSetting) Band() Band {
	return Band(bs.Name)
}
