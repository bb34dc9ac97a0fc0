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

// Package core 提供 Sudoduel 的亂數地基（PRNG 合約 + 取樣工具）。
//
// 整個引擎（出題器的洗牌與挖洞、對手節奏模型的每一次機率決策）都從「單一」
// core.Core 實例取樣。這是可重現性的合約基礎：
//   - 相同的 32-bit seed ⇒ 相同的取樣序列 ⇒ 相同的題目 / 相同的模擬軌跡。
//   - 未指定 seed 時，以 crypto/rand 取得平台亂數作為起點（不可預測，但仍可追溯，
//     因為出生 seed 會被記錄在 Puzzle / Battle 上）。
package core

// RAND 定義核心亂數取樣能力。
//
// 與其只要求 Uint64，這裡讓 PRNG 自己提供 bounded 與浮點取樣，
// 使 32-bit 原生輸出的產生器（如 PCG32）不必繞路退化成慢路徑。
type RAND interface {
	// Uint32 回傳非負 uint32 亂數。
	Uint32() uint32
	// Uint64 回傳非負 uint64 亂數。
	Uint64() uint64
	// Float64 回傳 [0,1) 的浮點亂數。
	Float64() float64
	// IntN 回傳 [0,n) 的 int 亂數，若 n <= 0 回傳 -1。
	IntN(int) int
	// UintN 回傳 [0,n) 的 uint 亂數，若 n == 0 回傳 0。
	UintN(uint) uint
}

// PRNGFactory 依 seed 建立新的 PRNG。
//
// 合約（很重要）：在同一個實作與同一個版本下，New(seed) 必須是「決定性」的——
// 相同的 seed 必須產生相同的初始內部狀態與輸出序列。
// seed 寬度刻意限定在 32-bit：題目分享碼（band:seed）要求 seed 是可以用
// 十進位短字串傳遞的值。
type PRNGFactory interface {
	New(int32) RAND
}

// DefaultPRNG 是預設工廠，以 PCG32 (XSH RR) 作為實作。
type DefaultPRNG struct{}

func (d *DefaultPRNG) New(seed int32) RAND {
	return newPCG32WithSeed(seed)
}

func Default() *DefaultPRNG {
	return &DefaultPRNG{}
}

// Core 封裝 PRNG，並提供常用取樣與工具方法。
type Core struct {
	RAND
}

// New 允許使用外部自實現的 PRNG 建立 Core。
func New(rng RAND) *Core {
	return &Core{rng}
}

// NewSeeded 以指定 seed 建立決定性 Core。
func NewSeeded(seed int32) *Core {
	return &Core{newPCG32WithSeed(seed)}
}

// NewRandom 以平台亂數源（crypto/rand）建立不可預測的 Core。
// 回傳出生 seed，方便呼叫端記錄以供追溯。
func NewRandom() (*Core, int32) {
	seed := RandomSeed()
	return NewSeeded(seed), seed
}

// Range 回傳 [lo,hi) 的均勻浮點亂數；hi <= lo 時直接回傳 lo。
func (c *Core) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + c.Float64()*(hi-lo)
}

// Chance 以機率 p 回傳 true；p <= 0 恆為 false、p >= 1 恆為 true。
func (c *Core) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return c.Float64() < p
}

// Between 回傳 [lo,hi] 的均勻整數亂數（含兩端）；hi < lo 時回傳 lo。
func (c *Core) Between(lo, hi int) int {
	if hi < lo {
		return lo
	}
	return lo + c.IntN(hi-lo+1)
}

// Pick 從列表中隨機選取一個元素，若列表為空回傳 -1。
// 熱路徑中只使用哨兵值回傳。
func (c *Core) Pick(src []int) int {
	if len(src) == 0 {
		return -1
	}
	return src[c.IntN(len(src))]
}

// ShuffleInts 使用 Fisher-Yates 演算法對 []int 進行就地隨機重排。
// O(N) 時間、零配置，且所有 N! 種排列出現機率嚴格相等。
func (c *Core) ShuffleInts(src []int) {
	if len(src) <= 1 {
		return
	}
	for i := len(src) - 1; i > 0; i-- {
		j := c.IntN(i + 1)
		src[i], src[j] = src[j], src[i]
	}
}

// ShuffleBytes 與 ShuffleInts 相同，但操作 []uint8（出題器的候選數字列表）。
func (c *Core) ShuffleBytes(src []uint8) {
	if len(src) <= 1 {
		return
	}
	for i := len(src) - 1; i > 0; i-- {
		j := c.IntN(i + 1)
		src[i], src[j] = src[j], src[i]
	}
}
