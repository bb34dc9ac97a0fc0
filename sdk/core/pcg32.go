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

package core

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	"math/bits"
)

const (
	pcg32Multiplier = 6364136223846793005
	pcg32FloatUnit  = 1.0 / (1 << 32)
)

// PCG32 為 64-bit 狀態、32-bit 輸出的 PCG (XSH RR) 產生器。
//
// 選擇 PCG32 而不是更寬的變體，是因為 Sudoduel 的 seed 合約本來就是 32-bit：
// 題目分享碼（band:seed）要能以短十進位字串傳遞，32-bit 輸出已綽綽有餘。
type PCG32 struct {
	state uint64
	inc   uint64
}

func newPCG32WithSeed(seed int32) *PCG32 {
	r := &PCG32{}
	r.init(seed, 1)
	return r
}

// init 依 PCG 建議的初始化流程：先用 stream 走一步，再加 seed，最後再走一步。
func (r *PCG32) init(seed int32, seq uint64) {
	r.inc = (seq << 1) | 1
	r.state = 0
	r.nextUint32()
	r.state += uint64(uint32(seed))
	r.nextUint32()
}

// Uint32 回傳非負 uint32 亂數。
func (r *PCG32) Uint32() uint32 {
	return r.nextUint32()
}

// Uint64 回傳非負 uint64 亂數。
func (r *PCG32) Uint64() uint64 {
	return (uint64(r.nextUint32()) << 32) | uint64(r.nextUint32())
}

// Float64 回傳 [0,1) 的浮點亂數（32-bit 精度）。
func (r *PCG32) Float64() float64 {
	return float64(r.nextUint32()) * pcg32FloatUnit
}

// IntN 回傳 [0,n) 的亂數；若 n <= 0 回傳 -1。
func (r *PCG32) IntN(n int) int {
	if n <= 0 {
		return -1
	}
	if n <= math.MaxUint32 {
		return int(r.randBelowUint32(uint32(n)))
	}
	return int(r.randBelowUint64(uint64(n)))
}

// UintN 回傳 [0,n) 的 uint 亂數，若 n == 0 回傳 0。
func (r *PCG32) UintN(n uint) uint {
	if n == 0 {
		return 0
	}
	return uint(r.randBelowUint64(uint64(n)))
}

func (r *PCG32) nextUint32() uint32 {
	oldstate := r.state
	r.state = oldstate*pcg32Multiplier + r.inc
	xorshifted := uint32(((oldstate >> 18) ^ oldstate) >> 27)
	rot := uint32(oldstate >> 59)
	return bits.RotateLeft32(xorshifted, -int(rot))
}

// randBelowUint32 以 rejection sampling 消除模偏差。
func (r *PCG32) randBelowUint32(bound uint32) uint32 {
	threshold := (^uint32(0) - bound + 1) % bound
	for {
		v := r.nextUint32()
		if v >= threshold {
			return v % bound
		}
	}
}

func (r *PCG32) randBelowUint64(bound uint64) uint64 {
	threshold := (^uint64(0) - bound + 1) % bound
	for {
		hi := uint64(r.nextUint32())
		lo := uint64(r.nextUint32())
		v := (hi << 32) | lo
		if v >= threshold {
			return v % bound
		}
	}
}

// RandomSeed 以 crypto/rand 取得一個均勻分布於 [0, MaxInt32] 的 seed。
// 對外服務情境避免可預測 RNG，同時保留可追溯性（seed 會被記錄）。
func RandomSeed() int32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand 失效代表平台本身已不可信，此處不再提供退路。
		panic("core: platform random source unavailable: " + err.Error())
	}
	return int32(binary.BigEndian.Uint32(b[:]) & math.MaxInt32)
}
