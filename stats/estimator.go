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

package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// z975 是標準常態的 97.5% 分位數，95% 雙尾信賴區間用。
var z975 = distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.975)

// proportion 以常態近似計算比例的點估計與 95% CI，並夾取在 [0,1]。
// 批次模擬的 n 都在數百以上，常態近似足夠；小樣本的精確區間不是這裡的目標。
func proportion(hits, rounds int) PointStat {
	if rounds <= 0 {
		return PointStat{}
	}
	n := float64(rounds)
	hat := float64(hits) / n
	se := math.Sqrt(hat * (1 - hat) / n)
	lo := hat - z975*se
	hi := hat + z975*se
	if lo < 0 {
		lo = 0
	}
	if hi > 1 {
		hi = 1
	}
	return PointStat{Hat: hat, CI: CI{Lo: lo, Hi: hi}}
}

// quantileSorted 回傳已排序樣本的經驗分位數。
func quantileSorted(p float64, sorted []float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}
