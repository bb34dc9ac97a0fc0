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

package v1

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/zintix-labs/sudoduel"
	"github.com/zintix-labs/sudoduel/errs"
	"github.com/zintix-labs/sudoduel/server/httperr"
	"github.com/zintix-labs/sudoduel/stats"
)

type SimHandler struct {
	Arena     *sudoduel.Arena
	MaxRounds int
}

func NewSimHandler(a *sudoduel.Arena, maxRounds int) *SimHandler {
	return &SimHandler{Arena: a, MaxRounds: maxRounds}
}

// Sim 跑一批虛擬時間對局並回傳統計。
//
//	GET  /v1/sim?band=medium&round=1000[&seed=42][&speed=0.9][&mistake_prob=0.1]
//	POST /v1/sim {"band":"medium","round":1000,"seed":42}
func (sh *SimHandler) Sim(w http.ResponseWriter, q *http.Request) {
	// 內部結構 不影響外部 也不被外部使用
	type SimRequestBody struct {
		Band        string   `json:"band"`
		Round       int      `json:"round"`
		Seed        *int32   `json:"seed,omitempty"`
		Speed       *float64 `json:"speed,omitempty"`
		MistakeProb *float64 `json:"mistake_prob,omitempty"`
	}
	type SimResponse struct {
		Stats    *stats.BattleStatReport `json:"stats"`
		UsedTime int64                   `json:"used_ms"`
	}
	// ---
	req := new(SimRequestBody)
	switch q.Method {
	case http.MethodGet:
		req.Band = q.URL.Query().Get("band")

		if r := q.URL.Query().Get("round"); r != "" {
			u, err := strconv.Atoi(r)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("round must be integer"))
				return
			}
			req.Round = u
		} else {
			httperr.Errs(w, errs.NewWarn("round is required"))
			return
		}

		if s := q.URL.Query().Get("seed"); s != "" {
			u, err := strconv.ParseInt(s, 10, 32)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("seed must be a 32-bit integer"))
				return
			}
			v := int32(u)
			req.Seed = &v
		}

		if s := q.URL.Query().Get("speed"); s != "" {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("speed must be a number"))
				return
			}
			req.Speed = &f
		}

		if s := q.URL.Query().Get("mistake_prob"); s != "" {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("mistake_prob must be a number"))
				return
			}
			req.MistakeProb = &f
		}
	case http.MethodPost:
		if err := json.NewDecoder(q.Body).Decode(req); err != nil {
			httperr.Errs(w, errs.NewWarn("invalid json:"+err.Error()))
			return
		}
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// 業務檢驗
	if req.Round < 1 || req.Round > sh.MaxRounds {
		httperr.Errs(w, errs.Warnf("round must be between 1 and %d", sh.MaxRounds))
		return
	}
	opt := sudoduel.SimOptions{
		Band:   req.Band,
		Rounds: req.Round,
		Seed:   req.Seed,
	}
	if req.Speed != nil {
		opt.HumanSpeed = *req.Speed
	}
	if req.MistakeProb != nil {
		opt.HumanMistakeProb = *req.MistakeProb
	} else {
		opt.HumanMistakeProb = -1 // 沿用難度設定
	}

	start := time.Now()
	rep, err := sh.Arena.Simulate(opt)
	if err != nil {
		// 這裡的錯誤來自模擬核心 尊重錯誤分級
		httperr.Errs(w, errs.Wrap(err, "simulate err"))
		return
	}
	writeJSON(w, SimResponse{Stats: rep, UsedTime: time.Since(start).Milliseconds()})
}
