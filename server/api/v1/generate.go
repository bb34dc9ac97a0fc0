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

	"github.com/zintix-labs/sudoduel"
	"github.com/zintix-labs/sudoduel/errs"
	"github.com/zintix-labs/sudoduel/server/httperr"
)

type GenHandler struct {
	Arena *sudoduel.Arena
}

func NewGenHandler(a *sudoduel.Arena) *GenHandler {
	return &GenHandler{Arena: a}
}

// Generate 出題。
//
//	GET /v1/generate?band=medium            隨機 seed
//	GET /v1/generate?band=medium&seed=12345 指定 seed（可重現）
//	GET /v1/generate?code=medium:12345      以分享碼重現
//	加 &solution=1 帶出完成盤（除錯用）
func (gh *GenHandler) Generate(w http.ResponseWriter, q *http.Request) {
	withSolution := q.URL.Query().Get("solution") == "1"

	if code := q.URL.Query().Get("code"); code != "" {
		p, err := gh.Arena.GenerateFromShareCode(code)
		if err != nil {
			httperr.Errs(w, errs.Wrap(err, "bad share code"))
			return
		}
		writeJSON(w, gh.Arena.PuzzleDTO(p, withSolution))
		return
	}

	band := q.URL.Query().Get("band")
	var seed *int32
	if s := q.URL.Query().Get("seed"); s != "" {
		u, err := strconv.ParseInt(s, 10, 32)
		if err != nil || u < 0 {
			httperr.Errs(w, errs.NewWarn("seed must be a non-negative 32-bit integer"))
			return
		}
		v := int32(u)
		seed = &v
	}
	p := gh.Arena.Generate(band, seed)
	writeJSON(w, gh.Arena.PuzzleDTO(p, withSolution))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
