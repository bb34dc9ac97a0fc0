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

	"github.com/zintix-labs/sudoduel"
	"github.com/zintix-labs/sudoduel/errs"
	"github.com/zintix-labs/sudoduel/sdk/gen"
	"github.com/zintix-labs/sudoduel/sdk/grid"
	"github.com/zintix-labs/sudoduel/server/httperr"
)

type SolveHandler struct {
	Arena *sudoduel.Arena
}

func NewSolveHandler(a *sudoduel.Arena) *SolveHandler {
	return &SolveHandler{Arena: a}
}

// Solve 解盤。
//
//	POST /v1/solve {"grid": "81 字元，0 代表空格"}
//
// 回傳一個完成盤與唯一性判定；無解時 solvable 為 false。
func (sh *SolveHandler) Solve(w http.ResponseWriter, q *http.Request) {
	// 內部結構 不影響外部 也不被外部使用
	type SolveRequestBody struct {
		Grid string `json:"grid"`
	}
	type SolveResponse struct {
		Solvable bool   `json:"solvable"`
		Unique   bool   `json:"unique"`
		Solution string `json:"solution,omitempty"`
	}
	// ---
	req := new(SolveRequestBody)
	if err := json.NewDecoder(q.Body).Decode(req); err != nil {
		httperr.Errs(w, errs.NewWarn("invalid json:"+err.Error()))
		return
	}
	g, err := grid.Decode(req.Grid)
	if err != nil {
		httperr.Errs(w, errs.Wrap(err, "bad grid"))
		return
	}
	if !g.Valid() {
		httperr.Errs(w, errs.NewWarn("grid has rule conflicts"))
		return
	}

	resp := SolveResponse{}
	if sol, ok := sh.Arena.Solve(g); ok {
		resp.Solvable = true
		resp.Unique = gen.CountSolutions(g) == 1
		out := grid.Cells(sol)
		resp.Solution = out.Encode()
	}
	writeJSON(w, resp)
}
