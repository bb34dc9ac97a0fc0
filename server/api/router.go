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

package api

import (
	"log/slog"

	"github.com/zintix-labs/sudoduel/server/api/index"
	v1 "github.com/zintix-labs/sudoduel/server/api/v1"
	"github.com/zintix-labs/sudoduel/server/netsvr"
	"github.com/zintix-labs/sudoduel/server/netsvr/middleware"
	"github.com/zintix-labs/sudoduel/server/svrcfg"
)

// RegisterRoutes 註冊
func RegisterRoutes(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) {
	registerMiddleware(svr, sCfg.Log) // 1. 註冊 middleware
	registerIndex(svr)                // 2. 註冊主頁
	registerV1API(svr, sCfg)          // 3. 註冊 v1 api
}

func registerMiddleware(svr netsvr.NetSvr, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover)
	svr.Use(middleware.Compression)
}

func registerIndex(svr netsvr.NetSvr) {
	svr.Get("/", index.IndexHandlerFn)
}

func registerV1API(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) {
	g := v1.NewGenHandler(sCfg.Arena)
	s := v1.NewSolveHandler(sCfg.Arena)
	m := v1.NewSimHandler(sCfg.Arena, sCfg.MaxSimRounds)
	b := v1.NewBandsHandler(sCfg.Arena)

	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Get("/bands", b.Bands)
		vOne.Get("/generate", g.Generate)
		vOne.Get("/sim", m.Sim)

		vOne.Post("/solve", s.Solve)
		vOne.Post("/sim", m.Sim)
	})
}
