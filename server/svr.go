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

package server

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/zintix-labs/sudoduel/errs"
	"github.com/zintix-labs/sudoduel/server/api"
	"github.com/zintix-labs/sudoduel/server/app"
	"github.com/zintix-labs/sudoduel/server/netsvr"
	"github.com/zintix-labs/sudoduel/server/svrcfg"
)

// Run 是 server 套件的組裝器與啟動入口：驗證 SvrCfg、建預設 HTTP server、
// 註冊路由與 middleware、跑 app.Run() 到停止為止。
//
// Run 不綁定檔案路徑或環境變數策略；所有依賴都透過 SvrCfg 注入。
// 要自訂 server 組裝方式時，直接持有 Arena 並自行呼叫 api.RegisterRoutes。
func Run(sCfg *svrcfg.SvrCfg) {
	if err := sCfg.Valid(); err != nil {
		// 防止外層傳入的 logger 不可用
		fmt.Fprintln(os.Stderr, err)
		return
	}
	svr := netsvr.NewChiServerDefault()
	api.RegisterRoutes(svr, sCfg)

	a := app.NewWith(svr)
	sCfg.Log.Info("[sudoduel] listening on http://localhost" + svr.Address())
	if err := a.Run(); err != nil {
		sCfg.Log.Error("app stopped:", slog.Any("err", err))
	}
}

// RunWithSvr 與 Run 相同，但允許注入自訂 NetSvr
// （自己的 adapter、listener、TLS、timeout、shutdown 策略）。
func RunWithSvr(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) {
	if err := sCfg.Valid(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if svr == nil {
		sCfg.Log.Error(errs.NewFatal("svr is required").Error())
		return
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		sCfg.Log.Error(errs.NewFatal("default server is not ready").Error())
		return
	}

	api.RegisterRoutes(svr, sCfg)

	a := app.NewWith(svr)
	sCfg.Log.Info("[sudoduel] listening")
	if err := a.Run(); err != nil {
		sCfg.Log.Error("app stopped:", slog.Any("err", err))
	}
}
