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

package svrcfg

import (
	"log/slog"

	"github.com/zintix-labs/sudoduel"
	"github.com/zintix-labs/sudoduel/errs"
	"github.com/zintix-labs/sudoduel/server/logger"
)

// SvrCfg 是 server 的組裝設定。所有依賴明確注入，不讀檔案路徑或環境變數。
type SvrCfg struct {
	Log   *slog.Logger
	Arena *sudoduel.Arena
	// MaxSimRounds 限制單一 /v1/sim 請求的場數上限，0 用預設。
	MaxSimRounds int
}

const defaultMaxSimRounds = 100000

func (sc *SvrCfg) Valid() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		// 保持安靜、合法
		sc.Log, _ = logger.NewAsync(1024, logger.ModeDev)
	}
	if sc.MaxSimRounds <= 0 {
		sc.MaxSimRounds = defaultMaxSimRounds
	}
	if sc.Arena == nil {
		return errs.NewFatal("arena is required")
	}
	return nil
}
