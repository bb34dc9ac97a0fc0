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

// HTTP server 入口：出題 / 解盤 / 批次模擬 API。
package main

import (
	"flag"
	"fmt"

	"github.com/zintix-labs/sudoduel"
	"github.com/zintix-labs/sudoduel/server"
	"github.com/zintix-labs/sudoduel/server/logger"
	"github.com/zintix-labs/sudoduel/server/netsvr"
	"github.com/zintix-labs/sudoduel/server/svrcfg"
)

func main() {
	cfg, addr, err := loadConfigFromFlags()
	if err != nil {
		fmt.Println(err)
		return
	}
	if addr == "" {
		server.Run(cfg)
		return
	}
	server.RunWithSvr(cfg, netsvr.NewChiServer(addr))
}

type config struct {
	LogMode   string
	Addr      string
	MaxRounds int
}

func loadConfigFromFlags() (*svrcfg.SvrCfg, string, error) {
	cfg := new(config)
	flag.StringVar(&cfg.LogMode, "log-mode", "ModeDev", "log mode: ModeDev|ModeProd|ModeSilence")
	flag.StringVar(&cfg.Addr, "addr", "", "listen address (empty = default)")
	flag.IntVar(&cfg.MaxRounds, "max-rounds", 0, "per-request sim round cap (0 = default)")

	flag.Parse()

	log, _ := logger.NewAsync(4096, cfg.norm())

	arena, err := sudoduel.NewDefault()
	if err != nil {
		return nil, "", err
	}
	sCfg := &svrcfg.SvrCfg{
		Log:          log,
		Arena:        arena,
		MaxSimRounds: cfg.MaxRounds,
	}
	return sCfg, cfg.Addr, nil
}

func (cfg *config) norm() logger.LogMode {
	switch cfg.LogMode {
	case "ModeDev":
		return logger.ModeDev
	case "ModeProd":
		return logger.ModeProd
	case "ModeSilence":
		return logger.ModeSilence
	default:
		return logger.ModeDev
	}
}
