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

// 批次對局模擬 CLI。
//
//	go run ./cmd/sim -band medium -round 1000
//	go run ./cmd/sim -band evil -round 5000 -seed 42 -json
//	go run ./cmd/sim -band hard -round 100 -tape build/demo.tape
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/sudoduel"
	"github.com/zintix-labs/sudoduel/recorder"
	"github.com/zintix-labs/sudoduel/sdk/core"
	"github.com/zintix-labs/sudoduel/sdk/timeline"
	"github.com/zintix-labs/sudoduel/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cfg = new(config)

type config struct {
	band    string
	round   int
	seed    int64
	speed   float64
	mistake float64
	json    bool
	tape    string
}

func bindVar() {
	flag.StringVar(&cfg.band, "band", "medium", "difficulty band")
	flag.IntVar(&cfg.round, "round", 1000, "number of battles")
	flag.Int64Var(&cfg.seed, "seed", -1, "base seed (negative = random)")
	flag.Float64Var(&cfg.speed, "speed", 1.0, "scripted human pace multiplier (<1 faster)")
	flag.Float64Var(&cfg.mistake, "mistake", -1, "scripted human mistake prob (negative = band default)")
	flag.BoolVar(&cfg.json, "json", false, "emit the report as JSON instead of a table")
	flag.StringVar(&cfg.tape, "tape", "", "also record one battle to this tape file")

	flag.Parse()
}

func main() {
	bindVar()

	arena, err := sudoduel.NewDefault()
	if err != nil {
		log.Fatal(err)
	}

	seed := int32(cfg.seed)
	if cfg.seed < 0 || cfg.seed > 0x7fffffff {
		seed = core.RandomSeed()
	}

	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)
	p.Printf("%s[BAND:%s] [ROUNDS:%d] [SEED:%d]%s\n", green, cfg.band, cfg.round, seed, reset)

	bar := pb.StartNew(cfg.round)
	rep, err := arena.Simulate(sudoduel.SimOptions{
		Band:             cfg.band,
		Rounds:           cfg.round,
		Seed:             &seed,
		HumanSpeed:       cfg.speed,
		HumanMistakeProb: cfg.mistake,
		OnRound:          func(int) { bar.Increment() },
	})
	if err != nil {
		bar.Finish()
		log.Fatal(err)
	}
	used := time.Since(bar.StartTime())
	bar.Finish()

	var render stats.StatReportRender = &stats.TableStatReportRender{}
	if cfg.json {
		render = &stats.JsonStatReportRender{}
	}
	if err := render.Write(os.Stdout, rep); err != nil {
		log.Fatal(err)
	}
	p.Printf("used: %v\n", used)

	if cfg.tape != "" {
		if err := recordOneBattle(arena, cfg.band, seed, cfg.tape); err != nil {
			log.Fatal(err)
		}
		p.Printf("tape: %s\n", cfg.tape)
	}
}

// recordOneBattle 在虛擬時間軸上跑一場掛機對局並錄成磁帶，除錯與回放用。
func recordOneBattle(arena *sudoduel.Arena, band string, seed int32, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w, err := recorder.NewWriter(f)
	if err != nil {
		return err
	}
	vt := timeline.NewVirtual()
	ses := recorder.NewSession(w, vt)

	b, err := arena.NewBattle(sudoduel.BattleConfig{
		Band: band, Seed: &seed, Timeline: vt, Hooks: ses.Hooks(sudoduel.Hooks{}),
	})
	if err != nil {
		return err
	}
	if err := ses.Start(arena.PuzzleDTO(b.Puzzle(), false)); err != nil {
		return err
	}
	if err := b.Start(); err != nil {
		return err
	}
	vt.Drain(time.Minute, 200000)
	if err := w.Close(); err != nil {
		return err
	}
	return f.Close()
}
