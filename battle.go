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

package sudoduel

import (
	"sync"
	"time"

	"github.com/zintix-labs/sudoduel/dto"
	"github.com/zintix-labs/sudoduel/errs"
	"github.com/zintix-labs/sudoduel/sdk/core"
	"github.com/zintix-labs/sudoduel/sdk/gen"
	"github.com/zintix-labs/sudoduel/sdk/grid"
	"github.com/zintix-labs/sudoduel/sdk/timeline"
	"github.com/zintix-labs/sudoduel/spec"
)

// mistakePenaltySeconds 是玩家每次填錯扣在共用時鐘上的秒數。
const mistakePenaltySeconds = 10

// mistakesPerHintGrant : 任一方每累積三次失誤，「對方」獲得一個提示點數。
const mistakesPerHintGrant = 3

// Competitor 是單側（玩家或對手）的對局狀態。
//
// 生命週期：開局時以題目的挖洞盤初始化；只能透過對局操作
// （PlaceValue / UseHint / EraseCell 或對手排程器）被改寫；
// Finished 變 true 或對局終止後凍結。
//
// 不變量：Filled 恆等於 Working 中「目前持有正確值的非題目格」數量——
// 正確格只能被 EraseCell 清掉（同時遞減 Filled），錯誤格不計入。
type Competitor struct {
	Working  grid.Cells
	Filled   int
	Mistakes int
	Hints    int
	Finished bool
}

// Hooks 是對局進程的可選回呼，全部允許為 nil，缺席不影響內部正確性。
// 回呼一律在對局鎖外觸發，hook 內可以安全地回呼 Battle 的讀取方法。
type Hooks struct {
	// OnOpponentAction 在對手每次動作（成功、失誤或用提示）後觸發。
	OnOpponentAction func(filled, total int)
	// OnHintGranted 在玩家因對手失誤獲得提示點數時觸發。
	OnHintGranted func(hints int)
	// OnClockTick 每秒觸發一次。
	OnClockTick func(secondsRemaining int)
	// OnEnd 在對局終止時恰好觸發一次。
	OnEnd func(report *dto.BattleReport)
}

// BattleConfig 描述一場對局的建立參數。
type BattleConfig struct {
	Band string
	// Seed 為 nil 時由平台亂數源決定；相同 (Band, Seed) 的題目逐位元相同，
	// 對局軌跡在相同 Timeline 驅動下也相同。
	Seed *int32
	// Timeline 為 nil 時掛在真實時鐘上（timeline.Realtime）。
	Timeline timeline.Timeline
	Hooks    Hooks
	// OpponentLabel 留空時由對局 RNG 挑選。
	OpponentLabel string
}

// Battle 是一場「玩家 vs 模擬對手」的即時對戰。
//
// 狀態機：created → started → ended。started 恰好進入一次（Start），
// ended 恰好進入一次，來源可能是：玩家完成、對手完成、時鐘歸零、棄局。
//
// 併發語意：Battle 的所有變異都在 mu 之下；倒數時鐘與對手排程是兩個獨立
// 的 timeline 回呼，和玩家同步呼叫一樣走同一把鎖。每個回呼進鎖後先檢查
// ended——終止會 Stop 掉兩個在途 Handle，但 Realtime 下回呼可能已經在路上。
type Battle struct {
	mu     sync.Mutex
	puzzle *gen.Puzzle
	band   *spec.BandSetting
	rng    *core.Core
	tl     timeline.Timeline

	human Competitor
	opp   Competitor
	pace  pacingState

	hooks         Hooks
	opponentLabel string

	timeLeft int // 秒
	started  bool
	ended    bool
	reason   dto.Reason
	report   *dto.BattleReport

	clockH timeline.Handle
	oppH   timeline.Handle
}

// NewBattle 出題並組裝一場對局（尚未開始計時，呼叫 Start 進場）。
func (a *Arena) NewBattle(cfg BattleConfig) (*Battle, error) {
	bs := a.cat.Resolve(cfg.Band)
	p := gen.Generate(bs, cfg.Seed)

	// 對局節奏用獨立的派生流，不與出題共用（見 deriveSeed）。
	rng := core.New(a.cf.New(deriveSeed(p.Seed, 1)))

	tl := cfg.Timeline
	if tl == nil {
		tl = timeline.NewRealtime()
	}

	label := cfg.OpponentLabel
	if label == "" {
		label = opponentNames[rng.IntN(len(opponentNames))]
	}

	b := &Battle{
		puzzle:        p,
		band:          bs,
		rng:           rng,
		tl:            tl,
		hooks:         cfg.Hooks,
		opponentLabel: label,
		timeLeft:      bs.BattleSeconds,
	}
	b.human = Competitor{Working: p.Holes, Hints: bs.StartHints}
	b.opp = Competitor{Working: p.Holes, Hints: bs.StartHints}
	b.pace = newPacingState()
	return b, nil
}

var opponentNames = []string{
	"Riko", "Maru", "Teppei", "Suan", "Noel",
	"Basil", "Quill", "Vera", "Odin", "Pips",
}

// Start 進入 started 狀態：掛上倒數時鐘並排程第一個對手動作。
// 重複呼叫或在結束後呼叫回傳錯誤（這是程式流程錯誤，不是使用者操作）。
func (b *Battle) Start() error {
	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return errs.NewWarn("battle already started")
	}
	b.started = true
	b.clockH = b.tl.AfterFunc(time.Second, b.onClockTick)
	b.scheduleOpponentLocked()
	b.mu.Unlock()
	return nil
}

// -----------------------------------------------------------------------------
//  玩家操作（無效操作一律靜默 no-op，回傳值只說「有沒有生效」）
// -----------------------------------------------------------------------------

// PlaceValue 在 (r,c) 填入 v。
// 未開局／已結束／已完成、題目格、座標或值不合法、該格已持有正確值：no-op。
// 填對：遞增 Filled 並檢查完成。填錯：遞增 Mistakes、扣共用時鐘 10 秒，
// 且每第三次失誤送「對手」一個提示點數。
func (b *Battle) PlaceValue(r, c int, v uint8) bool {
	b.mu.Lock()
	if !b.humanActionableLocked() || !inBounds(r, c) || v < 1 || v > 9 {
		b.mu.Unlock()
		return false
	}
	if b.puzzle.IsClue(r, c) {
		b.mu.Unlock()
		return false
	}
	sol := b.puzzle.Solution[r][c]
	if b.human.Working[r][c] == sol {
		// 已鎖定的正確格
		b.mu.Unlock()
		return false
	}
	b.human.Working[r][c] = v
	var after []func()
	if v == sol {
		b.human.Filled++
		if b.human.Working == b.puzzle.Solution {
			b.human.Finished = true
			after = b.terminateLocked(dto.ReasonHumanFinished)
		}
	} else {
		b.human.Mistakes++
		b.timeLeft -= mistakePenaltySeconds
		if b.human.Mistakes%mistakesPerHintGrant == 0 {
			b.opp.Hints++
		}
		if b.timeLeft <= 0 {
			b.timeLeft = 0
			after = b.terminateLocked(dto.ReasonClockExpired)
		}
	}
	b.mu.Unlock()
	runAll(after)
	return true
}

// UseHint 消耗一個提示點數，把 (r,c) 填成正確值。
// 沒有點數、題目格、該格已是正確值：no-op。
func (b *Battle) UseHint(r, c int) bool {
	b.mu.Lock()
	if !b.humanActionableLocked() || !inBounds(r, c) || b.human.Hints <= 0 {
		b.mu.Unlock()
		return false
	}
	sol := b.puzzle.Solution[r][c]
	if b.puzzle.IsClue(r, c) || b.human.Working[r][c] == sol {
		b.mu.Unlock()
		return false
	}
	b.human.Hints--
	b.human.Working[r][c] = sol
	b.human.Filled++
	var after []func()
	if b.human.Working == b.puzzle.Solution {
		b.human.Finished = true
		after = b.terminateLocked(dto.ReasonHumanFinished)
	}
	b.mu.Unlock()
	runAll(after)
	return true
}

// EraseCell 清空 (r,c)。題目格 no-op；清掉的格原本持有正確值時遞減 Filled。
func (b *Battle) EraseCell(r, c int) bool {
	b.mu.Lock()
	if !b.humanActionableLocked() || !inBounds(r, c) || b.puzzle.IsClue(r, c) {
		b.mu.Unlock()
		return false
	}
	if b.human.Working[r][c] == 0 {
		b.mu.Unlock()
		return false
	}
	if b.human.Working[r][c] == b.puzzle.Solution[r][c] {
		b.human.Filled--
	}
	b.human.Working[r][c] = 0
	b.mu.Unlock()
	return true
}

// Finish 顯式以「玩家完成」終止（例如 UI 層自行驗定完成後呼叫）。
func (b *Battle) Finish() {
	b.mu.Lock()
	var after []func()
	if b.started && !b.ended {
		b.human.Finished = true
		after = b.terminateLocked(dto.ReasonHumanFinished)
	}
	b.mu.Unlock()
	runAll(after)
}

// Forfeit 棄局，立即以 forfeit 終止。（背景續跑的 ghost 模式是文件化
// 但未實作的擴充，等產品確認前不進核心合約。）
func (b *Battle) Forfeit() {
	b.mu.Lock()
	var after []func()
	if b.started && !b.ended {
		after = b.terminateLocked(dto.ReasonForfeit)
	}
	b.mu.Unlock()
	runAll(after)
}

// -----------------------------------------------------------------------------
//  時鐘與終止
// -----------------------------------------------------------------------------

func (b *Battle) onClockTick() {
	b.mu.Lock()
	if b.ended {
		b.mu.Unlock()
		return
	}
	b.timeLeft--
	var after []func()
	if b.timeLeft <= 0 {
		b.timeLeft = 0
		after = b.terminateLocked(dto.ReasonClockExpired)
	} else {
		b.clockH = b.tl.AfterFunc(time.Second, b.onClockTick)
		if h := b.hooks.OnClockTick; h != nil {
			sec := b.timeLeft
			after = append(after, func() { h(sec) })
		}
	}
	b.mu.Unlock()
	runAll(after)
}

// terminateLocked 把對局推進 ended 狀態：恰好一次、取消兩個在途排程、
// 產生終局報告。回傳應在解鎖後執行的回呼。呼叫端持鎖。
func (b *Battle) terminateLocked(reason dto.Reason) []func() {
	if b.ended {
		return nil
	}
	b.ended = true
	b.reason = reason
	if b.clockH != nil {
		b.clockH.Stop()
	}
	if b.oppH != nil {
		b.oppH.Stop()
	}
	b.report = b.resolveLocked(reason)
	if h := b.hooks.OnEnd; h != nil {
		rep := b.report
		return []func(){func() { h(rep) }}
	}
	return nil
}

func (b *Battle) humanActionableLocked() bool {
	return b.started && !b.ended && !b.human.Finished
}

func inBounds(r, c int) bool {
	return r >= 0 && r < grid.Size && c >= 0 && c < grid.Size
}

func runAll(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

// -----------------------------------------------------------------------------
//  讀取方法（UI / 測試用，回傳副本）
// -----------------------------------------------------------------------------

func (b *Battle) Puzzle() *gen.Puzzle { return b.puzzle }

func (b *Battle) OpponentLabel() string { return b.opponentLabel }

func (b *Battle) Started() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.started
}

func (b *Battle) Ended() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ended
}

func (b *Battle) TimeRemaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.timeLeft
}

// Report 回傳終局報告；對局尚未結束時為 nil。
func (b *Battle) Report() *dto.BattleReport {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.report
}

// HumanState 回傳玩家側狀態的副本。
func (b *Battle) HumanState() Competitor {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.human
}

// OpponentState 回傳對手側狀態的副本。
func (b *Battle) OpponentState() Competitor {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opp
}
