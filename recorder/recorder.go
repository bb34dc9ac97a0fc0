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

// Package recorder 把一場對局的事件流錄成 zstd 壓縮的 JSONL 磁帶（tape）。
//
// 磁帶是除錯與回放的地基：一行一個事件、時間戳單調遞增，整場對局可以
// 離線重播或事後審計。壓縮用 zstd（一場 10 分鐘對局的磁帶在壓縮後
// 通常只有幾 KB），格式是「zstd(JSONL)」而不是自訂容器。
package recorder

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/zintix-labs/sudoduel/dto"
	"github.com/zintix-labs/sudoduel/errs"
)

// Kind 是磁帶事件種類。
type Kind string

const (
	KindStart       Kind = "start"
	KindHumanPlace  Kind = "human_place"
	KindHumanHint   Kind = "human_hint"
	KindHumanErase  Kind = "human_erase"
	KindOppAction   Kind = "opponent_action"
	KindHintGranted Kind = "hint_granted"
	KindClockTick   Kind = "clock_tick"
	KindEnd         Kind = "end"
)

// Event 是磁帶上的一行。AtMs 是事件發生時距開局的毫秒數。
// 各 Kind 只填自己需要的欄位，其餘維持零值省略。
type Event struct {
	AtMs int64 `json:"at_ms"`
	Kind Kind  `json:"kind"`

	Row   int   `json:"row,omitempty"`
	Col   int   `json:"col,omitempty"`
	Value uint8 `json:"value,omitempty"`

	Filled      int `json:"filled,omitempty"`
	Total       int `json:"total,omitempty"`
	Hints       int `json:"hints,omitempty"`
	SecondsLeft int `json:"seconds_left,omitempty"`

	Puzzle *dto.PuzzleDTO    `json:"puzzle,omitempty"`
	Report *dto.BattleReport `json:"report,omitempty"`
}

// Writer 把事件依序寫上磁帶。併發安全：對局回呼與 UI 執行緒可同時餵入。
type Writer struct {
	mu     sync.Mutex
	zw     *zstd.Encoder
	enc    *json.Encoder
	lastAt int64
	closed bool
}

// NewWriter 在 w 上開一卷磁帶。呼叫端負責在對局結束後 Close。
func NewWriter(w io.Writer) (*Writer, error) {
	zw, err := zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstd.SpeedFastest),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, errs.Wrap(err, "tape: create zstd writer")
	}
	return &Writer{zw: zw, enc: json.NewEncoder(zw)}, nil
}

// Append 寫入一個事件。時間戳必須單調不減——亂序是呼叫端的程式錯誤。
func (w *Writer) Append(ev Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errs.NewWarn("tape: writer already closed")
	}
	if ev.Kind == "" {
		return errs.NewWarn("tape: event kind required")
	}
	if ev.AtMs < w.lastAt {
		return errs.Warnf("tape: timestamp went backwards (%d < %d)", ev.AtMs, w.lastAt)
	}
	w.lastAt = ev.AtMs
	return w.enc.Encode(&ev)
}

// Close 刷出並關閉壓縮流。重複呼叫是 no-op。
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.zw.Close(); err != nil {
		return errs.Wrap(err, "tape: close zstd writer")
	}
	return nil
}

// ReadAll 讀回整卷磁帶。
// 驗證兩件事：時間戳單調不減、end 事件（若存在）必須是最後一行。
func ReadAll(r io.Reader) ([]Event, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, errs.Wrap(err, "tape: create zstd reader")
	}
	defer zr.Close()

	var (
		out    []Event
		lastAt int64
		ended  bool
	)
	sc := bufio.NewScanner(zr)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			return nil, errs.Wrap(err, "tape: malformed event line")
		}
		if ended {
			return nil, errs.NewWarn("tape: event after end")
		}
		if ev.AtMs < lastAt {
			return nil, errs.Warnf("tape: timestamp went backwards (%d < %d)", ev.AtMs, lastAt)
		}
		lastAt = ev.AtMs
		if ev.Kind == KindEnd {
			ended = true
		}
		out = append(out, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(err, "tape: read")
	}
	return out, nil
}
