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

// Package timeline 抽象「延遲後執行」的排程原語。
//
// 對局核心的等待從不阻塞執行緒：倒數時鐘與對手動作都是「排程未來回呼」。
// 把排程抽成介面有兩個目的：
//  1. 終止對局時要能決定性地取消所有在途回呼——AfterFunc 回傳的 Handle
//     就是取消權杖，不能只靠一個 ended 布林。
//  2. 批次模擬與測試需要虛擬時間：Virtual 實作讓一萬場對局在毫秒級跑完，
//     且事件順序完全可重現。
package timeline

import (
	"container/heap"
	"sync"
	"time"
)

// Handle 是一次排程的取消權杖。
// Stop 回傳 false 表示回呼已執行或已被取消過。
type Handle interface {
	Stop() bool
}

// Timeline 提供「延遲 d 後執行 f」的排程，以及目前的時間軸位置。
type Timeline interface {
	AfterFunc(d time.Duration, f func()) Handle
	// Now 回傳自時間軸起點起經過的時間。
	Now() time.Duration
}

// -----------------------------------------------------------------------------
//  Realtime：掛在真實時鐘上
// -----------------------------------------------------------------------------

// Realtime 以 time.AfterFunc 實作 Timeline。
type Realtime struct {
	epoch time.Time
}

func NewRealtime() *Realtime {
	return &Realtime{epoch: time.Now()}
}

func (rt *Realtime) AfterFunc(d time.Duration, f func()) Handle {
	return realHandle{time.AfterFunc(d, f)}
}

func (rt *Realtime) Now() time.Duration {
	return time.Since(rt.epoch)
}

type realHandle struct{ t *time.Timer }

func (h realHandle) Stop() bool { return h.t.Stop() }

// -----------------------------------------------------------------------------
//  Virtual：決定性的虛擬時間軸
// -----------------------------------------------------------------------------

// Virtual 是事件佇列實作：AfterFunc 僅入列，Advance 依序觸發到期事件。
// 同一到期時間的事件以入列順序觸發，整條時間軸因此完全決定性。
//
// 併發語意：Virtual 預期由單一 goroutine 驅動（Advance 期間的回呼可以再排程
// 新事件）。內部仍帶鎖，使 Realtime/Virtual 可互換而不改呼叫端假設。
type Virtual struct {
	mu  sync.Mutex
	now time.Duration
	seq uint64
	pq  eventQueue
}

func NewVirtual() *Virtual {
	return &Virtual{}
}

func (vt *Virtual) AfterFunc(d time.Duration, f func()) Handle {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	if d < 0 {
		d = 0
	}
	vt.seq++
	ev := &event{at: vt.now + d, seq: vt.seq, fn: f, vt: vt}
	heap.Push(&vt.pq, ev)
	return ev
}

func (vt *Virtual) Now() time.Duration {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	return vt.now
}

// Advance 把虛擬時間往前推 d，依序執行所有到期事件。
// 回呼在鎖外執行，因此回呼內可以安全地再呼叫 AfterFunc / Stop。
func (vt *Virtual) Advance(d time.Duration) {
	vt.mu.Lock()
	deadline := vt.now + d
	for {
		ev := vt.pop(deadline)
		if ev == nil {
			break
		}
		vt.now = ev.at
		vt.mu.Unlock()
		ev.fn()
		vt.mu.Lock()
	}
	vt.now = deadline
	vt.mu.Unlock()
}

// Drain 持續推進直到沒有待執行事件，回傳共推進了多少虛擬時間。
// maxStep 限制單次推進上限，避免壞掉的排程讓 Drain 永不返回。
func (vt *Virtual) Drain(maxStep time.Duration, maxEvents int) time.Duration {
	start := vt.Now()
	for i := 0; i < maxEvents; i++ {
		vt.mu.Lock()
		if len(vt.pq) == 0 {
			vt.mu.Unlock()
			break
		}
		next := vt.pq[0].at
		vt.mu.Unlock()
		step := next - vt.Now()
		if step > maxStep {
			step = maxStep
		}
		vt.Advance(step)
	}
	return vt.Now() - start
}

// Pending 回傳尚未執行（且未取消）的事件數。
func (vt *Virtual) Pending() int {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	n := 0
	for _, ev := range vt.pq {
		if !ev.stopped {
			n++
		}
	}
	return n
}

// pop 取出 deadline 前最早的未取消事件；沒有時回傳 nil。呼叫端持鎖。
func (vt *Virtual) pop(deadline time.Duration) *event {
	for len(vt.pq) > 0 {
		if vt.pq[0].at > deadline {
			return nil
		}
		ev := heap.Pop(&vt.pq).(*event)
		if ev.stopped {
			continue
		}
		ev.done = true
		return ev
	}
	return nil
}

type event struct {
	at      time.Duration
	seq     uint64
	fn      func()
	stopped bool
	done    bool
	vt      *Virtual
	index   int
}

// Stop 標記事件取消。已執行或已取消時回傳 false。
func (e *event) Stop() bool {
	if e.vt != nil {
		e.vt.mu.Lock()
		defer e.vt.mu.Unlock()
	}
	if e.done || e.stopped {
		return false
	}
	e.stopped = true
	return true
}

// eventQueue 是以 (at, seq) 排序的最小堆。
type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }
func (q eventQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}
func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *eventQueue) Push(x any) {
	ev := x.(*event)
	ev.index = len(*q)
	*q = append(*q, ev)
}
func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return ev
}
