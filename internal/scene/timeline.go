// apps/go-server/internal/scene/timeline.go
//
// Virtual-time timer queue. Scenes schedule every delay (reveal beats,
// feedback windows, spawn cadence, the 1 s game clock) here instead of
// sleeping, so a runner can drive them from a real ticker and tests can
// drive them with exact durations.
//
// Timers fire in deadline order, FIFO on equal deadlines. Stopping or
// pausing a timer invalidates its queued entry lazily (generation check).

package scene

import (
	"container/heap"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer struct {
	tl      *Timeline
	fn      func()
	at      time.Duration
	period  time.Duration // zero for one-shot
	left    time.Duration // remaining delay while paused
	gen     uint64
	stopped bool
	paused  bool
}

// Stop cancels all future firings.
func (t *Timer) Stop() {
	if t == nil || t.stopped {
		return
	}
	t.stopped = true
	t.gen++
}

// Pause freezes the timer, keeping the time left until its next firing.
func (t *Timer) Pause() {
	if t == nil || t.stopped || t.paused {
		return
	}
	t.paused = true
	t.left = t.at - t.tl.now
	t.gen++
}

// Resume re-arms a paused timer with the time it had left.
func (t *Timer) Resume() {
	if t == nil || t.stopped || !t.paused {
		return
	}
	t.paused = false
	t.tl.push(t, t.tl.now+t.left)
}

func (t *Timer) Paused() bool  { return t != nil && t.paused }
func (t *Timer) Stopped() bool { return t == nil || t.stopped }

type entry struct {
	at    time.Duration
	seq   uint64
	gen   uint64
	timer *Timer
}

type queue []entry

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}
func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)   { *q = append(*q, x.(entry)) }
func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

// Timeline is a virtual clock with a timer queue. Not safe for concurrent use.
type Timeline struct {
	now time.Duration
	seq uint64
	q   queue
}

func NewTimeline() *Timeline { return &Timeline{} }

// Now is the elapsed virtual time.
func (tl *Timeline) Now() time.Duration { return tl.now }

// After schedules fn once, d from now.
func (tl *Timeline) After(d time.Duration, fn func()) *Timer {
	t := &Timer{tl: tl, fn: fn}
	tl.push(t, tl.now+max(d, 0))
	return t
}

// Every schedules fn repeatedly with period d, first firing d from now.
// Periods below one millisecond are raised to one millisecond.
func (tl *Timeline) Every(d time.Duration, fn func()) *Timer {
	d = max(d, time.Millisecond)
	t := &Timer{tl: tl, fn: fn, period: d}
	tl.push(t, tl.now+d)
	return t
}

func (tl *Timeline) push(t *Timer, at time.Duration) {
	t.at = at
	t.gen++
	tl.seq++
	heap.Push(&tl.q, entry{at: at, seq: tl.seq, gen: t.gen, timer: t})
}

// Advance moves time forward by d, firing every timer that comes due.
// Callbacks may schedule or stop timers; newly due ones fire in the same call.
func (tl *Timeline) Advance(d time.Duration) {
	target := tl.now + max(d, 0)
	for len(tl.q) > 0 && tl.q[0].at <= target {
		e := heap.Pop(&tl.q).(entry)
		t := e.timer
		if e.gen != t.gen || t.stopped || t.paused {
			continue
		}
		tl.now = e.at
		if t.period > 0 {
			tl.push(t, e.at+t.period)
		} else {
			t.stopped = true
		}
		t.fn()
	}
	tl.now = target
}

// Clear cancels every pending timer.
func (tl *Timeline) Clear() {
	for _, e := range tl.q {
		e.timer.stopped = true
	}
	tl.q = tl.q[:0]
}

// Pending counts live queued timers.
func (tl *Timeline) Pending() int {
	n := 0
	for _, e := range tl.q {
		if e.gen == e.timer.gen && !e.timer.stopped && !e.timer.paused {
			n++
		}
	}
	return n
}
