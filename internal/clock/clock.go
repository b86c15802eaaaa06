// Package clock is a single-threaded virtual-time scheduler. Timers only fire
// from Advance and AdvanceTo, on the caller's goroutine, ordered by due time
// and then by the order they were scheduled. A Scheduler is not safe for
// concurrent use.
package clock

import (
	"container/heap"
	"math"
	"time"
)

type Scheduler struct {
	now   time.Duration
	queue timerQueue
	seq   uint64
}

func New() *Scheduler {
	return &Scheduler{}
}

// Now is the current virtual time. Inside a callback it equals the timer's
// due time.
func (s *Scheduler) Now() time.Duration { return s.now }

// After runs fn once, d after now.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	return s.schedule(d, 0, fn)
}

// Every runs fn every d, starting d after now. A non-positive d is treated
// as one nanosecond so Advance always terminates.
func (s *Scheduler) Every(d time.Duration, fn func()) *Timer {
	if d <= 0 {
		d = time.Nanosecond
	}
	return s.schedule(d, d, fn)
}

func (s *Scheduler) schedule(d, interval time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	t := &Timer{sched: s, due: s.now + d, interval: interval, fn: fn, index: -1}
	s.push(t)
	return t
}

func (s *Scheduler) push(t *Timer) {
	s.seq++
	t.seq = s.seq
	heap.Push(&s.queue, t)
}

// Advance moves the clock forward by d and fires every timer that falls due,
// returning how many callbacks ran.
func (s *Scheduler) Advance(d time.Duration) int {
	return s.AdvanceTo(s.now + d)
}

// AdvanceTo moves the clock to t. Timers scheduled by callbacks are fired in
// the same call when they fall due at or before t.
func (s *Scheduler) AdvanceTo(t time.Duration) int {
	fired := 0
	for len(s.queue) > 0 && s.queue[0].due <= t {
		tm := heap.Pop(&s.queue).(*Timer)
		s.now = tm.due
		if tm.interval > 0 {
			tm.due += tm.interval
			s.push(tm)
		}
		tm.fn()
		fired++
	}
	if t > s.now {
		s.now = t
	}
	return fired
}

// Pending returns how many timers are waiting to fire.
func (s *Scheduler) Pending() int { return len(s.queue) }

// NextDue reports when the earliest pending timer fires.
func (s *Scheduler) NextDue() (time.Duration, bool) {
	if len(s.queue) == 0 {
		return 0, false
	}
	return s.queue[0].due, true
}

// Timer is a pending one-shot or repeating callback.
type Timer struct {
	sched    *Scheduler
	due      time.Duration
	interval time.Duration
	seq      uint64
	fn       func()
	index    int
}

// Stop cancels the timer. It reports whether the timer was still pending;
// stopping a repeating timer from inside its own callback cancels the
// following runs.
func (t *Timer) Stop() bool {
	if t == nil || t.index < 0 {
		return false
	}
	heap.Remove(&t.sched.queue, t.index)
	return true
}

// Active reports whether the timer is still scheduled.
func (t *Timer) Active() bool { return t != nil && t.index >= 0 }

// Due is the virtual time of the next run.
func (t *Timer) Due() time.Duration { return t.due }

type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Seconds converts fractional seconds to a Duration, rounded to the
// nanosecond.
func Seconds(f float64) time.Duration {
	return time.Duration(math.Round(f * float64(time.Second)))
}
