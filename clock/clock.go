// Package clock provides the timers the game engine schedules its loop, bonus and
// speed ramp on. Time only moves when the owner advances it, so a game can be driven
// by real frames or by a test stepping through simulated seconds.
package clock

import (
	"container/heap"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the timer. It returns false if the timer had already fired
	// (one-shot) or was already stopped.
	Stop() bool
}

// Clock schedules callbacks against a time source.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
	Every(d time.Duration, f func()) Timer
}

// Manual is a virtual clock. Callbacks run on the goroutine calling Advance, in
// deadline order, ties broken by scheduling order. It is not safe for concurrent use.
type Manual struct {
	now   time.Time
	seq   uint64
	queue timerQueue
}

// NewManual creates a manual clock starting at the given time.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current virtual time.
func (m *Manual) Now() time.Time {
	return m.now
}

// AfterFunc runs f once, d after the current virtual time.
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	return m.schedule(d, 0, f)
}

// Every runs f every d, starting d after the current virtual time.
func (m *Manual) Every(d time.Duration, f func()) Timer {
	if d <= 0 {
		d = time.Nanosecond
	}
	return m.schedule(d, d, f)
}

// Pending returns the number of active timers.
func (m *Manual) Pending() int {
	return len(m.queue)
}

// Advance moves the clock forward by d, firing every timer that comes due. Timers
// scheduled by callbacks fire in the same call if their deadline is within the
// advanced window. It returns the number of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now.Add(d)
	fired := 0
	for len(m.queue) > 0 {
		next := m.queue[0]
		if next.deadline.After(target) {
			break
		}
		m.now = next.deadline
		if next.period > 0 {
			next.deadline = next.deadline.Add(next.period)
			m.seq++
			next.seq = m.seq
			heap.Fix(&m.queue, next.index)
		} else {
			heap.Pop(&m.queue)
		}
		fired++
		next.fn()
	}
	m.now = target
	return fired
}

func (m *Manual) schedule(d, period time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{
		clock:    m,
		deadline: m.now.Add(d),
		period:   period,
		seq:      m.seq,
		fn:       f,
	}
	heap.Push(&m.queue, t)
	return t
}

type manualTimer struct {
	clock    *Manual
	deadline time.Time
	period   time.Duration
	seq      uint64
	fn       func()
	index    int
}

func (t *manualTimer) Stop() bool {
	if t.index < 0 {
		return false
	}
	heap.Remove(&t.clock.queue, t.index)
	return true
}

type timerQueue []*manualTimer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].deadline.Equal(q[j].deadline) {
		return q[i].seq < q[j].seq
	}
	return q[i].deadline.Before(q[j].deadline)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x interface{}) {
	t := x.(*manualTimer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() interface{} {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
