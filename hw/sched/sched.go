// Package sched is a virtual-time scheduler of single-shot timers.
//
// Emulated time only moves forward through Advance and RunUntil. Timers are
// kept in a list sorted by expiry; a timer callback may rearm any timer,
// itself included.
package sched

import (
	"time"

	"zeusemu/emu/log"
)

type Scheduler struct {
	now  time.Duration
	head *Timer
}

func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current emulated time.
func (s *Scheduler) Now() time.Duration { return s.now }

// Timer is a named single-shot timer. Once fired, it stays idle until
// rearmed with Adjust.
type Timer struct {
	Name string

	s     *Scheduler
	cb    func()
	when  time.Duration
	armed bool
	next  *Timer
}

// NewTimer creates an idle timer calling cb when it fires.
func (s *Scheduler) NewTimer(name string, cb func()) *Timer {
	return &Timer{Name: name, s: s, cb: cb}
}

// Adjust (re)arms the timer to fire delay from now. Negative delays are
// treated as zero.
func (t *Timer) Adjust(delay time.Duration) {
	delay = max(delay, 0)
	t.s.remove(t)
	t.when = t.s.now + delay
	t.armed = true
	t.s.insert(t)

	log.ModTimer.DebugZ("timer armed").
		String("name", t.Name).
		Duration("delay", delay).
		End()
}

// Cancel disarms the timer.
func (t *Timer) Cancel() {
	t.s.remove(t)
	t.armed = false
}

func (t *Timer) Armed() bool { return t.armed }

// Expiry returns the absolute time at which an armed timer fires.
func (t *Timer) Expiry() time.Duration { return t.when }

// Remaining returns the time left before the timer fires, or 0 if idle.
func (t *Timer) Remaining() time.Duration {
	if !t.armed {
		return 0
	}
	return t.when - t.s.now
}

func (s *Scheduler) insert(t *Timer) {
	// Timers expiring at the same time fire in arming order.
	ptr := &s.head
	for *ptr != nil && (*ptr).when <= t.when {
		ptr = &(*ptr).next
	}
	t.next = *ptr
	*ptr = t
}

func (s *Scheduler) remove(t *Timer) {
	for ptr := &s.head; *ptr != nil; ptr = &(*ptr).next {
		if *ptr == t {
			*ptr = t.next
			t.next = nil
			return
		}
	}
}

// Next returns the expiry of the earliest armed timer.
func (s *Scheduler) Next() (time.Duration, bool) {
	if s.head == nil {
		return 0, false
	}
	return s.head.when, true
}

// RunUntil fires, in order, all timers expiring at or before when, then sets
// the current time to when. The current time is set to each timer's expiry
// before its callback runs.
func (s *Scheduler) RunUntil(when time.Duration) {
	for s.head != nil && s.head.when <= when {
		// Unlink before calling, the callback may rearm the timer.
		t := s.head
		s.head = t.next
		t.next = nil
		t.armed = false
		s.now = max(s.now, t.when)

		log.ModTimer.DebugZ("timer fired").
			String("name", t.Name).
			End()
		t.cb()
	}
	s.now = max(s.now, when)
}

// Advance runs the scheduler for d.
func (s *Scheduler) Advance(d time.Duration) {
	s.RunUntil(s.now + d)
}

// CancelAll disarms all timers, without changing the current time.
func (s *Scheduler) CancelAll() {
	for t := s.head; t != nil; {
		next := t.next
		t.next = nil
		t.armed = false
		t = next
	}
	s.head = nil
}

// AddLogContext implements log.ContextAdder.
func (s *Scheduler) AddLogContext(e *log.EntryZ) {
	e.Duration("t", s.now)
}

// Restore sets the current time, when restoring a snapshot. Pending timers
// are cancelled, their owners are expected to rearm them.
func (s *Scheduler) Restore(now time.Duration) {
	s.CancelAll()
	s.now = now
}
