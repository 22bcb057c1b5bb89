// Package frame drives per-frame work: ambient animation and one-shot
// deferred callbacks. The loop owns no clock; callers advance it with Step,
// which keeps ordering deterministic and tests free of real time.
package frame

import (
	"sort"
	"time"
)

// Animated is an entity advanced once per frame.
type Animated interface {
	Tick(dt float64)
}

// Deferred is a one-shot callback scheduled on a Loop.
type Deferred struct {
	due       time.Duration
	seq       uint64
	fn        func()
	cancelled bool
	fired     bool
}

// Cancel prevents the callback from running. It reports whether the
// callback was still pending.
func (d *Deferred) Cancel() bool {
	if d == nil || d.fired || d.cancelled {
		return false
	}
	d.cancelled = true
	return true
}

// Pending reports whether the callback has neither fired nor been cancelled.
func (d *Deferred) Pending() bool {
	return d != nil && !d.fired && !d.cancelled
}

// Loop is the single driver for everything that happens between input
// events. It is not safe for concurrent use.
type Loop struct {
	now      time.Duration
	seq      uint64
	entities []Animated
	deferred []*Deferred
}

// NewLoop creates a loop at time zero.
func NewLoop() *Loop {
	return &Loop{}
}

// Now returns the loop's elapsed time.
func (l *Loop) Now() time.Duration {
	return l.now
}

// Register adds an entity to the per-frame pass. Registering twice is a
// no-op.
func (l *Loop) Register(a Animated) {
	for _, e := range l.entities {
		if e == a {
			return
		}
	}
	l.entities = append(l.entities, a)
}

// Unregister removes an entity and reports whether it was registered.
func (l *Loop) Unregister(a Animated) bool {
	for i, e := range l.entities {
		if e == a {
			l.entities = append(l.entities[:i], l.entities[i+1:]...)
			return true
		}
	}
	return false
}

// Animated returns the number of registered entities.
func (l *Loop) Animated() int {
	return len(l.entities)
}

// After schedules fn to run on the first Step at or beyond now+delay.
func (l *Loop) After(delay time.Duration, fn func()) *Deferred {
	l.seq++
	d := &Deferred{due: l.now + delay, seq: l.seq, fn: fn}
	l.deferred = append(l.deferred, d)
	return d
}

// Step advances the clock by dt, runs due callbacks in due order, then
// ticks every registered entity in registration order.
func (l *Loop) Step(dt time.Duration) {
	l.now += dt

	var due, pending []*Deferred
	for _, d := range l.deferred {
		switch {
		case d.cancelled:
		case d.due <= l.now:
			due = append(due, d)
		default:
			pending = append(pending, d)
		}
	}
	l.deferred = pending
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	for _, d := range due {
		if d.cancelled {
			continue
		}
		d.fired = true
		d.fn()
	}

	secs := dt.Seconds()
	entities := make([]Animated, len(l.entities))
	copy(entities, l.entities)
	for _, e := range entities {
		e.Tick(secs)
	}
}
