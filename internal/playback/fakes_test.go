package playback_test

import (
	"sync"
	"time"

	"github.com/san-kum/ringsim/internal/playback"
	"github.com/san-kum/ringsim/internal/ringing"
)

type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock *manualClock
	at    time.Duration
	f     func()
	done  bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) playback.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward, firing due timers in order.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	for {
		var next *manualTimer
		for _, t := range c.timers {
			if !t.done && t.at <= target && (next == nil || t.at < next.at) {
				next = t
			}
		}
		if next == nil {
			break
		}
		next.done = true
		c.now = next.at
		c.mu.Unlock()
		next.f()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

func (c *manualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.done {
			n++
		}
	}
	return n
}

type recordingSounder struct {
	mu    sync.Mutex
	bells []int
}

func (r *recordingSounder) Ring(bell int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bells = append(r.bells, bell)
}

func (r *recordingSounder) Bells() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.bells...)
}

func (r *recordingSounder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bells)
}

type stepLog struct {
	mu    sync.Mutex
	steps []ringing.Step
}

func (l *stepLog) OnStep(step ringing.Step, _ ringing.Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.steps = append(l.steps, step)
}

func (l *stepLog) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.steps)
}

func (l *stepLog) Steps() []ringing.Step {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]ringing.Step(nil), l.steps...)
}
