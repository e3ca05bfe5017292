package playback

import (
	"sync"
	"time"
)

// repeater runs fn now and then once per interval, each run arming the next.
// The generation counter is the cancellation token: a timer that fires for
// an older generation does nothing.
type repeater struct {
	clock    Clock
	interval time.Duration

	mu      sync.Mutex
	fn      func()
	timer   Timer
	gen     uint64
	running bool
}

func newRepeater(clock Clock, interval time.Duration) *repeater {
	return &repeater{clock: clock, interval: interval}
}

func (r *repeater) start(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelLocked()
	r.gen++
	r.fn = fn
	r.running = true
	r.fn()
	r.armLocked(r.gen)
}

// stop reports whether a session was running. Once it returns, fn will not
// be called again until the next start.
func (r *repeater) stop() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return false
	}
	r.cancelLocked()
	r.gen++
	return true
}

func (r *repeater) isRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *repeater) cancelLocked() {
	r.running = false
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *repeater) armLocked(gen uint64) {
	r.timer = r.clock.AfterFunc(r.interval, func() { r.fire(gen) })
}

func (r *repeater) fire(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running || gen != r.gen {
		return
	}
	r.fn()
	r.armLocked(gen)
}
