package playback

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/san-kum/ringsim/internal/ringing"
)

// Sounder strikes a bell. Ring is only ever called with a real 1-based bell
// and must not block or call back into the Driver.
type Sounder interface {
	Ring(bell int)
}

// SounderFunc adapts a function to Sounder.
type SounderFunc func(bell int)

func (f SounderFunc) Ring(bell int) { f(bell) }

// Observer sees every tick, pauses included, after the sounder.
type Observer interface {
	OnStep(step ringing.Step, snap ringing.Snapshot)
}

type Option func(*Driver)

func WithClock(c Clock) Option { return func(d *Driver) { d.clock = c } }

func WithLogger(l *slog.Logger) Option { return func(d *Driver) { d.log = l } }

func WithObserver(o Observer) Option {
	return func(d *Driver) { d.observers = append(d.observers, o) }
}

// Driver plays a sequencer at a fixed cadence.
type Driver struct {
	seq       *ringing.Sequencer
	sounder   Sounder
	delay     time.Duration
	clock     Clock
	log       *slog.Logger
	observers []Observer

	rep   *repeater
	ticks atomic.Int64
}

func New(seq *ringing.Sequencer, sounder Sounder, delay time.Duration, opts ...Option) *Driver {
	d := &Driver{
		seq:     seq,
		sounder: sounder,
		delay:   delay,
		clock:   SystemClock,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.rep = newRepeater(d.clock, delay)
	return d
}

// Start rings from rounds: the first step is delivered before Start returns
// and the rest follow every delay. Starting a running driver restarts it.
func (d *Driver) Start() {
	if d.rep.stop() {
		d.log.Debug("restarting playback")
	}
	d.seq.Reset()
	d.ticks.Store(0)

	m := d.seq.Method()
	d.log.Info("playback started",
		"notation", m.Notation, "bells", m.Bells, "tenor_added", m.TenorAdded, "delay", d.delay)
	d.rep.start(d.tick)
}

// Stop cancels the pending tick. It is safe to call at any time.
func (d *Driver) Stop() {
	if d.rep.stop() {
		d.log.Info("playback stopped", "ticks", d.ticks.Load(), "changes", d.seq.Changes())
	}
}

func (d *Driver) Running() bool { return d.rep.isRunning() }

// Ticks counts steps delivered in the current session.
func (d *Driver) Ticks() int64 { return d.ticks.Load() }

func (d *Driver) tick() {
	step := d.seq.Advance()
	d.ticks.Add(1)
	if !step.IsPause() {
		d.sounder.Ring(step.Bell)
	}
	if len(d.observers) == 0 {
		return
	}
	snap := d.seq.Snapshot()
	for _, o := range d.observers {
		o.OnStep(step, snap)
	}
}
