package tui

import (
	"sync/atomic"

	"github.com/san-kum/ringsim/internal/ringing"
)

// StepMsg carries one driver tick into the program.
type StepMsg struct {
	Step ringing.Step
	Snap ringing.Snapshot
}

// Feed is a playback observer that hands ticks to the UI without ever
// blocking the driver. Ticks arriving while the buffer is full are dropped
// and counted.
type Feed struct {
	ch      chan StepMsg
	dropped atomic.Int64
}

func NewFeed(size int) *Feed {
	return &Feed{ch: make(chan StepMsg, size)}
}

func (f *Feed) OnStep(step ringing.Step, snap ringing.Snapshot) {
	select {
	case f.ch <- StepMsg{Step: step, Snap: snap}:
	default:
		f.dropped.Add(1)
	}
}

func (f *Feed) C() <-chan StepMsg { return f.ch }

func (f *Feed) Dropped() int64 { return f.dropped.Load() }
