package ringing

import "strconv"

// Kind tags a Step.
type Kind int

const (
	KindPause Kind = iota
	KindBell
)

// Step is one tick of output: either a bell to sound or a handstroke gap.
type Step struct {
	Kind Kind
	// Bell is 1-based and only meaningful when Kind is KindBell.
	Bell int
}

// Bell makes a sounded step.
func Bell(n int) Step { return Step{Kind: KindBell, Bell: n} }

// Pause makes a silent step.
func Pause() Step { return Step{Kind: KindPause} }

func (s Step) IsPause() bool { return s.Kind == KindPause }

func (s Step) String() string {
	if s.IsPause() {
		return "-"
	}
	return strconv.Itoa(s.Bell)
}
