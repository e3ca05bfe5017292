package ringing

import (
	"slices"

	"github.com/san-kum/ringsim/internal/notation"
)

// roundsChanges is the number of changes of rounds rung before the method
// proper starts.
const roundsChanges = 2

// Snapshot is a read-only view of sequencer state.
type Snapshot struct {
	Order         []int
	Position      int
	Row           int
	Changes       int
	StartOfChange bool
}

// Sequencer steps through the rows of a method one bell at a time.
// It is not safe for concurrent use.
type Sequencer struct {
	method *notation.Method

	order         []int
	scratch       []int
	position      int
	row           int
	changes       int
	startOfChange bool
}

func NewSequencer(m *notation.Method) *Sequencer {
	s := &Sequencer{
		method:  m,
		order:   make([]int, m.Bells),
		scratch: make([]int, m.Bells),
	}
	s.Reset()
	return s
}

func (s *Sequencer) Method() *notation.Method { return s.method }

// Reset returns to rounds at the start of the first change.
func (s *Sequencer) Reset() {
	for i := range s.order {
		s.order[i] = i + 1
	}
	s.position = 0
	s.row = 0
	s.changes = 0
	s.startOfChange = true
}

// Advance produces the next step. A handstroke gap is emitted before every
// even-numbered change and does not use up a place in the row.
func (s *Sequencer) Advance() Step {
	if s.startOfChange && s.changes%2 == 0 {
		s.startOfChange = false
		return Pause()
	}
	s.startOfChange = false

	step := Bell(s.order[s.position])
	s.position++

	if s.position == s.method.Bells {
		s.position = 0
		s.changes++
		s.startOfChange = true
		s.row = (s.row + 1) % s.method.LeadLength()
		if s.changes >= roundsChanges {
			s.permute()
		}
	}
	return step
}

// permute applies the current row template. Each run of unfixed positions
// swaps in adjacent pairs; the odd one out at the end of a run stays put.
func (s *Sequencer) permute() {
	n := s.method.Bells
	next := s.scratch
	for i := 0; i < n; {
		if s.method.Fixed(s.row, i) || i+1 >= n || s.method.Fixed(s.row, i+1) {
			next[i] = s.order[i]
			i++
			continue
		}
		next[i], next[i+1] = s.order[i+1], s.order[i]
		i += 2
	}
	s.order, s.scratch = next, s.order
}

// Order returns a copy of the current bell order.
func (s *Sequencer) Order() []int { return slices.Clone(s.order) }

func (s *Sequencer) Changes() int { return s.changes }

func (s *Sequencer) Snapshot() Snapshot {
	return Snapshot{
		Order:         s.Order(),
		Position:      s.position,
		Row:           s.row,
		Changes:       s.changes,
		StartOfChange: s.startOfChange,
	}
}
