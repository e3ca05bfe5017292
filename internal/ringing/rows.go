package ringing

import (
	"github.com/san-kum/ringsim/internal/notation"
)

// Generate rings a fresh sequencer from rounds and returns the first n rows
// as they were struck.
func Generate(m *notation.Method, n int) [][]int {
	s := NewSequencer(m)
	rows := make([][]int, 0, n)
	row := make([]int, 0, m.Bells)
	for len(rows) < n {
		step := s.Advance()
		if step.IsPause() {
			continue
		}
		row = append(row, step.Bell)
		if len(row) == m.Bells {
			rows = append(rows, row)
			row = make([]int, 0, m.Bells)
		}
	}
	return rows
}

// PlaceOf traces the 1-based place of bell through rows, the "blue line"
// ringers learn a method by. Rows without the bell yield 0.
func PlaceOf(rows [][]int, bell int) []float64 {
	line := make([]float64, len(rows))
	for i, row := range rows {
		for pos, b := range row {
			if b == bell {
				line[i] = float64(pos + 1)
				break
			}
		}
	}
	return line
}
