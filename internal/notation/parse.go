package notation

import (
	"log/slog"
	"slices"
)

const symbols = "1234567890ET"

// PositionOf decodes a place symbol to a 0-based position.
func PositionOf(c byte) (int, bool) {
	switch {
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	case c == '0':
		return 9, true
	case c == 'e' || c == 'E':
		return 10, true
	case c == 't' || c == 'T':
		return 11, true
	}
	return 0, false
}

// SymbolOf is the inverse of PositionOf. Out of range positions render as '?'.
func SymbolOf(pos int) byte {
	if pos < 0 || pos >= len(symbols) {
		return '?'
	}
	return symbols[pos]
}

// Parse builds a method from place notation, logging skipped characters to
// the default logger.
func Parse(s string, cover bool) *Method {
	return ParseWith(slog.Default(), s, cover)
}

// ParseWith is Parse with an explicit diagnostics sink.
func ParseWith(log *slog.Logger, s string, cover bool) *Method {
	m := &Method{Notation: s, Cover: cover}

	if s == "" {
		m.Bells = DefaultBells
		m.rows = []Row{identity(DefaultBells)}
		return m
	}

	p := parser{}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case 'x', 'X':
			if len(p.current) > 0 {
				p.emit()
			}
			p.rows = append(p.rows, Row{})
		case '.':
			p.emit()
		case '-':
			p.emit()
			for j := len(p.rows) - 2; j >= 0; j-- {
				p.rows = append(p.rows, slices.Clone(p.rows[j]))
			}
		default:
			pos, ok := PositionOf(c)
			if !ok {
				log.Warn("skipping unknown place notation character",
					"char", string(c), "offset", i, "notation", s)
				continue
			}
			p.current = append(p.current, pos)
			p.max = max(p.max, pos)
		}
	}
	if len(p.current) > 0 {
		p.emit()
	}

	m.Bells = p.max + 1
	if len(p.rows) == 0 {
		log.Warn("place notation has no changes, ringing rounds", "notation", s)
		p.rows = []Row{identity(m.Bells)}
	}
	if cover && m.Bells%2 == 1 {
		m.Bells++
		m.TenorAdded = true
	}
	m.rows = p.rows
	return m
}

type parser struct {
	current []int
	rows    []Row
	max     int
}

// emit closes the current row, sorted and without duplicates.
func (p *parser) emit() {
	r := Row(p.current)
	slices.Sort(r)
	r = slices.Compact(r)
	if r == nil {
		r = Row{}
	}
	p.rows = append(p.rows, r)
	p.current = nil
}

func identity(n int) Row {
	r := make(Row, n)
	for i := range r {
		r[i] = i
	}
	return r
}
