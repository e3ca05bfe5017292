package notation

import (
	"slices"
	"strings"
)

const (
	// DefaultBells is the stage used when no notation is given.
	DefaultBells = 12
	// MaxBells is the highest stage the symbol table can name.
	MaxBells = 12
)

// Row holds the 0-based positions that stay fixed during one change.
// An empty Row is a cross.
type Row []int

// IsCross reports whether no position is fixed.
func (r Row) IsCross() bool { return len(r) == 0 }

// Fixed reports whether position pos is named by the row.
func (r Row) Fixed(pos int) bool {
	_, ok := slices.BinarySearch(r, pos)
	return ok
}

func (r Row) String() string {
	if r.IsCross() {
		return "x"
	}
	var b strings.Builder
	for _, pos := range r {
		b.WriteByte(SymbolOf(pos))
	}
	return b.String()
}

// Method is an immutable method definition: the stage and one lead of rows.
type Method struct {
	// Notation is the source text, empty for plain rounds.
	Notation string
	// Cover is the requested covering tenor flag.
	Cover bool
	// Bells is the number of working positions, including any added tenor.
	Bells int
	// TenorAdded is set when a covering tenor was appended to an odd stage.
	TenorAdded bool

	rows []Row
}

// LeadLength is the number of rows in one lead.
func (m *Method) LeadLength() int { return len(m.rows) }

// Row returns a copy of the row template at i.
func (m *Method) Row(i int) Row { return slices.Clone(m.rows[i]) }

// Lead returns a copy of every row template in order.
func (m *Method) Lead() []Row {
	out := make([]Row, len(m.rows))
	for i, r := range m.rows {
		out[i] = slices.Clone(r)
	}
	return out
}

// Fixed reports whether position pos stays put in row i, counting the
// covering tenor which never moves.
func (m *Method) Fixed(i, pos int) bool {
	if m.TenorAdded && pos == m.Bells-1 {
		return true
	}
	return m.rows[i].Fixed(pos)
}

// String renders the lead back to dotted place notation, one symbol group
// per change.
func (m *Method) String() string {
	parts := make([]string, len(m.rows))
	for i, r := range m.rows {
		parts[i] = r.String()
	}
	return strings.Join(parts, ".")
}
