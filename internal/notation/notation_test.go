package notation

import (
	"bytes"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

func TestParseEmptyIsRoundsOnTwelve(t *testing.T) {
	m := Parse("", false)

	if m.Bells != 12 {
		t.Fatalf("expected 12 bells, got %d", m.Bells)
	}
	if m.LeadLength() != 1 {
		t.Fatalf("expected a single row, got %d", m.LeadLength())
	}
	for pos := 0; pos < 12; pos++ {
		if !m.Fixed(0, pos) {
			t.Errorf("position %d should be fixed in rounds", pos)
		}
	}
}

func TestPositionOf(t *testing.T) {
	tests := []struct {
		c   byte
		pos int
		ok  bool
	}{
		{'1', 0, true},
		{'9', 8, true},
		{'0', 9, true},
		{'e', 10, true},
		{'E', 10, true},
		{'t', 11, true},
		{'T', 11, true},
		{'z', 0, false},
		{'x', 0, false},
	}

	for _, tt := range tests {
		pos, ok := PositionOf(tt.c)
		if ok != tt.ok || pos != tt.pos {
			t.Errorf("PositionOf(%q) = %d,%v want %d,%v", tt.c, pos, ok, tt.pos, tt.ok)
		}
		if ok && SymbolOf(pos) != strings.ToUpper(string(tt.c))[0] {
			t.Errorf("SymbolOf(%d) = %q, want %q", pos, SymbolOf(pos), tt.c)
		}
	}
}

func TestParsePlainHunt(t *testing.T) {
	m := Parse("x16x16x16x16x16x16", false)

	if m.Bells != 6 {
		t.Fatalf("expected 6 bells, got %d", m.Bells)
	}
	if m.TenorAdded {
		t.Error("tenor should not be added")
	}
	if m.LeadLength() != 12 {
		t.Fatalf("expected 12 rows, got %d", m.LeadLength())
	}
	for i, r := range m.Lead() {
		if i%2 == 0 && !r.IsCross() {
			t.Errorf("row %d: expected cross, got %v", i, r)
		}
		if i%2 == 1 && !slices.Equal(r, Row{0, 5}) {
			t.Errorf("row %d: expected {0,5}, got %v", i, r)
		}
	}
}

func TestParseCrossAfterPlaces(t *testing.T) {
	m := Parse("14x", false)

	want := []Row{{0, 3}, {}}
	got := m.Lead()
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("row %d: want %v got %v", i, want[i], got[i])
		}
	}
}

func TestParseMirror(t *testing.T) {
	tests := []string{
		"x16x16x16",
		"5.1.5.1.5",
		"X14X36X58X18",
		"3.1.E.3.1.3",
	}

	for _, a := range tests {
		t.Run(a, func(t *testing.T) {
			base := Parse(a, false).Lead()
			mirrored := Parse(a+"-", false).Lead()

			want := slices.Clone(base)
			for i := len(base) - 2; i >= 0; i-- {
				want = append(want, base[i])
			}

			if len(mirrored) != len(want) {
				t.Fatalf("expected %d rows, got %d", len(want), len(mirrored))
			}
			for i := range want {
				if !slices.Equal(mirrored[i], want[i]) {
					t.Errorf("row %d: want %v got %v", i, want[i], mirrored[i])
				}
			}
		})
	}
}

func TestParsePlainBobMinorLead(t *testing.T) {
	m := Parse("x16x16x16-12", false)

	if m.Bells != 6 {
		t.Fatalf("expected 6 bells, got %d", m.Bells)
	}
	if got := m.String(); got != "x.16.x.16.x.16.x.16.x.16.x.12" {
		t.Errorf("unexpected lead %q", got)
	}
}

func TestParseCoverTenor(t *testing.T) {
	m := Parse("5.1.5.1.5-125", true)

	if m.Bells != 6 {
		t.Fatalf("expected 5+1 bells, got %d", m.Bells)
	}
	if !m.TenorAdded {
		t.Fatal("expected tenor to be added")
	}
	for i := 0; i < m.LeadLength(); i++ {
		if !m.Fixed(i, 5) {
			t.Errorf("row %d: tenor should be fixed", i)
		}
		if m.Row(i).Fixed(5) {
			t.Errorf("row %d: tenor should not be stored in the template", i)
		}
	}

	even := Parse("x16x16x16-12", true)
	if even.TenorAdded || even.Bells != 6 {
		t.Errorf("cover must not apply to an even stage, got %d bells", even.Bells)
	}
}

func TestParseSkipsUnknownCharacters(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	m := ParseWith(log, "x1?6x16", false)

	if m.Bells != 6 {
		t.Fatalf("expected 6 bells, got %d", m.Bells)
	}
	if got := m.String(); got != "x.16.x.16" {
		t.Errorf("unexpected lead %q", got)
	}
	if !strings.Contains(buf.String(), "char=?") {
		t.Errorf("expected a diagnostic for '?', got %q", buf.String())
	}
}

func TestParseDegenerate(t *testing.T) {
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	m := ParseWith(log, "zzz", false)
	if m.Bells != 1 {
		t.Errorf("expected 1 bell, got %d", m.Bells)
	}
	if m.LeadLength() == 0 {
		t.Error("lead must never be empty")
	}

	covered := ParseWith(log, "zzz", true)
	if covered.Bells != 2 || !covered.TenorAdded {
		t.Errorf("expected covered degenerate method on 2, got %d", covered.Bells)
	}
}

func TestRowsWithinStage(t *testing.T) {
	inputs := []string{
		"", "x", "-", "..", "x16x16x16-12", "X30X14X50X16X1270X38X14X50X16X90-12",
		"3.1.E.3.1.3-1", "X1TX14-12", "7.3.1.3.1.3",
	}

	for _, in := range inputs {
		for _, cover := range []bool{false, true} {
			m := Parse(in, cover)
			for i, r := range m.Lead() {
				for _, pos := range r {
					if pos < 0 || pos >= m.Bells {
						t.Errorf("%q row %d: position %d outside %d bells", in, i, pos, m.Bells)
					}
				}
			}
		}
	}
}

func TestLeadIsCopied(t *testing.T) {
	m := Parse("14.36", false)

	lead := m.Lead()
	lead[0][0] = 5
	r := m.Row(1)
	r[0] = 0

	if m.String() != "14.36" {
		t.Errorf("method mutated through accessor: %s", m.String())
	}
}
