package bells

import (
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/san-kum/ringsim/internal/notation"
	"github.com/san-kum/ringsim/internal/ringing"
)

var (
	trebleColor = color.New(color.FgRed, color.Bold)
	tenorColor  = color.New(color.FgBlue)
	mutedColor  = color.New(color.Faint)
)

// TextSounder prints each change as a row of bell symbols. It also observes
// the driver so it can break lines and mark the handstroke gap.
type TextSounder struct {
	mu  sync.Mutex
	w   io.Writer
	ctx *Context
}

func NewTextSounder(w io.Writer, ctx *Context) *TextSounder {
	return &TextSounder{w: w, ctx: ctx}
}

func (t *TextSounder) Ring(bell int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sym := string(notation.SymbolOf(bell - 1))
	_, ok := t.ctx.Resolve(bell)
	switch {
	case !ok:
		mutedColor.Fprint(t.w, sym)
	case bell == 1:
		trebleColor.Fprint(t.w, sym)
	case bell == t.ctx.Tenor():
		tenorColor.Fprint(t.w, sym)
	default:
		io.WriteString(t.w, sym)
	}
}

func (t *TextSounder) OnStep(step ringing.Step, snap ringing.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if step.IsPause() {
		io.WriteString(t.w, " ")
		return
	}
	if snap.Position == 0 {
		io.WriteString(t.w, "\n")
	}
}

// Silent discards every strike.
type Silent struct{}

func (Silent) Ring(int) {}
