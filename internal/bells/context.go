package bells

import (
	"fmt"
	"sync"

	"github.com/san-kum/ringsim/internal/notation"
)

// Context is the listener-side selection: which peal is loaded, which
// absolute bell is the tenor and which bells are muted. Sounders share one
// Context; it is safe for concurrent use.
type Context struct {
	mu    sync.RWMutex
	peals []Peal
	key   int
	tenor int
	muted [notation.MaxBells + 1]bool
}

func NewContext(peals []Peal, key, tenor int) (*Context, error) {
	if len(peals) == 0 || key < 0 || key >= len(peals) {
		return nil, fmt.Errorf("key %d of %d: %w", key, len(peals), ErrNoPeal)
	}
	if tenor < 1 || tenor > notation.MaxBells {
		return nil, fmt.Errorf("tenor %d: %w", tenor, ErrInvalidBell)
	}
	return &Context{peals: peals, key: key, tenor: tenor}, nil
}

func (c *Context) Peal() Peal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.peals[c.key]
}

func (c *Context) Key() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.key
}

// SelectPeal moves to peal i, clamped to the available range, and returns
// the index selected.
func (c *Context) SelectPeal(i int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = min(max(i, 0), len(c.peals)-1)
	return c.key
}

func (c *Context) Tenor() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tenor
}

func (c *Context) SetTenor(bell int) error {
	if bell < 1 || bell > notation.MaxBells {
		return fmt.Errorf("tenor %d: %w", bell, ErrInvalidBell)
	}
	c.mu.Lock()
	c.tenor = bell
	c.mu.Unlock()
	return nil
}

func (c *Context) SetMuted(bell int, muted bool) error {
	if bell < 1 || bell > notation.MaxBells {
		return fmt.Errorf("mute %d: %w", bell, ErrInvalidBell)
	}
	c.mu.Lock()
	c.muted[bell] = muted
	c.mu.Unlock()
	return nil
}

func (c *Context) Muted(bell int) bool {
	if bell < 1 || bell > notation.MaxBells {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.muted[bell]
}

func (c *Context) ResetMutes() {
	c.mu.Lock()
	c.muted = [notation.MaxBells + 1]bool{}
	c.mu.Unlock()
}

// Resolve maps an absolute bell to a sound in the selected peal, counting
// down from the tenor. Bells above the tenor, below the lightest bell of the
// peal, or muted do not sound.
func (c *Context) Resolve(bell int) (int, bool) {
	if bell < 1 || bell > notation.MaxBells {
		return 0, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.muted[bell] || bell > c.tenor {
		return 0, false
	}
	idx := c.peals[c.key].Sounds - (c.tenor - bell) - 1
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

// Frequency resolves bell and returns its strike note.
func (c *Context) Frequency(bell int) (float64, bool) {
	idx, ok := c.Resolve(bell)
	if !ok {
		return 0, false
	}
	return c.Peal().Frequency(idx), true
}
