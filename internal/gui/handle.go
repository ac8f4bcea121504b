package gui

import (
	"fmt"

	"github.com/1broseidon/cegui/internal/guierr"
)

// Handle is a generation-checked reference to a window in a runtime's
// arena. The zero Handle refers to no window.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h refers to no window
func (h Handle) IsZero() bool { return h.gen == 0 }

// String returns the string representation of the handle
func (h Handle) String() string {
	if h.IsZero() {
		return "#none"
	}
	return fmt.Sprintf("#%d.%d", h.index, h.gen)
}

type slot struct {
	gen uint32
	w   *Window
}

// arena stores windows by index; a slot's generation is bumped on release so
// stale handles never resolve to a reused slot.
type arena struct {
	slots []slot
	free  []uint32
	live  int
}

func (a *arena) alloc(w *Window) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}
	s := &a.slots[idx]
	s.gen++
	s.w = w
	a.live++
	return Handle{index: idx, gen: s.gen}
}

func (a *arena) get(h Handle) *Window {
	if h.IsZero() || int(h.index) >= len(a.slots) {
		return nil
	}
	s := a.slots[h.index]
	if s.gen != h.gen {
		return nil
	}
	return s.w
}

func (a *arena) release(h Handle) {
	if a.get(h) == nil {
		return
	}
	s := &a.slots[h.index]
	s.w = nil
	s.gen++
	a.free = append(a.free, h.index)
	a.live--
}

func (a *arena) lookup(h Handle) (*Window, error) {
	if w := a.get(h); w != nil {
		return w, nil
	}
	return nil, guierr.UnknownObject("window handle %s is not live", h)
}
