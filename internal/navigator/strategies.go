package navigator

import (
	"github.com/chewxy/math32"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/gui"
)

// candidate reports whether h can be navigated to
func candidate(rt *gui.Runtime, h gui.Handle) bool {
	w, err := rt.Get(h)
	if err != nil {
		return false
	}
	return w.IsEffectiveVisible() && !w.IsEffectiveDisabled()
}

func forward(payload string) (step int, ok bool) {
	switch payload {
	case PayloadNext, PayloadRight, PayloadDown:
		return 1, true
	case PayloadPrevious, PayloadLeft, PayloadUp:
		return -1, true
	}
	return 0, false
}

// Linear cycles through an explicit window order. Every payload moves
// forward or backward: next, right and down step forward.
type Linear struct {
	Windows []gui.Handle
	// Wrap continues from the other end of the list.
	Wrap bool
}

func (l *Linear) Next(rt *gui.Runtime, current gui.Handle, payload string) gui.Handle {
	step, ok := forward(payload)
	count := len(l.Windows)
	if !ok || count == 0 {
		return current
	}
	idx := -1
	for i, h := range l.Windows {
		if h == current {
			idx = i
			break
		}
	}
	if idx < 0 && step < 0 {
		// Entering the list backwards starts past its end.
		idx = count
	}
	for n := 1; n <= count; n++ {
		i := idx + step*n
		if i < 0 || i >= count {
			if !l.Wrap {
				return current
			}
			i = (i%count + count) % count
		}
		if i == idx {
			return current
		}
		if candidate(rt, l.Windows[i]) {
			return l.Windows[i]
		}
	}
	return current
}

// Matrix navigates a row-major grid of handles. Rows may differ in length
// and zero handles mark holes that are skipped. Next and previous traverse
// the cells in reading order.
type Matrix struct {
	Cells [][]gui.Handle
	Wrap  bool
}

func (m *Matrix) find(h gui.Handle) (row, col int, ok bool) {
	for r, cells := range m.Cells {
		for c, x := range cells {
			if x == h && !h.IsZero() {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

func (m *Matrix) flat() []gui.Handle {
	var out []gui.Handle
	for _, cells := range m.Cells {
		out = append(out, cells...)
	}
	return out
}

func (m *Matrix) Next(rt *gui.Runtime, current gui.Handle, payload string) gui.Handle {
	if payload == PayloadNext || payload == PayloadPrevious {
		return (&Linear{Windows: m.flat(), Wrap: m.Wrap}).Next(rt, current, payload)
	}
	row, col, ok := m.find(current)
	if !ok {
		for _, h := range m.flat() {
			if candidate(rt, h) {
				return h
			}
		}
		return current
	}

	rows := len(m.Cells)
	dr, dc := 0, 0
	switch payload {
	case PayloadUp:
		dr = -1
	case PayloadDown:
		dr = 1
	case PayloadLeft:
		dc = -1
	case PayloadRight:
		dc = 1
	default:
		return current
	}

	// Walk in the direction until a navigable cell turns up or the walk
	// returns to the start.
	r, c := row, col
	for range rows * m.widest() {
		if dr != 0 {
			r += dr
			if r < 0 || r >= rows {
				if !m.Wrap {
					return current
				}
				r = (r + rows) % rows
			}
		} else {
			cols := len(m.Cells[r])
			c += dc
			if c < 0 || c >= cols {
				if !m.Wrap {
					return current
				}
				c = (c + cols) % cols
			}
		}
		if r == row && c == col {
			return current
		}
		cells := m.Cells[r]
		if len(cells) == 0 {
			continue
		}
		h := cells[min(c, len(cells)-1)]
		if candidate(rt, h) {
			return h
		}
	}
	return current
}

func (m *Matrix) widest() int {
	n := 1
	for _, cells := range m.Cells {
		n = max(n, len(cells))
	}
	return n
}

// Spatial focuses the nearest focusable window whose centre lies in the
// direction of travel, by Manhattan distance between centres. Without a
// window in that direction it wraps to the far edge, preferring windows
// aligned with the current one. Next and previous follow document order.
type Spatial struct {
	// Scope limits the search to a subtree; zero searches from the root.
	Scope gui.Handle
	Wrap  bool
}

// Candidates returns the focusable, visible windows in document order
func (s *Spatial) Candidates(rt *gui.Runtime) []gui.Handle {
	var out []gui.Handle
	visit := func(w *gui.Window) bool {
		if w.IsEffectiveVisible() && w.IsFocusable() {
			out = append(out, w.Handle())
		}
		return true
	}
	if scope, err := rt.Get(s.Scope); err == nil {
		scope.Walk(visit)
	} else {
		rt.Walk(visit)
	}
	return out
}

func (s *Spatial) Next(rt *gui.Runtime, current gui.Handle, payload string) gui.Handle {
	handles := s.Candidates(rt)
	if payload == PayloadNext || payload == PayloadPrevious {
		return (&Linear{Windows: handles, Wrap: s.Wrap}).Next(rt, current, payload)
	}
	centres := make([]geom.Vec2, len(handles))
	idx := -1
	for i, h := range handles {
		w, _ := rt.Get(h)
		centres[i] = w.UnclippedOuterRect().Centre()
		if h == current {
			idx = i
		}
	}
	if idx < 0 {
		if len(handles) > 0 {
			return handles[0]
		}
		return current
	}
	best := Nearest(idx, payload, centres, s.Wrap)
	if best < 0 {
		return current
	}
	return handles[best]
}

// Nearest returns the index of the point nearest to points[from] in the
// direction named by payload, or -1. With wrap, a direction without points
// continues from the opposite edge.
func Nearest(from int, payload string, points []geom.Vec2, wrap bool) int {
	c := points[from]
	best, bestDist := -1, float32(0)
	for i, p := range points {
		if i == from {
			continue
		}
		var ahead bool
		switch payload {
		case PayloadUp:
			ahead = p.Y < c.Y
		case PayloadDown:
			ahead = p.Y > c.Y
		case PayloadLeft:
			ahead = p.X < c.X
		case PayloadRight:
			ahead = p.X > c.X
		}
		if !ahead {
			continue
		}
		dist := math32.Abs(p.X-c.X) + math32.Abs(p.Y-c.Y)
		if best < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best >= 0 || !wrap {
		return best
	}

	// Wrap to the far edge: the extreme position along the axis of travel
	// wins, then the smallest offset across it.
	var bestScore float64
	for i, p := range points {
		if i == from {
			continue
		}
		var edge, cross float32
		switch payload {
		case PayloadUp:
			edge, cross = p.Y, math32.Abs(p.X-c.X)
		case PayloadDown:
			edge, cross = -p.Y, math32.Abs(p.X-c.X)
		case PayloadLeft:
			edge, cross = p.X, math32.Abs(p.Y-c.Y)
		case PayloadRight:
			edge, cross = -p.X, math32.Abs(p.Y-c.Y)
		default:
			return -1
		}
		score := float64(edge)*10000 - float64(cross)
		if best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}
