package layout

import (
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/udim"
)

// Direction is the stacking axis of a Sequential container
type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

// String returns the string representation of the direction
func (d Direction) String() string {
	switch d {
	case Vertical:
		return "Vertical"
	case Horizontal:
		return "Horizontal"
	}
	return "Unknown"
}

// ParseDirection parses a direction name
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "Vertical":
		return Vertical, nil
	case "Horizontal":
		return Horizontal, nil
	}
	return 0, guierr.InvalidRequest("invalid layout direction %q", s)
}

// Sequential stacks its children along one axis in child order. Each child
// takes its bounding size (pixel size plus margin) along the axis and is
// aligned on the cross axis by its own alignment. The container resizes to
// the stacked extent.
type Sequential struct {
	Container
	dir Direction
}

// NewSequential returns a stack along d
func NewSequential(d Direction) *Sequential { return &Sequential{dir: d} }

func (s *Sequential) Init(w *gui.Window) error {
	s.init(w, s.arrange)
	return nil
}

// Direction returns the stacking axis
func (s *Sequential) Direction() Direction { return s.dir }

func (s *Sequential) arrange() error {
	w := s.win
	children := w.Children()
	bounds := make([]geom.Size, len(children))
	var cross float32
	for i, c := range children {
		bounds[i] = boundingSize(w, c)
		if s.dir == Vertical {
			cross = max(cross, bounds[i].Width)
		} else {
			cross = max(cross, bounds[i].Height)
		}
	}

	var along float32
	for i, c := range children {
		p := marginOffset(w, c)
		b := bounds[i]
		if s.dir == Vertical {
			p.X += hAlignOffset(c.HorizontalAlignment(), cross-b.Width)
			p.Y += along
			along += b.Height
		} else {
			p.X += along
			p.Y += vAlignOffset(c.VerticalAlignment(), cross-b.Height)
			along += b.Width
		}
		place(w, c, p)
	}

	if s.dir == Vertical {
		w.SetSize(udim.AbsSize(cross, along))
	} else {
		w.SetSize(udim.AbsSize(along, cross))
	}
	return nil
}

// hAlignOffset is the offset of an aligned box inside spare width
func hAlignOffset(a gui.HAlign, spare float32) float32 {
	switch a {
	case gui.HAlignCentre:
		return spare * 0.5
	case gui.HAlignRight:
		return spare
	}
	return 0
}

func vAlignOffset(a gui.VAlign, spare float32) float32 {
	switch a {
	case gui.VAlignCentre:
		return spare * 0.5
	case gui.VAlignBottom:
		return spare
	}
	return 0
}
