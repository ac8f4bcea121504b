package falagard

import (
	"fmt"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/udim"
)

// ComponentArea locates a component within its window. It is computed from
// four dimensions, or taken from a URect property, or from a named area of
// a look.
type ComponentArea struct {
	Left   Dimension
	Top    Dimension
	// Right holds either a RightEdge or a Width dimension.
	Right Dimension
	// Bottom holds either a BottomEdge or a Height dimension.
	Bottom Dimension

	// AreaProperty names a URect property to use instead of the dimensions.
	AreaProperty string
	// NamedArea names an area to use instead; NamedAreaLook selects the
	// look that defines it, defaulting to the look being evaluated.
	NamedArea     string
	NamedAreaLook string
}

// DefaultArea covers the whole window
func DefaultArea() ComponentArea {
	return ComponentArea{
		Left:   Dimension{Base: AbsoluteDim(0), Type: DimLeftEdge},
		Top:    Dimension{Base: AbsoluteDim(0), Type: DimTopEdge},
		Right:  Dimension{Base: UnifiedDim{UDim: udim.Rel(1)}, Type: DimWidth},
		Bottom: Dimension{Base: UnifiedDim{UDim: udim.Rel(1)}, Type: DimHeight},
	}
}

// PixelRect returns the area in window pixels, offset by the container's
// position when the context has one.
func (a ComponentArea) PixelRect(ctx *Context) (geom.Rect, error) {
	var r geom.Rect
	switch {
	case a.AreaProperty != "":
		s, err := ctx.Window.Property(a.AreaProperty)
		if err != nil {
			return geom.Rect{}, err
		}
		ur, err := udim.ParseURect(s)
		if err != nil {
			return geom.Rect{}, fmt.Errorf("area property %q: %w", a.AreaProperty, err)
		}
		r = ur.Resolve(ctx.base())
	case a.NamedArea != "":
		var look *WidgetLook
		if a.NamedAreaLook != "" && (ctx.Look == nil || a.NamedAreaLook != ctx.Look.Name) {
			if ctx.Look == nil || ctx.Look.manager == nil {
				return geom.Rect{}, fmt.Errorf("named area %q: WidgetLook %q unavailable", a.NamedArea, a.NamedAreaLook)
			}
			l, err := ctx.Look.manager.Look(a.NamedAreaLook)
			if err != nil {
				return geom.Rect{}, err
			}
			look = l
		}
		nr, err := ctx.namedArea(look, a.NamedArea)
		if err != nil {
			return geom.Rect{}, err
		}
		// named areas already include the container offset
		return nr, nil
	default:
		left, err := a.Left.Value(ctx)
		if err != nil {
			return geom.Rect{}, err
		}
		top, err := a.Top.Value(ctx)
		if err != nil {
			return geom.Rect{}, err
		}
		right, err := a.Right.Value(ctx)
		if err != nil {
			return geom.Rect{}, err
		}
		bottom, err := a.Bottom.Value(ctx)
		if err != nil {
			return geom.Rect{}, err
		}
		if a.Right.Type == DimWidth {
			right += left
		}
		if a.Bottom.Type == DimHeight {
			bottom += top
		}
		r = geom.R(left, top, right, bottom)
	}
	if ctx.Container != nil {
		r = r.Offset(ctx.Container.Min)
	}
	return r, nil
}
