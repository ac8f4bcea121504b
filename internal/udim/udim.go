// Package udim implements unified dimensions: measurements made of a
// relative scale and an absolute pixel offset, resolved against a parent
// extent.
package udim

import (
	"fmt"

	"github.com/1broseidon/cegui/internal/geom"
)

// UDim is a single-axis measurement resolved as Scale*extent + Offset
type UDim struct {
	Scale  float32
	Offset float32
}

// Abs returns a purely absolute dimension of px pixels
func Abs(px float32) UDim { return UDim{Offset: px} }

// Rel returns a purely relative dimension
func Rel(scale float32) UDim { return UDim{Scale: scale} }

// Resolve converts d to pixels against the given parent extent
func (d UDim) Resolve(extent float32) float32 { return d.Scale*extent + d.Offset }

func (d UDim) Add(o UDim) UDim { return UDim{d.Scale + o.Scale, d.Offset + o.Offset} }
func (d UDim) Sub(o UDim) UDim { return UDim{d.Scale - o.Scale, d.Offset - o.Offset} }

// Mul multiplies scale and offset component-wise
func (d UDim) Mul(o UDim) UDim { return UDim{d.Scale * o.Scale, d.Offset * o.Offset} }

// Times multiplies both components by f
func (d UDim) Times(f float32) UDim { return UDim{d.Scale * f, d.Offset * f} }

// IsZero reports whether both components are zero
func (d UDim) IsZero() bool { return d.Scale == 0 && d.Offset == 0 }

// UVector2 is a two-axis unified position
type UVector2 struct {
	X UDim
	Y UDim
}

// Resolve converts v to pixels against a parent size
func (v UVector2) Resolve(base geom.Size) geom.Vec2 {
	return geom.Vec2{X: v.X.Resolve(base.Width), Y: v.Y.Resolve(base.Height)}
}

func (v UVector2) Add(o UVector2) UVector2 { return UVector2{v.X.Add(o.X), v.Y.Add(o.Y)} }
func (v UVector2) Sub(o UVector2) UVector2 { return UVector2{v.X.Sub(o.X), v.Y.Sub(o.Y)} }

// AbsVec returns an absolute unified vector
func AbsVec(x, y float32) UVector2 { return UVector2{Abs(x), Abs(y)} }

// RelVec returns a relative unified vector
func RelVec(x, y float32) UVector2 { return UVector2{Rel(x), Rel(y)} }

// USize is a two-axis unified size
type USize struct {
	Width  UDim
	Height UDim
}

// Resolve converts s to pixels against a parent size
func (s USize) Resolve(base geom.Size) geom.Size {
	return geom.Size{Width: s.Width.Resolve(base.Width), Height: s.Height.Resolve(base.Height)}
}

// AbsSize returns an absolute unified size
func AbsSize(w, h float32) USize { return USize{Abs(w), Abs(h)} }

// RelSize returns a relative unified size
func RelSize(w, h float32) USize { return USize{Rel(w), Rel(h)} }

// URect is a unified area described by its min and max corners
type URect struct {
	Min UVector2
	Max UVector2
}

// AreaOf builds a URect from a position and a size
func AreaOf(pos UVector2, size USize) URect {
	return URect{Min: pos, Max: UVector2{pos.X.Add(size.Width), pos.Y.Add(size.Height)}}
}

// Position returns the min corner
func (r URect) Position() UVector2 { return r.Min }

// Size returns the unified extent Max - Min
func (r URect) Size() USize {
	return USize{Width: r.Max.X.Sub(r.Min.X), Height: r.Max.Y.Sub(r.Min.Y)}
}

// Resolve converts r to a pixel rect relative to a base area of the given size
func (r URect) Resolve(base geom.Size) geom.Rect {
	return geom.Rect{Min: r.Min.Resolve(base), Max: r.Max.Resolve(base)}
}

// UBox holds four unified edges, used for margins
type UBox struct {
	Top    UDim
	Left   UDim
	Bottom UDim
	Right  UDim
}

// Resolve returns the pixel margins (left, top, right, bottom) for base
func (b UBox) Resolve(base geom.Size) (left, top, right, bottom float32) {
	return b.Left.Resolve(base.Width), b.Top.Resolve(base.Height),
		b.Right.Resolve(base.Width), b.Bottom.Resolve(base.Height)
}

func (d UDim) String() string {
	return fmt.Sprintf("{%s,%s}", fmtFloat(d.Scale), fmtFloat(d.Offset))
}

func (v UVector2) String() string { return fmt.Sprintf("{%s,%s}", v.X, v.Y) }
func (s USize) String() string    { return fmt.Sprintf("{%s,%s}", s.Width, s.Height) }

func (r URect) String() string {
	return fmt.Sprintf("{%s,%s,%s,%s}", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

func (b UBox) String() string {
	return fmt.Sprintf("{top:%s,left:%s,bottom:%s,right:%s}", b.Top, b.Left, b.Bottom, b.Right)
}

func fmtFloat(f float32) string { return fmt.Sprintf("%g", f) }
