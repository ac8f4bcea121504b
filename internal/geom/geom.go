package geom

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vec2 is a point or offset in pixel space
type Vec2 struct {
	X float32
	Y float32
}

// V2 is shorthand for Vec2{x, y}
func V2(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale multiplies both components by s
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) String() string { return fmt.Sprintf("(%g,%g)", v.X, v.Y) }

// Size is a width and height in pixels
type Size struct {
	Width  float32
	Height float32
}

// Sz is shorthand for Size{w, h}
func Sz(w, h float32) Size { return Size{Width: w, Height: h} }

// IsZero reports whether either extent is zero or negative
func (s Size) IsZero() bool { return s.Width <= 0 || s.Height <= 0 }

// Clamp limits s to lie between min and max. A zero max extent means
// unbounded on that axis; max wins over min.
func (s Size) Clamp(min, max Size) Size {
	if s.Width < min.Width {
		s.Width = min.Width
	}
	if s.Height < min.Height {
		s.Height = min.Height
	}
	if max.Width > 0 && s.Width > max.Width {
		s.Width = max.Width
	}
	if max.Height > 0 && s.Height > max.Height {
		s.Height = max.Height
	}
	return s
}

// Round rounds both extents to whole pixels
func (s Size) Round() Size {
	return Size{math32.Round(s.Width), math32.Round(s.Height)}
}

func (s Size) String() string { return fmt.Sprintf("%gx%g", s.Width, s.Height) }

// Rect is an axis-aligned rectangle with Min inclusive and Max exclusive
type Rect struct {
	Min Vec2
	Max Vec2
}

// R builds a rect from left, top, right and bottom edges
func R(left, top, right, bottom float32) Rect {
	return Rect{Min: Vec2{left, top}, Max: Vec2{right, bottom}}
}

// RectAt builds a rect from a position and a size
func RectAt(pos Vec2, size Size) Rect {
	return Rect{Min: pos, Max: Vec2{pos.X + size.Width, pos.Y + size.Height}}
}

func (r Rect) Left() float32   { return r.Min.X }
func (r Rect) Top() float32    { return r.Min.Y }
func (r Rect) Right() float32  { return r.Max.X }
func (r Rect) Bottom() float32 { return r.Max.Y }
func (r Rect) Width() float32  { return r.Max.X - r.Min.X }
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

func (r Rect) Size() Size     { return Size{r.Width(), r.Height()} }
func (r Rect) Position() Vec2 { return r.Min }

// Centre returns the midpoint of r
func (r Rect) Centre() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// IsEmpty reports whether r has zero (or negative) width or height
func (r Rect) IsEmpty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Offset moves r by d
func (r Rect) Offset(d Vec2) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// WithSize keeps the position of r and replaces its size
func (r Rect) WithSize(s Size) Rect { return RectAt(r.Min, s) }

// WithPosition moves r so its top-left corner lies at p, keeping its size
func (r Rect) WithPosition(p Vec2) Rect { return RectAt(p, r.Size()) }

// Intersection returns the overlap of r and o, or the zero rect when they
// do not overlap.
func (r Rect) Intersection(o Rect) Rect {
	if r.Max.X > o.Min.X && r.Min.X < o.Max.X && r.Max.Y > o.Min.Y && r.Min.Y < o.Max.Y {
		return Rect{
			Min: Vec2{math32.Max(r.Min.X, o.Min.X), math32.Max(r.Min.Y, o.Min.Y)},
			Max: Vec2{math32.Min(r.Max.X, o.Max.X), math32.Min(r.Max.Y, o.Max.Y)},
		}
	}
	return Rect{}
}

// Union returns the smallest rect containing both r and o
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Vec2{math32.Min(r.Min.X, o.Min.X), math32.Min(r.Min.Y, o.Min.Y)},
		Max: Vec2{math32.Max(r.Max.X, o.Max.X), math32.Max(r.Max.Y, o.Max.Y)},
	}
}

// IsPointInside reports whether p lies within r
func (r Rect) IsPointInside(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Round snaps every edge to the nearest whole pixel
func (r Rect) Round() Rect {
	return Rect{
		Min: Vec2{math32.Round(r.Min.X), math32.Round(r.Min.Y)},
		Max: Vec2{math32.Round(r.Max.X), math32.Round(r.Max.Y)},
	}
}

// ClampNonNegative returns r with negative coordinates raised to zero
func (r Rect) ClampNonNegative() Rect {
	r.Min.X = math32.Max(0, r.Min.X)
	r.Min.Y = math32.Max(0, r.Min.Y)
	r.Max.X = math32.Max(0, r.Max.X)
	r.Max.Y = math32.Max(0, r.Max.Y)
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}
