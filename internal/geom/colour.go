package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// Colour is a straight-alpha RGBA colour with components in [0,1]
type Colour struct {
	R, G, B, A float32
}

var (
	White       = Colour{1, 1, 1, 1}
	Black       = Colour{0, 0, 0, 1}
	Transparent = Colour{}
)

// ARGB builds a colour from a packed 0xAARRGGBB value
func ARGB(v uint32) Colour {
	return Colour{
		A: float32(v>>24&0xff) / 255,
		R: float32(v>>16&0xff) / 255,
		G: float32(v>>8&0xff) / 255,
		B: float32(v&0xff) / 255,
	}
}

// ParseColour parses an AARRGGBB hex string. Six-digit RRGGBB strings are
// treated as opaque.
func ParseColour(s string) (Colour, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 6 {
		s = "FF" + s
	}
	if len(s) != 8 {
		return Colour{}, fmt.Errorf("invalid colour %q: want AARRGGBB", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Colour{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return ARGB(uint32(v)), nil
}

// Packed returns the colour as 0xAARRGGBB
func (c Colour) Packed() uint32 {
	ch := func(f float32) uint32 {
		if f <= 0 {
			return 0
		}
		if f >= 1 {
			return 255
		}
		return uint32(f*255 + 0.5)
	}
	return ch(c.A)<<24 | ch(c.R)<<16 | ch(c.G)<<8 | ch(c.B)
}

// Mul multiplies two colours component-wise
func (c Colour) Mul(o Colour) Colour {
	return Colour{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// WithAlpha returns c with its alpha multiplied by a
func (c Colour) WithAlpha(a float32) Colour {
	c.A *= a
	return c
}

// Lerp interpolates between c and o by t
func (c Colour) Lerp(o Colour, t float32) Colour {
	return Colour{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

func (c Colour) String() string { return fmt.Sprintf("%08X", c.Packed()) }

// ColourRect holds one colour per corner of a quad
type ColourRect struct {
	TopLeft, TopRight, BottomLeft, BottomRight Colour
}

// Solid returns a ColourRect with every corner set to c
func Solid(c Colour) ColourRect { return ColourRect{c, c, c, c} }

// ParseColourRect accepts either a single colour or the
// "tl:AARRGGBB tr:AARRGGBB bl:AARRGGBB br:AARRGGBB" form.
func ParseColourRect(s string) (ColourRect, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ":") {
		c, err := ParseColour(s)
		if err != nil {
			return ColourRect{}, err
		}
		return Solid(c), nil
	}
	var cr ColourRect
	seen := 0
	for _, field := range strings.Fields(s) {
		key, val, ok := strings.Cut(field, ":")
		if !ok {
			return ColourRect{}, fmt.Errorf("invalid colour rect field %q", field)
		}
		c, err := ParseColour(val)
		if err != nil {
			return ColourRect{}, err
		}
		switch key {
		case "tl":
			cr.TopLeft = c
		case "tr":
			cr.TopRight = c
		case "bl":
			cr.BottomLeft = c
		case "br":
			cr.BottomRight = c
		default:
			return ColourRect{}, fmt.Errorf("invalid colour rect corner %q", key)
		}
		seen++
	}
	if seen != 4 {
		return ColourRect{}, fmt.Errorf("colour rect %q needs tl, tr, bl and br", s)
	}
	return cr, nil
}

// IsMonochromatic reports whether all corners share one colour
func (cr ColourRect) IsMonochromatic() bool {
	return cr.TopLeft == cr.TopRight && cr.TopLeft == cr.BottomLeft && cr.TopLeft == cr.BottomRight
}

// Mul multiplies each corner by the matching corner of o
func (cr ColourRect) Mul(o ColourRect) ColourRect {
	return ColourRect{
		TopLeft:     cr.TopLeft.Mul(o.TopLeft),
		TopRight:    cr.TopRight.Mul(o.TopRight),
		BottomLeft:  cr.BottomLeft.Mul(o.BottomLeft),
		BottomRight: cr.BottomRight.Mul(o.BottomRight),
	}
}

// ModulateAlpha multiplies every corner's alpha by a
func (cr ColourRect) ModulateAlpha(a float32) ColourRect {
	return ColourRect{
		TopLeft:     cr.TopLeft.WithAlpha(a),
		TopRight:    cr.TopRight.WithAlpha(a),
		BottomLeft:  cr.BottomLeft.WithAlpha(a),
		BottomRight: cr.BottomRight.WithAlpha(a),
	}
}

// At returns the bilinear colour at fractional position (x, y) in [0,1]
func (cr ColourRect) At(x, y float32) Colour {
	top := cr.TopLeft.Lerp(cr.TopRight, x)
	bottom := cr.BottomLeft.Lerp(cr.BottomRight, x)
	return top.Lerp(bottom, y)
}

// Sub returns the colours of the sub-rectangle spanning the given
// fractional extents.
func (cr ColourRect) Sub(left, right, top, bottom float32) ColourRect {
	return ColourRect{
		TopLeft:     cr.At(left, top),
		TopRight:    cr.At(right, top),
		BottomLeft:  cr.At(left, bottom),
		BottomRight: cr.At(right, bottom),
	}
}

func (cr ColourRect) String() string {
	if cr.IsMonochromatic() {
		return cr.TopLeft.String()
	}
	return fmt.Sprintf("tl:%s tr:%s bl:%s br:%s", cr.TopLeft, cr.TopRight, cr.BottomLeft, cr.BottomRight)
}
