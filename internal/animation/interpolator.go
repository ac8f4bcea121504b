package animation

import (
	"strconv"
	"strings"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/udim"
)

// Interpolator blends two property strings of one type. Position runs from
// 0 at the left key frame to 1 at the right one. Relative blends are added
// to a base value captured when the instance started; relative multiply
// blends scale the base by a factor read from the key frame values.
type Interpolator interface {
	Type() string
	Absolute(v1, v2 string, pos float32) (string, error)
	Relative(base, v1, v2 string, pos float32) (string, error)
	RelativeMultiply(base, v1, v2 string, pos float32) (string, error)
}

// linear interpolates any type that flattens into float components
type linear struct {
	name   string
	decode func(string) ([]float32, error)
	encode func([]float32) string
}

func (l linear) Type() string { return l.name }

func (l linear) pair(v1, v2 string) (a, b []float32, err error) {
	if a, err = l.decode(v1); err != nil {
		return nil, nil, err
	}
	if b, err = l.decode(v2); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func lerp(a, b []float32, pos float32) []float32 {
	out := make([]float32, len(a))
	for i := range a {
		out[i] = a[i]*(1-pos) + b[i]*pos
	}
	return out
}

func (l linear) Absolute(v1, v2 string, pos float32) (string, error) {
	a, b, err := l.pair(v1, v2)
	if err != nil {
		return "", err
	}
	return l.encode(lerp(a, b, pos)), nil
}

func (l linear) Relative(base, v1, v2 string, pos float32) (string, error) {
	a, b, err := l.pair(v1, v2)
	if err != nil {
		return "", err
	}
	bas, err := l.decode(base)
	if err != nil {
		return "", err
	}
	out := lerp(a, b, pos)
	for i := range out {
		out[i] += bas[i]
	}
	return l.encode(out), nil
}

func (l linear) RelativeMultiply(base, v1, v2 string, pos float32) (string, error) {
	a, err := parseFloat(v1)
	if err != nil {
		return "", err
	}
	b, err := parseFloat(v2)
	if err != nil {
		return "", err
	}
	bas, err := l.decode(base)
	if err != nil {
		return "", err
	}
	mul := a*(1-pos) + b*pos
	for i := range bas {
		bas[i] *= mul
	}
	return l.encode(bas), nil
}

// discrete switches from the left value to the right one half way
type discrete struct {
	name string
	// concat appends the chosen value to the base in relative mode.
	concat bool
}

func (d discrete) Type() string { return d.name }

func pick(v1, v2 string, pos float32) string {
	if pos < 0.5 {
		return v1
	}
	return v2
}

func (d discrete) Absolute(v1, v2 string, pos float32) (string, error) {
	return pick(v1, v2, pos), nil
}

func (d discrete) Relative(base, v1, v2 string, pos float32) (string, error) {
	if d.concat {
		return base + pick(v1, v2, pos), nil
	}
	return pick(v1, v2, pos), nil
}

func (d discrete) RelativeMultiply(base, _, _ string, _ float32) (string, error) {
	return base, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, guierr.InvalidRequest("invalid float %q", s)
	}
	return float32(f), nil
}

func formatFloat(f float32) string { return strconv.FormatFloat(float64(f), 'g', -1, 32) }

func udims(ds ...udim.UDim) []float32 {
	out := make([]float32, 0, 2*len(ds))
	for _, d := range ds {
		out = append(out, d.Scale, d.Offset)
	}
	return out
}

func udimAt(c []float32, i int) udim.UDim { return udim.UDim{Scale: c[2*i], Offset: c[2*i+1]} }

func colours(cs ...geom.Colour) []float32 {
	out := make([]float32, 0, 4*len(cs))
	for _, c := range cs {
		out = append(out, c.A, c.R, c.G, c.B)
	}
	return out
}

func colourAt(c []float32, i int) geom.Colour {
	return geom.Colour{A: c[4*i], R: c[4*i+1], G: c[4*i+2], B: c[4*i+3]}
}

// Builtin returns the interpolators registered by every Manager
func Builtin() []Interpolator {
	return []Interpolator{
		discrete{name: "String", concat: true},
		discrete{name: "bool"},
		linear{
			name: "float",
			decode: func(s string) ([]float32, error) {
				f, err := parseFloat(s)
				return []float32{f}, err
			},
			encode: func(c []float32) string { return formatFloat(c[0]) },
		},
		linear{
			name: "int",
			decode: func(s string) ([]float32, error) {
				n, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil {
					return nil, guierr.InvalidRequest("invalid int %q", s)
				}
				return []float32{float32(n)}, nil
			},
			encode: func(c []float32) string { return strconv.Itoa(int(c[0])) },
		},
		linear{
			name: "UDim",
			decode: func(s string) ([]float32, error) {
				d, err := udim.ParseUDim(s)
				return udims(d), err
			},
			encode: func(c []float32) string { return udimAt(c, 0).String() },
		},
		linear{
			name: "UVector2",
			decode: func(s string) ([]float32, error) {
				v, err := udim.ParseUVector2(s)
				return udims(v.X, v.Y), err
			},
			encode: func(c []float32) string {
				return udim.UVector2{X: udimAt(c, 0), Y: udimAt(c, 1)}.String()
			},
		},
		linear{
			name: "USize",
			decode: func(s string) ([]float32, error) {
				v, err := udim.ParseUSize(s)
				return udims(v.Width, v.Height), err
			},
			encode: func(c []float32) string {
				return udim.USize{Width: udimAt(c, 0), Height: udimAt(c, 1)}.String()
			},
		},
		linear{
			name: "URect",
			decode: func(s string) ([]float32, error) {
				r, err := udim.ParseURect(s)
				return udims(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y), err
			},
			encode: func(c []float32) string {
				return udim.URect{
					Min: udim.UVector2{X: udimAt(c, 0), Y: udimAt(c, 1)},
					Max: udim.UVector2{X: udimAt(c, 2), Y: udimAt(c, 3)},
				}.String()
			},
		},
		linear{
			name: "UBox",
			decode: func(s string) ([]float32, error) {
				b, err := udim.ParseUBox(s)
				return udims(b.Top, b.Left, b.Bottom, b.Right), err
			},
			encode: func(c []float32) string {
				return udim.UBox{Top: udimAt(c, 0), Left: udimAt(c, 1), Bottom: udimAt(c, 2), Right: udimAt(c, 3)}.String()
			},
		},
		linear{
			name: "Colour",
			decode: func(s string) ([]float32, error) {
				c, err := geom.ParseColour(s)
				return colours(c), err
			},
			encode: func(c []float32) string { return colourAt(c, 0).String() },
		},
		linear{
			name: "ColourRect",
			decode: func(s string) ([]float32, error) {
				cr, err := geom.ParseColourRect(s)
				return colours(cr.TopLeft, cr.TopRight, cr.BottomLeft, cr.BottomRight), err
			},
			encode: func(c []float32) string {
				return geom.ColourRect{
					TopLeft:     colourAt(c, 0),
					TopRight:    colourAt(c, 1),
					BottomLeft:  colourAt(c, 2),
					BottomRight: colourAt(c, 3),
				}.String()
			},
		},
	}
}
