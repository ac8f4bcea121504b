package scheme

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/cegui/internal/falagard"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/udim"
)

// Dim is a dimension as written in a look file. A number is a fixed pixel
// value and any other string is an expression:
//
//	left: 4
//	width: "width - 2 * image.Builtin/FrameLeft.width"
//
// The map forms name one dimension kind each:
//
//	{abs: 4}
//	{unified: "{0.5,-2}"}
//	{image: Builtin/Arrow, dim: width}
//	{image_property: NormalImage, widget: __auto_button__, dim: height}
//	{widget: __auto_text__, dim: width}
//	{property: TextWidth, widget: ""}
//	{font: "", metric: LineSpacing, text: "Wg", padding: 4}
//	{op: Add, left: ..., right: ...}
//	{expr: "Client.width / 2"}
type Dim struct {
	falagard.BaseDim
}

type dimFields struct {
	Abs           *float32 `yaml:"abs"`
	Unified       string   `yaml:"unified"`
	Image         string   `yaml:"image"`
	ImageProperty string   `yaml:"image_property"`
	Widget        string   `yaml:"widget"`
	Dim           string   `yaml:"dim"`
	Property      string   `yaml:"property"`
	Font          *string  `yaml:"font"`
	Metric        string   `yaml:"metric"`
	Text          string   `yaml:"text"`
	Padding       float32  `yaml:"padding"`
	Op            string   `yaml:"op"`
	Left          *Dim     `yaml:"left"`
	Right         *Dim     `yaml:"right"`
	Expr          string   `yaml:"expr"`
}

func (d *Dim) UnmarshalYAML(n *yaml.Node) error {
	base, err := decodeDim(n)
	if err != nil {
		return err
	}
	d.BaseDim = base
	return nil
}

func decodeDim(n *yaml.Node) (falagard.BaseDim, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n.Value), 32); err == nil {
			return falagard.AbsoluteDim(f), nil
		}
		e, err := falagard.NewExpression(n.Value)
		if err != nil {
			return nil, nodeError(n, err)
		}
		return e, nil
	case yaml.MappingNode:
		var f dimFields
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		base, err := f.build()
		if err != nil {
			return nil, nodeError(n, err)
		}
		return base, nil
	}
	return nil, nodeError(n, guierr.InvalidRequest("dimension must be a number, an expression or a map"))
}

// what parses the measured dimension, which most map forms require
func (f dimFields) what() (falagard.DimensionType, error) {
	if f.Dim == "" {
		return falagard.DimInvalid, guierr.InvalidRequest("dimension needs a dim field")
	}
	return falagard.ParseDimensionType(f.Dim)
}

func (f dimFields) build() (falagard.BaseDim, error) {
	switch {
	case f.Abs != nil:
		return falagard.AbsoluteDim(*f.Abs), nil
	case f.Unified != "":
		u, err := udim.ParseUDim(f.Unified)
		if err != nil {
			return nil, err
		}
		return falagard.UnifiedDim{UDim: u}, nil
	case f.Expr != "":
		return falagard.NewExpression(f.Expr)
	case f.Op != "":
		return f.operator()
	case f.ImageProperty != "":
		what, err := f.what()
		if err != nil {
			return nil, err
		}
		return falagard.ImagePropertyDim{Widget: f.Widget, Property: f.ImageProperty, What: what}, nil
	case f.Image != "":
		what, err := f.what()
		if err != nil {
			return nil, err
		}
		return falagard.ImageDim{Image: f.Image, What: what}, nil
	case f.Font != nil || f.Metric != "":
		metric := falagard.FontLineSpacing
		if f.Metric != "" {
			m, err := falagard.ParseFontMetric(f.Metric)
			if err != nil {
				return nil, err
			}
			metric = m
		}
		fd := falagard.FontDim{Widget: f.Widget, Text: f.Text, Metric: metric, Padding: f.Padding}
		if f.Font != nil {
			fd.Font = *f.Font
		}
		return fd, nil
	case f.Property != "":
		pd := falagard.PropertyDim{Widget: f.Widget, Property: f.Property}
		if f.Dim != "" {
			what, err := f.what()
			if err != nil {
				return nil, err
			}
			pd.What = what
		}
		return pd, nil
	case f.Dim != "":
		what, err := f.what()
		if err != nil {
			return nil, err
		}
		return falagard.WidgetDim{Widget: f.Widget, What: what}, nil
	}
	return nil, guierr.InvalidRequest("dimension map names no dimension kind")
}

func (f dimFields) operator() (falagard.BaseDim, error) {
	op, err := falagard.ParseOperator(f.Op)
	if err != nil {
		return nil, err
	}
	d := falagard.OperatorDim{Op: op}
	if f.Left != nil {
		d.Left = f.Left.BaseDim
	}
	if f.Right != nil {
		d.Right = f.Right.BaseDim
	}
	return d, nil
}

// areaDoc is a component area. Right and width are alternatives, as are
// bottom and height; property and named_area replace the dimensions.
type areaDoc struct {
	Left      *Dim   `yaml:"left"`
	Top       *Dim   `yaml:"top"`
	Right     *Dim   `yaml:"right"`
	Width     *Dim   `yaml:"width"`
	Bottom    *Dim   `yaml:"bottom"`
	Height    *Dim   `yaml:"height"`
	Property  string `yaml:"property"`
	NamedArea string `yaml:"named_area"`
	Look      string `yaml:"look"`
}

// build returns the area, covering the whole window for the edges left out
func (a *areaDoc) build() (falagard.ComponentArea, error) {
	area := falagard.DefaultArea()
	if a == nil {
		return area, nil
	}
	if a.Right != nil && a.Width != nil {
		return area, guierr.InvalidRequest("area sets both right and width")
	}
	if a.Bottom != nil && a.Height != nil {
		return area, guierr.InvalidRequest("area sets both bottom and height")
	}
	set := func(dst *falagard.Dimension, d *Dim, typ falagard.DimensionType) {
		if d != nil {
			*dst = falagard.Dimension{Base: d.BaseDim, Type: typ}
		}
	}
	set(&area.Left, a.Left, falagard.DimLeftEdge)
	set(&area.Top, a.Top, falagard.DimTopEdge)
	set(&area.Right, a.Right, falagard.DimRightEdge)
	set(&area.Right, a.Width, falagard.DimWidth)
	set(&area.Bottom, a.Bottom, falagard.DimBottomEdge)
	set(&area.Bottom, a.Height, falagard.DimHeight)
	area.AreaProperty = a.Property
	area.NamedArea = a.NamedArea
	area.NamedAreaLook = a.Look
	return area, nil
}
