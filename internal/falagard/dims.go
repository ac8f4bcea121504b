// Package falagard implements data-driven widget skins: dimensions and the
// expression language used to compute areas, imagery components and
// sections, state imagery, widget looks, the look manager and the window
// renderer that draws a window from its look.
package falagard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/cegui/internal/font"
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/udim"
)

// ErrCircularReference reports a named area reached again while it is
// being evaluated.
var ErrCircularReference = fmt.Errorf("circular reference: %w", guierr.ErrInvalidRequest)

// maxAreaDepth bounds nested named area evaluation
const maxAreaDepth = 32

// DimensionType selects what a dimension measures and which axis unified
// values resolve against.
type DimensionType int

const (
	DimInvalid DimensionType = iota
	DimLeftEdge
	DimXPosition
	DimTopEdge
	DimYPosition
	DimRightEdge
	DimBottomEdge
	DimWidth
	DimHeight
	DimXOffset
	DimYOffset
)

var dimNames = [...]string{
	"Invalid", "LeftEdge", "XPosition", "TopEdge", "YPosition",
	"RightEdge", "BottomEdge", "Width", "Height", "XOffset", "YOffset",
}

// String returns the string representation of the dimension type
func (t DimensionType) String() string {
	if t < 0 || int(t) >= len(dimNames) {
		return "Invalid"
	}
	return dimNames[t]
}

// ParseDimensionType parses a dimension type name (case-insensitive)
func ParseDimensionType(s string) (DimensionType, error) {
	for i, n := range dimNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return DimensionType(i), nil
		}
	}
	return DimInvalid, guierr.InvalidRequest("unknown dimension type %q", s)
}

// Horizontal reports whether unified values of this type resolve against
// widths.
func (t DimensionType) Horizontal() bool {
	switch t {
	case DimLeftEdge, DimXPosition, DimRightEdge, DimWidth, DimXOffset:
		return true
	}
	return false
}

// Vertical reports whether unified values of this type resolve against
// heights.
func (t DimensionType) Vertical() bool {
	switch t {
	case DimTopEdge, DimYPosition, DimBottomEdge, DimHeight, DimYOffset:
		return true
	}
	return false
}

// Context is the environment a dimension is evaluated in
type Context struct {
	Window *gui.Window
	Look   *WidgetLook
	// Container, when set, replaces the window's own size as the base of
	// unified values and offsets component areas.
	Container *geom.Rect

	areas []string
}

// NewContext returns a context evaluating against w with look
func NewContext(w *gui.Window, look *WidgetLook) *Context {
	return &Context{Window: w, Look: look}
}

// WithContainer returns a copy of ctx evaluating within r
func (ctx *Context) WithContainer(r geom.Rect) *Context {
	c := *ctx
	c.Container = &r
	return &c
}

// base is the size unified values resolve against
func (ctx *Context) base() geom.Size {
	if ctx.Container != nil {
		return ctx.Container.Size()
	}
	return ctx.Window.PixelSize()
}

func (ctx *Context) resolveAxis(d udim.UDim, typ DimensionType) (float32, error) {
	b := ctx.base()
	switch {
	case typ.Horizontal():
		return d.Resolve(b.Width), nil
	case typ.Vertical():
		return d.Resolve(b.Height), nil
	}
	return 0, guierr.InvalidRequest("unified dimension %s needs a horizontal or vertical type, got %s", d, typ)
}

// enterArea pushes a named area onto the evaluation stack
func (ctx *Context) enterArea(look, name string) (*Context, error) {
	key := look + "/" + name
	for _, a := range ctx.areas {
		if a == key {
			return nil, fmt.Errorf("named area %q in WidgetLook %q: %w", name, look, ErrCircularReference)
		}
	}
	if len(ctx.areas) >= maxAreaDepth {
		return nil, fmt.Errorf("named area %q nested deeper than %d: %w", name, maxAreaDepth, ErrCircularReference)
	}
	c := *ctx
	c.areas = append(append([]string(nil), ctx.areas...), key)
	return &c, nil
}

// namedArea evaluates a named area of look (the context's look when nil)
func (ctx *Context) namedArea(look *WidgetLook, name string) (geom.Rect, error) {
	if look == nil {
		look = ctx.Look
	}
	if look == nil {
		return geom.Rect{}, guierr.InvalidRequest("no WidgetLook to resolve named area %q", name)
	}
	na, err := look.NamedArea(name, true)
	if err != nil {
		return geom.Rect{}, err
	}
	sub, err := ctx.enterArea(look.Name, name)
	if err != nil {
		return geom.Rect{}, err
	}
	sub.Look = look
	return na.Area.PixelRect(sub)
}

// sourceWindow returns the named child of ctx.Window, or the window itself
func (ctx *Context) sourceWindow(child string) (*gui.Window, error) {
	if child == "" {
		return ctx.Window, nil
	}
	w, err := ctx.Window.Child(child)
	if err != nil {
		return nil, guierr.UnknownObject("window %q requested %q as a dimension source, but it is not a child", ctx.Window.Path(), child)
	}
	return w, nil
}

// BaseDim is a value-producing dimension
type BaseDim interface {
	Value(ctx *Context, typ DimensionType) (float32, error)
}

// Dimension pairs a base dimension with the type it is evaluated as
type Dimension struct {
	Base BaseDim
	Type DimensionType
}

// Value evaluates the dimension. A missing base yields zero.
func (d Dimension) Value(ctx *Context) (float32, error) {
	if d.Base == nil {
		return 0, nil
	}
	return d.Base.Value(ctx, d.Type)
}

// AbsoluteDim is a fixed pixel value
type AbsoluteDim float32

func (d AbsoluteDim) Value(*Context, DimensionType) (float32, error) { return float32(d), nil }

// UnifiedDim resolves a UDim against the container or the window size on
// the axis of the dimension type.
type UnifiedDim struct {
	UDim udim.UDim
}

func (d UnifiedDim) Value(ctx *Context, typ DimensionType) (float32, error) {
	return ctx.resolveAxis(d.UDim, typ)
}

// ImageDim measures a named image
type ImageDim struct {
	Image string
	What  DimensionType
}

func (d ImageDim) Value(ctx *Context, _ DimensionType) (float32, error) {
	return imageMetric(ctx.Window, d.Image, d.What)
}

// ImagePropertyDim measures the image named by a window property
type ImagePropertyDim struct {
	Widget   string
	Property string
	What     DimensionType
}

func (d ImagePropertyDim) Value(ctx *Context, _ DimensionType) (float32, error) {
	w, err := ctx.sourceWindow(d.Widget)
	if err != nil {
		return 0, err
	}
	name, err := w.Property(d.Property)
	if err != nil {
		return 0, err
	}
	return imageMetric(w, name, d.What)
}

func imageMetric(w *gui.Window, name string, what DimensionType) (float32, error) {
	if name == "" {
		return 0, nil
	}
	img, err := w.Runtime().Images().Image(name)
	if err != nil {
		return 0, err
	}
	switch what {
	case DimWidth:
		return img.Size().Width, nil
	case DimHeight:
		return img.Size().Height, nil
	case DimXOffset:
		return img.Offset().X, nil
	case DimYOffset:
		return img.Offset().Y, nil
	}
	return 0, guierr.InvalidRequest("image dimension does not support %s", what)
}

// WidgetDim measures the window itself or a named child
type WidgetDim struct {
	Widget string
	What   DimensionType
}

func (d WidgetDim) Value(ctx *Context, _ DimensionType) (float32, error) {
	w, err := ctx.sourceWindow(d.Widget)
	if err != nil {
		return 0, err
	}
	parent := w.ParentPixelSize()
	switch d.What {
	case DimWidth:
		return w.PixelSize().Width, nil
	case DimHeight:
		return w.PixelSize().Height, nil
	case DimXOffset, DimYOffset:
		return 0, nil
	case DimLeftEdge, DimXPosition:
		return w.Position().X.Resolve(parent.Width), nil
	case DimTopEdge, DimYPosition:
		return w.Position().Y.Resolve(parent.Height), nil
	case DimRightEdge:
		return w.Position().X.Resolve(parent.Width) + w.PixelSize().Width, nil
	case DimBottomEdge:
		return w.Position().Y.Resolve(parent.Height) + w.PixelSize().Height, nil
	}
	return 0, guierr.InvalidRequest("widget dimension does not support %s", d.What)
}

// FontMetric selects a font measurement
type FontMetric int

const (
	FontLineSpacing FontMetric = iota
	FontBaseline
	FontHorzExtent
)

// String returns the string representation of the metric
func (m FontMetric) String() string {
	switch m {
	case FontBaseline:
		return "Baseline"
	case FontHorzExtent:
		return "HorzExtent"
	default:
		return "LineSpacing"
	}
}

// ParseFontMetric parses LineSpacing, Baseline or HorzExtent
func ParseFontMetric(s string) (FontMetric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linespacing":
		return FontLineSpacing, nil
	case "baseline":
		return FontBaseline, nil
	case "horzextent":
		return FontHorzExtent, nil
	}
	return 0, guierr.InvalidRequest("unknown font metric %q", s)
}

// FontDim measures a font. With no font available only the padding is
// returned.
type FontDim struct {
	Widget  string
	Font    string
	Text    string
	Metric  FontMetric
	Padding float32
}

func (d FontDim) Value(ctx *Context, _ DimensionType) (float32, error) {
	w, err := ctx.sourceWindow(d.Widget)
	if err != nil {
		return 0, err
	}
	f, err := windowFont(w, d.Font)
	if err != nil {
		return 0, err
	}
	if f == nil {
		return d.Padding, nil
	}
	switch d.Metric {
	case FontLineSpacing:
		return f.LineSpacing() + d.Padding, nil
	case FontBaseline:
		return f.Baseline() + d.Padding, nil
	case FontHorzExtent:
		text := d.Text
		if text == "" {
			text = w.Text()
		}
		return f.TextExtent(text) + d.Padding, nil
	}
	return 0, guierr.InvalidRequest("unsupported font metric %s", d.Metric)
}

// windowFont returns the named font, or the window's own font
func windowFont(w *gui.Window, name string) (font.Font, error) {
	if name != "" {
		return w.Runtime().Font(name)
	}
	return w.Font(), nil
}

// PropertyDim reads a window property. With What unset the property must
// hold a float (or bool, as 0/1); otherwise it holds a UDim resolved
// against the source window's width or height.
type PropertyDim struct {
	Widget   string
	Property string
	What     DimensionType
}

func (d PropertyDim) Value(ctx *Context, typ DimensionType) (float32, error) {
	w, err := ctx.sourceWindow(d.Widget)
	if err != nil {
		return 0, err
	}
	return propertyMetric(w, d.Property, d.What)
}

func propertyMetric(w *gui.Window, name string, what DimensionType) (float32, error) {
	s, err := w.Property(name)
	if err != nil {
		return 0, err
	}
	if what == DimInvalid {
		return parseScalar(name, s)
	}
	ud, err := udim.ParseUDim(s)
	if err != nil {
		return 0, err
	}
	sz := w.PixelSize()
	switch what {
	case DimWidth:
		return ud.Resolve(sz.Width), nil
	case DimHeight:
		return ud.Resolve(sz.Height), nil
	}
	return 0, guierr.InvalidRequest("property dimension does not support %s", what)
}

func parseScalar(name, s string) (float32, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "true":
		return 1, nil
	case "false", "":
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, guierr.InvalidRequest("property %q value %q is not a number", name, s)
	}
	return float32(f), nil
}

// Operator combines two dimensions
type Operator int

const (
	OpNoop Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpMin
	OpMax
)

var opNames = [...]string{"Noop", "Add", "Subtract", "Multiply", "Divide", "Min", "Max"}

// String returns the string representation of the operator
func (o Operator) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return "Noop"
	}
	return opNames[o]
}

// ParseOperator parses an operator name (case-insensitive)
func ParseOperator(s string) (Operator, error) {
	for i, n := range opNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return Operator(i), nil
		}
	}
	return OpNoop, guierr.InvalidRequest("unknown dimension operator %q", s)
}

// Apply combines l and r. Division by zero yields zero.
func (o Operator) Apply(l, r float32) float32 {
	switch o {
	case OpAdd:
		return l + r
	case OpSubtract:
		return l - r
	case OpMultiply:
		return l * r
	case OpDivide:
		if r == 0 {
			return 0
		}
		return l / r
	case OpMin:
		return min(l, r)
	case OpMax:
		return max(l, r)
	}
	return l
}

// OperatorDim combines two operands; a missing operand counts as zero
type OperatorDim struct {
	Op          Operator
	Left, Right BaseDim
}

func (d OperatorDim) Value(ctx *Context, typ DimensionType) (float32, error) {
	var l, r float32
	var err error
	if d.Left != nil {
		if l, err = d.Left.Value(ctx, typ); err != nil {
			return 0, err
		}
	}
	if d.Right != nil {
		if r, err = d.Right.Value(ctx, typ); err != nil {
			return 0, err
		}
	}
	return d.Op.Apply(l, r), nil
}
