package falagard

import (
	"strings"

	"github.com/chewxy/math32"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/render"
)

// HorzFormat places an image horizontally within its destination
type HorzFormat int

const (
	HorzStretched HorzFormat = iota
	HorzTiled
	HorzLeftAligned
	HorzCentreAligned
	HorzRightAligned
)

var horzNames = [...]string{"Stretched", "Tiled", "LeftAligned", "CentreAligned", "RightAligned"}

// String returns the string representation of the format
func (f HorzFormat) String() string {
	if f < 0 || int(f) >= len(horzNames) {
		return "Stretched"
	}
	return horzNames[f]
}

// ParseHorzFormat parses a horizontal formatting name (case-insensitive)
func ParseHorzFormat(s string) (HorzFormat, error) {
	for i, n := range horzNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return HorzFormat(i), nil
		}
	}
	return HorzStretched, guierr.InvalidRequest("unknown horizontal formatting %q", s)
}

// VertFormat places an image vertically within its destination
type VertFormat int

const (
	VertStretched VertFormat = iota
	VertTiled
	VertTopAligned
	VertCentreAligned
	VertBottomAligned
)

var vertNames = [...]string{"Stretched", "Tiled", "TopAligned", "CentreAligned", "BottomAligned"}

// String returns the string representation of the format
func (f VertFormat) String() string {
	if f < 0 || int(f) >= len(vertNames) {
		return "Stretched"
	}
	return vertNames[f]
}

// ParseVertFormat parses a vertical formatting name (case-insensitive)
func ParseVertFormat(s string) (VertFormat, error) {
	for i, n := range vertNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return VertFormat(i), nil
		}
	}
	return VertStretched, guierr.InvalidRequest("unknown vertical formatting %q", s)
}

// TextHorzFormat aligns lines of text. The word wrapped formats break
// lines at whitespace to fit the area width before aligning them.
type TextHorzFormat int

const (
	TextLeftAligned TextHorzFormat = iota
	TextCentreAligned
	TextRightAligned
	// TextJustified stretches the spaces of every line to the area width.
	TextJustified
	TextWordWrapLeftAligned
	TextWordWrapCentreAligned
	TextWordWrapRightAligned
	// TextWordWrapJustified justifies every wrapped line but the last of
	// each paragraph, which is left aligned.
	TextWordWrapJustified
)

var textHorzNames = [...]string{
	"LeftAligned", "CentreAligned", "RightAligned", "Justified",
	"WordWrapLeftAligned", "WordWrapCentreAligned", "WordWrapRightAligned", "WordWrapJustified",
}

// String returns the string representation of the format
func (f TextHorzFormat) String() string {
	if f < 0 || int(f) >= len(textHorzNames) {
		return "LeftAligned"
	}
	return textHorzNames[f]
}

// wraps reports whether the format breaks lines to the area width
func (f TextHorzFormat) wraps() bool { return f >= TextWordWrapLeftAligned }

// line returns the alignment applied to each line once wrapping is done
func (f TextHorzFormat) line() TextHorzFormat {
	if f.wraps() {
		return f - TextWordWrapLeftAligned
	}
	return f
}

// ParseTextHorzFormat parses a horizontal text formatting name
// (case-insensitive). WordWrapCentred is accepted for
// WordWrapCentreAligned.
func ParseTextHorzFormat(s string) (TextHorzFormat, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "left":
		return TextLeftAligned, nil
	case "centre", "center", "centred", "horzcentred":
		return TextCentreAligned, nil
	case "right":
		return TextRightAligned, nil
	case "wordwrapcentred":
		return TextWordWrapCentreAligned, nil
	default:
		for i, n := range textHorzNames {
			if strings.ToLower(n) == v {
				return TextHorzFormat(i), nil
			}
		}
	}
	return TextLeftAligned, guierr.InvalidRequest("unknown horizontal text formatting %q", s)
}

// TextVertFormat places a block of text vertically
type TextVertFormat int

const (
	TextTopAligned TextVertFormat = iota
	TextVertCentreAligned
	TextBottomAligned
)

// String returns the string representation of the format
func (f TextVertFormat) String() string {
	switch f {
	case TextVertCentreAligned:
		return "CentreAligned"
	case TextBottomAligned:
		return "BottomAligned"
	default:
		return "TopAligned"
	}
}

// ParseTextVertFormat parses TopAligned, CentreAligned or BottomAligned
func ParseTextVertFormat(s string) (TextVertFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "topaligned", "top":
		return TextTopAligned, nil
	case "centrealigned", "centre", "center":
		return TextVertCentreAligned, nil
	case "bottomaligned", "bottom":
		return TextBottomAligned, nil
	}
	return TextTopAligned, guierr.InvalidRequest("unknown vertical text formatting %q", s)
}

// drawState carries what every component needs while drawing
type drawState struct {
	ctx *Context
	buf render.GeometryBuffer
	// origin is the display position of the window's top-left corner;
	// component areas are window-local and offset by it.
	origin  geom.Vec2
	colours geom.ColourRect
}

// Colouring holds a component's own colours: a fixed ColourRect (white
// when unset) or the value of a colour property.
type Colouring struct {
	Colours         *geom.ColourRect
	ColoursProperty string
}

func (c Colouring) resolve(ctx *Context) (geom.ColourRect, error) {
	if c.ColoursProperty != "" {
		s, err := ctx.Window.Property(c.ColoursProperty)
		if err != nil {
			return geom.ColourRect{}, err
		}
		cr, err := geom.ParseColourRect(s)
		if err != nil {
			return geom.ColourRect{}, guierr.InvalidRequest("colour property %q: %v", c.ColoursProperty, err)
		}
		return cr, nil
	}
	if c.Colours != nil {
		return *c.Colours, nil
	}
	return geom.Solid(geom.White), nil
}

// subColours returns the corner colours of r as a part of dest
func subColours(cr geom.ColourRect, dest, r geom.Rect) geom.ColourRect {
	if cr.IsMonochromatic() || dest.IsEmpty() {
		return cr
	}
	w, h := dest.Width(), dest.Height()
	return cr.Sub(
		(r.Min.X-dest.Min.X)/w, (r.Max.X-dest.Min.X)/w,
		(r.Min.Y-dest.Min.Y)/h, (r.Max.Y-dest.Min.Y)/h,
	)
}

// drawImage draws img into dest with the given formatting. Tiles are
// clipped to dest; other formats are not CPU clipped.
func drawImage(buf render.GeometryBuffer, img *render.Image, dest geom.Rect, hf HorzFormat, vf VertFormat, colours geom.ColourRect) {
	if img == nil || dest.IsEmpty() {
		return
	}
	sz := img.Size()

	x, w, cols := dest.Min.X, dest.Width(), 1
	switch hf {
	case HorzTiled:
		w = sz.Width
		cols = tileCount(dest.Width(), sz.Width)
	case HorzLeftAligned:
		w = sz.Width
	case HorzCentreAligned:
		w = sz.Width
		x = dest.Min.X + (dest.Width()-sz.Width)*0.5
	case HorzRightAligned:
		w = sz.Width
		x = dest.Max.X - sz.Width
	}

	y, h, rows := dest.Min.Y, dest.Height(), 1
	switch vf {
	case VertTiled:
		h = sz.Height
		rows = tileCount(dest.Height(), sz.Height)
	case VertTopAligned:
		h = sz.Height
	case VertCentreAligned:
		h = sz.Height
		y = dest.Min.Y + (dest.Height()-sz.Height)*0.5
	case VertBottomAligned:
		h = sz.Height
		y = dest.Max.Y - sz.Height
	}

	var clip *geom.Rect
	if hf == HorzTiled || vf == VertTiled {
		clip = &dest
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r := geom.R(x+float32(col)*w, y+float32(row)*h, x+float32(col+1)*w, y+float32(row+1)*h)
			img.Render(buf, r, clip, subColours(colours, dest, r))
		}
	}
}

func tileCount(extent, tile float32) int {
	if tile <= 0 || extent <= 0 {
		return 0
	}
	return int(math32.Ceil(extent / tile))
}

// ImageSource names an image directly or through a window property
type ImageSource struct {
	Image    string
	Property string
}

// IsSet reports whether either form is given
func (s ImageSource) IsSet() bool { return s.Image != "" || s.Property != "" }

// resolve returns the image, or nil when the source names none
func (s ImageSource) resolve(ctx *Context) (*render.Image, error) {
	name := s.Image
	if s.Property != "" {
		v, err := ctx.Window.Property(s.Property)
		if err != nil {
			return nil, err
		}
		name = v
	}
	if name == "" {
		return nil, nil
	}
	return ctx.Window.Runtime().Images().Image(name)
}

// ImageryComponent draws one image into an area
type ImageryComponent struct {
	Area   ComponentArea
	Source ImageSource
	Colouring
	HorzFormat         HorzFormat
	HorzFormatProperty string
	VertFormat         VertFormat
	VertFormatProperty string
}

// NewImageryComponent returns a stretched component covering the window
func NewImageryComponent(image string) ImageryComponent {
	return ImageryComponent{Area: DefaultArea(), Source: ImageSource{Image: image}}
}

func (c ImageryComponent) formats(ctx *Context) (HorzFormat, VertFormat, error) {
	hf, vf := c.HorzFormat, c.VertFormat
	if c.HorzFormatProperty != "" {
		s, err := ctx.Window.Property(c.HorzFormatProperty)
		if err != nil {
			return 0, 0, err
		}
		if hf, err = ParseHorzFormat(s); err != nil {
			return 0, 0, err
		}
	}
	if c.VertFormatProperty != "" {
		s, err := ctx.Window.Property(c.VertFormatProperty)
		if err != nil {
			return 0, 0, err
		}
		if vf, err = ParseVertFormat(s); err != nil {
			return 0, 0, err
		}
	}
	return hf, vf, nil
}

func (c ImageryComponent) render(ds drawState) error {
	img, err := c.Source.resolve(ds.ctx)
	if err != nil || img == nil {
		return err
	}
	dest, err := c.Area.PixelRect(ds.ctx)
	if err != nil {
		return err
	}
	hf, vf, err := c.formats(ds.ctx)
	if err != nil {
		return err
	}
	own, err := c.resolve(ds.ctx)
	if err != nil {
		return err
	}
	drawImage(ds.buf, img, dest.Offset(ds.origin), hf, vf, own.Mul(ds.colours))
	return nil
}

// FramePart identifies one of the nine slots of a frame
type FramePart int

const (
	FrameTopLeft FramePart = iota
	FrameTopRight
	FrameBottomLeft
	FrameBottomRight
	FrameLeft
	FrameRight
	FrameTop
	FrameBottom
	FrameBackground
	framePartCount
)

var framePartNames = [...]string{
	"TopLeftCorner", "TopRightCorner", "BottomLeftCorner", "BottomRightCorner",
	"LeftEdge", "RightEdge", "TopEdge", "BottomEdge", "Background",
}

// String returns the string representation of the part
func (p FramePart) String() string {
	if p < 0 || p >= framePartCount {
		return "Background"
	}
	return framePartNames[p]
}

// ParseFramePart parses a frame slot name (case-insensitive)
func ParseFramePart(s string) (FramePart, error) {
	for i, n := range framePartNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return FramePart(i), nil
		}
	}
	return 0, guierr.InvalidRequest("unknown frame part %q", s)
}

// FrameComponent draws a nine-slot frame: corners at their natural size,
// edges stretched or tiled between them, and a background filling the
// middle.
type FrameComponent struct {
	Area   ComponentArea
	Images [framePartCount]ImageSource
	Colouring
	LeftEdgeFormat   VertFormat
	RightEdgeFormat  VertFormat
	TopEdgeFormat    HorzFormat
	BottomEdgeFormat HorzFormat
	BackgroundHorz   HorzFormat
	BackgroundVert   VertFormat
}

// NewFrameComponent returns a frame covering the window
func NewFrameComponent() FrameComponent { return FrameComponent{Area: DefaultArea()} }

// SetImage assigns the image drawn in part
func (c *FrameComponent) SetImage(part FramePart, image string) {
	c.Images[part] = ImageSource{Image: image}
}

func (c FrameComponent) render(ds drawState) error {
	var imgs [framePartCount]*render.Image
	for i, src := range c.Images {
		img, err := src.resolve(ds.ctx)
		if err != nil {
			return err
		}
		imgs[i] = img
	}
	area, err := c.Area.PixelRect(ds.ctx)
	if err != nil {
		return err
	}
	dest := area.Offset(ds.origin)
	own, err := c.resolve(ds.ctx)
	if err != nil {
		return err
	}
	colours := own.Mul(ds.colours)

	size := func(p FramePart) geom.Size {
		if imgs[p] == nil {
			return geom.Size{}
		}
		return imgs[p].Size()
	}
	tl, tr, bl, br := size(FrameTopLeft), size(FrameTopRight), size(FrameBottomLeft), size(FrameBottomRight)
	left, right, top, bottom := size(FrameLeft), size(FrameRight), size(FrameTop), size(FrameBottom)

	part := func(p FramePart, r geom.Rect, hf HorzFormat, vf VertFormat) {
		drawImage(ds.buf, imgs[p], r, hf, vf, subColours(colours, dest, r))
	}
	part(FrameBackground, geom.R(dest.Min.X+left.Width, dest.Min.Y+top.Height, dest.Max.X-right.Width, dest.Max.Y-bottom.Height), c.BackgroundHorz, c.BackgroundVert)
	part(FrameTop, geom.R(dest.Min.X+tl.Width, dest.Min.Y, dest.Max.X-tr.Width, dest.Min.Y+top.Height), c.TopEdgeFormat, VertStretched)
	part(FrameBottom, geom.R(dest.Min.X+bl.Width, dest.Max.Y-bottom.Height, dest.Max.X-br.Width, dest.Max.Y), c.BottomEdgeFormat, VertStretched)
	part(FrameLeft, geom.R(dest.Min.X, dest.Min.Y+tl.Height, dest.Min.X+left.Width, dest.Max.Y-bl.Height), HorzStretched, c.LeftEdgeFormat)
	part(FrameRight, geom.R(dest.Max.X-right.Width, dest.Min.Y+tr.Height, dest.Max.X, dest.Max.Y-br.Height), HorzStretched, c.RightEdgeFormat)
	part(FrameTopLeft, geom.RectAt(dest.Min, tl), HorzStretched, VertStretched)
	part(FrameTopRight, geom.RectAt(geom.V2(dest.Max.X-tr.Width, dest.Min.Y), tr), HorzStretched, VertStretched)
	part(FrameBottomLeft, geom.RectAt(geom.V2(dest.Min.X, dest.Max.Y-bl.Height), bl), HorzStretched, VertStretched)
	part(FrameBottomRight, geom.RectAt(geom.V2(dest.Max.X-br.Width, dest.Max.Y-br.Height), br), HorzStretched, VertStretched)
	return nil
}

// TextComponent draws text within an area. The text comes from Text, from
// a property, or from the window's own text when both are empty.
type TextComponent struct {
	Area         ComponentArea
	Text         string
	TextProperty string
	Font         string
	FontProperty string
	Colouring
	HorzFormat         TextHorzFormat
	HorzFormatProperty string
	VertFormat         TextVertFormat
	VertFormatProperty string
}

// NewTextComponent returns a component drawing the window text over the
// whole window.
func NewTextComponent() TextComponent { return TextComponent{Area: DefaultArea()} }

func (c TextComponent) text(ctx *Context) (string, error) {
	switch {
	case c.TextProperty != "":
		return ctx.Window.Property(c.TextProperty)
	case c.Text != "":
		return c.Text, nil
	}
	return ctx.Window.Text(), nil
}

func (c TextComponent) formats(ctx *Context) (TextHorzFormat, TextVertFormat, error) {
	hf, vf := c.HorzFormat, c.VertFormat
	if c.HorzFormatProperty != "" {
		s, err := ctx.Window.Property(c.HorzFormatProperty)
		if err != nil {
			return 0, 0, err
		}
		if hf, err = ParseTextHorzFormat(s); err != nil {
			return 0, 0, err
		}
	}
	if c.VertFormatProperty != "" {
		s, err := ctx.Window.Property(c.VertFormatProperty)
		if err != nil {
			return 0, 0, err
		}
		if vf, err = ParseTextVertFormat(s); err != nil {
			return 0, 0, err
		}
	}
	return hf, vf, nil
}

func (c TextComponent) render(ds drawState) error {
	text, err := c.text(ds.ctx)
	if err != nil || text == "" {
		return err
	}
	fontName := c.Font
	if c.FontProperty != "" {
		if fontName, err = ds.ctx.Window.Property(c.FontProperty); err != nil {
			return err
		}
	}
	f, err := windowFont(ds.ctx.Window, fontName)
	if err != nil || f == nil {
		return err
	}
	area, err := c.Area.PixelRect(ds.ctx)
	if err != nil {
		return err
	}
	dest := area.Offset(ds.origin)
	hf, vf, err := c.formats(ds.ctx)
	if err != nil {
		return err
	}
	own, err := c.resolve(ds.ctx)
	if err != nil {
		return err
	}
	colours := own.Mul(ds.colours)

	lines := formatText(f, text, dest.Width(), hf)
	total := float32(len(lines)) * f.LineSpacing()
	y := dest.Min.Y
	switch vf {
	case TextVertCentreAligned:
		y += (dest.Height() - total) * 0.5
	case TextBottomAligned:
		y = dest.Max.Y - total
	}
	for _, line := range lines {
		line.render(ds.buf, f, geom.V2(dest.Min.X, y), &dest, colours)
		y += f.LineSpacing()
	}
	return nil
}
