package render

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/guierr"
)

// AppendQuad emits dest as two triangles sampling uvMin..uvMax of tex
func AppendQuad(buf GeometryBuffer, tex Texture, dest geom.Rect, uvMin, uvMax mgl32.Vec2, colours geom.ColourRect) {
	tl := Vertex{Pos: mgl32.Vec3{dest.Min.X, dest.Min.Y, 0}, Colour: colours.TopLeft, UV: uvMin}
	tr := Vertex{Pos: mgl32.Vec3{dest.Max.X, dest.Min.Y, 0}, Colour: colours.TopRight, UV: mgl32.Vec2{uvMax.X(), uvMin.Y()}}
	bl := Vertex{Pos: mgl32.Vec3{dest.Min.X, dest.Max.Y, 0}, Colour: colours.BottomLeft, UV: mgl32.Vec2{uvMin.X(), uvMax.Y()}}
	br := Vertex{Pos: mgl32.Vec3{dest.Max.X, dest.Max.Y, 0}, Colour: colours.BottomRight, UV: uvMax}
	buf.AppendVertices(tex, []Vertex{tl, bl, br, br, tr, tl})
}

// Image is a named region of a texture
type Image struct {
	name    string
	texture Texture
	area    geom.Rect
	offset  geom.Vec2
}

// NewImage describes the area of tex (in texture pixels) drawn with the
// given render offset.
func NewImage(name string, tex Texture, area geom.Rect, offset geom.Vec2) *Image {
	return &Image{name: name, texture: tex, area: area, offset: offset}
}

func (im *Image) Name() string      { return im.name }
func (im *Image) Texture() Texture  { return im.texture }
func (im *Image) Area() geom.Rect   { return im.area }
func (im *Image) Size() geom.Size   { return im.area.Size() }
func (im *Image) Offset() geom.Vec2 { return im.offset }

// SetArea changes the source region. Windows using the image are not
// invalidated automatically.
func (im *Image) SetArea(r geom.Rect) { im.area = r }

// Render emits dest as a textured quad. When clip is non-nil the quad is
// clipped on the CPU, adjusting texture coordinates and corner colours; a
// fully clipped quad emits nothing.
func (im *Image) Render(buf GeometryBuffer, dest geom.Rect, clip *geom.Rect, colours geom.ColourRect) {
	dest = dest.Offset(im.offset)
	if dest.IsEmpty() {
		return
	}
	final := dest
	if clip != nil {
		final = dest.Intersection(*clip)
		if final.IsEmpty() {
			return
		}
	}

	xScale := im.area.Width() / dest.Width()
	yScale := im.area.Height() / dest.Height()
	texel := geom.Vec2{X: 1, Y: 1}
	if im.texture != nil {
		texel = im.texture.TexelScaling()
	}
	uvMin := mgl32.Vec2{
		(im.area.Min.X + (final.Min.X-dest.Min.X)*xScale) * texel.X,
		(im.area.Min.Y + (final.Min.Y-dest.Min.Y)*yScale) * texel.Y,
	}
	uvMax := mgl32.Vec2{
		(im.area.Max.X + (final.Max.X-dest.Max.X)*xScale) * texel.X,
		(im.area.Max.Y + (final.Max.Y-dest.Max.Y)*yScale) * texel.Y,
	}

	if final != dest && !colours.IsMonochromatic() {
		colours = colours.Sub(
			(final.Min.X-dest.Min.X)/dest.Width(),
			(final.Max.X-dest.Min.X)/dest.Width(),
			(final.Min.Y-dest.Min.Y)/dest.Height(),
			(final.Max.Y-dest.Min.Y)/dest.Height(),
		)
	}
	AppendQuad(buf, im.texture, final, uvMin, uvMax, colours)
}

// ImageManager is the registry of named images
type ImageManager struct {
	images map[string]*Image
}

// NewImageManager returns an empty registry
func NewImageManager() *ImageManager {
	return &ImageManager{images: make(map[string]*Image)}
}

// Define registers img; names must be unique
func (m *ImageManager) Define(img *Image) error {
	if img == nil || img.name == "" {
		return guierr.InvalidRequest("image must have a name")
	}
	if _, ok := m.images[img.name]; ok {
		return guierr.InvalidRequest("image %q is already defined", img.name)
	}
	m.images[img.name] = img
	return nil
}

// Undefine removes the named image
func (m *ImageManager) Undefine(name string) { delete(m.images, name) }

// Image looks up an image by name
func (m *ImageManager) Image(name string) (*Image, error) {
	img, ok := m.images[name]
	if !ok {
		return nil, guierr.UnknownObject("image %q is not defined", name)
	}
	return img, nil
}

// IsDefined reports whether name is registered
func (m *ImageManager) IsDefined(name string) bool {
	_, ok := m.images[name]
	return ok
}

// Names returns all image names sorted
func (m *ImageManager) Names() []string {
	out := make([]string, 0, len(m.images))
	for n := range m.images {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
