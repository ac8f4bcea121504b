// Package font provides the fonts text imagery is drawn with.
package font

import (
	"image"
	"image/color"
	"strings"

	"github.com/chewxy/math32"
	"golang.org/x/image/font/basicfont"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/render"
)

// Font measures and draws single-style text
type Font interface {
	Name() string
	// LineSpacing is the distance between consecutive baselines.
	LineSpacing() float32
	// Baseline is the distance from the top of a line to its baseline.
	Baseline() float32
	// TextExtent returns the width of the widest line of text.
	TextExtent(text string) float32
	// Render draws text with its top-left corner at pos and returns the
	// width drawn.
	Render(buf render.GeometryBuffer, text string, pos geom.Vec2, clip *geom.Rect, colours geom.ColourRect) float32
}

// Bitmap is a fixed-width font drawn from a glyph atlas texture
type Bitmap struct {
	name    string
	face    *basicfont.Face
	scale   float32
	texture render.Texture
}

var _ Font = (*Bitmap)(nil)

// NewBitmap builds the 7x13 bitmap font, uploading its atlas to r. scale
// multiplies every metric; values <= 0 mean 1.
func NewBitmap(r render.Renderer, name string, scale float32) (*Bitmap, error) {
	if scale <= 0 {
		scale = 1
	}
	face := basicfont.Face7x13
	tex, err := r.CreateTextureFromImage("__font_"+name, atlas(face.Mask), render.PixelFormatRGBA)
	if err != nil {
		return nil, err
	}
	return &Bitmap{name: name, face: face, scale: scale, texture: tex}, nil
}

// atlas converts the face's alpha mask to white premultiplied glyph pixels
func atlas(mask image.Image) *image.RGBA {
	b := mask.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := mask.At(x, y).RGBA()
			v := uint8(a >> 8)
			img.SetRGBA(x-b.Min.X, y-b.Min.Y, color.RGBA{v, v, v, v})
		}
	}
	return img
}

func (f *Bitmap) Name() string            { return f.name }
func (f *Bitmap) Texture() render.Texture { return f.texture }
func (f *Bitmap) LineSpacing() float32    { return float32(f.face.Height) * f.scale }
func (f *Bitmap) Baseline() float32       { return float32(f.face.Ascent) * f.scale }
func (f *Bitmap) advance() float32        { return float32(f.face.Advance) * f.scale }

func (f *Bitmap) glyphSize() (w, h float32) {
	return float32(f.face.Width) * f.scale, float32(f.face.Height) * f.scale
}

func (f *Bitmap) TextExtent(text string) float32 {
	var widest float32
	for _, line := range strings.Split(text, "\n") {
		widest = math32.Max(widest, float32(len([]rune(line)))*f.advance())
	}
	return widest
}

// LineCount returns the number of lines text occupies
func (f *Bitmap) LineCount(text string) int { return strings.Count(text, "\n") + 1 }

// glyphArea returns the atlas region of r, falling back to '?'
func (f *Bitmap) glyphArea(r rune) (geom.Rect, bool) {
	for _, pass := range []rune{r, '?'} {
		for _, rg := range f.face.Ranges {
			if pass < rg.Low || pass >= rg.High {
				continue
			}
			idx := float32(int(pass-rg.Low) + rg.Offset)
			h := float32(f.face.Height)
			return geom.R(0, idx*h, float32(f.face.Width), (idx+1)*h), true
		}
	}
	return geom.Rect{}, false
}

func (f *Bitmap) Render(buf render.GeometryBuffer, text string, pos geom.Vec2, clip *geom.Rect, colours geom.ColourRect) float32 {
	gw, gh := f.glyphSize()
	var widest float32
	for li, line := range strings.Split(text, "\n") {
		x := pos.X
		y := pos.Y + float32(li)*f.LineSpacing()
		for _, r := range line {
			if r != ' ' {
				if area, ok := f.glyphArea(r); ok {
					img := render.NewImage("", f.texture, area, geom.Vec2{})
					img.Render(buf, geom.R(x, y, x+gw, y+gh), clip, colours)
				}
			}
			x += f.advance()
		}
		widest = math32.Max(widest, x-pos.X)
	}
	return widest
}
