package raster

import (
	"image"
	"image/draw"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/render"
)

// Texture holds premultiplied RGBA pixels
type Texture struct {
	name     string
	img      *image.RGBA
	original geom.Size
	format   render.PixelFormat
}

var _ render.Texture = (*Texture)(nil)

func (t *Texture) Name() string { return t.name }

func (t *Texture) Size() geom.Size {
	if t.img == nil {
		return geom.Size{}
	}
	b := t.img.Bounds()
	return geom.Sz(float32(b.Dx()), float32(b.Dy()))
}

func (t *Texture) OriginalDataSize() geom.Size { return t.original }
func (t *Texture) Format() render.PixelFormat  { return t.format }

// Image returns the texture pixels
func (t *Texture) Image() *image.RGBA { return t.img }

// TexelScaling returns the reciprocal texture size, or zero for an empty
// texture.
func (t *Texture) TexelScaling() geom.Vec2 {
	sz := t.Size()
	if sz.Width == 0 || sz.Height == 0 {
		return geom.Vec2{}
	}
	return geom.V2(1/sz.Width, 1/sz.Height)
}

// LoadFromImage copies img into the texture. Only RGBA and RGB data can be
// held by this renderer.
func (t *Texture) LoadFromImage(img image.Image, format render.PixelFormat) error {
	if format != render.PixelFormatRGBA && format != render.PixelFormatRGB {
		return guierr.Renderer("texture %q: pixel format %s is not supported", t.name, format)
	}
	if img == nil {
		return guierr.InvalidRequest("texture %q: no image data", t.name)
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	if format == render.PixelFormatRGB {
		for i := 3; i < len(dst.Pix); i += 4 {
			dst.Pix[i] = 0xff
		}
	}
	t.img = dst
	t.format = format
	t.original = geom.Sz(float32(b.Dx()), float32(b.Dy()))
	return nil
}
