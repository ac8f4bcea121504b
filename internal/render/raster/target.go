package raster

import (
	"image"
	"image/draw"

	"github.com/chewxy/math32"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/render"
)

// Target draws into an RGBA image
type Target struct {
	render.TargetBase
	r   *Renderer
	img *image.RGBA
}

var _ render.RenderTarget = (*Target)(nil)

// Image returns the pixels the target draws into
func (t *Target) Image() *image.RGBA { return t.img }

func (t *Target) Draw(buf render.GeometryBuffer) { buf.Draw() }

func (t *Target) DrawQueue(q *render.RenderQueue) { q.Draw() }

// Activate makes t the destination of subsequent buffer draws
func (t *Target) Activate() {
	t.MarkActivated()
	t.r.active = append(t.r.active, t)
}

// Deactivate restores the previously active target
func (t *Target) Deactivate() {
	if n := len(t.r.active); n > 0 && t.r.active[n-1] == t {
		t.r.active = t.r.active[:n-1]
	}
}

func (t *Target) IsImageryCache() bool { return false }

// TextureTarget is an off-screen target sharing its pixels with a texture
type TextureTarget struct {
	*Target
	tex *Texture
}

var _ render.TextureTarget = (*TextureTarget)(nil)

func (tt *TextureTarget) Texture() render.Texture { return tt.tex }
func (tt *TextureTarget) IsImageryCache() bool    { return true }

// Clear resets every pixel to transparent
func (tt *TextureTarget) Clear() {
	draw.Draw(tt.img, tt.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// DeclareRenderSize grows the backing image to hold sz. The image never
// shrinks.
func (tt *TextureTarget) DeclareRenderSize(sz geom.Size) error {
	w, h := int(math32.Ceil(sz.Width)), int(math32.Ceil(sz.Height))
	if w > tt.r.opts.MaxTextureSize || h > tt.r.opts.MaxTextureSize {
		return guierr.Renderer("render size %v exceeds maximum texture size %d", sz, tt.r.opts.MaxTextureSize)
	}
	b := tt.img.Bounds()
	if w <= b.Dx() && h <= b.Dy() {
		tt.tex.original = sz
		return nil
	}
	w, h = max(w, b.Dx()), max(h, b.Dy())
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, b, tt.img, image.Point{}, draw.Src)
	tt.img = img
	tt.tex.img = img
	tt.tex.original = sz
	return nil
}
