package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/render"
)

func newTestRenderer(w, h float32) *Renderer {
	return New(Options{DisplaySize: geom.Sz(w, h)})
}

func drawFrame(r *Renderer, bufs ...render.GeometryBuffer) {
	r.BeginRendering()
	t := r.DefaultTarget()
	t.Activate()
	for _, b := range bufs {
		t.Draw(b)
	}
	t.Deactivate()
	r.EndRendering()
}

func solidQuad(r *Renderer, dest geom.Rect, c geom.Colour) render.GeometryBuffer {
	buf := r.CreateGeometryBuffer()
	render.AppendQuad(buf, nil, dest, mgl32.Vec2{}, mgl32.Vec2{}, geom.Solid(c))
	buf.SetClippingRegion(geom.R(0, 0, 40, 40))
	return buf
}

func TestSolidQuad(t *testing.T) {
	r := newTestRenderer(40, 40)
	drawFrame(r, solidQuad(r, geom.R(0, 0, 20, 20), geom.ARGB(0xFFFF0000)))

	img := r.Frame()
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, img.RGBAAt(10, 10))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(30, 30))

	st := r.Stats()
	assert.Equal(t, 1, st.DrawCalls)
	assert.Equal(t, 2, st.Triangles)
	assert.Equal(t, 1, st.Buffers)
}

func TestClippingRegion(t *testing.T) {
	r := newTestRenderer(40, 40)
	buf := solidQuad(r, geom.R(0, 0, 20, 20), geom.White)
	buf.SetClippingRegion(geom.R(0, 0, 10, 20))
	drawFrame(r, buf)

	img := r.Frame()
	assert.Equal(t, uint8(0xff), img.RGBAAt(5, 5).A)
	assert.Equal(t, uint8(0), img.RGBAAt(15, 5).A)
}

func TestEmptyClipSkipsBackend(t *testing.T) {
	r := newTestRenderer(40, 40)
	buf := solidQuad(r, geom.R(0, 0, 20, 20), geom.White)
	buf.SetClippingRegion(geom.R(5, 5, 5, 30))
	drawFrame(r, buf)
	assert.Equal(t, 0, r.Stats().DrawCalls)
}

func TestBufferAlpha(t *testing.T) {
	r := newTestRenderer(40, 40)
	buf := solidQuad(r, geom.R(0, 0, 20, 20), geom.White)
	buf.SetAlpha(0.5)
	drawFrame(r, buf)
	a := r.Frame().RGBAAt(10, 10).A
	assert.InDelta(t, 128, int(a), 2)
}

func TestTexturedQuad(t *testing.T) {
	r := newTestRenderer(40, 40)
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{G: 0xff, A: 0xff})
	src.SetRGBA(1, 0, color.RGBA{B: 0xff, A: 0xff})
	tex, err := r.CreateTextureFromImage("demo", src, render.PixelFormatRGBA)
	require.NoError(t, err)
	assert.Equal(t, geom.V2(0.5, 1), tex.TexelScaling())

	buf := r.CreateGeometryBuffer()
	render.AppendQuad(buf, tex, geom.R(0, 0, 20, 20), mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}, geom.Solid(geom.White))
	buf.SetClippingRegion(geom.R(0, 0, 40, 40))
	drawFrame(r, buf)

	img := r.Frame()
	assert.Equal(t, color.RGBA{G: 0xff, A: 0xff}, img.RGBAAt(4, 10))
	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, img.RGBAAt(15, 10))
}

func TestTextureErrors(t *testing.T) {
	r := newTestRenderer(40, 40)
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))

	_, err := r.CreateTextureFromImage("dxt", src, render.PixelFormatDXT1)
	assert.ErrorIs(t, err, guierr.ErrRenderer)
	assert.False(t, r.IsPixelFormatSupported(render.PixelFormatDXT5))

	_, err = r.CreateTextureFromImage("a", src, render.PixelFormatRGBA)
	require.NoError(t, err)
	_, err = r.CreateTextureFromImage("a", src, render.PixelFormatRGBA)
	assert.ErrorIs(t, err, guierr.ErrInvalidRequest)

	_, err = r.Texture("missing")
	assert.ErrorIs(t, err, guierr.ErrUnknownObject)
	assert.Equal(t, []string{"a"}, r.TextureNames())
}

func TestTextureTargetGrows(t *testing.T) {
	r := newTestRenderer(40, 40)
	tt, err := r.CreateTextureTarget()
	require.NoError(t, err)
	require.True(t, tt.IsImageryCache())

	require.NoError(t, tt.DeclareRenderSize(geom.Sz(16, 8)))
	assert.Equal(t, geom.Sz(16, 8), tt.Texture().Size())

	require.NoError(t, tt.DeclareRenderSize(geom.Sz(4, 4)))
	assert.Equal(t, geom.Sz(16, 8), tt.Texture().Size(), "texture must not shrink")

	err = tt.DeclareRenderSize(geom.Sz(10000, 1))
	assert.ErrorIs(t, err, guierr.ErrRenderer)
}

func TestRenderingWindowComposite(t *testing.T) {
	r := newTestRenderer(40, 40)
	root := render.NewSurface(r.DefaultTarget())
	rw, err := render.NewRenderingWindow(r, root)
	require.NoError(t, err)
	require.NoError(t, rw.SetSize(geom.Sz(10, 10)))
	rw.SetPosition(geom.V2(20, 20))
	rw.SetClippingRegion(geom.R(0, 0, 40, 40))

	content := r.CreateGeometryBuffer()
	render.AppendQuad(content, nil, geom.R(0, 0, 10, 10), mgl32.Vec2{}, mgl32.Vec2{}, geom.Solid(geom.ARGB(0xFF00FF00)))
	content.SetClippingRegion(geom.R(0, 0, 10, 10))
	rw.AddGeometryBuffer(render.QueueBase, content)
	root.AddGeometryBuffer(render.QueueBase, rw.Geometry())

	r.BeginRendering()
	root.Draw()
	r.EndRendering()

	assert.False(t, rw.NeedsRedraw())
	img := r.Frame()
	assert.Equal(t, color.RGBA{G: 0xff, A: 0xff}, img.RGBAAt(25, 25))
	assert.Equal(t, uint8(0), img.RGBAAt(5, 5).A)
}

func TestSetDisplaySize(t *testing.T) {
	r := newTestRenderer(40, 40)
	r.SetDisplaySize(geom.Sz(64, 32))
	assert.Equal(t, image.Rect(0, 0, 64, 32), r.Frame().Bounds())
	assert.Equal(t, geom.R(0, 0, 64, 32), r.DefaultTarget().Area())
}
