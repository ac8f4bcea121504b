// Package raster is a software renderer module. It implements the render
// contracts on top of image.RGBA, filling triangles with the x/image vector
// rasterizer, and keeps per-frame draw statistics.
package raster

import (
	"image"
	"image/draw"
	"log/slog"
	"sort"

	"github.com/chewxy/math32"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/render"
)

// Name is reported by Renderer.Name
const Name = "cegui raster renderer"

// Stats counts the work reaching the backend since BeginRendering
type Stats struct {
	Frames    int
	Buffers   int
	DrawCalls int
	Triangles int
}

// Options configures a Renderer
type Options struct {
	DisplaySize             geom.Size
	Depth                   render.DepthRange
	LegacyIdentityUnproject bool
	MaxTextureSize          int
	Logger                  *slog.Logger
}

// Renderer is the software renderer module
type Renderer struct {
	log      *slog.Logger
	opts     Options
	display  geom.Size
	target   *Target
	active   []*Target
	textures map[string]*Texture
	ttargets map[*TextureTarget]struct{}
	nextRTT  int
	stats    Stats
	total    Stats
}

var _ render.Renderer = (*Renderer)(nil)

// New creates a renderer with a default target of the display size
func New(opts Options) *Renderer {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.MaxTextureSize <= 0 {
		opts.MaxTextureSize = 4096
	}
	r := &Renderer{
		log:      opts.Logger,
		opts:     opts,
		textures: make(map[string]*Texture),
		ttargets: make(map[*TextureTarget]struct{}),
	}
	if opts.LegacyIdentityUnproject {
		r.log.Warn("legacy identity unproject enabled; hit-testing ignores per-buffer transforms")
	}
	r.target = r.newTarget(opts.DisplaySize)
	r.display = opts.DisplaySize
	return r
}

func (r *Renderer) newTarget(sz geom.Size) *Target {
	t := &Target{
		TargetBase: render.NewTargetBase(geom.RectAt(geom.Vec2{}, sz), r.opts.Depth),
		r:          r,
		img:        image.NewRGBA(pixelRect(sz)),
	}
	t.LegacyIdentityUnproject = r.opts.LegacyIdentityUnproject
	return t
}

func pixelRect(sz geom.Size) image.Rectangle {
	return image.Rect(0, 0, int(math32.Ceil(sz.Width)), int(math32.Ceil(sz.Height)))
}

func (r *Renderer) Name() string                       { return Name }
func (r *Renderer) DefaultTarget() render.RenderTarget { return r.target }

// Frame returns the default target's pixels
func (r *Renderer) Frame() *image.RGBA { return r.target.img }

// Stats returns the counters of the current (or last) frame
func (r *Renderer) Stats() Stats { return r.stats }

// TotalStats returns counters accumulated over the renderer's lifetime
func (r *Renderer) TotalStats() Stats { return r.total }

func (r *Renderer) CreateGeometryBuffer() render.GeometryBuffer {
	return &Buffer{BufferState: render.NewBufferState(), r: r}
}

func (r *Renderer) DestroyGeometryBuffer(render.GeometryBuffer) {}

func (r *Renderer) CreateTextureTarget() (render.TextureTarget, error) {
	r.nextRTT++
	tex := &Texture{name: "__rtt_" + itoa(r.nextRTT), format: render.PixelFormatRGBA}
	tt := &TextureTarget{Target: r.newTarget(geom.Size{}), tex: tex}
	tex.img = tt.img
	r.ttargets[tt] = struct{}{}
	return tt, nil
}

func (r *Renderer) DestroyTextureTarget(t render.TextureTarget) {
	if tt, ok := t.(*TextureTarget); ok {
		delete(r.ttargets, tt)
	}
}

func (r *Renderer) CreateTexture(name string, size geom.Size) (render.Texture, error) {
	if _, ok := r.textures[name]; ok {
		return nil, guierr.InvalidRequest("texture %q already exists", name)
	}
	if int(size.Width) > r.opts.MaxTextureSize || int(size.Height) > r.opts.MaxTextureSize {
		return nil, guierr.Renderer("texture %q size %v exceeds maximum %d", name, size, r.opts.MaxTextureSize)
	}
	t := &Texture{name: name, img: image.NewRGBA(pixelRect(size)), original: size, format: render.PixelFormatRGBA}
	r.textures[name] = t
	return t, nil
}

func (r *Renderer) CreateTextureFromImage(name string, img image.Image, format render.PixelFormat) (render.Texture, error) {
	if _, ok := r.textures[name]; ok {
		return nil, guierr.InvalidRequest("texture %q already exists", name)
	}
	t := &Texture{name: name}
	if err := t.LoadFromImage(img, format); err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Dx() > r.opts.MaxTextureSize || b.Dy() > r.opts.MaxTextureSize {
		return nil, guierr.Renderer("texture %q size %dx%d exceeds maximum %d", name, b.Dx(), b.Dy(), r.opts.MaxTextureSize)
	}
	r.textures[name] = t
	return t, nil
}

func (r *Renderer) Texture(name string) (render.Texture, error) {
	t, ok := r.textures[name]
	if !ok {
		return nil, guierr.UnknownObject("texture %q does not exist", name)
	}
	return t, nil
}

func (r *Renderer) DestroyTexture(name string) { delete(r.textures, name) }

// TextureNames lists the named textures in sorted order
func (r *Renderer) TextureNames() []string {
	out := make([]string, 0, len(r.textures))
	for n := range r.textures {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (r *Renderer) IsPixelFormatSupported(format render.PixelFormat) bool {
	return format == render.PixelFormatRGBA || format == render.PixelFormatRGB
}

// BeginRendering resets the frame counters and clears the default target
func (r *Renderer) BeginRendering() {
	r.stats = Stats{Frames: 1}
	r.total.Frames++
	draw.Draw(r.target.img, r.target.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (r *Renderer) EndRendering() {
	r.active = r.active[:0]
}

// SetDisplaySize resizes the default target
func (r *Renderer) SetDisplaySize(sz geom.Size) {
	if sz == r.display {
		return
	}
	r.display = sz
	r.target.img = image.NewRGBA(pixelRect(sz))
	r.target.SetArea(geom.RectAt(geom.Vec2{}, sz))
	r.log.Debug("display size changed", "size", sz.String())
}

func (r *Renderer) DisplaySize() geom.Size { return r.display }
func (r *Renderer) MaxTextureSize() int    { return r.opts.MaxTextureSize }

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
