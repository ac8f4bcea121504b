package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/vector"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/render"
)

// Buffer is a geometry buffer filled by the vector rasterizer onto whichever
// target is active when Draw runs.
type Buffer struct {
	render.BufferState
	r    *Renderer
	rast *vector.Rasterizer
}

var _ render.GeometryBuffer = (*Buffer)(nil)

// Draw rasterizes every batch onto the active target
func (b *Buffer) Draw() {
	if !b.ShouldDraw() || len(b.r.active) == 0 {
		return
	}
	t := b.r.active[len(b.r.active)-1]
	bounds := t.img.Bounds()
	if b.IsClippingActive() {
		bounds = bounds.Intersect(pixelBounds(b.ClippingRegion()))
	}
	if bounds.Empty() {
		return
	}

	b.r.stats.Buffers++
	b.r.total.Buffers++
	model := b.ModelMatrix()
	alpha := b.Alpha()

	for _, batch := range b.Batches() {
		if len(batch.Vertices) < 3 {
			continue
		}
		b.r.stats.DrawCalls++
		b.r.total.DrawCalls++
		var tex *image.RGBA
		if bt, ok := batch.Texture.(*Texture); ok && bt.img != nil && !bt.img.Bounds().Empty() {
			tex = bt.img
		}
		// Quads are filled as one path so the shared diagonal gets full
		// coverage.
		verts := batch.Vertices[:len(batch.Vertices)/3*3]
		for i := 0; i < len(verts); i += 6 {
			chunk := verts[i:min(i+6, len(verts))]
			b.r.stats.Triangles += len(chunk) / 3
			b.r.total.Triangles += len(chunk) / 3
			b.fill(t, model, chunk, tex, alpha, bounds)
		}
	}
}

func (b *Buffer) fill(t *Target, model mgl32.Mat4, v []render.Vertex, tex *image.RGBA, alpha float32, clip image.Rectangle) {
	sh := triangleShader{tex: tex, alpha: alpha, bounds: t.img.Bounds(), clip: clip}
	minX, minY := math32.Inf(1), math32.Inf(1)
	maxX, maxY := math32.Inf(-1), math32.Inf(-1)
	for i := 0; i+2 < len(v); i += 3 {
		var tr triangle
		for j := range 3 {
			world := model.Mul4x1(v[i+j].Pos.Vec4(1)).Vec3()
			p, ok := t.ToPixel(world)
			if !ok {
				return
			}
			tr.p[j] = p
			tr.c[j] = v[i+j].Colour
			tr.uv[j] = v[i+j].UV
			minX, minY = math32.Min(minX, p.X), math32.Min(minY, p.Y)
			maxX, maxY = math32.Max(maxX, p.X), math32.Max(maxY, p.Y)
		}
		area := edge(tr.p[0], tr.p[1], tr.p[2])
		if math32.Abs(area) < 1e-6 {
			continue
		}
		tr.inv = 1 / area
		sh.tris = append(sh.tris, tr)
	}
	if len(sh.tris) == 0 {
		return
	}
	box := image.Rect(int(math32.Floor(minX)), int(math32.Floor(minY)), int(math32.Ceil(maxX)), int(math32.Ceil(maxY))).Intersect(clip)
	if box.Empty() {
		return
	}

	// The rasterizer mask is laid out relative to box.Min.
	if b.rast == nil {
		b.rast = vector.NewRasterizer(box.Dx(), box.Dy())
	} else {
		b.rast.Reset(box.Dx(), box.Dy())
	}
	b.rast.DrawOp = draw.Over
	ox, oy := float32(box.Min.X), float32(box.Min.Y)
	for _, tr := range sh.tris {
		// Every triangle is wound the same way so overlapping coverage
		// saturates instead of cancelling.
		p := tr.p
		if tr.inv < 0 {
			p[1], p[2] = p[2], p[1]
		}
		b.rast.MoveTo(p[0].X-ox, p[0].Y-oy)
		b.rast.LineTo(p[1].X-ox, p[1].Y-oy)
		b.rast.LineTo(p[2].X-ox, p[2].Y-oy)
		b.rast.ClosePath()
	}
	b.rast.Draw(t.img, box, &sh, box.Min)
}

func pixelBounds(r geom.Rect) image.Rectangle {
	return image.Rect(
		int(math32.Floor(r.Min.X)), int(math32.Floor(r.Min.Y)),
		int(math32.Ceil(r.Max.X)), int(math32.Ceil(r.Max.Y)),
	)
}

func edge(a, b, c geom.Vec2) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

type triangle struct {
	p   [3]geom.Vec2
	c   [3]geom.Colour
	uv  [3]mgl32.Vec2
	inv float32
}

// weights returns the barycentric coordinates of pt
func (tr *triangle) weights(pt geom.Vec2) (w0, w1, w2 float32) {
	w0 = edge(tr.p[1], tr.p[2], pt) * tr.inv
	w1 = edge(tr.p[2], tr.p[0], pt) * tr.inv
	return w0, w1, 1 - w0 - w1
}

// triangleShader is the source image for a quad or triangle. It
// interpolates vertex colours and texture coordinates barycentrically in
// target pixel space and samples the texture with nearest filtering.
type triangleShader struct {
	tris   []triangle
	tex    *image.RGBA
	alpha  float32
	bounds image.Rectangle
	clip   image.Rectangle
}

func (s *triangleShader) ColorModel() color.Model { return color.RGBA64Model }
func (s *triangleShader) Bounds() image.Rectangle { return s.bounds }

func (s *triangleShader) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(s.clip) {
		return color.RGBA64{}
	}
	pt := geom.V2(float32(x)+0.5, float32(y)+0.5)

	// Edge pixels may fall just outside every triangle; use the one the
	// sample is least outside of.
	tr := &s.tris[0]
	w0, w1, w2 := tr.weights(pt)
	best := math32.Min(w0, math32.Min(w1, w2))
	for i := 1; i < len(s.tris) && best < 0; i++ {
		a, b, c := s.tris[i].weights(pt)
		if m := math32.Min(a, math32.Min(b, c)); m > best {
			tr, w0, w1, w2, best = &s.tris[i], a, b, c, m
		}
	}
	w0, w1 = clamp01(w0), clamp01(w1)
	w2 = clamp01(1 - w0 - w1)

	cr := w0*tr.c[0].R + w1*tr.c[1].R + w2*tr.c[2].R
	cg := w0*tr.c[0].G + w1*tr.c[1].G + w2*tr.c[2].G
	cb := w0*tr.c[0].B + w1*tr.c[1].B + w2*tr.c[2].B
	ca := (w0*tr.c[0].A + w1*tr.c[1].A + w2*tr.c[2].A) * s.alpha

	// Texture samples are premultiplied already.
	sr, sg, sb, sa := float32(1), float32(1), float32(1), float32(1)
	if s.tex != nil {
		u := w0*tr.uv[0].X() + w1*tr.uv[1].X() + w2*tr.uv[2].X()
		v := w0*tr.uv[0].Y() + w1*tr.uv[1].Y() + w2*tr.uv[2].Y()
		tb := s.tex.Bounds()
		tx := clampInt(int(u*float32(tb.Dx())), 0, tb.Dx()-1)
		ty := clampInt(int(v*float32(tb.Dy())), 0, tb.Dy()-1)
		px := s.tex.RGBAAt(tb.Min.X+tx, tb.Min.Y+ty)
		sr, sg, sb, sa = float32(px.R)/255, float32(px.G)/255, float32(px.B)/255, float32(px.A)/255
	}

	a := clamp01(sa * ca)
	return color.RGBA64{
		R: to16(math32.Min(sr*cr*ca, a)),
		G: to16(math32.Min(sg*cg*ca, a)),
		B: to16(math32.Min(sb*cb*ca, a)),
		A: to16(a),
	}
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func to16(v float32) uint16 { return uint16(clamp01(v)*65535 + 0.5) }
