package render

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/geom"
)

// EventAreaChanged fires on a target whose area actually changed.
const EventAreaChanged event.Name = "AreaChanged"

// AreaArgs accompanies EventAreaChanged
type AreaArgs struct {
	event.Base
	Area geom.Rect
}

// DepthRange selects the clip-space depth convention of the projection
type DepthRange int

const (
	// DepthOpenGL maps depth to [-1, 1]
	DepthOpenGL DepthRange = iota
	// DepthDirect3D maps depth to [0, 1]
	DepthDirect3D
)

// String returns the string representation of the depth range
func (d DepthRange) String() string {
	if d == DepthDirect3D {
		return "direct3d"
	}
	return "opengl"
}

// RenderTarget is a destination for rendered geometry.
type RenderTarget interface {
	Draw(buf GeometryBuffer)
	DrawQueue(q *RenderQueue)
	SetArea(r geom.Rect)
	Area() geom.Rect
	Activate()
	Deactivate()
	// IsImageryCache reports whether content persists between frames.
	IsImageryCache() bool
	// UnprojectPoint maps a target-space point into buf's local plane.
	UnprojectPoint(buf GeometryBuffer, p geom.Vec2) geom.Vec2
	// ActivationCount increments on every Activate.
	ActivationCount() uint64
	Events() *event.Set
}

// TextureTarget is a render target whose content can be sampled as a texture
type TextureTarget interface {
	RenderTarget
	Texture() Texture
	Clear()
	// DeclareRenderSize grows the backing texture to hold at least sz.
	DeclareRenderSize(sz geom.Size) error
}

// tan(15°), half of the fixed 30° vertical field of view
var yFovTan = math32.Tan(mgl32.DegToRad(15))

// TargetBase holds the projection state shared by every target
// implementation. Backends embed it and supply Draw calls.
type TargetBase struct {
	area         geom.Rect
	matrix       mgl32.Mat4
	glMatrix     mgl32.Mat4
	matrixValid  bool
	viewDistance float32
	depth        DepthRange
	activations  uint64

	// LegacyIdentityUnproject makes UnprojectPoint return its input.
	LegacyIdentityUnproject bool

	events event.Set
}

// NewTargetBase returns a base for the given area and depth convention
func NewTargetBase(area geom.Rect, depth DepthRange) TargetBase {
	return TargetBase{area: area, depth: depth}
}

func (t *TargetBase) Area() geom.Rect    { return t.area }
func (t *TargetBase) Events() *event.Set { return &t.events }

// SetArea stores r and, when it differs from the current area, invalidates
// the cached matrix and fires EventAreaChanged.
func (t *TargetBase) SetArea(r geom.Rect) {
	if r == t.area {
		return
	}
	t.area = r
	t.matrixValid = false
	t.events.Fire(EventAreaChanged, &AreaArgs{Area: r})
}

// MatrixValid reports whether the cached view-projection is current
func (t *TargetBase) MatrixValid() bool { return t.matrixValid }

// MarkActivated bumps the activation counter and makes sure the matrix is
// current. Backends call it from Activate.
func (t *TargetBase) MarkActivated() {
	t.activations++
	if !t.matrixValid {
		t.updateMatrix()
	}
}

func (t *TargetBase) ActivationCount() uint64 { return t.activations }

// ViewDistance returns the eye distance used by the current projection
func (t *TargetBase) ViewDistance() float32 {
	if !t.matrixValid {
		t.updateMatrix()
	}
	return t.viewDistance
}

// Matrix returns the cached view-projection matrix in the target's depth
// convention, recomputing it when invalid.
func (t *TargetBase) Matrix() mgl32.Mat4 {
	if !t.matrixValid {
		t.updateMatrix()
	}
	return t.matrix
}

func (t *TargetBase) updateMatrix() {
	w, h := t.area.Width(), t.area.Height()
	aspect := float32(1)
	midx, midy := float32(0.5), float32(0.5)
	if w != 0 && h != 0 {
		aspect = w / h
		midx = w * 0.5
		midy = h * 0.5
	}
	t.viewDistance = midx / (aspect * yFovTan)

	eye := mgl32.Vec3{midx, midy, -t.viewDistance}
	centre := mgl32.Vec3{midx, midy, 1}
	up := mgl32.Vec3{0, -1, 0}

	proj := mgl32.Perspective(mgl32.DegToRad(30), aspect, t.viewDistance*0.5, t.viewDistance*2)
	view := mgl32.LookAtV(eye, centre, up)
	t.glMatrix = proj.Mul4(view)

	t.matrix = t.glMatrix
	if t.depth == DepthDirect3D {
		// z' = 0.5*z + 0.5*w
		remap := mgl32.Mat4{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 0.5, 0,
			0, 0, 0.5, 1,
		}
		t.matrix = remap.Mul4(t.glMatrix)
	}
	t.matrixValid = true
}

// ToPixel projects a world-space position to target pixel coordinates with
// a y-down origin at the target's top-left corner.
func (t *TargetBase) ToPixel(p mgl32.Vec3) (geom.Vec2, bool) {
	if !t.matrixValid {
		t.updateMatrix()
	}
	c := t.glMatrix.Mul4x1(p.Vec4(1))
	if c.W() == 0 {
		return geom.Vec2{}, false
	}
	nx, ny := c.X()/c.W(), c.Y()/c.W()
	return geom.Vec2{
		X: t.area.Min.X + (nx+1)*0.5*t.area.Width(),
		Y: t.area.Min.Y + (1-ny)*0.5*t.area.Height(),
	}, true
}

// UnprojectPoint intersects the pick ray through p with the z = 0 plane of
// buf (after its model transform) and returns the hit in buf-local
// coordinates.
func (t *TargetBase) UnprojectPoint(buf GeometryBuffer, p geom.Vec2) geom.Vec2 {
	if t.LegacyIdentityUnproject {
		return p
	}
	if !t.matrixValid {
		t.updateMatrix()
	}
	w, h := t.area.Width(), t.area.Height()
	if w == 0 || h == 0 {
		return p
	}
	inv := t.glMatrix.Inv()
	nx := (p.X-t.area.Min.X)/w*2 - 1
	ny := 1 - (p.Y-t.area.Min.Y)/h*2

	rayStart, ok1 := unprojectNDC(inv, nx, ny, -1)
	rayEnd, ok2 := unprojectNDC(inv, nx, ny, 1)
	if !ok1 || !ok2 {
		return p
	}

	model := buf.ModelMatrix()
	p0 := model.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	p1 := model.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	p2 := model.Mul4x1(mgl32.Vec4{0, 1, 0, 1}).Vec3()
	normal := p1.Sub(p0).Cross(p2.Sub(p0))

	dir := rayEnd.Sub(rayStart)
	denom := normal.Dot(dir)
	if math32.Abs(denom) < 1e-12 {
		return p
	}
	s := normal.Dot(p0.Sub(rayStart)) / denom
	hit := rayStart.Add(dir.Mul(s))

	local := model.Inv().Mul4x1(hit.Vec4(1))
	if local.W() != 0 && local.W() != 1 {
		local = local.Mul(1 / local.W())
	}
	return geom.Vec2{X: local.X(), Y: local.Y()}
}

func unprojectNDC(inv mgl32.Mat4, x, y, z float32) (mgl32.Vec3, bool) {
	v := inv.Mul4x1(mgl32.Vec4{x, y, z, 1})
	if v.W() == 0 {
		return mgl32.Vec3{}, false
	}
	return v.Vec3().Mul(1 / v.W()), true
}
