package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/1broseidon/cegui/internal/geom"
)

// GeometryBuffer accumulates textured vertex batches that a renderer module
// submits on Draw.
type GeometryBuffer interface {
	// AppendVertices adds vertices sampled from tex (nil for untextured).
	// Consecutive appends with the same texture share a batch.
	AppendVertices(tex Texture, verts []Vertex)
	Reset()
	VertexCount() int
	BatchCount() int
	Batches() []Batch

	SetTranslation(v mgl32.Vec3)
	SetRotation(q mgl32.Quat)
	SetScale(v mgl32.Vec3)
	SetPivot(v mgl32.Vec3)
	SetCustomTransform(m mgl32.Mat4)
	ModelMatrix() mgl32.Mat4

	SetClippingRegion(r geom.Rect)
	ClippingRegion() geom.Rect
	SetClippingActive(active bool)
	IsClippingActive() bool

	SetAlpha(a float32)
	Alpha() float32
	SetBlendMode(m BlendMode)
	BlendMode() BlendMode

	// Draw submits the buffer to the renderer's active target.
	Draw()
}

// Batch is a run of vertices sharing one texture
type Batch struct {
	Texture  Texture
	Vertices []Vertex
}

// BufferState implements the backend-independent half of GeometryBuffer.
// Renderer modules embed it and add Draw.
type BufferState struct {
	translation mgl32.Vec3
	rotation    mgl32.Quat
	scale       mgl32.Vec3
	pivot       mgl32.Vec3
	custom      mgl32.Mat4

	matrix      mgl32.Mat4
	matrixValid bool

	clip     geom.Rect
	clipping bool

	alpha float32
	blend BlendMode

	batches     []Batch
	vertexCount int
}

// NewBufferState returns a state with identity transforms, full alpha and
// clipping enabled.
func NewBufferState() BufferState {
	return BufferState{
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
		custom:   mgl32.Ident4(),
		clipping: true,
		alpha:    1,
	}
}

func (b *BufferState) AppendVertices(tex Texture, verts []Vertex) {
	if len(verts) == 0 {
		return
	}
	if n := len(b.batches); n > 0 && b.batches[n-1].Texture == tex {
		b.batches[n-1].Vertices = append(b.batches[n-1].Vertices, verts...)
	} else {
		batch := Batch{Texture: tex, Vertices: make([]Vertex, 0, len(verts))}
		batch.Vertices = append(batch.Vertices, verts...)
		b.batches = append(b.batches, batch)
	}
	b.vertexCount += len(verts)
}

func (b *BufferState) Reset() {
	b.batches = nil
	b.vertexCount = 0
}

func (b *BufferState) VertexCount() int { return b.vertexCount }
func (b *BufferState) BatchCount() int  { return len(b.batches) }
func (b *BufferState) Batches() []Batch { return b.batches }

func (b *BufferState) SetTranslation(v mgl32.Vec3) {
	b.translation = v
	b.matrixValid = false
}

func (b *BufferState) SetRotation(q mgl32.Quat) {
	b.rotation = q
	b.matrixValid = false
}

func (b *BufferState) SetScale(v mgl32.Vec3) {
	b.scale = v
	b.matrixValid = false
}

func (b *BufferState) SetPivot(v mgl32.Vec3) {
	b.pivot = v
	b.matrixValid = false
}

func (b *BufferState) SetCustomTransform(m mgl32.Mat4) {
	b.custom = m
	b.matrixValid = false
}

// ModelMatrix returns T(translation+pivot) * R * S * T(-pivot) * custom
func (b *BufferState) ModelMatrix() mgl32.Mat4 {
	if !b.matrixValid {
		t := b.translation.Add(b.pivot)
		m := mgl32.Translate3D(t.X(), t.Y(), t.Z())
		m = m.Mul4(b.rotation.Normalize().Mat4())
		m = m.Mul4(mgl32.Scale3D(b.scale.X(), b.scale.Y(), b.scale.Z()))
		m = m.Mul4(mgl32.Translate3D(-b.pivot.X(), -b.pivot.Y(), -b.pivot.Z()))
		b.matrix = m.Mul4(b.custom)
		b.matrixValid = true
	}
	return b.matrix
}

// SetClippingRegion stores r with negative coordinates clamped to zero
func (b *BufferState) SetClippingRegion(r geom.Rect) { b.clip = r.ClampNonNegative() }

func (b *BufferState) ClippingRegion() geom.Rect     { return b.clip }
func (b *BufferState) SetClippingActive(active bool) { b.clipping = active }
func (b *BufferState) IsClippingActive() bool        { return b.clipping }

func (b *BufferState) SetAlpha(a float32) { b.alpha = a }
func (b *BufferState) Alpha() float32     { return b.alpha }

func (b *BufferState) SetBlendMode(m BlendMode) { b.blend = m }
func (b *BufferState) BlendMode() BlendMode     { return b.blend }

// ShouldDraw reports whether a Draw would reach the backend: the buffer
// holds vertices and is not clipped away entirely.
func (b *BufferState) ShouldDraw() bool {
	if b.vertexCount == 0 {
		return false
	}
	return !b.clipping || !b.clip.IsEmpty()
}
