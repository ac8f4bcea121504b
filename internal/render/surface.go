package render

import (
	"fmt"
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/geom"
)

const (
	EventRenderQueueStarted event.Name = "RenderQueueStarted"
	EventRenderQueueEnded   event.Name = "RenderQueueEnded"
)

// QueueArgs accompanies the render queue events
type QueueArgs struct {
	event.Base
	Queue QueueID
}

// Surface owns a set of render queues drawn to one target in QueueID order
type Surface struct {
	target  RenderTarget
	queues  map[QueueID]*RenderQueue
	windows []*RenderingWindow
	events  event.Set
}

// NewSurface returns a surface drawing to target
func NewSurface(target RenderTarget) *Surface {
	return &Surface{target: target, queues: make(map[QueueID]*RenderQueue)}
}

func (s *Surface) Target() RenderTarget { return s.target }
func (s *Surface) Events() *event.Set   { return &s.events }

// AddGeometryBuffer queues buf on the given queue
func (s *Surface) AddGeometryBuffer(id QueueID, buf GeometryBuffer) {
	q, ok := s.queues[id]
	if !ok {
		q = &RenderQueue{}
		s.queues[id] = q
	}
	q.Add(buf)
}

// RemoveGeometryBuffer removes buf from the given queue
func (s *Surface) RemoveGeometryBuffer(id QueueID, buf GeometryBuffer) {
	if q, ok := s.queues[id]; ok {
		q.Remove(buf)
	}
}

// ClearQueue empties one queue
func (s *Surface) ClearQueue(id QueueID) {
	if q, ok := s.queues[id]; ok {
		q.Reset()
	}
}

// ClearGeometry empties every queue
func (s *Surface) ClearGeometry() {
	for _, q := range s.queues {
		q.Reset()
	}
}

// QueueIDs returns the IDs of queues in use, in draw order
func (s *Surface) QueueIDs() []QueueID {
	ids := make([]QueueID, 0, len(s.queues))
	for id := range s.queues {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Queue returns the queue for id, or nil when it has never been used
func (s *Surface) Queue(id QueueID) *RenderQueue { return s.queues[id] }

// Draw refreshes child rendering windows that need it, then activates the
// target and draws the queues in ascending QueueID order.
func (s *Surface) Draw() {
	for _, rw := range s.windows {
		if rw.needsRedraw {
			rw.redraw()
		}
	}

	s.target.Activate()
	for _, id := range s.QueueIDs() {
		q := s.queues[id]
		s.events.Fire(EventRenderQueueStarted, &QueueArgs{Queue: id})
		s.target.DrawQueue(q)
		s.events.Fire(EventRenderQueueEnded, &QueueArgs{Queue: id})
	}
	s.target.Deactivate()
}

// RenderingWindow is an off-screen surface whose content is composited onto
// its owner surface as one textured quad.
type RenderingWindow struct {
	*Surface
	owner    *Surface
	renderer Renderer
	target   TextureTarget
	geometry GeometryBuffer

	position geom.Vec2
	size     geom.Size
	rotation mgl32.Quat
	pivot    mgl32.Vec3
	clip     geom.Rect

	needsRedraw   bool
	geometryValid bool
}

// NewRenderingWindow creates a texture-backed surface attached to owner
func NewRenderingWindow(r Renderer, owner *Surface) (*RenderingWindow, error) {
	tt, err := r.CreateTextureTarget()
	if err != nil {
		return nil, fmt.Errorf("creating rendering window target: %w", err)
	}
	rw := &RenderingWindow{
		Surface:     NewSurface(tt),
		owner:       owner,
		renderer:    r,
		target:      tt,
		geometry:    r.CreateGeometryBuffer(),
		rotation:    mgl32.QuatIdent(),
		needsRedraw: true,
	}
	rw.geometry.SetBlendMode(BlendRTTPremultiplied)
	owner.windows = append(owner.windows, rw)
	return rw, nil
}

// Owner returns the surface this window composites onto
func (rw *RenderingWindow) Owner() *Surface { return rw.owner }

// TextureTarget returns the off-screen target
func (rw *RenderingWindow) TextureTarget() TextureTarget { return rw.target }

// Geometry returns the composite quad buffer to queue on the owner
func (rw *RenderingWindow) Geometry() GeometryBuffer {
	if !rw.geometryValid {
		rw.realiseGeometry()
	}
	return rw.geometry
}

// SetPosition moves the composite quad
func (rw *RenderingWindow) SetPosition(p geom.Vec2) {
	rw.position = p
	rw.geometry.SetTranslation(mgl32.Vec3{p.X, p.Y, 0})
}

// SetSize resizes the off-screen target and composite quad
func (rw *RenderingWindow) SetSize(sz geom.Size) error {
	sz = geom.Size{Width: math32.Ceil(sz.Width), Height: math32.Ceil(sz.Height)}
	if sz == rw.size {
		return nil
	}
	if err := rw.target.DeclareRenderSize(sz); err != nil {
		return fmt.Errorf("resizing rendering window: %w", err)
	}
	rw.size = sz
	rw.target.SetArea(geom.RectAt(geom.Vec2{}, sz))
	rw.geometryValid = false
	rw.needsRedraw = true
	return nil
}

func (rw *RenderingWindow) Size() geom.Size     { return rw.size }
func (rw *RenderingWindow) Position() geom.Vec2 { return rw.position }

// SetRotation rotates the composite quad about its pivot
func (rw *RenderingWindow) SetRotation(q mgl32.Quat) {
	rw.rotation = q
	rw.geometry.SetRotation(q)
}

// SetPivot sets the rotation pivot relative to the quad origin
func (rw *RenderingWindow) SetPivot(p mgl32.Vec3) {
	rw.pivot = p
	rw.geometry.SetPivot(p)
}

// SetClippingRegion clips the composite quad on the owner target
func (rw *RenderingWindow) SetClippingRegion(r geom.Rect) {
	rw.clip = r
	rw.geometry.SetClippingRegion(r)
}

// Invalidate marks the off-screen content as stale
func (rw *RenderingWindow) Invalidate() { rw.needsRedraw = true }

// NeedsRedraw reports whether the content must be rendered again
func (rw *RenderingWindow) NeedsRedraw() bool { return rw.needsRedraw }

// Release detaches the window from its owner and frees its resources
func (rw *RenderingWindow) Release() {
	for i, w := range rw.owner.windows {
		if w == rw {
			rw.owner.windows = append(rw.owner.windows[:i], rw.owner.windows[i+1:]...)
			break
		}
	}
	rw.renderer.DestroyGeometryBuffer(rw.geometry)
	rw.renderer.DestroyTextureTarget(rw.target)
}

// UnprojectPoint maps an owner-space point into the window's content space
func (rw *RenderingWindow) UnprojectPoint(p geom.Vec2) geom.Vec2 {
	return rw.owner.target.UnprojectPoint(rw.Geometry(), p)
}

func (rw *RenderingWindow) redraw() {
	rw.target.Clear()
	rw.Surface.Draw()
	rw.needsRedraw = false
}

func (rw *RenderingWindow) realiseGeometry() {
	rw.geometry.Reset()
	tex := rw.target.Texture()
	scale := tex.TexelScaling()
	uvMax := mgl32.Vec2{rw.size.Width * scale.X, rw.size.Height * scale.Y}
	dest := geom.RectAt(geom.Vec2{}, rw.size)
	AppendQuad(rw.geometry, tex, dest, mgl32.Vec2{0, 0}, uvMax, geom.Solid(geom.White))
	rw.geometryValid = true
}
