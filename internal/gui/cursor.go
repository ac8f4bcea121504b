package gui

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/render"
	"github.com/1broseidon/cegui/internal/udim"
)

// Cursor events, fired on the runtime's event set
const (
	EventCursorImageChanged event.Name = "CursorImageChanged"
)

// CursorArgs accompanies CursorImageChanged
type CursorArgs struct {
	event.Base
	Image *render.Image
}

// Cursor is the pointer indicator of a runtime. Its position is kept inside
// a constraint area, stored relative to the display so it follows display
// size changes. It is drawn last, on the surface's overlay queue.
type Cursor struct {
	rt          *Runtime
	image       *render.Image
	visible     bool
	pos         geom.Vec2
	constraints udim.URect
	customSize  geom.Size

	buf   render.GeometryBuffer
	valid bool
}

func newCursor(rt *Runtime) *Cursor {
	return &Cursor{
		rt:          rt,
		visible:     true,
		constraints: udim.URect{Max: udim.RelVec(1, 1)},
	}
}

// Cursor returns the runtime's pointer indicator
func (rt *Runtime) Cursor() *Cursor { return rt.cursor }

func (c *Cursor) Image() *render.Image { return c.image }
func (c *Cursor) IsVisible() bool      { return c.visible }
func (c *Cursor) SetVisible(v bool)    { c.visible = v }
func (c *Cursor) Position() geom.Vec2  { return c.pos }

// SetImage shows the named image from the runtime's image manager
func (c *Cursor) SetImage(name string) error {
	img, err := c.rt.images.Image(name)
	if err != nil {
		return err
	}
	c.SetImageRef(img)
	return nil
}

// SetImageRef shows img; nil hides the cursor without changing visibility
func (c *Cursor) SetImageRef(img *render.Image) {
	if img == c.image {
		return
	}
	c.image = img
	c.valid = false
	c.rt.events.Fire(EventCursorImageChanged, &CursorArgs{Image: img})
}

// SetExplicitRenderSize draws the image at sz instead of its native size.
// A zero size restores the native size.
func (c *Cursor) SetExplicitRenderSize(sz geom.Size) {
	if sz == c.customSize {
		return
	}
	c.customSize = sz
	c.valid = false
}

func (c *Cursor) ExplicitRenderSize() geom.Size { return c.customSize }

// SetPosition moves the cursor, clamped to the constraint area
func (c *Cursor) SetPosition(p geom.Vec2) {
	c.pos = p
	c.constrain()
}

// Offset moves the cursor by d, clamped to the constraint area
func (c *Cursor) Offset(d geom.Vec2) {
	c.SetPosition(c.pos.Add(d))
}

// SetConstraintArea limits the cursor to area, intersected with the
// display. A nil area restores the whole display.
func (c *Cursor) SetConstraintArea(area *geom.Rect) {
	c.constraints = udim.URect{Max: udim.RelVec(1, 1)}
	if area != nil {
		d := c.rt.display
		r := area.Intersection(c.rt.screenRect())
		if d.Width > 0 && d.Height > 0 {
			c.constraints = udim.URect{
				Min: udim.RelVec(r.Min.X/d.Width, r.Min.Y/d.Height),
				Max: udim.RelVec(r.Max.X/d.Width, r.Max.Y/d.Height),
			}
		}
	}
	c.constrain()
}

// SetUnifiedConstraintArea limits the cursor to an area resolved against
// the display
func (c *Cursor) SetUnifiedConstraintArea(area udim.URect) {
	c.constraints = area
	c.constrain()
}

// ConstraintArea returns the absolute area the cursor is kept inside
func (c *Cursor) ConstraintArea() geom.Rect {
	return c.constraints.Resolve(c.rt.display).Intersection(c.rt.screenRect())
}

func (c *Cursor) UnifiedConstraintArea() udim.URect { return c.constraints }

// constrain clamps the position into [min, max-1] of the constraint area
func (c *Cursor) constrain() {
	area := c.ConstraintArea()
	if c.pos.X >= area.Max.X {
		c.pos.X = area.Max.X - 1
	}
	if c.pos.Y >= area.Max.Y {
		c.pos.Y = area.Max.Y - 1
	}
	if c.pos.X < area.Min.X {
		c.pos.X = area.Min.X
	}
	if c.pos.Y < area.Min.Y {
		c.pos.Y = area.Min.Y
	}
}

func (c *Cursor) notifyDisplaySizeChanged() {
	c.valid = false
	c.constrain()
}

// draw queues the cursor on surf's overlay queue. The geometry is rebuilt
// only when the image or its size changed; moving the cursor only updates
// the buffer's translation.
func (c *Cursor) draw(surf *render.Surface) {
	if !c.visible || c.image == nil {
		return
	}
	if c.buf == nil {
		c.buf = c.rt.renderer.CreateGeometryBuffer()
	}
	if !c.valid {
		c.buf.Reset()
		sz := c.customSize
		if sz.IsZero() {
			sz = c.image.Size()
		}
		c.image.Render(c.buf, geom.RectAt(geom.Vec2{}, sz), nil, geom.Solid(geom.White))
		c.buf.SetClippingRegion(c.rt.screenRect())
		c.valid = true
	}
	c.buf.SetTranslation(mgl32.Vec3{c.pos.X, c.pos.Y, 0})
	surf.AddGeometryBuffer(render.QueueOverlay, c.buf)
}
