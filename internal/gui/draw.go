package gui

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/render"
)

// Render draws one frame: every visible window's geometry is regenerated
// if invalidated, queued on the surface it draws into, and the surfaces are
// drawn to the renderer's default target with the cursor on top. A window
// whose renderer fails is logged and reported through RenderFailed; the rest
// of the frame is still drawn and the failures are returned together.
func (rt *Runtime) Render() error {
	rt.renderer.BeginRendering()
	defer rt.renderer.EndRendering()

	rt.surface.ClearGeometry()
	var errs []error
	if root := rt.Root(); root != nil {
		errs = root.draw(rt.surface, geom.Vec2{}, errs)
	}
	rt.cursor.draw(rt.surface)
	rt.surface.Draw()
	return errors.Join(errs...)
}

// draw queues w and its subtree on surf. origin is the display position
// of surf's top-left corner.
func (w *Window) draw(surf *render.Surface, origin geom.Vec2, errs []error) []error {
	if !w.visible {
		return errs
	}
	w.fire(EventRenderingStarted, w.args())
	defer w.fire(EventRenderingEnded, w.args())

	target, childOrigin := surf, origin
	if w.autoSurface {
		rw, err := w.prepareSurface(surf, origin)
		if err != nil {
			w.rt.log.Warn("rendering surface unavailable", "window", w.Path(), "error", err)
			errs = append(errs, err)
		} else {
			target, childOrigin = rw.Surface, w.UnclippedOuterRect().Min
		}
	}

	errs = w.drawSelf(target, childOrigin, errs)
	for _, h := range append([]Handle(nil), w.drawList...) {
		if c := w.rt.lookupWindow(h); c != nil {
			errs = c.draw(target, childOrigin, errs)
		}
	}
	return errs
}

// drawSelf regenerates w's geometry when needed and queues it on surf.
// A window whose clipper is empty queues nothing.
func (w *Window) drawSelf(surf *render.Surface, origin geom.Vec2, errs []error) []error {
	clip := w.OuterRectClipper()
	if w.rw != nil {
		clip = w.UnclippedOuterRect()
	}
	if w.clippedToDisplay {
		clip = w.rt.screenRect()
	}
	if clip.IsEmpty() {
		return errs
	}

	gb := w.Geometry()
	if w.needsRedraw {
		gb.Reset()
		w.needsRedraw = false
		if w.renderer != nil {
			if err := w.renderer.Render(w); err != nil {
				w.rt.log.Warn("window render failed", "window", w.Path(), "renderer", w.renderer.Name(), "error", err)
				w.fire(EventRenderFailed, &RenderFailedArgs{Window: w.handle, Err: err})
				errs = append(errs, err)
			}
		}
	}
	if gb.VertexCount() == 0 {
		return errs
	}
	gb.SetTranslation(mgl32.Vec3{-origin.X, -origin.Y, 0})
	gb.SetClippingRegion(clip.Offset(geom.Vec2{X: -origin.X, Y: -origin.Y}))
	surf.AddGeometryBuffer(render.QueueBase, gb)
	return errs
}

// prepareSurface creates or refreshes w's rendering window on owner and
// queues its composite quad there.
func (w *Window) prepareSurface(owner *render.Surface, origin geom.Vec2) (*render.RenderingWindow, error) {
	if w.rw != nil && w.rw.Owner() != owner {
		w.rw.Release()
		w.rw = nil
	}
	if w.rw == nil {
		rw, err := render.NewRenderingWindow(w.rt.renderer, owner)
		if err != nil {
			return nil, err
		}
		w.rw = rw
		w.Invalidate(true)
	}
	rw := w.rw
	outer := w.UnclippedOuterRect()
	if err := rw.SetSize(outer.Size()); err != nil {
		return nil, err
	}
	rw.SetPosition(outer.Min.Sub(origin))
	rw.SetPivot(mgl32.Vec3{outer.Width() * 0.5, outer.Height() * 0.5, 0})
	rw.SetRotation(w.rotation)

	clip := w.rt.screenRect()
	if p := w.Parent(); p != nil && w.clippedByParent {
		clip = p.ClipRect(w.nonClient)
	}
	rw.SetClippingRegion(clip.Offset(geom.Vec2{X: -origin.X, Y: -origin.Y}))
	rw.ClearGeometry()
	rw.Invalidate()
	owner.AddGeometryBuffer(render.QueueBase, rw.Geometry())
	return rw, nil
}
