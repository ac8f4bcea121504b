package gui

import (
	"github.com/chewxy/math32"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/udim"
)

// areaCache holds the lazily resolved pixel rectangles of a window. Every
// entry is dropped together by markDirty.
type areaCache struct {
	outer, inner           geom.Rect
	outerClip, innerClip   geom.Rect
	hit                    geom.Rect
	outerValid, innerValid bool
	outerClipValid         bool
	innerClipValid         bool
	hitValid               bool

	// notified is the rect last reported through Moved and Sized.
	notified geom.Rect
}

// markDirty drops the cached rects of w and all its descendants
func (w *Window) markDirty() {
	w.cache.outerValid = false
	w.cache.innerValid = false
	w.cache.outerClipValid = false
	w.cache.innerClipValid = false
	w.cache.hitValid = false
	for _, h := range w.children {
		if c := w.rt.lookupWindow(h); c != nil {
			c.markDirty()
		}
	}
}

// Area returns the unified area
func (w *Window) Area() udim.URect { return w.area }

// Position returns the unified position
func (w *Window) Position() udim.UVector2 { return w.area.Position() }

// Size returns the unified size
func (w *Window) Size() udim.USize { return w.area.Size() }

// SetArea stores a unified position and size. Moved and Sized fire when the
// resolved rect is next queried, and only if it actually changed.
func (w *Window) SetArea(pos udim.UVector2, size udim.USize) {
	w.setArea(udim.AreaOf(pos, size))
}

func (w *Window) setArea(a udim.URect) {
	if a == w.area {
		return
	}
	w.area = a
	w.markDirty()
	w.Invalidate(false)
	w.fire(EventAreaChanged, w.args())
}

func (w *Window) SetPosition(pos udim.UVector2) { w.SetArea(pos, w.Size()) }
func (w *Window) SetSize(size udim.USize)       { w.SetArea(w.Position(), size) }

func (w *Window) SetXPosition(x udim.UDim) {
	w.SetPosition(udim.UVector2{X: x, Y: w.Position().Y})
}

func (w *Window) SetYPosition(y udim.UDim) {
	w.SetPosition(udim.UVector2{X: w.Position().X, Y: y})
}

func (w *Window) SetWidth(width udim.UDim) {
	w.SetSize(udim.USize{Width: width, Height: w.Size().Height})
}

func (w *Window) SetHeight(height udim.UDim) {
	w.SetSize(udim.USize{Width: w.Size().Width, Height: height})
}

func (w *Window) MinSize() udim.USize { return w.minSize }
func (w *Window) MaxSize() udim.USize { return w.maxSize }

// SetMinSize sets the minimum size, resolved against the display
func (w *Window) SetMinSize(s udim.USize) {
	w.minSize = s
	w.areaSettingChanged()
}

// SetMaxSize sets the maximum size, resolved against the display. A zero
// component means unbounded.
func (w *Window) SetMaxSize(s udim.USize) {
	w.maxSize = s
	w.areaSettingChanged()
}

func (w *Window) HorizontalAlignment() HAlign { return w.hAlign }
func (w *Window) VerticalAlignment() VAlign   { return w.vAlign }
func (w *Window) AspectMode() AspectMode      { return w.aspectMode }
func (w *Window) AspectRatio() float32        { return w.aspectRatio }
func (w *Window) IsPixelAligned() bool        { return w.pixelAligned }
func (w *Window) Margin() udim.UBox           { return w.margin }

func (w *Window) SetHorizontalAlignment(a HAlign) {
	if a != w.hAlign {
		w.hAlign = a
		w.areaSettingChanged()
	}
}

func (w *Window) SetVerticalAlignment(a VAlign) {
	if a != w.vAlign {
		w.vAlign = a
		w.areaSettingChanged()
	}
}

func (w *Window) SetAspectMode(m AspectMode) {
	if m != w.aspectMode {
		w.aspectMode = m
		w.areaSettingChanged()
	}
}

// SetAspectRatio sets width/height for the aspect mode; non-positive
// ratios are ignored.
func (w *Window) SetAspectRatio(r float32) {
	if r > 0 && r != w.aspectRatio {
		w.aspectRatio = r
		w.areaSettingChanged()
	}
}

func (w *Window) SetPixelAligned(b bool) {
	if b != w.pixelAligned {
		w.pixelAligned = b
		w.areaSettingChanged()
	}
}

// SetMargin sets the margin layout containers keep around the window
func (w *Window) SetMargin(m udim.UBox) {
	if m == w.margin {
		return
	}
	w.margin = m
	w.fire(EventMarginChanged, w.args())
}

func (w *Window) areaSettingChanged() {
	w.markDirty()
	w.Invalidate(false)
	w.fire(EventAreaChanged, w.args())
}

// parentContentArea is the rect w is positioned and sized against
func (w *Window) parentContentArea() geom.Rect {
	if p := w.Parent(); p != nil {
		return p.ChildContentArea(w.nonClient)
	}
	return w.rt.screenRect()
}

// ParentPixelSize is the size unified dimensions of w resolve against
func (w *Window) ParentPixelSize() geom.Size { return w.parentContentArea().Size() }

// PixelSize returns the resolved size of w
func (w *Window) PixelSize() geom.Size { return w.UnclippedOuterRect().Size() }

// calculatePixelSize resolves the unified size, applies the aspect mode and
// min/max constraints, and pixel-aligns the result.
func (w *Window) calculatePixelSize(base geom.Size) geom.Size {
	sz := w.area.Size().Resolve(base)
	sz = w.applyAspect(sz)

	display := w.rt.display
	sz = sz.Clamp(w.minSize.Resolve(display), w.maxSize.Resolve(display))
	sz.Width, sz.Height = max(sz.Width, 0), max(sz.Height, 0)
	if w.pixelAligned {
		sz = sz.Round()
	}
	return sz
}

func (w *Window) applyAspect(sz geom.Size) geom.Size {
	r := w.aspectRatio
	if r <= 0 || sz.Height == 0 && w.aspectMode != AspectAdjustHeight {
		return sz
	}
	switch w.aspectMode {
	case AspectShrink:
		if sz.Width/sz.Height > r {
			sz.Width = sz.Height * r
		} else {
			sz.Height = sz.Width / r
		}
	case AspectExpand:
		if sz.Width/sz.Height > r {
			sz.Height = sz.Width / r
		} else {
			sz.Width = sz.Height * r
		}
	case AspectAdjustWidth:
		sz.Width = sz.Height * r
	case AspectAdjustHeight:
		sz.Height = sz.Width / r
	}
	return sz
}

// UnclippedOuterRect is the full window rect in display pixels. It is
// resolved on demand and cached until the area is marked dirty.
func (w *Window) UnclippedOuterRect() geom.Rect {
	if w.cache.outerValid {
		return w.cache.outer
	}
	base := w.parentContentArea()
	sz := w.calculatePixelSize(base.Size())
	off := base.Min.Add(w.area.Min.Resolve(base.Size()))

	switch w.hAlign {
	case HAlignCentre:
		off.X += (base.Width() - sz.Width) * 0.5
	case HAlignRight:
		off.X += base.Width() - sz.Width
	}
	switch w.vAlign {
	case VAlignCentre:
		off.Y += (base.Height() - sz.Height) * 0.5
	case VAlignBottom:
		off.Y += base.Height() - sz.Height
	}
	if w.pixelAligned {
		off = geom.Vec2{X: math32.Round(off.X), Y: math32.Round(off.Y)}
	}

	r := geom.RectAt(off, sz)
	w.cache.outer = r
	w.cache.outerValid = true
	w.notifyAreaChange(r)
	return r
}

// notifyAreaChange fires Moved and Sized when r differs from the rect
// previously reported.
func (w *Window) notifyAreaChange(r geom.Rect) {
	prev := w.cache.notified
	if r == prev {
		return
	}
	w.cache.notified = r
	w.Invalidate(false)
	if r.Min != prev.Min {
		w.fire(EventMoved, w.args())
	}
	if r.Size() != prev.Size() {
		w.fire(EventSized, w.args())
		for _, h := range append([]Handle(nil), w.children...) {
			if c := w.rt.lookupWindow(h); c != nil {
				c.fire(EventParentSized, c.args())
			}
		}
		if err := w.PerformChildWindowLayout(); err != nil {
			w.rt.log.Warn("child window layout failed", "window", w.Path(), "error", err)
		}
	}
}

// UnclippedInnerRect is the client area: the renderer's Client area when
// it defines one, otherwise the outer rect.
func (w *Window) UnclippedInnerRect() geom.Rect {
	if w.cache.innerValid {
		return w.cache.inner
	}
	r := w.UnclippedOuterRect()
	if w.renderer != nil {
		if inner, ok := w.renderer.UnclippedInnerRect(w); ok {
			r = inner
		}
	}
	w.cache.inner = r
	w.cache.innerValid = true
	return r
}

// ChildContentArea is the area children are laid out in: the outer rect for
// non-client children, the inner rect otherwise, unless the kind overrides
// it.
func (w *Window) ChildContentArea(nonClient bool) geom.Rect {
	if p, ok := w.behaviour.(ContentAreaProvider); ok {
		return p.ChildContentArea(w, nonClient)
	}
	if nonClient {
		return w.UnclippedOuterRect()
	}
	return w.UnclippedInnerRect()
}

func (w *Window) clip(r geom.Rect) geom.Rect {
	if p := w.Parent(); p != nil && w.clippedByParent {
		return r.Intersection(p.ClipRect(w.nonClient))
	}
	return r.Intersection(w.rt.screenRect())
}

// OuterRectClipper is the outer rect clipped by the parent's clipper (or
// the display when not clipped by the parent).
func (w *Window) OuterRectClipper() geom.Rect {
	if !w.cache.outerClipValid {
		w.cache.outerClip = w.clip(w.UnclippedOuterRect())
		w.cache.outerClipValid = true
	}
	return w.cache.outerClip
}

// InnerRectClipper is the inner rect clipped like OuterRectClipper
func (w *Window) InnerRectClipper() geom.Rect {
	if !w.cache.innerClipValid {
		w.cache.innerClip = w.clip(w.UnclippedInnerRect())
		w.cache.innerClipValid = true
	}
	return w.cache.innerClip
}

// ClipRect returns the clipper a child of the given client-ness uses
func (w *Window) ClipRect(nonClient bool) geom.Rect {
	if nonClient {
		return w.OuterRectClipper()
	}
	return w.InnerRectClipper()
}

// PixelRect is the window's visible rect on the display
func (w *Window) PixelRect() geom.Rect { return w.OuterRectClipper() }

// HitTestRect is the part of w that can receive the pointer
func (w *Window) HitTestRect() geom.Rect {
	if w.cache.hitValid {
		return w.cache.hit
	}
	r := w.UnclippedOuterRect()
	if p := w.Parent(); p != nil && w.clippedByParent {
		r = r.Intersection(p.HitTestRect())
	} else {
		r = r.Intersection(w.rt.screenRect())
	}
	w.cache.hit = r
	w.cache.hitValid = true
	return r
}

// IsHit reports whether p (in display pixels) falls inside w. Hidden and
// zero-area windows are never hit, disabled ones only when allowDisabled.
func (w *Window) IsHit(p geom.Vec2, allowDisabled bool) bool {
	if !w.IsEffectiveVisible() {
		return false
	}
	if !allowDisabled && w.IsEffectiveDisabled() {
		return false
	}
	r := w.HitTestRect()
	return !r.IsEmpty() && r.IsPointInside(p)
}

// surfaceOrigin is the display position of the nearest ancestor drawing
// into its own rendering surface, or zero.
func (w *Window) surfaceOrigin() geom.Vec2 {
	for p := w.Parent(); p != nil; p = p.Parent() {
		if p.rw != nil {
			return p.UnclippedOuterRect().Min
		}
	}
	return geom.Vec2{}
}

// toLocal maps a point through w's rendering surface transform into w's
// unrotated pixel space.
func (w *Window) toLocal(p geom.Vec2) geom.Vec2 {
	if w.rw == nil {
		return p
	}
	origin := w.surfaceOrigin()
	local := w.rw.UnprojectPoint(p.Sub(origin))
	return local.Add(w.UnclippedOuterRect().Min)
}

// ChildAtPosition returns the topmost descendant hit by p, or nil. Hidden
// and pass-through windows are skipped; disabled windows count only with
// allowDisabled.
func (w *Window) ChildAtPosition(p geom.Vec2, allowDisabled bool) *Window {
	for i := len(w.drawList) - 1; i >= 0; i-- {
		c := w.rt.lookupWindow(w.drawList[i])
		if c == nil || !c.visible {
			continue
		}
		cp := c.toLocal(p)
		if deeper := c.ChildAtPosition(cp, allowDisabled); deeper != nil {
			return deeper
		}
		if !c.mousePassThrough && c.IsHit(cp, allowDisabled) {
			return c
		}
	}
	return nil
}

// WindowAt returns the topmost window under p, including the root
func (rt *Runtime) WindowAt(p geom.Vec2, allowDisabled bool) *Window {
	root := rt.Root()
	if root == nil || !root.visible {
		return nil
	}
	lp := root.toLocal(p)
	if c := root.ChildAtPosition(lp, allowDisabled); c != nil {
		return c
	}
	if !root.mousePassThrough && root.IsHit(lp, allowDisabled) {
		return root
	}
	return nil
}
