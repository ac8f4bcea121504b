package gui

import (
	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/geom"
)

// inputState tracks the pointer, capture and focus windows of a runtime
type inputState struct {
	mousePos geom.Vec2
	hover    Handle
	capture  Handle
	focus    Handle
	down     [mouseButtonCount]Handle

	doubleClickTimeout float32
	sinceClick         float32
	clickCount         int
	clickWindow        Handle
	clickButton        MouseButton
}

// MousePosition returns the pointer position last delivered to windows
func (rt *Runtime) MousePosition() geom.Vec2 { return rt.input.mousePos }

// Hovered returns the window under the pointer, or nil
func (rt *Runtime) Hovered() *Window { return rt.lookupWindow(rt.input.hover) }

// mouseTarget is the window mouse input is routed to: the capture window
// when set, otherwise the window under the pointer.
func (rt *Runtime) mouseTarget() *Window {
	if w := rt.lookupWindow(rt.input.capture); w != nil {
		return w
	}
	return rt.WindowAt(rt.input.mousePos, true)
}

// InjectMousePosition moves the pointer to an absolute display position,
// clamped to the cursor's constraint area
func (rt *Runtime) InjectMousePosition(x, y float32) bool {
	rt.cursor.SetPosition(geom.V2(x, y))
	return rt.mouseMoved()
}

// InjectMouseMove moves the pointer by a relative amount, clamped to the
// cursor's constraint area
func (rt *Runtime) InjectMouseMove(dx, dy float32) bool {
	rt.cursor.Offset(geom.V2(dx, dy))
	return rt.mouseMoved()
}

// mouseMoved routes the move from the last pointer position to the
// cursor's. A move the constraint area swallows entirely is not delivered.
func (rt *Runtime) mouseMoved() bool {
	delta := rt.cursor.Position().Sub(rt.input.mousePos)
	rt.input.mousePos = rt.cursor.Position()
	rt.updateHover()
	if delta == (geom.Vec2{}) {
		return false
	}
	w := rt.mouseTarget()
	if w == nil {
		return false
	}
	return rt.dispatchMouse(w, EventMouseMove, func(a *MouseArgs) { a.Move = delta })
}

// updateHover fires leave and enter events when the window under the
// pointer changes.
func (rt *Runtime) updateHover() {
	next := rt.mouseTarget()
	var nh Handle
	if next != nil {
		nh = next.handle
	}
	if nh == rt.input.hover {
		return
	}
	if prev := rt.lookupWindow(rt.input.hover); prev != nil {
		prev.Invalidate(false)
		prev.fire(EventMouseLeavesArea, rt.mouseArgs(prev))
	}
	rt.input.hover = nh
	if next != nil {
		next.Invalidate(false)
		next.fire(EventMouseEntersArea, rt.mouseArgs(next))
	}
}

// InjectMouseLeaves ends hover when the pointer leaves the host window.
// The next pointer move restores it.
func (rt *Runtime) InjectMouseLeaves() bool {
	prev := rt.lookupWindow(rt.input.hover)
	if prev == nil {
		return false
	}
	rt.input.hover = Handle{}
	prev.Invalidate(false)
	prev.fire(EventMouseLeavesArea, rt.mouseArgs(prev))
	return true
}

func (rt *Runtime) mouseArgs(w *Window) *MouseArgs {
	return &MouseArgs{Window: w.handle, Position: rt.input.mousePos}
}

// dispatchMouse fires name on w, bubbling to the parent while unhandled
// and the window propagates mouse input.
func (rt *Runtime) dispatchMouse(w *Window, name event.Name, fill func(*MouseArgs)) bool {
	for w != nil {
		a := rt.mouseArgs(w)
		if fill != nil {
			fill(a)
		}
		w.fire(name, a)
		if a.Handled > 0 {
			return true
		}
		if !w.mouseInputPropagation {
			return false
		}
		w = w.Parent()
	}
	return false
}

// InjectMouseButtonDown presses a button over the current target window.
// The window is activated, focused when it accepts focus, and offered the
// press.
func (rt *Runtime) InjectMouseButtonDown(b MouseButton) bool {
	if b < 0 || b >= mouseButtonCount {
		return false
	}
	w := rt.mouseTarget()
	if w == nil {
		rt.input.down[b] = Handle{}
		return false
	}
	rt.input.down[b] = w.handle

	if rt.input.clickWindow == w.handle && rt.input.clickButton == b &&
		rt.input.sinceClick <= rt.input.doubleClickTimeout && w.wantsMultiClick {
		rt.input.clickCount++
	} else {
		rt.input.clickCount = 1
	}
	rt.input.clickWindow = w.handle
	rt.input.clickButton = b
	rt.input.sinceClick = 0

	if w.IsEffectiveDisabled() {
		return false
	}
	if w.riseOnClick {
		w.Activate()
	}
	if w.IsFocusable() {
		rt.Focus(w.handle)
	}

	handled := false
	if c, ok := w.behaviour.(Clickable); ok {
		handled = c.MouseButtonDown(w, b)
	}
	count := rt.input.clickCount
	if rt.dispatchMouse(w, EventMouseButtonDown, func(a *MouseArgs) {
		a.Button = b
		a.ClickCount = count
	}) {
		handled = true
	}
	if count == 2 && rt.dispatchMouse(w, EventMouseDoubleClick, func(a *MouseArgs) {
		a.Button = b
		a.ClickCount = count
	}) {
		handled = true
	}
	return handled
}

// InjectMouseButtonUp releases a button. MouseClick fires when the release
// happens over the window that received the press.
func (rt *Runtime) InjectMouseButtonUp(b MouseButton) bool {
	if b < 0 || b >= mouseButtonCount {
		return false
	}
	downOn := rt.input.down[b]
	rt.input.down[b] = Handle{}

	w := rt.mouseTarget()
	if w == nil || w.IsEffectiveDisabled() {
		return false
	}
	handled := false
	if c, ok := w.behaviour.(Clickable); ok {
		handled = c.MouseButtonUp(w, b)
	}
	fill := func(a *MouseArgs) { a.Button = b }
	if rt.dispatchMouse(w, EventMouseButtonUp, fill) {
		handled = true
	}
	if downOn == w.handle && rt.dispatchMouse(w, EventMouseClick, fill) {
		handled = true
	}
	return handled
}

// InjectMouseWheelChange scrolls the wheel over the current target window
func (rt *Runtime) InjectMouseWheelChange(delta float32) bool {
	w := rt.mouseTarget()
	if w == nil || w.IsEffectiveDisabled() {
		return false
	}
	return rt.dispatchMouse(w, EventMouseWheel, func(a *MouseArgs) { a.Wheel = delta })
}

// InjectKeyDown delivers a key press to the focused window, bubbling to
// its ancestors until handled.
func (rt *Runtime) InjectKeyDown(k Key) bool {
	w := rt.Focused()
	for ; w != nil; w = w.Parent() {
		if w.IsEffectiveDisabled() {
			return false
		}
		if h, ok := w.behaviour.(KeyHandler); ok && h.KeyDown(w, k) {
			return true
		}
		a := &KeyArgs{Window: w.handle, Key: k}
		w.fire(EventKeyDown, a)
		if a.Handled > 0 {
			return true
		}
	}
	return false
}

// InjectKeyUp delivers a key release the same way as InjectKeyDown
func (rt *Runtime) InjectKeyUp(k Key) bool {
	return rt.dispatchKey(EventKeyUp, &KeyArgs{Key: k})
}

// InjectChar delivers a typed character the same way as InjectKeyDown
func (rt *Runtime) InjectChar(r rune) bool {
	return rt.dispatchKey(EventCharacter, &KeyArgs{Char: r})
}

func (rt *Runtime) dispatchKey(name event.Name, proto *KeyArgs) bool {
	for w := rt.Focused(); w != nil; w = w.Parent() {
		if w.IsEffectiveDisabled() {
			return false
		}
		a := &KeyArgs{Window: w.handle, Key: proto.Key, Char: proto.Char}
		w.fire(name, a)
		if a.Handled > 0 {
			return true
		}
	}
	return false
}

// CaptureInput routes all mouse input to w until released. Capture fails
// for hidden or disabled windows.
func (rt *Runtime) CaptureInput(h Handle) bool {
	w := rt.lookupWindow(h)
	if w == nil || !w.IsEffectiveVisible() || w.IsEffectiveDisabled() {
		return false
	}
	if rt.input.capture == h {
		return true
	}
	if prev := rt.lookupWindow(rt.input.capture); prev != nil {
		prev.fire(EventInputCaptureLost, prev.args())
	}
	rt.input.capture = h
	w.fire(EventInputCaptureGained, w.args())
	return true
}

// ReleaseInput ends the current capture, if h holds it
func (rt *Runtime) ReleaseInput(h Handle) {
	if h.IsZero() || rt.input.capture != h {
		return
	}
	rt.input.capture = Handle{}
	if w := rt.lookupWindow(h); w != nil {
		w.fire(EventInputCaptureLost, w.args())
	}
	rt.updateHover()
}

// CaptureWindow returns the window holding input capture, or nil
func (rt *Runtime) CaptureWindow() *Window { return rt.lookupWindow(rt.input.capture) }

// Focus moves keyboard focus to h, firing Unfocused on the previous window
// and Focused on the new one.
func (rt *Runtime) Focus(h Handle) bool {
	w := rt.lookupWindow(h)
	if w == nil || w.IsEffectiveDisabled() {
		return false
	}
	if rt.input.focus == h {
		return true
	}
	rt.Unfocus()
	rt.input.focus = h
	w.Invalidate(false)
	w.fire(EventFocused, w.args())
	return true
}

// Unfocus clears keyboard focus
func (rt *Runtime) Unfocus() {
	prev := rt.lookupWindow(rt.input.focus)
	rt.input.focus = Handle{}
	if prev != nil {
		prev.Invalidate(false)
		prev.fire(EventUnfocused, prev.args())
	}
}

// Focused returns the focused window, or nil
func (rt *Runtime) Focused() *Window { return rt.lookupWindow(rt.input.focus) }

// IsFocused reports whether w holds keyboard focus
func (w *Window) IsFocused() bool { return w.rt.input.focus == w.handle }

// IsFocusable reports whether the kind accepts focus right now
func (w *Window) IsFocusable() bool {
	f, ok := w.behaviour.(Focusable)
	return ok && f.CanFocus(w)
}

// IsHovered reports whether the pointer is over w
func (w *Window) IsHovered() bool { return w.rt.input.hover == w.handle }

// IsPushed reports whether the left button was pressed on w and not yet
// released.
func (w *Window) IsPushed() bool { return w.rt.input.down[LeftButton] == w.handle }
