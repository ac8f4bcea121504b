package gui

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/font"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/property"
	"github.com/1broseidon/cegui/internal/render"
	"github.com/1broseidon/cegui/internal/udim"
)

// Window is a node of the GUI tree. Windows are created and destroyed only
// through their Runtime; parent and child links are handles into the
// runtime's arena.
type Window struct {
	rt     *Runtime
	handle Handle
	name   string
	typ    string
	id     uint32

	parent   Handle
	children []Handle
	drawList []Handle

	area         udim.URect
	minSize      udim.USize
	maxSize      udim.USize
	hAlign       HAlign
	vAlign       VAlign
	aspectMode   AspectMode
	aspectRatio  float32
	pixelAligned bool
	margin       udim.UBox
	rotation     mgl32.Quat

	visible               bool
	disabled              bool
	clippedByParent       bool
	nonClient             bool
	inheritsAlpha         bool
	alwaysOnTop           bool
	riseOnClick           bool
	mousePassThrough      bool
	zOrdering             bool
	wantsMultiClick       bool
	mouseInputPropagation bool
	autoSurface           bool
	autoWindow            bool
	active                bool
	destroying            bool

	alpha    float32
	text     string
	fontName string
	props    property.Bag
	userData any
	events   event.Set

	look      string
	renderer  WindowRenderer
	behaviour Behaviour

	geometry         render.GeometryBuffer
	clippedToDisplay bool
	needsRedraw      bool
	rw               *render.RenderingWindow
	cache            areaCache
}

func newWindow(rt *Runtime, typ, name string) *Window {
	return &Window{
		rt:              rt,
		typ:             typ,
		name:            name,
		area:            udim.AreaOf(udim.UVector2{}, udim.USize{}),
		aspectRatio:     1,
		pixelAligned:    true,
		rotation:        mgl32.QuatIdent(),
		visible:         true,
		clippedByParent: true,
		inheritsAlpha:   true,
		riseOnClick:     true,
		zOrdering:       true,
		wantsMultiClick: true,
		alpha:           1,
		needsRedraw:     true,
	}
}

func (w *Window) Runtime() *Runtime        { return w.rt }
func (w *Window) Handle() Handle           { return w.handle }
func (w *Window) Name() string             { return w.name }
func (w *Window) Type() string             { return w.typ }
func (w *Window) ID() uint32               { return w.id }
func (w *Window) SetID(id uint32)          { w.id = id }
func (w *Window) Events() *event.Set       { return &w.events }
func (w *Window) Props() *property.Bag     { return &w.props }
func (w *Window) Behaviour() Behaviour     { return w.behaviour }
func (w *Window) UserData() any            { return w.userData }
func (w *Window) SetUserData(v any)        { w.userData = v }
func (w *Window) IsDestroying() bool       { return w.destroying }
func (w *Window) IsAutoWindow() bool       { return w.autoWindow }
func (w *Window) SetAutoWindow(b bool)     { w.autoWindow = b }
func (w *Window) LookNFeel() string        { return w.look }
func (w *Window) Text() string             { return w.text }
func (w *Window) FontName() string         { return w.fontName }
func (w *Window) Renderer() WindowRenderer { return w.renderer }

func (w *Window) fire(name event.Name, args event.Args) int {
	return w.events.Fire(name, args)
}

func (w *Window) args() *WindowArgs { return &WindowArgs{Window: w.handle} }

// SetName renames the window; names are unique among siblings
func (w *Window) SetName(name string) error {
	if name == w.name {
		return nil
	}
	if strings.Contains(name, "/") {
		return guierr.InvalidRequest("window name %q must not contain '/'", name)
	}
	if p := w.Parent(); p != nil && p.childNamed(name) != nil {
		return guierr.InvalidRequest("window %q already has a child named %q", p.Path(), name)
	}
	w.name = name
	w.fire(EventNameChanged, w.args())
	return nil
}

// Path returns the slash-separated names from the root to w
func (w *Window) Path() string {
	if p := w.Parent(); p != nil {
		return p.Path() + "/" + w.name
	}
	return w.name
}

// Parent returns the parent window, or nil
func (w *Window) Parent() *Window { return w.rt.lookupWindow(w.parent) }

// ParentHandle returns the parent's handle (zero for top-level windows)
func (w *Window) ParentHandle() Handle { return w.parent }

// ChildCount returns the number of children
func (w *Window) ChildCount() int { return len(w.children) }

// ChildAt returns the i-th child in document order
func (w *Window) ChildAt(i int) *Window {
	if i < 0 || i >= len(w.children) {
		return nil
	}
	return w.rt.lookupWindow(w.children[i])
}

// Children returns the children in document order
func (w *Window) Children() []*Window {
	out := make([]*Window, 0, len(w.children))
	for _, h := range w.children {
		if c := w.rt.lookupWindow(h); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// ChildHandles returns the children's handles in document order
func (w *Window) ChildHandles() []Handle { return append([]Handle(nil), w.children...) }

// DrawOrder returns the children's handles in paint order, topmost last
func (w *Window) DrawOrder() []Handle { return append([]Handle(nil), w.drawList...) }

func (w *Window) childNamed(name string) *Window {
	for _, h := range w.children {
		if c := w.rt.lookupWindow(h); c != nil && c.name == name {
			return c
		}
	}
	return nil
}

// Child resolves a slash-separated path relative to w
func (w *Window) Child(path string) (*Window, error) {
	cur := w
	for _, part := range strings.Split(path, "/") {
		next := cur.childNamed(part)
		if next == nil {
			return nil, guierr.UnknownObject("window %q has no child %q", cur.Path(), part)
		}
		cur = next
	}
	return cur, nil
}

// IsChild reports whether h is a direct child of w
func (w *Window) IsChild(h Handle) bool {
	for _, c := range w.children {
		if c == h {
			return true
		}
	}
	return false
}

// IsAncestor reports whether h is w's parent, grandparent and so on
func (w *Window) IsAncestor(h Handle) bool {
	for p := w.Parent(); p != nil; p = p.Parent() {
		if p.handle == h {
			return true
		}
	}
	return false
}

// Walk visits w and its descendants in document order until fn returns
// false.
func (w *Window) Walk(fn func(*Window) bool) bool {
	if !fn(w) {
		return false
	}
	for _, h := range append([]Handle(nil), w.children...) {
		if c := w.rt.lookupWindow(h); c != nil && !c.Walk(fn) {
			return false
		}
	}
	return true
}

// AddChild attaches c to w, detaching it from its previous parent first
func (w *Window) AddChild(c *Window) error {
	if c == nil {
		return guierr.InvalidRequest("cannot add a nil child to %q", w.Path())
	}
	if c == w || w.IsAncestor(c.handle) {
		return guierr.InvalidRequest("adding %q to %q would create a cycle", c.name, w.Path())
	}
	if c.parent == w.handle {
		return nil
	}
	if other := w.childNamed(c.name); other != nil {
		return guierr.InvalidRequest("window %q already has a child named %q", w.Path(), c.name)
	}
	if acc, ok := w.behaviour.(ChildAcceptor); ok {
		if err := acc.AcceptChild(w, c); err != nil {
			return err
		}
	}
	if old := c.Parent(); old != nil {
		old.RemoveChild(c)
	}

	c.parent = w.handle
	w.children = append(w.children, c.handle)
	w.addToDrawList(c)
	c.markDirty()
	c.Invalidate(true)
	w.fire(EventChildAdded, &ChildArgs{Window: w.handle, Child: c.handle})
	return nil
}

// RemoveChild detaches c without destroying it
func (w *Window) RemoveChild(c *Window) {
	if c == nil || c.parent != w.handle {
		return
	}
	w.removeChild(c)
	w.fire(EventChildRemoved, &ChildArgs{Window: w.handle, Child: c.handle})
}

func (w *Window) removeChild(c *Window) {
	if c == nil {
		// Stale handle left by an out-of-order destroy.
		w.children = w.children[:len(w.children)-1]
		return
	}
	w.children = removeHandle(w.children, c.handle)
	w.drawList = removeHandle(w.drawList, c.handle)
	c.parent = Handle{}
	c.markDirty()
}

func removeHandle(list []Handle, h Handle) []Handle {
	for i, x := range list {
		if x == h {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// SetText changes the window text
func (w *Window) SetText(s string) {
	if s == w.text {
		return
	}
	w.text = s
	w.Invalidate(false)
	w.fire(EventTextChanged, w.args())
}

// SetFont selects a registered font by name; "" selects the default font
func (w *Window) SetFont(name string) error {
	if name != "" {
		if _, err := w.rt.Font(name); err != nil {
			return err
		}
	}
	w.fontName = name
	w.Invalidate(false)
	w.fire(EventFontChanged, w.args())
	return nil
}

// Font returns the window's font, falling back to the runtime default
func (w *Window) Font() font.Font {
	if w.fontName != "" {
		if f, err := w.rt.Font(w.fontName); err == nil {
			return f
		}
	}
	return w.rt.DefaultFont()
}

// IsVisible reports the window's own visibility flag
func (w *Window) IsVisible() bool { return w.visible }

// IsEffectiveVisible reports whether w and every ancestor are visible
func (w *Window) IsEffectiveVisible() bool {
	for c := w; c != nil; c = c.Parent() {
		if !c.visible {
			return false
		}
	}
	return true
}

// SetVisible shows or hides the window
func (w *Window) SetVisible(v bool) {
	if v == w.visible {
		return
	}
	w.visible = v
	if p := w.Parent(); p != nil {
		p.Invalidate(false)
	}
	w.Invalidate(true)
	if v {
		w.fire(EventShown, w.args())
	} else {
		w.fire(EventHidden, w.args())
	}
}

// IsDisabled reports the window's own disabled flag
func (w *Window) IsDisabled() bool { return w.disabled }

// IsEffectiveDisabled reports whether w or any ancestor is disabled
func (w *Window) IsEffectiveDisabled() bool {
	for c := w; c != nil; c = c.Parent() {
		if c.disabled {
			return true
		}
	}
	return false
}

// SetDisabled enables or disables the window
func (w *Window) SetDisabled(d bool) {
	if d == w.disabled {
		return
	}
	w.disabled = d
	w.Invalidate(true)
	if d {
		w.fire(EventDisabled, w.args())
		if w.rt.input.focus == w.handle {
			w.rt.Unfocus()
		}
	} else {
		w.fire(EventEnabled, w.args())
	}
}

// Alpha returns the window's own alpha
func (w *Window) Alpha() float32 { return w.alpha }

// SetAlpha sets the own alpha, clamped to [0,1]
func (w *Window) SetAlpha(a float32) {
	a = min(max(a, 0), 1)
	if a == w.alpha {
		return
	}
	w.alpha = a
	w.Invalidate(true)
	w.fire(EventAlphaChanged, w.args())
}

// InheritsAlpha reports whether the parent's effective alpha applies
func (w *Window) InheritsAlpha() bool { return w.inheritsAlpha }

// SetInheritsAlpha toggles inheritance of the parent's effective alpha
func (w *Window) SetInheritsAlpha(b bool) {
	if b == w.inheritsAlpha {
		return
	}
	w.inheritsAlpha = b
	w.Invalidate(true)
	w.fire(EventAlphaChanged, w.args())
}

// EffectiveAlpha is the own alpha times, when inherited, the parent's
// effective alpha. It is computed on every call.
func (w *Window) EffectiveAlpha() float32 {
	p := w.Parent()
	if p == nil || !w.inheritsAlpha {
		return w.alpha
	}
	return w.alpha * p.EffectiveAlpha()
}

func (w *Window) IsClippedByParent() bool         { return w.clippedByParent }
func (w *Window) IsNonClient() bool               { return w.nonClient }
func (w *Window) IsAlwaysOnTop() bool             { return w.alwaysOnTop }
func (w *Window) RiseOnClick() bool               { return w.riseOnClick }
func (w *Window) IsMousePassThrough() bool        { return w.mousePassThrough }
func (w *Window) IsZOrderingEnabled() bool        { return w.zOrdering }
func (w *Window) WantsMultiClickEvents() bool     { return w.wantsMultiClick }
func (w *Window) MouseInputPropagation() bool     { return w.mouseInputPropagation }
func (w *Window) AutoRenderingSurface() bool      { return w.autoSurface }
func (w *Window) SetRiseOnClick(b bool)           { w.riseOnClick = b }
func (w *Window) SetMousePassThrough(b bool)      { w.mousePassThrough = b }
func (w *Window) SetZOrderingEnabled(b bool)      { w.zOrdering = b }
func (w *Window) SetWantsMultiClickEvents(b bool) { w.wantsMultiClick = b }
func (w *Window) SetMouseInputPropagation(b bool) { w.mouseInputPropagation = b }

// SetClippedByParent selects parent clipping or screen clipping
func (w *Window) SetClippedByParent(b bool) {
	if b == w.clippedByParent {
		return
	}
	w.clippedByParent = b
	w.markDirty()
	w.Invalidate(true)
}

// SetNonClient positions w in its parent's outer rather than inner area
func (w *Window) SetNonClient(b bool) {
	if b == w.nonClient {
		return
	}
	w.nonClient = b
	w.markDirty()
	w.Invalidate(true)
}

// SetAutoRenderingSurface makes w draw its subtree into an off-screen
// surface composited as one quad.
func (w *Window) SetAutoRenderingSurface(b bool) {
	if b == w.autoSurface {
		return
	}
	w.autoSurface = b
	if !b && w.rw != nil {
		w.rw.Release()
		w.rw = nil
	}
	w.Invalidate(true)
}

// RenderingWindow returns the off-screen surface, or nil when not in use
func (w *Window) RenderingWindow() *render.RenderingWindow { return w.rw }

// Rotation returns the rotation applied to the window's rendering surface
func (w *Window) Rotation() mgl32.Quat { return w.rotation }

// SetRotation rotates the window about its centre. Rotation takes effect
// through the window's rendering surface.
func (w *Window) SetRotation(q mgl32.Quat) {
	w.rotation = q
	if p := w.Parent(); p != nil {
		p.Invalidate(false)
	}
	w.Invalidate(false)
}

// Geometry returns the buffer the window renderer fills
func (w *Window) Geometry() render.GeometryBuffer {
	if w.geometry == nil {
		w.geometry = w.rt.renderer.CreateGeometryBuffer()
	}
	return w.geometry
}

// SetGeometryClippedToDisplay makes the next draw clip w's geometry to the
// display instead of the window clipper.
func (w *Window) SetGeometryClippedToDisplay(b bool) { w.clippedToDisplay = b }

// Invalidate requests new geometry on the next draw
func (w *Window) Invalidate(recursive bool) {
	w.needsRedraw = true
	if !recursive {
		return
	}
	for _, h := range w.children {
		if c := w.rt.lookupWindow(h); c != nil {
			c.Invalidate(true)
		}
	}
}

// NeedsRedraw reports whether geometry will be rebuilt on the next draw
func (w *Window) NeedsRedraw() bool { return w.needsRedraw }

// SetWindowRenderer installs a registered window renderer
func (w *Window) SetWindowRenderer(name string) error {
	f, ok := w.rt.renderers[name]
	if !ok {
		return guierr.UnknownObject("window renderer %q is not registered", name)
	}
	w.renderer = f()
	w.markDirty()
	w.Invalidate(false)
	return nil
}

// SetLookNFeel assigns a look: the previous look is removed, then the new
// look's property initializers and child widgets are applied. Reassigning
// the same look applies the initializers again.
func (w *Window) SetLookNFeel(look string) error {
	looks := w.rt.looks
	if looks == nil {
		return guierr.InvalidRequest("window %q: no look registry available", w.Path())
	}
	if w.renderer == nil {
		return guierr.InvalidRequest("window %q has no window renderer to draw look %q", w.Path(), look)
	}
	if !looks.IsDefined(look) {
		return guierr.UnknownObject("WidgetLook %q is not defined", look)
	}
	if w.look != "" {
		looks.RemoveLook(w, w.look)
		w.fire(EventLookNFeelRemoved, w.args())
	}
	w.look = look
	if err := looks.ApplyLook(w, look); err != nil {
		looks.RemoveLook(w, look)
		w.look = ""
		return err
	}
	w.markDirty()
	w.Invalidate(true)
	w.fire(EventLookNFeelAssigned, w.args())
	return w.PerformChildWindowLayout()
}

// PerformChildWindowLayout positions look-owned child widgets and runs the
// kind's Layouter.
func (w *Window) PerformChildWindowLayout() error {
	if w.renderer != nil {
		if err := w.renderer.PerformChildWindowLayout(w); err != nil {
			return err
		}
	}
	if l, ok := w.behaviour.(Layouter); ok {
		return l.Layout(w)
	}
	return nil
}
