// Package gui implements the window tree: unified-dimension area
// resolution, clipping, alpha, z-order, input injection and the draw pass
// that turns windows into queued geometry. A Runtime owns every window and
// the registries window creation consults.
package gui

import (
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/font"
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/render"
)

// Options configures a Runtime
type Options struct {
	Renderer render.Renderer
	Logger   *slog.Logger
	// DisplaySize defaults to the renderer's display size.
	DisplaySize geom.Size
	// Looks resolves look names; windows cannot take a look without it.
	Looks LookRegistry
	// DoubleClickTimeout is the maximum gap (seconds) between clicks that
	// still counts as a multi-click.
	DoubleClickTimeout float32
}

// Runtime is the GUI context: it owns the window arena, the type, renderer
// and font registries, the root window and the input state.
type Runtime struct {
	log      *slog.Logger
	renderer render.Renderer
	looks    LookRegistry
	display  geom.Size

	windows   arena
	types     map[string]Factory
	mappings  map[string]FalagardMapping
	renderers map[string]RendererFactory

	fonts       map[string]font.Font
	defaultFont string
	images      *render.ImageManager

	root    Handle
	surface *render.Surface
	events  event.Set

	input  inputState
	cursor *Cursor
	clock  float32
}

// NewRuntime creates a runtime drawing through opts.Renderer
func NewRuntime(opts Options) (*Runtime, error) {
	if opts.Renderer == nil {
		return nil, guierr.InvalidRequest("runtime requires a renderer")
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	display := opts.DisplaySize
	if display.IsZero() {
		display = opts.Renderer.DisplaySize()
	} else {
		opts.Renderer.SetDisplaySize(display)
	}
	rt := &Runtime{
		log:       opts.Logger,
		renderer:  opts.Renderer,
		looks:     opts.Looks,
		display:   display,
		types:     make(map[string]Factory),
		mappings:  make(map[string]FalagardMapping),
		renderers: make(map[string]RendererFactory),
		fonts:     make(map[string]font.Font),
		images:    render.NewImageManager(),
		surface:   render.NewSurface(opts.Renderer.DefaultTarget()),
	}
	rt.cursor = newCursor(rt)
	rt.input.doubleClickTimeout = opts.DoubleClickTimeout
	if rt.input.doubleClickTimeout <= 0 {
		rt.input.doubleClickTimeout = 0.33
	}
	return rt, nil
}

func (rt *Runtime) Logger() *slog.Logger          { return rt.log }
func (rt *Runtime) Renderer() render.Renderer     { return rt.renderer }
func (rt *Runtime) Images() *render.ImageManager  { return rt.images }
func (rt *Runtime) Events() *event.Set            { return &rt.events }
func (rt *Runtime) Surface() *render.Surface      { return rt.surface }
func (rt *Runtime) DisplaySize() geom.Size        { return rt.display }
func (rt *Runtime) Looks() LookRegistry           { return rt.looks }
func (rt *Runtime) Clock() float32                { return rt.clock }
func (rt *Runtime) WindowCount() int              { return rt.windows.live }
func (rt *Runtime) screenRect() geom.Rect         { return geom.RectAt(geom.Vec2{}, rt.display) }
func (rt *Runtime) SetLooks(looks LookRegistry)   { rt.looks = looks }
func (rt *Runtime) lookupWindow(h Handle) *Window { return rt.windows.get(h) }

// SetDisplaySize resizes the display, marking every window's area stale
func (rt *Runtime) SetDisplaySize(sz geom.Size) {
	if sz == rt.display {
		return
	}
	rt.display = sz
	rt.renderer.SetDisplaySize(sz)
	if root := rt.Root(); root != nil {
		root.markDirty()
		root.Invalidate(true)
	}
	rt.cursor.notifyDisplaySizeChanged()
	rt.input.mousePos = rt.cursor.Position()
	rt.log.Debug("display size changed", "size", sz.String())
	rt.events.Fire(EventDisplaySizeChanged, &DisplayArgs{Size: sz})
}

// RegisterType registers the behaviour factory for a window type
func (rt *Runtime) RegisterType(name string, f Factory) error {
	if name == "" || f == nil {
		return guierr.InvalidRequest("window type needs a name and a factory")
	}
	if _, ok := rt.types[name]; ok {
		return guierr.InvalidRequest("window type %q is already registered", name)
	}
	rt.types[name] = f
	return nil
}

// IsTypeRegistered reports whether name can be created, directly or through
// a falagard mapping.
func (rt *Runtime) IsTypeRegistered(name string) bool {
	if _, ok := rt.types[name]; ok {
		return true
	}
	_, ok := rt.mappings[name]
	return ok
}

// TypeNames lists the registered base types and mapped types
func (rt *Runtime) TypeNames() []string {
	out := make([]string, 0, len(rt.types)+len(rt.mappings))
	for n := range rt.types {
		out = append(out, n)
	}
	for n := range rt.mappings {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// MapType binds a mapped type name to a base type, look and renderer
func (rt *Runtime) MapType(m FalagardMapping) error {
	if m.Type == "" || m.BaseType == "" {
		return guierr.InvalidRequest("falagard mapping needs a type and a base type")
	}
	if _, ok := rt.mappings[m.Type]; ok {
		return guierr.InvalidRequest("falagard mapping %q is already defined", m.Type)
	}
	rt.mappings[m.Type] = m
	return nil
}

// Mapping returns the falagard mapping of a type
func (rt *Runtime) Mapping(name string) (FalagardMapping, bool) {
	m, ok := rt.mappings[name]
	return m, ok
}

// RegisterRenderer registers a window renderer factory
func (rt *Runtime) RegisterRenderer(name string, f RendererFactory) error {
	if name == "" || f == nil {
		return guierr.InvalidRequest("window renderer needs a name and a factory")
	}
	if _, ok := rt.renderers[name]; ok {
		return guierr.InvalidRequest("window renderer %q is already registered", name)
	}
	rt.renderers[name] = f
	return nil
}

// RegisterFont makes f available by name
func (rt *Runtime) RegisterFont(f font.Font) error {
	if f == nil {
		return guierr.InvalidRequest("font is nil")
	}
	if _, ok := rt.fonts[f.Name()]; ok {
		return guierr.InvalidRequest("font %q is already registered", f.Name())
	}
	rt.fonts[f.Name()] = f
	if rt.defaultFont == "" {
		rt.defaultFont = f.Name()
	}
	return nil
}

// Font looks up a registered font
func (rt *Runtime) Font(name string) (font.Font, error) {
	f, ok := rt.fonts[name]
	if !ok {
		return nil, guierr.UnknownObject("font %q is not registered", name)
	}
	return f, nil
}

// SetDefaultFont selects the font used by windows without one
func (rt *Runtime) SetDefaultFont(name string) error {
	if _, ok := rt.fonts[name]; !ok {
		return guierr.UnknownObject("font %q is not registered", name)
	}
	rt.defaultFont = name
	return nil
}

// DefaultFont returns the default font, or nil when none is registered
func (rt *Runtime) DefaultFont() font.Font { return rt.fonts[rt.defaultFont] }

// CreateWindow creates a window of a registered or mapped type. Mapped
// types also receive their window renderer and look.
func (rt *Runtime) CreateWindow(typeName, name string) (*Window, error) {
	base := typeName
	mapping, mapped := rt.mappings[typeName]
	if mapped {
		base = mapping.BaseType
	}
	factory, ok := rt.types[base]
	if !ok {
		if mapped {
			return nil, guierr.UnknownObject("window type %q (base of %q) is not registered", base, typeName)
		}
		return nil, guierr.UnknownObject("window type %q is not registered", typeName)
	}
	if strings.Contains(name, "/") {
		return nil, guierr.InvalidRequest("window name %q must not contain '/'", name)
	}

	w := newWindow(rt, typeName, name)
	w.handle = rt.windows.alloc(w)
	w.behaviour = factory()
	if err := w.behaviour.Init(w); err != nil {
		rt.windows.release(w.handle)
		return nil, guierr.Generic(err, "initialising %s window %q", typeName, name)
	}
	if mapped {
		if mapping.Renderer != "" {
			if err := w.SetWindowRenderer(mapping.Renderer); err != nil {
				rt.discard(w)
				return nil, err
			}
		}
		if mapping.Look != "" {
			if err := w.SetLookNFeel(mapping.Look); err != nil {
				rt.discard(w)
				return nil, err
			}
		}
	}
	rt.log.Debug("window created", "type", typeName, "name", name, "handle", w.handle.String())
	return w, nil
}

// discard releases a window that failed construction
func (rt *Runtime) discard(w *Window) {
	if err := rt.DestroyWindow(w.handle); err != nil {
		rt.log.Warn("discarding window", "name", w.name, "error", err)
	}
}

// DestroyWindow destroys the window and its whole subtree. The window is
// detached from its parent first.
func (rt *Runtime) DestroyWindow(h Handle) error {
	w, err := rt.windows.lookup(h)
	if err != nil {
		return err
	}
	if w.destroying {
		return nil
	}
	if p := w.Parent(); p != nil {
		p.RemoveChild(w)
	}
	rt.destroy(w)
	return nil
}

func (rt *Runtime) destroy(w *Window) {
	w.destroying = true
	w.fire(EventDestructionStarted, &WindowArgs{Window: w.handle})

	for len(w.children) > 0 {
		c := rt.windows.get(w.children[len(w.children)-1])
		w.removeChild(c)
		if c != nil {
			rt.destroy(c)
		}
	}
	if w.look != "" && rt.looks != nil {
		rt.looks.RemoveLook(w, w.look)
	}
	if w.rw != nil {
		w.rw.Release()
		w.rw = nil
	}
	if w.geometry != nil {
		rt.renderer.DestroyGeometryBuffer(w.geometry)
	}
	rt.forget(w.handle)
	w.fire(EventDestroyed, &WindowArgs{Window: w.handle})
	w.events.Clear()
	rt.windows.release(w.handle)
}

// forget drops input state and the root reference held on h
func (rt *Runtime) forget(h Handle) {
	in := &rt.input
	if in.hover == h {
		in.hover = Handle{}
	}
	if in.capture == h {
		in.capture = Handle{}
	}
	if in.focus == h {
		in.focus = Handle{}
	}
	for i := range in.down {
		if in.down[i] == h {
			in.down[i] = Handle{}
		}
	}
	if rt.root == h {
		rt.root = Handle{}
	}
}

// Get resolves a handle. Handles of destroyed windows fail with
// ErrUnknownObject.
func (rt *Runtime) Get(h Handle) (*Window, error) { return rt.windows.lookup(h) }

// IsLive reports whether h refers to a live window
func (rt *Runtime) IsLive(h Handle) bool { return rt.windows.get(h) != nil }

// SetRootWindow makes w the root of the drawn tree; nil clears it
func (rt *Runtime) SetRootWindow(w *Window) {
	var h Handle
	if w != nil {
		h = w.handle
	}
	if h == rt.root {
		return
	}
	rt.root = h
	if w != nil {
		w.markDirty()
		w.Invalidate(true)
	}
	rt.events.Fire(EventRootChanged, &WindowArgs{Window: h})
}

// Root returns the root window, or nil
func (rt *Runtime) Root() *Window { return rt.windows.get(rt.root) }

// Window finds a window by path. The first element names the root.
func (rt *Runtime) Window(path string) (*Window, error) {
	root := rt.Root()
	if root == nil {
		return nil, guierr.UnknownObject("no root window to resolve %q", path)
	}
	first, rest, _ := strings.Cut(path, "/")
	if first != root.name {
		return nil, guierr.UnknownObject("window %q not found: root is %q", path, root.name)
	}
	if rest == "" {
		return root, nil
	}
	return root.Child(rest)
}

// Walk visits the tree from the root in document order until fn returns
// false.
func (rt *Runtime) Walk(fn func(w *Window) bool) {
	if root := rt.Root(); root != nil {
		root.Walk(fn)
	}
}

// InjectTimePulse advances time by elapsed seconds: TimePulse subscribers
// run first, then every window kind implementing Updater. A failing window
// is logged and skipped; the joined failures are returned.
func (rt *Runtime) InjectTimePulse(elapsed float32) error {
	if elapsed < 0 {
		return guierr.InvalidRequest("time pulse %g is negative", elapsed)
	}
	rt.clock += elapsed
	rt.input.sinceClick += elapsed
	rt.events.Fire(EventTimePulse, &TimeArgs{Elapsed: elapsed})

	var errs []error
	rt.Walk(func(w *Window) bool {
		if u, ok := w.behaviour.(Updater); ok {
			if err := u.Update(w, elapsed); err != nil {
				rt.log.Warn("window update failed", "window", w.Path(), "error", err)
				errs = append(errs, err)
			}
		}
		w.fire(EventUpdated, &TimeArgs{Elapsed: elapsed})
		return true
	})
	return errors.Join(errs...)
}
