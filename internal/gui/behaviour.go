package gui

import (
	"github.com/1broseidon/cegui/internal/geom"
)

// Behaviour is the per-kind logic attached to a window at creation. Kinds
// opt into further capabilities by implementing the interfaces below.
type Behaviour interface {
	// Init defines the kind's properties and subscriptions on w.
	Init(w *Window) error
}

// Factory creates the behaviour of a registered window type
type Factory func() Behaviour

// Drawable reports the state name a window renderer draws
type Drawable interface {
	State(w *Window) string
}

// Clickable reacts to mouse buttons before the events bubble. Returning true
// marks the input handled.
type Clickable interface {
	MouseButtonDown(w *Window, b MouseButton) bool
	MouseButtonUp(w *Window, b MouseButton) bool
}

// KeyHandler reacts to keys while the window has input focus
type KeyHandler interface {
	KeyDown(w *Window, k Key) bool
}

// Focusable decides whether a window may take input focus from clicks and
// navigation. Kinds without it only take focus through Runtime.Focus.
type Focusable interface {
	CanFocus(w *Window) bool
}

// ChildAcceptor vetoes children before they are attached. AddChild returns
// the error and leaves both windows unchanged.
type ChildAcceptor interface {
	AcceptChild(w, child *Window) error
}

// Updater runs once per time pulse
type Updater interface {
	Update(w *Window, elapsed float32) error
}

// ContentAreaProvider overrides the area children are positioned in
type ContentAreaProvider interface {
	ChildContentArea(w *Window, nonClient bool) geom.Rect
}

// Layouter arranges children whenever the window lays out its child windows
type Layouter interface {
	Layout(w *Window) error
}

// WindowRenderer produces a window's geometry, usually from its look
type WindowRenderer interface {
	Name() string
	// Render fills w.Geometry() for the current state.
	Render(w *Window) error
	// UnclippedInnerRect returns the client area when the renderer defines
	// one.
	UnclippedInnerRect(w *Window) (geom.Rect, bool)
	// PerformChildWindowLayout positions child widgets owned by the look.
	PerformChildWindowLayout(w *Window) error
}

// RendererFactory creates a window renderer instance for one window
type RendererFactory func() WindowRenderer

// LookRegistry assigns and removes looks. It is implemented by the skin
// manager so the window tree never depends on it directly.
type LookRegistry interface {
	IsDefined(look string) bool
	ApplyLook(w *Window, look string) error
	RemoveLook(w *Window, look string)
}

// FalagardMapping binds a type name to a base kind, a look and a renderer
type FalagardMapping struct {
	Type     string
	BaseType string
	Look     string
	Renderer string
}
