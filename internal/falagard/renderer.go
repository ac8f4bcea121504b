package falagard

import (
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/gui"
)

// RendererName is the name the look-driven window renderer registers as
const RendererName = "Falagard/Default"

// ClientArea is the named area that defines a window's inner rect
const ClientArea = "Client"

// Renderer draws a window from its assigned look
type Renderer struct {
	looks *Manager
}

var _ gui.WindowRenderer = (*Renderer)(nil)

// NewRenderer returns a renderer resolving looks through m
func NewRenderer(m *Manager) *Renderer { return &Renderer{looks: m} }

// Register makes m the runtime's look registry and registers the renderer
func Register(rt *gui.Runtime, m *Manager) error {
	rt.SetLooks(m)
	return rt.RegisterRenderer(RendererName, func() gui.WindowRenderer { return NewRenderer(m) })
}

func (r *Renderer) Name() string { return RendererName }

// StateName returns the state a window is drawn in: the kind's choice when
// it implements gui.Drawable, otherwise Enabled or Disabled.
func StateName(w *gui.Window) string {
	if d, ok := w.Behaviour().(gui.Drawable); ok {
		return d.State(w)
	}
	if w.IsEffectiveDisabled() {
		return "Disabled"
	}
	return "Enabled"
}

func (r *Renderer) look(w *gui.Window) (*WidgetLook, bool) {
	if w.LookNFeel() == "" {
		return nil, false
	}
	l, err := r.looks.Look(w.LookNFeel())
	return l, err == nil
}

// Render draws the window's current state. A look without imagery for the
// state draws nothing.
func (r *Renderer) Render(w *gui.Window) error {
	l, ok := r.look(w)
	if !ok {
		return nil
	}
	return l.render(w, StateName(w))
}

// UnclippedInnerRect is the look's Client area in display pixels
func (r *Renderer) UnclippedInnerRect(w *gui.Window) (geom.Rect, bool) {
	l, ok := r.look(w)
	if !ok || !l.IsNamedAreaPresent(ClientArea) {
		return geom.Rect{}, false
	}
	area, err := NewContext(w, l).namedArea(l, ClientArea)
	if err != nil {
		w.Runtime().Logger().Warn("client area unavailable", "window", w.Path(), "look", l.Name, "error", err)
		return geom.Rect{}, false
	}
	return area.Offset(w.UnclippedOuterRect().Min), true
}

// PerformChildWindowLayout positions the look's child widgets
func (r *Renderer) PerformChildWindowLayout(w *gui.Window) error {
	l, ok := r.look(w)
	if !ok {
		return nil
	}
	widgets, err := l.WidgetComponents(true)
	if err != nil {
		return err
	}
	ctx := NewContext(w, l)
	for _, c := range widgets {
		if err := c.Layout(ctx); err != nil {
			return err
		}
	}
	return nil
}
