package platform

import (
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/gui"
)

// WindowInfo describes one window of the tree for inspection
type WindowInfo struct {
	Path     string    `json:"path" yaml:"path"`
	Type     string    `json:"type" yaml:"type"`
	Look     string    `json:"look,omitempty" yaml:"look,omitempty"`
	Text     string    `json:"text,omitempty" yaml:"text,omitempty"`
	Depth    int       `json:"depth" yaml:"depth"`
	Rect     geom.Rect `json:"-" yaml:"-"`
	Clip     geom.Rect `json:"-" yaml:"-"`
	Alpha    float32   `json:"alpha" yaml:"alpha"`
	Visible  bool      `json:"visible" yaml:"visible"`
	Disabled bool      `json:"disabled" yaml:"disabled"`
	Focused  bool      `json:"focused" yaml:"focused"`
	Auto     bool      `json:"auto" yaml:"auto"`
}

// Snapshot lists the windows under the root in document order
func Snapshot(rt *gui.Runtime) []WindowInfo {
	root := rt.Root()
	if root == nil {
		return nil
	}
	var focused gui.Handle
	if f := rt.Focused(); f != nil {
		focused = f.Handle()
	}
	var out []WindowInfo
	var visit func(w *gui.Window, depth int)
	visit = func(w *gui.Window, depth int) {
		out = append(out, Describe(w, depth, w.Handle() == focused))
		for _, c := range w.Children() {
			visit(c, depth+1)
		}
	}
	visit(root, 0)
	return out
}

// Describe summarises w
func Describe(w *gui.Window, depth int, focused bool) WindowInfo {
	return WindowInfo{
		Path:     w.Path(),
		Type:     w.Type(),
		Look:     w.LookNFeel(),
		Text:     w.Text(),
		Depth:    depth,
		Rect:     w.UnclippedOuterRect(),
		Clip:     w.PixelRect(),
		Alpha:    w.EffectiveAlpha(),
		Visible:  w.IsEffectiveVisible(),
		Disabled: w.IsEffectiveDisabled(),
		Focused:  focused,
		Auto:     w.IsAutoWindow(),
	}
}

// Properties returns the built-in attributes of w and the values in its
// property bag
func Properties(w *gui.Window) map[string]string {
	names := append(gui.BuiltinPropertyNames(), w.Props().Names()...)
	out := make(map[string]string, len(names))
	for _, n := range names {
		if v, err := w.Property(n); err == nil {
			out[n] = v
		}
	}
	return out
}
