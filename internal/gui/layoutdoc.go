package gui

import (
	"errors"
	"fmt"
)

// LayoutDoc describes a window subtree as stored in a layout file
type LayoutDoc struct {
	Type       string          `yaml:"type"`
	Name       string          `yaml:"name"`
	Properties []PropertyEntry `yaml:"properties,omitempty"`
	// AutoWindows overrides properties of child windows a look creates,
	// addressed by path below this window.
	AutoWindows []AutoWindowDoc `yaml:"auto_windows,omitempty"`
	Children    []LayoutDoc     `yaml:"children,omitempty"`
}

// PropertyEntry is one property assignment; entries apply in order
type PropertyEntry struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// AutoWindowDoc carries property overrides for a look-created child
type AutoWindowDoc struct {
	Path       string          `yaml:"path"`
	Properties []PropertyEntry `yaml:"properties,omitempty"`
}

// LoadLayout creates the window tree described by doc and returns the
// handle of its top window. On any failure the windows created so far are
// destroyed.
func (rt *Runtime) LoadLayout(doc LayoutDoc) (Handle, error) {
	w, err := rt.buildLayout(doc)
	if err != nil {
		if w != nil {
			rt.destroy(w)
		}
		return Handle{}, err
	}
	return w.handle, nil
}

// buildLayout returns the window it created even on failure so the caller
// can destroy it with everything attached below.
func (rt *Runtime) buildLayout(doc LayoutDoc) (*Window, error) {
	w, err := rt.CreateWindow(doc.Type, doc.Name)
	if err != nil {
		return nil, fmt.Errorf("layout window %q: %w", doc.Name, err)
	}

	for _, p := range doc.Properties {
		if err := w.SetProperty(p.Name, p.Value); err != nil {
			return w, fmt.Errorf("layout window %q property %q: %w", doc.Name, p.Name, err)
		}
	}
	for _, c := range doc.Children {
		cw, err := rt.buildLayout(c)
		if cw != nil {
			if aerr := w.AddChild(cw); aerr != nil {
				rt.destroy(cw)
				return w, errors.Join(err, aerr)
			}
		}
		if err != nil {
			return w, err
		}
	}
	for _, aw := range doc.AutoWindows {
		target, err := w.Child(aw.Path)
		if err != nil {
			return w, fmt.Errorf("layout window %q auto window: %w", doc.Name, err)
		}
		for _, p := range aw.Properties {
			if err := target.SetProperty(p.Name, p.Value); err != nil {
				return w, fmt.Errorf("layout window %q auto window %q property %q: %w", doc.Name, aw.Path, p.Name, err)
			}
		}
	}
	return w, nil
}

// SaveLayout writes the subtree of h back as a LayoutDoc. Only properties
// differing from their defaults are recorded; children created by a look
// are recorded as auto window overrides.
func (rt *Runtime) SaveLayout(h Handle) (LayoutDoc, error) {
	w, err := rt.windows.lookup(h)
	if err != nil {
		return LayoutDoc{}, err
	}
	return w.layoutDoc(), nil
}

func (w *Window) layoutDoc() LayoutDoc {
	doc := LayoutDoc{Type: w.typ, Name: w.name, Properties: w.changedProperties()}
	for _, c := range w.Children() {
		if c.autoWindow {
			if props := c.changedProperties(); len(props) > 0 {
				doc.AutoWindows = append(doc.AutoWindows, AutoWindowDoc{Path: c.name, Properties: props})
			}
			continue
		}
		doc.Children = append(doc.Children, c.layoutDoc())
	}
	return doc
}

// changedProperties lists non-default properties. Properties that trigger
// side effects on write come first so a reload reproduces the window.
func (w *Window) changedProperties() []PropertyEntry {
	var out []PropertyEntry
	for _, name := range []string{"WindowRenderer", "LookNFeel"} {
		if v, _ := w.Property(name); v != "" && !w.lookManaged(name) {
			out = append(out, PropertyEntry{Name: name, Value: v})
		}
	}
	for _, name := range BuiltinPropertyNames() {
		if name == "WindowRenderer" || name == "LookNFeel" || w.IsPropertyDefault(name) {
			continue
		}
		v, _ := w.Property(name)
		out = append(out, PropertyEntry{Name: name, Value: v})
	}
	for _, name := range w.props.Names() {
		if _, ok := w.props.Definition(name); ok && w.props.IsDefault(name) {
			continue
		}
		v, _ := w.Property(name)
		out = append(out, PropertyEntry{Name: name, Value: v})
	}
	return out
}

// lookManaged reports whether a skin property value comes from the type
// mapping, so CreateWindow restores it without being told.
func (w *Window) lookManaged(name string) bool {
	m, ok := w.rt.mappings[w.typ]
	if !ok {
		return false
	}
	switch name {
	case "WindowRenderer":
		return w.renderer != nil && m.Renderer == w.renderer.Name()
	case "LookNFeel":
		return m.Look == w.look
	}
	return false
}
