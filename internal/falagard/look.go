package falagard

import (
	"errors"
	"fmt"
	"sort"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/property"
	"github.com/1broseidon/cegui/internal/udim"
)

// NamedArea is an area a look exposes by name, such as "Client"
type NamedArea struct {
	Name string
	Area ComponentArea
}

// PropertyInitializer sets a property when a look is assigned
type PropertyInitializer struct {
	Property string
	Value    string
}

// PropertyDefinition adds a typed property to windows using a look
type PropertyDefinition = property.Definition

// WidgetComponent is a child window a look creates and positions
type WidgetComponent struct {
	NameSuffix string
	Type       string
	Look       string
	Renderer   string
	Area       ComponentArea
	HAlign     gui.HAlign
	VAlign     gui.VAlign
	Properties []PropertyInitializer
}

// Create adds the child window to owner
func (c *WidgetComponent) Create(owner *gui.Window) error {
	rt := owner.Runtime()
	child, err := rt.CreateWindow(c.Type, c.NameSuffix)
	if err != nil {
		return fmt.Errorf("widget component %q: %w", c.NameSuffix, err)
	}
	child.SetAutoWindow(true)
	fail := func(err error) error {
		_ = rt.DestroyWindow(child.Handle())
		return fmt.Errorf("widget component %q: %w", c.NameSuffix, err)
	}
	if c.Renderer != "" {
		if err := child.SetWindowRenderer(c.Renderer); err != nil {
			return fail(err)
		}
	}
	if c.Look != "" {
		if err := child.SetLookNFeel(c.Look); err != nil {
			return fail(err)
		}
	}
	child.SetHorizontalAlignment(c.HAlign)
	child.SetVerticalAlignment(c.VAlign)
	for _, p := range c.Properties {
		if err := child.SetProperty(p.Property, p.Value); err != nil {
			return fail(err)
		}
	}
	if err := owner.AddChild(child); err != nil {
		return fail(err)
	}
	return nil
}

// Layout positions the child within owner using the component area. The
// area is relative to owner's outer rect, so it is shifted into the
// content area the child resolves against.
func (c *WidgetComponent) Layout(ctx *Context) error {
	owner := ctx.Window
	child, err := owner.Child(c.NameSuffix)
	if err != nil {
		return err
	}
	r, err := c.Area.PixelRect(ctx)
	if err != nil {
		return fmt.Errorf("widget component %q: %w", c.NameSuffix, err)
	}
	shift := owner.UnclippedOuterRect().Min.Sub(owner.ChildContentArea(child.IsNonClient()).Min)
	r = r.Offset(shift)
	child.SetArea(udim.AbsVec(r.Min.X, r.Min.Y), udim.AbsSize(r.Width(), r.Height()))
	return nil
}

// Destroy removes the child from owner, if it still exists
func (c *WidgetComponent) Destroy(owner *gui.Window) {
	if child, err := owner.Child(c.NameSuffix); err == nil {
		_ = owner.Runtime().DestroyWindow(child.Handle())
	}
}

// WidgetLook is a named skin: imagery per state, named areas, child
// widgets and the properties windows using it receive.
type WidgetLook struct {
	Name     string
	Inherits string

	manager      *Manager
	sections     map[string]*ImagerySection
	states       map[string]*StateImagery
	areas        map[string]*NamedArea
	widgets      []*WidgetComponent
	initializers []PropertyInitializer
	definitions  []PropertyDefinition
}

// NewWidgetLook returns an empty look
func NewWidgetLook(name, inherits string) *WidgetLook {
	return &WidgetLook{
		Name:     name,
		Inherits: inherits,
		sections: make(map[string]*ImagerySection),
		states:   make(map[string]*StateImagery),
		areas:    make(map[string]*NamedArea),
	}
}

func (l *WidgetLook) AddImagerySection(s *ImagerySection) { l.sections[s.Name] = s }
func (l *WidgetLook) AddStateImagery(s *StateImagery)     { l.states[s.Name] = s }
func (l *WidgetLook) AddNamedArea(a *NamedArea)           { l.areas[a.Name] = a }

// AddWidgetComponent adds or replaces the component with the same suffix
func (l *WidgetLook) AddWidgetComponent(c *WidgetComponent) {
	for i, w := range l.widgets {
		if w.NameSuffix == c.NameSuffix {
			l.widgets[i] = c
			return
		}
	}
	l.widgets = append(l.widgets, c)
}

// AddPropertyInitializer appends an initializer; order is preserved
func (l *WidgetLook) AddPropertyInitializer(p PropertyInitializer) {
	l.initializers = append(l.initializers, p)
}

// AddPropertyDefinition adds or replaces a definition with the same name
func (l *WidgetLook) AddPropertyDefinition(d PropertyDefinition) {
	for i, o := range l.definitions {
		if o.Name == d.Name {
			l.definitions[i] = d
			return
		}
	}
	l.definitions = append(l.definitions, d)
}

// chain returns the look followed by its ancestors. With inherited false
// only the look itself is returned.
func (l *WidgetLook) chain(inherited bool) ([]*WidgetLook, error) {
	out := []*WidgetLook{l}
	if !inherited {
		return out, nil
	}
	seen := map[string]bool{l.Name: true}
	cur := l
	for cur.Inherits != "" {
		if seen[cur.Inherits] {
			return nil, guierr.InvalidRequest("WidgetLook %q has an inheritance cycle through %q", l.Name, cur.Inherits)
		}
		if l.manager == nil {
			return nil, guierr.UnknownObject("WidgetLook %q inherits %q, which is not managed", cur.Name, cur.Inherits)
		}
		parent, err := l.manager.Look(cur.Inherits)
		if err != nil {
			return nil, fmt.Errorf("WidgetLook %q inherits: %w", cur.Name, err)
		}
		seen[parent.Name] = true
		out = append(out, parent)
		cur = parent
	}
	return out, nil
}

func lookup[T any](l *WidgetLook, inherited bool, kind, name string, pick func(*WidgetLook) (T, bool)) (T, error) {
	var zero T
	chain, err := l.chain(inherited)
	if err != nil {
		return zero, err
	}
	for _, c := range chain {
		if v, ok := pick(c); ok {
			return v, nil
		}
	}
	return zero, guierr.UnknownObject("%s with name '%s' was not found in WidgetLook '%s'", kind, name, l.Name)
}

// ImagerySection finds a section, searching ancestors when inherited
func (l *WidgetLook) ImagerySection(name string, inherited bool) (*ImagerySection, error) {
	return lookup(l, inherited, "ImagerySection", name, func(c *WidgetLook) (*ImagerySection, bool) {
		s, ok := c.sections[name]
		return s, ok
	})
}

// StateImagery finds a state, searching ancestors when inherited
func (l *WidgetLook) StateImagery(name string, inherited bool) (*StateImagery, error) {
	return lookup(l, inherited, "StateImagery", name, func(c *WidgetLook) (*StateImagery, bool) {
		s, ok := c.states[name]
		return s, ok
	})
}

// NamedArea finds an area, searching ancestors when inherited
func (l *WidgetLook) NamedArea(name string, inherited bool) (*NamedArea, error) {
	return lookup(l, inherited, "NamedArea", name, func(c *WidgetLook) (*NamedArea, bool) {
		a, ok := c.areas[name]
		return a, ok
	})
}

// WidgetComponent finds a child widget by suffix
func (l *WidgetLook) WidgetComponent(suffix string, inherited bool) (*WidgetComponent, error) {
	return lookup(l, inherited, "WidgetComponent", suffix, func(c *WidgetLook) (*WidgetComponent, bool) {
		for _, w := range c.widgets {
			if w.NameSuffix == suffix {
				return w, true
			}
		}
		return nil, false
	})
}

// PropertyInitializer finds the initializer for a property
func (l *WidgetLook) PropertyInitializer(prop string, inherited bool) (PropertyInitializer, error) {
	return lookup(l, inherited, "PropertyInitializer", prop, func(c *WidgetLook) (PropertyInitializer, bool) {
		for i := len(c.initializers) - 1; i >= 0; i-- {
			if c.initializers[i].Property == prop {
				return c.initializers[i], true
			}
		}
		return PropertyInitializer{}, false
	})
}

func (l *WidgetLook) IsStateImageryPresent(name string) bool {
	_, err := l.StateImagery(name, true)
	return err == nil
}

func (l *WidgetLook) IsNamedAreaPresent(name string) bool {
	_, err := l.NamedArea(name, true)
	return err == nil
}

// StateNames returns the states the look and its ancestors define, sorted
func (l *WidgetLook) StateNames(inherited bool) ([]string, error) {
	chain, err := l.chain(inherited)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, c := range chain {
		for n := range c.states {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// NamedAreaNames returns the area names, sorted
func (l *WidgetLook) NamedAreaNames(inherited bool) ([]string, error) {
	chain, err := l.chain(inherited)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, c := range chain {
		for n := range c.areas {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// WidgetComponents returns child widgets, ancestors first; a derived look
// replaces an inherited component with the same suffix in place.
func (l *WidgetLook) WidgetComponents(inherited bool) ([]*WidgetComponent, error) {
	chain, err := l.chain(inherited)
	if err != nil {
		return nil, err
	}
	var out []*WidgetComponent
	index := make(map[string]int)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, w := range chain[i].widgets {
			if at, ok := index[w.NameSuffix]; ok {
				out[at] = w
				continue
			}
			index[w.NameSuffix] = len(out)
			out = append(out, w)
		}
	}
	return out, nil
}

// PropertyInitializers returns initializers in application order:
// ancestors first, each in declaration order.
func (l *WidgetLook) PropertyInitializers(inherited bool) ([]PropertyInitializer, error) {
	chain, err := l.chain(inherited)
	if err != nil {
		return nil, err
	}
	var out []PropertyInitializer
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, chain[i].initializers...)
	}
	return out, nil
}

// PropertyDefinitions returns definitions, ancestors first; a derived
// definition replaces an inherited one of the same name.
func (l *WidgetLook) PropertyDefinitions(inherited bool) ([]PropertyDefinition, error) {
	chain, err := l.chain(inherited)
	if err != nil {
		return nil, err
	}
	var out []PropertyDefinition
	index := make(map[string]int)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, d := range chain[i].definitions {
			if at, ok := index[d.Name]; ok {
				out[at] = d
				continue
			}
			index[d.Name] = len(out)
			out = append(out, d)
		}
	}
	return out, nil
}

// render draws the named state into w's geometry
func (l *WidgetLook) render(w *gui.Window, state string) error {
	if _, err := l.chain(true); err != nil {
		return err
	}
	si, err := l.StateImagery(state, true)
	if err != nil {
		if errors.Is(err, guierr.ErrUnknownObject) {
			return nil
		}
		return err
	}
	w.SetGeometryClippedToDisplay(si.ClippedToDisplay)
	ds := drawState{
		ctx:     NewContext(w, l),
		buf:     w.Geometry(),
		origin:  w.UnclippedOuterRect().Min,
		colours: geom.Solid(geom.White),
	}
	return si.render(ds)
}
