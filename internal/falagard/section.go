package falagard

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/1broseidon/cegui/internal/geom"
)

// ImagerySection groups frames, images and texts drawn together
type ImagerySection struct {
	Name string
	// Colouring holds the master colours applied to every component.
	Colouring
	Frames []FrameComponent
	Images []ImageryComponent
	Texts  []TextComponent
}

// render draws the section. modulate, when non-nil, multiplies the master
// colours; the window's effective alpha applies last.
func (s *ImagerySection) render(ds drawState, modulate *geom.ColourRect) error {
	master, err := s.resolve(ds.ctx)
	if err != nil {
		return fmt.Errorf("ImagerySection %q: %w", s.Name, err)
	}
	if modulate != nil {
		master = master.Mul(*modulate)
	}
	ds.colours = master.ModulateAlpha(ds.ctx.Window.EffectiveAlpha())

	for _, c := range s.Frames {
		if err := c.render(ds); err != nil {
			return fmt.Errorf("ImagerySection %q frame: %w", s.Name, err)
		}
	}
	for _, c := range s.Images {
		if err := c.render(ds); err != nil {
			return fmt.Errorf("ImagerySection %q image: %w", s.Name, err)
		}
	}
	for _, c := range s.Texts {
		if err := c.render(ds); err != nil {
			return fmt.Errorf("ImagerySection %q text: %w", s.Name, err)
		}
	}
	return nil
}

// SectionSpecification refers to an imagery section from a layer. When a
// control property is set the section is drawn only while that property
// (of the window or the named child) is true, or equals ControlValue when
// one is given.
type SectionSpecification struct {
	Section string
	// Look owns the section; empty means the look being drawn.
	Look string
	Colouring
	ControlProperty string
	ControlValue    string
	ControlWidget   string
}

func (spec SectionSpecification) enabled(ctx *Context) (bool, error) {
	if spec.ControlProperty == "" {
		return true, nil
	}
	w, err := ctx.sourceWindow(spec.ControlWidget)
	if err != nil {
		return false, err
	}
	v, err := w.Property(spec.ControlProperty)
	if err != nil {
		return false, err
	}
	if spec.ControlValue != "" {
		return v == spec.ControlValue, nil
	}
	b, _ := strconv.ParseBool(v)
	return b, nil
}

func (spec SectionSpecification) render(ds drawState) error {
	ok, err := spec.enabled(ds.ctx)
	if err != nil || !ok {
		return err
	}
	look := ds.ctx.Look
	if spec.Look != "" && spec.Look != look.Name {
		if look.manager == nil {
			return fmt.Errorf("section %q: WidgetLook %q unavailable", spec.Section, spec.Look)
		}
		if look, err = look.manager.Look(spec.Look); err != nil {
			return err
		}
	}
	section, err := look.ImagerySection(spec.Section, true)
	if err != nil {
		return err
	}
	var modulate *geom.ColourRect
	if spec.Colours != nil || spec.ColoursProperty != "" {
		cr, err := spec.resolve(ds.ctx)
		if err != nil {
			return err
		}
		modulate = &cr
	}
	return section.render(ds, modulate)
}

// LayerSpecification is a set of sections drawn at one priority
type LayerSpecification struct {
	Priority int
	Sections []SectionSpecification
}

// StateImagery is what a window draws in one named state
type StateImagery struct {
	Name string
	// ClippedToDisplay clips the state's geometry to the display instead of
	// the window.
	ClippedToDisplay bool
	Layers           []LayerSpecification
}

// render draws the layers in ascending priority; equal priorities keep
// declaration order.
func (si *StateImagery) render(ds drawState) error {
	layers := append([]LayerSpecification(nil), si.Layers...)
	sort.SliceStable(layers, func(i, j int) bool { return layers[i].Priority < layers[j].Priority })
	for _, l := range layers {
		for _, spec := range l.Sections {
			if err := spec.render(ds); err != nil {
				return fmt.Errorf("StateImagery %q: %w", si.Name, err)
			}
		}
	}
	return nil
}
