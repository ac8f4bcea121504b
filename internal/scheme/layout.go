package scheme

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/cegui/internal/animation"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/guierr"
)

type layoutFile struct {
	Window     gui.LayoutDoc `yaml:"window"`
	Animations []bindingDoc  `yaml:"animations,omitempty"`
}

// bindingDoc plays an animation on a window of the layout. Target is a
// path below the layout's top window; empty targets the top window.
type bindingDoc struct {
	Animation string `yaml:"animation"`
	Target    string `yaml:"target,omitempty"`
}

// Layout is a loaded window tree and the animation instances bound to it
type Layout struct {
	Root      gui.Handle
	Instances []*animation.Instance
}

// LoadLayout builds the window tree of a layout file. The tree is not
// attached anywhere; callers add it to a parent or make it the root.
func (l *Loader) LoadLayout(file, group string) (*Layout, error) {
	var doc layoutFile
	if err := l.readDoc("layout", file, group, &doc); err != nil {
		return nil, err
	}
	h, err := l.rt.LoadLayout(doc.Window)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", file, err)
	}
	out := &Layout{Root: h}
	if err := l.bindAnimations(out, doc.Animations); err != nil {
		for _, inst := range out.Instances {
			_ = l.anims.DestroyInstance(inst)
		}
		_ = l.rt.DestroyWindow(h)
		return nil, fmt.Errorf("layout %s: %w", file, err)
	}
	l.log.Debug("layout loaded", "file", file, "window", doc.Window.Name, "animations", len(out.Instances))
	return out, nil
}

func (l *Loader) bindAnimations(out *Layout, bindings []bindingDoc) error {
	if len(bindings) == 0 {
		return nil
	}
	if l.anims == nil {
		return guierr.InvalidRequest("layout binds animations but the loader has no animation manager")
	}
	top, err := l.rt.Get(out.Root)
	if err != nil {
		return err
	}
	for _, b := range bindings {
		target := top
		if b.Target != "" {
			if target, err = top.Child(b.Target); err != nil {
				return fmt.Errorf("animation %q: %w", b.Animation, err)
			}
		}
		inst, err := l.anims.Instantiate(b.Animation)
		if err != nil {
			return err
		}
		out.Instances = append(out.Instances, inst)
		inst.SetTargetWindow(target)
	}
	return nil
}

// WriteLayout writes the subtree of h as a layout file
func WriteLayout(w io.Writer, rt *gui.Runtime, h gui.Handle) error {
	doc, err := rt.SaveLayout(h)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(layoutFile{Window: doc}); err != nil {
		return fmt.Errorf("encoding layout: %w", err)
	}
	return enc.Close()
}
