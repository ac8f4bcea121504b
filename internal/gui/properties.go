package gui

import (
	"sort"
	"strconv"

	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/property"
	"github.com/1broseidon/cegui/internal/udim"
)

// builtin is a window attribute reachable through the property interface
type builtin struct {
	get func(w *Window) string
	set func(w *Window, s string) error
	def string
}

func boolProp(get func(*Window) bool, set func(*Window, bool), def bool) builtin {
	return builtin{
		get: func(w *Window) string { return strconv.FormatBool(get(w)) },
		set: func(w *Window, s string) error {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return guierr.InvalidRequest("malformed bool %q", s)
			}
			set(w, b)
			return nil
		},
		def: strconv.FormatBool(def),
	}
}

func floatProp(get func(*Window) float32, set func(*Window, float32), def float32) builtin {
	return builtin{
		get: func(w *Window) string { return formatFloat(get(w)) },
		set: func(w *Window, s string) error {
			f, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return guierr.InvalidRequest("malformed float %q", s)
			}
			set(w, float32(f))
			return nil
		},
		def: formatFloat(def),
	}
}

func sizeProp(get func(*Window) udim.USize, set func(*Window, udim.USize)) builtin {
	return builtin{
		get: func(w *Window) string { return get(w).String() },
		set: func(w *Window, s string) error {
			v, err := udim.ParseUSize(s)
			if err != nil {
				return err
			}
			set(w, v)
			return nil
		},
		def: udim.USize{}.String(),
	}
}

func formatFloat(f float32) string { return strconv.FormatFloat(float64(f), 'g', -1, 32) }

var builtins = map[string]builtin{
	"Alpha":                        floatProp((*Window).Alpha, (*Window).SetAlpha, 1),
	"Visible":                      boolProp((*Window).IsVisible, (*Window).SetVisible, true),
	"Disabled":                     boolProp((*Window).IsDisabled, (*Window).SetDisabled, false),
	"ClippedByParent":              boolProp((*Window).IsClippedByParent, (*Window).SetClippedByParent, true),
	"InheritsAlpha":                boolProp((*Window).InheritsAlpha, (*Window).SetInheritsAlpha, true),
	"AlwaysOnTop":                  boolProp((*Window).IsAlwaysOnTop, (*Window).SetAlwaysOnTop, false),
	"RiseOnClick":                  boolProp((*Window).RiseOnClick, (*Window).SetRiseOnClick, true),
	"MousePassThroughEnabled":      boolProp((*Window).IsMousePassThrough, (*Window).SetMousePassThrough, false),
	"ZOrderingEnabled":             boolProp((*Window).IsZOrderingEnabled, (*Window).SetZOrderingEnabled, true),
	"WantsMultiClickEvents":        boolProp((*Window).WantsMultiClickEvents, (*Window).SetWantsMultiClickEvents, true),
	"MouseInputPropagationEnabled": boolProp((*Window).MouseInputPropagation, (*Window).SetMouseInputPropagation, false),
	"AutoRenderingSurface":         boolProp((*Window).AutoRenderingSurface, (*Window).SetAutoRenderingSurface, false),
	"NonClient":                    boolProp((*Window).IsNonClient, (*Window).SetNonClient, false),
	"PixelAligned":                 boolProp((*Window).IsPixelAligned, (*Window).SetPixelAligned, true),
	"AspectRatio":                  floatProp((*Window).AspectRatio, (*Window).SetAspectRatio, 1),
	"MinSize":                      sizeProp((*Window).MinSize, (*Window).SetMinSize),
	"MaxSize":                      sizeProp((*Window).MaxSize, (*Window).SetMaxSize),
	"Size":                         sizeProp((*Window).Size, (*Window).SetSize),
	"Position": {
		get: func(w *Window) string { return w.Position().String() },
		set: func(w *Window, s string) error {
			v, err := udim.ParseUVector2(s)
			if err != nil {
				return err
			}
			w.SetPosition(v)
			return nil
		},
		def: udim.UVector2{}.String(),
	},
	"Area": {
		get: func(w *Window) string { return w.Area().String() },
		set: func(w *Window, s string) error {
			v, err := udim.ParseURect(s)
			if err != nil {
				return err
			}
			w.setArea(v)
			return nil
		},
		def: udim.URect{}.String(),
	},
	"Margin": {
		get: func(w *Window) string { return w.Margin().String() },
		set: func(w *Window, s string) error {
			v, err := udim.ParseUBox(s)
			if err != nil {
				return err
			}
			w.SetMargin(v)
			return nil
		},
		def: udim.UBox{}.String(),
	},
	"HorizontalAlignment": {
		get: func(w *Window) string { return w.hAlign.String() },
		set: func(w *Window, s string) error {
			a, err := ParseHAlign(s)
			if err != nil {
				return err
			}
			w.SetHorizontalAlignment(a)
			return nil
		},
		def: HAlignLeft.String(),
	},
	"VerticalAlignment": {
		get: func(w *Window) string { return w.vAlign.String() },
		set: func(w *Window, s string) error {
			a, err := ParseVAlign(s)
			if err != nil {
				return err
			}
			w.SetVerticalAlignment(a)
			return nil
		},
		def: VAlignTop.String(),
	},
	"AspectMode": {
		get: func(w *Window) string { return w.aspectMode.String() },
		set: func(w *Window, s string) error {
			m, err := ParseAspectMode(s)
			if err != nil {
				return err
			}
			w.SetAspectMode(m)
			return nil
		},
		def: AspectIgnore.String(),
	},
	"Text": {
		get: (*Window).Text,
		set: func(w *Window, s string) error { w.SetText(s); return nil },
	},
	"Font": {
		get: (*Window).FontName,
		set: (*Window).SetFont,
	},
	"LookNFeel": {
		get: (*Window).LookNFeel,
		set: (*Window).SetLookNFeel,
	},
	"WindowRenderer": {
		get: func(w *Window) string {
			if w.renderer == nil {
				return ""
			}
			return w.renderer.Name()
		},
		set: (*Window).SetWindowRenderer,
	},
	"ID": {
		get: func(w *Window) string { return strconv.FormatUint(uint64(w.id), 10) },
		set: func(w *Window, s string) error {
			id, err := strconv.ParseUint(s, 10, 32)
			if err != nil {
				return guierr.InvalidRequest("malformed window ID %q", s)
			}
			w.id = uint32(id)
			return nil
		},
		def: "0",
	},
}

// BuiltinPropertyNames returns the names of the window attributes
// reachable as properties, sorted.
func BuiltinPropertyNames() []string {
	out := make([]string, 0, len(builtins))
	for n := range builtins {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Property returns a property as a string. Built-in attributes win over
// bag entries; a name that is neither fails with ErrUnknownObject.
func (w *Window) Property(name string) (string, error) {
	if b, ok := builtins[name]; ok {
		return b.get(w), nil
	}
	if v, ok := w.props.Get(name); ok {
		return v.String(), nil
	}
	if def, ok := w.props.Definition(name); ok {
		return def.Default, nil
	}
	return "", guierr.UnknownObject("window %q has no property %q", w.Path(), name)
}

// PropertyValue returns a bag property as a typed value
func (w *Window) PropertyValue(name string) (property.Value, bool) {
	return w.props.Get(name)
}

// IsPropertyPresent reports whether name is a built-in, defined or stored
// property of w.
func (w *Window) IsPropertyPresent(name string) bool {
	if _, ok := builtins[name]; ok {
		return true
	}
	if _, ok := w.props.Definition(name); ok {
		return true
	}
	return w.props.Has(name)
}

// SetProperty writes a property from its string form and fires
// PropertyChanged. Names that are not built in are stored in the bag,
// parsed with their definition's kind when one exists.
func (w *Window) SetProperty(name, value string) error {
	if b, ok := builtins[name]; ok {
		if err := b.set(w, value); err != nil {
			return err
		}
	} else {
		if err := w.props.SetString(name, value); err != nil {
			return err
		}
		if def, ok := w.props.Definition(name); ok {
			if def.LayoutOnWrite {
				if err := w.PerformChildWindowLayout(); err != nil {
					return err
				}
			}
			if def.RedrawOnWrite {
				w.Invalidate(false)
			}
		} else {
			w.Invalidate(false)
		}
	}
	w.fire(EventPropertyChanged, &PropertyArgs{Window: w.handle, Property: name})
	return nil
}

// SetPropertyValue stores a typed bag property and fires PropertyChanged
func (w *Window) SetPropertyValue(name string, v property.Value) error {
	if _, ok := builtins[name]; ok {
		return w.SetProperty(name, v.String())
	}
	if err := w.props.Set(name, v); err != nil {
		return err
	}
	w.Invalidate(false)
	w.fire(EventPropertyChanged, &PropertyArgs{Window: w.handle, Property: name})
	return nil
}

// IsPropertyDefault reports whether a property still holds its default
func (w *Window) IsPropertyDefault(name string) bool {
	if b, ok := builtins[name]; ok {
		return b.get(w) == b.def
	}
	return w.props.IsDefault(name)
}

// PropertyDefault returns the default string form of a property
func (w *Window) PropertyDefault(name string) (string, error) {
	if b, ok := builtins[name]; ok {
		return b.def, nil
	}
	if def, ok := w.props.Definition(name); ok {
		return def.Default, nil
	}
	return "", guierr.UnknownObject("window %q has no property %q", w.Path(), name)
}
