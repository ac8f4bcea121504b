package scheme

import (
	"fmt"

	"github.com/1broseidon/cegui/internal/falagard"
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/property"
)

type lookNFeelDoc struct {
	Looks []lookDoc `yaml:"looks"`
}

type lookDoc struct {
	Name                string           `yaml:"name"`
	Inherits            string           `yaml:"inherits"`
	PropertyDefinitions []propertyDefDoc `yaml:"property_definitions"`
	Properties          []propertyDoc    `yaml:"properties"`
	NamedAreas          []namedAreaDoc   `yaml:"named_areas"`
	ChildWidgets        []childWidgetDoc `yaml:"child_widgets"`
	ImagerySections     []sectionDoc     `yaml:"imagery_sections"`
	StateImagery        []stateDoc       `yaml:"state_imagery"`
}

type propertyDefDoc struct {
	Name          string `yaml:"name"`
	Type          string `yaml:"type"`
	Default       string `yaml:"default"`
	RedrawOnWrite bool   `yaml:"redraw_on_write"`
	LayoutOnWrite bool   `yaml:"layout_on_write"`
	Help          string `yaml:"help"`
}

type propertyDoc struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type namedAreaDoc struct {
	Name string  `yaml:"name"`
	Area areaDoc `yaml:"area"`
}

type childWidgetDoc struct {
	NameSuffix string        `yaml:"name_suffix"`
	Type       string        `yaml:"type"`
	Look       string        `yaml:"look"`
	Renderer   string        `yaml:"renderer"`
	Area       *areaDoc      `yaml:"area"`
	HAlign     string        `yaml:"halign"`
	VAlign     string        `yaml:"valign"`
	Properties []propertyDoc `yaml:"properties"`
}

type colouringDoc struct {
	Colours         string `yaml:"colours"`
	ColoursProperty string `yaml:"colours_property"`
}

func (c colouringDoc) build() (falagard.Colouring, error) {
	out := falagard.Colouring{ColoursProperty: c.ColoursProperty}
	if c.Colours != "" {
		cr, err := geom.ParseColourRect(c.Colours)
		if err != nil {
			return out, err
		}
		out.Colours = &cr
	}
	return out, nil
}

type sectionDoc struct {
	Name      string       `yaml:"name"`
	Colouring colouringDoc `yaml:",inline"`
	Frames    []frameDoc   `yaml:"frames"`
	Images    []imageryDoc `yaml:"images"`
	Texts     []textDoc    `yaml:"texts"`
}

type frameDoc struct {
	Area            *areaDoc          `yaml:"area"`
	Colouring       colouringDoc      `yaml:",inline"`
	Images          map[string]string `yaml:"images"`
	ImageProperties map[string]string `yaml:"image_properties"`
	LeftEdge        string            `yaml:"left_edge"`
	RightEdge       string            `yaml:"right_edge"`
	TopEdge         string            `yaml:"top_edge"`
	BottomEdge      string            `yaml:"bottom_edge"`
	BackgroundHorz  string            `yaml:"background_horz"`
	BackgroundVert  string            `yaml:"background_vert"`
}

type imageryDoc struct {
	Area               *areaDoc     `yaml:"area"`
	Image              string       `yaml:"image"`
	ImageProperty      string       `yaml:"image_property"`
	Colouring          colouringDoc `yaml:",inline"`
	HorzFormat         string       `yaml:"horz_format"`
	HorzFormatProperty string       `yaml:"horz_format_property"`
	VertFormat         string       `yaml:"vert_format"`
	VertFormatProperty string       `yaml:"vert_format_property"`
}

type textDoc struct {
	Area               *areaDoc     `yaml:"area"`
	Text               string       `yaml:"text"`
	TextProperty       string       `yaml:"text_property"`
	Font               string       `yaml:"font"`
	FontProperty       string       `yaml:"font_property"`
	Colouring          colouringDoc `yaml:",inline"`
	HorzFormat         string       `yaml:"horz_format"`
	HorzFormatProperty string       `yaml:"horz_format_property"`
	VertFormat         string       `yaml:"vert_format"`
	VertFormatProperty string       `yaml:"vert_format_property"`
}

type stateDoc struct {
	Name             string     `yaml:"name"`
	ClippedToDisplay bool       `yaml:"clipped_to_display"`
	Layers           []layerDoc `yaml:"layers"`
}

type layerDoc struct {
	Priority int              `yaml:"priority"`
	Sections []sectionSpecDoc `yaml:"sections"`
}

type sectionSpecDoc struct {
	Section         string       `yaml:"section"`
	Look            string       `yaml:"look"`
	Colouring       colouringDoc `yaml:",inline"`
	ControlProperty string       `yaml:"control_property"`
	ControlValue    string       `yaml:"control_value"`
	ControlWidget   string       `yaml:"control_widget"`
}

// LoadLookNFeel reads a look file and adds every look it defines. Looks
// already loaded are replaced.
func (l *Loader) LoadLookNFeel(file, group string) ([]string, error) {
	if l.looks == nil {
		return nil, guierr.InvalidRequest("loader has no look manager for %s", file)
	}
	var doc lookNFeelDoc
	if err := l.readDoc("looknfeel", file, group, &doc); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(doc.Looks))
	for _, ld := range doc.Looks {
		look, err := ld.build()
		if err != nil {
			return names, fmt.Errorf("looknfeel %s: WidgetLook %q: %w", file, ld.Name, err)
		}
		if l.looks.IsDefined(look.Name) {
			l.looks.EraseLook(look.Name)
		}
		if err := l.looks.AddLook(look); err != nil {
			return names, fmt.Errorf("looknfeel %s: %w", file, err)
		}
		names = append(names, look.Name)
	}
	l.log.Debug("looknfeel loaded", "file", file, "looks", len(names))
	return names, nil
}

func (d lookDoc) build() (*falagard.WidgetLook, error) {
	if d.Name == "" {
		return nil, guierr.InvalidRequest("look has no name")
	}
	look := falagard.NewWidgetLook(d.Name, d.Inherits)
	for _, p := range d.PropertyDefinitions {
		kind, err := property.ParseKind(p.Type)
		if err != nil {
			return nil, fmt.Errorf("property definition %q: %w", p.Name, err)
		}
		look.AddPropertyDefinition(falagard.PropertyDefinition{
			Name:          p.Name,
			Kind:          kind,
			Default:       p.Default,
			RedrawOnWrite: p.RedrawOnWrite,
			LayoutOnWrite: p.LayoutOnWrite,
			Help:          p.Help,
		})
	}
	for _, p := range d.Properties {
		look.AddPropertyInitializer(falagard.PropertyInitializer{Property: p.Name, Value: p.Value})
	}
	for _, a := range d.NamedAreas {
		area, err := a.Area.build()
		if err != nil {
			return nil, fmt.Errorf("named area %q: %w", a.Name, err)
		}
		look.AddNamedArea(&falagard.NamedArea{Name: a.Name, Area: area})
	}
	for _, c := range d.ChildWidgets {
		wc, err := c.build()
		if err != nil {
			return nil, fmt.Errorf("child widget %q: %w", c.NameSuffix, err)
		}
		look.AddWidgetComponent(wc)
	}
	for _, s := range d.ImagerySections {
		sec, err := s.build()
		if err != nil {
			return nil, fmt.Errorf("imagery section %q: %w", s.Name, err)
		}
		look.AddImagerySection(sec)
	}
	for _, s := range d.StateImagery {
		st, err := s.build()
		if err != nil {
			return nil, fmt.Errorf("state imagery %q: %w", s.Name, err)
		}
		look.AddStateImagery(st)
	}
	return look, nil
}

func (c childWidgetDoc) build() (*falagard.WidgetComponent, error) {
	if c.NameSuffix == "" || c.Type == "" {
		return nil, guierr.InvalidRequest("child widget needs a name_suffix and a type")
	}
	area, err := c.Area.build()
	if err != nil {
		return nil, err
	}
	wc := &falagard.WidgetComponent{
		NameSuffix: c.NameSuffix,
		Type:       c.Type,
		Look:       c.Look,
		Renderer:   c.Renderer,
		Area:       area,
	}
	if c.HAlign != "" {
		if wc.HAlign, err = gui.ParseHAlign(c.HAlign); err != nil {
			return nil, err
		}
	}
	if c.VAlign != "" {
		if wc.VAlign, err = gui.ParseVAlign(c.VAlign); err != nil {
			return nil, err
		}
	}
	for _, p := range c.Properties {
		wc.Properties = append(wc.Properties, falagard.PropertyInitializer{Property: p.Name, Value: p.Value})
	}
	return wc, nil
}

func (s sectionDoc) build() (*falagard.ImagerySection, error) {
	colouring, err := s.Colouring.build()
	if err != nil {
		return nil, err
	}
	sec := &falagard.ImagerySection{Name: s.Name, Colouring: colouring}
	for i, f := range s.Frames {
		fc, err := f.build()
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		sec.Frames = append(sec.Frames, fc)
	}
	for i, im := range s.Images {
		ic, err := im.build()
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
		sec.Images = append(sec.Images, ic)
	}
	for i, t := range s.Texts {
		tc, err := t.build()
		if err != nil {
			return nil, fmt.Errorf("text %d: %w", i, err)
		}
		sec.Texts = append(sec.Texts, tc)
	}
	return sec, nil
}

// parseOr parses s with parse, keeping def when s is empty
func parseOr[T any](s string, def T, parse func(string) (T, error)) (T, error) {
	if s == "" {
		return def, nil
	}
	return parse(s)
}

func (f frameDoc) build() (falagard.FrameComponent, error) {
	fc := falagard.NewFrameComponent()
	var err error
	if fc.Area, err = f.Area.build(); err != nil {
		return fc, err
	}
	if fc.Colouring, err = f.Colouring.build(); err != nil {
		return fc, err
	}
	for part, img := range f.Images {
		p, err := falagard.ParseFramePart(part)
		if err != nil {
			return fc, err
		}
		fc.Images[p].Image = img
	}
	for part, prop := range f.ImageProperties {
		p, err := falagard.ParseFramePart(part)
		if err != nil {
			return fc, err
		}
		fc.Images[p].Property = prop
	}
	if fc.LeftEdgeFormat, err = parseOr(f.LeftEdge, fc.LeftEdgeFormat, falagard.ParseVertFormat); err != nil {
		return fc, err
	}
	if fc.RightEdgeFormat, err = parseOr(f.RightEdge, fc.RightEdgeFormat, falagard.ParseVertFormat); err != nil {
		return fc, err
	}
	if fc.TopEdgeFormat, err = parseOr(f.TopEdge, fc.TopEdgeFormat, falagard.ParseHorzFormat); err != nil {
		return fc, err
	}
	if fc.BottomEdgeFormat, err = parseOr(f.BottomEdge, fc.BottomEdgeFormat, falagard.ParseHorzFormat); err != nil {
		return fc, err
	}
	if fc.BackgroundHorz, err = parseOr(f.BackgroundHorz, fc.BackgroundHorz, falagard.ParseHorzFormat); err != nil {
		return fc, err
	}
	if fc.BackgroundVert, err = parseOr(f.BackgroundVert, fc.BackgroundVert, falagard.ParseVertFormat); err != nil {
		return fc, err
	}
	return fc, nil
}

func (d imageryDoc) build() (falagard.ImageryComponent, error) {
	ic := falagard.NewImageryComponent(d.Image)
	ic.Source.Property = d.ImageProperty
	ic.HorzFormatProperty = d.HorzFormatProperty
	ic.VertFormatProperty = d.VertFormatProperty
	var err error
	if ic.Area, err = d.Area.build(); err != nil {
		return ic, err
	}
	if ic.Colouring, err = d.Colouring.build(); err != nil {
		return ic, err
	}
	if ic.HorzFormat, err = parseOr(d.HorzFormat, ic.HorzFormat, falagard.ParseHorzFormat); err != nil {
		return ic, err
	}
	if ic.VertFormat, err = parseOr(d.VertFormat, ic.VertFormat, falagard.ParseVertFormat); err != nil {
		return ic, err
	}
	return ic, nil
}

func (d textDoc) build() (falagard.TextComponent, error) {
	tc := falagard.NewTextComponent()
	tc.Text = d.Text
	tc.TextProperty = d.TextProperty
	tc.Font = d.Font
	tc.FontProperty = d.FontProperty
	tc.HorzFormatProperty = d.HorzFormatProperty
	tc.VertFormatProperty = d.VertFormatProperty
	var err error
	if tc.Area, err = d.Area.build(); err != nil {
		return tc, err
	}
	if tc.Colouring, err = d.Colouring.build(); err != nil {
		return tc, err
	}
	if tc.HorzFormat, err = parseOr(d.HorzFormat, tc.HorzFormat, falagard.ParseTextHorzFormat); err != nil {
		return tc, err
	}
	if tc.VertFormat, err = parseOr(d.VertFormat, tc.VertFormat, falagard.ParseTextVertFormat); err != nil {
		return tc, err
	}
	return tc, nil
}

func (d stateDoc) build() (*falagard.StateImagery, error) {
	st := &falagard.StateImagery{Name: d.Name, ClippedToDisplay: d.ClippedToDisplay}
	for _, ld := range d.Layers {
		layer := falagard.LayerSpecification{Priority: ld.Priority}
		for _, sd := range ld.Sections {
			colouring, err := sd.Colouring.build()
			if err != nil {
				return nil, fmt.Errorf("section %q: %w", sd.Section, err)
			}
			layer.Sections = append(layer.Sections, falagard.SectionSpecification{
				Section:         sd.Section,
				Look:            sd.Look,
				Colouring:       colouring,
				ControlProperty: sd.ControlProperty,
				ControlValue:    sd.ControlValue,
				ControlWidget:   sd.ControlWidget,
			})
		}
		st.Layers = append(st.Layers, layer)
	}
	return st, nil
}
