// Package widgets provides the stock window kinds: DefaultWindow,
// PushButton, StaticImage and StaticText.
package widgets

import (
	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/property"
)

// Type names
const (
	DefaultWindowType = "DefaultWindow"
	PushButtonType    = "PushButton"
	StaticImageType   = "StaticImage"
	StaticTextType    = "StaticText"
)

// EventClicked fires on a PushButton released over itself after a press
const EventClicked event.Name = "Clicked"

// Register adds every stock kind to rt
func Register(rt *gui.Runtime) error {
	kinds := []struct {
		name    string
		factory gui.Factory
	}{
		{DefaultWindowType, func() gui.Behaviour { return DefaultWindow{} }},
		{PushButtonType, func() gui.Behaviour { return &PushButton{} }},
		{StaticImageType, func() gui.Behaviour { return StaticImage{} }},
		{StaticTextType, func() gui.Behaviour { return StaticText{} }},
	}
	for _, k := range kinds {
		if err := rt.RegisterType(k.name, k.factory); err != nil {
			return err
		}
	}
	return nil
}

// DefaultWindow is a plain container drawn in Enabled or Disabled
type DefaultWindow struct{}

func (DefaultWindow) Init(*gui.Window) error { return nil }

func define(w *gui.Window, defs ...property.Definition) error {
	for _, d := range defs {
		if err := w.Props().Define(d); err != nil {
			return err
		}
	}
	return nil
}

func stateEnabled(w *gui.Window) string {
	if w.IsEffectiveDisabled() {
		return "Disabled"
	}
	return "Enabled"
}

// StaticImage draws the image named by its Image property
type StaticImage struct{}

func (StaticImage) Init(w *gui.Window) error {
	return define(w, property.Definition{Name: "Image", Kind: property.KindImage, RedrawOnWrite: true, Help: "image drawn by the window"})
}

func (StaticImage) State(w *gui.Window) string { return stateEnabled(w) }

// StaticText draws its text with an optional frame and background. Looks
// control the Frame and Background sections with the matching properties.
type StaticText struct{}

func (StaticText) Init(w *gui.Window) error {
	return define(w,
		property.Definition{Name: "FrameEnabled", Kind: property.KindBool, Default: "true", RedrawOnWrite: true},
		property.Definition{Name: "BackgroundEnabled", Kind: property.KindBool, Default: "true", RedrawOnWrite: true},
		property.Definition{Name: "HorzFormatting", Kind: property.KindString, Default: "LeftAligned", RedrawOnWrite: true},
		property.Definition{Name: "VertFormatting", Kind: property.KindString, Default: "CentreAligned", RedrawOnWrite: true},
		property.Definition{Name: "TextColours", Kind: property.KindColour, Default: "FFFFFFFF", RedrawOnWrite: true},
	)
}

func (StaticText) State(w *gui.Window) string { return stateEnabled(w) }
