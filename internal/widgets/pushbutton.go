package widgets

import (
	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/gui"
)

// PushButton states
const (
	StateNormal    = "Normal"
	StateHover     = "Hover"
	StatePushed    = "Pushed"
	StatePushedOff = "PushedOff"
	StateDisabled  = "Disabled"
)

// PushButton captures the pointer while the left button is held and fires
// Clicked when it is released over the button.
type PushButton struct {
	pushed bool
}

func (b *PushButton) Init(w *gui.Window) error {
	redraw := func(event.Args) bool {
		w.Invalidate(false)
		return false
	}
	w.Events().Subscribe(gui.EventMouseEntersArea, redraw)
	w.Events().Subscribe(gui.EventMouseLeavesArea, redraw)
	w.Events().Subscribe(gui.EventMouseMove, func(event.Args) bool {
		if b.pushed {
			w.Invalidate(false)
		}
		return false
	})
	w.Events().Subscribe(gui.EventInputCaptureLost, func(event.Args) bool {
		if b.pushed {
			b.pushed = false
			w.Invalidate(false)
		}
		return false
	})
	return nil
}

// IsPushed reports whether the button is held down
func (b *PushButton) IsPushed() bool { return b.pushed }

// hovering reports whether the pointer is over w itself
func hovering(w *gui.Window) bool {
	return w.IsHit(w.Runtime().MousePosition(), false)
}

// State picks Disabled over Pushed over Hover over Normal. A pushed button
// with the pointer outside shows PushedOff.
func (b *PushButton) State(w *gui.Window) string {
	switch {
	case w.IsEffectiveDisabled():
		return StateDisabled
	case b.pushed && hovering(w):
		return StatePushed
	case b.pushed:
		return StatePushedOff
	case w.IsHovered() && hovering(w):
		return StateHover
	}
	return StateNormal
}

func (b *PushButton) MouseButtonDown(w *gui.Window, btn gui.MouseButton) bool {
	if btn != gui.LeftButton {
		return false
	}
	if w.Runtime().CaptureInput(w.Handle()) {
		b.pushed = true
		w.Invalidate(false)
	}
	return true
}

func (b *PushButton) MouseButtonUp(w *gui.Window, btn gui.MouseButton) bool {
	if btn != gui.LeftButton || !b.pushed {
		return false
	}
	over := hovering(w)
	b.pushed = false
	w.Runtime().ReleaseInput(w.Handle())
	w.Invalidate(false)
	if over {
		b.click(w)
	}
	return true
}

// KeyDown clicks the focused button on Space or Return
func (b *PushButton) KeyDown(w *gui.Window, k gui.Key) bool {
	if k != gui.KeySpace && k != gui.KeyReturn {
		return false
	}
	b.click(w)
	return true
}

func (b *PushButton) CanFocus(w *gui.Window) bool {
	return w.IsEffectiveVisible() && !w.IsEffectiveDisabled()
}

func (b *PushButton) click(w *gui.Window) {
	w.Events().Fire(EventClicked, &gui.WindowArgs{Window: w.Handle()})
}
