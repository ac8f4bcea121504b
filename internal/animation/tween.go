package animation

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/guierr"
)

// Tween eases one float property of a window between two values once,
// without an animation definition
type Tween struct {
	rt       *gui.Runtime
	target   gui.Handle
	property string
	to       float32
	duration float32
	tween    *gween.Tween
	done     bool
}

// NewTween prepares a tween of property on w from from to to over duration
// seconds along p. Nothing is written until the first Update.
func NewTween(w *gui.Window, property string, from, to, duration float32, p Progression) (*Tween, error) {
	if duration < 0 {
		return nil, guierr.InvalidRequest("tween duration %g is negative", duration)
	}
	if !w.IsPropertyPresent(property) {
		return nil, guierr.UnknownObject("window %s has no property %q", w.Path(), property)
	}
	return &Tween{
		rt:       w.Runtime(),
		target:   w.Handle(),
		property: property,
		to:       to,
		duration: duration,
		tween:    gween.New(from, to, duration, easing(p)),
	}, nil
}

func easing(p Progression) ease.TweenFunc {
	if p >= 0 && int(p) < len(progressions) && progressions[p].fn != nil {
		return progressions[p].fn
	}
	return func(t, b, c, d float32) float32 { return b + c*p.Alter(t/d) }
}

// Done reports whether the tween reached its end value
func (t *Tween) Done() bool { return t.done }

// Update advances the tween by dt seconds and writes the property. A tween
// whose window is gone reports done.
func (t *Tween) Update(dt float32) error {
	if t.done {
		return nil
	}
	w, err := t.rt.Get(t.target)
	if err != nil {
		t.done = true
		return nil
	}
	v, finished := t.tween.Update(dt)
	if finished || t.duration == 0 {
		v = t.to
		t.done = true
	}
	return w.SetProperty(t.property, formatFloat(v))
}

// Reset rewinds the tween to its start
func (t *Tween) Reset() {
	t.tween.Reset()
	t.done = false
}
