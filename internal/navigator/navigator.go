// Package navigator moves keyboard focus between windows in response to
// semantic input such as "go left" or "next". The choice of the next window
// is delegated to a pluggable Strategy.
package navigator

import (
	"log/slog"

	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/guierr"
)

// SemanticValue is a host independent navigation intent
type SemanticValue int

const (
	GoUp SemanticValue = iota
	GoDown
	GoLeft
	GoRight
	GoToNext
	GoToPrevious
	Confirm
	Cancel
)

var semanticNames = [...]string{"GoUp", "GoDown", "GoLeft", "GoRight", "GoToNext", "GoToPrevious", "Confirm", "Cancel"}

// String returns the string representation of the value
func (v SemanticValue) String() string {
	if v >= 0 && int(v) < len(semanticNames) {
		return semanticNames[v]
	}
	return "Unknown"
}

// ParseSemanticValue parses a semantic value name
func ParseSemanticValue(s string) (SemanticValue, error) {
	for i, n := range semanticNames {
		if n == s {
			return SemanticValue(i), nil
		}
	}
	return 0, guierr.InvalidRequest("invalid semantic value %q", s)
}

// Strategy payloads used by DefaultMapping
const (
	PayloadUp       = "up"
	PayloadDown     = "down"
	PayloadLeft     = "left"
	PayloadRight    = "right"
	PayloadNext     = "next"
	PayloadPrevious = "previous"
)

// Strategy picks the window to focus after current for a payload. It
// returns current when there is nowhere to go, or the zero handle to leave
// nothing focused.
type Strategy interface {
	Next(rt *gui.Runtime, current gui.Handle, payload string) gui.Handle
}

// StrategyFunc adapts a function to Strategy
type StrategyFunc func(rt *gui.Runtime, current gui.Handle, payload string) gui.Handle

func (f StrategyFunc) Next(rt *gui.Runtime, current gui.Handle, payload string) gui.Handle {
	return f(rt, current, payload)
}

// DefaultMapping maps the directional and sequential values to the
// payloads understood by the bundled strategies. Confirm and Cancel are
// left to the host.
func DefaultMapping() map[SemanticValue]string {
	return map[SemanticValue]string{
		GoUp:         PayloadUp,
		GoDown:       PayloadDown,
		GoLeft:       PayloadLeft,
		GoRight:      PayloadRight,
		GoToNext:     PayloadNext,
		GoToPrevious: PayloadPrevious,
	}
}

// Navigator tracks the window it focused last and moves focus on semantic
// events
type Navigator struct {
	rt       *gui.Runtime
	strategy Strategy
	mapping  map[SemanticValue]string
	current  gui.Handle
	log      *slog.Logger
}

// Options configures a Navigator
type Options struct {
	// Mapping defaults to DefaultMapping.
	Mapping map[SemanticValue]string
	Logger  *slog.Logger
}

// New returns a navigator over rt driven by s
func New(rt *gui.Runtime, s Strategy, opts Options) *Navigator {
	if opts.Mapping == nil {
		opts.Mapping = DefaultMapping()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Navigator{rt: rt, strategy: s, mapping: opts.Mapping, log: opts.Logger}
}

// Strategy returns the active strategy
func (n *Navigator) Strategy() Strategy { return n.strategy }

// SetStrategy replaces the strategy, keeping the current window
func (n *Navigator) SetStrategy(s Strategy) { n.strategy = s }

// CurrentFocusedWindow returns the window focused by the last navigation,
// or the zero handle
func (n *Navigator) CurrentFocusedWindow() gui.Handle {
	if !n.rt.IsLive(n.current) {
		n.current = gui.Handle{}
	}
	return n.current
}

// SetCurrentFocusedWindow sets the starting point of the next navigation
// without changing focus
func (n *Navigator) SetCurrentFocusedWindow(h gui.Handle) { n.current = h }

// HandleSemanticEvent moves focus for v. Values without a mapping are
// ignored and report false.
func (n *Navigator) HandleSemanticEvent(v SemanticValue) bool {
	payload, ok := n.mapping[v]
	if !ok {
		return false
	}
	cur := n.CurrentFocusedWindow()
	if !cur.IsZero() {
		if w := n.rt.Focused(); w != nil && w.Handle() == cur {
			n.rt.Unfocus()
		}
	}
	next := n.strategy.Next(n.rt, cur, payload)
	n.current = next
	if next.IsZero() {
		return true
	}
	if !n.rt.Focus(next) {
		n.log.Debug("navigation target refused focus", "window", next, "event", v)
	}
	return true
}
