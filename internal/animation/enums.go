package animation

import (
	"strings"

	"github.com/chewxy/math32"
	"github.com/tanema/gween/ease"

	"github.com/1broseidon/cegui/internal/guierr"
)

// ReplayMode decides what happens when an instance reaches the end
type ReplayMode int

const (
	// PlayOnce stops at the end and fires AnimationEnded.
	PlayOnce ReplayMode = iota
	// Loop wraps back to the start.
	Loop
	// Bounce reverses direction at either end.
	Bounce
)

// String returns the string representation of the replay mode
func (m ReplayMode) String() string {
	switch m {
	case Loop:
		return "loop"
	case Bounce:
		return "bounce"
	default:
		return "once"
	}
}

// ParseReplayMode parses once, loop or bounce
func ParseReplayMode(s string) (ReplayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "once", "playonce":
		return PlayOnce, nil
	case "loop":
		return Loop, nil
	case "bounce":
		return Bounce, nil
	}
	return 0, guierr.InvalidRequest("invalid replay mode %q", s)
}

// ApplicationMethod decides how an affector combines the interpolated value
// with the target property
type ApplicationMethod int

const (
	Absolute ApplicationMethod = iota
	Relative
	RelativeMultiply
)

// String returns the string representation of the method
func (m ApplicationMethod) String() string {
	switch m {
	case Relative:
		return "relative"
	case RelativeMultiply:
		return "relative multiply"
	default:
		return "absolute"
	}
}

// ParseApplicationMethod parses absolute, relative or relative multiply
func ParseApplicationMethod(s string) (ApplicationMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "absolute":
		return Absolute, nil
	case "relative":
		return Relative, nil
	case "relative multiply", "relative_multiply", "relativemultiply":
		return RelativeMultiply, nil
	}
	return 0, guierr.InvalidRequest("invalid application method %q", s)
}

// Progression reshapes the position between two key frames. A key frame's
// progression governs the segment that ends at it.
type Progression int

const (
	ProgressionLinear Progression = iota
	ProgressionDiscrete
	ProgressionQuadraticAccelerating
	ProgressionQuadraticDecelerating
	ProgressionInOutQuad
	ProgressionInCubic
	ProgressionOutCubic
	ProgressionInOutCubic
	ProgressionInOutSine
	ProgressionOutBack
	ProgressionOutBounce
	ProgressionOutElastic
)

var progressions = [...]struct {
	name string
	fn   ease.TweenFunc
}{
	ProgressionLinear:                {"linear", ease.Linear},
	ProgressionDiscrete:              {"discrete", nil},
	ProgressionQuadraticAccelerating: {"quadratic accelerating", ease.InQuad},
	ProgressionQuadraticDecelerating: {"quadratic decelerating", nil},
	ProgressionInOutQuad:             {"in-out quad", ease.InOutQuad},
	ProgressionInCubic:               {"in cubic", ease.InCubic},
	ProgressionOutCubic:              {"out cubic", ease.OutCubic},
	ProgressionInOutCubic:            {"in-out cubic", ease.InOutCubic},
	ProgressionInOutSine:             {"in-out sine", ease.InOutSine},
	ProgressionOutBack:               {"out back", ease.OutBack},
	ProgressionOutBounce:             {"out bounce", ease.OutBounce},
	ProgressionOutElastic:            {"out elastic", ease.OutElastic},
}

// String returns the string representation of the progression
func (p Progression) String() string {
	if p >= 0 && int(p) < len(progressions) {
		return progressions[p].name
	}
	return "linear"
}

// ParseProgression parses a progression name; the empty string is linear
func ParseProgression(s string) (Progression, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ProgressionLinear, nil
	}
	for i, p := range progressions {
		if p.name == s || strings.ReplaceAll(p.name, " ", "") == s {
			return Progression(i), nil
		}
	}
	return 0, guierr.InvalidRequest("invalid progression %q", s)
}

// Alter maps a linear position in [0,1] onto the progression's curve
func (p Progression) Alter(t float32) float32 {
	switch p {
	case ProgressionDiscrete:
		if t < 1 {
			return 0
		}
		return 1
	case ProgressionQuadraticDecelerating:
		return math32.Sqrt(t)
	}
	if p < 0 || int(p) >= len(progressions) {
		return t
	}
	return progressions[p].fn(t, 0, 1, 1)
}

// Action is what an auto subscription does to its instance
type Action int

const (
	ActionStart Action = iota
	ActionStop
	ActionPause
	ActionUnpause
	ActionTogglePause
	ActionFinish
)

var actionNames = [...]string{"Start", "Stop", "Pause", "Unpause", "TogglePause", "Finish"}

// String returns the string representation of the action
func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "Unknown"
}

// ParseAction parses an action name
func ParseAction(s string) (Action, error) {
	for i, n := range actionNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return Action(i), nil
		}
	}
	return 0, guierr.InvalidRequest("invalid animation action %q", s)
}
