package animation

import (
	"log/slog"

	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/guierr"
)

// Instance events, fired on the instance and on its target window
const (
	EventAnimationStarted  event.Name = "AnimationStarted"
	EventAnimationStopped  event.Name = "AnimationStopped"
	EventAnimationPaused   event.Name = "AnimationPaused"
	EventAnimationUnpaused event.Name = "AnimationUnpaused"
	EventAnimationFinished event.Name = "AnimationFinished"
	EventAnimationEnded    event.Name = "AnimationEnded"
	EventAnimationLooped   event.Name = "AnimationLooped"
)

// InstanceArgs accompanies the instance events
type InstanceArgs struct {
	event.Base
	Instance *Instance
}

// Instance plays one Animation against one target window
type Instance struct {
	def *Animation
	log *slog.Logger

	rt     *gui.Runtime
	target gui.Handle

	position       float32
	speed          float32
	bounceBackward bool
	skipNextStep   bool
	running        bool

	// A step larger than maxStepDeltaSkip is dropped; a positive
	// maxStepDeltaClamp caps every step. Zero or less disables either.
	maxStepDeltaSkip  float32
	maxStepDeltaClamp float32

	saved     map[string]string
	events    event.Set
	autoConns event.Connections
	lifetime  event.Connections
}

func newInstance(def *Animation, log *slog.Logger) *Instance {
	return &Instance{def: def, log: log, speed: 1, maxStepDeltaSkip: -1, maxStepDeltaClamp: -1}
}

// Definition returns the animation being played
func (i *Instance) Definition() *Animation { return i.def }

// Events returns the instance's own event set
func (i *Instance) Events() *event.Set { return &i.events }

// Target returns the target window handle, or the zero handle
func (i *Instance) Target() gui.Handle { return i.target }

func (i *Instance) targetWindow() *gui.Window {
	if i.rt == nil {
		return nil
	}
	w, err := i.rt.Get(i.target)
	if err != nil {
		return nil
	}
	return w
}

// SetTargetWindow points the instance at w, which also becomes the source
// of auto subscription events and a receiver of the instance events. A nil
// w detaches the instance. An auto started definition starts at once.
func (i *Instance) SetTargetWindow(w *gui.Window) {
	i.autoConns.DisconnectAll()
	i.lifetime.DisconnectAll()
	i.saved = nil
	i.rt, i.target = nil, gui.Handle{}
	if w == nil {
		return
	}
	i.rt, i.target = w.Runtime(), w.Handle()
	i.lifetime.Add(w.Events().Subscribe(gui.EventDestructionStarted, func(event.Args) bool {
		i.running = false
		i.SetTargetWindow(nil)
		return false
	}))
	i.autoSubscribe(w)
	if i.def.AutoStart && !i.running {
		i.Start(false)
	}
}

func (i *Instance) autoSubscribe(w *gui.Window) {
	for _, sub := range i.def.autoSubs {
		action := sub.Action
		i.autoConns.Add(w.Events().Subscribe(sub.Event, func(event.Args) bool {
			i.perform(action)
			return true
		}))
	}
}

func (i *Instance) perform(a Action) {
	switch a {
	case ActionStart:
		i.Start(false)
	case ActionStop:
		i.Stop()
	case ActionPause:
		i.Pause()
	case ActionUnpause:
		i.Unpause(false)
	case ActionTogglePause:
		i.TogglePause(false)
	case ActionFinish:
		if err := i.Finish(); err != nil {
			i.log.Warn("finishing animation failed", "animation", i.def.name, "error", err)
		}
	}
}

// AutoConnections returns the number of live auto subscriptions
func (i *Instance) AutoConnections() int { return i.autoConns.Len() }

func (i *Instance) Position() float32 { return i.position }

// SetPosition moves the playhead. It must lie within the duration.
func (i *Instance) SetPosition(pos float32) error {
	if pos < 0 || pos > i.def.Duration {
		return guierr.InvalidRequest("position %g is outside [0, %g]", pos, i.def.Duration)
	}
	i.position = pos
	return nil
}

func (i *Instance) Speed() float32 { return i.speed }

// SetSpeed scales the elapsed time of every step. Pause the instance rather
// than setting a zero speed.
func (i *Instance) SetSpeed(speed float32) error {
	if speed < 0 {
		return guierr.InvalidRequest("playback speed %g is negative", speed)
	}
	if speed == 0 {
		return guierr.InvalidRequest("playback speed cannot be zero, pause the instance instead")
	}
	i.speed = speed
	return nil
}

func (i *Instance) MaxStepDeltaSkip() float32 { return i.maxStepDeltaSkip }

func (i *Instance) SetMaxStepDeltaSkip(d float32) { i.maxStepDeltaSkip = d }

func (i *Instance) MaxStepDeltaClamp() float32 { return i.maxStepDeltaClamp }

func (i *Instance) SetMaxStepDeltaClamp(d float32) { i.maxStepDeltaClamp = d }

func (i *Instance) SkipNextStep() bool { return i.skipNextStep }

func (i *Instance) IsRunning() bool { return i.running }

func (i *Instance) savePropertyValue(name string) { i.capture(name) }

func (i *Instance) purgeSavedPropertyValues() { i.saved = nil }

func (i *Instance) capture(name string) {
	w := i.targetWindow()
	if w == nil {
		return
	}
	v, err := w.Property(name)
	if err != nil {
		i.log.Debug("cannot save animated property", "animation", i.def.name, "property", name, "error", err)
		return
	}
	if i.saved == nil {
		i.saved = make(map[string]string)
	}
	i.saved[name] = v
}

// SavedPropertyValue returns the value name had when the instance started.
// A property saved late, because the definition changed while running, is
// captured on first use.
func (i *Instance) SavedPropertyValue(name string) (string, error) {
	if _, ok := i.saved[name]; !ok {
		i.capture(name)
	}
	v, ok := i.saved[name]
	if !ok {
		return "", guierr.UnknownObject("no saved value for property %q", name)
	}
	return v, nil
}

func (i *Instance) fire(name event.Name) {
	i.events.Fire(name, &InstanceArgs{Instance: i})
	if w := i.targetWindow(); w != nil {
		w.Events().Fire(name, &InstanceArgs{Instance: i})
	}
}

// Start rewinds and plays. With skipNextStep the first step only applies
// the start position, which keeps a long first frame from jumping ahead.
func (i *Instance) Start(skipNextStep bool) {
	i.position = 0
	i.bounceBackward = false
	i.skipNextStep = skipNextStep
	i.running = true
	i.purgeSavedPropertyValues()
	i.def.savePropertyValues(i)
	i.fire(EventAnimationStarted)
}

// Stop rewinds and halts
func (i *Instance) Stop() {
	i.position = 0
	i.running = false
	i.fire(EventAnimationStopped)
}

// Pause halts without rewinding
func (i *Instance) Pause() {
	i.running = false
	i.fire(EventAnimationPaused)
}

// Unpause resumes from the current position
func (i *Instance) Unpause(skipNextStep bool) {
	i.skipNextStep = skipNextStep
	i.running = true
	i.fire(EventAnimationUnpaused)
}

// TogglePause pauses a running instance and resumes a halted one
func (i *Instance) TogglePause(skipNextStep bool) {
	if i.running {
		i.Pause()
		return
	}
	i.Unpause(skipNextStep)
}

// Finish jumps to the end, applies it and rewinds
func (i *Instance) Finish() error {
	i.position = i.def.Duration
	err := i.Apply()
	i.running = false
	i.position = 0
	i.fire(EventAnimationFinished)
	return err
}

// Apply writes the values at the current position to the target
func (i *Instance) Apply() error {
	if i.targetWindow() == nil {
		return nil
	}
	return i.def.apply(i)
}

// Step advances a running instance by delta seconds and applies the
// result. A definition without duration ends on its first step.
func (i *Instance) Step(delta float32) error {
	if !i.running {
		return nil
	}
	if delta < 0 {
		return guierr.InvalidRequest("cannot step an animation by negative delta %g", delta)
	}
	if i.maxStepDeltaSkip > 0 && delta > i.maxStepDeltaSkip {
		delta = 0
	}
	if i.maxStepDeltaClamp > 0 {
		delta = min(delta, i.maxStepDeltaClamp)
	}
	if i.skipNextStep {
		i.skipNextStep = false
		delta = 0
	}

	duration := i.def.Duration
	if duration <= 0 {
		i.Stop()
		i.fire(EventAnimationEnded)
		return nil
	}
	delta *= i.speed

	switch i.def.ReplayMode {
	case PlayOnce:
		pos := max(0, i.position+delta)
		if pos >= duration {
			pos = duration
			i.Stop()
			i.fire(EventAnimationEnded)
		}
		i.position = pos
	case Loop:
		pos := i.position + delta
		for pos > duration {
			pos -= duration
			i.fire(EventAnimationLooped)
		}
		i.position = pos
	case Bounce:
		if i.bounceBackward {
			delta = -delta
		}
		pos := i.position + delta
		for pos < 0 || pos > duration {
			if pos < 0 {
				i.bounceBackward = false
				pos = -pos
				i.fire(EventAnimationLooped)
			}
			if pos > duration {
				i.bounceBackward = true
				pos = 2*duration - pos
				i.fire(EventAnimationLooped)
			}
		}
		i.position = pos
	}
	return i.Apply()
}
