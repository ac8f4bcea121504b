package animation

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/guierr"
)

// Options configures a Manager
type Options struct {
	// Defaults copied into every new instance; zero or less disables them.
	MaxStepDeltaSkip  float32
	MaxStepDeltaClamp float32

	Logger *slog.Logger
}

// Manager owns animation definitions, their instances and the
// interpolators affectors refer to by type name
type Manager struct {
	opts          Options
	log           *slog.Logger
	animations    map[string]*Animation
	instances     []*Instance
	tweens        []*Tween
	interpolators map[string]Interpolator
	generated     int
	pulse         event.Subscription
}

// NewManager returns a manager with the builtin interpolators registered
func NewManager(opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	m := &Manager{
		opts:          opts,
		log:           opts.Logger,
		animations:    make(map[string]*Animation),
		interpolators: make(map[string]Interpolator),
	}
	for _, in := range Builtin() {
		m.interpolators[in.Type()] = in
	}
	return m
}

// AddInterpolator registers in under its type name
func (m *Manager) AddInterpolator(in Interpolator) error {
	if _, ok := m.interpolators[in.Type()]; ok {
		return guierr.InvalidRequest("interpolator %q already registered", in.Type())
	}
	m.interpolators[in.Type()] = in
	return nil
}

// RemoveInterpolator unregisters an interpolator type
func (m *Manager) RemoveInterpolator(name string) error {
	if _, ok := m.interpolators[name]; !ok {
		return guierr.UnknownObject("interpolator %q not found", name)
	}
	delete(m.interpolators, name)
	return nil
}

// Interpolator looks up an interpolator by type name
func (m *Manager) Interpolator(name string) (Interpolator, error) {
	in, ok := m.interpolators[name]
	if !ok {
		return nil, guierr.UnknownObject("interpolator %q not found", name)
	}
	return in, nil
}

// CreateAnimation defines a new animation. An empty name is replaced by a
// generated unique one.
func (m *Manager) CreateAnimation(name string) (*Animation, error) {
	if name == "" {
		for {
			m.generated++
			name = fmt.Sprintf("__anim_%d", m.generated)
			if _, taken := m.animations[name]; !taken {
				break
			}
		}
	}
	if _, ok := m.animations[name]; ok {
		return nil, guierr.InvalidRequest("animation %q already exists", name)
	}
	a := New(name)
	m.animations[name] = a
	return a, nil
}

// Animation looks up a definition by name
func (m *Manager) Animation(name string) (*Animation, error) {
	a, ok := m.animations[name]
	if !ok {
		return nil, guierr.UnknownObject("animation %q not found", name)
	}
	return a, nil
}

// AnimationNames returns the defined animation names, sorted
func (m *Manager) AnimationNames() []string {
	names := make([]string, 0, len(m.animations))
	for n := range m.animations {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DestroyAnimation removes a definition and every instance playing it
func (m *Manager) DestroyAnimation(name string) error {
	a, err := m.Animation(name)
	if err != nil {
		return err
	}
	m.DestroyAllInstancesOf(a)
	delete(m.animations, name)
	return nil
}

// Instantiate creates an instance of the named definition
func (m *Manager) Instantiate(name string) (*Instance, error) {
	a, err := m.Animation(name)
	if err != nil {
		return nil, err
	}
	inst := newInstance(a, m.log)
	inst.maxStepDeltaSkip = m.opts.MaxStepDeltaSkip
	inst.maxStepDeltaClamp = m.opts.MaxStepDeltaClamp
	m.instances = append(m.instances, inst)
	return inst, nil
}

// DestroyInstance stops inst and releases its subscriptions
func (m *Manager) DestroyInstance(inst *Instance) error {
	i := slices.Index(m.instances, inst)
	if i < 0 {
		return guierr.UnknownObject("animation instance of %q not owned by this manager", inst.def.name)
	}
	m.instances = slices.Delete(m.instances, i, i+1)
	if inst.running {
		inst.Stop()
	}
	inst.SetTargetWindow(nil)
	return nil
}

// DestroyAllInstancesOf destroys every instance playing a
func (m *Manager) DestroyAllInstancesOf(a *Animation) {
	for _, inst := range slices.Clone(m.instances) {
		if inst.def == a {
			_ = m.DestroyInstance(inst)
		}
	}
}

// Instances returns the live instances in creation order
func (m *Manager) Instances() []*Instance { return slices.Clone(m.instances) }

// TweenProperty starts a one-shot tween of a float property on w. It is
// stepped with the instances and dropped once done.
func (m *Manager) TweenProperty(w *gui.Window, property string, from, to, duration float32, p Progression) (*Tween, error) {
	t, err := NewTween(w, property, from, to, duration, p)
	if err != nil {
		return nil, err
	}
	m.tweens = append(m.tweens, t)
	return t, nil
}

// Tweens returns the tweens still in flight
func (m *Manager) Tweens() []*Tween { return slices.Clone(m.tweens) }

// AutoStepInstances steps every running instance and pending tween by
// elapsed seconds. Failures are logged and joined; the remaining instances
// still step.
func (m *Manager) AutoStepInstances(elapsed float32) error {
	if elapsed < 0 {
		return guierr.InvalidRequest("cannot step animations by negative delta %g", elapsed)
	}
	var errs []error
	for _, inst := range slices.Clone(m.instances) {
		if !inst.running {
			continue
		}
		if err := inst.Step(elapsed); err != nil {
			m.log.Warn("animation step failed", "animation", inst.def.name, "error", err)
			errs = append(errs, fmt.Errorf("step %s: %w", inst.def.name, err))
		}
	}
	m.tweens = slices.DeleteFunc(m.tweens, func(t *Tween) bool {
		if err := t.Update(elapsed); err != nil {
			m.log.Warn("tween step failed", "property", t.property, "error", err)
			errs = append(errs, fmt.Errorf("tween %s: %w", t.property, err))
			return true
		}
		return t.Done()
	})
	return errors.Join(errs...)
}

// Attach steps the instances on every time pulse injected into rt,
// replacing any earlier attachment
func (m *Manager) Attach(rt *gui.Runtime) {
	m.Detach()
	m.pulse = rt.Events().Subscribe(gui.EventTimePulse, func(a event.Args) bool {
		_ = m.AutoStepInstances(a.(*gui.TimeArgs).Elapsed)
		return false
	})
}

// Detach stops following the runtime time pulse
func (m *Manager) Detach() { m.pulse.Unsubscribe() }
