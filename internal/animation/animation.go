// Package animation drives window properties through key framed timelines.
//
// An Animation is a reusable definition: affectors name a target property,
// an interpolator and a set of key frames. An Instance plays a definition
// against one window, advanced by the elapsed time handed to Step (usually
// through Manager.AutoStepInstances on every runtime time pulse).
package animation

import (
	"slices"

	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/guierr"
)

// Animation is a named animation definition
type Animation struct {
	name string

	Duration   float32
	ReplayMode ReplayMode
	// AutoStart starts an instance as soon as it gets a target.
	AutoStart bool

	affectors []*Affector
	autoSubs  []AutoSubscription
}

// AutoSubscription starts, stops or pauses an instance when its target
// window fires Event
type AutoSubscription struct {
	Event  event.Name
	Action Action
}

// New returns an empty definition that loops, the default replay mode
func New(name string) *Animation { return &Animation{name: name, ReplayMode: Loop} }

func (a *Animation) Name() string { return a.name }

// CreateAffector appends an affector for target interpolated by interp
func (a *Animation) CreateAffector(target string, interp Interpolator) *Affector {
	af := &Affector{parent: a, TargetProperty: target, Interpolator: interp}
	a.affectors = append(a.affectors, af)
	return af
}

// DestroyAffector removes af from the definition
func (a *Animation) DestroyAffector(af *Affector) error {
	i := slices.Index(a.affectors, af)
	if i < 0 {
		return guierr.InvalidRequest("affector not found in animation %q", a.name)
	}
	a.affectors = slices.Delete(a.affectors, i, i+1)
	af.parent = nil
	return nil
}

// Affectors returns the affectors in creation order
func (a *Animation) Affectors() []*Affector { return slices.Clone(a.affectors) }

// DefineAutoSubscription makes instances run action when their target
// fires ev. Defining the same pair twice fails.
func (a *Animation) DefineAutoSubscription(ev event.Name, action Action) error {
	sub := AutoSubscription{Event: ev, Action: action}
	if slices.Contains(a.autoSubs, sub) {
		return guierr.InvalidRequest("auto subscription %s -> %s already defined on %q", ev, action, a.name)
	}
	a.autoSubs = append(a.autoSubs, sub)
	return nil
}

// UndefineAutoSubscription removes a pair defined earlier
func (a *Animation) UndefineAutoSubscription(ev event.Name, action Action) error {
	i := slices.Index(a.autoSubs, AutoSubscription{Event: ev, Action: action})
	if i < 0 {
		return guierr.InvalidRequest("auto subscription %s -> %s not defined on %q", ev, action, a.name)
	}
	a.autoSubs = slices.Delete(a.autoSubs, i, i+1)
	return nil
}

// UndefineAllAutoSubscriptions drops every auto subscription
func (a *Animation) UndefineAllAutoSubscriptions() { a.autoSubs = nil }

// AutoSubscriptions returns the pairs in definition order
func (a *Animation) AutoSubscriptions() []AutoSubscription { return slices.Clone(a.autoSubs) }

func (a *Animation) savePropertyValues(inst *Instance) {
	for _, af := range a.affectors {
		af.savePropertyValues(inst)
	}
}

func (a *Animation) apply(inst *Instance) error {
	var first error
	for _, af := range a.affectors {
		if err := af.apply(inst); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Affector animates one property of the target
type Affector struct {
	parent *Animation

	TargetProperty string
	Interpolator   Interpolator
	Method         ApplicationMethod

	frames []*KeyFrame
}

// KeyFrame pins a value at a position on the timeline
type KeyFrame struct {
	parent   *Affector
	position float32

	Value       string
	Progression Progression
	// SourceProperty, when set, takes the value from the target property
	// as it was when the instance started.
	SourceProperty string
}

func (k *KeyFrame) Position() float32 { return k.position }

func (k *KeyFrame) valueFor(inst *Instance) (string, error) {
	if k.SourceProperty == "" {
		return k.Value, nil
	}
	return inst.SavedPropertyValue(k.SourceProperty)
}

// CreateKeyFrame adds a frame at position. Only one frame may sit at a
// position.
func (af *Affector) CreateKeyFrame(position float32, value string, p Progression) (*KeyFrame, error) {
	if af.KeyFrameAt(position) != nil {
		return nil, guierr.InvalidRequest("a key frame already exists at %g", position)
	}
	k := &KeyFrame{parent: af, position: position, Value: value, Progression: p}
	af.insert(k)
	return k, nil
}

func (af *Affector) insert(k *KeyFrame) {
	i, _ := slices.BinarySearchFunc(af.frames, k.position, func(f *KeyFrame, pos float32) int {
		switch {
		case f.position < pos:
			return -1
		case f.position > pos:
			return 1
		}
		return 0
	})
	af.frames = slices.Insert(af.frames, i, k)
}

// DestroyKeyFrame removes k
func (af *Affector) DestroyKeyFrame(k *KeyFrame) error {
	i := slices.Index(af.frames, k)
	if i < 0 {
		return guierr.InvalidRequest("key frame at %g not found", k.position)
	}
	af.frames = slices.Delete(af.frames, i, i+1)
	k.parent = nil
	return nil
}

// KeyFrameAt returns the frame at exactly position, or nil
func (af *Affector) KeyFrameAt(position float32) *KeyFrame {
	for _, k := range af.frames {
		if k.position == position {
			return k
		}
	}
	return nil
}

// KeyFrames returns the frames sorted by position
func (af *Affector) KeyFrames() []*KeyFrame { return slices.Clone(af.frames) }

// MoveKeyFrame moves k to position, keeping the frames sorted
func (af *Affector) MoveKeyFrame(k *KeyFrame, position float32) error {
	if k.position == position {
		return nil
	}
	i := slices.Index(af.frames, k)
	if i < 0 {
		return guierr.UnknownObject("key frame at %g does not belong to this affector", k.position)
	}
	if af.KeyFrameAt(position) != nil {
		return guierr.InvalidRequest("a key frame already exists at %g", position)
	}
	af.frames = slices.Delete(af.frames, i, i+1)
	k.position = position
	af.insert(k)
	return nil
}

func (af *Affector) savePropertyValues(inst *Instance) {
	if af.Method != Absolute {
		inst.savePropertyValue(af.TargetProperty)
	}
	for _, k := range af.frames {
		if k.SourceProperty != "" {
			inst.savePropertyValue(k.SourceProperty)
		}
	}
}

// neighbours returns the frames around pos and how far between them pos
// sits, before the right frame's progression is applied
func (af *Affector) neighbours(pos float32) (left, right *KeyFrame, t float32) {
	for _, k := range af.frames {
		if k.position <= pos {
			left = k
		}
		if k.position >= pos && right == nil {
			right = k
		}
	}
	var ld, rd float32
	if left != nil {
		ld = pos - left.position
	} else {
		left = af.frames[0]
	}
	if right != nil {
		rd = right.position - pos
	} else {
		right = af.frames[len(af.frames)-1]
	}
	if ld+rd == 0 {
		ld, rd = 0.5, 0.5
	}
	return left, right, ld / (ld + rd)
}

// ValueAt returns the interpolated value at pos for inst's target
func (af *Affector) ValueAt(inst *Instance, pos float32) (string, error) {
	if af.Interpolator == nil {
		return "", guierr.InvalidRequest("affector for %q has no interpolator", af.TargetProperty)
	}
	if len(af.frames) == 0 {
		return "", guierr.InvalidRequest("affector for %q has no key frames", af.TargetProperty)
	}
	left, right, t := af.neighbours(pos)
	t = right.Progression.Alter(t)

	v1, err := left.valueFor(inst)
	if err != nil {
		return "", err
	}
	v2, err := right.valueFor(inst)
	if err != nil {
		return "", err
	}
	switch af.Method {
	case Relative:
		base, err := inst.SavedPropertyValue(af.TargetProperty)
		if err != nil {
			return "", err
		}
		return af.Interpolator.Relative(base, v1, v2, t)
	case RelativeMultiply:
		base, err := inst.SavedPropertyValue(af.TargetProperty)
		if err != nil {
			return "", err
		}
		return af.Interpolator.RelativeMultiply(base, v1, v2, t)
	default:
		return af.Interpolator.Absolute(v1, v2, t)
	}
}

func (af *Affector) apply(inst *Instance) error {
	if len(af.frames) == 0 {
		return nil
	}
	w := inst.targetWindow()
	if w == nil {
		return nil
	}
	if af.TargetProperty == "" || af.Interpolator == nil {
		inst.log.Warn("affector cannot be applied", "animation", inst.def.name,
			"property", af.TargetProperty, "has_interpolator", af.Interpolator != nil)
		return nil
	}
	v, err := af.ValueAt(inst, inst.position)
	if err != nil {
		return err
	}
	return w.SetProperty(af.TargetProperty, v)
}
