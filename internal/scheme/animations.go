package scheme

import (
	"fmt"

	"github.com/1broseidon/cegui/internal/animation"
	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/guierr"
)

type animationsDoc struct {
	Animations []animationDoc `yaml:"animations"`
}

type animationDoc struct {
	Name          string            `yaml:"name"`
	Duration      float32           `yaml:"duration"`
	Replay        string            `yaml:"replay"`
	AutoStart     bool              `yaml:"auto_start"`
	Affectors     []affectorDoc     `yaml:"affectors"`
	Subscriptions []subscriptionDoc `yaml:"subscriptions"`
}

type affectorDoc struct {
	Property     string        `yaml:"property"`
	Interpolator string        `yaml:"interpolator"`
	Method       string        `yaml:"method"`
	KeyFrames    []keyFrameDoc `yaml:"key_frames"`
}

type keyFrameDoc struct {
	Position       float32 `yaml:"position"`
	Value          string  `yaml:"value"`
	Progression    string  `yaml:"progression"`
	SourceProperty string  `yaml:"source_property"`
}

type subscriptionDoc struct {
	Event  string `yaml:"event"`
	Action string `yaml:"action"`
}

// LoadAnimations reads an animation file and defines its animations in the
// loader's animation manager
func (l *Loader) LoadAnimations(file, group string) ([]string, error) {
	if l.anims == nil {
		return nil, guierr.InvalidRequest("loader has no animation manager for %s", file)
	}
	var doc animationsDoc
	if err := l.readDoc("animations", file, group, &doc); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(doc.Animations))
	for _, ad := range doc.Animations {
		a, err := l.anims.CreateAnimation(ad.Name)
		if err != nil {
			return names, fmt.Errorf("animations %s: %w", file, err)
		}
		if err := l.defineAnimation(a, ad); err != nil {
			_ = l.anims.DestroyAnimation(a.Name())
			return names, fmt.Errorf("animations %s: animation %q: %w", file, a.Name(), err)
		}
		names = append(names, a.Name())
	}
	l.log.Debug("animations loaded", "file", file, "animations", len(names))
	return names, nil
}

func (l *Loader) defineAnimation(a *animation.Animation, d animationDoc) error {
	if d.Duration < 0 {
		return guierr.InvalidRequest("duration %g is negative", d.Duration)
	}
	a.Duration = d.Duration
	a.AutoStart = d.AutoStart
	if d.Replay != "" {
		mode, err := animation.ParseReplayMode(d.Replay)
		if err != nil {
			return err
		}
		a.ReplayMode = mode
	}
	for _, ad := range d.Affectors {
		interp, err := l.anims.Interpolator(ad.Interpolator)
		if err != nil {
			return fmt.Errorf("affector %q: %w", ad.Property, err)
		}
		method, err := animation.ParseApplicationMethod(ad.Method)
		if err != nil {
			return fmt.Errorf("affector %q: %w", ad.Property, err)
		}
		af := a.CreateAffector(ad.Property, interp)
		af.Method = method
		for _, kd := range ad.KeyFrames {
			if kd.Position < 0 || kd.Position > d.Duration {
				return guierr.InvalidRequest("affector %q: key frame at %g is outside [0, %g]", ad.Property, kd.Position, d.Duration)
			}
			prog, err := animation.ParseProgression(kd.Progression)
			if err != nil {
				return fmt.Errorf("affector %q: %w", ad.Property, err)
			}
			k, err := af.CreateKeyFrame(kd.Position, kd.Value, prog)
			if err != nil {
				return fmt.Errorf("affector %q: %w", ad.Property, err)
			}
			k.SourceProperty = kd.SourceProperty
		}
	}
	for _, sd := range d.Subscriptions {
		action, err := animation.ParseAction(sd.Action)
		if err != nil {
			return err
		}
		if err := a.DefineAutoSubscription(event.Name(sd.Event), action); err != nil {
			return err
		}
	}
	return nil
}
