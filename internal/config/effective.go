package config

import (
	"fmt"
	"sort"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig overlays raw onto the defaults
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if d := raw.Display; d != nil {
		cfg.Display.Width = derefInt(d.Width, cfg.Display.Width)
		cfg.Display.Height = derefInt(d.Height, cfg.Display.Height)
	}
	if l := raw.Logging; l != nil {
		cfg.Logging.Level = derefString(l.Level, cfg.Logging.Level)
		cfg.Logging.Format = derefString(l.Format, cfg.Logging.Format)
	}
	if r := raw.Renderer; r != nil {
		if r.LegacyIdentityUnproject != nil {
			cfg.Renderer.LegacyIdentityUnproject = *r.LegacyIdentityUnproject
		}
		cfg.Renderer.DepthRange = derefString(r.DepthRange, cfg.Renderer.DepthRange)
		cfg.Renderer.MaxTextureSize = derefInt(r.MaxTextureSize, cfg.Renderer.MaxTextureSize)
	}
	if r := raw.Resources; r != nil {
		cfg.Resources.DefaultGroup = derefString(r.DefaultGroup, cfg.Resources.DefaultGroup)
		for _, group := range sortedKeys(r.Groups) {
			if group == "" {
				return nil, &ValidationError{Path: "resources.groups", Err: fmt.Errorf("groups contains an empty group name")}
			}
			cfg.Resources.Groups[group] = r.Groups[group]
		}
	}
	if raw.Schemes != nil {
		cfg.Schemes = append([]string(nil), raw.Schemes...)
	}
	cfg.DefaultFont = derefString(raw.DefaultFont, cfg.DefaultFont)
	if a := raw.Animation; a != nil {
		cfg.Animation.MaxStepDeltaSkip = derefFloat(a.MaxStepDeltaSkip, cfg.Animation.MaxStepDeltaSkip)
		cfg.Animation.MaxStepDeltaClamp = derefFloat(a.MaxStepDeltaClamp, cfg.Animation.MaxStepDeltaClamp)
	}
	if n := raw.Navigation; n != nil {
		cfg.Navigation.Strategy = derefString(n.Strategy, cfg.Navigation.Strategy)
		if n.Wrap != nil {
			cfg.Navigation.Wrap = *n.Wrap
		}
	}
	if p := raw.Preview; p != nil {
		cfg.Preview.FPS = derefInt(p.FPS, cfg.Preview.FPS)
		cfg.Preview.Scale = derefFloat(p.Scale, cfg.Preview.Scale)
	}
	return cfg, nil
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func derefString(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func derefFloat(p *float32, def float32) float32 {
	if p == nil {
		return def
	}
	return *p
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
