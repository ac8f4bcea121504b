package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawDisplay struct {
	Width  *int `yaml:"width"`
	Height *int `yaml:"height"`
}

type RawLogging struct {
	Level  *string `yaml:"level"`
	Format *string `yaml:"format"`
}

type RawRenderer struct {
	LegacyIdentityUnproject *bool   `yaml:"legacy_identity_unproject"`
	DepthRange              *string `yaml:"depth_range"`
	MaxTextureSize          *int    `yaml:"max_texture_size"`
}

// RawResources merges groups key by key; a later file can repoint a group
// without restating the others.
type RawResources struct {
	DefaultGroup *string           `yaml:"default_group"`
	Groups       map[string]string `yaml:"groups"`
}

type RawAnimation struct {
	MaxStepDeltaSkip  *float32 `yaml:"max_step_delta_skip"`
	MaxStepDeltaClamp *float32 `yaml:"max_step_delta_clamp"`
}

type RawNavigation struct {
	Strategy *string `yaml:"strategy"`
	Wrap     *bool   `yaml:"wrap"`
}

type RawPreview struct {
	FPS   *int     `yaml:"fps"`
	Scale *float32 `yaml:"scale"`
}

// RawConfig is one config file as written. Nil fields were not set and
// leave the value underneath untouched.
type RawConfig struct {
	Include IncludeList `yaml:"include"`

	Display     *RawDisplay    `yaml:"display"`
	Logging     *RawLogging    `yaml:"logging"`
	Renderer    *RawRenderer   `yaml:"renderer"`
	Resources   *RawResources  `yaml:"resources"`
	Schemes     []string       `yaml:"schemes"`
	DefaultFont *string        `yaml:"default_font"`
	Animation   *RawAnimation  `yaml:"animation"`
	Navigation  *RawNavigation `yaml:"navigation"`
	Preview     *RawPreview    `yaml:"preview"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c
	out.Include = nil

	if overlay.Display != nil {
		base := RawDisplay{}
		if out.Display != nil {
			base = *out.Display
		}
		merged := mergeRawDisplay(base, *overlay.Display)
		out.Display = &merged
	}
	if overlay.Logging != nil {
		base := RawLogging{}
		if out.Logging != nil {
			base = *out.Logging
		}
		merged := mergeRawLogging(base, *overlay.Logging)
		out.Logging = &merged
	}
	if overlay.Renderer != nil {
		base := RawRenderer{}
		if out.Renderer != nil {
			base = *out.Renderer
		}
		merged := mergeRawRenderer(base, *overlay.Renderer)
		out.Renderer = &merged
	}
	if overlay.Resources != nil {
		base := RawResources{}
		if out.Resources != nil {
			base = *out.Resources
		}
		merged := mergeRawResources(base, *overlay.Resources)
		out.Resources = &merged
	}
	if overlay.Schemes != nil {
		out.Schemes = append([]string(nil), overlay.Schemes...)
	}
	if overlay.DefaultFont != nil {
		out.DefaultFont = overlay.DefaultFont
	}
	if overlay.Animation != nil {
		base := RawAnimation{}
		if out.Animation != nil {
			base = *out.Animation
		}
		merged := mergeRawAnimation(base, *overlay.Animation)
		out.Animation = &merged
	}
	if overlay.Navigation != nil {
		base := RawNavigation{}
		if out.Navigation != nil {
			base = *out.Navigation
		}
		merged := mergeRawNavigation(base, *overlay.Navigation)
		out.Navigation = &merged
	}
	if overlay.Preview != nil {
		base := RawPreview{}
		if out.Preview != nil {
			base = *out.Preview
		}
		merged := mergeRawPreview(base, *overlay.Preview)
		out.Preview = &merged
	}
	return out
}

func mergeRawDisplay(base RawDisplay, overlay RawDisplay) RawDisplay {
	out := base
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	return out
}

func mergeRawLogging(base RawLogging, overlay RawLogging) RawLogging {
	out := base
	if overlay.Level != nil {
		out.Level = overlay.Level
	}
	if overlay.Format != nil {
		out.Format = overlay.Format
	}
	return out
}

func mergeRawRenderer(base RawRenderer, overlay RawRenderer) RawRenderer {
	out := base
	if overlay.LegacyIdentityUnproject != nil {
		out.LegacyIdentityUnproject = overlay.LegacyIdentityUnproject
	}
	if overlay.DepthRange != nil {
		out.DepthRange = overlay.DepthRange
	}
	if overlay.MaxTextureSize != nil {
		out.MaxTextureSize = overlay.MaxTextureSize
	}
	return out
}

func mergeRawResources(base RawResources, overlay RawResources) RawResources {
	out := base
	if overlay.DefaultGroup != nil {
		out.DefaultGroup = overlay.DefaultGroup
	}
	if overlay.Groups != nil {
		groups := make(map[string]string, len(base.Groups)+len(overlay.Groups))
		for k, v := range base.Groups {
			groups[k] = v
		}
		for k, v := range overlay.Groups {
			groups[k] = v
		}
		out.Groups = groups
	}
	return out
}

func mergeRawAnimation(base RawAnimation, overlay RawAnimation) RawAnimation {
	out := base
	if overlay.MaxStepDeltaSkip != nil {
		out.MaxStepDeltaSkip = overlay.MaxStepDeltaSkip
	}
	if overlay.MaxStepDeltaClamp != nil {
		out.MaxStepDeltaClamp = overlay.MaxStepDeltaClamp
	}
	return out
}

func mergeRawNavigation(base RawNavigation, overlay RawNavigation) RawNavigation {
	out := base
	if overlay.Strategy != nil {
		out.Strategy = overlay.Strategy
	}
	if overlay.Wrap != nil {
		out.Wrap = overlay.Wrap
	}
	return out
}

func mergeRawPreview(base RawPreview, overlay RawPreview) RawPreview {
	out := base
	if overlay.FPS != nil {
		out.FPS = overlay.FPS
	}
	if overlay.Scale != nil {
		out.Scale = overlay.Scale
	}
	return out
}
