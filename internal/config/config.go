package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDisplayWidth   = 800
	DefaultDisplayHeight  = 600
	DefaultMaxTextureSize = 4096
	DefaultResourceGroup  = "default"
	DefaultFontName       = "Default"
	DefaultPreviewFPS     = 30
)

// DisplayConfig is the initial display size in pixels
type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LoggingConfig controls the CLI's slog handler
type LoggingConfig struct {
	// Level is one of: debug, info, warn, error
	Level string `yaml:"level"`
	// Format is text or json
	Format string `yaml:"format"`
}

type RendererConfig struct {
	// LegacyIdentityUnproject selects the unproject variant that assumes
	// an identity model matrix.
	LegacyIdentityUnproject bool `yaml:"legacy_identity_unproject"`
	// DepthRange is opengl ([-1, 1]) or direct3d ([0, 1])
	DepthRange     string `yaml:"depth_range"`
	MaxTextureSize int    `yaml:"max_texture_size"`
}

// ResourcesConfig maps resource group names to directories
type ResourcesConfig struct {
	DefaultGroup string            `yaml:"default_group"`
	Groups       map[string]string `yaml:"groups"`
}

// AnimationConfig holds the step delta limits copied into new instances.
// Zero disables a limit.
type AnimationConfig struct {
	MaxStepDeltaSkip  float32 `yaml:"max_step_delta_skip"`
	MaxStepDeltaClamp float32 `yaml:"max_step_delta_clamp"`
}

type NavigationConfig struct {
	// Strategy is spatial or linear
	Strategy string `yaml:"strategy"`
	Wrap     bool   `yaml:"wrap"`
}

// PreviewConfig drives the X11 and terminal previews
type PreviewConfig struct {
	FPS int `yaml:"fps"`
	// Scale multiplies the display size for the X11 window.
	Scale float32 `yaml:"scale"`
}

type Config struct {
	Display     DisplayConfig    `yaml:"display"`
	Logging     LoggingConfig    `yaml:"logging"`
	Renderer    RendererConfig   `yaml:"renderer"`
	Resources   ResourcesConfig  `yaml:"resources"`
	Schemes     []string         `yaml:"schemes"`
	DefaultFont string           `yaml:"default_font"`
	Animation   AnimationConfig  `yaml:"animation"`
	Navigation  NavigationConfig `yaml:"navigation"`
	Preview     PreviewConfig    `yaml:"preview"`
}

func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{Width: DefaultDisplayWidth, Height: DefaultDisplayHeight},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Renderer: RendererConfig{
			DepthRange:     "opengl",
			MaxTextureSize: DefaultMaxTextureSize,
		},
		Resources: ResourcesConfig{
			DefaultGroup: DefaultResourceGroup,
			Groups:       make(map[string]string),
		},
		DefaultFont: DefaultFontName,
		Navigation:  NavigationConfig{Strategy: "spatial", Wrap: true},
		Preview:     PreviewConfig{FPS: DefaultPreviewFPS, Scale: 1},
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/cegui/config.yaml, falling
// back to ~/.config/cegui/config.yaml.
func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "cegui", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "cegui", "config.yaml"), nil
}

// Save writes the configuration to path.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Display.Width <= 0 {
		return &ValidationError{Path: "display.width", Err: fmt.Errorf("width must be > 0")}
	}
	if c.Display.Height <= 0 {
		return &ValidationError{Path: "display.height", Err: fmt.Errorf("height must be > 0")}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("level must be one of: debug, info, warn, error")}
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return &ValidationError{Path: "logging.format", Err: fmt.Errorf("format must be one of: text, json")}
	}
	switch c.Renderer.DepthRange {
	case "opengl", "direct3d":
	default:
		return &ValidationError{Path: "renderer.depth_range", Err: fmt.Errorf("depth_range must be one of: opengl, direct3d")}
	}
	if c.Renderer.MaxTextureSize <= 0 {
		return &ValidationError{Path: "renderer.max_texture_size", Err: fmt.Errorf("max_texture_size must be > 0")}
	}
	if strings.TrimSpace(c.Resources.DefaultGroup) == "" {
		return &ValidationError{Path: "resources.default_group", Err: fmt.Errorf("default_group is required")}
	}
	for group, dir := range c.Resources.Groups {
		if strings.TrimSpace(group) == "" {
			return &ValidationError{Path: "resources.groups", Err: fmt.Errorf("groups contains an empty group name")}
		}
		if strings.TrimSpace(dir) == "" {
			return &ValidationError{Path: "resources.groups." + group, Err: fmt.Errorf("directory must not be empty")}
		}
	}
	for i, s := range c.Schemes {
		if strings.TrimSpace(s) == "" {
			return &ValidationError{Path: "schemes", Err: fmt.Errorf("entry %d is empty", i)}
		}
	}
	if c.Animation.MaxStepDeltaSkip < 0 {
		return &ValidationError{Path: "animation.max_step_delta_skip", Err: fmt.Errorf("max_step_delta_skip must be >= 0")}
	}
	if c.Animation.MaxStepDeltaClamp < 0 {
		return &ValidationError{Path: "animation.max_step_delta_clamp", Err: fmt.Errorf("max_step_delta_clamp must be >= 0")}
	}
	switch c.Navigation.Strategy {
	case "spatial", "linear":
	default:
		return &ValidationError{Path: "navigation.strategy", Err: fmt.Errorf("strategy must be one of: spatial, linear")}
	}
	if c.Preview.FPS <= 0 || c.Preview.FPS > 240 {
		return &ValidationError{Path: "preview.fps", Err: fmt.Errorf("fps must be between 1 and 240")}
	}
	if c.Preview.Scale <= 0 {
		return &ValidationError{Path: "preview.scale", Err: fmt.Errorf("scale must be > 0")}
	}
	return nil
}
