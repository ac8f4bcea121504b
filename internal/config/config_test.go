package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/cegui/internal/render"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Display.Width != DefaultDisplayWidth || cfg.Display.Height != DefaultDisplayHeight {
		t.Fatalf("unexpected default display %+v", cfg.Display)
	}
}

func TestDefaultConfigPath_HonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if path != filepath.Join("/tmp/xdg", "cegui", "config.yaml") {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
	if res.Config.Navigation.Strategy != "spatial" {
		t.Fatalf("expected default strategy, got %q", res.Config.Navigation.Strategy)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.DefaultFont != DefaultFontName {
		t.Fatalf("expected default_font %q, got %q", DefaultFontName, res.Config.DefaultFont)
	}
	if len(res.Files) != 1 {
		t.Fatalf("expected the file to be recorded, got %v", res.Files)
	}
}

func TestLoadFromPath_PartialSectionKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"display:",
		"  width: 1024",
		"renderer:",
		"  depth_range: direct3d",
		"navigation:",
		"  wrap: false",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Display.Width != 1024 || cfg.Display.Height != DefaultDisplayHeight {
		t.Fatalf("unexpected display %+v", cfg.Display)
	}
	if cfg.Renderer.MaxTextureSize != DefaultMaxTextureSize {
		t.Fatalf("expected max_texture_size to stay default, got %d", cfg.Renderer.MaxTextureSize)
	}
	if cfg.Navigation.Wrap || cfg.Navigation.Strategy != "spatial" {
		t.Fatalf("unexpected navigation %+v", cfg.Navigation)
	}
	opts := cfg.RendererOptions(nil)
	if opts.Depth != render.DepthDirect3D {
		t.Fatalf("expected direct3d depth, got %v", opts.Depth)
	}
	if opts.DisplaySize.Width != 1024 {
		t.Fatalf("expected display width 1024, got %v", opts.DisplaySize)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "display:\n  depth: 3\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "depth") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "logging:\n  level: loud\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Path != "logging.level" {
		t.Fatalf("expected path logging.level, got %q", verr.Path)
	}
	if !strings.HasPrefix(err.Error(), path+":2:10:") {
		t.Fatalf("expected file:line:col prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{name: "zero width", mutate: func(c *Config) { c.Display.Width = 0 }, path: "display.width"},
		{name: "negative height", mutate: func(c *Config) { c.Display.Height = -1 }, path: "display.height"},
		{name: "format", mutate: func(c *Config) { c.Logging.Format = "xml" }, path: "logging.format"},
		{name: "depth range", mutate: func(c *Config) { c.Renderer.DepthRange = "vulkan" }, path: "renderer.depth_range"},
		{name: "texture size", mutate: func(c *Config) { c.Renderer.MaxTextureSize = 0 }, path: "renderer.max_texture_size"},
		{name: "group dir", mutate: func(c *Config) { c.Resources.Groups["looks"] = " " }, path: "resources.groups.looks"},
		{name: "empty scheme", mutate: func(c *Config) { c.Schemes = []string{""} }, path: "schemes"},
		{name: "skip", mutate: func(c *Config) { c.Animation.MaxStepDeltaSkip = -1 }, path: "animation.max_step_delta_skip"},
		{name: "strategy", mutate: func(c *Config) { c.Navigation.Strategy = "matrix" }, path: "navigation.strategy"},
		{name: "fps", mutate: func(c *Config) { c.Preview.FPS = 0 }, path: "preview.fps"},
		{name: "scale", mutate: func(c *Config) { c.Preview.Scale = 0 }, path: "preview.scale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()

	// config.d loaded first, in sorted order.
	writeFile(t, filepath.Join(dir, "config.d", "10-base.yaml"), "preview:\n  fps: 10\n  scale: 2\n")
	writeFile(t, filepath.Join(dir, "config.d", "20-override.yaml"), "preview:\n  fps: 20\n")

	// Main file overrides includes.
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"include:",
		"  - config.d",
		"preview:",
		"  fps: 60",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Preview.FPS != 60 {
		t.Fatalf("expected fps 60, got %d", res.Config.Preview.FPS)
	}
	if res.Config.Preview.Scale != 2 {
		t.Fatalf("expected scale 2 from include, got %v", res.Config.Preview.Scale)
	}
	if len(res.Files) != 3 || !strings.HasSuffix(res.Files[0], "10-base.yaml") || res.Files[2] != res.Sources["preview.fps"].File {
		t.Fatalf("unexpected load order %v", res.Files)
	}
}

func TestLoadFromPath_ResourceGroupsMergeByKey(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "base.yaml"), "resources:\n  groups:\n    looks: /srv/looks\n    images: /srv/images\n")
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "include: base.yaml\nresources:\n  default_group: looks\n  groups:\n    images: /home/images\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	groups := res.Config.Resources.Groups
	if groups["looks"] != "/srv/looks" || groups["images"] != "/home/images" {
		t.Fatalf("unexpected groups %v", groups)
	}
	p := res.Config.ResourceProvider()
	if p == nil {
		t.Fatalf("expected a provider")
	}
	if p.DefaultGroup() != "looks" || p.GroupDirectory("images") != "/home/images" {
		t.Fatalf("unexpected provider groups %v", p.Groups())
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "include:\n  - missing.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "include") || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected include error, got %v", err)
	}
	if !strings.Contains(err.Error(), path+":") {
		t.Fatalf("expected error to include file:line:col prefix, got %v", err)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	writeFile(t, a, "include: b.yaml\n")
	writeFile(t, filepath.Join(dir, "b.yaml"), "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestLoadFromPath_IncludeRejectsNonString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "include: 3\n")

	if _, err := LoadFromPath(path); err == nil || !strings.Contains(err.Error(), "include must be") {
		t.Fatalf("expected include type error, got %v", err)
	}
}

func TestExplain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "display:\n  width: 1280\nschemes:\n  - ui.scheme.yaml\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	val, src, err := Explain(res, "display.width")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 1280 {
		t.Fatalf("expected 1280, got %#v", val)
	}
	if src.Kind != SourceFile || src.Line != 2 {
		t.Fatalf("expected file source on line 2, got %#v", src)
	}

	val, src, err = Explain(res, "navigation.strategy")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != "spatial" || src.Kind != SourceDefault {
		t.Fatalf("expected default spatial, got %#v from %#v", val, src)
	}

	val, _, err = Explain(res, "schemes")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	list, ok := val.([]any)
	if !ok || len(list) != 1 || list[0] != "ui.scheme.yaml" {
		t.Fatalf("unexpected schemes %#v", val)
	}

	if _, _, err := Explain(res, "display.depth"); err == nil {
		t.Fatalf("expected unknown path error")
	}
	if _, _, err := Explain(res, "display.width.px"); err == nil {
		t.Fatalf("expected error walking into a scalar")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Display.Width = 640
	cfg.Resources.Groups["looks"] = "/srv/looks"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Display.Width != 640 || res.Config.Resources.Groups["looks"] != "/srv/looks" {
		t.Fatalf("unexpected reloaded config %+v", res.Config)
	}
}

func TestSlogLevel(t *testing.T) {
	for level, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		cfg := DefaultConfig()
		cfg.Logging.Level = level
		if got := cfg.SlogLevel(); got != want {
			t.Fatalf("level %s: expected %v, got %v", level, want, got)
		}
	}
}
