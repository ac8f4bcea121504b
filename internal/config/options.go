package config

import (
	"io"
	"log/slog"

	"github.com/1broseidon/cegui/internal/animation"
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/navigator"
	"github.com/1broseidon/cegui/internal/render"
	"github.com/1broseidon/cegui/internal/render/raster"
	"github.com/1broseidon/cegui/internal/resource"
)

// SlogLevel maps logging.level onto a slog level; unknown values are info.
func (c *Config) SlogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NewLogger builds the handler named by logging.format writing to w
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (c *Config) DisplaySize() geom.Size {
	return geom.Sz(float32(c.Display.Width), float32(c.Display.Height))
}

// RendererOptions returns the raster options for the configured display
func (c *Config) RendererOptions(log *slog.Logger) raster.Options {
	depth := render.DepthOpenGL
	if c.Renderer.DepthRange == "direct3d" {
		depth = render.DepthDirect3D
	}
	return raster.Options{
		DisplaySize:             c.DisplaySize(),
		Depth:                   depth,
		LegacyIdentityUnproject: c.Renderer.LegacyIdentityUnproject,
		MaxTextureSize:          c.Renderer.MaxTextureSize,
		Logger:                  log,
	}
}

func (c *Config) AnimationOptions(log *slog.Logger) animation.Options {
	return animation.Options{
		MaxStepDeltaSkip:  c.Animation.MaxStepDeltaSkip,
		MaxStepDeltaClamp: c.Animation.MaxStepDeltaClamp,
		Logger:            log,
	}
}

// ResourceProvider maps the configured groups onto directories. It returns
// nil when no group is configured.
func (c *Config) ResourceProvider() *resource.DirProvider {
	if len(c.Resources.Groups) == 0 {
		return nil
	}
	p := resource.NewDirProvider()
	for _, group := range sortedKeys(c.Resources.Groups) {
		p.SetGroupDirectory(group, c.Resources.Groups[group])
	}
	p.SetDefaultGroup(c.Resources.DefaultGroup)
	return p
}

// NavigatorStrategy builds the configured strategy. The linear strategy
// captures the focusable windows of rt in document order, so it is rebuilt
// whenever a layout loads.
func (c *Config) NavigatorStrategy(rt *gui.Runtime) navigator.Strategy {
	spatial := &navigator.Spatial{Wrap: c.Navigation.Wrap}
	if c.Navigation.Strategy == "linear" {
		return &navigator.Linear{Windows: spatial.Candidates(rt), Wrap: c.Navigation.Wrap}
	}
	return spatial
}
