package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/1broseidon/cegui/internal/config"
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/platform"
)

// sessionFlags are the options shared by commands that build a session.
type sessionFlags struct {
	configPath string
	scheme     string
	layout     string
	size       string
}

func (f *sessionFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "path", "", "Config file path (default: ~/.config/cegui/config.yaml)")
	fs.StringVar(&f.scheme, "scheme", "", "Scheme file to load instead of the configured schemes")
	fs.StringVar(&f.layout, "layout", "", "Layout file (default: the scheme's first layout)")
	fs.StringVar(&f.size, "size", "", "Display size as WxH (default: display.width x display.height)")
}

// loadConfig reads the configuration and applies the flag overrides.
func (f *sessionFlags) loadConfig() (*config.Config, error) {
	res, err := loadConfigResult(f.configPath)
	if err != nil {
		return nil, err
	}
	cfg := res.Config
	if f.scheme != "" {
		cfg.Schemes = []string{f.scheme}
	}
	if f.size != "" {
		sz, err := parseSize(f.size)
		if err != nil {
			return nil, err
		}
		cfg.Display.Width, cfg.Display.Height = int(sz.Width), int(sz.Height)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// open builds a session with the layout installed.
func (f *sessionFlags) open() (*platform.Session, *slog.Logger, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := cfg.NewLogger(os.Stderr)
	s, err := platform.NewSession(platform.SessionOptions{Config: cfg, Logger: logger})
	if err != nil {
		return nil, nil, err
	}
	if err := s.LoadLayout(f.layout); err != nil {
		s.Close()
		return nil, nil, err
	}
	return s, logger, nil
}

// parseSize parses "WxH" with positive integer dimensions.
func parseSize(s string) (geom.Size, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return geom.Size{}, fmt.Errorf("invalid size %q: want WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return geom.Size{}, fmt.Errorf("invalid size %q: bad width", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return geom.Size{}, fmt.Errorf("invalid size %q: bad height", s)
	}
	return geom.Sz(float32(w), float32(h)), nil
}

func isHelpArg(args []string) bool {
	return len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help")
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}
