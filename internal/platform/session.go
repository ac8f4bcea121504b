package platform

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/1broseidon/cegui/internal/animation"
	"github.com/1broseidon/cegui/internal/config"
	"github.com/1broseidon/cegui/internal/falagard"
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/navigator"
	"github.com/1broseidon/cegui/internal/render/raster"
	"github.com/1broseidon/cegui/internal/resource"
	"github.com/1broseidon/cegui/internal/scheme"
	"github.com/1broseidon/cegui/internal/widgets"
)

// SessionOptions configures NewSession
type SessionOptions struct {
	// Config defaults to config.DefaultConfig.
	Config *config.Config
	// Provider reads scheme and layout files. When nil the configured
	// resource groups are searched before the embedded skin.
	Provider resource.Provider
	Logger   *slog.Logger
}

// Session is a runtime wired to the raster renderer, the look engine, the
// animation system and a navigator, with the configured schemes loaded.
// It is not safe for concurrent use.
type Session struct {
	Runtime    *gui.Runtime
	Renderer   *raster.Renderer
	Looks      *falagard.Manager
	Animations *animation.Manager
	Loader     *scheme.Loader
	Navigator  *navigator.Navigator

	Schemes []*scheme.Scheme
	// Layout is the layout currently installed as the root, or nil.
	Layout *scheme.Layout

	cfg *config.Config
	log *slog.Logger
}

func NewSession(opts SessionOptions) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	r := raster.New(cfg.RendererOptions(log.With("component", "raster")))
	rt, err := gui.NewRuntime(gui.Options{Renderer: r, Logger: log.With("component", "gui")})
	if err != nil {
		return nil, err
	}
	if err := widgets.Register(rt); err != nil {
		return nil, err
	}
	looks := falagard.NewManager(log.With("component", "falagard"))
	if err := falagard.Register(rt, looks); err != nil {
		return nil, err
	}
	anims := animation.NewManager(cfg.AnimationOptions(log.With("component", "animation")))
	anims.Attach(rt)

	provider := opts.Provider
	if provider == nil {
		var builtin resource.Provider = resource.NewFSProvider(scheme.Builtin())
		provider = builtin
		if dirs := cfg.ResourceProvider(); dirs != nil {
			provider = resource.Chain{dirs, builtin}
		}
	}

	s := &Session{
		Runtime:    rt,
		Renderer:   r,
		Looks:      looks,
		Animations: anims,
		Navigator:  navigator.New(rt, cfg.NavigatorStrategy(rt), navigator.Options{Logger: log.With("component", "navigator")}),
		cfg:        cfg,
		log:        log,
	}
	s.Loader = scheme.NewLoader(rt, scheme.Options{
		Provider:   provider,
		Group:      cfg.Resources.DefaultGroup,
		Looks:      looks,
		Animations: anims,
		Logger:     log.With("component", "scheme"),
	})

	files := cfg.Schemes
	if len(files) == 0 {
		files = []string{scheme.BuiltinScheme}
	}
	for _, f := range files {
		sc, err := s.Loader.LoadScheme(f)
		if err != nil {
			anims.Detach()
			return nil, err
		}
		s.Schemes = append(s.Schemes, sc)
	}
	if cfg.DefaultFont != "" {
		if _, err := rt.Font(cfg.DefaultFont); err == nil {
			if err := rt.SetDefaultFont(cfg.DefaultFont); err != nil {
				return nil, err
			}
		} else {
			log.Warn("configured default font is not defined by any scheme", "font", cfg.DefaultFont)
		}
	}
	return s, nil
}

// Config returns the configuration the session was built from
func (s *Session) Config() *config.Config { return s.cfg }

// DefaultLayout returns the first layout shipped by the loaded schemes
func (s *Session) DefaultLayout() (string, error) {
	for _, sc := range s.Schemes {
		if len(sc.Layouts) > 0 {
			return sc.Layouts[0], nil
		}
	}
	return "", guierr.UnknownObject("no loaded scheme ships a layout")
}

// LoadLayout loads file and installs it as the root window, destroying the
// previous layout. An empty file loads DefaultLayout.
func (s *Session) LoadLayout(file string) error {
	if file == "" {
		def, err := s.DefaultLayout()
		if err != nil {
			return err
		}
		file = def
	}
	l, err := s.Loader.LoadLayout(file, s.cfg.Resources.DefaultGroup)
	if err != nil {
		return err
	}
	w, err := s.Runtime.Get(l.Root)
	if err != nil {
		return err
	}
	if old := s.Layout; old != nil {
		s.Layout = nil
		for _, inst := range old.Instances {
			_ = s.Animations.DestroyInstance(inst)
		}
		if err := s.Runtime.DestroyWindow(old.Root); err != nil {
			return fmt.Errorf("destroying previous layout: %w", err)
		}
	}
	s.Runtime.SetRootWindow(w)
	s.Layout = l
	s.Navigator.SetStrategy(s.cfg.NavigatorStrategy(s.Runtime))
	s.Navigator.SetCurrentFocusedWindow(gui.Handle{})
	s.log.Info("layout installed", "file", file, "root", w.Name())
	return nil
}

// Step advances animations and input timers by elapsed seconds and renders
// a frame. The returned image is reused by the next Step.
func (s *Session) Step(elapsed float32) (*image.RGBA, error) {
	if err := s.Runtime.InjectTimePulse(elapsed); err != nil {
		return nil, err
	}
	if err := s.Runtime.Render(); err != nil {
		return nil, err
	}
	return s.Renderer.Frame(), nil
}

// Resize changes the display size frames are rendered at
func (s *Session) Resize(sz geom.Size) error {
	if sz.Width <= 0 || sz.Height <= 0 {
		return guierr.InvalidRequest("display size %s is empty", sz.String())
	}
	s.Runtime.SetDisplaySize(sz)
	return nil
}

// Navigate moves focus for v. Confirm presses the focused window.
func (s *Session) Navigate(v navigator.SemanticValue) bool {
	if v == navigator.Confirm {
		handled := s.Runtime.InjectKeyDown(gui.KeyReturn)
		s.Runtime.InjectKeyUp(gui.KeyReturn)
		return handled
	}
	return s.Navigator.HandleSemanticEvent(v)
}

// Click moves the pointer to the centre of the window at path and clicks
// the left button there. It reports whether the press was handled.
func (s *Session) Click(path string) (bool, error) {
	w, err := s.Runtime.Window(path)
	if err != nil {
		return false, err
	}
	r := w.PixelRect()
	if r.IsEmpty() {
		return false, guierr.InvalidRequest("window %q has no visible area", path)
	}
	c := r.Centre()
	s.Runtime.InjectMousePosition(c.X, c.Y)
	down := s.Runtime.InjectMouseButtonDown(gui.LeftButton)
	up := s.Runtime.InjectMouseButtonUp(gui.LeftButton)
	return down || up, nil
}

// Close detaches the animation system from the runtime
func (s *Session) Close() { s.Animations.Detach() }
