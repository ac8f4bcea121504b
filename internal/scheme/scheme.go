// Package scheme loads the YAML resource files that skin and populate a
// runtime: schemes, imagesets, look files, animation files and layouts.
//
// A scheme names the other files. Loading one defines its images, fonts,
// looks and animations, then maps its window types onto the registered
// base kinds so they can be created by name.
package scheme

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/1broseidon/cegui/internal/animation"
	"github.com/1broseidon/cegui/internal/falagard"
	"github.com/1broseidon/cegui/internal/font"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/resource"
)

//go:embed builtin/*.yaml
var builtinFiles embed.FS

// BuiltinScheme is the scheme file of the embedded default skin
const BuiltinScheme = "builtin.scheme.yaml"

// BuiltinLayout is the demo layout shipped with the default skin
const BuiltinLayout = "demo.layout.yaml"

// Builtin returns the embedded default skin files
func Builtin() fs.FS {
	sub, err := fs.Sub(builtinFiles, "builtin")
	if err != nil {
		panic(err)
	}
	return sub
}

// Options configures a Loader
type Options struct {
	// Provider reads the files; the embedded default skin when nil.
	Provider resource.Provider
	// Codec decodes imageset textures; resource.ImageCodec when nil.
	Codec resource.Codec
	// Group is the resource group files are read from.
	Group string

	// Looks receives look files. Animations receives animation files and
	// plays the animations layouts bind.
	Looks      *falagard.Manager
	Animations *animation.Manager

	Logger *slog.Logger
}

// Loader reads resource files into a runtime
type Loader struct {
	rt       *gui.Runtime
	looks    *falagard.Manager
	anims    *animation.Manager
	provider resource.Provider
	codec    resource.Codec
	group    string
	log      *slog.Logger
}

// NewLoader returns a loader filling rt
func NewLoader(rt *gui.Runtime, opts Options) *Loader {
	if opts.Provider == nil {
		opts.Provider = resource.NewFSProvider(Builtin())
	}
	if opts.Codec == nil {
		opts.Codec = resource.ImageCodec{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		rt:       rt,
		looks:    opts.Looks,
		anims:    opts.Animations,
		provider: opts.Provider,
		codec:    opts.Codec,
		group:    opts.Group,
		log:      opts.Logger,
	}
}

type schemeDoc struct {
	Name       string       `yaml:"name"`
	Imagesets  []string     `yaml:"imagesets"`
	Fonts      []fontDoc    `yaml:"fonts"`
	LookNFeels []string     `yaml:"looknfeels"`
	Mappings   []mappingDoc `yaml:"mappings"`
	Animations []string     `yaml:"animations"`
	Layouts    []string     `yaml:"layouts"`
}

// fontDoc defines a bitmap font. Default makes it the runtime default.
type fontDoc struct {
	Name    string  `yaml:"name"`
	Scale   float32 `yaml:"scale"`
	Default bool    `yaml:"default"`
}

type mappingDoc struct {
	Type     string `yaml:"type"`
	Base     string `yaml:"base"`
	Look     string `yaml:"look"`
	Renderer string `yaml:"renderer"`
}

// Scheme summarises what loading a scheme defined
type Scheme struct {
	Name       string
	Images     []string
	Fonts      []string
	Looks      []string
	Types      []string
	Animations []string
	// Layouts lists the layout files the scheme ships; they are not loaded.
	Layouts []string
}

// LoadScheme reads a scheme file from the loader's group and loads every
// file it names from the same group
func (l *Loader) LoadScheme(file string) (*Scheme, error) {
	var doc schemeDoc
	if err := l.readDoc("scheme", file, l.group, &doc); err != nil {
		return nil, err
	}
	if doc.Name == "" {
		return nil, guierr.InvalidRequest("scheme %s has no name", file)
	}
	out := &Scheme{Name: doc.Name, Layouts: doc.Layouts}
	fail := func(err error) (*Scheme, error) { return out, fmt.Errorf("scheme %q: %w", doc.Name, err) }

	for _, f := range doc.Imagesets {
		names, err := l.LoadImageset(f, l.group)
		out.Images = append(out.Images, names...)
		if err != nil {
			return fail(err)
		}
	}
	for _, fd := range doc.Fonts {
		if err := l.loadFont(fd); err != nil {
			return fail(err)
		}
		out.Fonts = append(out.Fonts, fd.Name)
	}
	for _, f := range doc.LookNFeels {
		names, err := l.LoadLookNFeel(f, l.group)
		out.Looks = append(out.Looks, names...)
		if err != nil {
			return fail(err)
		}
	}
	for _, m := range doc.Mappings {
		renderer := m.Renderer
		if renderer == "" {
			renderer = falagard.RendererName
		}
		err := l.rt.MapType(gui.FalagardMapping{Type: m.Type, BaseType: m.Base, Look: m.Look, Renderer: renderer})
		if err != nil {
			return fail(err)
		}
		out.Types = append(out.Types, m.Type)
	}
	for _, f := range doc.Animations {
		names, err := l.LoadAnimations(f, l.group)
		out.Animations = append(out.Animations, names...)
		if err != nil {
			return fail(err)
		}
	}
	l.log.Info("scheme loaded", "name", doc.Name, "images", len(out.Images), "looks", len(out.Looks),
		"types", len(out.Types), "animations", len(out.Animations))
	return out, nil
}

func (l *Loader) loadFont(d fontDoc) error {
	scale := d.Scale
	if scale == 0 {
		scale = 1
	}
	f, err := font.NewBitmap(l.rt.Renderer(), d.Name, scale)
	if err != nil {
		return fmt.Errorf("font %q: %w", d.Name, err)
	}
	if err := l.rt.RegisterFont(f); err != nil {
		return err
	}
	if d.Default {
		return l.rt.SetDefaultFont(d.Name)
	}
	return nil
}
