package scheme

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/cegui/internal/animation"
	"github.com/1broseidon/cegui/internal/falagard"
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/render/raster"
	"github.com/1broseidon/cegui/internal/resource"
	"github.com/1broseidon/cegui/internal/udim"
	"github.com/1broseidon/cegui/internal/widgets"
)

type fixture struct {
	rt     *gui.Runtime
	looks  *falagard.Manager
	anims  *animation.Manager
	loader *Loader
}

func newFixture(t *testing.T, provider resource.Provider) *fixture {
	t.Helper()
	rt, err := gui.NewRuntime(gui.Options{Renderer: raster.New(raster.Options{DisplaySize: geom.Sz(400, 300)})})
	require.NoError(t, err)
	require.NoError(t, widgets.Register(rt))
	looks := falagard.NewManager(nil)
	require.NoError(t, falagard.Register(rt, looks))
	anims := animation.NewManager(animation.Options{})
	anims.Attach(rt)
	t.Cleanup(anims.Detach)
	return &fixture{
		rt:     rt,
		looks:  looks,
		anims:  anims,
		loader: NewLoader(rt, Options{Provider: provider, Looks: looks, Animations: anims}),
	}
}

func TestLoadBuiltinScheme(t *testing.T) {
	f := newFixture(t, nil)
	s, err := f.loader.LoadScheme(BuiltinScheme)
	require.NoError(t, err)

	assert.Equal(t, "Builtin", s.Name)
	if diff := cmp.Diff([]string{"Builtin/Fill", "Builtin/Corner", "Builtin/HEdge", "Builtin/VEdge"}, s.Images); diff != "" {
		t.Errorf("images (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Builtin/FrameWindow", "Builtin/Button", "Builtin/StaticText", "Builtin/StaticImage"}, s.Types); diff != "" {
		t.Errorf("types (-want +got):\n%s", diff)
	}
	assert.ElementsMatch(t, s.Types, s.Looks)
	assert.Equal(t, []string{"Builtin/FadeIn", "Builtin/HoverPulse"}, f.anims.AnimationNames())
	assert.Equal(t, []string{BuiltinLayout}, s.Layouts)
	require.NotNil(t, f.rt.DefaultFont())
	assert.Equal(t, "Default", f.rt.DefaultFont().Name())

	fill, err := f.rt.Images().Image("Builtin/Fill")
	require.NoError(t, err)
	assert.Equal(t, geom.Sz(8, 8), fill.Size())
	assert.Equal(t, geom.Sz(16, 16), fill.Texture().Size())

	btn, err := f.rt.CreateWindow("Builtin/Button", "b")
	require.NoError(t, err)
	assert.Equal(t, "Builtin/Button", btn.LookNFeel())
	got, err := btn.Property("NormalColour")
	require.NoError(t, err)
	assert.Equal(t, "FF3C5A82", got)
}

func TestLoadSchemeTwiceFails(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.loader.LoadScheme(BuiltinScheme)
	require.NoError(t, err)
	_, err = f.loader.LoadScheme(BuiltinScheme)
	require.Error(t, err)
}

func TestLoadDemoLayout(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.loader.LoadScheme(BuiltinScheme)
	require.NoError(t, err)
	lay, err := f.loader.LoadLayout(BuiltinLayout, "")
	require.NoError(t, err)
	top, err := f.rt.Get(lay.Root)
	require.NoError(t, err)
	f.rt.SetRootWindow(top)

	ok, err := f.rt.Window("root/panel/ok")
	require.NoError(t, err)
	assert.Equal(t, "Builtin/Button", ok.Type())
	text, err := ok.Property("Text")
	require.NoError(t, err)
	assert.Equal(t, "OK", text)
	assert.Equal(t, geom.R(52, 78, 148, 106), ok.UnclippedOuterRect(),
		"button sits in the panel client area")

	require.Len(t, lay.Instances, 2)
	fadeIn, pulse := lay.Instances[0], lay.Instances[1]
	assert.True(t, fadeIn.IsRunning(), "auto start")
	assert.False(t, pulse.IsRunning())
	assert.Equal(t, 2, pulse.AutoConnections())

	panel, err := f.rt.Window("root/panel")
	require.NoError(t, err)
	require.NoError(t, f.rt.InjectTimePulse(0.25))
	assert.InDelta(t, 0.7071, panel.Alpha(), 1e-3)
	require.NoError(t, f.rt.InjectTimePulse(0.5))
	assert.InDelta(t, 1, panel.Alpha(), 1e-6)
	assert.False(t, fadeIn.IsRunning())

	require.NoError(t, f.rt.Render())
}

func TestWriteLayoutReloads(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.loader.LoadScheme(BuiltinScheme)
	require.NoError(t, err)
	lay, err := f.loader.LoadLayout(BuiltinLayout, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteLayout(&buf, f.rt, lay.Root))

	mem := fstest.MapFS{"saved.layout.yaml": &fstest.MapFile{Data: buf.Bytes()}}
	g := newFixture(t, resource.Chain{resource.NewFSProvider(mem), resource.NewFSProvider(Builtin())})
	_, err = g.loader.LoadScheme(BuiltinScheme)
	require.NoError(t, err)
	again, err := g.loader.LoadLayout("saved.layout.yaml", "")
	require.NoError(t, err)

	paths := func(rt *gui.Runtime, h gui.Handle) []string {
		w, err := rt.Get(h)
		require.NoError(t, err)
		var out []string
		w.Walk(func(c *gui.Window) bool {
			v, _ := c.Property("Text")
			out = append(out, c.Path()+" "+c.Type()+" "+v)
			return true
		})
		return out
	}
	if diff := cmp.Diff(paths(f.rt, lay.Root), paths(g.rt, again.Root)); diff != "" {
		t.Errorf("reloaded tree (-want +got):\n%s", diff)
	}
}

func TestDimForms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want falagard.BaseDim
	}{
		{"number", `4`, falagard.AbsoluteDim(4)},
		{"abs", `{abs: 2.5}`, falagard.AbsoluteDim(2.5)},
		{"unified", `{unified: "{0.5,-2}"}`, falagard.UnifiedDim{UDim: udim.UDim{Scale: 0.5, Offset: -2}}},
		{"image", `{image: Builtin/Fill, dim: width}`, falagard.ImageDim{Image: "Builtin/Fill", What: falagard.DimWidth}},
		{"image property", `{image_property: Image, widget: __auto__, dim: height}`,
			falagard.ImagePropertyDim{Widget: "__auto__", Property: "Image", What: falagard.DimHeight}},
		{"widget", `{widget: label, dim: Height}`, falagard.WidgetDim{Widget: "label", What: falagard.DimHeight}},
		{"self", `{dim: width}`, falagard.WidgetDim{What: falagard.DimWidth}},
		{"property", `{property: TextWidth}`, falagard.PropertyDim{Property: "TextWidth"}},
		{"font", `{font: "", metric: baseline, padding: 2}`, falagard.FontDim{Metric: falagard.FontBaseline, Padding: 2}},
		{"font by metric", `{metric: HorzExtent, text: Wg}`, falagard.FontDim{Metric: falagard.FontHorzExtent, Text: "Wg"}},
		{"operator", `{op: add, left: 1, right: {abs: 2}}`,
			falagard.OperatorDim{Op: falagard.OpAdd, Left: falagard.AbsoluteDim(1), Right: falagard.AbsoluteDim(2)}},
		{"operator of maps", `{op: Subtract, left: {abs: 10}, right: {unified: "{0,2}"}}`,
			falagard.OperatorDim{Op: falagard.OpSubtract, Left: falagard.AbsoluteDim(10),
				Right: falagard.UnifiedDim{UDim: udim.UDim{Offset: 2}}}},
		{"nested operator", `{op: max, left: {op: multiply, left: 3, right: {abs: 4}}, right: {dim: width}}`,
			falagard.OperatorDim{Op: falagard.OpMax,
				Left:  falagard.OperatorDim{Op: falagard.OpMultiply, Left: falagard.AbsoluteDim(3), Right: falagard.AbsoluteDim(4)},
				Right: falagard.WidgetDim{What: falagard.DimWidth}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Dim
			require.NoError(t, yaml.Unmarshal([]byte(tt.src), &d))
			if diff := cmp.Diff(tt.want, d.BaseDim); diff != "" {
				t.Errorf("dim (-want +got):\n%s", diff)
			}
		})
	}

	for _, src := range []string{`width / 2`, `{expr: "max(width, 4)"}`} {
		var d Dim
		require.NoError(t, yaml.Unmarshal([]byte(src), &d), src)
		assert.IsType(t, &falagard.ExpressionDim{}, d.BaseDim, src)
	}

	for _, src := range []string{`{}`, `{image: X}`, `{dim: sideways}`, `{op: pow}`, `[1, 2]`, `width +`, `{op: add, left: [1], right: 2}`} {
		var d Dim
		assert.Error(t, yaml.Unmarshal([]byte(src), &d), src)
	}
}

func TestAreaDoc(t *testing.T) {
	var nilArea *areaDoc
	area, err := nilArea.build()
	require.NoError(t, err)
	assert.Equal(t, falagard.DefaultArea(), area)

	var a areaDoc
	require.NoError(t, yaml.Unmarshal([]byte(`{left: 4, right: 10, height: 8}`), &a))
	area, err = a.build()
	require.NoError(t, err)
	assert.Equal(t, falagard.Dimension{Base: falagard.AbsoluteDim(4), Type: falagard.DimLeftEdge}, area.Left)
	assert.Equal(t, falagard.DefaultArea().Top, area.Top)
	assert.Equal(t, falagard.Dimension{Base: falagard.AbsoluteDim(10), Type: falagard.DimRightEdge}, area.Right)
	assert.Equal(t, falagard.Dimension{Base: falagard.AbsoluteDim(8), Type: falagard.DimHeight}, area.Bottom)

	var bad areaDoc
	require.NoError(t, yaml.Unmarshal([]byte(`{right: 1, width: 2}`), &bad))
	_, err = bad.build()
	assert.ErrorIs(t, err, guierr.ErrInvalidRequest)
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImagesetFromTexture(t *testing.T) {
	mem := fstest.MapFS{}
	mem["art/icons.png"] = &fstest.MapFile{Data: encodePNG(t, 32, 16)}
	mem["icons.imageset.yaml"] = &fstest.MapFile{Data: []byte(`
name: Icons
texture: art/icons.png
images:
  - name: Arrow
    area: {x: 8, y: 4, width: 8, height: 4}
    offset: {x: -1, y: 2}
  - name: Sheet
`)}
	f := newFixture(t, resource.NewFSProvider(mem))
	names, err := f.loader.LoadImageset("icons.imageset.yaml", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Icons/Arrow", "Icons/Sheet"}, names)

	arrow, err := f.rt.Images().Image("Icons/Arrow")
	require.NoError(t, err)
	assert.Equal(t, geom.R(8, 4, 16, 8), arrow.Area())
	assert.Equal(t, geom.V2(-1, 2), arrow.Offset())
	sheet, err := f.rt.Images().Image("Icons/Sheet")
	require.NoError(t, err)
	assert.Equal(t, geom.Sz(32, 16), sheet.Size())
}

func TestLoadErrors(t *testing.T) {
	mem := fstest.MapFS{}
	file := func(name, data string) { mem[name] = &fstest.MapFile{Data: []byte(data)} }
	file("both.imageset.yaml", "name: X\ntexture: a.png\nsolid: FFFFFFFF\n")
	file("nosize.imageset.yaml", "name: X\nsolid: FFFFFFFF\n")
	file("unknown.imageset.yaml", "name: X\ncolour: red\n")
	file("interp.anims.yaml", `
animations:
  - name: A
    duration: 1
    affectors:
      - {property: Alpha, interpolator: quaternion, key_frames: [{position: 0, value: "0"}]}
`)
	file("frame.anims.yaml", `
animations:
  - name: B
    duration: 1
    affectors:
      - {property: Alpha, interpolator: float, key_frames: [{position: 2, value: "0"}]}
`)
	file("nameless.looknfeel.yaml", "looks:\n  - inherits: Other\n")
	f := newFixture(t, resource.NewFSProvider(mem))

	tests := []struct {
		name string
		load func() error
		kind error
	}{
		{"missing file", func() error { _, err := f.loader.LoadImageset("nope.yaml", ""); return err }, guierr.ErrGeneric},
		{"texture and solid", func() error { _, err := f.loader.LoadImageset("both.imageset.yaml", ""); return err }, guierr.ErrInvalidRequest},
		{"solid without size", func() error { _, err := f.loader.LoadImageset("nosize.imageset.yaml", ""); return err }, guierr.ErrInvalidRequest},
		{"unknown interpolator", func() error { _, err := f.loader.LoadAnimations("interp.anims.yaml", ""); return err }, guierr.ErrUnknownObject},
		{"frame outside duration", func() error { _, err := f.loader.LoadAnimations("frame.anims.yaml", ""); return err }, guierr.ErrInvalidRequest},
		{"look without name", func() error { _, err := f.loader.LoadLookNFeel("nameless.looknfeel.yaml", ""); return err }, guierr.ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.load(), tt.kind)
		})
	}

	_, err := f.loader.LoadImageset("unknown.imageset.yaml", "")
	assert.ErrorContains(t, err, "colour")
	assert.Empty(t, f.anims.AnimationNames(), "failed animations are not left defined")

	bare := NewLoader(f.rt, Options{Provider: resource.NewFSProvider(mem)})
	_, err = bare.LoadLookNFeel("nameless.looknfeel.yaml", "")
	assert.ErrorIs(t, err, guierr.ErrInvalidRequest)
}
