package widgets

import (
	"testing"

	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/falagard"
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/render"
	"github.com/1broseidon/cegui/internal/render/raster"
	"github.com/1broseidon/cegui/internal/udim"
)

func newRuntime(t *testing.T) (*gui.Runtime, *gui.Window) {
	t.Helper()
	rt, err := gui.NewRuntime(gui.Options{Renderer: raster.New(raster.Options{DisplaySize: geom.Sz(200, 100)})})
	if err != nil {
		t.Fatal(err)
	}
	if err := Register(rt); err != nil {
		t.Fatal(err)
	}
	root, err := rt.CreateWindow(DefaultWindowType, "root")
	if err != nil {
		t.Fatal(err)
	}
	root.SetSize(udim.RelSize(1, 1))
	rt.SetRootWindow(root)
	return rt, root
}

func create(t *testing.T, rt *gui.Runtime, parent *gui.Window, typ, name string) *gui.Window {
	t.Helper()
	w, err := rt.CreateWindow(typ, name)
	if err != nil {
		t.Fatalf("CreateWindow(%q): %v", typ, err)
	}
	w.SetArea(udim.AbsVec(10, 10), udim.AbsSize(50, 20))
	if err := parent.AddChild(w); err != nil {
		t.Fatal(err)
	}
	return w
}

func TestRegisterTwiceFails(t *testing.T) {
	rt, _ := newRuntime(t)
	if err := Register(rt); err == nil {
		t.Error("second Register succeeded")
	}
}

func TestPushButtonStates(t *testing.T) {
	rt, root := newRuntime(t)
	w := create(t, rt, root, PushButtonType, "ok")
	b := w.Behaviour().(*PushButton)
	clicks := 0
	w.Events().Subscribe(EventClicked, func(event.Args) bool {
		clicks++
		return true
	})

	steps := []struct {
		name   string
		do     func()
		state  string
		clicks int
	}{
		{"idle", func() {}, StateNormal, 0},
		{"hover", func() { rt.InjectMousePosition(20, 20) }, StateHover, 0},
		{"press", func() { rt.InjectMouseButtonDown(gui.LeftButton) }, StatePushed, 0},
		{"drag off", func() { rt.InjectMousePosition(150, 80) }, StatePushedOff, 0},
		{"release outside", func() { rt.InjectMouseButtonUp(gui.LeftButton) }, StateNormal, 0},
		{"back over", func() { rt.InjectMousePosition(30, 25) }, StateHover, 0},
		{"press again", func() { rt.InjectMouseButtonDown(gui.LeftButton) }, StatePushed, 0},
		{"release over", func() { rt.InjectMouseButtonUp(gui.LeftButton) }, StateHover, 1},
		{"space key", func() { rt.InjectKeyDown(gui.KeySpace) }, StateHover, 2},
	}
	for _, s := range steps {
		s.do()
		if got := b.State(w); got != s.state {
			t.Errorf("%s: state = %s, want %s", s.name, got, s.state)
		}
		if clicks != s.clicks {
			t.Errorf("%s: clicks = %d, want %d", s.name, clicks, s.clicks)
		}
	}
	if !w.IsFocused() {
		t.Error("clicked button did not take focus")
	}
	w.SetDisabled(true)
	if got := b.State(w); got != StateDisabled {
		t.Errorf("disabled state = %s, want %s", got, StateDisabled)
	}
}

func TestPushButtonIgnoresOtherButtons(t *testing.T) {
	rt, root := newRuntime(t)
	w := create(t, rt, root, PushButtonType, "ok")
	b := w.Behaviour().(*PushButton)
	rt.InjectMousePosition(20, 20)
	rt.InjectMouseButtonDown(gui.RightButton)
	if b.IsPushed() {
		t.Error("right button pushed the button")
	}
	if rt.CaptureWindow() != nil {
		t.Error("right button captured input")
	}
}

func TestStaticProperties(t *testing.T) {
	rt, root := newRuntime(t)
	text := create(t, rt, root, StaticTextType, "label")
	for name, want := range map[string]string{
		"FrameEnabled":      "true",
		"BackgroundEnabled": "true",
		"HorzFormatting":    "LeftAligned",
		"TextColours":       "FFFFFFFF",
	} {
		if got, err := text.Property(name); err != nil || got != want {
			t.Errorf("%s = %q, %v; want %q", name, got, err, want)
		}
	}
	img := create(t, rt, root, StaticImageType, "picture")
	if !img.IsPropertyDefault("Image") {
		t.Error("Image is not at its default")
	}
	if err := img.SetProperty("Image", "Logo"); err != nil {
		t.Fatal(err)
	}
	if got, _ := img.Property("Image"); got != "Logo" {
		t.Errorf("Image = %q, want Logo", got)
	}
}

func TestStaticTextSections(t *testing.T) {
	rt, root := newRuntime(t)
	if err := rt.Images().Define(render.NewImage("Fill", nil, geom.R(0, 0, 4, 4), geom.Vec2{})); err != nil {
		t.Fatal(err)
	}
	looks := falagard.NewManager(nil)
	if err := falagard.Register(rt, looks); err != nil {
		t.Fatal(err)
	}
	l := falagard.NewWidgetLook("Test/StaticText", "")
	l.AddImagerySection(&falagard.ImagerySection{Name: "Frame", Images: []falagard.ImageryComponent{falagard.NewImageryComponent("Fill")}})
	l.AddImagerySection(&falagard.ImagerySection{Name: "Background", Images: []falagard.ImageryComponent{falagard.NewImageryComponent("Fill")}})
	l.AddStateImagery(&falagard.StateImagery{Name: "Enabled", Layers: []falagard.LayerSpecification{{
		Sections: []falagard.SectionSpecification{
			{Section: "Background", ControlProperty: "BackgroundEnabled"},
			{Section: "Frame", ControlProperty: "FrameEnabled"},
		},
	}}})
	if err := looks.AddLook(l); err != nil {
		t.Fatal(err)
	}
	if err := rt.MapType(gui.FalagardMapping{Type: "Test/StaticText", BaseType: StaticTextType, Look: l.Name, Renderer: falagard.RendererName}); err != nil {
		t.Fatal(err)
	}
	w := create(t, rt, root, "Test/StaticText", "label")

	draw := func() int {
		gb := w.Geometry()
		gb.Reset()
		if err := w.Renderer().Render(w); err != nil {
			t.Fatal(err)
		}
		return gb.VertexCount()
	}
	if got := draw(); got != 12 {
		t.Errorf("frame and background vertices = %d, want 12", got)
	}
	if err := w.SetProperty("FrameEnabled", "false"); err != nil {
		t.Fatal(err)
	}
	if got := draw(); got != 6 {
		t.Errorf("background only vertices = %d, want 6", got)
	}
}
