package falagard

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/property"
	"github.com/1broseidon/cegui/internal/render"
	"github.com/1broseidon/cegui/internal/render/raster"
	"github.com/1broseidon/cegui/internal/udim"
)

type plain struct{}

func (plain) Init(*gui.Window) error { return nil }

type fixture struct {
	rt    *gui.Runtime
	looks *Manager
	root  *gui.Window
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	r := raster.New(raster.Options{DisplaySize: geom.Sz(200, 100)})
	rt, err := gui.NewRuntime(gui.Options{Renderer: r})
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	if err := rt.RegisterType("DefaultWindow", func() gui.Behaviour { return plain{} }); err != nil {
		t.Fatal(err)
	}
	m := NewManager(nil)
	if err := Register(rt, m); err != nil {
		t.Fatal(err)
	}
	if err := rt.Images().Define(render.NewImage("Arrow", nil, geom.R(0, 0, 16, 8), geom.Vec2{})); err != nil {
		t.Fatal(err)
	}
	root, err := rt.CreateWindow("DefaultWindow", "root")
	if err != nil {
		t.Fatal(err)
	}
	root.SetSize(udim.RelSize(1, 1))
	rt.SetRootWindow(root)
	return &fixture{rt: rt, looks: m, root: root}
}

// child adds a 50x20 window at (10,10) under the root
func (f *fixture) child(t *testing.T, name string) *gui.Window {
	t.Helper()
	w, err := f.rt.CreateWindow("DefaultWindow", name)
	if err != nil {
		t.Fatal(err)
	}
	w.SetArea(udim.AbsVec(10, 10), udim.AbsSize(50, 20))
	if err := f.root.AddChild(w); err != nil {
		t.Fatal(err)
	}
	return w
}

func (f *fixture) addLook(t *testing.T, l *WidgetLook) {
	t.Helper()
	if err := f.looks.AddLook(l); err != nil {
		t.Fatal(err)
	}
}

func expr(t *testing.T, s string) *ExpressionDim {
	t.Helper()
	e, err := NewExpression(s)
	if err != nil {
		t.Fatalf("NewExpression(%q): %v", s, err)
	}
	return e
}

func clientLook() *WidgetLook {
	l := NewWidgetLook("Test/Client", "")
	l.AddNamedArea(&NamedArea{Name: ClientArea, Area: ComponentArea{
		Left:   Dimension{Base: AbsoluteDim(2), Type: DimLeftEdge},
		Top:    Dimension{Base: AbsoluteDim(2), Type: DimTopEdge},
		Right:  Dimension{Base: UnifiedDim{UDim: udim.UDim{Scale: 1, Offset: -4}}, Type: DimWidth},
		Bottom: Dimension{Base: UnifiedDim{UDim: udim.UDim{Scale: 1, Offset: -4}}, Type: DimHeight},
	}})
	return l
}

func TestExpressionDeterminism(t *testing.T) {
	f := newFixture(t)
	w := f.child(t, "w")
	ctx := NewContext(w, nil)

	e := expr(t, "{0.5}+{10}")
	for i := 0; i < 3; i++ {
		got, err := e.Value(ctx, DimWidth)
		if err != nil {
			t.Fatal(err)
		}
		if got != 35 {
			t.Fatalf("run %d: width value = %v, want 35", i, got)
		}
	}
	got, err := e.Value(ctx, DimHeight)
	if err != nil {
		t.Fatal(err)
	}
	if got != 20 {
		t.Errorf("height value = %v, want 20", got)
	}

	e.SetExpression("{0.5}")
	if got, _ := e.Value(ctx, DimWidth); got != 25 {
		t.Errorf("after SetExpression value = %v, want 25", got)
	}
}

func TestExpressionOperands(t *testing.T) {
	f := newFixture(t)
	f.addLook(t, clientLook())
	w := f.child(t, "w")
	l, _ := f.looks.Look("Test/Client")
	ctx := NewContext(w, l)
	container := geom.R(0, 0, 30, 40)

	tests := []struct {
		expr string
		typ  DimensionType
		ctx  *Context
		want float32
	}{
		{"2+3*4", DimWidth, ctx, 14},
		{"(2+3)*4", DimWidth, ctx, 20},
		{"10-4-3", DimWidth, ctx, 3},
		{"-width/2", DimWidth, ctx, -25},
		{"2*-3", DimWidth, ctx, -6},
		{"min(width, height)", DimWidth, ctx, 20},
		{"max(1, 2) - 1", DimWidth, ctx, 1},
		{"10/0", DimWidth, ctx, 0},
		{"width - {0,4}", DimWidth, ctx, 46},
		{"parent.width", DimWidth, ctx, 200},
		{"parent.height", DimHeight, ctx, 100},
		{"container.width", DimWidth, ctx.WithContainer(container), 30},
		{"{1,0}", DimHeight, ctx.WithContainer(container), 40},
		{"Client.width", DimWidth, ctx, 46},
		{"Client.right", DimWidth, ctx, 48},
		{"Client.top", DimHeight, ctx, 2},
		{"image.Arrow.width + image.\"Arrow\".height", DimWidth, ctx, 24},
		{"prop.Alpha * 10", DimWidth, ctx, 10},
		{"font.lineSpacing", DimHeight, ctx, 0},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Eval(tt.ctx, tt.expr, tt.typ)
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpressionSyntaxErrors(t *testing.T) {
	for _, s := range []string{"", "1 +", "(1", "1)", "min(1)", "foo(1, 2)", "1 2", "{a}", "*2", "1,2", "a..b"} {
		t.Run(s, func(t *testing.T) {
			_, err := NewExpression(s)
			if !errors.Is(err, guierr.ErrInvalidRequest) {
				t.Fatalf("error = %v, want ErrInvalidRequest", err)
			}
			if !strings.Contains(err.Error(), `"`+s+`"`) {
				t.Errorf("error %q does not quote the expression", err)
			}
		})
	}
}

func TestExpressionUnknownOperand(t *testing.T) {
	f := newFixture(t)
	w := f.child(t, "w")
	_, err := Eval(NewContext(w, nil), "width + depth", DimWidth)
	if !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Fatalf("error = %v, want ErrInvalidRequest", err)
	}
	if !strings.Contains(err.Error(), "width + depth") {
		t.Errorf("error %q does not carry the expression", err)
	}
}

func TestCircularNamedArea(t *testing.T) {
	f := newFixture(t)
	l := NewWidgetLook("Test/Loop", "")
	area := func(e string) ComponentArea {
		a := DefaultArea()
		a.Right = Dimension{Base: expr(t, e), Type: DimWidth}
		return a
	}
	l.AddNamedArea(&NamedArea{Name: "Self", Area: area("Self.width")})
	l.AddNamedArea(&NamedArea{Name: "A", Area: area("B.width")})
	l.AddNamedArea(&NamedArea{Name: "B", Area: area("A.width + 1")})
	f.addLook(t, l)
	w := f.child(t, "w")
	ctx := NewContext(w, l)

	for _, name := range []string{"Self", "A"} {
		_, err := Eval(ctx, name+".width", DimWidth)
		if !errors.Is(err, ErrCircularReference) {
			t.Errorf("%s: error = %v, want ErrCircularReference", name, err)
		}
		if !errors.Is(err, guierr.ErrInvalidRequest) {
			t.Errorf("%s: error = %v, want ErrInvalidRequest", name, err)
		}
	}
}

func TestDimensions(t *testing.T) {
	f := newFixture(t)
	w := f.child(t, "w")
	if err := w.SetProperty("Gap", "{0.5,2}"); err != nil {
		t.Fatal(err)
	}
	inner, err := f.rt.CreateWindow("DefaultWindow", "inner")
	if err != nil {
		t.Fatal(err)
	}
	inner.SetArea(udim.AbsVec(5, 6), udim.AbsSize(7, 8))
	if err := w.AddChild(inner); err != nil {
		t.Fatal(err)
	}
	ctx := NewContext(w, nil)

	tests := []struct {
		name string
		dim  Dimension
		want float32
	}{
		{"absolute", Dimension{AbsoluteDim(3), DimWidth}, 3},
		{"unified", Dimension{UnifiedDim{udim.Rel(0.5)}, DimHeight}, 10},
		{"image", Dimension{ImageDim{"Arrow", DimHeight}, DimHeight}, 8},
		{"empty image", Dimension{ImageDim{"", DimWidth}, DimWidth}, 0},
		{"widget self", Dimension{WidgetDim{"", DimWidth}, DimWidth}, 50},
		{"widget child right", Dimension{WidgetDim{"inner", DimRightEdge}, DimWidth}, 12},
		{"widget child offset", Dimension{WidgetDim{"inner", DimXOffset}, DimWidth}, 0},
		{"font padding only", Dimension{FontDim{Metric: FontLineSpacing, Padding: 4}, DimHeight}, 4},
		{"property float", Dimension{PropertyDim{Property: "Alpha"}, DimWidth}, 1},
		{"property udim", Dimension{PropertyDim{Property: "Gap", What: DimWidth}, DimWidth}, 27},
		{"operator", Dimension{OperatorDim{OpSubtract, AbsoluteDim(10), AbsoluteDim(4)}, DimWidth}, 6},
		{"divide by zero", Dimension{OperatorDim{OpDivide, AbsoluteDim(10), AbsoluteDim(0)}, DimWidth}, 0},
		{"max", Dimension{OperatorDim{OpMax, AbsoluteDim(1), UnifiedDim{udim.Rel(1)}}, DimWidth}, 50},
		{"missing base", Dimension{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.dim.Value(ctx)
			if err != nil {
				t.Fatalf("Value: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	_, err = Dimension{WidgetDim{"nope", DimWidth}, DimWidth}.Value(ctx)
	if !errors.Is(err, guierr.ErrUnknownObject) {
		t.Errorf("missing child error = %v, want ErrUnknownObject", err)
	}
	_, err = Dimension{UnifiedDim{udim.Rel(1)}, DimInvalid}.Value(ctx)
	if !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Errorf("unified without axis error = %v, want ErrInvalidRequest", err)
	}
}

func TestComponentAreaPixelRect(t *testing.T) {
	f := newFixture(t)
	w := f.child(t, "w")
	ctx := NewContext(w, nil)

	got, err := DefaultArea().PixelRect(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := geom.R(0, 0, 50, 20); got != want {
		t.Errorf("default area = %v, want %v", got, want)
	}

	a := ComponentArea{
		Left:   Dimension{AbsoluteDim(5), DimLeftEdge},
		Top:    Dimension{AbsoluteDim(1), DimTopEdge},
		Right:  Dimension{UnifiedDim{udim.UDim{Scale: 1, Offset: -5}}, DimRightEdge},
		Bottom: Dimension{AbsoluteDim(4), DimHeight},
	}
	got, err = a.PixelRect(ctx.WithContainer(geom.R(100, 100, 120, 110)))
	if err != nil {
		t.Fatal(err)
	}
	if want := geom.R(105, 101, 115, 105); got != want {
		t.Errorf("container area = %v, want %v", got, want)
	}

	if err := w.SetProperty("Box", "{{0,1},{0,2},{0.5,0},{1,0}}"); err != nil {
		t.Fatal(err)
	}
	got, err = ComponentArea{AreaProperty: "Box"}.PixelRect(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := geom.R(1, 2, 25, 20); got != want {
		t.Errorf("property area = %v, want %v", got, want)
	}
}

func TestImageryFormatting(t *testing.T) {
	f := newFixture(t)
	w := f.child(t, "w")
	ctx := NewContext(w, nil)

	tests := []struct {
		name  string
		hf    HorzFormat
		vf    VertFormat
		image string
		quads int
		first geom.Rect
	}{
		{"stretched", HorzStretched, VertStretched, "Arrow", 1, geom.R(10, 10, 60, 30)},
		{"tiled columns", HorzTiled, VertStretched, "Arrow", 4, geom.R(10, 10, 26, 30)},
		{"tiled both", HorzTiled, VertTiled, "Arrow", 12, geom.R(10, 10, 26, 18)},
		{"centred", HorzCentreAligned, VertCentreAligned, "Arrow", 1, geom.R(27, 16, 43, 24)},
		{"right bottom", HorzRightAligned, VertBottomAligned, "Arrow", 1, geom.R(44, 22, 60, 30)},
		{"no image", HorzStretched, VertStretched, "", 0, geom.Rect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := f.rt.Renderer().CreateGeometryBuffer()
			c := NewImageryComponent(tt.image)
			c.HorzFormat, c.VertFormat = tt.hf, tt.vf
			ds := drawState{ctx: ctx, buf: buf, origin: w.UnclippedOuterRect().Min, colours: geom.Solid(geom.White)}
			if err := c.render(ds); err != nil {
				t.Fatal(err)
			}
			if got := buf.VertexCount(); got != tt.quads*6 {
				t.Fatalf("vertices = %d, want %d", got, tt.quads*6)
			}
			if tt.quads == 0 {
				return
			}
			v := buf.Batches()[0].Vertices
			// vertices 0 and 2 are the top-left and bottom-right corners
			got := geom.R(v[0].Pos.X(), v[0].Pos.Y(), v[2].Pos.X(), v[2].Pos.Y())
			if diff := cmp.Diff(tt.first, got); diff != "" {
				t.Errorf("first quad (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTiledImageClippedToDestination(t *testing.T) {
	f := newFixture(t)
	w := f.child(t, "w")
	buf := f.rt.Renderer().CreateGeometryBuffer()
	c := NewImageryComponent("Arrow")
	c.HorzFormat = HorzTiled
	ds := drawState{ctx: NewContext(w, nil), buf: buf, origin: w.UnclippedOuterRect().Min, colours: geom.Solid(geom.White)}
	if err := c.render(ds); err != nil {
		t.Fatal(err)
	}
	var right float32
	for _, v := range buf.Batches()[0].Vertices {
		right = max(right, v.Pos.X())
	}
	if right != 60 {
		t.Errorf("rightmost tile edge = %v, want 60", right)
	}
}

func TestLookInheritance(t *testing.T) {
	f := newFixture(t)
	base := NewWidgetLook("Test/Base", "")
	base.AddStateImagery(&StateImagery{Name: "Enabled"})
	base.AddImagerySection(&ImagerySection{Name: "Main"})
	derived := NewWidgetLook("Test/Derived", "Test/Base")
	f.addLook(t, base)
	f.addLook(t, derived)

	if _, err := derived.StateImagery("Enabled", true); err != nil {
		t.Errorf("inherited lookup: %v", err)
	}
	_, err := derived.StateImagery("Enabled", false)
	if !errors.Is(err, guierr.ErrUnknownObject) {
		t.Fatalf("own lookup error = %v, want ErrUnknownObject", err)
	}
	if want := "StateImagery with name 'Enabled' was not found in WidgetLook 'Test/Derived'"; !strings.Contains(err.Error(), want) {
		t.Errorf("error = %q, want it to contain %q", err, want)
	}
	_, err = base.ImagerySection("Nope", true)
	if want := "ImagerySection with name 'Nope' was not found in WidgetLook 'Test/Base'"; err == nil || !strings.Contains(err.Error(), want) {
		t.Errorf("error = %v, want it to contain %q", err, want)
	}

	a := NewWidgetLook("Test/A", "Test/B")
	b := NewWidgetLook("Test/B", "Test/A")
	f.addLook(t, a)
	f.addLook(t, b)
	if _, err := a.NamedArea("Client", true); !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Errorf("cycle error = %v, want ErrInvalidRequest", err)
	}

	orphan := NewWidgetLook("Test/Orphan", "Test/Missing")
	f.addLook(t, orphan)
	if _, err := orphan.StateImagery("Enabled", true); !errors.Is(err, guierr.ErrUnknownObject) {
		t.Errorf("missing parent error = %v, want ErrUnknownObject", err)
	}
}

func TestWidgetComponentsOverrideInherited(t *testing.T) {
	f := newFixture(t)
	base := NewWidgetLook("Test/Base", "")
	base.AddWidgetComponent(&WidgetComponent{NameSuffix: "__a__", Type: "DefaultWindow"})
	base.AddWidgetComponent(&WidgetComponent{NameSuffix: "__b__", Type: "DefaultWindow"})
	base.AddPropertyInitializer(PropertyInitializer{Property: "Alpha", Value: "0.5"})
	derived := NewWidgetLook("Test/Derived", "Test/Base")
	derived.AddWidgetComponent(&WidgetComponent{NameSuffix: "__a__", Type: "Other"})
	derived.AddWidgetComponent(&WidgetComponent{NameSuffix: "__c__", Type: "DefaultWindow"})
	derived.AddPropertyInitializer(PropertyInitializer{Property: "Alpha", Value: "0.25"})
	f.addLook(t, base)
	f.addLook(t, derived)

	widgets, err := derived.WidgetComponents(true)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, w := range widgets {
		got = append(got, w.NameSuffix+":"+w.Type)
	}
	if diff := cmp.Diff([]string{"__a__:Other", "__b__:DefaultWindow", "__c__:DefaultWindow"}, got); diff != "" {
		t.Errorf("components (-want +got):\n%s", diff)
	}

	inits, err := derived.PropertyInitializers(true)
	if err != nil {
		t.Fatal(err)
	}
	want := []PropertyInitializer{{"Alpha", "0.5"}, {"Alpha", "0.25"}}
	if diff := cmp.Diff(want, inits); diff != "" {
		t.Errorf("initializers (-want +got):\n%s", diff)
	}
}

func buttonLook() *WidgetLook {
	l := NewWidgetLook("Test/Button", "")
	l.AddPropertyDefinition(PropertyDefinition{Name: "Highlight", Kind: property.KindBool, Default: "false", RedrawOnWrite: true})
	l.AddPropertyInitializer(PropertyInitializer{Property: "Alpha", Value: "0.5"})
	l.AddWidgetComponent(&WidgetComponent{
		NameSuffix: "__label__",
		Type:       "DefaultWindow",
		Area: ComponentArea{
			Left:   Dimension{AbsoluteDim(5), DimLeftEdge},
			Top:    Dimension{AbsoluteDim(5), DimTopEdge},
			Right:  Dimension{AbsoluteDim(20), DimWidth},
			Bottom: Dimension{AbsoluteDim(10), DimHeight},
		},
	})
	l.AddImagerySection(&ImagerySection{Name: "Main", Images: []ImageryComponent{NewImageryComponent("Arrow")}})
	l.AddImagerySection(&ImagerySection{Name: "Glow", Images: []ImageryComponent{NewImageryComponent("Arrow")}})
	l.AddStateImagery(&StateImagery{Name: "Enabled", Layers: []LayerSpecification{{
		Sections: []SectionSpecification{
			{Section: "Main"},
			{Section: "Glow", ControlProperty: "Highlight"},
		},
	}}})
	return l
}

func TestApplyAndRemoveLook(t *testing.T) {
	f := newFixture(t)
	f.addLook(t, buttonLook())
	f.addLook(t, NewWidgetLook("Test/Empty", ""))
	if err := f.rt.MapType(gui.FalagardMapping{Type: "Test/Button", BaseType: "DefaultWindow", Look: "Test/Button", Renderer: RendererName}); err != nil {
		t.Fatal(err)
	}
	w, err := f.rt.CreateWindow("Test/Button", "button")
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	w.SetArea(udim.AbsVec(10, 10), udim.AbsSize(100, 50))
	if err := f.root.AddChild(w); err != nil {
		t.Fatal(err)
	}

	if v, err := w.Property("Highlight"); err != nil || v != "false" {
		t.Errorf("Highlight = %q, %v; want false", v, err)
	}
	if w.Alpha() != 0.5 {
		t.Errorf("Alpha = %v, want 0.5 from the initializer", w.Alpha())
	}
	label, err := w.Child("__label__")
	if err != nil {
		t.Fatalf("label: %v", err)
	}
	if !label.IsAutoWindow() {
		t.Error("look child is not an auto window")
	}
	if got, want := label.UnclippedOuterRect(), geom.R(15, 15, 35, 25); got != want {
		t.Errorf("label rect = %v, want %v", got, want)
	}

	// reassigning re-applies the initializers
	w.SetAlpha(1)
	if err := w.SetLookNFeel("Test/Button"); err != nil {
		t.Fatal(err)
	}
	if w.Alpha() != 0.5 {
		t.Errorf("Alpha after reassign = %v, want 0.5", w.Alpha())
	}
	if w.ChildCount() != 1 {
		t.Errorf("children after reassign = %d, want 1", w.ChildCount())
	}

	if err := w.SetLookNFeel("Test/Empty"); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Child("__label__"); err == nil {
		t.Error("look child survived look removal")
	}
	if w.IsPropertyPresent("Highlight") {
		t.Error("look property definition survived look removal")
	}
}

func TestRendererStates(t *testing.T) {
	f := newFixture(t)
	f.addLook(t, buttonLook())
	if err := f.rt.MapType(gui.FalagardMapping{Type: "Test/Button", BaseType: "DefaultWindow", Look: "Test/Button", Renderer: RendererName}); err != nil {
		t.Fatal(err)
	}
	w, err := f.rt.CreateWindow("Test/Button", "button")
	if err != nil {
		t.Fatal(err)
	}
	w.SetArea(udim.AbsVec(10, 10), udim.AbsSize(100, 50))
	if err := f.root.AddChild(w); err != nil {
		t.Fatal(err)
	}
	draw := func() render.GeometryBuffer {
		t.Helper()
		gb := w.Geometry()
		gb.Reset()
		if err := w.Renderer().Render(w); err != nil {
			t.Fatalf("Render: %v", err)
		}
		return gb
	}

	gb := draw()
	if got := gb.VertexCount(); got != 6 {
		t.Fatalf("enabled vertices = %d, want 6", got)
	}
	if a := gb.Batches()[0].Vertices[0].Colour.A; a != 0.5 {
		t.Errorf("vertex alpha = %v, want the effective alpha 0.5", a)
	}

	if err := w.SetProperty("Highlight", "true"); err != nil {
		t.Fatal(err)
	}
	if got := draw().VertexCount(); got != 12 {
		t.Errorf("highlighted vertices = %d, want 12", got)
	}

	// no Disabled state imagery: nothing drawn and no error
	w.SetDisabled(true)
	if got := draw().VertexCount(); got != 0 {
		t.Errorf("disabled vertices = %d, want 0", got)
	}

	if err := f.rt.Render(); err != nil {
		t.Errorf("frame render: %v", err)
	}
}

func TestClientAreaIsInnerRect(t *testing.T) {
	f := newFixture(t)
	l := clientLook()
	f.addLook(t, l)
	w := f.child(t, "w")
	if err := w.SetWindowRenderer(RendererName); err != nil {
		t.Fatal(err)
	}
	if err := w.SetLookNFeel(l.Name); err != nil {
		t.Fatal(err)
	}
	if got, want := w.UnclippedInnerRect(), geom.R(12, 12, 58, 28); got != want {
		t.Errorf("inner rect = %v, want %v", got, want)
	}
}

func TestManager(t *testing.T) {
	m := NewManager(nil)
	if err := m.AddLook(NewWidgetLook("", "")); !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Errorf("unnamed look error = %v, want ErrInvalidRequest", err)
	}
	for _, n := range []string{"B", "A", "B"} {
		if err := m.AddLook(NewWidgetLook(n, "")); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff([]string{"A", "B"}, m.Names()); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	m.EraseLook("A")
	if m.IsDefined("A") {
		t.Error("A still defined after erase")
	}
	if _, err := m.Look("A"); !errors.Is(err, guierr.ErrUnknownObject) {
		t.Errorf("Look(A) error = %v, want ErrUnknownObject", err)
	}
}

// monoFont advances every rune by 10 pixels and records what it draws
type monoFont struct {
	drawn []drawnRun
}

type drawnRun struct {
	text string
	x    float32
}

func (*monoFont) Name() string         { return "mono" }
func (*monoFont) LineSpacing() float32 { return 12 }
func (*monoFont) Baseline() float32    { return 10 }

func (*monoFont) TextExtent(s string) float32 {
	var widest float32
	for _, l := range strings.Split(s, "\n") {
		widest = max(widest, float32(len([]rune(l)))*10)
	}
	return widest
}

func (m *monoFont) Render(_ render.GeometryBuffer, text string, pos geom.Vec2, _ *geom.Rect, _ geom.ColourRect) float32 {
	m.drawn = append(m.drawn, drawnRun{text: text, x: pos.X})
	return m.TextExtent(text)
}

func TestParseTextHorzFormat(t *testing.T) {
	tests := []struct {
		in   string
		want TextHorzFormat
	}{
		{"LeftAligned", TextLeftAligned},
		{"centre", TextCentreAligned},
		{"RightAligned", TextRightAligned},
		{"Justified", TextJustified},
		{"WordWrapLeftAligned", TextWordWrapLeftAligned},
		{"wordwrapcentred", TextWordWrapCentreAligned},
		{"WordWrapCentreAligned", TextWordWrapCentreAligned},
		{"WordWrapRightAligned", TextWordWrapRightAligned},
		{"WordWrapJustified", TextWordWrapJustified},
	}
	for _, tt := range tests {
		got, err := ParseTextHorzFormat(tt.in)
		if err != nil {
			t.Errorf("ParseTextHorzFormat(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTextHorzFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if back, _ := ParseTextHorzFormat(got.String()); back != got {
			t.Errorf("%v does not survive a String round trip", got)
		}
	}
	if _, err := ParseTextHorzFormat("Diagonal"); !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Errorf("unknown format: err = %v, want ErrInvalidRequest", err)
	}
}

func TestFormatTextWraps(t *testing.T) {
	f := &monoFont{}
	tests := []struct {
		name string
		text string
		hf   TextHorzFormat
		want []textLine
	}{
		{"left keeps lines", "one two\nsix", TextLeftAligned,
			[]textLine{{Text: "one two"}, {Text: "six"}}},
		{"wrap left", "one two three", TextWordWrapLeftAligned,
			[]textLine{{Text: "one two"}, {Text: "three"}}},
		{"wrap right", "one two three", TextWordWrapRightAligned,
			[]textLine{{Text: "one two", X: 10}, {Text: "three", X: 30}}},
		{"wrap centre", "one two three", TextWordWrapCentreAligned,
			[]textLine{{Text: "one two", X: 5}, {Text: "three", X: 15}}},
		{"long word keeps its own line", "a abcdefghijk b", TextWordWrapLeftAligned,
			[]textLine{{Text: "a"}, {Text: "abcdefghijk"}, {Text: "b"}}},
		{"paragraphs wrap separately", "one two three\nfour", TextWordWrapLeftAligned,
			[]textLine{{Text: "one two"}, {Text: "three"}, {Text: "four"}}},
		{"empty paragraph", "", TextWordWrapLeftAligned, []textLine{{Text: ""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatText(f, tt.text, 80, tt.hf)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("formatText (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatTextJustifies(t *testing.T) {
	f := &monoFont{}

	got := formatText(f, "a b c", 90, TextJustified)
	if len(got) != 1 || got[0].SpaceExtra != 20 {
		t.Fatalf("justified line = %+v, want SpaceExtra 20", got)
	}
	got[0].render(nil, f, geom.V2(100, 0), nil, geom.ColourRect{})
	want := []drawnRun{{"a", 100}, {"b", 140}, {"c", 180}}
	if diff := cmp.Diff(want, f.drawn, cmp.AllowUnexported(drawnRun{})); diff != "" {
		t.Errorf("justified runs (-want +got):\n%s", diff)
	}

	if got := formatText(f, "abc", 90, TextJustified); got[0].SpaceExtra != 0 {
		t.Errorf("line without spaces was stretched: %+v", got[0])
	}
	if got := formatText(f, "a b c d e f g h i j", 90, TextJustified); got[0].SpaceExtra != 0 {
		t.Errorf("overlong line was stretched: %+v", got[0])
	}

	wrapped := formatText(f, "aa bb cc dd", 70, TextWordWrapJustified)
	if len(wrapped) != 2 {
		t.Fatalf("wrapped justified lines = %+v, want 2", wrapped)
	}
	if wrapped[0].Text != "aa bb" || wrapped[0].SpaceExtra != 20 {
		t.Errorf("first line = %+v, want \"aa bb\" stretched by 20", wrapped[0])
	}
	if wrapped[1].Text != "cc dd" || wrapped[1].SpaceExtra != 0 {
		t.Errorf("last line = %+v, want left aligned \"cc dd\"", wrapped[1])
	}
}
