package layout

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/property"
	"github.com/1broseidon/cegui/internal/render/raster"
	"github.com/1broseidon/cegui/internal/udim"
	"github.com/1broseidon/cegui/internal/widgets"
)

func newRuntime(t *testing.T) (*gui.Runtime, *gui.Window) {
	t.Helper()
	rt, err := gui.NewRuntime(gui.Options{Renderer: raster.New(raster.Options{DisplaySize: geom.Sz(400, 300)})})
	if err != nil {
		t.Fatal(err)
	}
	if err := widgets.Register(rt); err != nil {
		t.Fatal(err)
	}
	if err := Register(rt); err != nil {
		t.Fatal(err)
	}
	root, err := rt.CreateWindow(widgets.DefaultWindowType, "root")
	if err != nil {
		t.Fatal(err)
	}
	root.SetSize(udim.RelSize(1, 1))
	rt.SetRootWindow(root)
	return rt, root
}

func newWindow(t *testing.T, rt *gui.Runtime, typ, name string, w, h float32) *gui.Window {
	t.Helper()
	win, err := rt.CreateWindow(typ, name)
	if err != nil {
		t.Fatalf("CreateWindow(%q): %v", typ, err)
	}
	win.SetSize(udim.AbsSize(w, h))
	return win
}

func attach(t *testing.T, parent, c *gui.Window) *gui.Window {
	t.Helper()
	if err := parent.AddChild(c); err != nil {
		t.Fatal(err)
	}
	return c
}

func pulse(t *testing.T, rt *gui.Runtime) {
	t.Helper()
	if err := rt.InjectTimePulse(0.016); err != nil {
		t.Fatal(err)
	}
}

func rectsOf(ws ...*gui.Window) []geom.Rect {
	out := make([]geom.Rect, len(ws))
	for i, w := range ws {
		out[i] = w.UnclippedOuterRect()
	}
	return out
}

func TestVerticalStacksWithMarginsAndAlignment(t *testing.T) {
	rt, root := newRuntime(t)
	box := attach(t, root, newWindow(t, rt, VerticalType, "box", 0, 0))
	box.SetPosition(udim.AbsVec(10, 20))
	a := attach(t, box, newWindow(t, rt, widgets.DefaultWindowType, "a", 100, 20))
	b := newWindow(t, rt, widgets.DefaultWindowType, "b", 50, 30)
	b.SetHorizontalAlignment(gui.HAlignCentre)
	attach(t, box, b)
	c := newWindow(t, rt, widgets.DefaultWindowType, "c", 80, 10)
	c.SetMargin(udim.UBox{Top: udim.Abs(5), Left: udim.Abs(2)})
	attach(t, box, c)

	pulse(t, rt)

	want := []geom.Rect{
		geom.R(10, 20, 110, 40),
		geom.R(35, 40, 85, 70),
		geom.R(12, 75, 92, 85),
	}
	if diff := cmp.Diff(want, rectsOf(a, b, c)); diff != "" {
		t.Errorf("child rects mismatch (-want +got):\n%s", diff)
	}
	if got, want := box.UnclippedOuterRect(), geom.R(10, 20, 110, 85); got != want {
		t.Errorf("container rect = %v, want %v", got, want)
	}
}

func TestHorizontalAlignsOnCrossAxis(t *testing.T) {
	rt, root := newRuntime(t)
	box := attach(t, root, newWindow(t, rt, HorizontalType, "box", 0, 0))
	a := attach(t, box, newWindow(t, rt, widgets.DefaultWindowType, "a", 30, 40))
	b := newWindow(t, rt, widgets.DefaultWindowType, "b", 20, 10)
	b.SetVerticalAlignment(gui.VAlignBottom)
	attach(t, box, b)

	pulse(t, rt)

	want := []geom.Rect{geom.R(0, 0, 30, 40), geom.R(30, 30, 50, 40)}
	if diff := cmp.Diff(want, rectsOf(a, b)); diff != "" {
		t.Errorf("child rects mismatch (-want +got):\n%s", diff)
	}
	if got := box.PixelSize(); got != geom.Sz(50, 40) {
		t.Errorf("container size = %v, want 50x40", got)
	}
}

func TestLayoutCoalescesChanges(t *testing.T) {
	rt, root := newRuntime(t)
	box := attach(t, root, newWindow(t, rt, VerticalType, "box", 0, 0))
	a := attach(t, box, newWindow(t, rt, widgets.DefaultWindowType, "a", 100, 20))
	attach(t, box, newWindow(t, rt, widgets.DefaultWindowType, "b", 100, 20))
	seq := box.Behaviour().(*Sequential)

	pulse(t, rt)
	pulse(t, rt)
	if got := seq.LayoutCount(); got != 1 {
		t.Fatalf("layouts after settling = %d, want 1", got)
	}

	for i := range 5 {
		a.SetSize(udim.AbsSize(100, float32(21+i)))
	}
	if !seq.NeedsLayout() {
		t.Fatal("resizes did not mark the container dirty")
	}
	if got := seq.LayoutCount(); got != 1 {
		t.Fatalf("layout ran before the update: %d", got)
	}
	pulse(t, rt)
	if got := seq.LayoutCount(); got != 2 {
		t.Errorf("layouts after 5 resizes = %d, want 2", got)
	}
	if got := box.PixelSize(); got != geom.Sz(100, 45) {
		t.Errorf("container size = %v, want 100x45", got)
	}
}

func TestRemovedChildReleasesSubscriptions(t *testing.T) {
	rt, root := newRuntime(t)
	box := attach(t, root, newWindow(t, rt, VerticalType, "box", 0, 0))
	a := attach(t, box, newWindow(t, rt, widgets.DefaultWindowType, "a", 10, 10))
	b := attach(t, box, newWindow(t, rt, widgets.DefaultWindowType, "b", 10, 10))
	seq := box.Behaviour().(*Sequential)
	if got := seq.ChildConnections(b.Handle()); got != 5 {
		t.Fatalf("connections on attached child = %d, want 5", got)
	}

	box.RemoveChild(b)
	pulse(t, rt)
	if got := seq.ChildConnections(b.Handle()); got != 0 {
		t.Errorf("connections after removal = %d, want 0", got)
	}
	if got := seq.ConnectedChildren(); got != 1 {
		t.Errorf("connected children = %d, want 1", got)
	}
	b.SetSize(udim.AbsSize(99, 99))
	if seq.NeedsLayout() {
		t.Error("detached child still marks the container dirty")
	}
	a.SetSize(udim.AbsSize(20, 20))
	if !seq.NeedsLayout() {
		t.Error("remaining child no longer marks the container dirty")
	}
}

func TestGridCells(t *testing.T) {
	rt, root := newRuntime(t)
	gw := attach(t, root, newWindow(t, rt, GridType, "grid", 0, 0))
	g := gw.Behaviour().(*Grid)
	if err := g.SetGridDimensions(2, 2); err != nil {
		t.Fatal(err)
	}
	a := newWindow(t, rt, widgets.DefaultWindowType, "a", 10, 10)
	b := newWindow(t, rt, widgets.DefaultWindowType, "b", 30, 5)
	c := newWindow(t, rt, widgets.DefaultWindowType, "c", 20, 25)
	for _, w := range []*gui.Window{a, b, c} {
		if err := g.Add(w.Handle()); err != nil {
			t.Fatal(err)
		}
	}

	pulse(t, rt)
	want := []geom.Rect{geom.R(0, 0, 10, 10), geom.R(20, 0, 50, 5), geom.R(0, 10, 20, 35)}
	if diff := cmp.Diff(want, rectsOf(a, b, c)); diff != "" {
		t.Errorf("cell rects mismatch (-want +got):\n%s", diff)
	}
	if got := gw.PixelSize(); got != geom.Sz(50, 35) {
		t.Errorf("grid size = %v, want 50x35", got)
	}

	d := newWindow(t, rt, widgets.DefaultWindowType, "d", 5, 5)
	if err := g.AddChildToCell(d.Handle(), 0, 0, false); !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Errorf("adding to a busy cell: err = %v, want ErrInvalidRequest", err)
	}
	if err := g.Add(d.Handle()); err != nil {
		t.Fatal(err)
	}
	e := newWindow(t, rt, widgets.DefaultWindowType, "e", 5, 5)
	if err := g.Add(e.Handle()); !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Errorf("adding to a full grid: err = %v, want ErrInvalidRequest", err)
	}
	if err := g.AddChildToCell(e.Handle(), 1, 1, true); err != nil {
		t.Fatal(err)
	}
	if d.Parent() != nil {
		t.Error("replaced child is still attached")
	}
	if got := g.ChildAtCell(1, 1); got != e.Handle() {
		t.Errorf("ChildAtCell(1,1) = %v, want e", got)
	}

	if err := g.SwapCells(0, 0, 1, 0); err != nil {
		t.Fatal(err)
	}
	if g.ChildAtCell(0, 0) != b.Handle() || g.ChildAtCell(1, 0) != a.Handle() {
		t.Error("SwapCells did not exchange the cells")
	}
	if err := g.MoveChildToCell(a.Handle(), 1, 1); !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Errorf("moving onto an occupied cell: err = %v, want ErrInvalidRequest", err)
	}
	if err := g.SwapCells(0, 0, 5, 5); !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Errorf("swapping outside the grid: err = %v, want ErrInvalidRequest", err)
	}

	if err := g.SetGridDimensions(1, 2); err != nil {
		t.Fatal(err)
	}
	if a.Parent() != nil || e.Parent() != nil {
		t.Error("children outside the shrunk grid are still attached")
	}
	if g.ChildAtCell(0, 0) != b.Handle() || g.ChildAtCell(0, 1) != c.Handle() {
		t.Error("children inside the shrunk grid lost their cells")
	}
	if !g.ChildAtCell(1, 0).IsZero() {
		t.Error("out of range cell is not the zero handle")
	}
}

func TestGridRejectsChildrenWithoutCell(t *testing.T) {
	rt, root := newRuntime(t)
	gw := attach(t, root, newWindow(t, rt, GridType, "grid", 0, 0))
	g := gw.Behaviour().(*Grid)

	a := newWindow(t, rt, widgets.DefaultWindowType, "a", 10, 10)
	if err := gw.AddChild(a); !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Errorf("AddChild to a 0x0 grid: err = %v, want ErrInvalidRequest", err)
	}
	if a.Parent() != nil {
		t.Error("rejected child was attached")
	}

	if err := g.SetGridDimensions(1, 1); err != nil {
		t.Fatal(err)
	}
	attach(t, gw, a)
	b := newWindow(t, rt, widgets.DefaultWindowType, "b", 10, 10)
	if err := gw.AddChild(b); !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Errorf("AddChild to a full grid: err = %v, want ErrInvalidRequest", err)
	}
	if b.Parent() != nil || gw.IsChild(b.Handle()) {
		t.Error("rejected child was attached")
	}
	if g.ChildAtCell(0, 0) != a.Handle() {
		t.Error("rejected child disturbed the occupied cell")
	}

	if err := g.AddChildToCell(b.Handle(), 0, 0, true); err != nil {
		t.Fatalf("replacing through AddChildToCell: %v", err)
	}
	if g.ChildAtCell(0, 0) != b.Handle() || a.Parent() != nil {
		t.Error("AddChildToCell did not replace the occupant")
	}

	g.SetAutoPositioning(AutoDisabled)
	gw.RemoveChild(b)
	if err := gw.AddChild(b); !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Errorf("AddChild with auto positioning disabled: err = %v, want ErrInvalidRequest", err)
	}
}

func TestGridLayoutDocOverflow(t *testing.T) {
	rt, _ := newRuntime(t)
	before := rt.WindowCount()
	doc := gui.LayoutDoc{
		Type: GridType,
		Name: "grid",
		Properties: []gui.PropertyEntry{
			{Name: "GridWidth", Value: "1"},
			{Name: "GridHeight", Value: "1"},
		},
		Children: []gui.LayoutDoc{
			{Type: widgets.DefaultWindowType, Name: "a"},
			{Type: widgets.DefaultWindowType, Name: "b"},
		},
	}
	if _, err := rt.LoadLayout(doc); !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Fatalf("LoadLayout with more children than cells: err = %v, want ErrInvalidRequest", err)
	}
	if got := rt.WindowCount(); got != before {
		t.Errorf("window count after failed load = %d, want %d", got, before)
	}
}

func TestPropertyWriteBackFailures(t *testing.T) {
	var logs bytes.Buffer
	rt, err := gui.NewRuntime(gui.Options{
		Renderer: raster.New(raster.Options{DisplaySize: geom.Sz(400, 300)}),
		Logger:   slog.New(slog.NewTextHandler(&logs, nil)),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := widgets.Register(rt); err != nil {
		t.Fatal(err)
	}
	if err := Register(rt); err != nil {
		t.Fatal(err)
	}

	gw := newWindow(t, rt, GridType, "grid", 0, 0)
	g := gw.Behaviour().(*Grid)
	if err := g.SetGridDimensions(1, 1); err != nil {
		t.Fatal(err)
	}
	a := attach(t, gw, newWindow(t, rt, widgets.DefaultWindowType, "a", 5, 5))
	for _, name := range []string{"GridWidth", "AutoPositioning"} {
		if err := gw.Props().Define(property.Definition{Name: name, Kind: property.KindBool, Default: "false"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.SetGridDimensions(2, 2); !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Errorf("SetGridDimensions with a mistyped property: err = %v, want ErrInvalidRequest", err)
	}
	if cols, rows := g.GridDimensions(); cols != 1 || rows != 1 || g.ChildAtCell(0, 0) != a.Handle() {
		t.Errorf("failed resize changed the grid: %dx%d", cols, rows)
	}
	g.SetAutoPositioning(AutoTopToBottom)
	if !strings.Contains(logs.String(), "auto positioning not stored") {
		t.Errorf("missing warning for AutoPositioning, logs:\n%s", logs.String())
	}

	sw := newWindow(t, rt, ScrolledType, "scroll", 100, 100)
	if err := sw.Props().Define(property.Definition{Name: "ContentPaneAutoSized", Kind: property.KindString}); err != nil {
		t.Fatal(err)
	}
	sw.Behaviour().(*Scrolled).SetContentPaneAutoSized(false)
	if !strings.Contains(logs.String(), "auto size setting not stored") {
		t.Errorf("missing warning for ContentPaneAutoSized, logs:\n%s", logs.String())
	}
}

func TestGridAutoPositioning(t *testing.T) {
	rt, root := newRuntime(t)
	gw := attach(t, root, newWindow(t, rt, GridType, "grid", 0, 0))
	g := gw.Behaviour().(*Grid)
	if err := gw.SetProperty("GridWidth", "2"); err != nil {
		t.Fatal(err)
	}
	if err := gw.SetProperty("GridHeight", "2"); err != nil {
		t.Fatal(err)
	}
	if err := gw.SetProperty("AutoPositioning", "TopToBottom"); err != nil {
		t.Fatal(err)
	}
	if cols, rows := g.GridDimensions(); cols != 2 || rows != 2 {
		t.Fatalf("grid dimensions = %dx%d, want 2x2", cols, rows)
	}

	a := attach(t, gw, newWindow(t, rt, widgets.DefaultWindowType, "a", 1, 1))
	b := attach(t, gw, newWindow(t, rt, widgets.DefaultWindowType, "b", 1, 1))
	if g.ChildAtCell(0, 0) != a.Handle() || g.ChildAtCell(0, 1) != b.Handle() {
		t.Error("TopToBottom did not fill the first column first")
	}
	gw.RemoveChild(a)
	if !g.ChildAtCell(0, 0).IsZero() {
		t.Error("removed child still occupies its cell")
	}

	g.SetAutoPositioning(AutoDisabled)
	if err := g.Add(a.Handle()); !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Errorf("Add with auto positioning disabled: err = %v, want ErrInvalidRequest", err)
	}
	if got, _ := gw.Property("AutoPositioning"); got != "Disabled" {
		t.Errorf("AutoPositioning property = %q, want Disabled", got)
	}
}

func TestTileFixedCentresCappedTiles(t *testing.T) {
	opts := DefaultTileOptions()
	opts.Mode = TileFixed
	opts.Rows, opts.Cols = 1, 2
	opts.Gap = 10
	opts.MaxTileSize = geom.Sz(50, 0)

	rects, err := Tile(2, geom.R(0, 0, 210, 100), opts)
	if err != nil {
		t.Fatal(err)
	}
	// slot width (210-30)/2 = 90, tile 50 centred 20 into the slot
	want := []geom.Rect{geom.R(30, 10, 80, 90), geom.R(130, 10, 180, 90)}
	if diff := cmp.Diff(want, rects); diff != "" {
		t.Errorf("tiles mismatch (-want +got):\n%s", diff)
	}
}

func TestTileModes(t *testing.T) {
	area := geom.R(0, 0, 200, 100)
	tests := []struct {
		name string
		mode TileMode
		n    int
		want []geom.Rect
	}{
		{"auto flexible last row", TileAuto, 3, []geom.Rect{
			geom.R(0, 0, 100, 50), geom.R(100, 0, 200, 50), geom.R(0, 50, 200, 100),
		}},
		{"vertical", TileVertical, 2, []geom.Rect{geom.R(0, 0, 200, 50), geom.R(0, 50, 200, 100)}},
		{"horizontal", TileHorizontal, 2, []geom.Rect{geom.R(0, 0, 100, 100), geom.R(100, 0, 200, 100)}},
		{"master stack", TileMasterStack, 3, []geom.Rect{
			geom.R(0, 0, 100, 100), geom.R(100, 0, 200, 50), geom.R(100, 50, 200, 100),
		}},
		{"master alone", TileMasterStack, 1, []geom.Rect{geom.R(0, 0, 100, 100)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultTileOptions()
			opts.Mode = tt.mode
			got, err := Tile(tt.n, area, opts)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tiles mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTileErrors(t *testing.T) {
	opts := DefaultTileOptions()
	opts.Mode = TileFixed
	opts.Rows, opts.Cols = 1, 2
	opts.Gap = 20
	if _, err := Tile(2, geom.R(0, 0, 20, 10), opts); !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Errorf("insufficient space: err = %v, want ErrInvalidRequest", err)
	}
	opts.Mode = "spiral"
	if _, err := Tile(2, geom.R(0, 0, 200, 100), opts); err == nil {
		t.Error("unknown mode accepted")
	}
	if _, err := ParseTileMode("spiral"); err == nil {
		t.Error("ParseTileMode accepted an unknown mode")
	}
}

func TestApplyRegion(t *testing.T) {
	area := geom.R(0, 0, 10, 10)
	if got := ApplyRegion(area, Region{Kind: RegionCustom, Width: 0.01, Height: 0.01}); got.Size() != geom.Sz(1, 1) {
		t.Errorf("custom region size = %v, want 1x1", got.Size())
	}
	if got := ApplyRegion(area, Region{Kind: RegionRightHalf}); got != geom.R(5, 0, 10, 10) {
		t.Errorf("right half = %v", got)
	}
}

func TestTiledContainer(t *testing.T) {
	rt, root := newRuntime(t)
	tw := newWindow(t, rt, TiledType, "tiles", 0, 0)
	tw.SetSize(udim.RelSize(1, 1))
	attach(t, root, tw)
	if err := tw.SetProperty("TileMode", "horizontal"); err != nil {
		t.Fatal(err)
	}
	a := attach(t, tw, newWindow(t, rt, widgets.DefaultWindowType, "a", 5, 5))
	b := attach(t, tw, newWindow(t, rt, widgets.DefaultWindowType, "b", 5, 5))
	hidden := newWindow(t, rt, widgets.DefaultWindowType, "hidden", 5, 5)
	hidden.SetVisible(false)
	attach(t, tw, hidden)

	pulse(t, rt)
	want := []geom.Rect{geom.R(0, 0, 200, 300), geom.R(200, 0, 400, 300), geom.R(0, 0, 5, 5)}
	if diff := cmp.Diff(want, rectsOf(a, b, hidden)); diff != "" {
		t.Errorf("tile rects mismatch (-want +got):\n%s", diff)
	}
	if err := tw.SetProperty("TileMode", "spiral"); err != nil {
		t.Fatal(err)
	}
	if got := tw.Behaviour().(*Tiled).Options().Mode; got != TileHorizontal {
		t.Errorf("invalid mode replaced the options: %s", got)
	}
}

func TestScrolledExtents(t *testing.T) {
	rt, root := newRuntime(t)
	pane := newWindow(t, rt, ScrolledType, "pane", 100, 100)
	pane.SetPosition(udim.AbsVec(50, 50))
	attach(t, root, pane)
	s := pane.Behaviour().(*Scrolled)
	if got := s.ChildExtentsArea(); got != (geom.Rect{}) {
		t.Errorf("extents without children = %v, want zero", got)
	}

	changes, autoChanges := 0, 0
	pane.Events().Subscribe(EventContentChanged, func(event.Args) bool { changes++; return false })
	pane.Events().Subscribe(EventAutoSizeSettingChanged, func(event.Args) bool { autoChanges++; return false })

	a := newWindow(t, rt, widgets.DefaultWindowType, "a", 30, 30)
	a.SetPosition(udim.AbsVec(10, 20))
	attach(t, pane, a)
	b := newWindow(t, rt, widgets.DefaultWindowType, "b", 20, 20)
	b.SetPosition(udim.AbsVec(-5, 60))
	attach(t, pane, b)

	if got, want := s.ContentArea(), geom.R(-5, 20, 40, 80); got != want {
		t.Errorf("content area = %v, want %v", got, want)
	}
	if changes == 0 {
		t.Error("ContentChanged did not fire")
	}

	b.SetPosition(udim.AbsVec(100, 0))
	if got, want := s.ContentArea(), geom.R(10, 0, 120, 50); got != want {
		t.Errorf("content area after move = %v, want %v", got, want)
	}

	if err := pane.SetProperty("ContentPaneAutoSized", "false"); err != nil {
		t.Fatal(err)
	}
	if autoChanges != 1 || s.IsContentPaneAutoSized() {
		t.Fatalf("auto size switch: events = %d, auto = %v", autoChanges, s.IsContentPaneAutoSized())
	}
	s.SetContentArea(geom.R(0, 0, 500, 500))
	a.SetPosition(udim.AbsVec(300, 300))
	if got, want := s.ContentArea(), geom.R(0, 0, 500, 500); got != want {
		t.Errorf("fixed content area = %v, want %v", got, want)
	}

	s.SetContentPaneAutoSized(true)
	if got, want := s.ContentArea(), geom.R(100, 0, 330, 330); got != want {
		t.Errorf("content area after re-enabling = %v, want %v", got, want)
	}
	pane.RemoveChild(b)
	if got := s.ChildConnections(b.Handle()); got != 0 {
		t.Errorf("connections after removal = %d, want 0", got)
	}
}
