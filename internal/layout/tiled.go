package layout

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/property"
	"github.com/1broseidon/cegui/internal/udim"
)

// TileMode selects how a Tiled container splits its area
type TileMode string

const (
	TileAuto        TileMode = "auto"         // Square-ish grid, ceil(sqrt(n)) columns.
	TileFixed       TileMode = "fixed"        // Rows x Cols, extra children untouched.
	TileVertical    TileMode = "vertical"     // Single column stack.
	TileHorizontal  TileMode = "horizontal"   // Single row.
	TileMasterStack TileMode = "master-stack" // One master pane plus a stack grid.
)

// ParseTileMode parses a tile mode name
func ParseTileMode(s string) (TileMode, error) {
	switch m := TileMode(s); m {
	case TileAuto, TileFixed, TileVertical, TileHorizontal, TileMasterStack:
		return m, nil
	}
	return "", guierr.InvalidRequest("unsupported tile mode %q", s)
}

// RegionKind selects the part of the container that is tiled
type RegionKind string

const (
	RegionFull       RegionKind = "full"
	RegionLeftHalf   RegionKind = "left-half"
	RegionRightHalf  RegionKind = "right-half"
	RegionTopHalf    RegionKind = "top-half"
	RegionBottomHalf RegionKind = "bottom-half"
	RegionCustom     RegionKind = "custom"
)

// Region is the tiled part of the container. Custom regions are given as
// fractions of the container size.
type Region struct {
	Kind                RegionKind
	X, Y, Width, Height float32
}

// TileOptions configures a tiling pass
type TileOptions struct {
	Mode TileMode
	// Rows and Cols size the fixed grid.
	Rows, Cols int
	// Gap separates tiles from each other and from the area edges.
	Gap float32
	// FlexibleLastRow lets a short last row of the auto grid share the full
	// width.
	FlexibleLastRow bool
	// MaxTileSize caps tile sizes; smaller tiles are centred in their slot.
	// Zero components are unbounded.
	MaxTileSize geom.Size
	// MasterFraction is the share of the width given to the master pane.
	MasterFraction float32
	MaxStackRows   int
	MaxStackCols   int
	Region         Region
}

// DefaultTileOptions returns an auto grid without gaps
func DefaultTileOptions() TileOptions {
	return TileOptions{
		Mode:            TileAuto,
		FlexibleLastRow: true,
		MasterFraction:  0.5,
		MaxStackRows:    3,
		MaxStackCols:    2,
		Region:          Region{Kind: RegionFull},
	}
}

// GridSize determines the grid dimensions for n tiles
func GridSize(n int) (rows, cols int) {
	if n == 0 {
		return 0, 0
	}
	cols = int(math32.Ceil(math32.Sqrt(float32(n))))
	rows = int(math32.Ceil(float32(n) / float32(cols)))
	return rows, cols
}

// ApplyRegion returns the part of area selected by r, at least 1x1
func ApplyRegion(area geom.Rect, r Region) geom.Rect {
	out := area
	w, h := area.Width(), area.Height()
	switch r.Kind {
	case RegionLeftHalf:
		out.Max.X = area.Min.X + math32.Floor(w/2)
	case RegionRightHalf:
		out.Min.X = area.Min.X + math32.Floor(w/2)
	case RegionTopHalf:
		out.Max.Y = area.Min.Y + math32.Floor(h/2)
	case RegionBottomHalf:
		out.Min.Y = area.Min.Y + math32.Floor(h/2)
	case RegionCustom:
		out = geom.RectAt(
			geom.V2(area.Min.X+math32.Floor(w*r.X), area.Min.Y+math32.Floor(h*r.Y)),
			geom.Sz(math32.Floor(w*r.Width), math32.Floor(h*r.Height)),
		)
	}
	if out.Width() < 1 {
		out.Max.X = out.Min.X + 1
	}
	if out.Height() < 1 {
		out.Max.Y = out.Min.Y + 1
	}
	return out
}

// Tile computes the rects of n tiles inside area. Modes with a capacity
// return fewer rects than n when it is exceeded. Tile sizes are whole
// pixels.
func Tile(n int, area geom.Rect, opts TileOptions) ([]geom.Rect, error) {
	if n == 0 {
		return nil, nil
	}
	area = ApplyRegion(area, opts.Region)
	gap := opts.Gap
	width, height := area.Width(), area.Height()

	var rows, cols int
	flexible := opts.FlexibleLastRow
	switch opts.Mode {
	case TileAuto, "":
		rows, cols = GridSize(n)
	case TileFixed:
		rows, cols = opts.Rows, opts.Cols
		n = min(n, rows*cols)
		flexible = false
	case TileVertical:
		rows, cols = n, 1
		flexible = false
	case TileHorizontal:
		rows, cols = 1, n
		flexible = false
	case TileMasterStack:
		return masterStack(n, area, opts)
	default:
		return nil, guierr.InvalidRequest("unsupported tile mode %q", opts.Mode)
	}
	if rows <= 0 || cols <= 0 {
		return nil, guierr.InvalidRequest("invalid grid dimensions: rows=%d cols=%d", rows, cols)
	}

	slotW := math32.Floor((width - float32(cols+1)*gap) / float32(cols))
	slotH := math32.Floor((height - float32(rows+1)*gap) / float32(rows))
	if slotW <= 0 || slotH <= 0 {
		return nil, guierr.InvalidRequest("insufficient space for tiling: area=%gx%g rows=%d cols=%d gap=%g (slot=%gx%g)",
			width, height, rows, cols, gap, slotW, slotH)
	}
	tileW, tileH := capSize(slotW, opts.MaxTileSize.Width), capSize(slotH, opts.MaxTileSize.Height)

	lastRow := rows - 1
	inLastRow := n - lastRow*cols
	if inLastRow <= 0 {
		inLastRow = cols
	}
	var lastSlotW, lastTileW float32
	useFlexible := flexible && inLastRow < cols
	if useFlexible {
		lastSlotW = math32.Floor((width - float32(inLastRow+1)*gap) / float32(inLastRow))
		lastTileW = capSize(lastSlotW, opts.MaxTileSize.Width)
	}

	out := make([]geom.Rect, n)
	for i := range out {
		row, col := i/cols, i%cols
		sw, tw := slotW, tileW
		if useFlexible && row == lastRow {
			col = i - lastRow*cols
			sw, tw = lastSlotW, lastTileW
		}
		x := area.Min.X + gap + float32(col)*(sw+gap)
		y := area.Min.Y + gap + float32(row)*(slotH+gap)
		x += math32.Floor((sw - tw) / 2)
		y += math32.Floor((slotH - tileH) / 2)
		out[i] = geom.RectAt(geom.V2(x, y), geom.Sz(tw, tileH))
	}
	return out, nil
}

func capSize(slot, limit float32) float32 {
	if limit > 0 && slot > limit {
		return limit
	}
	return slot
}

// masterStack gives the first tile MasterFraction of the width and stacks
// the rest in a grid of at most MaxStackRows x MaxStackCols on the right.
func masterStack(n int, area geom.Rect, opts TileOptions) ([]geom.Rect, error) {
	gap := opts.Gap
	width, height := area.Width(), area.Height()
	masterW := math32.Floor(width*opts.MasterFraction) - gap
	stackH := height - 2*gap
	master := geom.RectAt(area.Min.Add(geom.V2(gap, gap)), geom.Sz(masterW, stackH))
	if n == 1 {
		if masterW <= 0 || stackH <= 0 {
			return nil, guierr.InvalidRequest("insufficient space for master pane: area=%gx%g gap=%g", width, height, gap)
		}
		return []geom.Rect{master}, nil
	}

	maxRows, maxCols := max(opts.MaxStackRows, 1), max(opts.MaxStackCols, 1)
	rightX := area.Min.X + masterW + 2*gap
	rightW := width - masterW - 3*gap
	stack := n - 1
	cols := min(int(math32.Ceil(float32(stack)/float32(maxRows))), maxCols)
	cols = max(cols, 1)
	rows := min(int(math32.Ceil(float32(stack)/float32(cols))), maxRows)
	stack = min(stack, rows*cols)

	cellW := math32.Floor((rightW - float32(cols-1)*gap) / float32(cols))
	cellH := math32.Floor((stackH - float32(rows-1)*gap) / float32(rows))
	if masterW <= 0 || cellW <= 0 || cellH <= 0 {
		return nil, guierr.InvalidRequest("insufficient space for master-stack tiling: area=%gx%g master=%g cell=%gx%g gap=%g",
			width, height, masterW, cellW, cellH, gap)
	}

	out := make([]geom.Rect, stack+1)
	out[0] = master
	for i := 0; i < stack; i++ {
		row, col := i/cols, i%cols
		out[i+1] = geom.RectAt(
			geom.V2(rightX+float32(col)*(cellW+gap), area.Min.Y+gap+float32(row)*(cellH+gap)),
			geom.Sz(cellW, cellH),
		)
	}
	return out, nil
}

// Tiled sizes and positions its visible children to fill its own area.
// Children past the capacity of fixed and master-stack tiling are left
// where they are.
type Tiled struct {
	Container
	opts TileOptions
}

// NewTiled returns a container tiling with DefaultTileOptions
func NewTiled() *Tiled { return &Tiled{opts: DefaultTileOptions()} }

func (t *Tiled) Init(w *gui.Window) error {
	t.init(w, t.arrange)
	t.own.Add(w.Events().Subscribe(gui.EventPropertyChanged, func(a event.Args) bool {
		t.propertyChanged(a.(*gui.PropertyArgs).Property)
		return false
	}))
	return define(w,
		property.Definition{Name: "TileMode", Kind: property.KindString, Default: string(t.opts.Mode), Help: "auto, fixed, vertical, horizontal or master-stack"},
		property.Definition{Name: "TileGap", Kind: property.KindFloat, Default: "0", Help: "pixels between tiles"},
		property.Definition{Name: "MasterFraction", Kind: property.KindFloat, Default: "0.5", Help: "share of the width given to the master pane"},
		property.Definition{Name: "FixedRows", Kind: property.KindFloat, Default: "0"},
		property.Definition{Name: "FixedCols", Kind: property.KindFloat, Default: "0"},
	)
}

func (t *Tiled) propertyChanged(name string) {
	w := t.win
	opts := t.opts
	switch name {
	case "TileMode":
		v, _ := w.Property(name)
		mode, err := ParseTileMode(v)
		if err != nil {
			w.Runtime().Logger().Warn("tile mode rejected", "window", w.Path(), "error", err)
			return
		}
		opts.Mode = mode
	case "TileGap":
		opts.Gap = floatProperty(w, name)
	case "MasterFraction":
		opts.MasterFraction = floatProperty(w, name)
	case "FixedRows":
		opts.Rows = intProperty(w, name)
	case "FixedCols":
		opts.Cols = intProperty(w, name)
	default:
		return
	}
	t.opts = opts
	t.MarkNeedsLayout()
}

// Options returns the tiling options
func (t *Tiled) Options() TileOptions { return t.opts }

// SetOptions replaces the tiling options
func (t *Tiled) SetOptions(o TileOptions) {
	t.opts = o
	t.MarkNeedsLayout()
}

// ChildContentArea is the container's own rect
func (t *Tiled) ChildContentArea(w *gui.Window, nonClient bool) geom.Rect {
	if nonClient {
		return w.UnclippedOuterRect()
	}
	return w.UnclippedInnerRect()
}

func (t *Tiled) arrange() error {
	w := t.win
	var tiles []*gui.Window
	for _, c := range w.Children() {
		if c.IsVisible() {
			tiles = append(tiles, c)
		}
	}
	area := geom.RectAt(geom.Vec2{}, w.ChildContentArea(false).Size())
	rects, err := Tile(len(tiles), area, t.opts)
	if err != nil {
		return fmt.Errorf("tile %q: %w", w.Path(), err)
	}
	for i, r := range rects {
		c := tiles[i]
		c.SetSize(udim.AbsSize(r.Width(), r.Height()))
		place(w, c, r.Min)
	}
	return nil
}

func floatProperty(w *gui.Window, name string) float32 {
	v, ok := w.PropertyValue(name)
	if !ok {
		return 0
	}
	f, _ := v.AsFloat()
	return f
}
