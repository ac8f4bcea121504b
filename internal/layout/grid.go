package layout

import (
	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/property"
	"github.com/1broseidon/cegui/internal/udim"
)

// AutoPositioning picks the free cell a child added without explicit
// coordinates goes to
type AutoPositioning int

const (
	AutoDisabled AutoPositioning = iota
	AutoLeftToRight
	AutoTopToBottom
)

// String returns the string representation of the mode
func (a AutoPositioning) String() string {
	switch a {
	case AutoDisabled:
		return "Disabled"
	case AutoLeftToRight:
		return "LeftToRight"
	case AutoTopToBottom:
		return "TopToBottom"
	}
	return "Unknown"
}

// ParseAutoPositioning parses an auto positioning mode name
func ParseAutoPositioning(s string) (AutoPositioning, error) {
	switch s {
	case "Disabled":
		return AutoDisabled, nil
	case "LeftToRight":
		return AutoLeftToRight, nil
	case "TopToBottom":
		return AutoTopToBottom, nil
	}
	return 0, guierr.InvalidRequest("invalid auto positioning %q", s)
}

// Grid places children in the cells of a cols x rows grid. Column widths
// and row heights are the largest bounding sizes found in each column and
// row; the container resizes to their sums. Empty cells hold the zero
// handle.
type Grid struct {
	Container
	cols, rows int
	cells      []gui.Handle
	auto       AutoPositioning

	// pending is the child being attached by AddChildToCell
	pending gui.Handle
}

func (g *Grid) Init(w *gui.Window) error {
	g.init(w, g.arrange)
	g.auto = AutoLeftToRight
	g.own.Add(w.Events().Subscribe(gui.EventChildAdded, func(a event.Args) bool {
		h := a.(*gui.ChildArgs).Child
		if h == g.pending {
			return false
		}
		if c, err := w.Runtime().Get(h); err != nil || c.IsAutoWindow() {
			return false
		}
		if col, row, ok := g.nextFree(); ok {
			g.cells[row*g.cols+col] = h
		}
		return false
	}))
	g.own.Add(w.Events().Subscribe(gui.EventChildRemoved, func(a event.Args) bool {
		g.clear(a.(*gui.ChildArgs).Child)
		return false
	}))
	g.own.Add(w.Events().Subscribe(gui.EventPropertyChanged, func(a event.Args) bool {
		g.propertyChanged(a.(*gui.PropertyArgs).Property)
		return false
	}))
	return define(w,
		property.Definition{Name: "GridWidth", Kind: property.KindFloat, Default: "0", Help: "number of columns"},
		property.Definition{Name: "GridHeight", Kind: property.KindFloat, Default: "0", Help: "number of rows"},
		property.Definition{Name: "AutoPositioning", Kind: property.KindString, Default: AutoLeftToRight.String(), Help: "cell order for children added without coordinates"},
	)
}

func (g *Grid) propertyChanged(name string) {
	w := g.win
	log := w.Runtime().Logger()
	switch name {
	case "GridWidth", "GridHeight":
		cols, rows := intProperty(w, "GridWidth"), intProperty(w, "GridHeight")
		if err := g.SetGridDimensions(cols, rows); err != nil {
			log.Warn("grid dimensions rejected", "grid", w.Path(), "error", err)
		}
	case "AutoPositioning":
		v, _ := w.Property(name)
		mode, err := ParseAutoPositioning(v)
		if err != nil {
			log.Warn("auto positioning rejected", "grid", w.Path(), "error", err)
			return
		}
		g.auto = mode
	}
}

// AcceptChild rejects children the grid has no cell for. Auto windows and
// children attached through AddChildToCell bypass the cell check.
func (g *Grid) AcceptChild(w, child *gui.Window) error {
	if child.Handle() == g.pending || child.IsAutoWindow() {
		return nil
	}
	if g.cols == 0 || g.rows == 0 {
		return guierr.InvalidRequest("grid %q needs non-zero dimensions to accept %q", w.Path(), child.Name())
	}
	if g.auto == AutoDisabled {
		return guierr.InvalidRequest("grid %q has auto positioning disabled, add %q to a cell", w.Path(), child.Name())
	}
	if _, _, ok := g.nextFree(); !ok {
		return guierr.InvalidRequest("grid %q is full, cannot add %q", w.Path(), child.Name())
	}
	return nil
}

// GridDimensions returns the column and row counts
func (g *Grid) GridDimensions() (cols, rows int) { return g.cols, g.rows }

// SetGridDimensions resizes the grid. Children whose cell still exists keep
// it; the others are detached from the container but not destroyed.
func (g *Grid) SetGridDimensions(cols, rows int) error {
	if cols < 0 || rows < 0 {
		return guierr.InvalidRequest("grid dimensions %dx%d are negative", cols, rows)
	}
	if cols == g.cols && rows == g.rows {
		return nil
	}
	props := g.win.Props()
	if err := props.Set("GridWidth", property.Float(float32(cols))); err != nil {
		return err
	}
	if err := props.Set("GridHeight", property.Float(float32(rows))); err != nil {
		return err
	}
	old, oldCols := g.cells, g.cols
	g.cells = make([]gui.Handle, cols*rows)
	g.cols, g.rows = cols, rows

	var evicted []gui.Handle
	for i, h := range old {
		if h.IsZero() {
			continue
		}
		col, row := i%oldCols, i/oldCols
		if col < cols && row < rows {
			g.cells[row*cols+col] = h
		} else {
			evicted = append(evicted, h)
		}
	}
	for _, h := range evicted {
		if c, err := g.win.Runtime().Get(h); err == nil {
			g.win.RemoveChild(c)
		}
	}
	g.MarkNeedsLayout()
	return nil
}

// AutoPositioning returns the cell order for children added without
// coordinates
func (g *Grid) AutoPositioning() AutoPositioning { return g.auto }

// SetAutoPositioning sets the cell order for children added without
// coordinates
func (g *Grid) SetAutoPositioning(a AutoPositioning) {
	g.auto = a
	if err := g.win.Props().Set("AutoPositioning", property.String(a.String())); err != nil {
		g.win.Runtime().Logger().Warn("auto positioning not stored", "grid", g.win.Path(), "error", err)
	}
}

// nextFree returns the first empty cell in auto positioning order
func (g *Grid) nextFree() (col, row int, ok bool) {
	switch g.auto {
	case AutoLeftToRight:
		for i, h := range g.cells {
			if h.IsZero() {
				return i % g.cols, i / g.cols, true
			}
		}
	case AutoTopToBottom:
		for col := 0; col < g.cols; col++ {
			for row := 0; row < g.rows; row++ {
				if g.cells[row*g.cols+col].IsZero() {
					return col, row, true
				}
			}
		}
	}
	return 0, 0, false
}

func (g *Grid) index(col, row int) (int, error) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return 0, guierr.InvalidRequest("cell (%d,%d) is outside the %dx%d grid", col, row, g.cols, g.rows)
	}
	return row*g.cols + col, nil
}

func (g *Grid) clear(h gui.Handle) {
	for i, x := range g.cells {
		if x == h {
			g.cells[i] = gui.Handle{}
		}
	}
}

// Add attaches h to the next free cell in auto positioning order
func (g *Grid) Add(h gui.Handle) error {
	if g.auto == AutoDisabled {
		return guierr.InvalidRequest("grid %q has auto positioning disabled", g.win.Path())
	}
	col, row, ok := g.nextFree()
	if !ok {
		return guierr.InvalidRequest("grid %q is full", g.win.Path())
	}
	return g.AddChildToCell(h, col, row, false)
}

// AddChildToCell attaches h at (col, row). An occupied cell is an error
// unless replace is set, in which case its occupant is detached.
func (g *Grid) AddChildToCell(h gui.Handle, col, row int, replace bool) error {
	c, err := g.win.Runtime().Get(h)
	if err != nil {
		return err
	}
	i, err := g.index(col, row)
	if err != nil {
		return err
	}
	if cur := g.cells[i]; !cur.IsZero() && cur != h {
		if !replace {
			return guierr.InvalidRequest("cell (%d,%d) of %q is occupied", col, row, g.win.Path())
		}
		if occupant, err := g.win.Runtime().Get(cur); err == nil {
			g.win.RemoveChild(occupant)
		}
	}

	if g.win.IsChild(h) {
		g.clear(h)
	} else {
		g.pending = h
		err = g.win.AddChild(c)
		g.pending = gui.Handle{}
		if err != nil {
			return err
		}
	}
	g.cells[i] = h
	g.MarkNeedsLayout()
	return nil
}

// ChildAtCell returns the handle in (col, row), zero when empty or out of
// range
func (g *Grid) ChildAtCell(col, row int) gui.Handle {
	i, err := g.index(col, row)
	if err != nil {
		return gui.Handle{}
	}
	return g.cells[i]
}

// CellOf returns the cell holding h
func (g *Grid) CellOf(h gui.Handle) (col, row int, ok bool) {
	for i, x := range g.cells {
		if x == h && !h.IsZero() {
			return i % g.cols, i / g.cols, true
		}
	}
	return 0, 0, false
}

// SwapCells exchanges the contents of two cells
func (g *Grid) SwapCells(col1, row1, col2, row2 int) error {
	i, err := g.index(col1, row1)
	if err != nil {
		return err
	}
	j, err := g.index(col2, row2)
	if err != nil {
		return err
	}
	g.cells[i], g.cells[j] = g.cells[j], g.cells[i]
	g.MarkNeedsLayout()
	return nil
}

// MoveChildToCell moves a child of the grid to an empty cell
func (g *Grid) MoveChildToCell(h gui.Handle, col, row int) error {
	if !g.win.IsChild(h) {
		return guierr.UnknownObject("window %s is not a child of %q", h, g.win.Path())
	}
	i, err := g.index(col, row)
	if err != nil {
		return err
	}
	if cur := g.cells[i]; !cur.IsZero() && cur != h {
		return guierr.InvalidRequest("cell (%d,%d) of %q is occupied", col, row, g.win.Path())
	}
	g.clear(h)
	g.cells[i] = h
	g.MarkNeedsLayout()
	return nil
}

func (g *Grid) arrange() error {
	w := g.win
	rt := w.Runtime()
	widths := make([]float32, g.cols)
	heights := make([]float32, g.rows)
	for i, h := range g.cells {
		child, err := rt.Get(h)
		if err != nil {
			continue
		}
		b := boundingSize(w, child)
		col, row := i%g.cols, i/g.cols
		widths[col] = max(widths[col], b.Width)
		heights[row] = max(heights[row], b.Height)
	}

	offsets := func(sizes []float32) ([]float32, float32) {
		out := make([]float32, len(sizes))
		var sum float32
		for i, s := range sizes {
			out[i] = sum
			sum += s
		}
		return out, sum
	}
	xs, width := offsets(widths)
	ys, height := offsets(heights)

	for i, h := range g.cells {
		child, err := rt.Get(h)
		if err != nil {
			continue
		}
		p := marginOffset(w, child).Add(geom.V2(xs[i%g.cols], ys[i/g.cols]))
		place(w, child, p)
	}
	w.SetSize(udim.AbsSize(width, height))
	return nil
}

func intProperty(w *gui.Window, name string) int {
	v, ok := w.PropertyValue(name)
	if !ok {
		return 0
	}
	f, err := v.AsFloat()
	if err != nil {
		return 0
	}
	return int(f)
}

func define(w *gui.Window, defs ...property.Definition) error {
	for _, d := range defs {
		if err := w.Props().Define(d); err != nil {
			return err
		}
	}
	return nil
}
