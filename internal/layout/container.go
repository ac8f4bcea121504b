// Package layout provides window kinds that arrange their children: stacks,
// grids, tiles and a scrolled content pane.
//
// Layout containers never arrange synchronously. Child changes only mark
// the container dirty, and the arrangement runs at most once in the next
// time pulse, so any number of mutations within a frame cost one pass.
package layout

import (
	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/udim"
)

// Type names
const (
	VerticalType   = "VerticalLayoutContainer"
	HorizontalType = "HorizontalLayoutContainer"
	GridType       = "GridLayoutContainer"
	TiledType      = "TiledLayoutContainer"
	ScrolledType   = "ScrolledContainer"
)

// Register adds the container kinds to rt
func Register(rt *gui.Runtime) error {
	kinds := []struct {
		name    string
		factory gui.Factory
	}{
		{VerticalType, func() gui.Behaviour { return NewSequential(Vertical) }},
		{HorizontalType, func() gui.Behaviour { return NewSequential(Horizontal) }},
		{GridType, func() gui.Behaviour { return &Grid{} }},
		{TiledType, func() gui.Behaviour { return NewTiled() }},
		{ScrolledType, func() gui.Behaviour { return NewScrolled() }},
	}
	for _, k := range kinds {
		if err := rt.RegisterType(k.name, k.factory); err != nil {
			return err
		}
	}
	return nil
}

// Container holds the state shared by every layout kind: the dirty flag and
// the subscriptions held on each child.
type Container struct {
	win     *gui.Window
	arrange func() error

	dirty   bool
	busy    bool
	layouts int

	own      event.Connections
	children map[gui.Handle]*event.Connections
}

// init binds the container to w. arrange positions the children and is only
// called from layout.
func (c *Container) init(w *gui.Window, arrange func() error) {
	c.win = w
	c.arrange = arrange
	c.children = make(map[gui.Handle]*event.Connections)
	c.dirty = true

	ev := w.Events()
	c.own.Add(ev.Subscribe(gui.EventChildAdded, func(a event.Args) bool {
		c.connect(a.(*gui.ChildArgs).Child)
		c.MarkNeedsLayout()
		return false
	}))
	c.own.Add(ev.Subscribe(gui.EventChildRemoved, func(a event.Args) bool {
		c.disconnect(a.(*gui.ChildArgs).Child)
		c.MarkNeedsLayout()
		return false
	}))
	mark := func(event.Args) bool {
		c.MarkNeedsLayout()
		return false
	}
	c.own.Add(ev.Subscribe(gui.EventSized, mark))
	c.own.Add(ev.Subscribe(gui.EventParentSized, mark))
	c.own.Add(ev.Subscribe(gui.EventDestructionStarted, func(event.Args) bool {
		for h := range c.children {
			c.disconnect(h)
		}
		c.own.DisconnectAll()
		return false
	}))
}

func (c *Container) connect(h gui.Handle) {
	child, err := c.win.Runtime().Get(h)
	if err != nil {
		return
	}
	conns := &event.Connections{}
	mark := func(event.Args) bool {
		c.MarkNeedsLayout()
		return false
	}
	for _, name := range []event.Name{gui.EventAreaChanged, gui.EventSized, gui.EventMarginChanged, gui.EventShown, gui.EventHidden} {
		conns.Add(child.Events().Subscribe(name, mark))
	}
	c.children[h] = conns
}

func (c *Container) disconnect(h gui.Handle) {
	if conns, ok := c.children[h]; ok {
		conns.DisconnectAll()
		delete(c.children, h)
	}
}

// Window returns the window the container arranges
func (c *Container) Window() *gui.Window { return c.win }

// MarkNeedsLayout schedules an arrangement for the next update. Changes made
// by the arrangement itself are ignored.
func (c *Container) MarkNeedsLayout() {
	if !c.busy {
		c.dirty = true
	}
}

// NeedsLayout reports whether an arrangement is pending
func (c *Container) NeedsLayout() bool { return c.dirty }

// LayoutCount returns how many arrangements have run
func (c *Container) LayoutCount() int { return c.layouts }

// ConnectedChildren returns how many children the container holds
// subscriptions on
func (c *Container) ConnectedChildren() int { return len(c.children) }

// ChildConnections returns the number of live subscriptions held on h
func (c *Container) ChildConnections(h gui.Handle) int {
	if conns, ok := c.children[h]; ok {
		return conns.Len()
	}
	return 0
}

// Layout arranges the children now and clears the dirty flag
func (c *Container) Layout() error {
	c.busy = true
	defer func() { c.busy = false }()
	c.dirty = false
	c.layouts++
	if err := c.arrange(); err != nil {
		return err
	}
	// Flush the lazily reported Sized and Moved notifications caused by the
	// arrangement while they are still ignored.
	c.win.UnclippedOuterRect()
	for _, child := range c.win.Children() {
		child.UnclippedOuterRect()
	}
	return nil
}

// Update runs a pending arrangement once per time pulse
func (c *Container) Update(_ *gui.Window, _ float32) error {
	if !c.dirty {
		return nil
	}
	return c.Layout()
}

// ChildContentArea places children at the container origin and resolves
// them against the parent's inner size, so relative sizes do not depend on
// the extent the container shrinks or grows to.
func (c *Container) ChildContentArea(w *gui.Window, _ bool) geom.Rect {
	return parentSizedArea(w)
}

func parentSizedArea(w *gui.Window) geom.Rect {
	return geom.RectAt(w.UnclippedOuterRect().Min, w.ParentPixelSize())
}

// boundingSize is the child's pixel size plus its margin
func boundingSize(cont, child *gui.Window) geom.Size {
	sz := child.PixelSize()
	l, t, r, b := child.Margin().Resolve(cont.ChildContentArea(child.IsNonClient()).Size())
	return geom.Sz(sz.Width+l+r, sz.Height+t+b)
}

// marginOffset is the top left margin of child
func marginOffset(cont, child *gui.Window) geom.Vec2 {
	l, t, _, _ := child.Margin().Resolve(cont.ChildContentArea(child.IsNonClient()).Size())
	return geom.V2(l, t)
}

// place moves child so its outer rect starts at p relative to the container
// origin. The child's own alignment is compensated for.
func place(cont, child *gui.Window, p geom.Vec2) {
	base := cont.ChildContentArea(child.IsNonClient()).Size()
	sz := child.PixelSize()
	switch child.HorizontalAlignment() {
	case gui.HAlignCentre:
		p.X -= (base.Width - sz.Width) * 0.5
	case gui.HAlignRight:
		p.X -= base.Width - sz.Width
	}
	switch child.VerticalAlignment() {
	case gui.VAlignCentre:
		p.Y -= (base.Height - sz.Height) * 0.5
	case gui.VAlignBottom:
		p.Y -= base.Height - sz.Height
	}
	child.SetPosition(udim.AbsVec(p.X, p.Y))
}
