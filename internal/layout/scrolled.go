package layout

import (
	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/property"
)

// Scrolled container events
const (
	EventContentChanged         event.Name = "ContentChanged"
	EventAutoSizeSettingChanged event.Name = "AutoSizeSettingChanged"
)

// Scrolled is the content pane of a scrollable view. It tracks the extent
// of its children so a host can size scrollbars. When auto sized, the
// content area follows the child extents on every content change;
// otherwise it stays at the value last set.
type Scrolled struct {
	win      *gui.Window
	autoSize bool
	content  geom.Rect
	updating bool

	own      event.Connections
	children map[gui.Handle]*event.Connections
}

// NewScrolled returns an auto sized content pane
func NewScrolled() *Scrolled { return &Scrolled{autoSize: true} }

func (s *Scrolled) Init(w *gui.Window) error {
	s.win = w
	s.children = make(map[gui.Handle]*event.Connections)
	ev := w.Events()
	s.own.Add(ev.Subscribe(gui.EventChildAdded, func(a event.Args) bool {
		s.connect(a.(*gui.ChildArgs).Child)
		s.contentChanged()
		return false
	}))
	s.own.Add(ev.Subscribe(gui.EventChildRemoved, func(a event.Args) bool {
		h := a.(*gui.ChildArgs).Child
		if conns, ok := s.children[h]; ok {
			conns.DisconnectAll()
			delete(s.children, h)
		}
		s.contentChanged()
		return false
	}))
	s.own.Add(ev.Subscribe(gui.EventPropertyChanged, func(a event.Args) bool {
		if a.(*gui.PropertyArgs).Property == "ContentPaneAutoSized" {
			v, _ := w.PropertyValue("ContentPaneAutoSized")
			b, _ := v.AsBool()
			s.SetContentPaneAutoSized(b)
		}
		return false
	}))
	return w.Props().Define(property.Definition{
		Name:    "ContentPaneAutoSized",
		Kind:    property.KindBool,
		Default: "true",
		Help:    "whether the content area follows the child extents",
	})
}

func (s *Scrolled) connect(h gui.Handle) {
	child, err := s.win.Runtime().Get(h)
	if err != nil {
		return
	}
	conns := &event.Connections{}
	changed := func(event.Args) bool {
		s.contentChanged()
		return false
	}
	for _, name := range []event.Name{gui.EventAreaChanged, gui.EventMoved, gui.EventSized} {
		conns.Add(child.Events().Subscribe(name, changed))
	}
	s.children[h] = conns
}

// ChildConnections returns the number of live subscriptions held on h
func (s *Scrolled) ChildConnections(h gui.Handle) int {
	if conns, ok := s.children[h]; ok {
		return conns.Len()
	}
	return 0
}

// ChildContentArea places children at the pane origin sized against the
// parent, like a layout container
func (s *Scrolled) ChildContentArea(w *gui.Window, _ bool) geom.Rect {
	return parentSizedArea(w)
}

func (s *Scrolled) contentChanged() {
	if s.updating {
		return
	}
	s.updating = true
	defer func() { s.updating = false }()
	if s.autoSize {
		s.content = s.ChildExtentsArea()
	}
	s.win.Events().Fire(EventContentChanged, &gui.WindowArgs{Window: s.win.Handle()})
}

// ChildExtentsArea is the bounding box of all children in the pane's pixel
// space, honouring their alignment. It is empty without children.
func (s *Scrolled) ChildExtentsArea() geom.Rect {
	children := s.win.Children()
	if len(children) == 0 {
		return geom.Rect{}
	}
	origin := s.win.UnclippedOuterRect().Min
	ext := children[0].UnclippedOuterRect().Offset(origin.Scale(-1))
	for _, c := range children[1:] {
		r := c.UnclippedOuterRect().Offset(origin.Scale(-1))
		ext.Min.X = min(ext.Min.X, r.Min.X)
		ext.Min.Y = min(ext.Min.Y, r.Min.Y)
		ext.Max.X = max(ext.Max.X, r.Max.X)
		ext.Max.Y = max(ext.Max.Y, r.Max.Y)
	}
	return ext
}

// ContentArea returns the content extent used for scrolling
func (s *Scrolled) ContentArea() geom.Rect { return s.content }

// SetContentArea fixes the content area. It is overwritten by the next
// content change while the pane is auto sized.
func (s *Scrolled) SetContentArea(r geom.Rect) {
	if r == s.content {
		return
	}
	s.content = r
	if !s.autoSize {
		s.win.Events().Fire(EventContentChanged, &gui.WindowArgs{Window: s.win.Handle()})
	}
}

// IsContentPaneAutoSized reports whether the content area follows the
// child extents
func (s *Scrolled) IsContentPaneAutoSized() bool { return s.autoSize }

// SetContentPaneAutoSized switches auto sizing; switching it on recomputes
// the content area at once.
func (s *Scrolled) SetContentPaneAutoSized(b bool) {
	if b == s.autoSize {
		return
	}
	s.autoSize = b
	if err := s.win.Props().Set("ContentPaneAutoSized", property.Bool(b)); err != nil {
		s.win.Runtime().Logger().Warn("auto size setting not stored", "window", s.win.Path(), "error", err)
	}
	s.win.Events().Fire(EventAutoSizeSettingChanged, &gui.WindowArgs{Window: s.win.Handle()})
	if b {
		s.contentChanged()
	}
}
