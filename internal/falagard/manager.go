package falagard

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/guierr"
)

// Manager owns the defined widget looks and applies them to windows
type Manager struct {
	log   *slog.Logger
	looks map[string]*WidgetLook
}

var _ gui.LookRegistry = (*Manager)(nil)

// NewManager returns an empty manager. A nil logger discards output.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{log: logger, looks: make(map[string]*WidgetLook)}
}

// AddLook defines a look, replacing any look of the same name
func (m *Manager) AddLook(l *WidgetLook) error {
	if l == nil || l.Name == "" {
		return guierr.InvalidRequest("WidgetLook needs a name")
	}
	if _, ok := m.looks[l.Name]; ok {
		m.log.Info("replacing WidgetLook", "look", l.Name)
	}
	l.manager = m
	m.looks[l.Name] = l
	m.log.Debug("WidgetLook added", "look", l.Name, "inherits", l.Inherits)
	return nil
}

// EraseLook removes a look. Windows already using it keep their state.
func (m *Manager) EraseLook(name string) {
	if l, ok := m.looks[name]; ok {
		l.manager = nil
		delete(m.looks, name)
	}
}

// Look returns a defined look
func (m *Manager) Look(name string) (*WidgetLook, error) {
	l, ok := m.looks[name]
	if !ok {
		return nil, guierr.UnknownObject("WidgetLook %q is not defined", name)
	}
	return l, nil
}

// IsDefined reports whether a look exists
func (m *Manager) IsDefined(name string) bool {
	_, ok := m.looks[name]
	return ok
}

// Names returns the defined look names, sorted
func (m *Manager) Names() []string {
	out := make([]string, 0, len(m.looks))
	for n := range m.looks {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ApplyLook gives w the look's property definitions, then its child
// widgets, then runs the property initializers in declaration order.
func (m *Manager) ApplyLook(w *gui.Window, name string) error {
	l, err := m.Look(name)
	if err != nil {
		return err
	}
	defs, err := l.PropertyDefinitions(true)
	if err != nil {
		return err
	}
	for _, d := range defs {
		if err := w.Props().Define(d); err != nil {
			return fmt.Errorf("WidgetLook %q property definition %q: %w", name, d.Name, err)
		}
	}
	widgets, err := l.WidgetComponents(true)
	if err != nil {
		return err
	}
	for _, c := range widgets {
		if err := c.Create(w); err != nil {
			return fmt.Errorf("WidgetLook %q: %w", name, err)
		}
	}
	inits, err := l.PropertyInitializers(true)
	if err != nil {
		return err
	}
	for _, p := range inits {
		if err := w.SetProperty(p.Property, p.Value); err != nil {
			return fmt.Errorf("WidgetLook %q property initializer %q: %w", name, p.Property, err)
		}
	}
	m.log.Debug("WidgetLook applied", "look", name, "window", w.Path())
	return nil
}

// RemoveLook destroys the look's child widgets and drops its property
// definitions from w.
func (m *Manager) RemoveLook(w *gui.Window, name string) {
	l, err := m.Look(name)
	if err != nil {
		return
	}
	if widgets, err := l.WidgetComponents(true); err == nil {
		for _, c := range widgets {
			c.Destroy(w)
		}
	}
	if defs, err := l.PropertyDefinitions(true); err == nil {
		for _, d := range defs {
			w.Props().Undefine(d.Name)
		}
	}
}
