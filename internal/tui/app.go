package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/cegui/internal/navigator"
	"github.com/1broseidon/cegui/internal/platform"
)

const panelWidth = 32

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	panelStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("238"))
)

type tickMsg time.Time

type taskMsg func()

// windowItem is one row of the window panel
type windowItem struct {
	info platform.WindowInfo
}

func (i windowItem) Title() string {
	name := i.info.Path[strings.LastIndex(i.info.Path, "/")+1:]
	prefix := strings.Repeat("  ", i.info.Depth)
	if i.info.Focused {
		return prefix + "> " + name
	}
	return prefix + name
}

func (i windowItem) Description() string { return i.info.Type }
func (i windowItem) FilterValue() string { return i.info.Path }

type model struct {
	session  *platform.Session
	windows  list.Model
	interval time.Duration
	last     time.Time
	tasks    <-chan func()

	width  int
	height int
	status string
	err    error
}

func newModel(s *platform.Session, fps int) model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Windows"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	if fps <= 0 {
		fps = 30
	}
	m := model{session: s, windows: l, interval: time.Second / time.Duration(fps)}
	m.refresh()
	return m
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// waitTask delivers the next queued task, if the model has a queue
func (m model) waitTask() tea.Cmd {
	if m.tasks == nil {
		return nil
	}
	tasks := m.tasks
	return func() tea.Msg { return taskMsg(<-tasks) }
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitTask())
}

// semanticForKey maps a key to the navigation it drives
func semanticForKey(key string) (navigator.SemanticValue, bool) {
	switch key {
	case "up":
		return navigator.GoUp, true
	case "down":
		return navigator.GoDown, true
	case "left":
		return navigator.GoLeft, true
	case "right":
		return navigator.GoRight, true
	case "tab":
		return navigator.GoToNext, true
	case "shift+tab":
		return navigator.GoToPrevious, true
	}
	return 0, false
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			m.clickSelected()
			m.refresh()
			return m, nil
		case "J":
			m.windows.CursorDown()
			return m, nil
		case "K":
			m.windows.CursorUp()
			return m, nil
		}
		if v, ok := semanticForKey(key); ok {
			if m.session.Navigate(v) {
				m.status = v.String()
			} else {
				m.status = v.String() + ": no target"
			}
			m.refresh()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.windows.SetSize(panelWidth, max(msg.Height-4, 1))
		return m, nil

	case taskMsg:
		if msg != nil {
			msg()
		}
		m.refresh()
		return m, m.waitTask()

	case tickMsg:
		now := time.Time(msg)
		var elapsed float32
		if !m.last.IsZero() {
			elapsed = float32(now.Sub(m.last).Seconds())
		}
		m.last = now
		if _, err := m.session.Step(elapsed); err != nil {
			m.err = err
		}
		m.refresh()
		return m, m.tick()
	}
	return m, nil
}

// clickSelected clicks the focused window, or the panel's selection when
// nothing has focus
func (m *model) clickSelected() {
	path := ""
	if f := m.session.Runtime.Focused(); f != nil {
		path = f.Path()
	} else if it, ok := m.windows.SelectedItem().(windowItem); ok {
		path = it.info.Path
	}
	if path == "" {
		return
	}
	handled, err := m.session.Click(path)
	switch {
	case err != nil:
		m.err = err
	case handled:
		m.status = "clicked " + path
	default:
		m.status = path + " ignored the click"
	}
}

// refresh rebuilds the panel from the window tree and follows focus
func (m *model) refresh() {
	snap := platform.Snapshot(m.session.Runtime)
	items := make([]list.Item, 0, len(snap))
	selected := -1
	for _, w := range snap {
		if w.Auto {
			continue
		}
		if w.Focused {
			selected = len(items)
		}
		items = append(items, windowItem{info: w})
	}
	m.windows.SetItems(items)
	if selected >= 0 {
		m.windows.Select(selected)
	}
}

func (m model) View() string {
	if m.width == 0 {
		return "loading..."
	}
	cols := max(m.width-panelWidth-2, 1)
	rows := max(m.height-2, 1)
	c := newCanvas(cols, rows)
	c.draw(platform.Snapshot(m.session.Runtime), m.session.Runtime.DisplaySize())

	body := lipgloss.JoinHorizontal(lipgloss.Top, c.styled(), panelStyle.Render(m.windows.View()))
	help := "arrows/tab navigate  enter click  J/K select  q quit"
	status := statusStyle.Render(help)
	if m.status != "" {
		status = statusStyle.Render(m.status + "  |  " + help)
	}
	if m.err != nil {
		status = errStyle.Render(fmt.Sprintf("error: %v", m.err))
	}
	header := titleStyle.Render("cegui " + m.session.Runtime.DisplaySize().String())
	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}
