package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/cegui/internal/config"
	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/navigator"
	"github.com/1broseidon/cegui/internal/platform"
	"github.com/1broseidon/cegui/internal/widgets"
)

func newSession(t *testing.T, cfg *config.Config) *platform.Session {
	t.Helper()
	s, err := platform.NewSession(platform.SessionOptions{Config: cfg})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	require.NoError(t, s.LoadLayout(""))
	return s
}

func TestCanvasDrawsBoxes(t *testing.T) {
	windows := []platform.WindowInfo{
		{Path: "root", Visible: true, Clip: geom.R(0, 0, 80, 24)},
		{Path: "root/ok", Visible: true, Focused: true, Text: "OK", Clip: geom.R(10, 5, 30, 10)},
		{Path: "root/hidden", Clip: geom.R(40, 5, 60, 10)},
		{Path: "root/ok/__auto__", Visible: true, Auto: true, Clip: geom.R(12, 6, 20, 9)},
		{Path: "root/tiny", Visible: true, Clip: geom.R(70, 20, 71, 21)},
	}
	c := newCanvas(80, 24)
	c.draw(windows, geom.Sz(80, 24))
	lines := c.plain()

	require.Len(t, lines, 24)
	assert.Equal(t, "+root"+strings.Repeat("-", 74)+"+", lines[0])
	assert.Equal(t, byte('+'), lines[23][79])
	assert.Equal(t, "+ok-", lines[5][10:14])
	assert.Equal(t, "|OK ", lines[6][10:14])
	assert.Equal(t, byte('+'), lines[9][29])
	assert.Equal(t, byte(' '), lines[5][40], "hidden windows are not drawn")
	assert.Equal(t, byte(' '), lines[7][12], "auto windows are not drawn")
	assert.Equal(t, byte(' '), lines[20][70], "windows below two cells are skipped")

	assert.Equal(t, markFocus, c.marks[5*80+10])
	assert.Equal(t, markBox, c.marks[0])
	assert.Equal(t, markLabel, c.marks[1])
}

func TestCanvasScalesToGrid(t *testing.T) {
	c := newCanvas(40, 12)
	x0, y0, x1, y1 := c.cellRect(geom.R(100, 100, 300, 250), geom.Sz(800, 600))
	assert.Equal(t, []int{5, 2, 14, 4}, []int{x0, y0, x1, y1})

	x0, y0, x1, y1 = c.cellRect(geom.R(-50, -50, 900, 700), geom.Sz(800, 600))
	assert.Equal(t, []int{0, 0, 39, 11}, []int{x0, y0, x1, y1})
}

func TestCanvasStyledKeepsText(t *testing.T) {
	c := newCanvas(6, 3)
	c.box(0, 0, 5, 2, markBox)
	c.text(1, 0, 4, "ab", markFocus)
	out := c.styled()
	assert.Len(t, strings.Split(out, "\n"), 3)
	assert.Contains(t, out, "ab")
}

func TestSemanticForKey(t *testing.T) {
	tests := []struct {
		key  string
		want navigator.SemanticValue
		ok   bool
	}{
		{"up", navigator.GoUp, true},
		{"down", navigator.GoDown, true},
		{"left", navigator.GoLeft, true},
		{"right", navigator.GoRight, true},
		{"tab", navigator.GoToNext, true},
		{"shift+tab", navigator.GoToPrevious, true},
		{"x", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := semanticForKey(tt.key)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDump(t *testing.T) {
	s := newSession(t, nil)
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, s, 80, 60))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 60)
	assert.True(t, strings.HasPrefix(lines[0], "+root"))
	// root/panel/ok spans cells 9..18 by 10..13 at a tenth of 800x600
	require.Greater(t, len(lines[10]), 13)
	assert.Equal(t, "+ok", lines[10][9:12])
	assert.Contains(t, lines[11], "OK")
}

func TestModelNavigatesAndClicks(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Navigation.Strategy = "linear"
	s := newSession(t, cfg)

	ok, err := s.Runtime.Window("root/panel/ok")
	require.NoError(t, err)
	clicks := 0
	ok.Events().Subscribe(widgets.EventClicked, func(event.Args) bool {
		clicks++
		return true
	})

	var m tea.Model = newModel(s, 30)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.NotNil(t, s.Runtime.Focused())
	assert.Equal(t, ok.Handle(), s.Runtime.Focused().Handle())

	mm := m.(model)
	item, isItem := mm.windows.SelectedItem().(windowItem)
	require.True(t, isItem)
	assert.Equal(t, "root/panel/ok", item.info.Path)
	assert.Equal(t, "GoToNext", mm.status)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, clicks)
	assert.Equal(t, "clicked root/panel/ok", m.(model).status)

	view := m.View()
	assert.Contains(t, view, "Windows")
	assert.Contains(t, view, "800x600")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModelTickSteps(t *testing.T) {
	s := newSession(t, nil)
	var m tea.Model = newModel(s, 10)
	assert.Equal(t, 100*time.Millisecond, m.(model).interval)

	start := time.Now()
	m, cmd := m.Update(tickMsg(start))
	require.NotNil(t, cmd)
	m, _ = m.Update(tickMsg(start.Add(time.Second)))
	require.NoError(t, m.(model).err)

	panel, err := s.Runtime.Window("root/panel")
	require.NoError(t, err)
	assert.InDelta(t, 1, panel.Alpha(), 1e-6)
	assert.Equal(t, "loading...", newModel(s, 0).View())
}

func TestModelRunsQueuedTasks(t *testing.T) {
	s := newSession(t, nil)
	tasks := make(chan func(), 1)
	m := newModel(s, 30)
	m.tasks = tasks

	tasks <- func() { _ = s.Resize(geom.Sz(400, 300)) }
	msg := m.waitTask()()
	next, cmd := m.Update(msg)
	assert.NotNil(t, cmd, "the model keeps waiting for tasks")
	assert.Equal(t, geom.Sz(400, 300), s.Runtime.DisplaySize())

	next, _ = next.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Contains(t, next.View(), "400x300")

	assert.Nil(t, newModel(s, 30).waitTask())
}
