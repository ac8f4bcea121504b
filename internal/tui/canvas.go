package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chewxy/math32"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/platform"
)

type cellMark uint8

const (
	markNone cellMark = iota
	markBox
	markLabel
	markFocus
)

var (
	boxStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	focusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

// canvas is a character grid the window rects are drawn into
type canvas struct {
	cols  int
	rows  int
	cells []rune
	marks []cellMark
}

func newCanvas(cols, rows int) *canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	c := &canvas{cols: cols, rows: rows, cells: make([]rune, cols*rows), marks: make([]cellMark, cols*rows)}
	for i := range c.cells {
		c.cells[i] = ' '
	}
	return c
}

func (c *canvas) set(x, y int, r rune, m cellMark) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	c.cells[y*c.cols+x] = r
	c.marks[y*c.cols+x] = m
}

func (c *canvas) box(x0, y0, x1, y1 int, m cellMark) {
	for x := x0 + 1; x < x1; x++ {
		c.set(x, y0, '-', m)
		c.set(x, y1, '-', m)
	}
	for y := y0 + 1; y < y1; y++ {
		c.set(x0, y, '|', m)
		c.set(x1, y, '|', m)
	}
	for _, p := range [][2]int{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		c.set(p[0], p[1], '+', m)
	}
}

func (c *canvas) text(x, y, width int, s string, m cellMark) {
	for _, r := range s {
		if width <= 0 {
			return
		}
		c.set(x, y, r, m)
		x++
		width--
	}
}

// cellRect maps a pixel rect onto inclusive cell bounds
func (c *canvas) cellRect(r geom.Rect, display geom.Size) (x0, y0, x1, y1 int) {
	sx := float32(c.cols) / display.Width
	sy := float32(c.rows) / display.Height
	x0 = int(math32.Floor(r.Left() * sx))
	y0 = int(math32.Floor(r.Top() * sy))
	x1 = int(math32.Ceil(r.Right()*sx)) - 1
	y1 = int(math32.Ceil(r.Bottom()*sy)) - 1
	return max(x0, 0), max(y0, 0), min(x1, c.cols-1), min(y1, c.rows-1)
}

// draw outlines every visible window in document order, labelling each
// with its name. Windows too small for a box are skipped.
func (c *canvas) draw(windows []platform.WindowInfo, display geom.Size) {
	if display.Width <= 0 || display.Height <= 0 {
		return
	}
	for _, w := range windows {
		if !w.Visible || w.Auto || w.Clip.IsEmpty() {
			continue
		}
		x0, y0, x1, y1 := c.cellRect(w.Clip, display)
		if x1-x0 < 1 || y1-y0 < 1 {
			continue
		}
		boxMark, textMark := markBox, markLabel
		if w.Focused {
			boxMark, textMark = markFocus, markFocus
		}
		c.box(x0, y0, x1, y1, boxMark)
		name := w.Path[strings.LastIndex(w.Path, "/")+1:]
		c.text(x0+1, y0, x1-x0-1, name, textMark)
		if w.Text != "" && y1-y0 >= 2 {
			c.text(x0+1, y0+1, x1-x0-1, w.Text, textMark)
		}
	}
}

// plain returns the grid rows without styling
func (c *canvas) plain() []string {
	out := make([]string, c.rows)
	for y := range c.rows {
		out[y] = string(c.cells[y*c.cols : (y+1)*c.cols])
	}
	return out
}

// styled returns the grid with runs of equally marked cells styled
func (c *canvas) styled() string {
	var b strings.Builder
	for y := range c.rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= c.cols; x++ {
			i := y*c.cols + x
			if x < c.cols && c.marks[i] == c.marks[i-1] {
				continue
			}
			run := string(c.cells[y*c.cols+start : i])
			b.WriteString(styleFor(c.marks[i-1]).Render(run))
			start = x
		}
	}
	return b.String()
}

func styleFor(m cellMark) lipgloss.Style {
	switch m {
	case markBox:
		return boxStyle
	case markLabel:
		return labelStyle
	case markFocus:
		return focusStyle
	}
	return lipgloss.NewStyle()
}
