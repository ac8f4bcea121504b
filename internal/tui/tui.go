// Package tui previews a session in the terminal. Window rectangles are
// scaled onto the character grid and drawn as ASCII boxes next to a panel
// listing the window tree.
package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/cegui/internal/platform"
)

// Fallback grid used when the output is not a terminal
const (
	DefaultCols = 80
	DefaultRows = 24
)

// ErrNotTerminal is returned by Run when stdin or stdout is not a terminal
var ErrNotTerminal = errors.New("tui requires an interactive terminal")

// Options configures Run
type Options struct {
	FPS int
	// Tasks, when set, are run by the program between updates.
	Tasks <-chan func()
}

// Run shows s until the user quits or ctx is cancelled. The session must
// not be used by anything else while Run is active.
func Run(ctx context.Context, s *platform.Session, opts Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}
	m := newModel(s, opts.FPS)
	m.tasks = opts.Tasks
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// TerminalSize returns the size of the terminal on stdout, or the
// fallback grid when stdout is not a terminal
func TerminalSize() (cols, rows int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return DefaultCols, DefaultRows
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return DefaultCols, DefaultRows
	}
	return w, h
}

// Dump writes one unstyled snapshot of the window tree of s on a cols by
// rows grid
func Dump(w io.Writer, s *platform.Session, cols, rows int) error {
	c := newCanvas(cols, rows)
	c.draw(platform.Snapshot(s.Runtime), s.Runtime.DisplaySize())
	lines := c.plain()
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
