package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/ipc"
	"github.com/1broseidon/cegui/internal/platform"
	"github.com/1broseidon/cegui/internal/runtimepath"
	"github.com/1broseidon/cegui/internal/tui"
	"github.com/1broseidon/cegui/internal/x11"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// startControl serves the control socket of instance when enabled. The
// returned channel is nil when control is off.
func startControl(enabled bool, instance string, s *platform.Session, logger *slog.Logger) (<-chan func(), func(), error) {
	if !enabled {
		return nil, func() {}, nil
	}
	sock, err := runtimepath.SocketPath(instance)
	if err != nil {
		return nil, nil, err
	}
	srv := ipc.NewServer(sock, s, logger.With("component", "ipc"))
	if err := srv.Start(); err != nil {
		return nil, nil, err
	}
	return srv.Tasks(), srv.Stop, nil
}

func runPreview(args []string) int {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var sf sessionFlags
	sf.register(fs)
	display := fs.String("display", "", "X display to connect to (default: $DISPLAY)")
	fit := fs.Bool("fit", false, "Size the display to the primary monitor")
	control := fs.Bool("control", false, "Serve a control socket for 'cegui ctl'")
	instance := fs.String("instance", "", "Control socket instance name (default: preview)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cegui preview [--layout FILE] [--size WxH] [--display NAME] [--fit] [--control]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open an X11 window showing the layout. The pointer and keyboard drive")
		fmt.Fprintln(os.Stderr, "the GUI; arrows and Tab move focus.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	s, logger, err := sf.open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer s.Close()

	conn, err := x11.NewConnection(*display)
	if err != nil {
		log.Fatalf("Failed to connect to X server: %v", err)
	}
	defer conn.Close()

	cfg := s.Config()
	if *fit {
		screen, err := conn.ScreenSize()
		if err != nil {
			log.Fatalf("Failed to query monitors: %v", err)
		}
		scale := cfg.Preview.Scale
		if scale <= 0 {
			scale = 1
		}
		sz := geom.Sz(screen.Width/scale, screen.Height/scale)
		if err := s.Resize(sz); err != nil {
			log.Fatalf("Failed to fit display: %v", err)
		}
		logger.Info("display fitted to screen", "screen", screen.String(), "size", sz.String())
	}

	tasks, stopControl, err := startControl(*control, *instance, s, logger)
	if err != nil {
		log.Fatalf("Failed to start control socket: %v", err)
	}
	defer stopControl()

	p, err := x11.NewPreview(conn, s, x11.PreviewOptions{
		Title:  "cegui preview",
		FPS:    cfg.Preview.FPS,
		Logger: logger.With("component", "x11"),
		Scale:  cfg.Preview.Scale,
		Tasks:  tasks,
	})
	if err != nil {
		log.Fatalf("Failed to open preview window: %v", err)
	}
	defer p.Close()

	ctx, cancel := signalContext()
	defer cancel()
	if err := p.Run(ctx, s.Step); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var sf sessionFlags
	sf.register(fs)
	dump := fs.Bool("dump", false, "Print one snapshot sized to the terminal and exit")
	control := fs.Bool("control", false, "Serve a control socket for 'cegui ctl'")
	instance := fs.String("instance", "", "Control socket instance name (default: preview)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cegui tui [--layout FILE] [--size WxH] [--dump] [--control]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Preview the layout in the terminal as ASCII boxes.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  ↑/↓/←/→   Move focus")
		fmt.Fprintln(os.Stderr, "  Tab       Next window (Shift+Tab previous)")
		fmt.Fprintln(os.Stderr, "  Enter     Click the focused or selected window")
		fmt.Fprintln(os.Stderr, "  J/K       Move the window list selection")
		fmt.Fprintln(os.Stderr, "  q         Quit")
		fmt.Fprintln(os.Stderr, "  Ctrl+C    Quit")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	s, logger, err := sf.open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer s.Close()

	if *dump {
		cols, rows := tui.TerminalSize()
		if _, err := s.Step(0); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := tui.Dump(stdout, s, cols, rows); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	tasks, stopControl, err := startControl(*control, *instance, s, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer stopControl()

	ctx, cancel := signalContext()
	defer cancel()
	if err := tui.Run(ctx, s, tui.Options{FPS: s.Config().Preview.FPS, Tasks: tasks}); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
