package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/cegui/internal/falagard"
	"github.com/1broseidon/cegui/internal/platform"
)

func runRender(args []string) int {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var sf sessionFlags
	sf.register(fs)
	out := fs.String("out", "frame.png", "Output PNG file, or - for stdout")
	at := fs.Float64("time", 1, "Seconds of animation to play before the frame is captured")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cegui render [--scheme FILE] [--layout FILE] [--size WxH] [--time SECONDS] [--out FILE]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Render a layout with the software renderer and write the frame as PNG.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *at < 0 {
		fmt.Fprintln(os.Stderr, "--time must not be negative")
		return 2
	}

	s, _, err := sf.open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer s.Close()

	h := &platform.Headless{Size: s.Runtime.DisplaySize(), Frames: 1}
	if *at > 0 {
		h.Frames, h.Step = 2, float32(*at)
	}
	if err := h.Run(context.Background(), s.Step); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var w io.Writer = stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)
	if err := png.Encode(bw, h.Last()); err != nil {
		fmt.Fprintf(os.Stderr, "encoding frame: %v\n", err)
		return 1
	}
	if err := bw.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *out != "-" {
		st := s.Renderer.Stats()
		total := s.Renderer.TotalStats()
		fmt.Fprintf(stdout, "wrote %s (%s)\n", *out, s.Runtime.DisplaySize().String())
		fmt.Fprintf(stdout, "last frame: %d draw calls, %d triangles, %d buffers\n", st.DrawCalls, st.Triangles, st.Buffers)
		fmt.Fprintf(stdout, "total: %d frames, %d draw calls\n", total.Frames, total.DrawCalls)
	}
	return 0
}

func runInspect(args []string) int {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var sf sessionFlags
	sf.register(fs)
	format := fs.String("format", "text", "Output format: text, json or yaml")
	all := fs.Bool("all", false, "Include auto windows")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cegui inspect [--layout FILE] [--size WxH] [--format text|json|yaml] [--all]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print the window tree with pixel rects, clip rects and effective alpha.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	s, _, err := sf.open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer s.Close()

	var windows []platform.WindowInfo
	for _, w := range platform.Snapshot(s.Runtime) {
		if w.Auto && !*all {
			continue
		}
		windows = append(windows, w)
	}

	switch *format {
	case "text":
		printTree(stdout, windows)
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(windows); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	case "yaml":
		data, err := yaml.Marshal(windows)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Fprint(stdout, string(data))
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q\n", *format)
		return 2
	}
	return 0
}

func printTree(w io.Writer, windows []platform.WindowInfo) {
	fmt.Fprintf(w, "%-32s %-24s %-28s %-28s %s\n", "WINDOW", "TYPE", "RECT", "CLIP", "ALPHA")
	for _, info := range windows {
		name := info.Path[strings.LastIndex(info.Path, "/")+1:]
		label := strings.Repeat("  ", info.Depth) + name
		var flags []string
		if !info.Visible {
			flags = append(flags, "hidden")
		}
		if info.Disabled {
			flags = append(flags, "disabled")
		}
		if info.Focused {
			flags = append(flags, "focused")
		}
		if info.Auto {
			flags = append(flags, "auto")
		}
		line := fmt.Sprintf("%-32s %-24s %-28s %-28s %.2f", label, info.Type, info.Rect.String(), info.Clip.String(), info.Alpha)
		if len(flags) > 0 {
			line += "  [" + strings.Join(flags, ",") + "]"
		}
		fmt.Fprintln(w, line)
	}
}

func runEval(args []string) int {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var sf sessionFlags
	sf.register(fs)
	expr := fs.String("expr", "", "Dimension expression, e.g. \"width - {0,4}\"")
	typ := fs.String("type", "width", "Dimension type (LeftEdge, TopEdge, Width, Height, ...)")
	window := fs.String("window", "", "Window path the expression is evaluated against (default: the root)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cegui eval --expr EXPR [--type TYPE] [--window PATH] [--layout FILE]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Evaluate a dimension expression against a window and its look.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if strings.TrimSpace(*expr) == "" {
		fmt.Fprintln(os.Stderr, "eval requires --expr")
		return 2
	}
	dt, err := falagard.ParseDimensionType(*typ)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	s, _, err := sf.open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer s.Close()

	w := s.Runtime.Root()
	if *window != "" {
		if w, err = s.Runtime.Window(*window); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	var look *falagard.WidgetLook
	if name := w.LookNFeel(); name != "" {
		if look, err = s.Looks.Look(name); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	v, err := falagard.Eval(falagard.NewContext(w, look), *expr, dt)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "%g\n", v)
	return 0
}
