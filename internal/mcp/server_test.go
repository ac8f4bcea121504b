package mcp

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/cegui/internal/config"
	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/guierr"
	"github.com/1broseidon/cegui/internal/platform"
	"github.com/1broseidon/cegui/internal/widgets"
)

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	s, err := platform.NewSession(platform.SessionOptions{Config: cfg})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(s.Close)
	if err := s.LoadLayout(""); err != nil {
		t.Fatalf("LoadLayout: %v", err)
	}
	return NewServer(s, nil)
}

func TestListWindows(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()

	_, out, err := s.handleListWindows(ctx, nil, ListWindowsInput{})
	if err != nil {
		t.Fatalf("list_windows: %v", err)
	}
	if out.Display != "800x600" {
		t.Errorf("display = %q, want 800x600", out.Display)
	}
	var paths []string
	for _, w := range out.Windows {
		if w.Auto {
			t.Errorf("auto window %s listed without include_auto", w.Path)
		}
		paths = append(paths, w.Path)
	}
	want := []string{"root", "root/panel", "root/panel/title", "root/panel/ok", "root/panel/cancel", "root/panel/swatch"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}

	_, all, err := s.handleListWindows(ctx, nil, ListWindowsInput{IncludeAuto: true})
	if err != nil {
		t.Fatalf("list_windows include_auto: %v", err)
	}
	if len(all.Windows) < len(out.Windows) {
		t.Errorf("include_auto listed %d windows, fewer than %d", len(all.Windows), len(out.Windows))
	}
}

func TestGetWindowAndSetProperty(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()

	_, out, err := s.handleGetWindow(ctx, nil, GetWindowInput{Path: "root/panel/ok"})
	if err != nil {
		t.Fatalf("get_window: %v", err)
	}
	if out.Window.Text != "OK" {
		t.Errorf("text = %q, want OK", out.Window.Text)
	}
	if len(out.Children) != 0 {
		t.Errorf("ok children = %v, want none", out.Children)
	}
	if out.Properties["Text"] != "OK" {
		t.Errorf("Text property = %q, want OK", out.Properties["Text"])
	}

	_, set, err := s.handleSetProperty(ctx, nil, SetPropertyInput{Path: "root/panel/ok", Name: "Text", Value: "Apply"})
	if err != nil {
		t.Fatalf("set_property: %v", err)
	}
	if set.Value != "Apply" {
		t.Errorf("value = %q, want Apply", set.Value)
	}

	_, _, err = s.handleSetProperty(ctx, nil, SetPropertyInput{Path: "root/panel/ok", Name: "Visible", Value: "maybe"})
	if !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Errorf("bad value error = %v, want ErrInvalidRequest", err)
	}
	_, _, err = s.handleGetWindow(ctx, nil, GetWindowInput{Path: "root/nope"})
	if !errors.Is(err, guierr.ErrUnknownObject) {
		t.Errorf("missing window error = %v, want ErrUnknownObject", err)
	}
}

func TestEvalDimension(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()

	tests := []struct {
		expr string
		typ  string
		want float32
	}{
		{"width / 2", "", 48},
		{"height - {0,8}", "Height", 20},
		{"{1,-16}", "height", 12},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, out, err := s.handleEvalDimension(ctx, nil, EvalDimensionInput{Path: "root/panel/ok", Expression: tt.expr, Type: tt.typ})
			if err != nil {
				t.Fatalf("eval_dimension: %v", err)
			}
			if out.Value != tt.want {
				t.Errorf("value = %v, want %v", out.Value, tt.want)
			}
		})
	}

	_, _, err := s.handleEvalDimension(ctx, nil, EvalDimensionInput{Path: "root/panel/ok", Expression: "width", Type: "Depth"})
	if !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Errorf("bad type error = %v, want ErrInvalidRequest", err)
	}
}

func TestClickAndNavigate(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Navigation.Strategy = "linear"
	s := newTestServer(t, cfg)
	ctx := context.Background()

	ok, err := s.session.Runtime.Window("root/panel/ok")
	if err != nil {
		t.Fatal(err)
	}
	clicks := 0
	ok.Events().Subscribe(widgets.EventClicked, func(event.Args) bool {
		clicks++
		return true
	})

	_, click, err := s.handleInjectClick(ctx, nil, InjectClickInput{Path: "root/panel/ok"})
	if err != nil {
		t.Fatalf("inject_click: %v", err)
	}
	if !click.Handled || clicks != 1 {
		t.Errorf("handled = %v clicks = %d, want true and 1", click.Handled, clicks)
	}

	_, nav, err := s.handleNavigate(ctx, nil, NavigateInput{Direction: "GoToNext"})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if !nav.Handled || nav.Focused != "root/panel/ok" {
		t.Errorf("navigate = %+v, want focus on root/panel/ok", nav)
	}
	if _, _, err := s.handleNavigate(ctx, nil, NavigateInput{Direction: "Confirm"}); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if clicks != 2 {
		t.Errorf("clicks after confirm = %d, want 2", clicks)
	}
	if _, _, err := s.handleNavigate(ctx, nil, NavigateInput{Direction: "Sideways"}); err == nil {
		t.Error("unknown direction accepted")
	}
}

func TestDisplaySizeStepAndRender(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()

	_, size, err := s.handleSetDisplaySize(ctx, nil, SetDisplaySizeInput{Width: 400, Height: 300})
	if err != nil {
		t.Fatalf("set_display_size: %v", err)
	}
	if size.Display != "400x300" {
		t.Errorf("display = %q, want 400x300", size.Display)
	}
	if _, _, err := s.handleSetDisplaySize(ctx, nil, SetDisplaySizeInput{Width: 0, Height: 300}); !errors.Is(err, guierr.ErrInvalidRequest) {
		t.Errorf("empty size error = %v, want ErrInvalidRequest", err)
	}

	_, step, err := s.handleStep(ctx, nil, StepInput{Seconds: 0.5})
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if step.Width != 400 || step.Height != 300 || step.DrawCalls == 0 {
		t.Errorf("step = %+v", step)
	}
	if _, _, err := s.handleStep(ctx, nil, StepInput{Seconds: -1}); err == nil {
		t.Error("negative step accepted")
	}

	res, frame, err := s.handleRenderFrame(ctx, nil, RenderFrameInput{})
	if err != nil {
		t.Fatalf("render_frame: %v", err)
	}
	if res == nil || len(res.Content) != 1 {
		t.Fatalf("render_frame returned no image content")
	}
	img, isImage := res.Content[0].(*mcpsdk.ImageContent)
	if !isImage || img.MIMEType != "image/png" || len(img.Data) == 0 {
		t.Errorf("content = %#v, want a PNG image", res.Content[0])
	}
	if frame.Width != 400 {
		t.Errorf("frame width = %d, want 400", frame.Width)
	}

	file := filepath.Join(t.TempDir(), "frame.png")
	res, frame, err = s.handleRenderFrame(ctx, nil, RenderFrameInput{File: file})
	if err != nil {
		t.Fatalf("render_frame to file: %v", err)
	}
	if res != nil || frame.File != file {
		t.Errorf("render_frame to file = %v, %+v", res, frame)
	}
	f, err := os.Open(file)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decoding written frame: %v", err)
	}
	if cfg.Width != 400 || cfg.Height != 300 {
		t.Errorf("png size = %dx%d, want 400x300", cfg.Width, cfg.Height)
	}
}

func TestLoadLayoutTool(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()
	before := s.session.Runtime.WindowCount()

	_, out, err := s.handleLoadLayout(ctx, nil, LoadLayoutInput{})
	if err != nil {
		t.Fatalf("load_layout: %v", err)
	}
	if out.Root != "root" || out.Windows != before {
		t.Errorf("load_layout = %+v, want root with %d windows", out, before)
	}
	if _, _, err := s.handleLoadLayout(ctx, nil, LoadLayoutInput{File: "missing.layout.yaml"}); err == nil {
		t.Error("missing layout accepted")
	}
}

func TestToolsListedOverTransport(t *testing.T) {
	s := newTestServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clientT, serverT := mcpsdk.NewInMemoryTransports()
	ss, err := s.Connect(ctx, serverT)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	defer ss.Close()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test", Version: "0"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer cs.Close()

	tools, err := cs.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	names := map[string]bool{}
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"list_windows", "get_window", "set_property", "eval_dimension", "inject_click", "navigate", "set_display_size", "step", "render_frame", "load_layout"} {
		if !names[want] {
			t.Errorf("tool %s not registered", want)
		}
	}

	res, err := cs.CallTool(ctx, &mcpsdk.CallToolParams{Name: "set_display_size", Arguments: map[string]any{"width": 640, "height": 480}})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if res.IsError {
		t.Fatalf("set_display_size failed: %+v", res.Content)
	}
	if got := s.session.Runtime.DisplaySize().String(); got != "640x480" {
		t.Errorf("display = %s, want 640x480", got)
	}
}
