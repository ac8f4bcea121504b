package mcp

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/cegui/internal/falagard"
	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/navigator"
	"github.com/1broseidon/cegui/internal/platform"
)

func windowInfo(w platform.WindowInfo) WindowInfo {
	return WindowInfo{
		Path:     w.Path,
		Type:     w.Type,
		Look:     w.Look,
		Text:     w.Text,
		Depth:    w.Depth,
		Rect:     w.Rect.String(),
		Clip:     w.Clip.String(),
		Alpha:    w.Alpha,
		Visible:  w.Visible,
		Disabled: w.Disabled,
		Focused:  w.Focused,
		Auto:     w.Auto,
	}
}

// window resolves path and reports whether it has focus; s.mu must be held.
func (s *Server) window(path string) (*gui.Window, bool, error) {
	rt := s.session.Runtime
	w, err := rt.Window(path)
	if err != nil {
		return nil, false, err
	}
	f := rt.Focused()
	return w, f != nil && f.Handle() == w.Handle(), nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := ListWindowsOutput{
		Display: s.session.Runtime.DisplaySize().String(),
		Windows: []WindowInfo{},
	}
	for _, w := range platform.Snapshot(s.session.Runtime) {
		if w.Auto && !args.IncludeAuto {
			continue
		}
		out.Windows = append(out.Windows, windowInfo(w))
	}
	return nil, out, nil
}

func (s *Server) handleGetWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args GetWindowInput) (*mcpsdk.CallToolResult, GetWindowOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, focused, err := s.window(args.Path)
	if err != nil {
		return nil, GetWindowOutput{}, err
	}
	out := GetWindowOutput{
		Window:     windowInfo(platform.Describe(w, 0, focused)),
		Children:   []string{},
		Properties: platform.Properties(w),
	}
	for _, c := range w.Children() {
		out.Children = append(out.Children, c.Name())
	}
	return nil, out, nil
}

func (s *Server) handleSetProperty(_ context.Context, _ *mcpsdk.CallToolRequest, args SetPropertyInput) (*mcpsdk.CallToolResult, SetPropertyOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, _, err := s.window(args.Path)
	if err != nil {
		return nil, SetPropertyOutput{}, err
	}
	if err := w.SetProperty(args.Name, args.Value); err != nil {
		return nil, SetPropertyOutput{}, fmt.Errorf("setting %s on %s: %w", args.Name, args.Path, err)
	}
	v, err := w.Property(args.Name)
	if err != nil {
		return nil, SetPropertyOutput{}, err
	}
	s.log.Debug("property set", "path", args.Path, "name", args.Name, "value", v)
	return nil, SetPropertyOutput{Value: v}, nil
}

func (s *Server) handleEvalDimension(_ context.Context, _ *mcpsdk.CallToolRequest, args EvalDimensionInput) (*mcpsdk.CallToolResult, EvalDimensionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	typ := falagard.DimWidth
	if args.Type != "" {
		var err error
		if typ, err = falagard.ParseDimensionType(args.Type); err != nil {
			return nil, EvalDimensionOutput{}, err
		}
	}
	w, _, err := s.window(args.Path)
	if err != nil {
		return nil, EvalDimensionOutput{}, err
	}
	var look *falagard.WidgetLook
	if name := w.LookNFeel(); name != "" {
		if look, err = s.session.Looks.Look(name); err != nil {
			return nil, EvalDimensionOutput{}, err
		}
	}
	v, err := falagard.Eval(falagard.NewContext(w, look), args.Expression, typ)
	if err != nil {
		return nil, EvalDimensionOutput{}, err
	}
	return nil, EvalDimensionOutput{Value: v, Type: typ.String()}, nil
}

func (s *Server) handleInjectClick(_ context.Context, _ *mcpsdk.CallToolRequest, args InjectClickInput) (*mcpsdk.CallToolResult, InjectClickOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handled, err := s.session.Click(args.Path)
	if err != nil {
		return nil, InjectClickOutput{}, err
	}
	return nil, InjectClickOutput{Handled: handled}, nil
}

func (s *Server) handleNavigate(_ context.Context, _ *mcpsdk.CallToolRequest, args NavigateInput) (*mcpsdk.CallToolResult, NavigateOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := navigator.ParseSemanticValue(args.Direction)
	if err != nil {
		return nil, NavigateOutput{}, err
	}
	out := NavigateOutput{Handled: s.session.Navigate(v)}
	if f := s.session.Runtime.Focused(); f != nil {
		out.Focused = f.Path()
	}
	return nil, out, nil
}

func (s *Server) handleSetDisplaySize(_ context.Context, _ *mcpsdk.CallToolRequest, args SetDisplaySizeInput) (*mcpsdk.CallToolResult, SetDisplaySizeOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.Resize(geom.Sz(args.Width, args.Height)); err != nil {
		return nil, SetDisplaySizeOutput{}, err
	}
	return nil, SetDisplaySizeOutput{Display: s.session.Runtime.DisplaySize().String()}, nil
}

func (s *Server) handleStep(_ context.Context, _ *mcpsdk.CallToolRequest, args StepInput) (*mcpsdk.CallToolResult, RenderFrameOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if args.Seconds < 0 {
		return nil, RenderFrameOutput{}, fmt.Errorf("seconds must not be negative, got %g", args.Seconds)
	}
	img, err := s.session.Step(args.Seconds)
	if err != nil {
		return nil, RenderFrameOutput{}, err
	}
	st := s.session.Renderer.Stats()
	return nil, RenderFrameOutput{
		Width:     img.Rect.Dx(),
		Height:    img.Rect.Dy(),
		DrawCalls: st.DrawCalls,
		Triangles: st.Triangles,
	}, nil
}

func (s *Server) handleRenderFrame(_ context.Context, _ *mcpsdk.CallToolRequest, args RenderFrameInput) (*mcpsdk.CallToolResult, RenderFrameOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	img, err := s.session.Step(0)
	if err != nil {
		return nil, RenderFrameOutput{}, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, RenderFrameOutput{}, fmt.Errorf("encoding frame: %w", err)
	}
	st := s.session.Renderer.Stats()
	out := RenderFrameOutput{
		Width:     img.Rect.Dx(),
		Height:    img.Rect.Dy(),
		DrawCalls: st.DrawCalls,
		Triangles: st.Triangles,
	}

	if args.File != "" {
		if err := os.WriteFile(args.File, buf.Bytes(), 0o644); err != nil {
			return nil, RenderFrameOutput{}, fmt.Errorf("writing frame: %w", err)
		}
		out.File = args.File
		s.log.Info("frame written", "file", args.File, "bytes", buf.Len())
		return nil, out, nil
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.ImageContent{Data: buf.Bytes(), MIMEType: "image/png"},
		},
	}, out, nil
}

func (s *Server) handleLoadLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args LoadLayoutInput) (*mcpsdk.CallToolResult, LoadLayoutOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.LoadLayout(args.File); err != nil {
		return nil, LoadLayoutOutput{}, err
	}
	root := ""
	if r := s.session.Runtime.Root(); r != nil {
		root = r.Name()
	}
	return nil, LoadLayoutOutput{Root: root, Windows: s.session.Runtime.WindowCount()}, nil
}
