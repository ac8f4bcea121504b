package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/cegui/internal/navigator"
	"github.com/1broseidon/cegui/internal/platform"
)

// DefaultTimeout bounds how long a request waits for the host loop
const DefaultTimeout = 5 * time.Second

// Server handles IPC requests from clients. Requests touching the session
// are handed to the host loop through Tasks, so the session is only used
// on the goroutine that renders it.
type Server struct {
	socketPath string
	listener   net.Listener
	session    *platform.Session
	tasks      chan func()
	timeout    time.Duration
	log        *slog.Logger
	startTime  time.Time

	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server for s listening on socketPath
func NewServer(socketPath string, s *platform.Session, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		socketPath: socketPath,
		session:    s,
		tasks:      make(chan func()),
		timeout:    DefaultTimeout,
		log:        logger,
		startTime:  time.Now(),
	}
}

// Tasks delivers the work of pending requests. The host runs each task on
// its own loop between frames.
func (s *Server) Tasks() <-chan func() { return s.tasks }

// SocketPath returns the path the server listens on
func (s *Server) SocketPath() string { return s.socketPath }

// Start begins listening for IPC connections
func (s *Server) Start() error {
	// Remove a stale socket left by a previous run
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.log.Info("IPC server listening", "socket", s.socketPath)
	go s.acceptLoop()
	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			done := s.shuttingDown
			s.shutdownMu.Unlock()
			if done {
				return
			}
			s.log.Warn("IPC accept error", "error", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	data, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.log.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.send(conn, NewErrorResponse(fmt.Sprintf("Invalid request: %v", err)))
		return
	}
	s.log.Debug("IPC request", "command", req.Command)
	s.send(conn, s.handleCommand(req))
}

func (s *Server) send(conn net.Conn, resp *Response) {
	data, err := resp.Marshal()
	if err != nil {
		s.log.Warn("failed to marshal response", "error", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		s.log.Warn("failed to send response", "error", err)
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.exec(s.handleGetStatus)
	case CommandListWindows:
		return s.exec(s.handleListWindows)
	case CommandClick:
		var p PathPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return NewErrorResponse(err.Error())
		}
		return s.exec(func() *Response { return s.handleClick(p) })
	case CommandNavigate:
		var p NavigatePayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return NewErrorResponse(err.Error())
		}
		v, err := navigator.ParseSemanticValue(p.Direction)
		if err != nil {
			return NewErrorResponse(err.Error())
		}
		return s.exec(func() *Response { return s.handleNavigate(v) })
	case CommandSetProperty:
		var p SetPropertyPayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return NewErrorResponse(err.Error())
		}
		return s.exec(func() *Response { return s.handleSetProperty(p) })
	case CommandLoadLayout:
		var p FilePayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return NewErrorResponse(err.Error())
		}
		return s.exec(func() *Response { return s.handleLoadLayout(p) })
	case CommandScreenshot:
		var p FilePayload
		if err := decodePayload(req.Payload, &p); err != nil {
			return NewErrorResponse(err.Error())
		}
		if p.File == "" {
			return NewErrorResponse("screenshot requires a file")
		}
		return s.exec(func() *Response { return s.handleScreenshot(p) })
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func decodePayload(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return fmt.Errorf("missing payload")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

// exec runs fn on the host loop and waits for its response
func (s *Server) exec(fn func() *Response) *Response {
	done := make(chan *Response, 1)
	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case s.tasks <- func() { done <- fn() }:
	case <-timer.C:
		return NewErrorResponse("preview is not processing requests")
	}
	select {
	case resp := <-done:
		return resp
	case <-timer.C:
		return NewErrorResponse("timed out waiting for the preview")
	}
}

func okResponse(data any) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) focusedPath() string {
	if f := s.session.Runtime.Focused(); f != nil {
		return f.Path()
	}
	return ""
}

func (s *Server) handleGetStatus() *Response {
	rt := s.session.Runtime
	status := StatusData{
		Display:       rt.DisplaySize().String(),
		Focused:       s.focusedPath(),
		WindowCount:   rt.WindowCount(),
		Animations:    len(s.session.Animations.Instances()),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	}
	if root := rt.Root(); root != nil {
		status.Root = root.Name()
	}
	return okResponse(status)
}

func (s *Server) handleListWindows() *Response {
	data := WindowsData{Windows: []WindowData{}}
	for _, w := range platform.Snapshot(s.session.Runtime) {
		if w.Auto {
			continue
		}
		data.Windows = append(data.Windows, WindowData{
			Path:    w.Path,
			Type:    w.Type,
			Depth:   w.Depth,
			Rect:    w.Clip.String(),
			Alpha:   w.Alpha,
			Visible: w.Visible,
			Focused: w.Focused,
		})
	}
	return okResponse(data)
}

func (s *Server) handleClick(p PathPayload) *Response {
	handled, err := s.session.Click(p.Path)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return okResponse(ResultData{Handled: handled, Focused: s.focusedPath()})
}

func (s *Server) handleNavigate(v navigator.SemanticValue) *Response {
	handled := s.session.Navigate(v)
	return okResponse(ResultData{Handled: handled, Focused: s.focusedPath()})
}

func (s *Server) handleSetProperty(p SetPropertyPayload) *Response {
	w, err := s.session.Runtime.Window(p.Path)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	if err := w.SetProperty(p.Name, p.Value); err != nil {
		return NewErrorResponse(err.Error())
	}
	v, err := w.Property(p.Name)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return okResponse(ResultData{Handled: true, Value: v})
}

func (s *Server) handleLoadLayout(p FilePayload) *Response {
	if err := s.session.LoadLayout(p.File); err != nil {
		return NewErrorResponse(err.Error())
	}
	return s.handleGetStatus()
}

func (s *Server) handleScreenshot(p FilePayload) *Response {
	f, err := os.Create(p.File)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	defer f.Close()
	if err := png.Encode(f, s.session.Renderer.Frame()); err != nil {
		return NewErrorResponse(fmt.Sprintf("encoding frame: %v", err))
	}
	return okResponse(FilePayload{File: p.File})
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
