// Package ipc is the control socket of a running preview. Requests are
// newline-terminated JSON objects answered with one JSON response line.
package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandListWindows CommandType = "LIST_WINDOWS"
	CommandClick       CommandType = "CLICK"
	CommandNavigate    CommandType = "NAVIGATE"
	CommandSetProperty CommandType = "SET_PROPERTY"
	CommandLoadLayout  CommandType = "LOAD_LAYOUT"
	CommandScreenshot  CommandType = "SCREENSHOT"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Display       string `json:"display"`
	Root          string `json:"root"`
	Focused       string `json:"focused,omitempty"`
	WindowCount   int    `json:"window_count"`
	Animations    int    `json:"animations"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// WindowData describes one window of the tree
type WindowData struct {
	Path    string  `json:"path"`
	Type    string  `json:"type"`
	Depth   int     `json:"depth"`
	Rect    string  `json:"rect"`
	Alpha   float32 `json:"alpha"`
	Visible bool    `json:"visible"`
	Focused bool    `json:"focused,omitempty"`
}

// WindowsData represents the data returned by LIST_WINDOWS
type WindowsData struct {
	Windows []WindowData `json:"windows"`
}

// PathPayload names a window for CLICK
type PathPayload struct {
	Path string `json:"path"`
}

// NavigatePayload carries a semantic value name for NAVIGATE
type NavigatePayload struct {
	Direction string `json:"direction"`
}

// SetPropertyPayload represents the payload for SET_PROPERTY
type SetPropertyPayload struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FilePayload names a file for LOAD_LAYOUT and SCREENSHOT
type FilePayload struct {
	File string `json:"file"`
}

// ResultData is returned by commands that report whether input was handled
type ResultData struct {
	Handled bool   `json:"handled"`
	Focused string `json:"focused,omitempty"`
	Value   string `json:"value,omitempty"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data any) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
