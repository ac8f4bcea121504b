package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// Client talks to the control socket of a running preview
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client for socketPath
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    DefaultTimeout + time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to preview: %w (is a preview running with --control?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	respData, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("preview error: %s", resp.Error)
	}
	return &resp, nil
}

// call sends command with payload and decodes the response data into out
func (c *Client) call(command CommandType, payload, out any) error {
	req := &Request{Command: command}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", command, err)
		}
		req.Payload = data
	}
	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", command, err)
	}
	return nil
}

// GetStatus retrieves the preview status
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListWindows retrieves the window tree
func (c *Client) ListWindows() (*WindowsData, error) {
	var windows WindowsData
	if err := c.call(CommandListWindows, nil, &windows); err != nil {
		return nil, err
	}
	return &windows, nil
}

// Click clicks the window at path
func (c *Client) Click(path string) (*ResultData, error) {
	var res ResultData
	if err := c.call(CommandClick, PathPayload{Path: path}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Navigate sends a semantic navigation value such as GoToNext
func (c *Client) Navigate(direction string) (*ResultData, error) {
	var res ResultData
	if err := c.call(CommandNavigate, NavigatePayload{Direction: direction}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SetProperty sets a window property and returns the value read back
func (c *Client) SetProperty(path, name, value string) (*ResultData, error) {
	var res ResultData
	if err := c.call(CommandSetProperty, SetPropertyPayload{Path: path, Name: name, Value: value}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// LoadLayout replaces the preview's layout; an empty file reloads the default
func (c *Client) LoadLayout(file string) (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandLoadLayout, FilePayload{File: file}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Screenshot writes the last presented frame to file as PNG
func (c *Client) Screenshot(file string) error {
	return c.call(CommandScreenshot, FilePayload{File: file}, nil)
}
