package mcp

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	IncludeAuto bool `json:"include_auto,omitempty" jsonschema:"Include auto windows created by widgets (default: false)"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Display string       `json:"display"`
	Windows []WindowInfo `json:"windows"`
}

// WindowInfo describes one window of the tree.
type WindowInfo struct {
	Path     string  `json:"path"`
	Type     string  `json:"type"`
	Look     string  `json:"look,omitempty"`
	Text     string  `json:"text,omitempty"`
	Depth    int     `json:"depth"`
	Rect     string  `json:"rect"`
	Clip     string  `json:"clip"`
	Alpha    float32 `json:"alpha"`
	Visible  bool    `json:"visible"`
	Disabled bool    `json:"disabled"`
	Focused  bool    `json:"focused"`
	Auto     bool    `json:"auto,omitempty"`
}

// GetWindowInput is the input for the get_window tool.
type GetWindowInput struct {
	Path string `json:"path" jsonschema:"required,Window path from the root, e.g. root/panel/ok"`
}

// GetWindowOutput is the output for the get_window tool.
type GetWindowOutput struct {
	Window     WindowInfo        `json:"window"`
	Children   []string          `json:"children"`
	Properties map[string]string `json:"properties"`
}

// SetPropertyInput is the input for the set_property tool.
type SetPropertyInput struct {
	Path  string `json:"path" jsonschema:"required,Window path from the root"`
	Name  string `json:"name" jsonschema:"required,Property name, e.g. Text, Alpha, Position"`
	Value string `json:"value" jsonschema:"Property value in its string form"`
}

// SetPropertyOutput is the output for the set_property tool.
type SetPropertyOutput struct {
	Value string `json:"value"`
}

// EvalDimensionInput is the input for the eval_dimension tool.
type EvalDimensionInput struct {
	Path       string `json:"path" jsonschema:"required,Window path the expression is evaluated against"`
	Expression string `json:"expression" jsonschema:"required,Dimension expression, e.g. width - {0,4} or parent.width / 2"`
	Type       string `json:"type,omitempty" jsonschema:"Dimension type such as Width, Height, LeftEdge (default: Width)"`
}

// EvalDimensionOutput is the output for the eval_dimension tool.
type EvalDimensionOutput struct {
	Value float32 `json:"value"`
	Type  string  `json:"type"`
}

// InjectClickInput is the input for the inject_click tool.
type InjectClickInput struct {
	Path string `json:"path" jsonschema:"required,Window path to click at its centre"`
}

// InjectClickOutput is the output for the inject_click tool.
type InjectClickOutput struct {
	Handled bool `json:"handled"`
}

// NavigateInput is the input for the navigate tool.
type NavigateInput struct {
	Direction string `json:"direction" jsonschema:"required,One of GoUp, GoDown, GoLeft, GoRight, GoToNext, GoToPrevious, Confirm"`
}

// NavigateOutput is the output for the navigate tool.
type NavigateOutput struct {
	Handled bool   `json:"handled"`
	Focused string `json:"focused,omitempty"`
}

// SetDisplaySizeInput is the input for the set_display_size tool.
type SetDisplaySizeInput struct {
	Width  float32 `json:"width" jsonschema:"required,Display width in pixels"`
	Height float32 `json:"height" jsonschema:"required,Display height in pixels"`
}

// SetDisplaySizeOutput is the output for the set_display_size tool.
type SetDisplaySizeOutput struct {
	Display string `json:"display"`
}

// StepInput is the input for the step tool.
type StepInput struct {
	Seconds float32 `json:"seconds" jsonschema:"required,Time to advance animations and input timers by"`
}

// RenderFrameInput is the input for the render_frame tool.
type RenderFrameInput struct {
	File string `json:"file,omitempty" jsonschema:"Write the PNG to this file instead of returning it inline"`
}

// RenderFrameOutput is the output for the render_frame tool.
type RenderFrameOutput struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	DrawCalls int    `json:"draw_calls"`
	Triangles int    `json:"triangles"`
	File      string `json:"file,omitempty"`
}

// LoadLayoutInput is the input for the load_layout tool.
type LoadLayoutInput struct {
	File string `json:"file,omitempty" jsonschema:"Layout file in the default resource group (default: the scheme's first layout)"`
}

// LoadLayoutOutput is the output for the load_layout tool.
type LoadLayoutOutput struct {
	Root    string `json:"root"`
	Windows int    `json:"windows"`
}
