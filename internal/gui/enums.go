package gui

import (
	"strings"

	"github.com/1broseidon/cegui/internal/guierr"
)

// HAlign positions a window horizontally within its parent's content area
type HAlign int

const (
	HAlignLeft HAlign = iota
	HAlignCentre
	HAlignRight
)

// String returns the string representation of the alignment
func (a HAlign) String() string {
	switch a {
	case HAlignCentre:
		return "Centre"
	case HAlignRight:
		return "Right"
	default:
		return "Left"
	}
}

// ParseHAlign parses Left, Centre or Right (case-insensitive)
func ParseHAlign(s string) (HAlign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return HAlignLeft, nil
	case "centre", "center":
		return HAlignCentre, nil
	case "right":
		return HAlignRight, nil
	}
	return 0, guierr.InvalidRequest("invalid horizontal alignment %q", s)
}

// VAlign positions a window vertically within its parent's content area
type VAlign int

const (
	VAlignTop VAlign = iota
	VAlignCentre
	VAlignBottom
)

// String returns the string representation of the alignment
func (a VAlign) String() string {
	switch a {
	case VAlignCentre:
		return "Centre"
	case VAlignBottom:
		return "Bottom"
	default:
		return "Top"
	}
}

// ParseVAlign parses Top, Centre or Bottom (case-insensitive)
func ParseVAlign(s string) (VAlign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return VAlignTop, nil
	case "centre", "center":
		return VAlignCentre, nil
	case "bottom":
		return VAlignBottom, nil
	}
	return 0, guierr.InvalidRequest("invalid vertical alignment %q", s)
}

// AspectMode controls how the aspect ratio constrains a window's size
type AspectMode int

const (
	AspectIgnore AspectMode = iota
	// AspectShrink reduces one side to satisfy the ratio
	AspectShrink
	// AspectExpand grows one side to satisfy the ratio
	AspectExpand
	// AspectAdjustWidth derives the width from the height
	AspectAdjustWidth
	// AspectAdjustHeight derives the height from the width
	AspectAdjustHeight
)

var aspectNames = []string{"Ignore", "Shrink", "Expand", "AdjustWidth", "AdjustHeight"}

// String returns the string representation of the aspect mode
func (m AspectMode) String() string {
	if int(m) < len(aspectNames) {
		return aspectNames[m]
	}
	return "unknown"
}

// ParseAspectMode parses an aspect mode name (case-insensitive)
func ParseAspectMode(s string) (AspectMode, error) {
	for i, n := range aspectNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return AspectMode(i), nil
		}
	}
	return 0, guierr.InvalidRequest("invalid aspect mode %q", s)
}

// MouseButton identifies a pointer button
type MouseButton int

const (
	LeftButton MouseButton = iota
	RightButton
	MiddleButton
	X1Button
	X2Button
	mouseButtonCount
)

// String returns the string representation of the button
func (b MouseButton) String() string {
	switch b {
	case LeftButton:
		return "left"
	case RightButton:
		return "right"
	case MiddleButton:
		return "middle"
	case X1Button:
		return "x1"
	case X2Button:
		return "x2"
	default:
		return "unknown"
	}
}

// ParseMouseButton parses left, right, middle, x1 or x2
func ParseMouseButton(s string) (MouseButton, error) {
	for b := LeftButton; b < mouseButtonCount; b++ {
		if strings.EqualFold(b.String(), strings.TrimSpace(s)) {
			return b, nil
		}
	}
	return 0, guierr.InvalidRequest("invalid mouse button %q", s)
}

// Key is a keyboard key the host injects
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyReturn
	KeyTab
	KeyBackspace
	KeySpace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyShift
	KeyControl
	KeyAlt
)

var keyNames = map[Key]string{
	KeyUnknown:    "Unknown",
	KeyEscape:     "Escape",
	KeyReturn:     "Return",
	KeyTab:        "Tab",
	KeyBackspace:  "Backspace",
	KeySpace:      "Space",
	KeyDelete:     "Delete",
	KeyHome:       "Home",
	KeyEnd:        "End",
	KeyPageUp:     "PageUp",
	KeyPageDown:   "PageDown",
	KeyArrowUp:    "ArrowUp",
	KeyArrowDown:  "ArrowDown",
	KeyArrowLeft:  "ArrowLeft",
	KeyArrowRight: "ArrowRight",
	KeyShift:      "Shift",
	KeyControl:    "Control",
	KeyAlt:        "Alt",
}

// String returns the string representation of the key
func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "Unknown"
}

// ParseKey parses a key name (case-insensitive)
func ParseKey(s string) (Key, error) {
	for k, n := range keyNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return KeyUnknown, guierr.InvalidRequest("invalid key %q", s)
}
