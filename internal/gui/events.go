package gui

import (
	"github.com/1broseidon/cegui/internal/event"
	"github.com/1broseidon/cegui/internal/geom"
)

// Window events
const (
	EventAreaChanged        event.Name = "AreaChanged"
	EventMoved              event.Name = "Moved"
	EventSized              event.Name = "Sized"
	EventParentSized        event.Name = "ParentSized"
	EventChildAdded         event.Name = "ChildAdded"
	EventChildRemoved       event.Name = "ChildRemoved"
	EventAlphaChanged       event.Name = "AlphaChanged"
	EventShown              event.Name = "Shown"
	EventHidden             event.Name = "Hidden"
	EventEnabled            event.Name = "Enabled"
	EventDisabled           event.Name = "Disabled"
	EventTextChanged        event.Name = "TextChanged"
	EventFontChanged        event.Name = "FontChanged"
	EventNameChanged        event.Name = "NameChanged"
	EventPropertyChanged    event.Name = "PropertyChanged"
	EventMarginChanged      event.Name = "MarginChanged"
	EventZOrderChanged      event.Name = "ZOrderChanged"
	EventActivated          event.Name = "Activated"
	EventDeactivated        event.Name = "Deactivated"
	EventFocused            event.Name = "Focused"
	EventUnfocused          event.Name = "Unfocused"
	EventLookNFeelAssigned  event.Name = "LookNFeelAssigned"
	EventLookNFeelRemoved   event.Name = "LookNFeelRemoved"
	EventDestructionStarted event.Name = "DestructionStarted"
	EventDestroyed          event.Name = "Destroyed"
	EventRenderingStarted   event.Name = "RenderingStarted"
	EventRenderingEnded     event.Name = "RenderingEnded"
	EventInputCaptureGained event.Name = "InputCaptureGained"
	EventInputCaptureLost   event.Name = "InputCaptureLost"
	EventUpdated            event.Name = "Updated"

	EventMouseEntersArea  event.Name = "MouseEntersArea"
	EventMouseLeavesArea  event.Name = "MouseLeavesArea"
	EventMouseMove        event.Name = "MouseMove"
	EventMouseWheel       event.Name = "MouseWheel"
	EventMouseButtonDown  event.Name = "MouseButtonDown"
	EventMouseButtonUp    event.Name = "MouseButtonUp"
	EventMouseClick       event.Name = "MouseClick"
	EventMouseDoubleClick event.Name = "MouseDoubleClick"
	EventKeyDown          event.Name = "KeyDown"
	EventKeyUp            event.Name = "KeyUp"
	EventCharacter        event.Name = "Character"
)

// Runtime events
const (
	EventDisplaySizeChanged event.Name = "DisplaySizeChanged"
	EventTimePulse          event.Name = "TimePulse"
	EventRootChanged        event.Name = "RootChanged"
	EventRenderFailed       event.Name = "RenderFailed"
)

// WindowArgs accompanies events concerning a single window
type WindowArgs struct {
	event.Base
	Window Handle
}

// ChildArgs accompanies ChildAdded and ChildRemoved
type ChildArgs struct {
	event.Base
	Window Handle
	Child  Handle
}

// ActivationArgs accompanies Activated and Deactivated. Other is the window
// losing or gaining activation on the other side of the change.
type ActivationArgs struct {
	event.Base
	Window Handle
	Other  Handle
}

// PropertyArgs accompanies PropertyChanged
type PropertyArgs struct {
	event.Base
	Window   Handle
	Property string
}

// MouseArgs accompanies mouse events
type MouseArgs struct {
	event.Base
	Window     Handle
	Position   geom.Vec2
	Move       geom.Vec2
	Button     MouseButton
	Wheel      float32
	ClickCount int
}

// KeyArgs accompanies key and character events
type KeyArgs struct {
	event.Base
	Window Handle
	Key    Key
	Char   rune
}

// DisplayArgs accompanies DisplaySizeChanged
type DisplayArgs struct {
	event.Base
	Size geom.Size
}

// TimeArgs accompanies TimePulse and Updated
type TimeArgs struct {
	event.Base
	Elapsed float32
}

// RenderFailedArgs reports a window whose drawing failed during a frame
type RenderFailedArgs struct {
	event.Base
	Window Handle
	Err    error
}
