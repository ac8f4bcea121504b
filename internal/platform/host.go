// Package platform connects a runtime to whatever shows its frames: an X11
// window, a terminal, or nothing at all for offline renders.
package platform

import (
	"context"
	"image"

	"github.com/1broseidon/cegui/internal/geom"
)

// Frame advances the GUI by elapsed seconds and returns the rendered
// pixels.
type Frame func(elapsed float32) (*image.RGBA, error)

// Host abstracts the window system a session is displayed on.
type Host interface {
	// DisplaySize reports the pixel size frames should be rendered at.
	DisplaySize() (geom.Size, error)
	// Present shows a rendered frame.
	Present(img *image.RGBA) error
	// Run drives frame until ctx is done or the host closes.
	Run(ctx context.Context, frame Frame) error
}
