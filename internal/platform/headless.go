package platform

import (
	"context"
	"image"
	"time"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/guierr"
)

// Headless is a Host without a screen. It runs a fixed number of frames
// and keeps the last one.
type Headless struct {
	Size geom.Size
	// Frames is the number of frames Run renders; at least one.
	Frames int
	// Step is the simulated time between frames in seconds.
	Step float32
	// Interval paces Run in wall-clock time; zero runs flat out.
	Interval time.Duration

	last      *image.RGBA
	presented int
}

var _ Host = (*Headless)(nil)

func (h *Headless) DisplaySize() (geom.Size, error) {
	if h.Size.Width <= 0 || h.Size.Height <= 0 {
		return geom.Size{}, guierr.InvalidRequest("headless display size %s is empty", h.Size.String())
	}
	return h.Size, nil
}

// Present copies img; later renders into the same buffer do not alter it.
func (h *Headless) Present(img *image.RGBA) error {
	if img == nil {
		return guierr.InvalidRequest("cannot present a nil frame")
	}
	cp := image.NewRGBA(img.Rect)
	copy(cp.Pix, img.Pix)
	h.last = cp
	h.presented++
	return nil
}

func (h *Headless) Run(ctx context.Context, frame Frame) error {
	n := max(h.Frames, 1)
	var tick <-chan time.Time
	if h.Interval > 0 {
		t := time.NewTicker(h.Interval)
		defer t.Stop()
		tick = t.C
	}
	for i := range n {
		if tick != nil && i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		elapsed := h.Step
		if i == 0 {
			elapsed = 0
		}
		img, err := frame(elapsed)
		if err != nil {
			return err
		}
		if err := h.Present(img); err != nil {
			return err
		}
	}
	return nil
}

// Last returns the most recently presented frame, or nil
func (h *Headless) Last() *image.RGBA { return h.last }

// Presented returns how many frames were presented
func (h *Headless) Presented() int { return h.presented }
