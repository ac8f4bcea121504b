package x11

import (
	"image"
	"image/color"
	"testing"

	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/navigator"
)

func TestNavigationFor(t *testing.T) {
	tests := []struct {
		name  string
		sym   uint32
		state uint16
		want  navigator.SemanticValue
		ok    bool
	}{
		{"up", keysymUp, 0, navigator.GoUp, true},
		{"left", keysymLeft, 0, navigator.GoLeft, true},
		{"tab", keysymTab, 0, navigator.GoToNext, true},
		{"shift tab", keysymTab, shiftMask, navigator.GoToPrevious, true},
		{"iso left tab", keysymISOLeftTab, shiftMask, navigator.GoToPrevious, true},
		{"return", keysymReturn, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := navigationFor(tt.sym, tt.state)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("navigationFor(%#x) = %v, %v; want %v, %v", tt.sym, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestKeyFromKeysym(t *testing.T) {
	if got := keyFromKeysym(keysymKPEnter); got != gui.KeyReturn {
		t.Fatalf("expected keypad enter to map to Return, got %v", got)
	}
	if got := keyFromKeysym('q'); got != gui.KeyUnknown {
		t.Fatalf("expected letters to be unknown keys, got %v", got)
	}
}

func TestTypedRune(t *testing.T) {
	if r, ok := typedRune("é"); !ok || r != 'é' {
		t.Fatalf("expected é, got %q %v", r, ok)
	}
	for _, s := range []string{"", "ab", "\t", "\x7f"} {
		if _, ok := typedRune(s); ok {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}

func TestButtonFromDetail(t *testing.T) {
	if b, wheel, ok := buttonFromDetail(3); !ok || b != gui.RightButton || wheel != 0 {
		t.Fatalf("button 3: got %v %v %v", b, wheel, ok)
	}
	if _, wheel, ok := buttonFromDetail(5); !ok || wheel != -1 {
		t.Fatalf("button 5 should scroll down, got %v %v", wheel, ok)
	}
	if _, _, ok := buttonFromDetail(7); ok {
		t.Fatalf("button 7 should be ignored")
	}
}

func TestToBGRX(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 40})
	img.Set(1, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	got := toBGRX(nil, img)
	want := []byte{30, 20, 10, 0xff, 3, 2, 1, 0xff}
	if string(got) != string(want) {
		t.Fatalf("toBGRX = %v, want %v", got, want)
	}
}

func TestToBGRXSubImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(2, 2, color.RGBA{R: 9, A: 255})
	sub := img.SubImage(image.Rect(2, 2, 4, 4)).(*image.RGBA)
	got := toBGRX(nil, sub)
	if len(got) != 16 || got[2] != 9 {
		t.Fatalf("unexpected sub-image conversion %v", got)
	}
}

func TestScaleFrame(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(1, 1, color.RGBA{G: 200, A: 255})
	dst := scaleFrame(nil, src, 4, 4)
	if dst.Rect.Dx() != 4 || dst.Rect.Dy() != 4 {
		t.Fatalf("unexpected size %v", dst.Rect)
	}
	if c := dst.RGBAAt(3, 3); c.G != 200 {
		t.Fatalf("expected the scaled corner to be green, got %v", c)
	}
	if again := scaleFrame(dst, src, 4, 4); again != dst {
		t.Fatalf("expected the buffer to be reused")
	}
}

func TestStripRows(t *testing.T) {
	if got := stripRows(800, 65535); got != (65535*4-putImageHeader)/3200 {
		t.Fatalf("unexpected strip rows %d", got)
	}
	if got := stripRows(1<<20, 16); got != 1 {
		t.Fatalf("expected at least one row, got %d", got)
	}
	if got := stripRows(0, 100); got != 0 {
		t.Fatalf("expected zero rows for zero width, got %d", got)
	}
}
