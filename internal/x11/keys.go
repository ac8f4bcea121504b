package x11

import (
	"unicode/utf8"

	"github.com/1broseidon/cegui/internal/gui"
	"github.com/1broseidon/cegui/internal/navigator"
)

// X keysyms the preview understands
const (
	keysymBackspace  = 0xff08
	keysymTab        = 0xff09
	keysymReturn     = 0xff0d
	keysymEscape     = 0xff1b
	keysymHome       = 0xff50
	keysymLeft       = 0xff51
	keysymUp         = 0xff52
	keysymRight      = 0xff53
	keysymDown       = 0xff54
	keysymPageUp     = 0xff55
	keysymPageDown   = 0xff56
	keysymEnd        = 0xff57
	keysymKPEnter    = 0xff8d
	keysymISOLeftTab = 0xfe20
	keysymShiftL     = 0xffe1
	keysymShiftR     = 0xffe2
	keysymControlL   = 0xffe3
	keysymControlR   = 0xffe4
	keysymAltL       = 0xffe9
	keysymAltR       = 0xffea
	keysymDelete     = 0xffff
	keysymSpace      = 0x0020
)

const shiftMask = 1

var keysymKeys = map[uint32]gui.Key{
	keysymBackspace: gui.KeyBackspace,
	keysymTab:       gui.KeyTab,
	keysymReturn:    gui.KeyReturn,
	keysymKPEnter:   gui.KeyReturn,
	keysymEscape:    gui.KeyEscape,
	keysymHome:      gui.KeyHome,
	keysymEnd:       gui.KeyEnd,
	keysymPageUp:    gui.KeyPageUp,
	keysymPageDown:  gui.KeyPageDown,
	keysymLeft:      gui.KeyArrowLeft,
	keysymRight:     gui.KeyArrowRight,
	keysymUp:        gui.KeyArrowUp,
	keysymDown:      gui.KeyArrowDown,
	keysymShiftL:    gui.KeyShift,
	keysymShiftR:    gui.KeyShift,
	keysymControlL:  gui.KeyControl,
	keysymControlR:  gui.KeyControl,
	keysymAltL:      gui.KeyAlt,
	keysymAltR:      gui.KeyAlt,
	keysymDelete:    gui.KeyDelete,
	keysymSpace:     gui.KeySpace,
}

// keyFromKeysym maps a keysym to a runtime key
func keyFromKeysym(sym uint32) gui.Key {
	if k, ok := keysymKeys[sym]; ok {
		return k
	}
	return gui.KeyUnknown
}

// navigationFor maps the keys the preview steers focus with. Shift+Tab
// arrives as ISO_Left_Tab on most keymaps.
func navigationFor(sym uint32, state uint16) (navigator.SemanticValue, bool) {
	switch sym {
	case keysymUp:
		return navigator.GoUp, true
	case keysymDown:
		return navigator.GoDown, true
	case keysymLeft:
		return navigator.GoLeft, true
	case keysymRight:
		return navigator.GoRight, true
	case keysymISOLeftTab:
		return navigator.GoToPrevious, true
	case keysymTab:
		if state&shiftMask != 0 {
			return navigator.GoToPrevious, true
		}
		return navigator.GoToNext, true
	}
	return 0, false
}

// typedRune returns the character a key lookup string produces, if it is
// exactly one printable rune
func typedRune(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) || r < 0x20 || r == 0x7f {
		return 0, false
	}
	return r, true
}

// Pointer buttons 4 and 5 are the wheel.
func buttonFromDetail(detail byte) (gui.MouseButton, float32, bool) {
	switch detail {
	case 1:
		return gui.LeftButton, 0, true
	case 2:
		return gui.MiddleButton, 0, true
	case 3:
		return gui.RightButton, 0, true
	case 4:
		return 0, 1, true
	case 5:
		return 0, -1, true
	case 8:
		return gui.X1Button, 0, true
	case 9:
		return gui.X2Button, 0, true
	}
	return 0, 0, false
}
