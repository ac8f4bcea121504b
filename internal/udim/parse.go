package udim

import (
	"strconv"
	"strings"

	"github.com/1broseidon/cegui/internal/guierr"
)

// scanner reads the brace-delimited property forms such as {0.5,10} or
// {{0,4},{1,-4}}.
type scanner struct {
	s   string
	pos int
}

func newScanner(s string) *scanner {
	return &scanner{s: strings.Join(strings.Fields(s), "")}
}

func (sc *scanner) expect(c byte) bool {
	if sc.pos < len(sc.s) && sc.s[sc.pos] == c {
		sc.pos++
		return true
	}
	return false
}

func (sc *scanner) number() (float32, bool) {
	start := sc.pos
	for sc.pos < len(sc.s) {
		c := sc.s[sc.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E' {
			sc.pos++
			continue
		}
		break
	}
	f, err := strconv.ParseFloat(sc.s[start:sc.pos], 32)
	if err != nil {
		return 0, false
	}
	return float32(f), true
}

func (sc *scanner) udim() (UDim, bool) {
	if !sc.expect('{') {
		return UDim{}, false
	}
	s, ok := sc.number()
	if !ok || !sc.expect(',') {
		return UDim{}, false
	}
	o, ok := sc.number()
	if !ok || !sc.expect('}') {
		return UDim{}, false
	}
	return UDim{Scale: s, Offset: o}, true
}

// list reads "{" udim ("," udim)* "}" expecting exactly n entries.
func (sc *scanner) list(n int) ([]UDim, bool) {
	if !sc.expect('{') {
		return nil, false
	}
	out := make([]UDim, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 && !sc.expect(',') {
			return nil, false
		}
		d, ok := sc.udim()
		if !ok {
			return nil, false
		}
		out = append(out, d)
	}
	return out, sc.expect('}')
}

func (sc *scanner) done() bool { return sc.pos == len(sc.s) }

// ParseUDim parses "{scale,offset}"
func ParseUDim(s string) (UDim, error) {
	sc := newScanner(s)
	d, ok := sc.udim()
	if !ok || !sc.done() {
		return UDim{}, guierr.InvalidRequest("malformed UDim %q", s)
	}
	return d, nil
}

// ParseUVector2 parses "{{s,o},{s,o}}"
func ParseUVector2(s string) (UVector2, error) {
	sc := newScanner(s)
	l, ok := sc.list(2)
	if !ok || !sc.done() {
		return UVector2{}, guierr.InvalidRequest("malformed UVector2 %q", s)
	}
	return UVector2{X: l[0], Y: l[1]}, nil
}

// ParseUSize parses "{{s,o},{s,o}}"
func ParseUSize(s string) (USize, error) {
	v, err := ParseUVector2(s)
	if err != nil {
		return USize{}, guierr.InvalidRequest("malformed USize %q", s)
	}
	return USize{Width: v.X, Height: v.Y}, nil
}

// ParseURect parses "{{s,o},{s,o},{s,o},{s,o}}" as left, top, right, bottom
func ParseURect(s string) (URect, error) {
	sc := newScanner(s)
	l, ok := sc.list(4)
	if !ok || !sc.done() {
		return URect{}, guierr.InvalidRequest("malformed URect %q", s)
	}
	return URect{Min: UVector2{l[0], l[1]}, Max: UVector2{l[2], l[3]}}, nil
}

// ParseUBox parses "{top:{s,o},left:{s,o},bottom:{s,o},right:{s,o}}"
func ParseUBox(s string) (UBox, error) {
	sc := newScanner(s)
	bad := guierr.InvalidRequest("malformed UBox %q", s)
	if !sc.expect('{') {
		return UBox{}, bad
	}
	var b UBox
	for i, key := range []string{"top:", "left:", "bottom:", "right:"} {
		if i > 0 && !sc.expect(',') {
			return UBox{}, bad
		}
		if !strings.HasPrefix(sc.s[sc.pos:], key) {
			return UBox{}, bad
		}
		sc.pos += len(key)
		d, ok := sc.udim()
		if !ok {
			return UBox{}, bad
		}
		switch i {
		case 0:
			b.Top = d
		case 1:
			b.Left = d
		case 2:
			b.Bottom = d
		case 3:
			b.Right = d
		}
	}
	if !sc.expect('}') || !sc.done() {
		return UBox{}, bad
	}
	return b, nil
}
