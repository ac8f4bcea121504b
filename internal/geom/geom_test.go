package geom

import "testing"

func TestRectIntersection(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"overlap", R(0, 0, 100, 100), R(50, 50, 150, 150), R(50, 50, 100, 100)},
		{"contained", R(0, 0, 100, 100), R(10, 10, 20, 20), R(10, 10, 20, 20)},
		{"disjoint", R(0, 0, 10, 10), R(20, 20, 30, 30), Rect{}},
		{"touching edge", R(0, 0, 10, 10), R(10, 0, 20, 10), Rect{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersection(tt.b); got != tt.want {
				t.Errorf("Intersection() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectIsPointInside(t *testing.T) {
	r := R(10, 10, 20, 20)
	if !r.IsPointInside(V2(10, 10)) {
		t.Error("top-left corner should be inside")
	}
	if r.IsPointInside(V2(20, 15)) {
		t.Error("right edge is exclusive")
	}
	if (Rect{}).IsPointInside(V2(0, 0)) {
		t.Error("empty rect contains nothing")
	}
}

func TestSizeClamp(t *testing.T) {
	tests := []struct {
		name         string
		in, min, max Size
		want         Size
	}{
		{"within", Sz(50, 50), Sz(10, 10), Sz(100, 100), Sz(50, 50)},
		{"below min", Sz(5, 5), Sz(10, 10), Sz(100, 100), Sz(10, 10)},
		{"above max", Sz(500, 50), Sz(10, 10), Sz(100, 100), Sz(100, 50)},
		{"zero max unbounded", Sz(500, 500), Sz(0, 0), Sz(0, 0), Sz(500, 500)},
		{"max wins over min", Sz(5, 5), Sz(50, 50), Sz(20, 20), Sz(20, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(tt.min, tt.max); got != tt.want {
				t.Errorf("Clamp() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseColour(t *testing.T) {
	c, err := ParseColour("FF00FF00")
	if err != nil {
		t.Fatalf("ParseColour: %v", err)
	}
	if c != (Colour{R: 0, G: 1, B: 0, A: 1}) {
		t.Errorf("ParseColour = %+v", c)
	}
	if c.String() != "FF00FF00" {
		t.Errorf("String() = %q", c.String())
	}

	if _, err := ParseColour("nothex!!"); err == nil {
		t.Error("expected error for malformed colour")
	}
}

func TestParseColourRect(t *testing.T) {
	cr, err := ParseColourRect("tl:FFFF0000 tr:FF00FF00 bl:FF0000FF br:FFFFFFFF")
	if err != nil {
		t.Fatalf("ParseColourRect: %v", err)
	}
	if cr.TopRight != (Colour{0, 1, 0, 1}) {
		t.Errorf("TopRight = %+v", cr.TopRight)
	}
	if got := cr.At(0, 0); got != cr.TopLeft {
		t.Errorf("At(0,0) = %+v, want top-left", got)
	}
	if _, err := ParseColourRect("tl:FFFF0000"); err == nil {
		t.Error("expected error for incomplete colour rect")
	}
}
