package udim

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/guierr"
)

func TestResolveFormula(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		scale := rng.Float32()*4 - 2
		offset := rng.Float32()*400 - 200
		extent := rng.Float32() * 2000
		want := scale*extent + offset
		if got := (UDim{scale, offset}).Resolve(extent); math.Abs(float64(got-want)) > 1e-3 {
			t.Fatalf("Resolve(%g,%g,%g) = %g, want %g", scale, offset, extent, got, want)
		}
	}
}

func TestResolveUnderParentResize(t *testing.T) {
	relative := Rel(0.25)
	absolute := Abs(40)

	for _, extent := range []float32{100, 400, 1000} {
		if got, want := relative.Resolve(extent), extent/4; got != want {
			t.Errorf("relative at %g = %g, want %g", extent, got, want)
		}
		if got := absolute.Resolve(extent); got != 40 {
			t.Errorf("absolute at %g = %g, want 40", extent, got)
		}
	}
}

func TestURectResolve(t *testing.T) {
	area := AreaOf(RelVec(0.5, 0.5), RelSize(0.25, 0.25))
	got := area.Resolve(geom.Sz(800, 600))
	want := geom.R(400, 300, 600, 450)
	if got != want {
		t.Errorf("Resolve() = %v, want %v", got, want)
	}
}

func TestParseForms(t *testing.T) {
	d, err := ParseUDim("{0.5, 10}")
	if err != nil || d != (UDim{0.5, 10}) {
		t.Errorf("ParseUDim = %v, %v", d, err)
	}

	r, err := ParseURect("{{0,4},{0,4},{1,-4},{1,-4}}")
	if err != nil {
		t.Fatalf("ParseURect: %v", err)
	}
	if r.Max.X != (UDim{1, -4}) {
		t.Errorf("Max.X = %v", r.Max.X)
	}
	if back, err := ParseURect(r.String()); err != nil || back != r {
		t.Errorf("URect round trip = %v, %v", back, err)
	}

	b, err := ParseUBox("{top:{0,1},left:{0,2},bottom:{0,3},right:{0,4}}")
	if err != nil || b.Right.Offset != 4 || b.Left.Offset != 2 {
		t.Errorf("ParseUBox = %+v, %v", b, err)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	inputs := []string{"", "{0.5}", "{a,b}", "{{0,0},{0,0}", "{0,0}x"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseUDim(in)
			if !errors.Is(err, guierr.ErrInvalidRequest) {
				t.Errorf("ParseUDim(%q) err = %v, want invalid request", in, err)
			}
		})
	}
}
