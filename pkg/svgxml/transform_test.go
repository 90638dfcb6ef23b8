package svgxml

import (
	"math"
	"testing"

	"github.com/owenfromcanada/inkscape-androidvector/pkg/vector"
)

func applyNear(t *testing.T, m vector.Matrix2D, x, y, wantX, wantY float64) {
	t.Helper()
	gx, gy := m.Apply(x, y)
	if math.Abs(gx-wantX) > 1e-9 || math.Abs(gy-wantY) > 1e-9 {
		t.Errorf("Apply(%v,%v) = (%v,%v), want (%v,%v)", x, y, gx, gy, wantX, wantY)
	}
}

func TestParseTransformSingle(t *testing.T) {
	m, err := ParseTransform("translate(10,20)")
	if err != nil {
		t.Fatal(err)
	}
	applyNear(t, m, 0, 0, 10, 20)

	m, err = ParseTransform("scale(2)")
	if err != nil {
		t.Fatal(err)
	}
	applyNear(t, m, 3, 4, 6, 8)

	m, err = ParseTransform("matrix(1,0,0,1,5,-5)")
	if err != nil {
		t.Fatal(err)
	}
	applyNear(t, m, 1, 1, 6, -4)
}

func TestParseTransformList(t *testing.T) {
	// Operations apply left to right: translate after scale.
	m, err := ParseTransform("translate(10,0) scale(2)")
	if err != nil {
		t.Fatal(err)
	}
	applyNear(t, m, 1, 1, 12, 2)
}

func TestParseTransformRotateAboutPoint(t *testing.T) {
	m, err := ParseTransform("rotate(90 5 5)")
	if err != nil {
		t.Fatal(err)
	}
	applyNear(t, m, 5, 0, 10, 5)
}

func TestParseTransformWhitespaceForms(t *testing.T) {
	m, err := ParseTransform("  translate( 10 , 20 )  scale(1)  ")
	if err != nil {
		t.Fatal(err)
	}
	applyNear(t, m, 0, 0, 10, 20)
}

func TestParseTransformErrors(t *testing.T) {
	for _, v := range []string{"spin(90)", "scale(1,2,3)", "matrix(1,2,3)", "translate(a)"} {
		if _, err := ParseTransform(v); err == nil {
			t.Errorf("ParseTransform(%q) succeeded, want error", v)
		}
	}
}
