package svgxml

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/owenfromcanada/inkscape-androidvector/pkg/vector"
)

func TestParsePathDataBasic(t *testing.T) {
	got, err := ParsePathData("M 1,1 L 4,1 C 4,3 2,3 1,1 Z")
	if err != nil {
		t.Fatal(err)
	}
	want := []vector.PathCmd{
		{Cmd: 'M', Pt: []vector.Point{{X: 1, Y: 1}}},
		{Cmd: 'L', Pt: []vector.Point{{X: 4, Y: 1}}},
		{Cmd: 'C', Pt: []vector.Point{{X: 4, Y: 3}, {X: 2, Y: 3}, {X: 1, Y: 1}}},
		{Cmd: 'Z'},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParsePathData mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePathDataRelative(t *testing.T) {
	got, err := ParsePathData("m 10,10 l 5,0 v 5 h -5 z")
	if err != nil {
		t.Fatal(err)
	}
	want := []vector.PathCmd{
		{Cmd: 'M', Pt: []vector.Point{{X: 10, Y: 10}}},
		{Cmd: 'L', Pt: []vector.Point{{X: 15, Y: 10}}},
		{Cmd: 'L', Pt: []vector.Point{{X: 15, Y: 15}}},
		{Cmd: 'L', Pt: []vector.Point{{X: 10, Y: 15}}},
		{Cmd: 'Z'},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParsePathData mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePathDataImplicitLineto(t *testing.T) {
	got, err := ParsePathData("M0,0 10,0 10,10")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[1].Cmd != 'L' || got[2].Cmd != 'L' {
		t.Fatalf("implicit linetos not recognized: %+v", got)
	}
}

func TestParsePathDataCompactNumbers(t *testing.T) {
	// Inkscape-style packed negative numbers and decimals.
	got, err := ParsePathData("M1.5-2.5.5.5")
	if err != nil {
		t.Fatal(err)
	}
	want := []vector.PathCmd{
		{Cmd: 'M', Pt: []vector.Point{{X: 1.5, Y: -2.5}}},
		{Cmd: 'L', Pt: []vector.Point{{X: 0.5, Y: 0.5}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParsePathData mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePathDataScientificNotation(t *testing.T) {
	got, err := ParsePathData("M 1e2,2.5e-1 L 0,0")
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Pt[0] != (vector.Point{X: 100, Y: 0.25}) {
		t.Errorf("exponent form parsed as %v", got[0].Pt[0])
	}
}

func TestParsePathDataSmoothCubic(t *testing.T) {
	got, err := ParsePathData("M0,0 C 0,10 10,10 10,0 S 20,-10 20,0")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[2].Cmd != 'C' {
		t.Fatalf("smooth cubic not converted: %+v", got)
	}
	// Reflection of (10,10) about (10,0).
	if got[2].Pt[0] != (vector.Point{X: 10, Y: -10}) {
		t.Errorf("reflected control point = %v, want (10,-10)", got[2].Pt[0])
	}
}

func TestParsePathDataQuadratic(t *testing.T) {
	got, err := ParsePathData("M0,0 Q 5,10 10,0")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1].Cmd != 'C' {
		t.Fatalf("quadratic not elevated to cubic: %+v", got)
	}
	c1, c2 := got[1].Pt[0], got[1].Pt[1]
	wantC1 := vector.Point{X: 10.0 / 3.0, Y: 20.0 / 3.0}
	wantC2 := vector.Point{X: 20.0 / 3.0, Y: 20.0 / 3.0}
	if math.Abs(c1.X-wantC1.X) > 1e-9 || math.Abs(c1.Y-wantC1.Y) > 1e-9 {
		t.Errorf("c1 = %v, want %v", c1, wantC1)
	}
	if math.Abs(c2.X-wantC2.X) > 1e-9 || math.Abs(c2.Y-wantC2.Y) > 1e-9 {
		t.Errorf("c2 = %v, want %v", c2, wantC2)
	}
	if got[1].Pt[2] != (vector.Point{X: 10, Y: 0}) {
		t.Errorf("endpoint = %v, want (10,0)", got[1].Pt[2])
	}
}

func TestParsePathDataArc(t *testing.T) {
	got, err := ParsePathData("M0,0 A 10,10 0 0 1 10,10")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) < 2 {
		t.Fatalf("arc produced no segments: %+v", got)
	}
	last := got[len(got)-1]
	if last.Cmd != 'C' {
		t.Fatalf("arc not converted to cubics: %+v", got)
	}
	if end := last.Pt[len(last.Pt)-1]; end != (vector.Point{X: 10, Y: 10}) {
		t.Errorf("arc endpoint = %v, want exactly (10,10)", end)
	}
	// Every interpolated point must stay on the 10-radius circle
	// centered at (0,10) within a loose flatness tolerance.
	for _, c := range got[1:] {
		for _, p := range c.Pt {
			r := math.Hypot(p.X-0, p.Y-10)
			if math.Abs(r-10) > 0.6 {
				t.Errorf("control point %v strays too far from the arc (r=%v)", p, r)
			}
		}
	}
}

func TestParsePathDataPackedArcFlags(t *testing.T) {
	got, err := ParsePathData("M0,0 a10,10 0 0110,10")
	if err != nil {
		t.Fatal(err)
	}
	last := got[len(got)-1]
	if end := last.Pt[len(last.Pt)-1]; end != (vector.Point{X: 10, Y: 10}) {
		t.Errorf("arc endpoint = %v, want (10,10)", end)
	}
}

func TestParsePathDataErrors(t *testing.T) {
	for _, d := range []string{"10,10 L 0,0", "M 1,2 L", "M 1,2 X 3,4", "M0,0 A 1,1 0 2 0 5,5"} {
		if _, err := ParsePathData(d); err == nil {
			t.Errorf("ParsePathData(%q) succeeded, want error", d)
		}
	}
}
