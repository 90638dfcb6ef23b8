package vector

import (
	"testing"
)

// noScale disables the viewport rescale so coordinates can be checked
// directly against the source geometry.
func noScale() Options {
	return Options{ViewportMax: 0, Canon: DefaultCanonicalizer()}
}

func docWith(nodes ...Node) *Document {
	return &Document{
		Name:    "testdoc",
		Width:   100,
		Height:  50,
		ViewBox: [4]float64{0, 0, 100, 50},
		Nodes:   nodes,
	}
}

func TestConvertSinglePathOpacityFolding(t *testing.T) {
	p := &Path{
		Transform: Identity(),
		Cmds: []PathCmd{
			{Cmd: 'M', Pt: []Point{{0, 0}}},
			{Cmd: 'L', Pt: []Point{{10, 0}}},
			{Cmd: 'Z'},
		},
		Style: Style{
			Present:     true,
			Fill:        Paint{Kind: PaintColor, Color: RGB{0xFF, 0, 0}},
			FillOpacity: fp(1),
			Opacity:     fp(0.5),
			Stroke:      Paint{Kind: PaintNone},
		},
	}
	out := Convert(docWith(p), noScale())

	if len(out.Paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(out.Paths))
	}
	cp := out.Paths[0]
	if cp.FillColor != "#FF0000" {
		t.Errorf("FillColor = %q, want #FF0000", cp.FillColor)
	}
	if cp.FillAlpha != "0.5" {
		t.Errorf("FillAlpha = %q, want 0.5", cp.FillAlpha)
	}
	if cp.StrokeColor != "" || cp.StrokeAlpha != "" || cp.StrokeWidth != "" {
		t.Errorf("stroke attributes present for stroke=none: %+v", cp)
	}
}

func TestConvertNestedGroupTransforms(t *testing.T) {
	p := &Path{
		Transform: Identity(),
		Cmds:      []PathCmd{{Cmd: 'M', Pt: []Point{{1, 1}}}},
		Style:     Style{Present: true, Fill: Paint{Kind: PaintColor}},
	}
	inner := &Group{Transform: Scale(2, 2), Children: []Node{p}}
	outer := &Group{Transform: Translate(10, 0), Children: []Node{inner}}

	out := Convert(docWith(outer), noScale())
	if len(out.Paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(out.Paths))
	}
	if got := out.Paths[0].Data; got != "M12,2" {
		t.Errorf("path data = %q, want \"M12,2\"", got)
	}
}

func TestConvertEmptyDocument(t *testing.T) {
	out := Convert(docWith(), DefaultOptions())
	if len(out.Paths) != 0 {
		t.Fatalf("got %d paths, want 0", len(out.Paths))
	}
	if out.ViewBox != [4]float64{0, 0, 100, 50} {
		t.Errorf("viewBox = %v, want the source document size", out.ViewBox)
	}
}

func TestConvertViewportRescale(t *testing.T) {
	p := &Path{
		Transform: Identity(),
		Cmds:      []PathCmd{{Cmd: 'M', Pt: []Point{{1, 1}}}, {Cmd: 'L', Pt: []Point{{100, 50}}}},
		Style:     Style{Present: true, Fill: Paint{Kind: PaintColor}},
	}
	out := Convert(docWith(p), DefaultOptions())

	// 100x50 viewBox scales by 10 to reach the 1000-unit viewport.
	if out.ViewBox != [4]float64{0, 0, 1000, 500} {
		t.Errorf("viewBox = %v, want [0 0 1000 500]", out.ViewBox)
	}
	if got := out.Paths[0].Data; got != "M10,10 L1000,500" {
		t.Errorf("path data = %q, want \"M10,10 L1000,500\"", got)
	}
}

func TestConvertStrokeWidthScaling(t *testing.T) {
	p := &Path{
		Transform: Identity(),
		Cmds:      []PathCmd{{Cmd: 'M', Pt: []Point{{0, 0}}}},
		Style: Style{
			Present:     true,
			Stroke:      Paint{Kind: PaintColor, Color: RGB{0, 0, 0}},
			StrokeWidth: fp(2),
		},
	}
	g := &Group{Transform: Scale(3, 3), Children: []Node{p}}
	out := Convert(docWith(g), noScale())
	if got := out.Paths[0].StrokeWidth; got != "6" {
		t.Errorf("StrokeWidth = %q, want \"6\"", got)
	}
}

func TestConvertDegenerateTransform(t *testing.T) {
	p := &Path{
		Transform: Scale(1e-20, 1e-20),
		Cmds:      []PathCmd{{Cmd: 'M', Pt: []Point{{5, 5}}}},
		Style:     Style{Present: true, Fill: Paint{Kind: PaintColor}},
	}
	out := Convert(docWith(p), noScale())
	// Near-zero coordinates clamp to zero instead of erroring.
	if got := out.Paths[0].Data; got != "M0,0" {
		t.Errorf("path data = %q, want \"M0,0\"", got)
	}
}

func TestConvertGeneratedNames(t *testing.T) {
	mk := func() *Path {
		return &Path{
			Transform: Identity(),
			Cmds:      []PathCmd{{Cmd: 'M', Pt: []Point{{0, 0}}}},
			Style:     Style{Present: true, Fill: Paint{Kind: PaintColor}},
		}
	}
	named := mk()
	named.Name = "star"
	out := Convert(docWith(mk(), named, mk()), noScale())

	got := []string{out.Paths[0].Name, out.Paths[1].Name, out.Paths[2].Name}
	want := []string{"path0", "star", "path1"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path %d name = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestConvertFillRuleMapping(t *testing.T) {
	p := &Path{
		Transform: Identity(),
		Cmds:      []PathCmd{{Cmd: 'M', Pt: []Point{{0, 0}}}},
		Style: Style{
			Present:  true,
			Fill:     Paint{Kind: PaintColor},
			FillRule: "evenodd",
		},
	}
	out := Convert(docWith(p), noScale())
	if got := out.Paths[0].FillType; got != "evenOdd" {
		t.Errorf("FillType = %q, want \"evenOdd\"", got)
	}
}

func TestConvertUnstyledPathDefaults(t *testing.T) {
	p := &Path{
		Transform: Identity(),
		Cmds:      []PathCmd{{Cmd: 'M', Pt: []Point{{0, 0}}}},
	}
	out := Convert(docWith(p), noScale())
	cp := out.Paths[0]
	if cp.FillColor != "#FFFFFF" || cp.StrokeColor != "#000000" || cp.StrokeWidth != "1" {
		t.Errorf("unstyled path defaults wrong: %+v", cp)
	}
}
