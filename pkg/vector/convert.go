package vector

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Options controls a conversion.
type Options struct {
	// ViewportMax rescales the output viewport so its larger dimension
	// equals this value. The uniform rescale keeps small coordinates
	// clear of the scientific-notation regime without changing relative
	// geometry. Zero disables rescaling.
	ViewportMax float64
	Canon       Canonicalizer
}

// DefaultOptions returns the conversion defaults: a 1000-unit viewport
// and the standard number formatting rules.
func DefaultOptions() Options {
	return Options{ViewportMax: 1000, Canon: DefaultCanonicalizer()}
}

// CanonicalPath is one output path: transformed, style-resolved and
// with every numeric literal already in canonical decimal form.
type CanonicalPath struct {
	Name string
	Data string

	FillColor string // "#RRGGBB", empty when the channel is none
	FillAlpha string
	FillType  string // "evenOdd", "nonZero" or empty

	StrokeColor      string
	StrokeAlpha      string
	StrokeWidth      string
	StrokeLineCap    string
	StrokeLineJoin   string
	StrokeMiterLimit string
}

// OutputDocument is the converted document, ready for serialization.
type OutputDocument struct {
	Name    string
	Width   string // dp size, canonical
	Height  string
	ViewBox [4]float64 // minX, minY, width, height in output units
	Paths   []CanonicalPath
}

// Convert flattens a source document into an OutputDocument. It never
// fails: unsupported content has already been dropped by the parser,
// degenerate transforms collapse to zero coordinates via the epsilon
// clamp, and a document without paths converts to a valid empty image.
func Convert(doc *Document, opts Options) *OutputDocument {
	canon := opts.Canon

	viewW, viewH := doc.ViewBox[2], doc.ViewBox[3]
	if viewW <= 0 && viewH <= 0 {
		viewW, viewH = doc.Width, doc.Height
	}

	// A document without paths keeps its raw size as the viewBox; the
	// rescale only exists to keep path coordinates representable.
	scale := 1.0
	if opts.ViewportMax > 0 && max2(viewW, viewH) > 0 && countPaths(doc.Nodes) > 0 {
		scale = opts.ViewportMax / max2(viewW, viewH)
	}

	name := doc.Name
	if name == "" {
		name = "svgimage"
	}
	out := &OutputDocument{
		Name:   name,
		Width:  canon.Format(doc.Width),
		Height: canon.Format(doc.Height),
		ViewBox: [4]float64{
			doc.ViewBox[0] * scale,
			doc.ViewBox[1] * scale,
			viewW * scale,
			viewH * scale,
		},
	}

	c := converter{doc: doc, opts: opts, out: out}
	root := Scale(scale, scale)
	for _, n := range doc.Nodes {
		c.walk(n, root)
	}
	return out
}

type converter struct {
	doc    *Document
	opts   Options
	out    *OutputDocument
	nextID int
}

// walk traverses the tree depth-first, threading the accumulated
// transform down explicitly. Groups flatten away; each path becomes
// one CanonicalPath in traversal order.
func (c *converter) walk(n Node, acc Matrix2D) {
	switch t := n.(type) {
	case *Group:
		acc = acc.Mul(t.Transform)
		for _, child := range t.Children {
			c.walk(child, acc)
		}
	case *Path:
		c.out.Paths = append(c.out.Paths, c.convertPath(t, acc.Mul(t.Transform)))
	default:
		// The parser only builds groups and paths.
		log.Warnf("unsupported node kind %T skipped", n)
	}
}

func (c *converter) convertPath(p *Path, eff Matrix2D) CanonicalPath {
	canon := c.opts.Canon

	name := p.Name
	if name == "" {
		name = fmt.Sprintf("path%d", c.nextID)
		c.nextID++
	}

	cp := CanonicalPath{
		Name: name,
		Data: FormatPathData(TransformCmds(p.Cmds, eff), canon),
	}

	fill, stroke := ResolveStyle(p.Style, c.doc.Gradients)
	if fill.HasColor {
		cp.FillColor = formatColor(fill.Color)
	}
	if fill.HasAlpha {
		cp.FillAlpha = canon.Format(fill.Alpha)
	}
	if stroke.HasColor {
		cp.StrokeColor = formatColor(stroke.Color)
	}
	if stroke.HasAlpha {
		cp.StrokeAlpha = canon.Format(stroke.Alpha)
	}

	// Stroke width scales with the accumulated transform's effective
	// uniform scale. Approximate for non-uniform transforms.
	switch {
	case p.Style.StrokeWidth != nil:
		cp.StrokeWidth = canon.Format(*p.Style.StrokeWidth * eff.ScaleFactor())
	case !p.Style.Present:
		cp.StrokeWidth = canon.Format(eff.ScaleFactor())
	}

	switch p.Style.FillRule {
	case "evenodd":
		cp.FillType = "evenOdd"
	case "nonzero":
		cp.FillType = "nonZero"
	}
	cp.StrokeLineCap = p.Style.LineCap
	cp.StrokeLineJoin = p.Style.LineJoin
	cp.StrokeMiterLimit = p.Style.MiterLimit

	return cp
}

func formatColor(c RGB) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func countPaths(nodes []Node) int {
	n := 0
	for _, node := range nodes {
		switch t := node.(type) {
		case *Group:
			n += countPaths(t.Children)
		case *Path:
			n++
		}
	}
	return n
}

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
