// Package vector converts a parsed SVG document tree into the flat,
// numerically canonical form required by Android VectorDrawable XML.
// Group transforms are flattened into final path coordinates, the three
// SVG opacity channels are folded into fill/stroke alpha, gradients are
// approximated by a representative solid color and every number is
// formatted without scientific notation.
package vector

// Document is an immutable snapshot of the parts of an SVG document the
// converter needs. It is built once by the parser, traversed once by
// Convert and then discarded.
type Document struct {
	Name      string // svg id attribute
	Width     float64
	Height    float64
	ViewBox   [4]float64 // minX, minY, width, height
	Nodes     []Node
	Gradients map[string]Gradient
}

// Node is a source tree node: either *Group or *Path. Anything else in
// the source document is dropped at parse time.
type Node interface {
	node()
}

// Group is a container node with its own transform.
type Group struct {
	Name      string
	Transform Matrix2D
	Children  []Node
}

// Path is a drawable node.
type Path struct {
	Name      string
	Transform Matrix2D
	Cmds      []PathCmd
	Style     Style
}

func (*Group) node() {}
func (*Path) node()  {}

// RGB is a flat 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Paint kinds, for fill and stroke channels.
const (
	PaintUnset = iota // property not given
	PaintNone         // explicit "none"
	PaintColor        // flat color
	PaintRef          // reference to a paint server (gradient)
)

// Paint is a fill or stroke paint channel as specified in the source.
type Paint struct {
	Kind  int
	Color RGB
	Ref   string // gradient id for PaintRef
}

// Style holds the raw style properties of a node. Optional numeric
// properties are pointers; nil means unspecified.
type Style struct {
	Present       bool // any style information given at all
	Fill          Paint
	Stroke        Paint
	FillOpacity   *float64
	StrokeOpacity *float64
	Opacity       *float64 // overall object opacity
	StrokeWidth   *float64
	FillRule      string // "evenodd", "nonzero" or ""
	LineCap       string
	LineJoin      string
	MiterLimit    string
}

// Stop is a single gradient stop.
type Stop struct {
	Offset float64
	Color  RGB
}

// Gradient is a paint server with its stops already resolved (href
// chains are chased by the parser).
type Gradient struct {
	ID    string
	Stops []Stop
}
