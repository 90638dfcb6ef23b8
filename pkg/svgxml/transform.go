package svgxml

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/owenfromcanada/inkscape-androidvector/pkg/vector"
)

// parseTransformAttr reads a node's transform attribute, falling back
// to the identity matrix when the attribute is absent or malformed. A
// malformed transform is logged; treating it as identity matches the
// best-effort contract of the converter.
func parseTransformAttr(se xml.StartElement) vector.Matrix2D {
	attr := attrVal(se, "transform")
	if attr == "" {
		return vector.Identity()
	}
	m, err := ParseTransform(attr)
	if err != nil {
		log.Warnf("transform %q on '%s': %v, using identity", attr, attrVal(se, "id"), err)
		return vector.Identity()
	}
	return m
}

// ParseTransform parses an SVG transform list such as
// "translate(10,0) scale(2)" into a single matrix. Operations compose
// left to right.
func ParseTransform(v string) (vector.Matrix2D, error) {
	m := vector.Identity()
	for _, op := range strings.Split(v, ")") {
		op = strings.TrimSpace(op)
		if op == "" {
			continue
		}
		name, args, ok := strings.Cut(op, "(")
		if !ok {
			return m, fmt.Errorf("malformed transform operation %q", op)
		}
		pts, err := splitPoints(args)
		if err != nil {
			return m, err
		}
		m, err = applyTransformOp(m, strings.TrimSpace(name), pts)
		if err != nil {
			return m, err
		}
	}
	return m, nil
}

func applyTransformOp(m vector.Matrix2D, name string, pts []float64) (vector.Matrix2D, error) {
	deg := math.Pi / 180
	switch name {
	case "matrix":
		if len(pts) != 6 {
			return m, fmt.Errorf("matrix needs 6 parameters, got %d", len(pts))
		}
		return m.Mul(vector.Matrix2D{pts[0], pts[1], pts[2], pts[3], pts[4], pts[5]}), nil
	case "translate":
		switch len(pts) {
		case 1:
			return m.Mul(vector.Translate(pts[0], 0)), nil
		case 2:
			return m.Mul(vector.Translate(pts[0], pts[1])), nil
		}
	case "scale":
		switch len(pts) {
		case 1:
			return m.Mul(vector.Scale(pts[0], pts[0])), nil
		case 2:
			return m.Mul(vector.Scale(pts[0], pts[1])), nil
		}
	case "rotate":
		switch len(pts) {
		case 1:
			return m.Mul(vector.Rotate(pts[0] * deg)), nil
		case 3:
			return m.Mul(vector.Translate(pts[1], pts[2])).
				Mul(vector.Rotate(pts[0] * deg)).
				Mul(vector.Translate(-pts[1], -pts[2])), nil
		}
	case "skewX":
		if len(pts) == 1 {
			return m.Mul(vector.SkewX(pts[0] * deg)), nil
		}
	case "skewY":
		if len(pts) == 1 {
			return m.Mul(vector.SkewY(pts[0] * deg)), nil
		}
	default:
		return m, fmt.Errorf("unknown transform operation %q", name)
	}
	return m, fmt.Errorf("wrong parameter count for %s", name)
}

// splitPoints parses a comma/whitespace separated number list.
func splitPoints(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	pts := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("transform parameter %q: %w", f, err)
		}
		pts = append(pts, v)
	}
	return pts, nil
}
