package vector

import "strings"

// Point is a 2D point.
type Point struct {
	X, Y float64
}

// PathCmd is a single absolute drawing command. Cmd is one of 'M'
// (one point), 'L' (one point), 'C' (three points) or 'Z' (no points).
type PathCmd struct {
	Cmd byte
	Pt  []Point
}

// TransformCmds maps every point of every command through m. The
// result has the same command kinds, order and point counts as the
// input; closed-subpath markers pass through unchanged. This is an
// exact affine remap, not an approximation.
func TransformCmds(cmds []PathCmd, m Matrix2D) []PathCmd {
	out := make([]PathCmd, len(cmds))
	for i, c := range cmds {
		nc := PathCmd{Cmd: c.Cmd}
		if len(c.Pt) > 0 {
			nc.Pt = make([]Point, len(c.Pt))
			for j, p := range c.Pt {
				x, y := m.Apply(p.X, p.Y)
				nc.Pt[j] = Point{x, y}
			}
		}
		out[i] = nc
	}
	return out
}

// FormatPathData renders commands in the SVG/VectorDrawable path-data
// mini-language, with every coordinate canonically formatted.
func FormatPathData(cmds []PathCmd, canon Canonicalizer) string {
	var b strings.Builder
	for i, c := range cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(c.Cmd)
		for j, p := range c.Pt {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(canon.Format(p.X))
			b.WriteByte(',')
			b.WriteString(canon.Format(p.Y))
		}
	}
	return b.String()
}
