package svgxml

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/owenfromcanada/inkscape-androidvector/pkg/vector"
)

// ParsePathData parses an SVG path "d" attribute into absolute
// commands. The converter's command model is move/line/cubic/close, so
// H/V become lines, S/Q/T become cubics (quadratics by exact degree
// elevation) and elliptical arcs are split into cubic segments.
func ParsePathData(data string) ([]vector.PathCmd, error) {
	d := &pathScanner{data: data}

	var (
		cmds    []vector.PathCmd
		cur     vector.Point // current position
		start   vector.Point // current subpath start
		ctrl    vector.Point // last cubic control point, for S
		qctrl   vector.Point // last quadratic control point, for T
		prevCmd byte
	)

	addCmd := func(cmd byte, pts ...vector.Point) {
		cmds = append(cmds, vector.PathCmd{Cmd: cmd, Pt: pts})
		if len(pts) > 0 {
			cur = pts[len(pts)-1]
		}
	}

	for !d.eof() {
		cmd, rel, implicit, err := d.command(prevCmd)
		if err != nil {
			return nil, err
		}
		if implicit {
			switch cmd {
			case 'M':
				// Implicit commands after a moveto are linetos.
				cmd = 'L'
			case 'm':
				cmd, rel = 'l', true
			case 'Z', 'z':
				return nil, fmt.Errorf("number after closepath at position %d", d.pos)
			}
		}

		abs := func(p vector.Point) vector.Point {
			if rel {
				return vector.Point{X: p.X + cur.X, Y: p.Y + cur.Y}
			}
			return p
		}

		switch cmd {
		case 'M', 'm':
			p, err := d.point()
			if err != nil {
				return nil, err
			}
			addCmd('M', abs(p))
			start = cur
			ctrl, qctrl = cur, cur
		case 'L', 'l':
			p, err := d.point()
			if err != nil {
				return nil, err
			}
			addCmd('L', abs(p))
			ctrl, qctrl = cur, cur
		case 'H', 'h':
			x, err := d.number()
			if err != nil {
				return nil, err
			}
			if rel {
				x += cur.X
			}
			addCmd('L', vector.Point{X: x, Y: cur.Y})
			ctrl, qctrl = cur, cur
		case 'V', 'v':
			y, err := d.number()
			if err != nil {
				return nil, err
			}
			if rel {
				y += cur.Y
			}
			addCmd('L', vector.Point{X: cur.X, Y: y})
			ctrl, qctrl = cur, cur
		case 'C', 'c':
			p1, p2, p3, err := d.threePoints()
			if err != nil {
				return nil, err
			}
			p1, p2, p3 = abs(p1), abs(p2), abs(p3)
			addCmd('C', p1, p2, p3)
			ctrl, qctrl = p2, cur
		case 'S', 's':
			p2, err := d.point()
			if err != nil {
				return nil, err
			}
			p3, err := d.point()
			if err != nil {
				return nil, err
			}
			p1 := cur
			if isCubic(prevCmd) {
				p1 = reflect(cur, ctrl)
			}
			p2, p3 = abs(p2), abs(p3)
			addCmd('C', p1, p2, p3)
			ctrl, qctrl = p2, cur
		case 'Q', 'q':
			q, err := d.point()
			if err != nil {
				return nil, err
			}
			p, err := d.point()
			if err != nil {
				return nil, err
			}
			q, p = abs(q), abs(p)
			c1, c2 := quadToCubic(cur, q, p)
			addCmd('C', c1, c2, p)
			ctrl, qctrl = cur, q
		case 'T', 't':
			p, err := d.point()
			if err != nil {
				return nil, err
			}
			q := cur
			if isQuad(prevCmd) {
				q = reflect(cur, qctrl)
			}
			p = abs(p)
			c1, c2 := quadToCubic(cur, q, p)
			addCmd('C', c1, c2, p)
			ctrl, qctrl = cur, q
		case 'A', 'a':
			rx, ry, rot, large, sweep, end, err := d.arcParams()
			if err != nil {
				return nil, err
			}
			end = abs(end)
			segs := arcToCubics(cur, rx, ry, rot, large, sweep, end)
			if len(segs) == 0 {
				if cur != end {
					// Degenerate arc: a plain line per the SVG spec.
					addCmd('L', end)
				}
			} else {
				// Pin the final endpoint to the exact arc end.
				segs[len(segs)-1][2] = end
				for _, seg := range segs {
					addCmd('C', seg[0], seg[1], seg[2])
				}
			}
			ctrl, qctrl = cur, cur
		case 'Z', 'z':
			addCmd('Z')
			cur = start
			ctrl, qctrl = cur, cur
		default:
			return nil, fmt.Errorf("unexpected path command %q at position %d", cmd, d.pos)
		}
		prevCmd = cmd
	}
	return cmds, nil
}

func isCubic(cmd byte) bool {
	return cmd == 'C' || cmd == 'c' || cmd == 'S' || cmd == 's'
}

func isQuad(cmd byte) bool {
	return cmd == 'Q' || cmd == 'q' || cmd == 'T' || cmd == 't'
}

func reflect(about, p vector.Point) vector.Point {
	return vector.Point{X: 2*about.X - p.X, Y: 2*about.Y - p.Y}
}

// quadToCubic raises a quadratic Bézier to a cubic exactly.
func quadToCubic(p0, q, p2 vector.Point) (c1, c2 vector.Point) {
	c1 = vector.Point{X: p0.X + 2.0/3.0*(q.X-p0.X), Y: p0.Y + 2.0/3.0*(q.Y-p0.Y)}
	c2 = vector.Point{X: p2.X + 2.0/3.0*(q.X-p2.X), Y: p2.Y + 2.0/3.0*(q.Y-p2.Y)}
	return c1, c2
}

// arcToCubics converts an endpoint-parameterized elliptical arc into
// cubic segments of at most a quarter turn each, using the standard
// center parameterization from the SVG implementation notes. Returns
// nil for degenerate arcs (zero radius or coincident endpoints).
func arcToCubics(p1 vector.Point, rx, ry, xRotDeg float64, largeArc, sweep bool, p2 vector.Point) [][3]vector.Point {
	if rx == 0 || ry == 0 || p1 == p2 {
		return nil
	}
	rx, ry = math.Abs(rx), math.Abs(ry)

	phi := xRotDeg * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)

	// Step 1: midpoint coordinates.
	dx := (p1.X - p2.X) / 2
	dy := (p1.Y - p2.Y) / 2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	// Scale radii up if the endpoints cannot be reached.
	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	// Step 2: center in the rotated frame.
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	if num < 0 {
		num = 0
	}
	denom := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	if denom == 0 {
		return nil
	}
	sq := math.Sqrt(num / denom)
	if largeArc == sweep {
		sq = -sq
	}
	cxp := sq * rx * y1p / ry
	cyp := -sq * ry * x1p / rx

	// Step 3: center in user space.
	cx := cosPhi*cxp - sinPhi*cyp + (p1.X+p2.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (p1.Y+p2.Y)/2

	// Step 4: start angle and sweep.
	theta1 := vectorAngle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	dTheta := vectorAngle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	} else if sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	}

	segments := int(math.Ceil(math.Abs(dTheta) / (math.Pi / 2)))
	if segments < 1 {
		segments = 1
	}
	step := dTheta / float64(segments)

	// Each segment becomes one cubic with tangent-scaled control
	// points (k = 4/3 tan(step/4)).
	k := 4.0 / 3.0 * math.Tan(step/4)
	pointAt := func(theta float64) (pt, tan vector.Point) {
		sinT, cosT := math.Sincos(theta)
		pt = vector.Point{
			X: cx + rx*cosT*cosPhi - ry*sinT*sinPhi,
			Y: cy + rx*cosT*sinPhi + ry*sinT*cosPhi,
		}
		tan = vector.Point{
			X: -rx*sinT*cosPhi - ry*cosT*sinPhi,
			Y: -rx*sinT*sinPhi + ry*cosT*cosPhi,
		}
		return pt, tan
	}

	segs := make([][3]vector.Point, 0, segments)
	for i := 0; i < segments; i++ {
		t1 := theta1 + float64(i)*step
		t2 := t1 + step
		s1, tan1 := pointAt(t1)
		s2, tan2 := pointAt(t2)
		segs = append(segs, [3]vector.Point{
			{X: s1.X + k*tan1.X, Y: s1.Y + k*tan1.Y},
			{X: s2.X - k*tan2.X, Y: s2.Y - k*tan2.Y},
			s2,
		})
	}
	return segs
}

func vectorAngle(ux, uy, vx, vy float64) float64 {
	dot := ux*vx + uy*vy
	lenU := math.Hypot(ux, uy)
	lenV := math.Hypot(vx, vy)
	if lenU == 0 || lenV == 0 {
		return 0
	}
	cos := dot / (lenU * lenV)
	if cos < -1 {
		cos = -1
	} else if cos > 1 {
		cos = 1
	}
	angle := math.Acos(cos)
	if ux*vy-uy*vx < 0 {
		angle = -angle
	}
	return angle
}

// pathScanner tokenizes path data: command letters, numbers and arc
// flags, with comma/whitespace separators.
type pathScanner struct {
	data string
	pos  int
}

func (d *pathScanner) skipSep() {
	for d.pos < len(d.data) && isSep(d.data[d.pos]) {
		d.pos++
	}
}

func isSep(c byte) bool {
	return c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r'
}

func (d *pathScanner) eof() bool {
	d.skipSep()
	return d.pos >= len(d.data)
}

// command returns the next command letter, or repeats prev implicitly
// when the next token is a number.
func (d *pathScanner) command(prev byte) (cmd byte, rel, implicit bool, err error) {
	d.skipSep()
	c := d.data[d.pos]
	if strings.IndexByte("MmLlHhVvCcSsQqTtAaZz", c) >= 0 {
		d.pos++
		return c, c >= 'a', false, nil
	}
	if prev == 0 {
		return 0, false, false, fmt.Errorf("path data must start with a command, got %q", c)
	}
	if !isNumStart(c) {
		return 0, false, false, fmt.Errorf("unexpected character %q at position %d", c, d.pos)
	}
	return prev, prev >= 'a', true, nil
}

func isNumStart(c byte) bool {
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

func (d *pathScanner) number() (float64, error) {
	d.skipSep()
	start := d.pos
	i := d.pos
	if i < len(d.data) && (d.data[i] == '-' || d.data[i] == '+') {
		i++
	}
	seenDot := false
	for i < len(d.data) {
		c := d.data[i]
		if c >= '0' && c <= '9' {
			i++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			i++
			continue
		}
		if (c == 'e' || c == 'E') && i > start {
			// exponent: e[+-]?digits
			j := i + 1
			if j < len(d.data) && (d.data[j] == '-' || d.data[j] == '+') {
				j++
			}
			if j < len(d.data) && d.data[j] >= '0' && d.data[j] <= '9' {
				i = j
				continue
			}
		}
		break
	}
	if i == start {
		return 0, fmt.Errorf("expected number at position %d", d.pos)
	}
	v, err := strconv.ParseFloat(d.data[start:i], 64)
	if err != nil {
		return 0, fmt.Errorf("number %q at position %d: %w", d.data[start:i], start, err)
	}
	d.pos = i
	return v, nil
}

func (d *pathScanner) point() (vector.Point, error) {
	x, err := d.number()
	if err != nil {
		return vector.Point{}, err
	}
	y, err := d.number()
	if err != nil {
		return vector.Point{}, err
	}
	return vector.Point{X: x, Y: y}, nil
}

func (d *pathScanner) threePoints() (p1, p2, p3 vector.Point, err error) {
	if p1, err = d.point(); err != nil {
		return
	}
	if p2, err = d.point(); err != nil {
		return
	}
	p3, err = d.point()
	return
}

// flag reads a single arc flag, which may be packed against the next
// number without a separator.
func (d *pathScanner) flag() (bool, error) {
	d.skipSep()
	if d.pos >= len(d.data) {
		return false, fmt.Errorf("expected arc flag at end of data")
	}
	switch d.data[d.pos] {
	case '0':
		d.pos++
		return false, nil
	case '1':
		d.pos++
		return true, nil
	}
	return false, fmt.Errorf("arc flag at position %d must be 0 or 1", d.pos)
}

func (d *pathScanner) arcParams() (rx, ry, rot float64, large, sweep bool, end vector.Point, err error) {
	if rx, err = d.number(); err != nil {
		return
	}
	if ry, err = d.number(); err != nil {
		return
	}
	if rot, err = d.number(); err != nil {
		return
	}
	if large, err = d.flag(); err != nil {
		return
	}
	if sweep, err = d.flag(); err != nil {
		return
	}
	end, err = d.point()
	return
}
