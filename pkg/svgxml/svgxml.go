// Package svgxml loads an SVG document into the converter's source
// tree. Only groups and paths survive; every other element kind is an
// out-of-scope shape that gets logged and skipped. Gradient paint
// servers are collected from <defs> so the converter can approximate
// them with a representative stop color.
package svgxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/owenfromcanada/inkscape-androidvector/pkg/vector"
)

// Shape elements the converter deliberately does not support. They are
// reported louder than metadata-ish elements so the user knows to
// convert objects to paths first.
var drawableKinds = map[string]bool{
	"rect": true, "circle": true, "ellipse": true, "line": true,
	"polyline": true, "polygon": true, "text": true, "image": true,
	"use": true,
}

type rawGradient struct {
	id    string
	href  string // linked gradient carrying the stops, if any
	stops []vector.Stop
}

type parser struct {
	doc   *vector.Document
	raw   map[string]*rawGradient
	stack []*vector.Group // open groups, root excluded
	grad  *rawGradient    // gradient currently being read
	defs  int             // <defs> nesting depth
}

// Parse builds the source document tree from SVG text.
func Parse(data []byte) (*vector.Document, error) {
	p := &parser{
		doc: &vector.Document{Gradients: map[string]vector.Gradient{}},
		raw: map[string]*rawGradient{},
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	seenRoot := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse svg: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !seenRoot {
				if t.Name.Local != "svg" {
					return nil, fmt.Errorf("root element is <%s>, not <svg>", t.Name.Local)
				}
				if err := p.readRoot(t); err != nil {
					return nil, err
				}
				seenRoot = true
				continue
			}
			if err := p.startElement(dec, t); err != nil {
				return nil, err
			}
		case xml.EndElement:
			p.endElement(t)
		}
	}

	if !seenRoot {
		return nil, fmt.Errorf("no <svg> root element found")
	}
	p.resolveGradients()
	return p.doc, nil
}

func (p *parser) readRoot(se xml.StartElement) error {
	p.doc.Name = attrVal(se, "id")

	w, werr := ParseLength(attrVal(se, "width"))
	h, herr := ParseLength(attrVal(se, "height"))
	if werr != nil {
		return fmt.Errorf("document width attribute: %w", werr)
	}
	if herr != nil {
		return fmt.Errorf("document height attribute: %w", herr)
	}
	p.doc.Width, p.doc.Height = w, h

	if vb := attrVal(se, "viewBox"); vb != "" {
		fields := strings.Fields(strings.ReplaceAll(vb, ",", " "))
		if len(fields) != 4 {
			return fmt.Errorf("viewBox attribute %q is not formatted correctly", vb)
		}
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return fmt.Errorf("viewBox attribute %q: %w", vb, err)
			}
			p.doc.ViewBox[i] = v
		}
	} else {
		// No viewBox: user units match pixels.
		p.doc.ViewBox = [4]float64{0, 0, w, h}
	}
	return nil
}

func (p *parser) startElement(dec *xml.Decoder, se xml.StartElement) error {
	name := se.Name.Local

	switch name {
	case "defs":
		p.defs++
		return nil
	case "linearGradient", "radialGradient":
		p.startGradient(se)
		return nil
	case "stop":
		p.readStop(se)
		return nil
	}

	if p.defs > 0 {
		// Renderable content inside <defs> is not drawn.
		return dec.Skip()
	}

	switch name {
	case "g":
		g := &vector.Group{
			Name:      attrVal(se, "id"),
			Transform: parseTransformAttr(se),
		}
		p.appendNode(g)
		p.stack = append(p.stack, g)
	case "path":
		p.readPath(se)
		return dec.Skip()
	default:
		if drawableKinds[name] {
			log.Warnf("unsupported element <%s> skipped; convert objects to paths first", name)
		} else {
			log.Debugf("ignoring element <%s>", name)
		}
		return dec.Skip()
	}
	return nil
}

func (p *parser) endElement(ee xml.EndElement) {
	switch ee.Name.Local {
	case "defs":
		if p.defs > 0 {
			p.defs--
		}
	case "g":
		if len(p.stack) > 0 {
			p.stack = p.stack[:len(p.stack)-1]
		}
	case "linearGradient", "radialGradient":
		p.grad = nil
	}
}

func (p *parser) appendNode(n vector.Node) {
	if len(p.stack) == 0 {
		p.doc.Nodes = append(p.doc.Nodes, n)
		return
	}
	g := p.stack[len(p.stack)-1]
	g.Children = append(g.Children, n)
}

func (p *parser) readPath(se xml.StartElement) {
	d := attrVal(se, "d")
	if d == "" {
		log.Warnf("path '%s' has no path data, skipped", attrVal(se, "id"))
		return
	}
	cmds, err := ParsePathData(d)
	if err != nil {
		log.Warnf("path '%s': %v, skipped", attrVal(se, "id"), err)
		return
	}
	p.appendNode(&vector.Path{
		Name:      attrVal(se, "id"),
		Transform: parseTransformAttr(se),
		Cmds:      cmds,
		Style:     parseNodeStyle(se),
	})
}

func (p *parser) startGradient(se xml.StartElement) {
	id := attrVal(se, "id")
	if id == "" {
		p.grad = nil
		return
	}
	g := &rawGradient{id: id, href: strings.TrimPrefix(attrVal(se, "href"), "#")}
	p.raw[id] = g
	p.grad = g
}

func (p *parser) readStop(se xml.StartElement) {
	if p.grad == nil {
		return
	}
	stop := vector.Stop{}
	if off := attrVal(se, "offset"); off != "" {
		stop.Offset, _ = readFraction(off)
	}

	props := map[string]string{}
	if c := attrVal(se, "stop-color"); c != "" {
		props["stop-color"] = c
	}
	for k, v := range parseStyleAttr(attrVal(se, "style")) {
		props[k] = v
	}
	paint, err := ParseColor(props["stop-color"])
	if err != nil || paint.Kind != vector.PaintColor {
		log.Debugf("gradient '%s': unusable stop color %q", p.grad.id, props["stop-color"])
		return
	}
	stop.Color = paint.Color
	p.grad.stops = append(p.grad.stops, stop)
}

// resolveGradients chases href links so every gradient ends up with its
// own stop list. Inkscape typically splits a gradient into a positioned
// reference and a linked definition holding the stops.
func (p *parser) resolveGradients() {
	for id, g := range p.raw {
		stops := g.stops
		seen := map[string]bool{id: true}
		cur := g
		for len(stops) == 0 && cur.href != "" && !seen[cur.href] {
			seen[cur.href] = true
			next, ok := p.raw[cur.href]
			if !ok {
				break
			}
			cur = next
			stops = cur.stops
		}
		p.doc.Gradients[id] = vector.Gradient{ID: id, Stops: stops}
	}
}

// attrVal returns an attribute by local name, ignoring namespaces, so
// xlink:href and plain href read the same.
func attrVal(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// readFraction parses an offset that may be given as a percentage.
func readFraction(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		return f / 100, err
	}
	return strconv.ParseFloat(v, 64)
}
