// Package avdxml renders a converted document as Android
// VectorDrawable XML text.
package avdxml

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/owenfromcanada/inkscape-androidvector/pkg/vector"
)

const androidNS = "http://schemas.android.com/apk/res/android"

// Vector is the vector root element. Attribute names carry the
// android: prefix verbatim; encoding/xml emits prefixed names as
// written, which sidesteps its namespace handling.
type Vector struct {
	XMLName        xml.Name `xml:"vector"`
	XMLNS          string   `xml:"xmlns:android,attr"`
	Name           string   `xml:"android:name,attr,omitempty"`
	Width          string   `xml:"android:width,attr"`
	Height         string   `xml:"android:height,attr"`
	ViewportWidth  string   `xml:"android:viewportWidth,attr"`
	ViewportHeight string   `xml:"android:viewportHeight,attr"`
	Path           []PathEl `xml:"path"`
}

// PathEl is one path element. Optional attributes are empty strings
// and omitted from the output.
type PathEl struct {
	Name             string `xml:"android:name,attr,omitempty"`
	PathData         string `xml:"android:pathData,attr"`
	FillColor        string `xml:"android:fillColor,attr,omitempty"`
	FillAlpha        string `xml:"android:fillAlpha,attr,omitempty"`
	FillType         string `xml:"android:fillType,attr,omitempty"`
	StrokeColor      string `xml:"android:strokeColor,attr,omitempty"`
	StrokeAlpha      string `xml:"android:strokeAlpha,attr,omitempty"`
	StrokeWidth      string `xml:"android:strokeWidth,attr,omitempty"`
	StrokeLineCap    string `xml:"android:strokeLineCap,attr,omitempty"`
	StrokeLineJoin   string `xml:"android:strokeLineJoin,attr,omitempty"`
	StrokeMiterLimit string `xml:"android:strokeMiterLimit,attr,omitempty"`
}

// FromOutput maps an OutputDocument onto the XML element tree. The
// canonicalizer formats the viewport numbers; path data and style
// values are already canonical strings.
func FromOutput(o *vector.OutputDocument, canon vector.Canonicalizer) *Vector {
	v := &Vector{
		XMLNS:          androidNS,
		Name:           o.Name,
		Width:          o.Width + "dp",
		Height:         o.Height + "dp",
		ViewportWidth:  canon.Format(o.ViewBox[2]),
		ViewportHeight: canon.Format(o.ViewBox[3]),
	}
	for _, p := range o.Paths {
		v.Path = append(v.Path, PathEl{
			Name:             p.Name,
			PathData:         p.Data,
			FillColor:        p.FillColor,
			FillAlpha:        p.FillAlpha,
			FillType:         p.FillType,
			StrokeColor:      p.StrokeColor,
			StrokeAlpha:      p.StrokeAlpha,
			StrokeWidth:      p.StrokeWidth,
			StrokeLineCap:    p.StrokeLineCap,
			StrokeLineJoin:   p.StrokeLineJoin,
			StrokeMiterLimit: p.StrokeMiterLimit,
		})
	}
	return v
}

// Marshal renders the element tree as an XML file body, self-closing
// the path elements.
func Marshal(v *Vector, multiLine bool) ([]byte, error) {
	var (
		body []byte
		err  error
	)
	if multiLine {
		body, err = xml.MarshalIndent(v, "", "    ")
	} else {
		body, err = xml.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("marshal vector xml: %w", err)
	}

	out := xml.Header + strings.Replace(string(body), "></path", " /", -1) + "\n"
	return []byte(out), nil
}
