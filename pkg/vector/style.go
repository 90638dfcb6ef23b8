package vector

import (
	log "github.com/sirupsen/logrus"
)

// Channel is a resolved fill or stroke channel.
type Channel struct {
	HasColor bool
	Color    RGB
	HasAlpha bool // alpha attribute should be emitted
	Alpha    float64
	Gradient bool // color came from a gradient fallback
}

// Default paints used when a path carries no style information at all,
// matching Inkscape's implied rendering of unstyled paths.
var (
	defaultFill   = RGB{0xFF, 0xFF, 0xFF}
	defaultStroke = RGB{0x00, 0x00, 0x00}
)

// ResolveStyle folds a node's paint and opacity properties into the
// two-channel model of the target format. The overall object opacity,
// which the target cannot express, is multiplied into both channel
// alphas. Gradient paint references are approximated by the gradient's
// first stop color; the approximation is logged, not an error.
func ResolveStyle(st Style, gradients map[string]Gradient) (fill, stroke Channel) {
	if !st.Present {
		// No style at all: black stroke over white fill, and let the
		// emitter add the implied stroke width.
		fill = Channel{HasColor: true, Color: defaultFill}
		stroke = Channel{HasColor: true, Color: defaultStroke}
		return fill, stroke
	}

	overall := 1.0
	if st.Opacity != nil {
		overall = clamp01(*st.Opacity)
	}

	fill = resolveChannel(st.Fill, gradients)
	if fill.HasColor && (st.FillOpacity != nil || st.Opacity != nil) {
		alpha := overall
		if st.FillOpacity != nil {
			alpha *= clamp01(*st.FillOpacity)
		}
		fill.HasAlpha = true
		fill.Alpha = alpha
	}

	stroke = resolveChannel(st.Stroke, gradients)
	if stroke.HasColor && (st.StrokeOpacity != nil || st.Opacity != nil) {
		alpha := overall
		if st.StrokeOpacity != nil {
			alpha *= clamp01(*st.StrokeOpacity)
		}
		stroke.HasAlpha = true
		stroke.Alpha = alpha
	}

	return fill, stroke
}

// resolveChannel maps one paint property to a flat color. "none" and
// unset paints yield no color; unknown paint server references are
// dropped with a warning.
func resolveChannel(p Paint, gradients map[string]Gradient) Channel {
	switch p.Kind {
	case PaintColor:
		return Channel{HasColor: true, Color: p.Color}
	case PaintRef:
		g, ok := gradients[p.Ref]
		if !ok || len(g.Stops) == 0 {
			log.Warnf("paint server '%s' not found or has no stops, dropping channel", p.Ref)
			return Channel{}
		}
		// Representative stop: first stop in document order.
		log.Debugf("approximating gradient '%s' with its first stop color", p.Ref)
		return Channel{HasColor: true, Color: g.Stops[0].Color, Gradient: true}
	}
	return Channel{}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
