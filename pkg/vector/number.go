package vector

import (
	"math"
	"strconv"
	"strings"
)

// Canonicalizer formats numbers for VectorDrawable output. The target
// format rejects scientific notation, so every value is rendered in
// fixed notation at a bounded precision, and magnitudes small enough to
// be formatting noise are clamped to an exact zero.
//
// Epsilon and Precision are explicit so the rules stay testable and
// per-conversion configurable rather than package globals.
type Canonicalizer struct {
	Epsilon   float64 // |v| < Epsilon renders as "0"
	Precision int     // max digits after the decimal point
}

// DefaultCanonicalizer returns the standard output rules.
func DefaultCanonicalizer() Canonicalizer {
	return Canonicalizer{Epsilon: 1e-6, Precision: 6}
}

// Format renders v as a fixed-notation decimal string. Never produces
// an exponent marker; trailing zeros and a trailing decimal point are
// trimmed, and negative zero collapses to "0". Formatting an already
// canonical value reproduces it exactly.
func (c Canonicalizer) Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	if math.Abs(v) < c.Epsilon {
		return "0"
	}
	s := strconv.FormatFloat(v, 'f', c.Precision, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}
