// Package easing provides the curve functions used to shape interpolation
// between keyframes. All functions map a normalized progress t in [0, 1] to a
// normalized output in [0, 1].
package easing

import "math"

// Kind identifies an easing curve. The zero value is not valid; use Parse to
// obtain a Kind from persisted metadata.
type Kind string

const (
	Linear    Kind = "linear"
	EaseIn    Kind = "ease-in"
	EaseOut   Kind = "ease-out"
	EaseInOut Kind = "ease-in-out"
)

// Parse maps a persisted easing identifier to a Kind. Unrecognized or empty
// identifiers fall back to EaseInOut.
func Parse(s string) Kind {
	switch Kind(s) {
	case Linear, EaseIn, EaseOut, EaseInOut:
		return Kind(s)
	default:
		return EaseInOut
	}
}

// Apply evaluates the curve at progress t. Inputs outside [0, 1] are clamped
// before evaluation so callers never see overshoot.
func (k Kind) Apply(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch k {
	case Linear:
		return t
	case EaseIn:
		return inCubic(t)
	case EaseOut:
		return outCubic(t)
	default:
		return inOutCubic(t)
	}
}

// inCubic starts slow and ends fast: f(t) = t³.
func inCubic(t float64) float64 {
	return t * t * t
}

// outCubic starts fast and ends slow: f(t) = 1 - (1-t)³.
func outCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// inOutCubic accelerates through the first half and decelerates through the
// second.
func inOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Lerp performs linear interpolation between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
