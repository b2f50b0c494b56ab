package animation

import "math"

// Easing maps linear progress in [0, 1] to eased progress. Easings must
// return 0 at 0 and 1 at 1.
type Easing func(t float64) float64

// Linear applies no easing.
func Linear(t float64) float64 { return t }

// EaseOutCubic decelerates towards the target.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseInOutCubic accelerates then decelerates.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EasingByName resolves "linear", "ease-out" and "ease-in-out". Unknown
// names fall back to EaseOutCubic.
func EasingByName(name string) Easing {
	switch name {
	case "linear":
		return Linear
	case "ease-in-out":
		return EaseInOutCubic
	default:
		return EaseOutCubic
	}
}
