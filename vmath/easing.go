package vmath

// EaseInOutCubic maps t in [0,1] onto a cubic ease-in-out curve, input is clamped
func EaseInOutCubic(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// EaseInQuad maps t in [0,1] onto a quadratic ramp, input is clamped
func EaseInQuad(t float64) float64 {
	t = Clamp01(t)
	return t * t
}
