// Package vmath holds scalar easing and mgl64 vector helpers
package vmath

// Lerp interpolates from a toward b by t, t is not clamped
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 bounds v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Settle moves cur toward target by factor and snaps once the remaining gap is below eps
// Returns the new value and whether it reached target
func Settle(cur, target, factor, eps float64) (float64, bool) {
	delta := target - cur
	if delta < eps && delta > -eps {
		return target, true
	}
	return cur + delta*factor, false
}
