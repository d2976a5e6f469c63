package vmath

import "math"

const TwoPi = 2 * math.Pi

// NormalizeAngle wraps angle to [0, 2π)
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	return a
}

// AngleDiff returns the shortest signed rotation from one angle to another
// Result in (-π, π]
func AngleDiff(from, to float64) float64 {
	diff := NormalizeAngle(to) - NormalizeAngle(from)
	if diff > math.Pi {
		diff -= TwoPi
	} else if diff <= -math.Pi {
		diff += TwoPi
	}
	return diff
}
