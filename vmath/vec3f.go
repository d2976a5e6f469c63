package vmath

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is the float64 vector used by the spectrum space
type Vec3 = mgl64.Vec3

// V3Settle eases each component of cur toward target, snapping components within eps
// Returns the new vector and whether every component reached target
func V3Settle(cur, target Vec3, factor, eps float64) (Vec3, bool) {
	var out Vec3
	done := true
	for i := 0; i < 3; i++ {
		v, ok := Settle(cur[i], target[i], factor, eps)
		out[i] = v
		done = done && ok
	}
	return out, done
}

// V3Dist returns the euclidean distance between a and b
func V3Dist(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// V3Centroid returns the arithmetic mean of pts, zero vector for an empty set
func V3Centroid(pts []Vec3) Vec3 {
	var c Vec3
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Mul(1 / float64(len(pts)))
}
