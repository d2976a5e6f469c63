package spectrum

import (
	"github.com/lixenwraith/reverie-spectrum/parameter"
	"github.com/lixenwraith/reverie-spectrum/vmath"
)

// ZoneKind selects the containment geometry of a Zone
type ZoneKind uint8

const (
	ZoneSphere ZoneKind = iota
	ZoneHull
)

func (k ZoneKind) String() string {
	if k == ZoneHull {
		return "hull"
	}
	return "sphere"
}

// Zone is a tinted region of spectrum space
// Sphere zones use Center and Radius, hull zones use Vertices
type Zone struct {
	Name     string
	Kind     ZoneKind
	Color    RGBA
	Center   vmath.Vec3
	Radius   float64
	Vertices []vmath.Vec3
}

// Face is a true hull face, Normal is unit length and points away from the hull centroid
// A, B, C wind counter-clockwise around Normal
type Face struct {
	A, B, C vmath.Vec3
	Normal  vmath.Vec3
}

// PointInSphere reports whether p lies within the sphere zone, boundary inclusive
func PointInSphere(p vmath.Vec3, z Zone) bool {
	return vmath.V3Dist(p, z.Center) <= z.Radius
}

// PointInHull reports whether p lies inside the convex hull of the zone vertices
// Faces are derived from the raw vertex set on every call
func PointInHull(p vmath.Vec3, z Zone) bool {
	return insideFaces(p, HullFaces(z.Vertices))
}

// Contains dispatches to the containment test of the zone kind
func (z Zone) Contains(p vmath.Vec3) bool {
	if z.Kind == ZoneHull {
		return PointInHull(p, z)
	}
	return PointInSphere(p, z)
}

// HullFaces enumerates every vertex triple and keeps those whose plane has all
// remaining vertices on one side within HullTolerance
// Triples with a near-zero normal are skipped. Fewer than HullMinVertices, or a
// vertex set with no volume (all within HullTolerance of one plane), yields nil
// Coplanar runs of more than three vertices produce overlapping faces, which
// containment and wireframe drawing both tolerate
func HullFaces(vs []vmath.Vec3) []Face {
	n := len(vs)
	if n < parameter.HullMinVertices {
		return nil
	}

	if flat(vs) {
		return nil
	}

	centroid := vmath.V3Centroid(vs)
	var faces []Face

	for i := 0; i < n-2; i++ {
		for j := i + 1; j < n-1; j++ {
			for k := j + 1; k < n; k++ {
				a, b, c := vs[i], vs[j], vs[k]

				normal := b.Sub(a).Cross(c.Sub(a))
				mag := normal.Len()
				if mag < parameter.HullMinNormal {
					continue
				}
				normal = normal.Mul(1 / mag)

				if !allOneSide(vs, a, normal, i, j, k) {
					continue
				}

				// Orient outward: centroid on the negative side
				if normal.Dot(centroid.Sub(a)) > 0 {
					normal = normal.Mul(-1)
					b, c = c, b
				}

				faces = append(faces, Face{A: a, B: b, C: c, Normal: normal})
			}
		}
	}
	return faces
}

// flat reports whether every vertex lies within HullTolerance of the plane of
// the first non-degenerate triple, or no such triple exists
func flat(vs []vmath.Vec3) bool {
	n := len(vs)
	for i := 0; i < n-2; i++ {
		for j := i + 1; j < n-1; j++ {
			for k := j + 1; k < n; k++ {
				normal := vs[j].Sub(vs[i]).Cross(vs[k].Sub(vs[i]))
				mag := normal.Len()
				if mag < parameter.HullMinNormal {
					continue
				}
				normal = normal.Mul(1 / mag)
				for _, v := range vs {
					if d := normal.Dot(v.Sub(vs[i])); d > parameter.HullTolerance || d < -parameter.HullTolerance {
						return false
					}
				}
				return true
			}
		}
	}
	return true
}

// allOneSide reports whether no two vertices lie strictly on opposite sides of the plane
func allOneSide(vs []vmath.Vec3, origin, normal vmath.Vec3, i, j, k int) bool {
	pos, neg := false, false
	for m, v := range vs {
		if m == i || m == j || m == k {
			continue
		}
		d := normal.Dot(v.Sub(origin))
		if d > parameter.HullTolerance {
			pos = true
		} else if d < -parameter.HullTolerance {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}

// insideFaces is true when p violates no face half-space beyond tolerance
// An empty face set contains nothing
func insideFaces(p vmath.Vec3, faces []Face) bool {
	if len(faces) == 0 {
		return false
	}
	for _, f := range faces {
		if f.Normal.Dot(p.Sub(f.A)) > parameter.HullTolerance {
			return false
		}
	}
	return true
}

// zoneState caches derived geometry for one ingested zone
type zoneState struct {
	Zone
	faces []Face
	valid bool
}

func newZoneState(z Zone) zoneState {
	zs := zoneState{Zone: z}
	switch z.Kind {
	case ZoneHull:
		zs.faces = HullFaces(z.Vertices)
		zs.valid = len(zs.faces) > 0
	default:
		zs.valid = z.Radius >= 0
	}
	return zs
}

func (zs *zoneState) contains(p vmath.Vec3) bool {
	if !zs.valid {
		return false
	}
	if zs.Kind == ZoneHull {
		return insideFaces(p, zs.faces)
	}
	return PointInSphere(p, zs.Zone)
}
