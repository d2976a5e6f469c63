package spectrum

import (
	"github.com/lixenwraith/reverie-spectrum/vmath"
)

// Axes holds the six raw spectrum values as three opposing pairs
type Axes struct {
	Entropy, Oblivion  float64
	Liberty, Authority float64
	Receptive, Skeptic float64
}

// Position derives the 3D position from the opposing pairs
func (a Axes) Position() vmath.Vec3 {
	return vmath.Vec3{
		a.Entropy - a.Oblivion,
		a.Liberty - a.Authority,
		a.Receptive - a.Skeptic,
	}
}

// PointInput is one dreamer as delivered by a data source
type PointInput struct {
	Label  string
	Avatar string
	Axes   Axes
}

// Point is an ingested dreamer
// Target always equals Axes.Position(), Current eases toward it each tick
type Point struct {
	ID     string
	Label  string
	Avatar string
	Axes   Axes

	Target  vmath.Vec3
	Current vmath.Vec3

	// Phase offsets the breathing oscillation, stable per ID across ingests
	Phase float64
	// Hover is the eased radius multiplier, 1 when not hovered
	Hover float64

	// Zone is the index of the first containing zone, -1 for none
	Zone  int
	Class Classification

	settled bool
}

// Settled reports whether Current has reached Target
func (p *Point) Settled() bool {
	return p.settled
}
