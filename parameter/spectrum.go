package parameter

import "time"

// Position interpolation
const (
	// PositionLerp is the fraction of the remaining gap closed per tick
	PositionLerp = 0.3

	// PositionEpsilon snaps a component to its target once the gap falls below it
	PositionEpsilon = 0.01
)

// Octant classification
const (
	// BalanceThreshold marks an axis as balanced when |value| <= threshold
	BalanceThreshold = 0.1

	// OctantReferenceDistance is the distance treated as full octant intensity
	// Roughly the length of (100, 100, 100)
	OctantReferenceDistance = 173.0

	// OctantFadeFloor is the fade applied at the origin, 1.0 is full base colour
	OctantFadeFloor = 0.4
)

// Zone geometry
const (
	// HullTolerance is the plane distance still counted as on-plane
	HullTolerance = 0.1

	// HullMinNormal rejects candidate faces whose normal magnitude falls below it
	HullMinNormal = 0.001

	// HullMinVertices is the smallest vertex count forming a hull
	HullMinVertices = 4
)

// Dot appearance
const (
	// DotRadius is the base rendered radius in screen units at zoom 1 and depth 0
	DotRadius = 6.0

	// BreathAmplitude is the fractional radius swing of the idle breathing
	BreathAmplitude = 0.08

	// BreathSpeed is breathing angular speed in radians per second
	BreathSpeed = 1.6

	// HoverScale is the radius multiplier of a hovered dot
	HoverScale = 1.5

	// HoverLerp is the per-tick fraction of the hover transition
	HoverLerp = 0.2

	// AxisLength is the half-length of each drawn axis in world units
	AxisLength = 120.0
)

// Interaction
const (
	// HitTolerance is added to the rendered radius when hit-testing dots
	HitTolerance = 30.0
)

// Data refresh
const (
	// RefreshInterval is the period between dataset fetches
	RefreshInterval = 120 * time.Second

	// FetchTimeout bounds one dataset fetch
	FetchTimeout = 15 * time.Second
)

// Frame loop
const (
	// FrameInterval is the host frame period
	FrameInterval = time.Second / 30

	// MaxFrameDelta clamps dt handed to the engine after a stall
	MaxFrameDelta = 100 * time.Millisecond
)
