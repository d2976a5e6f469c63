package parameter

import (
	"math"
	"time"
)

// Camera orientation limits
const (
	// RotationLimit bounds pitch to [-RotationLimit, +RotationLimit]
	// Yaw is unbounded
	RotationLimit = 0.4 * math.Pi

	// ZoomMin is the smallest zoom factor accepted by wheel and pinch
	ZoomMin = 0.5

	// ZoomMax is the largest zoom factor accepted by wheel and pinch
	ZoomMax = 4.0

	// ZoomDefault is the zoom restored by view snapping
	ZoomDefault = 1.0

	// ZoomStep is the multiplicative zoom applied per wheel notch
	ZoomStep = 1.1
)

// Projection
const (
	// PerspectiveDistance is k in scale = zoom * k / (k + depth)
	PerspectiveDistance = 400.0

	// PerspectiveMinDenominator keeps k + depth away from zero for points behind the eye
	PerspectiveMinDenominator = 1.0
)

// Drag and momentum
const (
	// DragSensitivity converts pointer delta to radians
	DragSensitivity = 0.01

	// DragReferenceFrameMs normalizes drag velocity to a 60Hz frame
	DragReferenceFrameMs = 16.0

	// Friction is the per-tick velocity multiplier after release
	Friction = 0.95

	// VelocityFloor zeroes angular velocity below this magnitude
	VelocityFloor = 0.0001
)

// Idle behaviour
const (
	// AutoRotateStep is yaw added per tick while auto-rotate is enabled
	AutoRotateStep = 0.002

	// IdleDriftDelay is the still period before drift resumes
	IdleDriftDelay = 8 * time.Second

	// IdleDriftRamp is the time drift takes to reach full speed
	IdleDriftRamp = 2 * time.Second

	// IdleDriftStep is yaw added per tick at full drift speed
	IdleDriftStep = 0.001
)

// View transitions
const (
	// RotationTweenDuration is the length of a snap-to-view rotation
	RotationTweenDuration = 800 * time.Millisecond

	// ZoomTweenDuration is the length of a snap-to-view zoom
	ZoomTweenDuration = 600 * time.Millisecond

	// DefaultViewRotX is the pitch of the oblique default view
	DefaultViewRotX = -0.35

	// DefaultViewRotY is the yaw of the oblique default view
	DefaultViewRotY = 0.6
)
