package spectrum

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/reverie-spectrum/parameter"
	"github.com/lixenwraith/reverie-spectrum/vmath"
)

// Viewport is the host drawing surface
// UnitX and UnitY are screen units per world unit, 1 for a pixel canvas
// Terminal hosts use a wider UnitX to correct for cell aspect
type Viewport struct {
	Width, Height float64
	UnitX, UnitY  float64
}

// DefaultViewport is an 800x600 pixel canvas
var DefaultViewport = Viewport{Width: 800, Height: 600, UnitX: 1, UnitY: 1}

// Projection is a projected world position
// Depth grows away from the viewer, Scale is the perspective factor including zoom
type Projection struct {
	X, Y  float64
	Depth float64
	Scale float64
}

// tween is a time-bounded eased transition of one or two scalars
type tween struct {
	active   bool
	from, to [2]float64
	elapsed  float64
	duration float64
}

func (t *tween) start(from, to [2]float64, duration float64) {
	*t = tween{active: true, from: from, to: to, duration: duration}
}

// advance returns the eased values and clears active on completion
func (t *tween) advance(dt float64) [2]float64 {
	t.elapsed += dt
	p := 1.0
	if t.duration > 0 {
		p = t.elapsed / t.duration
	}
	if p >= 1 {
		t.active = false
		return t.to
	}
	e := vmath.EaseInOutCubic(p)
	return [2]float64{
		vmath.Lerp(t.from[0], t.to[0], e),
		vmath.Lerp(t.from[1], t.to[1], e),
	}
}

// Camera orbits the spectrum origin
// RotX (pitch) stays within ±RotationLimit, RotY (yaw) is unbounded
type Camera struct {
	RotX, RotY float64
	Zoom       float64
	VelX, VelY float64
	AutoRotate bool

	viewport Viewport
	dragging bool

	rotTween  tween
	zoomTween tween

	// Seconds without motion, and seconds since idle drift began
	idle  float64
	drift float64
}

// NewCamera returns a camera at the default oblique view with auto-rotate on
func NewCamera(vp Viewport) Camera {
	c := Camera{
		RotX:       parameter.DefaultViewRotX,
		RotY:       parameter.DefaultViewRotY,
		Zoom:       parameter.ZoomDefault,
		AutoRotate: true,
	}
	c.SetViewport(vp)
	return c
}

// Viewport returns the current drawing surface
func (c *Camera) Viewport() Viewport {
	return c.viewport
}

// SetViewport replaces the drawing surface, typically on resize
func (c *Camera) SetViewport(vp Viewport) {
	if vp.UnitX == 0 {
		vp.UnitX = 1
	}
	if vp.UnitY == 0 {
		vp.UnitY = 1
	}
	c.viewport = vp
}

// Dragging reports whether a pointer drag is in progress
func (c *Camera) Dragging() bool {
	return c.dragging
}

// Tweening reports whether a view transition is running
func (c *Camera) Tweening() bool {
	return c.rotTween.active || c.zoomTween.active
}

// RotationTarget returns the end of the active rotation tween
func (c *Camera) RotationTarget() (rotX, rotY float64, ok bool) {
	if !c.rotTween.active {
		return c.RotX, c.RotY, false
	}
	return c.rotTween.to[0], c.rotTween.to[1], true
}

// Tick advances the camera by dt seconds
// Precedence: view tween, then auto-rotate, then momentum and idle drift
func (c *Camera) Tick(dt float64) {
	if c.zoomTween.active {
		c.Zoom = c.zoomTween.advance(dt)[0]
	}

	switch {
	case c.rotTween.active:
		v := c.rotTween.advance(dt)
		c.RotX = clampPitch(v[0])
		c.RotY = v[1]
	case c.AutoRotate:
		c.RotY += parameter.AutoRotateStep
	case !c.dragging:
		c.coast(dt)
	}
}

// coast applies friction to release momentum, then drifts after a still period
func (c *Camera) coast(dt float64) {
	if c.VelX != 0 || c.VelY != 0 {
		c.RotY += c.VelY
		c.RotX = clampPitch(c.RotX + c.VelX)

		c.VelX = decay(c.VelX)
		c.VelY = decay(c.VelY)
		c.idle, c.drift = 0, 0
		return
	}

	c.idle += dt
	if c.idle < parameter.IdleDriftDelay.Seconds() {
		return
	}

	c.drift += dt
	ramp := vmath.EaseInQuad(c.drift / parameter.IdleDriftRamp.Seconds())
	c.RotY += parameter.IdleDriftStep * ramp
}

func decay(v float64) float64 {
	v *= parameter.Friction
	if v < parameter.VelocityFloor && v > -parameter.VelocityFloor {
		return 0
	}
	return v
}

func clampPitch(x float64) float64 {
	return vmath.Clamp(x, -parameter.RotationLimit, parameter.RotationLimit)
}

// interrupt hands control to the user: no tweens, no auto motion
func (c *Camera) interrupt() {
	c.AutoRotate = false
	c.rotTween.active = false
	c.zoomTween.active = false
	c.idle, c.drift = 0, 0
}

// Drag rotates by a pointer delta held for dtMs milliseconds
// Velocity is recorded per 16ms reference frame so release momentum matches drag speed
func (c *Camera) Drag(dx, dy, dtMs float64) {
	c.interrupt()
	c.dragging = true

	dRotY := dx * parameter.DragSensitivity
	dRotX := dy * parameter.DragSensitivity

	c.RotY += dRotY
	c.RotX = clampPitch(c.RotX + dRotX)

	frames := 1.0
	if dtMs > 0 {
		frames = dtMs / parameter.DragReferenceFrameMs
	}
	c.VelY = dRotY / frames
	c.VelX = dRotX / frames
}

// EndDrag releases the pointer, recorded velocity carries on as momentum
func (c *Camera) EndDrag() {
	c.dragging = false
	c.idle, c.drift = 0, 0
}

// ZoomBy multiplies zoom by f and clamps to the zoom range, non-positive f is ignored
func (c *Camera) ZoomBy(f float64) {
	if f <= 0 {
		return
	}
	c.zoomTween.active = false
	c.idle, c.drift = 0, 0
	c.Zoom = vmath.Clamp(c.Zoom*f, parameter.ZoomMin, parameter.ZoomMax)
}

// snapTo starts tweens toward a pose along the shortest yaw path
func (c *Camera) snapTo(rotX, rotY, zoom float64, autoRotate bool) {
	c.VelX, c.VelY = 0, 0
	c.dragging = false
	c.idle, c.drift = 0, 0
	c.AutoRotate = autoRotate

	toY := c.RotY + vmath.AngleDiff(c.RotY, rotY)
	c.rotTween.start(
		[2]float64{c.RotX, c.RotY},
		[2]float64{clampPitch(rotX), toY},
		parameter.RotationTweenDuration.Seconds(),
	)
	zoom = vmath.Clamp(zoom, parameter.ZoomMin, parameter.ZoomMax)
	c.zoomTween.start(
		[2]float64{c.Zoom, 0},
		[2]float64{zoom, 0},
		parameter.ZoomTweenDuration.Seconds(),
	)
}

// Projector captures the camera pose for projecting many points
type Projector struct {
	rot  mgl64.Mat3
	zoom float64
	vp   Viewport
}

// Projector returns a projector for the current pose
// Yaw is applied first, then pitch
func (c *Camera) Projector() Projector {
	return Projector{
		rot:  mgl64.Rotate3DX(c.RotX).Mul3(mgl64.Rotate3DY(c.RotY)),
		zoom: c.Zoom,
		vp:   c.viewport,
	}
}

// Project maps a world position to the screen
func (c *Camera) Project(v vmath.Vec3) Projection {
	p := c.Projector()
	return p.Project(v)
}

// Rotate returns v in view space
func (p Projector) Rotate(v vmath.Vec3) vmath.Vec3 {
	return p.rot.Mul3x1(v)
}

// Project maps a world position to the screen, screen Y grows downward
func (p Projector) Project(v vmath.Vec3) Projection {
	r := p.rot.Mul3x1(v)
	k := parameter.PerspectiveDistance
	denom := k + r.Z()
	if denom < parameter.PerspectiveMinDenominator {
		denom = parameter.PerspectiveMinDenominator
	}
	scale := p.zoom * k / denom
	return Projection{
		X:     p.vp.Width/2 + r.X()*scale*p.vp.UnitX,
		Y:     p.vp.Height/2 - r.Y()*scale*p.vp.UnitY,
		Depth: r.Z(),
		Scale: scale,
	}
}
