package spectrum

import (
	"io"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/reverie-spectrum/parameter"
	"github.com/lixenwraith/reverie-spectrum/vmath"
)

// Engine owns the camera, the point set and the zone set
// All methods must be called from one goroutine
type Engine struct {
	cam Camera

	points map[string]*Point
	order  []*Point // sorted by ID
	zones  []zoneState

	rng   *rand.Rand
	log   logrus.FieldLogger
	clock float64

	hitTolerance float64

	pointerX, pointerY float64
	pointerSet         bool
	hovered            string
	selected           string

	// Label boxes reported by the renderer for the last drawn frame
	labels []LabelBox
}

// Option configures an Engine
type Option func(*Engine)

// WithRand sets the phase source, intended for deterministic tests
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLogger sets the logger, default discards
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// WithViewport sets the initial drawing surface
func WithViewport(vp Viewport) Option {
	return func(e *Engine) { e.cam.SetViewport(vp) }
}

// WithHitTolerance overrides the screen distance added to dot radii in HitTest
func WithHitTolerance(t float64) Option {
	return func(e *Engine) { e.hitTolerance = t }
}

// New creates an engine with an empty dataset at the default view
func New(opts ...Option) *Engine {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	now := uint64(time.Now().UnixNano())
	e := &Engine{
		cam:          NewCamera(DefaultViewport),
		points:       make(map[string]*Point),
		rng:          rand.New(rand.NewPCG(now, now>>17|1)),
		log:          discard,
		hitTolerance: parameter.HitTolerance,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ingest replaces the working dataset
// Known IDs keep their phase and ease toward the new position, new IDs appear in place
// and IDs absent from points are dropped. Hull zones with too few vertices or no
// valid face are kept in order but never contain or render anything
func (e *Engine) Ingest(points map[string]PointInput, zones []Zone) {
	ids := make([]string, 0, len(points))
	for id := range points {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	next := make(map[string]*Point, len(points))
	order := make([]*Point, 0, len(points))
	var added, moved int

	for _, id := range ids {
		in := points[id]
		target := in.Axes.Position()

		p, ok := e.points[id]
		if ok {
			if p.Target != target {
				moved++
			}
			p.Label, p.Avatar, p.Axes = in.Label, in.Avatar, in.Axes
			p.Target = target
			p.settled = p.Current == target
		} else {
			added++
			p = &Point{
				ID:      id,
				Label:   in.Label,
				Avatar:  in.Avatar,
				Axes:    in.Axes,
				Target:  target,
				Current: target,
				Phase:   e.rng.Float64() * vmath.TwoPi,
				Hover:   1,
				settled: true,
			}
		}
		next[id] = p
		order = append(order, p)
	}

	dropped := 0
	for id := range e.points {
		if _, ok := next[id]; !ok {
			dropped++
		}
	}
	if _, ok := next[e.selected]; !ok {
		e.selected = ""
	}
	if _, ok := next[e.hovered]; !ok {
		e.hovered = ""
	}

	e.points = next
	e.order = order

	e.zones = make([]zoneState, 0, len(zones))
	for i, z := range zones {
		zs := newZoneState(z)
		if !zs.valid {
			e.log.WithFields(logrus.Fields{
				"zone":     z.Name,
				"index":    i,
				"kind":     z.Kind.String(),
				"vertices": len(z.Vertices),
			}).Debug("zone skipped, degenerate geometry")
		}
		e.zones = append(e.zones, zs)
	}

	e.reclassify()

	e.log.WithFields(logrus.Fields{
		"points":  len(order),
		"added":   added,
		"moved":   moved,
		"dropped": dropped,
		"zones":   len(zones),
	}).Debug("dataset ingested")
}

// reclassify recomputes octant and zone membership from current positions
func (e *Engine) reclassify() {
	for _, p := range e.order {
		p.Class = Classify(p.Current)
		p.Zone = e.zoneOf(p.Current)
	}
}

// zoneOf returns the index of the first containing zone or -1
func (e *Engine) zoneOf(v vmath.Vec3) int {
	for i := range e.zones {
		if e.zones[i].contains(v) {
			return i
		}
	}
	return -1
}

// Tick advances interpolation, camera, breathing and hover by dt seconds
func (e *Engine) Tick(dt float64) {
	for _, p := range e.order {
		if p.settled {
			continue
		}
		p.Current, p.settled = vmath.V3Settle(p.Current, p.Target, parameter.PositionLerp, parameter.PositionEpsilon)
	}

	e.cam.Tick(dt)
	e.clock += dt

	e.hovered = ""
	if e.pointerSet && !e.cam.Dragging() {
		if p, ok := e.dotAt(e.pointerX, e.pointerY); ok {
			e.hovered = p.ID
		}
	}
	for _, p := range e.order {
		target := 1.0
		if p.ID == e.hovered {
			target = parameter.HoverScale
		}
		p.Hover = vmath.Lerp(p.Hover, target, parameter.HoverLerp)
	}

	e.reclassify()
}

// Camera returns a copy of the camera state
func (e *Engine) Camera() Camera {
	return e.cam
}

// SetViewport resizes the drawing surface
func (e *Engine) SetViewport(vp Viewport) {
	e.cam.SetViewport(vp)
	e.labels = nil
}

// Project maps a world position with the current camera
func (e *Engine) Project(v vmath.Vec3) Projection {
	return e.cam.Project(v)
}

// Drag forwards a pointer drag, user input cancels tweens and auto-rotate
func (e *Engine) Drag(dx, dy, dtMs float64) {
	e.cam.Drag(dx, dy, dtMs)
}

// EndDrag releases the pointer, momentum continues
func (e *Engine) EndDrag() {
	e.cam.EndDrag()
}

// ZoomBy applies a multiplicative zoom delta
func (e *Engine) ZoomBy(f float64) {
	e.cam.ZoomBy(f)
}

// SnapToView starts a transition toward a canonical view
func (e *Engine) SnapToView(v View) error {
	return e.cam.SnapToView(v)
}

// SetAutoRotate switches the continuous yaw rotation, a running view tween takes precedence
func (e *Engine) SetAutoRotate(on bool) {
	e.cam.AutoRotate = on
}

// SetPointer records the hover position, ClearPointer forgets it
func (e *Engine) SetPointer(x, y float64) {
	e.pointerX, e.pointerY = x, y
	e.pointerSet = true
}

func (e *Engine) ClearPointer() {
	e.pointerSet = false
}

// Hovered returns the ID under the pointer as of the last tick
func (e *Engine) Hovered() string {
	return e.hovered
}

// Select marks a point as selected, unknown IDs clear the selection
func (e *Engine) Select(id string) {
	if _, ok := e.points[id]; !ok {
		id = ""
	}
	e.selected = id
}

// Selected returns the selected ID, empty for none
func (e *Engine) Selected() string {
	return e.selected
}

// Len returns the number of ingested points
func (e *Engine) Len() int {
	return len(e.order)
}

// Point returns a copy of one point
func (e *Engine) Point(id string) (Point, bool) {
	p, ok := e.points[id]
	if !ok {
		return Point{}, false
	}
	return *p, true
}

// Points returns copies of every point sorted by ID
func (e *Engine) Points() []Point {
	out := make([]Point, len(e.order))
	for i, p := range e.order {
		out[i] = *p
	}
	return out
}

// Zones returns the ingested zones in input order
func (e *Engine) Zones() []Zone {
	out := make([]Zone, len(e.zones))
	for i := range e.zones {
		out[i] = e.zones[i].Zone
	}
	return out
}

// Settled reports whether every point has reached its target
func (e *Engine) Settled() bool {
	for _, p := range e.order {
		if !p.settled {
			return false
		}
	}
	return true
}

// radius is the rendered dot radius for a projection
func (e *Engine) radius(p *Point, proj Projection) float64 {
	breath := 1 + parameter.BreathAmplitude*math.Sin(e.clock*parameter.BreathSpeed+p.Phase)
	return parameter.DotRadius * proj.Scale * e.cam.viewport.UnitY * breath * p.Hover
}

// color is the octant colour with the containing zone tint composited over it
func (e *Engine) color(p *Point) RGB {
	c := ClassColor(p.Class, p.Current)
	if p.Zone >= 0 && p.Zone < len(e.zones) {
		c = e.zones[p.Zone].Color.Over(c)
	}
	return c
}
