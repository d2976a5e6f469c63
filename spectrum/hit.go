package spectrum

import (
	"math"
)

// HitKind distinguishes what a pointer landed on
type HitKind uint8

const (
	HitNone HitKind = iota
	// HitLabel is a click on a name, hosts open the profile
	HitLabel
	// HitDot is a click on a dot, hosts show the preview
	HitDot
)

func (k HitKind) String() string {
	switch k {
	case HitLabel:
		return "label"
	case HitDot:
		return "dot"
	}
	return "none"
}

// Hit is the result of HitTest
type Hit struct {
	Kind     HitKind
	Point    Point
	Distance float64
}

// HitTest resolves a screen position
// Label boxes from the last Draw are checked first, front-most wins. Otherwise the
// nearest dot whose distance is within its rendered radius plus tolerance is returned
func (e *Engine) HitTest(x, y float64) Hit {
	for i := len(e.labels) - 1; i >= 0; i-- {
		b := e.labels[i]
		if !b.Contains(x, y) {
			continue
		}
		if p, ok := e.points[b.ID]; ok {
			return Hit{Kind: HitLabel, Point: *p}
		}
	}

	if p, d, ok := e.nearestDot(x, y); ok {
		return Hit{Kind: HitDot, Point: *p, Distance: d}
	}
	return Hit{}
}

// Click resolves a screen position and updates the selection
// A miss clears the selection
func (e *Engine) Click(x, y float64) Hit {
	h := e.HitTest(x, y)
	if h.Kind == HitNone {
		e.selected = ""
	} else {
		e.selected = h.Point.ID
	}
	return h
}

func (e *Engine) dotAt(x, y float64) (*Point, bool) {
	p, _, ok := e.nearestDot(x, y)
	return p, ok
}

func (e *Engine) nearestDot(x, y float64) (*Point, float64, bool) {
	pr := e.cam.Projector()

	var best *Point
	bestDist := math.Inf(1)
	for _, p := range e.order {
		proj := pr.Project(p.Current)
		d := math.Hypot(proj.X-x, proj.Y-y)
		if d > e.radius(p, proj)+e.hitTolerance {
			continue
		}
		if d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, bestDist, best != nil
}
