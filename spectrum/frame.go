package spectrum

import (
	"sort"

	"github.com/lixenwraith/reverie-spectrum/parameter"
	"github.com/lixenwraith/reverie-spectrum/vmath"
)

// ScreenPoint is a position on the host surface
type ScreenPoint struct {
	X, Y float64
}

// DrawPoint is one projected dreamer
type DrawPoint struct {
	ID       string
	Label    string
	X, Y     float64
	Depth    float64
	Radius   float64
	Color    RGB
	Class    Classification
	Zone     int
	Hovered  bool
	Selected bool
}

// DrawSphere is a projected sphere zone
type DrawSphere struct {
	Zone   int
	Name   string
	X, Y   float64
	Depth  float64
	Radius float64
	Color  RGBA
}

// DrawFace is a projected hull face
// Front is true when the outward normal faces the viewer
type DrawFace struct {
	Zone    int
	A, B, C ScreenPoint
	Depth   float64
	Color   RGBA
	Front   bool
}

// DrawAxis is one labelled half-axis from the origin
type DrawAxis struct {
	Name     string
	From, To ScreenPoint
	Depth    float64
	Positive bool
}

// Frame is everything a renderer needs for one frame
// Points and Faces are ordered back to front
type Frame struct {
	Viewport Viewport
	Points   []DrawPoint
	Spheres  []DrawSphere
	Faces    []DrawFace
	Axes     []DrawAxis
}

// LabelBox is the screen rectangle a renderer drew a label into
type LabelBox struct {
	ID         string
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside the box, edges inclusive
func (b LabelBox) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}

// Renderer draws a frame and reports where labels landed
// Boxes should be returned in draw order
type Renderer interface {
	Render(f Frame) []LabelBox
}

var axisDefs = [6]struct {
	name     string
	dir      vmath.Vec3
	positive bool
}{
	{"entropy", vmath.Vec3{1, 0, 0}, true},
	{"oblivion", vmath.Vec3{-1, 0, 0}, false},
	{"liberty", vmath.Vec3{0, 1, 0}, true},
	{"authority", vmath.Vec3{0, -1, 0}, false},
	{"receptive", vmath.Vec3{0, 0, 1}, true},
	{"skeptic", vmath.Vec3{0, 0, -1}, false},
}

// Frame projects the current state into a draw list
func (e *Engine) Frame() Frame {
	pr := e.cam.Projector()
	f := Frame{Viewport: e.cam.viewport}

	origin := pr.Project(vmath.Vec3{})
	f.Axes = make([]DrawAxis, 0, len(axisDefs))
	for _, a := range axisDefs {
		end := pr.Project(a.dir.Mul(parameter.AxisLength))
		f.Axes = append(f.Axes, DrawAxis{
			Name:     a.name,
			From:     ScreenPoint{origin.X, origin.Y},
			To:       ScreenPoint{end.X, end.Y},
			Depth:    end.Depth,
			Positive: a.positive,
		})
	}

	for i := range e.zones {
		zs := &e.zones[i]
		if !zs.valid {
			continue
		}
		switch zs.Kind {
		case ZoneSphere:
			c := pr.Project(zs.Center)
			f.Spheres = append(f.Spheres, DrawSphere{
				Zone:   i,
				Name:   zs.Name,
				X:      c.X,
				Y:      c.Y,
				Depth:  c.Depth,
				Radius: zs.Radius * c.Scale * e.cam.viewport.UnitY,
				Color:  zs.Color,
			})
		case ZoneHull:
			for _, face := range zs.faces {
				a, b, c := pr.Project(face.A), pr.Project(face.B), pr.Project(face.C)
				f.Faces = append(f.Faces, DrawFace{
					Zone:  i,
					A:     ScreenPoint{a.X, a.Y},
					B:     ScreenPoint{b.X, b.Y},
					C:     ScreenPoint{c.X, c.Y},
					Depth: (a.Depth + b.Depth + c.Depth) / 3,
					Color: zs.Color,
					Front: pr.Rotate(face.Normal).Z() < 0,
				})
			}
		}
	}
	sort.SliceStable(f.Faces, func(i, j int) bool {
		return f.Faces[i].Depth > f.Faces[j].Depth
	})
	sort.SliceStable(f.Spheres, func(i, j int) bool {
		return f.Spheres[i].Depth > f.Spheres[j].Depth
	})

	f.Points = make([]DrawPoint, 0, len(e.order))
	for _, p := range e.order {
		proj := pr.Project(p.Current)
		f.Points = append(f.Points, DrawPoint{
			ID:       p.ID,
			Label:    p.Label,
			X:        proj.X,
			Y:        proj.Y,
			Depth:    proj.Depth,
			Radius:   e.radius(p, proj),
			Color:    e.color(p),
			Class:    p.Class,
			Zone:     p.Zone,
			Hovered:  p.ID == e.hovered,
			Selected: p.ID == e.selected,
		})
	}
	// Painter's order, far to near; order is ID-sorted so ties stay stable
	sort.SliceStable(f.Points, func(i, j int) bool {
		return f.Points[i].Depth > f.Points[j].Depth
	})

	return f
}

// Draw hands the current frame to r and caches the label boxes it reports
func (e *Engine) Draw(r Renderer) Frame {
	f := e.Frame()
	boxes := r.Render(f)
	e.labels = append(e.labels[:0], boxes...)
	return f
}

// Labels returns the label boxes cached from the last Draw
func (e *Engine) Labels() []LabelBox {
	out := make([]LabelBox, len(e.labels))
	copy(out, e.labels)
	return out
}
