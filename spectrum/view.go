package spectrum

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lixenwraith/reverie-spectrum/parameter"
)

// ErrUnknownView is returned for a view outside the View enumeration
var ErrUnknownView = errors.New("unknown view")

// View is a canonical camera pose
type View uint8

const (
	// ViewDefault is the oblique 3D view, auto-rotate resumes on snap
	ViewDefault View = iota
	// ViewFront looks along +Z at the entropy/liberty plane
	ViewFront
	// ViewBack looks at the same plane from behind
	ViewBack
	// ViewRight looks at the receptive/liberty plane with receptive to the left
	ViewRight
	// ViewLeft looks at the receptive/liberty plane with receptive to the right
	ViewLeft
	// ViewTop looks down on the entropy/receptive plane, larger Z renders higher
	ViewTop
	// ViewBottom looks up at the entropy/receptive plane
	ViewBottom

	viewCount
)

type viewPose struct {
	name       string
	rotX, rotY float64
	autoRotate bool
}

var viewPoses = [viewCount]viewPose{
	ViewDefault: {"default", parameter.DefaultViewRotX, parameter.DefaultViewRotY, true},
	ViewFront:   {"front", 0, 0, false},
	ViewBack:    {"back", 0, math.Pi, false},
	ViewRight:   {"right", 0, 1.5 * math.Pi, false},
	ViewLeft:    {"left", 0, 0.5 * math.Pi, false},
	ViewTop:     {"top", -parameter.RotationLimit, 0, false},
	ViewBottom:  {"bottom", parameter.RotationLimit, 0, false},
}

func (v View) String() string {
	if v >= viewCount {
		return fmt.Sprintf("View(%d)", uint8(v))
	}
	return viewPoses[v].name
}

// Views returns every view in declaration order
func Views() []View {
	out := make([]View, viewCount)
	for i := range out {
		out[i] = View(i)
	}
	return out
}

// ParseView resolves a view by its name, case-insensitive
func ParseView(name string) (View, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, p := range viewPoses {
		if p.name == name {
			return View(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, name)
}

// SnapToView starts a transition toward the view pose
// Yaw follows the shorter direction around the circle
func (c *Camera) SnapToView(v View) error {
	if v >= viewCount {
		return fmt.Errorf("%w: %d", ErrUnknownView, uint8(v))
	}
	p := viewPoses[v]
	c.snapTo(p.rotX, p.rotY, parameter.ZoomDefault, p.autoRotate)
	return nil
}
