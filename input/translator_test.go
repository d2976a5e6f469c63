package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/reverie-spectrum/parameter"
	"github.com/lixenwraith/reverie-spectrum/spectrum"
)

type dragCall struct {
	dx, dy, dtMs float64
}

type fakeController struct {
	drags    []dragCall
	endDrags int
	zooms    []float64
	views    []spectrum.View
	pointer  [2]float64
	cleared  int
	clicks   [][2]float64
	hit      spectrum.Hit
}

func (f *fakeController) Drag(dx, dy, dtMs float64) { f.drags = append(f.drags, dragCall{dx, dy, dtMs}) }
func (f *fakeController) EndDrag()                  { f.endDrags++ }
func (f *fakeController) ZoomBy(z float64)          { f.zooms = append(f.zooms, z) }
func (f *fakeController) SetPointer(x, y float64)   { f.pointer = [2]float64{x, y} }
func (f *fakeController) ClearPointer()             { f.cleared++ }

func (f *fakeController) SnapToView(v spectrum.View) error {
	f.views = append(f.views, v)
	return nil
}

func (f *fakeController) Click(x, y float64) spectrum.Hit {
	f.clicks = append(f.clicks, [2]float64{x, y})
	return f.hit
}

var _ Controller = (*spectrum.Engine)(nil)

func newTranslator() (*Translator, *fakeController) {
	ctl := &fakeController{}
	return NewTranslator(ctl, nil, nil), ctl
}

func TestTranslatorViewKeys(t *testing.T) {
	tr, ctl := newTranslator()

	for r, want := range map[rune]spectrum.View{
		'0': spectrum.ViewDefault,
		'1': spectrum.ViewFront,
		'5': spectrum.ViewTop,
		'6': spectrum.ViewBottom,
	} {
		ctl.views = nil
		res := tr.Handle(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
		require.Len(t, ctl.views, 1, "key %q", r)
		assert.Equal(t, want, ctl.views[0], "key %q", r)
		v, ok := res.Action.View()
		assert.True(t, ok)
		assert.Equal(t, want, v)
	}
}

func TestTranslatorZoom(t *testing.T) {
	tr, ctl := newTranslator()

	tr.Handle(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone))
	tr.Handle(tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone))
	tr.Handle(tcell.NewEventMouse(10, 10, tcell.WheelUp, tcell.ModNone))
	tr.Handle(tcell.NewEventMouse(10, 10, tcell.WheelDown, tcell.ModNone))

	want := []float64{parameter.ZoomStep, 1 / parameter.ZoomStep, parameter.ZoomStep, 1 / parameter.ZoomStep}
	assert.Equal(t, want, ctl.zooms)
}

func TestTranslatorHostActions(t *testing.T) {
	tr, ctl := newTranslator()

	assert.Equal(t, ActionQuit, tr.Handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)).Action)
	assert.Equal(t, ActionQuit, tr.Handle(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)).Action)
	assert.Equal(t, ActionToggleLabels, tr.Handle(tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone)).Action)
	assert.Equal(t, ActionNone, tr.Handle(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)).Action)
	assert.Empty(t, ctl.views)
	assert.Empty(t, ctl.zooms)
}

func TestTranslatorDrag(t *testing.T) {
	tr, ctl := newTranslator()
	t0 := time.Unix(100, 0)

	tr.handleMouse(10, 5, tcell.Button1, t0)
	assert.True(t, tr.Dragging())
	assert.Empty(t, ctl.drags, "press alone does not rotate")

	tr.handleMouse(12, 5, tcell.Button1, t0.Add(32*time.Millisecond))
	tr.handleMouse(12, 5, tcell.Button1, t0.Add(40*time.Millisecond)) // same cell
	tr.handleMouse(12, 4, tcell.Button1, t0.Add(48*time.Millisecond))

	require.Len(t, ctl.drags, 2)
	assert.Equal(t, dragCall{2 * parameter.CellWidthPx, 0, 32}, ctl.drags[0])
	assert.Equal(t, dragCall{0, -parameter.CellHeightPx, 16}, ctl.drags[1])

	res := tr.handleMouse(12, 4, tcell.ButtonNone, t0.Add(60*time.Millisecond))
	assert.False(t, res.Clicked)
	assert.Equal(t, 1, ctl.endDrags)
	assert.Empty(t, ctl.clicks)
	assert.False(t, tr.Dragging())
}

func TestTranslatorClick(t *testing.T) {
	tr, ctl := newTranslator()
	ctl.hit = spectrum.Hit{Kind: spectrum.HitDot, Point: spectrum.Point{ID: "p1"}}
	t0 := time.Unix(100, 0)

	tr.handleMouse(7, 3, tcell.Button1, t0)
	res := tr.handleMouse(7, 3, tcell.ButtonNone, t0.Add(90*time.Millisecond))

	require.True(t, res.Clicked)
	assert.Equal(t, "p1", res.Hit.Point.ID)
	assert.Equal(t, [][2]float64{{7.5, 3.5}}, ctl.clicks)
	assert.Zero(t, ctl.endDrags)
}

func TestTranslatorHover(t *testing.T) {
	tr, ctl := newTranslator()

	tr.Handle(tcell.NewEventMouse(20, 8, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, [2]float64{20.5, 8.5}, ctl.pointer)
	assert.Empty(t, ctl.clicks, "motion without a press is not a click")

	res := tr.Handle(tcell.NewEventResize(100, 30))
	assert.True(t, res.Resize)
	assert.Equal(t, 1, ctl.cleared)
}
