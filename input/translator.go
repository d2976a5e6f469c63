package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/reverie-spectrum/parameter"
	"github.com/lixenwraith/reverie-spectrum/spectrum"
)

// Controller is the engine surface driven by input, satisfied by *spectrum.Engine
type Controller interface {
	Drag(dx, dy, dtMs float64)
	EndDrag()
	ZoomBy(f float64)
	SnapToView(v spectrum.View) error
	SetPointer(x, y float64)
	ClearPointer()
	Click(x, y float64) spectrum.Hit
}

// Result reports what an event did
type Result struct {
	// Action is the bound key action, view and zoom actions are already applied
	Action Action
	// Hit is set when a click resolved
	Hit     spectrum.Hit
	Clicked bool
	Resize  bool
}

// Translator turns terminal events into engine calls
type Translator struct {
	ctl  Controller
	keys *KeyTable
	log  logrus.FieldLogger

	pressed        bool
	pressX, pressY int
	lastX, lastY   int
	lastAt         time.Time
	travel         int
}

// NewTranslator binds a controller and key table, nil keys uses DefaultKeyTable
func NewTranslator(ctl Controller, keys *KeyTable, log logrus.FieldLogger) *Translator {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Translator{ctl: ctl, keys: keys, log: log.WithField("component", "input")}
}

// Dragging reports whether button 1 is held
func (t *Translator) Dragging() bool {
	return t.pressed
}

// Handle dispatches one terminal event
func (t *Translator) Handle(ev tcell.Event) Result {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		return t.handleMouse(x, y, ev.Buttons(), ev.When())
	case *tcell.EventResize:
		t.ctl.ClearPointer()
		return Result{Resize: true}
	}
	return Result{}
}

func (t *Translator) handleKey(ev *tcell.EventKey) Result {
	a := t.keys.Lookup(ev)
	switch a {
	case ActionZoomIn:
		t.ctl.ZoomBy(parameter.ZoomStep)
	case ActionZoomOut:
		t.ctl.ZoomBy(1 / parameter.ZoomStep)
	default:
		if v, ok := a.View(); ok {
			if err := t.ctl.SnapToView(v); err != nil {
				t.log.WithError(err).Warn("view snap rejected")
			}
		}
	}
	return Result{Action: a}
}

func (t *Translator) handleMouse(x, y int, btn tcell.ButtonMask, at time.Time) Result {
	switch {
	case btn&tcell.WheelUp != 0:
		t.ctl.ZoomBy(parameter.ZoomStep)
		return Result{}
	case btn&tcell.WheelDown != 0:
		t.ctl.ZoomBy(1 / parameter.ZoomStep)
		return Result{}
	}

	px, py := cellCenter(x, y)

	if btn&tcell.Button1 != 0 {
		if !t.pressed {
			t.pressed = true
			t.pressX, t.pressY = x, y
			t.lastX, t.lastY = x, y
			t.lastAt = at
			t.travel = 0
			t.ctl.SetPointer(px, py)
			return Result{}
		}
		if x == t.lastX && y == t.lastY {
			return Result{}
		}

		dtMs := float64(at.Sub(t.lastAt)) / float64(time.Millisecond)
		dx := float64(x-t.lastX) * parameter.CellWidthPx
		dy := float64(y-t.lastY) * parameter.CellHeightPx
		t.ctl.Drag(dx, dy, dtMs)

		t.lastX, t.lastY, t.lastAt = x, y, at
		t.travel = max(t.travel, abs(x-t.pressX), abs(y-t.pressY))
		t.ctl.SetPointer(px, py)
		return Result{}
	}

	if !t.pressed {
		t.ctl.SetPointer(px, py)
		return Result{}
	}

	// Release
	t.pressed = false
	t.ctl.SetPointer(px, py)
	if float64(t.travel) >= parameter.TerminalClickSlop {
		t.ctl.EndDrag()
		return Result{}
	}
	h := t.ctl.Click(px, py)
	t.log.WithFields(logrus.Fields{"kind": h.Kind.String(), "id": h.Point.ID}).Debug("click")
	return Result{Hit: h, Clicked: true}
}

// cellCenter maps a terminal cell to the screen position renderers draw at
func cellCenter(x, y int) (float64, float64) {
	return float64(x) + 0.5, float64(y) + 0.5
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
