package input

import (
	"strings"

	"github.com/lixenwraith/reverie-spectrum/spectrum"
)

// Action is a semantic command produced by a key
type Action uint8

const (
	// ActionNone unbinds a key in overrides
	ActionNone Action = iota

	// System
	ActionQuit
	ActionRefresh
	ActionPause

	// View selection, in spectrum.View order
	ActionViewDefault
	ActionViewFront
	ActionViewBack
	ActionViewRight
	ActionViewLeft
	ActionViewTop
	ActionViewBottom

	// Camera
	ActionZoomIn
	ActionZoomOut
	ActionToggleAutoRotate

	// Display
	ActionToggleLabels
	ActionToggleSound
	ActionClearSelection

	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:             "none",
	ActionQuit:             "quit",
	ActionRefresh:          "refresh",
	ActionPause:            "pause",
	ActionViewDefault:      "view_default",
	ActionViewFront:        "view_front",
	ActionViewBack:         "view_back",
	ActionViewRight:        "view_right",
	ActionViewLeft:         "view_left",
	ActionViewTop:          "view_top",
	ActionViewBottom:       "view_bottom",
	ActionZoomIn:           "zoom_in",
	ActionZoomOut:          "zoom_out",
	ActionToggleAutoRotate: "toggle_auto_rotate",
	ActionToggleLabels:     "toggle_labels",
	ActionToggleSound:      "toggle_sound",
	ActionClearSelection:   "clear_selection",
}

// actionRegistry maps canonical action names to actions
// Used by the keymap loader to resolve TOML action strings
var actionRegistry = func() map[string]Action {
	m := make(map[string]Action, actionCount)
	for a, name := range actionNames {
		m[name] = Action(a)
	}
	return m
}()

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// ActionByName resolves a canonical action name, case-insensitive
func ActionByName(name string) (Action, bool) {
	a, ok := actionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// View returns the camera view selected by a view action
func (a Action) View() (spectrum.View, bool) {
	if a < ActionViewDefault || a > ActionViewBottom {
		return 0, false
	}
	return spectrum.ViewDefault + spectrum.View(a-ActionViewDefault), true
}
