package parameter

// Terminal host geometry
const (
	// CellWidthPx and CellHeightPx approximate one terminal cell in pixels
	// Mouse travel in cells is scaled by these before reaching the camera
	CellWidthPx  = 8.0
	CellHeightPx = 16.0

	// WorldSpan is the world extent mapped onto the terminal height at zoom 1
	WorldSpan = 320.0

	// TerminalHitTolerance replaces HitTolerance when positions are in cells
	TerminalHitTolerance = 1.5

	// TerminalClickSlop is the travel in cells below which a press and release is a click
	TerminalClickSlop = 1.0

	// LabelMaxWidth truncates long display names, in cells
	LabelMaxWidth = 24
)
