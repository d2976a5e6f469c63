package render

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/reverie-spectrum/parameter"
	"github.com/lixenwraith/reverie-spectrum/spectrum"
)

// HUD is the status line content
type HUD struct {
	View     string
	Points   int
	Selected string
	Status   string
	Paused   bool
	Muted    bool
}

// TerminalRenderer draws engine frames onto a tcell screen
// The bottom row is reserved for the HUD
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int

	showLabels bool
	hud        HUD
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	r := &TerminalRenderer{screen: screen, showLabels: true}
	r.UpdateDimensions()
	return r
}

// UpdateDimensions re-reads the screen size after a resize
func (r *TerminalRenderer) UpdateDimensions() {
	r.width, r.height = r.screen.Size()
}

// Viewport is the drawing surface in cells for the engine
// Cells are roughly twice as tall as wide, UnitX compensates
func (r *TerminalRenderer) Viewport() spectrum.Viewport {
	h := float64(max(r.height-1, 1))
	unit := h / parameter.WorldSpan
	return spectrum.Viewport{
		Width:  float64(r.width),
		Height: h,
		UnitX:  unit * parameter.CellHeightPx / parameter.CellWidthPx,
		UnitY:  unit,
	}
}

// SetLabels toggles the name labels, hovered and selected points keep theirs
func (r *TerminalRenderer) SetLabels(on bool) {
	r.showLabels = on
}

// Labels reports whether all labels are drawn
func (r *TerminalRenderer) Labels() bool {
	return r.showLabels
}

// SetHUD replaces the status line content
func (r *TerminalRenderer) SetHUD(h HUD) {
	r.hud = h
}

// Render draws one frame and shows it
func (r *TerminalRenderer) Render(f spectrum.Frame) []spectrum.LabelBox {
	r.screen.SetStyle(textStyle(RgbLabel))
	r.screen.Clear()

	r.drawAxes(f.Axes)
	r.drawFaces(f.Faces, false)
	r.drawSpheres(f.Spheres)
	r.drawFaces(f.Faces, true)
	r.drawPoints(f.Points)
	boxes := r.drawLabels(f.Points)
	r.drawHUD()

	r.screen.Show()
	return boxes
}

// set writes a cell if it is inside the drawing area
func (r *TerminalRenderer) set(x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height-1 {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

// drawText writes s from (x, y) and returns the cells used
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	col := x
	for _, ch := range s {
		r.set(col, y, ch, style)
		col += runewidth.RuneWidth(ch)
	}
	return col - x
}

func (r *TerminalRenderer) drawAxes(axes []spectrum.DrawAxis) {
	// Far half-axes first so the near ones overwrite at the origin
	sorted := slices.Clone(axes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Depth > sorted[j].Depth })

	for _, a := range sorted {
		c := RgbAxisNeg
		if a.Positive {
			c = RgbAxisPos
		}
		style := textStyle(c)
		line(cell(a.From.X), cell(a.From.Y), cell(a.To.X), cell(a.To.Y), func(x, y, step int) {
			if step%2 == 0 {
				r.set(x, y, '·', style)
			}
		})
		r.drawText(cell(a.To.X), cell(a.To.Y), a.Name, textStyle(RgbAxisLabel).Dim(!a.Positive))
	}
}

func (r *TerminalRenderer) drawFaces(faces []spectrum.DrawFace, front bool) {
	for _, f := range faces {
		if f.Front != front {
			continue
		}
		strength := backFaceStrength
		ch := '·'
		if front {
			strength = frontFaceStrength
			ch = '•'
		}
		style := textStyle(lineColor(f.Color, strength))
		plot := func(x, y, _ int) { r.set(x, y, ch, style) }
		edges := [3][2]spectrum.ScreenPoint{{f.A, f.B}, {f.B, f.C}, {f.C, f.A}}
		for _, e := range edges {
			line(cell(e[0].X), cell(e[0].Y), cell(e[1].X), cell(e[1].Y), plot)
		}
	}
}

func (r *TerminalRenderer) drawSpheres(spheres []spectrum.DrawSphere) {
	vp := r.Viewport()
	aspect := vp.UnitX / vp.UnitY
	for _, s := range spheres {
		style := textStyle(lineColor(s.Color, sphereStrength))
		ellipse(s.X, s.Y, s.Radius*aspect, s.Radius, func(x, y int) {
			r.set(x, y, '∙', style)
		})
		if s.Name != "" {
			r.drawText(cell(s.X)-runewidth.StringWidth(s.Name)/2, cell(s.Y-s.Radius)-1, s.Name, style.Italic(true))
		}
	}
}

// dotGlyph picks a glyph for a radius in cells
func dotGlyph(radius float64) rune {
	switch {
	case radius < 0.45:
		return '·'
	case radius < 0.8:
		return '•'
	default:
		return '●'
	}
}

func (r *TerminalRenderer) drawPoints(points []spectrum.DrawPoint) {
	vp := r.Viewport()
	aspect := vp.UnitX / vp.UnitY
	for _, p := range points {
		style := textStyle(p.Color).Bold(p.Hovered)
		cx, cy := cell(p.X), cell(p.Y)

		// Large dots fill their footprint
		if p.Radius >= 1.5 {
			rx, ry := p.Radius*aspect, p.Radius
			y0, y1 := max(cell(p.Y-ry), 0), min(cell(p.Y+ry), r.height-2)
			x0, x1 := max(cell(p.X-rx), 0), min(cell(p.X+rx), r.width-1)
			for y := y0; y <= y1; y++ {
				for x := x0; x <= x1; x++ {
					nx := (float64(x) + 0.5 - p.X) / rx
					ny := (float64(y) + 0.5 - p.Y) / ry
					if nx*nx+ny*ny <= 1 {
						r.set(x, y, '█', style)
					}
				}
			}
		}
		r.set(cx, cy, dotGlyph(p.Radius), style)

		if p.Selected {
			sel := textStyle(RgbSelected).Bold(true)
			off := int(math.Ceil(p.Radius*aspect)) + 1
			r.set(cx-off, cy, '[', sel)
			r.set(cx+off, cy, ']', sel)
		}
	}
}

// drawLabels places names to the right of their dots, back to front
// Returned boxes are in draw order so the last box is front-most
func (r *TerminalRenderer) drawLabels(points []spectrum.DrawPoint) []spectrum.LabelBox {
	vp := r.Viewport()
	aspect := vp.UnitX / vp.UnitY
	var boxes []spectrum.LabelBox
	for _, p := range points {
		if p.Label == "" || (!r.showLabels && !p.Hovered && !p.Selected) {
			continue
		}
		text := runewidth.Truncate(p.Label, parameter.LabelMaxWidth, "…")
		x := cell(p.X) + int(math.Ceil(p.Radius*aspect)) + 2
		y := cell(p.Y)
		if y < 0 || y >= r.height-1 || x >= r.width {
			continue
		}

		c := RgbLabel
		if p.Selected {
			c = RgbSelected
		}
		style := textStyle(c).Bold(p.Hovered || p.Selected).Underline(p.Hovered)
		w := r.drawText(x, y, text, style)
		boxes = append(boxes, spectrum.LabelBox{
			ID: p.ID,
			X:  float64(x),
			Y:  float64(y),
			W:  float64(w),
			H:  1,
		})
	}
	return boxes
}

func (r *TerminalRenderer) drawHUD() {
	y := r.height - 1
	if y < 0 {
		return
	}
	bg := RgbHUDBg
	if r.hud.Paused {
		bg = RgbHUDPaused
	}
	style := tcell.StyleDefault.Foreground(tcellColor(RgbHUDText)).Background(tcellColor(bg))

	parts := []string{fmt.Sprintf(" view: %s", r.hud.View), fmt.Sprintf("%d dreamers", r.hud.Points)}
	if r.hud.Selected != "" {
		parts = append(parts, "selected: "+r.hud.Selected)
	}
	if r.hud.Paused {
		parts = append(parts, "paused")
	}
	if r.hud.Muted {
		parts = append(parts, "muted")
	}
	if r.hud.Status != "" {
		parts = append(parts, r.hud.Status)
	}
	text := runewidth.Truncate(strings.Join(parts, " │ "), r.width, "…")
	text = runewidth.FillRight(text, r.width)

	col := 0
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
}
