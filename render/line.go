package render

import (
	"math"
)

// maxLineSteps bounds work for segments projected far off screen
const maxLineSteps = 4096

// line walks integer cells from (x0, y0) to (x1, y1), Bresenham
// plot receives the step index so callers can dash the line
func line(x0, y0, x1, y1 int, plot func(x, y, step int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for step := 0; step < maxLineSteps; step++ {
		plot(x0, y0, step)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// ellipse samples an outline of radii rx, ry around (cx, cy)
// The sample count is a multiple of 4 and quadrant starts are exact, so the
// four extremes are always plotted
func ellipse(cx, cy, rx, ry float64, plot func(x, y int)) {
	if rx <= 0 || ry <= 0 {
		return
	}
	// Enough samples that adjacent points land in neighbouring cells
	quarter := int(math.Ceil(math.Pi * math.Max(rx, ry)))
	quarter = min(max(quarter, 2), maxLineSteps/4)
	lastX, lastY := math.MinInt, math.MinInt
	for q := range 4 {
		for i := range quarter {
			cos, sin := quadrantStart[q][0], quadrantStart[q][1]
			if i > 0 {
				a := math.Pi/2*float64(q) + math.Pi/2*float64(i)/float64(quarter)
				cos, sin = math.Cos(a), math.Sin(a)
			}
			x := cell(cx + rx*cos)
			y := cell(cy + ry*sin)
			if x == lastX && y == lastY {
				continue
			}
			plot(x, y)
			lastX, lastY = x, y
		}
	}
}

// quadrantStart is cos and sin at 0, π/2, π and 3π/2
var quadrantStart = [4][2]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// cell maps a screen coordinate to the cell containing it
func cell(v float64) int {
	if math.IsNaN(v) {
		return math.MinInt32
	}
	return int(math.Floor(math.Max(math.Min(v, math.MaxInt32), math.MinInt32)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
