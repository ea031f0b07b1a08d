package draw

import (
	"math"

	"github.com/BeatGlow/ssd1306/pixel"
)

// Rect draws a filled rectangle.
func Rect(dst pixel.Canvas, x, y, w, h int) {
	var (
		x1 = min(x+w, dst.Width())
		y1 = min(y+h, dst.Height())
	)
	for cx := max(x, 0); cx < x1; cx++ {
		for cy := max(y, 0); cy < y1; cy++ {
			dst.DrawPixel(cx, cy)
		}
	}
}

// EraseRect clears a rectangle.
func EraseRect(dst pixel.Canvas, x, y, w, h int) {
	var (
		x1 = min(x+w, dst.Width())
		y1 = min(y+h, dst.Height())
	)
	for cx := max(x, 0); cx < x1; cx++ {
		for cy := max(y, 0); cy < y1; cy++ {
			dst.ErasePixel(cx, cy)
		}
	}
}

// RectOutline draws the outline of a rectangle with lines of the given thickness.
//
// The right and bottom bars are drawn outside of the w by h box: the right bar starts at
// x+w and the bottom bar at y+h, and both are extended by thickness so they meet in the
// corner. The outline therefore covers (w+thickness) by (h+thickness) pixels.
func RectOutline(dst pixel.Canvas, x, y, w, h, thickness int) {
	Rect(dst, x, y, w, thickness)
	Rect(dst, x, y, thickness, h)
	Rect(dst, x+w, y, thickness, h+thickness)
	Rect(dst, x, y+h, w+thickness, thickness)
}

// RoundedRect draws the outline of a w by h rectangle with radius pixels rounded corners.
func RoundedRect(dst pixel.Canvas, x, y, w, h, radius int) {
	r := min(radius, w/2, h/2)
	if r <= 0 {
		RectOutline(dst, x, y, w-1, h-1, 1)
		return
	}
	Line(dst, x+r, y, x+w-r-1, y)
	Line(dst, x+r, y+h-1, x+w-r-1, y+h-1)
	Line(dst, x, y+r, x, y+h-r-1)
	Line(dst, x+w-1, y+r, x+w-1, y+h-r-1)
	roundedCorner(dst, x+r, y+r, r, 1)
	roundedCorner(dst, x+w-r-1, y+r, r, 2)
	roundedCorner(dst, x+w-r-1, y+h-r-1, r, 4)
	roundedCorner(dst, x+r, y+h-r-1, r, 8)
}

func roundedCorner(dst pixel.Canvas, x0, y0, radius, quadrant int) {
	var (
		f    = 1 - radius
		ddFx = 1
		ddFy = -2 * radius
		x    = 0
		y    = radius
	)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}

		x++
		ddFx += 2
		f += ddFx

		if quadrant&4 != 0 {
			plot(dst, x0+x, y0+y)
			plot(dst, x0+y, y0+x)
		}
		if quadrant&2 != 0 {
			plot(dst, x0+x, y0-y)
			plot(dst, x0+y, y0-x)
		}
		if quadrant&8 != 0 {
			plot(dst, x0-y, y0+x)
			plot(dst, x0-x, y0+y)
		}
		if quadrant&1 != 0 {
			plot(dst, x0-y, y0-x)
			plot(dst, x0-x, y0-y)
		}
	}
}

// Line draws a line between (x0, y0) and (x1, y1), both ends included.
func Line(dst pixel.Canvas, x0, y0, x1, y1 int) {
	var (
		dx     = abs(x1 - x0)
		dy     = abs(y1 - y0)
		sx, sy = -1, -1
		err    = -dy / 2
	)
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	if dx > dy {
		err = dx / 2
	}

	for x0 != x1 || y0 != y1 {
		plot(dst, x0, y0)

		e2 := err
		if e2 > -dx {
			err -= dy
			x0 += sx
		}
		if e2 < dy {
			err += dx
			y0 += sy
		}
	}
	plot(dst, x1, y1)
}

// Circle draws a circle approximated by a polygon with quality sides. Vertices are
// truncated to whole pixels.
func Circle(dst pixel.Canvas, cx, cy int, radius float64, quality int) {
	if quality <= 0 {
		return
	}

	var (
		step  = 2 * math.Pi / float64(quality)
		lastX = int(float64(cx) + radius)
		lastY = cy
	)
	for i := 1; i <= quality; i++ {
		a := step * float64(i)
		x := int(float64(cx) + math.Cos(a)*radius)
		y := int(float64(cy) + math.Sin(a)*radius)
		Line(dst, lastX, lastY, x, y)
		lastX, lastY = x, y
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
