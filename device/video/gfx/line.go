package gfx

import "math"

// DrawLine draws a one pixel wide line between (x0, y0) and (x1, y1), both
// endpoints included. Axis-aligned lines are drawn as rectangles anchored at
// the smaller coordinate; other lines use integer Bresenham.
func (p *Painter) DrawLine(x0, y0, x1, y1 uint32, c Color) {
	dx, dy := absDiff(x0, x1), absDiff(y0, y1)

	switch {
	case x0 == x1:
		p.DrawRect(x0, min(y0, y1), 1, span(dy), c)
	case y0 == y1:
		p.DrawRect(min(x0, x1), y0, span(dx), 1, c)
	case dy < dx:
		if x0 > x1 {
			x0, y0, x1, y1 = x1, y1, x0, y0
		}
		p.drawLineLow(x0, y0, x1, y1, c)
	default:
		if y0 > y1 {
			x0, y0, x1, y1 = x1, y1, x0, y0
		}
		p.drawLineHigh(x0, y0, x1, y1, c)
	}
}

// drawLineLow handles lines with a slope in [-1, 1]; x0 <= x1.
func (p *Painter) drawLineLow(x0, y0, x1, y1 uint32, c Color) {
	var (
		dx      = int64(x1 - x0)
		dy      = int64(absDiff(y0, y1))
		inverse = y1 < y0
		d       = 2*dy - dx
		y       = y0
	)

	for x := x0; x < p.geom.Width; x++ {
		p.DrawPixel(x, y, c)
		if x == x1 {
			return
		}

		if d > 0 {
			if inverse {
				y--
			} else {
				y++
			}
			d += 2 * (dy - dx)
		} else {
			d += 2 * dy
		}
	}
}

// drawLineHigh handles steep lines; y0 <= y1.
func (p *Painter) drawLineHigh(x0, y0, x1, y1 uint32, c Color) {
	var (
		dy      = int64(y1 - y0)
		dx      = int64(absDiff(x0, x1))
		inverse = x1 < x0
		d       = 2*dx - dy
		x       = x0
	)

	for y := y0; y < p.geom.Height; y++ {
		p.DrawPixel(x, y, c)
		if y == y1 {
			return
		}

		if d > 0 {
			if inverse {
				x--
			} else {
				x++
			}
			d += 2 * (dx - dy)
		} else {
			d += 2 * dx
		}
	}
}

// span returns the number of pixels covered by a distance of d, saturated
// at the largest representable length.
func span(d uint32) uint32 {
	if d == math.MaxUint32 {
		return d
	}
	return d + 1
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
