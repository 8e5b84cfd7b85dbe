package gfx

import (
	"math"
	"testing"
)

func TestDrawLine(t *testing.T) {
	specs := []struct {
		x0, y0, x1, y1 uint32
		exp            string
	}{
		{
			0, 0, 10, 4,
			`
RR.........
..RR.......
....RRR....
.......RR..
.........RR
`,
		},
		// Endpoints swapped.
		{
			10, 4, 0, 0,
			`
RR.........
..RR.......
....RRR....
.......RR..
.........RR
`,
		},
		// Rising low slope.
		{
			0, 4, 10, 0,
			`
.........RR
.......RR..
....RRR....
..RR.......
RR.........
`,
		},
		// Steep.
		{
			1, 0, 3, 4,
			`
.R.........
.R.........
..R........
..R........
...R.......
`,
		},
		// Steep with decreasing x.
		{
			3, 0, 1, 4,
			`
...R.......
...R.......
..R........
..R........
.R.........
`,
		},
		// Horizontal, drawn right to left.
		{
			7, 2, 3, 2,
			`
...........
...........
...RRRRR...
...........
...........
`,
		},
		// Vertical, drawn bottom to top.
		{
			5, 3, 5, 1,
			`
...........
.....R.....
.....R.....
.....R.....
...........
`,
		},
		// Diagonal.
		{
			0, 0, 4, 4,
			`
R..........
.R.........
..R........
...R.......
....R......
`,
		},
	}

	for specIndex, spec := range specs {
		p := newTestPainter(t, 11, 5, PixelFormatRGB)
		p.DrawLine(spec.x0, spec.y0, spec.x1, spec.y1, Red)

		exp := spec.exp[1:]
		if got := dumpFramebuffer(p); got != exp {
			t.Errorf("[spec %d] unexpected line (%d,%d)-(%d,%d):\n%s",
				specIndex, spec.x0, spec.y0, spec.x1, spec.y1, diffFrameBuffer(exp, got))
		}
	}
}

func TestDrawLinePointCount(t *testing.T) {
	p := newTestPainter(t, 11, 5, PixelFormatRGB)
	p.DrawLine(0, 0, 10, 4, Red)

	var count int
	for _, ch := range dumpFramebuffer(p) {
		if ch == 'R' {
			count++
		}
	}

	if count != 11 {
		t.Fatalf("expected 11 pixels to be drawn; got %d", count)
	}
}

func TestDrawLineClipped(t *testing.T) {
	p := newTestPainter(t, 4, 2, PixelFormatRGB)
	p.DrawLine(2, 0, 20, 9, Red)

	assertFramebuffer(t, p, `
..RR
....
`)
}

func TestDrawLineFullRange(t *testing.T) {
	specs := []struct {
		x0, y0, x1, y1 uint32
		exp            string
	}{
		// Axis-aligned lines spanning the whole coordinate range.
		{0, 0, 0, math.MaxUint32, `
R...
R...
`},
		{math.MaxUint32, 1, 0, 1, `
....
RRRR
`},
		// Shallow diagonal leaving the screen on the right.
		{0, 0, math.MaxUint32, 1, `
RRRR
....
`},
		// Steep diagonal leaving the screen at the bottom.
		{1, 0, 2, math.MaxUint32, `
.R..
.R..
`},
	}

	for specIndex, spec := range specs {
		p := newTestPainter(t, 4, 2, PixelFormatRGB)
		p.DrawLine(spec.x0, spec.y0, spec.x1, spec.y1, Red)

		exp := spec.exp[1:]
		if got := dumpFramebuffer(p); got != exp {
			t.Errorf("[spec %d] unexpected line (%d,%d)-(%d,%d):\n%s",
				specIndex, spec.x0, spec.y0, spec.x1, spec.y1, diffFrameBuffer(exp, got))
		}
	}
}
