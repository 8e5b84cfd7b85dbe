package gfx

import (
	"bytes"
	"fmt"
	"iter"
	"kdisplay/kernel/sync"
	"strings"
	"testing"
)

var blue = Hex(0x0000ff)

// legend maps the colors used by the tests to the characters printed in
// framebuffer dumps.
var legend = map[uint32]byte{
	0x000000: '.',
	0xfa4b4b: 'R',
	0x0000ff: 'B',
	0x12b76a: 'G',
	0xffffff: 'W',
	0x202020: 'D',
}

func newTestPainter(t *testing.T, w, h uint32, format PixelFormat) *Painter {
	t.Helper()

	geom := Geometry{Width: w, Height: h, Stride: w, BytesPerPixel: 4, Format: format}
	p, err := NewPainter(make([]byte, geom.Size()), geom)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// dumpFramebuffer renders the visible part of the painter's framebuffer as
// one line of legend characters per pixel row.
func dumpFramebuffer(p *Painter) string {
	var buf bytes.Buffer
	rOff, gOff, bOff := p.channelOffsets()

	for y := uint32(0); y < p.geom.Height; y++ {
		for x := uint32(0); x < p.geom.Width; x++ {
			off := p.geom.Offset(x, y)
			rgb := uint32(p.fb[off+rOff])<<16 | uint32(p.fb[off+gOff])<<8 | uint32(p.fb[off+bOff])
			ch, ok := legend[rgb]
			if !ok {
				ch = '?'
			}
			buf.WriteByte(ch)
		}
		buf.WriteByte('\n')
	}

	return buf.String()
}

func diffFrameBuffer(exp, got string) string {
	expDump := strings.Split(strings.TrimSpace(exp), "\n")
	gotDump := strings.Split(strings.TrimSpace(got), "\n")

	maxLines := max(len(expDump), len(gotDump))

	var buf bytes.Buffer
	var left, right string

	buf.WriteString("exp:")
	buf.WriteString(strings.Repeat(" ", max(len(expDump[0])-4, 0)))
	buf.WriteString(" | got:\n")

	for line := 0; line < maxLines; line++ {
		left, right = "", ""
		if line < len(expDump) {
			left = expDump[line]
		}
		if line < len(gotDump) {
			right = gotDump[line]
		}

		fmt.Fprintf(&buf, "%04d %s | %s\n", line, left, right)
	}

	return buf.String()
}

func assertFramebuffer(t *testing.T, p *Painter, exp string) {
	t.Helper()

	exp = strings.TrimSpace(exp) + "\n"
	if got := dumpFramebuffer(p); got != exp {
		t.Fatalf("unexpected frame buffer contents:\n%s", diffFrameBuffer(exp, got))
	}
}

// testSurface is a minimal Surface backed by a pixel slice.
type testSurface struct {
	img   SurfaceImage
	views int
}

func newTestSurface(x, y, w, h uint32, c Color) *testSurface {
	pixels := make([]Color, w*h)
	for i := range pixels {
		pixels[i] = c
	}

	return &testSurface{img: SurfaceImage{X: x, Y: y, Width: w, Height: h, Pixels: pixels}}
}

func (s *testSurface) View(fn func(SurfaceImage)) {
	s.views++
	fn(s.img)
}

func (s *testSurface) set(x, y uint32, c Color) {
	s.img.Pixels[y*s.img.Width+x] = c
}

// bottomUp yields surfaces in slice order.
func bottomUp(surfaces ...*testSurface) iter.Seq[Surface] {
	return func(yield func(Surface) bool) {
		for _, s := range surfaces {
			if !yield(s) {
				return
			}
		}
	}
}

// topDown yields surfaces in reverse slice order.
func topDown(surfaces ...*testSurface) iter.Seq[Surface] {
	return func(yield func(Surface) bool) {
		for i := len(surfaces) - 1; i >= 0; i-- {
			if !yield(surfaces[i]) {
				return
			}
		}
	}
}

func resetGlobalPainter() {
	screenPainter = &sync.OnceCell[*Painter]{}
}
