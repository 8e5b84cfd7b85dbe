package gfx

import "iter"

// SurfaceImage is a read-only view of a composited surface.
type SurfaceImage struct {
	// Screen position of the surface's top-left corner.
	X, Y uint32

	Width, Height uint32
	Hidden        bool

	// Pixels holds Width*Height colors in row-major order.
	Pixels []Color
}

// Surface is implemented by anything that can be composited onto the
// framebuffer. View must invoke fn exactly once while keeping the surface
// contents stable.
type Surface interface {
	View(fn func(SurfaceImage))
}

// RenderFull composites surfaces onto the framebuffer using the painter's
// algorithm. The sequence must yield the bottom-most surface first. Hidden
// surfaces, transparent pixels and off-screen pixels are skipped.
func (p *Painter) RenderFull(surfaces iter.Seq[Surface]) {
	for s := range surfaces {
		s.View(p.blit)
	}
}

func (p *Painter) blit(img SurfaceImage) {
	if img.Hidden || img.X >= p.geom.Width || img.Y >= p.geom.Height {
		return
	}

	rOff, gOff, bOff := p.channelOffsets()
	for y := uint32(0); y < img.Height; y++ {
		screenY := img.Y + y
		if screenY >= p.geom.Height {
			break
		}

		row := img.Pixels[y*img.Width : (y+1)*img.Width]
		for x, c := range row {
			screenX := img.X + uint32(x)
			if screenX >= p.geom.Width {
				break
			}
			if c.Transparent() {
				continue
			}

			off := p.geom.Offset(screenX, screenY)
			p.fb[off+rOff] = c.R
			p.fb[off+gOff] = c.G
			p.fb[off+bOff] = c.B
		}
	}
}

// RenderPartial recomposites the w x h region at (x, y). The sequence must
// yield the top-most surface first. Every screen pixel in the region is
// written at most once, with the color of the top-most visible opaque
// surface pixel that covers it; pixels that no surface covers keep their
// previous contents. The result equals RenderFull restricted to the region.
func (p *Painter) RenderPartial(surfaces iter.Seq[Surface], x, y, w, h uint32) {
	if x >= p.geom.Width || y >= p.geom.Height || w == 0 || h == 0 {
		return
	}

	// Only the on-screen part of the region can ever be painted.
	w = min(w, p.geom.Width-x)
	h = min(h, p.geom.Height-y)

	total := w * h
	if uint32(cap(p.painted)) < total {
		p.painted = make([]bool, total)
	}
	p.painted = p.painted[:total]
	clear(p.painted)

	var (
		count            uint32
		rOff, gOff, bOff = p.channelOffsets()
	)

	paint := func(img SurfaceImage) {
		if img.Hidden {
			return
		}

		// Intersect the region with the surface, in surface coordinates.
		x0, y0 := subSat(x, img.X), subSat(y, img.Y)
		x1, y1 := min(subSat(x+w, img.X), img.Width), min(subSat(y+h, img.Y), img.Height)

		for sy := y0; sy < y1; sy++ {
			screenY := img.Y + sy
			for sx := x0; sx < x1; sx++ {
				screenX := img.X + sx

				c := img.Pixels[sy*img.Width+sx]
				idx := (screenY-y)*w + (screenX - x)
				if c.Transparent() || p.painted[idx] {
					continue
				}

				p.painted[idx] = true
				count++

				off := p.geom.Offset(screenX, screenY)
				p.fb[off+rOff] = c.R
				p.fb[off+gOff] = c.G
				p.fb[off+bOff] = c.B

				if count == total {
					return
				}
			}
		}
	}

	for s := range surfaces {
		s.View(paint)
		if count == total {
			return
		}
	}
}

func subSat(a, b uint32) uint32 {
	if a < b {
		return 0
	}
	return a - b
}
