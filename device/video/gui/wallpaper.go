package gui

import (
	"image"

	"github.com/fogleman/gg"

	"kdisplay/device/video/gfx"
	"kdisplay/device/video/layer"
)

// WallpaperZIndex places the wallpaper below every other layer.
const WallpaperZIndex = 0

// Wallpaper rasterizes the desktop wallpaper for a w x h screen. Every
// returned pixel is opaque.
func Wallpaper(w, h uint32) []gfx.Color {
	if w == 0 || h == 0 {
		return nil
	}

	dc := gg.NewContext(int(w), int(h))
	dc.SetColor(gfx.DesktopBackground)
	dc.Clear()

	cx, cy := float64(w)/2, float64(h)/2
	r := float64(min(w, h)) / 4
	dc.SetColor(gfx.WindowBorder)
	dc.SetLineWidth(2)
	for i := 0; i < 3; i++ {
		dc.DrawCircle(cx, cy, r*float64(i+1)/3)
		dc.Stroke()
	}

	return toColors(dc.Image(), w, h)
}

func toColors(img image.Image, w, h uint32) []gfx.Color {
	out := make([]gfx.Color, 0, int(w)*int(h))
	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < int(h); y++ {
			row := rgba.Pix[y*rgba.Stride:]
			for x := 0; x < int(w); x++ {
				out = append(out, gfx.Color{R: row[x*4], G: row[x*4+1], B: row[x*4+2], A: 0xff})
			}
		}
		return out
	}

	b := img.Bounds()
	for y := 0; y < int(h); y++ {
		for x := 0; x < int(w); x++ {
			c := gfx.FromColor(img.At(b.Min.X+x, b.Min.Y+y))
			c.A = 0xff
			out = append(out, c)
		}
	}
	return out
}

// NewWallpaper creates a screen-sized layer at the origin holding the
// wallpaper. The layer is not registered.
func NewWallpaper(w, h uint32) *layer.Handle {
	hd := layer.New(w, h, 0, 0, WallpaperZIndex)
	pixels := Wallpaper(w, h)
	hd.Update(func(l *layer.Layer) {
		_ = l.DrawBitmap(0, 0, w, h, pixels)
	})
	return hd
}
