package gui

import (
	"strings"
	"testing"

	"kdisplay/device/video/font"
	"kdisplay/device/video/gfx"
	"kdisplay/device/video/layer"
)

func dumpIcon(l *layer.Layer, x, y, w, h uint32) string {
	var buf strings.Builder
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			switch c := l.At(i, j); c {
			case gfx.White:
				buf.WriteByte('#')
			case gfx.WindowBorder:
				buf.WriteByte('.')
			default:
				buf.WriteByte('?')
			}
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

func TestIconBitmap(t *testing.T) {
	ic := Icon{
		Width:            2,
		Height:           2,
		TransparentIndex: 1,
		Palette:          []gfx.Color{gfx.Red, gfx.Green, gfx.White},
		Data:             []uint8{0, 1, 2, 7},
	}

	exp := []gfx.Color{gfx.Red, gfx.Transparent, gfx.White, gfx.Transparent}
	got := ic.Bitmap()
	for i := range exp {
		if got[i] != exp[i] {
			t.Errorf("[pixel %d] expected %v; got %v", i, exp[i], got[i])
		}
	}

	for _, ic := range []Icon{MinimizeIcon, CloseIcon} {
		if got := uint32(len(ic.Data)); got != ic.Width*ic.Height {
			t.Errorf("expected icon data to contain %d entries; got %d", ic.Width*ic.Height, got)
		}
	}
}

func TestDrawWindow(t *testing.T) {
	hd := layer.New(60, 40, 0, 0, 1)

	var err error
	hd.Update(func(l *layer.Layer) {
		l.SetFont(nil)
		if kerr := DrawWindow(l, "ignored"); kerr != nil {
			err = kerr
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	specs := []struct {
		x, y uint32
		exp  gfx.Color
	}{
		// title bar
		{0, 0, gfx.WindowBorder},
		{59, 24, gfx.WindowBorder},
		{30, 12, gfx.WindowBorder},
		// borders
		{0, 25, gfx.WindowBorder},
		{59, 39, gfx.WindowBorder},
		{0, 39, gfx.WindowBorder},
		{30, 39, gfx.WindowBorder},
		// body
		{1, 25, gfx.DesktopBackground},
		{58, 38, gfx.DesktopBackground},
		{30, 30, gfx.DesktopBackground},
		// minimize icon bar
		{10, 12, gfx.White},
		{18, 12, gfx.White},
		{9, 12, gfx.WindowBorder},
		// close icon cross
		{41, 8, gfx.White},
		{45, 12, gfx.White},
	}

	hd.Update(func(l *layer.Layer) {
		for specIndex, spec := range specs {
			if got := l.At(spec.x, spec.y); got != spec.exp {
				t.Errorf("[spec %d] expected pixel (%d, %d) to be %v; got %v", specIndex, spec.x, spec.y, spec.exp, got)
			}
		}

		exp := strings.Join([]string{
			"...........",
			".#.......#.",
			"..#.....#..",
			"...#...#...",
			"....#.#....",
			".....#.....",
			"....#.#....",
			"...#...#...",
			"..#.....#..",
			".#.......#.",
			"...........",
		}, "\n") + "\n"
		if got := dumpIcon(l, 40, 7, 11, 11); got != exp {
			t.Errorf("unexpected close icon:\nexp:\n%s\ngot:\n%s", exp, got)
		}
	})
}

func TestDrawWindowTitle(t *testing.T) {
	hd := layer.New(80, 30, 0, 0, 1)

	// With the fixed-width test font only the glyphs ending before the
	// close icon at x=60 are drawn.
	var adv []uint32
	hd.Update(func(l *layer.Layer) {
		l.SetFont(blockFont{})
		if err := DrawWindow(l, "abcdefgh"); err != nil {
			t.Fatal(err)
		}

		for x := uint32(titleX); x < 64; x += 8 {
			if l.At(x, 4) == gfx.White {
				adv = append(adv, x)
			}
		}
	})

	if exp := []uint32{28, 36, 44, 52}; !equalUint32(adv, exp) {
		t.Fatalf("expected glyphs at %v; got %v", exp, adv)
	}
}

func TestDrawWindowTooSmall(t *testing.T) {
	specs := []struct {
		w, h uint32
	}{
		{55, 30},
		{56, 29},
		{10, 10},
	}

	for specIndex, spec := range specs {
		hd := layer.New(spec.w, spec.h, 0, 0, 1)
		hd.Update(func(l *layer.Layer) {
			if err := DrawWindow(l, "x"); err != ErrWindowTooSmall {
				t.Errorf("[spec %d] expected ErrWindowTooSmall; got %v", specIndex, err)
			}
			if got := l.At(0, 0); !got.Transparent() {
				t.Errorf("[spec %d] expected layer to remain untouched", specIndex)
			}
		})

		if _, err := NewWindow(spec.w, spec.h, 0, 0, 1, "x"); err != ErrWindowTooSmall {
			t.Errorf("[spec %d] expected NewWindow to return ErrWindowTooSmall; got %v", specIndex, err)
		}
	}

	hd, err := NewWindow(56, 30, 5, 6, 3, "")
	if err != nil {
		t.Fatal(err)
	}
	if x, y, w, h := hd.Bounds(); x != 5 || y != 6 || w != 56 || h != 30 {
		t.Fatalf("unexpected window bounds (%d, %d, %d, %d)", x, y, w, h)
	}
}

func TestWallpaper(t *testing.T) {
	if got := Wallpaper(0, 10); got != nil {
		t.Fatalf("expected no pixels for an empty screen; got %d", len(got))
	}

	pixels := Wallpaper(64, 48)
	if got := len(pixels); got != 64*48 {
		t.Fatalf("expected %d pixels; got %d", 64*48, got)
	}

	var background, other int
	for i, c := range pixels {
		if c.Transparent() {
			t.Fatalf("expected pixel %d to be opaque", i)
		}
		if c == gfx.DesktopBackground {
			background++
		} else {
			other++
		}
	}

	if pixels[0] != gfx.DesktopBackground {
		t.Errorf("expected corner pixel to be the desktop background; got %v", pixels[0])
	}
	if other == 0 || background == 0 {
		t.Errorf("expected wallpaper to contain both background and decoration; got %d/%d", background, other)
	}

	hd := NewWallpaper(64, 48)
	if z := hd.ZIndex(); z != WallpaperZIndex {
		t.Errorf("expected wallpaper z-index %d; got %d", WallpaperZIndex, z)
	}
	hd.Update(func(l *layer.Layer) {
		if got := l.At(63, 47); got != pixels[len(pixels)-1] {
			t.Errorf("expected wallpaper layer to hold the rasterized pixels")
		}
	})
}

type blockGlyph struct{}

func (blockGlyph) Width() uint32           { return 8 }
func (blockGlyph) PixelAt(x, y uint32) bool { return x == 0 }

// blockFont draws every rune as a vertical bar in the glyph's first column.
type blockFont struct{}

func (blockFont) Lookup(r rune) (font.Glyph, bool) { return blockGlyph{}, true }

func equalUint32(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
