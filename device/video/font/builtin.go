package font

import (
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	xfont "golang.org/x/image/font"
)

// newBasicFont wraps the 7x13 fixed font shipped with x/image. It only has
// glyphs for printable ASCII; init chains it to gomono for everything else.
func newBasicFont() *Font {
	face := basicfont.Face7x13
	covers := func(r rune) bool {
		for _, rng := range face.Ranges {
			if r >= rng.Low && r < rng.High {
				return true
			}
		}
		return false
	}

	return NewFont("basic7x13", 0, face, covers)
}

// newGoMonoFont rasterizes the Go Mono outline font at a size that keeps
// every glyph within 8x16 pixels.
func newGoMonoFont() (*Font, error) {
	otf, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    12,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	var buf sfnt.Buffer
	covers := func(r rune) bool {
		// Font.Lookup serializes calls so buf is never shared.
		idx, err := otf.GlyphIndex(&buf, r)
		return err == nil && idx != 0
	}

	return NewFont("gomono", 1, face, covers), nil
}

func init() {
	basic := newBasicFont()
	Register(basic)

	if f, err := newGoMonoFont(); err == nil {
		basic.SetFallback(f)
		Register(f)
	}
}
