package mouse

import "kdisplay/device/video/gfx"

// cursorShape is the arrow drawn at the cursor position: '@' is the
// outline, '.' the fill and ' ' is transparent.
var cursorShape = []string{
	"@          ",
	"@@         ",
	"@.@        ",
	"@..@       ",
	"@...@      ",
	"@....@     ",
	"@.....@    ",
	"@......@   ",
	"@.......@  ",
	"@........@ ",
	"@.........@",
	"@......@@@@",
	"@...@..@   ",
	"@..@ @..@  ",
	"@.@  @..@  ",
	"@@    @..@ ",
	"@     @..@ ",
	"       @@  ",
}

const (
	cursorWidth  = 11
	cursorHeight = 18
)

// cursorBitmap returns the arrow as a row-major bitmap.
func cursorBitmap() []gfx.Color {
	pixels := make([]gfx.Color, 0, cursorWidth*cursorHeight)
	for _, row := range cursorShape {
		for _, ch := range row {
			switch ch {
			case '@':
				pixels = append(pixels, gfx.White)
			case '.':
				pixels = append(pixels, gfx.MouseFill)
			default:
				pixels = append(pixels, gfx.Transparent)
			}
		}
	}
	return pixels
}
