package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"go/format"
	"image"
	"image/color"
	"io"
	"os"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// The max number of colors that are allowed in an icon, including the
// transparent entry.
const maxColors = 16

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[makeicon] error: %s\n", err.Error())
	os.Exit(1)
}

// icon is a palette-indexed image ready to be emitted as Go source.
type icon struct {
	width, height int
	palette       []color.NRGBA
	data          []uint8
}

// buildIcon converts img into palette indices. Palette entry 0 is always
// the transparent color; pixels that are fully transparent or match
// transColor map to it.
func buildIcon(img image.Image, transColor color.NRGBA) (*icon, error) {
	var (
		bounds          = img.Bounds()
		colorToPalIndex = make(map[color.NRGBA]uint8)
		ic              = &icon{
			width:   bounds.Dx(),
			height:  bounds.Dy(),
			palette: []color.NRGBA{{}},
		}
	)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 || (c.R == transColor.R && c.G == transColor.G && c.B == transColor.B) {
				ic.data = append(ic.data, 0)
				continue
			}

			c.A = 0xff
			idx, exists := colorToPalIndex[c]
			if !exists {
				if len(ic.palette) == maxColors {
					return nil, fmt.Errorf("icon should not contain more than %d colors", maxColors-1)
				}
				idx = uint8(len(ic.palette))
				colorToPalIndex[c] = idx
				ic.palette = append(ic.palette, c)
			}
			ic.data = append(ic.data, idx)
		}
	}

	return ic, nil
}

// writeIcons emits a gui package source file declaring one Icon variable
// per entry of names.
func writeIcons(w io.Writer, names []string, icons []*icon) error {
	var buf bytes.Buffer

	fmt.Fprint(&buf, "// Code generated by makeicon; DO NOT EDIT.\n\n")
	fmt.Fprint(&buf, "package gui\n\nimport \"kdisplay/device/video/gfx\"\n\nvar (\n")

	for i, ic := range icons {
		fmt.Fprintf(&buf, "%s = Icon{\nWidth: %d,\nHeight: %d,\nTransparentIndex: 0,\n", names[i], ic.width, ic.height)

		fmt.Fprint(&buf, "Palette: []gfx.Color{\n")
		for _, c := range ic.palette {
			fmt.Fprintf(&buf, "{R: %d, G: %d, B: %d, A: %d},\n", c.R, c.G, c.B, c.A)
		}
		fmt.Fprint(&buf, "},\n")

		fmt.Fprint(&buf, "Data: []uint8{\n")
		for y := 0; y < ic.height; y++ {
			for x := 0; x < ic.width; x++ {
				fmt.Fprintf(&buf, "0x%x, ", ic.data[y*ic.width+x])
			}
			buf.WriteByte('\n')
		}
		fmt.Fprint(&buf, "},\n}\n\n")
	}
	fmt.Fprint(&buf, ")\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return err
	}
	_, err = w.Write(src)
	return err
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

func runTool() error {
	transR := flag.Uint("trans-r", 255, "the red component value for the transparent color")
	transG := flag.Uint("trans-g", 0, "the green component value for the transparent color")
	transB := flag.Uint("trans-b", 255, "the blue component value for the transparent color")
	output := flag.String("out", "-", "a file to write the generated icons or - to output to STDOUT")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, "makeicon: convert png/jpg/gif/bmp images to gui icons\n\n")
		fmt.Fprint(os.Stderr, "Usage: makeicon [options] VarName=image [VarName=image...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		exit(errors.New("missing image file argument"))
	}

	var (
		names []string
		icons []*icon
		trans = color.NRGBA{R: uint8(*transR), G: uint8(*transG), B: uint8(*transB), A: 0xff}
	)
	for _, arg := range flag.Args() {
		name, path, ok := strings.Cut(arg, "=")
		if !ok || name == "" || path == "" {
			return fmt.Errorf("invalid argument %q; expected VarName=image", arg)
		}

		img, err := decodeImage(path)
		if err != nil {
			return err
		}

		ic, err := buildIcon(img, trans)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		names = append(names, name)
		icons = append(icons, ic)
	}

	switch *output {
	case "-":
		return writeIcons(os.Stdout, names, icons)
	default:
		fOut, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer fOut.Close()

		return writeIcons(fOut, names, icons)
	}
}

func main() {
	if err := runTool(); err != nil {
		exit(err)
	}
}
