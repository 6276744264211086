package main

import (
	"image"
	"os"
	"strings"

	"github.com/npillmayer/glyphr/core/font/truetype/ttf"
	"github.com/pterm/pterm"
	"golang.org/x/image/draw"
	"golang.org/x/term"
)

// ramp maps coverage to characters, from empty to full.
const ramp = " .:-=+*#%@"

func preview(bitmap *ttf.GlyphBitmap) {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 8 {
		width = 80
	}
	pterm.Println(asciiArt(bitmap, width-2))
}

// asciiArt draws a bitmap with characters, fitting it into maxWidth columns.
// Terminal cells are about twice as high as wide, so two rows of pixels
// make up one line.
func asciiArt(bitmap *ttf.GlyphBitmap, maxWidth int) string {
	if bitmap.Empty() || maxWidth < 1 {
		return ""
	}
	w, h := bitmap.Width, (bitmap.Height+1)/2
	if w > maxWidth {
		h = max(1, h*maxWidth/w)
		w = maxWidth
	}
	scaled := image.NewNRGBA(image.Rect(0, 0, w, h))
	src := bitmap.NRGBA()
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)
	var sb strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := int(scaled.NRGBAAt(x, y).A)
			sb.WriteByte(ramp[a*(len(ramp)-1)/255])
		}
		if y < h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
