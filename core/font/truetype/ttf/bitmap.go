package ttf

import (
	"image"
)

// GlyphBitmap is an RGBA bitmap, 4 bytes per pixel, stored row by row.
// Rasterized glyphs are white, with the coverage stored in the alpha channel.
type GlyphBitmap struct {
	Width, Height int
	Pix           []byte
}

// NewGlyphBitmap creates a transparent bitmap of the given size.
// Negative dimensions are treated as 0.
func NewGlyphBitmap(width, height int) *GlyphBitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &GlyphBitmap{
		Width:  width,
		Height: height,
		Pix:    make([]byte, 4*width*height),
	}
}

// Stride is the number of bytes per row.
func (b *GlyphBitmap) Stride() int {
	return 4 * b.Width
}

// Empty is true if the bitmap has no pixels.
func (b *GlyphBitmap) Empty() bool {
	return b == nil || b.Width == 0 || b.Height == 0
}

// Alpha returns the alpha value of the pixel at (x,y), or 0 for coordinates
// outside the bitmap.
func (b *GlyphBitmap) Alpha(x, y int) uint8 {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0
	}
	return b.Pix[(y*b.Width+x)*4+3]
}

// NRGBA wraps the bitmap as an image.Image. Pixel data is shared, not copied.
//
// Rasterized glyphs carry white color with straight (non-premultiplied) alpha,
// which is what image.NRGBA expects.
func (b *GlyphBitmap) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Stride(),
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Draw combines other into b with its top left corner at (x,y), by
// or-ing the bytes of every channel. Pixels outside b are clipped.
func (b *GlyphBitmap) Draw(other *GlyphBitmap, x, y int) {
	if other.Empty() {
		return
	}
	for j := 0; j < other.Height; j++ {
		ty := y + j
		if ty < 0 || ty >= b.Height {
			continue
		}
		for i := 0; i < other.Width; i++ {
			tx := x + i
			if tx < 0 || tx >= b.Width {
				continue
			}
			src := (j*other.Width + i) * 4
			dst := (ty*b.Width + tx) * 4
			b.Pix[dst] |= other.Pix[src]
			b.Pix[dst+1] |= other.Pix[src+1]
			b.Pix[dst+2] |= other.Pix[src+2]
			b.Pix[dst+3] |= other.Pix[src+3]
		}
	}
}
