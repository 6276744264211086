package ttf

import (
	"image"
	"math"
)

// VMetrics holds the vertical metrics of a font, in design units.
// Descent is usually negative. To advance from one line to the next, move by
// Ascent − Descent + LineGap.
type VMetrics struct {
	Ascent, Descent, LineGap int
}

// GlyphMetrics holds the metrics of a glyph for a given placement, in pixels.
// Bounds are in bitmap coordinates, i.e. relative to the glyph origin on the
// baseline, with y pointing downwards.
type GlyphMetrics struct {
	Bounds          image.Rectangle
	AdvanceWidth    int
	LeftSideBearing int
	TopSideBearing  int
}

// GlyphHMetrics returns the advance width and the left side bearing of a
// glyph, in design units. Glyphs beyond the last long metric share its advance
// width.
func (f *Font) GlyphHMetrics(g GlyphIndex) (advance, lsb int) {
	nh := int(f.data.readU16(int(f.hhea) + 34))
	if nh == 0 {
		return 0, 0
	}
	hmtx := int(f.hmtx)
	if int(g) < nh {
		return int(f.data.readS16(hmtx + 4*int(g))), int(f.data.readS16(hmtx + 4*int(g) + 2))
	}
	return int(f.data.readS16(hmtx + 4*(nh-1))), int(f.data.readS16(hmtx + 4*nh + 2*(int(g)-nh)))
}

// FontVMetrics returns ascent, descent and line gap from table 'hhea'.
func (f *Font) FontVMetrics() VMetrics {
	hhea := int(f.hhea)
	return VMetrics{
		Ascent:  int(f.data.readS16(hhea + 4)),
		Descent: int(f.data.readS16(hhea + 6)),
		LineGap: int(f.data.readS16(hhea + 8)),
	}
}

// ScaleInPixels returns the scale factor to make the font's ascent-to-descent
// height equal to pixelHeight pixels. It returns 0 for fonts without vertical
// extent.
func (f *Font) ScaleInPixels(pixelHeight float32) float32 {
	vm := f.FontVMetrics()
	h := vm.Ascent - vm.Descent
	if h == 0 {
		return 0
	}
	return pixelHeight / float32(h)
}

// ScaleInEm returns the scale factor for a font size given in ems, where
// 1 em equals 16 pixels.
func (f *Font) ScaleInEm(ems float32) float32 {
	return f.ScaleInPixels(16 * ems)
}

// GlyphBitmapBox returns the rectangle of pixels touched by a glyph for a given
// scale and shift, in bitmap coordinates (y pointing downwards). Glyphs without
// outline data have an empty box.
func (f *Font) GlyphBitmapBox(g GlyphIndex, p Placement) image.Rectangle {
	box, ok := f.GlyphBox(g)
	if !ok {
		return image.Rectangle{}
	}
	return image.Rectangle{
		Min: image.Point{
			X: floor(float32(box.MinX)*p.ScaleX + p.ShiftX),
			Y: floor(float32(-box.MaxY)*p.ScaleY + p.ShiftY),
		},
		Max: image.Point{
			X: ceil(float32(box.MaxX)*p.ScaleX + p.ShiftX),
			Y: ceil(float32(-box.MinY)*p.ScaleY + p.ShiftY),
		},
	}
}

// GlyphMetrics returns the metrics of the glyph for r, scaled to pixels.
// Advance width and side bearings are rounded down.
func (f *Font) GlyphMetrics(r rune, p Placement) GlyphMetrics {
	g := f.GlyphIndex(r)
	box := f.GlyphBitmapBox(g, p)
	advance, lsb := f.GlyphHMetrics(g)
	return GlyphMetrics{
		Bounds:          box,
		AdvanceWidth:    floor(float32(advance) * p.ScaleX),
		LeftSideBearing: floor(float32(lsb) * p.ScaleX),
		TopSideBearing:  -box.Min.Y,
	}
}

func floor(x float32) int {
	return int(math.Floor(float64(x)))
}

func ceil(x float32) int {
	return int(math.Ceil(float64(x)))
}
