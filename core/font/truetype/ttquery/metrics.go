package ttquery

import (
	"github.com/npillmayer/glyphr/core/font/truetype"
	"github.com/npillmayer/glyphr/core/font/truetype/ttf"
	"golang.org/x/image/font/sfnt"
)

// --- Font Information -------------------------------------------------

// FontMetrics retrieves selected metrics of a font, in design units.
//
// Ascent, descent and line gap are taken from table 'hhea'. If 'hhea' states
// neither ascent nor descent, the typographic values of table 'OS/2' are used.
// x-height and cap-height are available for 'OS/2' tables of version 2 and later.
func FontMetrics(f *ttf.Font) truetype.FontMetricsInfo {
	metrics := truetype.FontMetricsInfo{
		UnitsPerEm: sfnt.Units(f.UnitsPerEm()),
	}
	if hhea := f.Table(ttf.T("hhea")); hhea != nil {
		metrics.Ascent = sfnt.Units(i16(hhea, 4))
		metrics.Descent = sfnt.Units(i16(hhea, 6))
		metrics.LineGap = sfnt.Units(i16(hhea, 8))
		metrics.MaxAdvance = sfnt.Units(u16(hhea, 10))
	}
	os2 := f.Table(ttf.T("OS/2"))
	if os2 == nil {
		return metrics
	}
	if metrics.Ascent == 0 && metrics.Descent == 0 {
		tracer().Debugf("hhea without ascent/descent, using OS/2")
		if a := sfnt.Units(i16(os2, 68)); a > metrics.Ascent {
			tracer().Debugf("override of ascent: %d -> %d", metrics.Ascent, a)
			metrics.Ascent = a
		}
		if d := sfnt.Units(i16(os2, 70)); d < metrics.Descent {
			tracer().Debugf("override of descent: %d -> %d", metrics.Descent, d)
			metrics.Descent = d
		}
		metrics.LineGap = sfnt.Units(i16(os2, 72))
	}
	if u16(os2, 0) >= 2 {
		metrics.XHeight = sfnt.Units(i16(os2, 86))
		metrics.CapHeight = sfnt.Units(i16(os2, 88))
	}
	return metrics
}

// --- Glyph Routines --------------------------------------------------------

// CodePointForGlyph returns the code-point for a given glyph index.
//
// This is an inefficient operation: the code-points of the Basic Multilingual
// Plane are checked sequentially if they produce the given glyph.
// If the glyph index does not correspond to a code-point, 0 is returned.
func CodePointForGlyph(f *ttf.Font, gid ttf.GlyphIndex) rune {
	if gid == 0 {
		return 0
	}
	for r := rune(1); r <= 0xffff; r++ {
		if f.GlyphIndex(r) == gid {
			return r
		}
	}
	return 0
}

// GlyphMetrics retrieves metrics for a given glyph, in design units.
func GlyphMetrics(f *ttf.Font, gid ttf.GlyphIndex) truetype.GlyphMetricsInfo {
	metrics := truetype.GlyphMetricsInfo{}
	advance, lsb := f.GlyphHMetrics(gid)
	metrics.Advance = sfnt.Units(advance)
	metrics.LSB = sfnt.Units(lsb)
	if bbox, ok := f.GlyphBox(gid); ok {
		metrics.BBox = bbox
	}
	// RSB calculation: rsb = aw - (lsb + xMax - xMin)
	// If a glyph has no contours, xMax/xMin are not defined.
	if !metrics.BBox.Empty() {
		metrics.RSB = metrics.Advance - (metrics.LSB + metrics.BBox.Dx())
	}
	return metrics
}

// --- Helpers ----------------------------------------------------------

func u16(b []byte, i int) uint16 {
	if i < 0 || i+2 > len(b) {
		return 0
	}
	return uint16(b[i])<<8 | uint16(b[i+1])
}

func i16(b []byte, i int) int16 {
	return int16(u16(b, i))
}
