/*
Package truetype holds value types shared by the TrueType font packages of glyphr.

The font engine proper lives in sub-package ttf. Metric queries in design units
are found in ttquery, string layout in textrun and distance fields in sdf.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package truetype

import (
	"golang.org/x/image/font/sfnt"
)

// --- Font and glyph metrics ------------------------------------------------

// FontMetricsInfo contains selected metric information for a font,
// in design units.
type FontMetricsInfo struct {
	UnitsPerEm         sfnt.Units // design units per em
	Ascent, Descent    sfnt.Units // ascender and descender; descender is usually negative
	LineGap            sfnt.Units // typographic line gap
	MaxAdvance         sfnt.Units // maximum advance width value in 'hhea' table
	XHeight, CapHeight sfnt.Units // from table 'OS/2', 0 if not available
}

// LineHeight is the distance between two baselines.
func (m FontMetricsInfo) LineHeight() sfnt.Units {
	return m.Ascent - m.Descent + m.LineGap
}

// GlyphMetricsInfo contains the metric information for a glyph, in design units.
type GlyphMetricsInfo struct {
	Advance  sfnt.Units  // advance width
	LSB, RSB sfnt.Units  // side bearings
	BBox     BoundingBox // bounding box from table 'glyf'
}

// BoundingBox describes the bounding box of a glyph. Y-coordinates point upwards.
type BoundingBox struct {
	MinX, MinY sfnt.Units
	MaxX, MaxY sfnt.Units
}

// Empty is a predicate: has this box a zero area?
func (bbox BoundingBox) Empty() bool {
	return bbox.MaxX <= bbox.MinX || bbox.MaxY <= bbox.MinY
}

// Dx is the horizontal extent of this box.
func (bbox BoundingBox) Dx() sfnt.Units {
	return bbox.MaxX - bbox.MinX
}

// Dy is the vertical extent of this box.
func (bbox BoundingBox) Dy() sfnt.Units {
	return bbox.MaxY - bbox.MinY
}
