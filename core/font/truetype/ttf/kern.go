package ttf

import "math"

// GlyphKernAdvance returns the kerning adjustment between two glyphs, in design
// units. If the font has a table 'GPOS', it is used exclusively. Otherwise the
// legacy table 'kern' is consulted. Fonts with neither have no kerning.
func (f *Font) GlyphKernAdvance(g1, g2 GlyphIndex) int {
	if f.gpos != 0 {
		return f.gposKernAdvance(g1, g2)
	}
	if f.kern != 0 {
		return f.kernTableAdvance(g1, g2)
	}
	return 0
}

// HasKerning is true if the font contains a table 'GPOS' or a table 'kern'.
func (f *Font) HasKerning() bool {
	return f.gpos != 0 || f.kern != 0
}

// Kerning returns the kerning adjustment between the glyphs for two code points,
// scaled to pixels and rounded down.
func (f *Font) Kerning(a, b rune, scale float32) int {
	if !f.HasKerning() { // spare the glyph lookups
		return 0
	}
	adv := f.GlyphKernAdvance(f.GlyphIndex(a), f.GlyphIndex(b))
	return int(math.Floor(float64(float32(adv) * scale)))
}

// kernTableAdvance looks up a kerning pair in table 'kern'. Only the first
// subtable is read, and it has to be a horizontal format 0 subtable.
func (f *Font) kernTableAdvance(g1, g2 GlyphIndex) int {
	kern := int(f.kern)
	if f.data.readU16(kern+2) < 1 { // number of subtables
		return 0
	}
	if f.data.readU16(kern+8) != 1 { // coverage: horizontal, format 0
		return 0
	}
	needle := uint32(g1)<<16 | uint32(g2)
	l, r := 0, int(f.data.readU16(kern+10))-1
	for l <= r {
		m := (l + r) >> 1
		straw := f.data.readU32(kern + 18 + m*6)
		if needle < straw {
			r = m - 1
		} else if needle > straw {
			l = m + 1
		} else {
			return int(f.data.readS16(kern + 22 + m*6))
		}
	}
	return 0
}
