package ttf

// Pair adjustment from table 'GPOS'.
//
// Only lookups of type 2 (pair adjustment positioning) are evaluated, and only for
// value records consisting of a single XAdvance entry for the first glyph. Features,
// scripts and languages are not considered: every pair adjustment lookup is applied
// for every pair of glyphs.

const (
	gposPairAdjustment = 2
	valueXAdvance      = 0x0004
)

func (f *Font) gposKernAdvance(g1, g2 GlyphIndex) int {
	gpos := int(f.gpos)
	if f.data.readU16(gpos) != 1 || f.data.readU16(gpos+2) > 1 { // version 1.0 or 1.1
		return 0
	}
	lookupList := gpos + int(f.data.readU16(gpos+8))
	lookupCount := int(f.data.readU16(lookupList))
	for i := 0; i < lookupCount; i++ {
		lookup := lookupList + int(f.data.readU16(lookupList+2+2*i))
		if f.data.readU16(lookup) != gposPairAdjustment {
			continue
		}
		subTableCount := int(f.data.readU16(lookup + 4))
		for sti := 0; sti < subTableCount; sti++ {
			table := lookup + int(f.data.readU16(lookup+6+2*sti))
			coverage := table + int(f.data.readU16(table+2))
			ci := f.coverageIndex(coverage, g1)
			if ci < 0 {
				continue
			}
			if f.data.readU16(table+4) != valueXAdvance || f.data.readU16(table+6) != 0 {
				tracer().Debugf("GPOS pair adjustment with value formats %d/%d not supported",
					f.data.readU16(table+4), f.data.readU16(table+6))
				return 0
			}
			switch f.data.readU16(table) {
			case 1:
				if adv, ok := f.pairPosFormat1(table, ci, g2); ok {
					return adv
				}
			case 2:
				return f.pairPosFormat2(table, g1, g2)
			default:
				return 0
			}
		}
	}
	return 0
}

// pairPosFormat1 searches the pair set for the first glyph's coverage index.
func (f *Font) pairPosFormat1(table int, ci int, g2 GlyphIndex) (int, bool) {
	pairSetCount := int(f.data.readU16(table + 8))
	if ci >= pairSetCount {
		return 0, false
	}
	pairSet := table + int(f.data.readU16(table+10+2*ci))
	const recordSize = 4 // second glyph + XAdvance
	l, r := 0, int(f.data.readU16(pairSet))-1
	for l <= r {
		m := (l + r) >> 1
		rec := pairSet + 2 + recordSize*m
		straw := GlyphIndex(f.data.readU16(rec))
		if g2 < straw {
			r = m - 1
		} else if g2 > straw {
			l = m + 1
		} else {
			return int(f.data.readS16(rec + 2)), true
		}
	}
	return 0, false
}

// pairPosFormat2 looks up the adjustment for the classes of both glyphs.
func (f *Font) pairPosFormat2(table int, g1, g2 GlyphIndex) int {
	c1 := f.glyphClass(table+int(f.data.readU16(table+8)), g1)
	c2 := f.glyphClass(table+int(f.data.readU16(table+10)), g2)
	class1Count := int(f.data.readU16(table + 12))
	class2Count := int(f.data.readU16(table + 14))
	if c1 < 0 || c2 < 0 || c1 >= class1Count || c2 >= class2Count {
		return 0
	}
	class1Record := table + 16 + 2*c1*class2Count
	return int(f.data.readS16(class1Record + 2*c2))
}

// coverageIndex returns the index of a glyph in a coverage table, or -1 if the
// glyph is not covered.
func (f *Font) coverageIndex(coverage int, g GlyphIndex) int {
	switch f.data.readU16(coverage) {
	case 1: // list of glyphs
		l, r := 0, int(f.data.readU16(coverage+2))-1
		for l <= r {
			m := (l + r) >> 1
			straw := GlyphIndex(f.data.readU16(coverage + 4 + 2*m))
			if g < straw {
				r = m - 1
			} else if g > straw {
				l = m + 1
			} else {
				return m
			}
		}
	case 2: // ranges of glyphs
		l, r := 0, int(f.data.readU16(coverage+2))-1
		for l <= r {
			m := (l + r) >> 1
			rec := coverage + 4 + 6*m
			start := GlyphIndex(f.data.readU16(rec))
			end := GlyphIndex(f.data.readU16(rec + 2))
			if g < start {
				r = m - 1
			} else if g > end {
				l = m + 1
			} else {
				return int(f.data.readU16(rec+4)) + int(g-start)
			}
		}
	}
	return -1
}

// glyphClass returns the class of a glyph from a class definition table.
// Glyphs not assigned to a class are in class 0. Unknown table formats yield -1.
func (f *Font) glyphClass(classDef int, g GlyphIndex) int {
	switch f.data.readU16(classDef) {
	case 1:
		start := int(f.data.readU16(classDef + 2))
		count := int(f.data.readU16(classDef + 4))
		if int(g) >= start && int(g) < start+count {
			return int(f.data.readU16(classDef + 6 + 2*(int(g)-start)))
		}
		return 0
	case 2:
		l, r := 0, int(f.data.readU16(classDef+2))-1
		for l <= r {
			m := (l + r) >> 1
			rec := classDef + 4 + 6*m
			start := GlyphIndex(f.data.readU16(rec))
			end := GlyphIndex(f.data.readU16(rec + 2))
			if g < start {
				r = m - 1
			} else if g > end {
				l = m + 1
			} else {
				return int(f.data.readU16(rec + 4))
			}
		}
		return 0
	}
	return -1
}
