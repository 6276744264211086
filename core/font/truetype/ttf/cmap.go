package ttf

// GlyphIndex maps a Unicode code point to a glyph index, using the character
// map selected when the font was parsed. Unmapped code points map to 0.
//
// Supported cmap subtable formats are 0, 4, 6, 12 and 13. Format 2 (high-byte
// mapping for CJK encodings) and other formats map every code point to 0.
func (f *Font) GlyphIndex(r rune) GlyphIndex {
	if r < 0 {
		return 0
	}
	cp := uint32(r)
	im := int(f.indexMap)
	format := f.data.readU16(im)
	switch format {
	case 0: // Apple byte encoding
		length := uint32(f.data.readU16(im + 2))
		if cp < 256 && cp+6 < length {
			return GlyphIndex(f.data.read8(im + 6 + int(cp)))
		}
		return 0
	case 4: // standard mapping for Windows fonts: binary search of segments
		return f.cmapFormat4(im, cp)
	case 6: // trimmed table
		first := uint32(f.data.readU16(im + 6))
		count := uint32(f.data.readU16(im + 8))
		if cp >= first && cp < first+count {
			return GlyphIndex(f.data.readU16(im + 10 + int(cp-first)*2))
		}
		return 0
	case 12, 13: // segmented coverage, many-to-one range mappings
		return f.cmapFormat12(im, cp, format == 13)
	}
	tracer().Debugf("cmap format %d not supported", format)
	return 0
}

// HasGlyph returns true if r maps to a glyph other than '.notdef'.
func (f *Font) HasGlyph(r rune) bool {
	return f.GlyphIndex(r) > 0
}

func (f *Font) cmapFormat4(im int, cp uint32) GlyphIndex {
	if cp > 0xffff {
		return 0
	}
	segCount := int(f.data.readU16(im+6)) >> 1
	searchRange := int(f.data.readU16(im+8)) >> 1
	entrySelector := int(f.data.readU16(im + 10))
	rangeShift := int(f.data.readU16(im+12)) >> 1
	// endCodes lie from endCount .. endCount + segCount, but searchRange
	// is the nearest power of two
	endCount := im + 14
	search := endCount
	if cp >= uint32(f.data.readU16(search+rangeShift*2)) {
		search += rangeShift * 2
	}
	search -= 2 // bias to find the smallest end code ≥ cp
	for ; entrySelector != 0; entrySelector-- {
		searchRange >>= 1
		if cp > uint32(f.data.readU16(search+searchRange*2)) {
			search += searchRange * 2
		}
	}
	search += 2
	item := (search - endCount) >> 1
	start := uint32(f.data.readU16(im + 14 + segCount*2 + 2 + 2*item))
	end := uint32(f.data.readU16(im + 14 + 2*item))
	if cp < start || cp > end {
		return 0
	}
	idRangeOffset := im + 14 + segCount*6 + 2 + 2*item
	offset := int(f.data.readU16(idRangeOffset))
	if offset == 0 {
		delta := f.data.readS16(im + 14 + segCount*4 + 2 + 2*item)
		return GlyphIndex(uint16(int32(cp) + int32(delta)))
	}
	return GlyphIndex(f.data.readU16(idRangeOffset + offset + int(cp-start)*2))
}

func (f *Font) cmapFormat12(im int, cp uint32, constant bool) GlyphIndex {
	ngroups := int(f.data.readU32(im + 12))
	low, high := 0, ngroups-1
	for low <= high {
		mid := low + (high-low)>>1
		group := im + 16 + mid*12
		startChar := f.data.readU32(group)
		endChar := f.data.readU32(group + 4)
		if cp < startChar {
			high = mid - 1
		} else if cp > endChar {
			low = mid + 1
		} else {
			startGlyph := f.data.readU32(group + 8)
			if constant {
				return GlyphIndex(startGlyph)
			}
			return GlyphIndex(startGlyph + cp - startChar)
		}
	}
	return 0
}
