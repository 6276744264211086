package ttf

import (
	"fmt"
	"strings"
)

const (
	platformMicrosoft  = 3
	msEncodingUnicode  = 1  // Unicode BMP
	msEncodingUCS4     = 10 // Unicode full repertoire
	tableRecordSize    = 16
	tableDirectoryBase = 12
)

// isFont checks the 4-byte signature of a font at offset off.
func isFont(b binarySegm, off int) bool {
	if off < 0 || off+4 > len(b) {
		return false
	}
	switch Tag(b.readU32(off)) {
	case 0x00010000, // OpenType 1.0 / TrueType
		T("1\x00\x00\x00"), // TrueType 1
		T("typ1"),          // TrueType with Type 1 font
		T("OTTO"),          // OpenType with CFF outlines
		T("true"):          // Apple TrueType
		return true
	}
	return false
}

// tableRecord scans the table directory for tag and returns the table's
// offset and length. Offsets are relative to the start of the font data, even
// for fonts within a collection. An absent table has offset 0.
func (f *Font) tableRecord(tag Tag) (offset, length uint32) {
	start := int(f.fontStart)
	n := int(f.data.readU16(start + 4))
	for i := 0; i < n; i++ {
		rec := start + tableDirectoryBase + tableRecordSize*i
		if f.data.hasTag(rec, tag) {
			return f.data.readU32(rec + 8), f.data.readU32(rec + 12)
		}
	}
	return 0, 0
}

func (f *Font) findTable(tag Tag) uint32 {
	off, _ := f.tableRecord(tag)
	return off
}

// TableOffset returns the offset of a table within the font data, or 0 if the
// font does not contain the table.
func (f *Font) TableOffset(tag Tag) uint32 {
	return f.findTable(tag)
}

// HasTable returns true if the font's table directory lists a table for tag.
func (f *Font) HasTable(tag Tag) bool {
	return f.findTable(tag) != 0
}

// Signature returns the 4-byte signature of the font, e.g. 0x00010000 for TrueType
// outlines or 'OTTO' for CFF outlines. For collections it is the signature of the
// selected sub-font.
func (f *Font) Signature() Tag {
	return Tag(f.data.readU32(int(f.fontStart)))
}

// TableTags returns the tags of all tables in the table directory, in
// directory order.
func (f *Font) TableTags() []Tag {
	start := int(f.fontStart)
	n := int(f.data.readU16(start + 4))
	tags := make([]Tag, 0, n)
	for i := 0; i < n; i++ {
		rec := start + tableDirectoryBase + tableRecordSize*i
		if tag := Tag(f.data.readU32(rec)); tag != 0 {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Table returns the bytes of a table, or nil if the table is absent or its
// directory entry points outside of the font data.
func (f *Font) Table(tag Tag) []byte {
	off, size := f.tableRecord(tag)
	if off == 0 {
		return nil
	}
	b, err := f.data.view(int(off), int(size))
	if err != nil {
		return nil
	}
	return b
}

// locateTables looks up the tables we operate on and selects a character map.
func (f *Font) locateTables() error {
	cmap := f.findTable(T("cmap"))
	f.cmap = cmap
	f.loca = f.findTable(T("loca"))
	f.head = f.findTable(T("head"))
	f.glyf = f.findTable(T("glyf"))
	f.hhea = f.findTable(T("hhea"))
	f.hmtx = f.findTable(T("hmtx"))
	f.kern = f.findTable(T("kern"))
	f.gpos = f.findTable(T("GPOS"))
	f.svg = f.findTable(T("SVG "))
	f.glyphCount = -1
	if maxp := f.findTable(T("maxp")); maxp != 0 {
		f.glyphCount = int(f.data.readU16(int(maxp) + 4))
	}
	if cmap != 0 {
		numTables := int(f.data.readU16(int(cmap) + 2))
		for i := 0; i < numTables; i++ {
			rec := int(cmap) + 4 + 8*i
			if f.data.readU16(rec) != platformMicrosoft {
				continue
			}
			if enc := f.data.readU16(rec + 2); enc == msEncodingUnicode || enc == msEncodingUCS4 {
				f.indexMap = cmap + f.data.readU32(rec+4)
				tracer().Debugf("using cmap subtable 3/%d, format %d", enc, f.data.readU16(int(f.indexMap)))
				break
			}
		}
	}
	if f.indexMap == 0 {
		return FormatError("no Unicode character map for platform Microsoft")
	}
	f.unitsPerEm = f.data.readU16(int(f.head) + 18)
	f.locaFormat = int(f.data.readU16(int(f.head) + 50))
	f.parseSVGIndex()
	return nil
}

// Validate walks the table directory and the tables this package reads from,
// using strict bounds checks. It reports structural problems which otherwise
// would silently be read as zeros.
//
// A font passing Validate may still contain malformed glyph data.
func (f *Font) Validate() error {
	var problems []string
	report := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}
	start := int(f.fontStart)
	n, err := f.data.u16(start + 4)
	if err != nil {
		return FormatError("truncated offset table")
	}
	dir, err := f.data.view(start+tableDirectoryBase, tableRecordSize*int(n))
	if err != nil {
		return FormatError(fmt.Sprintf("table directory with %d entries exceeds font data", n))
	}
	lengths := make(map[Tag]uint32, n)
	for b := dir; len(b) >= tableRecordSize; b = b[tableRecordSize:] {
		tag := Tag(u32(b))
		off, size := u32(b[8:]), u32(b[12:])
		if _, err := f.data.view(int(off), int(size)); err != nil && size > 0 {
			report("table '%s' at %d with length %d exceeds font data", tag, off, size)
			continue
		}
		lengths[tag] = size
	}
	for _, tag := range []string{"cmap", "head", "hhea", "hmtx", "maxp"} {
		if _, ok := lengths[T(tag)]; !ok {
			report("missing required table '%s'", tag)
		}
	}
	if size, ok := lengths[T("head")]; ok {
		if size < 54 {
			report("table 'head' too short")
		} else if u := f.unitsPerEm; u < 16 || u > 16384 {
			report("units per em out of range: %d", u)
		}
		if f.locaFormat > 1 {
			report("unknown loca format %d", f.locaFormat)
		}
	}
	if size, ok := lengths[T("hhea")]; ok && size < 36 {
		report("table 'hhea' too short")
	}
	if size, ok := lengths[T("hmtx")]; ok {
		if nh := int(f.data.readU16(int(f.hhea) + 34)); nh == 0 || uint32(4*nh) > size {
			report("table 'hmtx' does not hold %d metrics", nh)
		}
	}
	if size, ok := lengths[T("loca")]; ok && f.glyphCount > 0 && f.locaFormat <= 1 {
		entry := uint32(2 << f.locaFormat)
		if need := entry * uint32(f.glyphCount+1); need > size {
			report("table 'loca' has %d bytes, need %d for %d glyphs", size, need, f.glyphCount)
		} else if glyfSize, ok := lengths[T("glyf")]; ok {
			if end := f.locaEntry(f.glyphCount); end > glyfSize {
				report("table 'loca' points beyond table 'glyf' (%d > %d)", end, glyfSize)
			}
		}
	}
	if _, err := f.data.u16(int(f.indexMap)); err != nil {
		report("character map subtable out of bounds")
	}
	if len(problems) > 0 {
		return FormatError(strings.Join(problems, "; "))
	}
	return nil
}
