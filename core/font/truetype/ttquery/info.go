package ttquery

import (
	"github.com/npillmayer/glyphr/core/font/truetype/ttf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
)

// FontType returns the font type, encoded in the font header, as a string.
func FontType(f *ttf.Font) string {
	if f == nil {
		return "<empty>"
	}
	switch f.Signature() {
	case ttf.T("OTTO"):
		return "OpenType (outlines)"
	case 0x00010000:
		return "TrueType"
	case ttf.T("true"):
		return "TrueType (Mac legacy)"
	case ttf.T("typ1"):
		return "TrueType (Type 1)"
	case ttf.T("1\x00\x00\x00"):
		return "TrueType 1"
	}
	return "<unknown>"
}

// Fields of table 'name' reported by NameInfo.
var nameFields = map[uint16]string{
	1: "family",
	2: "subfamily",
	4: "fullname",
	5: "version",
	6: "postscript",
}

// Windows language IDs (LCID) carry the primary language in the lower 10 bits.
var primaryLCID = map[string]uint16{
	"ar": 0x01, "zh": 0x04, "cs": 0x05, "da": 0x06, "de": 0x07, "el": 0x08,
	"en": 0x09, "es": 0x0a, "fi": 0x0b, "fr": 0x0c, "he": 0x0d, "hu": 0x0e,
	"it": 0x10, "ja": 0x11, "ko": 0x12, "nl": 0x13, "nb": 0x14, "pl": 0x15,
	"pt": 0x16, "ru": 0x19, "sv": 0x1d, "tr": 0x1f,
}

// NameInfo returns a map with selected fields from table 'name'.
// Will include (if available in the font) "family", "subfamily", "fullname",
// "version" and "postscript".
//
// Names for platform Windows are preferred over names for platform Macintosh.
// Among Windows names, a name in language lang is preferred, then US English.
func NameInfo(f *ttf.Font, lang language.Tag) map[string]string {
	names := make(map[string]string)
	table := f.Table(ttf.T("name"))
	if table == nil {
		tracer().Debugf("no name table found in font")
		return names
	}
	var wantLCID uint16
	if base, conf := lang.Base(); conf != language.No {
		wantLCID = primaryLCID[base.String()]
	}
	count := int(u16(table, 2))
	storage := int(u16(table, 4))
	best := make(map[uint16]int) // name ID → rank of the record found so far
	for i := 0; i < count; i++ {
		rec := 6 + 12*i
		nameID := u16(table, rec+6)
		field, ok := nameFields[nameID]
		if !ok {
			continue
		}
		platform, enc, langID := u16(table, rec), u16(table, rec+2), u16(table, rec+4)
		rank := nameRank(platform, enc, langID, wantLCID)
		if rank == 0 || rank <= best[nameID] {
			continue
		}
		start := storage + int(u16(table, rec+10))
		end := start + int(u16(table, rec+8))
		if end > len(table) {
			tracer().Errorf("name record %d exceeds table 'name'", i)
			continue
		}
		s, err := nameDecoder(platform).Bytes(table[start:end])
		if err != nil {
			tracer().Debugf("cannot decode name record %d: %v", i, err)
			continue
		}
		names[field] = string(s)
		best[nameID] = rank
	}
	return names
}

// nameRank rates a name record; 0 means unusable.
func nameRank(platform, enc, langID, wantLCID uint16) int {
	switch platform {
	case 3: // Windows
		if enc != 1 && enc != 10 {
			return 0
		}
		if wantLCID != 0 && langID&0x3ff == wantLCID {
			return 5
		}
		if langID == 0x0409 {
			return 4
		}
		return 3
	case 1: // Macintosh
		if enc == 0 && langID == 0 {
			return 2
		}
	case 0: // Unicode
		return 1
	}
	return 0
}

func nameDecoder(platform uint16) *encoding.Decoder {
	if platform == 1 {
		return charmap.Macintosh.NewDecoder()
	}
	return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
}

// LayoutTables returns a list of tag strings, one for each layout-table a font includes.
//
// OpenType Layout makes use of five tables: GSUB, GPOS, BASE, JSTF, and GDEF.
// Package ttf evaluates pair adjustments of GPOS only.
func LayoutTables(f *ttf.Font) []string {
	var lt []string
	for _, tag := range f.TableTags() {
		switch tag.String() {
		case "GSUB", "GPOS", "BASE", "JSTF", "GDEF":
			lt = append(lt, tag.String())
		}
	}
	return lt
}
