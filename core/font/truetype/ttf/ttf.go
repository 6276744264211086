package ttf

import (
	"fmt"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// GlyphIndex identifies a glyph within a font. Glyph 0 is '.notdef', the
// "missing glyph", which every font is required to provide.
type GlyphIndex uint16

// Font is a parsed TrueType or OpenType font.
//
// A Font holds on to the byte slice it has been parsed from and expects it to
// stay unchanged for as long as the Font is in use. After Parse returns, a Font is
// never modified and may be shared between goroutines without synchronization.
type Font struct {
	data       binarySegm
	fontStart  uint32 // offset of the offset table; non-zero for font collections
	cmap       uint32 // table locations as offsets from start of data, 0 = absent
	loca       uint32
	head       uint32
	glyf       uint32
	hhea       uint32
	hmtx       uint32
	kern       uint32
	gpos       uint32
	svg        uint32
	indexMap   uint32 // the cmap subtable for our encoding
	locaFormat int    // 0 = short offsets, 1 = long offsets
	unitsPerEm uint16
	glyphCount int
	svgIndex   *redblacktree.Tree // start glyph → *svgRange
	svgRender  SVGRenderer
}

// Option configures a Font during parsing.
type Option func(*Font)

// WithSVGRenderer installs a renderer for glyphs contained in table 'SVG '.
// Without a renderer, SVG glyphs are rasterized from their 'glyf' outlines, if any.
func WithSVGRenderer(r SVGRenderer) Option {
	return func(f *Font) {
		f.svgRender = r
	}
}

// Placement determines how design units are mapped to pixels: coordinates are
// multiplied by the scale factors and then shifted. Font y-coordinates point
// upwards, whereas bitmap coordinates point downwards; the flip is taken care of
// by the rendering functions.
type Placement struct {
	ScaleX, ScaleY float32
	ShiftX, ShiftY float32
}

// Scale is a placement with uniform scale and no shift.
func Scale(s float32) Placement {
	return Placement{ScaleX: s, ScaleY: s}
}

// Parse parses a TrueType or OpenType font from a byte slice.
// If data contains a font collection, the first font of the collection is used.
//
// Parse will return a FormatError if data does not start with a known font
// signature, or if the font has no Unicode character map for platform 'Microsoft'.
func Parse(data []byte, opts ...Option) (*Font, error) {
	return ParseCollection(data, 0, opts...)
}

// ParseCollection parses font number index from a font collection ('ttcf').
// For plain font files, only index 0 is valid. Only the first font of a collection
// is supported; index ≥ 1 results in an UnsupportedError.
func ParseCollection(data []byte, index int, opts ...Option) (*Font, error) {
	if index < 0 {
		return nil, FormatError(fmt.Sprintf("negative font index %d", index))
	}
	if index > 0 {
		return nil, UnsupportedError(fmt.Sprintf("font collection index %d", index))
	}
	src := binarySegm(data)
	start := uint32(0)
	if src.hasTag(0, T("ttcf")) {
		version := src.readU32(4)
		if version != 0x00010000 && version != 0x00020000 {
			return nil, FormatError(fmt.Sprintf("font collection version %#x", version))
		}
		if src.readS32(8) <= 0 {
			return nil, FormatError("empty font collection")
		}
		start = src.readU32(12)
		tracer().Debugf("font collection, using sub-font at offset %d", start)
	}
	if !isFont(src, int(start)) {
		return nil, FormatError("unknown font signature")
	}
	f := &Font{data: src, fontStart: start}
	for _, opt := range opts {
		opt(f)
	}
	if err := f.locateTables(); err != nil {
		return nil, err
	}
	tracer().Debugf("parsed font: %d glyphs, %d units per em, loca format %d",
		f.glyphCount, f.unitsPerEm, f.locaFormat)
	return f, nil
}

// UnitsPerEm returns the number of design units per em, as stated in table 'head'.
func (f *Font) UnitsPerEm() int {
	return int(f.unitsPerEm)
}

// GlyphCount returns the number of glyphs, as stated in table 'maxp'.
// It returns -1 if the font has no table 'maxp'.
func (f *Font) GlyphCount() int {
	return f.glyphCount
}
