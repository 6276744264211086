package ttf

import (
	"sort"
)

// Synthetic fonts for tests. Tables are assembled from big-endian byte
// sequences and packed into an sfnt container.

type wbuf struct {
	b []byte
}

func (w *wbuf) u8(v uint8) *wbuf {
	w.b = append(w.b, v)
	return w
}

func (w *wbuf) u16(v uint16) *wbuf {
	w.b = append(w.b, byte(v>>8), byte(v))
	return w
}

func (w *wbuf) s16(v int16) *wbuf {
	return w.u16(uint16(v))
}

func (w *wbuf) u32(v uint32) *wbuf {
	w.b = append(w.b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	return w
}

func (w *wbuf) bytes(b []byte) *wbuf {
	w.b = append(w.b, b...)
	return w
}

func (w *wbuf) len() int {
	return len(w.b)
}

type fontBuilder struct {
	tables map[string][]byte
}

func newFontBuilder() *fontBuilder {
	return &fontBuilder{tables: make(map[string][]byte)}
}

func (fb *fontBuilder) table(tag string, data []byte) *fontBuilder {
	fb.tables[tag] = data
	return fb
}

// build packs the tables into an sfnt font with signature 0x00010000.
func (fb *fontBuilder) build() []byte {
	return fb.buildWithSignature(0x00010000)
}

func (fb *fontBuilder) buildWithSignature(signature uint32) []byte {
	tags := make([]string, 0, len(fb.tables))
	for tag := range fb.tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	w := &wbuf{}
	w.u32(signature).u16(uint16(len(tags))).u16(0).u16(0).u16(0)
	offset := 12 + 16*len(tags)
	for _, tag := range tags {
		data := fb.tables[tag]
		w.bytes([]byte(tag)).u32(0).u32(uint32(offset)).u32(uint32(len(data)))
		offset += (len(data) + 3) &^ 3
	}
	for _, tag := range tags {
		data := fb.tables[tag]
		w.bytes(data)
		for w.len()%4 != 0 {
			w.u8(0)
		}
	}
	return w.b
}

// --- Tables ----------------------------------------------------------------

func headTable(unitsPerEm uint16, locaFormat int16) []byte {
	w := &wbuf{}
	w.u32(0x00010000).u32(0x00010000).u32(0).u32(0x5F0F3CF5) // version, revision, checksum adj., magic
	w.u16(0).u16(unitsPerEm)                                 // flags, unitsPerEm at 18
	w.u32(0).u32(0).u32(0).u32(0)                            // created, modified
	w.s16(0).s16(0).s16(0).s16(0)                            // bbox
	w.u16(0).u16(8).s16(2)                                   // macStyle, lowestRecPPEM, direction hint
	w.s16(locaFormat).s16(0)                                 // indexToLocFormat at 50
	return w.b
}

func hheaTable(ascent, descent, lineGap int16, numberOfHMetrics uint16) []byte {
	w := &wbuf{}
	w.u32(0x00010000).s16(ascent).s16(descent).s16(lineGap)
	w.u16(1000).s16(0).s16(0).s16(0) // advanceWidthMax, minLSB, minRSB, xMaxExtent
	w.s16(1).s16(0).s16(0)           // caret
	w.s16(0).s16(0).s16(0).s16(0)    // reserved
	w.s16(0).u16(numberOfHMetrics)   // metricDataFormat, numberOfHMetrics at 34
	return w.b
}

func maxpTable(numGlyphs uint16) []byte {
	return (&wbuf{}).u32(0x00005000).u16(numGlyphs).b
}

type hmetric struct {
	advance uint16
	lsb     int16
}

// hmtxTable writes long metrics for all of metrics, then the side bearings of
// tail as short entries.
func hmtxTable(metrics []hmetric, tail []int16) []byte {
	w := &wbuf{}
	for _, m := range metrics {
		w.u16(m.advance).s16(m.lsb)
	}
	for _, lsb := range tail {
		w.s16(lsb)
	}
	return w.b
}

// cmapTable wraps a single subtable into a cmap with one encoding record.
func cmapTable(platform, encoding uint16, subtable []byte) []byte {
	w := &wbuf{}
	w.u16(0).u16(1)
	w.u16(platform).u16(encoding).u32(12)
	w.bytes(subtable)
	return w.b
}

type cmapSegment struct {
	start, end rune
	delta      int16
}

// cmapFormat4 builds a format 4 subtable with delta mapping only. The final
// 0xFFFF segment is appended automatically.
func cmapFormat4(segments []cmapSegment) []byte {
	segments = append(segments, cmapSegment{0xffff, 0xffff, 1})
	segCount := len(segments)
	searchRange, entrySelector := 1, 0
	for searchRange*2 <= segCount {
		searchRange *= 2
		entrySelector++
	}
	searchRange *= 2
	w := &wbuf{}
	w.u16(4).u16(uint16(16 + 8*segCount)).u16(0)
	w.u16(uint16(2 * segCount)).u16(uint16(searchRange)).u16(uint16(entrySelector))
	w.u16(uint16(2*segCount - searchRange))
	for _, s := range segments {
		w.u16(uint16(s.end))
	}
	w.u16(0)
	for _, s := range segments {
		w.u16(uint16(s.start))
	}
	for _, s := range segments {
		w.s16(s.delta)
	}
	for range segments {
		w.u16(0)
	}
	return w.b
}

func cmapFormat0(mapping map[byte]byte) []byte {
	w := &wbuf{}
	w.u16(0).u16(262).u16(0)
	for i := 0; i < 256; i++ {
		w.u8(mapping[byte(i)])
	}
	return w.b
}

func cmapFormat6(first uint16, glyphs []uint16) []byte {
	w := &wbuf{}
	w.u16(6).u16(uint16(10 + 2*len(glyphs))).u16(0)
	w.u16(first).u16(uint16(len(glyphs)))
	for _, g := range glyphs {
		w.u16(g)
	}
	return w.b
}

type cmapGroup struct {
	start, end rune
	glyph      uint32
}

func cmapFormat12(format uint16, groups []cmapGroup) []byte {
	w := &wbuf{}
	w.u16(format).u16(0).u32(uint32(16 + 12*len(groups))).u32(0).u32(uint32(len(groups)))
	for _, g := range groups {
		w.u32(uint32(g.start)).u32(uint32(g.end)).u32(g.glyph)
	}
	return w.b
}

// glyfAndLoca packs glyph data into tables 'glyf' and 'loca' (long format).
func glyfAndLoca(glyphs [][]byte) (glyf []byte, loca []byte) {
	g, l := &wbuf{}, &wbuf{}
	for _, data := range glyphs {
		l.u32(uint32(g.len()))
		g.bytes(data)
		for g.len()%4 != 0 {
			g.u8(0)
		}
	}
	l.u32(uint32(g.len()))
	return g.b, l.b
}

type gpt struct {
	x, y    int16
	onCurve bool
}

// simpleGlyph encodes contours of points, with long coordinates only.
func simpleGlyph(contours ...[]gpt) []byte {
	var all []gpt
	var endPts []uint16
	for _, c := range contours {
		all = append(all, c...)
		endPts = append(endPts, uint16(len(all)-1))
	}
	xmin, ymin, xmax, ymax := all[0].x, all[0].y, all[0].x, all[0].y
	for _, p := range all {
		xmin, xmax = min16(xmin, p.x), max16(xmax, p.x)
		ymin, ymax = min16(ymin, p.y), max16(ymax, p.y)
	}
	w := &wbuf{}
	w.s16(int16(len(contours))).s16(xmin).s16(ymin).s16(xmax).s16(ymax)
	for _, e := range endPts {
		w.u16(e)
	}
	w.u16(0) // no instructions
	for _, p := range all {
		if p.onCurve {
			w.u8(onCurvePoint)
		} else {
			w.u8(0)
		}
	}
	var last int16
	for _, p := range all {
		w.s16(p.x - last)
		last = p.x
	}
	last = 0
	for _, p := range all {
		w.s16(p.y - last)
		last = p.y
	}
	return w.b
}

func rectGlyph(x0, y0, x1, y1 int16) []byte {
	return simpleGlyph([]gpt{{x0, y0, true}, {x0, y1, true}, {x1, y1, true}, {x1, y0, true}})
}

type component struct {
	glyph  uint16
	dx, dy int16
	flags  uint16 // extra flags, e.g. weHaveAScale
	scale  []int16
}

// compositeGlyph encodes a composite glyph. The bounding box is passed explicitly.
func compositeGlyph(bbox [4]int16, comps ...component) []byte {
	w := &wbuf{}
	w.s16(-1).s16(bbox[0]).s16(bbox[1]).s16(bbox[2]).s16(bbox[3])
	for i, c := range comps {
		flags := c.flags | arg1And2AreWords
		if c.flags&0x8000 == 0 { // marker for "matching points" in tests
			flags |= argsAreXYValues
		}
		flags &^= 0x8000
		if i < len(comps)-1 {
			flags |= moreComponents
		}
		w.u16(flags).u16(c.glyph).s16(c.dx).s16(c.dy)
		for _, s := range c.scale {
			w.s16(s)
		}
	}
	return w.b
}

func min16(a, b int16) int16 {
	if a < b {
		return a
	}
	return b
}

func max16(a, b int16) int16 {
	if a > b {
		return a
	}
	return b
}

// testFont assembles a small font. Glyphs:
//
//	0  .notdef, a rectangle
//	1  'A', a rectangle 100…500 × 0…700
//	2  'V', a rectangle 50…550 × 0…700
//	3  ' ', no outline
//	4  '_', a rectangle 0…500 × -100…-50
//	5  composite of two 'A' rectangles, the second one shifted by (600,0)
//	6  'a', contour with off-curve points
//
// Advances: 600 for glyphs 0–4, 1200 for glyph 5, glyph 6 shares the advance
// of glyph 5 through the hmtx tail.
func testFont(extra map[string][]byte) *fontBuilder {
	glyphs := [][]byte{
		rectGlyph(50, 0, 450, 700),
		rectGlyph(100, 0, 500, 700),
		rectGlyph(50, 0, 550, 700),
		nil,
		rectGlyph(0, -100, 500, -50),
		compositeGlyph([4]int16{100, 0, 1100, 700},
			component{glyph: 1}, component{glyph: 1, dx: 600}),
		simpleGlyph([]gpt{{0, 0, true}, {0, 500, false}, {500, 500, false}, {500, 0, true}}),
	}
	glyf, loca := glyfAndLoca(glyphs)
	fb := newFontBuilder().
		table("head", headTable(1000, 1)).
		table("hhea", hheaTable(800, -200, 100, 6)).
		table("maxp", maxpTable(uint16(len(glyphs)))).
		table("hmtx", hmtxTable([]hmetric{
			{600, 50}, {600, 100}, {600, 50}, {600, 0}, {600, 0}, {1200, 100},
		}, []int16{0})).
		table("cmap", cmapTable(3, 1, cmapFormat4([]cmapSegment{
			{' ', ' ', 3 - ' '},
			{'A', 'A', 1 - 'A'},
			{'V', 'V', 2 - 'V'},
			{'_', '_', 4 - '_'},
			{'a', 'a', 6 - 'a'},
		}))).
		table("glyf", glyf).
		table("loca", loca)
	for tag, data := range extra {
		fb.table(tag, data)
	}
	return fb
}

// kernTable builds a version 0 table 'kern' with one horizontal format 0 subtable.
func kernTable(pairs [][3]int) []byte {
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i][0]<<16|pairs[i][1] < pairs[j][0]<<16|pairs[j][1]
	})
	w := &wbuf{}
	w.u16(0).u16(1)                                // version, nTables
	w.u16(0).u16(uint16(14 + 6*len(pairs))).u16(1) // subtable version, length, coverage
	w.u16(uint16(len(pairs))).u16(0).u16(0).u16(0) // nPairs, searchRange, entrySelector, rangeShift
	for _, p := range pairs {
		w.u16(uint16(p[0])).u16(uint16(p[1])).s16(int16(p[2]))
	}
	return w.b
}

// gposPairFormat1 builds a table 'GPOS' with one lookup of type 2 and a single
// format 1 subtable for first glyph g1.
func gposPairFormat1(g1 uint16, seconds []uint16, values []int16, valueFormat1 uint16) []byte {
	// subtable: posFormat, coverageOffset, vf1, vf2, pairSetCount, pairSetOffset[1]
	sub := &wbuf{}
	const subHeader = 12
	pairSetLen := 2 + 4*len(seconds)
	sub.u16(1).u16(uint16(subHeader + pairSetLen)).u16(valueFormat1).u16(0).u16(1).u16(subHeader)
	sub.u16(uint16(len(seconds)))
	for i, s := range seconds {
		sub.u16(s).s16(values[i])
	}
	sub.u16(1).u16(1).u16(g1) // coverage format 1
	return gposWithLookup(2, sub.b)
}

// gposPairFormat2 builds a table 'GPOS' with a class based subtable.
// Glyph classes are assigned with class definition format 1 for the first glyphs
// and format 2 for the second glyphs.
func gposPairFormat2(first []uint16, second []uint16, class2Count int, grid []int16) []byte {
	sub := &wbuf{}
	class1Count := 2
	const header = 16
	values := 2 * class1Count * class2Count
	coverageOff := header + values
	coverageLen := 4 + 2*len(first)
	classDef1Off := coverageOff + coverageLen
	classDef1Len := 6 + 2*len(first)
	classDef2Off := classDef1Off + classDef1Len
	sub.u16(2).u16(uint16(coverageOff)).u16(valueXAdvance).u16(0)
	sub.u16(uint16(classDef1Off)).u16(uint16(classDef2Off))
	sub.u16(uint16(class1Count)).u16(uint16(class2Count))
	for _, v := range grid {
		sub.s16(v)
	}
	sub.u16(1).u16(uint16(len(first)))
	for _, g := range first {
		sub.u16(g)
	}
	// class def 1, format 1: consecutive glyphs starting at first[0], all in class 1
	sub.u16(1).u16(first[0]).u16(uint16(len(first)))
	for range first {
		sub.u16(1)
	}
	// class def 2, format 2: each second glyph in its own range, classes 1…
	sub.u16(2).u16(uint16(len(second)))
	for i, g := range second {
		sub.u16(g).u16(g).u16(uint16(i + 1))
	}
	return gposWithLookup(2, sub.b)
}

func gposWithLookup(lookupType uint16, subtable []byte) []byte {
	w := &wbuf{}
	w.u16(1).u16(0).u16(0).u16(0).u16(10)  // version 1.0, script/feature lists, lookup list at 10
	w.u16(1).u16(4)                        // lookup count, lookup offset
	w.u16(lookupType).u16(0).u16(1).u16(8) // lookup: type, flag, subtable count, offset
	w.bytes(subtable)
	return w.b
}

// svgTable builds a table 'SVG ' with the document index at offset 10.
func svgTable(entries []svgEntry) []byte {
	w := &wbuf{}
	w.u16(0).u32(10).u32(0)
	w.u16(uint16(len(entries)))
	docOffset := 2 + 12*len(entries)
	for _, e := range entries {
		w.u16(e.start).u16(e.end).u32(uint32(docOffset)).u32(uint32(len(e.doc)))
		docOffset += len(e.doc)
	}
	for _, e := range entries {
		w.bytes(e.doc)
	}
	return w.b
}

type svgEntry struct {
	start, end uint16
	doc        []byte
}
