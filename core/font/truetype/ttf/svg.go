package ttf

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// SVGRenderer renders glyphs from table 'SVG '. Package ttf does not interpret
// SVG documents itself; clients wanting color glyphs install a renderer with
// WithSVGRenderer.
//
// RenderSVGGlyph receives the SVG document registered for glyph g, which has been
// requested for code point r (0 if the glyph has been requested by index).
// userData is passed through unchanged from the rendering call. The renderer may
// block; it is called without holding any lock. A returned error or a nil bitmap
// make rendering of this glyph fail, and nothing else.
type SVGRenderer interface {
	RenderSVGGlyph(ctx context.Context, f *Font, doc string, r rune, g GlyphIndex, userData interface{}) (*GlyphBitmap, error)
}

// SVGRendererFunc is an adapter to use ordinary functions as SVG renderers.
type SVGRendererFunc func(ctx context.Context, f *Font, doc string, r rune, g GlyphIndex, userData interface{}) (*GlyphBitmap, error)

// RenderSVGGlyph calls fn(ctx, f, doc, r, g, userData).
func (fn SVGRendererFunc) RenderSVGGlyph(ctx context.Context, f *Font, doc string, r rune,
	g GlyphIndex, userData interface{}) (*GlyphBitmap, error) {
	//
	return fn(ctx, f, doc, r, g, userData)
}

// svgRange is an entry of the SVG document index: an inclusive range of
// glyphs sharing a document.
type svgRange struct {
	start, end GlyphIndex
	doc        string
}

// maxSVGDocumentSize limits the size of decompressed SVG documents.
const maxSVGDocumentSize = 1 << 24

// parseSVGIndex reads the document index of table 'SVG '. Documents which are
// out of bounds, fail to decompress or do not contain an <svg> element are
// skipped.
func (f *Font) parseSVGIndex() {
	if f.svg == 0 {
		return
	}
	svg := int(f.svg)
	index := svg + int(f.data.readU32(svg+2))
	numEntries := int(f.data.readU16(index))
	tree := redblacktree.NewWithIntComparator()
	for i := 0; i < numEntries; i++ {
		rec := index + 2 + 12*i
		rng := &svgRange{
			start: GlyphIndex(f.data.readU16(rec)),
			end:   GlyphIndex(f.data.readU16(rec + 2)),
		}
		docOffset := int(f.data.readU32(rec + 4))
		docLength := int(f.data.readU32(rec + 8))
		if rng.end < rng.start {
			tracer().Errorf("SVG document index entry %d has inverted glyph range", i)
			continue
		}
		raw, err := f.data.view(index+docOffset, docLength)
		if err != nil {
			tracer().Errorf("SVG document for glyphs %d–%d out of bounds", rng.start, rng.end)
			continue
		}
		doc, ok := svgText(raw)
		if !ok {
			tracer().Errorf("SVG document for glyphs %d–%d not readable", rng.start, rng.end)
			continue
		}
		rng.doc = doc
		tree.Put(int(rng.start), rng)
	}
	if tree.Size() > 0 {
		f.svgIndex = tree
		tracer().Debugf("font has %d SVG documents", tree.Size())
	}
}

// svgText extracts the text of an SVG document, starting at the first
// "<svg" (case-insensitive). Gzip-compressed documents are inflated first.
func svgText(raw []byte) (string, bool) {
	if len(raw) >= 2 && raw[0] == 0x1f && raw[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return "", false
		}
		defer zr.Close()
		if raw, err = io.ReadAll(io.LimitReader(zr, maxSVGDocumentSize)); err != nil {
			return "", false
		}
	}
	for i := 0; i+4 <= len(raw); i++ {
		if raw[i] == '<' && bytes.EqualFold(raw[i:i+4], []byte("<svg")) {
			return string(raw[i:]), true
		}
	}
	return "", false
}

// HasSVG is true if the font contains at least one usable SVG glyph document.
func (f *Font) HasSVG() bool {
	return f.svgIndex != nil
}

// IsSVG is true if the glyph for r has an SVG document.
func (f *Font) IsSVG(r rune) bool {
	_, ok := f.SVGDocument(f.GlyphIndex(r))
	return ok
}

// SVGDocument returns the SVG document registered for glyph g.
// Several glyphs may share a document, each glyph being identified by an element
// with id "glyph<g>" within it.
func (f *Font) SVGDocument(g GlyphIndex) (string, bool) {
	if f.svgIndex == nil {
		return "", false
	}
	node, found := f.svgIndex.Floor(int(g))
	if !found {
		return "", false
	}
	rng := node.Value.(*svgRange)
	if g > rng.end {
		return "", false
	}
	return rng.doc, true
}
