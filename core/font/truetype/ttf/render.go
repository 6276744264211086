package ttf

import (
	"context"
	"image"
	"unicode"

	"github.com/npillmayer/glyphr/core"
)

// defaultFlatness is the tolerance for flattening curves, in pixels.
const defaultFlatness = 0.35

// FontGlyph is a glyph rendered for a code point, ready to be placed on a line.
// The top left corner of Image is to be placed at (x+XOffset, baseline+YOffset),
// where x is the pen position. After placing the glyph, the pen advances
// by XAdvance.
type FontGlyph struct {
	Rune     rune
	Glyph    GlyphIndex
	Image    *GlyphBitmap
	XOffset  int
	YOffset  int
	XAdvance int
}

// GlyphBitmap renders glyph g. It returns the bitmap and the offset of the bitmap's
// top left corner relative to the glyph origin, in pixels with y pointing down.
//
// If only one of the scale factors of p is 0, the other one is used for both
// directions. Glyphs with an SVG document are delegated to the SVG renderer, if
// one is installed; userData is handed to it.
//
// Glyphs without a visible extent (including glyphs without outline data)
// result in an InvalidGlyphSizeError.
func (f *Font) GlyphBitmap(ctx context.Context, g GlyphIndex, p Placement, userData interface{}) (
	*GlyphBitmap, image.Point, error) {
	//
	return f.glyphBitmap(ctx, 0, g, p, userData)
}

// CodePointBitmap renders the glyph for code point r. See GlyphBitmap.
func (f *Font) CodePointBitmap(ctx context.Context, r rune, p Placement, userData interface{}) (
	*GlyphBitmap, image.Point, error) {
	//
	return f.glyphBitmap(ctx, r, f.GlyphIndex(r), p, userData)
}

func (f *Font) glyphBitmap(ctx context.Context, r rune, g GlyphIndex, p Placement, userData interface{}) (
	*GlyphBitmap, image.Point, error) {
	//
	if f.svgRender != nil {
		if doc, ok := f.SVGDocument(g); ok {
			return f.renderSVG(ctx, doc, r, g, userData)
		}
	}
	if p.ScaleX == 0 {
		p.ScaleX = p.ScaleY
	}
	if p.ScaleY == 0 {
		if p.ScaleX == 0 {
			return nil, image.Point{}, InvalidGlyphSizeError{Glyph: g}
		}
		p.ScaleY = p.ScaleX
	}
	vertices, err := f.GlyphShape(g)
	if err != nil {
		return nil, image.Point{}, err
	}
	box := f.GlyphBitmapBox(g, p)
	if box.Dx() <= 0 || box.Dy() <= 0 {
		return nil, image.Point{}, InvalidGlyphSizeError{Glyph: g, Width: box.Dx(), Height: box.Dy()}
	}
	bitmap := NewGlyphBitmap(box.Dx(), box.Dy())
	Rasterize(bitmap, defaultFlatness, vertices, p.ScaleX, p.ScaleY, p.ShiftX, p.ShiftY,
		box.Min.X, box.Min.Y, true)
	return bitmap, box.Min, nil
}

func (f *Font) renderSVG(ctx context.Context, doc string, r rune, g GlyphIndex, userData interface{}) (
	*GlyphBitmap, image.Point, error) {
	//
	if err := ctx.Err(); err != nil {
		return nil, image.Point{}, err
	}
	bitmap, err := f.svgRender.RenderSVGGlyph(ctx, f, doc, r, g, userData)
	if err != nil {
		tracer().Errorf("SVG renderer failed for glyph %d: %v", g, err)
		return nil, image.Point{}, err
	}
	if bitmap == nil {
		return nil, image.Point{}, core.Error(core.EMISSING, "SVG renderer returned no bitmap for glyph %d", g)
	}
	return bitmap, image.Point{}, nil
}

// RenderGlyph renders the glyph for r at a uniform scale.
//
// If the font has no glyph for a letter, the letter's opposite case is tried.
// If there is still no glyph, an error with code core.EMISSING is returned.
// Glyphs without visible extent, e.g. white space, get a transparent
// placeholder bitmap of 4×4 pixels, positioned where an underscore would go.
func (f *Font) RenderGlyph(ctx context.Context, r rune, scale float32, userData interface{}) (*FontGlyph, error) {
	g := f.GlyphIndex(r)
	if g == 0 && unicode.IsLetter(r) {
		alt := unicode.ToLower(r)
		if unicode.IsLower(r) {
			alt = unicode.ToUpper(r)
		}
		if ga := f.GlyphIndex(alt); ga != 0 {
			tracer().Debugf("no glyph for %q, using %q", r, alt)
			r, g = alt, ga
		}
	}
	if g == 0 {
		return nil, core.Error(core.EMISSING, "font has no glyph for %q", r)
	}
	glyph := &FontGlyph{Rune: r, Glyph: g}
	p := Scale(scale)
	_, isSVG := f.SVGDocument(g)
	isSVG = isSVG && f.svgRender != nil
	if unicode.IsSpace(r) || (!isSVG && f.GlyphBitmapBox(g, p).Empty()) {
		if u := f.GlyphIndex('_'); u != 0 {
			pos := f.GlyphBitmapBox(u, p).Min
			glyph.XOffset, glyph.YOffset = pos.X, pos.Y
		}
		glyph.Image = NewGlyphBitmap(4, 4)
	} else {
		bitmap, pos, err := f.glyphBitmap(ctx, r, g, p, userData)
		if err != nil {
			return nil, err
		}
		glyph.Image = bitmap
		glyph.XOffset, glyph.YOffset = pos.X, pos.Y
	}
	advance, _ := f.GlyphHMetrics(g)
	glyph.XAdvance = floor(float32(advance) * scale)
	return glyph, nil
}
