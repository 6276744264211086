/*
Package ttf parses TrueType and OpenType font files and rasterizes their glyphs.

Package ttf is a small font engine without any dependency on a graphics system.
It reads the sfnt container of a font, decodes glyph outlines from table 'glyf',
flattens the quadratic (and cubic) curve segments into polylines and sweeps them
with a scanline rasterizer into anti-aliased RGBA bitmaps. Moreover it answers
metric questions (advance widths, side bearings, bounding boxes, vertical font
metrics) and resolves pairwise kerning from either table 'GPOS' or table 'kern'.

	f, err := ttf.Parse(fontBytes)
	…
	scale := f.ScaleInPixels(32)
	glyph, err := f.RenderGlyph(ctx, 'A', scale, nil)

Typical clients of this package will be:

▪︎ texture atlas builders for games and GPU-based text rendering (usually
combined with package sdf for distance fields)

▪︎ command line tools to inspect fonts

▪︎ simple text renderers for Latin script, where shaping is not required

# Leniency

Fonts in the wild are often slightly broken. Package ttf does not fail on reads
beyond the end of the font data, but rather yields 0 for every such read, so a
truncated font will still render most of its glyphs. Structural corruption may
go unnoticed this way; (*Font).Validate walks the table directory with strict
bounds checks.

# Restrictions

No hinting is performed, no variable fonts are supported, and for font
collections only the first font is accessible. Outlines are read from table 'glyf'
only, i.e. CFF-flavoured OpenType fonts will load, but their glyphs have no outlines.
Glyphs from table 'SVG ' are located, but not rendered: rendering is delegated to a
client-supplied SVGRenderer.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

Parts of the rasterizer follow the public domain stb_truetype library by
Sean Barrett.
*/
package ttf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyphr.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphr.fonts")
}
