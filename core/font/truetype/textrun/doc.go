/*
Package textrun lays out a single line of text with a TrueType font and renders
it to a bitmap.

Text is split into grapheme clusters; each cluster is represented by the glyph
for its first code point. There is no shaping beyond pairwise kerning. A run may
be rendered at a multiple of its size and turned into a distance field:

	bitmap, err := textrun.Render(ctx, f, "Hello world", 64, 4)
	…
	img := textrun.Tint(bitmap, color.Black, color.White)

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package textrun

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'glyphr.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphr.fonts")
}
