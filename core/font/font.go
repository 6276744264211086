/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Helvetica".
This corresponds to a TrueType "collection" (*.ttc).

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

* A "typecase" is a scaled font, i.e. a font in a certain size.
The name is reminiscent of the wooden boxes of typesetters in the era of
metal type. An example is "Helvetica regular 24px".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

Scalable fonts are parsed with package ttf. Sizes of typecases are given in
pixels, as package ttf renders to bitmaps.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package font

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/npillmayer/glyphr/core"
	"github.com/npillmayer/glyphr/core/font/truetype/ttf"
	"github.com/npillmayer/glyphr/core/font/truetype/ttquery"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
)

// tracer writes to trace with key 'glyphr.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphr.fonts")
}

// ScalableFont is a font loaded from a font file, not yet scaled to a size.
type ScalableFont struct {
	Fontname string
	Filepath string    // file path
	Binary   []byte    // raw data
	TTF      *ttf.Font // the parsed font; safe for concurrent use
}

// Pixel heights of typecases.
const (
	MinPixelHeight     = 4
	MaxPixelHeight     = 2048
	DefaultPixelHeight = 16
)

// TypeCase is a scalable font at a given pixel height.
type TypeCase struct {
	scalableFontParent *ScalableFont
	pixelHeight        float32
	scale              float32
}

// LoadTrueTypeFont loads and parses a font file.
func LoadTrueTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseTrueTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	if f.Fontname == "" {
		f.Fontname = filepath.Base(fontfile)
	}
	return f, nil
}

// ParseTrueTypeFont parses a font from raw bytes. The font name is taken from
// the font's 'name' table.
func ParseTrueTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.TTF, err = ttf.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	names := ttquery.NameInfo(f.TTF, language.English)
	if f.Fontname = names["fullname"]; f.Fontname == "" {
		f.Fontname = names["family"]
	}
	tracer().Debugf("parsed font %q", f.Fontname)
	return
}

// PrepareCase creates a typecase for the font at a given pixel height.
// Heights outside of [MinPixelHeight…MaxPixelHeight] are replaced by
// DefaultPixelHeight, and an error is returned together with the typecase.
func (sf *ScalableFont) PrepareCase(pixelHeight float32) (*TypeCase, error) {
	var err error
	if pixelHeight < MinPixelHeight || pixelHeight > MaxPixelHeight || math.IsNaN(float64(pixelHeight)) {
		err = core.Error(core.EINVALID, "font size must be %dpx ≤ size ≤ %dpx, is %g (set to %dpx)",
			MinPixelHeight, MaxPixelHeight, pixelHeight, DefaultPixelHeight)
		pixelHeight = DefaultPixelHeight
	}
	typecase := &TypeCase{
		scalableFontParent: sf,
		pixelHeight:        pixelHeight,
		scale:              sf.TTF.ScaleInPixels(pixelHeight),
	}
	if typecase.scale == 0 {
		return typecase, core.Error(core.EINVALID, "font %s has no vertical extent", sf.Fontname)
	}
	return typecase, err
}

// ScalableFontParent returns the font a typecase has been derived from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// PixelHeight returns the distance from ascender to descender, in pixels.
func (tc *TypeCase) PixelHeight() float32 {
	return tc.pixelHeight
}

// Scale returns the factor to convert design units to pixels.
func (tc *TypeCase) Scale() float32 {
	return tc.scale
}

// LineHeight returns the distance between two baselines, in pixels.
func (tc *TypeCase) LineHeight() int {
	vm := tc.scalableFontParent.TTF.FontVMetrics()
	return int(math.Round(float64(float32(vm.Ascent-vm.Descent+vm.LineGap) * tc.scale)))
}

// Glyph renders the glyph for a code point.
func (tc *TypeCase) Glyph(ctx context.Context, r rune) (*ttf.FontGlyph, error) {
	return tc.scalableFontParent.TTF.RenderGlyph(ctx, r, tc.scale, nil)
}

// Kerning returns the kerning between two code points, in pixels.
func (tc *TypeCase) Kerning(a, b rune) int {
	return tc.scalableFontParent.TTF.Kerning(a, b, tc.scale)
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
// Currently we use Go Sans.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	gofont, err := ParseTrueTypeFont(goregular.TTF)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	gofont.Fontname = "Go Sans"
	gofont.Filepath = "internal"
	return gofont
}
