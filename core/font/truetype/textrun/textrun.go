package textrun

import (
	"context"
	"image"
	"image/color"
	"math"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/glyphr/core"
	"github.com/npillmayer/glyphr/core/font/truetype/sdf"
	"github.com/npillmayer/glyphr/core/font/truetype/ttf"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"golang.org/x/image/draw"
)

// PlacedGlyph is a rendered glyph at its position within a run.
type PlacedGlyph struct {
	Cluster string         // grapheme cluster the glyph stands for
	Glyph   *ttf.FontGlyph // rendered glyph
	Pos     image.Point    // top left corner of the glyph's image
	Origin  int            // x position of the glyph's origin on the baseline
}

// Run is a line of text, laid out with a font at a pixel height.
// Positions are relative to the top left corner of the run's bounds.
type Run struct {
	Text          string
	PixelHeight   float32
	Scale         float32
	Glyphs        []PlacedGlyph
	Width, Height int
	Baseline      int // y of the baseline
	Skipped       int // number of clusters without a glyph
}

// Option configures Layout.
type Option func(*layoutConfig)

type layoutConfig struct {
	kerning  bool
	userData interface{}
}

// WithoutKerning switches off pairwise kerning.
func WithoutKerning() Option {
	return func(c *layoutConfig) {
		c.kerning = false
	}
}

// WithUserData hands ud to the font's SVG renderer, if any.
func WithUserData(ud interface{}) Option {
	return func(c *layoutConfig) {
		c.userData = ud
	}
}

var setupGraphemes sync.Once

// clusters splits text into grapheme clusters.
func clusters(text string) []string {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	onGraphemes := grapheme.NewBreaker(1)
	seg := segment.NewSegmenter(onGraphemes)
	seg.Init(strings.NewReader(text))
	var cl []string
	for seg.Next() {
		cl = append(cl, string(seg.Bytes()))
	}
	return cl
}

// Layout positions the glyphs of text on a single line.
//
// Each grapheme cluster is rendered with the glyph for its first code point.
// A glyph's image is placed relative to the pen position by the glyph's offset;
// then the pen advances by the glyph's advance plus the kerning between the
// cluster and the following one. Clusters which cannot be rendered are skipped
// and counted in Run.Skipped.
//
// Layout returns an error with code core.EINVALID if f is nil or the font has
// no vertical extent. If ctx is cancelled, Layout returns ctx.Err().
func Layout(ctx context.Context, f *ttf.Font, text string, pixelHeight float32, opts ...Option) (*Run, error) {
	if f == nil {
		return nil, core.Error(core.EINVALID, "cannot lay out text without a font")
	}
	conf := layoutConfig{kerning: true}
	for _, opt := range opts {
		opt(&conf)
	}
	scale := f.ScaleInPixels(pixelHeight)
	if scale <= 0 || math.IsNaN(float64(scale)) {
		return nil, core.Error(core.EINVALID, "cannot lay out text at %gpx", pixelHeight)
	}
	run := &Run{Text: text, PixelHeight: pixelHeight, Scale: scale}
	cl := clusters(text)
	if len(cl) == 0 {
		return run, nil
	}
	baseline := int(float32(f.FontVMetrics().Ascent) * scale)
	cache := make(map[rune]*ttf.FontGlyph)
	failed := make(map[rune]bool)
	minX, minY := math.MaxInt32, math.MaxInt32
	maxX, maxY := math.MinInt32, math.MinInt32
	x := 0
	for i, c := range cl {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, _ := utf8.DecodeRuneInString(c)
		glyph, ok := cache[r]
		if !ok && !failed[r] {
			var err error
			if glyph, err = f.RenderGlyph(ctx, r, scale, conf.userData); err != nil {
				tracer().Debugf("skipping %q: %v", c, err)
				failed[r] = true
			} else {
				cache[r] = glyph
			}
		}
		if glyph == nil {
			run.Skipped++
			continue
		}
		x0 := x + glyph.XOffset
		y0 := baseline + glyph.YOffset
		x1 := x0 + glyph.Image.Width
		y1 := y0 + glyph.Image.Height
		run.Glyphs = append(run.Glyphs, PlacedGlyph{
			Cluster: c,
			Glyph:   glyph,
			Pos:     image.Pt(x0, y0),
			Origin:  x,
		})
		x += glyph.XAdvance
		if conf.kerning && i+1 < len(cl) {
			next, _ := utf8.DecodeRuneInString(cl[i+1])
			x += f.Kerning(glyph.Rune, next, scale)
		}
		minX, maxX = min(minX, x0), max(maxX, x1, x)
		minY, maxY = min(minY, y0), max(maxY, y1)
	}
	if len(run.Glyphs) == 0 {
		return run, nil
	}
	for i := range run.Glyphs {
		run.Glyphs[i].Pos = run.Glyphs[i].Pos.Sub(image.Pt(minX, minY))
		run.Glyphs[i].Origin -= minX
	}
	run.Width, run.Height = maxX-minX, maxY-minY
	run.Baseline = baseline - minY
	tracer().Debugf("laid out %d glyphs in %d×%d pixels", len(run.Glyphs), run.Width, run.Height)
	return run, nil
}

// Compose draws the glyphs of a run into a bitmap the size of the run.
func (run *Run) Compose() *ttf.GlyphBitmap {
	bitmap := ttf.NewGlyphBitmap(run.Width, run.Height)
	for _, g := range run.Glyphs {
		bitmap.Draw(g.Glyph.Image, g.Pos.X, g.Pos.Y)
	}
	return bitmap
}

// Spread is the distance in target pixels at which distance fields saturate.
const Spread = 16

// Render lays out text and composes it into a bitmap. If sdfScale is greater
// than 1, the text is rendered at pixelHeight·sdfScale and transformed into a
// distance field of about pixelHeight, with a spread of Spread target pixels.
func Render(ctx context.Context, f *ttf.Font, text string, pixelHeight float32, sdfScale int,
	opts ...Option) (*ttf.GlyphBitmap, error) {
	//
	if sdfScale < 1 {
		return nil, core.Error(core.EINVALID, "distance field scale must be at least 1, is %d", sdfScale)
	}
	run, err := Layout(ctx, f, text, pixelHeight*float32(sdfScale), opts...)
	if err != nil {
		return nil, err
	}
	bitmap := run.Compose()
	if sdfScale == 1 {
		return bitmap, nil
	}
	return sdf.CreateDistanceField(bitmap, sdfScale, float32(Spread*sdfScale))
}

// Tint converts a bitmap to an image, using the bitmap's alpha channel to blend
// foreground color fg over background color bg.
func Tint(bitmap *ttf.GlyphBitmap, fg, bg color.Color) *image.NRGBA {
	rect := image.Rect(0, 0, bitmap.Width, bitmap.Height)
	img := image.NewNRGBA(rect)
	draw.Draw(img, rect, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.DrawMask(img, rect, image.NewUniform(fg), image.Point{}, bitmap.NRGBA(), image.Point{}, draw.Over)
	return img
}
