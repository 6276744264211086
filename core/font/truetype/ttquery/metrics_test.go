package ttquery

import (
	"testing"

	"github.com/npillmayer/glyphr/core/font/truetype"
	"github.com/npillmayer/glyphr/core/font/truetype/ttf"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// --- Test Suite Preparation ------------------------------------------------

type MetricsTestEnviron struct {
	suite.Suite
	goregular *ttf.Font
	reference *sfnt.Font
}

// listen for 'go test' command --> run test methods
func TestMetricsFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphr.fonts")
	defer teardown()
	suite.Run(t, new(MetricsTestEnviron))
}

// run once, before test suite methods
func (env *MetricsTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("glyphr.fonts").SetTraceLevel(tracing.LevelError)
	env.goregular = parseFont(env.T(), goregular.TTF)
	var err error
	env.reference, err = sfnt.Parse(goregular.TTF)
	env.Require().NoError(err)
	tracing.Select("glyphr.fonts").SetTraceLevel(tracing.LevelInfo)
}

// run once, after test suite methods
func (env *MetricsTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

// --- Tests -----------------------------------------------------------------

func (env *MetricsTestEnviron) TestFontMetrics() {
	m := FontMetrics(env.goregular)
	env.T().Logf("font metrics = %+v", m)
	env.Equal(truetype.FontMetricsInfo{
		UnitsPerEm: 2048,
		Ascent:     1935,
		Descent:    -432,
		LineGap:    0,
		MaxAdvance: 2240,
		XHeight:    1086,
		CapHeight:  1480,
	}, m)
	env.Equal(sfnt.Units(2367), m.LineHeight())
	// with ppem = units per em, x/image reports metrics in design units
	ref, err := env.reference.Metrics(nil, fixed.Int26_6(m.UnitsPerEm), xfont.HintingNone)
	env.Require().NoError(err)
	env.Equal(fixed.Int26_6(m.Ascent), ref.Ascent)
	env.Equal(fixed.Int26_6(-m.Descent), ref.Descent)
	env.Equal(fixed.Int26_6(m.XHeight), ref.XHeight)
	env.Equal(fixed.Int26_6(m.CapHeight), ref.CapHeight)
}

func (env *MetricsTestEnviron) TestGlyphMetrics() {
	gid := env.goregular.GlyphIndex('A')
	env.Equal(ttf.GlyphIndex(36), gid, "expected glyph index of 'A' in test font to be 36")
	m := GlyphMetrics(env.goregular, gid)
	env.T().Logf("metrics = %v", m)
	env.Equal(sfnt.Units(1366), m.Advance, "expected advance of 'A' to be 1366 units")
	env.Equal(sfnt.Units(19), m.LSB)
	env.Equal(truetype.BoundingBox{MinX: 19, MinY: 0, MaxX: 1342, MaxY: 1480}, m.BBox)
	env.Equal(sfnt.Units(1366-(19+1323)), m.RSB)
	//
	space := GlyphMetrics(env.goregular, env.goregular.GlyphIndex(' '))
	env.Equal(sfnt.Units(569), space.Advance)
	env.True(space.BBox.Empty())
	env.Equal(sfnt.Units(0), space.RSB, "RSB undefined for glyphs without contours")
}

func (env *MetricsTestEnviron) TestAdvancesAgainstReference() {
	var buf sfnt.Buffer
	ppem := fixed.Int26_6(env.goregular.UnitsPerEm())
	for _, r := range "AVWaeo.,;?ÄäöüßÆ€" {
		gid := env.goregular.GlyphIndex(r)
		refGid, err := env.reference.GlyphIndex(&buf, r)
		env.Require().NoError(err)
		env.Equal(uint16(refGid), uint16(gid), "glyph index for %q", r)
		adv, err := env.reference.GlyphAdvance(&buf, refGid, ppem, xfont.HintingNone)
		env.Require().NoError(err)
		m := GlyphMetrics(env.goregular, gid)
		env.Equal(adv, fixed.Int26_6(m.Advance), "advance for %q", r)
	}
}

func (env *MetricsTestEnviron) TestCodePointForGlyph() {
	env.Equal('A', CodePointForGlyph(env.goregular, 36))
	env.Equal(rune(0), CodePointForGlyph(env.goregular, 0))
}
