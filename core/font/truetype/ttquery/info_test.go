package ttquery

import (
	"testing"

	"github.com/npillmayer/glyphr/core/font/truetype/ttf"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
)

// --- Test Suite Preparation ------------------------------------------------

type InfoTestEnviron struct {
	suite.Suite
	goregular *ttf.Font
	gomono    *ttf.Font
}

// listen for 'go test' command --> run test methods
func TestInfoFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphr.fonts")
	defer teardown()
	suite.Run(t, new(InfoTestEnviron))
}

// run once, before test suite methods
func (env *InfoTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("glyphr.fonts").SetTraceLevel(tracing.LevelError)
	env.goregular = parseFont(env.T(), goregular.TTF)
	env.gomono = parseFont(env.T(), gomono.TTF)
	tracing.Select("glyphr.fonts").SetTraceLevel(tracing.LevelInfo)
}

// run once, after test suite methods
func (env *InfoTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

func parseFont(t *testing.T, data []byte) *ttf.Font {
	f, err := ttf.Parse(data)
	if err != nil {
		t.Fatalf("cannot parse test font: %v", err)
	}
	return f
}

// --- Tests -----------------------------------------------------------------

func (env *InfoTestEnviron) TestFontTypeInfo() {
	fti := FontType(env.goregular)
	env.Equal("TrueType", fti, "expected font type of test font to be TrueType")
	env.Equal("<empty>", FontType(nil))
}

func (env *InfoTestEnviron) TestGeneralInfo() {
	info := NameInfo(env.goregular, language.English)
	env.T().Logf("info = %v", info)
	fam, ok := info["family"]
	env.Require().True(ok, "font familiy identifier not found in font info")
	env.Equal("Go", fam, "expected font family name 'Go'")
	env.Equal("Regular", info["subfamily"])
	env.Contains(info["version"], "Version")
	//
	info = NameInfo(env.gomono, language.German)
	env.Equal("Go Mono", info["family"], "expected fallback to English names")
}

func (env *InfoTestEnviron) TestLayoutInfo() {
	layouts := LayoutTables(env.goregular)
	env.T().Logf("test font layout tables: %v", layouts)
	for _, lt := range layouts {
		env.Contains([]string{"GSUB", "GPOS", "BASE", "JSTF", "GDEF"}, lt)
	}
}
