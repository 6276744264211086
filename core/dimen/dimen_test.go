package dimen

import (
	"testing"

	"github.com/npillmayer/glyphr/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestParseDimen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphr.fonts")
	defer teardown()
	//
	for input, want := range map[string]Dimen{
		"12px":   12,
		"0":      0,
		"36":     36,
		"72bp":   96,
		"1in":    96,
		"2.54cm": 96,
		" 1.5em": 24,
		"50%":    8,
		"12PT":   12 * PT,
		".5in":   48,
	} {
		d, err := ParseDimen(input, 16)
		if err != nil {
			t.Errorf("%q: %s", input, err.Error())
			continue
		}
		assert.InDelta(t, float64(want), float64(d), 1e-3, input)
	}
	for _, input := range []string{"", "px", "12 furlongs", "1.2.3pt", "12xx"} {
		_, err := ParseDimen(input, 16)
		assert.Equal(t, core.EINVALID, core.Code(err), input)
	}
}

func TestClamp(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphr.fonts")
	defer teardown()
	//
	assert.Equal(t, Dimen(4), Clamp(1, 4, 2048))
	assert.Equal(t, Dimen(2048), Clamp(3000, 4, 2048))
	assert.Equal(t, Dimen(32), Clamp(32, 4, 2048))
	assert.Equal(t, "12px", Dimen(12).String())
	assert.InDelta(t, 9.0, float64(Dimen(12).Points()), 1e-5)
}
