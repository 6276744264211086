package svgdoc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/glyphr/core"
	"github.com/npillmayer/glyphr/core/dimen"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emoji = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 -36 36 36" width="36" height="36">
  <style>
    .face { fill: #FFCC4D; }
    .eye  { fill: #664500; stroke: none }
  </style>
  <g id="glyph7">
    <circle class="face" cx="18" cy="-18" r="18"/>
    <ellipse class="eye" cx="12" cy="-22" rx="2.5" ry="3.5"/>
    <path style="fill: #FF7892; opacity: 0.8" d="M10 -10h16"/>
    <path fill="none" stroke="#664500" d="M8 -8h20"/>
    <path fill="#ff7892" d="M9 -9h18"/>
  </g>
</svg>`

func TestInspect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphr.fonts")
	defer teardown()
	//
	info, err := Inspect(emoji, 7)
	require.NoError(t, err)
	assert.True(t, info.HasViewBox)
	assert.Equal(t, [4]float64{0, -36, 36, 36}, info.ViewBox)
	assert.Equal(t, "36", info.Width)
	assert.Equal(t, "36", info.Height)
	assert.True(t, info.HasGlyph)
	assert.Equal(t, 2, info.StyleRules)
	if diff := cmp.Diff([]string{"#ffcc4d", "#664500", "#ff7892"}, info.Fills); diff != "" {
		t.Errorf("fill colors differ (-want +got):\n%s", diff)
	}
	//
	info, err = Inspect(emoji, 8)
	require.NoError(t, err)
	assert.False(t, info.HasGlyph)
}

func TestInspectInvalid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphr.fonts")
	defer teardown()
	//
	_, err := Inspect("<html><body>no vector graphics</body></html>", 1)
	assert.Equal(t, core.EINVALID, core.Code(err))
	info, err := Inspect(`<svg viewBox="0 0 ten 10"><g id="glyph1"/></svg>`, 1)
	require.NoError(t, err)
	assert.False(t, info.HasViewBox)
	assert.True(t, info.HasGlyph)
	assert.Empty(t, info.Fills)
}

func TestExtent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphr.fonts")
	defer teardown()
	//
	info, err := Inspect(emoji, 7)
	require.NoError(t, err)
	w, h, ok := info.Extent(16)
	assert.True(t, ok)
	assert.Equal(t, dimen.Dimen(36), w)
	assert.Equal(t, dimen.Dimen(36), h)
	info, err = Inspect(`<svg viewBox="0 0 20 10" width="2em" height="100%"/>`, 1)
	require.NoError(t, err)
	w, h, ok = info.Extent(16)
	assert.True(t, ok)
	assert.Equal(t, dimen.Dimen(32), w)
	assert.Equal(t, dimen.Dimen(10), h, "percentage falls back to the view box")
	info, err = Inspect(`<svg width="1in"/>`, 1)
	require.NoError(t, err)
	_, _, ok = info.Extent(16)
	assert.False(t, ok, "height is unknown")
}
