package fontregistry

import (
	"sync"
	"testing"

	"github.com/npillmayer/glyphr/core"
	"github.com/npillmayer/glyphr/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

func TestStoreAndRetrieve(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphr.fonts")
	defer teardown()
	//
	mono, err := font.ParseTrueTypeFont(gomono.TTF)
	require.NoError(t, err)
	key := font.NormalizeFontname(mono.Fontname, xfont.StyleNormal, xfont.WeightNormal)
	require.Equal(t, "go_mono", key)
	fr := NewRegistry()
	fr.StoreFont(key, mono)
	fr.StoreFont(key, font.FallbackFont()) // must not override
	f, ok := fr.Font(key)
	require.True(t, ok)
	assert.Same(t, mono, f)
	//
	tc, err := fr.TypeCase(key, 24)
	require.NoError(t, err)
	assert.Same(t, mono, tc.ScalableFontParent())
	again, err := fr.TypeCase(key, 24)
	require.NoError(t, err)
	assert.Same(t, tc, again, "typecases are cached")
	fr.LogFontList()
}

func TestFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphr.fonts")
	defer teardown()
	//
	fr := NewRegistry()
	tc, err := fr.TypeCase("nosuchfont", 16)
	assert.Equal(t, core.EMISSING, core.Code(err))
	require.NotNil(t, tc)
	assert.Same(t, font.FallbackFont(), tc.ScalableFontParent())
	again, _ := fr.TypeCase("another-missing-font", 16)
	assert.Same(t, tc, again, "fallback typecase is cached per size")
	assert.Equal(t, []string{"fallback"}, fr.FontNames())
}

func TestInvalidSizeNotCached(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphr.fonts")
	defer teardown()
	//
	fr := NewRegistry()
	fr.StoreFont("go", font.FallbackFont())
	tc, err := fr.TypeCase("go", 0)
	assert.Equal(t, core.EINVALID, core.Code(err))
	require.NotNil(t, tc)
	_, err = fr.TypeCase("go", 0)
	assert.Error(t, err, "typecase with substituted size must not be cached")
}

func TestConcurrentAccess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphr.fonts")
	defer teardown()
	//
	fr := GlobalRegistry()
	assert.Same(t, fr, GlobalRegistry())
	fr.StoreFont("go-regular", font.FallbackFont())
	var wg sync.WaitGroup
	cases := make([]*font.TypeCase, 8)
	for i := range cases {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cases[i], _ = fr.TypeCase("go-regular", 12)
		}(i)
	}
	wg.Wait()
	for _, tc := range cases[1:] {
		assert.Same(t, cases[0], tc)
	}
}
