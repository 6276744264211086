package fontregistry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/npillmayer/glyphr/core"
	"github.com/npillmayer/glyphr/core/font"
	"github.com/npillmayer/schuko/tracing"
)

// Registry is a type for holding information about loaded fonts and the
// typecases derived from them.
type Registry struct {
	sync.Mutex
	fonts     map[string]*font.ScalableFont
	typecases map[string]*font.TypeCase
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold information about
// loaded fonts and typecases.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	fr := &Registry{
		fonts:     make(map[string]*font.ScalableFont),
		typecases: make(map[string]*font.TypeCase),
	}
	return fr
}

// fallbackKey is the registry key of the fallback font.
const fallbackKey = "fallback"

// StoreFont pushes a font into the registry if it isn't contained yet.
//
// The font will be stored using the normalized font name as a key. If this
// key is already associated with a font, that font will not be overridden.
func (fr *Registry) StoreFont(normalizedName string, f *font.ScalableFont) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	if _, ok := fr.fonts[normalizedName]; !ok {
		tracer().Debugf("registry stores font %s as %s", f.Fontname, normalizedName)
		fr.fonts[normalizedName] = f
	}
}

// Font returns the font stored under a normalized name, if any.
func (fr *Registry) Font(normalizedName string) (*font.ScalableFont, bool) {
	fr.Lock()
	defer fr.Unlock()
	f, ok := fr.fonts[normalizedName]
	return f, ok
}

// TypeCase returns a concrete typecase with a given font and pixel height.
// If a suitable typecase has already been cached, TypeCase will return the cached
// typecase. If a suitable font has previously been stored under key
// `normalizedName`, a typecase will be derived from this font.
//
// If no typecase can be produced, TypeCase will derive one from the
// fallback font and return it, together with an error of code core.EMISSING.
func (fr *Registry) TypeCase(normalizedName string, pixelHeight float32) (*font.TypeCase, error) {
	tracer().Debugf("registry searches for font %s at %.2fpx", normalizedName, pixelHeight)
	tname := appendSize(normalizedName, pixelHeight)
	fr.Lock()
	defer fr.Unlock()
	if t, ok := fr.typecases[tname]; ok {
		tracer().Debugf("registry found typecase %s", tname)
		return t, nil
	}
	if f, ok := fr.fonts[normalizedName]; ok {
		t, err := f.PrepareCase(pixelHeight)
		if err != nil {
			return t, err // do not cache typecases with substituted size
		}
		tracer().Infof("font registry has font %s, caches at %.2fpx", normalizedName, pixelHeight)
		fr.typecases[tname] = t
		return t, nil
	}
	tracer().Infof("registry does not contain font %s", normalizedName)
	err := core.Error(core.EMISSING, "font %s not found in registry", normalizedName)
	//
	// store typecase from fallback font, if not present yet, and return it
	tname = appendSize(fallbackKey, pixelHeight)
	if t, ok := fr.typecases[tname]; ok {
		return t, err
	}
	f := font.FallbackFont()
	t, sizeErr := f.PrepareCase(pixelHeight)
	if sizeErr != nil {
		return t, err
	}
	tracer().Infof("font registry caches fallback font at %.2fpx", pixelHeight)
	fr.fonts[fallbackKey] = f
	fr.typecases[tname] = t
	return t, err
}

// FontNames returns the keys of all fonts in the registry, sorted.
func (fr *Registry) FontNames() []string {
	fr.Lock()
	defer fr.Unlock()
	names := make([]string, 0, len(fr.fonts))
	for k := range fr.fonts {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LogFontList is a helper function to dump the list of known fonts and typecases
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	fr.Lock()
	defer fr.Unlock()
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	for k, v := range fr.fonts {
		tracer().Infof("font [%s] = %v", k, v.Fontname)
	}
	for k, v := range fr.typecases {
		tracer().Infof("typecase [%s] = %v", k, v.ScalableFontParent().Fontname)
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

func appendSize(fname string, size float32) string {
	return fmt.Sprintf("%s-%.2f", fname, size)
}
