package resources

import (
	"context"
	"fmt"
	"regexp"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/glyphr/core"
	"github.com/npillmayer/glyphr/core/font"
	"github.com/npillmayer/glyphr/core/font/fontregistry"
	xfont "golang.org/x/image/font"
)

type resourceType int

// resource types
const (
	unknownResourceType resourceType = iota
	fontResourceType
)

// NotFound returns an application error for a missing resource.
func NotFound(res string, rtype resourceType) error {
	e := fmt.Errorf("resource missing: %v", res)
	var s string
	switch rtype {
	case fontResourceType:
		s = fmt.Sprintf("font not found: %s, using fallback font instead", res)
	default:
		s = fmt.Sprintf("resource not found: %s", res)
	}
	return core.WrapError(e, core.EMISSING, s)
}

// --- Fonts -----------------------------------------------------------------

type fontPlusErr struct {
	font *font.TypeCase
	err  error
}

// TypeCasePromise is returned by ResolveTypeCase. Calling TypeCase blocks until
// the font has been resolved.
type TypeCasePromise interface {
	TypeCase() (*font.TypeCase, error)
	Await(ctx context.Context) (*font.TypeCase, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*font.TypeCase, error)
}

func (loader fontLoader) TypeCase() (*font.TypeCase, error) {
	return loader.await(context.Background())
}

func (loader fontLoader) Await(ctx context.Context) (*font.TypeCase, error) {
	return loader.await(ctx)
}

// ResolveTypeCase resolves a typecase for a font of a given style, weight and pixel
// height. Fonts are searched for
//
//   - in the global font registry
//   - as a system font file, with name being a file name
//   - among the system fonts, with name being a family name
//
// A font found on the system is stored in the global registry. If no font can
// be found, the promise delivers a typecase of the fallback font together with
// an error of code core.EMISSING.
func ResolveTypeCase(name string, style xfont.Style, weight xfont.Weight, pixelHeight float32) TypeCasePromise {
	ch := make(chan fontPlusErr, 1)
	go func(ch chan<- fontPlusErr) {
		defer close(ch)
		result := fontPlusErr{}
		registry := fontregistry.GlobalRegistry()
		key := font.NormalizeFontname(name, style, weight)
		if _, ok := registry.Font(key); ok {
			result.font, result.err = registry.TypeCase(key, pixelHeight)
			ch <- result
			return
		}
		f := findSystemFont(name, style, weight)
		if f == nil {
			result.font, _ = registry.TypeCase(key, pixelHeight) // fallback
			result.err = NotFound(name, fontResourceType)
			ch <- result
			return
		}
		registry.StoreFont(key, f)
		result.font, result.err = registry.TypeCase(key, pixelHeight)
		ch <- result
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) (*font.TypeCase, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.font, r.err
			}
		},
	}
}

func findSystemFont(name string, style xfont.Style, weight xfont.Weight) *font.ScalableFont {
	if fpath, err := findfont.Find(name); err == nil && fpath != "" {
		tracer().Debugf("%s is a system font file: %s", name, fpath)
		f, err := font.LoadTrueTypeFont(fpath)
		if err == nil {
			return f
		}
		tracer().Errorf("cannot load system font %s: %v", fpath, err)
	}
	pattern := regexp.QuoteMeta(name)
	desc, variant, confidence := font.ClosestMatch(systemFontDescriptors(), pattern, style, weight)
	tracer().Debugf("closest system font match for %s is %s|%s, confidence %d",
		name, desc.Family, variant, confidence)
	if confidence <= font.LowConfidence {
		return nil
	}
	f, err := font.LoadTrueTypeFont(desc.Path)
	if err != nil {
		tracer().Errorf("cannot load system font %s: %v", desc.Path, err)
		return nil
	}
	return f
}
