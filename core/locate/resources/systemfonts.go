package resources

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/glyphr/core/font"
)

var loadSystemFontsTask sync.Once
var systemFonts []font.Descriptor

// systemFontDescriptors lists the TrueType fonts installed on the system,
// one descriptor per font file. The list is created once.
func systemFontDescriptors() []font.Descriptor {
	loadSystemFontsTask.Do(func() {
		systemFonts = descriptorsFromPaths(findfont.List())
		tracer().Infof("found %d system fonts", len(systemFonts))
	})
	return systemFonts
}

// descriptorsFromPaths creates font descriptors from font file paths.
// Files other than TrueType fonts and collections are skipped.
func descriptorsFromPaths(paths []string) []font.Descriptor {
	descs := make([]font.Descriptor, 0, len(paths))
	skipped := 0
	for _, fontpath := range paths {
		switch strings.ToLower(filepath.Ext(fontpath)) {
		case ".ttf", ".ttc":
		default:
			skipped++
			continue
		}
		family, variant := familyAndVariant(fontpath)
		descs = append(descs, font.Descriptor{
			Family:   family,
			Path:     fontpath,
			Variants: []string{variant},
		})
	}
	if skipped > 0 {
		tracer().Debugf("skipping %d system fonts which are not TrueType", skipped)
	}
	return descs
}

// familyAndVariant splits a font file name like "DejaVuSans-BoldOblique.ttf"
// into family and variant.
func familyAndVariant(fontpath string) (string, string) {
	base := filepath.Base(fontpath)
	base = base[:len(base)-len(filepath.Ext(base))]
	family, vari := base, ""
	if dash := strings.LastIndex(base, "-"); dash > 0 {
		family, vari = base[:dash], strings.ToLower(base[dash+1:])
	}
	family = strings.ReplaceAll(family, "_", " ")
	switch {
	case vari == "", strings.Contains(vari, "regular"), strings.Contains(vari, "text"):
		return family, "regular"
	case strings.Contains(vari, "italic") || strings.Contains(vari, "oblique"):
		return family, "italic"
	case strings.Contains(vari, "light"):
		return family, "light"
	case strings.Contains(vari, "bold"), strings.Contains(vari, "black"):
		return family, "bold"
	}
	return family, "regular"
}
