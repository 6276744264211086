package font

import (
	"path"
	"regexp"
	"strconv"
	"strings"

	xfont "golang.org/x/image/font"
)

// Descriptor describes a font family available from some source, together
// with the variants the source offers, e.g. "regular", "italic" or "700".
type Descriptor struct {
	Family   string
	Path     string
	Variants []string
}

// NormalizeFontname creates a registry key from a font name, a style and a
// weight. File extensions are stripped.
func NormalizeFontname(fname string, style xfont.Style, weight xfont.Weight) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	switch style {
	case xfont.StyleItalic, xfont.StyleOblique:
		fname += "-italic"
	}
	switch weight {
	case xfont.WeightLight, xfont.WeightExtraLight:
		fname += "-light"
	case xfont.WeightBold, xfont.WeightExtraBold, xfont.WeightSemiBold:
		fname += "-bold"
	}
	return fname
}

// GuessStyleAndWeight trys to guess a font's style and weight from the
// font's file name.
func GuessStyleAndWeight(fontfilename string) (xfont.Style, xfont.Weight) {
	fontfilename = path.Base(fontfilename)
	ext := path.Ext(fontfilename)
	fontfilename = strings.ToLower(fontfilename[:len(fontfilename)-len(ext)])
	s := strings.Split(fontfilename, "-")
	if len(s) > 1 {
		switch s[len(s)-1] {
		case "light", "xlight":
			return xfont.StyleNormal, xfont.WeightLight
		case "normal", "medium", "regular", "r":
			return xfont.StyleNormal, xfont.WeightNormal
		case "bold", "b":
			return xfont.StyleNormal, xfont.WeightBold
		case "xbold", "black":
			return xfont.StyleNormal, xfont.WeightExtraBold
		case "italic", "i":
			return xfont.StyleItalic, xfont.WeightNormal
		}
	}
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if strings.Contains(fontfilename, "italic") {
		style = xfont.StyleItalic
	} else if strings.Contains(fontfilename, "oblique") {
		style = xfont.StyleOblique
	}
	if strings.Contains(fontfilename, "light") {
		weight = xfont.WeightLight
	}
	if strings.Contains(fontfilename, "bold") {
		weight = xfont.WeightBold
	}
	return style, weight
}

// Matches returns true if a font's filename contains pattern and indicators
// for a given style and weight.
func Matches(fontfilename, pattern string, style xfont.Style, weight xfont.Weight) bool {
	basename := path.Base(fontfilename)
	basename = basename[:len(basename)-len(path.Ext(basename))]
	basename = strings.ToLower(basename)
	tracer().Debugf("basename of font = %s", basename)
	if !strings.Contains(basename, strings.ToLower(pattern)) {
		return false
	}
	s, w := GuessStyleAndWeight(basename)
	return s == style && w == weight
}

// MatchConfidence is a type for expressing the confidence level of font matching.
type MatchConfidence int

const (
	NoConfidence      MatchConfidence = 0
	LowConfidence     MatchConfidence = 2
	HighConfidence    MatchConfidence = 3
	PerfectConfidence MatchConfidence = 4
)

// ClosestMatch scans a list of font desriptors and returns the closest match
// for a given set of parameters. pattern is a regular expression, matched
// against the lowercase family names.
// If no variant matches, returns `NoConfidence`.
func ClosestMatch(fdescs []Descriptor, pattern string, style xfont.Style,
	weight xfont.Weight) (match Descriptor, variant string, confidence MatchConfidence) {
	//
	r, err := regexp.Compile(strings.ToLower(pattern))
	if err != nil {
		tracer().Errorf("invalid font name pattern %q", pattern)
		return
	}
	for _, fdesc := range fdescs {
		if !r.MatchString(strings.ToLower(fdesc.Family)) {
			continue
		}
		for _, v := range fdesc.Variants {
			s := MatchStyle(v, style)
			w := MatchWeight(v, weight)
			if (s+w)/2 > confidence {
				confidence = (s + w) / 2
				variant = v
				match = fdesc
			}
		}
	}
	return
}

// MatchStyle trys to match a font-variant to a given style.
func MatchStyle(variantName string, style xfont.Style) MatchConfidence {
	variantName = strings.ToLower(variantName)
	switch style {
	case xfont.StyleNormal:
		switch variantName {
		case "regular", "normal", "400":
			return PerfectConfidence
		case "100", "200", "300", "500", "600", "700", "800", "900", "bold", "light":
			return HighConfidence
		}
		return NoConfidence
	case xfont.StyleItalic:
		if strings.Contains(variantName, "italic") {
			return PerfectConfidence
		}
		if strings.Contains(variantName, "obliq") {
			return HighConfidence
		}
		return NoConfidence
	case xfont.StyleOblique:
		if strings.Contains(variantName, "obliq") {
			return PerfectConfidence
		}
		if strings.Contains(variantName, "italic") {
			return HighConfidence
		}
		return NoConfidence
	}
	return NoConfidence
}

// MatchWeight trys to match a font-variant to a given weight.
//
// Weights of x/image/font map to CSS font-weight values: WeightThin = -3 is
// weight 100, WeightNormal = 0 is 400, WeightBlack = +5 is 900.
func MatchWeight(variantName string, weight xfont.Weight) MatchConfidence {
	variantName = strings.ToLower(variantName)
	if strconv.Itoa((int(weight)+4)*100) == variantName {
		return PerfectConfidence
	}
	switch variantName {
	case "regular", "400", "italic", "oblique", "normal", "text":
		switch weight {
		case xfont.WeightNormal, xfont.WeightMedium:
			return PerfectConfidence
		case xfont.WeightThin, xfont.WeightExtraLight, xfont.WeightLight:
			return LowConfidence
		}
		return NoConfidence
	case "100", "200", "300", "light":
		switch weight {
		case xfont.WeightThin, xfont.WeightExtraLight, xfont.WeightLight:
			return PerfectConfidence
		case xfont.WeightNormal, xfont.WeightMedium:
			return LowConfidence
		}
		return NoConfidence
	case "500":
		switch weight {
		case xfont.WeightMedium:
			return PerfectConfidence
		case xfont.WeightSemiBold:
			return HighConfidence
		case xfont.WeightNormal, xfont.WeightBold:
			return LowConfidence
		}
		return NoConfidence
	case "bold", "700":
		switch weight {
		case xfont.WeightBold:
			return PerfectConfidence
		case xfont.WeightSemiBold, xfont.WeightExtraBold:
			return HighConfidence
		}
		return NoConfidence
	case "extrabold", "600", "800", "900":
		switch weight {
		case xfont.WeightSemiBold:
			return LowConfidence
		case xfont.WeightBold:
			return HighConfidence
		}
		return NoConfidence
	}
	return NoConfidence
}
