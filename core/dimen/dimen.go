/*
Package dimen implements lengths and units.

Lengths are measured in CSS pixels, i.e. 1/96 of an inch, which is the unit
glyphs are rendered in. Other units are converted on parsing.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package dimen

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/glyphr/core"
)

// Dimen is a length in pixels.
type Dimen float32

// Some pre-defined dimensions
const (
	Zero Dimen = 0
	PX   Dimen = 1          // CSS pixel
	IN   Dimen = 96         // inch
	BP   Dimen = IN / 72    // big point (PDF) = 1/72 inch
	PT   Dimen = IN / 72.27 // printers point
	PC   Dimen = 12 * PT    // pica
	CM   Dimen = IN / 2.54  // centimeters
	MM   Dimen = CM / 10    // millimeters
)

// Stringer implementation.
func (d Dimen) String() string {
	return strconv.FormatFloat(float64(d), 'g', 6, 32) + "px"
}

// Points returns a dimension in big (PDF) points.
func (d Dimen) Points() float32 {
	return float32(d / BP)
}

// Pixels returns a dimension as a pixel height, suitable for typecases.
func (d Dimen) Pixels() float32 {
	return float32(d)
}

var dimenPattern = regexp.MustCompile(`^([+\-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+))\s*(%|[a-z]{2})?$`)

// ParseDimen parses a string to return a dimension. Syntax is CSS Unit;
// numbers without a unit are pixels. Relative units ('em' and '%') are
// resolved against em.
func ParseDimen(s string, em Dimen) (Dimen, error) {
	d := dimenPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if d == nil {
		return 0, core.Error(core.EINVALID, "format error parsing dimension %q", s)
	}
	n, err := strconv.ParseFloat(d[1], 32)
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "format error parsing dimension %q", s)
	}
	var unit Dimen
	switch d[2] {
	case "", "px":
		unit = PX
	case "pt":
		unit = PT
	case "bp":
		unit = BP
	case "pc":
		unit = PC
	case "mm":
		unit = MM
	case "cm":
		unit = CM
	case "in":
		unit = IN
	case "em":
		unit = em
	case "%":
		unit = em / 100
	default:
		return 0, core.Error(core.EINVALID, "unknown unit in dimension %q", s)
	}
	return Dimen(n) * unit, nil
}

// Clamp restricts d to [lo…hi].
func Clamp(d, lo, hi Dimen) Dimen {
	return min(max(d, lo), hi)
}
