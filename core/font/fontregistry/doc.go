/*
Package fontregistry manages a registry for loaded fonts.

Fonts are stored under a normalized name (see font.NormalizeFontname).
Typecases derived from registered fonts are cached per pixel height.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'glyphr.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphr.fonts")
}
