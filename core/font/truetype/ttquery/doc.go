/*
Package ttquery queries metrics and other information from TrueType fonts.

Package ttf concentrates on what is needed to put glyphs on a screen: scaled
metrics in pixels and bitmaps. Package ttquery answers questions about a font in
design units, and knows about a few more tables, e.g. 'name' and 'OS/2'.
Clients of this package will, amongst other, be:

▪︎ font inspection tools, such as ttcli

▪︎ layout engines which do their own scaling

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ttquery

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyphr.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphr.fonts")
}
