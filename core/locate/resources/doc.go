/*
Package resources resolves fonts for an application.

As resource loading may be a time-consuming task, some functions in this
package will work in an async/await fashion by returning a promise.
Functions named

	Resolve…(…)

will return a resource-specific promise type, which the client will call later
to receive the loaded resource. The call to the promise-function will then block
until loading has completed.

Fonts are searched for in the global font registry first, then among the fonts
installed on the system. If everything fails, the fallback font is used.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'glyphr.resources'.
func tracer() tracing.Trace {
	return tracing.Select("glyphr.resources")
}
