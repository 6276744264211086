package ttf

import (
	"fmt"

	"github.com/npillmayer/glyphr/core"
)

// A FormatError reports that the input is not a valid TrueType font, or that
// a structure within the font is inconsistent (e.g., a composite glyph
// referencing itself).
type FormatError string

func (e FormatError) Error() string {
	return "ttf: invalid TrueType format: " + string(e)
}

// ErrorCode is part of interface core.AppError.
func (e FormatError) ErrorCode() int {
	return core.EINVALID
}

// UserMessage is part of interface core.AppError.
func (e FormatError) UserMessage() string {
	return "invalid font format: " + string(e)
}

// An UnsupportedError reports that the input uses a valid but unimplemented
// TrueType feature.
type UnsupportedError string

func (e UnsupportedError) Error() string {
	return "ttf: unsupported TrueType feature: " + string(e)
}

// ErrorCode is part of interface core.AppError.
func (e UnsupportedError) ErrorCode() int {
	return core.EUNSUPPORTED
}

// UserMessage is part of interface core.AppError.
func (e UnsupportedError) UserMessage() string {
	return "unsupported font feature: " + string(e)
}

// InvalidGlyphSizeError is returned when the pixel bounding box of a glyph
// to render is empty. It concerns a single glyph only; the font remains usable.
type InvalidGlyphSizeError struct {
	Glyph         GlyphIndex
	Width, Height int
}

func (e InvalidGlyphSizeError) Error() string {
	return fmt.Sprintf("ttf: invalid glyph size %d×%d for glyph %d", e.Width, e.Height, e.Glyph)
}

// ErrorCode is part of interface core.AppError.
func (e InvalidGlyphSizeError) ErrorCode() int {
	return core.EINVALID
}

// UserMessage is part of interface core.AppError.
func (e InvalidGlyphSizeError) UserMessage() string {
	return fmt.Sprintf("glyph %d has no visible extent", e.Glyph)
}

var _ core.AppError = FormatError("")
var _ core.AppError = UnsupportedError("")
var _ core.AppError = InvalidGlyphSizeError{}
