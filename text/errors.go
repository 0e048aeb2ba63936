package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrClosed is returned when a FontResource is used after Close.
	ErrClosed = errors.New("text: font resource is closed")

	// ErrInvalidPointSize is returned when the point size is not positive.
	ErrInvalidPointSize = errors.New("text: point size must be positive")

	// ErrInvalidAtlasSize is returned when an atlas dimension is not positive.
	ErrInvalidAtlasSize = errors.New("text: atlas dimensions must be positive")

	// ErrUnknownRasterizer is returned when no rasterizer backend is
	// registered under the requested name.
	ErrUnknownRasterizer = errors.New("text: unknown rasterizer backend")

	// ErrGlyphNotFound is returned when a glyph id is outside the font.
	ErrGlyphNotFound = errors.New("text: glyph not found")
)

// FontLoadError is returned when a FontResource cannot be constructed.
// Op names the failing stage: "read", "parse", "size", "shape-face" or
// "rasterizer".
type FontLoadError struct {
	Path string
	Op   string
	Err  error
}

func (e *FontLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("text: load font: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("text: load font %q: %s: %v", e.Path, e.Op, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// GlyphError reports a glyph that could not be loaded or rendered.
// It only affects that glyph; the compositor skips it.
type GlyphError struct {
	GID GlyphID
	Err error
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("text: glyph %d: %v", e.GID, e.Err)
}

func (e *GlyphError) Unwrap() error { return e.Err }

// WrapConfigError is returned by Wrap when the maximum line length
// cannot guarantee forward progress.
type WrapConfigError struct {
	MaxLineLength int
}

func (e *WrapConfigError) Error() string {
	return fmt.Sprintf("text: wrap width must be at least 1, got %d", e.MaxLineLength)
}
