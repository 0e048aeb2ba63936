package text

import "golang.org/x/image/math/fixed"

// GlyphID is a unique identifier for a glyph within a font.
// The glyph ID is assigned by the font file and is font-specific.
type GlyphID uint16

// ShapedGlyph is one entry of a GlyphRun.
// Advances and offsets are 26.6 fixed-point pixels (1/64 pixel units).
type ShapedGlyph struct {
	// GID is the glyph index in the font.
	GID GlyphID

	// XAdvance, YAdvance move the pen after this glyph.
	XAdvance fixed.Int26_6
	YAdvance fixed.Int26_6

	// XOffset, YOffset displace the glyph from the pen without moving it.
	XOffset fixed.Int26_6
	YOffset fixed.Int26_6
}

// GlyphRun is the shaped form of one line, in visual order.
type GlyphRun []ShapedGlyph

// Advance returns the summed horizontal advance of the run.
func (r GlyphRun) Advance() fixed.Int26_6 {
	var total fixed.Int26_6
	for _, g := range r {
		total += g.XAdvance
	}
	return total
}

// CoverageBitmap is an 8-bit coverage raster for a single glyph.
//
// Left is the horizontal distance from the pen to the first column. Top is
// the distance from the baseline up to the first row, so the first row sits
// at penY - Top in a top-down buffer.
type CoverageBitmap struct {
	Width int
	Rows  int

	// Stride is the byte distance between rows of Pix.
	Stride int
	Pix    []byte

	Left int
	Top  int
}

// Empty reports whether the bitmap has no pixels, as for a space.
func (b CoverageBitmap) Empty() bool {
	return b.Width <= 0 || b.Rows <= 0
}

// At returns the coverage at column x, row y.
func (b CoverageBitmap) At(x, y int) uint8 {
	return b.Pix[y*b.Stride+x]
}

// Tint is an RGB text color.
type Tint struct {
	R, G, B uint8
}

// White is the default tint.
var White = Tint{R: 255, G: 255, B: 255}
