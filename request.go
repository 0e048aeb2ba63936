package textatlas

import "image"

// TextRequest describes one string to draw into the atlas.
//
// Origin is the pen start of the first line in buffer pixels, with y
// pointing down; glyphs sit on a baseline at Origin.Y. WrapWidth is a
// character count, not a pixel width. LineHeight is the pixel distance
// between successive baselines.
type TextRequest struct {
	Text       string
	Origin     image.Point
	WrapWidth  int
	LineHeight int
}
