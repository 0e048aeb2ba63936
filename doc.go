// Package textatlas renders sets of strings into a single RGBA texture atlas.
//
// # Overview
//
// textatlas takes a list of text requests, wraps each one into lines,
// shapes the lines with HarfBuzz (go-text/typesetting), rasterizes every
// glyph into 8-bit coverage, and composites the result into one fixed-size
// RGBA buffer. The gpu sub-package then uploads that buffer as a mipmapped
// texture.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/textatlas"
//	    "github.com/gogpu/textatlas/text"
//	)
//
//	font, err := text.Open("DejaVuSans.ttf", 48, 1480, 800)
//	if err != nil {
//	    return err
//	}
//	defer font.Close()
//
//	buf, err := textatlas.Composite([]textatlas.TextRequest{
//	    {Text: "Press E to talk", Origin: image.Pt(40, 80), WrapWidth: 30, LineHeight: 56},
//	}, font)
//	if err != nil {
//	    return err
//	}
//	buf.SavePNG("atlas.png")
//
// # Coordinate System
//
//   - Origin (0,0) at top-left of the buffer
//   - X increases right, Y increases down
//   - A request's Origin is the pen position on the first baseline
//
// The texture uploader flips rows so that the uploaded image has the bottom
// row first.
//
// # Regeneration
//
// Every Composite call redraws the whole atlas. There is no packing or
// reuse across calls.
//
// # Concurrency
//
// Compositing is synchronous and single-threaded. A Compositor and its font
// must not be used from more than one goroutine at a time.
package textatlas

// Version is the current version of the library.
const Version = "0.1.0"
