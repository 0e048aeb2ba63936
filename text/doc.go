// Package text turns strings into glyph coverage for atlas compositing.
//
// # Overview
//
// A FontResource bundles a parsed font, a HarfBuzz shaping context bound to
// it, and a glyph rasterizer, all at one fixed size:
//
//	font, err := text.Open("DejaVuSans.ttf", 48, 1480, 800)
//	if err != nil {
//	    return err // *text.FontLoadError
//	}
//	defer font.Close()
//
//	lines, err := text.Wrap("the quick brown fox", 10)
//	run, err := font.Shape(lines[0])
//	for _, g := range run {
//	    bm, err := font.Rasterize(g.GID)
//	    ...
//	}
//
// # Units
//
// GlyphRun advances and offsets are 26.6 fixed point (1/64 pixel). The
// pixel size is the point size at 72 DPI unless WithDPI says otherwise.
//
// # Rasterizer backends
//
// Two backends are registered: "sfnt" (golang.org/x/image, the default,
// reads TrueType and CFF outlines) and "truetype" (github.com/golang/freetype,
// TrueType outlines only). Select one with WithRasterizer, or add your own
// with RegisterRasterizer.
//
// # Concurrency
//
// FontResource reuses its shaping buffer and rasterizer scratch space and is
// not safe for concurrent use. Wrap is a pure function.
package text
