package text

import "golang.org/x/image/math/fixed"

// Shape converts one line of text into positioned glyphs.
//
// Script, direction and language are guessed from the text itself; there is
// no direction override, so only left-to-right scripts lay out correctly.
// Values are in 26.6 fixed-point pixels.
//
// The shaping buffer is cleared before every call, so nothing from a
// previous line affects this one. The returned run is freshly allocated
// and stays valid after later calls.
func (f *FontResource) Shape(line string) (GlyphRun, error) {
	if f.closed {
		return nil, ErrClosed
	}

	f.buf.Clear()
	if line == "" {
		return nil, nil
	}

	f.buf.AddRunes([]rune(line), 0, -1)
	f.buf.GuessSegmentProperties()
	f.buf.Shape(f.hbFont, nil)

	run := make(GlyphRun, len(f.buf.Info))
	for i, info := range f.buf.Info {
		pos := f.buf.Pos[i]
		run[i] = ShapedGlyph{
			GID:      GlyphID(info.Glyph),
			XAdvance: fixed.Int26_6(pos.XAdvance),
			YAdvance: fixed.Int26_6(pos.YAdvance),
			XOffset:  fixed.Int26_6(pos.XOffset),
			YOffset:  fixed.Int26_6(pos.YOffset),
		}
	}

	slogger().Debug("text: shaped line",
		"font", f.name,
		"runes", len([]rune(line)),
		"glyphs", len(run),
		"script", f.buf.Props.Script.String())

	return run, nil
}
