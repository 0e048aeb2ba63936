package textatlas

import (
	"errors"

	"github.com/gogpu/textatlas/text"
)

// Font is what the compositor needs from a font: shaping, glyph
// rasterization, a tint and the atlas size. *text.FontResource implements it.
type Font interface {
	Shape(line string) (text.GlyphRun, error)
	Rasterize(gid text.GlyphID) (text.CoverageBitmap, error)
	Tint() text.Tint
	AtlasSize() (width, height int)
}

// Compositor draws text requests into a fixed-size PixelBuffer.
//
// The buffer is allocated once at the font's atlas size and redrawn from
// scratch by every Composite call.
//
// Compositor is NOT safe for concurrent use, and neither is the Font it
// draws with.
type Compositor struct {
	font   Font
	buf    *PixelBuffer
	config compositorConfig
}

// NewCompositor creates a compositor drawing with font.
func NewCompositor(font Font, opts ...CompositorOption) (*Compositor, error) {
	if font == nil {
		return nil, ErrNilFont
	}
	config := defaultCompositorConfig()
	for _, opt := range opts {
		opt(&config)
	}
	w, h := font.AtlasSize()
	buf, err := NewPixelBuffer(w, h)
	if err != nil {
		return nil, err
	}
	return &Compositor{font: font, buf: buf, config: config}, nil
}

// Composite is a one-shot helper: it creates a compositor, draws requests
// and returns a buffer owned by the caller.
func Composite(requests []TextRequest, font Font, opts ...CompositorOption) (*PixelBuffer, error) {
	c, err := NewCompositor(font, opts...)
	if err != nil {
		return nil, err
	}
	return c.Composite(requests)
}

// Buffer returns the compositor's pixel buffer.
func (c *Compositor) Buffer() *PixelBuffer {
	return c.buf
}

// Composite zero-fills the buffer and draws every request into it.
//
// Each request is wrapped into lines. Every line starts at the request's
// origin x and one LineHeight below the previous line. For every shaped
// glyph the draw position is the pen plus the glyph offset and bearing;
// the pen then advances by the glyph advance, and the glyph is blitted at
// the position computed before the advance. Coverage is ORed into alpha and
// RGB is set to the tint. Pixels outside the buffer are dropped.
//
// Glyphs that fail to rasterize are skipped; the pen still moves by their
// shaped advance. Wrap widths are validated before anything is drawn, and a
// bad one is returned as a *RequestError.
//
// The returned buffer belongs to the compositor and is overwritten by the
// next call; use Clone to keep it.
func (c *Compositor) Composite(requests []TextRequest) (*PixelBuffer, error) {
	lines := make([][]string, len(requests))
	for i, req := range requests {
		s := req.Text
		if c.config.normalize {
			s = c.config.form.String(s)
		}
		l, err := text.Wrap(s, req.WrapWidth)
		if err != nil {
			return nil, &RequestError{Index: i, Err: err}
		}
		lines[i] = l
	}

	c.buf.Clear()
	tint := c.font.Tint()

	var drawn, skipped int
	for i, req := range requests {
		penX := float64(req.Origin.X)
		penY := float64(req.Origin.Y)

		for _, line := range lines[i] {
			run, err := c.font.Shape(line)
			if err != nil {
				return nil, err
			}

			for _, g := range run {
				bm, err := c.font.Rasterize(g.GID)

				// Position from the pen before it moves.
				x := penX + float64(g.XOffset)/64 + float64(bm.Left)
				y := penY + float64(g.YOffset)/64 - float64(bm.Top)

				penX += float64(g.XAdvance) / 64
				penY += float64(g.YAdvance) / 64

				if err != nil {
					if errors.Is(err, text.ErrClosed) {
						return nil, err
					}
					skipped++
					Logger().Debug("textatlas: glyph skipped", "request", i, "gid", g.GID, "error", err)
					continue
				}

				c.blit(bm, int(x), int(y), tint)
				drawn++
			}

			penX = float64(req.Origin.X)
			penY += float64(req.LineHeight)
		}
	}

	Logger().Debug("textatlas: composited",
		"requests", len(requests),
		"glyphs", drawn,
		"skipped", skipped,
		"width", c.buf.width,
		"height", c.buf.height)

	return c.buf, nil
}

// blit ORs bm's coverage into the alpha channel at (x, y) and sets RGB to
// tint for every bitmap pixel that lands inside the buffer.
func (c *Compositor) blit(bm text.CoverageBitmap, x, y int, tint text.Tint) {
	if bm.Empty() {
		return
	}
	w, h := c.buf.width, c.buf.height
	data := c.buf.data

	for q := 0; q < bm.Rows; q++ {
		dy := y + q
		if dy < 0 || dy >= h {
			continue
		}
		src := bm.Pix[q*bm.Stride : q*bm.Stride+bm.Width]
		for p, cov := range src {
			dx := x + p
			if dx < 0 || dx >= w {
				continue
			}
			i := (dy*w + dx) * 4
			data[i+0] = tint.R
			data[i+1] = tint.G
			data[i+2] = tint.B
			data[i+3] |= cov
		}
	}
}
