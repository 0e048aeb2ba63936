package text

import (
	"fmt"
	"image"

	"github.com/golang/freetype/raster"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// truetypeBackend implements RasterizerBackend using github.com/golang/freetype.
// Only TrueType (glyf) outlines are supported; CFF fonts fail in Load.
type truetypeBackend struct{}

// Load implements RasterizerBackend.Load.
func (truetypeBackend) Load(data []byte, ppem fixed.Int26_6) (GlyphRasterizer, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse truetype font: %w", err)
	}
	// freetype does not export the glyph count; it indexes loca without
	// bounds checks, so the count is taken from sfnt.
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return &truetypeRasterizer{
		font:      f,
		numGlyphs: sf.NumGlyphs(),
		scale:     ppem,
		r:         raster.NewRasterizer(0, 0),
	}, nil
}

// truetypeRasterizer renders glyphs the way truetype.Face does, without its
// glyph cache: contours are fed to a raster.Rasterizer and painted into an
// alpha mask.
type truetypeRasterizer struct {
	font      *truetype.Font
	numGlyphs int
	scale     fixed.Int26_6

	glyphBuf truetype.GlyphBuf
	r        *raster.Rasterizer
}

// Rasterize implements GlyphRasterizer.Rasterize.
func (t *truetypeRasterizer) Rasterize(gid GlyphID) (bm CoverageBitmap, err error) {
	if int(gid) >= t.numGlyphs {
		return CoverageBitmap{}, &GlyphError{GID: gid, Err: ErrGlyphNotFound}
	}

	// Malformed glyph data can index past the end of the glyf table.
	defer func() {
		if r := recover(); r != nil {
			bm, err = CoverageBitmap{}, &GlyphError{GID: gid, Err: fmt.Errorf("malformed glyph: %v", r)}
		}
	}()

	if err := t.glyphBuf.Load(t.font, t.scale, truetype.Index(gid), font.HintingNone); err != nil {
		return CoverageBitmap{}, &GlyphError{GID: gid, Err: err}
	}
	if len(t.glyphBuf.Ends) == 0 {
		return CoverageBitmap{}, nil
	}

	// GlyphBuf points are y up; the mask is y down.
	b := t.glyphBuf.Bounds
	xmin := int(b.Min.X) >> 6
	ymin := int(-b.Max.Y) >> 6
	xmax := int(b.Max.X+0x3f) >> 6
	ymax := int(-b.Min.Y+0x3f) >> 6
	w, h := xmax-xmin, ymax-ymin
	if w <= 0 || h <= 0 {
		return CoverageBitmap{Left: xmin, Top: -ymin}, nil
	}

	dx := fixed.Int26_6(-xmin << 6)
	dy := fixed.Int26_6(-ymin << 6)

	t.r.SetBounds(w, h) // also clears
	e0 := 0
	for _, e1 := range t.glyphBuf.Ends {
		t.drawContour(t.glyphBuf.Points[e0:e1], dx, dy)
		e0 = e1
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	t.r.Rasterize(raster.NewAlphaSrcPainter(mask))

	return CoverageBitmap{
		Width:  w,
		Rows:   h,
		Stride: mask.Stride,
		Pix:    mask.Pix,
		Left:   xmin,
		Top:    -ymin,
	}, nil
}

// drawContour adds one closed quadratic contour. The low bit of Flags marks
// on-curve points; two consecutive off-curve points imply an on-curve
// midpoint.
func (t *truetypeRasterizer) drawContour(ps []truetype.Point, dx, dy fixed.Int26_6) {
	if len(ps) == 0 {
		return
	}

	at := func(p truetype.Point) fixed.Point26_6 {
		return fixed.Point26_6{X: dx + p.X, Y: dy - p.Y}
	}

	start := at(ps[0])
	others := ps[1:]
	if ps[0].Flags&0x01 == 0 {
		last := ps[len(ps)-1]
		if last.Flags&0x01 != 0 {
			start = at(last)
			others = ps[:len(ps)-1]
		} else {
			l := at(last)
			start = fixed.Point26_6{X: (start.X + l.X) / 2, Y: (start.Y + l.Y) / 2}
			others = ps
		}
	}

	t.r.Start(start)
	q0, on0 := start, true
	for _, p := range others {
		q := at(p)
		on := p.Flags&0x01 != 0
		switch {
		case on && on0:
			t.r.Add1(q)
		case on:
			t.r.Add2(q0, q)
		case !on0:
			mid := fixed.Point26_6{X: (q0.X + q.X) / 2, Y: (q0.Y + q.Y) / 2}
			t.r.Add2(q0, mid)
		}
		q0, on0 = q, on
	}

	if on0 {
		t.r.Add1(start)
	} else {
		t.r.Add2(q0, start)
	}
}
