package text

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// sfntBackend implements RasterizerBackend using golang.org/x/image.
type sfntBackend struct{}

// Load implements RasterizerBackend.Load.
func (sfntBackend) Load(data []byte, ppem fixed.Int26_6) (GlyphRasterizer, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return &sfntRasterizer{font: f, ppem: ppem}, nil
}

// sfntRasterizer loads outlines with sfnt and fills them with a
// vector.Rasterizer. Segments from sfnt already point y down with the
// baseline at y=0, so the only transform is a shift into the positive
// quadrant.
type sfntRasterizer struct {
	font *sfnt.Font
	ppem fixed.Int26_6

	buf sfnt.Buffer
	r   vector.Rasterizer

	// offset normalizes outline points to the mask origin.
	offset fixed.Point26_6
}

// Rasterize implements GlyphRasterizer.Rasterize.
func (s *sfntRasterizer) Rasterize(gid GlyphID) (CoverageBitmap, error) {
	if int(gid) >= s.font.NumGlyphs() {
		return CoverageBitmap{}, &GlyphError{GID: gid, Err: ErrGlyphNotFound}
	}

	segs, err := s.font.LoadGlyph(&s.buf, sfnt.GlyphIndex(gid), s.ppem, nil)
	if err != nil {
		return CoverageBitmap{}, &GlyphError{GID: gid, Err: err}
	}
	if len(segs) == 0 {
		return CoverageBitmap{}, nil
	}

	// Integer pixel bounds, floor of min and ceil of max.
	b := segs.Bounds()
	x0, y0 := b.Min.X.Floor(), b.Min.Y.Floor()
	x1, y1 := b.Max.X.Ceil(), b.Max.Y.Ceil()
	w, h := x1-x0, y1-y0
	if w <= 0 || h <= 0 {
		return CoverageBitmap{Left: x0, Top: -y0}, nil
	}

	s.offset = fixed.Point26_6{X: -fixed.I(x0), Y: -fixed.I(y0)}
	s.r.Reset(w, h)
	s.r.DrawOp = draw.Src

	for i, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if i > 0 {
				s.r.ClosePath()
			}
			x, y := s.coords(seg.Args[0])
			s.r.MoveTo(x, y)
		case sfnt.SegmentOpLineTo:
			x, y := s.coords(seg.Args[0])
			s.r.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			cx, cy := s.coords(seg.Args[0])
			x, y := s.coords(seg.Args[1])
			s.r.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := s.coords(seg.Args[0])
			c2x, c2y := s.coords(seg.Args[1])
			x, y := s.coords(seg.Args[2])
			s.r.CubeTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	s.r.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	s.r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return CoverageBitmap{
		Width:  w,
		Rows:   h,
		Stride: mask.Stride,
		Pix:    mask.Pix,
		Left:   x0,
		Top:    -y0,
	}, nil
}

func (s *sfntRasterizer) coords(p fixed.Point26_6) (float32, float32) {
	x := float32(p.X+s.offset.X) / 64
	y := float32(p.Y+s.offset.Y) / 64
	return x, y
}
