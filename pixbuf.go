package textatlas

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// PixelBuffer is a heap-allocated RGBA8 image with row 0 at the top.
//
// Pixels are straight (not premultiplied) RGBA, four bytes each, rows
// packed without padding. The compositor ORs glyph coverage into alpha
// and writes the tint into RGB.
type PixelBuffer struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixelBuffer creates a zeroed (transparent black) buffer.
// Non-positive dimensions yield ErrInvalidDimensions.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &PixelBuffer{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}, nil
}

// Width returns the width of the buffer.
func (p *PixelBuffer) Width() int {
	return p.width
}

// Height returns the height of the buffer.
func (p *PixelBuffer) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format, top row first).
func (p *PixelBuffer) Data() []uint8 {
	return p.data
}

// Row returns the bytes of row y, or nil if y is out of range.
func (p *PixelBuffer) Row(y int) []uint8 {
	if y < 0 || y >= p.height {
		return nil
	}
	stride := p.width * 4
	return p.data[y*stride : (y+1)*stride]
}

// Pixel returns the components of pixel (x, y).
// Out-of-bounds coordinates return zeros.
func (p *PixelBuffer) Pixel(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0, 0, 0, 0
	}
	i := (y*p.width + x) * 4
	return p.data[i], p.data[i+1], p.data[i+2], p.data[i+3]
}

// Clear zero-fills the buffer.
func (p *PixelBuffer) Clear() {
	clear(p.data)
}

// Clone returns an independent copy of the buffer.
func (p *PixelBuffer) Clone() *PixelBuffer {
	data := make([]uint8, len(p.data))
	copy(data, p.data)
	return &PixelBuffer{width: p.width, height: p.height, data: data}
}

// ToImage copies the buffer into an image.NRGBA.
func (p *PixelBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// EncodePNG writes the buffer as a PNG image.
func (p *PixelBuffer) EncodePNG(w io.Writer) error {
	return png.Encode(w, p.ToImage())
}

// SavePNG saves the buffer to a PNG file.
func (p *PixelBuffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := p.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (p *PixelBuffer) At(x, y int) color.Color {
	r, g, b, a := p.Pixel(x, y)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Bounds implements the image.Image interface.
func (p *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *PixelBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}
