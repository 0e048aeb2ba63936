// Package image provides RGBA8 buffer helpers for texture preparation.
package image

import "errors"

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")
)

// bytesPerPixel is the RGBA8 pixel size.
const bytesPerPixel = 4

// ImageBuf is a tightly packed RGBA8 image, row 0 first.
//
// ImageBuf is not safe for concurrent writes.
type ImageBuf struct {
	data   []byte
	width  int
	height int
}

// NewImageBuf creates a zeroed image buffer with the given dimensions.
func NewImageBuf(width, height int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &ImageBuf{
		data:   make([]byte, width*height*bytesPerPixel),
		width:  width,
		height: height,
	}, nil
}

// FromRaw wraps existing RGBA8 data without copying.
// data must hold at least width*height*4 bytes; extra bytes are ignored.
func FromRaw(data []byte, width, height int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	n := width * height * bytesPerPixel
	if len(data) < n {
		return nil, ErrDataTooSmall
	}
	return &ImageBuf{data: data[:n], width: width, height: height}, nil
}

// Clone returns a deep copy of the buffer.
func (b *ImageBuf) Clone() *ImageBuf {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &ImageBuf{data: data, width: b.width, height: b.height}
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Stride returns the number of bytes per row.
func (b *ImageBuf) Stride() int {
	return b.width * bytesPerPixel
}

// Bounds returns the image dimensions.
func (b *ImageBuf) Bounds() (int, int) {
	return b.width, b.height
}

// Data returns the underlying pixel data.
func (b *ImageBuf) Data() []byte {
	return b.data
}

// RowBytes returns the bytes of row y, or nil if y is out of range.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	s := b.Stride()
	return b.data[y*s : (y+1)*s]
}

// GetRGBA returns the pixel at (x, y), or zeros when out of bounds.
func (b *ImageBuf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0, 0, 0, 0
	}
	i := y*b.Stride() + x*bytesPerPixel
	return b.data[i], b.data[i+1], b.data[i+2], b.data[i+3]
}

// SetRGBA sets the pixel at (x, y). Out-of-bounds writes are ignored.
func (b *ImageBuf) SetRGBA(x, y int, r, g, bl, a uint8) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	i := y*b.Stride() + x*bytesPerPixel
	b.data[i], b.data[i+1], b.data[i+2], b.data[i+3] = r, g, bl, a
}

// ByteSize returns the size of the pixel data in bytes.
func (b *ImageBuf) ByteSize() int {
	return len(b.data)
}
