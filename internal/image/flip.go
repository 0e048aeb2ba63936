package image

// FlipVertical returns a copy of b with the row order reversed:
// row height-1 of b becomes row 0 of the result.
func FlipVertical(b *ImageBuf) *ImageBuf {
	out := &ImageBuf{
		data:   make([]byte, len(b.data)),
		width:  b.width,
		height: b.height,
	}
	s := b.Stride()
	for y := 0; y < b.height; y++ {
		src := b.data[y*s : (y+1)*s]
		dy := b.height - 1 - y
		copy(out.data[dy*s:(dy+1)*s], src)
	}
	return out
}
