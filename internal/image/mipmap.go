package image

import "math"

// MipmapChain holds pre-computed downscaled versions of an image.
//
// A mipmap chain consists of multiple levels, where each level is half the
// size of the previous level (both width and height, never below 1). Level 0
// is the original full-resolution image. The chain continues until the
// largest dimension reaches 1 pixel, matching the level count a GPU expects
// for a full mip chain.
type MipmapChain struct {
	levels []*ImageBuf // Level 0 = original size
}

// LevelCount returns the number of levels in a full chain for a
// width x height image: 1 + floor(log2(max(width, height))).
func LevelCount(width, height int) int {
	maxDim := max(width, height)
	if maxDim <= 0 {
		return 0
	}
	return 1 + int(math.Floor(math.Log2(float64(maxDim))))
}

// GenerateMipmaps creates a mipmap chain from the source image.
//
// Each level is a 2x2 box filter of the previous one. Color is averaged
// weighted by alpha, so transparent black around glyphs does not darken
// their edges; alpha is a plain average. The source image becomes level 0
// and is not copied.
//
// Returns nil if src is nil.
func GenerateMipmaps(src *ImageBuf) *MipmapChain {
	if src == nil {
		return nil
	}

	numLevels := LevelCount(src.Width(), src.Height())
	chain := &MipmapChain{
		levels: make([]*ImageBuf, numLevels),
	}

	// Level 0 is the original image (no copy)
	chain.levels[0] = src

	for i := 1; i < numLevels; i++ {
		chain.levels[i] = downsample(chain.levels[i-1])
	}

	return chain
}

// downsample creates a half-size version of src using a box filter.
func downsample(src *ImageBuf) *ImageBuf {
	srcW, srcH := src.Bounds()
	dstW := max(1, srcW/2)
	dstH := max(1, srcH/2)

	dst, _ := NewImageBuf(dstW, dstH)

	for dy := 0; dy < dstH; dy++ {
		for dx := 0; dx < dstW; dx++ {
			sx := dx * 2
			sy := dy * 2

			// Sample 2x2 region (handle odd dimensions)
			var sr, sg, sb, sa, weight uint32
			for _, p := range [4][2]int{
				{sx, sy},
				{min(sx+1, srcW-1), sy},
				{sx, min(sy+1, srcH-1)},
				{min(sx+1, srcW-1), min(sy+1, srcH-1)},
			} {
				r, g, b, a := src.GetRGBA(p[0], p[1])
				sr += uint32(r) * uint32(a)
				sg += uint32(g) * uint32(a)
				sb += uint32(b) * uint32(a)
				sa += uint32(a)
				weight++
			}

			var r, g, b uint8
			if sa > 0 {
				r = uint8(sr / sa)
				g = uint8(sg / sa)
				b = uint8(sb / sa)
			}
			dst.SetRGBA(dx, dy, r, g, b, uint8(sa/weight))
		}
	}

	return dst
}

// Level returns the mipmap at the specified level.
// Level 0 is the original image. Returns nil if level is out of range.
func (m *MipmapChain) Level(n int) *ImageBuf {
	if m == nil || n < 0 || n >= len(m.levels) {
		return nil
	}
	return m.levels[n]
}

// NumLevels returns the total number of mipmap levels in the chain.
// Returns 0 if the chain is nil.
func (m *MipmapChain) NumLevels() int {
	if m == nil {
		return 0
	}
	return len(m.levels)
}
