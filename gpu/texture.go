package gpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	intImage "github.com/gogpu/textatlas/internal/image"
)

var _ gpucontext.TextureUpdater = (*Texture)(nil)

// Texture is an uploaded text atlas: an RGBA8 texture with its view and
// sampler. It implements gpucontext.Texture and gpucontext.TextureUpdater.
//
// Thread Safety: Texture is safe for concurrent use.
type Texture struct {
	mu sync.Mutex

	device  hal.Device
	queue   hal.Queue
	texture hal.Texture
	view    hal.TextureView
	sampler hal.Sampler

	width   int
	height  int
	levels  int
	mipmaps bool

	destroyed bool
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// MipLevelCount returns the number of mip levels in the texture.
func (t *Texture) MipLevelCount() int { return t.levels }

// Raw returns the underlying HAL texture, or nil after Destroy.
func (t *Texture) Raw() hal.Texture {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.texture
}

// View returns the texture view covering every mip level, or nil after
// Destroy.
func (t *Texture) View() hal.TextureView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view
}

// Sampler returns the clamp-to-edge trilinear sampler, or nil after Destroy.
func (t *Texture) Sampler() hal.Sampler {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sampler
}

// UpdateData replaces the texture contents with top-down RGBA8 data of the
// same size. Rows are flipped and mip levels rebuilt as in Upload.
func (t *Texture) UpdateData(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.destroyed {
		return ErrTextureDestroyed
	}
	if want := t.width * t.height * 4; len(data) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrDataSize, len(data), want)
	}
	levels, err := buildLevels(data, t.width, t.height, t.mipmaps)
	if err != nil {
		return err
	}
	t.writeLevels(levels)
	return nil
}

// writeLevels uploads each level with its own WriteTexture call.
func (t *Texture) writeLevels(levels []*intImage.ImageBuf) {
	for i, lvl := range levels {
		w, h := lvl.Bounds()
		t.queue.WriteTexture(
			&hal.ImageCopyTexture{
				Texture:  t.texture,
				MipLevel: uint32(i), //nolint:gosec // level index is small
				Aspect:   gputypes.TextureAspectAll,
			},
			lvl.Data(),
			&hal.ImageDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(lvl.Stride()), //nolint:gosec // stride fits uint32
				RowsPerImage: uint32(h),            //nolint:gosec // height fits uint32
			},
			&hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}, //nolint:gosec // dimensions fit uint32
		)
		slogger().Debug("gpu: mip level written", "level", i, "width", w, "height", h)
	}
}

// Destroy releases the sampler, view and texture. Safe to call more than once.
func (t *Texture) Destroy() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.destroyed {
		return
	}
	t.destroyed = true

	if t.sampler != nil {
		t.device.DestroySampler(t.sampler)
		t.sampler = nil
	}
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		t.device.DestroyTexture(t.texture)
		t.texture = nil
	}
}

// IsDestroyed reports whether Destroy has been called.
func (t *Texture) IsDestroyed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.destroyed
}
