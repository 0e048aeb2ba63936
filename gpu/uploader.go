package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/textatlas"
	intImage "github.com/gogpu/textatlas/internal/image"
)

// Uploader turns PixelBuffers into sampled GPU textures.
//
// An Uploader holds no GPU resources of its own. It is safe to share between
// goroutines as long as the underlying device and queue are.
type Uploader struct {
	device hal.Device
	queue  hal.Queue
	config uploaderConfig
}

// NewUploader creates an uploader for the given HAL device and queue.
func NewUploader(device hal.Device, queue hal.Queue, opts ...UploaderOption) (*Uploader, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	cfg := defaultUploaderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Uploader{device: device, queue: queue, config: cfg}, nil
}

// NewUploaderFromProvider creates an uploader on a device shared by a host
// application. The provider must also implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func NewUploaderFromProvider(provider gpucontext.DeviceProvider, opts ...UploaderOption) (*Uploader, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	if provider == nil {
		return nil, ErrNilDevice
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}
	return NewUploader(device, queue, opts...)
}

// Upload creates a texture from buf and writes every mip level.
//
// The buffer's rows are flipped so that texture row 0 is the buffer's last
// row. The returned texture is owned by the caller, who must Destroy it.
func (u *Uploader) Upload(buf *textatlas.PixelBuffer) (*Texture, error) {
	if buf == nil {
		return nil, ErrNilBuffer
	}
	w, h := buf.Width(), buf.Height()
	levels, err := buildLevels(buf.Data(), w, h, u.config.mipmaps)
	if err != nil {
		return nil, err
	}
	levelCount := uint32(len(levels)) //nolint:gosec // level count is at most 32

	tex, err := u.device.CreateTexture(&hal.TextureDescriptor{
		Label:         u.config.label,
		Size:          hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}, //nolint:gosec // dimensions are positive
		MipLevelCount: levelCount,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create atlas texture: %w", err)
	}

	view, err := u.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         u.config.label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: levelCount,
	})
	if err != nil {
		u.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create atlas texture view: %w", err)
	}

	sampler, err := u.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        u.config.label + "_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
		LodMinClamp:  0,
		LodMaxClamp:  float32(levelCount),
	})
	if err != nil {
		u.device.DestroyTextureView(view)
		u.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create atlas sampler: %w", err)
	}

	t := &Texture{
		device:  u.device,
		queue:   u.queue,
		texture: tex,
		view:    view,
		sampler: sampler,
		width:   w,
		height:  h,
		levels:  len(levels),
		mipmaps: u.config.mipmaps,
	}
	t.writeLevels(levels)

	slogger().Info("gpu: atlas uploaded",
		"label", u.config.label, "width", w, "height", h, "levels", len(levels))
	return t, nil
}

// Update re-uploads buf into an existing texture of the same size.
func (u *Uploader) Update(tex *Texture, buf *textatlas.PixelBuffer) error {
	if buf == nil {
		return ErrNilBuffer
	}
	if tex == nil {
		return ErrTextureDestroyed
	}
	if buf.Width() != tex.width || buf.Height() != tex.height {
		return fmt.Errorf("%w: buffer %dx%d, texture %dx%d",
			ErrDataSize, buf.Width(), buf.Height(), tex.width, tex.height)
	}
	return tex.UpdateData(buf.Data())
}

// buildLevels flips the top-down RGBA data and, if mipmaps is set,
// derives the full mip chain from it. Level 0 comes first.
func buildLevels(rgba []byte, width, height int, mipmaps bool) ([]*intImage.ImageBuf, error) {
	src, err := intImage.FromRaw(rgba, width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataSize, err)
	}
	if len(rgba) != src.ByteSize() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrDataSize, len(rgba), src.ByteSize())
	}
	flipped := intImage.FlipVertical(src)
	if !mipmaps {
		return []*intImage.ImageBuf{flipped}, nil
	}

	chain := intImage.GenerateMipmaps(flipped)
	levels := make([]*intImage.ImageBuf, chain.NumLevels())
	for i := range levels {
		levels[i] = chain.Level(i)
	}
	return levels, nil
}
