package gpu

import "errors"

var (
	// ErrNilBuffer is returned when a nil pixel buffer is uploaded.
	ErrNilBuffer = errors.New("gpu: pixel buffer is nil")

	// ErrNilDevice is returned when the uploader has no device or queue.
	ErrNilDevice = errors.New("gpu: device or queue is nil")

	// ErrTextureDestroyed is returned when updating a destroyed texture.
	ErrTextureDestroyed = errors.New("gpu: texture destroyed")

	// ErrDataSize is returned when update data does not match the texture size.
	ErrDataSize = errors.New("gpu: data size does not match texture")

	// ErrNoHALProvider is returned when a device provider does not expose
	// HalDevice and HalQueue.
	ErrNoHALProvider = errors.New("gpu: provider does not expose HAL types")

	// ErrUnknownBackend is returned by OpenDevice for an unsupported name.
	ErrUnknownBackend = errors.New("gpu: unknown backend")

	// ErrNoAdapter is returned by OpenDevice when no adapter is found.
	ErrNoAdapter = errors.New("gpu: no GPU adapters found")
)
