package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Device is a standalone HAL device opened by OpenDevice.
type Device struct {
	instance hal.Instance

	// Device and Queue are ready for NewUploader.
	Device hal.Device
	Queue  hal.Queue

	// AdapterName is the name reported by the selected adapter.
	AdapterName string
}

// OpenDevice opens a device on the named backend.
//
// "noop" opens the headless no-op backend, which accepts every call and
// draws nothing. "vulkan" and "auto" open the Vulkan backend and prefer a
// discrete or integrated GPU over software adapters.
func OpenDevice(backend string) (*Device, error) {
	var instance hal.Instance
	switch backend {
	case "noop":
		api := noop.API{}
		inst, err := api.CreateInstance(nil)
		if err != nil {
			return nil, fmt.Errorf("create noop instance: %w", err)
		}
		instance = inst
	case "vulkan", "auto":
		b, ok := hal.GetBackend(gputypes.BackendVulkan)
		if !ok {
			return nil, fmt.Errorf("vulkan backend not available")
		}
		inst, err := b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
		if err != nil {
			return nil, fmt.Errorf("create instance: %w", err)
		}
		instance = inst
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	slogger().Info("gpu: device opened", "backend", backend, "adapter", selected.Info.Name)
	return &Device{
		instance:    instance,
		Device:      openDev.Device,
		Queue:       openDev.Queue,
		AdapterName: selected.Info.Name,
	}, nil
}

// NewUploader creates an uploader on this device.
func (d *Device) NewUploader(opts ...UploaderOption) (*Uploader, error) {
	return NewUploader(d.Device, d.Queue, opts...)
}

// Close destroys the device and its instance.
func (d *Device) Close() {
	if d.Device != nil {
		d.Device.Destroy()
		d.Device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}
