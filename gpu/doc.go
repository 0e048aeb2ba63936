// Package gpu uploads composited text atlases to the GPU as mipmapped
// RGBA8 textures.
//
// The uploader works on a raw wgpu HAL device and queue, either created by
// the caller (see OpenDevice) or borrowed from a host application through a
// gpucontext.DeviceProvider that exposes HAL types:
//
//	up, err := gpu.NewUploader(device, queue)
//	if err != nil {
//	    return err
//	}
//	tex, err := gpu.Generate(font, requests, up)
//	if err != nil {
//	    return err
//	}
//	defer tex.Destroy()
//
// Rows are flipped before upload, so level 0 of the texture holds the
// bottom row of the composited buffer first. Mip levels below 0 are built on
// the CPU with a 2x2 box filter.
//
// QuadShader returns a shader module that samples the atlas on a textured
// quad. Binding layout:
//
//	@group(0) @binding(0) var atlas_tex: texture_2d<f32>;
//	@group(0) @binding(1) var atlas_sampler: sampler;
package gpu
