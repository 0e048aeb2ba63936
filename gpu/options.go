package gpu

// UploaderOption configures an Uploader.
type UploaderOption func(*uploaderConfig)

type uploaderConfig struct {
	label   string
	mipmaps bool
}

func defaultUploaderConfig() uploaderConfig {
	return uploaderConfig{
		label:   "text_atlas",
		mipmaps: true,
	}
}

// WithLabel sets the debug label prefix for created GPU objects.
func WithLabel(label string) UploaderOption {
	return func(c *uploaderConfig) {
		c.label = label
	}
}

// WithMipmaps enables or disables the mip chain. Enabled by default.
// When disabled, textures have a single level.
func WithMipmaps(enabled bool) UploaderOption {
	return func(c *uploaderConfig) {
		c.mipmaps = enabled
	}
}
