package text

// FontOption configures FontResource creation.
type FontOption func(*fontConfig)

// fontConfig holds configuration for FontResource.
type fontConfig struct {
	rasterizer string
	dpi        int
	tint       Tint
	label      string
	glyphCache int
}

// defaultFontConfig returns the default font configuration.
func defaultFontConfig() fontConfig {
	return fontConfig{
		rasterizer: defaultRasterizerName,
		dpi:        72, // pixel size equals point size
		tint:       White,
		glyphCache: 512,
	}
}

// WithRasterizer selects the glyph rasterizer backend by name.
// The default is "sfnt" (golang.org/x/image). "truetype" selects the
// github.com/golang/freetype rasterizer, which only reads TrueType outlines.
//
// Custom backends can be registered with RegisterRasterizer.
func WithRasterizer(name string) FontOption {
	return func(c *fontConfig) {
		c.rasterizer = name
	}
}

// WithDPI sets the resolution used to convert the point size into pixels.
// Non-positive values are ignored.
func WithDPI(dpi int) FontOption {
	return func(c *fontConfig) {
		if dpi > 0 {
			c.dpi = dpi
		}
	}
}

// WithTint sets the initial text color.
func WithTint(t Tint) FontOption {
	return func(c *fontConfig) {
		c.tint = t
	}
}

// WithFontLabel overrides the path reported in errors and logs.
// Useful when font data does not come from a file.
func WithFontLabel(label string) FontOption {
	return func(c *fontConfig) {
		c.label = label
	}
}

// WithGlyphCache sets how many rasterized glyphs are kept for reuse.
// The default is 512. Zero or a negative value disables the cache.
func WithGlyphCache(n int) FontOption {
	return func(c *fontConfig) {
		c.glyphCache = n
	}
}
