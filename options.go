package textatlas

import "golang.org/x/text/unicode/norm"

// CompositorOption configures a Compositor.
type CompositorOption func(*compositorConfig)

// compositorConfig holds configuration for Compositor.
type compositorConfig struct {
	normalize bool
	form      norm.Form
}

// defaultCompositorConfig returns the default compositor configuration.
func defaultCompositorConfig() compositorConfig {
	return compositorConfig{
		normalize: true,
		form:      norm.NFC,
	}
}

// WithNormalization sets the Unicode normalization form applied to request
// text before wrapping and shaping. The default is NFC, which merges a base
// letter and its combining mark into one character where possible, so the
// pair counts once against the wrap width.
//
// Normalization changes the codepoints that are shaped and drawn, not only
// the wrap count: under NFC the singleton U+212B ANGSTROM SIGN becomes
// U+00C5, and a font without the precomposed glyph then draws .notdef.
// Use WithoutNormalization to shape request text exactly as given.
func WithNormalization(form norm.Form) CompositorOption {
	return func(c *compositorConfig) {
		c.normalize = true
		c.form = form
	}
}

// WithoutNormalization passes request text through unchanged.
func WithoutNormalization() CompositorOption {
	return func(c *compositorConfig) {
		c.normalize = false
	}
}
