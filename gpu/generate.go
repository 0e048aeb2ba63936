package gpu

import (
	"github.com/gogpu/textatlas"
)

// Generate composites requests with font and uploads the result in one step.
//
// This is the usual entry point for a caller that wants a texture for a set
// of strings and does not need the CPU buffer afterwards.
func Generate(font textatlas.Font, requests []textatlas.TextRequest, up *Uploader, opts ...textatlas.CompositorOption) (*Texture, error) {
	if up == nil {
		return nil, ErrNilDevice
	}
	c, err := textatlas.NewCompositor(font, opts...)
	if err != nil {
		return nil, err
	}
	buf, err := c.Composite(requests)
	if err != nil {
		return nil, err
	}
	return up.Upload(buf)
}
