package text

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/harfbuzz"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FontResource owns everything needed to turn text into glyph coverage
// for one font at one size: the parsed outlines, a HarfBuzz shaping font
// bound to them, a reusable shaping buffer, and a glyph rasterizer.
//
// The atlas dimensions and point size are fixed at construction. Only the
// tint may change afterwards.
//
// FontResource is NOT safe for concurrent use. The shaping buffer and the
// rasterizer scratch space are reused in place by every call; use one
// FontResource per goroutine or guard it externally.
type FontResource struct {
	label string
	name  string

	pointSize int
	ppem      fixed.Int26_6
	atlasW    int
	atlasH    int
	tint      Tint

	rasterizerName string

	// outlines and metrics
	sf    *sfnt.Font
	sfBuf sfnt.Buffer

	// shaping context, bound 1:1 to the face
	face   *font.Face
	hbFont *harfbuzz.Font
	buf    *harfbuzz.Buffer

	glyphs GlyphRasterizer
	cache  *Cache[GlyphID, CoverageBitmap] // nil when disabled

	closed bool
}

// Open loads the font file at path and prepares it for rendering at
// pointSize into an atlas of atlasWidth by atlasHeight pixels.
//
// Any failure is returned as a *FontLoadError.
func Open(path string, pointSize, atlasWidth, atlasHeight int, opts ...FontOption) (*FontResource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FontLoadError{Path: path, Op: "read", Err: err}
	}
	return newFontResource(path, data, pointSize, atlasWidth, atlasHeight, opts)
}

// NewFontResource is like Open but takes font data (TTF or OTF) directly.
// The data slice is copied internally and can be reused after this call.
func NewFontResource(data []byte, pointSize, atlasWidth, atlasHeight int, opts ...FontOption) (*FontResource, error) {
	return newFontResource("", data, pointSize, atlasWidth, atlasHeight, opts)
}

func newFontResource(path string, data []byte, pointSize, atlasWidth, atlasHeight int, opts []FontOption) (*FontResource, error) {
	config := defaultFontConfig()
	for _, opt := range opts {
		opt(&config)
	}
	label := path
	if config.label != "" {
		label = config.label
	}
	fail := func(op string, err error) (*FontResource, error) {
		return nil, &FontLoadError{Path: label, Op: op, Err: err}
	}

	if len(data) == 0 {
		return fail("read", ErrEmptyFontData)
	}
	if pointSize < 1 {
		return fail("size", fmt.Errorf("%w: %d", ErrInvalidPointSize, pointSize))
	}
	if atlasWidth < 1 || atlasHeight < 1 {
		return fail("size", fmt.Errorf("%w: %dx%d", ErrInvalidAtlasSize, atlasWidth, atlasHeight))
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	sf, err := sfnt.Parse(dataCopy)
	if err != nil {
		return fail("parse", err)
	}

	// Character size in points at config.dpi, as 26.6 pixels per em.
	ppem := fixed.Int26_6(pointSize * config.dpi * 64 / 72)

	face, err := font.ParseTTF(bytes.NewReader(dataCopy))
	if err != nil {
		return fail("shape-face", err)
	}
	hbFont := harfbuzz.NewFont(face)
	// Scaling by ppem in 26.6 makes HarfBuzz positions come out in 1/64 px.
	hbFont.XScale = int32(ppem)
	hbFont.YScale = int32(ppem)

	backend, ok := getRasterizer(config.rasterizer)
	if !ok {
		return fail("rasterizer", fmt.Errorf("%w: %q", ErrUnknownRasterizer, config.rasterizer))
	}
	glyphs, err := backend.Load(dataCopy, ppem)
	if err != nil {
		return fail("rasterizer", err)
	}

	f := &FontResource{
		label:          label,
		pointSize:      pointSize,
		ppem:           ppem,
		atlasW:         atlasWidth,
		atlasH:         atlasHeight,
		tint:           config.tint,
		rasterizerName: config.rasterizer,
		sf:             sf,
		face:           face,
		hbFont:         hbFont,
		buf:            harfbuzz.NewBuffer(),
		glyphs:         glyphs,
	}
	if config.glyphCache > 0 {
		f.cache = NewCache[GlyphID, CoverageBitmap](config.glyphCache)
	}
	f.name = f.familyName()

	slogger().Info("text: font loaded",
		"font", f.name,
		"path", label,
		"ppem", ppem.Round(),
		"rasterizer", config.rasterizer)

	return f, nil
}

// Close releases the shaping buffer, the shaping font, the face and the
// rasterizer. It is safe to call Close more than once.
// After Close, Shape and Rasterize return ErrClosed.
func (f *FontResource) Close() error {
	if f.closed {
		return nil
	}
	// Buffer first: it may still reference the shaping font.
	f.buf = nil
	f.hbFont = nil
	f.face = nil
	f.glyphs = nil
	f.cache = nil
	f.sf = nil
	f.closed = true
	slogger().Debug("text: font closed", "font", f.name)
	return nil
}

// Closed reports whether Close has been called.
func (f *FontResource) Closed() bool {
	return f.closed
}

// Name returns the font family name, or "" if the font has none.
func (f *FontResource) Name() string {
	return f.name
}

// PointSize returns the nominal size the resource was created with.
func (f *FontResource) PointSize() int {
	return f.pointSize
}

// PixelsPerEm returns the rendering size in 26.6 fixed-point pixels.
func (f *FontResource) PixelsPerEm() fixed.Int26_6 {
	return f.ppem
}

// AtlasSize returns the atlas dimensions fixed at construction.
func (f *FontResource) AtlasSize() (width, height int) {
	return f.atlasW, f.atlasH
}

// Tint returns the current text color.
func (f *FontResource) Tint() Tint {
	return f.tint
}

// SetTint changes the text color used by subsequent compositing.
// The tint belongs to this resource only.
func (f *FontResource) SetTint(t Tint) {
	f.tint = t
}

// Rasterizer returns the name of the rasterizer backend in use.
func (f *FontResource) Rasterizer() string {
	return f.rasterizerName
}

// Rasterize renders glyph gid into a coverage bitmap.
// Failures are reported as *GlyphError and affect only that glyph.
//
// Bitmaps may be served from the glyph cache and share their Pix slice
// between calls; callers must not modify them.
func (f *FontResource) Rasterize(gid GlyphID) (CoverageBitmap, error) {
	if f.closed {
		return CoverageBitmap{}, ErrClosed
	}
	if f.cache != nil {
		if bm, ok := f.cache.Get(gid); ok {
			return bm, nil
		}
	}
	bm, err := f.glyphs.Rasterize(gid)
	if err != nil {
		return CoverageBitmap{}, err
	}
	if f.cache != nil {
		f.cache.Set(gid, bm)
	}
	return bm, nil
}

// CachedGlyphs returns the number of bitmaps in the glyph cache.
func (f *FontResource) CachedGlyphs() int {
	if f.cache == nil {
		return 0
	}
	return f.cache.Len()
}

func (f *FontResource) familyName() string {
	if name, err := f.sf.Name(&f.sfBuf, sfnt.NameIDFamily); err == nil {
		return name
	}
	return ""
}
