package text

import (
	"sort"
	"sync"

	"golang.org/x/image/math/fixed"
)

// GlyphRasterizer renders glyphs of one font at one size into coverage
// bitmaps.
//
// Implementations reuse internal buffers and are not safe for concurrent
// use, matching the single-owner model of FontResource.
type GlyphRasterizer interface {
	// Rasterize renders glyph gid. Glyphs without an outline return an
	// empty bitmap and a nil error. Failures return a *GlyphError.
	Rasterize(gid GlyphID) (CoverageBitmap, error)
}

// RasterizerBackend creates GlyphRasterizers from raw font data.
// This abstraction allows swapping the outline and scan-conversion library.
//
// The default backend is "sfnt" (golang.org/x/image/font/sfnt with
// golang.org/x/image/vector).
type RasterizerBackend interface {
	// Load parses data and returns a rasterizer producing glyphs at ppem
	// pixels per em, given in 26.6 fixed point.
	Load(data []byte, ppem fixed.Int26_6) (GlyphRasterizer, error)
}

// defaultRasterizerName is the name of the default backend.
const defaultRasterizerName = "sfnt"

var (
	rasterizerMu sync.RWMutex

	// rasterizerRegistry holds registered rasterizer backends.
	rasterizerRegistry = map[string]RasterizerBackend{
		"sfnt":     sfntBackend{},
		"truetype": truetypeBackend{},
	}
)

// RegisterRasterizer registers a rasterizer backend under name,
// replacing any backend already registered with that name.
func RegisterRasterizer(name string, b RasterizerBackend) {
	rasterizerMu.Lock()
	defer rasterizerMu.Unlock()
	rasterizerRegistry[name] = b
}

// Rasterizers returns the names of all registered backends, sorted.
func Rasterizers() []string {
	rasterizerMu.RLock()
	defer rasterizerMu.RUnlock()
	names := make([]string, 0, len(rasterizerRegistry))
	for name := range rasterizerRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// getRasterizer returns the backend registered under name.
func getRasterizer(name string) (RasterizerBackend, bool) {
	rasterizerMu.RLock()
	defer rasterizerMu.RUnlock()
	b, ok := rasterizerRegistry[name]
	return b, ok
}
