package text

import (
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestCacheBasicOperations(t *testing.T) {
	cache := NewCache[string, int](0) // Unlimited

	if _, ok := cache.Get("key1"); ok {
		t.Error("Expected Get to return false for non-existent key")
	}

	cache.Set("key1", 42)
	if val, ok := cache.Get("key1"); !ok || val != 42 {
		t.Errorf("Expected Get to return (42, true), got (%v, %v)", val, ok)
	}

	cache.Set("key1", 100)
	if val, ok := cache.Get("key1"); !ok || val != 100 {
		t.Errorf("Expected Get to return (100, true), got (%v, %v)", val, ok)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d after overwrite, want 1", cache.Len())
	}
}

func TestCacheLRUEviction(t *testing.T) {
	cache := NewCache[string, int](10)

	for i := 0; i < 20; i++ {
		cache.Set(string(rune('a'+i)), i)
	}

	if size := cache.Len(); size > 10 {
		t.Errorf("Expected cache size <= 10 after eviction, got %d", size)
	}
	if _, ok := cache.Get("t"); !ok {
		t.Error("Expected recent entry 't' to be in cache")
	}
	if _, ok := cache.Get("a"); ok {
		t.Error("Expected oldest entry 'a' to be evicted")
	}
}

func TestCacheLRUAccessUpdate(t *testing.T) {
	cache := NewCache[string, int](5)

	for i, k := range []string{"a", "b", "c", "d", "e"} {
		cache.Set(k, i)
	}

	// Access "a" to make it recent
	_, _ = cache.Get("a")

	cache.Set("f", 6)
	cache.Set("g", 7)

	if _, ok := cache.Get("a"); !ok {
		t.Error("Expected recently accessed entry 'a' to still be in cache")
	}
	if _, ok := cache.Get("b"); ok {
		t.Error("Expected oldest unaccessed entry 'b' to be evicted")
	}
}

func TestCacheClear(t *testing.T) {
	cache := NewCache[string, int](0)
	cache.Set("key1", 1)
	cache.Set("key2", 2)

	cache.Clear()

	if size := cache.Len(); size != 0 {
		t.Errorf("Expected cache size 0 after Clear, got %d", size)
	}
	if _, ok := cache.Get("key1"); ok {
		t.Error("Expected key1 to be gone after Clear")
	}
}

func TestCacheThreadSafety(t *testing.T) {
	cache := NewCache[int, int](100)

	const numGoroutines = 10
	const numOps = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for g := 0; g < numGoroutines; g++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < numOps; i++ {
				key := id*numOps + i
				cache.Set(key, key*2)
				_, _ = cache.Get(key)
			}
		}(g)
	}
	wg.Wait()
}

func TestFontGlyphCache(t *testing.T) {
	f, err := NewFontResource(goregular.TTF, 24, 64, 64)
	if err != nil {
		t.Fatalf("NewFontResource: %v", err)
	}
	defer f.Close()

	gid := glyphFor(t, f, 'A')
	first, err := f.Rasterize(gid)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if f.CachedGlyphs() != 1 {
		t.Fatalf("CachedGlyphs() = %d, want 1", f.CachedGlyphs())
	}
	second, err := f.Rasterize(gid)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if &first.Pix[0] != &second.Pix[0] {
		t.Error("second Rasterize should be served from the cache")
	}

	// Failures are not cached.
	if _, err := f.Rasterize(0xfff0); err == nil {
		t.Fatal("expected error for invalid glyph")
	}
	if f.CachedGlyphs() != 1 {
		t.Errorf("CachedGlyphs() = %d after failure, want 1", f.CachedGlyphs())
	}
}

func TestFontGlyphCacheDisabled(t *testing.T) {
	f, err := NewFontResource(goregular.TTF, 24, 64, 64, WithGlyphCache(0))
	if err != nil {
		t.Fatalf("NewFontResource: %v", err)
	}
	defer f.Close()

	gid := glyphFor(t, f, 'A')
	a, _ := f.Rasterize(gid)
	b, _ := f.Rasterize(gid)
	if f.CachedGlyphs() != 0 {
		t.Errorf("CachedGlyphs() = %d, want 0", f.CachedGlyphs())
	}
	if &a.Pix[0] == &b.Pix[0] {
		t.Error("uncached Rasterize should return fresh bitmaps")
	}
}
