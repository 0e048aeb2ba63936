package textatlas

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/textatlas/text"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// fakeFont is a Font with scripted shaping and rasterization.
// Unscripted lines shape to one glyph per rune (GID = rune) advancing 10px;
// unscripted glyphs rasterize to a solid 2x2 block at the pen.
type fakeFont struct {
	w, h    int
	tint    text.Tint
	runs    map[string]text.GlyphRun
	glyphs  map[text.GlyphID]text.CoverageBitmap
	failing map[text.GlyphID]bool
	shaped  []string
}

func newFakeFont(w, h int) *fakeFont {
	return &fakeFont{
		w:       w,
		h:       h,
		tint:    text.Tint{R: 200, G: 100, B: 50},
		runs:    map[string]text.GlyphRun{},
		glyphs:  map[text.GlyphID]text.CoverageBitmap{},
		failing: map[text.GlyphID]bool{},
	}
}

func (f *fakeFont) Shape(line string) (text.GlyphRun, error) {
	f.shaped = append(f.shaped, line)
	if run, ok := f.runs[line]; ok {
		return run, nil
	}
	var run text.GlyphRun
	for _, r := range line {
		run = append(run, text.ShapedGlyph{GID: text.GlyphID(r), XAdvance: fixed.I(10)})
	}
	return run, nil
}

func (f *fakeFont) Rasterize(gid text.GlyphID) (text.CoverageBitmap, error) {
	if f.failing[gid] {
		return text.CoverageBitmap{}, &text.GlyphError{GID: gid, Err: text.ErrGlyphNotFound}
	}
	if bm, ok := f.glyphs[gid]; ok {
		return bm, nil
	}
	return solid(2, 2, 0xff, 0, 0), nil
}

func (f *fakeFont) Tint() text.Tint { return f.tint }

func (f *fakeFont) AtlasSize() (int, int) { return f.w, f.h }

// solid returns a w x h bitmap of constant coverage with the given bearing.
func solid(w, h int, cov uint8, left, top int) text.CoverageBitmap {
	pix := make([]byte, w*h)
	for i := range pix {
		pix[i] = cov
	}
	return text.CoverageBitmap{Width: w, Rows: h, Stride: w, Pix: pix, Left: left, Top: top}
}

// litPixels returns the coordinates of every pixel with non-zero alpha.
func litPixels(buf *PixelBuffer) []image.Point {
	var pts []image.Point
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			if _, _, _, a := buf.Pixel(x, y); a != 0 {
				pts = append(pts, image.Pt(x, y))
			}
		}
	}
	return pts
}

func mustCompositor(t *testing.T, f Font, opts ...CompositorOption) *Compositor {
	t.Helper()
	c, err := NewCompositor(f, opts...)
	if err != nil {
		t.Fatalf("NewCompositor failed: %v", err)
	}
	return c
}

// TestCompositeFirstGlyphPosition tests that the first glyph lands at
// origin + offset/64 + bearing.
func TestCompositeFirstGlyphPosition(t *testing.T) {
	f := newFakeFont(64, 64)
	f.runs["A"] = text.GlyphRun{{GID: 1, XOffset: fixed.I(2), XAdvance: fixed.I(30)}}
	f.glyphs[1] = solid(1, 1, 200, 3, 5)

	c := mustCompositor(t, f)
	buf, err := c.Composite([]TextRequest{
		{Text: "A", Origin: image.Pt(10, 20), WrapWidth: 10, LineHeight: 16},
	})
	if err != nil {
		t.Fatalf("Composite error: %v", err)
	}

	want := image.Pt(10+2+3, 20-5)
	pts := litPixels(buf)
	if len(pts) != 1 || pts[0] != want {
		t.Fatalf("lit pixels = %v, want [%v]", pts, want)
	}
	r, g, b, a := buf.Pixel(want.X, want.Y)
	if a != 200 {
		t.Errorf("alpha = %d, want 200", a)
	}
	if (text.Tint{R: r, G: g, B: b}) != f.tint {
		t.Errorf("rgb = (%d,%d,%d), want tint %v", r, g, b, f.tint)
	}
}

// TestCompositePenOrder tests that each glyph is drawn at the pen position
// read before its own advance is applied.
func TestCompositePenOrder(t *testing.T) {
	f := newFakeFont(64, 16)
	f.runs["ab"] = text.GlyphRun{
		{GID: 1, XAdvance: fixed.I(7)},
		{GID: 2, XAdvance: fixed.I(9)},
	}
	f.glyphs[1] = solid(1, 1, 0xff, 0, 0)
	f.glyphs[2] = solid(1, 1, 0xff, 0, 0)

	buf, err := mustCompositor(t, f).Composite([]TextRequest{
		{Text: "ab", Origin: image.Pt(4, 8), WrapWidth: 10, LineHeight: 10},
	})
	if err != nil {
		t.Fatal(err)
	}

	pts := litPixels(buf)
	want := []image.Point{image.Pt(4, 8), image.Pt(11, 8)}
	if len(pts) != 2 || pts[0] != want[0] || pts[1] != want[1] {
		t.Errorf("lit pixels = %v, want %v", pts, want)
	}
}

// TestCompositeCoverageOR tests that overlapping coverage is ORed, not added.
func TestCompositeCoverageOR(t *testing.T) {
	tests := []struct {
		name string
		a, b uint8
		want uint8
	}{
		{"disjoint bits", 0x0f, 0xf0, 0xff},
		{"overlapping bits", 0x30, 0x50, 0x70},
		{"saturated", 0xff, 0x80, 0xff},
		{"zero", 0x00, 0x42, 0x42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeFont(8, 8)
			// Zero advance stacks both glyphs on one pixel.
			f.runs["xy"] = text.GlyphRun{{GID: 1}, {GID: 2}}
			f.glyphs[1] = solid(1, 1, tt.a, 0, 0)
			f.glyphs[2] = solid(1, 1, tt.b, 0, 0)

			buf, err := mustCompositor(t, f).Composite([]TextRequest{
				{Text: "xy", Origin: image.Pt(3, 3), WrapWidth: 5, LineHeight: 4},
			})
			if err != nil {
				t.Fatal(err)
			}
			if _, _, _, a := buf.Pixel(3, 3); a != tt.want {
				t.Errorf("alpha = %#x, want %#x (a|b), sum would be %#x", a, tt.want, int(tt.a)+int(tt.b))
			}
		})
	}
}

// TestCompositeClipping tests that out-of-bounds pixels are dropped silently.
func TestCompositeClipping(t *testing.T) {
	tests := []struct {
		name   string
		origin image.Point
		want   int // lit pixels from one 4x4 glyph
	}{
		{"inside", image.Pt(2, 2), 16},
		{"left edge", image.Pt(-2, 2), 8},
		{"top edge", image.Pt(2, -3), 4},
		{"bottom right corner", image.Pt(14, 14), 4},
		{"fully left", image.Pt(-40, 2), 0},
		{"fully below", image.Pt(2, 100), 0},
		{"fully right", image.Pt(16, 2), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeFont(16, 16)
			f.runs["g"] = text.GlyphRun{{GID: 1, XAdvance: fixed.I(4)}}
			f.glyphs[1] = solid(4, 4, 0xff, 0, 0)

			buf, err := mustCompositor(t, f).Composite([]TextRequest{
				{Text: "g", Origin: tt.origin, WrapWidth: 4, LineHeight: 4},
			})
			if err != nil {
				t.Fatalf("Composite error: %v", err)
			}
			if got := len(litPixels(buf)); got != tt.want {
				t.Errorf("lit pixels = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestCompositeLines tests pen reset and line advance across wrapped lines.
func TestCompositeLines(t *testing.T) {
	f := newFakeFont(64, 64)
	for _, r := range "abcd" {
		f.glyphs[text.GlyphID(r)] = solid(1, 1, 0xff, 0, 0)
	}

	buf, err := mustCompositor(t, f).Composite([]TextRequest{
		{Text: "ab cd", Origin: image.Pt(4, 10), WrapWidth: 2, LineHeight: 12},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got, want := f.shaped, []string{"ab", "cd"}; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("shaped lines = %q, want %q", got, want)
	}
	want := []image.Point{image.Pt(4, 10), image.Pt(14, 10), image.Pt(4, 22), image.Pt(14, 22)}
	pts := litPixels(buf)
	if len(pts) != len(want) {
		t.Fatalf("lit pixels = %v, want %v", pts, want)
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("pixel %d = %v, want %v", i, pts[i], want[i])
		}
	}
}

// TestCompositeSkipsFailedGlyphs tests that a glyph error is absorbed and
// the remaining glyphs keep their shaped positions.
func TestCompositeSkipsFailedGlyphs(t *testing.T) {
	f := newFakeFont(64, 16)
	f.runs["abc"] = text.GlyphRun{
		{GID: 1, XAdvance: fixed.I(5)},
		{GID: 2, XAdvance: fixed.I(5)},
		{GID: 3, XAdvance: fixed.I(5)},
	}
	f.glyphs[1] = solid(1, 1, 0xff, 0, 0)
	f.failing[2] = true
	f.glyphs[3] = solid(1, 1, 0xff, 0, 0)

	buf, err := mustCompositor(t, f).Composite([]TextRequest{
		{Text: "abc", Origin: image.Pt(0, 4), WrapWidth: 10, LineHeight: 8},
	})
	if err != nil {
		t.Fatalf("Composite error: %v", err)
	}

	want := []image.Point{image.Pt(0, 4), image.Pt(10, 4)}
	pts := litPixels(buf)
	if len(pts) != 2 || pts[0] != want[0] || pts[1] != want[1] {
		t.Errorf("lit pixels = %v, want %v", pts, want)
	}
}

// TestCompositeZeroFills tests that each call starts from a cleared buffer.
func TestCompositeZeroFills(t *testing.T) {
	f := newFakeFont(32, 32)
	c := mustCompositor(t, f)

	if _, err := c.Composite([]TextRequest{
		{Text: "hello", Origin: image.Pt(1, 1), WrapWidth: 10, LineHeight: 4},
	}); err != nil {
		t.Fatal(err)
	}
	if len(litPixels(c.Buffer())) == 0 {
		t.Fatal("first Composite drew nothing")
	}

	buf, err := c.Composite(nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range buf.Data() {
		if v != 0 {
			t.Fatalf("byte %d = %d after empty Composite, want 0", i, v)
		}
	}
}

// TestCompositeInvalidWrapWidth tests up-front request validation.
func TestCompositeInvalidWrapWidth(t *testing.T) {
	f := newFakeFont(16, 16)
	c := mustCompositor(t, f)

	_, err := c.Composite([]TextRequest{
		{Text: "ok", WrapWidth: 3, LineHeight: 4},
		{Text: "bad", WrapWidth: 0, LineHeight: 4},
	})

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %v, want *RequestError", err)
	}
	if reqErr.Index != 1 {
		t.Errorf("Index = %d, want 1", reqErr.Index)
	}
	var wrapErr *text.WrapConfigError
	if !errors.As(err, &wrapErr) {
		t.Errorf("error = %v, want wrapping *text.WrapConfigError", err)
	}
	if len(f.shaped) != 0 {
		t.Errorf("shaped %q before validation finished", f.shaped)
	}
}

// TestCompositeNormalization tests NFC folding before wrapping and shaping.
func TestCompositeNormalization(t *testing.T) {
	decomposed := "e\u0301"

	f := newFakeFont(16, 16)
	if _, err := mustCompositor(t, f).Composite([]TextRequest{
		{Text: decomposed, WrapWidth: 1, LineHeight: 4},
	}); err != nil {
		t.Fatal(err)
	}
	if len(f.shaped) != 1 || f.shaped[0] != "\u00e9" {
		t.Errorf("NFC: shaped %q, want one precomposed line", f.shaped)
	}

	g := newFakeFont(16, 16)
	if _, err := mustCompositor(t, g, WithoutNormalization()).Composite([]TextRequest{
		{Text: decomposed, WrapWidth: 1, LineHeight: 4},
	}); err != nil {
		t.Fatal(err)
	}
	if len(g.shaped) != 2 {
		t.Errorf("no normalization: shaped %q, want two single-rune lines", g.shaped)
	}
}

// TestCompositeNormalizationChangesCodepoints tests that NFC replaces
// singleton decompositions, and that WithoutNormalization keeps them.
func TestCompositeNormalizationChangesCodepoints(t *testing.T) {
	const angstrom = "\u212b"
	req := []TextRequest{{Text: angstrom, WrapWidth: 4, LineHeight: 4}}

	f := newFakeFont(16, 16)
	if _, err := mustCompositor(t, f).Composite(req); err != nil {
		t.Fatal(err)
	}
	if len(f.shaped) != 1 || f.shaped[0] != "\u00c5" {
		t.Errorf("NFC: shaped %q, want U+00C5", f.shaped)
	}

	g := newFakeFont(16, 16)
	if _, err := mustCompositor(t, g, WithoutNormalization()).Composite(req); err != nil {
		t.Fatal(err)
	}
	if len(g.shaped) != 1 || g.shaped[0] != angstrom {
		t.Errorf("no normalization: shaped %q, want U+212B unchanged", g.shaped)
	}
}

// TestNewCompositorErrors tests constructor validation.
func TestNewCompositorErrors(t *testing.T) {
	if _, err := NewCompositor(nil); !errors.Is(err, ErrNilFont) {
		t.Errorf("NewCompositor(nil) error = %v, want ErrNilFont", err)
	}
	if _, err := NewCompositor(newFakeFont(0, 10)); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("zero width error = %v, want ErrInvalidDimensions", err)
	}
}

// TestCompositeOneShotOwnsBuffer tests that Composite returns a fresh buffer.
func TestCompositeOneShotOwnsBuffer(t *testing.T) {
	f := newFakeFont(16, 16)
	reqs := []TextRequest{{Text: "a", Origin: image.Pt(1, 1), WrapWidth: 1, LineHeight: 2}}

	a, err := Composite(reqs, f)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Composite(nil, f)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("Composite returned the same buffer twice")
	}
	if len(litPixels(a)) == 0 {
		t.Error("first buffer was cleared by the second call")
	}
}

// TestCompositeRealFont runs the full pipeline with Go Regular.
func TestCompositeRealFont(t *testing.T) {
	font, err := text.NewFontResource(goregular.TTF, 24, 200, 80)
	if err != nil {
		t.Fatal(err)
	}
	defer font.Close()
	font.SetTint(text.Tint{R: 255, G: 220, B: 0})

	buf, err := Composite([]TextRequest{
		{Text: "Hello, atlas", Origin: image.Pt(8, 30), WrapWidth: 7, LineHeight: 30},
	}, font)
	if err != nil {
		t.Fatalf("Composite error: %v", err)
	}

	pts := litPixels(buf)
	if len(pts) == 0 {
		t.Fatal("nothing drawn")
	}
	var firstLine, secondLine bool
	for _, p := range pts {
		r, g, b, _ := buf.Pixel(p.X, p.Y)
		if r != 255 || g != 220 || b != 0 {
			t.Fatalf("pixel %v rgb = (%d,%d,%d), want tint", p, r, g, b)
		}
		if p.Y < 30 {
			firstLine = true
		}
		if p.Y > 40 && p.Y < 60 {
			secondLine = true
		}
		if p.X < 8 {
			t.Errorf("pixel %v left of the origin", p)
		}
	}
	if !firstLine || !secondLine {
		t.Errorf("expected ink on both lines: first=%v second=%v", firstLine, secondLine)
	}
}
