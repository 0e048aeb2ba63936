package text

import (
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// FontMetrics holds font-level metrics in pixels at the resource's size.
type FontMetrics struct {
	// Ascent is the distance from the baseline to the top of the font.
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font.
	// It is positive for fonts that extend below the baseline.
	Descent float64

	// LineGap is the recommended gap between lines.
	LineGap float64

	// XHeight is the height of lowercase letters (like 'x').
	XHeight float64

	// CapHeight is the height of uppercase letters.
	CapHeight float64
}

// Height returns the total line height (ascent + descent + line gap).
func (m FontMetrics) Height() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// LineHeight returns Height rounded up to whole pixels, suitable as a
// TextRequest line height.
func (m FontMetrics) LineHeight() int {
	return int(math.Ceil(m.Height()))
}

// Metrics returns the font metrics at the resource's size.
// A closed resource or a font without metrics yields zero values.
func (f *FontResource) Metrics() FontMetrics {
	if f.closed {
		return FontMetrics{}
	}
	m, err := f.sf.Metrics(&f.sfBuf, f.ppem, font.HintingNone)
	if err != nil {
		return FontMetrics{}
	}
	return FontMetrics{
		Ascent:    fixedToFloat64(m.Ascent),
		Descent:   fixedToFloat64(m.Descent),
		LineGap:   fixedToFloat64(m.Height - m.Ascent - m.Descent),
		XHeight:   fixedToFloat64(m.XHeight),
		CapHeight: fixedToFloat64(m.CapHeight),
	}
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
