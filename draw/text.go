package draw

import (
	"image"

	"github.com/BeatGlow/ssd1306/glyph"
	"github.com/BeatGlow/ssd1306/pixel"
)

// cursor lays out glyphs left to right, wrapping to the line start when the next glyph
// would cross the right edge of the canvas.
type cursor struct {
	dst    pixel.Canvas
	set    *glyph.Set
	startX int
	x, y   int
}

func newCursor(dst pixel.Canvas, set *glyph.Set, x, y int) *cursor {
	return &cursor{dst: dst, set: set, startX: x, x: x, y: y}
}

// put wraps if needed and places one glyph. A line always takes at least one glyph, even
// if the line start itself is too close to the right edge.
func (c *cursor) put(ch byte) {
	if c.x != c.startX && c.x+c.set.GlyphWidth() > c.dst.Width() {
		c.newline()
	}
	Char(c.dst, c.set, c.x, c.y, ch)
	c.x += c.set.GlyphWidth()
}

func (c *cursor) newline() {
	c.x = c.startX
	c.y += c.set.GlyphHeight()
}

func (c *cursor) pos() image.Point {
	return image.Pt(c.x, c.y)
}

// Char draws the glyph for ch with its top left corner at (x, y). Nothing is drawn if the
// glyph set has no glyph for ch.
func Char(dst pixel.Canvas, set *glyph.Set, x, y int, ch byte) {
	gx, gy, ok := set.Cell(ch)
	if !ok {
		return
	}
	Bitmap(dst, x, y, gx, gy, set.GlyphWidth(), set.GlyphHeight(), set.Atlas())
}

// String draws s starting at (x, y). Lines wrap back to x, one glyph height down, before a
// glyph that would cross the right edge. It returns the cursor after the last glyph.
func String(dst pixel.Canvas, set *glyph.Set, x, y int, s string) image.Point {
	c := newCursor(dst, set, x, y)
	for i := 0; i < len(s); i++ {
		c.put(s[i])
	}
	return c.pos()
}

// StringCentered draws s centered on (x, y).
func StringCentered(dst pixel.Canvas, set *glyph.Set, x, y int, s string) image.Point {
	w := len(s) * set.GlyphWidth()
	return String(dst, set, x-w/2, y-set.GlyphHeight()/2, s)
}

// Int draws the decimal representation of v starting at (x, y), wrapping like [String].
// Negative values are prefixed with '-'. It does not allocate.
func Int(dst pixel.Canvas, set *glyph.Set, x, y int, v int32) image.Point {
	var (
		c = newCursor(dst, set, x, y)
		n = int64(v)
	)
	if n < 0 {
		c.put('-')
		n = -n
	}
	digits := DigitCount(v)
	div := int64(1)
	for i := 1; i < digits; i++ {
		div *= 10
	}
	for ; digits > 0; digits-- {
		c.put(byte('0' + n/div%10))
		div /= 10
	}
	return c.pos()
}

// IntCentered draws v centered on (x, y).
func IntCentered(dst pixel.Canvas, set *glyph.Set, x, y int, v int32) image.Point {
	n := DigitCount(v)
	if v < 0 {
		n++
	}
	w := n * set.GlyphWidth()
	return Int(dst, set, x-w/2, y-set.GlyphHeight()/2, v)
}

// DigitCount returns the number of decimal digits of v, not counting a sign. That is
// floor(log10(|v|)) + 1 for any v other than zero, which has one digit.
func DigitCount(v int32) int {
	n := int64(v)
	if n < 0 {
		n = -n
	}
	digits := 1
	for n >= 10 {
		n /= 10
		digits++
	}
	return digits
}
