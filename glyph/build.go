package glyph

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png" // PNG atlases
	"io"

	_ "golang.org/x/image/bmp" // BMP atlases
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"tinygo.org/x/tinyfont"

	"github.com/BeatGlow/ssd1306/pixel"
)

// Layout describes how characters are arranged when an atlas is rasterised from a font.
type Layout struct {
	// Width and Height of a glyph cell.
	Width, Height int

	// Columns is the number of cells per atlas row.
	Columns int

	// Chars holds the characters in atlas cell order.
	Chars string

	// Offset is the atlas cell of the first character, see [Metrics].
	Offset int

	// NumericOnly sets map their first cell to '0'.
	NumericOnly bool
}

func (l Layout) metrics() (Metrics, error) {
	if l.Width <= 0 || l.Height <= 0 {
		return Metrics{}, fmt.Errorf("%w: %dx%d", ErrGlyphSize, l.Width, l.Height)
	}
	if l.Columns <= 0 || len(l.Chars) == 0 {
		return Metrics{}, fmt.Errorf("%w: %d columns, %d characters", ErrAtlasLayout, l.Columns, len(l.Chars))
	}
	rows := (len(l.Chars) + l.Columns - 1) / l.Columns
	m := Metrics{
		Width:       l.Width,
		Height:      l.Height,
		Offset:      l.Offset,
		AtlasWidth:  l.Columns * l.Width,
		AtlasHeight: rows * l.Height,
		NumericOnly: l.NumericOnly,
	}
	if m.AtlasWidth > pixel.MaxSize || m.AtlasHeight > pixel.MaxSize {
		return Metrics{}, fmt.Errorf("%w: atlas %dx%d is too large", ErrAtlasLayout, m.AtlasWidth, m.AtlasHeight)
	}

	// Every character must land in the cell it is rendered to.
	probe := Set{m: m}
	for i := 0; i < len(l.Chars); i++ {
		if j := probe.Index(l.Chars[i]); j != i {
			return Metrics{}, fmt.Errorf("%w: character %q maps to cell %d, expected %d", ErrAtlasLayout, l.Chars[i], j, i)
		}
	}
	return m, nil
}

func (l Layout) cell(i int) image.Rectangle {
	x, y := (i%l.Columns)*l.Width, (i/l.Columns)*l.Height
	return image.Rect(x, y, x+l.Width, y+l.Height)
}

// Load decodes a PNG or BMP atlas image and creates a glyph set from it.
func Load(r io.Reader, m Metrics) (*Set, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("glyph: decode atlas: %w", err)
	}
	atlas, err := pixel.FromImage(img)
	if err != nil {
		return nil, err
	}
	return New(m, atlas)
}

// FromFace rasterises a font face into a new atlas. Each glyph is centered horizontally
// in its cell, with the baseline at the face ascent. Ink outside a cell is clipped.
func FromFace(face font.Face, l Layout) (*Set, error) {
	m, err := l.metrics()
	if err != nil {
		return nil, err
	}

	var (
		img    = image.NewGray(image.Rect(0, 0, m.AtlasWidth, m.AtlasHeight))
		ascent = face.Metrics().Ascent.Ceil()
	)
	for i, r := range []byte(l.Chars) {
		var (
			cell   = l.cell(i)
			dst    = img.SubImage(cell).(draw.Image)
			adv, _ = face.GlyphAdvance(rune(r))
			pad    = (l.Width - adv.Round()) / 2
		)
		if pad < 0 {
			pad = 0
		}
		d := font.Drawer{
			Dst:  dst,
			Src:  image.White,
			Face: face,
			Dot:  fixed.P(cell.Min.X+pad, cell.Min.Y+ascent),
		}
		d.DrawString(string(rune(r)))
	}

	atlas, err := pixel.FromImage(img)
	if err != nil {
		return nil, err
	}
	return New(m, atlas)
}

// FromFonter rasterises a tinyfont font into a new atlas. The baseline of every cell is
// placed at the tallest ascent of the rendered characters.
func FromFonter(f tinyfont.Fonter, l Layout) (*Set, error) {
	m, err := l.metrics()
	if err != nil {
		return nil, err
	}

	var ascent int
	for _, r := range []byte(l.Chars) {
		if a := -int(f.GetGlyph(rune(r)).Info().YOffset); a > ascent {
			ascent = a
		}
	}

	atlas := pixel.NewSurface(m.AtlasWidth, m.AtlasHeight, false)
	for i, r := range []byte(l.Chars) {
		cell := l.cell(i)
		t := &cellTarget{s: atlas, clip: cell}
		f.GetGlyph(rune(r)).Draw(t, int16(cell.Min.X), int16(cell.Min.Y+ascent), color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	}
	return New(m, atlas)
}

// cellTarget lets tinyfont glyphs draw into a single atlas cell.
type cellTarget struct {
	s    *pixel.Surface
	clip image.Rectangle
}

func (t *cellTarget) Size() (x, y int16) {
	return int16(t.s.Width()), int16(t.s.Height())
}

func (t *cellTarget) SetPixel(x, y int16, c color.RGBA) {
	if !(image.Point{X: int(x), Y: int(y)}).In(t.clip) {
		return
	}
	t.s.Set(int(x), int(y), c)
}

func (t *cellTarget) Display() error {
	return nil
}
