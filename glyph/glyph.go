// Package glyph implements fixed-cell glyph sets rendered from a single atlas bitmap.
//
// A glyph set is immutable: it owns a private copy of its atlas and only exposes it
// through the read-only [pixel.Bitmap] interface. Sets are shared by pointer.
package glyph

import (
	"errors"
	"fmt"

	"github.com/BeatGlow/ssd1306/pixel"
)

// Errors
var (
	ErrAtlasSize   = errors.New("glyph: atlas size is not a multiple of the glyph size")
	ErrGlyphSize   = errors.New("glyph: invalid glyph size")
	ErrAtlasLayout = errors.New("glyph: invalid atlas layout")
)

// Metrics describe the atlas grid of a glyph set.
type Metrics struct {
	// Width of a glyph cell in pixels.
	Width int

	// Height of a glyph cell in pixels.
	Height int

	// Offset is the atlas cell of the first character (' ', or '0' for numeric-only sets).
	Offset int

	// AtlasWidth of the atlas in pixels, zero to use the width of the atlas bitmap.
	AtlasWidth int

	// AtlasHeight of the atlas in pixels, zero to use the height of the atlas bitmap.
	AtlasHeight int

	// NumericOnly sets have their first atlas cell bound to '0' instead of ' '.
	NumericOnly bool
}

// Set is an immutable glyph set.
type Set struct {
	m      Metrics
	atlas  *pixel.Surface
	perRow int
	cells  int
}

// New creates a glyph set from an atlas. The atlas is copied.
func New(m Metrics, atlas *pixel.Surface) (*Set, error) {
	if atlas == nil {
		return nil, fmt.Errorf("%w: no atlas", ErrAtlasLayout)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrGlyphSize, m.Width, m.Height)
	}
	if m.AtlasWidth == 0 {
		m.AtlasWidth = atlas.Width()
	}
	if m.AtlasHeight == 0 {
		m.AtlasHeight = atlas.Height()
	}
	if m.AtlasWidth != atlas.Width() || m.AtlasHeight != atlas.Height() {
		return nil, fmt.Errorf("%w: metrics describe a %dx%d atlas, bitmap is %dx%d", ErrAtlasLayout,
			m.AtlasWidth, m.AtlasHeight, atlas.Width(), atlas.Height())
	}
	if m.AtlasWidth == 0 || m.AtlasHeight == 0 || m.AtlasWidth%m.Width != 0 || m.AtlasHeight%m.Height != 0 {
		return nil, fmt.Errorf("%w: atlas %dx%d, glyph %dx%d", ErrAtlasSize,
			m.AtlasWidth, m.AtlasHeight, m.Width, m.Height)
	}

	perRow := m.AtlasWidth / m.Width
	return &Set{
		m:      m,
		atlas:  atlas.Clone(),
		perRow: perRow,
		cells:  perRow * (m.AtlasHeight / m.Height),
	}, nil
}

func (s *Set) GlyphWidth() int   { return s.m.Width }
func (s *Set) GlyphHeight() int  { return s.m.Height }
func (s *Set) Offset() int       { return s.m.Offset }
func (s *Set) AtlasWidth() int   { return s.m.AtlasWidth }
func (s *Set) AtlasHeight() int  { return s.m.AtlasHeight }
func (s *Set) NumericOnly() bool { return s.m.NumericOnly }

// Metrics returns a copy of the set metrics.
func (s *Set) Metrics() Metrics { return s.m }

// Atlas returns the atlas bitmap.
func (s *Set) Atlas() pixel.Bitmap { return s.atlas }

// Cells is the number of glyph cells in the atlas.
func (s *Set) Cells() int { return s.cells }

// Index returns the atlas cell index of character ch. The index may be out of range, in
// which case the atlas has no glyph for ch.
func (s *Set) Index(ch byte) int {
	i := int(ch) - ' ' + s.m.Offset
	if s.m.NumericOnly {
		i -= '0' - ' '
	}
	return i
}

// Cell returns the top left atlas position of the glyph for ch, ok is false if the atlas
// holds no glyph for ch.
func (s *Set) Cell(ch byte) (x, y int, ok bool) {
	i := s.Index(ch)
	if i < 0 || i >= s.cells {
		return 0, 0, false
	}
	return (i % s.perRow) * s.m.Width, (i / s.perRow) * s.m.Height, true
}

func (s *Set) String() string {
	kind := "text"
	if s.m.NumericOnly {
		kind = "numeric"
	}
	return fmt.Sprintf("%dx%d %s glyphs (%d cells)", s.m.Width, s.m.Height, kind, s.cells)
}
