package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// MaxSize is the largest width or height of a surface.
const MaxSize = 255

// ErrShortData is returned when raw pixel data is smaller than the surface it should fill.
var ErrShortData = errors.New("pixel: not enough data for surface")

// Bitmap is a read-only page-packed monochrome bitmap.
type Bitmap interface {
	// Width in pixels.
	Width() int

	// Height in pixels.
	Height() int

	// Pixel reports if the pixel at (x, y) is lit.
	Pixel(x, y int) bool
}

// Canvas is a Bitmap that can be drawn on.
type Canvas interface {
	Bitmap

	// DrawPixel lights the pixel at (x, y).
	DrawPixel(x, y int)

	// ErasePixel clears the pixel at (x, y).
	ErasePixel(x, y int)
}

// BufferSize is the number of bytes needed to store a w by h surface.
func BufferSize(w, h int) int {
	return w * ((h + 7) >> 3)
}

// Surface is a dynamically sized page-packed monochrome bitmap, used for loaded images and
// glyph atlases.
type Surface struct {
	width  int
	height int
	pix    []byte
}

// NewSurface allocates a w by h surface, either with all pixels lit or all pixels cleared.
//
// NewSurface panics if either dimension is negative or larger than [MaxSize].
func NewSurface(w, h int, filled bool) *Surface {
	mustSize(w, h)
	s := &Surface{
		width:  w,
		height: h,
		pix:    make([]byte, BufferSize(w, h)),
	}
	if filled {
		s.Fill()
	}
	return s
}

// NewSurfaceFrom allocates a w by h surface and copies its pixels from data.
func NewSurfaceFrom(w, h int, data []byte) (*Surface, error) {
	if w < 0 || h < 0 || w > MaxSize || h > MaxSize {
		return nil, fmt.Errorf("pixel: invalid surface size %dx%d", w, h)
	}
	size := BufferSize(w, h)
	if len(data) < size {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrShortData, size, len(data))
	}
	s := &Surface{
		width:  w,
		height: h,
		pix:    make([]byte, size),
	}
	copy(s.pix, data)
	return s, nil
}

// FromImage converts any image to a surface of the same size, using the [MonoModel].
func FromImage(src image.Image) (*Surface, error) {
	r := src.Bounds()
	if r.Dx() > MaxSize || r.Dy() > MaxSize {
		return nil, fmt.Errorf("pixel: image size %s exceeds %dx%d", r.Size(), MaxSize, MaxSize)
	}
	s := NewSurface(r.Dx(), r.Dy(), false)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if isOn(src.At(x, y)) {
				s.DrawPixel(x-r.Min.X, y-r.Min.Y)
			}
		}
	}
	return s, nil
}

func mustSize(w, h int) {
	if w < 0 || h < 0 || w > MaxSize || h > MaxSize {
		panic(fmt.Sprintf("pixel: invalid surface size %dx%d", w, h))
	}
}

// Clone returns a deep copy of the surface.
func (s *Surface) Clone() *Surface {
	c := &Surface{
		width:  s.width,
		height: s.height,
		pix:    make([]byte, len(s.pix)),
	}
	copy(c.pix, s.pix)
	return c
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Data returns the backing buffer. The returned slice aliases the surface.
func (s *Surface) Data() []byte {
	return s.pix
}

// Fill lights all pixels.
func (s *Surface) Fill() {
	for i := range s.pix {
		s.pix[i] = 0xff
	}
}

// Clear turns off all pixels.
func (s *Surface) Clear() {
	for i := range s.pix {
		s.pix[i] = 0x00
	}
}

// DrawPixel lights the pixel at (x, y). There is no bounds check: the caller must keep
// 0 <= x < Width and 0 <= y < Height.
func (s *Surface) DrawPixel(x, y int) {
	s.pix[x+(y>>3)*s.width] |= 1 << uint(y&7)
}

// ErasePixel clears the pixel at (x, y), with the same contract as DrawPixel.
func (s *Surface) ErasePixel(x, y int) {
	s.pix[x+(y>>3)*s.width] &^= 1 << uint(y&7)
}

// Pixel reports if the pixel at (x, y) is lit, with the same contract as DrawPixel.
func (s *Surface) Pixel(x, y int) bool {
	return s.pix[x+(y>>3)*s.width]&(1<<uint(y&7)) != 0
}

func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

func (s *Surface) ColorModel() color.Model {
	return MonoModel
}

func (s *Surface) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(s.Bounds()) {
		return color.Transparent
	}
	return Mono{On: s.Pixel(x, y)}
}

func (s *Surface) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(s.Bounds()) {
		return
	}
	if isOn(c) {
		s.DrawPixel(x, y)
	} else {
		s.ErasePixel(x, y)
	}
}
