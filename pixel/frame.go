package pixel

import (
	"fmt"
	"image"
	"image/color"
)

// Native resolution of the display framebuffer.
const (
	FrameWidth  = 128
	FrameHeight = 64
	FramePages  = FrameHeight / 8
	FrameSize   = FrameWidth * FramePages
)

// Frame is the fixed size framebuffer of a 128x64 display. It is backed by an array, so a
// Frame never allocates or reallocates its pixel memory.
//
// The zero value is a cleared frame.
type Frame struct {
	pix [FrameSize]byte
}

// NewFrame returns a frame with all pixels lit or all pixels cleared.
func NewFrame(filled bool) *Frame {
	f := new(Frame)
	if filled {
		f.Fill()
	}
	return f
}

// NewFrameFrom returns a frame with its pixels copied from data.
func NewFrameFrom(data []byte) (*Frame, error) {
	if len(data) < FrameSize {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrShortData, FrameSize, len(data))
	}
	f := new(Frame)
	copy(f.pix[:], data)
	return f, nil
}

func (f *Frame) Width() int  { return FrameWidth }
func (f *Frame) Height() int { return FrameHeight }

// Data returns the backing buffer. The returned slice aliases the frame.
func (f *Frame) Data() []byte {
	return f.pix[:]
}

// Page returns the FrameWidth bytes of page p (pixel rows p*8 to p*8+7).
func (f *Frame) Page(p int) []byte {
	return f.pix[p*FrameWidth : (p+1)*FrameWidth]
}

// Fill lights all pixels.
func (f *Frame) Fill() {
	for i := range f.pix {
		f.pix[i] = 0xff
	}
}

// Clear turns off all pixels.
func (f *Frame) Clear() {
	f.pix = [FrameSize]byte{}
}

// DrawPixel lights the pixel at (x, y). There is no bounds check: the caller must keep
// 0 <= x < FrameWidth and 0 <= y < FrameHeight.
func (f *Frame) DrawPixel(x, y int) {
	f.pix[x+(y>>3)*FrameWidth] |= 1 << uint(y&7)
}

// ErasePixel clears the pixel at (x, y), with the same contract as DrawPixel.
func (f *Frame) ErasePixel(x, y int) {
	f.pix[x+(y>>3)*FrameWidth] &^= 1 << uint(y&7)
}

// Pixel reports if the pixel at (x, y) is lit, with the same contract as DrawPixel.
func (f *Frame) Pixel(x, y int) bool {
	return f.pix[x+(y>>3)*FrameWidth]&(1<<uint(y&7)) != 0
}

func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, FrameWidth, FrameHeight)
}

func (f *Frame) ColorModel() color.Model {
	return MonoModel
}

func (f *Frame) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(f.Bounds()) {
		return color.Transparent
	}
	return Mono{On: f.Pixel(x, y)}
}

func (f *Frame) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(f.Bounds()) {
		return
	}
	if isOn(c) {
		f.DrawPixel(x, y)
	} else {
		f.ErasePixel(x, y)
	}
}

// Interface checks.
var (
	_ Canvas = (*Surface)(nil)
	_ Canvas = (*Frame)(nil)
)
