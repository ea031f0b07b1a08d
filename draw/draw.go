// Package draw implements drawing primitives for page-packed monochrome canvases.
//
// Every primitive is built from the DrawPixel and ErasePixel operations of a
// [pixel.Canvas]. Pixels that fall outside of the canvas are skipped, so primitives may be
// drawn partially (or entirely) off-screen.
package draw

import (
	"image"

	"github.com/BeatGlow/ssd1306/pixel"
)

func inside(dst pixel.Bitmap, x, y int) bool {
	return x >= 0 && y >= 0 && x < dst.Width() && y < dst.Height()
}

// plot lights a pixel if it is on the canvas.
func plot(dst pixel.Canvas, x, y int) {
	if inside(dst, x, y) {
		dst.DrawPixel(x, y)
	}
}

// unplot clears a pixel if it is on the canvas.
func unplot(dst pixel.Canvas, x, y int) {
	if inside(dst, x, y) {
		dst.ErasePixel(x, y)
	}
}

// Image copies src to dst with its top left corner at (x, y). Like [Bitmap] the copy is
// opaque: pixels that are dark under the [pixel.MonoModel] are erased.
func Image(dst pixel.Canvas, x, y int, src image.Image) {
	r := src.Bounds()
	for sy := r.Min.Y; sy < r.Max.Y; sy++ {
		for sx := r.Min.X; sx < r.Max.X; sx++ {
			dx, dy := x+sx-r.Min.X, y+sy-r.Min.Y
			if pixel.MonoModel.Convert(src.At(sx, sy)).(pixel.Mono).On {
				plot(dst, dx, dy)
			} else {
				unplot(dst, dx, dy)
			}
		}
	}
}
