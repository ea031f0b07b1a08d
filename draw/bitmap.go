package draw

import "github.com/BeatGlow/ssd1306/pixel"

// Bitmap copies the mw by mh rectangle at (mx, my) of src to dst, with its top left corner
// at (x, y). The source rectangle is clipped to the extent of src.
//
// The copy is opaque: lit source pixels are drawn and dark source pixels are erased.
func Bitmap(dst pixel.Canvas, x, y, mx, my, mw, mh int, src pixel.Bitmap) {
	var (
		x1 = min(mx+mw, src.Width())
		y1 = min(my+mh, src.Height())
	)
	for sx := max(mx, 0); sx < x1; sx++ {
		dx := x + sx - mx
		for sy := max(my, 0); sy < y1; sy++ {
			dy := y + sy - my
			if src.Pixel(sx, sy) {
				plot(dst, dx, dy)
			} else {
				unplot(dst, dx, dy)
			}
		}
	}
}

// BitmapAt copies all of src to dst with its top left corner at (x, y).
func BitmapAt(dst pixel.Canvas, x, y int, src pixel.Bitmap) {
	Bitmap(dst, x, y, 0, 0, src.Width(), src.Height(), src)
}

// BitmapCentered copies all of src to dst centered on (x, y).
func BitmapCentered(dst pixel.Canvas, x, y int, src pixel.Bitmap) {
	Bitmap(dst, x-src.Width()/2, y-src.Height()/2, 0, 0, src.Width(), src.Height(), src)
}

// BitmapRectCentered copies the mw by mh rectangle at (mx, my) of src to dst centered on
// (x, y).
func BitmapRectCentered(dst pixel.Canvas, x, y, mx, my, mw, mh int, src pixel.Bitmap) {
	Bitmap(dst, x-mw/2, y-mh/2, mx, my, mw, mh, src)
}
