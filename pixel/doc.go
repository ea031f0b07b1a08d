// Package pixel implements the page-packed monochrome buffers used by SSD1306 class OLED displays.
//
// Every buffer in this package stores pixel (x, y) in byte x + (y/8)*width, bit y%8, with a
// set bit meaning a lit pixel. This is the same layout the display controller uses for its
// graphics RAM, so a buffer can be streamed to the device page by page without conversion.
//
// Both [Surface] and [Frame] are compatible with Go's native [image.Image] and [draw.Image]
// interfaces using the [MonoModel] color model.
package pixel
