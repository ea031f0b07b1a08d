// Package ssd1306 drives monochrome 128x64 SSD1306 OLED displays over I²C.
//
// A [Display] owns the framebuffer. Drawing only changes the framebuffer, [Display.Render]
// transfers it to the panel when it changed since the last transfer.
package ssd1306

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"strconv"

	"periph.io/x/conn/v3/i2c"
	"tinygo.org/x/drivers"

	"github.com/BeatGlow/ssd1306/draw"
	"github.com/BeatGlow/ssd1306/glyph"
	"github.com/BeatGlow/ssd1306/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("DISPLAY_DEBUG") != ""
}

// FontSize selects one of the glyph sets of a display.
type FontSize uint8

// Supported font sizes.
const (
	Small FontSize = iota
	Medium
	Large
	numFontSizes
)

func (s FontSize) String() string {
	switch s {
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	default:
		return "FontSize(" + strconv.Itoa(int(s)) + ")"
	}
}

// Config is the display configuration.
type Config struct {
	Opts

	// FontSize is the initial font size.
	FontSize FontSize

	// Fonts replaces the glyph set of a font size, nil entries use the built-in sets.
	Fonts [numFontSizes]*glyph.Set
}

// DefaultConfig is the default display configuration.
var DefaultConfig = Config{
	Opts:     DefaultOpts,
	FontSize: Medium,
}

// Display is a 128x64 SSD1306 display.
//
// Every drawing method only mutates the framebuffer and marks it dirty. A Display is not safe
// for concurrent use, see [Queue].
type Display struct {
	frame  pixel.Frame
	ctrl   *Controller
	fonts  [numFontSizes]*glyph.Set
	size   FontSize
	dirty  bool
	frames uint32
	bus    io.Closer
	log    *slog.Logger
}

// Interface checks.
var (
	_ pixel.Canvas      = (*Display)(nil)
	_ drivers.Displayer = (*Display)(nil)
)

// New initialises the display on the bus and returns it with a cleared framebuffer.
func New(bus i2c.Bus, cfg *Config) (*Display, error) {
	if cfg == nil {
		cfg = new(Config)
		*cfg = DefaultConfig
	}
	if cfg.FontSize >= numFontSizes {
		return nil, fmt.Errorf("ssd1306: invalid font size %s", cfg.FontSize)
	}

	d := &Display{
		ctrl:  NewController(bus, &cfg.Opts),
		fonts: cfg.Fonts,
		size:  cfg.FontSize,
	}
	d.log = d.ctrl.log
	for size, set := range d.fonts {
		if set == nil {
			d.fonts[size] = defaultFont(FontSize(size))
		}
	}

	if err := d.ctrl.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

func defaultFont(size FontSize) *glyph.Set {
	switch size {
	case Small:
		return glyph.Small()
	case Large:
		return glyph.Large()
	default:
		return glyph.Medium()
	}
}

func (d *Display) String() string {
	return d.ctrl.String()
}

// Close switches the panel off. The bus is only closed if the display opened it.
func (d *Display) Close() error {
	err := d.ctrl.Close()
	if d.bus != nil {
		if cerr := d.bus.Close(); err == nil {
			err = cerr
		}
		d.bus = nil
	}
	return err
}

// Controller returns the transport controller, for inversion, dimming and contrast.
func (d *Display) Controller() *Controller { return d.ctrl }

// Frame returns the framebuffer. Changes made through it are not tracked, call
// [Display.Invalidate] afterwards.
func (d *Display) Frame() *pixel.Frame { return &d.frame }

// Invalidate marks the framebuffer dirty.
func (d *Display) Invalidate() { d.dirty = true }

// Dirty reports if the framebuffer changed since the last transfer.
func (d *Display) Dirty() bool { return d.dirty }

// Frames is the number of Render calls.
func (d *Display) Frames() uint32 { return d.frames }

func (d *Display) Width() int  { return pixel.FrameWidth }
func (d *Display) Height() int { return pixel.FrameHeight }

// SetFontSize selects the glyph set used by the text methods.
func (d *Display) SetFontSize(size FontSize) {
	if size < numFontSizes {
		d.size = size
	}
}

// FontSize returns the selected font size.
func (d *Display) FontSize() FontSize { return d.size }

// Font returns the selected glyph set.
func (d *Display) Font() *glyph.Set { return d.fonts[d.size] }

// Render transfers the framebuffer if it is dirty. Every call counts as a frame for
// [Display.BlinkSection], whether or not anything was sent. The framebuffer stays dirty
// when the transfer fails.
func (d *Display) Render() error {
	d.frames++
	if debug {
		d.log.Info("render", "frame", d.frames, "dirty", d.dirty)
	}
	if !d.dirty {
		return nil
	}
	if err := d.ctrl.SendFrame(&d.frame); err != nil {
		return err
	}
	d.dirty = false
	return nil
}

// BlinkSection calls on for the first frequency frames of every period frames, and off for
// the remaining frames. A period of zero always calls off.
func (d *Display) BlinkSection(frequency, period uint8, on, off func()) {
	if period > 0 && d.frames%uint32(period) < uint32(frequency) {
		on()
		return
	}
	off()
}

// Fill lights all pixels.
func (d *Display) Fill() {
	d.frame.Fill()
	d.dirty = true
}

// Clear clears all pixels.
func (d *Display) Clear() {
	d.frame.Clear()
	d.dirty = true
}

// DrawPixel lights the pixel at (x, y), which must be on the display.
func (d *Display) DrawPixel(x, y int) {
	d.frame.DrawPixel(x, y)
	d.dirty = true
}

// ErasePixel clears the pixel at (x, y), which must be on the display.
func (d *Display) ErasePixel(x, y int) {
	d.frame.ErasePixel(x, y)
	d.dirty = true
}

// Pixel reports if the pixel at (x, y) is lit.
func (d *Display) Pixel(x, y int) bool {
	return d.frame.Pixel(x, y)
}

func (d *Display) DrawRect(x, y, w, h int) {
	draw.Rect(&d.frame, x, y, w, h)
	d.dirty = true
}

func (d *Display) EraseRect(x, y, w, h int) {
	draw.EraseRect(&d.frame, x, y, w, h)
	d.dirty = true
}

// DrawRectOutline draws a rectangle outline, see [draw.RectOutline] for its extent.
func (d *Display) DrawRectOutline(x, y, w, h, thickness int) {
	draw.RectOutline(&d.frame, x, y, w, h, thickness)
	d.dirty = true
}

func (d *Display) DrawRoundedRect(x, y, w, h, radius int) {
	draw.RoundedRect(&d.frame, x, y, w, h, radius)
	d.dirty = true
}

func (d *Display) DrawLine(x0, y0, x1, y1 int) {
	draw.Line(&d.frame, x0, y0, x1, y1)
	d.dirty = true
}

func (d *Display) DrawCircle(cx, cy int, radius float64, quality int) {
	draw.Circle(&d.frame, cx, cy, radius, quality)
	d.dirty = true
}

func (d *Display) DrawBitmap(x, y, mx, my, mw, mh int, src pixel.Bitmap) {
	draw.Bitmap(&d.frame, x, y, mx, my, mw, mh, src)
	d.dirty = true
}

func (d *Display) DrawBitmapAt(x, y int, src pixel.Bitmap) {
	draw.BitmapAt(&d.frame, x, y, src)
	d.dirty = true
}

func (d *Display) DrawBitmapCentered(x, y int, src pixel.Bitmap) {
	draw.BitmapCentered(&d.frame, x, y, src)
	d.dirty = true
}

func (d *Display) DrawBitmapRectCentered(x, y, mx, my, mw, mh int, src pixel.Bitmap) {
	draw.BitmapRectCentered(&d.frame, x, y, mx, my, mw, mh, src)
	d.dirty = true
}

// DrawImage copies any image to the framebuffer, converted with [pixel.MonoModel].
func (d *Display) DrawImage(x, y int, src image.Image) {
	draw.Image(&d.frame, x, y, src)
	d.dirty = true
}

func (d *Display) DrawChar(x, y int, ch byte) {
	draw.Char(&d.frame, d.Font(), x, y, ch)
	d.dirty = true
}

// DrawString draws s in the selected font and returns the cursor after the last glyph.
func (d *Display) DrawString(x, y int, s string) image.Point {
	d.dirty = true
	return draw.String(&d.frame, d.Font(), x, y, s)
}

func (d *Display) DrawStringCentered(x, y int, s string) image.Point {
	d.dirty = true
	return draw.StringCentered(&d.frame, d.Font(), x, y, s)
}

func (d *Display) DrawInt(x, y int, v int32) image.Point {
	d.dirty = true
	return draw.Int(&d.frame, d.Font(), x, y, v)
}

func (d *Display) DrawIntCentered(x, y int, v int32) image.Point {
	d.dirty = true
	return draw.IntCentered(&d.frame, d.Font(), x, y, v)
}

// DrawFormatted draws a formatted string in the selected font, see [draw.Formatted].
func (d *Display) DrawFormatted(x, y int, format string, args ...draw.Arg) (image.Point, error) {
	d.dirty = true
	return draw.Formatted(&d.frame, d.Font(), x, y, format, args...)
}

// Bounds is the display bounding box.
func (d *Display) Bounds() image.Rectangle { return d.frame.Bounds() }

// ColorModel is [pixel.MonoModel].
func (d *Display) ColorModel() color.Model { return d.frame.ColorModel() }

// At returns the color of the pixel at (x, y).
func (d *Display) At(x, y int) color.Color { return d.frame.At(x, y) }

// Set the pixel color at (x, y). Pixels outside of the display are ignored.
func (d *Display) Set(x, y int, c color.Color) {
	d.frame.Set(x, y, c)
	d.dirty = true
}

// Size implements [drivers.Displayer].
func (d *Display) Size() (x, y int16) {
	return pixel.FrameWidth, pixel.FrameHeight
}

// SetPixel implements [drivers.Displayer]. Pixels outside of the display are ignored.
func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	d.Set(int(x), int(y), c)
}

// Display implements [drivers.Displayer], it is the same as [Display.Render].
func (d *Display) Display() error {
	return d.Render()
}
