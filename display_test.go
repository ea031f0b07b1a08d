package ssd1306

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/BeatGlow/ssd1306/draw"
	"github.com/BeatGlow/ssd1306/glyph"
	"github.com/BeatGlow/ssd1306/internal/emulator"
	"github.com/BeatGlow/ssd1306/pixel"
)

func testDisplay(t *testing.T) (*Display, *emulator.Bus) {
	t.Helper()
	bus := emulator.New(0x3c)
	cfg := DefaultConfig
	cfg.Logger = testLogger
	d, err := New(bus, &cfg)
	if err != nil {
		t.Fatal(err)
	}
	return d, bus
}

func testLitCount(d *Display) int {
	var n int
	for y := 0; y < d.Height(); y++ {
		for x := 0; x < d.Width(); x++ {
			if d.Pixel(x, y) {
				n++
			}
		}
	}
	return n
}

func TestNew(t *testing.T) {
	d, bus := testDisplay(t)
	if s := bus.State(); !s.On || s.Contrast != 0xCF {
		t.Errorf("expected initialised panel, got %+v", s)
	}
	if d.Dirty() {
		t.Error("expected a new display to be clean")
	}
	if d.FontSize() != Medium || d.Font() != glyph.Medium() {
		t.Errorf("expected medium font, got %s", d.FontSize())
	}
	if w, h := d.Size(); w != 128 || h != 64 {
		t.Errorf("expected 128x64, got %dx%d", w, h)
	}

	t.Run("invalid font size", func(it *testing.T) {
		cfg := DefaultConfig
		cfg.FontSize = 3
		if _, err := New(new(i2ctest.Record), &cfg); err == nil {
			it.Error("expected error")
		}
	})

	t.Run("init failure", func(it *testing.T) {
		if _, err := New(emulator.New(0x3d), &Config{Opts: *testOpts()}); !errors.Is(err, ErrTransport) {
			it.Errorf("expected %v, got %v", ErrTransport, err)
		}
	})

	t.Run("custom font", func(it *testing.T) {
		set, err := glyph.New(glyph.Metrics{Width: 8, Height: 8}, pixel.NewSurface(128, 48, true))
		if err != nil {
			it.Fatal(err)
		}
		cfg := Config{Opts: *testOpts(), FontSize: Large}
		cfg.Fonts[Large] = set
		d, err := New(new(i2ctest.Record), &cfg)
		if err != nil {
			it.Fatal(err)
		}
		if d.Font() != set {
			it.Error("expected custom large font")
		}
		d.SetFontSize(Small)
		if d.Font() != glyph.Small() {
			it.Error("expected built-in small font")
		}
	})
}

func TestDisplayRender(t *testing.T) {
	d, bus := testDisplay(t)

	d.DrawRect(0, 0, 10, 10)
	d.DrawLine(28, 0, 40, 10)
	d.DrawString(0, 40, "render")
	if !d.Dirty() {
		t.Fatal("expected drawing to mark the display dirty")
	}
	if err := d.Render(); err != nil {
		t.Fatal(err)
	}
	if d.Dirty() {
		t.Error("expected render to clear the dirty flag")
	}
	if got := bus.Frame(); !bytes.Equal(got.Data(), d.Frame().Data()) {
		t.Error("expected display RAM to match the framebuffer")
	}
	if !bus.Pixel(5, 5) || bus.Pixel(20, 30) {
		t.Error("expected rectangle on the panel")
	}
}

func TestDisplayRenderClean(t *testing.T) {
	r := &i2ctest.Record{Bus: emulator.New(0x3c)}
	cfg := Config{Opts: *testOpts()}
	d, err := New(r, &cfg)
	if err != nil {
		t.Fatal(err)
	}

	d.DrawPixel(1, 1)
	if err = d.Render(); err != nil {
		t.Fatal(err)
	}
	r.Ops = r.Ops[:0]
	if err = d.Render(); err != nil {
		t.Fatal(err)
	}
	if len(r.Ops) != 0 {
		t.Errorf("expected no transactions rendering a clean display, got %d", len(r.Ops))
	}

	d.ErasePixel(1, 1)
	if err = d.Render(); err != nil {
		t.Fatal(err)
	}
	if len(r.Ops) != 40 {
		t.Errorf("expected a full frame of 40 transactions, got %d", len(r.Ops))
	}
	if d.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", d.Frames())
	}
}

func TestDisplayRenderFailure(t *testing.T) {
	d, bus := testDisplay(t)
	nack := errors.New("nack")

	d.Fill()
	bus.FailWith(nack)
	if err := d.Render(); !errors.Is(err, ErrTransport) || !errors.Is(err, nack) {
		t.Fatalf("expected %v, got %v", ErrTransport, err)
	}
	if !d.Dirty() {
		t.Fatal("expected the display to stay dirty after a failed transfer")
	}

	bus.FailWith(nil)
	if err := d.Render(); err != nil {
		t.Fatal(err)
	}
	if d.Dirty() {
		t.Error("expected retry to clear the dirty flag")
	}
	if !bytes.Equal(bus.Frame().Data(), d.Frame().Data()) {
		t.Error("expected retry to transfer the whole frame")
	}
}

func TestDisplayBlinkSection(t *testing.T) {
	d, _ := testDisplay(t)

	var got []bool
	for i := 0; i < 8; i++ {
		if err := d.Render(); err != nil {
			t.Fatal(err)
		}
		d.BlinkSection(2, 4, func() { got = append(got, true) }, func() { got = append(got, false) })
	}
	want := []bool{true, false, false, true, true, false, false, true}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d: expected on=%t, got %t", i+1, want[i], got[i])
		}
	}

	var on bool
	d.BlinkSection(1, 0, func() { on = true }, func() {})
	if on {
		t.Error("expected period 0 to select off")
	}
}

func TestDisplayDraw(t *testing.T) {
	d, _ := testDisplay(t)

	d.Fill()
	if n := testLitCount(d); n != 128*64 {
		t.Errorf("expected all pixels lit, got %d", n)
	}
	d.EraseRect(0, 0, 128, 32)
	if n := testLitCount(d); n != 128*32 {
		t.Errorf("expected half of the pixels lit, got %d", n)
	}
	d.Clear()
	if n := testLitCount(d); n != 0 {
		t.Errorf("expected no pixels lit, got %d", n)
	}

	d.DrawRectOutline(0, 0, 10, 10, 2)
	if !d.Pixel(11, 11) {
		t.Error("expected outline to extend to (11,11)")
	}

	d.Clear()
	d.DrawCircle(64, 32, 10, 12)
	d.DrawRoundedRect(0, 0, 20, 20, 4)
	if testLitCount(d) == 0 {
		t.Error("expected circle and rounded rectangle")
	}

	d.Clear()
	src := pixel.NewSurface(2, 2, true)
	d.DrawBitmapAt(0, 0, src)
	d.DrawBitmapCentered(10, 10, src)
	d.DrawBitmap(20, 20, 0, 0, 1, 1, src)
	d.DrawBitmapRectCentered(30, 30, 0, 0, 2, 2, src)
	for _, p := range []image.Point{{1, 1}, {9, 9}, {20, 20}, {29, 29}} {
		if !d.Pixel(p.X, p.Y) {
			t.Errorf("expected bitmap pixel %s", p)
		}
	}

	d.Clear()
	img := image.NewGray(image.Rect(0, 0, 3, 3))
	img.SetGray(2, 2, color.Gray{Y: 0xff})
	d.DrawImage(5, 5, img)
	if !d.Pixel(7, 7) || testLitCount(d) != 1 {
		t.Error("expected only image pixel (7,7)")
	}
}

func TestDisplayText(t *testing.T) {
	d, _ := testDisplay(t)
	ref := pixel.NewFrame(false)

	t.Run("formatted", func(it *testing.T) {
		d.Clear()
		if _, err := d.DrawFormatted(0, 30, "int: %d", draw.IntArg(123)); err != nil {
			it.Fatal(err)
		}
		ref.Clear()
		draw.String(ref, glyph.Medium(), 0, 30, "int: 123")
		if !bytes.Equal(d.Frame().Data(), ref.Data()) {
			it.Error("expected formatted text to match plain text")
		}
	})

	t.Run("font size", func(it *testing.T) {
		d.Clear()
		d.SetFontSize(Small)
		d.DrawInt(80, 20, 12345)
		ref.Clear()
		draw.Int(ref, glyph.Small(), 80, 20, 12345)
		if !bytes.Equal(d.Frame().Data(), ref.Data()) {
			it.Error("expected small integer")
		}

		d.SetFontSize(FontSize(42))
		if d.FontSize() != Small {
			it.Errorf("expected invalid size to be ignored, got %s", d.FontSize())
		}
	})

	t.Run("large digits", func(it *testing.T) {
		d.Clear()
		d.SetFontSize(Large)
		p := d.DrawStringCentered(64, 32, "12:34")
		if p.X != 64-30+60 {
			it.Errorf("expected cursor at x=%d, got %d", 64-30+60, p.X)
		}
		d.DrawIntCentered(64, 10, -7)
		d.DrawChar(0, 0, '8')
		if testLitCount(d) == 0 {
			it.Error("expected large digits")
		}
	})
}

func TestDisplayImageInterop(t *testing.T) {
	t.Run("font drawer", func(it *testing.T) {
		d, _ := testDisplay(it)
		(&font.Drawer{
			Dst:  d,
			Src:  image.White,
			Face: basicfont.Face7x13,
			Dot:  fixed.P(0, 13),
		}).DrawString("x/image")
		if !d.Dirty() || testLitCount(d) == 0 {
			it.Error("expected text drawn through image/draw")
		}
	})

	t.Run("tinyfont", func(it *testing.T) {
		d, bus := testDisplay(it)
		tinyfont.WriteLine(d, &proggy.TinySZ8pt7b, 0, 10, "tinyfont", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
		if testLitCount(d) == 0 {
			it.Fatal("expected text drawn through the displayer")
		}
		if err := d.Display(); err != nil {
			it.Fatal(err)
		}
		if !bytes.Equal(bus.Frame().Data(), d.Frame().Data()) {
			it.Error("expected Display to render")
		}
	})

	t.Run("clipped", func(it *testing.T) {
		d, _ := testDisplay(it)
		d.SetPixel(-1, 200, color.RGBA{A: 0xff, R: 0xff, G: 0xff, B: 0xff})
		d.Set(128, 0, pixel.On)
		if testLitCount(d) != 0 {
			it.Error("expected pixels outside of the display to be ignored")
		}
		if d.At(0, 0) != pixel.Off {
			it.Errorf("expected off, got %v", d.At(0, 0))
		}
	})
}

func TestDisplayClose(t *testing.T) {
	d, bus := testDisplay(t)
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if bus.State().On {
		t.Error("expected panel to be switched off")
	}
	d.DrawPixel(0, 0)
	if err := d.Render(); !errors.Is(err, ErrHalted) {
		t.Errorf("expected %v, got %v", ErrHalted, err)
	}
}
