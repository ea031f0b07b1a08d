// Package demo draws the demonstration scene shared by the display programs.
package demo

import (
	"github.com/BeatGlow/ssd1306"
	"github.com/BeatGlow/ssd1306/draw"
)

// Blink timing of the activity marker, in frames.
const (
	BlinkOn     = 10
	BlinkPeriod = 20
)

// Draw redraws the scene: a few shapes, numbers, formatted text and a blinking marker
// in the top right corner. It leaves the display in the medium font size.
func Draw(d *ssd1306.Display) error {
	d.Clear()

	d.DrawRect(0, 0, 10, 10)
	d.DrawRectOutline(12, 0, 10, 10, 2)
	d.DrawLine(28, 0, 40, 10)
	d.DrawCircle(56, 10, 8, 15)

	d.SetFontSize(ssd1306.Small)
	d.DrawInt(80, 20, 12345)
	if _, err := d.DrawFormatted(0, 30, "f string lf\nint: %d char: %c hex: %x lf\nstring: %s escape: %%",
		draw.IntArg(123),
		draw.CharArg('m'),
		draw.IntArg(57005),
		draw.StringArg("hello"),
	); err != nil {
		return err
	}

	d.SetFontSize(ssd1306.Medium)
	d.DrawString(0, 50, "medium font")

	d.BlinkSection(BlinkOn, BlinkPeriod,
		func() { d.DrawRect(120, 0, 8, 8) },
		func() { d.EraseRect(120, 0, 8, 8) },
	)
	return nil
}
