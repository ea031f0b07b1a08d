package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/BeatGlow/ssd1306/internal/emulator"
	"github.com/BeatGlow/ssd1306/pixel"
)

// view paints the emulated panel on a terminal, two pixel rows per text row.
type view struct {
	screen tcell.Screen
	bus    *emulator.Bus
}

// cell returns the half block for a pair of vertically stacked pixels.
func cell(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}

// panelColor maps the contrast register to a gray level.
func panelColor(contrast byte) tcell.Color {
	level := 0x40 + int32(contrast)*0xbf/0xff
	return tcell.NewRGBColor(level, level, level)
}

func (v *view) draw(status string) {
	var (
		state = v.bus.State()
		style = tcell.StyleDefault.Foreground(panelColor(state.Contrast)).Background(tcell.ColorBlack)
	)
	for row := 0; row < pixel.FrameHeight/2; row++ {
		for x := 0; x < pixel.FrameWidth; x++ {
			top, bottom := v.bus.Pixel(x, row*2), v.bus.Pixel(x, row*2+1)
			v.screen.SetContent(x, row, cell(top, bottom), nil, style)
		}
	}

	line := fmt.Sprintf("%s  on=%t inverted=%t contrast=%#02x", status, state.On, state.Inverted, state.Contrast)
	for x := 0; x < pixel.FrameWidth; x++ {
		r := ' '
		if x < len(line) {
			r = rune(line[x])
		}
		v.screen.SetContent(x, pixel.FrameHeight/2, r, nil, tcell.StyleDefault)
	}
	v.screen.Show()
}
