package glyph

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomonobold"
	"tinygo.org/x/tinyfont/proggy"
)

// Printable holds the printable ASCII characters, in cell order for a text set with offset 0.
const Printable = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

// Layouts of the built-in sets.
var (
	SmallLayout = Layout{
		Width:   6,
		Height:  10,
		Columns: 16,
		Chars:   Printable,
	}
	MediumLayout = Layout{
		Width:   7,
		Height:  13,
		Columns: 16,
		Chars:   Printable,
	}
	LargeLayout = Layout{
		Width:       12,
		Height:      20,
		Columns:     7,
		Chars:       "-./0123456789:",
		Offset:      3,
		NumericOnly: true,
	}
)

// LargeSize is the point size (at 72 DPI) of the large set.
const LargeSize = 20

var (
	small  = sync.OnceValue(func() *Set { return must(FromFonter(&proggy.TinySZ8pt7b, SmallLayout)) })
	medium = sync.OnceValue(func() *Set { return must(FromFace(basicfont.Face7x13, MediumLayout)) })
	large  = sync.OnceValue(func() *Set {
		f := must(truetype.Parse(gomonobold.TTF))
		return must(FromFace(truetype.NewFace(f, &truetype.Options{
			Size:    LargeSize,
			DPI:     72,
			Hinting: font.HintingFull,
		}), LargeLayout))
	})
)

// Small is a 6x10 text set rasterised from the tinyfont Proggy Tiny font.
func Small() *Set { return small() }

// Medium is a 7x13 text set rasterised from the x/image basic font.
func Medium() *Set { return medium() }

// Large is a 12x20 numeric-only set rasterised from Go Mono Bold. It covers "-./0123456789:".
func Large() *Set { return large() }

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
