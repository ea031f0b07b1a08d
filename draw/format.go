package draw

import (
	"errors"
	"fmt"
	"image"
	"strconv"

	"github.com/BeatGlow/ssd1306/glyph"
	"github.com/BeatGlow/ssd1306/pixel"
)

// MaxTokenLen is the capacity of the staging buffer that holds one formatted token.
const MaxTokenLen = 100

// Errors
var (
	ErrFormat       = errors.New("draw: invalid format")
	ErrTokenTooLong = errors.New("draw: formatted token too long")
)

// ArgKind is the type of a formatted argument.
type ArgKind uint8

// Argument kinds.
const (
	IntKind ArgKind = iota
	FloatKind
	CharKind
	StringKind
)

func (k ArgKind) String() string {
	switch k {
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case CharKind:
		return "char"
	case StringKind:
		return "string"
	default:
		return "ArgKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Arg is one argument for [Formatted].
type Arg struct {
	Kind  ArgKind
	Int   int32
	Float float64
	Char  byte
	Str   string
}

func IntArg(v int32) Arg     { return Arg{Kind: IntKind, Int: v} }
func FloatArg(v float64) Arg { return Arg{Kind: FloatKind, Float: v} }
func CharArg(c byte) Arg     { return Arg{Kind: CharKind, Char: c} }
func StringArg(s string) Arg { return Arg{Kind: StringKind, Str: s} }

// Formatted draws format starting at (x, y), wrapping like [String]. A newline moves the
// cursor to the start of the next line. A '%' starts a verb that consumes the next
// argument:
//
//	%c  a char argument, or an int argument truncated to a byte
//	%d  an int argument in decimal (%i is the same)
//	%x  an int argument in lower case hexadecimal (of its 32-bit two's complement)
//	%f  a float argument with two decimals
//	%s  a string argument
//	%%  a literal '%'
//
// Each token is staged in a buffer of [MaxTokenLen] bytes; a longer token is not drawn and
// [ErrTokenTooLong] is returned. A malformed format, a missing or mistyped argument, or
// arguments left over at the end return an error wrapping [ErrFormat]. Text before the
// failing verb stays drawn.
func Formatted(dst pixel.Canvas, set *glyph.Set, x, y int, format string, args ...Arg) (image.Point, error) {
	var (
		c    = newCursor(dst, set, x, y)
		buf  [MaxTokenLen]byte
		next int
	)

	arg := func(verb byte, kinds ...ArgKind) (Arg, error) {
		if next >= len(args) {
			return Arg{}, fmt.Errorf("%w: missing argument for %%%c", ErrFormat, verb)
		}
		a := args[next]
		next++
		for _, k := range kinds {
			if a.Kind == k {
				return a, nil
			}
		}
		return Arg{}, fmt.Errorf("%w: %%%c with %s argument %d", ErrFormat, verb, a.Kind, next)
	}

	for i := 0; i < len(format); i++ {
		switch ch := format[i]; ch {
		case '\n':
			c.newline()
			continue
		case '%':
		default:
			c.put(ch)
			continue
		}

		if i++; i == len(format) {
			return c.pos(), fmt.Errorf("%w: trailing %%", ErrFormat)
		}

		var (
			verb = format[i]
			tok  = buf[:0]
			a    Arg
			err  error
		)
		switch verb {
		case '%':
			tok = append(tok, '%')
		case 'c':
			if a, err = arg(verb, CharKind, IntKind); err != nil {
				return c.pos(), err
			}
			if a.Kind == IntKind {
				a.Char = byte(a.Int)
			}
			tok = append(tok, a.Char)
		case 'd', 'i':
			if a, err = arg(verb, IntKind); err != nil {
				return c.pos(), err
			}
			tok = strconv.AppendInt(tok, int64(a.Int), 10)
		case 'x':
			if a, err = arg(verb, IntKind); err != nil {
				return c.pos(), err
			}
			tok = strconv.AppendUint(tok, uint64(uint32(a.Int)), 16)
		case 'f':
			if a, err = arg(verb, FloatKind); err != nil {
				return c.pos(), err
			}
			tok = strconv.AppendFloat(tok, a.Float, 'f', 2, 64)
		case 's':
			if a, err = arg(verb, StringKind); err != nil {
				return c.pos(), err
			}
			if len(a.Str) > MaxTokenLen {
				return c.pos(), fmt.Errorf("%w: %%s argument of %d bytes", ErrTokenTooLong, len(a.Str))
			}
			tok = append(tok, a.Str...)
		default:
			return c.pos(), fmt.Errorf("%w: unknown verb %%%c", ErrFormat, verb)
		}

		if len(tok) > MaxTokenLen {
			return c.pos(), fmt.Errorf("%w: %%%c produced %d bytes", ErrTokenTooLong, verb, len(tok))
		}
		for _, b := range tok {
			c.put(b)
		}
	}

	if next < len(args) {
		return c.pos(), fmt.Errorf("%w: %d unused arguments", ErrFormat, len(args)-next)
	}
	return c.pos(), nil
}
