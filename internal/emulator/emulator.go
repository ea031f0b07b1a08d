// Package emulator implements an SSD1306 controller behind an in-process I²C bus.
//
// The emulator decodes the command and data streams written to it into a model of the
// controller registers and its display RAM (GDDRAM). It backs the terminal simulator and
// the end to end tests.
package emulator

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/ssd1306/pixel"
)

// Errors
var (
	ErrNoDevice = errors.New("emulator: no device at address")
	ErrRead     = errors.New("emulator: device is write only")
	ErrProtocol = errors.New("emulator: invalid control byte")
)

// Memory addressing modes.
const (
	HorizontalMode = 0x00
	VerticalMode   = 0x01
	PageMode       = 0x02
)

const (
	width = pixel.FrameWidth
	pages = pixel.FramePages
)

// Bus is an I²C bus with one emulated SSD1306 attached.
type Bus struct {
	mu    sync.Mutex
	addr  uint16
	speed physic.Frequency
	fail  error

	ram       [pixel.FrameSize]byte
	col, page int
	colStart  int
	colEnd    int
	pageStart int
	pageEnd   int
	mode      byte

	cmd  []byte // command awaiting its arguments
	need int

	on         bool
	inverted   bool
	allOn      bool
	contrast   byte
	chargePump byte
	startLine  byte

	txs      int
	commands int
	written  int
}

// New returns a bus with a controller at addr, in its power on reset state.
func New(addr uint16) *Bus {
	b := &Bus{addr: addr}
	b.reset()
	return b
}

func (b *Bus) reset() {
	b.ram = [pixel.FrameSize]byte{}
	b.col, b.page = 0, 0
	b.colStart, b.colEnd = 0, width-1
	b.pageStart, b.pageEnd = 0, pages-1
	b.mode = PageMode
	b.cmd, b.need = nil, 0
	b.on, b.inverted, b.allOn = false, false, false
	b.contrast = 0x7f
	b.chargePump = 0x10
	b.startLine = 0
}

func (b *Bus) String() string {
	return fmt.Sprintf("emulator(%#02x)", b.addr)
}

// Close does nothing.
func (b *Bus) Close() error { return nil }

// SetSpeed records the bus speed.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.speed = f
	return nil
}

// FailWith makes every following transaction fail with err, nil restores normal operation.
func (b *Bus) FailWith(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail = err
}

// Tx decodes one write transaction.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fail != nil {
		return b.fail
	}
	if addr != b.addr {
		return fmt.Errorf("%w %#02x", ErrNoDevice, addr)
	}
	if len(r) > 0 {
		return ErrRead
	}
	b.txs++

	for len(w) > 0 {
		var (
			control = w[0]
			cont    = control&0x80 != 0
			data    = control&0x40 != 0
		)
		if control&0x3f != 0 {
			return fmt.Errorf("%w %#02x", ErrProtocol, control)
		}
		w = w[1:]

		payload := w
		if cont {
			// Continuation: one byte, then another control byte.
			if len(payload) == 0 {
				return nil
			}
			payload, w = w[:1], w[1:]
		} else {
			w = nil
		}

		for _, v := range payload {
			if data {
				b.write(v)
			} else {
				b.command(v)
			}
		}
	}
	return nil
}

// args is the number of argument bytes following a command.
func args(cmd byte) int {
	switch cmd {
	case 0x20, 0x81, 0x8D, 0xA8, 0xD3, 0xD5, 0xD9, 0xDA, 0xDB:
		return 1
	case 0x21, 0x22, 0xA3:
		return 2
	case 0x29, 0x2A:
		return 5
	case 0x26, 0x27:
		return 6
	default:
		return 0
	}
}

func (b *Bus) command(v byte) {
	if b.need > 0 {
		b.cmd = append(b.cmd, v)
		if b.need--; b.need == 0 {
			b.exec(b.cmd)
		}
		return
	}
	b.commands++
	if n := args(v); n > 0 {
		b.cmd, b.need = append(b.cmd[:0], v), n
		return
	}
	b.exec([]byte{v})
}

func (b *Bus) exec(cmd []byte) {
	switch op := cmd[0]; {
	case op <= 0x0F:
		b.col = b.col&0xF0 | int(op&0x0F)
	case op <= 0x1F:
		b.col = b.col&0x0F | int(op&0x07)<<4
	case op == 0x20:
		b.mode = cmd[1] & 0x03
	case op == 0x21:
		b.colStart, b.colEnd = int(cmd[1]&0x7F), int(cmd[2]&0x7F)
		b.col = b.colStart
	case op == 0x22:
		b.pageStart, b.pageEnd = int(cmd[1]&0x07), int(cmd[2]&0x07)
		b.page = b.pageStart
	case op >= 0x40 && op <= 0x7F:
		b.startLine = op & 0x3F
	case op == 0x81:
		b.contrast = cmd[1]
	case op == 0x8D:
		b.chargePump = cmd[1]
	case op == 0xA4, op == 0xA5:
		b.allOn = op == 0xA5
	case op == 0xA6, op == 0xA7:
		b.inverted = op == 0xA7
	case op == 0xAE, op == 0xAF:
		b.on = op == 0xAF
	case op >= 0xB0 && op <= 0xB7:
		b.page = int(op & 0x07)
	}
}

// write stores one data byte and advances the address pointers per the addressing mode.
// Page and column commands are honoured in every mode.
func (b *Bus) write(v byte) {
	if b.col < width && b.page < pages {
		b.ram[b.page*width+b.col] = v
	}
	b.written++

	switch b.mode {
	case HorizontalMode:
		if b.col++; b.col > b.colEnd {
			b.col = b.colStart
			if b.page++; b.page > b.pageEnd {
				b.page = b.pageStart
			}
		}
	case VerticalMode:
		if b.page++; b.page > b.pageEnd {
			b.page = b.pageStart
			if b.col++; b.col > b.colEnd {
				b.col = b.colStart
			}
		}
	default:
		if b.col++; b.col >= width {
			b.col = 0
		}
	}
}

// Frame returns a copy of the display RAM.
func (b *Bus) Frame() *pixel.Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	f, _ := pixel.NewFrameFrom(b.ram[:])
	return f
}

// Pixel reports if the panel lights the pixel at (x, y), taking the display state
// (on, entire display on and inversion) into account.
func (b *Bus) Pixel(x, y int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case !b.on:
		return false
	case b.allOn:
		return true
	}
	lit := b.ram[x+(y>>3)*width]&(1<<uint(y&7)) != 0
	return lit != b.inverted
}

// State is a snapshot of the controller registers.
type State struct {
	On         bool
	Inverted   bool
	AllOn      bool
	Contrast   byte
	ChargePump byte
	StartLine  byte
	Mode       byte
	Column     int
	Page       int
	Speed      physic.Frequency
}

// State returns the controller registers.
func (b *Bus) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return State{
		On:         b.on,
		Inverted:   b.inverted,
		AllOn:      b.allOn,
		Contrast:   b.contrast,
		ChargePump: b.chargePump,
		StartLine:  b.startLine,
		Mode:       b.mode,
		Column:     b.col,
		Page:       b.page,
		Speed:      b.speed,
	}
}

// Stats returns the number of transactions, decoded commands and data bytes received.
func (b *Bus) Stats() (txs, commands, data int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.txs, b.commands, b.written
}

// Interface check.
var _ i2c.BusCloser = (*Bus)(nil)
