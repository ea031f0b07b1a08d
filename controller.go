package ssd1306

import (
	"errors"
	"fmt"
	"log/slog"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/ssd1306/pixel"
)

// Errors
var (
	ErrTransport = errors.New("ssd1306: transport failure")
	ErrHalted    = errors.New("ssd1306: controller is halted")
)

// Opts are the controller options.
type Opts struct {
	// Addr is the 7-bit I²C device address.
	Addr uint16

	// ExternalVCC disables the internal charge pump, for panels with an external supply.
	ExternalVCC bool

	// Speed is the bus clock rate set by Init, zero leaves the bus speed alone.
	Speed physic.Frequency

	// Logger receives transfer diagnostics, nil uses [slog.Default].
	Logger *slog.Logger
}

// DefaultOpts are the default controller options.
var DefaultOpts = Opts{
	Addr:  0x3c,
	Speed: 400 * physic.KiloHertz,
}

// Controller speaks the SSD1306 command and data protocol over an I²C bus. It only ever
// writes to the device.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	bus      i2c.Bus
	opts     Opts
	log      *slog.Logger
	cmd      [2]byte
	buf      [1 + chunkSize]byte
	contrast byte
	ready    bool
	halted   bool
	inverted bool
	dimmed   bool
}

// NewController binds a controller to a bus. The device is not touched until [Controller.Init].
func NewController(bus i2c.Bus, opts *Opts) *Controller {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.Addr == 0 {
		o.Addr = DefaultOpts.Addr
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	c := &Controller{
		bus:  bus,
		opts: o,
		log:  o.Logger.With("device", "ssd1306", "addr", fmt.Sprintf("%#02x", o.Addr)),
	}
	c.cmd[0] = controlCommand
	c.buf[0] = controlData
	c.contrast = c.fullContrast()
	return c
}

func (c *Controller) String() string {
	return fmt.Sprintf("SSD1306 OLED %dx%d at %#02x on %s", pixel.FrameWidth, pixel.FrameHeight, c.opts.Addr, c.bus)
}

func (c *Controller) vcc() int {
	if c.opts.ExternalVCC {
		return 1
	}
	return 0
}

func (c *Controller) fullContrast() byte {
	return contrast[c.vcc()]
}

// Ready reports if Init completed.
func (c *Controller) Ready() bool { return c.ready }

// Inverted reports if the display is inverted.
func (c *Controller) Inverted() bool { return c.inverted }

// Dimmed reports if the display is dimmed.
func (c *Controller) Dimmed() bool { return c.dimmed }

// Opts returns the effective controller options.
func (c *Controller) Opts() Opts { return c.opts }

// command sends every byte as its own command transaction.
func (c *Controller) command(cmds ...byte) error {
	if c.halted {
		return ErrHalted
	}
	for _, cmd := range cmds {
		c.cmd[1] = cmd
		if err := c.bus.Tx(c.opts.Addr, c.cmd[:], nil); err != nil {
			return fmt.Errorf("%w: command %#02x: %w", ErrTransport, cmd, err)
		}
	}
	return nil
}

// Init sets the bus speed and configures the panel, ending with the display switched on.
// A bus that does not support the speed change is used at its current speed.
func (c *Controller) Init() error {
	if c.halted {
		return ErrHalted
	}
	if c.opts.Speed > 0 {
		if err := c.bus.SetSpeed(c.opts.Speed); err != nil {
			c.log.Warn("bus speed not changed", "speed", c.opts.Speed, "error", err)
		}
	}

	vcc := c.vcc()
	if err := c.command(
		setDisplayOff,
		setDisplayClockDiv, 0x80,
		setMultiplexRatio, pixel.FrameHeight-1,
		setDisplayOffset, 0x00,
		setStartLine,
		setChargePump, chargePump[vcc],
		setMemoryMode, 0x00,
		setSegmentRemap,
		setComScanDec,
		setComPins, 0x12,
		setContrast, contrast[vcc],
		setPrecharge, precharge[vcc],
		setVComDetect, 0x40,
		deactivateScroll,
		setDisplayAllOnResume,
		setNormalDisplay,
		setDisplayOn,
	); err != nil {
		return err
	}

	c.ready = true
	c.inverted = false
	c.dimmed = false
	c.contrast = contrast[vcc]
	c.log.Debug("initialized", "external_vcc", c.opts.ExternalVCC, "bus", c.bus.String())
	return nil
}

// SendFrame transfers a whole frame. Every page is addressed with three commands and then
// written in two chunks of 64 bytes.
func (c *Controller) SendFrame(f *pixel.Frame) error {
	if c.halted {
		return ErrHalted
	}
	for page := 0; page < pixel.FramePages; page++ {
		if err := c.command(setHighColumn, setLowColumn, setPageStart+byte(page)); err != nil {
			return fmt.Errorf("page %d: %w", page, err)
		}
		row := f.Page(page)
		for off := 0; off < len(row); off += chunkSize {
			n := copy(c.buf[1:], row[off:])
			if err := c.bus.Tx(c.opts.Addr, c.buf[:1+n], nil); err != nil {
				return fmt.Errorf("%w: page %d column %d: %w", ErrTransport, page, off, err)
			}
		}
	}
	return nil
}

// SetInverted switches between inverted and normal display.
func (c *Controller) SetInverted(inverted bool) error {
	cmd := byte(setNormalDisplay)
	if inverted {
		cmd = setInvertDisplay
	}
	if err := c.command(cmd); err != nil {
		return err
	}
	c.inverted = inverted
	return nil
}

// SetDimmed sets the contrast to zero, or restores the full contrast level.
func (c *Controller) SetDimmed(dimmed bool) error {
	level := c.contrast
	if dimmed {
		level = 0
	}
	if err := c.command(setContrast, level); err != nil {
		return err
	}
	c.dimmed = dimmed
	return nil
}

// SetContrast adjusts the contrast level. The level becomes the full contrast level that
// SetDimmed restores.
func (c *Controller) SetContrast(level uint8) error {
	if err := c.command(setContrast, level); err != nil {
		return err
	}
	c.contrast = level
	c.dimmed = false
	return nil
}

// Show toggles the display on or off.
func (c *Controller) Show(show bool) error {
	if show {
		return c.command(setDisplayOn)
	}
	return c.command(setDisplayOff)
}

// Close switches the display off and halts the controller. The bus is not closed.
func (c *Controller) Close() error {
	if c.halted {
		return nil
	}
	err := c.Show(false)
	c.halted = true
	return err
}
