// Package conn opens the hardware buses displays are connected to.
package conn

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
)

// I2C is an I²C bus that counts the transactions and bytes passing through it.
type I2C struct {
	bus   i2c.Bus
	txs   uint64
	bytes uint64
}

// OpenI2C opens an I²C bus by name or number through the periph registry. An empty name
// opens the first available bus. The host drivers must be initialised first.
func OpenI2C(name string) (*I2C, error) {
	bus, err := i2creg.Open(name)
	if err != nil {
		if name == "" {
			name = "<default>"
		}
		return nil, fmt.Errorf("conn: open I²C bus %s: %w", name, err)
	}
	return Wrap(bus), nil
}

// Wrap returns an I2C over an already opened bus.
func Wrap(bus i2c.Bus) *I2C {
	return &I2C{bus: bus}
}

func (c *I2C) String() string {
	return fmt.Sprintf("I²C bus %s", c.bus)
}

// Close the bus, if it can be closed.
func (c *I2C) Close() error {
	if closer, ok := c.bus.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *I2C) Tx(addr uint16, w, r []byte) error {
	c.txs++
	c.bytes += uint64(len(w) + len(r))
	return c.bus.Tx(addr, w, r)
}

func (c *I2C) SetSpeed(f physic.Frequency) error {
	return c.bus.SetSpeed(f)
}

// Stats returns the number of transactions and bytes transferred.
func (c *I2C) Stats() (txs, bytes uint64) {
	return c.txs, c.bytes
}

// Interface check.
var _ i2c.BusCloser = (*I2C)(nil)
