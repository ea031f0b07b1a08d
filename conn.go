package ssd1306

import (
	"github.com/BeatGlow/ssd1306/conn"
)

// I2CConfig describes a display on a host I²C bus.
type I2CConfig struct {
	Config

	// Bus is the I²C bus name or number, empty to use the first available bus.
	Bus string
}

// DefaultI2CConfig uses the first available bus.
var DefaultI2CConfig = I2CConfig{
	Config: DefaultConfig,
}

// OpenI2C opens the bus and initialises the display on it. Closing the display also closes
// the bus. The periph host drivers must be initialised first.
func OpenI2C(config *I2CConfig) (*Display, error) {
	if config == nil {
		config = new(I2CConfig)
		*config = DefaultI2CConfig
	}

	bus, err := conn.OpenI2C(config.Bus)
	if err != nil {
		return nil, err
	}

	d, err := New(bus, &config.Config)
	if err != nil {
		_ = bus.Close()
		return nil, err
	}
	d.bus = bus
	return d, nil
}
