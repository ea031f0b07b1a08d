// Package config loads and saves the YAML configuration of the display programs.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/ssd1306"
)

// Config is the program configuration.
type Config struct {
	// Bus is the I²C bus name or number, empty for the first available bus.
	Bus string `yaml:"bus"`

	// Addr is the 7-bit I²C device address.
	Addr uint16 `yaml:"addr"`

	// ExternalVCC is set for panels with an external supply.
	ExternalVCC bool `yaml:"external_vcc"`

	// SpeedKHz is the I²C clock rate in kHz.
	SpeedKHz int `yaml:"speed_khz"`

	// FontSize is the initial font size: small, medium or large.
	FontSize string `yaml:"font_size"`

	// Inverted starts the display inverted.
	Inverted bool `yaml:"inverted"`

	// Contrast overrides the full contrast level, zero keeps the panel default.
	Contrast uint8 `yaml:"contrast"`

	// Interval between rendered frames.
	Interval time.Duration `yaml:"interval"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// Defaults.
const (
	DefaultAddr     = 0x3c
	DefaultSpeedKHz = 400
	DefaultFontSize = "medium"
	DefaultInterval = 50 * time.Millisecond
	DefaultLogLevel = "info"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:     DefaultAddr,
		SpeedKHz: DefaultSpeedKHz,
		FontSize: DefaultFontSize,
		Interval: DefaultInterval,
		LogLevel: DefaultLogLevel,
	}
}

// Normalize fills in zero values and replaces invalid values with their defaults.
func (c *Config) Normalize() {
	if c.Addr == 0 || c.Addr > 0x7f {
		c.Addr = DefaultAddr
	}
	if c.SpeedKHz <= 0 {
		c.SpeedKHz = DefaultSpeedKHz
	}
	c.FontSize = strings.ToLower(c.FontSize)
	if _, ok := fontSizes[c.FontSize]; !ok {
		c.FontSize = DefaultFontSize
	}
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if _, ok := logLevels[c.LogLevel]; !ok {
		c.LogLevel = DefaultLogLevel
	}
}

var fontSizes = map[string]ssd1306.FontSize{
	"small":  ssd1306.Small,
	"medium": ssd1306.Medium,
	"large":  ssd1306.Large,
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Level is the configured log level.
func (c *Config) Level() slog.Level {
	return logLevels[c.LogLevel]
}

// Logger returns a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}

// I2C returns the display configuration.
func (c *Config) I2C(logger *slog.Logger) *ssd1306.I2CConfig {
	return &ssd1306.I2CConfig{
		Config: ssd1306.Config{
			Opts: ssd1306.Opts{
				Addr:        c.Addr,
				ExternalVCC: c.ExternalVCC,
				Speed:       physic.Frequency(c.SpeedKHz) * physic.KiloHertz,
				Logger:      logger,
			},
			FontSize: fontSizes[c.FontSize],
		},
		Bus: c.Bus,
	}
}

// Load reads the configuration from a YAML file. A missing file is created with the
// default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			return cfg, Save(path, cfg)
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes the configuration atomically, through a temporary file in the same directory.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config: path is empty")
	}
	if cfg == nil {
		return errors.New("config: config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".ssd1306-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Apply sets the panel options that are not part of the display configuration.
func (c *Config) Apply(d *ssd1306.Display) error {
	ctrl := d.Controller()
	if c.Contrast > 0 {
		if err := ctrl.SetContrast(c.Contrast); err != nil {
			return err
		}
	}
	if c.Inverted {
		return ctrl.SetInverted(true)
	}
	return nil
}
