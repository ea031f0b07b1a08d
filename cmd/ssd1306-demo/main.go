// Command ssd1306-demo draws the demo scene on an SSD1306 panel attached to a host I²C bus.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/host/v3"

	"github.com/BeatGlow/ssd1306"
	"github.com/BeatGlow/ssd1306/internal/config"
	"github.com/BeatGlow/ssd1306/internal/demo"
)

func main() {
	configFlag := flag.String("config", "/etc/ssd1306/config.yaml", "Path to config file")
	busFlag := flag.String("bus", "", "I²C bus name or number (overrides config if set)")
	addrFlag := flag.Uint("addr", 0, "I²C device address (overrides config if set)")
	intervalFlag := flag.Duration("interval", 0, "Frame interval (overrides config if set)")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fatal(err)
	}
	if *busFlag != "" {
		cfg.Bus = *busFlag
	}
	if *addrFlag != 0 {
		cfg.Addr = uint16(*addrFlag)
	}
	if *intervalFlag > 0 {
		cfg.Interval = *intervalFlag
	}
	if os.Getenv("DISPLAY_DEBUG") != "" {
		cfg.LogLevel = "debug"
	}
	cfg.Normalize()

	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	if _, err = host.Init(); err != nil {
		fatal(err)
	}

	d, err := ssd1306.OpenI2C(cfg.I2C(logger))
	if err != nil {
		fatal(err)
	}
	defer d.Close()
	if err = cfg.Apply(d); err != nil {
		fatal(err)
	}
	logger.Info("using display", "display", d.String(), "font", d.FontSize().String(), "interval", cfg.Interval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	q := ssd1306.NewQueue(d, 4)
	go produce(ctx, q, cfg.Interval, logger)

	logger.Info("hit control-c to stop")
	if err = q.Run(ctx, cfg.Interval); err != nil && !errors.Is(err, context.Canceled) {
		fatal(err)
	}
	logger.Info("stopped", "frames", d.Frames())
}

// produce redraws the scene every interval until ctx is done.
func produce(ctx context.Context, q *ssd1306.Queue, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		err := q.Do(ctx, func(d *ssd1306.Display) {
			if err := demo.Draw(d); err != nil {
				logger.Error("draw failed", "error", err)
			}
		})
		if err != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
