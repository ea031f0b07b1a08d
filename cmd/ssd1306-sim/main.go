// Command ssd1306-sim runs the demo scene on an emulated SSD1306, drawn in the terminal.
//
// Keys: i toggles inversion, d toggles dimming, q or escape quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/BeatGlow/ssd1306"
	"github.com/BeatGlow/ssd1306/internal/config"
	"github.com/BeatGlow/ssd1306/internal/demo"
	"github.com/BeatGlow/ssd1306/internal/emulator"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file (default: built-in defaults)")
	intervalFlag := flag.Duration("interval", 0, "Frame interval (overrides config if set)")
	logFlag := flag.String("log", "", "Log file, the terminal is used by the simulator")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			fatal(err)
		}
	}
	if *intervalFlag > 0 {
		cfg.Interval = *intervalFlag
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		logger = cfg.Logger(f)
	}

	if err := run(cfg, logger); err != nil {
		fatal(err)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	bus := emulator.New(cfg.Addr)
	d, err := ssd1306.New(bus, &cfg.I2C(logger).Config)
	if err != nil {
		return err
	}
	defer d.Close()
	if err = cfg.Apply(d); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err = screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(context.Background())

	var (
		q      = ssd1306.NewQueue(d, 16)
		done   = make(chan error, 1)
		events = make(chan tcell.Event, 16)
		v      = &view{screen: screen, bus: bus}
		frames = make(chan uint32, 1)
	)
	go func() { done <- q.Run(ctx, cfg.Interval) }()
	defer func() {
		// The render loop owns the display until it returns.
		cancel()
		<-done
	}()
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	// Redraw the scene once per frame and report the frame number to the view.
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			err := q.Do(ctx, func(d *ssd1306.Display) {
				if err := demo.Draw(d); err != nil {
					logger.Error("draw failed", "error", err)
				}
				select {
				case frames <- d.Frames():
				default:
				}
			})
			if err != nil {
				return
			}
		}
	}()

	status := "starting"
	for {
		select {
		case err = <-done:
			done <- err
			return err
		case n := <-frames:
			status = "frame " + strconv.FormatUint(uint64(n), 10)
			v.draw(status)
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				v.draw(status)
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
					return nil
				case ev.Rune() == 'i':
					q.TryDo(func(d *ssd1306.Display) {
						c := d.Controller()
						if err := c.SetInverted(!c.Inverted()); err != nil {
							logger.Error("invert failed", "error", err)
						}
					})
				case ev.Rune() == 'd':
					q.TryDo(func(d *ssd1306.Display) {
						c := d.Controller()
						if err := c.SetDimmed(!c.Dimmed()); err != nil {
							logger.Error("dim failed", "error", err)
						}
					})
				}
			}
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
