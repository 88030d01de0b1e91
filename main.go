package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"launchkey-rain/config"
	"launchkey-rain/midi"
	"launchkey-rain/rain"
)

// -------------------- Logger --------------------

// logger is the package-wide structured logger. Safe to use before initLogger
// is called; defaults to slog.Default().
var logger = slog.Default()

// initLogger configures the shared slog logger and calls slog.SetDefault so
// the stdlib log package also routes through the same handler.
func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug, // include file:line in debug mode
	})
	logger = slog.New(h)
	slog.SetDefault(logger) // stdlib log.* now routes through slog
}

// -------------------- Console output --------------------

// consoleOutput logs pad events instead of driving hardware.
type consoleOutput struct{}

func (consoleOutput) Send(note, velocity uint8) error {
	if velocity == rain.ColorOff {
		logger.Info("pad off", "pad", note)
	} else {
		logger.Info("pad on", "pad", note, "color", velocity)
	}
	return nil
}

// -------------------- Port resolution --------------------

// resolvePortName picks the output to open: the explicit flag, then the
// config file, then detection over the enumerated ports, then the built-in
// default. It always yields a name. outputs lists the connected port names
// and is only called when flag and config are silent.
func resolvePortName(flagName string, cfg *config.Config, outputs func() ([]string, error)) string {
	if flagName != "" {
		return flagName
	}
	if cfg.PortName != "" {
		return cfg.PortName
	}
	names, err := outputs()
	if err != nil {
		logger.Warn("midi: cannot enumerate outputs", "err", err)
	} else if name, ok := midi.Detect(names); ok {
		logger.Info("midi: port auto-detected", "device", name)
		return name
	}
	logger.Info("midi: no port configured or detected, using default", "device", config.DefaultPort)
	return config.DefaultPort
}

// -------------------- Main --------------------

func main() {
	debug := flag.Bool("debug", false, "enable debug logging (adds source location)")
	configPath := flag.String("config", config.DefaultFile, "path to the config file")
	portFlag := flag.String("port", "", "MIDI output port name (overrides config and detection)")
	list := flag.Bool("list", false, "list MIDI output ports and exit")
	dryRun := flag.Bool("dry-run", false, "log pad events instead of opening a MIDI port")
	interval := flag.Duration("interval", 0, "time between drops (0 = config or built-in default)")
	duration := flag.Duration("duration", 0, "how long a pad stays lit (0 = config or built-in default)")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	flag.Parse()

	initLogger(*debug)

	if *list {
		drv, err := midi.NewDriver(logger)
		if err != nil {
			logger.Error("midi: driver init failed", "err", err)
			os.Exit(1)
		}
		names, err := drv.OutputNames()
		if err != nil {
			logger.Error("midi: listing outputs failed", "err", err)
			drv.Close()
			os.Exit(1)
		}
		fmt.Println("MIDI output ports:")
		for i, name := range names {
			fmt.Printf("  %d: %s\n", i, name)
		}
		drv.Close()
		return
	}

	cfg := config.Load(*configPath, logger)

	tick := *interval
	if tick == 0 {
		tick = cfg.TickInterval()
	}
	if tick == 0 {
		tick = rain.DefaultTickInterval
	}
	lit := *duration
	if lit == 0 {
		lit = cfg.LightDuration()
	}
	if lit == 0 {
		lit = rain.DefaultLightDuration
	}
	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}

	var (
		out  rain.Output
		drv  *midi.Driver
		port *midi.Port
	)
	device := "console"
	if *dryRun {
		out = consoleOutput{}
	} else {
		var err error
		drv, err = midi.NewDriver(logger)
		if err != nil {
			logger.Error("midi: driver init failed", "err", err)
			os.Exit(1)
		}
		name := resolvePortName(*portFlag, cfg, drv.OutputNames)
		port, err = drv.OpenOutput(name)
		if err != nil {
			logger.Error("midi: cannot open output", "device", name, "err", err,
				"hint", "run with -list to see ports, or set MIDI_PORT_NAME in "+*configPath)
			drv.Close()
			os.Exit(1)
		}
		out = port
		device = port.Name()
	}

	logger.Info("launchkey-rain starting",
		"device", device,
		"tick_ms", tick.Milliseconds(),
		"light_ms", lit.Milliseconds(),
		"seed", *seed,
		"debug", *debug,
	)

	ctx, cancel := context.WithCancel(context.Background())
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigc
		logger.Info("signal received, stopping", "signal", sig.String())
		cancel()
		signal.Stop(sigc) // a second signal kills the process
	}()

	logger.Info("running, press Ctrl+C to stop")

	runErr := rain.New(out, rain.Config{
		TickInterval:  tick,
		LightDuration: lit,
		Rand:          rng,
		Logger:        logger,
	}).Run(ctx)

	if port != nil {
		port.Close()
	}
	if drv != nil {
		drv.Close()
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Error("rain: aborted", "err", runErr)
		os.Exit(1)
	}
	logger.Info("stopped")
}
