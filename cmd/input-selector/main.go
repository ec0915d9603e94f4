package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"input-selector/internal/config"
	"input-selector/internal/core"
	"input-selector/internal/hardware"
	"input-selector/internal/logger"
	"input-selector/internal/messaging"
	"input-selector/internal/ribbon"
	"input-selector/internal/shared"
	"input-selector/internal/storage"
)

func main() {
	var configPath, logLevel string
	flag.StringVar(&configPath, "config", "", "Path to the YAML config file (built-in defaults when empty)")
	flag.StringVar(&logLevel, "log", "", "Service log level (none, error, warn, info, debug or 0-4), overrides the config file")

	flag.Parse()

	// Create standard logger with appropriate format
	var stdLogger *log.Logger
	if os.Getenv("INVOCATION_ID") != "" {
		// Running under systemd, use minimal format
		stdLogger = log.New(os.Stdout, "", 0)
	} else {
		// Running interactively, use timestamps
		stdLogger = log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds|log.Lmsgprefix)
	}
	l := logger.NewLogger(stdLogger, logger.LogLevelInfo)

	cfg, err := config.Load(configPath)
	if err != nil {
		l.Fatalf("Failed to load config: %v", err)
	}
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		l.Fatalf("Invalid -log: %v", err)
	}
	l = logger.NewLogger(stdLogger, level)

	l.Infof("Starting input selector...")

	r, err := ribbon.Default()
	if err != nil {
		l.Fatalf("Failed to build ribbon: %v", err)
	}
	l.Infof("Ribbon is %d columns with %d inputs", r.Width(), len(r.Inputs))
	state := shared.New(r)

	vfd, err := hardware.OpenVFD(cfg.Display.Port, cfg.Display.Baud, l.WithTag("VFD"))
	if err != nil {
		l.Fatalf("Failed to open display: %v", err)
	}
	defer vfd.Close()
	if err := vfd.Init(); err != nil {
		l.Fatalf("Failed to initialize display: %v", err)
	}

	eeprom, err := hardware.OpenEEPROM(cfg.EEPROM.Path)
	if err != nil {
		l.Fatalf("Failed to open persistent memory: %v", err)
	}
	defer eeprom.Close()
	store, err := storage.New(eeprom, r.TableSize(), storage.WithGuard(state.Locker()))
	if err != nil {
		l.Fatalf("Failed to set up storage: %v", err)
	}

	bus, err := hardware.OpenSelectorBus(cfg.GPIO.Chip, cfg.GPIO.Bus, l.WithTag("Bus"))
	if err != nil {
		l.Fatalf("Failed to open selector bus: %v", err)
	}
	defer bus.Close()

	deps := core.Deps{
		Core:    state,
		Ribbon:  r,
		Display: vfd,
		Bus:     bus,
		Clock:   hardware.NewClock(),
		Store:   store,
		Logger:  l.WithTag("Selector"),
	}
	if cfg.Redis.Enabled {
		rc := messaging.NewRedisClient(cfg.Redis.Addr, l.WithTag("Redis"))
		if err := rc.Connect(); err != nil {
			l.Warnf("Status mirror disabled: %v", err)
			rc.Close()
		} else {
			rc.Start()
			defer rc.Close()
			deps.Status = rc
		}
	}

	selector := core.NewSelector(deps)
	if err := selector.Boot(); err != nil {
		l.Fatalf("Failed to boot: %v", err)
	}

	enc, err := hardware.OpenEncoder(cfg.GPIO.Chip, cfg.GPIO.EncoderA, cfg.GPIO.EncoderB, state, l.WithTag("Encoder"))
	if err != nil {
		l.Fatalf("Failed to open encoder: %v", err)
	}
	defer enc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go hardware.RunSecondTimer(ctx, state.Second)

	done := make(chan error, 1)
	go func() {
		done <- selector.Run(ctx, cfg.FramePeriod())
	}()

	l.Infof("System started successfully")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	l.Infof("Received signal %v, shutting down...", sig)
	cancel()
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		l.Errorf("Main loop stopped: %v", err)
	}
	l.Infof("Shutdown complete")
}
