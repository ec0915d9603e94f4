package config

import (
	"fmt"

	"input-selector/internal/logger"
)

// Validate checks configuration correctness.
// It does not mutate the configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.FramePeriodMs < 0 {
		return fmt.Errorf("frame_period_ms must not be negative, got %d", cfg.FramePeriodMs)
	}

	if cfg.Display.Port == "" {
		return fmt.Errorf("display: port is required")
	}
	if cfg.Display.Baud <= 0 {
		return fmt.Errorf("display: baud must be positive, got %d", cfg.Display.Baud)
	}

	if cfg.EEPROM.Path == "" {
		return fmt.Errorf("eeprom: path is required")
	}

	g := cfg.GPIO
	if g.Chip == "" {
		return fmt.Errorf("gpio: chip is required")
	}
	if len(g.Bus) != BusWidth {
		return fmt.Errorf("gpio: bus needs %d lines, got %d", BusWidth, len(g.Bus))
	}
	used := make(map[int]string)
	claim := func(offset int, name string) error {
		if offset < 0 {
			return fmt.Errorf("gpio: %s has negative offset %d", name, offset)
		}
		if prev, ok := used[offset]; ok {
			return fmt.Errorf("gpio: line %d used by both %s and %s", offset, prev, name)
		}
		used[offset] = name
		return nil
	}
	if err := claim(g.EncoderA, "encoder_a"); err != nil {
		return err
	}
	if err := claim(g.EncoderB, "encoder_b"); err != nil {
		return err
	}
	for i, o := range g.Bus {
		if err := claim(o, fmt.Sprintf("bus[%d]", i)); err != nil {
			return err
		}
	}

	if cfg.Redis.Enabled && cfg.Redis.Addr == "" {
		return fmt.Errorf("redis: addr is required when enabled")
	}
	return nil
}
