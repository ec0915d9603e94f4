package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultsAreValid(t *testing.T) {
	if err := Validate(Defaults()); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	doc := `
log_level: DEBUG
frame_period_ms: 0
display:
  port: /dev/ttyUSB0
gpio:
  bus: [1, 2, 3, 4, 5]
redis:
  addr: localhost
`
	cfg, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q, want normalized debug", cfg.LogLevel)
	}
	if cfg.FramePeriod() != 0 {
		t.Errorf("frame period = %v, want free running", cfg.FramePeriod())
	}
	if cfg.Display.Port != "/dev/ttyUSB0" || cfg.Display.Baud != 38400 {
		t.Errorf("display = %+v", cfg.Display)
	}
	if cfg.GPIO.Chip != "gpiochip0" || cfg.GPIO.Bus[4] != 5 {
		t.Errorf("gpio = %+v", cfg.GPIO)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("redis addr = %q", cfg.Redis.Addr)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.FramePeriod() != 20*time.Millisecond {
		t.Errorf("frame period = %v", cfg.FramePeriod())
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse(strings.NewReader("brightness: 3\n")); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }},
		{"negative frame period", func(c *Config) { c.FramePeriodMs = -1 }},
		{"no port", func(c *Config) { c.Display.Port = "" }},
		{"zero baud", func(c *Config) { c.Display.Baud = 0 }},
		{"no eeprom", func(c *Config) { c.EEPROM.Path = "" }},
		{"no chip", func(c *Config) { c.GPIO.Chip = "" }},
		{"short bus", func(c *Config) { c.GPIO.Bus = []int{1, 2, 3} }},
		{"shared line", func(c *Config) { c.GPIO.EncoderB = c.GPIO.Bus[2] }},
		{"negative line", func(c *Config) { c.GPIO.EncoderA = -4 }},
		{"redis without addr", func(c *Config) { c.Redis.Addr = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateDoesNotMutate(t *testing.T) {
	cfg := Defaults()
	cfg.LogLevel = " Info "
	cfg.Redis.Addr = "redis"
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != " Info " || cfg.Redis.Addr != "redis" {
		t.Error("Validate changed the config")
	}
}

func TestRedisDisabledNeedsNoAddr(t *testing.T) {
	cfg := Defaults()
	cfg.Redis = RedisConfig{}
	if err := Validate(cfg); err != nil {
		t.Errorf("disabled redis rejected: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selector.yaml")
	if err := os.WriteFile(path, []byte("eeprom:\n  path: /tmp//eeprom/\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.EEPROM.Path != "/tmp/eeprom" {
		t.Errorf("eeprom path = %q, want cleaned", cfg.EEPROM.Path)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
	if cfg, err := Load(""); err != nil || cfg.GPIO.Chip == "" {
		t.Errorf("Load(\"\") = %+v, %v", cfg, err)
	}
}
