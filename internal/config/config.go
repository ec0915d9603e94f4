package config

import "time"

type Config struct {
	LogLevel      string        `yaml:"log_level"`
	FramePeriodMs int           `yaml:"frame_period_ms"`
	Display       DisplayConfig `yaml:"display"`
	EEPROM        EEPROMConfig  `yaml:"eeprom"`
	GPIO          GPIOConfig    `yaml:"gpio"`
	Redis         RedisConfig   `yaml:"redis"`
}

// ---- DISPLAY ----

type DisplayConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// ---- PERSISTENT MEMORY ----

type EEPROMConfig struct {
	Path string `yaml:"path"`
}

// ---- GPIO ----

type GPIOConfig struct {
	Chip     string `yaml:"chip"`
	EncoderA int    `yaml:"encoder_a"`
	EncoderB int    `yaml:"encoder_b"`
	// Bus lists the selector address lines, least significant bit first.
	Bus []int `yaml:"bus"`
}

// ---- STATUS MIRROR ----

type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// BusWidth is the number of selector address lines.
const BusWidth = 5

// Defaults returns the configuration of the reference board.
func Defaults() *Config {
	return &Config{
		LogLevel:      "info",
		FramePeriodMs: 20,
		Display: DisplayConfig{
			Port: "/dev/ttyS1",
			Baud: 38400,
		},
		EEPROM: EEPROMConfig{
			Path: "/sys/bus/nvmem/devices/0-00500/nvmem",
		},
		GPIO: GPIOConfig{
			Chip:     "gpiochip0",
			EncoderA: 17,
			EncoderB: 27,
			Bus:      []int{5, 6, 13, 19, 26},
		},
		Redis: RedisConfig{
			Enabled: true,
			Addr:    "127.0.0.1:6379",
		},
	}
}

// FramePeriod is the minimum time between two main loop iterations.
func (c *Config) FramePeriod() time.Duration {
	return time.Duration(c.FramePeriodMs) * time.Millisecond
}
