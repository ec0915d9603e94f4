package config

import (
	"net"
	"path/filepath"
	"strings"
)

const defaultRedisPort = "6379"

// Normalize applies post-validation cleanup.
// It must be called only after Validate.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.EEPROM.Path = filepath.Clean(cfg.EEPROM.Path)

	// A bare host means the default port.
	if cfg.Redis.Addr != "" {
		if _, _, err := net.SplitHostPort(cfg.Redis.Addr); err != nil {
			cfg.Redis.Addr = net.JoinHostPort(cfg.Redis.Addr, defaultRedisPort)
		}
	}
}
