// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}

	if cfg.Redis.Host == "" {
		return fmt.Errorf("redis.host must not be empty")
	}
	if cfg.Redis.Port < 1 || cfg.Redis.Port > 65535 {
		return fmt.Errorf("redis.port %d out of range 1-65535", cfg.Redis.Port)
	}
	if cfg.Redis.DB < 0 {
		return fmt.Errorf("redis.db %d must not be negative", cfg.Redis.DB)
	}

	// Zero disables the probe deadline.
	if cfg.Probe.Timeout < 0 {
		return fmt.Errorf("probe.timeout %s must not be negative", cfg.Probe.Timeout)
	}

	return nil
}
