package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/dreamql/internal/session"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level %q (valid: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if !contains(validLogFormats, c.LogFormat) {
		return fmt.Errorf("invalid log_format %q (valid: %s)", c.LogFormat, strings.Join(validLogFormats, ", "))
	}
	if _, err := session.ParseOutputMode(c.DefaultMode); err != nil {
		return fmt.Errorf("invalid default_mode: %w", err)
	}
	if cc := c.GetCompilerConfig(); cc.InitDelay < 0 {
		return fmt.Errorf("compiler.init_delay must not be negative, got %s", cc.InitDelay)
	}
	if ui := c.GetUIConfig(); ui.Port < 0 || ui.Port > 65535 {
		return fmt.Errorf("ui.port %d out of range", ui.Port)
	}
	return nil
}

// SessionOptions converts the config into session defaults.
func (c *Config) SessionOptions() (session.Options, error) {
	mode, err := session.ParseOutputMode(c.DefaultMode)
	if err != nil {
		return session.Options{}, err
	}
	return session.Options{
		DefaultSource: c.DefaultSource,
		DefaultMode:   mode,
	}, nil
}

func contains(values []string, v string) bool {
	v = strings.ToLower(v)
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
