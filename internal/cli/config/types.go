// Package config provides configuration management for the DreamQL CLI.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	DefaultSource string          `koanf:"default_source"`
	DefaultMode   string          `koanf:"default_mode"`
	Verbose       bool            `koanf:"verbose"`
	LogLevel      string          `koanf:"log_level"`
	LogFormat     string          `koanf:"log_format"`
	Compiler      *CompilerConfig `koanf:"compiler"`
	UI            *UIConfig       `koanf:"ui"`
	TUI           *TUIConfig      `koanf:"tui"`
}

// CompilerConfig holds compiler backend settings.
type CompilerConfig struct {
	Dialect   string        `koanf:"dialect"`
	InitDelay time.Duration `koanf:"init_delay"`
}

// UIConfig holds configuration for the web playground.
type UIConfig struct {
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	Watch         string `koanf:"watch"`
	SessionSecret string `koanf:"session_secret"`
}

// TUIConfig holds configuration for the terminal playground.
type TUIConfig struct {
	AltScreen bool `koanf:"alt_screen"`
}

// Default configuration values.
const (
	DefaultSource    = "table"
	DefaultMode      = "sql"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultDialect   = "bigquery"
	DefaultPort      = 8765
)

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Port:     DefaultPort,
		AutoOpen: true,
	}
}

// GetUIConfig returns the UI config with defaults applied for any unset values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := c.UI
	if ui.Port == 0 {
		ui.Port = DefaultPort
	}
	return ui
}

// GetCompilerConfig returns the compiler config, never nil.
func (c *Config) GetCompilerConfig() *CompilerConfig {
	if c.Compiler == nil {
		return &CompilerConfig{Dialect: DefaultDialect}
	}
	return c.Compiler
}

// GetTUIConfig returns the TUI config, never nil.
func (c *Config) GetTUIConfig() *TUIConfig {
	if c.TUI == nil {
		return &TUIConfig{AltScreen: true}
	}
	return c.TUI
}
