package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/dreamql/internal/backend"
	"github.com/leapstack-labs/dreamql/internal/cli/config"
	"github.com/leapstack-labs/dreamql/internal/session"
	"github.com/leapstack-labs/dreamql/pkg/dreamql"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg         *config.Config
	Logger      *slog.Logger
	Backend     *backend.Manager
	SessionOpts session.Options
}

// NewCommandContext creates a CommandContext with an unstarted backend.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	opts, err := cfg.SessionOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid default_mode: %w", err)
	}

	return &CommandContext{
		Cfg:         cfg,
		Logger:      logger,
		Backend:     newManager(cfg, logger),
		SessionOpts: opts,
	}, nil
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to defaults.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		DefaultSource: config.DefaultSource,
		DefaultMode:   config.DefaultMode,
		LogLevel:      config.DefaultLogLevel,
		LogFormat:     config.DefaultLogFormat,
	}
}

// newManager creates a backend manager for the configured compiler.
func newManager(cfg *config.Config, logger *slog.Logger) *backend.Manager {
	cc := cfg.GetCompilerConfig()
	loader := backend.DreamQLLoader(dreamql.Options{
		Dialect:   cc.Dialect,
		InitDelay: cc.InitDelay,
	})
	return backend.NewManager(loader, logger.With("component", "backend"))
}
