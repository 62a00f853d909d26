package tui

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leapstack-labs/dreamql/internal/backend"
	"github.com/leapstack-labs/dreamql/internal/session"
)

// Options configures Run.
type Options struct {
	Session   session.Options
	Backend   *backend.Manager
	AltScreen bool
	Input     io.Reader
	Output    io.Writer
}

// Run starts the backend and the terminal playground, and blocks until
// the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	sess := session.New(opts.Session, nil)
	opts.Backend.Start(ctx)

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(out),
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(New(sess, opts.Backend, NewStyles(out)), programOpts...)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
