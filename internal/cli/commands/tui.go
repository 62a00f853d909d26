package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/dreamql/internal/tui"
	"github.com/spf13/cobra"
)

// TUIOptions holds options for the tui command.
type TUIOptions struct {
	AltScreen bool
}

// NewTUICommand creates the tui command.
func NewTUICommand() *cobra.Command {
	opts := &TUIOptions{}

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the DreamQL terminal playground",
		Long: `Start the playground in the terminal: the editor on the left and the
live output on the right, with the mode tabs above both.

Keys:
  tab / shift+tab   cycle output modes
  pgdown / pgup     scroll the output
  esc / ctrl+c      quit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.AltScreen, "alt-screen", true, "Use the terminal's alternate screen")

	return cmd
}

func runTUI(cmd *cobra.Command, opts *TUIOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	altScreen := cc.Cfg.GetTUIConfig().AltScreen
	if cmd.Flags().Changed("alt-screen") {
		altScreen = opts.AltScreen
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return tui.Run(ctx, tui.Options{
		Session:   cc.SessionOpts,
		Backend:   cc.Backend,
		AltScreen: altScreen,
		Input:     cmd.InOrStdin(),
		Output:    cmd.OutOrStdout(),
	})
}
