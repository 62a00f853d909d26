package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/leapstack-labs/dreamql/internal/backend"
	"github.com/leapstack-labs/dreamql/internal/session"
	"github.com/leapstack-labs/dreamql/internal/view"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// TranslateOptions holds options for the translate command.
type TranslateOptions struct {
	Mode   string
	Format string
}

// errNoInput is returned when translate would block on an interactive stdin.
var errNoInput = errors.New("no input: pass a FILE or pipe DreamQL source on stdin")

// NewTranslateCommand creates the translate command.
func NewTranslateCommand() *cobra.Command {
	opts := &TranslateOptions{}

	cmd := &cobra.Command{
		Use:   "translate [FILE]",
		Short: "Translate DreamQL source once and print the result",
		Long: `Translate DreamQL source read from FILE, or from stdin when no FILE is
given, and print the output for the selected mode.

The command exits non-zero when the source does not translate.`,
		Example: `  # Translate a file to SQL
  dreamql translate query.dql

  # Show the token table for piped input
  echo "orders | limit 5" | dreamql translate --mode tokens

  # Emit the output as JSON
  dreamql translate query.dql --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "Output mode (sql|tokens|ast|grammar)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Output format (text|json|markdown)")
	_ = cmd.RegisterFlagCompletionFunc("mode", completeModes)
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return translateFormats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runTranslate(cmd *cobra.Command, args []string, opts *TranslateOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if !slices.Contains(translateFormats, strings.ToLower(opts.Format)) && opts.Format != "md" {
		return fmt.Errorf("unknown format %q (valid: %s)", opts.Format, strings.Join(translateFormats, ", "))
	}

	mode := cc.SessionOpts.DefaultMode
	if cmd.Flags().Changed("mode") {
		if mode, err = session.ParseOutputMode(opts.Mode); err != nil {
			return err
		}
	}

	source, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	cc.Backend.Start(ctx)
	compiler, err := cc.Backend.Wait(ctx)
	if err != nil {
		return fmt.Errorf("compiler failed to initialize: %w", err)
	}

	out := view.Render(session.Snapshot{
		Source:    source,
		Mode:      mode,
		Readiness: backend.Ready,
	}, compiler)
	if out.Kind == view.KindFailure {
		return errors.New(out.Text)
	}

	return renderTranslation(cmd.OutOrStdout(), out, opts.Format)
}

// readSource reads the document from the FILE argument or from stdin.
func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read source: %w", err)
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errNoInput
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func completeModes(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, m := range session.AllModes() {
		names = append(names, m.String())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
