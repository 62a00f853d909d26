package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/dreamql/internal/backend"
	"github.com/leapstack-labs/dreamql/internal/session"
	"github.com/leapstack-labs/dreamql/internal/view"
	"github.com/spf13/cobra"
)

const replPrompt = "dreamql> "

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Translate DreamQL interactively",
		Long: `Start an interactive prompt. Each line replaces the document and the
output for the current mode is printed.

Type .help for commands, .quit to exit.`,
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	sess := session.New(cc.SessionOpts, nil)
	cc.Backend.OnComplete(func(ev backend.Event) {
		sess.ApplyBackendEvent(ev)
	})
	cc.Backend.Start(cmd.Context())

	r := &repl{
		session: sess,
		backend: cc.Backend,
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     replHistoryFile(),
		AutoComplete:    newREPLCompleter(r.keywords),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(r.out, "DreamQL REPL (mode: %s)\n", sess.Mode())
	_, _ = fmt.Fprintln(r.out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(r.out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if quit := r.handleLine(line); quit {
			return nil
		}
	}
}

// repl evaluates input lines against a session.
type repl struct {
	session *session.Session
	backend interface {
		Compiler() (backend.Compiler, bool)
	}
	out    io.Writer
	errOut io.Writer
}

// handleLine processes one line and reports whether the REPL should exit.
// A blank line sets the empty document.
func (r *repl) handleLine(line string) bool {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, ".") {
		return r.handleDotCommand(line)
	}

	r.session.SetSource(line)
	r.printOutput()
	return false
}

func (r *repl) handleDotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.out)

	case ".mode":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(r.out, "mode: %s\n", r.session.Mode())
			return false
		}
		mode, err := session.ParseOutputMode(parts[1])
		if err != nil {
			_, _ = fmt.Fprintf(r.errOut, "Error: %v\n", err)
			return false
		}
		r.session.SetMode(mode)
		r.printOutput()

	case ".source":
		_, _ = fmt.Fprintln(r.out, r.session.Source())

	case ".show":
		r.printOutput()

	default:
		_, _ = fmt.Fprintf(r.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func (r *repl) printOutput() {
	c, _ := r.backend.Compiler()
	out := view.Render(r.session.Snapshot(), c)

	w := r.out
	if out.Kind == view.KindFailure {
		w = r.errOut
	}
	_, _ = fmt.Fprintln(w, strings.TrimSuffix(out.Text, "\n"))
	_, _ = fmt.Fprintln(w)
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .mode [name]    Show or switch the output mode (sql, tokens, ast, grammar)
  .source         Print the current document
  .show           Print the output for the current document again
  .quit / .exit   Exit the REPL

Tips:
  - Each line replaces the document, e.g. orders | where amount > 10
  - An empty line sets the empty document
  - Use arrow keys to navigate history
  - Tab completion works for keywords and modes
`
	_, _ = fmt.Fprintln(w, help)
}

// keywords returns the loaded compiler's keywords, or nil until it is ready.
func (r *repl) keywords(string) []string {
	c, ok := r.backend.Compiler()
	if !ok {
		return nil
	}
	if k, ok := c.(interface{ Keywords() []string }); ok {
		return k.Keywords()
	}
	return nil
}

// newREPLCompleter creates a readline completer for dot-commands and the
// keywords reported by keywords at completion time.
func newREPLCompleter(keywords readline.DynamicCompleteFunc) *readline.PrefixCompleter {
	modes := make([]readline.PrefixCompleterInterface, 0, len(session.AllModes()))
	for _, m := range session.AllModes() {
		modes = append(modes, readline.PcItem(m.String()))
	}

	items := []readline.PrefixCompleterInterface{
		readline.PcItem(".help"),
		readline.PcItem(".mode", modes...),
		readline.PcItem(".source"),
		readline.PcItem(".show"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	}
	if keywords != nil {
		items = append(items, readline.PcItemDynamic(keywords))
	}

	return readline.NewPrefixCompleter(items...)
}

// replHistoryFile returns the history path under the user cache directory,
// or empty string to disable history.
func replHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "dreamql")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "repl_history")
}
