package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/dreamql/internal/backend"
	"github.com/leapstack-labs/dreamql/internal/cli/config"
	"github.com/leapstack-labs/dreamql/internal/session"
	"github.com/leapstack-labs/dreamql/pkg/dreamql"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	config.ResetConfig()

	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	cmd.SetContext(context.Background())

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNewTranslateCommand(t *testing.T) {
	cmd := NewTranslateCommand()

	assert.Equal(t, "translate [FILE]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Example)
	assert.NotNil(t, cmd.Flags().Lookup("mode"))
}

func TestTranslateCommand(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		want     string
		contains []string
		errSub   string
	}{
		{
			name:  "bare table from stdin",
			stdin: "table\n",
			want:  "select * from TABLE\n",
		},
		{
			name:  "pipeline",
			stdin: "orders | where amount > 10 | limit 5",
			want:  "select * from ORDERS where AMOUNT > 10 limit 5\n",
		},
		{
			name:     "tokens mode",
			stdin:    "orders | limit 5",
			args:     []string{"--mode", "tokens"},
			contains: []string{"orders", "limit", "5"},
		},
		{
			name:     "ast mode",
			stdin:    "orders",
			args:     []string{"-m", "AST"},
			contains: []string{"parts:", "orders"},
		},
		{
			name:     "grammar mode",
			stdin:    "",
			args:     []string{"--mode=grammar"},
			contains: []string{"(* DreamQL *)"},
		},
		{
			name:   "translation failure",
			stdin:  "orders |",
			errSub: "translation failed: line 1, column 9",
		},
		{
			name:   "unknown mode",
			stdin:  "orders",
			args:   []string{"--mode", "html"},
			errSub: "unknown output mode",
		},
		{
			name:     "json format",
			stdin:    "orders",
			args:     []string{"--format", "json"},
			contains: []string{`"kind": "rendered"`, `"language": "sql"`, `"text": "select * from ORDERS"`},
		},
		{
			name:  "markdown format",
			stdin: "orders",
			args:  []string{"-f", "markdown"},
			want:  "```sql\nselect * from ORDERS\n```\n",
		},
		{
			name:   "unknown format",
			stdin:  "orders",
			args:   []string{"--format", "csv"},
			errSub: `unknown format "csv"`,
		},
		{
			name:   "too many args",
			args:   []string{"a", "b"},
			errSub: "accepts at most 1 arg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := executeCommand(t, NewTranslateCommand(), tt.stdin, tt.args...)
			if tt.errSub != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSub)
				assert.Empty(t, out)
				return
			}

			require.NoError(t, err)
			if tt.want != "" {
				assert.Equal(t, tt.want, out)
			}
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestTranslateCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.dql")
	require.NoError(t, os.WriteFile(path, []byte("users | select name\n"), 0o600))

	out, _, err := executeCommand(t, NewTranslateCommand(), "", path)
	require.NoError(t, err)
	assert.Equal(t, "select NAME from USERS\n", out)

	_, _, err = executeCommand(t, NewTranslateCommand(), "", filepath.Join(t.TempDir(), "missing.dql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read source")
}

func TestServeAndTUICommandFlags(t *testing.T) {
	serve := NewServeCommand()
	assert.Equal(t, "serve", serve.Use)
	for _, flag := range []string{"port", "no-browser", "watch"} {
		assert.NotNil(t, serve.Flags().Lookup(flag), "flag %q should exist", flag)
	}

	tuiCmd := NewTUICommand()
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.NotNil(t, tuiCmd.Flags().Lookup("alt-screen"))
	assert.Contains(t, tuiCmd.Long, "editor on the left")
	assert.Contains(t, tuiCmd.Long, "output on the right")
}

func TestGenerateSessionSecret(t *testing.T) {
	a := generateSessionSecret()
	b := generateSessionSecret()
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

type readyBackend struct {
	compiler backend.Compiler
}

func (b readyBackend) Compiler() (backend.Compiler, bool) {
	return b.compiler, b.compiler != nil
}

func newTestREPL(t *testing.T, ready bool) (*repl, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	sess := session.New(session.Options{}, nil)
	var rb readyBackend
	if ready {
		c, err := dreamql.Load(context.Background(), dreamql.Options{})
		require.NoError(t, err)
		rb.compiler = c
		sess.ApplyBackendEvent(backend.Event{Readiness: backend.Ready})
	}

	var out, errOut bytes.Buffer
	return &repl{session: sess, backend: rb, out: &out, errOut: &errOut}, &out, &errOut
}

func TestREPL_HandleLine(t *testing.T) {
	r, out, errOut := newTestREPL(t, true)

	assert.False(t, r.handleLine("orders | limit 2"))
	assert.Contains(t, out.String(), "select * from ORDERS limit 2")
	assert.Equal(t, "orders | limit 2", r.session.Source())

	assert.False(t, r.handleLine("orders | where"))
	assert.Contains(t, errOut.String(), "translation failed:")
	assert.Equal(t, "orders | where", r.session.Source(), "failed input stays in the document")
}

func TestREPL_BlankLineSetsEmptyDocument(t *testing.T) {
	r, out, errOut := newTestREPL(t, true)

	require.False(t, r.handleLine("orders"))
	require.Contains(t, out.String(), "select * from ORDERS")

	assert.False(t, r.handleLine("   "))
	assert.Empty(t, r.session.Source())
	assert.Contains(t, errOut.String(), "translation failed:")
}

func TestREPL_DotCommands(t *testing.T) {
	r, out, errOut := newTestREPL(t, true)

	assert.False(t, r.handleLine(".mode ast"))
	assert.Equal(t, session.ModeAST, r.session.Mode())
	assert.Contains(t, out.String(), "parts:")

	out.Reset()
	assert.False(t, r.handleLine(".mode"))
	assert.Equal(t, "mode: ast\n", out.String())

	assert.False(t, r.handleLine(".mode html"))
	assert.Contains(t, errOut.String(), "unknown output mode")
	assert.Equal(t, session.ModeAST, r.session.Mode())

	out.Reset()
	assert.False(t, r.handleLine(".source"))
	assert.Equal(t, "table\n", out.String())

	out.Reset()
	assert.False(t, r.handleLine(".help"))
	assert.Contains(t, out.String(), ".mode [name]")

	errOut.Reset()
	assert.False(t, r.handleLine(".frobnicate"))
	assert.Contains(t, errOut.String(), "Unknown command: .frobnicate")

	assert.True(t, r.handleLine(".quit"))
	assert.True(t, r.handleLine(".EXIT"))
}

func TestREPL_NotReady(t *testing.T) {
	r, out, _ := newTestREPL(t, false)

	r.handleLine("orders")
	assert.Contains(t, out.String(), "compiler not initialized...")
}

func TestNewREPLCompleter(t *testing.T) {
	c := newREPLCompleter(func(string) []string { return []string{"where"} })

	var names []string
	var dynamic []string
	for _, child := range c.GetChildren() {
		if d, ok := child.(readline.DynamicPrefixCompleterInterface); ok && d.IsDynamic() {
			for _, n := range d.GetDynamicNames(nil) {
				dynamic = append(dynamic, strings.TrimSpace(string(n)))
			}
			continue
		}
		names = append(names, strings.TrimSpace(string(child.GetName())))
	}
	assert.Contains(t, names, ".mode")
	assert.Contains(t, names, ".quit")
	assert.Equal(t, []string{"where"}, dynamic)
}

func TestREPL_KeywordsFollowLoadedCompiler(t *testing.T) {
	r, _, _ := newTestREPL(t, false)
	assert.Nil(t, r.keywords(""))

	r, _, _ = newTestREPL(t, true)
	kws := r.keywords("")
	assert.Contains(t, kws, "where")
	assert.Contains(t, kws, "limit")
	assert.True(t, sort.StringsAreSorted(kws))
}
