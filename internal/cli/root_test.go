package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/leapstack-labs/dreamql/internal/cli/config"
	"github.com/leapstack-labs/dreamql/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	cfgFile = ""

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"serve", "tui", "translate", "repl", "version", "completion"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}

	for _, flag := range []string{"config", "verbose", "log-level", "log-format", "dialect", "init-delay"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCmd_TranslateUsesConfig(t *testing.T) {
	testutil.SetupTestProject(t, "default_mode: ast\n", "orders | limit 1\n")

	out, _, err := run(t, "translate", testutil.QueryFile)
	require.NoError(t, err)
	assert.Contains(t, out, "parts: [orders]")
	testutil.AssertNoANSI(t, out)

	out, _, err = run(t, "translate", "--mode", "sql", testutil.QueryFile)
	require.NoError(t, err)
	assert.Equal(t, "select * from ORDERS limit 1\n", out)
}

func TestRootCmd_UnsupportedDialect(t *testing.T) {
	testutil.SetupTestProject(t, "", "orders\n")

	_, _, err := run(t, "--dialect", "oracle", "translate", testutil.QueryFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiler failed to initialize")
	assert.Contains(t, err.Error(), `unsupported dialect "oracle"`)
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	testutil.SetupTestProject(t, "log_format: xml\n", "orders\n")

	_, _, err := run(t, "translate", testutil.QueryFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log_format")
}

func TestRootCmd_VerboseLogsToStderr(t *testing.T) {
	testutil.SetupTestProject(t, "", "orders\n")

	out, errOut, err := run(t, "-v", "--log-format", "json", "translate", testutil.QueryFile)
	require.NoError(t, err)
	assert.Equal(t, "select * from ORDERS\n", out)
	assert.Contains(t, errOut, `"level":"DEBUG"`)
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "dreamql")

	_, _, err = run(t, "completion", "tcsh")
	require.Error(t, err)
}
