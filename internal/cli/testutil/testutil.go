// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

// QueryFile is the DreamQL document written by SetupTestProject.
const QueryFile = "query.dql"

// SetupTestProject creates a temporary project holding a dreamql.yaml with
// the given content and a query file, and changes into it for the test.
// An empty config skips the config file.
func SetupTestProject(t *testing.T, config, query string) string {
	t.Helper()

	dir := t.TempDir()
	if config != "" {
		writeFile(t, filepath.Join(dir, "dreamql.yaml"), config)
	}
	writeFile(t, filepath.Join(dir, QueryFile), query)

	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
