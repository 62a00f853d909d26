package session

import (
	"errors"
	"fmt"
	"strings"
)

// OutputMode selects what the output pane shows.
type OutputMode int

// Output modes. SQL is the default.
const (
	ModeSQL OutputMode = iota
	ModeTokens
	ModeAST
	ModeGrammar
)

// ErrUnknownMode is returned when parsing an unrecognised mode name.
var ErrUnknownMode = errors.New("unknown output mode")

var modeNames = [...]string{
	ModeSQL:     "sql",
	ModeTokens:  "tokens",
	ModeAST:     "ast",
	ModeGrammar: "grammar",
}

// AllModes returns every mode in display order.
func AllModes() []OutputMode {
	return []OutputMode{ModeSQL, ModeTokens, ModeAST, ModeGrammar}
}

func (m OutputMode) String() string {
	if m.Valid() {
		return modeNames[m]
	}
	return fmt.Sprintf("OutputMode(%d)", int(m))
}

// Valid reports whether m is a known mode.
func (m OutputMode) Valid() bool {
	return m >= ModeSQL && m <= ModeGrammar
}

// Next returns the mode after m, wrapping around.
func (m OutputMode) Next() OutputMode {
	return (m + 1) % OutputMode(len(modeNames))
}

// Prev returns the mode before m, wrapping around.
func (m OutputMode) Prev() OutputMode {
	n := OutputMode(len(modeNames))
	return (m + n - 1) % n
}

// ParseOutputMode parses a case-insensitive mode name.
func ParseOutputMode(s string) (OutputMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return OutputMode(i), nil
		}
	}
	return ModeSQL, fmt.Errorf("%w %q (valid: %s)", ErrUnknownMode, s, strings.Join(modeNames[:], ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (m OutputMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *OutputMode) UnmarshalText(text []byte) error {
	mode, err := ParseOutputMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
