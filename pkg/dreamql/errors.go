package dreamql

import (
	"fmt"

	"github.com/leapstack-labs/dreamql/pkg/token"
)

// Error is a lexical or syntax error with position information.
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	if !e.Pos.IsValid() {
		return e.Message
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken    = "unexpected %s, expected %s"
	ErrUnterminatedString = "unterminated string literal"
	ErrIllegalCharacter   = "illegal character %q"
	ErrExpectedTable      = "expected table name"
	ErrDuplicateStage     = "%s stage already defined"
	ErrUnknownStage       = "unknown stage %q, expected where, select, sort or limit"
)
