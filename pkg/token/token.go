// Package token defines the lexical tokens of the DreamQL language.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL
	COMMENT

	// Literals
	IDENT  // orders, customer_id
	NUMBER // 123, 45.67
	STRING // 'hello'

	// Operators and punctuation
	PIPE  // |
	DOT   // .
	COMMA // ,
	EQ    // =
	NE    // != or <>
	LT    // <
	GT    // >
	LE    // <=
	GE    // >=

	// Keywords (alphabetical)
	AND
	ASC
	DESC
	FALSE
	LIMIT
	NULL
	OR
	SELECT
	SORT
	TRUE
	WHERE
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",
	COMMENT: "COMMENT",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	PIPE:  "|",
	DOT:   ".",
	COMMA: ",",
	EQ:    "=",
	NE:    "!=",
	LT:    "<",
	GT:    ">",
	LE:    "<=",
	GE:    ">=",

	AND:    "AND",
	ASC:    "ASC",
	DESC:   "DESC",
	FALSE:  "FALSE",
	LIMIT:  "LIMIT",
	NULL:   "NULL",
	OR:     "OR",
	SELECT: "SELECT",
	SORT:   "SORT",
	TRUE:   "TRUE",
	WHERE:  "WHERE",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"and":    AND,
	"asc":    ASC,
	"desc":   DESC,
	"false":  FALSE,
	"limit":  LIMIT,
	"null":   NULL,
	"or":     OR,
	"select": SELECT,
	"sort":   SORT,
	"true":   TRUE,
	"where":  WHERE,
}

// LookupIdent returns the keyword token type for ident, or IDENT.
// The lookup expects a lowercase identifier.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Keywords returns the lowercase spelling of every keyword.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for kw := range keywords {
		out = append(out, kw)
	}
	return out
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= AND && t <= WHERE
}

// IsOperator returns true if the token type is an operator or punctuation.
func IsOperator(t TokenType) bool {
	return t >= PIPE && t <= GE
}

// IsComparison returns true for the comparison operators.
func IsComparison(t TokenType) bool {
	return t >= EQ && t <= GE
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q at %s", t.Type, t.Literal, t.Pos)
}
