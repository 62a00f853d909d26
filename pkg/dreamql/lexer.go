package dreamql

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/dreamql/pkg/token"
)

// Lexer tokenizes DreamQL input.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	// Comments collected during lexing
	Comments []token.Token
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.pos > 0 && l.pos <= len(l.input) && l.input[l.pos-1] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

// atEOF reports whether the whole input has been consumed. A NUL byte
// inside the input is not the end of it.
func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token. Comments are collected, not returned.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()

	var tok token.Token
	tok.Pos = pos

	if l.atEOF() {
		tok.Type = token.EOF
		return tok
	}

	switch l.ch {
	case '|':
		tok = l.newToken(token.PIPE, "|")
	case '.':
		tok = l.newToken(token.DOT, ".")
	case ',':
		tok = l.newToken(token.COMMA, ",")
	case '=':
		tok = l.newToken(token.EQ, "=")
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.NE, Literal: "!=", Pos: pos}
		} else {
			tok = l.newToken(token.ILLEGAL, "!")
		}
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = token.Token{Type: token.LE, Literal: "<=", Pos: pos}
		case '>':
			l.readChar()
			tok = token.Token{Type: token.NE, Literal: "<>", Pos: pos}
		default:
			tok = l.newToken(token.LT, "<")
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.GE, Literal: ">=", Pos: pos}
		} else {
			tok = l.newToken(token.GT, ">")
		}
	case '\'':
		lit, ok := l.readString()
		if !ok {
			return token.Token{Type: token.ILLEGAL, Literal: lit, Pos: pos}
		}
		return token.Token{Type: token.STRING, Literal: lit, Pos: pos}
	default:
		switch {
		case isLetter(l.ch) || l.ch == '_':
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(strings.ToLower(tok.Literal))
			return tok
		case isDigit(l.ch) || (l.ch == '-' && isDigit(l.peekChar())):
			tok.Type = token.NUMBER
			tok.Literal = l.readNumber()
			return tok
		default:
			tok = l.newToken(token.ILLEGAL, string(l.ch))
		}
	}

	l.readChar()
	return tok
}

// Tokenize returns all tokens of input, including comments, ending with EOF.
// Lexing stops at the first illegal token, which is reported as an error.
func Tokenize(input string) ([]token.Token, error) {
	l := NewLexer(input)
	var toks []token.Token
	for {
		before := len(l.Comments)
		tok := l.NextToken()
		toks = append(toks, l.Comments[before:]...)
		if tok.Type == token.ILLEGAL {
			return toks, illegalError(tok)
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

func illegalError(tok token.Token) *Error {
	if strings.HasPrefix(tok.Literal, "'") {
		return &Error{Pos: tok.Pos, Message: ErrUnterminatedString}
	}
	return &Error{Pos: tok.Pos, Message: fmt.Sprintf(ErrIllegalCharacter, tok.Literal)}
}

func (l *Lexer) newToken(tokenType token.TokenType, literal string) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Pos: l.currentPos()}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		if l.ch == '-' && l.peekChar() == '-' {
			l.collectLineComment()
			continue
		}

		break
	}
}

func (l *Lexer) collectLineComment() {
	startPos := l.currentPos()
	startOffset := l.pos

	for !l.atEOF() && l.ch != '\n' {
		l.readChar()
	}

	l.Comments = append(l.Comments, token.Token{
		Type:    token.COMMENT,
		Literal: l.input[startOffset:l.pos],
		Pos:     startPos,
	})
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readNumber() string {
	start := l.pos
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.pos]
}

// readString reads a single-quoted literal including its quotes.
// Two adjacent quotes escape a quote inside the literal.
func (l *Lexer) readString() (string, bool) {
	start := l.pos
	l.readChar() // opening quote
	for {
		if l.atEOF() {
			return l.input[start:l.pos], false
		}
		switch l.ch {
		case '\'':
			if l.peekChar() == '\'' {
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			return l.input[start:l.pos], true
		default:
			l.readChar()
		}
	}
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
