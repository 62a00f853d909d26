package dreamql

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/dreamql/pkg/token"
)

// Parser is a recursive descent parser for DreamQL.
//
//	query      → source { "|" stage }
//	source     → ident { "." ident }
//	stage      → where | select | sort | limit
type Parser struct {
	lexer *Lexer
	token token.Token // current token
	peek  token.Token // lookahead token
	err   *Error
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses input into a Query.
func Parse(input string) (*Query, error) {
	p := NewParser(input)
	q := p.parseQuery()
	if p.err != nil {
		return nil, p.err
	}
	return q, nil
}

// ---------- Token Helpers ----------

func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expectIdent consumes an identifier and returns its literal.
func (p *Parser) expectIdent(what string) (string, bool) {
	if p.check(token.IDENT) {
		lit := p.token.Literal
		p.nextToken()
		return lit, true
	}
	p.unexpected(what)
	return "", false
}

// failed reports whether an error has been recorded. Only the first error is kept.
func (p *Parser) failed() bool {
	return p.err != nil
}

func (p *Parser) addError(msg string) {
	if p.err != nil {
		return
	}
	p.err = &Error{Pos: p.token.Pos, Message: msg}
}

func (p *Parser) unexpected(expected string) {
	if p.check(token.ILLEGAL) {
		p.addError(illegalError(p.token).Message)
		return
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), expected))
}

func describe(tok token.Token) string {
	switch {
	case tok.Type == token.EOF:
		return "end of input"
	case tok.Type == token.IDENT, tok.Type == token.NUMBER, tok.Type == token.STRING:
		return fmt.Sprintf("%s %s", strings.ToLower(tok.Type.String()), tok.Literal)
	case token.IsKeyword(tok.Type):
		return fmt.Sprintf("keyword %s", strings.ToLower(tok.Literal))
	default:
		return fmt.Sprintf("%q", tok.Literal)
	}
}

// ---------- Grammar ----------

func (p *Parser) parseQuery() *Query {
	q := &Query{}

	if p.check(token.EOF) {
		p.addError(ErrExpectedTable)
		return nil
	}

	q.Source = p.parseSource()
	if p.failed() {
		return nil
	}

	seen := map[string]bool{}
	for p.match(token.PIPE) {
		start := p.token.Pos
		stage := p.parseStage()
		if p.failed() {
			return nil
		}
		if _, isWhere := stage.(*WhereStage); !isWhere {
			if seen[stage.Kind()] {
				p.err = &Error{Pos: start, Message: fmt.Sprintf(ErrDuplicateStage, stage.Kind())}
				return nil
			}
			seen[stage.Kind()] = true
		}
		q.Stages = append(q.Stages, stage)
	}

	if !p.check(token.EOF) {
		p.unexpected(`"|" or end of input`)
		return nil
	}
	return q
}

func (p *Parser) parseSource() *TableRef {
	ref := &TableRef{Pos: p.token.Pos}
	part, ok := p.expectIdent("table name")
	if !ok {
		return nil
	}
	ref.Parts = append(ref.Parts, part)
	for p.match(token.DOT) {
		part, ok := p.expectIdent("identifier after \".\"")
		if !ok {
			return nil
		}
		ref.Parts = append(ref.Parts, part)
	}
	return ref
}

func (p *Parser) parseStage() Stage {
	switch {
	case p.match(token.WHERE):
		cond := p.parseCondition()
		if p.failed() {
			return nil
		}
		return &WhereStage{Condition: cond}
	case p.match(token.SELECT):
		return p.parseSelect()
	case p.match(token.SORT):
		return p.parseSort()
	case p.match(token.LIMIT):
		if !p.check(token.NUMBER) || strings.ContainsAny(p.token.Literal, ".-") {
			p.unexpected("row count")
			return nil
		}
		count := p.token.Literal
		p.nextToken()
		return &LimitStage{Count: count}
	case p.check(token.IDENT):
		p.addError(fmt.Sprintf(ErrUnknownStage, p.token.Literal))
		return nil
	default:
		p.unexpected("stage")
		return nil
	}
}

func (p *Parser) parseSelect() Stage {
	s := &SelectStage{}
	for {
		col, ok := p.expectIdent("column name")
		if !ok {
			return nil
		}
		s.Columns = append(s.Columns, col)
		if !p.match(token.COMMA) {
			return s
		}
	}
}

func (p *Parser) parseSort() Stage {
	s := &SortStage{}
	for {
		col, ok := p.expectIdent("column name")
		if !ok {
			return nil
		}
		key := SortKey{Column: col}
		if p.match(token.DESC) {
			key.Descending = true
		} else {
			p.match(token.ASC)
		}
		s.Keys = append(s.Keys, key)
		if !p.match(token.COMMA) {
			return s
		}
	}
}

// condition → comparison { ( "and" | "or" ) comparison }
func (p *Parser) parseCondition() *Condition {
	c := &Condition{}
	for {
		cmp := p.parseComparison()
		if p.failed() {
			return nil
		}
		c.Terms = append(c.Terms, cmp)

		switch {
		case p.match(token.AND):
			c.Connectives = append(c.Connectives, "and")
		case p.match(token.OR):
			c.Connectives = append(c.Connectives, "or")
		default:
			return c
		}
	}
}

// comparison → operand [ compare_op operand ]
func (p *Parser) parseComparison() *Comparison {
	left := p.parseOperand()
	if p.failed() {
		return nil
	}
	cmp := &Comparison{Left: left}
	if token.IsComparison(p.token.Type) {
		cmp.Operator = p.token.Literal
		if cmp.Operator == "<>" {
			cmp.Operator = "!="
		}
		p.nextToken()
		cmp.Right = p.parseOperand()
		if p.failed() {
			return nil
		}
	}
	return cmp
}

func (p *Parser) parseOperand() *Operand {
	tok := p.token
	var op *Operand
	switch tok.Type {
	case token.IDENT:
		op = &Operand{Kind: OperandColumn, Value: tok.Literal}
	case token.NUMBER:
		op = &Operand{Kind: OperandNumber, Value: tok.Literal}
	case token.STRING:
		op = &Operand{Kind: OperandString, Value: tok.Literal}
	case token.TRUE, token.FALSE:
		op = &Operand{Kind: OperandBoolean, Value: strings.ToLower(tok.Literal)}
	case token.NULL:
		op = &Operand{Kind: OperandNull, Value: "null"}
	default:
		p.unexpected("column or value")
		return nil
	}
	p.nextToken()
	return op
}
