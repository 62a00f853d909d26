// Package dreamql implements the DreamQL compiler: a small pipe-oriented
// query language translated to BigQuery SQL.
//
// # Usage
//
//	c, err := dreamql.Load(ctx, dreamql.Options{})
//	if err != nil {
//	    // handle error
//	}
//	sql, err := c.Translate("orders | where amount > 10 | limit 5")
//
// A bare table name translates to a full scan:
//
//	table → select * from TABLE
package dreamql

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/leapstack-labs/dreamql/pkg/token"
)

// DialectBigQuery is the only supported target dialect.
const DialectBigQuery = "bigquery"

// Options configures compiler initialization.
type Options struct {
	// Dialect selects the SQL target. Empty means BigQuery.
	Dialect string
	// InitDelay makes Load wait before completing. Used to emulate a
	// slow backend in the playground.
	InitDelay time.Duration
}

// Compiler translates DreamQL source. A Compiler is immutable after Load
// and safe for concurrent use.
type Compiler struct {
	dialect  string
	keywords []string
}

// Load initializes a compiler. It honours ctx while waiting for InitDelay.
func Load(ctx context.Context, opts Options) (*Compiler, error) {
	dialect := strings.ToLower(strings.TrimSpace(opts.Dialect))
	if dialect == "" {
		dialect = DialectBigQuery
	}
	if dialect != DialectBigQuery {
		return nil, fmt.Errorf("unsupported dialect %q (supported: %s)", opts.Dialect, DialectBigQuery)
	}

	if opts.InitDelay > 0 {
		timer := time.NewTimer(opts.InitDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	kws := token.Keywords()
	sort.Strings(kws)

	return &Compiler{
		dialect:  dialect,
		keywords: kws,
	}, nil
}

// Translate compiles DreamQL source to SQL.
func (c *Compiler) Translate(source string) (string, error) {
	q, err := Parse(source)
	if err != nil {
		return "", err
	}
	return generateBigQuery(q)
}

// Tokenize returns the token stream of source, including comments.
func (c *Compiler) Tokenize(source string) ([]token.Token, error) {
	return Tokenize(source)
}

// Parse returns the syntax tree of source.
func (c *Compiler) Parse(source string) (*Query, error) {
	return Parse(source)
}

// Grammar returns the language grammar in EBNF.
func (c *Compiler) Grammar() string {
	return grammarEBNF
}

// Dialect returns the target dialect name.
func (c *Compiler) Dialect() string {
	return c.dialect
}

// Keywords returns the sorted DreamQL keywords.
func (c *Compiler) Keywords() []string {
	return append([]string(nil), c.keywords...)
}
