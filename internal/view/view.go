// Package view derives the playground's output pane from a session
// snapshot. Rendering is pure: it reads the snapshot and the compiler and
// never mutates either.
package view

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/dreamql/internal/backend"
	"github.com/leapstack-labs/dreamql/internal/highlight"
	"github.com/leapstack-labs/dreamql/internal/session"
	"github.com/leapstack-labs/dreamql/pkg/token"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Placeholder texts shown before a compiler is available.
const (
	NotReadyText   = "compiler not initialized..."
	FailedPrefix   = "compiler failed to initialize: "
	TranslateError = "translation failed: "
)

// Kind classifies an Output.
type Kind string

// Output kinds.
const (
	KindPlaceholder Kind = "placeholder"
	KindRendered    Kind = "rendered"
	KindFailure     Kind = "failure"
)

// Output is the derived content of the output pane.
type Output struct {
	Kind     Kind                `json:"kind"`
	Mode     session.OutputMode  `json:"mode"`
	Language string              `json:"language"`
	Text     string              `json:"text"`
	Segments []highlight.Segment `json:"segments,omitempty"`
}

// Render computes the output for snap. c may be nil unless the snapshot
// reports the backend as Ready.
func Render(snap session.Snapshot, c backend.Compiler) Output {
	switch snap.Readiness {
	case backend.Ready:
		if c == nil {
			return placeholder(snap.Mode, NotReadyText)
		}
	case backend.Failed:
		return placeholder(snap.Mode, FailedPrefix+snap.InitError)
	default:
		return placeholder(snap.Mode, NotReadyText)
	}

	lang, text, err := renderMode(snap.Mode, snap.Source, c)
	if err != nil {
		return Output{
			Kind:     KindFailure,
			Mode:     snap.Mode,
			Language: highlight.LangText,
			Text:     TranslateError + err.Error(),
		}
	}
	return Output{
		Kind:     KindRendered,
		Mode:     snap.Mode,
		Language: lang,
		Text:     text,
		Segments: highlight.Highlight(lang, text),
	}
}

func placeholder(mode session.OutputMode, text string) Output {
	return Output{
		Kind:     KindPlaceholder,
		Mode:     mode,
		Language: highlight.LangText,
		Text:     text,
	}
}

// renderMode runs the compiler for mode. A panic inside the compiler is
// reported as an error.
func renderMode(mode session.OutputMode, source string, c backend.Compiler) (lang, text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	switch mode {
	case session.ModeSQL:
		text, err = c.Translate(source)
		return highlight.LangSQL, text, err
	case session.ModeTokens:
		toks, err := c.Tokenize(source)
		if err != nil {
			return "", "", err
		}
		return highlight.LangText, TokenTable(toks), nil
	case session.ModeAST:
		q, err := c.Parse(source)
		if err != nil {
			return "", "", err
		}
		text, err = marshalYAML(q)
		return highlight.LangYAML, text, err
	case session.ModeGrammar:
		return highlight.LangEBNF, c.Grammar(), nil
	default:
		return "", "", fmt.Errorf("%w: %s", session.ErrUnknownMode, mode)
	}
}

// TokenTable renders tokens as a box-drawn table.
func TokenTable(toks []token.Token) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Kind", "Literal", "Position"})
	for i, tok := range toks {
		t.AppendRow(table.Row{i, tok.Type.String(), tok.Literal, tok.Pos.String()})
	}
	return t.Render()
}

func marshalYAML(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// ModeLabel returns the display label of mode, e.g. "SQL" or "Tokens".
func ModeLabel(mode session.OutputMode) string {
	name := mode.String()
	if len(name) <= 3 {
		return cases.Upper(language.English).String(name)
	}
	return cases.Title(language.English).String(name)
}
