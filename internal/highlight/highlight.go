// Package highlight splits rendered playground text into classified
// segments for display. Concatenating the segments always yields the
// original text.
package highlight

import (
	"strings"
)

// Kind classifies a segment.
type Kind string

// Segment kinds.
const (
	Plain      Kind = "plain"
	Keyword    Kind = "keyword"
	Identifier Kind = "identifier"
	Number     Kind = "number"
	String     Kind = "string"
	Operator   Kind = "operator"
	Comment    Kind = "comment"
)

// Segment is a run of text with a single classification.
type Segment struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Languages understood by Highlight.
const (
	LangSQL     = "sql"
	LangDreamQL = "dreamql"
	LangYAML    = "yaml"
	LangEBNF    = "ebnf"
	LangText    = "text"
)

// Highlight classifies text according to lang. Unknown languages are
// returned as a single plain segment.
func Highlight(lang, text string) []Segment {
	if text == "" {
		return nil
	}
	switch lang {
	case LangSQL:
		return scan(text, sqlSyntax)
	case LangDreamQL:
		return scan(text, dreamqlSyntax)
	case LangEBNF:
		return scan(text, ebnfSyntax)
	case LangYAML:
		return highlightYAML(text)
	default:
		return []Segment{{Kind: Plain, Text: text}}
	}
}

// Text joins segments back into a string.
func Text(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

// appendSegment adds text to segs, merging with the previous segment
// when the kinds match.
func appendSegment(segs []Segment, kind Kind, text string) []Segment {
	if text == "" {
		return segs
	}
	if n := len(segs); n > 0 && segs[n-1].Kind == kind {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, Segment{Kind: kind, Text: text})
}
