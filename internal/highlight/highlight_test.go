package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlight_RoundTrip(t *testing.T) {
	inputs := map[string]string{
		LangSQL:     "select ID, AMOUNT from ORDERS where NAME = 'O''Brien' and X >= 1.5 -- c\nlimit 5",
		LangDreamQL: "orders -- note\n| where a = -1 or b != 'x' | sort a desc",
		LangEBNF:    "(* DreamQL *)\nquery = source { \"|\" stage } ;\n",
		LangYAML:    "source:\n  parts: [orders]\nstages:\n  - limit: \"5\"\n  - where:\n      terms:\n        - left:\n            kind: number\n            value: -1.5\n",
		LangText:    "┌───┐\n│ x │",
		"unknown":   "anything",
	}
	for lang, in := range inputs {
		t.Run(lang, func(t *testing.T) {
			assert.Equal(t, in, Text(Highlight(lang, in)))
		})
	}
}

func TestHighlight_Empty(t *testing.T) {
	assert.Nil(t, Highlight(LangSQL, ""))
}

func TestHighlight_SQL(t *testing.T) {
	got := Highlight(LangSQL, "select * from TABLE")
	assert.Equal(t, []Segment{
		{Kind: Keyword, Text: "select"},
		{Kind: Plain, Text: " "},
		{Kind: Operator, Text: "*"},
		{Kind: Plain, Text: " "},
		{Kind: Keyword, Text: "from"},
		{Kind: Plain, Text: " "},
		{Kind: Identifier, Text: "TABLE"},
	}, got)
}

func TestHighlight_DreamQL(t *testing.T) {
	got := Highlight(LangDreamQL, "t | limit -5 -- x")
	assert.Equal(t, []Segment{
		{Kind: Identifier, Text: "t"},
		{Kind: Plain, Text: " "},
		{Kind: Operator, Text: "|"},
		{Kind: Plain, Text: " "},
		{Kind: Keyword, Text: "limit"},
		{Kind: Plain, Text: " "},
		{Kind: Number, Text: "-5"},
		{Kind: Plain, Text: " "},
		{Kind: Comment, Text: "-- x"},
	}, got)
}

func TestHighlight_EBNF(t *testing.T) {
	got := Highlight(LangEBNF, `(* c *) a = "x" ;`)
	assert.Equal(t, []Segment{
		{Kind: Comment, Text: "(* c *)"},
		{Kind: Plain, Text: " "},
		{Kind: Identifier, Text: "a"},
		{Kind: Plain, Text: " "},
		{Kind: Operator, Text: "="},
		{Kind: Plain, Text: " "},
		{Kind: String, Text: `"x"`},
		{Kind: Plain, Text: " "},
		{Kind: Operator, Text: ";"},
	}, got)
}

func TestHighlight_YAML(t *testing.T) {
	got := Highlight(LangYAML, "- limit: \"5\"\n  ok: true\n")
	assert.Equal(t, []Segment{
		{Kind: Operator, Text: "-"},
		{Kind: Plain, Text: " "},
		{Kind: Identifier, Text: "limit"},
		{Kind: Operator, Text: ":"},
		{Kind: Plain, Text: " "},
		{Kind: String, Text: `"5"`},
		{Kind: Plain, Text: "\n  "},
		{Kind: Identifier, Text: "ok"},
		{Kind: Operator, Text: ":"},
		{Kind: Plain, Text: " "},
		{Kind: Keyword, Text: "true"},
		{Kind: Plain, Text: "\n"},
	}, got)
}

func TestHighlight_UnterminatedString(t *testing.T) {
	got := Highlight(LangDreamQL, "a = 'open")
	assert.Equal(t, Segment{Kind: String, Text: "'open"}, got[len(got)-1])
}
