package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/dreamql/internal/highlight"
	"github.com/leapstack-labs/dreamql/internal/tui"
	"github.com/leapstack-labs/dreamql/internal/view"
)

// Translate output formats.
var translateFormats = []string{"text", "json", "markdown"}

func renderTranslation(w io.Writer, out view.Output, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return renderJSON(w, out)
	case "md", "markdown":
		return renderMarkdown(w, out)
	case "", "text":
		return renderText(w, out)
	default:
		return fmt.Errorf("unknown format %q (valid: %s)", format, strings.Join(translateFormats, ", "))
	}
}

// renderText prints the output, styled when w is a terminal.
func renderText(w io.Writer, out view.Output) error {
	text := out.Text
	if isTerminal(w) {
		text = tui.NewStyles(w).RenderOutput(out)
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}

func renderJSON(w io.Writer, out view.Output) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// renderMarkdown prints the output as a fenced code block.
func renderMarkdown(w io.Writer, out view.Output) error {
	lang := out.Language
	if lang == highlight.LangText || lang == highlight.LangDreamQL {
		lang = ""
	}
	_, err := fmt.Fprintf(w, "```%s\n%s\n```\n", lang, strings.TrimSuffix(out.Text, "\n"))
	return err
}
