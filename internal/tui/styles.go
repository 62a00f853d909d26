package tui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/dreamql/internal/highlight"
	"github.com/leapstack-labs/dreamql/internal/view"
	"github.com/muesli/termenv"
)

// Styles holds the rendering styles for the terminal playground.
type Styles struct {
	Title       lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Pane        lipgloss.Style
	FocusedPane lipgloss.Style
	Status      lipgloss.Style
	Ready       lipgloss.Style
	Failed      lipgloss.Style
	Help        lipgloss.Style
	Placeholder lipgloss.Style
	Failure     lipgloss.Style
	Segments    map[highlight.Kind]lipgloss.Style
}

// NewStyles builds styles for the terminal behind w. The colour profile
// and background are detected with termenv.
func NewStyles(w io.Writer) Styles {
	out := termenv.NewOutput(w)
	r := lipgloss.NewRenderer(w, termenv.WithProfile(out.EnvColorProfile()))
	r.SetHasDarkBackground(out.HasDarkBackground())
	return newStyles(r)
}

// PlainStyles renders without colour. Used by tests and dumb terminals.
func PlainStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(termenv.Ascii))
	return newStyles(r)
}

func newStyles(r *lipgloss.Renderer) Styles {
	accent := lipgloss.AdaptiveColor{Light: "#3b5bdb", Dark: "#7aa2f7"}
	muted := lipgloss.AdaptiveColor{Light: "#868e96", Dark: "#7f8794"}
	errColor := lipgloss.AdaptiveColor{Light: "#c92a2a", Dark: "#f7768e"}
	okColor := lipgloss.AdaptiveColor{Light: "#2b8a3e", Dark: "#9ece6a"}

	border := lipgloss.RoundedBorder()

	return Styles{
		Title:       r.NewStyle().Bold(true).Foreground(accent).PaddingRight(2),
		Tab:         r.NewStyle().Foreground(muted).Padding(0, 1),
		ActiveTab:   r.NewStyle().Bold(true).Reverse(true).Foreground(accent).Padding(0, 1),
		Pane:        r.NewStyle().Border(border).BorderForeground(muted),
		FocusedPane: r.NewStyle().Border(border).BorderForeground(accent),
		Status:      r.NewStyle().Foreground(muted),
		Ready:       r.NewStyle().Foreground(okColor),
		Failed:      r.NewStyle().Foreground(errColor),
		Help:        r.NewStyle().Foreground(muted),
		Placeholder: r.NewStyle().Foreground(muted).Italic(true),
		Failure:     r.NewStyle().Foreground(errColor),
		Segments: map[highlight.Kind]lipgloss.Style{
			highlight.Keyword:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#862e9c", Dark: "#bb9af7"}),
			highlight.Identifier: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1864ab", Dark: "#7dcfff"}),
			highlight.Number:     r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#d9480f", Dark: "#ff9e64"}),
			highlight.String:     r.NewStyle().Foreground(okColor),
			highlight.Operator:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0b7285", Dark: "#89ddff"}),
			highlight.Comment:    r.NewStyle().Foreground(muted).Italic(true),
		},
	}
}

// RenderOutput styles an output for the viewport.
func (s Styles) RenderOutput(out view.Output) string {
	switch out.Kind {
	case view.KindPlaceholder:
		return s.Placeholder.Render(out.Text)
	case view.KindFailure:
		return s.Failure.Render(out.Text)
	}
	if len(out.Segments) == 0 {
		return out.Text
	}

	var b strings.Builder
	for _, seg := range out.Segments {
		style, ok := s.Segments[seg.Kind]
		if !ok {
			b.WriteString(seg.Text)
			continue
		}
		// Style line by line so that multi-line segments keep their layout.
		for i, line := range strings.Split(seg.Text, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
	}
	return b.String()
}
