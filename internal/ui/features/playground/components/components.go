// Package components renders the playground's HTML fragments.
package components

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/leapstack-labs/dreamql/internal/backend"
	"github.com/leapstack-labs/dreamql/internal/highlight"
	"github.com/leapstack-labs/dreamql/internal/session"
	"github.com/leapstack-labs/dreamql/internal/view"
)

// Element IDs patched over SSE.
const (
	OutputID          = "output"
	ModesID           = "modes"
	StatusID          = "status"
	SourceHighlightID = "source-highlight"
)

// PageData is everything needed to render the full page.
type PageData struct {
	Title      string
	Stylesheet string
	Snapshot   session.Snapshot
	Output     view.Output
	// Revision is the notifier revision the page was rendered at.
	Revision uint64
	IsDev    bool
}

// DatastarScript is the client runtime.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"

type attrs = templ.OrderedAttributes

func kv(key string, value any) templ.KeyValue[string, any] {
	return templ.KeyValue[string, any]{Key: key, Value: value}
}

// Page renders the full playground document.
func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		signals, err := json.Marshal(map[string]string{"source": data.Snapshot.Source})
		if err != nil {
			return err
		}

		b := &builder{}
		b.raw("<!doctype html>\n")
		b.open("html", attrs{kv("lang", "en")})
		b.raw("<head>")
		b.open("meta", attrs{kv("charset", "utf-8")})
		b.open("meta", attrs{kv("name", "viewport"), kv("content", "width=device-width, initial-scale=1")})
		b.element("title", nil, data.Title+" - DreamQL")
		b.open("link", attrs{kv("rel", "stylesheet"), kv("href", data.Stylesheet)})
		b.element("script", attrs{kv("type", "module"), kv("src", DatastarScript)}, "")
		b.raw("</head>")
		b.open("body", attrs{
			kv("data-signals", string(signals)),
			kv("data-init", fmt.Sprintf("@get('/updates?rev=%d')", data.Revision)),
		})
		if data.IsDev {
			b.element("div", attrs{kv("data-init", "@get('/reload')"), kv("hidden", true)}, "")
		}

		b.open("header", attrs{kv("class", "toolbar")})
		b.element("h1", nil, "DreamQL Playground")
		if err := b.flush(ctx, w); err != nil {
			return err
		}
		if err := ModeBar(data.Snapshot.Mode).Render(ctx, w); err != nil {
			return err
		}
		if err := Status(data.Snapshot).Render(ctx, w); err != nil {
			return err
		}

		b.raw("</header>")
		b.open("main", attrs{kv("class", "panes")})
		b.open("section", attrs{kv("class", "editor")})
		b.element("textarea", attrs{
			kv("id", "source"),
			kv("spellcheck", "false"),
			kv("aria-label", "DreamQL source"),
			kv("data-bind:source", true),
			kv("data-on:input", "@post('/source')"),
		}, data.Snapshot.Source)
		if err := b.flush(ctx, w); err != nil {
			return err
		}
		if err := SourceHighlight(data.Snapshot.Source).Render(ctx, w); err != nil {
			return err
		}
		b.raw("</section>")
		if err := b.flush(ctx, w); err != nil {
			return err
		}
		if err := OutputPane(data.Output).Render(ctx, w); err != nil {
			return err
		}
		b.raw("</main></body></html>")
		return b.flush(ctx, w)
	})
}

// ModeBar renders one button per output mode.
func ModeBar(current session.OutputMode) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := &builder{}
		b.open("nav", attrs{kv("id", ModesID), kv("class", "modes")})
		for _, mode := range session.AllModes() {
			a := attrs{kv("type", "button")}
			if mode == current {
				a = append(a, kv("class", "active"), kv("aria-pressed", "true"))
			}
			a = append(a, kv("data-on:click", fmt.Sprintf("@post('/mode/%s')", mode)))
			b.element("button", a, view.ModeLabel(mode))
		}
		b.raw("</nav>")
		return b.flush(ctx, w)
	})
}

// Status renders the backend readiness indicator.
func Status(snap session.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		label := snap.Readiness.String()
		a := attrs{
			kv("id", StatusID),
			kv("class", "status status--"+strings.ReplaceAll(label, " ", "-")),
		}
		if snap.Readiness == backend.Failed && snap.InitError != "" {
			a = append(a, kv("title", snap.InitError))
		}

		b := &builder{}
		b.element("span", a, "compiler "+label)
		return b.flush(ctx, w)
	})
}

// OutputPane renders the output with highlighted segments.
func OutputPane(out view.Output) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := &builder{}
		b.open("pre", attrs{
			kv("id", OutputID),
			kv("class", "output output--"+string(out.Kind)),
			kv("data-language", out.Language),
			kv("data-mode", out.Mode.String()),
		})
		b.raw("<code>")
		if len(out.Segments) == 0 {
			b.text(out.Text)
		}
		b.segments(out.Segments)
		b.raw("</code></pre>")
		return b.flush(ctx, w)
	})
}

// SourceHighlight renders a read-only, highlighted copy of the document.
func SourceHighlight(source string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := &builder{}
		b.open("pre", attrs{
			kv("id", SourceHighlightID),
			kv("class", "source-highlight"),
			kv("data-language", highlight.LangDreamQL),
			kv("aria-hidden", "true"),
		})
		b.raw("<code>")
		b.segments(highlight.Highlight(highlight.LangDreamQL, source))
		b.raw("</code></pre>")
		return b.flush(ctx, w)
	})
}

// builder accumulates HTML. Dynamic values only enter through open,
// element, text and segments, which escape them.
type builder struct {
	sb strings.Builder
}

func (b *builder) raw(s string) {
	b.sb.WriteString(s)
}

func (b *builder) text(s string) {
	b.sb.WriteString(templ.EscapeString(s))
}

// open writes a start tag with escaped attributes.
func (b *builder) open(tag string, a templ.Attributer) {
	b.sb.WriteString("<" + tag)
	if a != nil {
		// Writes to a strings.Builder cannot fail.
		_ = templ.RenderAttributes(context.Background(), &b.sb, a)
	}
	b.sb.WriteString(">")
}

// element writes a complete element with escaped text content.
func (b *builder) element(tag string, a templ.Attributer, content string) {
	b.open(tag, a)
	b.text(content)
	b.sb.WriteString("</" + tag + ">")
}

func (b *builder) segments(segs []highlight.Segment) {
	for _, seg := range segs {
		if seg.Kind == highlight.Plain {
			b.text(seg.Text)
			continue
		}
		b.element("span", attrs{kv("class", "tok-"+string(seg.Kind))}, seg.Text)
	}
}

func (b *builder) flush(ctx context.Context, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := io.WriteString(w, b.sb.String())
	b.sb.Reset()
	return err
}
