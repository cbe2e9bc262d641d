package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	webi18n "github.com/louisbranch/pickarick/internal/services/web/platform/i18n"
	"github.com/louisbranch/pickarick/internal/services/web/routepath"
)

// DefaultHTMXSrc is the HTMX bundle loaded by every page.
const DefaultHTMXSrc = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// LayoutOptions configures the document shell.
type LayoutOptions struct {
	Title        string
	Lang         string
	Loc          Localizer
	Presets      []string
	CurrentPath  string
	CurrentQuery string
	HTMXSrc      string
	BodyClass    string
}

// Layout renders a full HTML document around the children in ctx.
func Layout(opts LayoutOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		lang := strings.TrimSpace(opts.Lang)
		if lang == "" {
			lang = webi18n.Default().String()
		}
		title := strings.TrimSpace(opts.Title)
		if title == "" {
			title = T(opts.Loc, "core.title")
		}
		htmxSrc := strings.TrimSpace(opts.HTMXSrc)
		if htmxSrc == "" {
			htmxSrc = DefaultHTMXSrc
		}

		h.raw("<!doctype html><html")
		h.attr("lang", lang)
		h.raw("><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>")
		h.text(title)
		h.raw("</title>")
		for _, preset := range opts.Presets {
			h.raw("<link rel=\"stylesheet\"")
			h.url("href", routepath.Preset(preset))
			h.raw(">")
		}
		h.raw("<script defer")
		h.url("src", htmxSrc)
		h.raw("></script><script defer")
		h.url("src", routepath.AppScript)
		h.raw("></script></head><body")
		if opts.BodyClass != "" {
			h.attr("class", opts.BodyClass)
		}
		h.raw(">")
		if h.err != nil {
			return h.err
		}
		if err := languageNav(opts).Render(ctx, w); err != nil {
			return err
		}
		if err := templ.GetChildren(ctx).Render(templ.ClearChildren(ctx), w); err != nil {
			return err
		}
		h.raw("</body></html>")
		return h.err
	})
}

func languageNav(opts LayoutOptions) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		active, _ := webi18n.ParseTag(opts.Lang)
		h.raw("<nav class=\"lang-nav\"")
		h.attr("aria-label", T(opts.Loc, "core.language"))
		h.raw(">")
		for _, option := range webi18n.LanguageOptions(opts.Loc, active) {
			h.raw("<a")
			h.url("href", webi18n.LanguageURL(opts.CurrentPath, opts.CurrentQuery, option.Tag))
			if option.Active {
				h.attr("aria-current", "true")
			}
			h.raw(">")
			h.text(option.Label)
			h.raw("</a>")
		}
		h.raw("</nav>")
		return h.err
	})
}
