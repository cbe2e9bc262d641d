package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/pickarick/internal/services/web/routepath"
)

// GridSectionID is the DOM id shared by the grid and its lazy loader.
const GridSectionID = "character-grid"

// CharacterView is the card-level view of one character.
type CharacterView struct {
	Name     string
	Image    string
	Location string
}

// GridView describes one rendered character grid.
type GridView struct {
	Characters []CharacterView
}

// CharacterGrid renders one card per character, or an empty-state message.
func CharacterGrid(view GridView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw("<section")
		h.attr("id", GridSectionID)
		h.raw(" class=\"bg-gray-500 h-full font-black text-white text-4xl flex items-center justify-center flex-col\">")
		h.raw("<div class=\"flex flex-wrap items-center mx-auto\" data-grid>")
		if h.err != nil {
			return h.err
		}
		for _, character := range view.Characters {
			if err := CharacterCard(character).Render(ctx, w); err != nil {
				return err
			}
		}
		h.raw("</div>")
		if len(view.Characters) == 0 {
			h.raw("<p class=\"text-2xl\" data-grid-empty>")
			h.text(T(loc, "grid.empty"))
			h.raw("</p>")
		}
		h.raw("</section>")
		return h.err
	})
}

// CharacterCard renders a single character card.
func CharacterCard(character CharacterView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw("<article class=\"w-full max-w-sm bg-white m-4 rounded-lg shadow-md\" data-card>")
		h.raw("<img class=\"p-8 rounded-t-lg\"")
		h.url("src", character.Image)
		h.attr("alt", character.Name)
		h.raw(" loading=\"lazy\"><div class=\"px-5 pb-5\"><h5 class=\"text-2xl font-black tracking-tight text-gray-900\">")
		h.text(character.Name)
		h.raw("</h5>")
		if character.Location != "" {
			h.raw("<p class=\"text-base font-semibold text-gray-400\">")
			h.text(character.Location)
			h.raw("</p>")
		}
		h.raw("</div></article>")
		return h.err
	})
}

// GridLoader renders a placeholder that swaps itself for the grid fragment on load.
func GridLoader(src string, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		if src == "" {
			src = routepath.Characters
		}
		h.raw("<section")
		h.attr("id", GridSectionID)
		h.raw(" class=\"bg-gray-500 h-full text-white text-4xl flex items-center justify-center\"")
		h.url("hx-get", src)
		h.raw(" hx-trigger=\"load\" hx-target=\"this\" hx-swap=\"outerHTML\" aria-busy=\"true\"><p>")
		h.text(T(loc, "grid.loading"))
		h.raw("</p></section>")
		return h.err
	})
}

// Rickton renders the small white tile shown under the grid.
func Rickton(loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw("<div class=\"bg-white text-black\"")
		h.attr("title", T(loc, "grid.tile"))
		h.raw(">H</div>")
		return h.err
	})
}
