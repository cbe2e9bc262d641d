package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/pickarick/internal/services/web/routepath"
)

const (
	// CounterID is the DOM id of the swappable counter fragment.
	CounterID = "counter"
	// CounterInputID is the hidden input carrying the current count.
	CounterInputID = "counter-value"
)

// HomeView describes the home page body.
type HomeView struct {
	Count int
	// Grid is rendered inline when set; otherwise GridSrc is loaded lazily.
	Grid    *GridView
	GridSrc string
}

// HomePage renders the full-viewport page container.
// Clicks anywhere inside the container post the current count once.
func HomePage(view HomeView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw("<main class=\"h-screen w-screen text-white text-8xl font-black text-center pt-40 justify-center items-center bg-gray-600 flex-rows\"")
		h.attr("hx-post", routepath.Counter)
		h.raw(" hx-trigger=\"click\"")
		h.attr("hx-target", "#"+CounterID)
		h.raw(" hx-swap=\"outerHTML\"")
		h.attr("hx-include", "#"+CounterInputID)
		h.raw(" hx-sync=\"this:queue all\" hx-disinherit=\"*\"><div>")
		h.text(T(loc, "home.heading"))
		h.raw("</div>")
		if h.err != nil {
			return h.err
		}
		if err := CounterButton(loc).Render(ctx, w); err != nil {
			return err
		}
		if err := Counter(view.Count, loc).Render(ctx, w); err != nil {
			return err
		}
		h.raw("<div>")
		h.text(T(loc, "home.tagline"))
		h.raw("</div><div>")
		if h.err != nil {
			return h.err
		}
		var grid templ.Component
		if view.Grid != nil {
			grid = CharacterGrid(*view.Grid, loc)
		} else {
			grid = GridLoader(view.GridSrc, loc)
		}
		if err := grid.Render(ctx, w); err != nil {
			return err
		}
		if err := Rickton(loc).Render(ctx, w); err != nil {
			return err
		}
		h.raw("</div></main>")
		return h.err
	})
}

// CounterButton renders the pill button. Its clicks bubble to the page
// container, so it carries no request attributes of its own.
func CounterButton(loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw("<button type=\"button\" class=\"rounded-full bg-white text-gray-400 font-semibold px-4 py-2\">")
		h.text(T(loc, "home.button"))
		h.raw("</button>")
		return h.err
	})
}

// Counter renders the counter value and the hidden input that carries it.
func Counter(count int, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw("<div")
		h.attr("id", CounterID)
		h.raw(" aria-live=\"polite\"><input type=\"hidden\"")
		h.attr("id", CounterInputID)
		h.attr("name", routepath.CountFormField)
		h.raw(" value=\"")
		h.int(count)
		h.raw("\"><span data-count>")
		// Formatted as a string so the printer never groups digits.
		h.text(T(loc, "home.counter", strconv.Itoa(count)))
		h.raw("</span></div>")
		return h.err
	})
}
