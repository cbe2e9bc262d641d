package templates

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/pickarick/internal/services/web/routepath"
)

// ErrorPageTitle returns the browser page title for error pages.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	return T(loc, "error.title", normalizeErrorStatus(statusCode))
}

// ErrorState renders an error panel with a localized message.
func ErrorState(statusCode int, message string, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		statusCode = normalizeErrorStatus(statusCode)
		h.raw("<section")
		h.attr("id", GridSectionID)
		h.raw(" role=\"alert\" class=\"bg-gray-500 text-white text-center p-8\"")
		h.attr("data-status", strconv.Itoa(statusCode))
		h.raw("><h2 class=\"text-4xl font-black\">")
		h.text(ErrorPageTitle(statusCode, loc))
		h.raw("</h2><p class=\"text-2xl\">")
		h.text(message)
		h.raw("</p><a")
		h.url("href", routepath.Root)
		h.raw(">")
		h.text(T(loc, "error.back_home"))
		h.raw("</a></section>")
		return h.err
	})
}

// NotFound renders the 404 screen: the status centered on a gray background.
func NotFound(loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw("<main class=\"h-screen w-screen flex items-center justify-center bg-gray-600 text-white text-8xl font-black\">")
		h.raw("<div")
		h.attr("title", T(loc, "error.not_found"))
		h.raw(">404</div></main>")
		return h.err
	})
}

func normalizeErrorStatus(statusCode int) int {
	if statusCode < http.StatusBadRequest || statusCode > 599 {
		return http.StatusInternalServerError
	}
	return statusCode
}
