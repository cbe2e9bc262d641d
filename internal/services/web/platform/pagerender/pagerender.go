// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/pickarick/internal/services/web/platform/httpx"
	webtemplates "github.com/louisbranch/pickarick/internal/services/web/templates"
)

// Shell carries the document-level settings shared by every full page.
type Shell struct {
	Presets []string
	HTMXSrc string
}

// Page describes a module page response for both full-page and HTMX flows.
type Page struct {
	Title      string
	StatusCode int
	Lang       string
	Loc        webtemplates.Localizer
	Fragment   templ.Component
}

// WritePage writes the fragment alone for HTMX requests and inside the
// document layout otherwise. Rendering is buffered so a failed render never
// leaves a partial body behind a success status.
func WritePage(w http.ResponseWriter, r *http.Request, shell Shell, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = templ.NopComponent
	}

	ctx := httpx.RequestContext(r)
	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := fragment.Render(ctx, &buf); err != nil {
			return err
		}
	} else {
		path, query := "", ""
		if r != nil && r.URL != nil {
			path = r.URL.Path
			query = r.URL.RawQuery
		}
		layout := webtemplates.Layout(webtemplates.LayoutOptions{
			Title:        page.Title,
			Lang:         page.Lang,
			Loc:          page.Loc,
			Presets:      shell.Presets,
			HTMXSrc:      shell.HTMXSrc,
			CurrentPath:  path,
			CurrentQuery: query,
		})
		if err := layout.Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
			return err
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}
