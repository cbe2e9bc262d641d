package home

import (
	"net/http"

	"github.com/louisbranch/pickarick/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/pickarick/internal/services/web/platform/i18n"
	"github.com/louisbranch/pickarick/internal/services/web/platform/pagerender"
	"github.com/louisbranch/pickarick/internal/services/web/platform/weberror"
	"github.com/louisbranch/pickarick/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/pickarick/internal/services/web/templates"
	"go.uber.org/zap"
)

type handlers struct {
	service  service
	options  Options
	defaults Filter
}

func newHandlers(s service, options Options) handlers {
	if options.Observer == nil {
		options.Observer = nopObserver{}
	}
	return handlers{service: s, options: options, defaults: options.Defaults.Normalize()}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	loc, tag := webi18n.ResolveLocalizer(w, r)
	view := webtemplates.HomeView{
		GridSrc: routepath.CharactersQuery(h.defaults.Name, h.defaults.Page),
	}
	if h.options.SSR {
		grid, err := h.service.loadGrid(httpx.RequestContext(r), h.defaults)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		view.Grid = &grid
	}
	h.writePage(w, r, pagerender.Page{
		Title:    webtemplates.T(loc, "core.title"),
		Lang:     tag.String(),
		Loc:      loc,
		Fragment: webtemplates.HomePage(view, loc),
	})
}

func (h handlers) handleCharacters(w http.ResponseWriter, r *http.Request) {
	loc, tag := webi18n.ResolveLocalizer(w, r)
	filter, err := parseFilter(r.URL.Query(), h.defaults)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	grid, err := h.service.loadGrid(httpx.RequestContext(r), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writePage(w, r, pagerender.Page{
		Title:    webtemplates.T(loc, "grid.heading"),
		Lang:     tag.String(),
		Loc:      loc,
		Fragment: webtemplates.CharacterGrid(grid, loc),
	})
}

func (h handlers) handleCounter(w http.ResponseWriter, r *http.Request) {
	loc, _ := webi18n.ResolveLocalizer(w, r)
	// Form parse errors leave the value empty, which counts as zero.
	_ = r.ParseForm()
	count := nextCount(r.PostFormValue(routepath.CountFormField))
	h.options.Observer.ObserveCounterIncrement()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := webtemplates.Counter(count, loc).Render(httpx.RequestContext(r), w); err != nil {
		h.logger().Error("render counter", zap.Error(err))
	}
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.WritePage(w, r, h.options.Shell, page); err != nil {
		h.writeError(w, r, err)
	}
}

func (h handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, h.options.Shell, h.logger())
}

func (h handlers) logger() *zap.Logger {
	if h.options.Logger == nil {
		return zap.NewNop()
	}
	return h.options.Logger
}
