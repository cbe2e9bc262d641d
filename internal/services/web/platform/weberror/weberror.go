// Package weberror renders shared error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/pickarick/internal/services/web/platform/errors"
	webi18n "github.com/louisbranch/pickarick/internal/services/web/platform/i18n"
	"github.com/louisbranch/pickarick/internal/services/web/platform/pagerender"
	webtemplates "github.com/louisbranch/pickarick/internal/services/web/templates"
	"go.uber.org/zap"
)

// ShouldRenderErrorPage reports whether status should use the error-page UX.
func ShouldRenderErrorPage(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
		if key := defaultKey(apperrors.HTTPStatus(err)); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" && localized != key {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

func defaultKey(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return "error.invalid_input"
	case http.StatusNotFound:
		return "error.not_found"
	case http.StatusServiceUnavailable:
		return "error.unavailable"
	case http.StatusGatewayTimeout:
		return "error.timeout"
	default:
		return "error.internal"
	}
}

// WriteModuleError writes a localized error response: an error page for
// 404 and 5xx, plain text for other client errors.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, shell pagerender.Shell, logger *zap.Logger) {
	if w == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	statusCode := apperrors.HTTPStatus(err)
	loc, tag := webi18n.ResolveLocalizer(w, r)
	message := PublicMessage(loc, err)

	if !ShouldRenderErrorPage(statusCode) {
		http.Error(w, message, statusCode)
		return
	}
	logger.Warn("module error",
		zap.Int("status", statusCode),
		zap.String("kind", string(apperrors.KindOf(err))),
		zap.Error(err),
	)

	page := pagerender.Page{
		Title:      webtemplates.ErrorPageTitle(statusCode, loc),
		StatusCode: statusCode,
		Lang:       tag.String(),
		Loc:        loc,
		Fragment:   webtemplates.ErrorState(statusCode, message, loc),
	}
	if renderErr := pagerender.WritePage(w, r, shell, page); renderErr != nil {
		logger.Error("render error page", zap.Error(renderErr))
		http.Error(w, message, statusCode)
	}
}

// WriteNotFound writes the 404 page.
func WriteNotFound(w http.ResponseWriter, r *http.Request, shell pagerender.Shell) {
	if w == nil {
		return
	}
	loc, tag := webi18n.ResolveLocalizer(w, r)
	page := pagerender.Page{
		Title:      webtemplates.ErrorPageTitle(http.StatusNotFound, loc),
		StatusCode: http.StatusNotFound,
		Lang:       tag.String(),
		Loc:        loc,
		Fragment:   webtemplates.NotFound(loc),
	}
	if err := pagerender.WritePage(w, r, shell, page); err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	}
}
