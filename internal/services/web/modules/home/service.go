package home

import (
	"context"
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/pickarick/internal/services/web/platform/errors"
	"github.com/louisbranch/pickarick/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/pickarick/internal/services/web/templates"
)

type service struct {
	gateway CharacterGateway
}

func newService(gateway CharacterGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

// loadGrid fetches characters and maps them to the grid view. Zero results
// produce an empty grid; upstream failures become typed errors.
func (s service) loadGrid(ctx context.Context, filter Filter) (webtemplates.GridView, error) {
	characters, err := s.gateway.ListCharacters(ctx, filter.Normalize())
	if err != nil {
		return webtemplates.GridView{}, classifyGatewayError(err)
	}
	view := webtemplates.GridView{Characters: make([]webtemplates.CharacterView, 0, len(characters))}
	for _, character := range characters {
		view.Characters = append(view.Characters, webtemplates.CharacterView{
			Name:     character.Name,
			Image:    character.Image,
			Location: character.Location.Name,
		})
	}
	return view, nil
}

func classifyGatewayError(err error) error {
	var appErr apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.KindTimeout, "error.timeout", err)
	}
	return apperrors.Wrap(apperrors.KindUnavailable, "error.unavailable", err)
}

// parseFilter reads optional name/page overrides. Absent or blank values keep defaults.
func parseFilter(values url.Values, defaults Filter) (Filter, error) {
	defaults = defaults.Normalize()
	filter := defaults
	if name := strings.TrimSpace(values.Get(routepath.NameQueryKey)); name != "" {
		filter.Name = name
	}
	if raw := strings.TrimSpace(values.Get(routepath.PageQueryKey)); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Filter{}, apperrors.EK(apperrors.KindInvalidInput, "error.invalid_input", "page must be a positive integer")
		}
		filter.Page = page
	}
	return filter, nil
}

// nextCount returns the incremented counter. Malformed or negative input
// counts as zero.
func nextCount(raw string) int {
	count, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || count < 0 {
		count = 0
	}
	if count == math.MaxInt {
		return count
	}
	return count + 1
}
