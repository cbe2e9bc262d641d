package home

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/pickarick/internal/graphql"
	apperrors "github.com/louisbranch/pickarick/internal/services/web/platform/errors"
)

const (
	// DefaultName is the character name filter used when none is requested.
	DefaultName = "rick"
	// DefaultPage is the result page used when none is requested.
	DefaultPage = 4
)

// CharactersQuery requests one page of characters filtered by name.
const CharactersQuery = `query Characters($name: String, $page: Int) {
  characters(filter: {name: $name}, page: $page) {
    results {
      name
      image
      location {
        name
      }
    }
  }
}`

// Filter selects which characters to list.
type Filter struct {
	Name string
	Page int
}

// Normalize fills defaults for blank name and non-positive page.
func (f Filter) Normalize() Filter {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		f.Name = DefaultName
	}
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	return f
}

// Location is where a character was last seen.
type Location struct {
	Name string `json:"name"`
}

// Character is one entry of the characters listing.
type Character struct {
	Name     string   `json:"name"`
	Image    string   `json:"image"`
	Location Location `json:"location"`
}

// CharacterGateway lists characters from the upstream API.
type CharacterGateway interface {
	ListCharacters(context.Context, Filter) ([]Character, error)
}

// Querier is the GraphQL surface the gateway needs.
type Querier interface {
	Query(context.Context, graphql.Request) (graphql.Response, error)
}

type graphqlGateway struct {
	client Querier
}

// NewGraphQLGateway builds a CharacterGateway backed by client.
func NewGraphQLGateway(client Querier) CharacterGateway {
	if client == nil {
		return unavailableGateway{}
	}
	return graphqlGateway{client: client}
}

// NewRequest builds the characters GraphQL request for filter.
func NewRequest(filter Filter) graphql.Request {
	filter = filter.Normalize()
	return graphql.Request{
		Query:         CharactersQuery,
		OperationName: "Characters",
		Variables: map[string]any{
			"name": filter.Name,
			"page": filter.Page,
		},
	}
}

func (g graphqlGateway) ListCharacters(ctx context.Context, filter Filter) ([]Character, error) {
	resp, err := g.client.Query(ctx, NewRequest(filter))
	if err != nil {
		return nil, err
	}
	var characters []Character
	if err := resp.Decode("characters.results", &characters); err != nil {
		if errors.Is(err, graphql.ErrNoData) {
			return []Character{}, nil
		}
		return nil, fmt.Errorf("decode characters: %w", err)
	}
	if characters == nil {
		characters = []Character{}
	}
	return characters, nil
}

type unavailableGateway struct{}

func (unavailableGateway) ListCharacters(context.Context, Filter) ([]Character, error) {
	return nil, apperrors.E(apperrors.KindUnavailable, "character gateway is not configured")
}
