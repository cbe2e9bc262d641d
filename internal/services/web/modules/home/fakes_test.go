package home

import (
	"context"
	"sync"

	"github.com/louisbranch/pickarick/internal/graphql"
)

type fakeGateway struct {
	mu         sync.Mutex
	characters []Character
	err        error
	filters    []Filter
}

func (f *fakeGateway) ListCharacters(_ context.Context, filter Filter) ([]Character, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	return f.characters, nil
}

func (f *fakeGateway) calls() []Filter {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Filter, len(f.filters))
	copy(out, f.filters)
	return out
}

type fakeQuerier struct {
	resp graphql.Response
	err  error
	last graphql.Request
}

func (f *fakeQuerier) Query(_ context.Context, req graphql.Request) (graphql.Response, error) {
	f.last = req
	return f.resp, f.err
}

type countingObserver struct {
	mu    sync.Mutex
	count int
}

func (c *countingObserver) ObserveCounterIncrement() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
}

func (c *countingObserver) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func sampleCharacters() []Character {
	return []Character{
		{Name: "Rick Sanchez", Image: "https://rickandmortyapi.com/api/character/avatar/1.jpeg", Location: Location{Name: "Citadel of Ricks"}},
		{Name: "Cop Rick", Image: "https://rickandmortyapi.com/api/character/avatar/74.jpeg", Location: Location{Name: "Citadel of Ricks"}},
		{Name: "Cowboy Rick", Image: "https://rickandmortyapi.com/api/character/avatar/80.jpeg", Location: Location{Name: "Citadel of Ricks"}},
	}
}
