package titlesearch

import (
	"context"
	"errors"
	"testing"
	"time"

	"myStreamSaver/domain"
)

type fakeSearcher struct {
	calls   int
	results []domain.Title
	err     error
}

func (f *fakeSearcher) SearchTitles(ctx context.Context, query string) ([]domain.Title, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

type fakeSearchCache struct {
	entries map[string][]domain.Title
	sets    int
}

func (c *fakeSearchCache) GetSearchResults(ctx context.Context, query string) ([]domain.Title, error) {
	if titles, ok := c.entries[query]; ok {
		return titles, nil
	}
	return nil, nil
}

func (c *fakeSearchCache) SetSearchResults(ctx context.Context, query string, titles []domain.Title, ttl time.Duration) error {
	if c.entries == nil {
		c.entries = make(map[string][]domain.Title)
	}
	c.entries[query] = titles
	c.sets++
	return nil
}

func TestSearchTitlesEmptyQuery(t *testing.T) {
	s := NewSearchService(&fakeSearcher{}, &fakeSearchCache{})

	for _, query := range []string{"", "   "} {
		if _, err := s.SearchTitles(context.Background(), query); !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("query %q: expected ErrEmptyQuery, got %v", query, err)
		}
	}
}

func TestSearchTitlesCachesResults(t *testing.T) {
	searcher := &fakeSearcher{results: []domain.Title{
		{ID: "tt1375666", Title: "Inception", ShowType: domain.ShowTypeMovie},
	}}
	cache := &fakeSearchCache{}

	s := NewSearchService(searcher, cache)

	got, err := s.SearchTitles(context.Background(), "inception")
	if err != nil {
		t.Fatalf("SearchTitles returned error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Inception" {
		t.Errorf("unexpected results: %+v", got)
	}
	if cache.sets != 1 {
		t.Errorf("expected 1 cache write, got %d", cache.sets)
	}

	// second identical search is served from the cache
	if _, err := s.SearchTitles(context.Background(), "inception"); err != nil {
		t.Fatalf("cached SearchTitles returned error: %v", err)
	}
	if searcher.calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", searcher.calls)
	}
}

func TestSearchTitlesUpstreamError(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("upstream 502")}
	s := NewSearchService(searcher, &fakeSearchCache{})

	if _, err := s.SearchTitles(context.Background(), "dune"); err == nil {
		t.Fatal("expected upstream error")
	}
}

func TestSearchTitlesTrimsQuery(t *testing.T) {
	searcher := &fakeSearcher{results: []domain.Title{{ID: "tt1", Title: "Dune"}}}
	cache := &fakeSearchCache{}
	s := NewSearchService(searcher, cache)

	if _, err := s.SearchTitles(context.Background(), "  dune  "); err != nil {
		t.Fatalf("SearchTitles returned error: %v", err)
	}
	if _, ok := cache.entries["dune"]; !ok {
		t.Errorf("expected trimmed query as cache key, have %v", cache.entries)
	}
}
