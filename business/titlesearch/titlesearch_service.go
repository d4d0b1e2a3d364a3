package titlesearch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"myStreamSaver/domain"
	"myStreamSaver/pkg/logger"
)

const searchCacheTTL = time.Hour

// ErrEmptyQuery is returned when the search query is blank.
var ErrEmptyQuery = errors.New("search query is required")

// ---- Repository interfaces ----

type Searcher interface {
	SearchTitles(ctx context.Context, query string) ([]domain.Title, error)
}

type Cache interface {
	GetSearchResults(ctx context.Context, query string) ([]domain.Title, error)
	SetSearchResults(ctx context.Context, query string, titles []domain.Title, ttl time.Duration) error
}

type searchService struct {
	searcher Searcher
	cache    Cache
}

func NewSearchService(searcher Searcher, cache Cache) *searchService {
	return &searchService{
		searcher: searcher,
		cache:    cache,
	}
}

// SearchTitles returns titles matching the query, cache-first. Results are
// cached for an hour since catalog data moves slowly.
func (s *searchService) SearchTitles(ctx context.Context, query string) ([]domain.Title, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when search titles")
		return nil, fmt.Errorf("context error: %w", err)
	}

	cached, err := s.cache.GetSearchResults(ctx, query)
	if err != nil {
		logger.Warn("search_cache_get_failed", "query", query, "error", err)
	}
	if cached != nil {
		logger.Debug("search_cache_hit", "query", query)
		return cached, nil
	}

	titles, err := s.searcher.SearchTitles(ctx, query)
	if err != nil {
		logger.Error("failed to search titles", err)
		return nil, err
	}

	if err := s.cache.SetSearchResults(ctx, query, titles, searchCacheTTL); err != nil {
		logger.Warn("search_cache_set_failed", "query", query, "error", err)
	}

	logger.Info("title_search", "query", query, "result_count", len(titles))
	return titles, nil
}
