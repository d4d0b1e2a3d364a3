package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"myStreamSaver/domain"
)

type CacheRepository struct {
	client *redis.Client
}

func NewCacheRepository(client *redis.Client) *CacheRepository {
	return &CacheRepository{
		client: client,
	}
}

// GetAvailability returns the cached availability for a title, or nil on a
// cache miss.
func (r *CacheRepository) GetAvailability(ctx context.Context, titleID string) (*domain.TitleAvailability, error) {
	// key format: "avail:{title_id}"
	key := fmt.Sprintf("avail:%s", titleID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get availability from Redis: %w", err)
	}

	var avail domain.TitleAvailability
	err = json.Unmarshal([]byte(val), &avail)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal availability: %w", err)
	}

	return &avail, nil
}

func (r *CacheRepository) SetAvailability(ctx context.Context, avail domain.TitleAvailability, ttl time.Duration) error {
	key := fmt.Sprintf("avail:%s", avail.TitleID)

	jsonData, err := json.Marshal(avail)
	if err != nil {
		return fmt.Errorf("failed to marshal availability: %w", err)
	}

	err = r.client.Set(ctx, key, jsonData, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to store availability in Redis: %w", err)
	}

	return nil
}

// GetSearchResults returns cached title search results, or nil on a miss.
// Queries are lowercased so "Dune" and "dune" share an entry.
func (r *CacheRepository) GetSearchResults(ctx context.Context, query string) ([]domain.Title, error) {
	key := fmt.Sprintf("search:%s", strings.ToLower(query))

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get search results from Redis: %w", err)
	}

	var titles []domain.Title
	err = json.Unmarshal([]byte(val), &titles)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal search results: %w", err)
	}

	return titles, nil
}

func (r *CacheRepository) SetSearchResults(ctx context.Context, query string, titles []domain.Title, ttl time.Duration) error {
	key := fmt.Sprintf("search:%s", strings.ToLower(query))

	jsonData, err := json.Marshal(titles)
	if err != nil {
		return fmt.Errorf("failed to marshal search results: %w", err)
	}

	err = r.client.Set(ctx, key, jsonData, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to store search results in Redis: %w", err)
	}

	return nil
}
