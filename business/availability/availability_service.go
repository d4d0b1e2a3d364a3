package availability

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"myStreamSaver/domain"
	"myStreamSaver/pkg/logger"
	"myStreamSaver/pkg/metrics"
)

const (
	availabilityCacheTTL = 7 * 24 * time.Hour
	maxParallelFetches   = 8
)

// ErrQuotaExceeded means the external API budget for the month is spent.
var ErrQuotaExceeded = errors.New("streaming api quota exceeded for this month")

// ErrDailyLimitReached means today's self-imposed safety budget is spent; the
// monthly quota may still have headroom.
var ErrDailyLimitReached = errors.New("streaming api daily limit reached")

// ErrAllTitlesFailed means not a single title's availability could be
// resolved; partial failures are tolerated, total failure is not.
var ErrAllTitlesFailed = errors.New("failed to fetch availability for every title")

// ---- Repository interfaces ----

type Fetcher interface {
	FetchTitle(ctx context.Context, titleID string) (domain.TitleAvailability, error)
}

type Cache interface {
	GetAvailability(ctx context.Context, titleID string) (*domain.TitleAvailability, error)
	SetAvailability(ctx context.Context, avail domain.TitleAvailability, ttl time.Duration) error
}

type UsageRepository interface {
	MonthlyUsage(ctx context.Context) (int, error)
	DailyUsage(ctx context.Context) (int, error)
	IncrementUsage(ctx context.Context) error
}

// ---- Usecase / Service ----

type AvailabilityService struct {
	fetcher      Fetcher
	cache        Cache
	usage        UsageRepository
	monthlyQuota int
	dailyLimit   int
}

func NewAvailabilityService(fetcher Fetcher, cache Cache, usage UsageRepository, monthlyQuota, dailyLimit int) *AvailabilityService {
	return &AvailabilityService{
		fetcher:      fetcher,
		cache:        cache,
		usage:        usage,
		monthlyQuota: monthlyQuota,
		dailyLimit:   dailyLimit,
	}
}

// GetAvailabilityBatch resolves availability for every requested title,
// cache-first with bounded parallel API fetches. A title that cannot be
// resolved is left out of the map (the optimizer then treats it as having no
// covering service); the call fails only when every title fails.
func (s *AvailabilityService) GetAvailabilityBatch(
	ctx context.Context,
	titleIDs []string,
) (map[string]domain.TitleAvailability, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	logger.Info("availability_batch", "title_count", len(titleIDs))

	type result struct {
		avail domain.TitleAvailability
		err   error
	}

	results := make([]result, len(titleIDs))
	sem := make(chan struct{}, maxParallelFetches)
	var wg sync.WaitGroup

	for i, titleID := range titleIDs {
		wg.Add(1)
		go func(i int, titleID string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			avail, err := s.fetchSingle(ctx, titleID)
			results[i] = result{avail: avail, err: err}
		}(i, titleID)
	}
	wg.Wait()

	out := make(map[string]domain.TitleAvailability, len(titleIDs))
	failed := 0
	for i, res := range results {
		if res.err != nil {
			failed++
			logger.Warn("availability_fetch_failed", "title_id", titleIDs[i], "error", res.err)
			continue
		}
		out[res.avail.TitleID] = res.avail
	}

	if failed > 0 {
		logger.Warn("availability_partial_failure",
			"success_count", len(out),
			"error_count", failed,
		)
	}

	if len(out) == 0 && failed > 0 {
		for _, res := range results {
			if errors.Is(res.err, ErrQuotaExceeded) || errors.Is(res.err, ErrDailyLimitReached) {
				return nil, res.err
			}
		}
		return nil, ErrAllTitlesFailed
	}

	return out, nil
}

// fetchSingle resolves one title, cache first. Cache failures degrade to an
// API call rather than failing the title.
func (s *AvailabilityService) fetchSingle(ctx context.Context, titleID string) (domain.TitleAvailability, error) {
	cached, err := s.cache.GetAvailability(ctx, titleID)
	if err != nil {
		logger.Warn("availability_cache_get_failed", "title_id", titleID, "error", err)
	}
	if cached != nil {
		logger.Debug("availability_cache_hit", "title_id", titleID)
		metrics.AvailabilityCacheHits.Inc()
		return *cached, nil
	}

	logger.Debug("availability_cache_miss", "title_id", titleID)
	metrics.AvailabilityCacheMisses.Inc()

	if err := s.checkQuota(ctx); err != nil {
		return domain.TitleAvailability{}, err
	}

	avail, err := s.fetcher.FetchTitle(ctx, titleID)
	if err != nil {
		return domain.TitleAvailability{}, fmt.Errorf("failed to fetch availability: %w", err)
	}

	if err := s.usage.IncrementUsage(ctx); err != nil {
		logger.Warn("availability_usage_increment_failed", "error", err)
	}

	if err := s.cache.SetAvailability(ctx, avail, availabilityCacheTTL); err != nil {
		logger.Warn("availability_cache_set_failed", "title_id", titleID, "error", err)
	}

	return avail, nil
}

func (s *AvailabilityService) checkQuota(ctx context.Context) error {
	if s.usage == nil || s.monthlyQuota <= 0 {
		return nil
	}

	count, err := s.usage.MonthlyUsage(ctx)
	if err != nil {
		logger.Warn("availability_quota_check_failed", "error", err)
		return nil
	}

	if count >= s.monthlyQuota {
		logger.Error("availability_quota_exceeded", "current", count, "quota", s.monthlyQuota)
		return ErrQuotaExceeded
	}

	if float64(count)/float64(s.monthlyQuota) > 0.8 {
		logger.Warn("availability_quota_high",
			"current", count,
			"quota", s.monthlyQuota,
			"remaining", s.monthlyQuota-count,
		)
	}

	if s.dailyLimit > 0 {
		daily, err := s.usage.DailyUsage(ctx)
		if err != nil {
			logger.Warn("availability_daily_check_failed", "error", err)
			return nil
		}
		if daily >= s.dailyLimit {
			logger.Error("availability_daily_limit_reached", "current", daily, "limit", s.dailyLimit)
			return ErrDailyLimitReached
		}
	}

	return nil
}
