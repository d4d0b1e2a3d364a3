package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// UsageRepository tracks outbound streaming API calls against the plan's
// monthly budget. Counters expire on their own so stale months never pile up.
type UsageRepository struct {
	client *redis.Client
	now    func() time.Time
}

func NewUsageRepository(client *redis.Client) *UsageRepository {
	return &UsageRepository{
		client: client,
		now:    time.Now,
	}
}

// MonthlyUsage returns the number of API calls made this calendar month.
// A missing counter means zero calls.
func (r *UsageRepository) MonthlyUsage(ctx context.Context) (int, error) {
	key := fmt.Sprintf("api_usage:%s", r.now().UTC().Format("2006-01"))

	count, err := r.client.Get(ctx, key).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get monthly usage: %w", err)
	}

	return count, nil
}

// DailyUsage returns the number of API calls made today.
func (r *UsageRepository) DailyUsage(ctx context.Context) (int, error) {
	key := fmt.Sprintf("api_usage:daily:%s", r.now().UTC().Format("2006-01-02"))

	count, err := r.client.Get(ctx, key).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get daily usage: %w", err)
	}

	return count, nil
}

// IncrementUsage bumps both the monthly and the daily counter. TTLs are set
// generously past the period boundary so an in-flight increment at midnight
// never resurrects an expired key with no TTL.
func (r *UsageRepository) IncrementUsage(ctx context.Context) error {
	ts := r.now().UTC()
	monthKey := fmt.Sprintf("api_usage:%s", ts.Format("2006-01"))
	dayKey := fmt.Sprintf("api_usage:daily:%s", ts.Format("2006-01-02"))

	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, monthKey)
	pipe.Expire(ctx, monthKey, 35*24*time.Hour)
	pipe.Incr(ctx, dayKey)
	pipe.Expire(ctx, dayKey, 48*time.Hour)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment api usage: %w", err)
	}

	return nil
}
