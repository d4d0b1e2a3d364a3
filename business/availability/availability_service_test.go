package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"myStreamSaver/domain"
)

type fakeFetcher struct {
	mu      sync.Mutex
	calls   []string
	fail    map[string]error
	offers  map[string][]domain.ServiceOffer
}

func (f *fakeFetcher) FetchTitle(ctx context.Context, titleID string) (domain.TitleAvailability, error) {
	f.mu.Lock()
	f.calls = append(f.calls, titleID)
	f.mu.Unlock()

	if err, ok := f.fail[titleID]; ok {
		return domain.TitleAvailability{}, err
	}
	return domain.TitleAvailability{
		TitleID:  titleID,
		Offers:   f.offers[titleID],
		CachedAt: time.Now().UTC(),
	}, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]domain.TitleAvailability
	getErr  error
	sets    int
}

func (c *fakeCache) GetAvailability(ctx context.Context, titleID string) (*domain.TitleAvailability, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if avail, ok := c.entries[titleID]; ok {
		return &avail, nil
	}
	return nil, nil
}

func (c *fakeCache) SetAvailability(ctx context.Context, avail domain.TitleAvailability, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]domain.TitleAvailability)
	}
	c.entries[avail.TitleID] = avail
	c.sets++
	return nil
}

type fakeUsage struct {
	mu    sync.Mutex
	count int
	daily int
}

func (u *fakeUsage) MonthlyUsage(ctx context.Context) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.count, nil
}

func (u *fakeUsage) DailyUsage(ctx context.Context) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.daily, nil
}

func (u *fakeUsage) IncrementUsage(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.count++
	u.daily++
	return nil
}

func subOffer(serviceID string) []domain.ServiceOffer {
	return []domain.ServiceOffer{{ServiceID: serviceID, OfferType: domain.OfferSubscription}}
}

func TestGetAvailabilityBatchFetchesAndCaches(t *testing.T) {
	fetcher := &fakeFetcher{offers: map[string][]domain.ServiceOffer{
		"tt1": subOffer("netflix"),
		"tt2": subOffer("hulu"),
	}}
	cache := &fakeCache{}
	usage := &fakeUsage{}

	s := NewAvailabilityService(fetcher, cache, usage, 25000, 800)

	got, err := s.GetAvailabilityBatch(context.Background(), []string{"tt1", "tt2"})
	if err != nil {
		t.Fatalf("GetAvailabilityBatch returned error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if fetcher.callCount() != 2 {
		t.Errorf("expected 2 API calls, got %d", fetcher.callCount())
	}
	if cache.sets != 2 {
		t.Errorf("expected 2 cache writes, got %d", cache.sets)
	}
	if usage.count != 2 {
		t.Errorf("expected usage incremented twice, got %d", usage.count)
	}
}

func TestGetAvailabilityBatchCacheHitSkipsAPI(t *testing.T) {
	fetcher := &fakeFetcher{}
	cache := &fakeCache{entries: map[string]domain.TitleAvailability{
		"tt1": {TitleID: "tt1", Offers: subOffer("netflix")},
	}}

	s := NewAvailabilityService(fetcher, cache, &fakeUsage{}, 25000, 800)

	got, err := s.GetAvailabilityBatch(context.Background(), []string{"tt1"})
	if err != nil {
		t.Fatalf("GetAvailabilityBatch returned error: %v", err)
	}

	if fetcher.callCount() != 0 {
		t.Errorf("cache hit must not call the API, got %d calls", fetcher.callCount())
	}
	if _, ok := got["tt1"]; !ok {
		t.Error("expected tt1 in result")
	}
}

func TestGetAvailabilityBatchToleratesPartialFailure(t *testing.T) {
	fetcher := &fakeFetcher{
		offers: map[string][]domain.ServiceOffer{"tt1": subOffer("netflix")},
		fail:   map[string]error{"tt2": errors.New("upstream 500")},
	}

	s := NewAvailabilityService(fetcher, &fakeCache{}, &fakeUsage{}, 25000, 800)

	got, err := s.GetAvailabilityBatch(context.Background(), []string{"tt1", "tt2"})
	if err != nil {
		t.Fatalf("partial failure must not fail the batch: %v", err)
	}

	if _, ok := got["tt1"]; !ok {
		t.Error("expected tt1 in result")
	}
	if _, ok := got["tt2"]; ok {
		t.Error("failed title must be absent from the result")
	}
}

func TestGetAvailabilityBatchAllFailed(t *testing.T) {
	fetcher := &fakeFetcher{fail: map[string]error{
		"tt1": errors.New("upstream 500"),
		"tt2": errors.New("upstream 500"),
	}}

	s := NewAvailabilityService(fetcher, &fakeCache{}, &fakeUsage{}, 25000, 800)

	_, err := s.GetAvailabilityBatch(context.Background(), []string{"tt1", "tt2"})
	if !errors.Is(err, ErrAllTitlesFailed) {
		t.Fatalf("expected ErrAllTitlesFailed, got %v", err)
	}
}

func TestGetAvailabilityBatchQuotaExceeded(t *testing.T) {
	fetcher := &fakeFetcher{offers: map[string][]domain.ServiceOffer{
		"tt1": subOffer("netflix"),
	}}
	usage := &fakeUsage{count: 25000}

	s := NewAvailabilityService(fetcher, &fakeCache{}, usage, 25000, 800)

	_, err := s.GetAvailabilityBatch(context.Background(), []string{"tt1"})
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if fetcher.callCount() != 0 {
		t.Errorf("quota exceeded must not call the API, got %d calls", fetcher.callCount())
	}
}

func TestGetAvailabilityBatchCacheErrorDegradesToAPI(t *testing.T) {
	fetcher := &fakeFetcher{offers: map[string][]domain.ServiceOffer{
		"tt1": subOffer("netflix"),
	}}
	cache := &fakeCache{getErr: errors.New("redis down")}

	s := NewAvailabilityService(fetcher, cache, &fakeUsage{}, 25000, 800)

	got, err := s.GetAvailabilityBatch(context.Background(), []string{"tt1"})
	if err != nil {
		t.Fatalf("cache error must degrade to an API call: %v", err)
	}
	if fetcher.callCount() != 1 {
		t.Errorf("expected 1 API call, got %d", fetcher.callCount())
	}
	if _, ok := got["tt1"]; !ok {
		t.Error("expected tt1 in result")
	}
}

func TestGetAvailabilityBatchDailyLimit(t *testing.T) {
	fetcher := &fakeFetcher{offers: map[string][]domain.ServiceOffer{
		"tt1": subOffer("netflix"),
	}}
	usage := &fakeUsage{daily: 800}

	s := NewAvailabilityService(fetcher, &fakeCache{}, usage, 25000, 800)

	_, err := s.GetAvailabilityBatch(context.Background(), []string{"tt1"})
	if !errors.Is(err, ErrDailyLimitReached) {
		t.Fatalf("expected ErrDailyLimitReached, got %v", err)
	}
	if fetcher.callCount() != 0 {
		t.Errorf("daily limit must block API calls, got %d", fetcher.callCount())
	}
}
