package streamavail

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"myStreamSaver/domain"
	"myStreamSaver/pkg/metrics"
)

type StreamAvailConfig struct {
	APIKey  string
	APIURL  string
	Country string
}

// StreamAvailRepository talks to the Streaming Availability API on RapidAPI.
type StreamAvailRepository struct {
	config StreamAvailConfig
	client *http.Client
}

func NewStreamAvailRepository(cfg StreamAvailConfig) *StreamAvailRepository {
	if cfg.Country == "" {
		cfg.Country = "us"
	}
	return &StreamAvailRepository{
		config: cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// ---- API response shapes ----

type apiShow struct {
	ID               string                        `json:"id"`
	IMDBID           string                        `json:"imdbId"`
	Title            string                        `json:"title"`
	ShowType         string                        `json:"showType"`
	ReleaseYear      int                           `json:"releaseYear"`
	FirstAirYear     int                           `json:"firstAirYear"`
	Overview         string                        `json:"overview"`
	StreamingOptions map[string][]apiStreamingOption `json:"streamingOptions"`
}

type apiStreamingOption struct {
	Service apiService `json:"service"`
	Type    string     `json:"type"`
	Quality string     `json:"quality"`
	Link    string     `json:"link"`
}

type apiService struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FetchTitle returns the streaming offers for one title in the configured
// country. Offer types outside the known set are dropped.
func (r *StreamAvailRepository) FetchTitle(ctx context.Context, titleID string) (domain.TitleAvailability, error) {
	endpoint := fmt.Sprintf("%s/shows/%s?country=%s",
		r.config.APIURL, url.PathEscape(titleID), url.QueryEscape(r.config.Country))

	var show apiShow
	if err := r.get(ctx, endpoint, &show); err != nil {
		return domain.TitleAvailability{}, fmt.Errorf("failed to fetch show %s: %w", titleID, err)
	}

	return domain.TitleAvailability{
		TitleID:  titleID,
		Offers:   convertOffers(show.StreamingOptions[r.config.Country]),
		CachedAt: time.Now().UTC(),
	}, nil
}

// SearchTitles searches shows by title text.
func (r *StreamAvailRepository) SearchTitles(ctx context.Context, query string) ([]domain.Title, error) {
	endpoint := fmt.Sprintf("%s/shows/search/title?title=%s&country=%s",
		r.config.APIURL, url.QueryEscape(query), url.QueryEscape(r.config.Country))

	var shows []apiShow
	if err := r.get(ctx, endpoint, &shows); err != nil {
		return nil, fmt.Errorf("failed to search shows: %w", err)
	}

	titles := make([]domain.Title, 0, len(shows))
	for _, show := range shows {
		titles = append(titles, convertTitle(show))
	}

	return titles, nil
}

func (r *StreamAvailRepository) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", r.config.APIKey)

	metrics.StreamingAPIRequests.Inc()

	res, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", res.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func convertOffers(options []apiStreamingOption) []domain.ServiceOffer {
	offers := make([]domain.ServiceOffer, 0, len(options))
	for _, opt := range options {
		offerType := domain.OfferType(opt.Type)
		switch offerType {
		case domain.OfferSubscription, domain.OfferRent, domain.OfferBuy,
			domain.OfferFree, domain.OfferAddon:
		default:
			continue
		}
		offers = append(offers, domain.ServiceOffer{
			ServiceID:   opt.Service.ID,
			ServiceName: opt.Service.Name,
			OfferType:   offerType,
			Quality:     opt.Quality,
			Link:        opt.Link,
		})
	}
	return offers
}

func convertTitle(show apiShow) domain.Title {
	year := show.ReleaseYear
	if year == 0 {
		year = show.FirstAirYear
	}
	return domain.Title{
		ID:          show.ID,
		IMDBID:      show.IMDBID,
		Title:       show.Title,
		ShowType:    domain.ShowType(show.ShowType),
		ReleaseYear: year,
		Overview:    show.Overview,
	}
}
