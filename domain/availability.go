package domain

import "time"

// OfferType is how a title is offered on a service. Only subscription offers
// count toward bundle cost; the rest are kept for display but never feed the
// optimizer.
type OfferType string

const (
	OfferSubscription OfferType = "subscription"
	OfferRent         OfferType = "rent"
	OfferBuy          OfferType = "buy"
	OfferFree         OfferType = "free"
	OfferAddon        OfferType = "addon"
)

// ServiceOffer is one way to watch a title on one service.
type ServiceOffer struct {
	ServiceID   string    `json:"service_id"`
	ServiceName string    `json:"service_name"`
	OfferType   OfferType `json:"offer_type"`
	Quality     string    `json:"quality,omitempty"`
	Link        string    `json:"link,omitempty"`
}

// TitleAvailability is everything known about where one title can be watched.
type TitleAvailability struct {
	TitleID  string         `json:"title_id"`
	Offers   []ServiceOffer `json:"offers"`
	CachedAt time.Time      `json:"cached_at"`
}

// SubscriptionServiceIDs returns the set of services offering the title under
// a plain subscription. This is the only view of availability the optimizer
// consumes.
func (a TitleAvailability) SubscriptionServiceIDs() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, offer := range a.Offers {
		if offer.OfferType == OfferSubscription {
			ids[offer.ServiceID] = struct{}{}
		}
	}
	return ids
}
