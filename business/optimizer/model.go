package optimizer

import (
	"math"
	"sort"

	"myStreamSaver/domain"
)

// candidateService is one decision variable's worth of catalog data.
type candidateService struct {
	ID         string
	Name       string
	PriceCents uint
}

// partition is the per-request view shared by every weight run: which
// requested titles can be covered at all, which cannot, and the pruned set of
// candidate services worth modeling. It is computed once per request and
// never mutated afterwards.
type partition struct {
	CoverableMustHave     []string
	CoverableNiceToHave   []string
	UnavailableMustHave   []string
	UnavailableNiceToHave []string

	// Candidates are the active, priced services that cover at least one
	// coverable requested title, sorted by ID so that variable order (and
	// therefore solver tie-breaking) is stable across runs.
	Candidates []candidateService

	// covers maps a coverable title ID to the candidate indexes covering it.
	covers map[string][]int
}

// modelInstance is the covering model for a single weight run.
type modelInstance struct {
	// BonusCents is the objective reward, in cents, for covering one
	// nice-to-have title.
	BonusCents int
	Services   []candidateService
	// MustHave holds, per coverable must-have title, the indexes of the
	// services covering it; each row becomes a sum >= 1 constraint.
	MustHave [][]int
	// NiceToHave holds the same per coverable nice-to-have title; each row
	// becomes a derived coverage indicator feeding the objective.
	NiceToHave [][]int
}

// dedupe collapses duplicates while keeping a single deterministic order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// buildPartition resolves the request against the active catalog and the
// availability snapshot. A title with no active subscription service is
// recorded as unavailable rather than failing the request.
func buildPartition(
	req domain.OptimizationRequest,
	services []domain.StreamingService,
	availability map[string]domain.TitleAvailability,
) partition {
	mustHave := dedupe(req.MustHave)

	mustSet := make(map[string]struct{}, len(mustHave))
	for _, id := range mustHave {
		mustSet[id] = struct{}{}
	}

	// must-have dominates: a title listed in both slices is modeled as a hard
	// constraint only
	niceToHave := make([]string, 0, len(req.NiceToHave))
	for _, id := range dedupe(req.NiceToHave) {
		if _, ok := mustSet[id]; !ok {
			niceToHave = append(niceToHave, id)
		}
	}

	activeByID := make(map[string]domain.StreamingService, len(services))
	for _, svc := range services {
		if !svc.Active {
			continue
		}
		activeByID[svc.ID] = svc
	}

	p := partition{covers: make(map[string][]int)}

	coveringServices := func(titleID string) []string {
		avail, ok := availability[titleID]
		if !ok {
			return nil
		}
		ids := make([]string, 0)
		for id := range avail.SubscriptionServiceIDs() {
			if _, active := activeByID[id]; active {
				ids = append(ids, id)
			}
		}
		sort.Strings(ids)
		return ids
	}

	coveredBy := make(map[string][]string)

	for _, titleID := range mustHave {
		ids := coveringServices(titleID)
		if len(ids) == 0 {
			p.UnavailableMustHave = append(p.UnavailableMustHave, titleID)
			continue
		}
		p.CoverableMustHave = append(p.CoverableMustHave, titleID)
		coveredBy[titleID] = ids
	}

	for _, titleID := range niceToHave {
		ids := coveringServices(titleID)
		if len(ids) == 0 {
			p.UnavailableNiceToHave = append(p.UnavailableNiceToHave, titleID)
			continue
		}
		p.CoverableNiceToHave = append(p.CoverableNiceToHave, titleID)
		coveredBy[titleID] = ids
	}

	// candidate pruning: only services relevant to some coverable title get a
	// decision variable
	candidateIDs := make(map[string]struct{})
	for _, ids := range coveredBy {
		for _, id := range ids {
			candidateIDs[id] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(candidateIDs))
	for id := range candidateIDs {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	indexByID := make(map[string]int, len(sorted))
	for i, id := range sorted {
		svc := activeByID[id]
		p.Candidates = append(p.Candidates, candidateService{
			ID:         svc.ID,
			Name:       svc.Name,
			PriceCents: svc.MonthlyCostCents,
		})
		indexByID[id] = i
	}

	for titleID, ids := range coveredBy {
		indexes := make([]int, 0, len(ids))
		for _, id := range ids {
			indexes = append(indexes, indexByID[id])
		}
		p.covers[titleID] = indexes
	}

	if p.UnavailableMustHave == nil {
		p.UnavailableMustHave = []string{}
	}
	if p.UnavailableNiceToHave == nil {
		p.UnavailableNiceToHave = []string{}
	}

	return p
}

// buildModel instantiates the covering model for one weight. The weight is
// the bonus, in whole dollars, for covering one nice-to-have title; it is
// scaled to cents so the objective stays integral.
func buildModel(p partition, weight float64) modelInstance {
	inst := modelInstance{
		BonusCents: int(math.Round(weight * 100)),
		Services:   p.Candidates,
	}

	for _, titleID := range p.CoverableMustHave {
		inst.MustHave = append(inst.MustHave, p.covers[titleID])
	}
	for _, titleID := range p.CoverableNiceToHave {
		inst.NiceToHave = append(inst.NiceToHave, p.covers[titleID])
	}

	return inst
}

// degenerate reports whether the instance has nothing to decide; the empty
// selection is then the trivial optimum and the solver is skipped.
func (m modelInstance) degenerate() bool {
	return len(m.Services) == 0
}
