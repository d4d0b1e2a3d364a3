package optimizer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"myStreamSaver/domain"
	"myStreamSaver/pkg/logger"
)

// defaultWeights sweeps the trade-off from cost-biased to coverage-biased.
// Each weight is the dollar bonus for covering one nice-to-have title.
var defaultWeights = []float64{0.1, 1.0, 3.0, 10.0, 100.0}

const maxConfigurations = 5

// ErrAllRunsFailed means no weight run produced a selection; this is the only
// condition the caller should translate into a server-side failure.
var ErrAllRunsFailed = errors.New("all weight runs failed")

type Config struct {
	Weights      []float64
	SolveTimeout time.Duration
}

// Service generates subscription bundle reports. It is pure computation: all
// catalog and availability data arrives fully resolved from the caller.
type Service struct {
	cfg Config
}

func NewService(cfg Config) *Service {
	if len(cfg.Weights) == 0 {
		cfg.Weights = defaultWeights
	}
	return &Service{cfg: cfg}
}

type weightRun struct {
	selection []int
	err       error
}

// Optimize produces the ordered report of distinct near-optimal bundles for
// one request. Titles no active subscription service carries are surfaced in
// the unavailable lists, never treated as solver failures.
func (s *Service) Optimize(
	ctx context.Context,
	req domain.OptimizationRequest,
	services []domain.StreamingService,
	availability map[string]domain.TitleAvailability,
) (domain.OptimizationReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.OptimizationReport{}, fmt.Errorf("context error: %w", err)
	}

	p := buildPartition(req, services, availability)

	tid := TraceIDFromContext(ctx)
	logger.Debug("optimize_partitioned",
		"trace_id", tid,
		"coverable_must_have", len(p.CoverableMustHave),
		"coverable_nice_to_have", len(p.CoverableNiceToHave),
		"unavailable_must_have", len(p.UnavailableMustHave),
		"unavailable_nice_to_have", len(p.UnavailableNiceToHave),
		"candidates", len(p.Candidates),
	)

	report := domain.OptimizationReport{
		Configurations:        []domain.Configuration{},
		UnavailableMustHave:   p.UnavailableMustHave,
		UnavailableNiceToHave: p.UnavailableNiceToHave,
	}

	// terminal: nothing requested is coverable, so there is no model to
	// solve and no bundle to report
	if len(p.Candidates) == 0 {
		return report, nil
	}

	// The weight runs share no mutable state, so they fan out concurrently.
	// Results land in a position-indexed slice and are read back in weight
	// order: ordering is semantic, completion order is not.
	runs := make([]weightRun, len(s.cfg.Weights))
	var wg sync.WaitGroup
	for i, weight := range s.cfg.Weights {
		wg.Add(1)
		go func(i int, weight float64) {
			defer wg.Done()
			runs[i] = s.runWeight(ctx, p, weight)
		}(i, weight)
	}
	wg.Wait()

	seen := make(map[string]struct{})
	failures := 0
	for i, run := range runs {
		if run.err != nil {
			failures++
			logger.Warn("optimize_weight_run_failed",
				"trace_id", tid,
				"weight", s.cfg.Weights[i],
				"error", run.err,
			)
			continue
		}

		cfg := buildConfiguration(p, run.selection)

		key := configurationKey(cfg)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		report.Configurations = append(report.Configurations, cfg)
		if len(report.Configurations) == maxConfigurations {
			break
		}
	}

	if failures == len(runs) {
		return domain.OptimizationReport{}, fmt.Errorf("%w: %v", ErrAllRunsFailed, runs[0].err)
	}

	logger.Info("optimize_done",
		"trace_id", tid,
		"configurations", len(report.Configurations),
		"failed_runs", failures,
	)

	return report, nil
}

func (s *Service) runWeight(ctx context.Context, p partition, weight float64) weightRun {
	inst := buildModel(p, weight)

	label := strconv.FormatFloat(weight, 'f', -1, 64)
	start := time.Now()
	selection, err := solveSelection(ctx, inst, s.cfg.SolveTimeout)
	SolveDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

	if err != nil {
		SolveFailuresTotal.WithLabelValues(label).Inc()
		return weightRun{err: err}
	}

	return weightRun{selection: selection}
}

// buildConfiguration derives the reported bundle from a solved selection.
// Selection indexes are ascending, so services come out sorted by ID.
func buildConfiguration(p partition, selection []int) domain.Configuration {
	selected := make(map[int]struct{}, len(selection))
	services := make([]domain.ConfiguredService, 0, len(selection))
	total := uint(0)

	for _, idx := range selection {
		svc := p.Candidates[idx]
		services = append(services, domain.ConfiguredService{
			ID:               svc.ID,
			Name:             svc.Name,
			MonthlyCostCents: svc.PriceCents,
		})
		total += svc.PriceCents
		selected[idx] = struct{}{}
	}

	nice := 0
	for _, titleID := range p.CoverableNiceToHave {
		for _, idx := range p.covers[titleID] {
			if _, ok := selected[idx]; ok {
				nice++
				break
			}
		}
	}

	return domain.Configuration{
		Services:              services,
		TotalMonthlyCostCents: total,
		MustHaveCoverage:      len(p.CoverableMustHave),
		NiceToHaveCoverage:    nice,
	}
}

// configurationKey identifies a bundle by its service ID set.
func configurationKey(cfg domain.Configuration) string {
	ids := make([]string, len(cfg.Services))
	for i, svc := range cfg.Services {
		ids[i] = svc.ID
	}
	return strings.Join(ids, "|")
}
