package optimizer

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "optimizer_solve_duration_seconds",
			Help:    "Duration of a single weight run of the covering solver.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"weight"},
	)

	SolveFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimizer_solve_failures_total",
			Help: "Count of weight runs skipped because the solver failed.",
		},
		[]string{"weight"},
	)
)

func init() {
	prometheus.MustRegister(SolveDuration, SolveFailuresTotal)
}
