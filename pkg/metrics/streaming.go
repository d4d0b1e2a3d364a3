package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the optimize HTTP handler
	OptimizeLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "optimize_request_latency_seconds",
		Help:    "Latency of the subscription optimize handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of optimize requests served
	OptimizeRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "optimize_requests_total",
		Help: "Total number of optimize requests",
	})

	AvailabilityCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "availability_cache_hits_total",
		Help: "Availability lookups answered from Redis",
	})

	AvailabilityCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "availability_cache_misses_total",
		Help: "Availability lookups that missed the cache",
	})

	StreamingAPIRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "streaming_api_requests_total",
		Help: "Outbound requests made to the streaming availability API",
	})
)

func Init() {
	prometheus.MustRegister(
		OptimizeLatency,
		OptimizeRequests,
		AvailabilityCacheHits,
		AvailabilityCacheMisses,
		StreamingAPIRequests,
	)
}
