package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "akwam"

var (
	// ProviderRequestsTotal counts provider operations by outcome (ok, empty, blocked, not_found, error).
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Total number of provider operations.",
		},
		[]string{"operation", "status"},
	)

	// PageFetchDuration observes upstream page fetches that missed the cache.
	PageFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "page_fetch_duration_seconds",
			Help:      "Duration of upstream page fetches.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	// ExtractedLinksTotal counts links handed to the host.
	ExtractedLinksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extracted_links_total",
			Help:      "Total number of playable links emitted.",
		},
		[]string{"quality"},
	)

	// ChallengesTotal counts anti-bot pages by outcome (blocked, rendered).
	ChallengesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "challenges_total",
			Help:      "Total number of anti-bot challenge pages encountered.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		ProviderRequestsTotal,
		PageFetchDuration,
		ExtractedLinksTotal,
		ChallengesTotal,
	)
}

// ObserveFetch records the duration of a fetch started at start.
func ObserveFetch(status string, start time.Time) {
	PageFetchDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}
