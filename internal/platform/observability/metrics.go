package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values shared by callers.
const (
	StatusSuccess     = "success"
	StatusError       = "error"
	StatusGenerated   = "generated"
	StatusPlaceholder = "placeholder"

	TierFresh   = "fresh"
	TierUndated = "undated"
	TierStale   = "stale"
)

var (
	CollectorItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "briefing_collector_items_total",
		Help: "Items returned by each collector",
	}, []string{"collector"})

	CollectorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "briefing_collector_failures_total",
		Help: "Collector runs that failed or panicked",
	}, []string{"collector"})

	CollectorDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "briefing_collector_duration_seconds",
		Help:    "Duration of collector runs",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"collector"})

	RelevanceDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "briefing_relevance_dropped_total",
		Help: "Items dropped by the relevance filter by reason",
	}, []string{"reason"})

	ItemsKept = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "briefing_items_kept",
		Help: "Items kept after relevance filtering in the last run",
	})

	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "briefing_llm_request_duration_seconds",
		Help:    "Duration of LLM requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider", "model"})

	LLMRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "briefing_llm_requests_total",
		Help: "LLM requests by provider and status",
	}, []string{"provider", "status"})

	LLMCircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "briefing_llm_circuit_breaker_open",
		Help: "Whether the provider circuit breaker is open (1) or closed (0)",
	}, []string{"provider"})

	SectionsBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "briefing_sections_total",
		Help: "Sections assembled by audience and whether the body was generated or a placeholder",
	}, []string{"audience", "status"})

	SectionLinks = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "briefing_section_links",
		Help: "Further-reading links shown per audience in the last run",
	}, []string{"audience"})

	LinkSelectionTier = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "briefing_link_selection_total",
		Help: "Links selected per audience by recency tier",
	}, []string{"audience", "tier"})

	RunDurationSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "briefing_run_duration_seconds",
		Help: "Duration of the last briefing run",
	})

	LastRunTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "briefing_last_run_timestamp_seconds",
		Help: "Unix time of the last completed briefing run",
	})
)

// WriteTextfile writes every registered metric to path in the node-exporter
// textfile format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	return nil
}
