// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_reports_generated_total",
			Help: "Total number of reports generated",
		},
		[]string{"talent_type"},
	)

	ReportGenerationFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_report_generation_failed_total",
			Help: "Total number of failed report generations",
		},
		[]string{"error_code"},
	)

	ScoringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "engine_scoring_duration_seconds",
			Help: "Duration of scoring and report synthesis in seconds",
		},
	)

	ComparisonsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_report_comparisons_total",
			Help: "Total number of report comparisons computed",
		},
	)

	ReportCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_report_cache_hits_total",
			Help: "Report cache lookups by outcome",
		},
		[]string{"outcome"}, // hit | miss
	)
)
