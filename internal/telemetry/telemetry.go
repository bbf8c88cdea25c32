// Package telemetry provides Prometheus metrics for extraction runs, written
// as a node_exporter textfile.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	i18n "github.com/goliatone/go-i18n-icu"
)

//nolint:gochecknoglobals // Package-level registry and metrics required by Prometheus
var (
	registry *prometheus.Registry

	// UnitsTotal counts extracted source units.
	UnitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "i18n_extract_units_total",
			Help: "Total number of source units extracted",
		},
	)

	// MessagesTotal counts messages by outcome (extracted or skipped).
	MessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "i18n_extract_messages_total",
			Help: "Total number of messages seen during extraction",
		},
		[]string{"outcome"},
	)

	// UnitDurationSeconds measures the extraction time of one unit.
	UnitDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "i18n_extract_unit_duration_seconds",
			Help:    "Duration of source unit extraction in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CatalogMessages reports catalog sizes after the merge.
	CatalogMessages = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "i18n_catalog_messages",
			Help: "Number of catalog messages per locale and state",
		},
		[]string{"locale", "state"},
	)

	// LastRun records the run id and completion time of the last run.
	LastRun = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "i18n_extract_last_run_timestamp_seconds",
			Help: "Unix time of the last extraction run",
		},
		[]string{"run_id"},
	)
)

// ConfigureTelemetry creates a fresh registry and registers the provided
// collectors, or the package metrics when none are given.
func ConfigureTelemetry(collectors ...prometheus.Collector) {
	registry = prometheus.NewRegistry()

	if len(collectors) > 0 {
		registry.MustRegister(collectors...)
		return
	}
	registry.MustRegister(
		UnitsTotal,
		MessagesTotal,
		UnitDurationSeconds,
		CatalogMessages,
		LastRun,
	)
}

// Registry returns the active registry, configuring the defaults on first
// use.
func Registry() *prometheus.Registry {
	if registry == nil {
		ConfigureTelemetry()
	}
	return registry
}

// Observer feeds collector progress into the package metrics.
type Observer struct{}

var _ i18n.CollectObserver = Observer{}

func (Observer) ObserveUnit(_ string, extracted, skipped int, elapsed time.Duration) {
	UnitsTotal.Inc()
	MessagesTotal.WithLabelValues("extracted").Add(float64(extracted))
	MessagesTotal.WithLabelValues("skipped").Add(float64(skipped))
	UnitDurationSeconds.Observe(elapsed.Seconds())
}

// RecordStats publishes per-locale catalog statistics.
func RecordStats(stats map[string]i18n.CatalogStats) {
	for locale, s := range stats {
		CatalogMessages.WithLabelValues(locale, "all").Set(float64(s.All))
		CatalogMessages.WithLabelValues(locale, "missing").Set(float64(s.Missing))
		CatalogMessages.WithLabelValues(locale, "obsolete").Set(float64(s.Obsolete))
	}
}

// RecordRun marks the run as finished at t.
func RecordRun(runID string, t time.Time) {
	LastRun.WithLabelValues(runID).Set(float64(t.Unix()))
}

// WriteTextfile writes the registry in the text exposition format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry())
}
