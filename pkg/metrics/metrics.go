// Package metrics provides Prometheus metrics for the score compilation
// engine and its adapters.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the scorekeep module.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Compilation metrics
	compileDuration     prometheus.Histogram
	eventsScored        prometheus.Counter
	eventsSkipped       prometheus.Counter
	predictionsResolved prometheus.Counter
	betsClamped         prometheus.Counter

	// Ledger size after the latest compilation, per entity kind
	trackedEntities *prometheus.GaugeVec

	// Snapshot codec metrics
	snapshotLoadDuration prometheus.Histogram
	snapshotSaveDuration prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Registry returns the registry backing the global manager, for exposing
// over HTTP.
func Registry() *prometheus.Registry { return customRegistry }

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scorekeep",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.compileDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "compile_duration_seconds",
		Help:      "Time taken to compile a season's scores.",
		Buckets:   m.histogramBuckets,
	})
	m.eventsScored = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_scored_total",
		Help:      "Direct events applied to the ledger.",
	})
	m.eventsSkipped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_skipped_total",
		Help:      "Direct events skipped for lack of a matching rule.",
	})
	m.predictionsResolved = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_resolved_total",
		Help:      "Predictions with a posted outcome applied to the ledger.",
	})
	m.betsClamped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bets_clamped_total",
		Help:      "Bets bounded to the configured wager range.",
	})
	m.trackedEntities = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tracked_entities",
		Help:      "Entities present in the latest compiled ledger.",
	}, []string{"kind"})
	m.snapshotLoadDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "snapshot",
		Name:      "load_duration_seconds",
		Help:      "Time taken to load a season snapshot.",
		Buckets:   m.histogramBuckets,
	})
	m.snapshotSaveDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "snapshot",
		Name:      "save_duration_seconds",
		Help:      "Time taken to save a season snapshot.",
		Buckets:   m.histogramBuckets,
	})
}

// RecordCompileDuration observes a full compilation on the global manager.
func RecordCompileDuration(d time.Duration) {
	if globalManager.enabled {
		globalManager.compileDuration.Observe(d.Seconds())
	}
}

// RecordEventScored counts a direct event applied to the ledger.
func RecordEventScored() {
	if globalManager.enabled {
		globalManager.eventsScored.Inc()
	}
}

// RecordEventSkipped counts a direct event with no matching rule.
func RecordEventSkipped() {
	if globalManager.enabled {
		globalManager.eventsSkipped.Inc()
	}
}

// RecordPredictionResolved counts a prediction with a posted outcome.
func RecordPredictionResolved() {
	if globalManager.enabled {
		globalManager.predictionsResolved.Inc()
	}
}

// RecordBetClamped counts a wager bounded to the configured range.
func RecordBetClamped() {
	if globalManager.enabled {
		globalManager.betsClamped.Inc()
	}
}

// UpdateTrackedEntities records the ledger population of the latest
// compilation.
func UpdateTrackedEntities(tribes, castaways, members int) {
	if !globalManager.enabled {
		return
	}
	globalManager.trackedEntities.WithLabelValues("tribe").Set(float64(tribes))
	globalManager.trackedEntities.WithLabelValues("castaway").Set(float64(castaways))
	globalManager.trackedEntities.WithLabelValues("member").Set(float64(members))
}

// RecordSnapshotLoad observes a snapshot load on the global manager.
func RecordSnapshotLoad(d time.Duration) {
	if globalManager.enabled {
		globalManager.snapshotLoadDuration.Observe(d.Seconds())
	}
}

// RecordSnapshotSave observes a snapshot save on the global manager.
func RecordSnapshotSave(d time.Duration) {
	if globalManager.enabled {
		globalManager.snapshotSaveDuration.Observe(d.Seconds())
	}
}
