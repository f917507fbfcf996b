package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SweepMetrics collects observability data for orphan sweeps.
//
// A nil *SweepMetrics is valid and all methods are no-ops, so callers
// never need to guard instrumentation sites.
type SweepMetrics struct {
	sweeps          *prometheus.CounterVec
	entitiesDeleted prometheus.Counter
	entitiesMarked  prometheus.Counter
	edgesPruned     prometheus.Counter
	sweepDuration   prometheus.Histogram
	catalogEntities prometheus.Gauge
	finalEntities   prometheus.Gauge
	referenceEdges  prometheus.Gauge
}

// NewSweepMetrics creates Prometheus-backed sweep metrics.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewSweepMetrics() *SweepMetrics {
	if !IsEnabled() {
		return nil
	}

	reg := GetRegistry()

	return &SweepMetrics{
		sweeps: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "stitchd_sweeps_total",
				Help: "Total number of orphan sweeps by outcome",
			},
			[]string{"status"}, // "success", "error", "dry_run"
		),
		entitiesDeleted: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "stitchd_entities_deleted_total",
				Help: "Total number of orphaned entities deleted by sweeps",
			},
		),
		entitiesMarked: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "stitchd_entities_marked_total",
				Help: "Total number of surviving entities marked for reprocessing",
			},
		),
		edgesPruned: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "stitchd_edges_pruned_total",
				Help: "Total number of reference edges pruned by sweeps",
			},
		),
		sweepDuration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name: "stitchd_sweep_duration_seconds",
				Help: "Duration of orphan sweeps in seconds",
				Buckets: []float64{
					0.01, // small catalogs
					0.05,
					0.1,
					0.5,
					1,
					5,
					10,
					30, // large catalogs
					60,
				},
			},
		),
		catalogEntities: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "stitchd_catalog_entities",
				Help: "Current number of entities in the catalog",
			},
		),
		finalEntities: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "stitchd_catalog_final_entities",
				Help: "Current number of final entities in the catalog",
			},
		),
		referenceEdges: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "stitchd_catalog_reference_edges",
				Help: "Current number of reference edges in the catalog",
			},
		),
	}
}

// RecordSweep records a completed sweep with its outcome and duration.
// status should be one of "success", "error", "dry_run".
func (m *SweepMetrics) RecordSweep(status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.sweeps.WithLabelValues(status).Inc()
	m.sweepDuration.Observe(duration.Seconds())
}

// RecordDeleted adds to the deleted entity counter.
func (m *SweepMetrics) RecordDeleted(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.entitiesDeleted.Add(float64(n))
}

// RecordMarked adds to the marked-for-reprocessing counter.
func (m *SweepMetrics) RecordMarked(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.entitiesMarked.Add(float64(n))
}

// RecordPruned adds to the pruned edge counter.
func (m *SweepMetrics) RecordPruned(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.edgesPruned.Add(float64(n))
}

// SetCatalogSize updates the catalog size gauges.
func (m *SweepMetrics) SetCatalogSize(entities, finals, edges int64) {
	if m == nil {
		return
	}
	m.catalogEntities.Set(float64(entities))
	m.finalEntities.Set(float64(finals))
	m.referenceEdges.Set(float64(edges))
}
