// Package maintenance runs the periodic orphan sweep over the catalog.
package maintenance

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/stitchd-io/stitchd/internal/logger"
	"github.com/stitchd-io/stitchd/internal/telemetry"
	"github.com/stitchd-io/stitchd/pkg/catalog/gc"
	"github.com/stitchd-io/stitchd/pkg/catalog/store"
	"github.com/stitchd-io/stitchd/pkg/metrics"
)

// SweeperConfig holds configuration for the background sweeper.
type SweeperConfig struct {
	// Interval is the time between sweeps.
	// Default: 10m
	Interval time.Duration

	// DryRun computes sweep statistics without mutating the catalog.
	DryRun bool

	// PruneEdges controls whether edges originating from deleted
	// entities are removed along with them.
	PruneEdges bool
}

// DefaultSweeperConfig returns sensible defaults.
func DefaultSweeperConfig() SweeperConfig {
	return SweeperConfig{
		Interval:   10 * time.Minute,
		PruneEdges: true,
	}
}

// Sweeper periodically removes orphaned entities from the catalog.
//
// Each sweep runs inside a single database transaction: reachability is
// computed from provider root edges, unreachable entities and their
// final rows are deleted, and surviving direct children of deleted
// entities are flagged for reprocessing.
type Sweeper struct {
	store   store.Store
	metrics *metrics.SweepMetrics
	config  SweeperConfig

	stopCh    chan struct{}
	stoppedCh chan struct{}

	mu        sync.Mutex
	started   bool
	lastStats *gc.Stats
	lastError error
	lastRunAt time.Time
}

// NewSweeper creates a new background sweeper.
// The metrics parameter may be nil to disable instrumentation.
func NewSweeper(s store.Store, m *metrics.SweepMetrics, cfg SweeperConfig) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}

	return &Sweeper{
		store:     s,
		metrics:   m,
		config:    cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Start begins the periodic sweep loop. The first sweep runs after one
// full interval, not immediately, so service startup stays fast.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	logger.Info("Starting catalog sweeper",
		"interval", s.config.Interval.String(),
		"dry_run", s.config.DryRun,
		"prune_edges", s.config.PruneEdges,
	)

	go s.loop(ctx)
}

// Stop gracefully shuts down the sweeper, waiting for an in-flight
// sweep to finish (with timeout).
func (s *Sweeper) Stop(timeout time.Duration) {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		// Never started - nothing to stop
		return
	}
	s.mu.Unlock()

	logger.Info("Stopping catalog sweeper")
	close(s.stopCh)

	select {
	case <-s.stoppedCh:
		logger.Info("Catalog sweeper stopped gracefully")
	case <-time.After(timeout):
		logger.Warn("Catalog sweeper stop timed out")
	}
}

// RunOnce performs a single sweep and returns its statistics.
// Safe to call whether or not the periodic loop is running, but callers
// are responsible for not racing two sweeps against each other.
func (s *Sweeper) RunOnce(ctx context.Context) (*gc.Stats, error) {
	ctx, span := telemetry.StartSweepSpan(ctx, s.config.DryRun)
	defer span.End()

	start := time.Now()

	var stats *gc.Stats
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		var txErr error
		stats, txErr = gc.Collect(ctx, tx, &gc.Options{
			DryRun:     s.config.DryRun,
			PruneEdges: s.config.PruneEdges,
		})
		return txErr
	})

	duration := time.Since(start)

	s.mu.Lock()
	s.lastStats = stats
	s.lastError = err
	s.lastRunAt = start
	s.mu.Unlock()

	if err != nil {
		telemetry.RecordError(ctx, err)
		s.metrics.RecordSweep("error", duration)
		logger.Error("Catalog sweep failed", "error", err, "duration", duration.String())
		return nil, err
	}

	span.SetAttributes(
		telemetry.EntitiesScanned(int64(stats.EntitiesScanned)),
		telemetry.EdgesScanned(int64(stats.EdgesScanned)),
		telemetry.EntitiesDeleted(int64(stats.EntitiesDeleted)),
		telemetry.EntitiesMarked(int64(stats.EntitiesMarked)),
		telemetry.EdgesPruned(int64(stats.EdgesPruned)),
	)
	span.SetStatus(codes.Ok, "")

	status := "success"
	if s.config.DryRun {
		status = "dry_run"
	} else {
		s.metrics.RecordDeleted(int64(stats.EntitiesDeleted))
		s.metrics.RecordMarked(int64(stats.EntitiesMarked))
		s.metrics.RecordPruned(int64(stats.EdgesPruned))
	}
	s.metrics.RecordSweep(status, duration)
	s.updateCatalogGauges(ctx)

	logger.Info("Catalog sweep completed",
		"scanned", stats.EntitiesScanned,
		"deleted", stats.EntitiesDeleted,
		"marked", stats.EntitiesMarked,
		"edges_pruned", stats.EdgesPruned,
		"dry_run", s.config.DryRun,
		"duration", duration.String(),
	)

	return stats, nil
}

// LastRun returns the statistics, time, and error of the most recent sweep.
func (s *Sweeper) LastRun() (*gc.Stats, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStats, s.lastRunAt, s.lastError
}

// loop runs sweeps on the configured interval until stopped.
func (s *Sweeper) loop(ctx context.Context) {
	defer close(s.stoppedCh)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Errors are logged and recorded; the loop keeps going so a
			// transient database failure does not kill the schedule.
			_, _ = s.RunOnce(ctx)
		}
	}
}

// updateCatalogGauges refreshes the catalog size gauges after a sweep.
func (s *Sweeper) updateCatalogGauges(ctx context.Context) {
	if s.metrics == nil {
		return
	}

	entities, err := s.store.CountEntities(ctx)
	if err != nil {
		return
	}
	finals, err := s.store.CountFinalEntities(ctx)
	if err != nil {
		return
	}
	edges, err := s.store.CountEdges(ctx)
	if err != nil {
		return
	}
	s.metrics.SetCatalogSize(entities, finals, edges)
}
