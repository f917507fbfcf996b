package gc

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/stitchd-io/stitchd/internal/logger"
	"github.com/stitchd-io/stitchd/pkg/catalog/models"
)

// deleteBatchSize bounds the size of IN-lists sent to the database so sweeps
// over large catalogs stay within placeholder limits.
const deleteBatchSize = 500

// ============================================================================
// Types
// ============================================================================

// Stats holds statistics about one orphan collection run.
type Stats struct {
	// EntitiesScanned is the number of entities present in the snapshot.
	EntitiesScanned int `json:"entities_scanned" yaml:"entities_scanned"`
	// EdgesScanned is the number of reference edges present in the snapshot.
	EdgesScanned int `json:"edges_scanned" yaml:"edges_scanned"`
	// EntitiesDeleted is the number of orphan entities removed (with their final rows).
	EntitiesDeleted int `json:"entities_deleted" yaml:"entities_deleted"`
	// EntitiesMarked is the number of surviving children flagged for reprocessing.
	EntitiesMarked int `json:"entities_marked" yaml:"entities_marked"`
	// EdgesPruned is the number of edges removed because their source was deleted.
	EdgesPruned int `json:"edges_pruned" yaml:"edges_pruned"`
	// Duration is the wall time of the run.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Options configures the orphan collection behavior.
type Options struct {
	// DryRun if true, only reports what would be deleted and marked without
	// mutating anything.
	DryRun bool

	// PruneEdges if true, edges whose source entity was deleted are removed
	// in the same transaction. Edges from surviving sources into deleted
	// targets are always left in place: the surviving source still asserts
	// the dependency and re-discovery may re-create the target.
	PruneEdges bool
}

// ============================================================================
// Orphan Collection
// ============================================================================

// Collect removes every entity unreachable from any provider root edge and
// flags the surviving direct children of removed entities for reprocessing.
//
// The whole read-compute-delete-mark sequence runs inside tx; Collect never
// opens, commits, or rolls back a transaction itself. The returned stats are
// provisional until the caller commits.
//
// Re-running Collect on an unchanged committed graph deletes and marks
// nothing: all orphans are already gone and the sentinel is already set.
//
// Edge endpoints that have no entity row are tolerated; they simply never
// count as deletions. Edges violating the exactly-one-source invariant abort
// the run, since they indicate a corrupted graph.
func Collect(ctx context.Context, tx *gorm.DB, options *Options) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}

	if options == nil {
		options = &Options{PruneEdges: true}
	}

	// Load the snapshot: all entity references and the full edge set.
	refs := make([]string, 0)
	if err := tx.WithContext(ctx).Model(&models.Entity{}).Pluck("entity_ref", &refs).Error; err != nil {
		return stats, fmt.Errorf("failed to load entity references: %w", err)
	}
	stats.EntitiesScanned = len(refs)

	edges := make([]*models.ReferenceEdge, 0)
	if err := tx.WithContext(ctx).Find(&edges).Error; err != nil {
		return stats, fmt.Errorf("failed to load reference edges: %w", err)
	}
	stats.EdgesScanned = len(edges)

	// Index the graph: root targets and outgoing internal edges per source.
	rootTargets := make([]string, 0)
	outgoing := make(map[string][]string)
	for _, edge := range edges {
		if err := edge.Validate(); err != nil {
			return stats, fmt.Errorf("corrupted reference graph (edge %d): %w", edge.ID, err)
		}
		if edge.IsRoot() {
			rootTargets = append(rootTargets, edge.TargetRef)
		} else {
			outgoing[*edge.SourceRef] = append(outgoing[*edge.SourceRef], edge.TargetRef)
		}
	}

	reachable := Reachable(rootTargets, outgoing)

	// Orphans are the complement of the reachable set over the entity table.
	orphanSet := make(map[string]bool)
	orphans := make([]string, 0)
	for _, ref := range refs {
		if !reachable[ref] {
			orphanSet[ref] = true
			orphans = append(orphans, ref)
		}
	}

	if len(orphans) == 0 {
		stats.Duration = time.Since(start)
		logger.Debug("GC: no orphans found",
			"entities", stats.EntitiesScanned,
			"edges", stats.EdgesScanned)
		return stats, nil
	}

	// Surviving direct children of deleted parents get the reprocessing
	// sentinel, regardless of how many other live parents they still have.
	markSet := make(map[string]bool)
	for _, edge := range edges {
		if edge.IsRoot() {
			continue
		}
		if orphanSet[*edge.SourceRef] && !orphanSet[edge.TargetRef] {
			markSet[edge.TargetRef] = true
		}
	}
	markTargets := make([]string, 0, len(markSet))
	for ref := range markSet {
		markTargets = append(markTargets, ref)
	}
	sort.Strings(markTargets)

	logger.Info("GC: found orphan entities",
		"orphans", len(orphans),
		"toMark", len(markTargets),
		"dryRun", options.DryRun)

	if options.DryRun {
		stats.EntitiesDeleted = len(orphans)
		stats.EntitiesMarked = len(markTargets)
		stats.Duration = time.Since(start)
		return stats, nil
	}

	// Delete orphan rows: final rows first, then the entities themselves.
	for _, batch := range chunk(orphans, deleteBatchSize) {
		finalSub := tx.WithContext(ctx).
			Model(&models.Entity{}).
			Select("entity_id").
			Where("entity_ref IN ?", batch)
		if err := tx.WithContext(ctx).
			Where("entity_id IN (?)", finalSub).
			Delete(&models.FinalEntity{}).Error; err != nil {
			return stats, fmt.Errorf("failed to delete final entities: %w", err)
		}

		result := tx.WithContext(ctx).
			Where("entity_ref IN ?", batch).
			Delete(&models.Entity{})
		if result.Error != nil {
			return stats, fmt.Errorf("failed to delete entities: %w", result.Error)
		}
		stats.EntitiesDeleted += int(result.RowsAffected)
	}

	// Flag survivors. The update is unconditional: any deleted parent
	// triggers the sentinel, even if another live parent remains.
	for _, batch := range chunk(markTargets, deleteBatchSize) {
		result := tx.WithContext(ctx).
			Model(&models.Entity{}).
			Where("entity_ref IN ?", batch).
			Update("result_hash", models.ResultHashOrphanParentDeleted)
		if result.Error != nil {
			return stats, fmt.Errorf("failed to mark entities for reprocessing: %w", result.Error)
		}
		stats.EntitiesMarked += int(result.RowsAffected)
	}

	// Prune edges originating at deleted entities so the graph carries no
	// dangling sources.
	if options.PruneEdges {
		for _, batch := range chunk(orphans, deleteBatchSize) {
			result := tx.WithContext(ctx).
				Where("source_entity_ref IN ?", batch).
				Delete(&models.ReferenceEdge{})
			if result.Error != nil {
				return stats, fmt.Errorf("failed to prune reference edges: %w", result.Error)
			}
			stats.EdgesPruned += int(result.RowsAffected)
		}
	}

	stats.Duration = time.Since(start)

	logger.Info("GC: complete",
		"entitiesScanned", stats.EntitiesScanned,
		"edgesScanned", stats.EdgesScanned,
		"entitiesDeleted", stats.EntitiesDeleted,
		"entitiesMarked", stats.EntitiesMarked,
		"edgesPruned", stats.EdgesPruned,
		"duration", stats.Duration.String())

	return stats, nil
}

// chunk splits refs into slices of at most size elements.
func chunk(refs []string, size int) [][]string {
	if len(refs) == 0 {
		return nil
	}
	batches := make([][]string, 0, (len(refs)+size-1)/size)
	for size < len(refs) {
		batches = append(batches, refs[:size])
		refs = refs[size:]
	}
	return append(batches, refs)
}
