// Package gc implements orphan collection for the catalog entity graph.
//
// An orphan is an entity that is no longer reachable from any provider root
// edge by following reference edges forward. Orphans appear when providers
// stop asserting entities or when processing cycles drop dependency edges.
//
// The Collect function runs entirely inside a caller-supplied transaction:
// it loads a snapshot of the entity references and the full edge set,
// computes the reachable set, deletes every unreachable entity together with
// its stitched final row, and flags the surviving direct children of deleted
// entities for reprocessing by overwriting their result hash with the
// reserved sentinel.
//
// Usage:
//
//	// Dry run first
//	dryStats, _ := gc.Collect(ctx, tx, &gc.Options{DryRun: true, PruneEdges: true})
//	logger.Info("Would delete", "entities", dryStats.EntitiesDeleted)
//
//	// Then actually delete
//	stats, err := gc.Collect(ctx, tx, nil)
//
// Collect never opens or commits a transaction itself; if the caller rolls
// back, every deletion and marking is discarded as a unit.
package gc
