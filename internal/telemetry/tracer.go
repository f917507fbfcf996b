package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for catalog operations.
const (
	AttrBackend         = "db.system" // sqlite, postgres
	AttrEntityRef       = "catalog.entity_ref"
	AttrEntityID        = "catalog.entity_id"
	AttrSourceKey       = "catalog.source_key"
	AttrEntitiesScanned = "sweep.entities_scanned"
	AttrEdgesScanned    = "sweep.edges_scanned"
	AttrEntitiesDeleted = "sweep.entities_deleted"
	AttrEntitiesMarked  = "sweep.entities_marked"
	AttrEdgesPruned     = "sweep.edges_pruned"
	AttrDryRun          = "sweep.dry_run"
)

// Span names.
const (
	SpanSweep       = "catalog.sweep"
	SpanMigrate     = "catalog.migrate"
	SpanStoreQuery  = "store.query"
	SpanStoreMutate = "store.mutate"
	SpanHealthcheck = "store.healthcheck"
)

// Backend returns an attribute for the database backend in use.
func Backend(name string) attribute.KeyValue {
	return attribute.String(AttrBackend, name)
}

// EntityRef returns an attribute for an entity reference.
func EntityRef(ref string) attribute.KeyValue {
	return attribute.String(AttrEntityRef, ref)
}

// EntityID returns an attribute for an entity ID.
func EntityID(id string) attribute.KeyValue {
	return attribute.String(AttrEntityID, id)
}

// SourceKey returns an attribute for a provider source key.
func SourceKey(key string) attribute.KeyValue {
	return attribute.String(AttrSourceKey, key)
}

// EntitiesScanned returns an attribute for the scanned entity count.
func EntitiesScanned(n int64) attribute.KeyValue {
	return attribute.Int64(AttrEntitiesScanned, n)
}

// EdgesScanned returns an attribute for the scanned edge count.
func EdgesScanned(n int64) attribute.KeyValue {
	return attribute.Int64(AttrEdgesScanned, n)
}

// EntitiesDeleted returns an attribute for the deleted entity count.
func EntitiesDeleted(n int64) attribute.KeyValue {
	return attribute.Int64(AttrEntitiesDeleted, n)
}

// EntitiesMarked returns an attribute for the count of entities marked for reprocessing.
func EntitiesMarked(n int64) attribute.KeyValue {
	return attribute.Int64(AttrEntitiesMarked, n)
}

// EdgesPruned returns an attribute for the pruned edge count.
func EdgesPruned(n int64) attribute.KeyValue {
	return attribute.Int64(AttrEdgesPruned, n)
}

// DryRun returns an attribute indicating a dry-run sweep.
func DryRun(dry bool) attribute.KeyValue {
	return attribute.Bool(AttrDryRun, dry)
}

// StartSweepSpan starts a span covering a full orphan sweep.
func StartSweepSpan(ctx context.Context, dryRun bool, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{DryRun(dryRun)}
	allAttrs = append(allAttrs, attrs...)
	return StartSpan(ctx, SpanSweep, trace.WithAttributes(allAttrs...))
}
