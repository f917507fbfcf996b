// Package store provides the catalog persistence layer.
//
// This package implements the Store interface for managing catalog data:
// entities, their stitched final rows, and the reference edge graph.
//
// Two backends are supported:
//   - SQLite (single-node, default)
//   - PostgreSQL (HA-capable)
package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/stitchd-io/stitchd/pkg/catalog/models"
)

// Store provides the catalog persistence interface.
//
// Thread Safety: Implementations must be safe for concurrent use from multiple
// goroutines. Isolation between concurrent writers is delegated to the
// underlying database, not to application-level locking.
type Store interface {
	// ============================================
	// ENTITY OPERATIONS
	// ============================================

	// GetEntity returns an entity by its reference.
	// Returns models.ErrEntityNotFound if the entity doesn't exist.
	GetEntity(ctx context.Context, ref string) (*models.Entity, error)

	// GetEntityByID returns an entity by its opaque ID.
	// Returns models.ErrEntityNotFound if no entity has this ID.
	GetEntityByID(ctx context.Context, id string) (*models.Entity, error)

	// ListEntities returns all entities.
	// Use with caution for large catalogs.
	ListEntities(ctx context.Context) ([]*models.Entity, error)

	// ListEntityRefs returns the references of all entities.
	ListEntityRefs(ctx context.Context) ([]string, error)

	// CountEntities returns the number of entities.
	CountEntities(ctx context.Context) (int64, error)

	// CountEntitiesNeedingReprocessing returns the number of entities
	// carrying the reprocessing sentinel.
	CountEntitiesNeedingReprocessing(ctx context.Context) (int64, error)

	// CreateEntity creates a new entity.
	// The entity ID will be generated if empty. Returns the generated ID.
	// Returns models.ErrDuplicateEntity if the reference is taken.
	CreateEntity(ctx context.Context, entity *models.Entity) (string, error)

	// UpsertEntity creates the entity or refreshes its unprocessed payload
	// and discovery timestamp if the reference already exists.
	UpsertEntity(ctx context.Context, entity *models.Entity) (string, error)

	// MarkForReprocessing sets the reprocessing sentinel on the given
	// entities' result hashes.
	MarkForReprocessing(ctx context.Context, refs []string) error

	// ============================================
	// FINAL ENTITY OPERATIONS
	// ============================================

	// GetFinalEntity returns the stitched row for an entity ID.
	// Returns models.ErrFinalEntityNotFound if absent.
	GetFinalEntity(ctx context.Context, entityID string) (*models.FinalEntity, error)

	// UpsertFinalEntity writes or replaces the stitched row for an entity.
	UpsertFinalEntity(ctx context.Context, final *models.FinalEntity) error

	// CountFinalEntities returns the number of final entity rows.
	CountFinalEntities(ctx context.Context) (int64, error)

	// ============================================
	// REFERENCE EDGE OPERATIONS
	// ============================================

	// ListEdges returns all reference edges.
	ListEdges(ctx context.Context) ([]*models.ReferenceEdge, error)

	// CountEdges returns the number of reference edges.
	CountEdges(ctx context.Context) (int64, error)

	// AddProviderEdge records a root edge from a provider key to an entity
	// reference. Idempotent.
	AddProviderEdge(ctx context.Context, sourceKey, targetRef string) error

	// ReplaceOutgoingEdges replaces all internal edges originating at
	// sourceRef with edges to targetRefs.
	ReplaceOutgoingEdges(ctx context.Context, sourceRef string, targetRefs []string) error

	// RemoveProviderEdges deletes all root edges asserted by a provider key.
	RemoveProviderEdges(ctx context.Context, sourceKey string) error

	// ============================================
	// TRANSACTIONS & LIFECYCLE
	// ============================================

	// Transaction runs fn inside one database transaction.
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Healthcheck verifies database connectivity.
	Healthcheck(ctx context.Context) error

	// Close releases the database connection.
	Close() error
}
