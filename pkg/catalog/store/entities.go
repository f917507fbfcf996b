package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/stitchd-io/stitchd/pkg/catalog/models"
)

// ============================================
// ENTITY OPERATIONS
// ============================================

func (s *GORMStore) GetEntity(ctx context.Context, ref string) (*models.Entity, error) {
	return getByField[models.Entity](s.db, ctx, "entity_ref", ref, models.ErrEntityNotFound)
}

func (s *GORMStore) GetEntityByID(ctx context.Context, id string) (*models.Entity, error) {
	return getByField[models.Entity](s.db, ctx, "entity_id", id, models.ErrEntityNotFound)
}

func (s *GORMStore) ListEntities(ctx context.Context) ([]*models.Entity, error) {
	return listAll[models.Entity](s.db, ctx)
}

// ListEntityRefs returns the references of all entities currently in the store.
func (s *GORMStore) ListEntityRefs(ctx context.Context) ([]string, error) {
	refs := make([]string, 0)
	if err := s.db.WithContext(ctx).Model(&models.Entity{}).Pluck("entity_ref", &refs).Error; err != nil {
		return nil, err
	}
	return refs, nil
}

func (s *GORMStore) CountEntities(ctx context.Context) (int64, error) {
	return countAll[models.Entity](s.db, ctx)
}

// CountEntitiesNeedingReprocessing returns how many entities carry the
// reprocessing sentinel.
func (s *GORMStore) CountEntitiesNeedingReprocessing(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Entity{}).
		Where("result_hash = ?", models.ResultHashOrphanParentDeleted).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *GORMStore) CreateEntity(ctx context.Context, entity *models.Entity) (string, error) {
	now := time.Now()
	entity.LastDiscoveryAt = &now
	return createWithID(s.db, ctx, entity,
		func(e *models.Entity, id string) { e.ID = id },
		entity.ID, models.ErrDuplicateEntity)
}

// UpsertEntity is the discovery write path: it creates the entity if its
// reference is new, otherwise refreshes the unprocessed payload and discovery
// timestamp while leaving processing state untouched.
func (s *GORMStore) UpsertEntity(ctx context.Context, entity *models.Entity) (string, error) {
	var id string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var existing models.Entity
		err := tx.Where("entity_ref = ?", entity.Ref).First(&existing).Error
		if err == nil {
			id = existing.ID
			return tx.Model(&existing).Updates(map[string]any{
				"unprocessed_entity": entity.Unprocessed,
				"last_discovery_at":  now,
			}).Error
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		entity.LastDiscoveryAt = &now
		id, err = createWithID(tx, ctx, entity,
			func(e *models.Entity, newID string) { e.ID = newID },
			entity.ID, models.ErrDuplicateEntity)
		return err
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// MarkForReprocessing overwrites the result hash of the given entities with
// the reprocessing sentinel so the processing pipeline recomputes them.
func (s *GORMStore) MarkForReprocessing(ctx context.Context, refs []string) error {
	if len(refs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Entity{}).
		Where("entity_ref IN ?", refs).
		Update("result_hash", models.ResultHashOrphanParentDeleted).Error
}

// ============================================
// FINAL ENTITY OPERATIONS
// ============================================

func (s *GORMStore) GetFinalEntity(ctx context.Context, entityID string) (*models.FinalEntity, error) {
	return getByField[models.FinalEntity](s.db, ctx, "entity_id", entityID, models.ErrFinalEntityNotFound)
}

// UpsertFinalEntity writes the stitched output row for an entity, replacing
// any previous one.
func (s *GORMStore) UpsertFinalEntity(ctx context.Context, final *models.FinalEntity) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.FinalEntity
		err := tx.Where("entity_id = ?", final.EntityID).First(&existing).Error
		if err == nil {
			return tx.Model(&existing).Updates(map[string]any{
				"hash":          final.Hash,
				"stitch_ticket": final.StitchTicket,
			}).Error
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		return tx.Create(final).Error
	})
}

func (s *GORMStore) CountFinalEntities(ctx context.Context) (int64, error) {
	return countAll[models.FinalEntity](s.db, ctx)
}
