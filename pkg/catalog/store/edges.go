package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/stitchd-io/stitchd/pkg/catalog/models"
)

// ============================================
// REFERENCE EDGE OPERATIONS
// ============================================

func (s *GORMStore) ListEdges(ctx context.Context) ([]*models.ReferenceEdge, error) {
	return listAll[models.ReferenceEdge](s.db, ctx)
}

func (s *GORMStore) CountEdges(ctx context.Context) (int64, error) {
	return countAll[models.ReferenceEdge](s.db, ctx)
}

// AddProviderEdge records that a provider asserts targetRef as a root member
// of the graph. Duplicate assertions are collapsed into a single edge.
func (s *GORMStore) AddProviderEdge(ctx context.Context, sourceKey, targetRef string) error {
	edge := &models.ReferenceEdge{
		SourceKey: &sourceKey,
		TargetRef: targetRef,
	}
	if err := edge.Validate(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ReferenceEdge
		err := tx.Where("source_key = ? AND target_entity_ref = ?", sourceKey, targetRef).
			First(&existing).Error
		if err == nil {
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		return tx.Create(edge).Error
	})
}

// ReplaceOutgoingEdges replaces every internal edge originating at sourceRef
// with edges to the given targets. This is the processing write path: each
// cycle re-emits the full dependency list of an entity.
func (s *GORMStore) ReplaceOutgoingEdges(ctx context.Context, sourceRef string, targetRefs []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("source_entity_ref = ?", sourceRef).
			Delete(&models.ReferenceEdge{}).Error; err != nil {
			return err
		}

		for _, target := range targetRefs {
			src := sourceRef
			edge := &models.ReferenceEdge{
				SourceRef: &src,
				TargetRef: target,
			}
			if err := edge.Validate(); err != nil {
				return err
			}
			if err := tx.Create(edge).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// RemoveProviderEdges deletes all root edges asserted by the given provider
// key. Entities that lose their last root become orphans on the next sweep.
func (s *GORMStore) RemoveProviderEdges(ctx context.Context, sourceKey string) error {
	return s.db.WithContext(ctx).
		Where("source_key = ?", sourceKey).
		Delete(&models.ReferenceEdge{}).Error
}
