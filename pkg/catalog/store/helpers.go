package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================================================================
// Generic GORM Helpers
// ============================================================================
//
// These helpers reduce repetitive CRUD boilerplate across store implementation
// files. They are unexported (package-internal) and operate on the raw *gorm.DB
// to avoid coupling to GORMStore. Each helper handles standard concerns like
// context propagation, not-found error conversion, and unique constraint
// detection.

// getByField retrieves a single record of type T by matching field=value.
// It converts gorm.ErrRecordNotFound to the provided notFoundErr for
// consistent domain error mapping.
//
// Example:
//
//	entity, err := getByField[models.Entity](db, ctx, "entity_ref", "api/pets", models.ErrEntityNotFound)
func getByField[T any](db *gorm.DB, ctx context.Context, field string, value any, notFoundErr error) (*T, error) {
	var result T
	if err := db.WithContext(ctx).Where(field+" = ?", value).First(&result).Error; err != nil {
		return nil, convertNotFoundError(err, notFoundErr)
	}
	return &result, nil
}

// listAll retrieves all records of type T.
// Returns an empty slice (not nil) on success with no records.
func listAll[T any](db *gorm.DB, ctx context.Context) ([]*T, error) {
	results := make([]*T, 0)
	if err := db.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// createWithID generates a UUID for the record if it has no ID, then creates
// it in the database. The idSetter callback sets the generated ID on the
// record. Unique constraint violations are converted to dupErr for consistent
// error handling.
//
// Example:
//
//	id, err := createWithID(db, ctx, entity, func(e *models.Entity, id string) { e.ID = id }, entity.ID, models.ErrDuplicateEntity)
func createWithID[T any](db *gorm.DB, ctx context.Context, record *T, idSetter func(*T, string), currentID string, dupErr error) (string, error) {
	id := currentID
	if id == "" {
		id = uuid.New().String()
		idSetter(record, id)
	}
	if err := db.WithContext(ctx).Create(record).Error; err != nil {
		if isUniqueConstraintError(err) {
			return "", dupErr
		}
		return "", err
	}
	return id, nil
}

// countAll returns the number of rows of type T.
func countAll[T any](db *gorm.DB, ctx context.Context) (int64, error) {
	var zero T
	var count int64
	if err := db.WithContext(ctx).Model(&zero).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
