package models

import (
	"time"
)

// ResultHashOrphanParentDeleted is the reserved result hash written to an
// entity when one of its direct parents is removed by the orphan sweeper.
//
// The value can never collide with a real fingerprint (fingerprints are hex
// digests), so the processing pipeline treats it as "stale, recompute".
const ResultHashOrphanParentDeleted = "orphan-parent-deleted"

// Entity is a catalog item as tracked by the processing pipeline.
//
// The pipeline writes the unprocessed payload at discovery time, fills in the
// processed payload and result hash on each processing cycle, and derives a
// FinalEntity from the processed form. The sweeper only ever deletes rows or
// overwrites ResultHash with the reprocessing sentinel; payloads are opaque
// to it.
type Entity struct {
	// ID is the opaque internal identifier, immutable once created.
	ID string `gorm:"primaryKey;column:entity_id;size:36" json:"entity_id"`

	// Ref is the unique human-readable entity reference, immutable.
	Ref string `gorm:"column:entity_ref;uniqueIndex;not null;size:512" json:"entity_ref"`

	// Unprocessed is the raw entity body as emitted by a provider.
	Unprocessed []byte `gorm:"column:unprocessed_entity" json:"unprocessed_entity,omitempty"`

	// Processed is the entity body after the processing pipeline ran.
	Processed []byte `gorm:"column:processed_entity" json:"processed_entity,omitempty"`

	// Errors holds serialized diagnostics from the last processing cycle.
	Errors []byte `gorm:"column:errors" json:"errors,omitempty"`

	// NextUpdateAt schedules the next processing cycle.
	NextUpdateAt *time.Time `gorm:"column:next_update_at" json:"next_update_at,omitempty"`

	// LastDiscoveryAt records when a provider last asserted this entity.
	LastDiscoveryAt *time.Time `gorm:"column:last_discovery_at" json:"last_discovery_at,omitempty"`

	// ResultHash fingerprints the processing output, or holds the
	// reprocessing sentinel after a parent was swept.
	ResultHash string `gorm:"column:result_hash;size:255" json:"result_hash,omitempty"`
}

// TableName returns the table name for Entity.
func (Entity) TableName() string {
	return "entities"
}

// NeedsReprocessing reports whether the sweeper flagged this entity because a
// direct parent was deleted.
func (e *Entity) NeedsReprocessing() bool {
	return e.ResultHash == ResultHashOrphanParentDeleted
}

// FinalEntity is the stitched output derived from a processed Entity,
// one row per entity.
type FinalEntity struct {
	// EntityID ties the final row to its Entity.
	EntityID string `gorm:"primaryKey;column:entity_id;size:36" json:"entity_id"`

	// Hash fingerprints the stitched output.
	Hash string `gorm:"column:hash;size:255" json:"hash"`

	// StitchTicket is an opaque coordination token owned by the stitcher.
	StitchTicket string `gorm:"column:stitch_ticket;size:255" json:"stitch_ticket,omitempty"`
}

// TableName returns the table name for FinalEntity.
func (FinalEntity) TableName() string {
	return "final_entities"
}
