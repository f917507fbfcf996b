package models

import "fmt"

// ReferenceEdge is a directed edge in the entity reference graph.
//
// Exactly one of SourceKey or SourceRef is set:
//   - SourceKey set: a provider asserts TargetRef as a first-class member of
//     the graph (a root edge). The provider key is not itself an entity.
//   - SourceRef set: entity SourceRef depends on entity TargetRef.
type ReferenceEdge struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// SourceKey is the provider key for root edges, nil otherwise.
	SourceKey *string `gorm:"column:source_key;index;size:255" json:"source_key,omitempty"`

	// SourceRef is the referencing entity for internal edges, nil otherwise.
	SourceRef *string `gorm:"column:source_entity_ref;index;size:512" json:"source_entity_ref,omitempty"`

	// TargetRef is the referenced entity. Always set.
	TargetRef string `gorm:"column:target_entity_ref;index;not null;size:512" json:"target_entity_ref"`
}

// TableName returns the table name for ReferenceEdge.
func (ReferenceEdge) TableName() string {
	return "reference_edges"
}

// IsRoot reports whether this edge originates from a provider key rather
// than another entity.
func (e *ReferenceEdge) IsRoot() bool {
	return e.SourceKey != nil && *e.SourceKey != ""
}

// Validate checks the exactly-one-source invariant.
func (e *ReferenceEdge) Validate() error {
	hasKey := e.SourceKey != nil && *e.SourceKey != ""
	hasRef := e.SourceRef != nil && *e.SourceRef != ""

	if hasKey == hasRef {
		return fmt.Errorf("%w: exactly one of source_key and source_entity_ref must be set", ErrInvalidEdge)
	}
	if e.TargetRef == "" {
		return fmt.Errorf("%w: target_entity_ref is required", ErrInvalidEdge)
	}
	return nil
}
