package models

import (
	"errors"
	"testing"
)

func strptr(s string) *string { return &s }

func TestReferenceEdge_IsRoot(t *testing.T) {
	tests := []struct {
		name string
		edge ReferenceEdge
		want bool
	}{
		{"provider edge", ReferenceEdge{SourceKey: strptr("provider-a"), TargetRef: "component/site"}, true},
		{"internal edge", ReferenceEdge{SourceRef: strptr("component/site"), TargetRef: "api/pets"}, false},
		{"empty source key", ReferenceEdge{SourceKey: strptr(""), TargetRef: "api/pets"}, false},
		{"nil sources", ReferenceEdge{TargetRef: "api/pets"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.edge.IsRoot(); got != tt.want {
				t.Errorf("IsRoot() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReferenceEdge_Validate(t *testing.T) {
	tests := []struct {
		name    string
		edge    ReferenceEdge
		wantErr bool
	}{
		{"valid root edge", ReferenceEdge{SourceKey: strptr("provider-a"), TargetRef: "component/site"}, false},
		{"valid internal edge", ReferenceEdge{SourceRef: strptr("component/site"), TargetRef: "api/pets"}, false},
		{"both sources set", ReferenceEdge{SourceKey: strptr("provider-a"), SourceRef: strptr("component/site"), TargetRef: "api/pets"}, true},
		{"no source set", ReferenceEdge{TargetRef: "api/pets"}, true},
		{"missing target", ReferenceEdge{SourceKey: strptr("provider-a")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.edge.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidEdge) {
				t.Errorf("Validate() error = %v, want ErrInvalidEdge", err)
			}
		})
	}
}

func TestEntity_NeedsReprocessing(t *testing.T) {
	tests := []struct {
		name   string
		entity Entity
		want   bool
	}{
		{"sentinel set", Entity{Ref: "api/pets", ResultHash: ResultHashOrphanParentDeleted}, true},
		{"real hash", Entity{Ref: "api/pets", ResultHash: "9f86d081884c7d65"}, false},
		{"empty hash", Entity{Ref: "api/pets"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entity.NeedsReprocessing(); got != tt.want {
				t.Errorf("NeedsReprocessing() = %v, want %v", got, tt.want)
			}
		})
	}
}
