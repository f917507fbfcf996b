package models

import "errors"

// Common errors for catalog storage operations.
var (
	// Entity errors
	ErrEntityNotFound  = errors.New("entity not found")
	ErrDuplicateEntity = errors.New("entity already exists")

	// Final entity errors
	ErrFinalEntityNotFound = errors.New("final entity not found")

	// Edge errors
	ErrEdgeNotFound = errors.New("reference edge not found")
	ErrInvalidEdge  = errors.New("invalid reference edge")
)
