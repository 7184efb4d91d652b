package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for ingestion.
var (
	ErrMissingIDColumn = errors.New("id column is required")
	ErrEmptyTable      = errors.New("table has no header row")
	ErrInvalidNodeID   = errors.New("invalid node id")
	ErrMalformedCell   = errors.New("relation cell must be \"<kind> <target-id>\"")
	ErrInvalidTarget   = errors.New("relation target is not an integer")
	ErrUnknownMode     = errors.New("unknown parse mode")
)

// Sentinel errors for graph construction.
var (
	ErrFrozen    = errors.New("graph is frozen")
	ErrNotFrozen = errors.New("graph is still being built")
)

// RowError locates an ingestion failure in the source table.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}

	return fmt.Sprintf("line %d, column %s: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
