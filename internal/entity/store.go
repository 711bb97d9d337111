package entity

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get, Update, and Remove when the requested
// record does not exist.
var ErrNotFound = errors.New("entity not found")

// ErrDuplicateID is returned by Add when a record with the same ID already exists.
var ErrDuplicateID = errors.New("entity with that ID already exists")

// Store manages catalog records.
//
// All implementations must be safe for concurrent use.
type Store interface {
	// Add creates a new record. Returns the record with a generated ID if
	// the provided record's ID is empty.
	// Returns [ErrDuplicateID] if a record with the same non-empty ID exists.
	Add(ctx context.Context, rec Record) (Record, error)

	// Get retrieves a record by ID.
	// Returns [ErrNotFound] when no record with that ID exists.
	Get(ctx context.Context, id string) (Record, error)

	// List returns all records, optionally filtered by type and/or tags.
	// An empty [ListOptions] returns all records.
	// Results order is not guaranteed.
	List(ctx context.Context, opts ListOptions) ([]Record, error)

	// Update replaces an existing record. The record's ID must be non-empty.
	// Returns [ErrNotFound] when no record with that ID exists.
	Update(ctx context.Context, rec Record) error

	// Remove deletes a record by ID.
	// Returns [ErrNotFound] when no record with that ID exists.
	Remove(ctx context.Context, id string) error

	// BulkImport adds multiple records one at a time.
	// Each record without an ID gets one auto-generated.
	// Returns the number of records successfully imported and any error
	// that caused the import to abort early.
	BulkImport(ctx context.Context, recs []Record) (int, error)
}

// ListOptions narrows the result set of [Store.List].
// All non-zero fields are applied as AND conditions.
type ListOptions struct {
	// Type restricts results to records of this type.
	// An empty value matches all types.
	Type Type

	// Tags restricts results to records that carry all of the specified tags.
	// An empty slice matches all records regardless of their tags.
	Tags []string
}
