// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
)

// Table names
const (
	TablePolls       = "polls"
	TablePollOptions = "poll_options"
)

// Row is one record keyed by column name.
type Row map[string]any

// Store is row-level access to named tables. Implementations must be safe
// for concurrent use; each call either succeeds or fails as a whole.
type Store interface {
	// Select returns the rows matching q, honoring its columns, ordering and
	// range. No match is an empty result, not an error.
	Select(ctx context.Context, q Query) ([]Row, error)

	// Insert writes rows into table as a single batch and returns them as
	// stored. All rows must carry the same columns.
	Insert(ctx context.Context, table string, rows []Row) ([]Row, error)

	// Update applies patch to the rows matching q and returns them as
	// updated. q must have at least one filter.
	Update(ctx context.Context, q Query, patch Row) ([]Row, error)

	// Delete removes the rows matching q. q must have at least one filter.
	// Deleting nothing is not an error.
	Delete(ctx context.Context, q Query) error
}

// Error is a failure reported by the store itself. Err, when set, is the
// underlying driver or network error.
type Error struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Error codes used by all implementations
const (
	CodeInvalidQuery = "invalid_query"
	CodeConstraint   = "constraint_violation"
	CodeUnavailable  = "unavailable"
	CodeUnknown      = "unknown"
)
