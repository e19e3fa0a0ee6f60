package service

import (
	"database/sql"
	"errors"
	"fmt"
)

// ValidationError reports malformed input or a broken structural invariant:
// mismatched list lengths, non-monotonic offsets, invalid enum or day values.
// Surfaced to callers as a client error.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an unresolved identifier.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %v not found", e.Entity, e.ID)
}

// ConflictError reports a referential guard violation, such as deleting a stop
// still used by a route.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// asNotFound converts the store's no-rows sentinel into a NotFoundError for
// the given entity, passing every other error through unchanged.
func asNotFound(err error, entity string, id any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return err
}
