package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation references an unknown entry id
var ErrNotFound = errors.New("entry not found")

// ValidationError reports an invalid field on a write operation
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ParseError reports a malformed import payload
type ParseError struct {
	Format string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse %s payload: %s: %v", e.Format, e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to parse %s payload: %s", e.Format, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failed write of the backing file.
// The in-memory collection is left unchanged when it is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist lexicon (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
