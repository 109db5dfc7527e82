package ingest

import (
	"fmt"
	"strings"
)

// MalformedInputError indicates the uploaded payload could not be parsed as
// tabular CSV at all. The underlying parse error is preserved.
type MalformedInputError struct {
	Err error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed csv input: %v", e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// MissingColumnsError indicates one or more schema columns are absent from the
// CSV header. Columns is sorted for stable error messages.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns: %s", strings.Join(e.Columns, ", "))
}

// PersistenceError indicates the atomic batch commit failed; no rows from the
// batch are visible.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist batch: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
