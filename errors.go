package nestedcsv

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingHeader is returned when a stream has no header row, or when the
	// header row has no columns.
	ErrMissingHeader = errors.New("missing header")

	// ErrMalformedHeader is returned when a selected column name cannot be
	// turned into a path, for example because it has an empty segment.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrSchemaConflict is returned when two selected columns map to positions
	// of the record tree which cannot coexist.
	ErrSchemaConflict = errors.New("schema conflict")

	// ErrPolicyLocked is returned when attempting to change the rename map,
	// whitelist, or blacklist of a reader after rows were read from it.
	ErrPolicyLocked = errors.New("selection policy cannot change after rows were read")

	// ErrRowArity is returned when a row does not have as many fields as the
	// header it is read against.
	ErrRowArity = errors.New("row arity mismatch")

	// ErrShapeMismatch is returned by writers when a record does not flatten
	// to the same columns as the first record written.
	ErrShapeMismatch = errors.New("record shape mismatch")

	// ErrNotObject is returned by writers when asked to write a record which is
	// not an object.
	ErrNotObject = errors.New("record is not an object")
)

// SchemaConflictError is returned by NewSchema when two columns resolve to the
// same path, or when the path of one column is a prefix of the path of another.
type SchemaConflictError struct {
	// Names of the two columns, as they appeared in the header.
	Column   string
	Conflict string
	// Position in the record tree where the conflict was detected.
	Path Path
}

func (e *SchemaConflictError) Error() string {
	return fmt.Sprintf("%s: column %q conflicts with column %q at %q", ErrSchemaConflict, e.Column, e.Conflict, e.Path)
}

func (e *SchemaConflictError) Unwrap() error { return ErrSchemaConflict }

// RowArityError reports a row which has a different number of fields than the
// header. Row is the 1-based number of the row in the stream, not counting the
// header, or zero when unknown.
type RowArityError struct {
	Row  int
	Want int
	Got  int
}

func (e *RowArityError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("%s: want=%d got=%d", ErrRowArity, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: row %d: want=%d got=%d", ErrRowArity, e.Row, e.Want, e.Got)
}

func (e *RowArityError) Unwrap() error { return ErrRowArity }

// ShapeMismatchError reports a record which flattened to different columns
// than the header written for the first record. Record is the 1-based number
// of the offending record.
type ShapeMismatchError struct {
	Record int
	Want   []string
	Got    []string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: record %d: want=[%s] got=[%s]", ErrShapeMismatch, e.Record,
		strings.Join(e.Want, ","),
		strings.Join(e.Got, ","),
	)
}

func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }
