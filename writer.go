package nestedcsv

import (
	"fmt"
	"io"

	"github.com/segmentio/nestedcsv/internal/debug"
)

// RowWriter is the interface implemented by sinks of rows of fields, such as
// *csv.Writer.
//
// Write must not retain the row after returning. When the writer buffers rows,
// it may also implement a Flush method, either as Flush() error or as the
// Flush() and Error() error pair of *csv.Writer.
type RowWriter interface {
	Write(row []string) error
}

// RowWriterFunc is an implementation of the RowWriter interface for regular Go
// functions.
type RowWriterFunc func([]string) error

// Write satisfies the RowWriter interface.
func (f RowWriterFunc) Write(row []string) error { return f(row) }

// Writer writes nested records to a sink of rows, flattening each record into
// a row. The columns of the header are derived from the first record written,
// and written to the sink before its values; every subsequent record must
// flatten to the same columns.
//
// Writer values are not safe to use concurrently from multiple goroutines.
type Writer struct {
	config     WriterConfig
	rows       RowWriter
	closer     io.Closer
	header     []string
	keys       []string
	values     []string
	numRecords int
}

// NewWriter constructs a writer of records to the rows passed as argument.
//
// The function panics if the writer configuration is invalid.
func NewWriter(rows RowWriter, options ...WriterOption) *Writer {
	config, err := NewWriterConfig(options...)
	if err != nil {
		panic(err)
	}
	return newWriter(rows, config)
}

func newWriter(rows RowWriter, config *WriterConfig) *Writer {
	return &Writer{
		config: *config,
		rows:   rows,
	}
}

// Header returns the columns of the header written by w, or nil if no records
// were written yet.
func (w *Writer) Header() []string { return copyStrings(w.header) }

// NumRecords returns the number of records written by w.
func (w *Writer) NumRecords() int { return w.numRecords }

// Write flattens record and writes it to the underlying sink. The first call
// also writes the header.
//
// The method returns ErrNotObject if record is not an object, and a
// *ShapeMismatchError if the record does not flatten to the columns of the
// header. Nothing is written when the columns of the first record cannot be
// read back as a header: the error wraps ErrSchemaConflict when two columns
// collide, and ErrMalformedHeader when a column has an empty path segment.
// Errors from the sink are returned unchanged.
func (w *Writer) Write(record Record) error {
	if record.Kind() != ObjectKind {
		return fmt.Errorf("%w: %s", ErrNotObject, record.Kind())
	}

	w.keys, w.values = AppendFlatten(w.keys[:0], w.values[:0], record, w.config.Separator)

	if w.header == nil {
		if len(w.keys) == 0 {
			return fmt.Errorf("%w: the first record has no values", ErrMissingHeader)
		}
		// The header must read back into the same tree.
		if _, err := compileSchema(w.keys, &SchemaConfig{Separator: w.config.Separator}); err != nil {
			return err
		}
		if err := w.rows.Write(w.keys); err != nil {
			return err
		}
		w.header = copyStrings(w.keys)
		debug.Log("msg", "wrote header", "columns", len(w.header))
	} else if !stringsAreEqual(w.header, w.keys) {
		return &ShapeMismatchError{
			Record: w.numRecords + 1,
			Want:   copyStrings(w.header),
			Got:    copyStrings(w.keys),
		}
	}

	if err := w.rows.Write(w.values); err != nil {
		return err
	}

	w.numRecords++
	return nil
}

// WriteValue converts value to a record with ValueOf, then writes it to w.
func (w *Writer) WriteValue(value interface{}) error {
	record, err := ValueOf(value)
	if err != nil {
		return err
	}
	return w.Write(record)
}

// Flush flushes the rows buffered in the underlying sink, if it supports it.
func (w *Writer) Flush() error {
	switch f := w.rows.(type) {
	case interface {
		Flush()
		Error() error
	}:
		f.Flush()
		return f.Error()
	case interface{ Flush() error }:
		return f.Flush()
	default:
		return nil
	}
}

// Close flushes w, then closes the file it was writing to when it was created
// by CreateFile.
func (w *Writer) Close() error {
	err := w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
		w.closer = nil
	}
	return err
}
