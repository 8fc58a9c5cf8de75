package nestedcsv

import (
	"errors"
	"io"

	"github.com/segmentio/nestedcsv/internal/debug"
)

// RowReader is the interface implemented by sources of rows of fields, such as
// *csv.Reader.
//
// Read returns io.EOF when there are no more rows. The reader is responsible
// for splitting the fields of rows, the values it returns are used unchanged.
type RowReader interface {
	Read() ([]string, error)
}

// RowReaderFunc is an implementation of the RowReader interface for regular Go
// functions.
type RowReaderFunc func() ([]string, error)

// Read satisfies the RowReader interface.
func (f RowReaderFunc) Read() ([]string, error) { return f() }

// Reader reads nested records from a source of rows. The first row of the
// source is the header, which is compiled into a schema when the first record
// is read.
//
// The selection policy of a reader may be changed until a row was read from it,
// after which the methods changing it return ErrPolicyLocked.
//
// Reader values are not safe to use concurrently from multiple goroutines.
type Reader struct {
	config  ReaderConfig
	rows    RowReader
	closer  io.Closer
	header  []string
	schema  *Schema
	numRows int
	locked  bool
	err     error
}

// NewReader constructs a reader of records from the rows passed as argument.
//
// The function panics if the reader configuration is invalid.
func NewReader(rows RowReader, options ...ReaderOption) *Reader {
	config, err := NewReaderConfig(options...)
	if err != nil {
		panic(err)
	}
	return newReader(rows, config)
}

func newReader(rows RowReader, config *ReaderConfig) *Reader {
	r := &Reader{rows: rows}
	r.config = *config
	r.config.Policy = config.Policy.clone()
	return r
}

// Schema returns the schema that rows of r are ingested with, reading the
// header from the source if it was not read yet.
func (r *Reader) Schema() (*Schema, error) {
	if r.schema != nil {
		return r.schema, nil
	}

	if r.header == nil {
		header, err := r.rows.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = ErrMissingHeader
			}
			return nil, err
		}
		if len(header) == 0 {
			return nil, ErrMissingHeader
		}
		r.header = copyStrings(header)
	}

	schema, err := compileSchema(r.header, r.config.schemaConfig())
	if err != nil {
		return nil, err
	}

	debug.Do(func() {
		debug.Log("msg", "compiled schema",
			"columns", schema.NumColumns(),
			"selected", schema.NumCells(),
			"tree", schema.String(),
		)
	})
	r.schema = schema
	return schema, nil
}

// Read reads the next row of r and returns it as a nested record. The method
// returns io.EOF when there are no more rows.
//
// The record is owned by the schema of r: its values are overwritten by the
// next call to Read. Use Snapshot to retain a copy of the record.
//
// Once a row with the wrong number of fields has been seen, the stream cannot
// be trusted to be aligned with the header and every subsequent call returns
// the same *RowArityError. Errors from the source of rows are returned
// unchanged and do not prevent retrying, including when reading the header.
func (r *Reader) Read() (Record, error) {
	if r.err != nil {
		return Record{}, r.err
	}

	schema, err := r.Schema()
	if err != nil {
		// A failed read of the header can be retried, a missing or invalid
		// header cannot.
		if r.header != nil || errors.Is(err, ErrMissingHeader) {
			r.err = err
		}
		return Record{}, err
	}

	row, err := r.rows.Read()
	if err != nil {
		return Record{}, err
	}

	r.locked = true
	record, err := schema.IngestRow(r.numRows+1, row)
	if err != nil {
		r.err = err
		return Record{}, err
	}

	if !record.IsValid() {
		return Record{}, io.EOF
	}

	r.numRows++
	return record, nil
}

// ReadMap is like Read but returns the record as a map, which is not affected
// by later calls to Read.
func (r *Reader) ReadMap() (map[string]interface{}, error) {
	record, err := r.Read()
	if err != nil {
		return nil, err
	}
	return record.Map(), nil
}

// RowsFetched returns the number of rows read from r, not counting the header.
func (r *Reader) RowsFetched() int { return r.numRows }

// Policy returns a copy of the selection policy of r.
func (r *Reader) Policy() Policy { return r.config.Policy.clone() }

// SetPolicy replaces the selection policy of r.
func (r *Reader) SetPolicy(policy Policy) error {
	return r.setPolicy(func(p *Policy) { *p = policy.clone() })
}

// SetRename replaces the rename map of r.
func (r *Reader) SetRename(columns map[string]string) error {
	return r.setPolicy(func(p *Policy) { p.Rename = Policy{Rename: columns}.clone().Rename })
}

// SetWhitelist replaces the whitelist of r. A nil list removes the whitelist.
func (r *Reader) SetWhitelist(names []string) error {
	return r.setPolicy(func(p *Policy) { p.Whitelist = copyStrings(names) })
}

// SetBlacklist replaces the blacklist of r. A nil list removes the blacklist.
func (r *Reader) SetBlacklist(names []string) error {
	return r.setPolicy(func(p *Policy) { p.Blacklist = copyStrings(names) })
}

func (r *Reader) setPolicy(update func(*Policy)) error {
	if r.locked {
		return ErrPolicyLocked
	}
	if r.schema == nil && r.header != nil {
		// The schema failed to compile with the previous policy.
		r.err = nil
	}
	update(&r.config.Policy)
	r.schema = nil
	return nil
}

// Reset positions r to read from a new source of rows. The header is read again
// from the new source, the row counter is reset to zero, and the selection
// policy may be changed again until the first row is read.
//
// Reset does not close the previous source.
func (r *Reader) Reset(rows RowReader) {
	r.rows = rows
	r.closer = nil
	r.header = nil
	r.schema = nil
	r.numRows = 0
	r.locked = false
	r.err = nil
	debug.Log("msg", "reader reset")
}

// Close closes the file that r was reading from when it was created by
// OpenFile, it has no effect otherwise.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	closer := r.closer
	r.closer = nil
	return closer.Close()
}
