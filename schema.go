package nestedcsv

import (
	"fmt"
	"strings"
)

// Schema is the compiled form of a header. It holds the skeleton of the record
// tree that rows of the header are ingested into, and binds each column of the
// header to the leaf of the tree that its values are written to.
//
// The shape of the tree is fixed when the schema is created; ingesting a row
// only writes the values of the row to the leaves, which costs one write per
// column regardless of the depth of the tree.
//
// Schema values are not safe to use concurrently from multiple goroutines.
type Schema struct {
	arena    arena
	cells    []int32
	columns  []string
	names    []string
	numCells int
	sep      byte
}

// Column describes a column of the header that a schema was compiled from.
type Column struct {
	// Position of the column in the header, starting at zero.
	Index int
	// Name of the column in the header.
	Name string
	// Path of the leaf that the column values are written to, or nil if the
	// column was not selected.
	Path Path
}

// Selected returns true if the column is part of the records.
func (c Column) Selected() bool { return c.Path != nil }

const discard = -1

// NewSchema compiles a schema from the list of column names of a header.
//
// The function returns ErrMissingHeader if the header is empty, and a
// *SchemaConflictError if the selected columns do not form a valid tree: two
// columns with the same path, or the path of a column being a prefix of the
// path of another column.
func NewSchema(header []string, options ...SchemaOption) (*Schema, error) {
	config := DefaultSchemaConfig()
	config.Apply(options...)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return compileSchema(header, config)
}

type childKey struct {
	parent int32
	name   string
}

func compileSchema(header []string, config *SchemaConfig) (*Schema, error) {
	if len(header) == 0 {
		return nil, ErrMissingHeader
	}

	policy := config.Policy
	sel := policy.selector()

	s := &Schema{
		cells:   make([]int32, len(header)),
		columns: copyStrings(header),
		names:   make([]string, len(header)),
		sep:     config.Separator,
	}
	s.arena.nodes = make([]node, 0, 2*len(header))
	s.arena.add(ObjectKind, "", "", noColumn)

	children := make(map[childKey]int32, len(header))

	for i, column := range header {
		name := policy.Name(column)
		s.names[i] = name

		if !sel.selects(name) {
			s.cells[i] = discard
			continue
		}

		path, err := SplitPath(name, s.sep)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}

		cell, err := s.bind(children, int32(i), path)
		if err != nil {
			return nil, err
		}

		s.cells[i] = cell
		s.numCells++
	}

	return s, nil
}

func (s *Schema) bind(children map[childKey]int32, column int32, path Path) (int32, error) {
	parent := int32(0)

	for depth, name := range path {
		leaf := depth == len(path)-1
		key := childKey{parent: parent, name: name}

		if child, exists := children[key]; exists {
			if leaf || s.arena.nodes[child].kind == ScalarKind {
				return discard, &SchemaConflictError{
					Column:   s.columns[column],
					Conflict: s.columns[s.arena.nodes[child].column],
					Path:     path[:depth+1],
				}
			}
			parent = child
			continue
		}

		kind := ObjectKind
		if leaf {
			kind = ScalarKind
		}
		child := s.arena.add(kind, name, "", column)
		s.arena.attach(parent, child)
		children[key] = child
		parent = child
	}

	return parent, nil
}

// NumColumns returns the number of columns in the header of s.
func (s *Schema) NumColumns() int { return len(s.cells) }

// NumCells returns the number of columns selected in s.
func (s *Schema) NumCells() int { return s.numCells }

// Separator returns the path separator that s was compiled with.
func (s *Schema) Separator() byte { return s.sep }

// Header returns the column names that s was compiled from.
func (s *Schema) Header() []string { return copyStrings(s.columns) }

// Columns returns the list of columns of the header, in order.
func (s *Schema) Columns() []Column {
	columns := make([]Column, len(s.cells))
	for i := range columns {
		columns[i] = s.Column(i)
	}
	return columns
}

// Column returns the column at index i of the header.
func (s *Schema) Column(i int) Column {
	c := Column{Index: i, Name: s.columns[i]}
	if s.cells[i] != discard {
		// The name was already validated when compiling the schema.
		c.Path, _ = SplitPath(s.names[i], s.sep)
	}
	return c
}

// Cell returns the leaf that the values of column i are written to, or an
// invalid record if the column was not selected.
func (s *Schema) Cell(i int) Record {
	if s.cells[i] == discard {
		return Record{}
	}
	return Record{arena: &s.arena, index: s.cells[i]}
}

// Root returns the root of the record tree of s. The record observes the values
// of the last row ingested.
func (s *Schema) Root() Record { return Record{arena: &s.arena, index: 0} }

// Ingest is like IngestRow but does not report a row number in errors.
func (s *Schema) Ingest(row []string) (Record, error) {
	return s.IngestRow(0, row)
}

// IngestRow writes the values of row to the leaves of s and returns the root of
// the record tree. The row number is only used to report errors.
//
// The returned record is the same on every call: its values are valid until the
// next call to IngestRow, Ingest, or Clear. Call Snapshot on the record to
// retain a copy.
//
// An empty row produces an invalid record and no error, signaling that there
// is no data. Rows with a number of fields other than the number of columns in
// the header produce a *RowArityError.
func (s *Schema) IngestRow(rowNumber int, row []string) (Record, error) {
	if len(row) == 0 {
		return Record{}, nil
	}

	if len(row) != len(s.cells) {
		return Record{}, &RowArityError{
			Row:  rowNumber,
			Want: len(s.cells),
			Got:  len(row),
		}
	}

	for i, cell := range s.cells {
		if cell != discard {
			s.arena.nodes[cell].value = row[i]
		}
	}

	return s.Root(), nil
}

// Clear resets the values of all leaves of s to the empty string.
func (s *Schema) Clear() {
	for _, cell := range s.cells {
		if cell != discard {
			s.arena.nodes[cell].value = ""
		}
	}
}

// String returns a representation of the record tree of s, showing which
// column each leaf is bound to.
func (s *Schema) String() string {
	b := new(strings.Builder)
	_ = PrintSchema(b, s)
	return b.String()
}
