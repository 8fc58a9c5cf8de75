package nestedcsv

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableWriter is a RowWriter rendering rows as an aligned text table, which is
// useful to display records on a terminal. The first row written is used as the
// table header.
//
// Rows are buffered until Flush is called, since the width of the columns
// depends on all the values of the table.
type TableWriter struct {
	output io.Writer
	header []string
	rows   [][]string
}

// NewTableWriter constructs a TableWriter rendering tables to w.
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{output: w}
}

// Write satisfies the RowWriter interface.
func (t *TableWriter) Write(row []string) error {
	if t.header == nil {
		t.header = copyStrings(row)
	} else {
		t.rows = append(t.rows, copyStrings(row))
	}
	return nil
}

// Flush renders the rows written since the last flush, then discards them. The
// header is repeated at the top of each rendered table.
func (t *TableWriter) Flush() error {
	if t.header == nil {
		return nil
	}
	pw := &printWriter{writer: t.output}
	table := tablewriter.NewWriter(pw)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(t.header)
	table.AppendBulk(t.rows)
	table.Render()
	t.rows = t.rows[:0]
	return pw.err
}
