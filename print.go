package nestedcsv

import (
	"io"
	"strconv"
)

// Print writes a human-readable representation of record to w, one field per
// line, with nested objects indented by tabs.
func Print(w io.Writer, record Record) error {
	return PrintIndent(w, record, "\t", "\n")
}

// PrintIndent is like Print but allows the program to configure the indentation
// pattern and the line terminator.
func PrintIndent(w io.Writer, record Record, pattern, newline string) error {
	pw := &printWriter{writer: w}
	pi := &printIndent{pattern: pattern, newline: newline}

	switch record.Kind() {
	case ScalarKind:
		pw.WriteString(strconv.Quote(record.Value()))
		pw.WriteString(newline)
	case ObjectKind:
		printFields(pw, record, pi)
	}

	return pw.err
}

func printFields(w io.StringWriter, record Record, indent *printIndent) {
	record.Range(func(name string, value Record) bool {
		indent.writeTo(w)
		w.WriteString(name)

		if value.Kind() == ObjectKind {
			w.WriteString(":")
			w.WriteString(indent.newline)
			indent.push()
			printFields(w, value, indent)
			indent.pop()
		} else {
			w.WriteString(": ")
			w.WriteString(strconv.Quote(value.Value()))
			w.WriteString(indent.newline)
		}
		return true
	})
}

// PrintSchema writes the record tree of schema to w, showing the column that
// each leaf is bound to.
func PrintSchema(w io.Writer, schema *Schema) error {
	pw := &printWriter{writer: w}
	pi := &printIndent{pattern: "\t", newline: "\n", repeat: 1}

	pw.WriteString("schema {")
	pw.WriteString(pi.newline)
	printSchemaNode(pw, schema, 0, pi)
	pw.WriteString("}")
	pw.WriteString(pi.newline)
	return pw.err
}

func printSchemaNode(w io.StringWriter, schema *Schema, index int32, indent *printIndent) {
	for _, c := range schema.arena.nodes[index].children {
		n := &schema.arena.nodes[c]
		indent.writeTo(w)
		w.WriteString(strconv.Quote(n.name))

		if n.kind == ObjectKind {
			w.WriteString(" {")
			w.WriteString(indent.newline)
			indent.push()
			printSchemaNode(w, schema, c, indent)
			indent.pop()
			indent.writeTo(w)
			w.WriteString("}")
		} else {
			w.WriteString(" = $")
			w.WriteString(strconv.Itoa(int(n.column) + 1))
			w.WriteString(" # ")
			w.WriteString(schema.columns[n.column])
		}

		w.WriteString(indent.newline)
	}
}

type printIndent struct {
	pattern string
	newline string
	repeat  int
}

func (i *printIndent) push() {
	i.repeat++
}

func (i *printIndent) pop() {
	i.repeat--
}

func (i *printIndent) writeTo(w io.StringWriter) {
	for n := 0; n < i.repeat; n++ {
		w.WriteString(i.pattern)
	}
}

type printWriter struct {
	writer io.Writer
	err    error
}

func (w *printWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.writer.Write(b)
	if err != nil {
		w.err = err
	}
	return n, err
}

func (w *printWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}
