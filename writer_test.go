package nestedcsv_test

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segmentio/nestedcsv"
	"github.com/segmentio/nestedcsv/internal/quick"
	"github.com/segmentio/nestedcsv/internal/test"
)

func field(name string, value nestedcsv.Record) nestedcsv.Field {
	return nestedcsv.Field{Name: name, Value: value}
}

type rowBuffer struct {
	rows [][]string
}

func (b *rowBuffer) Write(row []string) error {
	b.rows = append(b.rows, append([]string{}, row...))
	return nil
}

func TestWriterWrite(t *testing.T) {
	buffer := new(bytes.Buffer)
	w := nestedcsv.NewWriter(nestedcsv.NewCSVWriter(buffer, nestedcsv.DefaultWriterConfig()))

	records := []nestedcsv.Record{
		nestedcsv.Object(field("a", nestedcsv.Object(
			field("b", nestedcsv.Scalar("1")),
			field("c", nestedcsv.Scalar("2")),
		))),
		nestedcsv.Object(field("a", nestedcsv.Object(
			field("b", nestedcsv.Scalar("3")),
			field("c", nestedcsv.Scalar("4")),
		))),
	}

	for _, record := range records {
		require.NoError(t, w.Write(record))
	}
	require.NoError(t, w.Flush())

	test.AssertText(t, "a.b,a.c\n1,2\n3,4\n", buffer.String())
	assert.Equal(t, []string{"a.b", "a.c"}, w.Header())
	assert.Equal(t, 2, w.NumRecords())
}

func TestWriterShapeMismatch(t *testing.T) {
	tests := []struct {
		scenario string
		record   nestedcsv.Record
		got      []string
	}{
		{
			scenario: "missing column",
			record:   nestedcsv.Object(field("a", nestedcsv.Object(field("b", nestedcsv.Scalar("3"))))),
			got:      []string{"a.b"},
		},

		{
			scenario: "extra column",
			record: nestedcsv.Object(
				field("a", nestedcsv.Object(
					field("b", nestedcsv.Scalar("3")),
					field("c", nestedcsv.Scalar("4")),
				)),
				field("d", nestedcsv.Scalar("5")),
			),
			got: []string{"a.b", "a.c", "d"},
		},

		{
			scenario: "reordered columns",
			record: nestedcsv.Object(field("a", nestedcsv.Object(
				field("c", nestedcsv.Scalar("4")),
				field("b", nestedcsv.Scalar("3")),
			))),
			got: []string{"a.c", "a.b"},
		},

		{
			scenario: "scalar instead of object",
			record:   nestedcsv.Object(field("a", nestedcsv.Scalar("3"))),
			got:      []string{"a"},
		},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			rows := new(rowBuffer)
			w := nestedcsv.NewWriter(rows)

			first := nestedcsv.Object(field("a", nestedcsv.Object(
				field("b", nestedcsv.Scalar("1")),
				field("c", nestedcsv.Scalar("2")),
			)))
			require.NoError(t, w.Write(first))

			err := w.Write(test.record)
			var mismatch *nestedcsv.ShapeMismatchError
			require.True(t, errors.As(err, &mismatch), "unexpected error: %v", err)
			assert.ErrorIs(t, err, nestedcsv.ErrShapeMismatch)
			assert.Equal(t, 2, mismatch.Record)
			assert.Equal(t, []string{"a.b", "a.c"}, mismatch.Want)
			assert.Equal(t, test.got, mismatch.Got)

			// Nothing is written for the rejected record.
			assert.Equal(t, [][]string{{"a.b", "a.c"}, {"1", "2"}}, rows.rows)
			assert.Equal(t, 1, w.NumRecords())
		})
	}
}

func TestWriterNotObject(t *testing.T) {
	w := nestedcsv.NewWriter(new(rowBuffer))

	assert.ErrorIs(t, w.Write(nestedcsv.Scalar("hello")), nestedcsv.ErrNotObject)
	assert.ErrorIs(t, w.Write(nestedcsv.Record{}), nestedcsv.ErrNotObject)
	assert.Nil(t, w.Header())
}

func TestWriterEmptyFirstRecord(t *testing.T) {
	rows := new(rowBuffer)
	w := nestedcsv.NewWriter(rows)

	err := w.Write(nestedcsv.Object(field("a", nestedcsv.Object())))
	assert.ErrorIs(t, err, nestedcsv.ErrMissingHeader)
	assert.Empty(t, rows.rows)

	require.NoError(t, w.Write(nestedcsv.Object(field("a", nestedcsv.Scalar("1")))))
	assert.Equal(t, [][]string{{"a"}, {"1"}}, rows.rows)
}

func TestWriterInvalidHeader(t *testing.T) {
	tests := []struct {
		scenario string
		record   nestedcsv.Record
		err      error
	}{
		{
			scenario: "duplicate columns",
			record: nestedcsv.Object(
				field("a.b", nestedcsv.Scalar("1")),
				field("a", nestedcsv.Object(field("b", nestedcsv.Scalar("2")))),
			),
			err: nestedcsv.ErrSchemaConflict,
		},
		{
			scenario: "column prefix of another column",
			record: nestedcsv.Object(
				field("a", nestedcsv.Scalar("1")),
				field("a.b", nestedcsv.Scalar("2")),
			),
			err: nestedcsv.ErrSchemaConflict,
		},
		{
			scenario: "empty key",
			record:   nestedcsv.Object(field("", nestedcsv.Scalar("1"))),
			err:      nestedcsv.ErrMalformedHeader,
		},
		{
			scenario: "empty nested key",
			record: nestedcsv.Object(
				field("a", nestedcsv.Object(field("", nestedcsv.Scalar("1")))),
			),
			err: nestedcsv.ErrMalformedHeader,
		},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			rows := new(rowBuffer)
			w := nestedcsv.NewWriter(rows)

			assert.ErrorIs(t, w.Write(test.record), test.err)
			assert.Empty(t, rows.rows)
			assert.Nil(t, w.Header())
			assert.Equal(t, 0, w.NumRecords())

			require.NoError(t, w.Write(nestedcsv.Object(field("a", nestedcsv.Scalar("1")))))
			assert.Equal(t, [][]string{{"a"}, {"1"}}, rows.rows)
		})
	}
}

func TestWriterSinkError(t *testing.T) {
	failure := errors.New("failure")
	w := nestedcsv.NewWriter(nestedcsv.RowWriterFunc(func([]string) error { return failure }))

	assert.Equal(t, failure, w.Write(nestedcsv.Object(field("a", nestedcsv.Scalar("1")))))
	assert.Equal(t, 0, w.NumRecords())
}

func TestWriterSeparator(t *testing.T) {
	rows := new(rowBuffer)
	w := nestedcsv.NewWriter(rows, nestedcsv.Separator('/'))

	require.NoError(t, w.WriteValue(map[string]interface{}{
		"a": map[string]interface{}{"b": 1, "c": true},
	}))
	assert.Equal(t, [][]string{{"a/b", "a/c"}, {"1", "true"}}, rows.rows)
}

func TestWriterWriteValue(t *testing.T) {
	type name struct {
		First string `csv:"first"`
		Last  string `csv:"last"`
	}
	type user struct {
		Name   name   `csv:"name"`
		Age    int    `csv:"age"`
		Secret string `csv:"-"`
	}

	buffer := new(strings.Builder)
	w := nestedcsv.NewWriter(nestedcsv.NewCSVWriter(buffer, nestedcsv.DefaultWriterConfig()))

	require.NoError(t, w.WriteValue(user{Name: name{"John", "Doe"}, Age: 34, Secret: "x"}))
	require.NoError(t, w.WriteValue(&user{Name: name{"Jane", "Roe"}, Age: 28}))
	require.NoError(t, w.Flush())

	test.AssertText(t, "name.first,name.last,age\nJohn,Doe,34\nJane,Roe,28\n", buffer.String())
}

func TestWriterUseCRLF(t *testing.T) {
	buffer := new(bytes.Buffer)
	config, err := nestedcsv.NewWriterConfig(nestedcsv.UseCRLF(true), nestedcsv.Comma(';'))
	require.NoError(t, err)

	w := nestedcsv.NewWriter(nestedcsv.NewCSVWriter(buffer, config), config)
	require.NoError(t, w.Write(nestedcsv.Object(
		field("x", nestedcsv.Scalar("1")),
		field("y", nestedcsv.Scalar("a;b")),
	)))
	require.NoError(t, w.Close())

	assert.Equal(t, "x;y\r\n1;\"a;b\"\r\n", buffer.String())
}

func TestRoundTrip(t *testing.T) {
	err := quick.Check(func(record nestedcsv.Record) bool {
		rows := new(rowBuffer)
		if err := nestedcsv.NewWriter(rows).Write(record); err != nil {
			t.Error(err)
			return false
		}
		if len(rows.rows) != 2 {
			t.Errorf("wrong number of rows: %d", len(rows.rows))
			return false
		}

		schema, err := nestedcsv.NewSchema(rows.rows[0])
		if err != nil {
			t.Error(err)
			return false
		}

		got, err := schema.Ingest(rows.rows[1])
		if err != nil {
			t.Error(err)
			return false
		}

		// Insertion order is retained too.
		return nestedcsv.Equal(record, got) && record.String() == got.String()
	})
	if err != nil {
		t.Error(err)
	}
}

func TestRoundTripCSV(t *testing.T) {
	prng := rand.New(rand.NewSource(1))

	buffer := new(bytes.Buffer)
	w := nestedcsv.NewWriter(nestedcsv.NewCSVWriter(buffer, nestedcsv.DefaultWriterConfig()))

	records := make([]nestedcsv.Record, 100)
	for i := range records {
		records[i] = nestedcsv.Object(
			field("id", nestedcsv.Scalar(fmt.Sprint(i))),
			field("user", nestedcsv.Object(
				field("name", nestedcsv.Scalar(strings.ReplaceAll(quick.Value(prng), "\r", ""))),
				field("note", nestedcsv.Scalar(strings.ReplaceAll(quick.Value(prng), "\r", ""))),
			)),
		)
		require.NoError(t, w.Write(records[i]))
	}
	require.NoError(t, w.Flush())

	r := nestedcsv.NewReader(nestedcsv.NewCSVReader(buffer, nestedcsv.DefaultReaderConfig()))
	for i, want := range records {
		got, err := r.Read()
		require.NoError(t, err)
		assert.Equal(t, want.String(), got.String(), "record %d", i)
	}
}

func TestTableWriter(t *testing.T) {
	buffer := new(strings.Builder)
	w := nestedcsv.NewWriter(nestedcsv.NewTableWriter(buffer))

	require.NoError(t, w.Write(nestedcsv.Object(
		field("user", nestedcsv.Object(
			field("name", nestedcsv.Scalar("John")),
			field("age", nestedcsv.Scalar("34")),
		)),
	)))
	require.NoError(t, w.Write(nestedcsv.Object(
		field("user", nestedcsv.Object(
			field("name", nestedcsv.Scalar("Jane")),
			field("age", nestedcsv.Scalar("28")),
		)),
	)))
	require.NoError(t, w.Flush())

	output := buffer.String()
	for _, s := range []string{"user.name", "user.age", "John", "Jane", "34", "28"} {
		assert.Contains(t, output, s)
	}
	assert.Equal(t, 1, strings.Count(output, "user.name"))

	// Flushing again renders no rows but keeps the header.
	buffer.Reset()
	require.NoError(t, w.Flush())
	assert.NotContains(t, buffer.String(), "John")
}
