package nestedcsv

import (
	"encoding/csv"
	"io"
	"os"
)

// OpenFile opens the delimited file at path name and returns a reader of its
// records. The file is decompressed with the codec configured by the
// Compression option, or with the codec matching the extension of the file
// name.
//
// The program must call Close on the reader to release the file.
func OpenFile(name string, options ...ReaderOption) (*Reader, error) {
	config, err := NewReaderConfig(options...)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	codec := config.Compression
	if codec == nil {
		codec = CompressionOf(name)
	}

	z, err := codec.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	r := newReader(NewCSVReader(z, config), config)
	r.closer = closers{z, f}
	return r, nil
}

// CreateFile creates the delimited file at path name and returns a writer of
// records to it. The file is compressed with the codec configured by the
// Compression option, or with the codec matching the extension of the file
// name.
//
// The program must call Close on the writer to flush the records and release
// the file.
func CreateFile(name string, options ...WriterOption) (*Writer, error) {
	config, err := NewWriterConfig(options...)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}

	codec := config.Compression
	if codec == nil {
		codec = CompressionOf(name)
	}

	z, err := codec.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	w := newWriter(NewCSVWriter(z, config), config)
	w.closer = closers{z, f}
	return w, nil
}

// NewCSVReader returns a *csv.Reader configured to read rows from r with the
// delimiter and parsing options of config. The reader does not enforce a
// number of fields per row, mismatches are reported by the schema instead.
func NewCSVReader(r io.Reader, config *ReaderConfig) *csv.Reader {
	c := csv.NewReader(r)
	c.Comma = config.Comma
	c.LazyQuotes = config.LazyQuotes
	c.TrimLeadingSpace = config.TrimLeadingSpace
	c.FieldsPerRecord = -1
	c.ReuseRecord = true
	return c
}

// NewCSVWriter returns a *csv.Writer configured to write rows to w with the
// delimiter and line terminator of config.
func NewCSVWriter(w io.Writer, config *WriterConfig) *csv.Writer {
	c := csv.NewWriter(w)
	c.Comma = config.Comma
	c.UseCRLF = config.UseCRLF
	return c
}

// closers closes a stack of streams in order, returning the first error.
type closers []io.Closer

func (c closers) Close() error {
	var err error
	for _, closer := range c {
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
