// Package compress provides the generic APIs implemented by the compression
// codecs of delimited files.
//
// Codecs operate on streams: the codec of a file wraps the file, and the rows
// are read from or written to the wrapper.
package compress

import (
	"io"
)

// The Codec interface represents compression codecs implemented by the
// compress sub-packages.
//
// Codec instances must be safe to use concurrently from multiple goroutines.
type Codec interface {
	// Returns a human-readable name for the codec.
	String() string

	// Returns a reader decompressing the content of r.
	NewReader(r io.Reader) (Reader, error)

	// Returns a writer compressing its input to w. The writer must be closed
	// to flush the compressed data to w; closing it does not close w.
	NewWriter(w io.Writer) (Writer, error)
}

// Reader is a decompressing stream. Closing the reader does not close the
// underlying reader.
type Reader interface {
	io.ReadCloser
	Reset(io.Reader) error
}

// Writer is a compressing stream. Closing the writer flushes the compressed
// data but does not close the underlying writer.
type Writer interface {
	io.WriteCloser
	Reset(io.Writer) error
}
