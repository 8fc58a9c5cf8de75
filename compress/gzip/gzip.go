// Package gzip implements the GZIP compression codec.
package gzip

import (
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/segmentio/nestedcsv/compress"
)

const (
	DefaultLevel = gzip.DefaultCompression
)

type Codec struct {
	// Level is the compression level, from gzip.BestSpeed to
	// gzip.BestCompression. Zero selects DefaultLevel.
	Level int
}

func (c *Codec) String() string {
	return "GZIP"
}

func (c *Codec) NewReader(r io.Reader) (compress.Reader, error) {
	z, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	return reader{z}, nil
}

func (c *Codec) NewWriter(w io.Writer) (compress.Writer, error) {
	z, err := gzip.NewWriterLevel(nonNilWriter(w), c.level())
	if err != nil {
		return nil, err
	}
	return writer{z}, nil
}

func (c *Codec) level() int {
	if c.Level != 0 {
		return c.Level
	}
	return DefaultLevel
}

type reader struct{ *gzip.Reader }

func (r reader) Reset(rr io.Reader) error {
	if rr == nil {
		// Pass it an empty reader, which is a zero-size value implementing the
		// flate.Reader interface to avoid the construction of a bufio.Reader in
		// the call to Reset.
		rr = devNull{}
	}
	return r.Reader.Reset(rr)
}

type writer struct{ *gzip.Writer }

func (w writer) Reset(ww io.Writer) error {
	w.Writer.Reset(nonNilWriter(ww))
	return nil
}

func nonNilWriter(w io.Writer) io.Writer {
	if w == nil {
		w = devNull{}
	}
	return w
}

type devNull struct{}

func (devNull) ReadByte() (byte, error)     { return 0, io.EOF }
func (devNull) Read([]byte) (int, error)    { return 0, io.EOF }
func (devNull) Write(b []byte) (int, error) { return len(b), nil }
