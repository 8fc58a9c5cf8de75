// Package brotli implements the BROTLI compression codec for delimited files
// with the .br extension.
package brotli

import (
	"io"

	"github.com/andybalholm/brotli"
	"github.com/segmentio/nestedcsv/compress"
)

const (
	// DefaultQuality favors speed, delimited files are usually written once
	// and then streamed.
	DefaultQuality = 0
	// DefaultLGWin lets the encoder pick the window size from the quality.
	DefaultLGWin = 0
)

// Codec compresses and decompresses streams of rows with brotli. The zero
// value uses DefaultQuality and DefaultLGWin.
type Codec struct {
	// Quality controls the compression-speed vs compression-density trade-offs.
	// The higher the quality, the slower the compression. Range is 0 to 11.
	Quality int
	// LGWin is the base 2 logarithm of the sliding window size.
	// Range is 10 to 24. 0 indicates automatic configuration based on Quality.
	LGWin int
}

// String returns the name of the codec, as printed in the debug logs.
func (c *Codec) String() string {
	return "BROTLI"
}

// NewReader returns a reader decompressing the brotli stream read from r.
// Closing the reader does not close r.
func (c *Codec) NewReader(r io.Reader) (compress.Reader, error) {
	return reader{brotli.NewReader(r)}, nil
}

// NewWriter returns a writer compressing rows to w. The stream is only
// complete once the writer was closed.
func (c *Codec) NewWriter(w io.Writer) (compress.Writer, error) {
	return writer{brotli.NewWriterOptions(w, c.options())}, nil
}

func (c *Codec) options() brotli.WriterOptions {
	return brotli.WriterOptions{
		Quality: c.Quality,
		LGWin:   c.LGWin,
	}
}

// reader adds the Close method that brotli.Reader lacks; it holds no
// resources to release.
type reader struct{ *brotli.Reader }

func (r reader) Close() error { return nil }

type writer struct{ *brotli.Writer }

// Reset discards the state of w and makes it write a new stream to ww.
func (w writer) Reset(ww io.Writer) error { w.Writer.Reset(ww); return nil }
