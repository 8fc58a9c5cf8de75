package nestedcsv

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/segmentio/nestedcsv/compress"
	"github.com/segmentio/nestedcsv/compress/brotli"
	"github.com/segmentio/nestedcsv/compress/gzip"
	"github.com/segmentio/nestedcsv/compress/lz4"
	"github.com/segmentio/nestedcsv/compress/snappy"
	"github.com/segmentio/nestedcsv/compress/uncompressed"
	"github.com/segmentio/nestedcsv/compress/zstd"
)

var (
	// Uncompressed is the codec used for files with no recognized extension.
	Uncompressed compress.Codec = new(uncompressed.Codec)

	compressionCodecs = map[string]compress.Codec{
		"uncompressed": Uncompressed,
		"gzip":         new(gzip.Codec),
		"snappy":       new(snappy.Codec),
		"brotli":       new(brotli.Codec),
		"zstd":         new(zstd.Codec),
		"lz4":          new(lz4.Codec),
	}

	compressionExtensions = map[string]string{
		".gz":     "gzip",
		".gzip":   "gzip",
		".sz":     "snappy",
		".snappy": "snappy",
		".br":     "brotli",
		".zst":    "zstd",
		".zstd":   "zstd",
		".lz4":    "lz4",
	}
)

// LookupCompression returns the compression codec with the given name (e.g.
// "gzip" or "zstd"). The lookup is case insensitive.
func LookupCompression(name string) (compress.Codec, error) {
	if codec, ok := compressionCodecs[strings.ToLower(name)]; ok {
		return codec, nil
	}
	names := make([]string, 0, len(compressionCodecs))
	for name := range compressionCodecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("unknown compression codec %q (supported: %s)", name, strings.Join(names, ", "))
}

// CompressionOf returns the compression codec matching the extension of the
// file name passed as argument, or Uncompressed if the extension is not one of
// a compression format.
func CompressionOf(fileName string) compress.Codec {
	if name, ok := compressionExtensions[strings.ToLower(filepath.Ext(fileName))]; ok {
		return compressionCodecs[name]
	}
	return Uncompressed
}
