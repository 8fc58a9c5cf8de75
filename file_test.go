package nestedcsv_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segmentio/nestedcsv"
	"github.com/segmentio/nestedcsv/internal/test"
)

func TestFileRoundTrip(t *testing.T) {
	for _, name := range []string{
		"users.csv",
		"users.csv.gz",
		"users.csv.sz",
		"users.csv.br",
		"users.csv.zst",
		"users.csv.lz4",
		"USERS.CSV.GZIP",
	} {
		t.Run(name, func(t *testing.T) {
			test.WithTestDir(t, func(dir string) {
				path := filepath.Join(dir, name)

				w, err := nestedcsv.CreateFile(path)
				require.NoError(t, err)
				require.NoError(t, w.WriteValue(map[string]interface{}{
					"user": map[string]interface{}{"age": 34, "name": "John"},
				}))
				require.NoError(t, w.WriteValue(map[string]interface{}{
					"user": map[string]interface{}{"age": 28, "name": "Jane"},
				}))
				test.Close(t, w)

				r, err := nestedcsv.OpenFile(path, nestedcsv.Blacklist("user.age"))
				require.NoError(t, err)
				defer test.Close(t, r)

				assert.Equal(t, []string{
					`{"user":{"name":"John"}}`,
					`{"user":{"name":"Jane"}}`,
				}, readAll(t, r))
			})
		})
	}
}

func TestFileCompressionIsDetected(t *testing.T) {
	test.WithTestDir(t, func(dir string) {
		path := filepath.Join(dir, "data.csv.gz")

		w, err := nestedcsv.CreateFile(path)
		require.NoError(t, err)
		require.NoError(t, w.WriteValue(map[string]string{"a": "1"}))
		test.Close(t, w)

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		// gzip magic number
		assert.Equal(t, []byte{0x1f, 0x8b}, b[:2])
	})
}

func TestFileCompressionOverridesExtension(t *testing.T) {
	test.WithTestDir(t, func(dir string) {
		path := filepath.Join(dir, "data.csv.gz")
		uncompressed := nestedcsv.Compression(nestedcsv.Uncompressed)

		w, err := nestedcsv.CreateFile(path, uncompressed)
		require.NoError(t, err)
		require.NoError(t, w.WriteValue(map[string]string{"a": "1"}))
		test.Close(t, w)

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a\n1\n", string(b))

		r, err := nestedcsv.OpenFile(path, uncompressed)
		require.NoError(t, err)
		defer test.Close(t, r)

		assert.Equal(t, []string{`{"a":"1"}`}, readAll(t, r))
	})
}

func TestFileCompressionOption(t *testing.T) {
	test.WithTestDir(t, func(dir string) {
		path := filepath.Join(dir, "data")

		codec, err := nestedcsv.LookupCompression("ZSTD")
		require.NoError(t, err)

		w, err := nestedcsv.CreateFile(path, nestedcsv.Compression(codec))
		require.NoError(t, err)
		require.NoError(t, w.WriteValue(map[string]string{"a": "1"}))
		test.Close(t, w)

		r, err := nestedcsv.OpenFile(path, nestedcsv.Compression(codec))
		require.NoError(t, err)
		defer test.Close(t, r)

		assert.Equal(t, []string{`{"a":"1"}`}, readAll(t, r))
	})
}

func TestOpenFileMissing(t *testing.T) {
	test.WithTestDir(t, func(dir string) {
		_, err := nestedcsv.OpenFile(filepath.Join(dir, "missing.csv"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLookupCompression(t *testing.T) {
	for _, name := range []string{"uncompressed", "gzip", "snappy", "brotli", "zstd", "lz4"} {
		codec, err := nestedcsv.LookupCompression(name)
		if assert.NoError(t, err, name) {
			assert.NotNil(t, codec)
		}
	}

	_, err := nestedcsv.LookupCompression("lzo")
	assert.EqualError(t, err, `unknown compression codec "lzo" (supported: brotli, gzip, lz4, snappy, uncompressed, zstd)`)
}

func TestCompressionOf(t *testing.T) {
	assert.Equal(t, nestedcsv.Uncompressed, nestedcsv.CompressionOf("data.csv"))
	assert.Equal(t, nestedcsv.Uncompressed, nestedcsv.CompressionOf("data"))
	assert.Equal(t, "GZIP", nestedcsv.CompressionOf("data.csv.gz").String())
	assert.Equal(t, "ZSTD", nestedcsv.CompressionOf("data.ZST").String())
	assert.Equal(t, "SNAPPY", nestedcsv.CompressionOf("data.snappy").String())
}
