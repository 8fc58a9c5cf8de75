package test

import (
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/stretchr/testify/assert"
)

func Close(t *testing.T, c io.Closer) {
	assert.NoError(t, c.Close())
}

func WithTestDir(t *testing.T, f func(dir string)) {
	dir, err := os.MkdirTemp("", "nestedcsv-test-")
	assert.NoError(t, err)
	defer func() {
		if r := recover(); r != nil {
			t.Log("Test directory available at", dir)
			panic(r)
		} else if t.Failed() {
			t.Log("Test directory available at", dir)
		} else {
			os.RemoveAll(dir)
		}
	}()

	f(dir)
}

// Diff returns a unified diff of want and got, or an empty string if they are
// equal.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath("want"), want, got)
	return fmt.Sprint(gotextdiff.ToUnified("want", "got", want, edits))
}

// AssertText fails the test with a unified diff when got differs from want.
func AssertText(t *testing.T, want, got string) {
	t.Helper()
	if diff := Diff(want, got); diff != "" {
		t.Errorf("output mismatch:\n%s", diff)
	}
}
