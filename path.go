package nestedcsv

import (
	"fmt"
	"strings"
)

// Path is the sequence of names leading from the root of a record to one of its
// values. Paths are derived from column names by splitting them on the
// separator, which is '.' unless configured otherwise.
type Path []string

// SplitPath splits name on sep. The function returns ErrMalformedHeader if name
// has an empty segment (e.g. "", "a..b" or "a.").
func SplitPath(name string, sep byte) (Path, error) {
	path := Path(strings.Split(name, string(sep)))
	for _, segment := range path {
		if segment == "" {
			return nil, fmt.Errorf("%w: column name %q has an empty path segment", ErrMalformedHeader, name)
		}
	}
	return path, nil
}

// Join returns the segments of path joined by sep.
func (path Path) Join(sep byte) string {
	return strings.Join(path, string(sep))
}

// String returns path joined with the default separator.
func (path Path) String() string {
	return path.Join(DefaultSeparator)
}

// Equal returns true if path and other have the same segments.
func (path Path) Equal(other Path) bool {
	return stringsAreEqual(path, other)
}

// Less orders paths segment by segment, shorter paths first when one is a
// prefix of the other.
func (path Path) Less(other Path) bool {
	n := len(path)
	if n > len(other) {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if path[i] != other[i] {
			return path[i] < other[i]
		}
	}
	return len(path) < len(other)
}

// HasPrefix returns true if prefix is a prefix of path. Every path has the
// empty path as prefix, and is a prefix of itself.
func (path Path) HasPrefix(prefix Path) bool {
	return len(prefix) <= len(path) && stringsAreEqual(path[:len(prefix)], prefix)
}

func stringsAreEqual(strings1, strings2 []string) bool {
	if len(strings1) != len(strings2) {
		return false
	}

	for i := range strings1 {
		if strings1[i] != strings2[i] {
			return false
		}
	}

	return true
}
