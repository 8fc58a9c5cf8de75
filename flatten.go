package nestedcsv

// Flatten returns the flat keys and values of record, visiting fields depth
// first in insertion order. Keys are made of the names of the fields leading to
// each scalar value, joined by sep.
//
// Objects with no fields do not produce any keys, and neither does a scalar
// record, since it has no name.
func Flatten(record Record, sep byte) (keys, values []string) {
	return AppendFlatten(nil, nil, record, sep)
}

// AppendFlatten is like Flatten but appends the keys and values to the slices
// passed as arguments, which lets programs reuse the slices across calls.
func AppendFlatten(keys, values []string, record Record, sep byte) ([]string, []string) {
	if record.Kind() != ObjectKind {
		return keys, values
	}
	f := flattener{
		keys:   keys,
		values: values,
		sep:    sep,
	}
	f.flatten(record.arena, record.index)
	return f.keys, f.values
}

type flattener struct {
	keys   []string
	values []string
	path   []byte
	sep    byte
}

func (f *flattener) flatten(a *arena, index int32) {
	base := len(f.path)

	for _, c := range a.nodes[index].children {
		n := &a.nodes[c]

		if base != 0 {
			f.path = append(f.path, f.sep)
		}
		f.path = append(f.path, n.name...)

		switch n.kind {
		case ScalarKind:
			f.keys = append(f.keys, string(f.path))
			f.values = append(f.values, n.value)
		case ObjectKind:
			f.flatten(a, c)
		}

		f.path = f.path[:base]
	}
}
