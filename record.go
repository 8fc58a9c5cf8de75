package nestedcsv

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Kind is an enumeration of the kinds of values that a record can hold.
type Kind int8

const (
	// InvalidKind is the kind of the zero Record.
	InvalidKind Kind = iota
	// ScalarKind is the kind of records holding a single string value.
	ScalarKind
	// ObjectKind is the kind of records holding named child records.
	ObjectKind
)

func (k Kind) String() string {
	switch k {
	case ScalarKind:
		return "scalar"
	case ObjectKind:
		return "object"
	default:
		return "invalid"
	}
}

// Record is a nested value: either a scalar string or an object mapping names
// to records. Objects retain the order in which their fields were inserted.
//
// Record values are lightweight references into the storage of a tree. The
// records returned by a Schema or a Reader reference the storage of the schema,
// and observe the values of the next row after each ingestion. Programs that
// need to retain a record across ingestions must call Snapshot.
//
// The zero value is an invalid record, used to represent the absence of data.
type Record struct {
	arena *arena
	index int32
}

// Field is a named record, used to construct objects.
type Field struct {
	Name  string
	Value Record
}

// Scalar constructs a scalar record holding value.
func Scalar(value string) Record {
	a := newArena(1)
	return Record{arena: a, index: a.add(ScalarKind, "", value, noColumn)}
}

// Object constructs an object record from the list of fields. The field values
// are copied into the new record. When multiple fields have the same name, the
// last value wins but the position of the first one is retained. Fields holding
// invalid records are skipped.
func Object(fields ...Field) Record {
	size := 1
	for _, f := range fields {
		if f.Value.IsValid() {
			size += f.Value.arena.size(f.Value.index)
		}
	}
	a := newArena(size)
	root := a.add(ObjectKind, "", "", noColumn)
	for _, f := range fields {
		if f.Value.IsValid() {
			a.set(root, a.copyFrom(f.Value.arena, f.Value.index, f.Name))
		}
	}
	return Record{arena: a, index: root}
}

// IsValid returns true if r holds a value.
func (r Record) IsValid() bool { return r.arena != nil }

func (r Record) node() *node { return &r.arena.nodes[r.index] }

// Kind returns the kind of r.
func (r Record) Kind() Kind {
	if !r.IsValid() {
		return InvalidKind
	}
	return r.node().kind
}

// Value returns the value of a scalar record, or the empty string for other
// kinds of records.
func (r Record) Value() string {
	if r.Kind() != ScalarKind {
		return ""
	}
	return r.node().value
}

// Len returns the number of fields of an object record, zero otherwise.
func (r Record) Len() int {
	if !r.IsValid() {
		return 0
	}
	return len(r.node().children)
}

// Names returns the names of the fields of r, in insertion order.
func (r Record) Names() []string {
	if !r.IsValid() {
		return nil
	}
	children := r.node().children
	names := make([]string, len(children))
	for i, c := range children {
		names[i] = r.arena.nodes[c].name
	}
	return names
}

// Index returns the name and value of the field at index i of an object record.
func (r Record) Index(i int) (string, Record) {
	c := r.node().children[i]
	return r.arena.nodes[c].name, Record{arena: r.arena, index: c}
}

// Field returns the field of r with the given name, or an invalid record if r
// has no such field.
func (r Record) Field(name string) Record {
	if !r.IsValid() {
		return Record{}
	}
	if c := r.arena.lookup(r.index, name); c >= 0 {
		return Record{arena: r.arena, index: c}
	}
	return Record{}
}

// Lookup follows path from r, returning an invalid record if one of the path
// segments does not exist.
func (r Record) Lookup(path Path) Record {
	for _, name := range path {
		if r = r.Field(name); !r.IsValid() {
			break
		}
	}
	return r
}

// Range calls f for each field of r, in insertion order, until f returns false.
func (r Record) Range(f func(name string, value Record) bool) {
	for i, n := 0, r.Len(); i < n; i++ {
		if !f(r.Index(i)) {
			break
		}
	}
}

// Snapshot returns a deep copy of r, which does not share storage with r and is
// therefore unaffected by later ingestions into the schema that r came from.
func (r Record) Snapshot() Record {
	if !r.IsValid() {
		return Record{}
	}
	a := newArena(r.arena.size(r.index))
	return Record{arena: a, index: a.copyFrom(r.arena, r.index, "")}
}

// Map returns a representation of r using Go maps, where scalar values are
// strings and objects are map[string]interface{}. The method returns nil if r
// is not an object. The result does not share storage with r.
func (r Record) Map() map[string]interface{} {
	if r.Kind() != ObjectKind {
		return nil
	}
	m := make(map[string]interface{}, r.Len())
	r.Range(func(name string, value Record) bool {
		if value.Kind() == ObjectKind {
			m[name] = value.Map()
		} else {
			m[name] = value.Value()
		}
		return true
	})
	return m
}

// String returns the JSON representation of r.
func (r Record) String() string {
	b, err := r.MarshalJSON()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(b)
}

// Equal returns true if a and b hold the same values. Objects are compared as
// mappings: the order of their fields does not matter.
func Equal(a, b Record) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case ScalarKind:
		return a.Value() == b.Value()
	case ObjectKind:
		if a.Len() != b.Len() {
			return false
		}
		equal := true
		a.Range(func(name string, value Record) bool {
			equal = Equal(value, b.Field(name))
			return equal
		})
		return equal
	default:
		return true
	}
}

// ValueOf constructs a record from a Go value.
//
// Strings, byte slices, booleans, numbers, and values implementing fmt.Stringer
// become scalars. Maps with string
// keys become objects with their fields sorted by key. Slices and arrays
// become objects keyed by the decimal index of their elements. Structs become
// objects with one field per exported struct field, named after the "csv" tag
// when present ("-" skips the field). Nil values become empty scalars.
func ValueOf(v interface{}) (Record, error) {
	switch x := v.(type) {
	case Record:
		return x, nil
	case nil:
		return Scalar(""), nil
	case string:
		return Scalar(x), nil
	case []byte:
		return Scalar(string(x)), nil
	}
	a := newArena(8)
	index, err := a.valueOf("", reflect.ValueOf(v))
	if err != nil {
		return Record{}, err
	}
	return Record{arena: a, index: index}, nil
}

var recordType = reflect.TypeOf(Record{})

func (a *arena) valueOf(name string, v reflect.Value) (int32, error) {
	if !v.IsValid() {
		return a.add(ScalarKind, name, "", noColumn), nil
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return a.add(ScalarKind, name, "", noColumn), nil
		}
		if v.Kind() == reflect.Interface {
			return a.valueOf(name, v.Elem())
		}
	}

	if v.Type() == recordType {
		r := v.Interface().(Record)
		if !r.IsValid() {
			return a.add(ScalarKind, name, "", noColumn), nil
		}
		return a.copyFrom(r.arena, r.index, name), nil
	}

	if v.CanInterface() && v.Kind() != reflect.Map && v.Kind() != reflect.Ptr {
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return a.add(ScalarKind, name, s.String(), noColumn), nil
		}
	}

	switch v.Kind() {
	case reflect.Ptr:
		return a.valueOf(name, v.Elem())

	case reflect.String:
		return a.add(ScalarKind, name, v.String(), noColumn), nil

	case reflect.Bool:
		return a.add(ScalarKind, name, strconv.FormatBool(v.Bool()), noColumn), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.add(ScalarKind, name, strconv.FormatInt(v.Int(), 10), noColumn), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.add(ScalarKind, name, strconv.FormatUint(v.Uint(), 10), noColumn), nil

	case reflect.Float32:
		return a.add(ScalarKind, name, strconv.FormatFloat(v.Float(), 'g', -1, 32), noColumn), nil

	case reflect.Float64:
		return a.add(ScalarKind, name, strconv.FormatFloat(v.Float(), 'g', -1, 64), noColumn), nil

	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			return a.add(ScalarKind, name, string(v.Bytes()), noColumn), nil
		}
		parent := a.add(ObjectKind, name, "", noColumn)
		for i := 0; i < v.Len(); i++ {
			child, err := a.valueOf(strconv.Itoa(i), v.Index(i))
			if err != nil {
				return -1, err
			}
			a.attach(parent, child)
		}
		return parent, nil

	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return -1, fmt.Errorf("cannot construct record from map with keys of type %s", v.Type().Key())
		}
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		parent := a.add(ObjectKind, name, "", noColumn)
		for _, key := range keys {
			child, err := a.valueOf(key.String(), v.MapIndex(key))
			if err != nil {
				return -1, err
			}
			a.set(parent, child)
		}
		return parent, nil

	case reflect.Struct:
		t := v.Type()
		parent := a.add(ObjectKind, name, "", noColumn)
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" {
				continue
			}
			fieldName := f.Name
			if tag, ok := f.Tag.Lookup("csv"); ok {
				tag = strings.Split(tag, ",")[0]
				if tag == "-" {
					continue
				}
				if tag != "" {
					fieldName = tag
				}
			}
			child, err := a.valueOf(fieldName, v.Field(i))
			if err != nil {
				return -1, err
			}
			a.set(parent, child)
		}
		return parent, nil

	default:
		return -1, fmt.Errorf("cannot construct record from value of type %s", v.Type())
	}
}
