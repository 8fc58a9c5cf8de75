// Package quick runs property checks against randomly generated rows and
// records. Inputs are deterministic and cover a range of sizes, unlike the
// standard testing/quick package.
package quick

import (
	"fmt"
	"math/rand"
	"reflect"

	"github.com/segmentio/nestedcsv"
)

const maxDepth = 4

var (
	rowType    = reflect.TypeOf([]string(nil))
	recordType = reflect.TypeOf(nestedcsv.Record{})

	// Values are built from characters which need quoting in delimited files,
	// and from the default path separator.
	characters = []rune("abcXYZ019 ,;\"'\n\r\t.é")
	names      = []string{"id", "name", "user", "value", "tags", "a", "b"}
)

// Check calls f with inputs of growing sizes until it returns false. The input
// of f must be either a []string, which receives rows of random values, or a
// nestedcsv.Record, which receives objects with as many leaves as the size of
// the input.
func Check(f interface{}) error {
	v := reflect.ValueOf(f)
	r := rand.New(rand.NewSource(0))

	var makeInput func(int) interface{}
	switch v.Type().In(0) {
	case rowType:
		makeInput = func(n int) interface{} { return Row(r, n) }
	case recordType:
		makeInput = func(n int) interface{} { return Record(r, n) }
	}

	if makeInput == nil {
		panic("cannot run quick check on function with input of type " + v.Type().In(0).String())
	}

	for _, n := range [...]int{
		1, 2, 3, 4, 5, 6, 7, 8, 9,
		10, 11, 12, 13, 14, 15, 16, 17, 18, 19,
		20, 31, 32, 33, 63, 64, 65,
		99, 100, 101,
		127, 128, 129,
		255, 256, 257,
	} {
		for i := 0; i < 3; i++ {
			in := makeInput(n)
			ok := v.Call([]reflect.Value{reflect.ValueOf(in)})
			if !ok[0].Bool() {
				return fmt.Errorf("test #%d: failed on input of size %d: %v", i+1, n, in)
			}
		}
	}
	return nil
}

// Row returns a row of n random values.
func Row(r *rand.Rand, n int) []string {
	row := make([]string, n)
	for i := range row {
		row[i] = Value(r)
	}
	return row
}

// Value returns a random value, possibly empty.
func Value(r *rand.Rand) string {
	b := make([]rune, r.Intn(12))
	for i := range b {
		b[i] = characters[r.Intn(len(characters))]
	}
	return string(b)
}

// Record returns a random object with n scalar leaves, nested up to a few
// levels deep. The names of siblings are unique and do not contain the default
// separator, and nested objects are never empty, so the record can be written
// as a row and read back.
func Record(r *rand.Rand, n int) nestedcsv.Record {
	return record(r, n, 0)
}

func record(r *rand.Rand, n, depth int) nestedcsv.Record {
	fields := make([]nestedcsv.Field, 0, n)

	for i := 0; n > 0; i++ {
		f := nestedcsv.Field{Name: fmt.Sprintf("%s%d", names[r.Intn(len(names))], i)}

		if depth < maxDepth && r.Intn(3) == 0 {
			m := 1 + r.Intn(n)
			f.Value = record(r, m, depth+1)
			n -= m
		} else {
			f.Value = nestedcsv.Scalar(Value(r))
			n--
		}

		fields = append(fields, f)
	}

	return nestedcsv.Object(fields...)
}
