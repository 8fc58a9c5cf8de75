package nestedcsv_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/segmentio/nestedcsv"
)

func Example() {
	const input = `user.name.first,user.name.last,user.age,user.sex
John,Doe,34,M
Jane,Roe,28,F
`
	rows := nestedcsv.NewCSVReader(strings.NewReader(input), nestedcsv.DefaultReaderConfig())
	reader := nestedcsv.NewReader(rows, nestedcsv.Blacklist("user.sex"))

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(record)
	}
	// Output:
	// {"user":{"name":{"first":"John","last":"Doe"},"age":"34"}}
	// {"user":{"name":{"first":"Jane","last":"Roe"},"age":"28"}}
}

func ExampleRename() {
	schema, err := nestedcsv.NewSchema([]string{"firstname", "lastname", "age", "sex"},
		nestedcsv.Rename(map[string]string{"firstname": "user.name.first"}),
	)
	if err != nil {
		log.Fatal(err)
	}

	record, _ := schema.Ingest([]string{"John", "Doe", "34", "M"})
	fmt.Println(record)
	// Output: {"user":{"name":{"first":"John"}},"lastname":"Doe","age":"34","sex":"M"}
}

func ExampleWriter() {
	rows := nestedcsv.NewCSVWriter(os.Stdout, nestedcsv.DefaultWriterConfig())
	writer := nestedcsv.NewWriter(rows)

	for _, value := range []map[string]map[string]string{
		{"a": {"b": "1", "c": "2"}},
		{"a": {"b": "3", "c": "4"}},
	} {
		if err := writer.WriteValue(value); err != nil {
			log.Fatal(err)
		}
	}
	if err := writer.Flush(); err != nil {
		log.Fatal(err)
	}
	// Output:
	// a.b,a.c
	// 1,2
	// 3,4
}

func ExamplePrintIndent() {
	record, _ := nestedcsv.ValueOf(map[string]interface{}{
		"user": map[string]string{"name": "John", "age": "34"},
	})
	_ = nestedcsv.PrintIndent(os.Stdout, record, "  ", "\n")
	// Output:
	// user:
	//   age: "34"
	//   name: "John"
}
