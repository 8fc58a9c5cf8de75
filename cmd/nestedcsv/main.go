// Command nestedcsv converts between delimited files with dot-path column names
// and nested records.
//
// Usage:
//
//	nestedcsv read [flags] FILE      print the records of FILE
//	nestedcsv write [flags] [FILE]   write JSON lines of FILE (or stdin) as a delimited file
//	nestedcsv schema [flags] FILE    print the schema compiled from the header of FILE
//
// Every flag may also be set with an environment variable prefixed with
// NESTEDCSV_ (e.g. NESTEDCSV_WHITELIST), or in the file passed to --config.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/kolide/kit/logutil"
	"github.com/pkg/errors"
)

type stdio struct {
	in  io.Reader
	out io.Writer
}

var subcommands = map[string]func(args []string, stdio stdio) error{
	"read":   runRead,
	"write":  runWrite,
	"schema": runSchema,
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	if err := runSubcommand(os.Args[1], os.Args[2:], stdio{in: os.Stdin, out: os.Stdout}); err != nil {
		logger := logutil.NewCLILogger(false)
		logutil.Fatal(logger, "err", err)
	}
}

func runSubcommand(name string, args []string, stdio stdio) error {
	run, ok := subcommands[name]
	if !ok {
		usage(os.Stderr)
		return fmt.Errorf("unknown subcommand %q", name)
	}
	err := run(args, stdio)
	return errors.Wrapf(err, "running subcommand %s", name)
}

func usage(w io.Writer) {
	names := make([]string, 0, len(subcommands))
	for name := range subcommands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(w, "usage: nestedcsv <%s> [flags] [FILE]\n", strings.Join(names, "|"))
}
