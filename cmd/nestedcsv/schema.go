package main

import (
	"flag"
	"fmt"

	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
)

func runSchema(args []string, stdio stdio) error {
	fs := flag.NewFlagSet("nestedcsv schema", flag.ContinueOnError)
	var (
		flags     policyFlags
		flColumns = fs.Bool("columns", false, "list the columns of the header and their paths instead of the tree")
	)
	flags.register(fs)

	if err := parseFlags(fs, args); err != nil {
		return errors.Wrap(err, "parsing flags")
	}
	if fs.NArg() != 1 {
		return errors.New("expected exactly one input file")
	}
	logger := flags.logger()

	options, err := flags.readerOptions()
	if err != nil {
		return err
	}

	r, err := openReader(fs.Arg(0), stdio, options)
	if err != nil {
		return err
	}
	defer r.Close()

	schema, err := r.Schema()
	if err != nil {
		return errors.Wrapf(err, "reading header of %s", fs.Arg(0))
	}
	level.Debug(logger).Log("msg", "compiled schema", "columns", schema.NumColumns(), "selected", schema.NumCells())

	if !*flColumns {
		_, err = fmt.Fprint(stdio.out, schema)
		return err
	}

	for _, c := range schema.Columns() {
		path := "-"
		if c.Selected() {
			path = c.Path.Join(schema.Separator())
		}
		if _, err := fmt.Fprintf(stdio.out, "$%d\t%s\t%s\n", c.Index+1, c.Name, path); err != nil {
			return err
		}
	}
	return nil
}
