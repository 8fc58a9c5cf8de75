package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"

	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"

	"github.com/segmentio/nestedcsv"
)

func runRead(args []string, stdio stdio) error {
	fs := flag.NewFlagSet("nestedcsv read", flag.ContinueOnError)
	var (
		flags    policyFlags
		flFormat = fs.String("format", "json", "output format, one of json, tree or table")
		flLimit  = fs.Int("limit", 0, "maximum number of records to print, zero for no limit")
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

	out := bufio.NewWriter(stdio.out)
	sink, err := newRecordSink(*flFormat, out)
	if err != nil {
		return err
	}

	for *flLimit <= 0 || r.RowsFetched() < *flLimit {
		record, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return errors.Wrapf(err, "reading %s", fs.Arg(0))
		}
		if err := sink.write(record); err != nil {
			return err
		}
	}

	level.Debug(logger).Log("msg", "read records", "file", fs.Arg(0), "count", r.RowsFetched())

	if err := sink.flush(); err != nil {
		return err
	}
	return out.Flush()
}

type recordSink struct {
	write func(nestedcsv.Record) error
	flush func() error
}

func newRecordSink(format string, w *bufio.Writer) (*recordSink, error) {
	switch format {
	case "json":
		return &recordSink{
			write: func(record nestedcsv.Record) error {
				b, err := record.MarshalJSON()
				if err != nil {
					return err
				}
				w.Write(b)
				return w.WriteByte('\n')
			},
			flush: func() error { return nil },
		}, nil

	case "tree":
		n := 0
		return &recordSink{
			write: func(record nestedcsv.Record) error {
				if n++; n > 1 {
					w.WriteString("\n")
				}
				return nestedcsv.Print(w, record)
			},
			flush: func() error { return nil },
		}, nil

	case "table":
		table := nestedcsv.NewWriter(nestedcsv.NewTableWriter(w))
		return &recordSink{
			write: table.Write,
			flush: table.Flush,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
