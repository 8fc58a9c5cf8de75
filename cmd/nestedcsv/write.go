package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/kit/log/level"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/segmentio/nestedcsv"
)

const maxLineSize = 16 * 1024 * 1024

func runWrite(args []string, stdio stdio) (err error) {
	fs := flag.NewFlagSet("nestedcsv write", flag.ContinueOnError)
	var (
		flags    commonFlags
		flOutput = fs.String("output", "", "path of the delimited file to write, stdout when empty")
		flCRLF   = fs.Bool("crlf", false, "terminate lines with \\r\\n")
	)
	flags.register(fs)

	if err := parseFlags(fs, args); err != nil {
		return errors.Wrap(err, "parsing flags")
	}
	if fs.NArg() > 1 {
		return errors.New("expected at most one input file")
	}
	logger := flags.logger()

	options, err := flags.writerOptions()
	if err != nil {
		return err
	}
	options = append(options, nestedcsv.UseCRLF(*flCRLF))

	input := stdio.in
	if name := fs.Arg(0); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}

	var w *nestedcsv.Writer
	if *flOutput == "" {
		var config *nestedcsv.WriterConfig
		if config, err = nestedcsv.NewWriterConfig(options...); err != nil {
			return err
		}
		out := io.Writer(stdio.out)
		if config.Compression != nil {
			var z io.WriteCloser
			if z, err = config.Compression.NewWriter(out); err != nil {
				return err
			}
			defer func() {
				// Closing writes the end of the compressed stream.
				if cerr := z.Close(); err == nil {
					err = cerr
				}
			}()
			out = z
		}
		w = nestedcsv.NewWriter(nestedcsv.NewCSVWriter(out, config), config)
	} else {
		// Records are written to a temporary file which replaces the output
		// only once all of them were written.
		tmp := fmt.Sprintf("%s.%s.tmp", *flOutput, uuid.New())
		if flags.compression == "" {
			options = append(options, nestedcsv.Compression(nestedcsv.CompressionOf(*flOutput)))
		}
		if w, err = nestedcsv.CreateFile(tmp, options...); err != nil {
			return err
		}
		defer func() {
			if err != nil {
				w.Close()
				os.Remove(tmp)
				return
			}
			if err = w.Close(); err != nil {
				os.Remove(tmp)
				return
			}
			err = os.Rename(tmp, *flOutput)
		}()
		level.Debug(logger).Log("msg", "writing to temporary file", "path", tmp)
	}

	if err := writeRecords(w, input); err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "wrote records", "count", w.NumRecords(), "columns", len(w.Header()))
	return w.Flush()
}

// writeRecords writes the records of each JSON line of input to w, skipping
// blank lines.
func writeRecords(w *nestedcsv.Writer, input io.Reader) error {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var record nestedcsv.Record
		if err := record.UnmarshalJSON(line); err != nil {
			return errors.Wrapf(err, "decoding line %d", lineNumber)
		}
		if err := w.Write(record); err != nil {
			return errors.Wrapf(err, "writing line %d", lineNumber)
		}
	}

	return scanner.Err()
}
