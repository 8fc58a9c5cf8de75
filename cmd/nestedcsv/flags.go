package main

import (
	"flag"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-kit/kit/log"
	"github.com/kolide/kit/logutil"
	"github.com/peterbourgon/ff/v3"

	"github.com/segmentio/nestedcsv"
	"github.com/segmentio/nestedcsv/internal/debug"
)

func parseFlags(fs *flag.FlagSet, args []string) error {
	return ff.Parse(fs, args,
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithEnvVarPrefix("NESTEDCSV"),
	)
}

// listFlag is a comma separated list of names. The list stays nil until the
// flag is set, which distinguishes an unset whitelist from an empty one.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(value string) error {
	if *l == nil {
		*l = []string{}
	}
	for _, name := range strings.Split(value, ",") {
		if name = strings.TrimSpace(name); name != "" {
			*l = append(*l, name)
		}
	}
	return nil
}

// renameFlag is a comma separated list of old=new column names.
type renameFlag map[string]string

func (r *renameFlag) String() string {
	pairs := make([]string, 0, len(*r))
	for k, v := range *r {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (r *renameFlag) Set(value string) error {
	if *r == nil {
		*r = make(renameFlag)
	}
	for _, pair := range strings.Split(value, ",") {
		if pair = strings.TrimSpace(pair); pair == "" {
			continue
		}
		i := strings.IndexByte(pair, '=')
		if i <= 0 || i == len(pair)-1 {
			return fmt.Errorf("malformed rename %q, expected old=new", pair)
		}
		(*r)[pair[:i]] = pair[i+1:]
	}
	return nil
}

// charFlag is a single character, "\t" is accepted for tabs.
type charFlag rune

func (c *charFlag) String() string {
	if *c == 0 {
		return ""
	}
	return string(rune(*c))
}

func (c *charFlag) Set(value string) error {
	if value == `\t` {
		*c = '\t'
		return nil
	}
	r, n := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError || n != len(value) {
		return fmt.Errorf("expected a single character but got %q", value)
	}
	*c = charFlag(r)
	return nil
}

// commonFlags are the flags shared by all subcommands.
type commonFlags struct {
	separator   charFlag
	comma       charFlag
	compression string
	debug       bool
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.String("config", "", "config file to read flags from (optional)")
	fs.Var(&f.separator, "separator", "separator of path segments in column names (default '.')")
	fs.Var(&f.comma, "comma", "field delimiter of the delimited file (default ',')")
	fs.StringVar(&f.compression, "compression", "", "compression codec, detected from the file extension when empty")
	fs.BoolVar(&f.debug, "debug", false, "use a debug logger")
}

// logger returns the logger of the command, and routes the debug logs of the
// library to it when --debug is set.
func (f *commonFlags) logger() log.Logger {
	logger := logutil.NewCLILogger(f.debug)
	debug.Toggle(f.debug)
	if f.debug {
		debug.SetLogger(logger)
	}
	return logger
}

func (f *commonFlags) readerOptions() ([]nestedcsv.ReaderOption, error) {
	var options []nestedcsv.ReaderOption
	if f.separator > 0xFF {
		return nil, fmt.Errorf("separator must be a single byte: %q", rune(f.separator))
	}
	if f.separator != 0 {
		options = append(options, nestedcsv.Separator(f.separator))
	}
	if f.comma != 0 {
		options = append(options, nestedcsv.Comma(f.comma))
	}
	if f.compression != "" {
		codec, err := nestedcsv.LookupCompression(f.compression)
		if err != nil {
			return nil, err
		}
		options = append(options, nestedcsv.Compression(codec))
	}
	return options, nil
}

func (f *commonFlags) writerOptions() ([]nestedcsv.WriterOption, error) {
	readerOptions, err := f.readerOptions()
	if err != nil {
		return nil, err
	}
	options := make([]nestedcsv.WriterOption, 0, len(readerOptions))
	for _, opt := range readerOptions {
		options = append(options, opt.(nestedcsv.WriterOption))
	}
	return options, nil
}

// policyFlags are the flags of subcommands reading delimited files.
type policyFlags struct {
	commonFlags
	rename    renameFlag
	whitelist listFlag
	blacklist listFlag
}

func (f *policyFlags) register(fs *flag.FlagSet) {
	f.commonFlags.register(fs)
	fs.Var(&f.rename, "rename", "comma separated list of old=new column renames")
	fs.Var(&f.whitelist, "whitelist", "comma separated list of the only columns to retain, after renaming")
	fs.Var(&f.blacklist, "blacklist", "comma separated list of columns to discard, after renaming")
}

func (f *policyFlags) readerOptions() ([]nestedcsv.ReaderOption, error) {
	options, err := f.commonFlags.readerOptions()
	if err != nil {
		return nil, err
	}
	return append(options, &nestedcsv.ReaderConfig{
		Policy: nestedcsv.Policy{
			Rename:    f.rename,
			Whitelist: f.whitelist,
			Blacklist: f.blacklist,
		},
	}), nil
}

// openReader opens the delimited file at name, or reads from stdin when name
// is "-".
func openReader(name string, stdio stdio, options []nestedcsv.ReaderOption) (*nestedcsv.Reader, error) {
	if name != "-" {
		return nestedcsv.OpenFile(name, options...)
	}
	config, err := nestedcsv.NewReaderConfig(options...)
	if err != nil {
		return nil, err
	}
	input := stdio.in
	if config.Compression != nil {
		z, err := config.Compression.NewReader(input)
		if err != nil {
			return nil, err
		}
		input = z
	}
	return nestedcsv.NewReader(nestedcsv.NewCSVReader(input, config), config), nil
}
