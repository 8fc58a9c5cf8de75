package nestedcsv

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/segmentio/nestedcsv/compress"
)

const (
	// DefaultSeparator is the character separating path segments in column
	// names.
	DefaultSeparator = '.'

	// DefaultComma is the field delimiter of delimited files.
	DefaultComma = ','
)

// The SchemaConfig type carries configuration options for schemas.
type SchemaConfig struct {
	Separator byte
	Policy
}

// DefaultSchemaConfig returns a new SchemaConfig value initialized with the
// default schema configuration.
func DefaultSchemaConfig() *SchemaConfig {
	return &SchemaConfig{
		Separator: DefaultSeparator,
	}
}

// Apply applies the given list of options to c.
func (c *SchemaConfig) Apply(options ...SchemaOption) {
	for _, opt := range options {
		opt.ConfigureSchema(c)
	}
}

// ConfigureSchema applies configuration options from c to config.
func (c *SchemaConfig) ConfigureSchema(config *SchemaConfig) {
	*config = SchemaConfig{
		Separator: coalesceByte(c.Separator, config.Separator),
		Policy:    coalescePolicy(c.Policy, config.Policy),
	}
}

// Validate returns a non-nil error if the configuration of c is invalid.
func (c *SchemaConfig) Validate() error {
	const baseName = "nestedcsv.(*SchemaConfig)."
	return errorInvalidConfiguration(
		validateSeparator(baseName+"Separator", c.Separator),
	)
}

// The ReaderConfig type carries configuration options for readers.
//
// ReaderConfig implements the ReaderOption interface so it can be used directly
// as argument to the NewReader function when needed, for example:
//
//	reader := nestedcsv.NewReader(rows, &nestedcsv.ReaderConfig{
//		Policy: nestedcsv.Policy{Whitelist: []string{"user.name"}},
//	})
type ReaderConfig struct {
	Separator        byte
	Comma            rune
	LazyQuotes       bool
	TrimLeadingSpace bool
	Compression      compress.Codec
	Policy
}

// DefaultReaderConfig returns a new ReaderConfig value initialized with the
// default reader configuration.
func DefaultReaderConfig() *ReaderConfig {
	return &ReaderConfig{
		Separator: DefaultSeparator,
		Comma:     DefaultComma,
	}
}

// NewReaderConfig constructs a new reader configuration applying the options
// passed as arguments.
func NewReaderConfig(options ...ReaderOption) (*ReaderConfig, error) {
	config := DefaultReaderConfig()
	config.Apply(options...)
	return config, config.Validate()
}

// Apply applies the given list of options to c.
func (c *ReaderConfig) Apply(options ...ReaderOption) {
	for _, opt := range options {
		opt.ConfigureReader(c)
	}
}

// ConfigureReader applies configuration options from c to config.
func (c *ReaderConfig) ConfigureReader(config *ReaderConfig) {
	*config = ReaderConfig{
		Separator:        coalesceByte(c.Separator, config.Separator),
		Comma:            coalesceRune(c.Comma, config.Comma),
		LazyQuotes:       c.LazyQuotes || config.LazyQuotes,
		TrimLeadingSpace: c.TrimLeadingSpace || config.TrimLeadingSpace,
		Compression:      coalesceCodec(c.Compression, config.Compression),
		Policy:           coalescePolicy(c.Policy, config.Policy),
	}
}

// Validate returns a non-nil error if the configuration of c is invalid.
func (c *ReaderConfig) Validate() error {
	const baseName = "nestedcsv.(*ReaderConfig)."
	return errorInvalidConfiguration(
		validateSeparator(baseName+"Separator", c.Separator),
		validateComma(baseName+"Comma", c.Comma),
	)
}

func (c *ReaderConfig) schemaConfig() *SchemaConfig {
	return &SchemaConfig{
		Separator: c.Separator,
		Policy:    c.Policy,
	}
}

// The WriterConfig type carries configuration options for writers.
//
// WriterConfig implements the WriterOption interface so it can be used directly
// as argument to the NewWriter function when needed.
type WriterConfig struct {
	Separator   byte
	Comma       rune
	UseCRLF     bool
	Compression compress.Codec
}

// DefaultWriterConfig returns a new WriterConfig value initialized with the
// default writer configuration.
func DefaultWriterConfig() *WriterConfig {
	return &WriterConfig{
		Separator: DefaultSeparator,
		Comma:     DefaultComma,
	}
}

// NewWriterConfig constructs a new writer configuration applying the options
// passed as arguments.
func NewWriterConfig(options ...WriterOption) (*WriterConfig, error) {
	config := DefaultWriterConfig()
	config.Apply(options...)
	return config, config.Validate()
}

// Apply applies the given list of options to c.
func (c *WriterConfig) Apply(options ...WriterOption) {
	for _, opt := range options {
		opt.ConfigureWriter(c)
	}
}

// ConfigureWriter applies configuration options from c to config.
func (c *WriterConfig) ConfigureWriter(config *WriterConfig) {
	*config = WriterConfig{
		Separator:   coalesceByte(c.Separator, config.Separator),
		Comma:       coalesceRune(c.Comma, config.Comma),
		UseCRLF:     c.UseCRLF || config.UseCRLF,
		Compression: coalesceCodec(c.Compression, config.Compression),
	}
}

// Validate returns a non-nil error if the configuration of c is invalid.
func (c *WriterConfig) Validate() error {
	const baseName = "nestedcsv.(*WriterConfig)."
	return errorInvalidConfiguration(
		validateSeparator(baseName+"Separator", c.Separator),
		validateComma(baseName+"Comma", c.Comma),
	)
}

// SchemaOption is an interface implemented by types that carry configuration
// options for schemas.
type SchemaOption interface {
	ConfigureSchema(*SchemaConfig)
}

// ReaderOption is an interface implemented by types that carry configuration
// options for readers.
type ReaderOption interface {
	ConfigureReader(*ReaderConfig)
}

// WriterOption is an interface implemented by types that carry configuration
// options for writers.
type WriterOption interface {
	ConfigureWriter(*WriterConfig)
}

// PolicyOption is implemented by the options configuring the selection policy,
// which apply both to schemas and readers.
type PolicyOption interface {
	SchemaOption
	ReaderOption
}

// FormatOption is implemented by the options configuring the encoding of
// delimited files, which apply both to readers and writers.
type FormatOption interface {
	ReaderOption
	WriterOption
}

// Separator configures the character separating path segments in column names.
//
// Defaults to '.'.
type Separator byte

func (sep Separator) ConfigureSchema(config *SchemaConfig) { config.Separator = byte(sep) }
func (sep Separator) ConfigureReader(config *ReaderConfig) { config.Separator = byte(sep) }
func (sep Separator) ConfigureWriter(config *WriterConfig) { config.Separator = byte(sep) }

// Comma configures the field delimiter of delimited files.
//
// Defaults to ','.
type Comma rune

func (comma Comma) ConfigureReader(config *ReaderConfig) { config.Comma = rune(comma) }
func (comma Comma) ConfigureWriter(config *WriterConfig) { config.Comma = rune(comma) }

// Rename creates a configuration option which maps column names of the header
// to other names. The target names may contain separators to nest columns.
func Rename(columns map[string]string) PolicyOption {
	return policyOption(func(p *Policy) { p.Rename = columns })
}

// Whitelist creates a configuration option which restricts the columns
// retained to the list of names, matched after renaming.
func Whitelist(names ...string) PolicyOption {
	if names == nil {
		names = []string{}
	}
	return policyOption(func(p *Policy) { p.Whitelist = names })
}

// Blacklist creates a configuration option which excludes the list of names
// from the columns retained, matched after renaming.
func Blacklist(names ...string) PolicyOption {
	if names == nil {
		names = []string{}
	}
	return policyOption(func(p *Policy) { p.Blacklist = names })
}

// Compression creates a configuration option which sets the compression codec
// of files opened by OpenFile or created by CreateFile.
//
// Defaults to detecting the codec from the file name extension.
func Compression(codec compress.Codec) FormatOption {
	return &compressionOption{codec: codec}
}

// LazyQuotes creates a configuration option which relaxes the parsing of
// quotes in delimited files.
func LazyQuotes(enable bool) ReaderOption {
	return readerOption(func(config *ReaderConfig) { config.LazyQuotes = enable })
}

// TrimLeadingSpace creates a configuration option which ignores leading white
// space in the fields of delimited files.
func TrimLeadingSpace(enable bool) ReaderOption {
	return readerOption(func(config *ReaderConfig) { config.TrimLeadingSpace = enable })
}

// UseCRLF creates a configuration option which makes writers terminate lines
// with \r\n.
func UseCRLF(enable bool) WriterOption {
	return writerOption(func(config *WriterConfig) { config.UseCRLF = enable })
}

type policyOption func(*Policy)

func (opt policyOption) ConfigureSchema(config *SchemaConfig) { opt(&config.Policy) }
func (opt policyOption) ConfigureReader(config *ReaderConfig) { opt(&config.Policy) }

type compressionOption struct{ codec compress.Codec }

func (opt *compressionOption) ConfigureReader(config *ReaderConfig) { config.Compression = opt.codec }
func (opt *compressionOption) ConfigureWriter(config *WriterConfig) { config.Compression = opt.codec }

type readerOption func(*ReaderConfig)

func (opt readerOption) ConfigureReader(config *ReaderConfig) { opt(config) }

type writerOption func(*WriterConfig)

func (opt writerOption) ConfigureWriter(config *WriterConfig) { opt(config) }

func coalesceByte(b1, b2 byte) byte {
	if b1 != 0 {
		return b1
	}
	return b2
}

func coalesceRune(r1, r2 rune) rune {
	if r1 != 0 {
		return r1
	}
	return r2
}

func coalesceCodec(c1, c2 compress.Codec) compress.Codec {
	if c1 != nil {
		return c1
	}
	return c2
}

func coalescePolicy(p1, p2 Policy) Policy {
	if p1.Rename != nil {
		p2.Rename = p1.Rename
	}
	if p1.Whitelist != nil {
		p2.Whitelist = p1.Whitelist
	}
	if p1.Blacklist != nil {
		p2.Blacklist = p1.Blacklist
	}
	return p2
}

func validateSeparator(optionName string, optionValue byte) error {
	switch optionValue {
	case 0, '"', '\r', '\n':
		return errorInvalidOptionValue(optionName, optionValue)
	}
	return nil
}

func validateComma(optionName string, optionValue rune) error {
	switch optionValue {
	case 0, '"', '\r', '\n', utf8.RuneError:
		return errorInvalidOptionValue(optionName, optionValue)
	}
	if !utf8.ValidRune(optionValue) {
		return errorInvalidOptionValue(optionName, optionValue)
	}
	return nil
}

func errorInvalidOptionValue(optionName string, optionValue interface{}) error {
	return fmt.Errorf("invalid option value: %s: %q", optionName, optionValue)
}

func errorInvalidConfiguration(reasons ...error) error {
	var err *invalidConfiguration

	for _, reason := range reasons {
		if reason != nil {
			if err == nil {
				err = new(invalidConfiguration)
			}
			err.reasons = append(err.reasons, reason)
		}
	}

	if err != nil {
		return err
	}

	return nil
}

type invalidConfiguration struct {
	reasons []error
}

func (err *invalidConfiguration) Error() string {
	errorMessage := new(strings.Builder)
	for _, reason := range err.reasons {
		errorMessage.WriteString(reason.Error())
		errorMessage.WriteString("\n")
	}
	errorString := errorMessage.String()
	if errorString != "" {
		errorString = errorString[:len(errorString)-1]
	}
	return errorString
}
