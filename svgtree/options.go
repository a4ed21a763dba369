package svgtree

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// LoggingOptions configures the logger built by the command line tool.
type LoggingOptions struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // console or json
	File       string `yaml:"file"`   // optional rotating log file
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
}

// Options controls how documents are loaded and compiled.
type Options struct {
	ErrorMode ErrorMode `yaml:"error_mode"`
	// DPI is the resolution used by raster outputs, 96 meaning
	// one pixel per user unit.
	DPI float64 `yaml:"dpi"`
	// EmitClose keeps explicit ClosePath segments in normalized paths,
	// instead of closing with a straight curve.
	EmitClose bool           `yaml:"emit_close"`
	Logging   LoggingOptions `yaml:"logging"`
}

func DefaultOptions() Options {
	return Options{
		ErrorMode: WarnErrorMode,
		DPI:       96,
		EmitClose: true,
		Logging: LoggingOptions{
			Level:      "info",
			Format:     "console",
			MaxSize:    10,
			MaxBackups: 3,
		},
	}
}

// LoadOptions reads YAML options from `r`. Missing fields
// keep their default value.
func LoadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate returns all the problems found in `o`.
func (o Options) Validate() error {
	var err error
	if o.ErrorMode > StrictErrorMode {
		err = multierr.Append(err, fmt.Errorf("invalid error mode %d", o.ErrorMode))
	}
	if o.DPI <= 0 {
		err = multierr.Append(err, fmt.Errorf("dpi must be positive, got %g", o.DPI))
	}
	var level zapcore.Level
	if lerr := level.UnmarshalText([]byte(o.Logging.Level)); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("invalid log level %q", o.Logging.Level))
	}
	if f := o.Logging.Format; f != "console" && f != "json" {
		err = multierr.Append(err, fmt.Errorf("invalid log format %q", f))
	}
	if o.Logging.MaxSize < 0 || o.Logging.MaxBackups < 0 {
		err = multierr.Append(err, errors.New("log rotation settings must not be negative"))
	}
	return err
}
