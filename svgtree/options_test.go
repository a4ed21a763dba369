package svgtree

import (
	"strings"
	"testing"

	"github.com/tdewolff/test"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	test.Error(t, opts.Validate())

	// an empty document keeps the defaults
	got, err := LoadOptions(strings.NewReader(""))
	test.Error(t, err)
	test.T(t, got, opts)
}

func TestLoadOptions(t *testing.T) {
	opts, err := LoadOptions(strings.NewReader(`
error_mode: strict
dpi: 300
emit_close: false
logging:
  level: debug
  file: /tmp/svgscene.log
`))
	test.Error(t, err)
	test.T(t, opts.ErrorMode, StrictErrorMode)
	test.Float(t, opts.DPI, 300)
	test.That(t, !opts.EmitClose)
	test.T(t, opts.Logging.Level, "debug")
	test.T(t, opts.Logging.Format, "console")
	test.T(t, opts.Logging.File, "/tmp/svgscene.log")
	test.T(t, opts.Logging.MaxBackups, 3)
}

func TestLoadOptionsErrors(t *testing.T) {
	_, err := LoadOptions(strings.NewReader("error_mode: loud\n"))
	test.That(t, err != nil)

	_, err = LoadOptions(strings.NewReader("colour: red\n"))
	test.That(t, err != nil, "unknown fields are rejected")

	_, err = LoadOptions(strings.NewReader(`
dpi: -1
logging:
  level: chatty
  format: xml
  max_size: -2
`))
	test.That(t, err != nil)
	test.T(t, len(multierr.Errors(err)), 4)
}

func TestErrorModeYAML(t *testing.T) {
	for _, mode := range []ErrorMode{IgnoreErrorMode, WarnErrorMode, StrictErrorMode} {
		b, err := yaml.Marshal(mode)
		test.Error(t, err)
		test.T(t, strings.TrimSpace(string(b)), mode.String())

		var back ErrorMode
		test.Error(t, yaml.Unmarshal(b, &back))
		test.T(t, back, mode)
	}
	test.T(t, ErrorMode(9).String(), "<unknown ErrorMode 9>")
}
