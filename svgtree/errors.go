package svgtree

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	// ErrAlreadyAttached is returned when attaching an element
	// which already has a parent.
	ErrAlreadyAttached = errors.New("element already attached")
	// ErrCycle is returned when attaching an element below one of its descendants.
	ErrCycle = errors.New("element would become its own ancestor")
	// ErrNoLengthContext is returned when resolving a percentage
	// without reference length.
	ErrNoLengthContext = errors.New("percentage length without context")
	// ErrInvalidUse is returned for <use> elements whose reference
	// is missing or cyclic.
	ErrInvalidUse = errors.New("invalid use element")
)

// ErrorMode is the for setting how the parser reacts to unparsed elements
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported elements silently
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning for each unsupported element
	WarnErrorMode
	// StrictErrorMode returns an error as soon as an unsupported element is found
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return fmt.Sprintf("<unknown ErrorMode %d>", m)
	}
}

// ParseErrorMode is the inverse of ErrorMode.String.
func ParseErrorMode(s string) (ErrorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore", "":
		return IgnoreErrorMode, nil
	case "warn":
		return WarnErrorMode, nil
	case "strict":
		return StrictErrorMode, nil
	default:
		return 0, fmt.Errorf("invalid error mode %q", s)
	}
}

func (m ErrorMode) MarshalYAML() (interface{}, error) { return m.String(), nil }

func (m *ErrorMode) UnmarshalYAML(value *yaml.Node) error {
	mode, err := ParseErrorMode(value.Value)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Handle reports an unsupported construct according to the mode:
// it returns an error in strict mode, and logs otherwise.
func (m ErrorMode) Handle(message string, fields ...zap.Field) error {
	switch m {
	case StrictErrorMode:
		return errors.New(message)
	case WarnErrorMode:
		logger.Warn(message, fields...)
	}
	return nil
}
