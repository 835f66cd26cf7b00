package enriched

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrUnknownTest is returned for test names that match no preset.
	ErrUnknownTest = errors.New("unknown test")

	// ErrConflictingForms is returned when a run asks for both a control set
	// and the full form.
	ErrConflictingForms = errors.New("control set and full form are mutually exclusive")
)

// ConfigError describes the Config field that failed validation.
//
// It matches ErrInvalidConfig via errors.Is.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// LoadError indicates that a table could not be fetched or loaded.
//
// The original underlying error can be accessed via errors.Unwrap.
type LoadError struct {
	Table string
	cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Table, e.cause)
}

func (e *LoadError) Unwrap() error { return e.cause }
