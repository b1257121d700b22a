package domain

import "errors"

// ConfigError represents a configuration error (never retriable)
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError wraps err with the offending config field.
func NewConfigError(field string, err error) *ConfigError {
	return &ConfigError{Field: field, Err: err}
}

var (
	// ErrConfigNotFound is returned when configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrInvalidPolicy is returned for an unknown replacement or belief policy name.
	ErrInvalidPolicy = errors.New("invalid policy")

	// ErrOutOfRange is returned when a configured price falls outside [0, ceiling).
	ErrOutOfRange = errors.New("value out of range")

	// ErrMismatchedPools is returned when buyer and seller counts differ.
	ErrMismatchedPools = errors.New("buyer and seller counts differ")
)
