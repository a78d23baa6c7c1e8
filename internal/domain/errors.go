package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is wrapped by every catalog or run configuration error.
	// These are surfaced to the caller and never silently corrected.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrCatalogNotFound is returned by repositories when no catalog has the requested name
	ErrCatalogNotFound = errors.New("catalog not found")

	// ErrAmountOverflow is returned when a balance or payoff no longer fits in an int64
	ErrAmountOverflow = errors.New("amount overflow")
)

// configErrorf formats a configuration error that wraps ErrInvalidConfiguration
func configErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

// NewConfigurationError builds an error wrapping ErrInvalidConfiguration.
// Used by packages outside domain that validate run parameters.
func NewConfigurationError(format string, args ...interface{}) error {
	return configErrorf(format, args...)
}

// IsConfigurationError reports whether err is (or wraps) a configuration error
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}
