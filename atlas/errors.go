package atlas

import (
	"errors"
	"fmt"
)

var (
	// ErrFull is returned when a sub-image does not fit without growing.
	ErrFull = errors.New("atlas: no free space")

	// ErrTooLarge is returned when growing would exceed the maximum size.
	ErrTooLarge = errors.New("atlas: exceeds maximum size")
)

// SizeError reports a sub-image that cannot fit within the maximum atlas
// size. It wraps ErrTooLarge.
type SizeError struct {
	Width, Height int
	Max           int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("atlas: %dx%d image does not fit in a %dx%d atlas", e.Width, e.Height, e.Max, e.Max)
}

// Unwrap returns ErrTooLarge.
func (e *SizeError) Unwrap() error { return ErrTooLarge }

// ConfigError represents an invalid atlas option.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}
