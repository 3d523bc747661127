package sketch

import "errors"

var (
	// ErrInvalidSize is returned for a non-positive image or atlas size.
	ErrInvalidSize = errors.New("sketch: size must be positive")

	// ErrReleased is returned when a released image is used.
	ErrReleased = errors.New("sketch: image released")
)
