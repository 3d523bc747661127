package batch

import "errors"

var (
	// ErrNoDevice is returned when a Registry is created without a Device.
	ErrNoDevice = errors.New("batch: nil device")

	// ErrNoTexture is returned when a textured pipeline is requested
	// without a texture.
	ErrNoTexture = errors.New("batch: textured pipeline requires a texture")

	// ErrNoImage is returned when a textured pipeline is requested with the
	// zero ImageID.
	ErrNoImage = errors.New("batch: zero image id")
)
