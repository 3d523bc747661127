// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import "errors"

// Errors returned by the device.
var (
	// ErrNilProvider is returned by NewFromProvider for a nil provider.
	ErrNilProvider = errors.New("wgpu: nil device provider")

	// ErrNoHAL is returned when a provider does not expose HAL objects.
	ErrNoHAL = errors.New("wgpu: provider does not expose hal.Device and hal.Queue")

	// ErrInvalidSize is returned for non-positive target or texture sizes.
	ErrInvalidSize = errors.New("wgpu: invalid size")

	// ErrUnknownShader is returned for a shader kind with no pipeline.
	ErrUnknownShader = errors.New("wgpu: unknown shader")

	// ErrNoShader is returned by Draw when no shader has been used.
	ErrNoShader = errors.New("wgpu: draw without shader")

	// ErrNoTexture is returned by Draw for a textured shader with no
	// texture bound.
	ErrNoTexture = errors.New("wgpu: textured draw without texture")

	// ErrExternalTarget is returned by ReadPixels while drawing into a
	// view set with SetTarget.
	ErrExternalTarget = errors.New("wgpu: cannot read back an external target")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("wgpu: device closed")
)
