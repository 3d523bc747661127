// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import "github.com/gogpu/gputypes"

// Option configures a Device.
type Option func(*options)

type options struct {
	format gputypes.TextureFormat
	spirv  bool
	label  string
}

func defaultOptions() options {
	return options{
		format: gputypes.TextureFormatRGBA8Unorm,
		label:  "sketch",
	}
}

// WithFormat sets the render target format. It must match the format of
// any view passed to SetTarget. The default is RGBA8Unorm.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(o *options) { o.format = f }
}

// WithSPIRV hands the HAL SPIR-V compiled by naga instead of WGSL source.
func WithSPIRV() Option {
	return func(o *options) { o.spirv = true }
}

// WithLabel sets the prefix of GPU object debug labels.
func WithLabel(label string) Option {
	return func(o *options) { o.label = label }
}
