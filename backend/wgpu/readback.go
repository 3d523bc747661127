// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyPitchAlignment is the required row alignment of texture to buffer
// copies.
const copyPitchAlignment = 256

// ReadPixels copies the offscreen target to a new premultiplied RGBA
// image. It waits for all submitted work.
func (d *Device) ReadPixels() (*image.RGBA, error) {
	if d.closed {
		return nil, ErrClosed
	}
	if d.external != nil {
		return nil, ErrExternalTarget
	}
	w, h := uint32(d.width), uint32(d.height)
	rowBytes := w * 4
	pitch := (rowBytes + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	size := uint64(pitch) * uint64(h)

	staging, err := d.dev.CreateBuffer(&hal.BufferDescriptor{
		Label: d.opts.label + "_readback",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create readback buffer: %w", err)
	}
	defer d.dev.DestroyBuffer(staging)

	enc, err := d.dev.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: d.opts.label + "_readback"})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := enc.BeginEncoding(d.opts.label + "_readback"); err != nil {
		enc.DiscardEncoding()
		return nil, fmt.Errorf("wgpu: begin encoding: %w", err)
	}
	enc.TransitionTextures([]hal.TextureBarrier{{
		Texture: d.target,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	enc.CopyTextureToBuffer(d.target, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: pitch, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: d.target, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	enc.TransitionTextures([]hal.TextureBarrier{{
		Texture: d.target,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})
	cmd, err := enc.EndEncoding()
	if err != nil {
		enc.DiscardEncoding()
		return nil, fmt.Errorf("wgpu: end encoding: %w", err)
	}
	if err := d.submit(cmd); err != nil {
		return nil, err
	}
	if err := d.wait(); err != nil {
		return nil, err
	}

	m, err := d.dev.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("wgpu: map readback buffer: %w", err)
	}
	defer func() { _ = d.dev.UnmapBuffer(staging) }()
	src := unsafe.Slice((*byte)(m.Ptr), size)

	img := image.NewRGBA(image.Rect(0, 0, d.width, d.height))
	bgra := d.opts.format == gputypes.TextureFormatBGRA8Unorm
	for y := range int(h) {
		row := src[y*int(pitch) : y*int(pitch)+int(rowBytes)]
		dst := img.Pix[y*img.Stride : y*img.Stride+int(rowBytes)]
		copy(dst, row)
		if bgra {
			for i := 0; i < len(dst); i += 4 {
				dst[i], dst[i+2] = dst[i+2], dst[i]
			}
		}
	}
	return img, nil
}
