// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Texture is an RGBA8 texture sampled by the textured shaders. Contents
// are premultiplied RGBA.
type Texture struct {
	dev   *Device
	tex   hal.Texture
	view  hal.TextureView
	group hal.BindGroup
	w, h  int

	// lastUse is the submission index of the last draw sampling the
	// texture.
	lastUse uint64
	staging []byte
}

// Bind implements batch.Texture.
func (t *Texture) Bind() error {
	if t.tex == nil {
		return ErrClosed
	}
	t.dev.texture = t
	return nil
}

// Width implements batch.Texture.
func (t *Texture) Width() int { return t.w }

// Height implements batch.Texture.
func (t *Texture) Height() int { return t.h }

// Upload implements batch.Texture. Four-channel data is premultiplied
// RGBA; single-channel data is coverage and is expanded to premultiplied
// white. The texture is reallocated when the size changes.
func (t *Texture) Upload(pix []byte, w, h, channels int) error {
	if channels != 1 && channels != 4 {
		return fmt.Errorf("wgpu: unsupported channel count %d", channels)
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: texture %dx%d", ErrInvalidSize, w, h)
	}
	if len(pix) < w*h*channels {
		return fmt.Errorf("wgpu: upload of %d bytes for %dx%dx%d texture", len(pix), w, h, channels)
	}
	if t.lastUse > t.dev.queue.PollCompleted() {
		if err := t.dev.wait(); err != nil {
			return err
		}
	}
	if w != t.w || h != t.h {
		if err := t.allocate(w, h); err != nil {
			return err
		}
	}

	var data []byte
	if channels == 4 {
		data = pix[:w*h*4]
	} else {
		if cap(t.staging) < w*h*4 {
			t.staging = make([]byte, w*h*4)
		}
		data = t.staging[:w*h*4]
		for i, a := range pix[:w*h] {
			data[4*i+0] = a
			data[4*i+1] = a
			data[4*i+2] = a
			data[4*i+3] = a
		}
	}
	err := t.dev.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0},
		data,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: uint32(w * 4), RowsPerImage: uint32(h)},
		&hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("wgpu: write texture: %w", err)
	}
	return nil
}

// allocate replaces the GPU texture, view and bind group with ones of the
// given size.
func (t *Texture) allocate(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: texture %dx%d", ErrInvalidSize, w, h)
	}
	d := t.dev
	if err := d.ensureLayouts(); err != nil {
		return err
	}
	label := fmt.Sprintf("%s_texture_%dx%d", d.opts.label, w, h)
	tex, err := d.dev.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create texture: %w", err)
	}
	view, err := d.dev.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.dev.DestroyTexture(tex)
		return fmt.Errorf("wgpu: create texture view: %w", err)
	}
	group, err := d.dev.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_group",
		Layout: d.texLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: d.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		d.dev.DestroyTextureView(view)
		d.dev.DestroyTexture(tex)
		return fmt.Errorf("wgpu: create texture bind group: %w", err)
	}
	t.destroy()
	t.tex, t.view, t.group = tex, view, group
	t.w, t.h = w, h
	return nil
}

func (t *Texture) destroy() {
	d := t.dev.dev
	if t.group != nil {
		d.DestroyBindGroup(t.group)
		t.group = nil
	}
	if t.view != nil {
		d.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		d.DestroyTexture(t.tex)
		t.tex = nil
	}
}
