// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"math/bits"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/sketch/batch"
)

// minBufferSize is the smallest vertex buffer allocation in bytes.
const minBufferSize = 4096

// buffer is a growable GPU vertex buffer.
type buffer struct {
	dev      *Device
	buf      hal.Buffer
	size     uint64
	vertices int
	lastUse  uint64
}

// UploadVertices implements batch.Buffer.
func (b *buffer) UploadVertices(data []byte) error {
	d := b.dev
	if d.closed {
		return ErrClosed
	}
	if len(data)%batch.VertexStride != 0 {
		return fmt.Errorf("wgpu: vertex data of %d bytes is not a multiple of %d", len(data), batch.VertexStride)
	}
	b.vertices = len(data) / batch.VertexStride
	if len(data) == 0 {
		return nil
	}
	if b.lastUse > d.queue.PollCompleted() {
		if err := d.wait(); err != nil {
			return err
		}
	}
	if uint64(len(data)) > b.size {
		if err := b.grow(uint64(len(data))); err != nil {
			return err
		}
	}
	if err := d.queue.WriteBuffer(b.buf, 0, data); err != nil {
		return fmt.Errorf("wgpu: write vertex buffer: %w", err)
	}
	return nil
}

// grow reallocates the buffer to the next power of two holding n bytes.
func (b *buffer) grow(n uint64) error {
	size := max(minBufferSize, uint64(1)<<bits.Len64(n-1))
	buf, err := b.dev.dev.CreateBuffer(&hal.BufferDescriptor{
		Label: fmt.Sprintf("%s_vertices_%d", b.dev.opts.label, size),
		Size:  size,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create vertex buffer: %w", err)
	}
	b.destroy()
	b.buf, b.size = buf, size
	return nil
}

func (b *buffer) destroy() {
	if b.buf != nil {
		b.dev.dev.DestroyBuffer(b.buf)
		b.buf, b.size = nil, 0
	}
}

// Draw implements batch.Buffer by submitting one render pass with a single
// draw call.
func (b *buffer) Draw(triangles int) error {
	d := b.dev
	if d.closed {
		return ErrClosed
	}
	s := d.shader
	if s == nil {
		return ErrNoShader
	}
	if 3*triangles > b.vertices {
		return fmt.Errorf("wgpu: draw of %d triangles exceeds %d uploaded vertices", triangles, b.vertices)
	}
	var tex *Texture
	if s.kind.Textured() {
		if d.texture == nil {
			return ErrNoTexture
		}
		tex = d.texture
	}
	sc := d.scissor()
	if triangles == 0 || sc.Empty() {
		return nil
	}

	err := d.pass("draw", gputypes.LoadOpLoad, gputypes.Color{}, func(rp hal.RenderPassEncoder) {
		rp.SetPipeline(s.pipeline)
		if tex != nil {
			rp.SetBindGroup(0, tex.group, nil)
		}
		rp.SetVertexBuffer(0, b.buf, 0)
		rp.SetViewport(0, 0, float32(d.width), float32(d.height), 0, 1)
		rp.SetScissorRect(uint32(sc.Min.X), uint32(sc.Min.Y), uint32(sc.Dx()), uint32(sc.Dy()))
		rp.Draw(uint32(3*triangles), 1, 0, 0)
	})
	if err != nil {
		return err
	}
	d.draws++
	idx := d.lastSubmission()
	b.lastUse = idx
	if tex != nil {
		tex.lastUse = idx
	}
	return nil
}
