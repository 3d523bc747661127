// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/sketch/batch"
)

// shader is a render pipeline for one batch.ShaderKind.
type shader struct {
	dev      *Device
	kind     batch.ShaderKind
	pipeline hal.RenderPipeline
}

// Use implements batch.Shader.
func (s *shader) Use() error {
	s.dev.shader = s
	return nil
}

// UniformLocation implements batch.Shader. The only named binding is the
// atlas texture of the textured shaders.
func (s *shader) UniformLocation(name string) int {
	if name == "atlas" && s.kind.Textured() {
		return 0
	}
	return -1
}

// vertexLayout matches batch.Vertex encoding.
func vertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: batch.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // uv
				{Format: gputypes.VertexFormatUnorm8x4, Offset: 16, ShaderLocation: 2}, // color
			},
		},
	}
}

// ensureLayouts creates the objects shared by every pipeline.
func (d *Device) ensureLayouts() error {
	if d.colorLayout != nil {
		return nil
	}

	texLayout, err := d.dev.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: d.opts.label + "_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create texture layout: %w", err)
	}
	d.texLayout = texLayout

	texPipeLayout, err := d.dev.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            d.opts.label + "_textured_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{d.texLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create textured pipeline layout: %w", err)
	}
	d.texPipeLayout = texPipeLayout

	sampler, err := d.dev.CreateSampler(&hal.SamplerDescriptor{
		Label:        d.opts.label + "_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create sampler: %w", err)
	}
	d.sampler = sampler

	colorLayout, err := d.dev.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: d.opts.label + "_color_pipe_layout",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create color pipeline layout: %w", err)
	}
	d.colorLayout = colorLayout
	return nil
}

// module returns the compiled shader module m, creating it on first use.
func (d *Device) module(m shaderModule) (hal.ShaderModule, error) {
	if d.modules[m] != nil {
		return d.modules[m], nil
	}
	src, err := d.shaderSource(m)
	if err != nil {
		return nil, err
	}
	mod, err := d.dev.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  d.opts.label + "_" + m.String(),
		Source: src,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %v shader module: %w", m, err)
	}
	d.modules[m] = mod
	return mod, nil
}

// createShader builds the render pipeline for kind with premultiplied
// alpha blending into the target format.
func (d *Device) createShader(kind batch.ShaderKind) (*shader, error) {
	m, entry, err := moduleFor(kind)
	if err != nil {
		return nil, err
	}
	if err := d.ensureLayouts(); err != nil {
		return nil, err
	}
	mod, err := d.module(m)
	if err != nil {
		return nil, err
	}

	layout := d.colorLayout
	if kind.Textured() {
		layout = d.texPipeLayout
	}
	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := d.dev.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  d.opts.label + "_" + kind.String(),
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     mod,
			EntryPoint: "vs_main",
			Buffers:    vertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     mod,
			EntryPoint: entry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    d.opts.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %v pipeline: %w", kind, err)
	}
	slogger().Debug("wgpu: pipeline created", "shader", kind)
	return &shader{dev: d, kind: kind, pipeline: pipeline}, nil
}

// destroyPipelines releases pipeline objects in reverse creation order.
func (d *Device) destroyPipelines() {
	for k, s := range d.shaders {
		d.dev.DestroyRenderPipeline(s.pipeline)
		delete(d.shaders, k)
	}
	for i, m := range d.modules {
		if m != nil {
			d.dev.DestroyShaderModule(m)
			d.modules[i] = nil
		}
	}
	if d.colorLayout != nil {
		d.dev.DestroyPipelineLayout(d.colorLayout)
		d.colorLayout = nil
	}
	if d.sampler != nil {
		d.dev.DestroySampler(d.sampler)
		d.sampler = nil
	}
	if d.texPipeLayout != nil {
		d.dev.DestroyPipelineLayout(d.texPipeLayout)
		d.texPipeLayout = nil
	}
	if d.texLayout != nil {
		d.dev.DestroyBindGroupLayout(d.texLayout)
		d.texLayout = nil
	}
}
