// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/sketch/batch"
)

// Device implements batch.Device on a wgpu HAL device.
//
// Every batch.Buffer Draw records and submits one render pass that loads
// the target, so draws land in submission order.
//
// Device is not safe for concurrent use.
type Device struct {
	dev   hal.Device
	queue hal.Queue
	opts  options

	width, height int
	target        hal.Texture
	targetView    hal.TextureView
	external      hal.TextureView

	modules       [moduleCount]hal.ShaderModule
	texLayout     hal.BindGroupLayout
	texPipeLayout hal.PipelineLayout
	colorLayout   hal.PipelineLayout
	sampler       hal.Sampler
	shaders       map[batch.ShaderKind]*shader
	textures      map[*Texture]struct{}
	buffers       map[*buffer]struct{}

	shader  *shader
	texture *Texture
	clip    image.Rectangle

	inflight []submission
	draws    int
	closed   bool
}

var (
	_ batch.Device  = (*Device)(nil)
	_ batch.Clearer = (*Device)(nil)
)

type submission struct {
	cmd   hal.CommandBuffer
	index uint64
}

// New creates a device that renders into an offscreen texture of the given
// size on dev and queue. The caller keeps ownership of dev and queue.
func New(dev hal.Device, queue hal.Queue, width, height int, opts ...Option) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d := &Device{
		dev:      dev,
		queue:    queue,
		opts:     o,
		shaders:  make(map[batch.ShaderKind]*shader),
		textures: make(map[*Texture]struct{}),
		buffers:  make(map[*buffer]struct{}),
	}
	if err := d.createTarget(width, height); err != nil {
		return nil, err
	}
	slogger().Debug("wgpu: device created", "width", width, "height", height, "format", o.format)
	return d, nil
}

// NewFromProvider creates a device on the GPU shared by provider, such as
// a gogpu window. The provider must expose its HAL objects either through
// HalDevice and HalQueue methods or by returning them from Device and
// Queue. The target format defaults to the provider's surface format.
func NewFromProvider(provider gpucontext.DeviceProvider, width, height int, opts ...Option) (*Device, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	dev, queue, err := halFromProvider(provider)
	if err != nil {
		return nil, err
	}
	if f := provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		opts = append([]Option{WithFormat(f)}, opts...)
	}
	return New(dev, queue, width, height, opts...)
}

func halFromProvider(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	var rawDev, rawQueue any
	if hp, ok := provider.(halProvider); ok {
		rawDev, rawQueue = hp.HalDevice(), hp.HalQueue()
	} else {
		rawDev, rawQueue = provider.Device(), provider.Queue()
	}
	dev, ok := rawDev.(hal.Device)
	if !ok || dev == nil {
		return nil, nil, ErrNoHAL
	}
	queue, ok := rawQueue.(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, ErrNoHAL
	}
	return dev, queue, nil
}

// createTarget allocates the offscreen render target.
func (d *Device) createTarget(width, height int) error {
	tex, err := d.dev.CreateTexture(&hal.TextureDescriptor{
		Label:         d.opts.label + "_target",
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        d.opts.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create target: %w", err)
	}
	view, err := d.dev.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         d.opts.label + "_target_view",
		Format:        d.opts.format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.dev.DestroyTexture(tex)
		return fmt.Errorf("wgpu: create target view: %w", err)
	}
	d.destroyTarget()
	d.target, d.targetView = tex, view
	d.width, d.height = width, height
	return nil
}

func (d *Device) destroyTarget() {
	if d.targetView != nil {
		d.dev.DestroyTextureView(d.targetView)
		d.targetView = nil
	}
	if d.target != nil {
		d.dev.DestroyTexture(d.target)
		d.target = nil
	}
}

// Resize replaces the offscreen target. Its contents are lost.
func (d *Device) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width == d.width && height == d.height {
		return nil
	}
	if err := d.wait(); err != nil {
		return err
	}
	return d.createTarget(width, height)
}

// SetTarget directs subsequent draws to view, typically a surface texture
// view acquired for the current frame, with the given size. A nil view
// restores the offscreen target.
func (d *Device) SetTarget(view hal.TextureView, width, height int) error {
	if view == nil {
		d.external = nil
		return nil
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	d.external = view
	d.width, d.height = width, height
	return nil
}

// Viewport implements batch.Device.
func (d *Device) Viewport() (int, int) { return d.width, d.height }

// Format returns the render target format.
func (d *Device) Format() gputypes.TextureFormat { return d.opts.format }

// Draws returns the number of draw calls submitted so far.
func (d *Device) Draws() int { return d.draws }

// Shader implements batch.Device. Pipelines are created on first request.
func (d *Device) Shader(kind batch.ShaderKind) (batch.Shader, error) {
	if d.closed {
		return nil, ErrClosed
	}
	if s, ok := d.shaders[kind]; ok {
		return s, nil
	}
	s, err := d.createShader(kind)
	if err != nil {
		return nil, err
	}
	d.shaders[kind] = s
	return s, nil
}

// NewBuffer implements batch.Device.
func (d *Device) NewBuffer() (batch.Buffer, error) {
	if d.closed {
		return nil, ErrClosed
	}
	b := &buffer{dev: d}
	d.buffers[b] = struct{}{}
	return b, nil
}

// NewTexture implements batch.Device.
func (d *Device) NewTexture(w, h int) (batch.Texture, error) {
	if d.closed {
		return nil, ErrClosed
	}
	t := &Texture{dev: d}
	if err := t.allocate(w, h); err != nil {
		return nil, err
	}
	d.textures[t] = struct{}{}
	return t, nil
}

// SetClip implements batch.Device. The rectangle becomes the scissor of
// later passes; an empty rectangle disables clipping.
func (d *Device) SetClip(r image.Rectangle) error {
	d.clip = r
	return nil
}

// Clear implements batch.Clearer by submitting a pass that clears the
// target to c.
func (d *Device) Clear(c color.NRGBA) error {
	if d.closed {
		return ErrClosed
	}
	a := float64(c.A) / 255
	cv := gputypes.Color{
		R: float64(c.R) / 255 * a,
		G: float64(c.G) / 255 * a,
		B: float64(c.B) / 255 * a,
		A: a,
	}
	return d.pass("clear", gputypes.LoadOpClear, cv, nil)
}

// scissor returns the scissor rectangle for the current target.
func (d *Device) scissor() image.Rectangle {
	full := image.Rect(0, 0, d.width, d.height)
	if d.clip.Empty() {
		return full
	}
	return full.Intersect(d.clip)
}

// view returns the texture view draws go to.
func (d *Device) view() hal.TextureView {
	if d.external != nil {
		return d.external
	}
	return d.targetView
}

// pass records one render pass, runs record inside it when non-nil and
// submits the result.
func (d *Device) pass(label string, load gputypes.LoadOp, cv gputypes.Color, record func(hal.RenderPassEncoder)) error {
	enc, err := d.dev.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: d.opts.label + "_" + label})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := enc.BeginEncoding(d.opts.label + "_" + label); err != nil {
		enc.DiscardEncoding()
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}
	rp := enc.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: d.opts.label + "_" + label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       d.view(),
			LoadOp:     load,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: cv,
		}},
	})
	if record != nil {
		record(rp)
	}
	rp.End()
	cmd, err := enc.EndEncoding()
	if err != nil {
		enc.DiscardEncoding()
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	return d.submit(cmd)
}

// submit queues cmd and frees command buffers the GPU has finished with.
func (d *Device) submit(cmd hal.CommandBuffer) error {
	index, err := d.queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		d.dev.FreeCommandBuffer(cmd)
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	d.inflight = append(d.inflight, submission{cmd: cmd, index: index})
	d.reclaim(d.queue.PollCompleted())
	return nil
}

func (d *Device) reclaim(completed uint64) {
	n := 0
	for _, s := range d.inflight {
		if s.index <= completed {
			d.dev.FreeCommandBuffer(s.cmd)
			continue
		}
		d.inflight[n] = s
		n++
	}
	clear(d.inflight[n:])
	d.inflight = d.inflight[:n]
}

// wait blocks until all submitted work has finished.
func (d *Device) wait() error {
	if len(d.inflight) == 0 {
		return nil
	}
	if err := d.dev.WaitIdle(); err != nil {
		return fmt.Errorf("wgpu: wait idle: %w", err)
	}
	d.reclaim(d.inflight[len(d.inflight)-1].index)
	return nil
}

// Close waits for the GPU and releases every object the device created.
// The HAL device and queue are left open.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	err := d.wait()
	for t := range d.textures {
		t.destroy()
	}
	clear(d.textures)
	for b := range d.buffers {
		b.destroy()
	}
	clear(d.buffers)
	d.destroyPipelines()
	d.destroyTarget()
	d.shader, d.texture, d.external = nil, nil, nil
	d.closed = true
	return err
}

// lastSubmission returns the index of the newest submission, or 0 when
// everything has completed.
func (d *Device) lastSubmission() uint64 {
	if len(d.inflight) == 0 {
		return 0
	}
	return d.inflight[len(d.inflight)-1].index
}
