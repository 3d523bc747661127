// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/sketch/batch"
)

// spyDevice records the HAL calls the tests care about.
type spyDevice struct {
	hal.Device
	pipelines []*hal.RenderPipelineDescriptor
	modules   []hal.ShaderSource
	textures  int
	destroyed int
	freed     int
	discarded int
	passes    []*spyPass

	// beginErr, when set, fails every BeginEncoding.
	beginErr error
}

func (s *spyDevice) CreateRenderPipeline(desc *hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	s.pipelines = append(s.pipelines, desc)
	return s.Device.CreateRenderPipeline(desc)
}

func (s *spyDevice) CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	s.modules = append(s.modules, desc.Source)
	return s.Device.CreateShaderModule(desc)
}

func (s *spyDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	s.textures++
	return s.Device.CreateTexture(desc)
}

func (s *spyDevice) DestroyTexture(t hal.Texture) {
	s.destroyed++
	s.Device.DestroyTexture(t)
}

func (s *spyDevice) FreeCommandBuffer(cmd hal.CommandBuffer) {
	s.freed++
	s.Device.FreeCommandBuffer(cmd)
}

func (s *spyDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	enc, err := s.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	return &spyEncoder{CommandEncoder: enc, dev: s}, nil
}

type spyEncoder struct {
	hal.CommandEncoder
	dev *spyDevice
}

func (e *spyEncoder) BeginEncoding(label string) error {
	if e.dev.beginErr != nil {
		return e.dev.beginErr
	}
	return e.CommandEncoder.BeginEncoding(label)
}

func (e *spyEncoder) DiscardEncoding() {
	e.dev.discarded++
	e.CommandEncoder.DiscardEncoding()
}

func (e *spyEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	p := &spyPass{RenderPassEncoder: e.CommandEncoder.BeginRenderPass(desc), load: desc.ColorAttachments[0].LoadOp, clear: desc.ColorAttachments[0].ClearValue}
	e.dev.passes = append(e.dev.passes, p)
	return p
}

type spyPass struct {
	hal.RenderPassEncoder
	load     gputypes.LoadOp
	clear    gputypes.Color
	scissor  image.Rectangle
	vertices uint32
	bound    bool
}

func (p *spyPass) SetScissorRect(x, y, w, h uint32) {
	p.scissor = image.Rect(int(x), int(y), int(x+w), int(y+h))
	p.RenderPassEncoder.SetScissorRect(x, y, w, h)
}

func (p *spyPass) SetBindGroup(index uint32, g hal.BindGroup, offsets []uint32) {
	p.bound = true
	p.RenderPassEncoder.SetBindGroup(index, g, offsets)
}

func (p *spyPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.vertices += vertexCount
	p.RenderPassEncoder.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

// spyQueue records texture uploads.
type spyQueue struct {
	hal.Queue
	uploads [][]byte
}

func (q *spyQueue) WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error {
	q.uploads = append(q.uploads, append([]byte(nil), data...))
	return q.Queue.WriteTexture(dst, data, layout, size)
}

func openNoop(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	inst, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		t.Fatal(err)
	}
	adapters := inst.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		t.Fatal("no noop adapter")
	}
	od, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		t.Fatal(err)
	}
	return od.Device, od.Queue
}

func newSpy(t *testing.T, w, h int, opts ...Option) (*Device, *spyDevice, *spyQueue) {
	t.Helper()
	hd, hq := openNoop(t)
	sd := &spyDevice{Device: hd}
	sq := &spyQueue{Queue: hq}
	d, err := New(sd, sq, w, h, opts...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d, sd, sq
}

func encode(w, h float32, vs ...batch.Vertex) []byte {
	var b []byte
	for _, v := range vs {
		b = v.AppendEncoded(b, w, h)
	}
	return b
}

func TestNew_InvalidSize(t *testing.T) {
	hd, hq := openNoop(t)
	for _, sz := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		if _, err := New(hd, hq, sz[0], sz[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("New(%d, %d) = %v, want ErrInvalidSize", sz[0], sz[1], err)
		}
	}
}

func TestShader_Pipelines(t *testing.T) {
	d, spy, _ := newSpy(t, 64, 32, WithFormat(gputypes.TextureFormatBGRA8Unorm))

	kinds := []batch.ShaderKind{batch.ShaderColor, batch.ShaderImage, batch.ShaderFont, batch.ShaderSDF}
	for _, k := range kinds {
		s, err := d.Shader(k)
		if err != nil {
			t.Fatalf("Shader(%v): %v", k, err)
		}
		again, _ := d.Shader(k)
		if again != s {
			t.Errorf("Shader(%v) not cached", k)
		}
		want := -1
		if k.Textured() {
			want = 0
		}
		if got := s.UniformLocation("atlas"); got != want {
			t.Errorf("%v atlas location = %d, want %d", k, got, want)
		}
	}

	if len(spy.pipelines) != len(kinds) {
		t.Fatalf("pipelines = %d, want %d", len(spy.pipelines), len(kinds))
	}
	if len(spy.modules) != 2 {
		t.Errorf("shader modules = %d, want 2", len(spy.modules))
	}
	entries := []string{"fs_main", "fs_image", "fs_font", "fs_sdf"}
	for i, p := range spy.pipelines {
		if p.Fragment.EntryPoint != entries[i] {
			t.Errorf("pipeline %d entry = %q, want %q", i, p.Fragment.EntryPoint, entries[i])
		}
		if p.Fragment.Targets[0].Format != gputypes.TextureFormatBGRA8Unorm {
			t.Errorf("pipeline %d format = %v", i, p.Fragment.Targets[0].Format)
		}
		if p.Vertex.Buffers[0].ArrayStride != batch.VertexStride {
			t.Errorf("pipeline %d stride = %d", i, p.Vertex.Buffers[0].ArrayStride)
		}
	}

	if _, err := d.Shader(batch.ShaderKind(42)); !errors.Is(err, ErrUnknownShader) {
		t.Errorf("unknown shader: %v", err)
	}
}

func TestShader_SPIRV(t *testing.T) {
	words, err := SPIRV(batch.ShaderImage)
	if err != nil {
		t.Skipf("naga cannot compile the textured shader: %v", err)
	}
	if len(words) == 0 || words[0] != 0x07230203 {
		t.Fatalf("invalid SPIR-V header")
	}

	d, spy, _ := newSpy(t, 8, 8, WithSPIRV())
	if _, err := d.Shader(batch.ShaderFont); err != nil {
		t.Fatal(err)
	}
	if src := spy.modules[0]; src.WGSL != "" || len(src.SPIRV) != len(words) {
		t.Errorf("module source: WGSL %d bytes, SPIR-V %d words", len(src.WGSL), len(src.SPIRV))
	}
}

func TestDraw_Scissor(t *testing.T) {
	d, spy, _ := newSpy(t, 100, 50)
	s, _ := d.Shader(batch.ShaderColor)
	buf, _ := d.NewBuffer()
	red := color.NRGBA{R: 255, A: 255}

	if err := buf.UploadVertices(encode(100, 50,
		batch.Pos(0, 0, red), batch.Pos(10, 0, red), batch.Pos(0, 10, red),
	)); err != nil {
		t.Fatal(err)
	}
	_ = s.Use()
	if err := buf.Draw(1); err != nil {
		t.Fatal(err)
	}
	_ = d.SetClip(image.Rect(10, 5, 40, 200))
	if err := buf.Draw(1); err != nil {
		t.Fatal(err)
	}

	if len(spy.passes) != 2 || d.Draws() != 2 {
		t.Fatalf("passes = %d, draws = %d, want 2", len(spy.passes), d.Draws())
	}
	if got := spy.passes[0].scissor; got != image.Rect(0, 0, 100, 50) {
		t.Errorf("unclipped scissor = %v", got)
	}
	if got := spy.passes[1].scissor; got != image.Rect(10, 5, 40, 50) {
		t.Errorf("clipped scissor = %v", got)
	}
	for i, p := range spy.passes {
		if p.load != gputypes.LoadOpLoad || p.vertices != 3 || p.bound {
			t.Errorf("pass %d: load %v vertices %d bound %v", i, p.load, p.vertices, p.bound)
		}
	}
	if spy.freed != 2 {
		t.Errorf("freed command buffers = %d, want 2", spy.freed)
	}
}

func TestDraw_Errors(t *testing.T) {
	d, _, _ := newSpy(t, 10, 10)
	buf, _ := d.NewBuffer()
	if err := buf.Draw(0); !errors.Is(err, ErrNoShader) {
		t.Errorf("no shader: %v", err)
	}
	s, _ := d.Shader(batch.ShaderImage)
	_ = s.Use()
	if err := buf.Draw(0); !errors.Is(err, ErrNoTexture) {
		t.Errorf("no texture: %v", err)
	}
	if err := buf.UploadVertices(make([]byte, 21)); err == nil {
		t.Error("misaligned vertex data accepted")
	}
	tex, _ := d.NewTexture(2, 2)
	_ = tex.Bind()
	if err := buf.Draw(1); err == nil {
		t.Error("draw past uploaded vertices accepted")
	}
}

func TestTexture_Upload(t *testing.T) {
	d, spy, q := newSpy(t, 10, 10)
	bt, err := d.NewTexture(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	tex := bt.(*Texture)
	if err := tex.Upload([]byte{10, 200}, 2, 1, 1); err != nil {
		t.Fatal(err)
	}
	want := []byte{10, 10, 10, 10, 200, 200, 200, 200}
	if got := q.uploads[0]; string(got) != string(want) {
		t.Errorf("alpha upload = %v, want %v", got, want)
	}

	created := spy.textures
	if err := tex.Upload(make([]byte, 4*4*4), 4, 4, 4); err != nil {
		t.Fatal(err)
	}
	if tex.Width() != 4 || tex.Height() != 4 || spy.textures != created+1 {
		t.Errorf("resize: %dx%d, textures created %d", tex.Width(), tex.Height(), spy.textures-created)
	}
	if err := tex.Upload(make([]byte, 3), 2, 2, 1); err == nil {
		t.Error("short upload accepted")
	}
	if err := tex.Upload(make([]byte, 12), 2, 2, 3); err == nil {
		t.Error("three-channel upload accepted")
	}

	s, _ := d.Shader(batch.ShaderFont)
	buf, _ := d.NewBuffer()
	white := color.NRGBA{255, 255, 255, 255}
	_ = buf.UploadVertices(encode(10, 10, batch.Pos(0, 0, white), batch.Pos(5, 0, white), batch.Pos(0, 5, white)))
	_ = tex.Bind()
	_ = s.Use()
	if err := buf.Draw(1); err != nil {
		t.Fatal(err)
	}
	if !spy.passes[len(spy.passes)-1].bound {
		t.Error("textured draw did not bind the texture")
	}
}

func TestClear(t *testing.T) {
	d, spy, _ := newSpy(t, 10, 10)
	if err := d.Clear(color.NRGBA{R: 255, A: 128}); err != nil {
		t.Fatal(err)
	}
	p := spy.passes[0]
	if p.load != gputypes.LoadOpClear || p.vertices != 0 {
		t.Fatalf("clear pass: load %v vertices %d", p.load, p.vertices)
	}
	if p.clear.A < 0.5 || p.clear.A > 0.51 || p.clear.R != p.clear.A {
		t.Errorf("clear value = %+v, want premultiplied half red", p.clear)
	}
}

func TestPass_BeginEncodingFailureDiscards(t *testing.T) {
	d, spy, _ := newSpy(t, 10, 10)
	errBegin := errors.New("device lost")
	spy.beginErr = errBegin

	if err := d.Clear(color.NRGBA{A: 255}); !errors.Is(err, errBegin) {
		t.Fatalf("Clear err = %v, want %v", err, errBegin)
	}
	if _, err := d.ReadPixels(); !errors.Is(err, errBegin) {
		t.Fatalf("ReadPixels err = %v, want %v", err, errBegin)
	}
	if spy.discarded != 2 || len(spy.passes) != 0 {
		t.Errorf("discarded %d encoders with %d passes, want 2 and 0", spy.discarded, len(spy.passes))
	}

	spy.beginErr = nil
	if err := d.Clear(color.NRGBA{A: 255}); err != nil {
		t.Fatalf("Clear after recovery: %v", err)
	}
	if spy.discarded != 2 {
		t.Errorf("successful pass discarded its encoder")
	}
}

func TestReadPixels(t *testing.T) {
	d, _, _ := newSpy(t, 70, 3)
	img, err := d.ReadPixels()
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 70, 3) {
		t.Errorf("bounds = %v", img.Bounds())
	}

	if err := d.SetTarget(&noop.Resource{}, 70, 3); err != nil {
		t.Fatal(err)
	}
	if _, err := d.ReadPixels(); !errors.Is(err, ErrExternalTarget) {
		t.Errorf("external target: %v", err)
	}
	_ = d.SetTarget(nil, 0, 0)
	if _, err := d.ReadPixels(); err != nil {
		t.Errorf("after restoring target: %v", err)
	}
}

func TestResizeAndClose(t *testing.T) {
	d, spy, _ := newSpy(t, 10, 10)
	if err := d.Resize(20, 30); err != nil {
		t.Fatal(err)
	}
	if w, h := d.Viewport(); w != 20 || h != 30 {
		t.Errorf("viewport = %dx%d", w, h)
	}
	if spy.destroyed != 1 {
		t.Errorf("old target destroyed %d times", spy.destroyed)
	}
	if err := d.Resize(0, 5); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Resize(0, 5) = %v", err)
	}

	_, _ = d.NewTexture(4, 4)
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if spy.destroyed != 3 {
		t.Errorf("textures destroyed = %d, want 3", spy.destroyed)
	}
	if _, err := d.Shader(batch.ShaderColor); !errors.Is(err, ErrClosed) {
		t.Errorf("Shader after Close: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

type fakeProvider struct {
	dev    hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
}

func (p fakeProvider) Device() gpucontext.Device             { return p.dev }
func (p fakeProvider) Queue() gpucontext.Queue               { return p.queue }
func (p fakeProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (p fakeProvider) Adapter() gpucontext.Adapter           { return nil }
func (p fakeProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

func TestNewFromProvider(t *testing.T) {
	if _, err := NewFromProvider(nil, 1, 1); !errors.Is(err, ErrNilProvider) {
		t.Errorf("nil provider: %v", err)
	}
	hd, hq := openNoop(t)
	d, err := NewFromProvider(fakeProvider{dev: hd, queue: hq, format: gputypes.TextureFormatBGRA8Unorm}, 16, 16)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	if d.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("format = %v, want the surface format", d.Format())
	}
	if _, err := NewFromProvider(fakeProvider{}, 16, 16); !errors.Is(err, ErrNoHAL) {
		t.Errorf("provider without HAL: %v", err)
	}
}
