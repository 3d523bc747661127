package recording

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/sketch/batch"
)

// ErrNoShader is returned by Draw when no shader has been used.
var ErrNoShader = errors.New("recording: draw without shader")

// Device is a batch.Device that records commands.
// The Device is not safe for concurrent use.
type Device struct {
	width, height int
	commands      []Command
	shaders       map[batch.ShaderKind]*shader
	textures      []*Texture
	buffers       int

	shader  *shader
	texture *Texture
	clip    image.Rectangle
	fail    error
}

// NewDevice creates a recording device for a width x height surface.
func NewDevice(width, height int) *Device {
	return &Device{
		width:   width,
		height:  height,
		shaders: make(map[batch.ShaderKind]*shader),
	}
}

// Viewport implements batch.Device.
func (d *Device) Viewport() (int, int) { return d.width, d.height }

// Resize changes the viewport size reported to the batcher.
func (d *Device) Resize(width, height int) {
	d.width, d.height = width, height
}

// Shader implements batch.Device.
func (d *Device) Shader(kind batch.ShaderKind) (batch.Shader, error) {
	if s, ok := d.shaders[kind]; ok {
		return s, nil
	}
	s := &shader{dev: d, kind: kind}
	d.shaders[kind] = s
	return s, nil
}

// NewBuffer implements batch.Device.
func (d *Device) NewBuffer() (batch.Buffer, error) {
	d.buffers++
	return &buffer{dev: d, id: d.buffers}, nil
}

// NewTexture implements batch.Device.
func (d *Device) NewTexture(w, h int) (batch.Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("recording: invalid texture size %dx%d", w, h)
	}
	t := &Texture{dev: d, ref: TextureRef(len(d.textures) + 1), w: w, h: h, channels: 4}
	d.textures = append(d.textures, t)
	return t, nil
}

// SetClip implements batch.Device.
func (d *Device) SetClip(r image.Rectangle) error {
	d.clip = r
	d.record(SetClipCommand{Rect: r})
	return nil
}

// FailNext makes the next Draw return err instead of recording.
func (d *Device) FailNext(err error) { d.fail = err }

// Commands returns every recorded command in order.
func (d *Device) Commands() []Command { return d.commands }

// Draws returns the recorded draw commands in order.
func (d *Device) Draws() []DrawCommand {
	var draws []DrawCommand
	for _, c := range d.commands {
		if dc, ok := c.(DrawCommand); ok {
			draws = append(draws, dc)
		}
	}
	return draws
}

// Textures returns every texture created so far.
func (d *Device) Textures() []*Texture { return d.textures }

// Reset discards recorded commands. Created resources are kept.
func (d *Device) Reset() { d.commands = nil }

func (d *Device) record(c Command) { d.commands = append(d.commands, c) }

type shader struct {
	dev  *Device
	kind batch.ShaderKind
}

func (s *shader) Use() error {
	s.dev.shader = s
	s.dev.record(UseShaderCommand{Shader: s.kind})
	return nil
}

func (s *shader) UniformLocation(name string) int {
	if name == "atlas" && s.kind.Textured() {
		return 1
	}
	return -1
}

type buffer struct {
	dev  *Device
	id   int
	data []byte
}

func (b *buffer) UploadVertices(data []byte) error {
	b.data = append(b.data[:0], data...)
	b.dev.record(UploadBufferCommand{Buffer: b.id, Bytes: len(data)})
	return nil
}

func (b *buffer) Draw(triangles int) error {
	d := b.dev
	if err := d.fail; err != nil {
		d.fail = nil
		return err
	}
	if d.shader == nil {
		return ErrNoShader
	}
	n := triangles * 3
	if n*batch.VertexStride > len(b.data) {
		return fmt.Errorf("recording: draw of %d triangles exceeds buffer of %d bytes", triangles, len(b.data))
	}

	vs := make([]batch.Vertex, n)
	for i := range vs {
		vs[i] = batch.DecodeVertex(b.data[i*batch.VertexStride:])
	}
	dc := DrawCommand{
		Shader:    d.shader.kind,
		Buffer:    b.id,
		Triangles: triangles,
		Vertices:  vs,
		Clip:      d.clip,
	}
	if d.shader.kind.Textured() && d.texture != nil {
		dc.Texture = d.texture.ref
	}
	d.record(dc)
	return nil
}

// Texture is a recorded texture. It keeps a copy of the last upload.
type Texture struct {
	dev      *Device
	ref      TextureRef
	w, h     int
	channels int
	pix      []byte
}

// Ref returns the texture's identifier in recorded commands.
func (t *Texture) Ref() TextureRef { return t.ref }

// Bind implements batch.Texture.
func (t *Texture) Bind() error {
	t.dev.texture = t
	t.dev.record(BindTextureCommand{Texture: t.ref})
	return nil
}

// Width implements batch.Texture.
func (t *Texture) Width() int { return t.w }

// Height implements batch.Texture.
func (t *Texture) Height() int { return t.h }

// Pix returns the last uploaded pixel data.
func (t *Texture) Pix() []byte { return t.pix }

// Upload implements batch.Texture.
func (t *Texture) Upload(pix []byte, w, h, channels int) error {
	if len(pix) < w*h*channels {
		return fmt.Errorf("recording: upload of %d bytes for %dx%dx%d texture", len(pix), w, h, channels)
	}
	t.w, t.h, t.channels = w, h, channels
	t.pix = append(t.pix[:0], pix...)
	t.dev.record(UploadTextureCommand{Texture: t.ref, Width: w, Height: h, Channels: channels})
	return nil
}
