// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/sketch/batch"
)

// Errors returned by the device.
var (
	// ErrNoShader is returned by Draw when no shader has been used.
	ErrNoShader = errors.New("software: draw without shader")

	// ErrNoTexture is returned by Draw for a textured shader with no
	// texture bound.
	ErrNoTexture = errors.New("software: textured draw without texture")
)

var (
	_ batch.Device  = (*Device)(nil)
	_ batch.Clearer = (*Device)(nil)
)

// Device rasterizes batches into an RGBA image.
type Device struct {
	img     *image.RGBA
	shaders map[batch.ShaderKind]*shader

	shader  *shader
	texture *Texture
	clip    image.Rectangle

	triangles int
}

// New creates a device with a transparent width x height target.
func New(width, height int) *Device {
	return NewWithImage(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewWithImage creates a device drawing into img. The image bounds must
// start at the origin.
func NewWithImage(img *image.RGBA) *Device {
	return &Device{
		img:     img,
		shaders: make(map[batch.ShaderKind]*shader),
	}
}

// Image returns the render target.
func (d *Device) Image() *image.RGBA { return d.img }

// Triangles returns the number of triangles rasterized so far.
func (d *Device) Triangles() int { return d.triangles }

// Viewport implements batch.Device.
func (d *Device) Viewport() (int, int) {
	return d.img.Rect.Dx(), d.img.Rect.Dy()
}

// Shader implements batch.Device.
func (d *Device) Shader(kind batch.ShaderKind) (batch.Shader, error) {
	if kind > batch.ShaderSDF {
		return nil, fmt.Errorf("software: unknown shader %v", kind)
	}
	if s, ok := d.shaders[kind]; ok {
		return s, nil
	}
	s := &shader{dev: d, kind: kind}
	d.shaders[kind] = s
	return s, nil
}

// NewBuffer implements batch.Device.
func (d *Device) NewBuffer() (batch.Buffer, error) {
	return &buffer{dev: d}, nil
}

// NewTexture implements batch.Device.
func (d *Device) NewTexture(w, h int) (batch.Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("software: invalid texture size %dx%d", w, h)
	}
	return &Texture{dev: d, img: image.NewRGBA(image.Rect(0, 0, w, h))}, nil
}

// SetClip implements batch.Device.
func (d *Device) SetClip(r image.Rectangle) error {
	d.clip = r
	return nil
}

// Clear implements batch.Clearer. The whole target is replaced, ignoring
// the clip rectangle.
func (d *Device) Clear(c color.NRGBA) error {
	draw.Draw(d.img, d.img.Rect, image.NewUniform(c), image.Point{}, draw.Src)
	return nil
}

// bounds returns the area draws may touch.
func (d *Device) bounds() image.Rectangle {
	if d.clip.Empty() {
		return d.img.Rect
	}
	return d.img.Rect.Intersect(d.clip)
}

type shader struct {
	dev  *Device
	kind batch.ShaderKind
}

func (s *shader) Use() error {
	s.dev.shader = s
	return nil
}

func (s *shader) UniformLocation(name string) int {
	if name == "atlas" && s.kind.Textured() {
		return 0
	}
	return -1
}

type buffer struct {
	dev      *Device
	vertices []batch.Vertex
}

func (b *buffer) UploadVertices(data []byte) error {
	if len(data)%batch.VertexStride != 0 {
		return fmt.Errorf("software: vertex data of %d bytes is not a multiple of %d", len(data), batch.VertexStride)
	}
	b.vertices = b.vertices[:0]
	for off := 0; off < len(data); off += batch.VertexStride {
		b.vertices = append(b.vertices, batch.DecodeVertex(data[off:]))
	}
	return nil
}

func (b *buffer) Draw(triangles int) error {
	d := b.dev
	if d.shader == nil {
		return ErrNoShader
	}
	if 3*triangles > len(b.vertices) {
		return fmt.Errorf("software: draw of %d triangles exceeds %d uploaded vertices", triangles, len(b.vertices))
	}
	var tex *Texture
	if d.shader.kind.Textured() {
		if d.texture == nil {
			return ErrNoTexture
		}
		tex = d.texture
	}

	w, h := d.Viewport()
	clip := d.bounds()
	for i := range triangles {
		var tri [3]vertex
		for j := range tri {
			tri[j] = fromNDC(b.vertices[3*i+j], float32(w), float32(h))
		}
		d.fill(tri, d.shader.kind, tex, clip)
	}
	d.triangles += triangles
	return nil
}
