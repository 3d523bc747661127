// Package batch implements vertex batching for the sketch renderer.
//
// Geometry is appended into a Batch owned by a Pipeline. A Pipeline pairs a
// shader with an optional texture and issues exactly one GPU draw per
// non-empty flush. The Registry owns every pipeline created for a surface
// and enforces the flush-on-switch rule: activating a different pipeline
// always flushes the previously active one first, so vertices for
// different shaders or textures never interleave and draw order is kept.
//
// The package talks to the GPU only through the Shader, Texture, Buffer
// and Device interfaces. See backend/wgpu, backend/software and recording
// for implementations.
package batch

import (
	"encoding/binary"
	"image/color"

	"github.com/chewxy/math32"
)

// VertexStride is the encoded size of one vertex in bytes:
// position float32x2, texture coordinate float32x2, color unorm8x4.
const VertexStride = 20

// Vertex is a single vertex in pixel space.
//
// U and V are ignored by the color shader. Color is straight
// (non-premultiplied) alpha.
type Vertex struct {
	X, Y  float32
	U, V  float32
	Color color.NRGBA
}

// Pos returns a vertex with only a position and color set.
func Pos(x, y float64, c color.NRGBA) Vertex {
	return Vertex{X: float32(x), Y: float32(y), Color: c}
}

// Tex returns a vertex with position, texture coordinate and color.
func Tex(x, y, u, v float64, c color.NRGBA) Vertex {
	return Vertex{X: float32(x), Y: float32(y), U: float32(u), V: float32(v), Color: c}
}

// NDC maps a pixel-space position to normalized device coordinates for a
// viewport of the given size. Y is flipped so that pixel row 0 maps to +1.
func NDC(x, y, width, height float32) (float32, float32) {
	return x/width*2 - 1, 1 - y/height*2
}

// AppendEncoded appends the little-endian encoding of v to dst with its
// position remapped to NDC.
func (v Vertex) AppendEncoded(dst []byte, width, height float32) []byte {
	nx, ny := NDC(v.X, v.Y, width, height)
	dst = binary.LittleEndian.AppendUint32(dst, math32.Float32bits(nx))
	dst = binary.LittleEndian.AppendUint32(dst, math32.Float32bits(ny))
	dst = binary.LittleEndian.AppendUint32(dst, math32.Float32bits(v.U))
	dst = binary.LittleEndian.AppendUint32(dst, math32.Float32bits(v.V))
	return append(dst, v.Color.R, v.Color.G, v.Color.B, v.Color.A)
}

// DecodeVertex reads one encoded vertex from src, which must hold at least
// VertexStride bytes. Positions are returned in NDC.
func DecodeVertex(src []byte) Vertex {
	return Vertex{
		X: math32.Float32frombits(binary.LittleEndian.Uint32(src[0:])),
		Y: math32.Float32frombits(binary.LittleEndian.Uint32(src[4:])),
		U: math32.Float32frombits(binary.LittleEndian.Uint32(src[8:])),
		V: math32.Float32frombits(binary.LittleEndian.Uint32(src[12:])),
		Color: color.NRGBA{
			R: src[16], G: src[17], B: src[18], A: src[19],
		},
	}
}
