package batch

import (
	"fmt"
	"image"
	"image/color"
)

// ShaderKind selects one of the shader programs a Device provides.
type ShaderKind uint8

const (
	// ShaderColor draws untextured, per-vertex colored triangles.
	ShaderColor ShaderKind = iota
	// ShaderImage samples an RGBA texture and multiplies by the vertex color.
	ShaderImage
	// ShaderFont uses the texture alpha as coverage for the vertex color.
	ShaderFont
	// ShaderSDF treats the texture alpha as a signed distance field.
	ShaderSDF
)

// String returns the shader kind name.
func (k ShaderKind) String() string {
	switch k {
	case ShaderColor:
		return "color"
	case ShaderImage:
		return "image"
	case ShaderFont:
		return "font"
	case ShaderSDF:
		return "sdf"
	default:
		return fmt.Sprintf("ShaderKind(%d)", uint8(k))
	}
}

// Textured reports whether pipelines of this kind bind a texture.
func (k ShaderKind) Textured() bool { return k != ShaderColor }

// ImageID is an opaque, caller-stable identifier for a texture.
// The zero value means "no image".
type ImageID uint64

// Shader is a compiled shader program.
type Shader interface {
	// Use makes the program current for the following draw.
	Use() error
	// UniformLocation returns the location (or binding) of a named
	// uniform, or -1 if the program has none.
	UniformLocation(name string) int
}

// Texture is an image resident on the GPU.
type Texture interface {
	// Bind makes the texture active for the following draw.
	Bind() error
	Width() int
	Height() int
	// Upload replaces the texture contents. pix holds h rows of
	// w*channels bytes; the texture is resized if w or h changed.
	Upload(pix []byte, w, h, channels int) error
}

// Buffer is a GPU vertex buffer.
type Buffer interface {
	// UploadVertices replaces the buffer contents with encoded vertices.
	UploadVertices(data []byte) error
	// Draw issues a draw of the given number of triangles using the
	// current shader and texture.
	Draw(triangles int) error
}

// Device creates GPU resources for a single surface.
type Device interface {
	// Shader returns the program for kind. Implementations cache programs.
	Shader(kind ShaderKind) (Shader, error)
	NewBuffer() (Buffer, error)
	NewTexture(w, h int) (Texture, error)
	// SetClip sets the scissor rectangle in pixels. An empty rectangle
	// disables clipping.
	SetClip(r image.Rectangle) error
	// Viewport returns the surface size in pixels.
	Viewport() (width, height int)
}

// Clearer is implemented by devices that can clear the whole surface.
type Clearer interface {
	Clear(c color.NRGBA) error
}
