package recording

import (
	"image"

	"github.com/gogpu/sketch/batch"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdUseShader     CommandType = iota // Make a shader current
	CmdBindTexture                      // Make a texture current
	CmdUploadTexture                    // Replace texture contents
	CmdUploadBuffer                     // Replace vertex buffer contents
	CmdDraw                             // Issue a draw call
	CmdSetClip                          // Change the scissor rectangle
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdUseShader:     "UseShader",
	CmdBindTexture:   "BindTexture",
	CmdUploadTexture: "UploadTexture",
	CmdUploadBuffer:  "UploadBuffer",
	CmdDraw:          "Draw",
	CmdSetClip:       "SetClip",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is implemented by all recorded commands.
type Command interface {
	Type() CommandType
}

// TextureRef identifies a texture created by a Device. Refs start at 1.
type TextureRef uint32

// UseShaderCommand records Shader.Use.
type UseShaderCommand struct {
	Shader batch.ShaderKind
}

// Type implements Command.
func (UseShaderCommand) Type() CommandType { return CmdUseShader }

// BindTextureCommand records Texture.Bind.
type BindTextureCommand struct {
	Texture TextureRef
}

// Type implements Command.
func (BindTextureCommand) Type() CommandType { return CmdBindTexture }

// UploadTextureCommand records Texture.Upload.
type UploadTextureCommand struct {
	Texture       TextureRef
	Width, Height int
	Channels      int
}

// Type implements Command.
func (UploadTextureCommand) Type() CommandType { return CmdUploadTexture }

// UploadBufferCommand records Buffer.UploadVertices.
type UploadBufferCommand struct {
	Buffer int
	Bytes  int
}

// Type implements Command.
func (UploadBufferCommand) Type() CommandType { return CmdUploadBuffer }

// DrawCommand records Buffer.Draw with the state it was issued with.
type DrawCommand struct {
	Shader    batch.ShaderKind
	Texture   TextureRef
	Buffer    int
	Triangles int
	// Vertices holds the decoded buffer contents. Positions are in NDC.
	Vertices []batch.Vertex
	Clip     image.Rectangle
}

// Type implements Command.
func (DrawCommand) Type() CommandType { return CmdDraw }

// SetClipCommand records Device.SetClip.
type SetClipCommand struct {
	Rect image.Rectangle
}

// Type implements Command.
func (SetClipCommand) Type() CommandType { return CmdSetClip }
