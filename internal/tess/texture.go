package tess

import (
	"image/color"

	"github.com/gogpu/sketch/batch"
)

// UV is a rectangle in normalized texture coordinates.
type UV struct {
	U0, V0, U1, V1 float64
}

// FullUV covers the whole texture.
var FullUV = UV{0, 0, 1, 1}

// TexQuad emits an axis-aligned textured quad with its top-left corner at
// (x, y), modulated by tint.
func TexQuad(out Sink, x, y, w, h float64, uv UV, tint color.NRGBA) {
	x0, y0, x1, y1 := x, y, x+w, y+h
	out.Append(
		batch.Tex(x0, y0, uv.U0, uv.V0, tint),
		batch.Tex(x1, y0, uv.U1, uv.V0, tint),
		batch.Tex(x1, y1, uv.U1, uv.V1, tint),

		batch.Tex(x0, y0, uv.U0, uv.V0, tint),
		batch.Tex(x1, y1, uv.U1, uv.V1, tint),
		batch.Tex(x0, y1, uv.U0, uv.V1, tint),
	)
}

// SubUV returns the normalized coordinates of the pixel rectangle
// (x, y, w, h) inside a texture of size tw x th. The rectangle is clamped
// to the texture.
func SubUV(x, y, w, h, tw, th float64) UV {
	if tw <= 0 || th <= 0 {
		return FullUV
	}
	clamp := func(v, hi float64) float64 {
		return max(0, min(v, hi))
	}
	x0, y0 := clamp(x, tw), clamp(y, th)
	x1, y1 := clamp(x+w, tw), clamp(y+h, th)
	return UV{x0 / tw, y0 / th, x1 / tw, y1 / th}
}
