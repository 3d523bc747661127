// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"
)

// Texture is a premultiplied RGBA image sampled by textured shaders.
type Texture struct {
	dev *Device
	img *image.RGBA
}

// Bind implements batch.Texture.
func (t *Texture) Bind() error {
	t.dev.texture = t
	return nil
}

// Width implements batch.Texture.
func (t *Texture) Width() int { return t.img.Rect.Dx() }

// Height implements batch.Texture.
func (t *Texture) Height() int { return t.img.Rect.Dy() }

// Image returns the texture contents.
func (t *Texture) Image() *image.RGBA { return t.img }

// Upload implements batch.Texture. Four-channel data is premultiplied
// RGBA; single-channel data is coverage and is stored as premultiplied
// white.
func (t *Texture) Upload(pix []byte, w, h, channels int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("software: invalid texture size %dx%d", w, h)
	}
	if channels != 1 && channels != 4 {
		return fmt.Errorf("software: unsupported channel count %d", channels)
	}
	if len(pix) < w*h*channels {
		return fmt.Errorf("software: upload of %d bytes for %dx%dx%d texture", len(pix), w, h, channels)
	}
	if t.img.Rect.Dx() != w || t.img.Rect.Dy() != h {
		t.img = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	if channels == 4 {
		copy(t.img.Pix, pix[:w*h*4])
		return nil
	}
	for i, a := range pix[:w*h] {
		t.img.Pix[4*i+0] = a
		t.img.Pix[4*i+1] = a
		t.img.Pix[4*i+2] = a
		t.img.Pix[4*i+3] = a
	}
	return nil
}

// sample returns the bilinearly filtered premultiplied texel at (u, v),
// clamping to the edge.
func (t *Texture) sample(u, v float32) [4]float32 {
	w, h := t.img.Rect.Dx(), t.img.Rect.Dy()
	x := u*float32(w) - 0.5
	y := v*float32(h) - 0.5
	fx0 := math32.Floor(x)
	fy0 := math32.Floor(y)
	ax, ay := x-fx0, y-fy0

	x0, y0 := clampInt(int(fx0), w), clampInt(int(fy0), h)
	x1, y1 := clampInt(int(fx0)+1, w), clampInt(int(fy0)+1, h)

	var out [4]float32
	for i := range out {
		c00 := float32(t.img.Pix[y0*t.img.Stride+x0*4+i])
		c10 := float32(t.img.Pix[y0*t.img.Stride+x1*4+i])
		c01 := float32(t.img.Pix[y1*t.img.Stride+x0*4+i])
		c11 := float32(t.img.Pix[y1*t.img.Stride+x1*4+i])
		top := c00 + (c10-c00)*ax
		bot := c01 + (c11-c01)*ax
		out[i] = (top + (bot-top)*ay) / 255
	}
	return out
}

func clampInt(v, n int) int {
	return max(0, min(v, n-1))
}
