// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"

	"github.com/chewxy/math32"

	"github.com/gogpu/sketch/batch"
)

// sdfEdge is half the width, in distance-field units, of the smoothing
// band around the SDF outline.
const sdfEdge = 0.08

// vertex is a decoded vertex in pixel space with a straight-alpha color
// in [0, 1].
type vertex struct {
	x, y, u, v float32
	c          [4]float32
}

func fromNDC(v batch.Vertex, w, h float32) vertex {
	return vertex{
		x: (v.X + 1) / 2 * w,
		y: (1 - v.Y) / 2 * h,
		u: v.U,
		v: v.V,
		c: [4]float32{
			float32(v.Color.R) / 255,
			float32(v.Color.G) / 255,
			float32(v.Color.B) / 255,
			float32(v.Color.A) / 255,
		},
	}
}

// edge returns twice the signed area of (a, b, p).
func edge(a, b vertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// owns reports whether a pixel center lying exactly on edge a->b belongs
// to the triangle. Neighbors traverse a shared edge in opposite
// directions, so exactly one of them owns it.
func owns(a, b vertex) bool {
	dx, dy := b.x-a.x, b.y-a.y
	return dy > 0 || dy == 0 && dx < 0
}

func inside(w float32, own bool) bool {
	return w > 0 || w == 0 && own
}

// fill rasterizes one triangle into the target within clip. Pixels are
// covered when their center is inside the triangle.
func (d *Device) fill(t [3]vertex, kind batch.ShaderKind, tex *Texture, clip image.Rectangle) {
	area := edge(t[0], t[1], t[2].x, t[2].y)
	if area == 0 || math32.IsNaN(area) || math32.IsInf(area, 0) {
		return
	}
	if area < 0 {
		t[1], t[2] = t[2], t[1]
		area = -area
	}

	minX := math32.Floor(min(t[0].x, t[1].x, t[2].x))
	minY := math32.Floor(min(t[0].y, t[1].y, t[2].y))
	maxX := math32.Ceil(max(t[0].x, t[1].x, t[2].x))
	maxY := math32.Ceil(max(t[0].y, t[1].y, t[2].y))
	r := clip.Intersect(image.Rect(
		int(max(minX, float32(clip.Min.X-1))), int(max(minY, float32(clip.Min.Y-1))),
		int(min(maxX, float32(clip.Max.X+1))), int(min(maxY, float32(clip.Max.Y+1))),
	))
	if r.Empty() {
		return
	}

	own0, own1, own2 := owns(t[1], t[2]), owns(t[2], t[0]), owns(t[0], t[1])
	for y := r.Min.Y; y < r.Max.Y; y++ {
		py := float32(y) + 0.5
		for x := r.Min.X; x < r.Max.X; x++ {
			px := float32(x) + 0.5
			e0 := edge(t[1], t[2], px, py)
			e1 := edge(t[2], t[0], px, py)
			e2 := edge(t[0], t[1], px, py)
			if !inside(e0, own0) || !inside(e1, own1) || !inside(e2, own2) {
				continue
			}
			w0, w1, w2 := e0/area, e1/area, e2/area

			var c [4]float32
			for i := range c {
				c[i] = w0*t[0].c[i] + w1*t[1].c[i] + w2*t[2].c[i]
			}
			u := w0*t[0].u + w1*t[1].u + w2*t[2].u
			v := w0*t[0].v + w1*t[1].v + w2*t[2].v

			d.blend(x, y, shade(kind, tex, c, u, v))
		}
	}
}

// shade returns the premultiplied source color of one fragment.
func shade(kind batch.ShaderKind, tex *Texture, c [4]float32, u, v float32) [4]float32 {
	a := c[3]
	switch kind {
	case batch.ShaderImage:
		s := tex.sample(u, v)
		return [4]float32{s[0] * c[0] * a, s[1] * c[1] * a, s[2] * c[2] * a, s[3] * a}
	case batch.ShaderFont:
		a *= tex.sample(u, v)[3]
	case batch.ShaderSDF:
		a *= smoothstep(0.5-sdfEdge, 0.5+sdfEdge, tex.sample(u, v)[3])
	}
	return [4]float32{c[0] * a, c[1] * a, c[2] * a, a}
}

// blend composites src over the target pixel.
func (d *Device) blend(x, y int, src [4]float32) {
	i := d.img.PixOffset(x, y)
	p := d.img.Pix[i : i+4 : i+4]
	k := 1 - src[3]
	for j := range 4 {
		dst := float32(p[j]) / 255
		p[j] = to8(src[j] + dst*k)
	}
}

func smoothstep(e0, e1, x float32) float32 {
	t := max(0, min(1, (x-e0)/(e1-e0)))
	return t * t * (3 - 2*t)
}

func to8(v float32) uint8 {
	return uint8(math32.Round(max(0, min(1, v)) * 255))
}
