package text

import (
	"image"
	"math"
)

// distanceField converts a coverage mask into a signed distance field with
// a border of spread pixels. The alpha channel holds 128 on the outline,
// rising to 255 at spread pixels inside and falling to 0 at spread pixels
// outside. Color channels repeat the alpha, as premultiplied white.
//
// Distances are found by brute force within the spread window, which is
// cheap at glyph sizes.
func distanceField(cov *image.Alpha, spread int) *image.RGBA {
	w, h := cov.Rect.Dx(), cov.Rect.Dy()
	ow, oh := w+2*spread, h+2*spread
	out := image.NewRGBA(image.Rect(0, 0, ow, oh))

	inside := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return cov.Pix[y*cov.Stride+x] >= 0x80
	}

	limit := float64(spread)
	for oy := range oh {
		for ox := range ow {
			x, y := ox-spread, oy-spread
			in := inside(x, y)

			best := limit
			for dy := -spread; dy <= spread; dy++ {
				for dx := -spread; dx <= spread; dx++ {
					if inside(x+dx, y+dy) == in {
						continue
					}
					if d := math.Hypot(float64(dx), float64(dy)); d < best {
						best = d
					}
				}
			}
			// Distance to the boundary sits half a pixel from the
			// nearest opposite pixel center.
			d := best - 0.5
			if !in {
				d = -d
			}
			v := 128 + d/limit*127
			i := oy*out.Stride + ox*4
			a := uint8(math.Max(0, math.Min(255, math.Round(v))))
			out.Pix[i+0] = a
			out.Pix[i+1] = a
			out.Pix[i+2] = a
			out.Pix[i+3] = a
		}
	}
	return out
}
