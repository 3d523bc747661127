package atlas

import "image"

// Box is an integer rectangle inside an atlas.
type Box struct {
	X, Y, W, H int
}

// Empty reports whether the box covers no pixels.
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Rect returns the box as an image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
}

// Overlaps reports whether two boxes share any pixel.
func (b Box) Overlaps(o Box) bool {
	return b.Rect().Overlaps(o.Rect())
}

// splitTopBottom cuts a band of height h off the top of b and returns it.
func (b *Box) splitTopBottom(h int) Box {
	top := Box{X: b.X, Y: b.Y, W: b.W, H: h}
	b.Y += h
	b.H -= h
	return top
}

// splitLeftRight cuts a band of width w off the left of b and returns it.
func (b *Box) splitLeftRight(w int) Box {
	left := Box{X: b.X, Y: b.Y, W: w, H: b.H}
	b.X += w
	b.W -= w
	return left
}

// packer tracks the free space of a square area as a list of disjoint
// boxes.
type packer struct {
	free []Box
	size int
}

func newPacker(size int) packer {
	return packer{free: []Box{{W: size, H: size}}, size: size}
}

// allocate takes a w x h box from the first free box that can hold it.
// Degenerate free boxes are pruned along the way.
func (p *packer) allocate(w, h int) (Box, bool) {
	for i := 0; i < len(p.free); {
		box := &p.free[i]
		if box.Empty() {
			p.free = append(p.free[:i], p.free[i+1:]...)
			continue
		}
		if box.W < w || box.H < h {
			i++
			continue
		}

		switch {
		case box.W == w && box.H == h:
			match := *box
			p.free = append(p.free[:i], p.free[i+1:]...)
			return match, true
		case box.W == w:
			return box.splitTopBottom(h), true
		case box.H == h:
			return box.splitLeftRight(w), true
		}

		// Cut a column of width w, then the placement off its top. The
		// rest of the column becomes a new free box ahead of the others.
		column := box.splitLeftRight(w)
		placed := column.splitTopBottom(h)
		p.free = append([]Box{column}, p.free...)
		return placed, true
	}
	return Box{}, false
}

// grow doubles the area. The new space is added as two free boxes: the
// right half of the old rows and the full-width bottom half.
func (p *packer) grow() {
	s := p.size
	p.free = append(p.free,
		Box{X: s, Y: 0, W: s, H: s},
		Box{X: 0, Y: s, W: 2 * s, H: s},
	)
	p.size = 2 * s
}

// freeArea returns the number of free pixels.
func (p *packer) freeArea() int {
	n := 0
	for _, b := range p.free {
		if !b.Empty() {
			n += b.W * b.H
		}
	}
	return n
}
