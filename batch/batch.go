package batch

// Batch is an append-only, ordered sequence of vertices backing one draw
// call. Every three consecutive vertices form a triangle. Order is draw
// order and is never changed.
type Batch struct {
	vertices  []Vertex
	encoded   []byte
	destroyed bool
}

// NewBatch creates an empty batch with room for capacity vertices.
func NewBatch(capacity int) *Batch {
	return &Batch{vertices: make([]Vertex, 0, capacity)}
}

// Append adds vertices to the end of the batch.
// Appending to a destroyed batch panics.
func (b *Batch) Append(vs ...Vertex) {
	if b.destroyed {
		panic("batch: append to destroyed batch")
	}
	b.vertices = append(b.vertices, vs...)
}

// Len returns the number of vertices in the batch.
func (b *Batch) Len() int { return len(b.vertices) }

// Empty reports whether the batch holds no vertices.
func (b *Batch) Empty() bool { return len(b.vertices) == 0 }

// Triangles returns the number of complete triangles in the batch.
func (b *Batch) Triangles() int { return len(b.vertices) / 3 }

// Vertices returns the batch contents. The slice is only valid until the
// next Append or Clear.
func (b *Batch) Vertices() []Vertex { return b.vertices }

// Clear empties the batch, keeping its storage.
func (b *Batch) Clear() {
	b.vertices = b.vertices[:0]
}

// Destroy releases the batch storage. Any later Append panics.
func (b *Batch) Destroy() {
	b.vertices = nil
	b.encoded = nil
	b.destroyed = true
}

// Encode returns the vertex data laid out for upload, with positions
// remapped to NDC for a viewport of width x height pixels. The returned
// slice is reused by the next call.
func (b *Batch) Encode(width, height int) []byte {
	w, h := float32(width), float32(height)
	buf := b.encoded[:0]
	for _, v := range b.vertices {
		buf = v.AppendEncoded(buf, w, h)
	}
	b.encoded = buf
	return buf
}
