package batch

import (
	"errors"
	"fmt"
)

// Stats counts GPU work issued by a Registry.
type Stats struct {
	// DrawCalls is the number of draw calls issued.
	DrawCalls int
	// Vertices is the number of vertices uploaded.
	Vertices int
	// Flushes is the number of non-empty batches flushed.
	Flushes int
	// Switches is the number of times the active pipeline changed.
	Switches int
	// Pipelines is the number of live pipelines.
	Pipelines int
}

// Registry owns the pipelines of one surface and tracks the active one.
//
// The shared color pipeline is created up front. Textured pipelines are
// created on first use, one per (shader, image) pair, and live until
// Release or Destroy. A Registry is not safe for concurrent use.
type Registry struct {
	device    Device
	color     *Pipeline
	pipelines map[Key]*Pipeline
	order     []*Pipeline
	active    *Pipeline
	stats     Stats
}

// NewRegistry creates a registry and its color pipeline on dev.
func NewRegistry(dev Device) (*Registry, error) {
	if dev == nil {
		return nil, ErrNoDevice
	}
	r := &Registry{
		device:    dev,
		pipelines: make(map[Key]*Pipeline),
	}
	color, err := r.create(Key{Shader: ShaderColor}, nil)
	if err != nil {
		return nil, err
	}
	r.color = color
	return r, nil
}

// Color returns the shared color-only pipeline.
func (r *Registry) Color() *Pipeline { return r.color }

// Active returns the active pipeline, or nil before the first Use.
func (r *Registry) Active() *Pipeline { return r.active }

// Lookup returns the pipeline for kind and id if it exists.
func (r *Registry) Lookup(kind ShaderKind, id ImageID) (*Pipeline, bool) {
	p, ok := r.pipelines[Key{Shader: kind, Image: id}]
	return p, ok
}

// For returns the pipeline drawing tex with the kind shader, creating it on
// first use. If the image already has a pipeline with a different texture
// object, pending vertices are flushed and the new texture is bound.
func (r *Registry) For(kind ShaderKind, id ImageID, tex Texture) (*Pipeline, error) {
	if kind == ShaderColor {
		return r.color, nil
	}
	if id == 0 {
		return nil, ErrNoImage
	}
	if tex == nil {
		return nil, ErrNoTexture
	}

	key := Key{Shader: kind, Image: id}
	if p, ok := r.pipelines[key]; ok {
		if p.texture != tex {
			if err := p.Flush(); err != nil {
				return nil, err
			}
			p.texture = tex
		}
		return p, nil
	}
	return r.create(key, tex)
}

func (r *Registry) create(key Key, tex Texture) (*Pipeline, error) {
	shader, err := r.device.Shader(key.Shader)
	if err != nil {
		return nil, fmt.Errorf("batch: shader %s: %w", key.Shader, err)
	}
	buf, err := r.device.NewBuffer()
	if err != nil {
		return nil, fmt.Errorf("batch: buffer for %s: %w", key, err)
	}

	p := &Pipeline{
		key:     key,
		shader:  shader,
		texture: tex,
		batch:   NewBatch(1024),
		buffer:  buf,
		device:  r.device,
		stats:   &r.stats,
	}
	r.pipelines[key] = p
	r.order = append(r.order, p)
	slogger().Debug("batch: pipeline created", "pipeline", key.String())
	return p, nil
}

// Use makes p the active pipeline. If another pipeline was active it is
// flushed first, so batches never interleave. Using the already active
// pipeline is a no-op.
func (r *Registry) Use(p *Pipeline) error {
	if p == nil {
		panic("batch: Use called with nil pipeline")
	}
	if p == r.active {
		return nil
	}
	prev := r.active
	r.active = p
	r.stats.Switches++
	if prev == nil {
		return nil
	}
	return prev.Flush()
}

// Append adds vertices to the active pipeline's batch.
// It panics if no pipeline is active.
func (r *Registry) Append(vs ...Vertex) {
	if r.active == nil {
		panic("batch: append with no active pipeline")
	}
	r.active.batch.Append(vs...)
}

// Flush flushes the active pipeline, if any.
func (r *Registry) Flush() error {
	if r.active == nil {
		return nil
	}
	return r.active.Flush()
}

// FlushAll flushes every pipeline in creation order. The active pipeline
// stays active. All pipelines are flushed even if some fail; the errors
// are joined.
func (r *Registry) FlushAll() error {
	var errs []error
	for _, p := range r.order {
		if err := p.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Release flushes and drops the pipeline for kind and id. The color
// pipeline cannot be released.
func (r *Registry) Release(kind ShaderKind, id ImageID) error {
	key := Key{Shader: kind, Image: id}
	p, ok := r.pipelines[key]
	if !ok || p == r.color {
		return nil
	}
	err := p.Flush()
	delete(r.pipelines, key)
	for i, q := range r.order {
		if q == p {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.active == p {
		r.active = nil
	}
	p.batch.Destroy()
	return err
}

// ReleaseImage drops every pipeline that draws image id.
func (r *Registry) ReleaseImage(id ImageID) error {
	var errs []error
	for _, kind := range []ShaderKind{ShaderImage, ShaderFont, ShaderSDF} {
		if err := r.Release(kind, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of live pipelines, including the color pipeline.
func (r *Registry) Len() int { return len(r.order) }

// Stats returns the counters accumulated since the last ResetStats.
func (r *Registry) Stats() Stats {
	s := r.stats
	s.Pipelines = len(r.order)
	return s
}

// ResetStats zeroes the counters.
func (r *Registry) ResetStats() { r.stats = Stats{} }

// Destroy drops all pipelines without flushing them.
func (r *Registry) Destroy() {
	for _, p := range r.order {
		p.batch.Destroy()
	}
	r.order = nil
	r.pipelines = map[Key]*Pipeline{}
	r.active = nil
	r.color = nil
}
