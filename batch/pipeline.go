package batch

import "fmt"

// Key identifies a pipeline: one shader paired with one image.
// The color pipeline has the zero Image.
type Key struct {
	Shader ShaderKind
	Image  ImageID
}

// String returns a short description used in logs.
func (k Key) String() string {
	if k.Image == 0 {
		return k.Shader.String()
	}
	return fmt.Sprintf("%s#%d", k.Shader, k.Image)
}

// Pipeline pairs a shader with an optional texture and owns the batch of
// vertices drawn with them. Pipelines are created and owned by a Registry.
type Pipeline struct {
	key     Key
	shader  Shader
	texture Texture
	batch   *Batch
	buffer  Buffer
	device  Device
	stats   *Stats
}

// Key returns the pipeline identity.
func (p *Pipeline) Key() Key { return p.key }

// Batch returns the pipeline's pending vertices.
func (p *Pipeline) Batch() *Batch { return p.batch }

// Texture returns the bound texture, or nil for the color pipeline.
func (p *Pipeline) Texture() Texture { return p.texture }

// Submit binds the texture and shader, uploads the pending vertices and
// issues one draw call. The batch is left untouched.
func (p *Pipeline) Submit() error {
	if p.texture != nil {
		if err := p.texture.Bind(); err != nil {
			return fmt.Errorf("batch: bind texture for %s: %w", p.key, err)
		}
	}
	if err := p.shader.Use(); err != nil {
		return fmt.Errorf("batch: use shader for %s: %w", p.key, err)
	}

	w, h := p.device.Viewport()
	if err := p.buffer.UploadVertices(p.batch.Encode(w, h)); err != nil {
		return fmt.Errorf("batch: upload vertices for %s: %w", p.key, err)
	}
	if err := p.buffer.Draw(p.batch.Triangles()); err != nil {
		return fmt.Errorf("batch: draw %s: %w", p.key, err)
	}

	if p.stats != nil {
		p.stats.DrawCalls++
		p.stats.Vertices += p.batch.Len()
	}
	return nil
}

// Flush submits the batch if it holds any vertices and then clears it.
// An empty batch makes no GPU call. The batch is cleared even when the
// submission fails so a broken frame is not drawn twice.
func (p *Pipeline) Flush() error {
	if p.batch.Empty() {
		return nil
	}
	n := p.batch.Len()
	err := p.Submit()
	p.batch.Clear()
	if p.stats != nil {
		p.stats.Flushes++
	}
	if err == nil {
		slogger().Debug("batch: flushed", "pipeline", p.key.String(), "vertices", n)
	}
	return err
}
