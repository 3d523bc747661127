// Package recording provides a batch.Device that records GPU commands
// instead of executing them.
//
// Every shader switch, texture bind, upload, scissor change and draw call
// is captured as a typed command. Draw commands carry a decoded copy of the
// uploaded vertices, so tests and debugging tools can inspect exactly what
// a frame submitted.
//
// # Example
//
//	dev := recording.NewDevice(800, 600)
//	ctx, _ := sketch.NewContext(dev)
//	ctx.Circle(100, 100, 50)
//	_ = ctx.FlushAll()
//	for _, d := range dev.Draws() {
//	    fmt.Println(d.Shader, d.Triangles)
//	}
package recording
