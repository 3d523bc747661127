// Package sketch is an immediate-mode 2D drawing core that batches shapes,
// curves, images and text into as few GPU draw calls as possible.
//
// # Overview
//
// A Context is bound to one render surface through a batch.Device. Style
// calls (SetFill, SetStroke, SetWeight, SetTint, SetQuality) change the
// current Style; shape calls tessellate into triangles with that style
// and append them to the batch of the matching pipeline. Consecutive
// shapes that use the same shader and texture share one draw call.
// Switching to a different pipeline flushes the previous one, so draw
// order is always preserved.
//
// # Quick Start
//
//	dev := software.New(640, 480)
//	c, err := sketch.NewContext(dev)
//	if err != nil {
//	    return err
//	}
//	c.SetFill(sketch.RGB(255, 200, 0))
//	c.SetStroke(sketch.Black)
//	c.SetWeight(4)
//	c.Circle(320, 240, 100)
//	c.RoundedRect(40, 40, 200, 120, 16)
//	if err := c.FlushAll(); err != nil {
//	    return err
//	}
//	png.Encode(w, dev.Image())
//
// # Coordinates
//
// Pixel coordinates have their origin at the top-left corner with y
// growing downward. Angles are in radians and grow clockwise on screen.
//
// # Errors
//
// Shape calls do not return errors. When an implicit flush fails, the
// first error is kept and returned by Err and by the next FlushAll.
// Programmer errors, such as drawing text without a font, panic.
//
// # Concurrency
//
// A Context is not safe for concurrent use.
package sketch
