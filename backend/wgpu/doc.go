// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu implements batch.Device on a gogpu/wgpu HAL device.
//
// Each shader kind is a render pipeline built from the WGSL in shaders/
// with premultiplied alpha blending. Vertex colors are straight alpha and
// are premultiplied in the fragment shader. Textures are RGBA8 holding
// premultiplied color, sampled linearly with clamp-to-edge addressing.
//
// Every flush of a batch.Pipeline becomes one render pass with one draw
// call. The clip rectangle is applied as the pass scissor.
//
// A Device renders into its own offscreen texture, which ReadPixels copies
// back to memory:
//
//	dev, err := wgpu.New(halDevice, halQueue, 800, 600)
//	c, err := sketch.NewContext(dev)
//	c.Circle(400, 300, 100)
//	c.FlushAll()
//	img, err := dev.ReadPixels()
//
// To draw into a window, create the device with NewFromProvider and call
// SetTarget with the surface view of each frame.
package wgpu
