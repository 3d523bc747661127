// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software is a CPU implementation of batch.Device that draws into
// an *image.RGBA.
//
// Triangles follow GPU rasterization rules: a pixel is covered when its
// center is inside the triangle, and a center on an edge shared by two
// triangles belongs to exactly one of them. Covered pixels are shaded the
// way the GPU shaders do it. Vertex colors and texture coordinates are
// interpolated barycentrically, textures are sampled bilinearly, and the
// result is composited with premultiplied source-over blending.
//
// The device is meant for tests, headless rendering and the sketchdemo
// tool. It is not safe for concurrent use.
package software
