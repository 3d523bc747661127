// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/sketch/batch"
)

//go:embed shaders/color.wgsl
var colorShaderWGSL string

//go:embed shaders/textured.wgsl
var texturedShaderWGSL string

// shaderModule identifies one of the two WGSL modules.
type shaderModule int

const (
	moduleColor shaderModule = iota
	moduleTextured
	moduleCount
)

func (m shaderModule) source() string {
	if m == moduleColor {
		return colorShaderWGSL
	}
	return texturedShaderWGSL
}

func (m shaderModule) String() string {
	if m == moduleColor {
		return "color"
	}
	return "textured"
}

// moduleFor returns the module and fragment entry point implementing kind.
func moduleFor(kind batch.ShaderKind) (shaderModule, string, error) {
	switch kind {
	case batch.ShaderColor:
		return moduleColor, "fs_main", nil
	case batch.ShaderImage:
		return moduleTextured, "fs_image", nil
	case batch.ShaderFont:
		return moduleTextured, "fs_font", nil
	case batch.ShaderSDF:
		return moduleTextured, "fs_sdf", nil
	}
	return 0, "", fmt.Errorf("%w: %v", ErrUnknownShader, kind)
}

var spirvCache struct {
	once  sync.Once
	words [moduleCount][]uint32
	err   error
}

// SPIRV returns the SPIR-V compiled from the WGSL module that implements
// kind. Compilation happens once per process.
func SPIRV(kind batch.ShaderKind) ([]uint32, error) {
	m, _, err := moduleFor(kind)
	if err != nil {
		return nil, err
	}
	spirvCache.once.Do(func() {
		for i := range moduleCount {
			words, err := compileSPIRV(i.source())
			if err != nil {
				spirvCache.err = fmt.Errorf("wgpu: compile %v shader: %w", i, err)
				return
			}
			spirvCache.words[i] = words
		}
	})
	if spirvCache.err != nil {
		return nil, spirvCache.err
	}
	return spirvCache.words[m], nil
}

// compileSPIRV compiles WGSL to little-endian SPIR-V words.
func compileSPIRV(src string) ([]uint32, error) {
	b, err := naga.Compile(src)
	if err != nil {
		return nil, err
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("SPIR-V output of %d bytes is not word aligned", len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[4*i:])
	}
	return words, nil
}

// shaderSource returns the module source handed to the HAL.
func (d *Device) shaderSource(m shaderModule) (hal.ShaderSource, error) {
	if !d.opts.spirv {
		return hal.ShaderSource{WGSL: m.source()}, nil
	}
	kind := batch.ShaderColor
	if m == moduleTextured {
		kind = batch.ShaderImage
	}
	words, err := SPIRV(kind)
	if err != nil {
		return hal.ShaderSource{}, err
	}
	return hal.ShaderSource{SPIRV: words}, nil
}
