package core

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformsSize is the byte size of the Uniforms struct as seen by the shader.
//
//	struct Uniforms {
//	  resolution: vec2<f32>; -- 8
//	}
const UniformsSize = 8

var ErrUniformSize = errors.New("uniform data has wrong size")

// Uniforms is the data bound at group 0, binding 0 of the quad shader.
type Uniforms struct {
	Resolution mgl32.Vec2
}

func NewUniforms(width, height uint32) Uniforms {
	return Uniforms{
		Resolution: mgl32.Vec2{float32(width), float32(height)},
	}
}

// Bytes returns the tightly packed little endian representation uploaded to the GPU.
func (u Uniforms) Bytes() []byte {
	buf := make([]byte, UniformsSize)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(u.Resolution[0]))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(u.Resolution[1]))
	return buf
}

func DecodeUniforms(data []byte) (Uniforms, error) {
	if len(data) != UniformsSize {
		return Uniforms{}, fmt.Errorf("%w: got %d bytes, want %d", ErrUniformSize, len(data), UniformsSize)
	}

	return Uniforms{
		Resolution: mgl32.Vec2{
			math.Float32frombits(binary.LittleEndian.Uint32(data[0:])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[4:])),
		},
	}, nil
}

func (u Uniforms) String() string {
	return fmt.Sprintf("%.0fx%.0f", u.Resolution.X(), u.Resolution.Y())
}

// OverlayUniforms positions the HUD panel.
//
//	struct Overlay {
//	  rect: vec4<f32>; -- 16 (left, top, right, bottom in NDC)
//	}
type OverlayUniforms struct {
	Rect mgl32.Vec4
}

const OverlayUniformsSize = 16

func (o OverlayUniforms) Bytes() []byte {
	buf := make([]byte, OverlayUniformsSize)
	for i, v := range o.Rect {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
