package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/shaderview/quadrt/rt/core"
	"github.com/gekko3d/shaderview/quadrt/rt/shaders"
)

// resourceFactory is the part of *wgpu.Device used to build the pipeline objects.
type resourceFactory interface {
	CreateShaderModule(descriptor *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error)
	CreateBufferInit(descriptor *wgpu.BufferInitDescriptor) (*wgpu.Buffer, error)
	CreateBindGroupLayout(descriptor *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error)
	CreateBindGroup(descriptor *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error)
	CreatePipelineLayout(descriptor *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error)
	CreateRenderPipeline(descriptor *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error)
}

// QuadPipeline is the immutable state drawing the full-screen quad. Only the
// contents of UniformBuf change after creation.
type QuadPipeline struct {
	Shader          *wgpu.ShaderModule
	BindGroupLayout *wgpu.BindGroupLayout
	PipelineLayout  *wgpu.PipelineLayout
	Pipeline        *wgpu.RenderPipeline
	UniformBuf      *wgpu.Buffer
	BindGroup       *wgpu.BindGroup
}

// newQuadPipeline builds the quad pipeline. On error the returned pipeline holds the
// objects created so far and must still be released.
func newQuadPipeline(device resourceFactory, source string, format wgpu.TextureFormat, uniforms core.Uniforms) (p *QuadPipeline, err error) {
	p = &QuadPipeline{}

	p.Shader, err = device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Quad Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: source},
	})
	if err != nil {
		return p, fmt.Errorf("compile shader: %w", err)
	}

	p.UniformBuf, err = device.CreateBufferInit(uniformBufferDescriptor(uniforms))
	if err != nil {
		return p, fmt.Errorf("create uniform buffer: %w", err)
	}

	p.BindGroupLayout, err = device.CreateBindGroupLayout(uniformBindGroupLayoutDescriptor())
	if err != nil {
		return p, fmt.Errorf("create bind group layout: %w", err)
	}

	p.BindGroup, err = device.CreateBindGroup(uniformBindGroupDescriptor(p.BindGroupLayout, p.UniformBuf))
	if err != nil {
		return p, fmt.Errorf("create bind group: %w", err)
	}

	p.PipelineLayout, err = device.CreatePipelineLayout(quadPipelineLayoutDescriptor(p.BindGroupLayout))
	if err != nil {
		return p, fmt.Errorf("create pipeline layout: %w", err)
	}

	p.Pipeline, err = device.CreateRenderPipeline(quadPipelineDescriptor(p.Shader, p.PipelineLayout, format))
	if err != nil {
		return p, fmt.Errorf("create render pipeline: %w", err)
	}

	return p, nil
}

func uniformBufferDescriptor(uniforms core.Uniforms) *wgpu.BufferInitDescriptor {
	return &wgpu.BufferInitDescriptor{
		Label:    "Uniform Buffer",
		Contents: uniforms.Bytes(),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	}
}

func uniformBindGroupLayoutDescriptor() *wgpu.BindGroupLayoutDescriptor {
	return &wgpu.BindGroupLayoutDescriptor{
		Label: "uniform_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: false,
					MinBindingSize:   0,
				},
			},
		},
	}
}

func uniformBindGroupDescriptor(layout *wgpu.BindGroupLayout, buffer *wgpu.Buffer) *wgpu.BindGroupDescriptor {
	return &wgpu.BindGroupDescriptor{
		Label:  "uniform_bind_group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	}
}

func quadPipelineLayoutDescriptor(layout *wgpu.BindGroupLayout) *wgpu.PipelineLayoutDescriptor {
	return &wgpu.PipelineLayoutDescriptor{
		Label:            "Quad Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	}
}

func quadPipelineDescriptor(shader *wgpu.ShaderModule, layout *wgpu.PipelineLayout, format wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor {
	return &wgpu.RenderPipelineDescriptor{
		Label:  "Quad Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: shaders.VertexEntryPoint,
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: shaders.FragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					Blend:     nil,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: nil,
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}
}

func (p *QuadPipeline) Release() {
	if p.BindGroup != nil {
		p.BindGroup.Release()
		p.BindGroup = nil
	}

	if p.Pipeline != nil {
		p.Pipeline.Release()
		p.Pipeline = nil
	}

	if p.PipelineLayout != nil {
		p.PipelineLayout.Release()
		p.PipelineLayout = nil
	}

	if p.BindGroupLayout != nil {
		p.BindGroupLayout.Release()
		p.BindGroupLayout = nil
	}

	if p.UniformBuf != nil {
		p.UniformBuf.Release()
		p.UniformBuf = nil
	}

	if p.Shader != nil {
		p.Shader.Release()
		p.Shader = nil
	}
}
