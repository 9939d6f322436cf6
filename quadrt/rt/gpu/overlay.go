package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/shaderview/quadrt/rt/core"
	"github.com/gekko3d/shaderview/quadrt/rt/shaders"
)

const (
	overlayWidth  = 320
	overlayHeight = 96
	overlayMargin = 8
)

// Overlay draws the debug HUD as a textured panel in the top left corner.
type Overlay struct {
	HUD *core.HUD

	Texture    *wgpu.Texture
	View       *wgpu.TextureView
	Sampler    *wgpu.Sampler
	UniformBuf *wgpu.Buffer
	Shader     *wgpu.ShaderModule
	Pipeline   *wgpu.RenderPipeline
	BindGroup  *wgpu.BindGroup
}

func newOverlay(device *wgpu.Device, format wgpu.TextureFormat) (o *Overlay, err error) {
	o = &Overlay{HUD: core.NewHUD(overlayWidth, overlayHeight)}

	o.Texture, err = device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "HUD Texture",
		Size:          wgpu.Extent3D{Width: overlayWidth, Height: overlayHeight, DepthOrArrayLayers: 1},
		Format:        wgpu.TextureFormatR8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return o, fmt.Errorf("create hud texture: %w", err)
	}

	o.View, err = o.Texture.CreateView(nil)
	if err != nil {
		return o, fmt.Errorf("create hud view: %w", err)
	}

	o.Sampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return o, fmt.Errorf("create hud sampler: %w", err)
	}

	o.UniformBuf, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "HUD Uniform Buffer",
		Contents: core.OverlayUniforms{}.Bytes(),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return o, fmt.Errorf("create hud uniforms: %w", err)
	}

	o.Shader, err = device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "HUD Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.OverlayWGSL},
	})
	if err != nil {
		return o, fmt.Errorf("compile hud shader: %w", err)
	}

	o.Pipeline, err = device.CreateRenderPipeline(overlayPipelineDescriptor(o.Shader, format))
	if err != nil {
		return o, fmt.Errorf("create hud pipeline: %w", err)
	}

	o.BindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "hud_bind_group",
		Layout: o.Pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: o.UniformBuf, Size: wgpu.WholeSize},
			{Binding: 1, TextureView: o.View},
			{Binding: 2, Sampler: o.Sampler},
		},
	})
	if err != nil {
		return o, fmt.Errorf("create hud bind group: %w", err)
	}

	return o, nil
}

// overlayPipelineDescriptor uses the auto layout, the bind group layout is taken
// from the pipeline.
func overlayPipelineDescriptor(shader *wgpu.ShaderModule, format wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor {
	return &wgpu.RenderPipelineDescriptor{
		Label: "HUD Pipeline",
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: shaders.VertexEntryPoint,
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: shaders.FragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{{
				Format: format,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
					Alpha: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOne,
						Operation: wgpu.BlendOperationAdd,
					},
				},
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
}

// Update rasterizes lines into the HUD texture and places the panel for a surface of
// surfaceW x surfaceH pixels.
func (o *Overlay) Update(queue *wgpu.Queue, lines []string, surfaceW, surfaceH uint32) error {
	img := o.HUD.Rasterize(lines)

	err := queue.WriteTexture(o.Texture.AsImageCopy(), img.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(img.Stride),
		RowsPerImage: overlayHeight,
	}, &wgpu.Extent3D{Width: overlayWidth, Height: overlayHeight, DepthOrArrayLayers: 1})
	if err != nil {
		return fmt.Errorf("upload hud texture: %w", err)
	}

	rect := core.OverlayRect(overlayWidth, overlayHeight, surfaceW, surfaceH, overlayMargin)
	if err := queue.WriteBuffer(o.UniformBuf, 0, core.OverlayUniforms{Rect: rect}.Bytes()); err != nil {
		return fmt.Errorf("write hud uniforms: %w", err)
	}

	return nil
}

func (o *Overlay) Release() {
	if o.BindGroup != nil {
		o.BindGroup.Release()
		o.BindGroup = nil
	}

	if o.Pipeline != nil {
		o.Pipeline.Release()
		o.Pipeline = nil
	}

	if o.Shader != nil {
		o.Shader.Release()
		o.Shader = nil
	}

	if o.UniformBuf != nil {
		o.UniformBuf.Release()
		o.UniformBuf = nil
	}

	if o.Sampler != nil {
		o.Sampler.Release()
		o.Sampler = nil
	}

	if o.View != nil {
		o.View.Release()
		o.View = nil
	}

	if o.Texture != nil {
		o.Texture.Release()
		o.Texture = nil
	}
}
