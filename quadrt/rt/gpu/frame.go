package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/shaderview/quadrt/rt/core"
)

// renderPass is the subset of *wgpu.RenderPassEncoder used to record a frame.
type renderPass interface {
	SetPipeline(pipeline *wgpu.RenderPipeline)
	SetBindGroup(groupIndex uint32, group *wgpu.BindGroup, dynamicOffsets []uint32)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	End() error
}

// DrawFrame acquires the next surface texture, records a single render pass clearing
// it and drawing the quad (plus the HUD when enabled), submits and presents it.
func (c *Context) DrawFrame(frame core.Frame) error {
	if c.Overlay != nil && frame.HasOverlay() {
		if err := c.Overlay.Update(c.Queue, frame.Overlay, c.Config.Width, c.Config.Height); err != nil {
			return err
		}
	}

	nextTexture, err := acquireTexture(c.Surface.GetCurrentTexture)
	if err != nil {
		return err
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create surface view: %w", err)
	}
	defer view.Release()

	encoder, err := c.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "Render Encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(renderPassDescriptor(view, frame.Clear))
	err = encodePass(pass, c.Quad, c.Overlay, frame)
	pass.Release()
	if err != nil {
		return err
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}
	defer cmd.Release()

	c.Queue.Submit(cmd)
	c.Surface.Present()

	return nil
}

func acquireTexture(acquire func() (*wgpu.Texture, error)) (*wgpu.Texture, error) {
	texture, err := acquire()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceAcquire, err)
	}
	return texture, nil
}

func renderPassDescriptor(view *wgpu.TextureView, clear core.Color) *wgpu.RenderPassDescriptor {
	return &wgpu.RenderPassDescriptor{
		Label: "Render Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: clear.R, G: clear.G, B: clear.B, A: clear.A},
		}},
	}
}

// encodePass records the draw calls of frame into pass and ends it.
func encodePass(pass renderPass, quad *QuadPipeline, overlay *Overlay, frame core.Frame) error {
	pass.SetPipeline(quad.Pipeline)
	pass.SetBindGroup(0, quad.BindGroup, nil)
	pass.Draw(frame.Quad.VertexCount, frame.Quad.InstanceCount, frame.Quad.FirstVertex, frame.Quad.FirstInstance)

	if overlay != nil && frame.HasOverlay() {
		pass.SetPipeline(overlay.Pipeline)
		pass.SetBindGroup(0, overlay.BindGroup, nil)
		pass.Draw(core.FullscreenQuad.VertexCount, 1, 0, 0)
	}

	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}
	return nil
}
