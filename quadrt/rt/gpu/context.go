package gpu

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/shaderview/quadrt/rt/core"
	"github.com/gekko3d/shaderview/quadrt/rt/shaders"
)

var (
	ErrNoAdapter       = errors.New("no compatible adapter found")
	ErrDeviceRefused   = errors.New("device creation refused")
	ErrNoSurfaceFormat = errors.New("surface reports no usable format")
	ErrSurfaceAcquire  = errors.New("failed to acquire next surface texture")
)

type Options struct {
	// LowPower requests the low power adapter instead of the high performance one.
	LowPower             bool
	ForceFallbackAdapter bool

	// PresentMode is one of "fifo", "mailbox" or "immediate". Empty selects fifo.
	PresentMode string

	// ShaderSource is the WGSL program providing vs_main and fs_main.
	// Empty selects the embedded quad shader.
	ShaderSource string

	// Overlay enables the debug HUD.
	Overlay bool
}

// Context holds every GPU object of the viewer. Everything is created once by Open
// and lives until Release. The window backing Surface must outlive the Context.
type Context struct {
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter
	Device  *wgpu.Device
	Queue   *wgpu.Queue

	// Config is the surface configuration negotiated at startup.
	Config *wgpu.SurfaceConfiguration

	Quad    *QuadPipeline
	Overlay *Overlay

	log core.Logger
}

// Open bootstraps the graphics context for the surface described by sd: adapter,
// device and queue, surface configuration, the quad pipeline and its uniform buffer
// initialized with width x height.
func Open(sd *wgpu.SurfaceDescriptor, width, height uint32, opts Options, log core.Logger) (_ *Context, err error) {
	if opts.ShaderSource == "" {
		opts.ShaderSource = shaders.QuadWGSL
	}

	if err := shaders.Validate(opts.ShaderSource); err != nil {
		return nil, err
	}

	presentMode, err := ParsePresentMode(opts.PresentMode)
	if err != nil {
		return nil, err
	}

	c := &Context{log: log}

	defer func() {
		if err != nil {
			c.Release()
		}
	}()

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	c.Surface = instance.CreateSurface(sd)

	c.Adapter, err = requestAdapter(instance.RequestAdapter, &wgpu.RequestAdapterOptions{
		CompatibleSurface:    c.Surface,
		PowerPreference:      powerPreference(opts.LowPower),
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
	})
	if err != nil {
		return nil, err
	}

	limits := deviceLimits(c.Adapter.GetLimits().Limits)

	c.Device, err = requestDevice(c.Adapter.RequestDevice, &wgpu.DeviceDescriptor{
		Label:          "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{Limits: limits},
	})
	if err != nil {
		return nil, err
	}

	c.Queue = c.Device.GetQueue()

	caps := c.Surface.GetCapabilities(c.Adapter)
	log.Debugf("Surface formats: %v", caps.Formats)

	config, err := NewSurfaceConfig(caps, width, height, presentMode)
	if err != nil {
		return nil, err
	}

	if config.PresentMode != presentMode {
		log.Warnf("Present mode %v not supported by surface, using %v", presentMode, config.PresentMode)
	}

	c.Config = &config
	if width > 0 && height > 0 {
		c.Surface.Configure(c.Adapter, c.Device, c.Config)
	}

	log.Infof("Surface configured: %dx%d format=%v present=%v", width, height, config.Format, config.PresentMode)

	c.Quad, err = newQuadPipeline(c.Device, opts.ShaderSource, config.Format, core.NewUniforms(width, height))
	if err != nil {
		return nil, fmt.Errorf("build quad pipeline: %w", err)
	}

	if opts.Overlay {
		c.Overlay, err = newOverlay(c.Device, config.Format)
		if err != nil {
			return nil, fmt.Errorf("build overlay: %w", err)
		}
	}

	return c, nil
}

// SurfaceConfig returns a copy of the negotiated surface configuration.
func (c *Context) SurfaceConfig() wgpu.SurfaceConfiguration {
	return *c.Config
}

// Configure reapplies config to the surface and makes it the current configuration.
func (c *Context) Configure(config *wgpu.SurfaceConfiguration) error {
	if config.Width == 0 || config.Height == 0 {
		return fmt.Errorf("configure surface with empty size %dx%d", config.Width, config.Height)
	}

	*c.Config = *config
	c.Surface.Configure(c.Adapter, c.Device, c.Config)
	return nil
}

// WriteUniforms overwrites the whole uniform buffer.
func (c *Context) WriteUniforms(u core.Uniforms) error {
	if err := c.Queue.WriteBuffer(c.Quad.UniformBuf, 0, u.Bytes()); err != nil {
		return fmt.Errorf("write uniforms: %w", err)
	}
	return nil
}

func (c *Context) Release() {
	if c.Overlay != nil {
		c.Overlay.Release()
		c.Overlay = nil
	}

	if c.Quad != nil {
		c.Quad.Release()
		c.Quad = nil
	}

	if c.Queue != nil {
		c.Queue.Release()
		c.Queue = nil
	}

	if c.Device != nil {
		c.Device.Release()
		c.Device = nil
	}

	if c.Adapter != nil {
		c.Adapter.Release()
		c.Adapter = nil
	}

	if c.Surface != nil {
		c.Surface.Release()
		c.Surface = nil
	}
}

func powerPreference(lowPower bool) wgpu.PowerPreference {
	if lowPower {
		return wgpu.PowerPreferenceLowPower
	}
	return wgpu.PowerPreferenceHighPerformance
}

// requestAdapter maps a failed or empty adapter request to ErrNoAdapter.
func requestAdapter(request func(*wgpu.RequestAdapterOptions) (*wgpu.Adapter, error), options *wgpu.RequestAdapterOptions) (*wgpu.Adapter, error) {
	adapter, err := request(options)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}
	if adapter == nil {
		return nil, ErrNoAdapter
	}
	return adapter, nil
}

func requestDevice(request func(*wgpu.DeviceDescriptor) (*wgpu.Device, error), descriptor *wgpu.DeviceDescriptor) (*wgpu.Device, error) {
	device, err := request(descriptor)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceRefused, err)
	}
	return device, nil
}
