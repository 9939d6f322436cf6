package shaderview

import (
	"os"

	"github.com/gekko3d/shaderview/quadrt/rt/app"
	"github.com/gekko3d/shaderview/quadrt/rt/gpu"
	"github.com/gekko3d/shaderview/quadrt/rt/platform"
	"github.com/pkg/profile"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultTitle  = "shaderview"
)

type Options struct {
	Width  int
	Height int
	Title  string

	// Debug enables debug logging and the HUD overlay.
	Debug bool

	PresentMode      string
	LowPower         bool
	FallbackAdapter  bool
	StaticResolution bool

	// ShaderSource replaces the embedded WGSL program. It must provide vs_main and fs_main.
	ShaderSource string

	// CPUProfile is the directory receiving cpu.pprof. Empty disables profiling.
	CPUProfile string

	// WGPULogLevel sets the native wgpu log level. Empty falls back to WGPU_LOG_LEVEL.
	WGPULogLevel string

	// Logger defaults to a DefaultLogger honoring Debug.
	Logger Logger
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.WGPULogLevel == "" {
		o.WGPULogLevel = os.Getenv("WGPU_LOG_LEVEL")
	}
	if o.Logger == nil {
		o.Logger = NewDefaultLogger("shaderview", o.Debug)
	}
	return o
}

func (o Options) gpuOptions() gpu.Options {
	return gpu.Options{
		LowPower:             o.LowPower,
		ForceFallbackAdapter: o.FallbackAdapter,
		PresentMode:          o.PresentMode,
		ShaderSource:         o.ShaderSource,
		Overlay:              o.Debug,
	}
}

// Run opens the viewer window and blocks until it is closed. It must be called from
// the main thread with the OS thread locked.
func Run(opts Options) error {
	opts = opts.withDefaults()
	log := opts.Logger

	if opts.CPUProfile != "" {
		prof := profile.Start(profile.CPUProfile, profile.ProfilePath(opts.CPUProfile), profile.NoShutdownHook, profile.Quiet)
		defer prof.Stop()
		log.Infof("Writing CPU profile to %s", opts.CPUProfile)
	}

	if err := gpu.SetLogLevel(opts.WGPULogLevel); err != nil {
		return err
	}

	win, err := platform.NewWindow(opts.Width, opts.Height, opts.Title)
	if err != nil {
		return err
	}
	defer win.Destroy()

	open := func(width, height uint32) (app.Renderer, error) {
		ctx, err := gpu.Open(win.SurfaceDescriptor(), width, height, opts.gpuOptions(), scoped(log, "gpu"))
		if err != nil {
			return nil, err
		}
		return ctx, nil
	}

	return app.Run(win, open, app.Options{
		Debug:            opts.Debug,
		StaticResolution: opts.StaticResolution,
	}, scoped(log, "app"))
}
