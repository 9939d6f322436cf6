package app

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/shaderview/quadrt/rt/core"
	"github.com/google/uuid"
)

// Window is the event source driving the viewer.
type Window interface {
	FramebufferSize() (uint32, uint32)
	NextEvent() core.Event
	RequestRedraw()
	Show()
}

// Renderer owns the GPU side: surface, device, pipeline and uniform buffer.
type Renderer interface {
	SurfaceConfig() wgpu.SurfaceConfiguration
	Configure(config *wgpu.SurfaceConfiguration) error
	WriteUniforms(u core.Uniforms) error
	DrawFrame(frame core.Frame) error
	Release()
}

// OpenFunc creates the renderer for a framebuffer of width x height pixels.
type OpenFunc func(width, height uint32) (Renderer, error)

type Options struct {
	// Debug adds the HUD lines to every frame.
	Debug bool

	// StaticResolution keeps the uniform buffer at the startup size on resize.
	StaticResolution bool
}

// Viewer is the renderer context of a running session. Every event goes through Dispatch
// on the thread owning the window.
type Viewer struct {
	Window   Window
	Renderer Renderer

	Config   wgpu.SurfaceConfiguration
	Uniforms core.Uniforms

	Session    uuid.UUID
	Profiler   *Profiler
	FrameCount uint64

	opts Options
	log  core.Logger
}

func NewViewer(win Window, renderer Renderer, opts Options, log core.Logger) *Viewer {
	config := renderer.SurfaceConfig()

	return &Viewer{
		Window:   win,
		Renderer: renderer,
		Config:   config,
		Uniforms: core.NewUniforms(config.Width, config.Height),
		Session:  uuid.New(),
		Profiler: NewProfiler(),
		opts:     opts,
		log:      log,
	}
}

// Dispatch handles a single event. quit is true once the window asked to close.
func (v *Viewer) Dispatch(ev core.Event) (quit bool, err error) {
	switch ev.Kind {
	case core.EventResize:
		return false, v.Resize(ev.Width, ev.Height)
	case core.EventRedraw:
		return false, v.Render()
	case core.EventClose:
		v.log.Infof("Close requested after %d frames", v.FrameCount)
		return true, nil
	default:
		v.log.Debugf("Ignoring event %v", ev)
		return false, nil
	}
}

// Resize reconfigures the surface for the new framebuffer size and requests a redraw.
// A zero dimension (minimized window) leaves everything untouched.
func (v *Viewer) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		v.log.Debugf("Ignoring resize to %dx%d", width, height)
		return nil
	}

	err := v.Profiler.Measure("resize", func() error {
		v.Config.Width = width
		v.Config.Height = height
		if err := v.Renderer.Configure(&v.Config); err != nil {
			return fmt.Errorf("reconfigure surface: %w", err)
		}

		if v.opts.StaticResolution {
			return nil
		}

		v.Uniforms = core.NewUniforms(width, height)
		return v.Renderer.WriteUniforms(v.Uniforms)
	})
	if err != nil {
		return err
	}

	v.log.Debugf("Resized to %dx%d (uniforms %v)", width, height, v.Uniforms)
	v.Window.RequestRedraw()

	return nil
}

// Render draws and presents one frame.
func (v *Viewer) Render() error {
	frame := core.NewFrame()
	if v.opts.Debug {
		frame.Overlay = v.hudLines()
	}

	if err := v.Profiler.Measure("frame", func() error {
		return v.Renderer.DrawFrame(frame)
	}); err != nil {
		return err
	}

	v.FrameCount++
	if v.log.DebugEnabled() {
		v.log.Debugf("Frame %d: %v", v.FrameCount, v.Profiler)
	}

	return nil
}

func (v *Viewer) hudLines() []string {
	lines := []string{
		"session " + v.Session.String()[:8],
		fmt.Sprintf("surface %dx%d uniforms %v", v.Config.Width, v.Config.Height, v.Uniforms),
		fmt.Sprintf("format %v %v", v.Config.Format, v.Config.PresentMode),
		fmt.Sprintf("frame %d", v.FrameCount+1),
	}
	return append(lines, v.Profiler.Lines()...)
}

// Run opens the renderer for the current framebuffer, shows the window and dispatches
// events until the window closes or a step fails. The window stays hidden when open fails.
func Run(win Window, open OpenFunc, opts Options, log core.Logger) error {
	width, height := win.FramebufferSize()

	renderer, err := open(width, height)
	if err != nil {
		return err
	}
	defer renderer.Release()

	v := NewViewer(win, renderer, opts, log)
	log.Infof("Session %s started at %dx%d", v.Session, width, height)

	win.Show()
	win.RequestRedraw()

	for {
		quit, err := v.Dispatch(win.NextEvent())
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}
