package platform

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/shaderview/quadrt/rt/core"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window owns the GLFW window and the ordered queue of lifecycle events
// produced by its callbacks. All methods must be called from the main thread.
type Window struct {
	win    *glfw.Window
	events EventQueue
}

// NewWindow creates a resizable window without a client API. The window starts hidden,
// call Show once the graphics context is ready.
func NewWindow(width, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // no OpenGL context, wgpu owns the surface
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &Window{win: win}
	w.installCallbacks()

	return w, nil
}

func (w *Window) installCallbacks() {
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.events.Push(core.ResizeEvent(clampSize(width), clampSize(height)))
	})

	w.win.SetRefreshCallback(func(_ *glfw.Window) {
		w.events.Push(core.Event{Kind: core.EventRedraw})
	})

	w.win.SetCloseCallback(func(_ *glfw.Window) {
		w.events.Push(core.Event{Kind: core.EventClose})
	})
}

func (w *Window) FramebufferSize() (uint32, uint32) {
	width, height := w.win.GetFramebufferSize()
	return clampSize(width), clampSize(height)
}

func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.win)
}

func (w *Window) Show() {
	w.win.Show()
}

// RequestRedraw enqueues a redraw event and wakes up a pending NextEvent.
func (w *Window) RequestRedraw() {
	w.events.Push(core.Event{Kind: core.EventRedraw})
	glfw.PostEmptyEvent()
}

// NextEvent blocks until an event is available and returns the oldest one.
func (w *Window) NextEvent() core.Event {
	for w.events.Len() == 0 {
		glfw.WaitEvents()
	}

	ev, _ := w.events.Pop()
	return ev
}

func (w *Window) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}

func clampSize(v int) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}
