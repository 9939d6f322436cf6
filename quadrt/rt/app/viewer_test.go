package app

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/shaderview/quadrt/rt/core"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quietLogger struct{}

func (quietLogger) DebugEnabled() bool    { return false }
func (quietLogger) Debugf(string, ...any) {}
func (quietLogger) Infof(string, ...any)  {}
func (quietLogger) Warnf(string, ...any)  {}
func (quietLogger) Errorf(string, ...any) {}

type fakeWindow struct {
	width, height uint32
	events        []core.Event

	shown   int
	redraws int
	calls   []string
}

func (w *fakeWindow) FramebufferSize() (uint32, uint32) {
	w.calls = append(w.calls, "size")
	return w.width, w.height
}

// NextEvent closes the window once the scripted events are consumed.
func (w *fakeWindow) NextEvent() core.Event {
	if len(w.events) == 0 {
		return core.Event{Kind: core.EventClose}
	}
	ev := w.events[0]
	w.events = w.events[1:]
	return ev
}

func (w *fakeWindow) RequestRedraw() {
	w.redraws++
	w.calls = append(w.calls, "redraw")
}

func (w *fakeWindow) Show() {
	w.shown++
	w.calls = append(w.calls, "show")
}

type fakeRenderer struct {
	config     wgpu.SurfaceConfiguration
	configured []wgpu.SurfaceConfiguration
	uniforms   []core.Uniforms
	frames     []core.Frame
	released   int

	configureErr error
	drawErr      error
}

func newFakeRenderer(width, height uint32) *fakeRenderer {
	return &fakeRenderer{
		config: wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      wgpu.TextureFormatBGRA8UnormSrgb,
			Width:       width,
			Height:      height,
			PresentMode: wgpu.PresentModeFifo,
			AlphaMode:   wgpu.CompositeAlphaModeOpaque,
		},
	}
}

func (r *fakeRenderer) SurfaceConfig() wgpu.SurfaceConfiguration { return r.config }

func (r *fakeRenderer) Configure(config *wgpu.SurfaceConfiguration) error {
	if r.configureErr != nil {
		return r.configureErr
	}
	r.configured = append(r.configured, *config)
	return nil
}

func (r *fakeRenderer) WriteUniforms(u core.Uniforms) error {
	r.uniforms = append(r.uniforms, u)
	return nil
}

func (r *fakeRenderer) DrawFrame(frame core.Frame) error {
	if r.drawErr != nil {
		return r.drawErr
	}
	r.frames = append(r.frames, frame)
	return nil
}

func (r *fakeRenderer) Release() { r.released++ }

func newTestViewer(opts Options) (*Viewer, *fakeWindow, *fakeRenderer) {
	win := &fakeWindow{width: 1280, height: 720}
	renderer := newFakeRenderer(1280, 720)
	return NewViewer(win, renderer, opts, quietLogger{}), win, renderer
}

func TestNewViewer(t *testing.T) {
	v, _, renderer := newTestViewer(Options{})

	assert.Equal(t, renderer.config, v.Config)
	assert.Equal(t, core.NewUniforms(1280, 720), v.Uniforms)
	assert.NotEqual(t, uuid.Nil, v.Session)
	assert.Zero(t, v.FrameCount)
}

func TestResizeIdempotent(t *testing.T) {
	v, win, renderer := newTestViewer(Options{})

	quit, err := v.Dispatch(core.ResizeEvent(800, 600))
	require.NoError(t, err)
	assert.False(t, quit)
	first := v.Config
	assert.Equal(t, 1, win.redraws)

	_, err = v.Dispatch(core.ResizeEvent(800, 600))
	require.NoError(t, err)
	assert.Equal(t, first, v.Config)
	assert.Equal(t, 2, win.redraws, "one redraw request per resize event")

	require.Len(t, renderer.configured, 2)
	assert.Equal(t, renderer.configured[0], renderer.configured[1])
	assert.Equal(t, uint32(800), renderer.configured[0].Width)
	assert.Equal(t, uint32(600), renderer.configured[0].Height)
}

func TestResizeKeepsSurfaceProperties(t *testing.T) {
	v, _, renderer := newTestViewer(Options{})

	sizes := [][2]uint32{{640, 480}, {1, 1}, {0, 300}, {16384, 16384}, {300, 0}, {1920, 1080}, {640, 480}}
	for _, s := range sizes {
		_, err := v.Dispatch(core.ResizeEvent(s[0], s[1]))
		require.NoError(t, err)

		assert.Equal(t, renderer.config.Format, v.Config.Format)
		assert.Equal(t, renderer.config.PresentMode, v.Config.PresentMode)
		assert.Equal(t, renderer.config.AlphaMode, v.Config.AlphaMode)
		assert.Equal(t, renderer.config.Usage, v.Config.Usage)
	}

	for _, c := range renderer.configured {
		assert.Equal(t, renderer.config.Format, c.Format)
		assert.Equal(t, renderer.config.PresentMode, c.PresentMode)
		assert.Equal(t, renderer.config.AlphaMode, c.AlphaMode)
	}
	assert.Len(t, renderer.configured, 5)
}

func TestResizeZeroIgnored(t *testing.T) {
	v, win, renderer := newTestViewer(Options{})
	before := v.Config

	for _, ev := range []core.Event{core.ResizeEvent(0, 0), core.ResizeEvent(0, 600), core.ResizeEvent(800, 0)} {
		_, err := v.Dispatch(ev)
		require.NoError(t, err)
	}

	assert.Equal(t, before, v.Config)
	assert.Empty(t, renderer.configured)
	assert.Empty(t, renderer.uniforms)
	assert.Zero(t, win.redraws)
}

func TestResizeRewritesUniforms(t *testing.T) {
	v, _, renderer := newTestViewer(Options{})

	_, err := v.Dispatch(core.ResizeEvent(1024, 768))
	require.NoError(t, err)

	require.Len(t, renderer.uniforms, 1)
	assert.Equal(t, core.NewUniforms(1024, 768), renderer.uniforms[0])
	assert.Equal(t, core.NewUniforms(1024, 768), v.Uniforms)
}

func TestResizeStaticResolution(t *testing.T) {
	v, win, renderer := newTestViewer(Options{StaticResolution: true})

	_, err := v.Dispatch(core.ResizeEvent(1024, 768))
	require.NoError(t, err)

	assert.Empty(t, renderer.uniforms)
	assert.Equal(t, core.NewUniforms(1280, 720), v.Uniforms)
	assert.Len(t, renderer.configured, 1)
	assert.Equal(t, 1, win.redraws)
}

func TestResizeConfigureError(t *testing.T) {
	v, win, renderer := newTestViewer(Options{})
	renderer.configureErr = errors.New("lost surface")

	_, err := v.Dispatch(core.ResizeEvent(800, 600))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lost surface")
	assert.Zero(t, win.redraws)
}

func TestRedrawSingleQuadDraw(t *testing.T) {
	v, _, renderer := newTestViewer(Options{})

	for i := 0; i < 3; i++ {
		quit, err := v.Dispatch(core.Event{Kind: core.EventRedraw})
		require.NoError(t, err)
		assert.False(t, quit)
	}

	require.Len(t, renderer.frames, 3)
	for _, frame := range renderer.frames {
		assert.Equal(t, core.DrawCall{VertexCount: 6, InstanceCount: 1}, frame.Quad)
		assert.Equal(t, core.ColorBlack, frame.Clear)
		assert.False(t, frame.HasOverlay())
	}
	assert.Equal(t, uint64(3), v.FrameCount)
}

func TestRedrawDebugOverlay(t *testing.T) {
	v, _, renderer := newTestViewer(Options{Debug: true})

	_, err := v.Dispatch(core.Event{Kind: core.EventRedraw})
	require.NoError(t, err)

	require.Len(t, renderer.frames, 1)
	lines := renderer.frames[0].Overlay
	require.NotEmpty(t, lines)
	assert.Equal(t, "session "+v.Session.String()[:8], lines[0])
	assert.Contains(t, lines, "frame 1")
	assert.Equal(t, core.FullscreenQuad, renderer.frames[0].Quad)
}

func TestRedrawError(t *testing.T) {
	v, _, renderer := newTestViewer(Options{})
	renderer.drawErr = errors.New("acquire failed")

	_, err := v.Dispatch(core.Event{Kind: core.EventRedraw})
	assert.EqualError(t, err, "acquire failed")
	assert.Zero(t, v.FrameCount)
}

func TestDispatchCloseAndUnknown(t *testing.T) {
	v, _, renderer := newTestViewer(Options{})

	quit, err := v.Dispatch(core.Event{Kind: core.EventUnknown})
	require.NoError(t, err)
	assert.False(t, quit)

	quit, err = v.Dispatch(core.Event{Kind: core.EventClose})
	require.NoError(t, err)
	assert.True(t, quit)

	assert.Empty(t, renderer.frames)
	assert.Empty(t, renderer.configured)
}

func TestRunShowsWindowAfterOpen(t *testing.T) {
	win := &fakeWindow{width: 800, height: 600}
	renderer := newFakeRenderer(800, 600)

	var openW, openH uint32
	open := func(width, height uint32) (Renderer, error) {
		openW, openH = width, height
		return renderer, nil
	}

	require.NoError(t, Run(win, open, Options{}, quietLogger{}))

	assert.Equal(t, uint32(800), openW)
	assert.Equal(t, uint32(600), openH)
	assert.Equal(t, []string{"size", "show", "redraw"}, win.calls)
	assert.Len(t, renderer.frames, 0, "redraw event is queued by the window")
	assert.Equal(t, 1, renderer.released)
}

func TestRunOpenFailureKeepsWindowHidden(t *testing.T) {
	win := &fakeWindow{width: 800, height: 600}
	errNoAdapter := errors.New("no adapter")

	err := Run(win, func(uint32, uint32) (Renderer, error) {
		return nil, errNoAdapter
	}, Options{}, quietLogger{})

	assert.ErrorIs(t, err, errNoAdapter)
	assert.Zero(t, win.shown)
	assert.Zero(t, win.redraws)
}

func TestRunEventSequence(t *testing.T) {
	win := &fakeWindow{
		width:  800,
		height: 600,
		events: []core.Event{
			{Kind: core.EventRedraw},
			core.ResizeEvent(1024, 768),
			{Kind: core.EventRedraw},
			core.ResizeEvent(0, 0),
			{Kind: core.EventClose},
			{Kind: core.EventRedraw},
		},
	}
	renderer := newFakeRenderer(800, 600)

	err := Run(win, func(uint32, uint32) (Renderer, error) { return renderer, nil }, Options{}, quietLogger{})
	require.NoError(t, err)

	assert.Len(t, renderer.frames, 2, "events after close are not drained")
	assert.Len(t, renderer.configured, 1)
	assert.Len(t, win.events, 1)
	assert.Equal(t, 1, renderer.released)
}

func TestRunStopsOnFrameError(t *testing.T) {
	win := &fakeWindow{width: 800, height: 600, events: []core.Event{{Kind: core.EventRedraw}}}
	renderer := newFakeRenderer(800, 600)
	renderer.drawErr = errors.New("surface lost")

	err := Run(win, func(uint32, uint32) (Renderer, error) { return renderer, nil }, Options{}, quietLogger{})
	assert.EqualError(t, err, "surface lost")
	assert.Equal(t, 1, renderer.released)
}
