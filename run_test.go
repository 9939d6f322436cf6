package shaderview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionsDefaults(t *testing.T) {
	t.Setenv("WGPU_LOG_LEVEL", "warn")

	opts := Options{}.withDefaults()

	assert.Equal(t, DefaultWidth, opts.Width)
	assert.Equal(t, DefaultHeight, opts.Height)
	assert.Equal(t, DefaultTitle, opts.Title)
	assert.Equal(t, "warn", opts.WGPULogLevel)
	assert.NotNil(t, opts.Logger)
	assert.False(t, opts.Logger.DebugEnabled())
}

func TestOptionsKeepExplicitValues(t *testing.T) {
	t.Setenv("WGPU_LOG_LEVEL", "trace")
	logger := NewDefaultLogger("plasma", false)

	opts := Options{
		Width:        640,
		Height:       -1,
		Title:        "plasma",
		WGPULogLevel: "error",
		Logger:       logger,
	}.withDefaults()

	assert.Equal(t, 640, opts.Width)
	assert.Equal(t, DefaultHeight, opts.Height)
	assert.Equal(t, "plasma", opts.Title)
	assert.Equal(t, "error", opts.WGPULogLevel)
	assert.Same(t, logger, opts.Logger)
}

func TestOptionsDebugLogger(t *testing.T) {
	opts := Options{Debug: true}.withDefaults()
	assert.True(t, opts.Logger.DebugEnabled())
}

func TestGPUOptions(t *testing.T) {
	g := Options{
		Debug:           true,
		PresentMode:     "mailbox",
		LowPower:        true,
		FallbackAdapter: true,
		ShaderSource:    "src",
	}.gpuOptions()

	assert.True(t, g.Overlay)
	assert.True(t, g.LowPower)
	assert.True(t, g.ForceFallbackAdapter)
	assert.Equal(t, "mailbox", g.PresentMode)
	assert.Equal(t, "src", g.ShaderSource)
}
