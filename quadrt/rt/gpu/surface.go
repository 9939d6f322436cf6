package gpu

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// NewSurfaceConfig builds the swapchain configuration from the surface capabilities.
// The format and alpha mode are the first ones the surface reports. If the surface does
// not list presentMode, fifo is used, which every surface supports.
func NewSurfaceConfig(caps wgpu.SurfaceCapabilities, width, height uint32, presentMode wgpu.PresentMode) (wgpu.SurfaceConfiguration, error) {
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return wgpu.SurfaceConfiguration{}, ErrNoSurfaceFormat
	}

	if len(caps.PresentModes) > 0 && !slices.Contains(caps.PresentModes, presentMode) {
		presentMode = wgpu.PresentModeFifo
	}

	return wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       width,
		Height:      height,
		PresentMode: presentMode,
		AlphaMode:   caps.AlphaModes[0],
	}, nil
}

func ParsePresentMode(name string) (wgpu.PresentMode, error) {
	switch strings.ToLower(name) {
	case "", "fifo":
		return wgpu.PresentModeFifo, nil
	case "mailbox":
		return wgpu.PresentModeMailbox, nil
	case "immediate":
		return wgpu.PresentModeImmediate, nil
	default:
		return wgpu.PresentModeFifo, fmt.Errorf("unknown present mode %q", name)
	}
}

// SetLogLevel sets the log level of the native wgpu library.
// Valid levels are off, error, warn, info, debug and trace. Empty leaves the default.
func SetLogLevel(level string) error {
	switch strings.ToUpper(level) {
	case "":
		return nil
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	default:
		return fmt.Errorf("unknown wgpu log level %q", level)
	}

	return nil
}
