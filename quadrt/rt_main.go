package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/gekko3d/shaderview"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	width := flag.Int("width", shaderview.DefaultWidth, "Initial window width")
	height := flag.Int("height", shaderview.DefaultHeight, "Initial window height")
	title := flag.String("title", shaderview.DefaultTitle, "Window title")
	debug := flag.Bool("debug", false, "Enable debug logging and the HUD overlay")
	presentMode := flag.String("present-mode", "fifo", "Present mode: fifo, mailbox or immediate")
	lowPower := flag.Bool("low-power", false, "Prefer the low power adapter")
	fallback := flag.Bool("fallback-adapter", false, "Force the software fallback adapter")
	staticRes := flag.Bool("static-resolution", false, "Keep the startup resolution in the shader uniforms")
	cpuProfile := flag.String("cpuprofile", "", "Write a CPU profile into this directory")
	wgpuLog := flag.String("wgpu-log", "", "wgpu-native log level (off, error, warn, info, debug, trace)")
	flag.Parse()

	logger := shaderview.NewDefaultLogger("shaderview", *debug)

	err := shaderview.Run(shaderview.Options{
		Width:            *width,
		Height:           *height,
		Title:            *title,
		Debug:            *debug,
		PresentMode:      *presentMode,
		LowPower:         *lowPower,
		FallbackAdapter:  *fallback,
		StaticResolution: *staticRes,
		CPUProfile:       *cpuProfile,
		WGPULogLevel:     *wgpuLog,
		Logger:           logger,
	})
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}
