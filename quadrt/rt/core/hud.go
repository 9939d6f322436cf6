package core

import (
	"image"
	"image/draw"

	"github.com/go-gl/mathgl/mgl32"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	hudPadding   = 4
	hudLineCache = 64
)

// HUD rasterizes debug text lines into a fixed size alpha canvas that is uploaded
// as an R8 texture. Rasterized lines are cached, most lines repeat between frames.
type HUD struct {
	Width  int
	Height int

	face   font.Face
	canvas *image.Alpha
	lines  *lru.Cache[string, *image.Alpha]
}

func NewHUD(width, height int) *HUD {
	lines, _ := lru.New[string, *image.Alpha](hudLineCache)

	return &HUD{
		Width:  width,
		Height: height,
		face:   basicfont.Face7x13,
		canvas: image.NewAlpha(image.Rect(0, 0, width, height)),
		lines:  lines,
	}
}

func (h *HUD) LineHeight() int {
	return h.face.Metrics().Height.Ceil()
}

// Rasterize draws lines top to bottom and returns the canvas. The returned image is
// reused by the next call. Lines that do not fit are clipped.
func (h *HUD) Rasterize(lines []string) *image.Alpha {
	draw.Draw(h.canvas, h.canvas.Bounds(), image.Transparent, image.Point{}, draw.Src)

	lineHeight := h.LineHeight()
	for idx, text := range lines {
		y := hudPadding + idx*lineHeight
		if y >= h.Height {
			break
		}

		line := h.rasterLine(text)
		dst := line.Bounds().Add(image.Pt(hudPadding, y))
		draw.Draw(h.canvas, dst, line, image.Point{}, draw.Over)
	}

	return h.canvas
}

func (h *HUD) rasterLine(text string) *image.Alpha {
	if line, ok := h.lines.Get(text); ok {
		return line
	}

	width := font.MeasureString(h.face, text).Ceil()
	line := image.NewAlpha(image.Rect(0, 0, max(width, 1), h.LineHeight()))

	d := font.Drawer{
		Dst:  line,
		Src:  image.Opaque,
		Face: h.face,
		Dot:  fixed.P(0, h.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)

	h.lines.Add(text, line)
	return line
}

// OverlayRect returns the NDC rectangle (left, top, right, bottom) for a panel of
// panelW x panelH pixels placed margin pixels from the top left corner of the surface.
func OverlayRect(panelW, panelH, surfaceW, surfaceH, margin uint32) mgl32.Vec4 {
	if surfaceW == 0 || surfaceH == 0 {
		return mgl32.Vec4{}
	}

	sw, sh := float32(surfaceW), float32(surfaceH)
	left := float32(margin)
	top := float32(margin)

	return mgl32.Vec4{
		-1 + 2*left/sw,
		1 - 2*top/sh,
		-1 + 2*(left+float32(panelW))/sw,
		1 - 2*(top+float32(panelH))/sh,
	}
}
