package core

// Color is a linear RGBA clear color.
type Color struct {
	R, G, B, A float64
}

var ColorBlack = Color{0, 0, 0, 1}

// DrawCall is a non-indexed draw over a vertex and an instance range.
type DrawCall struct {
	FirstVertex   uint32
	VertexCount   uint32
	FirstInstance uint32
	InstanceCount uint32
}

// FullscreenQuad draws vertices [0, 6) and instances [0, 1). The shader synthesizes the
// two triangles from the vertex index, no vertex buffer is bound.
var FullscreenQuad = DrawCall{VertexCount: 6, InstanceCount: 1}

// Frame describes the content of a single render pass.
type Frame struct {
	Clear Color
	Quad  DrawCall

	// HUD lines painted on top of the quad. Empty means no overlay draw.
	Overlay []string
}

func NewFrame() Frame {
	return Frame{
		Clear: ColorBlack,
		Quad:  FullscreenQuad,
	}
}

func (f Frame) HasOverlay() bool {
	return len(f.Overlay) > 0
}
