package render

import "github.com/lixenwraith/regionview/world"

// LineBreak is the text that ends a row inside a section
const LineBreak = "\n"

// Text is one glyph run inside a section
type Text struct {
	Glyph string
	Fg    Color
	Bg    Color
	Scale float32
}

// Section is a positioned batch of text laid out left to right, top to bottom
type Section struct {
	X, Y  float32
	Texts []Text
}

// DrawSurface accepts sections for drawing; batching and flushing belong to the surface
type DrawSurface interface {
	Queue(section Section)
}

// WorldView is a region source that identifies its world
type WorldView interface {
	RegionSource
	ID() world.ID
}

// SystemRenderer draws one layer of a frame
type SystemRenderer interface {
	Render(ctx RenderContext, buf *RenderBuffer)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}
