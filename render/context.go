package render

import "github.com/lixenwraith/regionview/parameter"

// RenderContext is the per-frame state handed to every layer, passed by value
type RenderContext struct {
	World WorldView

	FrameNumber uint64
	Focused     bool

	// Screen dimensions (terminal size)
	ScreenWidth  int
	ScreenHeight int
}

// ViewHeight returns the rows available to the world view above the status line
func (rc *RenderContext) ViewHeight() int {
	return max(rc.ScreenHeight-parameter.BottomMargin, 0)
}

// StatusRow returns the row of the status line, -1 when the screen has no room for it
func (rc *RenderContext) StatusRow() int {
	if rc.ScreenHeight < 1 {
		return -1
	}
	return rc.ScreenHeight - 1
}
