package render

import (
	"github.com/lixenwraith/regionview/terminal"
)

type rendererEntry struct {
	renderer SystemRenderer
	priority RenderPriority
	index    int // registration order for stable sort
}

// RenderOrchestrator runs the frame pipeline: clear, render layers, flush
type RenderOrchestrator struct {
	term      terminal.Terminal
	buffer    *RenderBuffer
	renderers []rendererEntry
	regCount  int
}

// NewRenderOrchestrator creates an orchestrator drawing into a width x height buffer
func NewRenderOrchestrator(term terminal.Terminal, width, height int) *RenderOrchestrator {
	return &RenderOrchestrator{
		term:      term,
		buffer:    NewRenderBuffer(width, height),
		renderers: make([]rendererEntry, 0, 4),
	}
}

// Register adds a layer, keeping the list sorted by priority then registration order
func (o *RenderOrchestrator) Register(r SystemRenderer, priority RenderPriority) {
	entry := rendererEntry{renderer: r, priority: priority, index: o.regCount}
	o.regCount++

	pos := len(o.renderers)
	for i, e := range o.renderers {
		if priority < e.priority {
			pos = i
			break
		}
	}
	o.renderers = append(o.renderers, rendererEntry{})
	copy(o.renderers[pos+1:], o.renderers[pos:])
	o.renderers[pos] = entry
}

// Buffer returns the frame buffer
func (o *RenderOrchestrator) Buffer() *RenderBuffer {
	return o.buffer
}

// Resize updates buffer dimensions and resyncs the terminal
func (o *RenderOrchestrator) Resize(width, height int) {
	o.buffer.Resize(width, height)
	o.term.Sync()
}

// RenderFrame draws every visible layer and flushes the result
func (o *RenderOrchestrator) RenderFrame(ctx RenderContext) {
	o.buffer.Clear()
	for _, entry := range o.renderers {
		if vt, ok := entry.renderer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.renderer.Render(ctx, o.buffer)
	}
	o.buffer.FlushToTerminal(o.term)
}
