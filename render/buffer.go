package render

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/regionview/terminal"
)

// RenderBuffer is a cell compositor backed by a terminal.Cell array with touch tracking
// It implements DrawSurface for world sections and direct cell writes for UI
type RenderBuffer struct {
	cells   []terminal.Cell
	touched []bool
	width   int
	height  int

	// clipHeight limits section layout rows, keeping the status line free
	clipHeight int
}

var blankCell = terminal.Cell{Fg: RgbForeground, Bg: RgbBackground}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts dimensions, reallocating only when capacity is insufficient
func (b *RenderBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]terminal.Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.clipHeight = height
	b.Clear()
}

// Size returns the buffer dimensions
func (b *RenderBuffer) Size() (int, int) {
	return b.width, b.height
}

// SetClipHeight limits the rows sections may draw into, clamped to the buffer height
func (b *RenderBuffer) SetClipHeight(h int) {
	b.clipHeight = min(max(h, 0), b.height)
}

// Clear resets all cells to blank using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = blankCell
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at (x, y), blank when out of bounds
func (b *RenderBuffer) Get(x, y int) terminal.Cell {
	if !b.inBounds(x, y) {
		return blankCell
	}
	return b.cells[y*b.width+x]
}

// ===== DRAW SURFACE =====

// Queue lays out a section's texts from its origin
// Each glyph advances by its cell width; LineBreak returns to the section x on the next row
func (b *RenderBuffer) Queue(section Section) {
	originX := int(math.Floor(float64(section.X)))
	x := originX
	y := int(math.Floor(float64(section.Y)))

	for i := range section.Texts {
		t := &section.Texts[i]
		if t.Glyph == LineBreak {
			x = originX
			y++
			continue
		}
		if y >= b.clipHeight {
			return
		}
		for _, r := range t.Glyph {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			if y >= 0 {
				b.composite(x, y, r, t.Fg, t.Bg)
			}
			x += w
		}
	}
}

// composite draws r with the text colors blended over the current cell
func (b *RenderBuffer) composite(x, y int, r rune, fg, bg Color) {
	if x < 0 || x >= b.width || y >= b.clipHeight {
		return
	}
	idx := y*b.width + x
	dst := &b.cells[idx]
	if bg.Alpha() > 0 {
		dst.Bg = bg.Over(dst.Bg)
		b.touched[idx] = true
	}
	dst.Rune = r
	dst.Fg = fg.Over(dst.Bg)
	dst.Attrs = terminal.AttrNone
}

// ===== CELL API =====

// SetWithBg writes a cell with explicit opaque colors
func (b *RenderBuffer) SetWithBg(x, y int, r rune, fg, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx] = terminal.Cell{Rune: r, Fg: fg, Bg: bg}
	b.touched[idx] = true
}

// SetString writes s from (x, y) and returns the x after the last glyph
// Wide runes occupy two cells; writing stops at the right edge
func (b *RenderBuffer) SetString(x, y int, s string, fg, bg RGB) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > b.width {
			return x
		}
		b.SetWithBg(x, y, r, fg, bg)
		for i := 1; i < w; i++ {
			b.SetWithBg(x+i, y, 0, fg, bg)
		}
		x += w
	}
	return x
}

// FillRow paints a full row with bg
func (b *RenderBuffer) FillRow(y int, bg RGB) {
	for x := 0; x < b.width; x++ {
		b.SetWithBg(x, y, ' ', bg, bg)
	}
}

// ===== OUTPUT =====

// finalize applies the default background to cells nothing painted
func (b *RenderBuffer) finalize() {
	for i := range b.cells {
		if !b.touched[i] {
			b.cells[i].Bg = RgbBackground
		}
	}
}

// FlushToTerminal writes the buffer to the terminal
func (b *RenderBuffer) FlushToTerminal(term terminal.Terminal) {
	b.finalize()
	term.Flush(b.cells, b.width, b.height)
}
