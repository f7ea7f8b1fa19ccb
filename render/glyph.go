package render

import (
	"github.com/lixenwraith/regionview/parameter"
	"github.com/lixenwraith/regionview/world"
)

// Glyph is the text drawn for one tile
// RenderOffset is a sub-cell nudge, carried but not applied by the terminal surface
type Glyph struct {
	Text         string
	RenderOffset [2]float32
}

// NewGlyph creates a glyph with no render offset
func NewGlyph(text string) Glyph {
	return Glyph{Text: text}
}

// Tile is the visual form of one block
type Tile struct {
	Glyph Glyph
	Fg    Color
	Bg    Color
}

// VisualRegion holds one tile per block, row-major, or no tiles at all
type VisualRegion struct {
	Tiles []Tile
}

// EmptyVisualRegion returns the placeholder used for non-resident regions
func EmptyVisualRegion() VisualRegion {
	return VisualRegion{}
}

// IsEmpty reports whether the region has no tiles
func (r VisualRegion) IsEmpty() bool {
	return len(r.Tiles) == 0
}

// Wellformed reports whether the region has exactly one tile per position
func (r VisualRegion) Wellformed() bool {
	return len(r.Tiles) == parameter.RegionLen
}

// At returns the tile at local (x, y)
func (r VisualRegion) At(x, y int) (Tile, bool) {
	i, ok := world.Index(x, y)
	if !ok || i >= len(r.Tiles) {
		return Tile{}, false
	}
	return r.Tiles[i], true
}

// CachedVisualRegion is a built region stamped with the world tick it was built at
type CachedVisualRegion struct {
	Tick   world.Tick
	Region VisualRegion

	// placeholder marks an empty region stored for absent data
	placeholder bool
}

// Placeholder reports whether the entry stands in for a non-resident region
func (c *CachedVisualRegion) Placeholder() bool {
	return c.placeholder
}
