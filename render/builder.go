package render

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/regionview/world"
)

// ErrUnmappedFill is the panic value for a block fill with no visual mapping
var ErrUnmappedFill = errors.New("no visual mapping for block fill")

// Builder turns region data into tiles under the active modifiers
type Builder func(region world.Region, mods ModifierSet) VisualRegion

var (
	solidTile = Tile{Glyph: NewGlyph("#"), Fg: ColorSolidFg, Bg: ColorSolidBg}
	floorTile = Tile{Glyph: NewGlyph("."), Fg: ColorFloorFg, Bg: ColorFloorBg}
)

// BuildVisualRegion maps each block to a tile, preserving order and count
// Panics with ErrUnmappedFill for fill kinds without a mapping
// Modifiers do not change the output yet
func BuildVisualRegion(region world.Region, mods ModifierSet) VisualRegion {
	_ = mods
	tiles := make([]Tile, 0, len(region.Blocks))
	for i, b := range region.Blocks {
		switch b.Fill.Kind {
		case world.FillSolid:
			tiles = append(tiles, solidTile)
		case world.FillFloor:
			tiles = append(tiles, floorTile)
		default:
			panic(fmt.Errorf("%w: %s at block %d", ErrUnmappedFill, b.Fill.Kind, i))
		}
	}
	return VisualRegion{Tiles: tiles}
}
