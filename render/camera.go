package render

import (
	"github.com/lixenwraith/regionview/parameter"
	"github.com/lixenwraith/regionview/world"
)

// Camera maps region coordinates to screen tile positions
// RegionOffsetX/Y are sub-region scroll offsets in tiles, kept in [0, RegionDim)
type Camera struct {
	WorldOffset   world.Coord
	RegionOffsetX int
	RegionOffsetY int
	TilesWidth    int
	TilesHeight   int
}

// NewCamera creates a camera at the origin with the default tile window
func NewCamera() Camera {
	return Camera{
		TilesWidth:  parameter.DefaultTilesWidth,
		TilesHeight: parameter.DefaultTilesHeight,
	}
}

// ScreenPosition returns the tile position of a region's top-left corner
// Z is not projected and no bounds are checked
func (c *Camera) ScreenPosition(coord world.Coord) (x, y int) {
	x = int(coord.X-c.WorldOffset.X)*parameter.RegionDim + c.RegionOffsetX
	y = int(coord.Y-c.WorldOffset.Y)*parameter.RegionDim + c.RegionOffsetY
	return x, y
}

// RegionsWide returns the visible window width in regions
func (c *Camera) RegionsWide() int {
	return c.TilesWidth/parameter.RegionDim + 1
}

// RegionsTall returns the visible window height in regions
func (c *Camera) RegionsTall() int {
	return c.TilesHeight/parameter.RegionDim + 1
}

// VisibleBounds returns the half-open region window [min, max) including the off-screen margin
func (c *Camera) VisibleBounds() (minX, minY, maxX, maxY int32) {
	m := int32(parameter.OffScreenRenderHeuristic)
	minX = c.WorldOffset.X - m
	minY = c.WorldOffset.Y - m
	maxX = c.WorldOffset.X + int32(c.RegionsWide()) + m
	maxY = c.WorldOffset.Y + int32(c.RegionsTall()) + m
	return minX, minY, maxX, maxY
}

// Pan scrolls the view by (dx, dy) tiles, positive moves toward higher world coordinates
// Tile offsets carry into the world offset so region offsets stay in range
func (c *Camera) Pan(dx, dy int) {
	ox := c.RegionOffsetX - dx
	oy := c.RegionOffsetY - dy
	c.WorldOffset.X -= int32(floorDiv(ox, parameter.RegionDim))
	c.WorldOffset.Y -= int32(floorDiv(oy, parameter.RegionDim))
	c.RegionOffsetX = floorMod(ox, parameter.RegionDim)
	c.RegionOffsetY = floorMod(oy, parameter.RegionDim)
}

// Resize sets the visible window in tiles, negative values clamp to zero
func (c *Camera) Resize(tilesWidth, tilesHeight int) {
	c.TilesWidth = max(tilesWidth, 0)
	c.TilesHeight = max(tilesHeight, 0)
}

// Ascend moves the view one z plane up
func (c *Camera) Ascend() {
	c.WorldOffset.Z++
}

// Descend moves the view one z plane down
func (c *Camera) Descend() {
	c.WorldOffset.Z--
}

// Origin returns the region and local tile under the top-left screen cell
func (c *Camera) Origin() (coord world.Coord, x, y int) {
	coord = c.WorldOffset
	x, y = -c.RegionOffsetX, -c.RegionOffsetY
	if x < 0 {
		coord.X--
		x += parameter.RegionDim
	}
	if y < 0 {
		coord.Y--
		y += parameter.RegionDim
	}
	return coord, x, y
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
