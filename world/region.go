package world

import (
	"fmt"

	"github.com/lixenwraith/regionview/parameter"
)

// Coord is the position of a region in the 3D region grid
type Coord struct {
	X, Y, Z int32
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Offset returns the coordinate translated by (dx, dy, dz) regions
func (c Coord) Offset(dx, dy, dz int32) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
}

// Region is a square grid of blocks in row-major order: Blocks[y*RegionDim + x]
// A region whose length is not RegionLen is malformed and must not be drawn
type Region struct {
	Blocks []Block
}

// NewRegion creates a well-formed region filled with b
func NewRegion(b Block) Region {
	blocks := make([]Block, parameter.RegionLen)
	for i := range blocks {
		blocks[i] = b
	}
	return Region{Blocks: blocks}
}

// Wellformed reports whether the region holds exactly RegionLen blocks
func (r Region) Wellformed() bool {
	return len(r.Blocks) == parameter.RegionLen
}

// Index returns the block index for local (x, y); ok is false outside [0, RegionDim)
func Index(x, y int) (int, bool) {
	if x < 0 || x >= parameter.RegionDim || y < 0 || y >= parameter.RegionDim {
		return 0, false
	}
	return y*parameter.RegionDim + x, true
}

// CachedRegion pairs region data with the tick of its last mutation
// Owned by the World; readers must not modify it
type CachedRegion struct {
	Region         Region
	LastUpdateTick Tick
}
