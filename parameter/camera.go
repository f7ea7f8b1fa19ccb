package parameter

// Region geometry
const (
	// RegionDim is the side length of a square region in tiles
	RegionDim = 16

	// RegionLen is the tile count of a well-formed region (RegionDim^2)
	RegionLen = RegionDim * RegionDim
)

// Camera configuration
const (
	// OffScreenRenderHeuristic is the margin in regions fetched beyond the visible window on every side
	// Regions are built slightly before they scroll into view to avoid pop-in
	OffScreenRenderHeuristic = 2

	// DefaultTilesWidth is the visible window width in tiles (1280px window / 10px glyph)
	DefaultTilesWidth = 128

	// DefaultTilesHeight is the visible window height in tiles (720px window / 20px glyph)
	DefaultTilesHeight = 36

	// GlyphWidth and GlyphHeight are terminal cell metrics, one glyph per cell
	GlyphWidth  = 1.0
	GlyphHeight = 1.0

	// GlyphScale is the text scale passed with every draw request
	GlyphScale = 1.0
)

// Debug world generation
const (
	// WorldGenRooms is the number of room placement attempts
	WorldGenRooms = 20

	// WorldGenTries is the number of retries per room before it is dropped
	WorldGenTries = 200
)
