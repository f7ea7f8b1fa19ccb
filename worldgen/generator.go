package worldgen

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/regionview/parameter"
	"github.com/lixenwraith/regionview/world"
)

// Room size ranges, max exclusive
const (
	minRoomWidth  = 4
	maxRoomWidth  = 12
	minRoomHeight = 3
	maxRoomHeight = 6
)

// Rect is a half-open tile rectangle [X1, X2) x [Y1, Y2)
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Overlaps reports whether r and o share any tile
func (r Rect) Overlaps(o Rect) bool {
	return r.X1 < o.X2 && r.X2 > o.X1 && r.Y1 < o.Y2 && r.Y2 > o.Y1
}

// Contains reports whether tile (x, y) is inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x < r.X2 && y >= r.Y1 && y < r.Y2
}

// Config controls room generation
type Config struct {
	// Map size in tiles
	Width, Height int

	Rooms int   // room placement attempts
	Tries int   // retries per room before giving up
	Seed  int64 // Optional (0 = Random)
}

// DefaultConfig fills the default camera window with rooms
func DefaultConfig() Config {
	return Config{
		Width:  parameter.DefaultTilesWidth,
		Height: parameter.DefaultTilesHeight,
		Rooms:  parameter.WorldGenRooms,
		Tries:  parameter.WorldGenTries,
	}
}

// Result is a generated map and its regions
type Result struct {
	Width, Height int
	Rooms         []Rect

	// Floor marks room tiles, row-major Width x Height
	Floor   []bool
	Regions map[world.Coord]world.Region
}

// Generate places random non-overlapping rooms and rasterizes them into regions at z=0
// Regions cover Width/RegionDim+1 by Height/RegionDim+1; tiles outside the map stay solid
func Generate(cfg Config) Result {
	width, height := max(cfg.Width, 0), max(cfg.Height, 0)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	rooms := make([]Rect, 0, cfg.Rooms)
	for i := 0; i < cfg.Rooms; i++ {
		if r, ok := placeRoom(rng, width, height, cfg.Tries, rooms); ok {
			rooms = append(rooms, r)
		}
	}

	floor := make([]bool, width*height)
	for _, r := range rooms {
		for y := r.Y1; y < r.Y2; y++ {
			for x := r.X1; x < r.X2; x++ {
				floor[y*width+x] = true
			}
		}
	}

	return Result{
		Width:   width,
		Height:  height,
		Rooms:   rooms,
		Floor:   floor,
		Regions: rasterize(floor, width, height),
	}
}

// placeRoom samples a room position and size until one fits, up to tries retries
func placeRoom(rng *rand.Rand, width, height, tries int, placed []Rect) (Rect, bool) {
	if width <= 0 || height <= 0 {
		return Rect{}, false
	}
	for attempt := 0; attempt <= tries; attempt++ {
		x := rng.Intn(width)
		y := rng.Intn(height)
		w := minRoomWidth + rng.Intn(maxRoomWidth-minRoomWidth)
		h := minRoomHeight + rng.Intn(maxRoomHeight-minRoomHeight)

		r := Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
		if r.X2 > width || r.Y2 > height {
			continue
		}
		if overlapsAny(r, placed) {
			continue
		}
		return r, true
	}
	return Rect{}, false
}

func overlapsAny(r Rect, rooms []Rect) bool {
	for _, o := range rooms {
		if r.Overlaps(o) {
			return true
		}
	}
	return false
}

func rasterize(floor []bool, width, height int) map[world.Coord]world.Region {
	dim := parameter.RegionDim
	wide := width/dim + 1
	tall := height/dim + 1

	regions := make(map[world.Coord]world.Region, wide*tall)
	for ry := 0; ry < tall; ry++ {
		for rx := 0; rx < wide; rx++ {
			region := world.NewRegion(world.Solid(0))
			for y := 0; y < dim; y++ {
				gy := ry*dim + y
				if gy >= height {
					break
				}
				for x := 0; x < dim; x++ {
					gx := rx*dim + x
					if gx >= width {
						break
					}
					if floor[gy*width+gx] {
						region.Blocks[y*dim+x] = world.Floor(0)
					}
				}
			}
			regions[world.Coord{X: int32(rx), Y: int32(ry)}] = region
		}
	}
	return regions
}

// Populate inserts every generated region into w at its current tick
func Populate(w *world.World, res Result) {
	for c, r := range res.Regions {
		w.Insert(c, r)
	}
}

// String renders the floor mask as '#' and '.' rows
func (r Result) String() string {
	buf := make([]byte, 0, (r.Width+1)*r.Height)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			if r.Floor[y*r.Width+x] {
				buf = append(buf, '.')
			} else {
				buf = append(buf, '#')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
