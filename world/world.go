package world

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lixenwraith/regionview/parameter"
)

var (
	// ErrNotResident is returned when mutating a region that is not loaded
	ErrNotResident = errors.New("region not resident")

	// ErrOutOfRange is returned for local block coordinates outside the region
	ErrOutOfRange = errors.New("block coordinate out of range")

	// ErrMalformed is returned when mutating a region with the wrong block count
	ErrMalformed = errors.New("malformed region")
)

// ID identifies a world instance
type ID uint32

// World owns the resident regions and the simulation tick
// Not safe for concurrent use: the simulation mutates it strictly between frames
type World struct {
	id          ID
	regions     map[Coord]*CachedRegion
	currentTick Tick
}

// New creates an empty world at StartTick
func New(id ID) *World {
	return &World{
		id:          id,
		regions:     make(map[Coord]*CachedRegion),
		currentTick: parameter.StartTick,
	}
}

// ID returns the world identifier
func (w *World) ID() ID {
	return w.id
}

// CurrentTick returns the current simulation tick
func (w *World) CurrentTick() Tick {
	return w.currentTick
}

// Lookup returns the resident region at c
// The returned region is read-only for the caller
func (w *World) Lookup(c Coord) (*CachedRegion, bool) {
	cr, ok := w.regions[c]
	return cr, ok
}

// Advance moves the simulation forward by n ticks and returns the new tick
func (w *World) Advance(n uint64) Tick {
	w.currentTick = w.currentTick.Add(n)
	return w.currentTick
}

// Insert makes region resident at c, stamped with the current tick
// An existing region at c is replaced
func (w *World) Insert(c Coord, region Region) {
	w.regions[c] = &CachedRegion{
		Region:         region,
		LastUpdateTick: w.currentTick,
	}
}

// Evict drops the region at c, reporting whether it was resident
func (w *World) Evict(c Coord) bool {
	if _, ok := w.regions[c]; !ok {
		return false
	}
	delete(w.regions, c)
	return true
}

// SetBlock replaces the block at local (x, y) of region c and stamps the region with the current tick
// The region is copied before mutation so readers holding the previous CachedRegion never observe a partial write
func (w *World) SetBlock(c Coord, x, y int, b Block) error {
	cr, ok := w.regions[c]
	if !ok {
		return fmt.Errorf("set block at %s: %w", c, ErrNotResident)
	}
	if !cr.Region.Wellformed() {
		return fmt.Errorf("set block at %s: %w", c, ErrMalformed)
	}
	idx, ok := Index(x, y)
	if !ok {
		return fmt.Errorf("set block (%d,%d) at %s: %w", x, y, c, ErrOutOfRange)
	}

	blocks := make([]Block, len(cr.Region.Blocks))
	copy(blocks, cr.Region.Blocks)
	blocks[idx] = b

	w.regions[c] = &CachedRegion{
		Region:         Region{Blocks: blocks},
		LastUpdateTick: w.currentTick,
	}
	return nil
}

// Coords returns the resident region coordinates sorted by z, y, x
func (w *World) Coords() []Coord {
	out := make([]Coord, 0, len(w.regions))
	for c := range w.regions {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Len returns the number of resident regions
func (w *World) Len() int {
	return len(w.regions)
}

// Restore replaces the world state with previously persisted regions
// Region ticks are kept as stored; tick is clamped so it is never behind any region
func (w *World) Restore(tick Tick, regions map[Coord]CachedRegion) {
	w.regions = make(map[Coord]*CachedRegion, len(regions))
	for c, cr := range regions {
		w.regions[c] = &cr
		if cr.LastUpdateTick > tick {
			tick = cr.LastUpdateTick
		}
	}
	if tick < parameter.StartTick {
		tick = parameter.StartTick
	}
	w.currentTick = tick
}
