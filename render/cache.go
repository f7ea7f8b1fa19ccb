package render

import (
	"github.com/lixenwraith/regionview/world"
)

// RegionSource is the read side of the world store seen by the cache
type RegionSource interface {
	Lookup(c world.Coord) (*world.CachedRegion, bool)
	CurrentTick() world.Tick
}

// CacheStats counts cache outcomes since creation
type CacheStats struct {
	Builds       uint64
	Reuses       uint64
	Placeholders uint64
	Clears       uint64
}

// RegionCache holds the last built visual region per coordinate
// Not safe for concurrent use; owned by a single renderer
type RegionCache struct {
	entries map[world.Coord]*CachedVisualRegion
	build   Builder
	stats   CacheStats
}

// NewRegionCache creates an empty cache, nil build selects BuildVisualRegion
func NewRegionCache(build Builder) *RegionCache {
	if build == nil {
		build = BuildVisualRegion
	}
	return &RegionCache{
		entries: make(map[world.Coord]*CachedVisualRegion),
		build:   build,
	}
}

// Get returns the visual region for coord, rebuilding when the data is newer
// Absent data stores an empty region stamped one tick behind so the next read retries
// A placeholder entry is always rebuilt once data becomes resident
func (c *RegionCache) Get(src RegionSource, coord world.Coord, mods ModifierSet) *CachedVisualRegion {
	now := src.CurrentTick()

	data, ok := src.Lookup(coord)
	if !ok || data == nil {
		entry := &CachedVisualRegion{
			Tick:        now.Sub(1),
			Region:      EmptyVisualRegion(),
			placeholder: true,
		}
		c.entries[coord] = entry
		c.stats.Placeholders++
		return entry
	}

	if entry, ok := c.entries[coord]; ok && !entry.placeholder && !entry.Tick.Before(data.LastUpdateTick) {
		c.stats.Reuses++
		return entry
	}

	entry := &CachedVisualRegion{
		Tick:   now,
		Region: c.build(data.Region, mods),
	}
	c.entries[coord] = entry
	c.stats.Builds++
	return entry
}

// Peek returns the stored entry without consulting the world
func (c *RegionCache) Peek(coord world.Coord) (*CachedVisualRegion, bool) {
	entry, ok := c.entries[coord]
	return entry, ok
}

// Clear drops every entry
func (c *RegionCache) Clear() {
	clear(c.entries)
	c.stats.Clears++
}

// Len returns the number of entries, placeholders included
func (c *RegionCache) Len() int {
	return len(c.entries)
}

// Stats returns the outcome counters
func (c *RegionCache) Stats() CacheStats {
	return c.stats
}
