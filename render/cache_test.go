package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/regionview/world"
)

// fakeSource is a minimal RegionSource with a settable tick
type fakeSource struct {
	tick    world.Tick
	regions map[world.Coord]*world.CachedRegion
}

func newFakeSource(tick world.Tick) *fakeSource {
	return &fakeSource{tick: tick, regions: make(map[world.Coord]*world.CachedRegion)}
}

func (s *fakeSource) Lookup(c world.Coord) (*world.CachedRegion, bool) {
	cr, ok := s.regions[c]
	return cr, ok
}

func (s *fakeSource) CurrentTick() world.Tick { return s.tick }

func (s *fakeSource) put(c world.Coord, b world.Block, tick world.Tick) {
	s.regions[c] = &world.CachedRegion{Region: world.NewRegion(b), LastUpdateTick: tick}
}

// countingBuilder wraps BuildVisualRegion and records each call
type countingBuilder struct {
	calls int
	mods  []ModifierSet
}

func (b *countingBuilder) build(region world.Region, mods ModifierSet) VisualRegion {
	b.calls++
	b.mods = append(b.mods, mods)
	return BuildVisualRegion(region, mods)
}

func TestRegionCache_BuildsOnFirstRead(t *testing.T) {
	src := newFakeSource(3)
	c0 := world.Coord{}
	src.put(c0, world.Floor(0), 1)

	b := &countingBuilder{}
	cache := NewRegionCache(b.build)

	entry := cache.Get(src, c0, ModifierSet{})
	require.NotNil(t, entry)
	assert.Equal(t, 1, b.calls)
	assert.Equal(t, world.Tick(3), entry.Tick, "stamped with current world tick, not data tick")
	assert.True(t, entry.Region.Wellformed())
	assert.False(t, entry.Placeholder())
	assert.Equal(t, 1, cache.Len())
}

func TestRegionCache_IdempotentReuse(t *testing.T) {
	src := newFakeSource(1)
	c0 := world.Coord{X: 2, Y: -1}
	src.put(c0, world.Solid(0), 1)

	b := &countingBuilder{}
	cache := NewRegionCache(b.build)

	first := cache.Get(src, c0, ModifierSet{})
	for i := 0; i < 5; i++ {
		src.tick = src.tick.Add(1)
		again := cache.Get(src, c0, ModifierSet{})
		assert.Same(t, first, again)
	}
	assert.Equal(t, 1, b.calls)
	assert.Equal(t, uint64(5), cache.Stats().Reuses)
}

func TestRegionCache_MonotonicInvalidation(t *testing.T) {
	src := newFakeSource(1)
	c0 := world.Coord{}
	src.put(c0, world.Floor(0), 1)

	b := &countingBuilder{}
	cache := NewRegionCache(b.build)
	cache.Get(src, c0, ModifierSet{})

	src.tick = 5
	src.put(c0, world.Solid(0), 4)

	entry := cache.Get(src, c0, ModifierSet{})
	assert.Equal(t, 2, b.calls)
	assert.Equal(t, world.Tick(5), entry.Tick)
	tile, ok := entry.Region.At(0, 0)
	require.True(t, ok)
	assert.Equal(t, "#", tile.Glyph.Text)

	// entry tick 5 >= data tick 4: reused from here on
	cache.Get(src, c0, ModifierSet{})
	assert.Equal(t, 2, b.calls)
}

func TestRegionCache_EqualTickReuses(t *testing.T) {
	src := newFakeSource(2)
	c0 := world.Coord{}
	src.put(c0, world.Floor(0), 2)

	b := &countingBuilder{}
	cache := NewRegionCache(b.build)
	cache.Get(src, c0, ModifierSet{})
	cache.Get(src, c0, ModifierSet{})
	assert.Equal(t, 1, b.calls)
}

func TestRegionCache_NegativeCacheRetries(t *testing.T) {
	src := newFakeSource(7)
	c0 := world.Coord{X: 9}

	b := &countingBuilder{}
	cache := NewRegionCache(b.build)

	entry := cache.Get(src, c0, ModifierSet{})
	assert.True(t, entry.Placeholder())
	assert.True(t, entry.Region.IsEmpty())
	assert.Equal(t, world.Tick(6), entry.Tick)
	assert.Equal(t, 0, b.calls)

	// still absent: refreshed placeholder, no build
	src.tick = 8
	entry = cache.Get(src, c0, ModifierSet{})
	assert.True(t, entry.Placeholder())
	assert.Equal(t, world.Tick(7), entry.Tick)
	assert.Equal(t, uint64(2), cache.Stats().Placeholders)

	// data arrives: built on the very next read
	src.put(c0, world.Floor(0), 8)
	entry = cache.Get(src, c0, ModifierSet{})
	assert.False(t, entry.Placeholder())
	assert.Equal(t, world.Tick(8), entry.Tick)
	assert.Equal(t, 1, b.calls)
}

func TestRegionCache_PlaceholderRebuiltEvenWithOlderData(t *testing.T) {
	// data stamped before the placeholder would be reused under a pure tick comparison
	src := newFakeSource(10)
	c0 := world.Coord{}

	b := &countingBuilder{}
	cache := NewRegionCache(b.build)
	cache.Get(src, c0, ModifierSet{})

	src.put(c0, world.Floor(0), 3)
	entry := cache.Get(src, c0, ModifierSet{})
	assert.False(t, entry.Placeholder())
	assert.True(t, entry.Region.Wellformed())
	assert.Equal(t, 1, b.calls)
}

func TestRegionCache_PlaceholderAtTickZeroSaturates(t *testing.T) {
	src := newFakeSource(0)
	entry := NewRegionCache(nil).Get(src, world.Coord{}, ModifierSet{})
	assert.Equal(t, world.Tick(0), entry.Tick)
}

func TestRegionCache_EvictionYieldsPlaceholder(t *testing.T) {
	src := newFakeSource(1)
	c0 := world.Coord{}
	src.put(c0, world.Floor(0), 1)

	cache := NewRegionCache(nil)
	require.True(t, cache.Get(src, c0, ModifierSet{}).Region.Wellformed())

	delete(src.regions, c0)
	entry := cache.Get(src, c0, ModifierSet{})
	assert.True(t, entry.Placeholder())
	assert.True(t, entry.Region.IsEmpty())
}

func TestRegionCache_ClearForcesRebuild(t *testing.T) {
	src := newFakeSource(1)
	c0 := world.Coord{}
	src.put(c0, world.Floor(0), 1)

	b := &countingBuilder{}
	cache := NewRegionCache(b.build)
	cache.Get(src, c0, ModifierSet{})

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
	_, ok := cache.Peek(c0)
	assert.False(t, ok)

	cache.Get(src, c0, NewModifierSet(ModifierGravityInverse))
	require.Equal(t, 2, b.calls)
	assert.True(t, b.mods[1].Has(ModifierGravityInverse))
	assert.Equal(t, uint64(1), cache.Stats().Clears)
}

func TestRegionCache_MalformedDataCachedAsIs(t *testing.T) {
	src := newFakeSource(1)
	c0 := world.Coord{}
	src.regions[c0] = &world.CachedRegion{
		Region:         world.Region{Blocks: []world.Block{world.Floor(0), world.Floor(0), world.Floor(0)}},
		LastUpdateTick: 1,
	}

	entry := NewRegionCache(nil).Get(src, c0, ModifierSet{})
	assert.Len(t, entry.Region.Tiles, 3)
	assert.False(t, entry.Region.Wellformed())
}

func TestRegionCache_NeverMutatesSource(t *testing.T) {
	w := world.New(0)
	c0 := world.Coord{}
	w.Insert(c0, world.NewRegion(world.Floor(0)))
	before, _ := w.Lookup(c0)

	cache := NewRegionCache(nil)
	cache.Get(w, c0, ModifierSet{})
	cache.Get(w, world.Coord{X: 1}, ModifierSet{})

	after, _ := w.Lookup(c0)
	assert.Same(t, before, after)
	assert.Equal(t, 1, w.Len())
	assert.Equal(t, world.Tick(1), w.CurrentTick())
}
