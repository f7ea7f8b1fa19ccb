package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/regionview/parameter"
)

func TestTickArithmetic(t *testing.T) {
	tick := Tick(5)
	assert.Equal(t, Tick(8), tick.Add(3))
	assert.Equal(t, Tick(4), tick.Sub(1))
	assert.Equal(t, Tick(0), Tick(0).Sub(1), "Sub saturates at zero")
	assert.True(t, Tick(1).Before(2))
	assert.False(t, Tick(2).Before(2))
	assert.Equal(t, "42", Tick(42).String())
}

func TestNewWorldStartsAtStartTick(t *testing.T) {
	w := New(7)
	assert.Equal(t, ID(7), w.ID())
	assert.Equal(t, Tick(parameter.StartTick), w.CurrentTick())
	assert.Zero(t, w.Len())

	_, ok := w.Lookup(Coord{})
	assert.False(t, ok)
}

func TestInsertStampsCurrentTick(t *testing.T) {
	w := New(0)
	w.Advance(4)

	c := Coord{X: 1, Y: -2, Z: 0}
	w.Insert(c, NewRegion(Floor(3)))

	cr, ok := w.Lookup(c)
	require.True(t, ok)
	assert.Equal(t, Tick(5), cr.LastUpdateTick)
	assert.True(t, cr.Region.Wellformed())
	assert.Equal(t, Floor(3), cr.Region.Blocks[0])
}

func TestSetBlockCopiesAndStamps(t *testing.T) {
	w := New(0)
	c := Coord{}
	w.Insert(c, NewRegion(Solid(0)))
	before, _ := w.Lookup(c)

	w.Advance(1)
	require.NoError(t, w.SetBlock(c, 3, 2, Floor(1)))

	after, _ := w.Lookup(c)
	assert.Equal(t, Tick(2), after.LastUpdateTick)
	assert.Equal(t, Floor(1), after.Region.Blocks[2*parameter.RegionDim+3])

	// Previously observed data is not mutated in place
	assert.Equal(t, Tick(1), before.LastUpdateTick)
	assert.Equal(t, Solid(0), before.Region.Blocks[2*parameter.RegionDim+3])
}

func TestSetBlockErrors(t *testing.T) {
	w := New(0)
	assert.ErrorIs(t, w.SetBlock(Coord{X: 9}, 0, 0, Empty()), ErrNotResident)

	w.Insert(Coord{}, NewRegion(Solid(0)))
	assert.ErrorIs(t, w.SetBlock(Coord{}, parameter.RegionDim, 0, Empty()), ErrOutOfRange)
	assert.ErrorIs(t, w.SetBlock(Coord{}, 0, -1, Empty()), ErrOutOfRange)

	w.Insert(Coord{Y: 1}, Region{Blocks: make([]Block, 3)})
	assert.ErrorIs(t, w.SetBlock(Coord{Y: 1}, 0, 0, Empty()), ErrMalformed)
}

func TestEvictAndCoords(t *testing.T) {
	w := New(0)
	w.Insert(Coord{X: 1, Y: 0}, NewRegion(Empty()))
	w.Insert(Coord{X: 0, Y: 1}, NewRegion(Empty()))
	w.Insert(Coord{X: 0, Y: 0}, NewRegion(Empty()))

	assert.Equal(t, []Coord{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, w.Coords())

	assert.True(t, w.Evict(Coord{X: 1}))
	assert.False(t, w.Evict(Coord{X: 1}))
	assert.Equal(t, 2, w.Len())
}

func TestRestoreClampsTick(t *testing.T) {
	w := New(0)
	w.Restore(3, map[Coord]CachedRegion{
		{X: 0}: {Region: NewRegion(Floor(0)), LastUpdateTick: 9},
		{X: 1}: {Region: NewRegion(Floor(0)), LastUpdateTick: 2},
	})
	assert.Equal(t, Tick(9), w.CurrentTick())
	assert.Equal(t, 2, w.Len())

	w.Restore(0, nil)
	assert.Equal(t, Tick(parameter.StartTick), w.CurrentTick())
	assert.Zero(t, w.Len())
}

func TestFillKindString(t *testing.T) {
	assert.Equal(t, "floor_ceiling", FillFloorCeiling.String())
	assert.Equal(t, "unknown", FillKind(200).String())
}
