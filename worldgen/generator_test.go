package worldgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/regionview/parameter"
	"github.com/lixenwraith/regionview/world"
)

func TestRect_Overlaps(t *testing.T) {
	base := Rect{X1: 2, Y1: 2, X2: 6, Y2: 5}
	tests := []struct {
		name string
		o    Rect
		want bool
	}{
		{"identical", base, true},
		{"inside", Rect{X1: 3, Y1: 3, X2: 4, Y2: 4}, true},
		{"corner overlap below", Rect{X1: 5, Y1: 4, X2: 9, Y2: 8}, true},
		{"corner overlap above", Rect{X1: 0, Y1: 0, X2: 3, Y2: 3}, true},
		{"touching right edge", Rect{X1: 6, Y1: 2, X2: 8, Y2: 5}, false},
		{"touching bottom edge", Rect{X1: 2, Y1: 5, X2: 6, Y2: 7}, false},
		{"disjoint vertically", Rect{X1: 2, Y1: 10, X2: 6, Y2: 12}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.o))
			assert.Equal(t, tt.want, tt.o.Overlaps(base), "symmetric")
		})
	}
}

func TestGenerate_RoomsValid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 42
	res := Generate(cfg)

	require.NotEmpty(t, res.Rooms)
	assert.LessOrEqual(t, len(res.Rooms), cfg.Rooms)
	for i, r := range res.Rooms {
		w, h := r.X2-r.X1, r.Y2-r.Y1
		assert.GreaterOrEqual(t, w, minRoomWidth)
		assert.Less(t, w, maxRoomWidth)
		assert.GreaterOrEqual(t, h, minRoomHeight)
		assert.Less(t, h, maxRoomHeight)
		assert.GreaterOrEqual(t, r.X1, 0)
		assert.GreaterOrEqual(t, r.Y1, 0)
		assert.LessOrEqual(t, r.X2, cfg.Width)
		assert.LessOrEqual(t, r.Y2, cfg.Height)
		for j := i + 1; j < len(res.Rooms); j++ {
			assert.False(t, r.Overlaps(res.Rooms[j]), "rooms %d and %d overlap", i, j)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	a := Generate(cfg)
	b := Generate(cfg)
	assert.Equal(t, a.Rooms, b.Rooms)
	assert.Equal(t, a.String(), b.String())
}

func TestGenerate_RegionsMatchFloor(t *testing.T) {
	cfg := Config{Width: 40, Height: 20, Rooms: 6, Tries: 200, Seed: 3}
	res := Generate(cfg)

	dim := parameter.RegionDim
	require.Len(t, res.Regions, (40/dim+1)*(20/dim+1))

	for c, region := range res.Regions {
		require.True(t, region.Wellformed())
		assert.Equal(t, int32(0), c.Z)
		for y := 0; y < dim; y++ {
			for x := 0; x < dim; x++ {
				gx, gy := int(c.X)*dim+x, int(c.Y)*dim+y
				kind := region.Blocks[y*dim+x].Fill.Kind
				if gx < res.Width && gy < res.Height && res.Floor[gy*res.Width+gx] {
					assert.Equal(t, world.FillFloor, kind)
				} else {
					assert.Equal(t, world.FillSolid, kind, "tile (%d,%d)", gx, gy)
				}
			}
		}
	}
}

func TestGenerate_FloorOnlyInsideRooms(t *testing.T) {
	res := Generate(Config{Width: 30, Height: 12, Rooms: 4, Tries: 200, Seed: 11})
	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			inRoom := false
			for _, r := range res.Rooms {
				inRoom = inRoom || r.Contains(x, y)
			}
			assert.Equal(t, inRoom, res.Floor[y*res.Width+x])
		}
	}
}

func TestGenerate_DegenerateSizes(t *testing.T) {
	res := Generate(Config{Width: 3, Height: 2, Rooms: 5, Tries: 10, Seed: 1})
	assert.Empty(t, res.Rooms)
	assert.Len(t, res.Regions, 1)

	res = Generate(Config{Width: 0, Height: 0, Rooms: 5, Tries: 10, Seed: 1})
	assert.Empty(t, res.Rooms)
	assert.Equal(t, "", res.String())
}

func TestPopulate(t *testing.T) {
	w := world.New(0)
	res := Generate(Config{Width: 20, Height: 20, Rooms: 2, Tries: 50, Seed: 5})
	Populate(w, res)

	assert.Equal(t, len(res.Regions), w.Len())
	for c := range res.Regions {
		cr, ok := w.Lookup(c)
		require.True(t, ok)
		assert.Equal(t, w.CurrentTick(), cr.LastUpdateTick)
	}
}
