package main

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/regionview/config"
	"github.com/lixenwraith/regionview/store"
	"github.com/lixenwraith/regionview/world"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestLoadWorldGeneratesWithoutSnapshot(t *testing.T) {
	cfg := config.Default()
	cfg.World.Seed = 42

	w, err := loadWorld(context.Background(), nil, cfg, quietLogger())
	require.NoError(t, err)
	assert.NotZero(t, w.Len())

	again, err := loadWorld(context.Background(), nil, cfg, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, w.Coords(), again.Coords(), "same seed, same regions")
}

func TestLoadWorldPrefersSnapshot(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(ctx, filepath.Join(t.TempDir(), "world.db"))
	require.NoError(t, err)
	defer st.Close()

	cfg := config.Default()
	cfg.World.Seed = 7

	// Empty snapshot falls back to the generator
	w, err := loadWorld(ctx, st, cfg, quietLogger())
	require.NoError(t, err)
	require.NotZero(t, w.Len())

	saved := world.New(9)
	saved.Advance(4)
	saved.Insert(world.Coord{X: 3, Y: -1}, world.NewRegion(world.Floor(0)))
	require.NoError(t, st.SaveWorld(ctx, saved))

	w, err = loadWorld(ctx, st, cfg, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, world.ID(9), w.ID())
	assert.Equal(t, saved.CurrentTick(), w.CurrentTick())
	assert.Equal(t, []world.Coord{{X: 3, Y: -1}}, w.Coords())
}
