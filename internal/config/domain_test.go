package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/cartpath/internal/analyze"
	"github.com/udisondev/cartpath/internal/curve"
	"github.com/udisondev/cartpath/internal/geom"
	"github.com/udisondev/cartpath/internal/search"
)

func TestPathFromEnv(t *testing.T) {
	t.Setenv("CARTPATH_CONFIG", "")
	assert.Equal(t, DefaultPath, PathFromEnv())

	t.Setenv("CARTPATH_CONFIG", "/etc/cartpath.yaml")
	assert.Equal(t, "/etc/cartpath.yaml", PathFromEnv())
}

func TestSlogLevel(t *testing.T) {
	cfg := Default()
	for level, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"loud":  slog.LevelInfo,
	} {
		cfg.LogLevel = level
		assert.Equal(t, want, cfg.SlogLevel(), level)
	}
}

func TestDefaultGridAndFrame(t *testing.T) {
	cfg := Default()

	g := cfg.Grid()
	assert.Equal(t, 25*9*6*7, g.Size())
	assert.Equal(t, 900, g.Samples)

	f := cfg.Frame(curve.North)
	assert.Equal(t, geom.V3(-199, 98, 410), f.Start)
	assert.Equal(t, geom.XZ{X: -330, Z: 352}, f.End)
	assert.Equal(t, curve.North, f.Orientation)
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Search.Rank = "length"
	cfg.Search.TopN = 5

	south, err := cfg.Options(curve.South)
	require.NoError(t, err)
	assert.Equal(t, search.RankLength, south.Rank)
	assert.Equal(t, 5, south.TopN)
	assert.Empty(t, south.Constraints)

	north, err := cfg.Options(curve.North)
	require.NoError(t, err)
	require.Len(t, north.Constraints, 1)

	ok, _ := north.Constraints[0](curve.Params{}, analyze.Report{MinChunkZ: cfg.NorthChunkLimit})
	assert.True(t, ok)
	ok, reason := north.Constraints[0](curve.Params{}, analyze.Report{MinChunkZ: cfg.NorthChunkLimit - 1})
	assert.False(t, ok)
	assert.Contains(t, reason, "too far north")
}

func TestOptionsSouthLimit(t *testing.T) {
	cfg := Default()

	opts, err := cfg.Options(curve.South)
	require.NoError(t, err)
	assert.Empty(t, opts.Constraints, "south limit is an audit concern unless enforced")

	cfg.EnforceSouthLimit = true
	opts, err = cfg.Options(curve.South)
	require.NoError(t, err)
	require.Len(t, opts.Constraints, 1)

	ok, _ := opts.Constraints[0](curve.Params{}, analyze.Report{MaxChunkZ: cfg.SouthChunkLimit - 1})
	assert.True(t, ok)
	ok, reason := opts.Constraints[0](curve.Params{}, analyze.Report{MaxChunkZ: cfg.SouthChunkLimit})
	assert.False(t, ok)
	assert.Contains(t, reason, "too far south")

	north, err := cfg.Options(curve.North)
	require.NoError(t, err)
	require.Len(t, north.Constraints, 1)
	ok, _ = north.Constraints[0](curve.Params{}, analyze.Report{MinChunkZ: cfg.NorthChunkLimit, MaxChunkZ: 99})
	assert.True(t, ok, "north-first searches keep only the north limit")
}

func TestOrientationAndOutputDir(t *testing.T) {
	cfg := Default()
	o, err := cfg.Orientation()
	require.NoError(t, err)
	assert.Equal(t, curve.South, o)
	assert.Equal(t, "curves", cfg.OutputDir(o))
	assert.Equal(t, "curves_north", cfg.OutputDir(curve.North))

	cfg.Search.Orientation = ""
	o, err = cfg.Orientation()
	require.NoError(t, err)
	assert.Equal(t, curve.South, o)
}
