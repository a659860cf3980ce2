package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/cartpath/internal/db"
	"github.com/udisondev/cartpath/internal/geom"
	"github.com/udisondev/cartpath/internal/model"
	"github.com/udisondev/cartpath/internal/testutil"
)

func TestCoordinateSetRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := db.NewCoordinateSetRepository(pool)

	points := []geom.Point{
		geom.P(-199, 98, 410),
		geom.P(-199, 98, 409),
		geom.P(-200, 99, 400),
		geom.P(-208, 109, 362),
	}

	t.Run("create and load", func(t *testing.T) {
		ctx := testutil.Context(t)
		set := model.NewCoordinateSet("builder", "curve_y222_loops0_A40_B0.txt", "OK", points)
		seg := 2
		set.Coordinates[1].Label = "entry"
		set.Coordinates[1].Color = "red"
		set.Coordinates[1].SegmentID = &seg
		set.Chunks = append(set.Chunks, model.ChunkMark{X: -12, Z: 30, Type: model.ChunkUnavailable})

		id, err := repo.Create(ctx, set)
		require.NoError(t, err)
		assert.Equal(t, id, set.ID)
		assert.False(t, set.CreatedAt.IsZero())

		got, err := repo.Load(ctx, id, "builder")
		require.NoError(t, err)
		assert.Equal(t, "curve_y222_loops0_A40_B0.txt", got.Name)
		assert.Equal(t, "OK", got.Description)
		assert.Equal(t, points, got.Points())
		assert.Equal(t, "entry", got.Coordinates[1].Label)
		assert.Equal(t, "red", got.Coordinates[1].Color)
		require.NotNil(t, got.Coordinates[1].SegmentID)
		assert.Equal(t, 2, *got.Coordinates[1].SegmentID)
		assert.Nil(t, got.Coordinates[0].SegmentID)
		assert.ElementsMatch(t, set.Chunks, got.Chunks)
	})

	t.Run("owner isolation", func(t *testing.T) {
		ctx := testutil.Context(t)
		id, err := repo.Create(ctx, model.NewCoordinateSet("alice", "private", "", points))
		require.NoError(t, err)

		_, err = repo.Load(ctx, id, "mallory")
		assert.ErrorIs(t, err, db.ErrSetNotFound)

		err = repo.Delete(ctx, id, "mallory")
		assert.ErrorIs(t, err, db.ErrSetNotFound)
	})

	t.Run("list and delete", func(t *testing.T) {
		ctx := testutil.Context(t)
		first, err := repo.Create(ctx, model.NewCoordinateSet("lister", "first", "", points[:2]))
		require.NoError(t, err)
		second, err := repo.Create(ctx, model.NewCoordinateSet("lister", "second", "desc", points))
		require.NoError(t, err)

		sets, err := repo.List(ctx, "lister")
		require.NoError(t, err)
		require.Len(t, sets, 2)
		assert.Equal(t, second, sets[0].ID)
		assert.Equal(t, 4, sets[0].CoordinateCount)
		assert.Equal(t, "desc", sets[0].Description)
		assert.Equal(t, first, sets[1].ID)
		assert.Equal(t, 2, sets[1].CoordinateCount)

		require.NoError(t, repo.Delete(ctx, first, "lister"))
		sets, err = repo.List(ctx, "lister")
		require.NoError(t, err)
		assert.Len(t, sets, 1)

		_, err = repo.Load(ctx, first, "lister")
		assert.ErrorIs(t, err, db.ErrSetNotFound)
	})

	t.Run("invalid chunk type", func(t *testing.T) {
		ctx := testutil.Context(t)
		set := model.NewCoordinateSet("builder", "bad", "", points)
		set.Chunks = []model.ChunkMark{{X: 0, Z: 0, Type: "lava"}}

		_, err := repo.Create(ctx, set)
		assert.Error(t, err)
	})
}

func TestSchemaVersion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container in short mode")
	}
	pool := testutil.SetupTestDB(t)
	ctx := testutil.Context(t)

	dsn := pool.Config().ConnString()
	v, err := db.SchemaVersion(ctx, dsn)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestNew(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.Context(t)

	d, err := db.New(ctx, pool.Config().ConnString(), 2)
	require.NoError(t, err)
	defer d.Close()

	sets, err := d.CoordinateSets().List(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, sets)
}

func TestNewInvalidDSN(t *testing.T) {
	_, err := db.New(testutil.Context(t), "postgres://%zz", 0)
	assert.Error(t, err)
}
