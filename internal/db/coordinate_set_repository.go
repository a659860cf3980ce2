package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/cartpath/internal/geom"
	"github.com/udisondev/cartpath/internal/model"
)

// ErrSetNotFound возвращается, когда набора нет или он принадлежит другому владельцу.
var ErrSetNotFound = errors.New("db: coordinate set not found")

// CoordinateSetRepository хранит наборы координат в PostgreSQL.
type CoordinateSetRepository struct {
	pool *pgxpool.Pool
}

// NewCoordinateSetRepository создаёт новый repository.
func NewCoordinateSetRepository(pool *pgxpool.Pool) *CoordinateSetRepository {
	return &CoordinateSetRepository{pool: pool}
}

// Create сохраняет набор, его точки (в порядке sort) и chunks в одной транзакции.
// Возвращает coordinate_set_id и проставляет его в set.ID.
func (r *CoordinateSetRepository) Create(ctx context.Context, set *model.CoordinateSet) (int64, error) {
	for _, c := range set.Chunks {
		if !c.Type.Valid() {
			return 0, fmt.Errorf("creating coordinate set %q: invalid chunk type %q", set.Name, c.Type)
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction for coordinate set %q: %w", set.Name, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "set", set.Name, "error", err)
		}
	}()

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO coordinate_sets (owner, name, description, created_at, updated_at)
		 VALUES ($1, $2, $3, NOW(), NOW())
		 RETURNING coordinate_set_id, created_at, updated_at`,
		set.Owner, set.Name, nullable(set.Description),
	).Scan(&id, &set.CreatedAt, &set.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("inserting coordinate set %q: %w", set.Name, err)
	}

	coordRows := make([][]any, len(set.Coordinates))
	for i, c := range set.Coordinates {
		coordRows[i] = []any{id, c.Point.X, c.Point.Y, c.Point.Z, nullable(c.Label), nullable(c.Color), c.SegmentID, i}
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"coordinates"},
		[]string{"coordinate_set_id", "x", "y", "z", "label", "color", "segment_id", "sort"},
		pgx.CopyFromRows(coordRows),
	); err != nil {
		return 0, fmt.Errorf("copying coordinates for set %d: %w", id, err)
	}

	chunkRows := make([][]any, len(set.Chunks))
	for i, c := range set.Chunks {
		chunkRows[i] = []any{id, c.X, c.Z, string(c.Type)}
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"chunks"},
		[]string{"coordinate_set_id", "chunk_x", "chunk_z", "chunk_type"},
		pgx.CopyFromRows(chunkRows),
	); err != nil {
		return 0, fmt.Errorf("copying chunks for set %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit coordinate set %q: %w", set.Name, err)
	}

	set.ID = id
	return id, nil
}

// List возвращает наборы владельца, последние изменённые первыми.
func (r *CoordinateSetRepository) List(ctx context.Context, owner string) ([]model.CoordinateSetSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT cs.coordinate_set_id, cs.name, COALESCE(cs.description, ''), cs.created_at, cs.updated_at,
		        (SELECT COUNT(*) FROM coordinates c WHERE c.coordinate_set_id = cs.coordinate_set_id)
		 FROM coordinate_sets cs
		 WHERE cs.owner = $1
		 ORDER BY cs.updated_at DESC, cs.coordinate_set_id DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("listing coordinate sets for %q: %w", owner, err)
	}
	defer rows.Close()

	var out []model.CoordinateSetSummary
	for rows.Next() {
		var s model.CoordinateSetSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt, &s.CoordinateCount); err != nil {
			return nil, fmt.Errorf("scanning coordinate set row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating coordinate set rows: %w", err)
	}
	return out, nil
}

// Load загружает набор вместе с точками и chunks.
// Возвращает ErrSetNotFound, если набор не найден у владельца.
func (r *CoordinateSetRepository) Load(ctx context.Context, id int64, owner string) (*model.CoordinateSet, error) {
	set := &model.CoordinateSet{ID: id, Owner: owner}
	err := r.pool.QueryRow(ctx,
		`SELECT name, COALESCE(description, ''), created_at, updated_at
		 FROM coordinate_sets
		 WHERE coordinate_set_id = $1 AND owner = $2`, id, owner,
	).Scan(&set.Name, &set.Description, &set.CreatedAt, &set.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("loading coordinate set %d: %w", id, ErrSetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading coordinate set %d: %w", id, err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT x, y, z, COALESCE(label, ''), COALESCE(color, ''), segment_id
		 FROM coordinates
		 WHERE coordinate_set_id = $1
		 ORDER BY sort ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("loading coordinates of set %d: %w", id, err)
	}
	set.Coordinates, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Coordinate, error) {
		var c model.Coordinate
		var x, y, z int32
		var seg *int32
		if err := row.Scan(&x, &y, &z, &c.Label, &c.Color, &seg); err != nil {
			return c, err
		}
		c.Point = geom.P(int(x), int(y), int(z))
		if seg != nil {
			v := int(*seg)
			c.SegmentID = &v
		}
		return c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning coordinates of set %d: %w", id, err)
	}

	rows, err = r.pool.Query(ctx,
		`SELECT chunk_x, chunk_z, chunk_type
		 FROM chunks
		 WHERE coordinate_set_id = $1
		 ORDER BY chunk_type, chunk_x, chunk_z`, id)
	if err != nil {
		return nil, fmt.Errorf("loading chunks of set %d: %w", id, err)
	}
	set.Chunks, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ChunkMark, error) {
		var x, z int32
		var typ string
		if err := row.Scan(&x, &z, &typ); err != nil {
			return model.ChunkMark{}, err
		}
		return model.ChunkMark{X: int(x), Z: int(z), Type: model.ChunkType(typ)}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning chunks of set %d: %w", id, err)
	}

	return set, nil
}

// Delete удаляет набор владельца; точки и chunks удаляются каскадом.
func (r *CoordinateSetRepository) Delete(ctx context.Context, id int64, owner string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM coordinate_sets WHERE coordinate_set_id = $1 AND owner = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("deleting coordinate set %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting coordinate set %d: %w", id, ErrSetNotFound)
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
