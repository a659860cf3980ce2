package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB — handle хранилища наборов координат поверх pgx pool.
type DB struct {
	pool *pgxpool.Pool
}

// New разбирает dsn, ограничивает pool maxConns соединениями (0 — значение pgx по умолчанию)
// и проверяет соединение.
func New(ctx context.Context, dsn string, maxConns int32) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging %s: %w", cfg.ConnConfig.Host, err)
	}
	return &DB{pool: pool}, nil
}

// Close закрывает pool.
func (d *DB) Close() {
	d.pool.Close()
}

// CoordinateSets возвращает repository поверх общего pool.
func (d *DB) CoordinateSets() *CoordinateSetRepository {
	return NewCoordinateSetRepository(d.pool)
}
