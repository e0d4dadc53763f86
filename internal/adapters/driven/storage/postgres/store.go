// Package postgres implements the menu store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/custodia-labs/menumem/internal/core/ports/driven"
	"github.com/custodia-labs/menumem/internal/logger"
)

// Store owns the connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to dsn and creates the schema if missing.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing dsn: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.initSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initialising schema: %w", err)
	}
	logger.Debug("Connected to PostgreSQL")
	return s, nil
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// MenuStore returns a MenuStore backed by this pool.
func (s *Store) MenuStore() driven.MenuStore {
	return &menuStore{pool: s.pool}
}

func (s *Store) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS dishes (
			seq BIGSERIAL UNIQUE,
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL CHECK (name <> ''),
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT 'Uncategorized',
			price DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (price >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS ingredients (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS dish_ingredients (
			seq BIGSERIAL UNIQUE,
			dish_id TEXT NOT NULL REFERENCES dishes(id) ON DELETE CASCADE,
			ingredient_id TEXT NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
			PRIMARY KEY (dish_id, ingredient_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_dishes_category ON dishes(category)`,
		`CREATE INDEX IF NOT EXISTS idx_dish_ingredients_ingredient ON dish_ingredients(ingredient_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
