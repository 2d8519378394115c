package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores a collection as one JSONB row in the collections table.
type Postgres[T any] struct {
	pool *pgxpool.Pool
	key  string
}

// NewPostgres creates a PostgreSQL-backed collection under key.
func NewPostgres[T any](pool *pgxpool.Pool, key string) *Postgres[T] {
	return &Postgres[T]{pool: pool, key: key}
}

// GetAll loads and decodes the collection.
func (p *Postgres[T]) GetAll(ctx context.Context) ([]T, error) {
	var raw []byte
	err := p.pool.QueryRow(ctx, `SELECT data FROM collections WHERE key = $1`, p.key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("load collection %s: %w", p.key, err)
	}

	items := []T{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, p.key, err)
	}
	return items, nil
}

// Save upserts the collection.
func (p *Postgres[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", p.key, err)
	}

	query := `
		INSERT INTO collections (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`
	if _, err := p.pool.Exec(ctx, query, p.key, data); err != nil {
		return fmt.Errorf("save collection %s: %w", p.key, err)
	}
	return nil
}

// Initialized reports whether a row exists for the key.
func (p *Postgres[T]) Initialized(ctx context.Context) (bool, error) {
	var exists bool
	err := p.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM collections WHERE key = $1)`, p.key).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check collection %s: %w", p.key, err)
	}
	return exists, nil
}

var _ Collection[int] = (*Postgres[int])(nil)
