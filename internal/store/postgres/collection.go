// Package postgres stores catalog collections as JSONB documents, one table
// per collection.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/catalog/internal/platform/db"
	"github.com/odyssey-erp/catalog/internal/resource"
)

// Collection is a resource.Repository backed by a single table shaped
// (id TEXT PRIMARY KEY, doc JSONB, created_at, updated_at).
type Collection[T resource.Entity[T]] struct {
	pool  *pgxpool.Pool
	table string
}

// NewCollection binds a collection to table. The table name is quoted, so it
// must be the bare identifier.
func NewCollection[T resource.Entity[T]](pool *pgxpool.Pool, table string) *Collection[T] {
	return &Collection[T]{pool: pool, table: pgx.Identifier{table}.Sanitize()}
}

// Migrate creates the backing tables when they do not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool, tables ...string) error {
	return db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		for _, table := range tables {
			if _, err := tx.Exec(ctx, schemaSQL(pgx.Identifier{table}.Sanitize())); err != nil {
				return fmt.Errorf("store/postgres: create %s: %w", table, err)
			}
		}
		return nil
	})
}

func schemaSQL(table string) string {
	return `CREATE TABLE IF NOT EXISTS ` + table + ` (
	id         TEXT PRIMARY KEY,
	doc        JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
}

func (c *Collection[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := c.pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+c.table).Scan(&n); err != nil {
		return 0, fmt.Errorf("store/postgres: count %s: %w", c.table, err)
	}
	return n, nil
}

func (c *Collection[T]) FindAll(ctx context.Context) ([]T, error) {
	rows, err := c.pool.Query(ctx, `SELECT doc FROM `+c.table+` ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("store/postgres: list %s: %w", c.table, err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("store/postgres: scan %s: %w", c.table, err)
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("store/postgres: decode %s: %w", c.table, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, bool, error) {
	var item T
	var raw []byte
	err := c.pool.QueryRow(ctx, `SELECT doc FROM `+c.table+` WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return item, false, nil
	}
	if err != nil {
		return item, false, fmt.Errorf("store/postgres: get %s/%s: %w", c.table, id, err)
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, false, fmt.Errorf("store/postgres: decode %s/%s: %w", c.table, id, err)
	}
	return item, true, nil
}

// Save upserts entity, generating a UUID when it has no id yet.
func (c *Collection[T]) Save(ctx context.Context, entity T) (T, error) {
	var zero T
	id := entity.GetID()
	if id == "" {
		id = uuid.NewString()
		entity = entity.WithID(id)
	}
	raw, err := json.Marshal(entity)
	if err != nil {
		return zero, fmt.Errorf("store/postgres: encode %s/%s: %w", c.table, id, err)
	}
	now := time.Now()
	_, err = c.pool.Exec(ctx, `INSERT INTO `+c.table+` (id, doc, created_at, updated_at) VALUES ($1, $2, $3, $3)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`, id, raw, now)
	if err != nil {
		return zero, fmt.Errorf("store/postgres: save %s/%s: %w", c.table, id, err)
	}
	return entity, nil
}

func (c *Collection[T]) SaveAll(ctx context.Context, in <-chan T) <-chan resource.Result[T] {
	return resource.SaveEach(ctx, in, c.Save)
}
