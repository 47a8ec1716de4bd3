// Package db provides PostgreSQL access for the job board.
package db

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-board/internal/query"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate applies the embedded schema. Statements are idempotent.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// collectRows executes a pipeline in full mode and scans every row.
func collectRows[T any](ctx context.Context, pool *pgxpool.Pool, p *query.Pipeline, scan func(pgx.Rows) (T, error)) ([]T, error) {
	sql, args := p.Rows()
	rows, err := pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// paginate executes a pipeline in paginated mode: the COUNT query and the
// page query run concurrently against the pool, and the results are wrapped
// in the pagination envelope.
func paginate[T any](ctx context.Context, pool *pgxpool.Pool, p *query.Pipeline, pp query.PageParams, scan func(pgx.Rows) (T, error)) (query.Page[T], error) {
	var (
		total int
		docs  []T
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sql, args := p.Count()
		return pool.QueryRow(gctx, sql, args...).Scan(&total)
	})
	g.Go(func() error {
		sql, args := p.PageRows(pp)
		rows, err := pool.Query(gctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			v, err := scan(rows)
			if err != nil {
				return err
			}
			docs = append(docs, v)
		}
		return rows.Err()
	})
	if err := g.Wait(); err != nil {
		return query.Page[T]{}, err
	}

	return query.NewPage(docs, total, pp.Page, pp.Limit), nil
}
