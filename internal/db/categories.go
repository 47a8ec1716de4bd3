package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-board/internal/apperr"
)

// ListCategories retrieves all categories with their live job counts.
func (db *DB) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT c.id, c.name, c.slug, COUNT(j.id), c.created_at
		 FROM categories c
		 LEFT JOIN jobs j ON j.category_id = c.id
		 GROUP BY c.id
		 ORDER BY c.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.JobCount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetCategory retrieves one category. Returns nil without an error when
// absent.
func (db *DB) GetCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	var c Category
	err := db.pool.QueryRow(ctx,
		`SELECT c.id, c.name, c.slug, COUNT(j.id), c.created_at
		 FROM categories c
		 LEFT JOIN jobs j ON j.category_id = c.id
		 WHERE c.id = $1
		 GROUP BY c.id`,
		id,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.JobCount, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &c, nil
}

// CreateCategory inserts a category.
func (db *DB) CreateCategory(ctx context.Context, name, slug string) (*Category, error) {
	var c Category
	err := db.pool.QueryRow(ctx,
		`INSERT INTO categories (name, slug)
		 VALUES ($1, $2)
		 RETURNING id, name, slug, created_at`,
		name, slug,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &c, nil
}

// DeleteCategory removes a category. Deletion is blocked while any job
// still references it.
func (db *DB) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	var jobCount int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs WHERE category_id = $1`, id,
	).Scan(&jobCount)
	if err != nil {
		return fmt.Errorf("failed to count category jobs: %w", err)
	}
	if jobCount > 0 {
		return apperr.BadRequest("category still has %d jobs", jobCount)
	}

	tag, err := db.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("category not found: %s", id)
	}
	return nil
}
