package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-board/internal/policy"
	"github.com/jonathan/job-board/internal/query"
)

// scanJob scans one row of the job pipeline projection.
func scanJob(rows pgx.Rows) (Job, error) {
	var (
		j            Job
		categoryID   *uuid.UUID
		categoryName *string
		categorySlug *string
	)
	err := rows.Scan(
		&j.ID, &j.CompanyName, &j.CompanyEmail, &j.Position, &j.Description,
		&categoryID, &categoryName, &categorySlug,
		&j.JobType, &j.LocationType, &j.Location.City, &j.Location.State, &j.Location.Country,
		&j.Salary.Amount, &j.Salary.Mode,
		&j.IsPublished, &j.IsFeatured, &j.Status,
		&j.CreatedAt, &j.UpdatedAt,
		&j.Poster.ID, &j.Poster.Name, &j.Poster.Email, &j.Poster.Role, &j.Poster.IsVerified,
	)
	if err != nil {
		return Job{}, fmt.Errorf("failed to scan job: %w", err)
	}
	if categoryID != nil && categoryName != nil && categorySlug != nil {
		j.Category = &CategoryRef{ID: *categoryID, Name: *categoryName, Slug: *categorySlug}
	}
	return j, nil
}

// ListJobs executes a job listing in full mode.
func (db *DB) ListJobs(ctx context.Context, f query.JobFilter, scope policy.JobScope) ([]Job, error) {
	jobs, err := collectRows(ctx, db.pool, query.AssembleJobs(f, scope), scanJob)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// ListJobsPage executes a job listing in paginated mode.
func (db *DB) ListJobsPage(ctx context.Context, f query.JobFilter, scope policy.JobScope, pp query.PageParams) (query.Page[Job], error) {
	page, err := paginate(ctx, db.pool, query.AssembleJobs(f, scope), pp, scanJob)
	if err != nil {
		return query.Page[Job]{}, fmt.Errorf("failed to list jobs: %w", err)
	}
	return page, nil
}

// GetJob retrieves one job with its poster and category joined. Returns
// nil without an error when the job does not exist.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	jobs, err := collectRows(ctx, db.pool, query.AssembleJobByID(id), scanJob)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if len(jobs) == 0 {
		return nil, nil
	}
	return &jobs[0], nil
}

// CreateJob inserts a listing and returns it with joins resolved.
func (db *DB) CreateJob(ctx context.Context, input JobCreateInput) (*Job, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (company_name, company_email, position, description, category_id,
		                   job_type, location_type, city, state, country,
		                   salary_amount, salary_mode, is_published, is_featured, posted_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING id`,
		input.CompanyName, input.CompanyEmail, input.Position, input.Description, input.CategoryID,
		input.JobType, input.LocationType, input.Location.City, input.Location.State,
		strings.ToUpper(input.Location.Country),
		input.SalaryAmount, input.SalaryMode, input.IsPublished, input.IsFeatured, input.PostedBy,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return db.GetJob(ctx, id)
}

// UpdateJob applies the non-nil fields of input. No-op when every field is
// nil.
func (db *DB) UpdateJob(ctx context.Context, id uuid.UUID, input JobUpdateInput) error {
	var sets []string
	var args []any
	argIndex := 1

	set := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if input.CompanyName != nil {
		set("company_name", *input.CompanyName)
	}
	if input.CompanyEmail != nil {
		set("company_email", *input.CompanyEmail)
	}
	if input.Position != nil {
		set("position", *input.Position)
	}
	if input.Description != nil {
		set("description", *input.Description)
	}
	if input.CategoryID != nil {
		set("category_id", *input.CategoryID)
	}
	if input.JobType != nil {
		set("job_type", *input.JobType)
	}
	if input.LocationType != nil {
		set("location_type", *input.LocationType)
	}
	if input.City != nil {
		set("city", *input.City)
	}
	if input.State != nil {
		set("state", *input.State)
	}
	if input.Country != nil {
		set("country", strings.ToUpper(*input.Country))
	}
	if input.SalaryAmount != nil {
		set("salary_amount", *input.SalaryAmount)
	}
	if input.SalaryMode != nil {
		set("salary_mode", *input.SalaryMode)
	}
	if input.IsPublished != nil {
		set("is_published", *input.IsPublished)
	}
	if input.IsFeatured != nil {
		set("is_featured", *input.IsFeatured)
	}
	if input.Status != nil {
		set("status", *input.Status)
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE jobs SET %s WHERE id = $%d", strings.Join(sets, ", "), argIndex)

	if _, err := db.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	return nil
}

// DeleteJob removes a listing and its applications. The cleanup is an
// explicit two-statement transaction, not a database cascade.
func (db *DB) DeleteJob(ctx context.Context, id uuid.UUID) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM applications WHERE job_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete job applications: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SweepExpiredJobs unpublishes listings older than maxAgeDays. Used by the
// nightly scheduler; returns how many rows were touched.
func (db *DB) SweepExpiredJobs(ctx context.Context, maxAgeDays int) (int64, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs SET is_published = FALSE, updated_at = NOW()
		 WHERE is_published = TRUE
		   AND created_at < NOW() - make_interval(days => $1)`,
		maxAgeDays,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}
