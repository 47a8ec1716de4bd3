package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jonathan/job-board/internal/apperr"
	"github.com/jonathan/job-board/internal/policy"
	"github.com/jonathan/job-board/internal/query"
)

// scanApplication scans one row of the application pipeline projection.
func scanApplication(rows pgx.Rows) (Application, error) {
	var a Application
	err := rows.Scan(
		&a.ID, &a.JobID, &a.ApplicantID, &a.Status, &a.CoverLetter,
		&a.CreatedAt, &a.UpdatedAt,
		&a.Applicant.ID, &a.Applicant.Name, &a.Applicant.Email, &a.Applicant.Role, &a.Applicant.IsVerified,
		&a.Job.Position, &a.Job.CompanyName, &a.Job.PostedBy,
		&a.Job.Poster.ID, &a.Job.Poster.Name, &a.Job.Poster.Email, &a.Job.Poster.Role, &a.Job.Poster.IsVerified,
	)
	if err != nil {
		return Application{}, fmt.Errorf("failed to scan application: %w", err)
	}
	a.Job.ID = a.JobID
	return a, nil
}

// ListApplications executes an application listing in full mode. The scope
// is the only predicate source; it was derived by the visibility policy.
func (db *DB) ListApplications(ctx context.Context, scope policy.ApplicationScope) ([]Application, error) {
	apps, err := collectRows(ctx, db.pool, query.AssembleApplications(scope), scanApplication)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// ListApplicationsPage executes an application listing in paginated mode.
func (db *DB) ListApplicationsPage(ctx context.Context, scope policy.ApplicationScope, pp query.PageParams) (query.Page[Application], error) {
	page, err := paginate(ctx, db.pool, query.AssembleApplications(scope), pp, scanApplication)
	if err != nil {
		return query.Page[Application]{}, fmt.Errorf("failed to list applications: %w", err)
	}
	return page, nil
}

// GetApplication retrieves one application with applicant and job joined.
// Returns nil without an error when absent.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*Application, error) {
	apps, err := collectRows(ctx, db.pool, query.AssembleApplicationByID(id), scanApplication)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if len(apps) == 0 {
		return nil, nil
	}
	return &apps[0], nil
}

// HasApplied reports whether the applicant already has an application for
// the job.
func (db *DB) HasApplied(ctx context.Context, applicantID, jobID uuid.UUID) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE applicant_id = $1 AND job_id = $2)`,
		applicantID, jobID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing application: %w", err)
	}
	return exists, nil
}

// CreateApplication inserts an application. The unique constraint on
// (applicant_id, job_id) backstops the caller's duplicate check; a
// constraint hit maps to the same BAD_REQUEST the check produces.
func (db *DB) CreateApplication(ctx context.Context, input ApplicationCreateInput) (*Application, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_id, applicant_id, cover_letter)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		input.JobID, input.ApplicantID, input.CoverLetter,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperr.BadRequest("already applied to this job")
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return db.GetApplication(ctx, id)
}

// UpdateApplicationStatus sets the status. Transition legality was checked
// by the policy layer.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status policy.Status) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("application not found: %s", id)
	}
	return nil
}
