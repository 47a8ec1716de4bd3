package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-board/internal/apperr"
	"github.com/jonathan/job-board/internal/policy"
	"github.com/jonathan/job-board/internal/query"
)

// setupTestDB connects to the database named by TEST_DATABASE_URL and applies
// the schema. Skipped when the variable is unset or the connection fails.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *DB, role string) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	email := "test-" + uuid.NewString() + "@example.com"
	id, err := db.CreateUser(ctx, "Test "+role, email, "555-0100", role)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = db.pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	})
	return id
}

func createTestCategory(t *testing.T, db *DB) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	slug := "test-" + uuid.NewString()
	category, err := db.CreateCategory(ctx, "Test Category", slug)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = db.pool.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, category.ID)
	})
	return category.ID
}

func createTestJob(t *testing.T, db *DB, posterID, categoryID uuid.UUID, position, amount, mode string, published bool) *Job {
	t.Helper()
	ctx := context.Background()

	job, err := db.CreateJob(ctx, JobCreateInput{
		CompanyName:  "Acme",
		CompanyEmail: "hr@acme.example",
		Position:     position,
		Description:  "integration fixture",
		CategoryID:   categoryID,
		JobType:      JobTypeFullTime,
		LocationType: LocationRemote,
		Location:     Location{Country: "us"},
		SalaryAmount: amount,
		SalaryMode:   mode,
		IsPublished:  published,
		PostedBy:     posterID,
	})
	require.NoError(t, err)
	require.NotNil(t, job)
	t.Cleanup(func() {
		_, _ = db.pool.Exec(context.Background(), `DELETE FROM applications WHERE job_id = $1`, job.ID)
		_, _ = db.pool.Exec(context.Background(), `DELETE FROM jobs WHERE id = $1`, job.ID)
	})
	return job
}

func TestIntegration_DuplicateApplication(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	posterID := createTestUser(t, db, "poster")
	seekerID := createTestUser(t, db, "seeker")
	categoryID := createTestCategory(t, db)
	job := createTestJob(t, db, posterID, categoryID, "Backend Engineer", "90000", "yearly", true)

	applied, err := db.HasApplied(ctx, seekerID, job.ID)
	require.NoError(t, err)
	assert.False(t, applied)

	app, err := db.CreateApplication(ctx, ApplicationCreateInput{
		JobID:       job.ID,
		ApplicantID: seekerID,
		CoverLetter: "first submission",
	})
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, "pending", app.Status)
	assert.Equal(t, posterID, app.Job.PostedBy)

	applied, err = db.HasApplied(ctx, seekerID, job.ID)
	require.NoError(t, err)
	assert.True(t, applied)

	// Inserting again goes straight to the unique constraint, the path a
	// racing request would take past the HasApplied check.
	_, err = db.CreateApplication(ctx, ApplicationCreateInput{
		JobID:       job.ID,
		ApplicantID: seekerID,
		CoverLetter: "second submission",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestIntegration_SalaryRangeAnnualized(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	posterID := createTestUser(t, db, "poster")
	categoryID := createTestCategory(t, db)

	// 50/hourly annualizes to 104000; 90000/yearly stays 90000.
	hourly := createTestJob(t, db, posterID, categoryID, "Hourly Role", "50", "hourly", true)
	yearly := createTestJob(t, db, posterID, categoryID, "Yearly Role", "90000", "yearly", true)

	scope := policy.JobScope{PostedBy: &posterID}
	list := func(p query.JobListParams) []uuid.UUID {
		jobs, err := db.ListJobs(ctx, query.BuildJobFilter(p), scope)
		require.NoError(t, err)
		ids := make([]uuid.UUID, len(jobs))
		for i, j := range jobs {
			ids[i] = j.ID
		}
		return ids
	}
	f := func(v float64) *float64 { return &v }

	// minSalary filters on the derived annual value, not the stored amount.
	ids := list(query.JobListParams{MinSalary: f(100000)})
	assert.Contains(t, ids, hourly.ID)
	assert.NotContains(t, ids, yearly.ID)

	ids = list(query.JobListParams{MaxSalary: f(100000)})
	assert.NotContains(t, ids, hourly.ID)
	assert.Contains(t, ids, yearly.ID)

	// Bounds are inclusive at the exact annualized value.
	ids = list(query.JobListParams{MinSalary: f(104000), MaxSalary: f(104000)})
	assert.Contains(t, ids, hourly.ID)
	assert.NotContains(t, ids, yearly.ID)
}

func TestIntegration_JobVisibilityScopes(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	posterID := createTestUser(t, db, "poster")
	categoryID := createTestCategory(t, db)

	marker := "vis-" + uuid.NewString()
	published := createTestJob(t, db, posterID, categoryID, marker+" published", "80000", "yearly", true)
	draft := createTestJob(t, db, posterID, categoryID, marker+" draft", "80000", "yearly", false)

	filter := query.BuildJobFilter(query.JobListParams{Name: marker})

	// Anonymous callers only see published listings.
	jobs, err := db.ListJobs(ctx, filter, policy.JobListScope(nil, nil))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, published.ID, jobs[0].ID)

	// The owning poster sees drafts through the self scope.
	actor := policy.Actor{ID: posterID, Role: policy.RolePoster}
	jobs, err = db.ListJobs(ctx, filter, policy.JobListScope(&actor, &posterID))
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	ids := []uuid.UUID{jobs[0].ID, jobs[1].ID}
	assert.Contains(t, ids, published.ID)
	assert.Contains(t, ids, draft.ID)

	// Rows never carry the poster's password hash or phone.
	for _, j := range jobs {
		assert.NotEmpty(t, j.Poster.Name)
		assert.NotEmpty(t, j.Poster.Email)
	}
}

func TestIntegration_ApplicationVisibilityScopes(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	posterA := createTestUser(t, db, "poster")
	posterB := createTestUser(t, db, "poster")
	seekerID := createTestUser(t, db, "seeker")
	categoryID := createTestCategory(t, db)

	jobA := createTestJob(t, db, posterA, categoryID, "Role A", "80000", "yearly", true)
	jobB := createTestJob(t, db, posterB, categoryID, "Role B", "80000", "yearly", true)

	for _, jobID := range []uuid.UUID{jobA.ID, jobB.ID} {
		_, err := db.CreateApplication(ctx, ApplicationCreateInput{JobID: jobID, ApplicantID: seekerID})
		require.NoError(t, err)
	}

	// Poster A sees only applications to their own jobs.
	scopeA, err := policy.ApplicationListScope(policy.Actor{ID: posterA, Role: policy.RolePoster}, nil, nil)
	require.NoError(t, err)
	apps, err := db.ListApplications(ctx, scopeA)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, jobA.ID, apps[0].JobID)

	// The seeker sees both of their applications, paginated.
	scopeS, err := policy.ApplicationListScope(policy.Actor{ID: seekerID, Role: policy.RoleSeeker}, nil, nil)
	require.NoError(t, err)
	page, err := db.ListApplicationsPage(ctx, scopeS, query.PageParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalDocs)
	assert.Len(t, page.Docs, 2)
	for _, a := range page.Docs {
		assert.Equal(t, seekerID, a.ApplicantID)
	}
}

func TestIntegration_ListUsersPage(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		createTestUser(t, db, "seeker")
	}

	page, err := db.ListUsersPage(ctx, query.PageParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, page.TotalDocs, 3)
	assert.Len(t, page.Docs, 2)
	assert.True(t, page.HasNextPage)
}
