package query

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/job-board/internal/policy"
)

// Join and projection stages are defined once and shared by every execution
// path (list, paginated, single record), so the sensitive-field stripping
// below holds everywhere: joined user rows expose only the summary columns,
// never password_hash or updated_at.

const posterJoin = `JOIN users u ON u.id = j.posted_by`

const jobSelect = `SELECT j.id, j.company_name, j.company_email, j.position, j.description,
       j.category_id, c.name, c.slug,
       j.job_type, j.location_type, j.city, j.state, j.country,
       j.salary_amount::text, j.salary_mode,
       j.is_published, j.is_featured, j.status,
       j.created_at, j.updated_at,
       u.id, u.name, u.email, u.role, u.is_verified
FROM jobs j
` + posterJoin + `
LEFT JOIN categories c ON c.id = j.category_id`

const jobCount = `SELECT COUNT(*)
FROM jobs j
` + posterJoin + `
LEFT JOIN categories c ON c.id = j.category_id`

const applicationSelect = `SELECT a.id, a.job_id, a.applicant_id, a.status, a.cover_letter,
       a.created_at, a.updated_at,
       ap.id, ap.name, ap.email, ap.role, ap.is_verified,
       j.position, j.company_name, j.posted_by,
       p.id, p.name, p.email, p.role, p.is_verified
FROM applications a
JOIN users ap ON ap.id = a.applicant_id
JOIN jobs j ON j.id = a.job_id
JOIN users p ON p.id = j.posted_by`

const applicationCount = `SELECT COUNT(*)
FROM applications a
JOIN jobs j ON j.id = a.job_id`

// Pipeline is one assembled query: the row query, its COUNT twin, and the
// shared argument list. Stages were merged in a fixed order, so assembly is
// deterministic for a given filter and scope.
type Pipeline struct {
	selectSQL string
	countSQL  string
	whereSQL  string
	orderSQL  string
	args      []any
}

// Rows returns the full-mode query: every matching row, ordered.
func (p *Pipeline) Rows() (string, []any) {
	return p.selectSQL + "\n" + p.whereSQL + p.orderSQL, p.args
}

// PageRows returns the paginated query for one page. The pagination
// arguments extend the filter arguments; the underlying stages are the
// same ones Rows uses.
func (p *Pipeline) PageRows(pp PageParams) (string, []any) {
	args := append(append([]any{}, p.args...), pp.Limit, pp.Offset())
	sql := p.selectSQL + "\n" + p.whereSQL + p.orderSQL +
		fmt.Sprintf("\nLIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return sql, args
}

// Count returns the totalDocs query over the same predicate set.
func (p *Pipeline) Count() (string, []any) {
	return p.countSQL + "\n" + p.whereSQL, p.args
}

// AssembleJobs composes a job listing pipeline in order: explicit filter
// conditions, the derived-salary range comparison, the visibility scope,
// the poster and category joins, and the stable newest-first sort.
func AssembleJobs(f JobFilter, scope policy.JobScope) *Pipeline {
	b := &builder{}
	for _, c := range f.Conditions() {
		c.appendTo(b)
	}
	if scope.PostedBy != nil {
		PostedByIs{ID: *scope.PostedBy}.appendTo(b)
	}
	if scope.PublishedOnly {
		PublishedIs{Published: true}.appendTo(b)
	}
	return &Pipeline{
		selectSQL: jobSelect,
		countSQL:  jobCount,
		whereSQL:  b.whereSQL(),
		orderSQL:  "\nORDER BY j.created_at DESC",
		args:      b.args,
	}
}

// AssembleJobByID composes the single-record job pipeline. Same joins and
// projection as the listing, keyed by id, no sort.
func AssembleJobByID(id uuid.UUID) *Pipeline {
	b := &builder{}
	b.where("j.id = " + b.arg(id))
	return &Pipeline{
		selectSQL: jobSelect,
		countSQL:  jobCount,
		whereSQL:  b.whereSQL(),
		args:      b.args,
	}
}

// AssembleApplications composes an application listing pipeline from the
// visibility scope. The scope is the only predicate source: explicit aId/jId
// narrowing was already folded into it by the policy layer.
func AssembleApplications(scope policy.ApplicationScope) *Pipeline {
	b := &builder{}
	if scope.JobID != nil {
		b.where("a.job_id = " + b.arg(*scope.JobID))
	}
	if scope.ApplicantID != nil {
		b.where("a.applicant_id = " + b.arg(*scope.ApplicantID))
	}
	if scope.JobPostedBy != nil {
		b.where("j.posted_by = " + b.arg(*scope.JobPostedBy))
	}
	return &Pipeline{
		selectSQL: applicationSelect,
		countSQL:  applicationCount,
		whereSQL:  b.whereSQL(),
		orderSQL:  "\nORDER BY a.created_at DESC",
		args:      b.args,
	}
}

// AssembleApplicationByID composes the single-record application pipeline.
func AssembleApplicationByID(id uuid.UUID) *Pipeline {
	b := &builder{}
	b.where("a.id = " + b.arg(id))
	return &Pipeline{
		selectSQL: applicationSelect,
		countSQL:  applicationCount,
		whereSQL:  b.whereSQL(),
		args:      b.args,
	}
}
