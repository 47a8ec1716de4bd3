// Package query builds the filtered, role-scoped job and application
// queries: predicate construction, salary normalization, pipeline assembly,
// and the pagination envelope.
package query

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Condition is one predicate on a job listing. The concrete variants below
// are the only ways to constrain a listing; they compose by conjunction.
type Condition interface {
	// appendTo renders the condition into the builder's WHERE clause.
	appendTo(b *builder)
}

// PositionContains matches the job position by case-insensitive substring.
type PositionContains struct{ Text string }

// CategoryIs matches jobs in exactly one category.
type CategoryIs struct{ ID uuid.UUID }

// PostedByIs matches jobs owned by one poster.
type PostedByIs struct{ ID uuid.UUID }

// TypeIn matches jobs whose employment type is one of the given set.
type TypeIn struct{ Types []string }

// LocationTypeIn matches jobs whose location type is one of the given set.
type LocationTypeIn struct{ Types []string }

// CountryIs matches the location country code, upper-cased.
type CountryIs struct{ Code string }

// FeaturedOnly restricts to featured jobs.
type FeaturedOnly struct{}

// PublishedIs restricts by the publication flag.
type PublishedIs struct{ Published bool }

// SalaryRange constrains the annualized salary. It is applied against the
// derived yearly value, never against the stored amount.
type SalaryRange struct{ Min, Max *float64 }

func (c PositionContains) appendTo(b *builder) {
	b.where("j.position ILIKE "+b.arg("%"+c.Text+"%"))
}

func (c CategoryIs) appendTo(b *builder) {
	b.where("j.category_id = "+b.arg(c.ID))
}

func (c PostedByIs) appendTo(b *builder) {
	b.where("j.posted_by = "+b.arg(c.ID))
}

func (c TypeIn) appendTo(b *builder) {
	b.where("j.job_type = ANY("+b.arg(c.Types)+")")
}

func (c LocationTypeIn) appendTo(b *builder) {
	b.where("j.location_type = ANY("+b.arg(c.Types)+")")
}

func (c CountryIs) appendTo(b *builder) {
	b.where("j.country = "+b.arg(strings.ToUpper(c.Code)))
}

func (c FeaturedOnly) appendTo(b *builder) {
	b.where("j.is_featured = TRUE")
}

func (c PublishedIs) appendTo(b *builder) {
	b.where("j.is_published = "+b.arg(c.Published))
}

func (c SalaryRange) appendTo(b *builder) {
	// Rendered against the derived annual value; the expression lives only
	// in the WHERE clause, so the normalized salary never reaches output.
	if c.Min != nil {
		b.where(annualSalaryExpr+" >= "+b.arg(*c.Min))
	}
	if c.Max != nil {
		b.where(annualSalaryExpr+" <= "+b.arg(*c.Max))
	}
}

// JobFilter is an immutable set of AND-ed conditions built once per request.
type JobFilter struct {
	conditions []Condition
}

// Conditions returns the predicate set in construction order.
func (f JobFilter) Conditions() []Condition { return f.conditions }

// JobListParams holds the decoded, type-validated query parameters for a
// job listing. Numeric parsing, enum membership, id shape checks, and
// percent-decoding of the multi-value fields all happen upstream.
type JobListParams struct {
	Name          string
	Category      *uuid.UUID
	PostedBy      *uuid.UUID
	Types         []string
	LocationTypes []string
	Country       string
	Featured      bool // set only when the parameter was exactly "true"
	Published     *bool
	MinSalary     *float64
	MaxSalary     *float64
}

// BuildJobFilter translates listing parameters into the predicate set.
// Absent parameters impose no constraint.
func BuildJobFilter(p JobListParams) JobFilter {
	var conds []Condition
	if p.Name != "" {
		conds = append(conds, PositionContains{Text: p.Name})
	}
	if p.Category != nil {
		conds = append(conds, CategoryIs{ID: *p.Category})
	}
	if p.PostedBy != nil {
		conds = append(conds, PostedByIs{ID: *p.PostedBy})
	}
	if len(p.Types) > 0 {
		conds = append(conds, TypeIn{Types: p.Types})
	}
	if len(p.LocationTypes) > 0 {
		conds = append(conds, LocationTypeIn{Types: p.LocationTypes})
	}
	if p.Country != "" {
		conds = append(conds, CountryIs{Code: p.Country})
	}
	if p.Featured {
		conds = append(conds, FeaturedOnly{})
	}
	if p.Published != nil {
		conds = append(conds, PublishedIs{Published: *p.Published})
	}
	if p.MinSalary != nil || p.MaxSalary != nil {
		conds = append(conds, SalaryRange{Min: p.MinSalary, Max: p.MaxSalary})
	}
	return JobFilter{conditions: conds}
}

// builder accumulates SQL fragments with positional arguments.
type builder struct {
	clauses []string
	args    []any
}

// arg registers a query argument and returns its placeholder.
func (b *builder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// where appends a WHERE clause fragment.
func (b *builder) where(clause string) {
	b.clauses = append(b.clauses, clause)
}

func (b *builder) whereSQL() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.clauses, "\n  AND ")
}
