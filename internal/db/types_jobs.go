package db

import (
	"time"

	"github.com/google/uuid"
)

// Job employment types.
const (
	JobTypeFullTime   = "full_time"
	JobTypePartTime   = "part_time"
	JobTypeContract   = "contract"
	JobTypeFreelance  = "freelance"
	JobTypeInternship = "internship"
)

// Job location types.
const (
	LocationRemote = "remote"
	LocationHybrid = "hybrid"
	LocationOnsite = "onsite"
)

// JobTypes lists the valid employment type values.
var JobTypes = []string{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeFreelance, JobTypeInternship}

// LocationTypes lists the valid location type values.
var LocationTypes = []string{LocationRemote, LocationHybrid, LocationOnsite}

// Location is where a job is based.
type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// Salary is the advertised compensation: a decimal amount and the unit it
// is quoted in. The annualized value is derived at query time and never
// stored or returned.
type Salary struct {
	Amount string `json:"amount"`
	Mode   string `json:"mode"`
}

// CategoryRef is the joined category projection on a job row.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// Job is a listing row with its joined poster and category.
type Job struct {
	ID           uuid.UUID    `json:"id"`
	CompanyName  string       `json:"company_name"`
	CompanyEmail string       `json:"company_email"`
	Position     string       `json:"position"`
	Description  string       `json:"description"`
	Category     *CategoryRef `json:"category,omitempty"`
	JobType      string       `json:"job_type"`
	LocationType string       `json:"location_type"`
	Location     Location     `json:"location"`
	Salary       Salary       `json:"salary"`
	IsPublished  bool         `json:"is_published"`
	IsFeatured   bool         `json:"is_featured"`
	Status       bool         `json:"status"`
	Poster       UserSummary  `json:"posted_by"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// JobDetail is a job plus its applications, returned to the owning poster.
type JobDetail struct {
	Job
	Applications []Application `json:"applications,omitempty"`
}

// JobCreateInput holds the fields for a new listing.
type JobCreateInput struct {
	CompanyName  string
	CompanyEmail string
	Position     string
	Description  string
	CategoryID   uuid.UUID
	JobType      string
	LocationType string
	Location     Location
	SalaryAmount string
	SalaryMode   string
	IsPublished  bool
	IsFeatured   bool
	PostedBy     uuid.UUID
}

// JobUpdateInput holds optional field updates; nil fields are untouched.
type JobUpdateInput struct {
	CompanyName  *string
	CompanyEmail *string
	Position     *string
	Description  *string
	CategoryID   *uuid.UUID
	JobType      *string
	LocationType *string
	City         *string
	State        *string
	Country      *string
	SalaryAmount *string
	SalaryMode   *string
	IsPublished  *bool
	IsFeatured   *bool
	Status       *bool
}
