package db

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationJob is the joined job projection on an application row,
// including the job's poster.
type ApplicationJob struct {
	ID          uuid.UUID   `json:"id"`
	Position    string      `json:"position"`
	CompanyName string      `json:"company_name"`
	PostedBy    uuid.UUID   `json:"-"`
	Poster      UserSummary `json:"posted_by"`
}

// Application is an application row with its joined applicant and job.
type Application struct {
	ID          uuid.UUID      `json:"id"`
	JobID       uuid.UUID      `json:"job_id"`
	ApplicantID uuid.UUID      `json:"applicant_id"`
	Status      string         `json:"status"`
	CoverLetter string         `json:"cover_letter,omitempty"`
	Applicant   UserSummary    `json:"applicant"`
	Job         ApplicationJob `json:"job"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ApplicationCreateInput holds the fields for a new application.
type ApplicationCreateInput struct {
	JobID       uuid.UUID
	ApplicantID uuid.UUID
	CoverLetter string
}
