package types

import (
	"github.com/go-playground/validator/v10"
)

// CreateJobRequest represents the request to post a new listing.
type CreateJobRequest struct {
	CompanyName  string  `json:"company_name" validate:"required,min=1"`
	CompanyEmail string  `json:"company_email" validate:"required,email"`
	Position     string  `json:"position" validate:"required,min=1"`
	Description  string  `json:"description,omitempty"`
	CategoryID   string  `json:"category_id" validate:"required,uuid"`
	JobType      string  `json:"job_type" validate:"required,oneof=full_time part_time contract freelance internship"`
	LocationType string  `json:"location_type" validate:"required,oneof=remote hybrid onsite"`
	City         string  `json:"city,omitempty"`
	State        string  `json:"state,omitempty"`
	Country      string  `json:"country,omitempty"`
	Salary       SalaryI `json:"salary" validate:"required"`
	IsPublished  bool    `json:"is_published"`
	IsFeatured   bool    `json:"is_featured"`
}

// SalaryI is the salary input pair: a decimal amount string and the unit.
type SalaryI struct {
	Amount string `json:"amount" validate:"required,numeric"`
	Mode   string `json:"mode" validate:"required,oneof=hourly daily weekly monthly yearly"`
}

// UpdateJobRequest represents a partial job update. Absent fields are
// untouched.
type UpdateJobRequest struct {
	CompanyName  *string  `json:"company_name,omitempty" validate:"omitempty,min=1"`
	CompanyEmail *string  `json:"company_email,omitempty" validate:"omitempty,email"`
	Position     *string  `json:"position,omitempty" validate:"omitempty,min=1"`
	Description  *string  `json:"description,omitempty"`
	CategoryID   *string  `json:"category_id,omitempty" validate:"omitempty,uuid"`
	JobType      *string  `json:"job_type,omitempty" validate:"omitempty,oneof=full_time part_time contract freelance internship"`
	LocationType *string  `json:"location_type,omitempty" validate:"omitempty,oneof=remote hybrid onsite"`
	City         *string  `json:"city,omitempty"`
	State        *string  `json:"state,omitempty"`
	Country      *string  `json:"country,omitempty"`
	Salary       *SalaryI `json:"salary,omitempty"`
	IsPublished  *bool    `json:"is_published,omitempty"`
	IsFeatured   *bool    `json:"is_featured,omitempty"`
	Status       *bool    `json:"status,omitempty"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateJobRequest using the validator.
func (r *UpdateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
