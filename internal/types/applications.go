package types

import (
	"github.com/go-playground/validator/v10"
)

// CreateApplicationRequest represents a seeker applying to a job.
type CreateApplicationRequest struct {
	CoverLetter string `json:"cover_letter,omitempty" validate:"max=10000"`
}

// UpdateApplicationStatusRequest represents a status transition request.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed hired rejected"`
}

// Validate validates the CreateApplicationRequest using the validator.
func (r *CreateApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateApplicationStatusRequest using the validator.
func (r *UpdateApplicationStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
