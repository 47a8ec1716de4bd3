package types

import (
	"github.com/go-playground/validator/v10"
)

// CreateCategoryRequest represents an admin creating a job category.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1"`
	Slug string `json:"slug" validate:"required,min=1,lowercase"`
}

// Validate validates the CreateCategoryRequest using the validator.
func (r *CreateCategoryRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
