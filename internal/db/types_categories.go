package db

import (
	"time"

	"github.com/google/uuid"
)

// Category groups job listings. A job belongs to exactly one category.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	JobCount  int       `json:"job_count"`
	CreatedAt time.Time `json:"created_at"`
}
