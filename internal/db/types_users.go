package db

import (
	"time"

	"github.com/google/uuid"
)

// User is the full users row. The password hash never serializes to JSON.
type User struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone,omitempty"`
	Role               string    `json:"role"`
	PasswordHash       string    `json:"-"`
	Status             bool      `json:"status"`
	IsVerified         bool      `json:"is_verified"`
	IsRestricted       bool      `json:"is_restricted"`
	IsProfileCompleted bool      `json:"is_profile_completed"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// UserSummary is the projection used wherever a user row is joined into a
// job or application result. It deliberately carries no password hash and
// no updated_at, in every join path.
type UserSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
}

// UserProfileUpdate holds optional self-service profile updates.
type UserProfileUpdate struct {
	Name               *string
	Phone              *string
	IsProfileCompleted *bool
}

// UserModerationUpdate holds the only fields an admin may touch on another
// user's record.
type UserModerationUpdate struct {
	Status       *bool
	IsRestricted *bool
}
