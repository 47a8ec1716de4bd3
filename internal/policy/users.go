package policy

import (
	"github.com/google/uuid"

	"github.com/jonathan/job-board/internal/apperr"
)

// Fields an admin may touch on another user's record.
var adminUpdatableFields = map[string]bool{
	"status":       true,
	"isRestricted": true,
}

// ValidateUserUpdate checks a profile update payload against the
// self-service rules. fields lists the JSON field names present in the
// payload.
//
// A user may never modify their own isRestricted flag. An admin acting on
// another user may only send status and isRestricted; any other field in
// the payload is rejected outright. Non-admins may not touch other users.
func ValidateUserUpdate(actor Actor, targetID uuid.UUID, fields []string) error {
	if actor.ID == targetID {
		for _, f := range fields {
			if f == "isRestricted" {
				return apperr.Forbidden("users may not change their own restriction flag")
			}
		}
		return nil
	}

	if actor.Role != RoleAdmin {
		return apperr.Forbidden("users may only update their own profile")
	}

	for _, f := range fields {
		if !adminUpdatableFields[f] {
			return apperr.BadRequest("field %q may not be set by an administrator", f)
		}
	}
	return nil
}
