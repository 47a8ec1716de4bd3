// Application status state machine:
//
//	pending ──► reviewed ──► hired
//	    │
//	    ├─────► hired
//	    └─────► rejected
//
// hired and rejected are terminal; a reviewed application may only be hired.
package policy

import (
	"fmt"

	"github.com/jonathan/job-board/internal/apperr"
)

// Status values mirror the application_status enum in PostgreSQL.
type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
	StatusHired    Status = "hired"
	StatusRejected Status = "rejected"
)

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusReviewed, StatusHired, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// IsTerminal returns true when no transition out of the status is permitted.
func IsTerminal(s Status) bool {
	return s == StatusHired || s == StatusRejected
}

// ValidateTransition checks a status change against the state machine.
// Checks run in a fixed order and the first failure wins:
//
//  1. same status — BAD_REQUEST
//  2. current is terminal — FORBIDDEN
//  3. from reviewed, anything but hired is rejected — BAD_REQUEST
//
// The third rule is deliberately a negative check on the target rather than
// an allow-list: a reviewed application may only move to hired.
func ValidateTransition(current, next Status) error {
	if current == next {
		return apperr.BadRequest("application already has status %q", current)
	}
	if IsTerminal(current) {
		return apperr.Forbidden("application status %q is final", current)
	}
	if current == StatusReviewed && next != StatusHired {
		return apperr.BadRequest("a reviewed application may only move to %q", StatusHired)
	}
	return nil
}
