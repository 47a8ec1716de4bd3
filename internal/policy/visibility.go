package policy

import (
	"github.com/google/uuid"

	"github.com/jonathan/job-board/internal/apperr"
)

// ApplicationScope is the record subset an actor may see on an application
// listing. Nil fields impose no constraint; set fields are AND-ed into the
// assembled query.
type ApplicationScope struct {
	// JobID narrows to one job's applications.
	JobID *uuid.UUID
	// ApplicantID narrows to one applicant's applications.
	ApplicantID *uuid.UUID
	// JobPostedBy restricts to applications whose job belongs to this poster.
	JobPostedBy *uuid.UUID
}

// ApplicationListScope derives the visible subset for an application
// listing. jobID and applicantID are the caller's explicit narrowing
// filters, already shape-validated.
//
// Admins cannot view applications at all. Posters see only applications to
// their own jobs. Seekers see only their own applications; asking for
// another applicant's is forbidden rather than silently empty.
func ApplicationListScope(actor Actor, jobID, applicantID *uuid.UUID) (ApplicationScope, error) {
	switch actor.Role {
	case RoleAdmin:
		return ApplicationScope{}, apperr.Forbidden("admins may not view applications")

	case RolePoster:
		return ApplicationScope{
			JobID:       jobID,
			ApplicantID: applicantID,
			JobPostedBy: &actor.ID,
		}, nil

	case RoleSeeker:
		if applicantID != nil && *applicantID != actor.ID {
			return ApplicationScope{}, apperr.Forbidden("seekers may only view their own applications")
		}
		self := actor.ID
		return ApplicationScope{
			JobID:       jobID,
			ApplicantID: &self,
		}, nil
	}
	return ApplicationScope{}, apperr.Forbidden("role %q may not view applications", actor.Role)
}

// CanViewApplication checks single-record application access. The record
// exists (existence is checked first by the caller), so a failing check
// here is FORBIDDEN, never NOT_FOUND.
func CanViewApplication(actor Actor, applicantID, jobPostedBy uuid.UUID) error {
	switch actor.Role {
	case RoleAdmin:
		return apperr.Forbidden("admins may not view applications")
	case RolePoster:
		if jobPostedBy != actor.ID {
			return apperr.Forbidden("application belongs to another poster's job")
		}
		return nil
	case RoleSeeker:
		if applicantID != actor.ID {
			return apperr.Forbidden("application belongs to another applicant")
		}
		return nil
	}
	return apperr.Forbidden("role %q may not view applications", actor.Role)
}

// CanTransitionApplication checks who may change an application's status:
// only the poster who owns the associated job.
func CanTransitionApplication(actor Actor, jobPostedBy uuid.UUID) error {
	if actor.Role != RolePoster {
		return apperr.Forbidden("only posters may update application status")
	}
	if jobPostedBy != actor.ID {
		return apperr.Forbidden("application belongs to another poster's job")
	}
	return nil
}

// JobScope is the job subset visible on a listing.
type JobScope struct {
	// PostedBy restricts to one poster's jobs.
	PostedBy *uuid.UUID
	// PublishedOnly forces the publication constraint regardless of filters.
	PublishedOnly bool
}

// JobListScope derives the visible job subset. Admins see everything. A
// poster asking for their own jobs (posterFilter == self) sees them
// publication-independent; everyone else is limited to published listings.
// A nil actor is an anonymous caller.
func JobListScope(actor *Actor, posterFilter *uuid.UUID) JobScope {
	if actor != nil {
		if actor.Role == RoleAdmin {
			return JobScope{}
		}
		if actor.Role == RolePoster && posterFilter != nil && *posterFilter == actor.ID {
			return JobScope{PostedBy: posterFilter}
		}
	}
	return JobScope{PublishedOnly: true}
}

// CanMutateJob checks job update/delete ownership: only the posting poster.
func CanMutateJob(actor Actor, jobPostedBy uuid.UUID) error {
	if actor.Role != RolePoster {
		return apperr.Forbidden("only posters may modify jobs")
	}
	if jobPostedBy != actor.ID {
		return apperr.Forbidden("job belongs to another poster")
	}
	return nil
}
