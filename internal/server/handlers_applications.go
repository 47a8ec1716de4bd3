// Package server provides the HTTP REST API for the job board.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/job-board/internal/apperr"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/policy"
	"github.com/jonathan/job-board/internal/server/middleware"
	"github.com/jonathan/job-board/internal/types"
)

// handleListApplications lists applications inside the caller's visibility
// scope, optionally narrowed by aId/jId.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r)

	jobID, err := parseUUIDParam(r.URL.Query(), "jId")
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	applicantID, err := parseUUIDParam(r.URL.Query(), "aId")
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	scope, err := policy.ApplicationListScope(actor, jobID, applicantID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	if paginatedFlag(r.URL.Query()) {
		pp, err := parsePageParams(r.URL.Query())
		if err != nil {
			s.errorResponse(w, err)
			return
		}
		page, err := s.db.ListApplicationsPage(r.Context(), scope, pp)
		if err != nil {
			s.errorResponse(w, err)
			return
		}
		s.okResponse(w, http.StatusOK, "applications", page)
		return
	}

	apps, err := s.db.ListApplications(r.Context(), scope)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if apps == nil {
		apps = []db.Application{}
	}
	s.okResponse(w, http.StatusOK, "applications", apps)
}

// handleGetApplication returns a single application.
// Checks in order: existence, then visibility; a record that exists but is
// outside the caller's scope is FORBIDDEN, not NOT_FOUND.
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	app, err := s.db.GetApplication(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if app == nil {
		s.errorResponse(w, apperr.NotFound("application not found"))
		return
	}

	actor, _ := middleware.ActorFrom(r)
	if err := policy.CanViewApplication(actor, app.ApplicantID, app.Job.PostedBy); err != nil {
		s.errorResponse(w, err)
		return
	}

	s.okResponse(w, http.StatusOK, "application", app)
}

// handleCreateApplication submits an application to a job. Seekers only;
// one application per seeker per job.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	jobID, err := parsePathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	job, err := s.db.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if job == nil || !job.IsPublished {
		s.errorResponse(w, apperr.NotFound("job not found"))
		return
	}

	actor, _ := middleware.ActorFrom(r)
	if actor.Role != policy.RoleSeeker {
		s.errorResponse(w, apperr.Forbidden("only seekers may apply to jobs"))
		return
	}

	var req types.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, apperr.BadRequest("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		s.validationResponse(w, err)
		return
	}

	// Friendly duplicate check; the unique constraint on
	// (applicant_id, job_id) still catches the race.
	applied, err := s.db.HasApplied(r.Context(), actor.ID, jobID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if applied {
		s.errorResponse(w, apperr.BadRequest("already applied to this job"))
		return
	}

	app, err := s.db.CreateApplication(r.Context(), db.ApplicationCreateInput{
		JobID:       jobID,
		ApplicantID: actor.ID,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.notifier.ApplicationSubmitted(job.Poster.Email, app.Applicant.Name, job.Position)

	s.okResponse(w, http.StatusCreated, "application", app)
}

// handleUpdateApplicationStatus moves an application through the status
// state machine. Checks in order: existence, role, ownership, state.
func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	// Malformed bodies are rejected before the store is touched.
	var req types.UpdateApplicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, apperr.BadRequest("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		s.validationResponse(w, err)
		return
	}

	app, err := s.db.GetApplication(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if app == nil {
		s.errorResponse(w, apperr.NotFound("application not found"))
		return
	}

	actor, _ := middleware.ActorFrom(r)
	if err := policy.CanTransitionApplication(actor, app.Job.PostedBy); err != nil {
		s.errorResponse(w, err)
		return
	}

	current, err := policy.ParseStatus(app.Status)
	if err != nil {
		s.errorResponse(w, apperr.Internal("stored status is invalid: %v", err))
		return
	}
	next, err := policy.ParseStatus(req.Status)
	if err != nil {
		s.errorResponse(w, apperr.Validation("status", err.Error()))
		return
	}

	if err := policy.ValidateTransition(current, next); err != nil {
		s.errorResponse(w, err)
		return
	}

	if err := s.db.UpdateApplicationStatus(r.Context(), id, next); err != nil {
		s.errorResponse(w, err)
		return
	}

	s.notifier.StatusChanged(app.Applicant.Email, app.Job.Position, string(next))

	updated, err := s.db.GetApplication(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.okResponse(w, http.StatusOK, "application", updated)
}
