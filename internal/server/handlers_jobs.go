// Package server provides the HTTP REST API for the job board.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/job-board/internal/apperr"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/policy"
	"github.com/jonathan/job-board/internal/query"
	"github.com/jonathan/job-board/internal/server/middleware"
	"github.com/jonathan/job-board/internal/types"
)

// parsePathUUID reads a uuid path value.
func parsePathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, apperr.Validation(name, "must be a valid id")
	}
	return id, nil
}

// handleListJobs lists jobs through the filter pipeline. Public: anonymous
// callers see published listings; a poster filtering on their own id sees
// their drafts too; admins see everything.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	params, err := parseJobListParams(r.URL.Query())
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	var actorPtr *policy.Actor
	if actor, ok := middleware.ActorFrom(r); ok {
		actorPtr = &actor
	}

	filter := query.BuildJobFilter(params)
	scope := policy.JobListScope(actorPtr, params.PostedBy)

	if paginatedFlag(r.URL.Query()) {
		pp, err := parsePageParams(r.URL.Query())
		if err != nil {
			s.errorResponse(w, err)
			return
		}
		page, err := s.db.ListJobsPage(r.Context(), filter, scope, pp)
		if err != nil {
			s.errorResponse(w, err)
			return
		}
		s.okResponse(w, http.StatusOK, "jobs", page)
		return
	}

	jobs, err := s.db.ListJobs(r.Context(), filter, scope)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if jobs == nil {
		jobs = []db.Job{}
	}
	s.okResponse(w, http.StatusOK, "jobs", jobs)
}

// handleGetJob returns a single job. Unpublished listings are visible only
// to their poster and admins; everyone else gets NOT_FOUND rather than a
// hint the listing exists. The owning poster also receives the job's
// applications.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	job, err := s.db.GetJob(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if job == nil {
		s.errorResponse(w, apperr.NotFound("job not found"))
		return
	}

	actor, authed := middleware.ActorFrom(r)
	isOwner := authed && actor.Role == policy.RolePoster && actor.ID == job.Poster.ID
	isAdmin := authed && actor.Role == policy.RoleAdmin

	if !job.IsPublished && !isOwner && !isAdmin {
		s.errorResponse(w, apperr.NotFound("job not found"))
		return
	}

	detail := db.JobDetail{Job: *job}
	if isOwner {
		scope := policy.ApplicationScope{JobID: &job.ID, JobPostedBy: &actor.ID}
		apps, err := s.db.ListApplications(r.Context(), scope)
		if err != nil {
			s.errorResponse(w, err)
			return
		}
		detail.Applications = apps
	}

	s.okResponse(w, http.StatusOK, "job", detail)
}

// handleCreateJob posts a new listing. Posters only.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r)
	if actor.Role != policy.RolePoster {
		s.errorResponse(w, apperr.Forbidden("only posters may create jobs"))
		return
	}

	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, apperr.BadRequest("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		s.validationResponse(w, err)
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		s.errorResponse(w, apperr.Validation("category_id", "must be a valid id"))
		return
	}
	category, err := s.db.GetCategory(r.Context(), categoryID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if category == nil {
		s.errorResponse(w, apperr.NotFound("category not found"))
		return
	}

	job, err := s.db.CreateJob(r.Context(), db.JobCreateInput{
		CompanyName:  req.CompanyName,
		CompanyEmail: req.CompanyEmail,
		Position:     req.Position,
		Description:  req.Description,
		CategoryID:   categoryID,
		JobType:      req.JobType,
		LocationType: req.LocationType,
		Location:     db.Location{City: req.City, State: req.State, Country: req.Country},
		SalaryAmount: req.Salary.Amount,
		SalaryMode:   req.Salary.Mode,
		IsPublished:  req.IsPublished,
		IsFeatured:   req.IsFeatured,
		PostedBy:     actor.ID,
	})
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.okResponse(w, http.StatusCreated, "job", job)
}

// handleUpdateJob applies a partial update to a listing.
// Checks in order: existence, then ownership.
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	job, err := s.db.GetJob(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if job == nil {
		s.errorResponse(w, apperr.NotFound("job not found"))
		return
	}

	actor, _ := middleware.ActorFrom(r)
	if err := policy.CanMutateJob(actor, job.Poster.ID); err != nil {
		s.errorResponse(w, err)
		return
	}

	var req types.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, apperr.BadRequest("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		s.validationResponse(w, err)
		return
	}

	input := db.JobUpdateInput{
		CompanyName:  req.CompanyName,
		CompanyEmail: req.CompanyEmail,
		Position:     req.Position,
		Description:  req.Description,
		JobType:      req.JobType,
		LocationType: req.LocationType,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		IsPublished:  req.IsPublished,
		IsFeatured:   req.IsFeatured,
		Status:       req.Status,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			s.errorResponse(w, apperr.Validation("category_id", "must be a valid id"))
			return
		}
		category, err := s.db.GetCategory(r.Context(), categoryID)
		if err != nil {
			s.errorResponse(w, err)
			return
		}
		if category == nil {
			s.errorResponse(w, apperr.NotFound("category not found"))
			return
		}
		input.CategoryID = &categoryID
	}
	if req.Salary != nil {
		input.SalaryAmount = &req.Salary.Amount
		input.SalaryMode = &req.Salary.Mode
	}

	if err := s.db.UpdateJob(r.Context(), id, input); err != nil {
		s.errorResponse(w, err)
		return
	}

	updated, err := s.db.GetJob(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.okResponse(w, http.StatusOK, "job", updated)
}

// handleDeleteJob removes a listing and its applications.
// Checks in order: existence, then ownership.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	job, err := s.db.GetJob(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if job == nil {
		s.errorResponse(w, apperr.NotFound("job not found"))
		return
	}

	actor, _ := middleware.ActorFrom(r)
	if err := policy.CanMutateJob(actor, job.Poster.ID); err != nil {
		s.errorResponse(w, err)
		return
	}

	if err := s.db.DeleteJob(r.Context(), id); err != nil {
		s.errorResponse(w, err)
		return
	}

	s.messageResponse(w, http.StatusOK, "job deleted")
}
