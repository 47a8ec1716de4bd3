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

// handleListUsers lists users for moderation. Admins only, always paginated.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r)
	if actor.Role != policy.RoleAdmin {
		s.errorResponse(w, apperr.Forbidden("only administrators may list users"))
		return
	}

	pp, err := parsePageParams(r.URL.Query())
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	page, err := s.db.ListUsersPage(r.Context(), pp)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.okResponse(w, http.StatusOK, "users", page)
}

// handleGetUser returns one user's profile: self or admin.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	actor, _ := middleware.ActorFrom(r)
	if actor.ID != id && actor.Role != policy.RoleAdmin {
		s.errorResponse(w, apperr.Forbidden("users may only view their own profile"))
		return
	}

	user, err := s.db.GetUser(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if user == nil {
		s.errorResponse(w, apperr.NotFound("user not found"))
		return
	}

	s.okResponse(w, http.StatusOK, "user", toAPIUser(user))
}

// handleUpdateUser applies a profile update. The field rules live in the
// policy layer: self-service fields for the user themself, moderation
// flags only for an admin acting on someone else.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	target, err := s.db.GetUser(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if target == nil {
		s.errorResponse(w, apperr.NotFound("user not found"))
		return
	}

	var req types.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, apperr.BadRequest("invalid request body"))
		return
	}

	actor, _ := middleware.ActorFrom(r)
	if err := policy.ValidateUserUpdate(actor, id, req.Fields()); err != nil {
		s.errorResponse(w, err)
		return
	}

	if actor.ID == id {
		err = s.db.UpdateUserProfile(r.Context(), id, db.UserProfileUpdate{
			Name:               req.Name,
			Phone:              req.Phone,
			IsProfileCompleted: req.IsProfileCompleted,
		})
		if err == nil && req.Status != nil {
			// Self-deactivation is allowed; only isRestricted is off-limits.
			err = s.db.UpdateUserModeration(r.Context(), id, db.UserModerationUpdate{Status: req.Status})
		}
	} else {
		err = s.db.UpdateUserModeration(r.Context(), id, db.UserModerationUpdate{
			Status:       req.Status,
			IsRestricted: req.IsRestricted,
		})
	}
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	updated, err := s.db.GetUser(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.okResponse(w, http.StatusOK, "user", toAPIUser(updated))
}
