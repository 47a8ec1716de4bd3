// Package server provides the HTTP REST API for the job board.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/job-board/internal/apperr"
	"github.com/jonathan/job-board/internal/policy"
	"github.com/jonathan/job-board/internal/server/middleware"
	"github.com/jonathan/job-board/internal/types"
)

// handleListCategories lists all categories with their job counts. Public.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.db.ListCategories(r.Context())
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.okResponse(w, http.StatusOK, "categories", categories)
}

// handleCreateCategory creates a category. Admins only.
func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r)
	if actor.Role != policy.RoleAdmin {
		s.errorResponse(w, apperr.Forbidden("only administrators may create categories"))
		return
	}

	var req types.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, apperr.BadRequest("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		s.validationResponse(w, err)
		return
	}

	category, err := s.db.CreateCategory(r.Context(), req.Name, req.Slug)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.okResponse(w, http.StatusCreated, "category", category)
}

// handleDeleteCategory removes a category. Admins only; blocked while the
// category still has jobs.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r)
	if actor.Role != policy.RoleAdmin {
		s.errorResponse(w, apperr.Forbidden("only administrators may delete categories"))
		return
	}

	id, err := parsePathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	category, err := s.db.GetCategory(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if category == nil {
		s.errorResponse(w, apperr.NotFound("category not found"))
		return
	}

	if err := s.db.DeleteCategory(r.Context(), id); err != nil {
		s.errorResponse(w, err)
		return
	}
	s.messageResponse(w, http.StatusOK, "category deleted")
}
