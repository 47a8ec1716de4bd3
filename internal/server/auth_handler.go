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

// handleRegister handles user registration requests.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, apperr.BadRequest("invalid request body"))
		return
	}

	if err := req.Validate(); err != nil {
		s.validationResponse(w, err)
		return
	}

	user, err := s.userService.Register(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(user.ID, policy.Role(user.Role))
	if err != nil {
		s.errorResponse(w, apperr.Internal("failed to generate token: %v", err))
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"status": true,
		"user":   user,
		"token":  token,
	})
}

// handleLogin handles user login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, apperr.BadRequest("invalid request body"))
		return
	}

	if err := req.Validate(); err != nil {
		s.validationResponse(w, err)
		return
	}

	user, err := s.userService.Login(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(user.ID, policy.Role(user.Role))
	if err != nil {
		s.errorResponse(w, apperr.Internal("failed to generate token: %v", err))
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": true,
		"user":   user,
		"token":  token,
	})
}

// handleUpdatePassword handles password update requests for the
// authenticated user.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r)
	if !ok {
		s.errorResponse(w, apperr.Unauthorized("authentication required"))
		return
	}

	var req types.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, apperr.BadRequest("invalid request body"))
		return
	}

	if err := req.Validate(); err != nil {
		s.validationResponse(w, err)
		return
	}

	if err := s.userService.UpdatePassword(r.Context(), actor.ID, req.CurrentPassword, req.NewPassword); err != nil {
		s.errorResponse(w, err)
		return
	}

	s.messageResponse(w, http.StatusOK, "password updated successfully")
}
