// Package server provides the HTTP REST API for the job board.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/job-board/internal/apperr"
)

// errorBody is the wire shape of a failed request.
type errorBody struct {
	Kind    string `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// okResponse writes a success envelope: {"status": true, "<key>": payload}.
func (s *Server) okResponse(w http.ResponseWriter, status int, key string, payload any) {
	s.jsonResponse(w, status, map[string]any{"status": true, key: payload})
}

// messageResponse writes a success envelope carrying only a message.
func (s *Server) messageResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]any{"status": true, "message": message})
}

// errorResponse writes a failure envelope. Errors outside the taxonomy are
// reported as INTERNAL with a generic message; the real error is logged,
// never sent to the caller.
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)

	body := errorBody{Kind: string(kind), Message: err.Error()}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		body.Message = appErr.Message
		body.Field = appErr.Field
	}
	if kind == apperr.KindInternal {
		log.Printf("[server] internal error: %v", err)
		body.Message = "internal server error"
	}

	s.jsonResponse(w, apperr.HTTPStatus(err), map[string]any{"status": false, "error": body})
}

// validationResponse converts validator.v10 errors into the failure envelope,
// reporting the first offending field.
func (s *Server) validationResponse(w http.ResponseWriter, err error) {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		ve := verrs[0]
		s.errorResponse(w, apperr.Validation(ve.Field(), "failed on rule "+ve.Tag()))
		return
	}
	s.errorResponse(w, apperr.Validation("", "invalid request"))
}
