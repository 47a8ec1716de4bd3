// Package server provides the HTTP REST API for the job board.
package server

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/job-board/internal/apperr"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/query"
)

// parseJobListParams decodes and type-validates the job listing query
// parameters. All shape checks happen here; the filter builder receives
// only typed values. Malformed values fail with a field-level validation
// error rather than silently matching everything.
func parseJobListParams(values url.Values) (query.JobListParams, error) {
	var p query.JobListParams

	p.Name = values.Get("name")
	p.Country = values.Get("country")

	var err error
	if p.Category, err = parseUUIDParam(values, "category"); err != nil {
		return query.JobListParams{}, err
	}
	if p.PostedBy, err = parseUUIDParam(values, "poster"); err != nil {
		return query.JobListParams{}, err
	}

	if p.Types, err = parseEnumSet(values.Get("type"), "type", db.JobTypes); err != nil {
		return query.JobListParams{}, err
	}
	if p.LocationTypes, err = parseEnumSet(values.Get("location"), "location", db.LocationTypes); err != nil {
		return query.JobListParams{}, err
	}

	// Featured filters only when the parameter is exactly "true".
	p.Featured = values.Get("isFeatured") == "true"

	switch status := values.Get("status"); status {
	case "":
	case "published":
		published := true
		p.Published = &published
	case "draft":
		published := false
		p.Published = &published
	default:
		return query.JobListParams{}, apperr.Validation("status", "must be published or draft")
	}

	if p.MinSalary, err = parseFloatParam(values, "minSalary"); err != nil {
		return query.JobListParams{}, err
	}
	if p.MaxSalary, err = parseFloatParam(values, "maxSalary"); err != nil {
		return query.JobListParams{}, err
	}
	if p.MinSalary != nil && p.MaxSalary != nil && *p.MinSalary > *p.MaxSalary {
		return query.JobListParams{}, apperr.Validation("minSalary", "must not exceed maxSalary")
	}

	return p, nil
}

// parseUUIDParam reads an optional uuid-valued parameter.
func parseUUIDParam(values url.Values, key string) (*uuid.UUID, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperr.Validation(key, "must be a valid id")
	}
	return &id, nil
}

// parseEnumSet splits a space-delimited multi-value parameter and checks
// each value against the known enum set.
func parseEnumSet(raw, key string, allowed []string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}

	var out []string
	for _, v := range strings.Fields(raw) {
		if !contains(allowed, v) {
			return nil, apperr.Validation(key, "unknown value: "+v)
		}
		out = append(out, v)
	}
	return out, nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// parseFloatParam reads an optional non-negative numeric parameter.
func parseFloatParam(values url.Values, key string) (*float64, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return nil, apperr.Validation(key, "must be a non-negative number")
	}
	return &f, nil
}

// paginatedFlag reports whether the caller selected the paginated execution
// mode. There is no default inference: anything other than exactly "true"
// means the full list.
func paginatedFlag(values url.Values) bool {
	return values.Get("paginated") == "true"
}

// parsePageParams validates the page/limit pair with per-field errors.
func parsePageParams(values url.Values) (query.PageParams, error) {
	return query.ParsePageParams(values.Get("page"), values.Get("limit"))
}
