package query

import (
	"strconv"

	"github.com/jonathan/job-board/internal/apperr"
)

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page wraps one slice of a result set with its paging metadata. The same
// envelope is used for jobs, applications, and users.
type Page[T any] struct {
	Docs          []T  `json:"docs"`
	TotalDocs     int  `json:"totalDocs"`
	Limit         int  `json:"limit"`
	Page          int  `json:"page"`
	TotalPages    int  `json:"totalPages"`
	PagingCounter int  `json:"pagingCounter"`
	HasPrevPage   bool `json:"hasPrevPage"`
	HasNextPage   bool `json:"hasNextPage"`
	PrevPage      *int `json:"prevPage"`
	NextPage      *int `json:"nextPage"`
}

// NewPage builds the envelope for one page. docs must already be the slice
// for the requested page; a page past the end carries an empty docs array,
// never an error.
func NewPage[T any](docs []T, totalDocs, page, limit int) Page[T] {
	if docs == nil {
		docs = []T{}
	}

	totalPages := 0
	if totalDocs > 0 {
		totalPages = (totalDocs + limit - 1) / limit
	}

	p := Page[T]{
		Docs:          docs,
		TotalDocs:     totalDocs,
		Limit:         limit,
		Page:          page,
		TotalPages:    totalPages,
		PagingCounter: (page-1)*limit + 1,
		HasPrevPage:   page > 1,
		HasNextPage:   page < totalPages,
	}
	if p.HasPrevPage {
		prev := page - 1
		p.PrevPage = &prev
	}
	if p.HasNextPage {
		next := page + 1
		p.NextPage = &next
	}
	return p
}

// PageParams carries the validated page/limit pair.
type PageParams struct {
	Page  int
	Limit int
}

// Offset returns the row offset for the page.
func (p PageParams) Offset() int { return (p.Page - 1) * p.Limit }

// ParsePageParams validates raw page/limit strings. Each field defaults
// independently when absent and fails with a field-level validation error
// when non-numeric or non-positive.
func ParsePageParams(rawPage, rawLimit string) (PageParams, error) {
	p := PageParams{Page: DefaultPage, Limit: DefaultLimit}

	if rawPage != "" {
		n, err := strconv.Atoi(rawPage)
		if err != nil || n < 1 {
			return PageParams{}, apperr.Validation("page", "must be a positive integer")
		}
		p.Page = n
	}
	if rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n < 1 {
			return PageParams{}, apperr.Validation("limit", "must be a positive integer")
		}
		p.Limit = n
	}
	return p, nil
}
