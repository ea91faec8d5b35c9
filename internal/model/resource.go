package model

import "fmt"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Creator is a create payload that can validate itself and build the row to insert.
type Creator[T any] interface {
	Validate() error
	Build() *T
}

// Editor is an update payload. Apply copies the non-nil fields onto the row
// and returns the column names it touched.
type Editor[T any] interface {
	Validate() error
	Apply(row *T) []string
}

// ValidationError reports a payload field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

type PageQuery struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}

// Normalize clamps skip to >= 0 and limit to (0, MaxPageLimit], using
// fallback when no limit was given.
func (q PageQuery) Normalize(fallback int) PageQuery {
	if q.Skip < 0 {
		q.Skip = 0
	}
	if q.Limit <= 0 {
		q.Limit = fallback
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	return q
}

type Page[T any] struct {
	TotalRecords int `json:"total_records"`
	TotalPages   int `json:"total_pages"`
	Records      []T `json:"records"`
}

func NewPage[T any](records []T, total, limit int) Page[T] {
	if records == nil {
		records = []T{}
	}
	pages := 0
	if limit > 0 {
		pages = total / limit
		if total%limit > 0 {
			pages++
		}
	}
	return Page[T]{TotalRecords: total, TotalPages: pages, Records: records}
}
