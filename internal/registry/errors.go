package registry

import (
	"errors"

	"github.com/scmmishra/subly/internal/models"
)

var (
	ErrConflict = errors.New("subdomain already exists")
	ErrNotFound = models.ErrNotFound
)

// ValidationError reports input that cannot produce a usable record.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}
