// Package common defines shared constants and sentinel errors used across
// motoreg components. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

// ErrValidation is the sentinel every ValidationError unwraps to.
var ErrValidation = errors.New("validation error")

// ValidationError reports client-supplied record data that cannot be
// accepted: required fields that are absent, or numeric fields whose
// values do not parse as integers. Missing fields take precedence; a
// single error never carries both kinds.
type ValidationError struct {
	MissingFields    []string
	NonIntegerFields []string
}

func (e *ValidationError) Error() string {
	if len(e.MissingFields) > 0 {
		return "missing required fields: " + strings.Join(e.MissingFields, ", ")
	}
	return "fields must be integers: " + strings.Join(e.NonIntegerFields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
