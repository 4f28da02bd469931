// Package common defines shared constants and sentinel errors used across
// the service layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Credential errors. Bad passwords and bad reset secrets both collapse
	// to this value so callers cannot tell which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Auth errors (invalid or malformed bearer token).
	ErrInvalidToken = errors.New("invalid token")

	// Account lifecycle errors.
	ErrEmailTaken = errors.New("email already registered")
)
