package service

import (
	"database/sql"
	"errors"
)

// Package service contains the use-case layer. Services receive repositories
// and external collaborators (storage, mail, auth) as interfaces and return
// the sentinel errors below; handlers translate them to HTTP responses.

var (
	// ErrNotFound signals that the referenced entity is absent or soft-deleted.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict signals a live-row uniqueness violation (sku, name, email).
	ErrConflict = errors.New("value already in use")
	// ErrValidation signals malformed or missing input.
	ErrValidation = errors.New("invalid input")
	// ErrInvalidCredentials signals a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrLoginDisabled signals a login attempt on a user without account access.
	ErrLoginDisabled = errors.New("account access is disabled")
	// ErrInvalidToken signals a password-recovery token mismatch or a reset
	// attempt without a pending forgot-password request.
	ErrInvalidToken = errors.New("invalid recovery token")
	// ErrUpstream signals a blob storage or email provider failure.
	ErrUpstream = errors.New("upstream provider failure")
)

// isNoRows reports whether a repository read found no live row.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
