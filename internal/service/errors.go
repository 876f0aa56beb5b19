// ABOUTME: Error taxonomy for service operations
// ABOUTME: Sentinels recovered by the API layer into structured 4xx responses

package service

import "errors"

// Service errors
var (
	// ErrInvalidCredentials covers both "handle not found" and "wrong
	// password" so login failures cannot enumerate handles.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrConflict is returned for uniqueness violations (handle, email,
	// per-owner project name).
	ErrConflict = errors.New("conflict")

	// ErrNotFound is returned when a resource does not exist, or exists but
	// belongs to a different principal. The two are indistinguishable by
	// policy; see the package docs.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned for malformed input.
	ErrValidation = errors.New("validation failed")
)
