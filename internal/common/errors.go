// Package common defines shared constants and sentinel errors used across
// client and server layers of CVPro. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound  = errors.New("not found")
	ErrorDuplicate = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Validation errors, surfaced before any network or payment action.
	ErrorValidation = errors.New("validation error")

	// Entitlement / billing errors.
	ErrorInvalidProduct  = errors.New("invalid product")
	ErrorMissingHash     = errors.New("missing purchase hash")
	ErrorSnapshotTooBig  = errors.New("snapshot too large")
	ErrorSnapshotCorrupt = errors.New("saved snapshot is corrupted")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
