// Package common defines shared constants and sentinel errors used across
// the storefront service layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is the single collapsed outcome for unknown
	// user, wrong password, and malformed sign-in input. The cause is never
	// distinguished outside internal diagnostics.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrStoreUnavailable marks an infrastructure fault reaching the
	// credential store. It is never reported as a credential failure.
	ErrStoreUnavailable = errors.New("credential store unavailable")

	// ErrDeleted marks an operation against a soft-deleted record.
	ErrDeleted = errors.New("record deleted")

	// ErrValidation marks malformed input recovered locally. For sign-in it
	// is still surfaced as ErrInvalidCredentials.
	ErrValidation = errors.New("validation error")

	// Session token errors. The gate treats all three as unauthenticated;
	// they exist for logs and tests only.
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
)
