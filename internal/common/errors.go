// Package common defines sentinel errors shared across AuthKeeper components.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// repository specific errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// service specific errors (generic/internal flow control)
	ErrorInternal      = errors.New("internal error")
	ErrorValidation    = errors.New("validation error")
	ErrorMissingSecret = errors.New("signing secret not configured")

	// auth-specific errors
	ErrorInvalidPassword = errors.New("invalid password")
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token expired")
)
