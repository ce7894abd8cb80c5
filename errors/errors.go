// Package errors holds the sentinel errors shared across services and the
// transport boundary. Call sites wrap them with fmt.Errorf and %w to add
// context; callers branch with errors.Is against the kind sentinels.
package errors

import "errors"

// Kind sentinels. Every externally visible failure maps to exactly one.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStorage      = errors.New("storage failure")
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("invalid input")
	ErrInvalidPassword    = errors.New("password does not meet complexity requirements")
	ErrInvalidAvatar      = errors.New("unsupported avatar image type")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrTokenGeneration    = errors.New("token generation failed")
	ErrLastAdmin          = errors.New("cannot demote the last admin")
	ErrWorkerPanic        = errors.New("worker panic")
)

func Is(err, target error) bool { return errors.Is(err, target) }
