package service

import "errors"

var (
	ErrInvalidCredentials  = errors.New("incorrect username or password")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrWeakPassword        = errors.New("weak password")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrInvalidAssertion    = errors.New("invalid identity assertion")
	ErrGenerationExhausted = errors.New("password generation exhausted")
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrConflict            = errors.New("conflict")
	ErrRateLimited         = errors.New("too many requests")
	ErrFederationDisabled  = errors.New("federated login not configured")
	ErrMisconfigured       = errors.New("auth config invalid")
)
