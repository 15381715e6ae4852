package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// Credential-path error kinds. ErrInvalidInput covers malformed plaintexts,
// hashes, emails and phone numbers; callers should re-prompt. ErrInvalidCredentials
// is reported without the secret value. ErrUnavailable signals an entropy or
// hashing primitive failure and is not retried locally.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnavailable        = errors.New("unavailable")
)
