package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database, or when the caller is not allowed
// to know whether it exists. Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned when the caller can view a trip but lacks the
// role required for the attempted operation. Handlers map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a uniqueness rule is violated, such as
// sharing a trip with a user who is already a collaborator or signing up
// with an email that is already registered. Handlers map this to HTTP 409.
var ErrConflict = errors.New("conflict")
