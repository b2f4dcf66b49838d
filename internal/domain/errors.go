package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrAccessDenied is returned when the requester lacks the grant required
// for a read, write, or sharing operation. It is a final answer, never a
// transient condition. Handlers should map this to HTTP 403.
var ErrAccessDenied = errors.New("access denied")

// ErrDuplicateBudget is returned when creating a budget while an active
// budget already exists for the same (user, trip, category).
// Handlers should map this to HTTP 409 Conflict.
var ErrDuplicateBudget = errors.New("duplicate budget")

// ErrInvalidAmount is returned when a budget or expense amount is not
// strictly positive. Handlers should map this to HTTP 422.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInvalidOperation is returned for operations that are structurally
// nonsensical, such as sharing a resource with its own owner.
// Handlers should map this to HTTP 422.
var ErrInvalidOperation = errors.New("invalid operation")

// ErrEmailTaken is returned by registration when the email address is
// already associated with an account. Handlers should map this to HTTP 409.
var ErrEmailTaken = errors.New("email already registered")
