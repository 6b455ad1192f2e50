package domain

import "errors"

// ErrNotFound is returned by service and repo functions when the requested
// trip, template, or persisted snapshot does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule (e.g. empty trip
// name, unknown trip type, zero people) or when a cost breakdown carries a key
// outside the fixed category set.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
