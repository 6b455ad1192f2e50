package domain

import "github.com/google/uuid"

// NewID returns a new opaque identifier for a trip or template.
func NewID() string {
	return uuid.NewString()
}
