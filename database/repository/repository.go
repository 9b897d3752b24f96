package repository

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no document matches the lookup.
	ErrNotFound = errors.New("document not found")

	// ErrVersionConflict is returned when a conditional write lost against a
	// concurrent writer. Callers reload and retry.
	ErrVersionConflict = errors.New("concurrent modification detected")
)

// DefaultTimeout bounds a single repository round trip.
const DefaultTimeout = 5 * time.Second

// WithTimeout derives a context bounded by DefaultTimeout.
func WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultTimeout)
}
