package gateway

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
)

// Source tells the caller where a result came from.
type Source string

const (
	SourceLive    Source = "live"
	SourceFixture Source = "fixture"
	// SourceFallback marks fixture data served because the live store failed.
	// For writes it means the change was not persisted.
	SourceFallback Source = "fallback"
)

type Result[T any] struct {
	Value  T
	Source Source
}

// Persisted reports whether a write reached durable storage.
func (r Result[T]) Persisted() bool {
	return r.Source == SourceLive
}

// RemoteError wraps a live store failure.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: live store: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// isRequestError reports errors that describe the request rather than the
// store, so falling back to fixtures would hide them. A context error counts
// only when the caller's own context has ended; a timeout inside the driver
// is a store failure.
func isRequestError(ctx context.Context, err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ctx.Err() != nil
	}
	for _, target := range []error{
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrInvalidInput,
		domain.ErrEmptyCart,
		domain.ErrTotalMismatch,
		domain.ErrInvalidTransition,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
