// Package idempotency maps client-supplied request keys to the order they
// produced so a resubmitted checkout returns the original order.
package idempotency

import (
	"context"
	"errors"
	"time"
)

// DefaultTTL bounds how long a key is remembered.
const DefaultTTL = 24 * time.Hour

// ErrInProgress is returned when a key is reserved but its request has not
// finished.
var ErrInProgress = errors.New("request with this idempotency key is in progress")

type Store interface {
	// Reserve claims key. reserved is true when the caller now owns it; when
	// the key already completed, orderID holds the earlier result.
	Reserve(ctx context.Context, key string) (orderID string, reserved bool, err error)
	// Complete records the result of a reserved key.
	Complete(ctx context.Context, key, orderID string) error
	// Release drops a reservation after a failed request so it can be retried.
	Release(ctx context.Context, key string) error
}

const pendingMarker = "\x00pending"
