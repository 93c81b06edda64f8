package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was hit.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput is wrapped by validation failures.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyCart is returned when checking out a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrTotalMismatch is returned when the submitted total differs from the cart total.
	ErrTotalMismatch = errors.New("order total does not match cart")
	// ErrInvalidTransition is returned for an order status change the lifecycle does not allow.
	ErrInvalidTransition = errors.New("invalid order status transition")
)
