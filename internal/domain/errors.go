package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a structurally invalid request. Operations
	// validate eagerly and fail before any mutation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrLineNotFound indicates an order does not hold the referenced line.
	ErrLineNotFound = errors.New("line not found in order")
	// ErrInvalidQuantity indicates a removal larger than the held quantity.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrNotificationFailed indicates the progress email could not be sent.
	// State changes applied before the send are not rolled back.
	ErrNotificationFailed = errors.New("notification failed")
)
