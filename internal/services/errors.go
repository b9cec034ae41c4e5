package services

import "errors"

// Error taxonomy surfaced to handlers. Wrap with fmt.Errorf("...: %w", err)
// and match with errors.Is.
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrLineNotFound      = errors.New("order line not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderLocked       = errors.New("order is already dispatched")
	ErrNoCancelRequest   = errors.New("order cannot be cancelled without a user request")
	ErrMissingComment    = errors.New("order cannot be cancelled without a comment")
	ErrProductInUse      = errors.New("product is part of a pending order")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrValidation        = errors.New("validation failed")
)
