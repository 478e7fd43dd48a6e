package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound          = errors.New("not found")
	ErrBadRequest        = errors.New("bad request")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrExpired           = errors.New("expired")
	ErrInvalid           = errors.New("invalid")
	ErrTooManyAttempts   = errors.New("too many attempts")
	ErrDeliveryFailure   = errors.New("delivery failure")
	ErrPaymentIncomplete = errors.New("payment not completed")
	ErrPaymentProvider   = errors.New("payment provider error")
)
