package payments

import "errors"

var (
	ErrInvalidRate          = errors.New("payments: booking fee bps out of range")
	ErrAlreadyInitialized   = errors.New("payments: config already initialized")
	ErrConfigNotFound       = errors.New("payments: config not found")
	ErrUnauthorized         = errors.New("payments: unauthorized")
	ErrTokenNotAllowed      = errors.New("payments: token not allowed")
	ErrNotFound             = errors.New("payments: booking payment not found")
	ErrAlreadySettled       = errors.New("payments: booking payment already settled")
	ErrTransferFailed       = errors.New("payments: transfer failed")
	ErrTooManyPaymentTokens = errors.New("payments: too many payment tokens")
	ErrIdentifierTooLong    = errors.New("payments: identifier too long")
	ErrInvalidAmount        = errors.New("payments: amount must be non-negative")
)
