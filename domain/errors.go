package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrAlreadyRegistered  = errors.New("email already registered")
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoPendingRequest   = errors.New("no pending request")
	ErrInvalidCode        = errors.New("invalid otp")
	ErrCodeExpired        = errors.New("otp expired")
	ErrTooManyAttempts    = errors.New("too many attempts")
	ErrDeliveryFailed     = errors.New("notification delivery failed")
	ErrConflict           = errors.New("conflicting record exists")
	ErrForbidden          = errors.New("not authorized")
	ErrNotEditable        = errors.New("only pending reports can be edited")
)
