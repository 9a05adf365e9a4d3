package model

import "errors"

// Domain errors
var (
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrDateRequired           = errors.New("transaction date is required")
	ErrNegativeBudget         = errors.New("budget must not be negative")

	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileUnavailable = errors.New("profile unavailable after creation attempt")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrUserExists         = errors.New("user already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrWeakPassword       = errors.New("password does not meet requirements")
	ErrRateLimited        = errors.New("too many attempts, try again later")

	ErrMutationInFlight = errors.New("another change is still being saved")
)
