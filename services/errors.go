package services

import "errors"

// Business-rule failures callers are expected to branch on with errors.Is.
// Anything else returned by a service is a storage failure and should be
// surfaced as a server fault.
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrInvalidState      = errors.New("invalid state transition")
	ErrNotFound          = errors.New("record not found")
)
