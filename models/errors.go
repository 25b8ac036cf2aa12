package models

import "errors"

// Sentinel errors for every business-rule outcome. Services wrap these with
// fmt.Errorf("%w: ...") so controllers can map them to HTTP codes with
// errors.Is while keeping the detail message.
var (
	ErrValidation        = errors.New("validation failed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnavailable       = errors.New("service unavailable")
)
