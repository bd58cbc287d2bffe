package services

import "errors"

// Common service errors
var (
	ErrNotFound             = errors.New("record not found")
	ErrValidation           = errors.New("validation failed")
	ErrDuplicate            = errors.New("duplicate record")
	ErrInvalidState         = errors.New("invalid state transition")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrConfirmationRequired = errors.New("confirmation required")
)
