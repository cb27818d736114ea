package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound            = errors.New("entity not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidArgument     = errors.New("invalid argument")

	// Infrastructure-side errors surfaced through repositories.
	ErrInvalidExecContext = errors.New("invalid execution context for query")
	ErrOperationFailed    = errors.New("operation failed")
)
