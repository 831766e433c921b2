package domain

import (
	"errors"
	"fmt"
)

// Pipeline-level errors
var (
	ErrDuplicateBid     = errors.New("bid already stored")
	ErrStoreUnavailable = errors.New("bid store unavailable")
	ErrQueueUnavailable = errors.New("bid queue unavailable")
)

type ValidationCode string

const (
	MissingField  ValidationCode = "MissingField"
	InvalidAmount ValidationCode = "InvalidAmount"
)

// ValidationError rejects a raw submission before it reaches the queue. Field
// names the offending input field for caller-facing diagnostics.
type ValidationError struct {
	Code  ValidationCode
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid bid: %s (%s)", e.Field, e.Code)
}

// Reason returns the machine-readable reason code for the HTTP boundary.
func (e *ValidationError) Reason() string {
	if e.Code == MissingField {
		return fmt.Sprintf("%s:%s", e.Code, e.Field)
	}
	return string(e.Code)
}
