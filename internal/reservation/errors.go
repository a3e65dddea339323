package reservation

import (
	"errors"
	"fmt"
)

var (
	// ErrDatesUnavailable means at least one requested date is already
	// taken by another reservation.
	ErrDatesUnavailable = errors.New("dates not available")

	// ErrInvalidID means the supplied identifier is not a well-formed
	// reservation id.
	ErrInvalidID = errors.New("invalid reservation id format")

	// ErrNotFound means the id is well-formed but names no reservation.
	ErrNotFound = errors.New("reservation not found")
)

// ValidationError reports that one or more request fields are missing or
// invalid. Which field failed is deliberately not reported.
type ValidationError struct {
	Request BookingRequest
}

func (e *ValidationError) Error() string {
	return "missing or invalid reservation fields"
}

// StayLengthError reports a stay outside the configured day-count bounds.
type StayLengthError struct {
	Request BookingRequest
	Min     int
	Max     int
}

func (e *StayLengthError) Error() string {
	return fmt.Sprintf("stay must cover between %d and %d days", e.Min, e.Max)
}

// StoreError wraps an unexpected store failure. Its text is for logs only
// and is never surfaced to clients.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("reservation store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
