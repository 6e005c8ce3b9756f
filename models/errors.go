package models

import "errors"

// ErrNotFound is returned when a looked-up record does not exist. Callers
// that need to distinguish "student does not exist" from "student has no
// fee structure configured" rely on this sentinel: the former is an error,
// the latter an empty result.
var ErrNotFound = errors.New("record not found")

// ValidationError carries a human-readable rejection reason. Operations
// fail with it before touching the database.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Invalid builds a ValidationError from a reason string.
func Invalid(reason string) error { return &ValidationError{Reason: reason} }
