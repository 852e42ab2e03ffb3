package domain

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates a record failed validation before any write.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a record id already exists in another lifecycle collection.
	ErrConflict = errors.New("conflict")
)

// ValidationError names the field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func requireText(field, value string) error {
	if value == "" {
		return invalid(field, "is required")
	}
	return nil
}

func requireDate(field string, d Date) error {
	if d.IsZero() {
		return invalid(field, "is required")
	}
	return nil
}

func requireNonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, fmt.Sprintf("must be a finite number (got %g)", v))
	}
	if v < 0 {
		return invalid(field, fmt.Sprintf("must not be negative (got %g)", v))
	}
	return nil
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
