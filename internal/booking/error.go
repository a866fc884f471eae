package booking

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidTimeFormat = errors.New("time must be a whole hour in HH:00 format")
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTimeRange  = errors.New("end time must be after start time")
	ErrNotFound          = errors.New("booking not found")
	ErrPersistence       = errors.New("persist bookings")
	ErrNextID            = errors.New("get next id from generator")
)

// ValidationError reports the first rule a candidate broke. Unwrap yields one
// of the ErrMissingField, ErrInvalidTimeFormat, ErrInvalidDateFormat or
// ErrInvalidTimeRange sentinels.
type ValidationError struct {
	field string
	err   error
}

func newValidationError(field string, err error) *ValidationError {
	return &ValidationError{field: field, err: err}
}

func IsValidationError(err error) *ValidationError {
	if err == nil {
		return nil
	}

	var validationError *ValidationError

	if errors.As(err, &validationError) {
		return validationError
	}

	return nil
}

func (e *ValidationError) Field() string {
	return e.field
}

func (e *ValidationError) Error() string {
	if e.field == "" {
		return e.err.Error()
	}

	return fmt.Sprintf("%s: %v", e.field, e.err)
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// OverlapError means the candidate is well formed but its slot is taken.
type OverlapError struct {
	conflict Booking
}

func IsOverlapError(err error) *OverlapError {
	if err == nil {
		return nil
	}

	var overlapError *OverlapError

	if errors.As(err, &overlapError) {
		return overlapError
	}

	return nil
}

func (e *OverlapError) Conflict() Booking {
	return e.conflict
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf(
		"room '%v' is already booked on %v from %v to %v",
		e.conflict.Room,
		e.conflict.Date,
		e.conflict.StartTime,
		e.conflict.EndTime,
	)
}
