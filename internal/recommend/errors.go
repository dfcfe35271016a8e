// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package recommend

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks across package boundaries.
var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrInternal matches every *InternalError.
	ErrInternal = errors.New("internal error")
)

// ValidationError reports malformed caller input: a weakness that cannot be
// normalized, a catalog entry without an ID, or a non-positive cap.
type ValidationError struct {
	// Field names the offending field (e.g. "weaknesses[2].weakness").
	Field string

	// Index is the position of the offending element, or -1.
	Index int

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// newValidationError builds a ValidationError without an element index.
func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Index:   -1,
		Message: fmt.Sprintf(format, args...),
	}
}

// InternalError reports a broken invariant inside the scorer. It indicates a
// programming error rather than bad input.
type InternalError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("recommend: %s: internal error", e.Op)
	}
	return fmt.Sprintf("recommend: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInternal.
func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

// IsValidation reports whether err is (or wraps) a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// AsValidation extracts the first *ValidationError in err's chain.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
