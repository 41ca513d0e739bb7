package services

import (
	"errors"

	apperrors "github.com/formpilot/formbuilder-service/internal/errors"
	"github.com/formpilot/formbuilder-service/internal/submission"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")

	// Form specific errors
	ErrFormNotFound   = errors.New("form not found")
	ErrFormEmptyTitle = errors.New("form title is required")

	// Response specific errors
	ErrResponseNotFound = errors.New("response not found")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrFormNotFound) ||
		errors.Is(err, ErrResponseNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrFormEmptyTitle) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsStaleReference checks if error reports an answer pointing at a question
// the form no longer has
func IsStaleReference(err error) bool {
	var re *submission.ReferenceError
	return errors.As(err, &re)
}

// IsShapeMismatch checks if error reports a payload whose variant disagrees
// with the question's declared type
func IsShapeMismatch(err error) bool {
	var sme *submission.ShapeMismatchError
	return errors.As(err, &sme)
}
