package models

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrValidation matches every *ValidationError through errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a value rejected by a field rule. Message is meant for humans.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the rule message.
func (e *ValidationError) Error() string {
	return e.Message
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// checkField runs rules against a single value and tags the first failure with field.
func checkField(field string, value interface{}, rules ...validation.Rule) error {
	return fieldError(field, validation.Validate(value, rules...))
}

// firstFieldError converts the result of validation.ValidateStruct into a single
// ValidationError, picking the first failing field in the given order.
func firstFieldError(err error, order ...string) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	for _, field := range order {
		if fe, ok := errs[field]; ok {
			return fieldError(field, fe)
		}
	}
	return err
}

func fieldError(field string, err error) error {
	if err == nil {
		return nil
	}
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}
	var ve validation.Error
	if errors.As(err, &ve) {
		return NewValidationError(field, ve.Error())
	}
	return NewValidationError(field, err.Error())
}
