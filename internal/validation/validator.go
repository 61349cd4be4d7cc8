// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// namePattern matches plate-ifu designations (8485-1901) and mangaids (1-209232).
var namePattern = regexp.MustCompile(`^[0-9-]*$`)

// ErrorCode is the API error code used for every parameter validation failure.
const ErrorCode = "VALIDATION_ERROR"

// ValidationError represents a single field validation error.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the request parameter name that failed validation.
func (e *ValidationError) Field() string {
	return e.field
}

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string {
	return e.tag
}

// Param returns the parameter for the validation tag (e.g., "4" for "min=4").
func (e *ValidationError) Param() string {
	return e.param
}

// Value returns the actual value that failed validation.
func (e *ValidationError) Value() interface{} {
	return e.value
}

// Error returns the client-facing message.
func (e *ValidationError) Error() string {
	return e.message
}

// RequestValidationError represents a collection of validation errors.
// A nil *RequestValidationError means the request was valid.
type RequestValidationError struct {
	errors []ValidationError
}

// NewFieldError returns a RequestValidationError holding one message for field.
func NewFieldError(field, tag, message string) *RequestValidationError {
	return &RequestValidationError{errors: []ValidationError{{field: field, tag: tag, message: message}}}
}

// Errors returns the slice of validation errors.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

// Error implements the error interface, returning a combined error message.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}

	messages := make([]string, 0, len(ve.errors))
	for _, err := range ve.errors {
		messages = append(messages, fmt.Sprintf("%s: %s", err.field, err.message))
	}
	return strings.Join(messages, "; ")
}

// Merge combines two results. Either side may be nil.
func (ve *RequestValidationError) Merge(other *RequestValidationError) *RequestValidationError {
	switch {
	case ve == nil:
		return other
	case other == nil:
		return ve
	}
	merged := make([]ValidationError, 0, len(ve.errors)+len(other.errors))
	merged = append(merged, ve.errors...)
	merged = append(merged, other.errors...)
	return &RequestValidationError{errors: merged}
}

// FieldErrors groups messages by field, preserving the order they were raised in.
func (ve *RequestValidationError) FieldErrors() map[string][]string {
	out := make(map[string][]string, len(ve.errors))
	for _, err := range ve.errors {
		out[err.field] = append(out[err.field], err.message)
	}
	return out
}

// APIError represents an error response compatible with the API error format.
// This mirrors the models.APIError structure to avoid import cycles.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts validation errors to the API error format. Details carry
// {"validation_errors": {"<field>": ["message", ...]}}.
func (ve *RequestValidationError) ToAPIError() *APIError {
	if len(ve.errors) == 0 {
		return &APIError{Code: ErrorCode, Message: "Validation failed"}
	}

	return &APIError{
		Code:    ErrorCode,
		Message: ve.Error(),
		Details: map[string]interface{}{
			"validation_errors": ve.FieldErrors(),
		},
	}
}

// GetValidator returns the singleton validator instance.
// The validator is initialized once with custom validators and options.
// This function is thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		// Registration of a static func on a fresh validator cannot fail.
		_ = validate.RegisterValidation("plateifu_pattern", func(fl validator.FieldLevel) bool {
			return namePattern.MatchString(fl.Field().String())
		})
	})

	return validate
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return NewFieldError("unknown", "unknown", err.Error())
	}

	fieldErrors := make([]ValidationError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		fieldErrors[i] = ValidationError{
			field:   fieldErr.Field(),
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			value:   fieldErr.Value(),
			message: translateError(fieldErr),
		}
	}

	return &RequestValidationError{errors: fieldErrors}
}

// OneOf checks value against a dynamic set of choices, such as the configured
// data releases. Empty values are left to the required tag.
func OneOf(field, value string, choices []string) *RequestValidationError {
	if value == "" {
		return nil
	}
	for _, c := range choices {
		if c == value {
			return nil
		}
	}
	return NewFieldError(field, "oneof", fmt.Sprintf("Must be one of: %s.", strings.Join(choices, ", ")))
}

// NotAnInteger reports a parameter that failed integer parsing.
func NotAnInteger(field string) *RequestValidationError {
	return NewFieldError(field, "int", "Not a valid integer.")
}

// NotANumber reports a parameter that failed float parsing.
func NotANumber(field string) *RequestValidationError {
	return NewFieldError(field, "number", "Not a valid number.")
}

// errorMessageTemplates maps validation tags to fixed messages.
var errorMessageTemplates = map[string]string{
	"required":         "Missing data for required field.",
	"plateifu_pattern": "String does not match expected pattern.",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"oneof": "Must be one of: %s.",
	"gte":   "Must be greater than or equal to %s.",
	"lte":   "Must be less than or equal to %s.",
}

// translateError converts a validator.FieldError to a client-facing message.
func translateError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	if msg, ok := errorMessageTemplates[tag]; ok {
		return msg
	}

	if template, ok := errorMessageWithParam[tag]; ok {
		if tag == "oneof" {
			param = strings.Join(strings.Fields(param), ", ")
		}
		return fmt.Sprintf(template, param)
	}

	return translateMinMax(fe, tag, param)
}

// translateMinMax handles min/max validation with type-specific messages.
func translateMinMax(fe validator.FieldError, tag, param string) string {
	isString := fe.Kind() == reflect.String

	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("Shorter than minimum length %s.", param)
		}
		return fmt.Sprintf("Must be greater than or equal to %s.", param)
	case "max":
		if isString {
			return fmt.Sprintf("Longer than maximum length %s.", param)
		}
		return fmt.Sprintf("Must be less than or equal to %s.", param)
	default:
		return "Invalid value."
	}
}
