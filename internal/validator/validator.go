package validator

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Validator contains validation errors for both fields and non-field errors.
type Validator struct {
	NonFieldErrors []string
	FieldErrors    map[string]string
}

// Valid returns true if there are no validation errors.
func (v *Validator) Valid() bool {
	return len(v.FieldErrors) == 0 && len(v.NonFieldErrors) == 0
}

// AddNonFieldError adds a non-field-specific error message.
func (v *Validator) AddNonFieldError(message string) {
	v.NonFieldErrors = append(v.NonFieldErrors, message)
}

// AddFieldError adds an error message for a specific field.
// If the field already has an error, it will not be overwritten.
func (v *Validator) AddFieldError(key, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	if _, exists := v.FieldErrors[key]; !exists {
		v.FieldErrors[key] = message
	}
}

// CheckField adds an error message for a specific field if the check fails.
func (v *Validator) CheckField(ok bool, key, message string) {
	if !ok {
		v.AddFieldError(key, message)
	}
}

// Err returns nil when valid, otherwise a *Error carrying every message.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return &Error{NonFieldErrors: v.NonFieldErrors, FieldErrors: v.FieldErrors}
}

// Error is the error form of a failed Validator.
type Error struct {
	NonFieldErrors []string
	FieldErrors    map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.FieldErrors))
	for k := range e.FieldErrors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+len(e.NonFieldErrors))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.FieldErrors[k]))
	}
	parts = append(parts, e.NonFieldErrors...)
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotBlank returns true if a value is not an empty string after trimming whitespace.
func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// PermittedValue returns true if a value is in a list of permitted values.
func PermittedValue[T comparable](value T, permittedValues ...T) bool {
	return slices.Contains(permittedValues, value)
}

// IsInRange returns true if a value is within a specified numeric range (inclusive).
func IsInRange[T int | int8 | int16 | int32 | int64 | float32 | float64](value, min, max T) bool {
	return value >= min && value <= max
}

// IsOneOf returns true if a string is one of the provided values.
func IsOneOf(value string, options ...string) bool {
	return PermittedValue(value, options...)
}
