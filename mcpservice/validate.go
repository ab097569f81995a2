package mcpservice

import (
	"slices"
	"strings"
)

// RequireArg returns an InvalidParamsError when value is empty.
func RequireArg(field, value string) error {
	if value == "" {
		return &InvalidParamsError{Field: field, Reason: "a value is required"}
	}
	return nil
}

// RequireOneOf returns an InvalidParamsError naming every accepted value when
// value is not one of allowed.
func RequireOneOf(field, value string, allowed ...string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return &InvalidParamsError{
		Field:  field,
		Reason: "must be one of the following: " + strings.Join(allowed, ", "),
	}
}
