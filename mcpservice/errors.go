package mcpservice

import (
	"errors"
	"fmt"
)

// ErrResourceHandlerFailed is returned by ReadResource when the handler that
// owns a URI fails. The handler's own error is logged, never returned.
var ErrResourceHandlerFailed = errors.New("resource handler failed")

// NotFoundError indicates a requested item (tool, resource, prompt) doesn't exist.
type NotFoundError struct {
	Type string // "tool", "resource", "prompt"
	Name string // identifier that wasn't found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Type, e.Name)
}

// InvalidParamsError indicates that the provided parameters are invalid.
type InvalidParamsError struct {
	Field  string // which field is invalid
	Reason string // why it's invalid
}

func (e *InvalidParamsError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid parameters: %s", e.Reason)
}

// IsNotFound reports whether err is a NotFoundError of the given type. An
// empty typ matches any type.
func IsNotFound(err error, typ string) bool {
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		return false
	}
	return typ == "" || nf.Type == typ
}
