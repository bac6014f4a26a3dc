package service

import "fmt"

// ValidationError reports a rejected field on a create or update
// request. Both the HTTP handlers and the CLI translate it into a
// user-facing message, so it carries the field name and the reason
// rather than a preformatted string.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
