package resource

import "fmt"

// MissingFieldError is returned by CreateRequest.Bind for an absent
// required field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing %s", e.Field)
}

// Missing is shorthand for &MissingFieldError{Field: field}.
func Missing(field string) error {
	return &MissingFieldError{Field: field}
}

// InvalidFieldError rejects a supplied field whose value cannot be stored.
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("Invalid %s: %s", e.Field, e.Reason)
}
