package shared

import "fmt"

// ValidationError reports input that violates a documented constraint.
// The message names the violated constraint so callers can surface it as-is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// NewValidation builds a ValidationError with a formatted reason.
func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an operation against a record that does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// NewNotFound builds a NotFoundError naming the missing resource.
func NewNotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{Resource: fmt.Sprintf(format, args...)}
}

// IOError reports a failed read or write against the store or the
// document output directory.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *IOError) Unwrap() error { return e.Err }

// NewIO wraps err with the operation that failed.
func NewIO(op string, err error) *IOError {
	return &IOError{Op: op, Err: err}
}
