// Package errs defines the typed error taxonomy shared by the repository
// and service layers. Handlers map these to HTTP statuses; services use
// errors.As to branch on failure class.
package errs

import "fmt"

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a missing entity. Repositories must return this
// for unknown ids rather than an empty record.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// UnauthorizedError reports an actor acting on a resource they do not own.
type UnauthorizedError struct {
	Actor    string
	Resource string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("user %s is not authorized for %s", e.Actor, e.Resource)
}

// InvalidStateError reports a lifecycle transition attempted from the
// wrong state.
type InvalidStateError struct {
	Current string
	Wanted  string
	Op      string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s requires status %q but session is %q", e.Op, e.Wanted, e.Current)
}

// PaymentError reports a failed capture, adjustment or refund. Payment
// failures always abort the transition that triggered them.
type PaymentError struct {
	Op  string // "capture", "adjustment", "refund"
	Err error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment %s failed: %v", e.Op, e.Err)
}

func (e *PaymentError) Unwrap() error { return e.Err }

// ExternalServiceError reports a best-effort collaborator failure
// (notification, provisioning report, metrics). Callers log these and
// continue.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }
