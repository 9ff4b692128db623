// Package errs defines the error taxonomy shared by the order services and
// the HTTP layer. Every error wraps one of the sentinel values below so
// callers can classify with errors.Is and map to a response code.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrForbidden         = errors.New("forbidden")
	ErrStoreConflict     = errors.New("store conflict")
)

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	ParamName string
	Cause     error
}

func NewValidationError(paramName string) *ValidationError {
	return &ValidationError{ParamName: paramName}
}

func NewValidationErrorWithCause(paramName string, cause error) *ValidationError {
	return &ValidationError{ParamName: paramName, Cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValidation, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, e.ParamName)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError reports an absent order or partner reference.
type NotFoundError struct {
	Resource string
	ID       string
}

func NewNotFoundError(resource string, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Resource, ErrNotFound, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// InvalidTransitionError reports a status change that is not reachable from
// the order's current status. To is empty when the violation is a partner
// assignment against an order whose lifecycle position forbids it.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from string, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("%s: order in status %s cannot be assigned", ErrInvalidTransition, e.From)
	}
	return fmt.Sprintf("Invalid transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ForbiddenError reports an actor that does not match the order's assigned
// partner.
type ForbiddenError struct {
	ActorID string
}

func NewForbiddenError(actorID string) *ForbiddenError {
	return &ForbiddenError{ActorID: actorID}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: actor %s is not the assigned partner for this order", ErrForbidden, e.ActorID)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// StoreConflictError reports a lost concurrent-write race detected by the
// persistence layer.
type StoreConflictError struct {
	OrderID string
}

func NewStoreConflictError(orderID string) *StoreConflictError {
	return &StoreConflictError{OrderID: orderID}
}

func (e *StoreConflictError) Error() string {
	return fmt.Sprintf("%s: order %s was updated concurrently", ErrStoreConflict, e.OrderID)
}

func (e *StoreConflictError) Unwrap() error {
	return ErrStoreConflict
}
