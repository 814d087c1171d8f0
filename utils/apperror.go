package utils

import "fmt"

// ValidationError signals bad input shape or a business-rule violation,
// e.g. subscribing to an inactive program.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Message
}

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InvalidStateError signals an operation attempted from a state that
// forbids it, e.g. confirming an already-confirmed booking. It is the
// error the loser of a decision race receives.
type InvalidStateError struct {
	Entity  string
	Current string
	Op      string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state: cannot %s %s in state %q", e.Op, e.Entity, e.Current)
}

func NewInvalidStateError(entity, current, op string) error {
	return &InvalidStateError{Entity: entity, Current: current, Op: op}
}

// NotFoundError signals a referenced entity is absent from the store.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// AuthorizationError signals the actor lacks rights for the operation,
// e.g. a non-participant posting into a consultation room.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return "unauthorized: " + e.Message
}

func NewAuthorizationError(format string, args ...interface{}) error {
	return &AuthorizationError{Message: fmt.Sprintf(format, args...)}
}

// StorageError wraps an underlying store failure. Store errors propagate
// to the caller unmodified in meaning; no layer retries them internally.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// TimeoutError signals a suspension point exceeded its deadline.
type TimeoutError struct {
	Op string
}

func (e *TimeoutError) Error() string {
	return "timeout: " + e.Op
}

func NewTimeoutError(op string) error {
	return &TimeoutError{Op: op}
}
