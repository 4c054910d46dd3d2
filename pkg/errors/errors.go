package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrUnauthorized            = errors.New("unauthorized access")
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	ErrInvalidInput    = errors.New("invalid input data")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidAddress  = errors.New("address is not one of the customer's saved addresses")

	ErrInsufficientStock = errors.New("insufficient stock quantity")
	ErrDriverUnavailable = errors.New("driver is not available")

	// ErrContention is returned when row-level contention could not be
	// resolved within the bounded retry budget. Callers may retry after
	// backoff; this is never a business rule failure.
	ErrContention = errors.New("transient contention, retry the operation")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// TransitionError reports an illegal shipment status transition. Both
// states are carried for diagnostics.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %s to %s", e.From, e.To)
}

func NewTransitionError(from, to string) *TransitionError {
	return &TransitionError{From: from, To: to}
}

// IsTransitionError reports whether err wraps a TransitionError.
func IsTransitionError(err error) bool {
	var te *TransitionError
	return errors.As(err, &te)
}
