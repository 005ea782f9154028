package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller's organization role does not permit the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates the caller could not be identified.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInsufficientBalance indicates a loan payment larger than the outstanding balance.
var ErrInsufficientBalance = errors.New("payment exceeds current balance")

// ErrRateNotFound indicates a conversion hop has no table entry and no custom override.
var ErrRateNotFound = errors.New("exchange rate not found")

// ErrInvalidState indicates an entity is not in a state that allows the operation.
var ErrInvalidState = errors.New("invalid state")

// AppError carries an HTTP-ish status code alongside the underlying cause.
type AppError struct {
	Code    int
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

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an error that matches ErrNotFound.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// NewValidationError creates an error that matches ErrValidation.
func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// RateNotFoundError names the currency whose rate is missing so callers can
// prompt for a custom rate.
type RateNotFoundError struct {
	Currency string
}

func (e *RateNotFoundError) Error() string {
	return fmt.Sprintf("exchange rate not found for currency %s", e.Currency)
}

// Is lets errors.Is(err, ErrRateNotFound) match.
func (e *RateNotFoundError) Is(target error) bool {
	return target == ErrRateNotFound
}

// NewRateNotFoundError creates a RateNotFoundError for currency.
func NewRateNotFoundError(currency string) error {
	return &RateNotFoundError{Currency: currency}
}

// MissingRateCurrency returns the currency named by a RateNotFoundError in err's chain.
func MissingRateCurrency(err error) (string, bool) {
	var rnf *RateNotFoundError
	if errors.As(err, &rnf) {
		return rnf.Currency, true
	}
	return "", false
}
