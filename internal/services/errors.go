// Package services holds the storefront's domain operations. Handlers translate
// the sentinel errors below into HTTP responses.
package services

import (
	"errors"
	"fmt"

	"github.com/Srijansendry/Srijan/internal/payments"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrGatewayUnavailable = payments.ErrGatewayUnavailable
	ErrPersistence        = errors.New("persistence error")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrAccountLocked      = errors.New("account locked")
	ErrAlreadyReviewed    = errors.New("already reviewed")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
