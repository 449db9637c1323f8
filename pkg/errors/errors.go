package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidInput         = errors.New("invalid calculator input")
	ErrInvalidPrincipal     = errors.New("principal must be greater than zero")
	ErrInvalidRate          = errors.New("annual interest rate must be greater than zero")
	ErrInvalidTerm          = errors.New("loan term must be greater than zero")
	ErrNegativeAmount       = errors.New("amount must not be negative")
	ErrPeriodOutOfRange     = errors.New("period index exceeds the loan term")
	ErrUnsupportedFrequency = errors.New("unsupported payment frequency")
	ErrCalculationNotFound  = errors.New("calculation not found")
	ErrPrimeRateUnavailable = errors.New("prime rate unavailable")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeCalculationNotFound = "CALCULATION_NOT_FOUND"
	ErrCodeDatabaseError       = "DATABASE_ERROR"
	ErrCodeCacheError          = "CACHE_ERROR"
	ErrCodeRateSourceError     = "RATE_SOURCE_ERROR"
)

// IsInvalidInput reports whether err is a validation failure of calculator
// input, as opposed to a collaborator failure.
func IsInvalidInput(err error) bool {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code == ErrCodeInvalidInput
	}
	return false
}

// Wrap common errors with business context

func WrapInvalidPrincipal(value string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidInput,
		fmt.Sprintf("principal %s is not a positive amount", value),
		ErrInvalidPrincipal,
	)
}

func WrapInvalidRate(value string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidInput,
		fmt.Sprintf("annual rate %s%% is not a positive percentage", value),
		ErrInvalidRate,
	)
}

func WrapInvalidTerm(termYears int) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidInput,
		fmt.Sprintf("term of %d years is not a positive term", termYears),
		ErrInvalidTerm,
	)
}

func WrapNegativeAmount(field, value string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidInput,
		fmt.Sprintf("%s of %s must not be negative", field, value),
		ErrNegativeAmount,
	)
}

func WrapPeriodOutOfRange(field string, period, totalPeriods int) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidInput,
		fmt.Sprintf("%s %d exceeds the %d periods of the loan term", field, period, totalPeriods),
		ErrPeriodOutOfRange,
	)
}

func WrapUnsupportedFrequency(frequency string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidInput,
		fmt.Sprintf("payment frequency %q is not supported", frequency),
		ErrUnsupportedFrequency,
	)
}

func WrapCalculationNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeCalculationNotFound,
		fmt.Sprintf("calculation with ID %s not found", id),
		ErrCalculationNotFound,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}

func WrapRateSourceError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeRateSourceError,
		"prime rate lookup failed",
		err,
	)
}
