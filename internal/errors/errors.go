// Package errors defines the domain error taxonomy shared across the
// wallet engine. Handlers translate these to HTTP statuses; services
// wrap storage failures with %w so the underlying cause survives.
package errors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// DomainError is an error the orchestration boundary knows how to
// translate into an HTTP response.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string { return e.Message }

var (
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "Insufficient wallet balance",
		Status:  fiber.StatusBadRequest,
	}
	ErrWalletNotFound = &DomainError{
		Code:    "WALLET_NOT_FOUND",
		Message: "wallet not found",
		Status:  fiber.StatusNotFound,
	}
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
		Status:  fiber.StatusNotFound,
	}
	ErrTransactionNotFound = &DomainError{
		Code:    "TRANSACTION_NOT_FOUND",
		Message: "transaction not found",
		Status:  fiber.StatusNotFound,
	}
	ErrDVANotFound = &DomainError{
		Code:    "DVA_NOT_FOUND",
		Message: "dedicated account not found",
		Status:  fiber.StatusNotFound,
	}
	ErrDVAExists = &DomainError{
		Code:    "DVA_EXISTS",
		Message: "user already has a dedicated account",
		Status:  fiber.StatusBadRequest,
	}
	ErrInvalidSignature = &DomainError{
		Code:    "INVALID_SIGNATURE",
		Message: "invalid paystack signature",
		Status:  fiber.StatusBadRequest,
	}
	// ErrUnknownOutcome marks a gateway call that timed out after the
	// request may have reached the processor. The local transaction must
	// stay pending; settlement arrives via webhook or the sweep.
	ErrUnknownOutcome = &DomainError{
		Code:    "UNKNOWN_OUTCOME",
		Message: "transfer outcome unknown, pending confirmation",
		Status:  fiber.StatusAccepted,
	}
)

// Validation builds a 400 error for malformed input.
func Validation(message string) *DomainError {
	return &DomainError{Code: "VALIDATION", Message: message, Status: fiber.StatusBadRequest}
}

// Gateway builds an error carrying the processor-reported reason.
func Gateway(reason string) *DomainError {
	return &DomainError{
		Code:    "GATEWAY",
		Message: fmt.Sprintf("payment gateway error: %s", reason),
		Status:  fiber.StatusBadGateway,
	}
}

// Verification builds an error for a failed identity verification.
func Verification(reason string) *DomainError {
	return &DomainError{
		Code:    "VERIFICATION",
		Message: fmt.Sprintf("verification failed: %s", reason),
		Status:  fiber.StatusBadRequest,
	}
}

// WithdrawalFailed wraps the underlying gateway reason after a
// compensated withdrawal.
func WithdrawalFailed(reason string) *DomainError {
	return &DomainError{
		Code:    "WITHDRAWAL_FAILED",
		Message: fmt.Sprintf("Withdrawal failed: %s", reason),
		Status:  fiber.StatusBadRequest,
	}
}

// AsDomain extracts a DomainError from an error chain.
func AsDomain(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
