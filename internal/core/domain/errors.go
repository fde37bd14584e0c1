package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Inventory errors
var (
	ErrPropertyNotFound  = errors.New("property not found")
	ErrRoomNotFound      = errors.New("room not found")
	ErrBedNotFound       = errors.New("bed not found")
	ErrInvalidBedStatus  = errors.New("invalid bed status")
	ErrBedNotAvailable   = errors.New("bed is not available for booking")
	ErrDuplicateRoomName = errors.New("room number already exists in property")
)

// Wallet errors
var (
	ErrInvalidPaymentType   = errors.New("invalid payment type")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrWalletRequestClosed  = errors.New("wallet request already processed")
)

// KYC errors
var (
	ErrKYCExists   = errors.New("kyc record already exists for student")
	ErrKYCNotFound = errors.New("kyc record not found")
)

// InsufficientBalanceError is returned when a debit exceeds the computed
// wallet balance. It carries the balance so handlers can echo it back.
type InsufficientBalanceError struct {
	Balance   float64
	Requested float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Insufficient balance. Requested %.2f but available balance is %.2f", e.Requested, e.Balance)
}
