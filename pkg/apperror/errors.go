package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrEmailExists() *AppError {
	return New("AUTH_002", "Email already exists", http.StatusConflict)
}

func ErrUsernameExists() *AppError {
	return New("AUTH_003", "Username taken", http.StatusConflict)
}

func ErrMissingToken() *AppError {
	return New("AUTH_004", "No token provided, authorization denied", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_005", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- KYC Gate (KYC) ----

func ErrKYCFieldsRequired() *AppError {
	return New("KYC_001", "Document type, number, and address are required", http.StatusBadRequest)
}

func ErrKYCRequired() *AppError {
	return New("KYC_002", "KYC verification required", http.StatusForbidden)
}

// ---- Transfer Ledger (TRF) ----

func ErrRecipientNotFound() *AppError {
	return New("TRF_001", "Recipient not found", http.StatusNotFound)
}

func ErrSelfTransfer() *AppError {
	return New("TRF_002", "Cannot send money to yourself", http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("TRF_003", "Invalid amount", http.StatusBadRequest)
}

func ErrInsufficientBalance() *AppError {
	return New("TRF_004", "Insufficient balance", http.StatusBadRequest)
}

// ---- Card Issuer (CARD) ----

func ErrInvalidCardType() *AppError {
	return New("CARD_001", "Valid card type (VISA or MASTERCARD) is required", http.StatusBadRequest)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a generic invalid-input error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
