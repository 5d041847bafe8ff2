package dto

import (
	"paymenu-backend/internal/core/domain"

	"github.com/shopspring/decimal"
)

// SignupRequest is the request body for account creation.
type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is the response body for signup and login. The user projection
// never includes the password hash.
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

// KYCSubmitRequest is the request body for KYC submission.
type KYCSubmitRequest struct {
	DocumentType   string `json:"documentType" binding:"required"`
	DocumentNumber string `json:"documentNumber" binding:"required"`
	Address        string `json:"address" binding:"required"`
}

// KYCSubmitResponse is the response body for a processed submission.
type KYCSubmitResponse struct {
	Message   string            `json:"message"`
	KYCStatus domain.KYCStatus  `json:"kycStatus"`
	KYCData   *domain.KYCDetail `json:"kycData"`
}

// KYCStatusResponse is the response body for the status query.
type KYCStatusResponse struct {
	KYCStatus domain.KYCStatus  `json:"kycStatus"`
	KYCData   *domain.KYCDetail `json:"kycData"`
	UserID    string            `json:"userId"`
}

// ProfileResponse wraps the authenticated account's profile.
type ProfileResponse struct {
	Message string       `json:"message"`
	Data    *domain.User `json:"data"`
}

// TransferRequest is the request body for sending funds. Amount positivity is
// enforced by the transfer service so zero and negative values map to the
// ledger's own error code.
type TransferRequest struct {
	RecipientIdentifier string          `json:"recipientIdentifier" binding:"required"`
	Amount              decimal.Decimal `json:"amount"`
	Currency            string          `json:"currency" binding:"required"`
}

// TransferResponse is the response body for a settled transfer.
type TransferResponse struct {
	Message     string              `json:"message"`
	Transaction *domain.Transaction `json:"transaction"`
}

// TransactionsResponse wraps an account's transfer history.
type TransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// CardIssueRequest is the request body for mock card issuance.
type CardIssueRequest struct {
	CardType string `json:"cardType" binding:"required"`
}

// CardIssueResponse is the response body for an issued card.
type CardIssueResponse struct {
	Message string       `json:"message"`
	Card    *domain.Card `json:"card"`
}

// CardsResponse wraps an account's card summaries.
type CardsResponse struct {
	Cards []domain.CardSummary `json:"cards"`
}
