package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KYCStatus represents an account's identity-verification state.
type KYCStatus string

const (
	KYCStatusUnverified KYCStatus = "unverified"
	KYCStatusVerified   KYCStatus = "verified"
)

// KYCDetail holds the document data submitted for verification.
type KYCDetail struct {
	DocumentType   string    `json:"documentType"`
	DocumentNumber string    `json:"documentNumber"`
	Address        string    `json:"address"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

// User represents an account holder. Balance is mutated only by the transfer
// ledger, KYC state only by the KYC gate; accounts are never deleted.
type User struct {
	ID           uuid.UUID       `json:"id"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"` // Never expose
	KYCStatus    KYCStatus       `json:"kycStatus"`
	KYCDetail    *KYCDetail      `json:"kycData"`
	Balance      decimal.Decimal `json:"balance"`
	Cards        []CardSummary   `json:"cards"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// IsVerified returns true when the account has passed the KYC gate.
func (u *User) IsVerified() bool {
	return u.KYCStatus == KYCStatusVerified
}
