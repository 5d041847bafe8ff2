package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus represents the lifecycle state of a ledger entry.
// Transfers settle synchronously, so "completed" is the only state produced.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
)

// Transaction is an immutable ledger entry for a settled transfer. Usernames
// are denormalized at append time so the record stays self-describing.
type Transaction struct {
	ID                uuid.UUID         `json:"id"`
	SenderID          uuid.UUID         `json:"senderId"`
	SenderUsername    string            `json:"senderUsername"`
	RecipientID       uuid.UUID         `json:"recipientId"`
	RecipientUsername string            `json:"recipientUsername"`
	Amount            decimal.Decimal   `json:"amount"`
	Currency          string            `json:"currency"`
	Status            TransactionStatus `json:"status"`
	Timestamp         time.Time         `json:"timestamp"`

	// Sequence is assigned monotonically at append time and breaks ordering
	// ties between entries sharing a timestamp. Not part of the wire format.
	Sequence uint64 `json:"-"`
}

// Involves returns true when the given account is sender or recipient.
func (t *Transaction) Involves(userID uuid.UUID) bool {
	return t.SenderID == userID || t.RecipientID == userID
}
