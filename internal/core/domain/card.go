package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CardNetwork identifies the network a mock card is issued on.
type CardNetwork string

const (
	CardNetworkVisa       CardNetwork = "VISA"
	CardNetworkMastercard CardNetwork = "MASTERCARD"
)

// ParseCardNetwork normalizes a card type string, case-insensitively.
func ParseCardNetwork(s string) (CardNetwork, bool) {
	switch CardNetwork(strings.ToUpper(s)) {
	case CardNetworkVisa:
		return CardNetworkVisa, true
	case CardNetworkMastercard:
		return CardNetworkMastercard, true
	default:
		return "", false
	}
}

// CardStatus represents the state of an issued card. Issuance is synchronous,
// so "issued" is the only state produced.
type CardStatus string

const (
	CardStatusIssued CardStatus = "issued"
)

// Card is the full record of a mock-issued card, including the security code.
// Immutable once created.
type Card struct {
	ID                 uuid.UUID   `json:"id"`
	UserID             uuid.UUID   `json:"userId"`
	CardType           CardNetwork `json:"cardType"`
	CardNumberLastFour string      `json:"cardNumberLastFour"`
	ExpiryDate         string      `json:"expiryDate"` // MM/YY
	CVV                string      `json:"cvv"`
	CardHolderName     string      `json:"cardHolderName"`
	Status             CardStatus  `json:"status"`
	RequestedAt        time.Time   `json:"requestedAt"`
}

// CardSummary is the projection stored on the owning account's card list.
// It omits the security code.
type CardSummary struct {
	ID                 uuid.UUID   `json:"id"`
	CardType           CardNetwork `json:"cardType"`
	CardNumberLastFour string      `json:"cardNumberLastFour"`
	ExpiryDate         string      `json:"expiryDate"`
}

// Summary returns the CVV-free projection of the card.
func (c *Card) Summary() CardSummary {
	return CardSummary{
		ID:                 c.ID,
		CardType:           c.CardType,
		CardNumberLastFour: c.CardNumberLastFour,
		ExpiryDate:         c.ExpiryDate,
	}
}
